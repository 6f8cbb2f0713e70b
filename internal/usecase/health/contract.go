package health

import "context"

// DBPinger checks record store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker checks that the clinic search index is present.
type IndexChecker interface {
	IndexReady(ctx context.Context) error
}
