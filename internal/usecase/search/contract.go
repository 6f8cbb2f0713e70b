package search

import (
	"context"

	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
)

// Fetcher is the record store contract consumed by search.
// Criteria are hints only; the store may return more than asked for.
type Fetcher interface {
	Fetch(ctx context.Context, c clinic.Criteria) (clinic.FetchResult, error)
}
