package result

import "github.com/kailas-cloud/clinicdex/internal/domain/clinic"

// Scored pairs a clinic with its relevance score for one query.
type Scored struct {
	Record clinic.Record
	Score  float64
}

// Outcome is the assembled, ordered view handed to the presentation layer.
type Outcome struct {
	// Results is a fresh slice; callers may keep or modify it.
	Results []Scored
	// Total counts matches before the result limit was applied.
	Total int
	// FellBackToUnfiltered is set when the requested filters matched nothing
	// and a broader candidate set is shown instead.
	FellBackToUnfiltered bool
	// Terms are the expanded search terms used for scoring, sorted.
	Terms []string
}

// Records strips scores, preserving order.
func (o *Outcome) Records() []clinic.Record {
	out := make([]clinic.Record, len(o.Results))
	for i := range o.Results {
		out[i] = o.Results[i].Record
	}
	return out
}

// IDs returns the result identifiers in order.
func (o *Outcome) IDs() []string {
	out := make([]string, len(o.Results))
	for i := range o.Results {
		out[i] = o.Results[i].Record.ID
	}
	return out
}
