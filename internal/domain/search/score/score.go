// Package score ranks clinics against a query.
//
// Two strategies exist and are kept separate: TermScorer for expanded,
// multi-term taxonomy queries and NameScorer for single free-text business
// name lookups. Both return 0 for "no match".
package score

import (
	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/expand"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/normalize"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/strategy"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/tokenize"
)

// Query is a raw query prepared once for scoring many candidates.
type Query struct {
	// Text is the cleaned, normalized query.
	Text string
	// Terms are the expanded canonical terms, sorted.
	Terms []string
}

// NewQuery prepares raw with exp. A nil expander uses the built-in lexicon.
func NewQuery(exp *expand.Expander, raw string) Query {
	if exp == nil {
		exp = expand.New(nil)
	}
	return Query{
		Text:  normalize.Query(raw),
		Terms: exp.Expand(raw).Sorted(),
	}
}

// IsEmpty reports whether the query has nothing to match on.
func (q Query) IsEmpty() bool {
	return q.Text == "" && len(q.Terms) == 0
}

// Candidate is a record paired with its tokenized projection.
type Candidate struct {
	Record *clinic.Record
	Doc    tokenize.Document
}

// NewCandidate tokenizes r.
func NewCandidate(r *clinic.Record) Candidate {
	return Candidate{Record: r, Doc: tokenize.Tokenize(r)}
}

// Scorer computes a non-negative relevance score. Zero excludes the candidate.
type Scorer interface {
	Score(c Candidate, q Query) float64
}

// ForStrategy returns the scorer for s. Unknown strategies fall back to Taxonomy.
func ForStrategy(s strategy.Strategy) Scorer {
	if s == strategy.Name {
		return NameScorer{}
	}
	return TermScorer{}
}

// Record is a convenience for scoring a single record against a raw query.
func Record(s Scorer, r *clinic.Record, raw string) float64 {
	return s.Score(NewCandidate(r), NewQuery(nil, raw))
}
