package search

import (
	"unicode/utf8"

	"github.com/kailas-cloud/clinicdex/internal/domain"
	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/expand"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/filter"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/normalize"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/result"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/score"
)

// Assembler turns a candidate set and a filter state into an ordered outcome.
// It holds no mutable state and is safe for concurrent use.
type Assembler struct {
	expander *expand.Expander
	scorer   score.Scorer
}

// NewAssembler creates an assembler. Nil arguments select the built-in
// lexicon and the taxonomy scorer.
func NewAssembler(exp *expand.Expander, scorer score.Scorer) *Assembler {
	if exp == nil {
		exp = expand.New(nil)
	}
	if scorer == nil {
		scorer = score.TermScorer{}
	}
	return &Assembler{expander: exp, scorer: scorer}
}

// ComputeResults filters, scores and sorts candidates under st.
//
// When st matches nothing, broader states are tried in order: without
// rating/open-now/accessibility/parking, then also without the query,
// then with no constraints at all. The first non-empty tier wins and
// FellBackToUnfiltered is set. An empty candidate set yields an empty
// outcome without fallback. candidates is never modified.
func (a *Assembler) ComputeResults(candidates []clinic.Record, st filter.State) result.Outcome {
	if len(candidates) == 0 {
		return result.Outcome{Results: []result.Scored{}, Terms: []string{}}
	}

	if normalize.HasOpenNow(normalize.Text(st.Query())) {
		st = st.WithOpenNow(true)
	}

	docs := make([]score.Candidate, len(candidates))
	for i := range candidates {
		docs[i] = score.NewCandidate(&candidates[i])
	}

	q := a.prepare(st.Query())
	tiers := fallbackTiers(st)
	for i, tier := range tiers {
		tq := q
		if tier.Query() == "" {
			tq = score.Query{}
		}
		scored := a.filterAndScore(docs, tier, tq)
		if len(scored) == 0 && i < len(tiers)-1 {
			continue
		}
		total := len(scored)
		sortResults(scored, tier, !tq.IsEmpty())
		if n := st.Limit(); n > 0 && len(scored) > n {
			scored = scored[:n]
		}
		return result.Outcome{
			Results:              scored,
			Total:                total,
			FellBackToUnfiltered: i > 0,
			Terms:                termsOrEmpty(q.Terms),
		}
	}
	return result.Outcome{Results: []result.Scored{}, Terms: termsOrEmpty(q.Terms)}
}

// ExpandTerms exposes query expansion with this assembler's lexicon, sorted.
func (a *Assembler) ExpandTerms(raw string) []string {
	return a.expander.Expand(raw).Sorted()
}

func (a *Assembler) prepare(raw string) score.Query {
	q := score.NewQuery(a.expander, raw)
	if utf8.RuneCountInString(q.Text) < domain.MinQueryLength {
		return score.Query{}
	}
	return q
}

func (a *Assembler) filterAndScore(docs []score.Candidate, st filter.State, q score.Query) []result.Scored {
	out := make([]result.Scored, 0, len(docs))
	hasQuery := !q.IsEmpty()
	for _, c := range docs {
		if !passes(c.Record, st) {
			continue
		}
		var s float64
		if hasQuery {
			s = a.scorer.Score(c, q)
			if s <= 0 {
				continue
			}
		}
		out = append(out, result.Scored{Record: *c.Record, Score: s})
	}
	return out
}

// fallbackTiers lists st followed by progressively broader states.
// The last tier has no constraints.
func fallbackTiers(st filter.State) []filter.State {
	tiers := []filter.State{st}
	cur := st
	if cur.HasAmenities() {
		cur = cur.WithoutAmenities()
		tiers = append(tiers, cur)
	}
	if cur.Query() != "" {
		cur = cur.WithoutQuery()
		tiers = append(tiers, cur)
	}
	if len(cur.States()) > 0 {
		cur = cur.WithoutStates()
		tiers = append(tiers, cur)
	}
	return tiers
}

func passes(r *clinic.Record, st filter.State) bool {
	if minRating := st.MinRating(); minRating > 0 && (r.Rating == nil || *r.Rating < minRating) {
		return false
	}
	if st.OpenNow() && !r.IsOpenNow() {
		return false
	}
	if st.WheelchairAccessible() && !r.IsWheelchairAccessible() {
		return false
	}
	if st.FreeParking() && !r.HasFreeParking() {
		return false
	}
	return st.AllowsState(r.State)
}

func termsOrEmpty(terms []string) []string {
	if terms == nil {
		return []string{}
	}
	return terms
}
