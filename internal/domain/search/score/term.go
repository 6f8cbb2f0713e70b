package score

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/clinicdex/internal/domain/search/fuzzy"
)

// Points awarded per term by TermScorer.
const (
	NamePoints     = 3.0
	TaxonomyPoints = 2.0
	TextPoints     = 1.0
	FuzzyPoints    = 1.0
)

// TermScorer sums per-term points: substring hits weighted by field
// (name > category/tags > anything else), otherwise at most one fuzzy hit.
type TermScorer struct{}

// Score implements Scorer.
func (TermScorer) Score(c Candidate, q Query) float64 {
	if len(q.Terms) == 0 || c.Doc.Text == "" {
		return 0
	}
	var total float64
	for _, t := range q.Terms {
		total += termPoints(c, t)
	}
	return total
}

func termPoints(c Candidate, t string) float64 {
	if strings.Contains(c.Doc.Text, t) {
		switch {
		case strings.Contains(c.Doc.Name, t):
			return NamePoints
		case strings.Contains(c.Doc.Taxonomy, t):
			return TaxonomyPoints
		default:
			return TextPoints
		}
	}

	allowed := fuzzy.AllowedDistance(t)
	tl := utf8.RuneCountInString(t)
	for _, w := range c.Doc.Words {
		if d := utf8.RuneCountInString(w) - tl; d > allowed || -d > allowed {
			continue
		}
		if fuzzy.Within(t, w, allowed) {
			return FuzzyPoints
		}
	}
	return 0
}
