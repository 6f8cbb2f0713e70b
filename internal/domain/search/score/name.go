package score

import (
	"math"
	"strings"

	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/normalize"
)

// NameScorer weights. Text signals are spaced so that the bounded boosts
// can never lift a weaker text signal over a stronger one.
const (
	ExactNameWeight     = 100.0
	PrefixNameWeight    = 60.0
	SubstringNameWeight = 25.0
	ExactCityBonus      = 15.0
	PartialCityBonus    = 8.0
	RatingWeight        = 1.0
	ReviewWeight        = 1.0
	MaxReviewBoost      = 10.0
	OperationalBonus    = 2.0
)

// NameScorer ranks clinics for "find this business" lookups by how closely
// the display name matches the whole query, with small popularity boosts.
type NameScorer struct{}

// Score implements Scorer.
func (NameScorer) Score(c Candidate, q Query) float64 {
	if q.Text == "" || c.Record == nil {
		return 0
	}

	text := nameMatch(c.Doc.Name, q.Text) + cityMatch(normalize.Text(c.Record.City), q.Text)
	if text == 0 {
		return 0
	}

	rating := min(max(c.Record.RatingValue(), clinic.MinRating), clinic.MaxRating)
	reviews := max(c.Record.Reviews(), 0)
	boost := RatingWeight * rating
	boost += min(ReviewWeight*math.Log1p(float64(reviews)), MaxReviewBoost)
	if c.Record.IsOperational() {
		boost += OperationalBonus
	}
	return text + boost
}

func nameMatch(name, q string) float64 {
	switch {
	case name == "":
		return 0
	case name == q:
		return ExactNameWeight
	case strings.HasPrefix(name, q):
		return PrefixNameWeight
	case strings.Contains(name, q):
		return SubstringNameWeight
	}
	return 0
}

func cityMatch(city, q string) float64 {
	switch {
	case city == "":
		return 0
	case city == q:
		return ExactCityBonus
	case strings.Contains(city, q), strings.Contains(q, city):
		return PartialCityBonus
	}
	return 0
}
