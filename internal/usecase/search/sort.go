package search

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/clinicdex/internal/domain/search/filter"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/normalize"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/result"
)

// sortResults orders rs in place by the effective sort of st. The sort is
// stable: equal keys keep candidate order. Records without coordinates go
// last under distance sort in either direction.
func sortResults(rs []result.Scored, st filter.State, hasQuery bool) {
	key, dir := st.EffectiveSort(hasQuery)
	sign := 1
	if dir == filter.Desc {
		sign = -1
	}

	switch key {
	case filter.SortRelevance:
		slices.SortStableFunc(rs, func(a, b result.Scored) int {
			return sign * cmp.Compare(a.Score, b.Score)
		})
	case filter.SortRating:
		slices.SortStableFunc(rs, func(a, b result.Scored) int {
			return sign * cmp.Compare(a.Record.RatingValue(), b.Record.RatingValue())
		})
	case filter.SortReviews:
		slices.SortStableFunc(rs, func(a, b result.Scored) int {
			return sign * cmp.Compare(a.Record.Reviews(), b.Record.Reviews())
		})
	case filter.SortName:
		slices.SortStableFunc(rs, func(a, b result.Scored) int {
			return sign * cmp.Compare(normalize.Text(a.Record.Name), normalize.Text(b.Record.Name))
		})
	case filter.SortDistance:
		origin, ok := st.Origin()
		if !ok {
			return
		}
		slices.SortStableFunc(rs, func(a, b result.Scored) int {
			la, lb := a.Record.Location, b.Record.Location
			switch {
			case la == nil && lb == nil:
				return 0
			case la == nil:
				return 1
			case lb == nil:
				return -1
			}
			return sign * cmp.Compare(origin.DistanceTo(*la), origin.DistanceTo(*lb))
		})
	}
}
