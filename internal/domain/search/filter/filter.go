// Package filter holds the immutable filter state consumed by result assembly.
//
// A State is a value: every With* method returns a modified copy and never
// touches the receiver, so a caller can keep old states for undo/replay.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/clinicdex/internal/domain/geo"
)

// MaxStates is the maximum number of allowed state codes per filter.
const MaxStates = 64

// SortKey selects the ordering of assembled results.
type SortKey string

// Sort keys. SortDefault defers to relevance (with a query) or rating.
const (
	SortDefault   SortKey = ""
	SortRelevance SortKey = "relevance"
	SortRating    SortKey = "rating"
	SortReviews   SortKey = "reviews"
	SortName      SortKey = "name"
	SortDistance  SortKey = "distance"
)

// IsValid checks if the key is one of the supported values.
func (k SortKey) IsValid() bool {
	switch k {
	case SortDefault, SortRelevance, SortRating, SortReviews, SortName, SortDistance:
		return true
	}
	return false
}

// Direction is the sort direction.
type Direction string

// Directions. DirectionDefault resolves per sort key.
const (
	DirectionDefault Direction = ""
	Asc              Direction = "asc"
	Desc             Direction = "desc"
)

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == DirectionDefault || d == Asc || d == Desc
}

// State is the set of active constraints for one recomputation.
type State struct {
	minRating   float64
	openNow     bool
	wheelchair  bool
	freeParking bool
	states      []string
	query       string
	sortKey     SortKey
	direction   Direction
	origin      *geo.Point
	limit       int
}

// New creates a State carrying only a free-text query.
func New(query string) State {
	return State{query: query}
}

// WithQuery returns a copy with the free-text query replaced.
func (s State) WithQuery(q string) State {
	s.query = q
	return s
}

// WithMinRating returns a copy with the minimum rating set, clamped to [0, 5].
func (s State) WithMinRating(r float64) State {
	s.minRating = min(max(r, 0), 5)
	return s
}

// WithOpenNow returns a copy with the open-now constraint set.
func (s State) WithOpenNow(v bool) State {
	s.openNow = v
	return s
}

// WithWheelchairAccessible returns a copy with the accessibility constraint set.
func (s State) WithWheelchairAccessible(v bool) State {
	s.wheelchair = v
	return s
}

// WithFreeParking returns a copy with the free-parking constraint set.
func (s State) WithFreeParking(v bool) State {
	s.freeParking = v
	return s
}

// WithStates returns a copy allowing only the given state codes.
// Codes are upper-cased and de-duplicated; blanks are dropped.
func (s State) WithStates(codes ...string) State {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	s.states = slices.Compact(out)
	return s
}

// WithSort returns a copy with the sort key and direction set.
func (s State) WithSort(k SortKey, d Direction) State {
	s.sortKey = k
	s.direction = d
	return s
}

// WithOrigin returns a copy with the reference point for distance sorting.
func (s State) WithOrigin(p geo.Point) State {
	s.origin = &p
	return s
}

// WithLimit returns a copy with the result limit set (0 = unlimited).
func (s State) WithLimit(n int) State {
	s.limit = max(n, 0)
	return s
}

// WithoutAmenities returns a copy without rating, open-now, accessibility and parking constraints.
func (s State) WithoutAmenities() State {
	s.minRating = 0
	s.openNow = false
	s.wheelchair = false
	s.freeParking = false
	return s
}

// WithoutQuery returns a copy without the free-text query.
func (s State) WithoutQuery() State {
	s.query = ""
	return s
}

// WithoutStates returns a copy without the allowed-state constraint.
func (s State) WithoutStates() State {
	s.states = nil
	return s
}

// Validate checks enum fields and bounds.
func (s State) Validate() error {
	if !s.sortKey.IsValid() {
		return fmt.Errorf("invalid sort key: %q", s.sortKey)
	}
	if !s.direction.IsValid() {
		return fmt.Errorf("invalid sort direction: %q", s.direction)
	}
	if len(s.states) > MaxStates {
		return fmt.Errorf("too many states (max %d)", MaxStates)
	}
	if s.sortKey == SortDistance && s.origin == nil {
		return fmt.Errorf("distance sort requires an origin")
	}
	if s.origin != nil && !s.origin.Valid() {
		return fmt.Errorf("origin out of range")
	}
	return nil
}

// MinRating returns the minimum rating (0 = no constraint).
func (s State) MinRating() float64 { return s.minRating }

// OpenNow reports whether only open clinics are wanted.
func (s State) OpenNow() bool { return s.openNow }

// WheelchairAccessible reports whether only accessible clinics are wanted.
func (s State) WheelchairAccessible() bool { return s.wheelchair }

// FreeParking reports whether only clinics with free parking are wanted.
func (s State) FreeParking() bool { return s.freeParking }

// States returns a copy of the allowed state codes.
func (s State) States() []string { return slices.Clone(s.states) }

// AllowsState reports whether code passes the state constraint.
func (s State) AllowsState(code string) bool {
	if len(s.states) == 0 {
		return true
	}
	_, found := slices.BinarySearch(s.states, strings.ToUpper(strings.TrimSpace(code)))
	return found
}

// Query returns the raw free-text query.
func (s State) Query() string { return s.query }

// Sort returns the requested sort key and direction as given.
func (s State) Sort() (SortKey, Direction) { return s.sortKey, s.direction }

// Origin returns the distance reference point, if any.
func (s State) Origin() (geo.Point, bool) {
	if s.origin == nil {
		return geo.Point{}, false
	}
	return *s.origin, true
}

// Limit returns the result limit (0 = unlimited).
func (s State) Limit() int { return s.limit }

// HasAmenities reports whether any rating/open-now/accessibility/parking constraint is set.
func (s State) HasAmenities() bool {
	return s.minRating > 0 || s.openNow || s.wheelchair || s.freeParking
}

// EffectiveSort resolves defaults: relevance when a text query is active, rating otherwise.
// Relevance, rating and reviews default to descending; name and distance to ascending.
func (s State) EffectiveSort(hasQuery bool) (SortKey, Direction) {
	k := s.sortKey
	if k == SortDefault || (k == SortRelevance && !hasQuery) {
		if hasQuery {
			k = SortRelevance
		} else {
			k = SortRating
		}
	}
	d := s.direction
	if d == DirectionDefault {
		switch k {
		case SortName, SortDistance:
			d = Asc
		default:
			d = Desc
		}
	}
	return k, d
}
