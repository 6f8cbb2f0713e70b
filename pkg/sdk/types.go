package clinicdex

import (
	domclinic "github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/geo"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/filter"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/lexicon"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/clinicdex/internal/usecase/search"
)

// Record is a clinic row. Optional attributes are nil when unknown.
type Record = domclinic.Record

// Amenities holds optional accessibility attributes of a Record.
type Amenities = domclinic.Amenities

// ClinicStatus is the business status of a clinic.
type ClinicStatus = domclinic.Status

// Point is a WGS84 coordinate in degrees.
type Point = geo.Point

// Criteria narrow a record store fetch. They are hints: results are
// always filtered again in-process.
type Criteria = domclinic.Criteria

// Filter is the immutable filter state of a search. Build one with NewFilter
// and the With* methods.
type Filter = filter.State

// SortKey selects the ordering of results.
type SortKey = filter.SortKey

// Direction is a sort direction.
type Direction = filter.Direction

// Outcome is the assembled result of a search.
type Outcome = result.Outcome

// ScoredResult is one record in an Outcome.
type ScoredResult = result.Scored

// Lexicon holds misspelling, synonym and phrase tables.
type Lexicon = lexicon.Lexicon

// Session keeps the candidate set and filter state of one interactive caller.
type Session = searchuc.Session

// SessionView is a snapshot of a Session.
type SessionView = searchuc.View

// Sort keys.
const (
	SortRelevance = filter.SortRelevance
	SortRating    = filter.SortRating
	SortReviews   = filter.SortReviews
	SortName      = filter.SortName
	SortDistance  = filter.SortDistance
)

// Sort directions.
const (
	Asc  = filter.Asc
	Desc = filter.Desc
)

// NewFilter creates a filter state for the free-text query q.
func NewFilter(q string) Filter { return filter.New(q) }

// NewPoint validates latitude/longitude and returns a Point.
func NewPoint(lat, lng float64) (Point, error) { return geo.NewPoint(lat, lng) }

// LoadLexicon returns the built-in lexicon extended with the YAML file at path.
// An empty path returns the built-in lexicon.
func LoadLexicon(path string) (*Lexicon, error) { return lexicon.LoadFile(path) }

// BatchResult is the outcome of one item in a batch operation.
type BatchResult struct {
	ID  string
	OK  bool
	Err error
}

// BatchResponse aggregates the outcome of UpsertBatch.
type BatchResponse struct {
	Succeeded int
	Failed    int
	Results   []BatchResult
}
