package clinic

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/clinicdex/internal/domain/geo"
)

// MaxRadiusKm bounds the geo predicate of a fetch.
const MaxRadiusKm = 500.0

// Criteria are hints for narrowing the candidate set fetched from the
// record store. A store may ignore any of them; results stay correct
// because filtering and scoring happen after the fetch.
type Criteria struct {
	State    string
	City     string
	Near     *geo.Point
	RadiusKm float64
	// NameHint is free text matched against name token prefixes and the
	// exact city.
	NameHint string
	Limit    int
}

// IsEmpty reports whether no narrowing hint is set.
func (c Criteria) IsEmpty() bool {
	return c.State == "" && c.City == "" && c.Near == nil && c.NameHint == ""
}

// Normalized returns a copy with trimmed, canonically cased hints.
func (c Criteria) Normalized() Criteria {
	c.State = strings.ToUpper(strings.TrimSpace(c.State))
	c.City = strings.TrimSpace(c.City)
	c.NameHint = strings.TrimSpace(c.NameHint)
	if c.Near == nil {
		c.RadiusKm = 0
	}
	return c
}

// Validate checks coordinate and radius bounds.
func (c Criteria) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}
	if c.Near == nil {
		return nil
	}
	if !c.Near.Valid() {
		return fmt.Errorf("coordinates out of range")
	}
	if c.RadiusKm <= 0 || c.RadiusKm > MaxRadiusKm {
		return fmt.Errorf("radius_km must be in (0, %g]", MaxRadiusKm)
	}
	return nil
}

// FetchResult is what the record store returns for one fetch.
// Total may exceed len(Records) when the store truncated the set.
type FetchResult struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}
