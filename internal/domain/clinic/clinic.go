// Package clinic defines the clinic record as delivered by the record store.
//
// Every optional attribute is a nil-able field so consumers can tell "absent"
// from "zero". Absent fields only shrink the searchable surface of a record.
package clinic

import (
	"fmt"
	"regexp"

	"github.com/kailas-cloud/clinicdex/internal/domain/geo"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Rating bounds.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Status is the operational status reported for a clinic.
type Status string

// Status values.
const (
	StatusUnknown           Status = ""
	StatusOperational       Status = "OPERATIONAL"
	StatusClosedTemporarily Status = "CLOSED_TEMPORARILY"
	StatusClosedPermanently Status = "CLOSED_PERMANENTLY"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnknown, StatusOperational, StatusClosedTemporarily, StatusClosedPermanently:
		return true
	}
	return false
}

// Amenities holds optional accessibility attributes.
type Amenities struct {
	WheelchairAccessible *bool `json:"wheelchair_accessible,omitempty"`
	FreeParking          *bool `json:"free_parking,omitempty"`
}

// Record is a read-only clinic row. ID uniquely identifies a record.
type Record struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	State       string     `json:"state,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Services    []string   `json:"services,omitempty"`
	Description *string    `json:"description,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	ReviewCount *int       `json:"review_count,omitempty"`
	Status      Status     `json:"status,omitempty"`
	Location    *geo.Point `json:"location,omitempty"`
	OpenNow     *bool      `json:"open_now,omitempty"`
	Amenities   Amenities  `json:"amenities"`
}

// Validate checks the invariants a record must satisfy before it is stored.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("clinic ID is required")
	}
	if len(r.ID) > 256 {
		return fmt.Errorf("clinic ID too long (max 256)")
	}
	if !idRegex.MatchString(r.ID) {
		return fmt.Errorf("clinic ID must be alphanumeric with underscores and hyphens")
	}
	if r.Name == "" {
		return fmt.Errorf("clinic %q: name is required", r.ID)
	}
	if r.Rating != nil && (*r.Rating < MinRating || *r.Rating > MaxRating) {
		return fmt.Errorf("clinic %q: rating must be between %g and %g", r.ID, MinRating, MaxRating)
	}
	if r.ReviewCount != nil && *r.ReviewCount < 0 {
		return fmt.Errorf("clinic %q: review_count must be non-negative", r.ID)
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("clinic %q: invalid status %q", r.ID, r.Status)
	}
	if r.Location != nil && !r.Location.Valid() {
		return fmt.Errorf("clinic %q: location out of range", r.ID)
	}
	return nil
}

// RatingValue returns the rating or 0 when absent.
func (r *Record) RatingValue() float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// Reviews returns the review count or 0 when absent.
func (r *Record) Reviews() int {
	if r.ReviewCount == nil {
		return 0
	}
	return *r.ReviewCount
}

// DescriptionText returns the description or "" when absent.
func (r *Record) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// IsOperational reports whether the clinic is known to be operating.
func (r *Record) IsOperational() bool { return r.Status == StatusOperational }

// IsOpenNow reports whether the clinic is known to be open. Unknown counts as not open.
func (r *Record) IsOpenNow() bool { return r.OpenNow != nil && *r.OpenNow }

// IsWheelchairAccessible reports a known-true wheelchair accessibility flag.
func (r *Record) IsWheelchairAccessible() bool {
	return r.Amenities.WheelchairAccessible != nil && *r.Amenities.WheelchairAccessible
}

// HasFreeParking reports a known-true free parking flag.
func (r *Record) HasFreeParking() bool {
	return r.Amenities.FreeParking != nil && *r.Amenities.FreeParking
}
