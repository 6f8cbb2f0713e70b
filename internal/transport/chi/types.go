package chi

// Location is a WGS84 coordinate.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ClinicItem is one clinic in a search response.
type ClinicItem struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Address              string    `json:"address,omitempty"`
	City                 string    `json:"city,omitempty"`
	State                string    `json:"state,omitempty"`
	Category             string    `json:"category,omitempty"`
	Tags                 []string  `json:"tags,omitempty"`
	Services             []string  `json:"services,omitempty"`
	Description          *string   `json:"description,omitempty"`
	Rating               *float64  `json:"rating,omitempty"`
	ReviewCount          *int      `json:"review_count,omitempty"`
	Status               string    `json:"status,omitempty"`
	Location             *Location `json:"location,omitempty"`
	OpenNow              *bool     `json:"open_now,omitempty"`
	WheelchairAccessible *bool     `json:"wheelchair_accessible,omitempty"`
	FreeParking          *bool     `json:"free_parking,omitempty"`
	Score                float64   `json:"score"`
	DistanceKm           *float64  `json:"distance_km,omitempty"`
}

// SearchResponse is the body of GET /v1/clinics/search.
type SearchResponse struct {
	Items                []ClinicItem `json:"items"`
	Total                int          `json:"total"`
	FellBackToUnfiltered bool         `json:"fell_back_to_unfiltered"`
	Terms                []string     `json:"terms"`
}

// NationwideResponse is the body of GET /v1/clinics/nationwide.
// FellBackToUnfiltered is set when nothing matched the query and the
// items are unranked clinics instead.
type NationwideResponse struct {
	Items                []ClinicItem `json:"items"`
	Total                int          `json:"total"`
	FellBackToUnfiltered bool         `json:"fell_back_to_unfiltered"`
}

// ExpandResponse is the body of GET /v1/search/expand.
type ExpandResponse struct {
	Terms []string `json:"terms"`
}

// SuggestResponse is the body of GET /v1/search/suggest.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version,omitempty"`
}
