package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewPoint validates latitude/longitude and returns a Point.
func NewPoint(lat, lng float64) (Point, error) {
	if !ValidateCoordinates(lat, lng) {
		return Point{}, fmt.Errorf("coordinates out of range: lat=%g lng=%g", lat, lng)
	}
	return Point{Lat: lat, Lng: lng}, nil
}

// Valid reports whether the point lies within the legal coordinate range.
func (p Point) Valid() bool {
	return ValidateCoordinates(p.Lat, p.Lng)
}

// DistanceTo returns the great-circle distance to q in meters.
func (p Point) DistanceTo(q Point) float64 {
	return Haversine(p.Lat, p.Lng, q.Lat, q.Lng)
}

// Haversine returns the great-circle distance in meters between two points
// specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
