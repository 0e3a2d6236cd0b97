package domain

import (
	"time"
)

// Coordinate bounds in decimal degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Address represents a stored address record with its geographic coordinates.
type Address struct {
	ID        string    `json:"id"`
	Label     string    `json:"label,omitempty"`
	Street    string    `json:"street"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Country   string    `json:"country,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NearbyAddress pairs an address with its great-circle distance from the
// center of a proximity query.
type NearbyAddress struct {
	Address
	DistanceKm float64 `json:"distance_km"`
}

// ValidCoordinates reports whether the pair is within range.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= MinLatitude && lat <= MaxLatitude &&
		lon >= MinLongitude && lon <= MaxLongitude
}
