package model

import (
	"encoding/json"
	"time"
)

// DefaultLocation is used when a property carries no usable coordinates.
// Matches the listing backend's home market (Kathmandu).
var DefaultLocation = Coordinate{Lat: 27.7172, Lon: 85.3240}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PropertySummary is one entry of the listing backend's all-properties feed.
type PropertySummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// PropertyDetail is the resolved detail record for a single property.
// Location falls back to DefaultLocation when the backend value is missing
// or unparseable.
type PropertyDetail struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Thumbnail  string     `json:"thumbnail,omitempty"`
	Location   Coordinate `json:"location"`
	ListingURL string     `json:"listing_url"`
}

// InsightsRequest describes one amenity lookup around a point.
type InsightsRequest struct {
	Center       Coordinate
	RadiusMeters float64
	AmenityTypes []string
	PropertyID   int64 // 0 when the lookup is not tied to a listing
}

// FacilityRow is one line of the results table. Distance and walk time are
// nil when the amenity is unroutable.
type FacilityRow struct {
	Amenity         string   `json:"amenity"`
	Name            string   `json:"name"`
	DistanceMeters  *float64 `json:"distance_meters"`
	WalkTimeSeconds *float64 `json:"walk_time_seconds"`
	CountInRadius   int      `json:"count_in_radius"`
}

// InsightsResult bundles everything the map page needs for one lookup.
type InsightsResult struct {
	Center       Coordinate        `json:"center"`
	RadiusMeters float64           `json:"radius_meters"`
	Overlay      FeatureCollection `json:"overlay"`
	Table        []FacilityRow     `json:"table"`
	Counts       map[string]int    `json:"counts"`
}

// SearchRecord is a persisted insights lookup.
type SearchRecord struct {
	ID           int64           `db:"id" json:"id"`
	PropertyID   int64           `db:"property_id" json:"property_id"`
	Lat          float64         `db:"lat" json:"lat"`
	Lon          float64         `db:"lon" json:"lon"`
	RadiusMeters float64         `db:"radius_meters" json:"radius_meters"`
	Counts       json.RawMessage `db:"counts" json:"counts"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}
