package core

import (
	"math"

	"amenityfinder/internal/domain/model"
)

const earthRadiusMeters = 6371000

// Haversine returns the great-circle distance between two points in meters.
func Haversine(a, b model.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

// Centroid averages a set of nodes. Good enough for collapsing small way
// polygons to a routing target.
func Centroid(nodes []model.GraphNode) model.Coordinate {
	if len(nodes) == 0 {
		return model.Coordinate{}
	}
	var lat, lon float64
	for _, n := range nodes {
		lat += n.Lat
		lon += n.Lon
	}
	count := float64(len(nodes))
	return model.Coordinate{Lat: lat / count, Lon: lon / count}
}
