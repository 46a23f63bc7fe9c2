package model

// GeoJSON shapes consumed by the embedded map page. Coordinates follow the
// GeoJSON convention of [lon, lat].

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

func NewFeatureCollection() FeatureCollection {
	return FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

func NewPointFeature(c Coordinate, props map[string]any) Feature {
	return Feature{
		Type:       "Feature",
		Properties: props,
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{c.Lon, c.Lat},
		},
	}
}

func NewLineStringFeature(points []Coordinate, props map[string]any) Feature {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lon, p.Lat})
	}
	return Feature{
		Type:       "Feature",
		Properties: props,
		Geometry: Geometry{
			Type:        "LineString",
			Coordinates: coords,
		},
	}
}
