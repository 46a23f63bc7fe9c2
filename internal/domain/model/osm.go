package model

// Amenity is a point of interest pulled from OpenStreetMap. Way amenities
// are collapsed to the centroid of their member nodes.
type Amenity struct {
	ID       int64             `json:"id"`
	Type     string            `json:"type"` // "node" or "way"
	Kind     string            `json:"kind"` // value of the amenity tag
	Name     string            `json:"name"`
	Location Coordinate        `json:"location"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// GraphNode is one street-network node with resolved coordinates.
type GraphNode struct {
	ID  int64
	Lat float64
	Lon float64
}

// Way is a foot-traversable street segment. Consecutive node pairs become
// graph edges.
type Way struct {
	ID    int64
	Tags  map[string]string
	Nodes []GraphNode
}
