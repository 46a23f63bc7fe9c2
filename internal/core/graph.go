package core

import (
	"amenityfinder/internal/domain/model"
)

type edge struct {
	to     int64
	length float64
}

// Graph is a walking street network. Edges are bidirectional: oneway
// restrictions apply to vehicles, not pedestrians.
type Graph struct {
	nodes map[int64]model.Coordinate
	adj   map[int64][]edge
}

// BuildWalkGraph links consecutive node pairs of each way into weighted
// edges. Node coordinates are taken from the way members themselves, so the
// Overpass response must include resolved geometry.
func BuildWalkGraph(ways []model.Way) *Graph {
	g := &Graph{
		nodes: make(map[int64]model.Coordinate),
		adj:   make(map[int64][]edge),
	}
	for _, way := range ways {
		for i, n := range way.Nodes {
			g.nodes[n.ID] = model.Coordinate{Lat: n.Lat, Lon: n.Lon}
			if i == 0 {
				continue
			}
			prev := way.Nodes[i-1]
			length := Haversine(
				model.Coordinate{Lat: prev.Lat, Lon: prev.Lon},
				model.Coordinate{Lat: n.Lat, Lon: n.Lon},
			)
			g.adj[prev.ID] = append(g.adj[prev.ID], edge{to: n.ID, length: length})
			g.adj[n.ID] = append(g.adj[n.ID], edge{to: prev.ID, length: length})
		}
	}
	return g
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Node returns the coordinates of a node, if present.
func (g *Graph) Node(id int64) (model.Coordinate, bool) {
	c, ok := g.nodes[id]
	return c, ok
}
