package core

import (
	"github.com/dhconnelly/rtreego"

	"amenityfinder/internal/domain/model"
)

// maxSnapMeters bounds how far a routing target may be from its snapped
// graph node. Beyond this the point is effectively off the walking network.
const maxSnapMeters = 500

type nodeEntry struct {
	id   int64
	loc  model.Coordinate
	rect *rtreego.Rect
}

func (n *nodeEntry) Bounds() *rtreego.Rect {
	return n.rect
}

// NodeIndex answers nearest-graph-node queries with an r-tree over node
// coordinates. Degree-space distance is fine at neighborhood scale; the
// snap cutoff is still checked with haversine.
type NodeIndex struct {
	tree *rtreego.Rtree
}

func NewNodeIndex(g *Graph) *NodeIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for id, loc := range g.nodes {
		entry := &nodeEntry{
			id:   id,
			loc:  loc,
			rect: rtreego.Point{loc.Lon, loc.Lat}.ToRect(1e-7),
		}
		tree.Insert(entry)
	}
	return &NodeIndex{tree: tree}
}

// Nearest snaps a point to the closest graph node. The second return is
// false when the index is empty or the closest node is farther than
// maxSnapMeters away.
func (ix *NodeIndex) Nearest(p model.Coordinate) (int64, bool) {
	found := ix.tree.NearestNeighbor(rtreego.Point{p.Lon, p.Lat})
	if found == nil {
		return 0, false
	}
	entry := found.(*nodeEntry)
	if Haversine(p, entry.loc) > maxSnapMeters {
		return 0, false
	}
	return entry.id, true
}
