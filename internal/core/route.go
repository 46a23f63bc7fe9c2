package core

import (
	"container/heap"
	"math"

	"amenityfinder/internal/domain/model"
)

// walkSpeedMetersPerSec is the usual pedestrian planning speed, 5 km/h.
const walkSpeedMetersPerSec = 5000.0 / 3600.0

// Route is a shortest walking path between two graph nodes.
type Route struct {
	Points          []model.Coordinate
	LengthMeters    float64
	DurationSeconds float64
	Found           bool
}

type queueItem struct {
	node  int64
	dist  float64
	index int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].dist < pq[j].dist }

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra from orig to dest weighted by edge length.
// When dest is unreachable the result has Found=false and an infinite
// length, mirroring how the table reports unroutable amenities.
func ShortestPath(g *Graph, orig, dest int64) Route {
	if _, ok := g.nodes[orig]; !ok {
		return unroutable()
	}
	if _, ok := g.nodes[dest]; !ok {
		return unroutable()
	}

	dist := map[int64]float64{orig: 0}
	prev := map[int64]int64{}
	visited := map[int64]bool{}

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &queueItem{node: orig, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*queueItem)
		if visited[item.node] {
			continue
		}
		visited[item.node] = true
		if item.node == dest {
			break
		}
		for _, e := range g.adj[item.node] {
			next := item.dist + e.length
			if d, seen := dist[e.to]; !seen || next < d {
				dist[e.to] = next
				prev[e.to] = item.node
				heap.Push(pq, &queueItem{node: e.to, dist: next})
			}
		}
	}

	total, ok := dist[dest]
	if !ok || !visited[dest] {
		return unroutable()
	}

	var order []int64
	for at := dest; ; {
		order = append(order, at)
		if at == orig {
			break
		}
		at = prev[at]
	}

	points := make([]model.Coordinate, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		points = append(points, g.nodes[order[i]])
	}

	return Route{
		Points:          points,
		LengthMeters:    total,
		DurationSeconds: total / walkSpeedMetersPerSec,
		Found:           true,
	}
}

func unroutable() Route {
	return Route{LengthMeters: math.Inf(1), DurationSeconds: math.Inf(1)}
}
