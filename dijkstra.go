package geodesic

import (
	"container/heap"
	"fmt"
	"math"
)

// Dijkstra computes shortest edge paths over the vertex graph of a
// mesh, weighting each edge by its intrinsic length. It is the
// bootstrap for FlipOut: any edge path between the endpoints works,
// but a short one converges in fewer flips.
type Dijkstra struct {
	mesh *Mesh
}

// NewDijkstra creates a shortest-path solver over m.
func NewDijkstra(m *Mesh) *Dijkstra {
	return &Dijkstra{mesh: m}
}

// ShortestPathTree is the full result of a Dijkstra run: per-vertex
// distances (math.Inf(1) when unreachable) and parent halfedges
// (the halfedge walked into the vertex; NoHalfedge at sources and
// unreached vertices).
type ShortestPathTree struct {
	Distances     []float64
	Parents       []HalfedgeID
	TargetReached bool
}

// pqItem is a heap entry. Stale entries (dist beyond the settled
// distance) are skipped on pop rather than decreased in place.
type pqItem struct {
	v    VertexID
	dist float64
}

type vertexQueue []pqItem

func (q vertexQueue) Len() int            { return len(q) }
func (q vertexQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q vertexQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *vertexQueue) Push(x any) { *q = append(*q, x.(pqItem)) }
func (q *vertexQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// ComputeShortestPathTree runs Dijkstra from the given sources (all at
// distance 0). Pass NoVertex as target to explore the whole component;
// otherwise the search stops as soon as the target is settled.
func (d *Dijkstra) ComputeShortestPathTree(sources []VertexID, target VertexID) *ShortestPathTree {
	m := d.mesh
	tree := &ShortestPathTree{
		Distances: make([]float64, m.NumVertices()),
		Parents:   make([]HalfedgeID, m.NumVertices()),
	}
	for i := range tree.Distances {
		tree.Distances[i] = math.Inf(1)
		tree.Parents[i] = NoHalfedge
	}
	settled := make([]bool, m.NumVertices())

	q := make(vertexQueue, 0, len(sources))
	for _, s := range sources {
		tree.Distances[s] = 0
		q = append(q, pqItem{v: s, dist: 0})
	}
	heap.Init(&q)

	for q.Len() > 0 {
		it := heap.Pop(&q).(pqItem)
		if settled[it.v] {
			continue
		}
		settled[it.v] = true
		if it.v == target {
			tree.TargetReached = true
			return tree
		}
		for _, h := range m.OutgoingHalfedges(it.v) {
			nb := m.Target(h)
			alt := it.dist + m.EdgeLength(m.Edge(h))
			if alt < tree.Distances[nb] {
				tree.Distances[nb] = alt
				tree.Parents[nb] = h
				heap.Push(&q, pqItem{v: nb, dist: alt})
			}
		}
	}
	if target != NoVertex {
		tree.TargetReached = settled[target]
	}
	return tree
}

// ComputePath returns the shortest edge path from src to tgt, or nil
// when tgt is unreachable or src == tgt (the trivial empty path is
// rejected).
func (d *Dijkstra) ComputePath(src, tgt VertexID) *GeodesicPath {
	if src == tgt {
		return nil
	}
	tree := d.ComputeShortestPathTree([]VertexID{src}, tgt)
	if !tree.TargetReached {
		return nil
	}
	var edges []EdgeID
	for v := tgt; v != src; {
		h := tree.Parents[v]
		edges = append(edges, d.mesh.Edge(h))
		v = d.mesh.Source(h)
	}
	// Backtracking produced tgt-to-src order.
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	p, err := NewGeodesicPath(d.mesh, edges, src, tgt)
	if err != nil {
		return nil
	}
	return p
}

// ComputePiecewisePath computes one shortest path per consecutive
// waypoint pair. Fails with ErrPrecondition for fewer than two
// waypoints and with ErrNoPath when any segment is unreachable
// (including a repeated waypoint, whose segment would be empty).
func (d *Dijkstra) ComputePiecewisePath(waypoints []VertexID) ([]*GeodesicPath, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("piecewise path needs at least 2 waypoints, got %d: %w", len(waypoints), ErrPrecondition)
	}
	paths := make([]*GeodesicPath, 0, len(waypoints)-1)
	for i := 0; i+1 < len(waypoints); i++ {
		p := d.ComputePath(waypoints[i], waypoints[i+1])
		if p == nil {
			return nil, fmt.Errorf("segment %d (%d -> %d): %w", i, waypoints[i], waypoints[i+1], ErrNoPath)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
