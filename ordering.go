package geodesic

import "math"

// orderedEdge is a waypoint edge with a chosen traversal orientation.
type orderedEdge struct {
	edge  EdgeID
	entry VertexID
	exit  VertexID
}

// edgeOrdering is the result of the waypoint-edge ordering optimiser:
// a cyclic traversal order with orientations, the waypoint edges it
// could not place, and the Dijkstra-estimated tour length.
type edgeOrdering struct {
	edges     []orderedEdge
	skipped   []EdgeID
	estimated float64
}

// vertices returns the tour's vertex list, with the first vertex
// repeated at the end to close the loop.
func (o *edgeOrdering) vertices() []VertexID {
	verts := make([]VertexID, 0, 2*len(o.edges)+1)
	for _, oe := range o.edges {
		verts = append(verts, oe.entry, oe.exit)
	}
	if len(o.edges) > 0 {
		verts = append(verts, o.edges[0].entry)
	}
	return verts
}

// orderEdgeWaypoints produces a cyclic ordering of waypoint edges that
// yields a short initial loop. FlipOut can only shorten, so a good
// initial ordering matters.
//
// The heuristic is TSP-style: a Dijkstra distance matrix between all
// candidate endpoints, greedy nearest-neighbour construction, and
// optional 2-opt refinement. The self-crossing guard is conservative:
// a candidate vertex that already appears in the partial ordering is
// rejected, and edges that cannot be placed end up in skipped.
func orderEdgeWaypoints(m *Mesh, edges []EdgeID, oo OrderingOptions, optimize bool) *edgeOrdering {
	d := NewDijkstra(m)

	// One full Dijkstra tree per distinct candidate endpoint.
	trees := make(map[VertexID]*ShortestPathTree)
	for _, e := range edges {
		a, b := m.EdgeVertices(e)
		for _, v := range [2]VertexID{a, b} {
			if _, ok := trees[v]; !ok {
				trees[v] = d.ComputeShortestPathTree([]VertexID{v}, NoVertex)
			}
		}
	}
	dist := func(from, to VertexID) float64 {
		return trees[from].Distances[to]
	}

	ordering := &edgeOrdering{}

	if !optimize || !oo.UseNearestNeighbor {
		// Keep the given order; only pick orientations greedily.
		var exit VertexID = NoVertex
		for _, e := range edges {
			a, b := m.EdgeVertices(e)
			oe := orderedEdge{edge: e, entry: a, exit: b}
			if exit != NoVertex && dist(exit, b) < dist(exit, a) {
				oe.entry, oe.exit = b, a
			}
			ordering.edges = append(ordering.edges, oe)
			exit = oe.exit
		}
	} else {
		used := make(map[VertexID]bool)
		a0, b0 := m.EdgeVertices(edges[0])
		ordering.edges = append(ordering.edges, orderedEdge{edge: edges[0], entry: a0, exit: b0})
		used[a0], used[b0] = true, true

		remaining := append([]EdgeID(nil), edges[1:]...)
		for len(remaining) > 0 {
			cur := ordering.edges[len(ordering.edges)-1].exit
			bestIdx := -1
			var best orderedEdge
			bestDist := math.Inf(1)
			for i, e := range remaining {
				a, b := m.EdgeVertices(e)
				for _, oe := range [2]orderedEdge{{edge: e, entry: a, exit: b}, {edge: e, entry: b, exit: a}} {
					if oo.SkipCrossingEdges && (used[oe.entry] || used[oe.exit]) {
						continue
					}
					if dc := dist(cur, oe.entry); dc < bestDist {
						bestIdx, best, bestDist = i, oe, dc
					}
				}
			}
			if bestIdx < 0 {
				// Nothing placeable: everything left is skipped.
				ordering.skipped = append(ordering.skipped, remaining...)
				break
			}
			ordering.edges = append(ordering.edges, best)
			used[best.entry], used[best.exit] = true, true
			remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		}
	}

	if optimize && oo.Use2Opt && len(ordering.edges) > 3 {
		twoOpt(ordering, dist, oo.Max2OptIterations)
	}

	ordering.estimated = tourCost(ordering.edges, dist)
	for _, oe := range ordering.edges {
		ordering.estimated += m.EdgeLength(oe.edge)
	}
	return ordering
}

// tourCost sums the Dijkstra distances between consecutive edge units
// of a cyclic tour (exit of one to entry of the next).
func tourCost(seq []orderedEdge, dist func(VertexID, VertexID) float64) float64 {
	cost := 0.0
	for i := range seq {
		next := seq[(i+1)%len(seq)]
		cost += dist(seq[i].exit, next.entry)
	}
	return cost
}

// twoOpt refines a tour by reversing segments (which also flips the
// orientation of every unit in the segment) while that strictly
// shortens it, bounded by maxPasses improvement passes.
func twoOpt(o *edgeOrdering, dist func(VertexID, VertexID) float64, maxPasses int) {
	cost := tourCost(o.edges, dist)
	for pass := 0; pass < maxPasses; pass++ {
		improved := false
		for i := 1; i < len(o.edges)-1; i++ {
			for j := i + 1; j < len(o.edges); j++ {
				candidate := reverseSegment(o.edges, i, j)
				if c := tourCost(candidate, dist); c < cost-1e-12 {
					o.edges = candidate
					cost = c
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
}

// reverseSegment returns a copy of seq with units [i, j] reversed and
// their orientations flipped.
func reverseSegment(seq []orderedEdge, i, j int) []orderedEdge {
	out := append([]orderedEdge(nil), seq...)
	for l, r := i, j; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	for k := i; k <= j; k++ {
		out[k].entry, out[k].exit = out[k].exit, out[k].entry
	}
	return out
}
