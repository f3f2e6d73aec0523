package geodesic

import (
	"fmt"
	"math"
)

// LoopNetwork computes a closed geodesic loop through a set of
// waypoint edges: order the edges into a short tour, connect them with
// Dijkstra segments, straighten the result with FlipOut (every vertex
// of a loop is interior, the base too), and segment the mesh faces the
// loop encloses.
type LoopNetwork struct {
	mesh      *Mesh
	signpost  *SignpostIndex
	waypoints []EdgeID
	opts      networkOptions

	loop    *GeodesicLoop
	skipped []EdgeID
}

// LoopStats summarizes a Compute run.
type LoopStats struct {
	Iterations    int
	Converged     bool
	InitialLength float64
	FinalLength   float64
	// EstimatedOrderLength is the Dijkstra-estimated tour length from
	// the ordering stage, before any shortening.
	EstimatedOrderLength float64
	SkippedEdges         []EdgeID
}

// LoopResult bundles the computed loop, the face segmentation it
// induces, and run statistics.
type LoopResult struct {
	Loop         *GeodesicLoop
	Segmentation *Segmentation
	Stats        LoopStats
}

// NewLoopNetworkFromEdgeWaypoints creates a loop network over the
// given waypoint edges. The loop itself is built by Compute.
func NewLoopNetworkFromEdgeWaypoints(m *Mesh, edges []EdgeID, opts ...NetworkOption) (*LoopNetwork, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("loop needs at least one waypoint edge: %w", ErrPrecondition)
	}
	for _, e := range edges {
		if e < 0 || int(e) >= m.NumEdges() {
			return nil, fmt.Errorf("waypoint edge %d out of range [0, %d): %w", e, m.NumEdges(), ErrMalformedInput)
		}
	}
	o := defaultNetworkOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &LoopNetwork{
		mesh:      m,
		waypoints: append([]EdgeID(nil), edges...),
		opts:      o,
	}, nil
}

// Mesh returns the mesh the network operates on.
func (ln *LoopNetwork) Mesh() *Mesh { return ln.mesh }

// Loop returns the computed loop, or nil before Compute.
func (ln *LoopNetwork) Loop() *GeodesicLoop { return ln.loop }

// SkippedEdges returns the waypoint edges the ordering could not
// place, or nil before Compute.
func (ln *LoopNetwork) SkippedEdges() []EdgeID { return ln.skipped }

// Compute builds the initial loop through the waypoint edges,
// straightens it, and classifies the faces.
//
// Fails with ErrTooManySkipped when the ordering skips more edges than
// the options allow, ErrNoPath when two consecutive waypoint edges
// cannot be connected, and ErrPrecondition when fewer than three loop
// edges result.
func (ln *LoopNetwork) Compute() (*LoopResult, error) {
	m := ln.mesh

	ordering := orderEdgeWaypoints(m, ln.waypoints, ln.opts.ordering, ln.opts.optimizeOrder)
	ln.skipped = ordering.skipped
	if len(ordering.skipped) > 0 && ln.opts.requireAllEdges {
		return nil, fmt.Errorf("ordering skipped %d waypoint edges with requireAllEdges set: %w", len(ordering.skipped), ErrTooManySkipped)
	}
	if len(ordering.skipped) > ln.opts.maxSkippedEdges {
		return nil, fmt.Errorf("ordering skipped %d waypoint edges, at most %d allowed: %w", len(ordering.skipped), ln.opts.maxSkippedEdges, ErrTooManySkipped)
	}

	// Assemble the loop: each waypoint edge traversed entry to exit,
	// consecutive edges connected by shortest paths, cyclically.
	d := NewDijkstra(m)
	var loopEdges []EdgeID
	for i, oe := range ordering.edges {
		loopEdges = append(loopEdges, oe.edge)
		next := ordering.edges[(i+1)%len(ordering.edges)]
		if oe.exit == next.entry {
			continue
		}
		seg := d.ComputePath(oe.exit, next.entry)
		if seg == nil {
			return nil, fmt.Errorf("connecting waypoint edge %d to %d: %w", oe.edge, next.edge, ErrNoPath)
		}
		loopEdges = append(loopEdges, seg.Edges()...)
	}
	if len(loopEdges) < 3 {
		return nil, fmt.Errorf("waypoint tour yields %d loop edges, need at least 3: %w", len(loopEdges), ErrPrecondition)
	}

	loop, err := NewGeodesicLoop(m, loopEdges, ordering.edges[0].entry)
	if err != nil {
		return nil, err
	}
	ln.loop = loop
	ln.signpost = NewSignpostIndex(m)
	ln.refreshEdgeFlags()

	// Pin the waypoint edges: their endpoints are never flexible
	// joints, so shortening cannot pull the loop off them.
	for _, oe := range ordering.edges {
		m.SetMarked(oe.entry, true)
		m.SetMarked(oe.exit, true)
	}

	initial := loop.Length()
	iterations, converged := ln.shorten()
	loop.UpdateLength()

	return &LoopResult{
		Loop:         loop,
		Segmentation: NewSegmentation(m, loop),
		Stats: LoopStats{
			Iterations:           iterations,
			Converged:            converged,
			InitialLength:        initial,
			FinalLength:          loop.Length(),
			EstimatedOrderLength: ordering.estimated,
			SkippedEdges:         ordering.skipped,
		},
	}, nil
}

// LoopPolyline3D returns the loop's extrinsic polyline with the first
// point repeated at the end to close it, or nil before Compute.
func (ln *LoopNetwork) LoopPolyline3D() []Point3 {
	if ln.loop == nil {
		return nil
	}
	verts := ln.loop.Vertices()
	line := make([]Point3, 0, len(verts)+1)
	for _, v := range verts {
		line = append(line, ln.mesh.Position(v))
	}
	line = append(line, line[0])
	return line
}

// shorten is the loop variant of the FlipOut outer loop. It differs
// from the path variant in treating every vertex, the base included,
// as interior.
func (ln *LoopNetwork) shorten() (iterations int, converged bool) {
	prev := ln.loop.Length()
	for iter := 0; iter < ln.opts.maxIterations; iter++ {
		idx, ok := ln.findFlexibleJoint()
		if !ok {
			return iter, true
		}
		if ln.opts.verbose {
			Logger().Info("[LoopNetwork] flexible joint",
				"iteration", iter, "vertex", ln.loop.Vertices()[idx])
		}
		flips, rewired := ln.flipOut(idx)
		if flips == 0 && !rewired {
			Logger().Warn("[LoopNetwork] wedge made no progress; stopping",
				"iteration", iter)
			return iter + 1, false
		}
		ln.loop.UpdateLength()
		cur := ln.loop.Length()
		if rewired && math.Abs(prev-cur) < ln.opts.convergenceThreshold {
			return iter + 1, true
		}
		prev = cur
	}
	return ln.opts.maxIterations, false
}

// findFlexibleJoint scans every loop vertex cyclically; the incoming
// edge at the base vertex is the last edge of the loop.
func (ln *LoopNetwork) findFlexibleJoint() (int, bool) {
	n := len(ln.loop.edges)
	verts := ln.loop.Vertices()
	for i := 0; i < n; i++ {
		v := verts[i]
		if ln.mesh.Marked(v) {
			continue
		}
		w, ok := pathWedge(ln.mesh, ln.signpost, ln.loop.edges[(i-1+n)%n], ln.loop.edges[i], v)
		if !ok {
			continue
		}
		if _, flexible := w.narrowSide(ln.signpost); flexible {
			return i, true
		}
	}
	return 0, false
}

// flipOut straightens the loop at one joint. The rewiring that drops
// the joint vertex is skipped when it would leave the loop with fewer
// than three edges.
func (ln *LoopNetwork) flipOut(idx int) (flips int, rewired bool) {
	loop := ln.loop
	n := len(loop.edges)
	v := loop.Vertices()[idx]

	fwd, ok := pathWedge(ln.mesh, ln.signpost, loop.edges[(idx-1+n)%n], loop.edges[idx], v)
	if !ok {
		return 0, false
	}
	wg, flexible := fwd.narrowSide(ln.signpost)
	if !flexible {
		return 0, false
	}
	flips = flipWedgeEdges(ln.mesh, ln.signpost, wg)

	u := ln.mesh.Target(fwd.inRev)
	w := ln.mesh.Target(fwd.out)
	if u != w && n > 3 {
		if e, dok := directWedgeEdge(ln.mesh, wg.inRev, ln.mesh.Target(wg.out)); dok {
			// Rebuild the cyclic edge list without the joint vertex:
			// walk the untouched edges starting after the outgoing
			// edge, then close with the direct edge. The new base is
			// w, the first vertex the walk starts from.
			j := (idx - 1 + n) % n
			newEdges := make([]EdgeID, 0, n-1)
			for k := (idx + 1) % n; k != j; k = (k + 1) % n {
				newEdges = append(newEdges, loop.edges[k])
			}
			newEdges = append(newEdges, e)
			loop.edges = newEdges
			loop.base = w
			rewired = true
		}
	}
	ln.refreshEdgeFlags()
	loop.UpdateLength()
	return flips, rewired
}

// refreshEdgeFlags rebuilds the in-path flags from the loop's current
// edge sequence.
func (ln *LoopNetwork) refreshEdgeFlags() {
	for i := range ln.mesh.edges {
		ln.mesh.edges[i].inPath = false
	}
	for _, e := range ln.loop.edges {
		ln.mesh.edges[e].inPath = true
	}
}
