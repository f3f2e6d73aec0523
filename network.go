package geodesic

import (
	"fmt"
	"math"
	"sort"
)

// FlipNetwork drives the FlipOut iterative shortening of one or more
// open paths over a shared mesh. It owns the signpost index and the
// in-path edge flags for its paths; the mesh must not be mutated by
// anyone else while a network is in use.
//
// Multiple paths share the same mesh: shortening one path mutates the
// triangulation that the others live on. Callers who need isolation
// must use separate meshes.
type FlipNetwork struct {
	mesh     *Mesh
	signpost *SignpostIndex
	paths    []*GeodesicPath
	opts     networkOptions
}

// NewFlipNetworkFromDijkstraPath bootstraps a network with the
// shortest edge path from src to tgt. Fails with ErrNoPath when tgt is
// unreachable or src == tgt.
func NewFlipNetworkFromDijkstraPath(m *Mesh, src, tgt VertexID, opts ...NetworkOption) (*FlipNetwork, error) {
	o := defaultNetworkOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := NewDijkstra(m).ComputePath(src, tgt)
	if p == nil {
		return nil, fmt.Errorf("from %d to %d: %w", src, tgt, ErrNoPath)
	}
	n := &FlipNetwork{
		mesh:     m,
		signpost: NewSignpostIndex(m),
		paths:    []*GeodesicPath{p},
		opts:     o,
	}
	n.refreshEdgeFlags()
	return n, nil
}

// NewFlipNetworkFromPiecewisePath bootstraps a network with one
// shortest path per consecutive waypoint pair. When markInterior is
// set, the interior waypoints are marked so that shortening keeps the
// path pinned to them.
func NewFlipNetworkFromPiecewisePath(m *Mesh, waypoints []VertexID, markInterior bool, opts ...NetworkOption) (*FlipNetwork, error) {
	o := defaultNetworkOptions()
	for _, opt := range opts {
		opt(&o)
	}
	paths, err := NewDijkstra(m).ComputePiecewisePath(waypoints)
	if err != nil {
		return nil, err
	}
	if markInterior {
		for _, v := range waypoints[1 : len(waypoints)-1] {
			m.SetMarked(v, true)
		}
	}
	n := &FlipNetwork{
		mesh:     m,
		signpost: NewSignpostIndex(m),
		paths:    paths,
		opts:     o,
	}
	n.refreshEdgeFlags()
	return n, nil
}

// Mesh returns the mesh the network operates on.
func (n *FlipNetwork) Mesh() *Mesh { return n.mesh }

// Signpost returns the network's signpost index.
func (n *FlipNetwork) Signpost() *SignpostIndex { return n.signpost }

// Paths returns the network's paths. The slice is shared with the
// network; callers must not mutate it.
func (n *FlipNetwork) Paths() []*GeodesicPath { return n.paths }

// EdgeInPath reports whether e belongs to any path of the network.
func (n *FlipNetwork) EdgeInPath(e EdgeID) bool {
	return n.mesh.edges[e].inPath
}

// TotalLength returns the summed length of all paths, refreshing the
// per-path caches first.
func (n *FlipNetwork) TotalLength() float64 {
	total := 0.0
	for _, p := range n.paths {
		p.UpdateLength()
		total += p.Length()
	}
	return total
}

// MinInteriorAngle returns the smallest wedge angle over the unmarked
// interior vertices of all paths, or +Inf when there are none. After a
// converged IterativeShorten this is at least pi (within tolerance).
func (n *FlipNetwork) MinInteriorAngle() float64 {
	minAngle := math.Inf(1)
	for _, p := range n.paths {
		verts := p.Vertices()
		for i := 1; i < len(verts)-1; i++ {
			v := verts[i]
			if n.mesh.Marked(v) {
				continue
			}
			w, ok := pathWedge(n.mesh, n.signpost, p.edges[i-1], p.edges[i], v)
			if !ok {
				continue
			}
			if a := math.Min(w.angle, w.reversed(n.signpost).angle); a < minAngle {
				minAngle = a
			}
		}
	}
	return minAngle
}

// PathPolylines3D returns one polyline per path: the extrinsic
// positions of its vertex sequence.
func (n *FlipNetwork) PathPolylines3D() [][]Point3 {
	polylines := make([][]Point3, len(n.paths))
	for i, p := range n.paths {
		verts := p.Vertices()
		line := make([]Point3, len(verts))
		for j, v := range verts {
			line[j] = n.mesh.Position(v)
		}
		polylines[i] = line
	}
	return polylines
}

// IterativeShorten runs the FlipOut outer loop: find a flexible joint,
// flip out its wedge, repeat until no flexible joint remains, the
// total length stabilizes below the convergence threshold, or the
// iteration cap is hit. Returns the number of iterations performed and
// whether the process converged.
func (n *FlipNetwork) IterativeShorten() (iterations int, converged bool) {
	prev := n.TotalLength()
	for iter := 0; iter < n.opts.maxIterations; iter++ {
		pathIdx, vertIdx, ok := n.findFlexibleJoint()
		if !ok {
			return iter, true
		}
		v := n.paths[pathIdx].Vertices()[vertIdx]
		if n.opts.verbose {
			Logger().Info("[FlipNetwork] flexible joint",
				"iteration", iter, "vertex", v, "path", pathIdx)
		}
		flips, rewired := n.flipOut(pathIdx, vertIdx)
		if flips == 0 && !rewired {
			Logger().Warn("[FlipNetwork] wedge made no progress; stopping",
				"iteration", iter, "vertex", v)
			return iter + 1, false
		}
		cur := n.TotalLength()
		// Wedge flips alone touch only non-path edges; the path length
		// moves only when the joint was rerouted, so the stability
		// test applies only then.
		if rewired && math.Abs(prev-cur) < n.opts.convergenceThreshold {
			return iter + 1, true
		}
		prev = cur
	}
	return n.opts.maxIterations, false
}

// findFlexibleJoint scans the interior vertices of every path in order
// and returns the first unmarked vertex where the wedge on either side
// of the path is strictly narrower than pi (within tolerance).
func (n *FlipNetwork) findFlexibleJoint() (pathIdx, vertIdx int, ok bool) {
	for pi, p := range n.paths {
		verts := p.Vertices()
		for i := 1; i < len(verts)-1; i++ {
			v := verts[i]
			if n.mesh.Marked(v) {
				continue
			}
			w, wok := pathWedge(n.mesh, n.signpost, p.edges[i-1], p.edges[i], v)
			if !wok {
				continue // boundary path edge, best effort
			}
			if _, flexible := w.narrowSide(n.signpost); flexible {
				return pi, i, true
			}
		}
	}
	return 0, 0, false
}

// flipOut straightens the path at one flexible joint: flip every
// flippable non-path edge inside the wedge, then reroute the subpath
// across the joint onto the direct edge between its neighbours when
// the wedge has been emptied. Returns the number of flips performed
// and whether the path was rerouted.
func (n *FlipNetwork) flipOut(pathIdx, vertIdx int) (flips int, rewired bool) {
	p := n.paths[pathIdx]
	v := p.Vertices()[vertIdx]

	fwd, ok := pathWedge(n.mesh, n.signpost, p.edges[vertIdx-1], p.edges[vertIdx], v)
	if !ok {
		return 0, false
	}
	wg, flexible := fwd.narrowSide(n.signpost)
	if !flexible {
		return 0, false
	}
	flips = flipWedgeEdges(n.mesh, n.signpost, wg)

	// Reroute across the joint when the wedge triangle closed: its
	// third side connects the joint's two path neighbours directly.
	if m := n.mesh; m.Target(wg.inRev) != m.Target(wg.out) {
		if e, dok := directWedgeEdge(m, wg.inRev, m.Target(wg.out)); dok {
			p.edges[vertIdx-1] = e
			p.edges = append(p.edges[:vertIdx], p.edges[vertIdx+1:]...)
			rewired = true
		}
	}
	n.refreshEdgeFlags()
	p.UpdateLength()
	return flips, rewired
}

// refreshEdgeFlags rebuilds the in-path flags from the current edge
// sequences of all paths.
func (n *FlipNetwork) refreshEdgeFlags() {
	for i := range n.mesh.edges {
		n.mesh.edges[i].inPath = false
	}
	for _, p := range n.paths {
		for _, e := range p.edges {
			n.mesh.edges[e].inPath = true
		}
	}
}

// wedgeCandidate is a flip candidate inside a wedge, ordered by its
// CCW offset from the wedge start.
type wedgeCandidate struct {
	h   HalfedgeID
	e   EdgeID
	rel float64
}

// flipWedgeEdges flips, in CCW order, every edge whose outgoing
// halfedge lies strictly inside the wedge and that is neither a path
// edge nor a boundary edge. Edges whose flip precondition fails are
// skipped. Each flip is followed by a signpost update, so the index
// stays consistent throughout.
func flipWedgeEdges(m *Mesh, sp *SignpostIndex, wg wedge) int {
	v := wg.vertex

	var candidates []wedgeCandidate
	for _, h := range m.OutgoingHalfedges(v) {
		if h == wg.inRev || h == wg.out {
			continue
		}
		e := m.Edge(h)
		if m.edges[e].inPath {
			continue
		}
		if m.Twin(h) == NoHalfedge {
			continue
		}
		rel := sp.angleBetweenInFan(v, wg.inRev, h)
		if rel >= wg.angle {
			continue
		}
		candidates = append(candidates, wedgeCandidate{h: h, e: e, rel: rel})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].rel != candidates[j].rel {
			return candidates[i].rel < candidates[j].rel
		}
		return candidates[i].h < candidates[j].h
	})

	flips := 0
	for _, cand := range candidates {
		if !m.FlipEdge(cand.e) {
			Logger().Debug("wedge edge flip skipped", "edge", cand.e, "vertex", v)
			continue
		}
		if err := sp.UpdateAfterFlip(cand.e); err != nil {
			Logger().Warn("signpost update failed", "edge", cand.e, "error", err)
		}
		flips++
	}
	return flips
}

// directWedgeEdge returns the edge closing the emptied wedge at a
// joint: with inRev the outgoing halfedge back toward the previous
// path vertex, the face of inRev is the wedge triangle, and its next
// halfedge leads directly to the next path vertex w. Returns ok=false
// when the wedge still contains edges (some flip was skipped).
func directWedgeEdge(m *Mesh, inRev HalfedgeID, w VertexID) (EdgeID, bool) {
	hn := m.Next(inRev)
	if m.Target(hn) != w {
		return NoEdge, false
	}
	return m.Edge(hn), true
}
