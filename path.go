package geodesic

import (
	"fmt"
	"math"
)

// GeodesicPath is an ordered sequence of edges between two endpoint
// vertices. Consecutive edges share a vertex; the vertex sequence is
// reconstructed by walking across each edge from the previous vertex.
// The total length is cached; call UpdateLength after the underlying
// edge lengths change.
type GeodesicPath struct {
	mesh   *Mesh
	edges  []EdgeID
	start  VertexID
	end    VertexID
	length float64
}

// NewGeodesicPath builds a path from an edge sequence and validates
// edge-connectivity: the first edge must be incident to start, every
// consecutive pair must share a vertex, and the walk must end at end.
func NewGeodesicPath(m *Mesh, edges []EdgeID, start, end VertexID) (*GeodesicPath, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("path needs at least one edge: %w", ErrPrecondition)
	}
	cur := start
	for i, e := range edges {
		next, ok := edgeOtherEndpoint(m, e, cur)
		if !ok {
			return nil, fmt.Errorf("edge %d at position %d is not incident to vertex %d: %w", e, i, cur, ErrPrecondition)
		}
		cur = next
	}
	if cur != end {
		return nil, fmt.Errorf("path ends at vertex %d, want %d: %w", cur, end, ErrPrecondition)
	}
	p := &GeodesicPath{mesh: m, edges: edges, start: start, end: end}
	p.UpdateLength()
	return p, nil
}

// edgeOtherEndpoint returns the endpoint of e that is not v, and
// whether v is an endpoint of e at all.
func edgeOtherEndpoint(m *Mesh, e EdgeID, v VertexID) (VertexID, bool) {
	a, b := m.EdgeVertices(e)
	switch v {
	case a:
		return b, true
	case b:
		return a, true
	}
	return NoVertex, false
}

// Start returns the first vertex of the path.
func (p *GeodesicPath) Start() VertexID { return p.start }

// End returns the last vertex of the path.
func (p *GeodesicPath) End() VertexID { return p.end }

// Edges returns the path's edge sequence. The slice is shared with the
// path; callers must not mutate it.
func (p *GeodesicPath) Edges() []EdgeID { return p.edges }

// Vertices returns the vertex sequence, one longer than the edge
// sequence.
func (p *GeodesicPath) Vertices() []VertexID {
	verts := make([]VertexID, 0, len(p.edges)+1)
	cur := p.start
	verts = append(verts, cur)
	for _, e := range p.edges {
		cur, _ = edgeOtherEndpoint(p.mesh, e, cur)
		verts = append(verts, cur)
	}
	return verts
}

// InteriorVertices returns the vertex sequence without the endpoints.
func (p *GeodesicPath) InteriorVertices() []VertexID {
	verts := p.Vertices()
	if len(verts) <= 2 {
		return nil
	}
	return verts[1 : len(verts)-1]
}

// ContainsVertex reports whether v appears on the path.
func (p *GeodesicPath) ContainsVertex(v VertexID) bool {
	return p.VertexIndex(v) >= 0
}

// VertexIndex returns the position of v in the vertex sequence, or -1.
func (p *GeodesicPath) VertexIndex(v VertexID) int {
	for i, pv := range p.Vertices() {
		if pv == v {
			return i
		}
	}
	return -1
}

// ContainsEdge reports whether e appears on the path.
func (p *GeodesicPath) ContainsEdge(e EdgeID) bool {
	for _, pe := range p.edges {
		if pe == e {
			return true
		}
	}
	return false
}

// Length returns the cached total length, the sum of the intrinsic
// lengths of the path edges.
func (p *GeodesicPath) Length() float64 { return p.length }

// UpdateLength recomputes the cached total length from the current
// edge lengths. Call it after any mutation of the underlying mesh.
func (p *GeodesicPath) UpdateLength() {
	total := 0.0
	for _, e := range p.edges {
		total += p.mesh.EdgeLength(e)
	}
	p.length = total
}

// AngleAtInteriorVertex returns the wedge angle of the path at an
// interior vertex: the signpost CCW angle from the reversed incoming
// halfedge to the outgoing halfedge, i.e. the angle on the left of the
// travel direction. The path is locally straight at the vertex when
// this angle and its complement around the fan are both at least pi.
//
// Fails with ErrPrecondition when v is not an interior vertex of the
// path, or when the incoming edge is a boundary edge (no reversed
// halfedge exists).
func (p *GeodesicPath) AngleAtInteriorVertex(v VertexID, sp *SignpostIndex) (float64, error) {
	idx := p.VertexIndex(v)
	if idx <= 0 || idx >= len(p.edges) {
		return 0, fmt.Errorf("vertex %d is not interior to the path: %w", v, ErrPrecondition)
	}
	w, ok := pathWedge(p.mesh, sp, p.edges[idx-1], p.edges[idx], v)
	if !ok {
		return 0, fmt.Errorf("no reversed incoming halfedge at vertex %d (boundary path edge): %w", v, ErrPrecondition)
	}
	return w.angle, nil
}

// wedge describes the angular interval at a path vertex between two
// outgoing halfedges, measured CCW within the vertex fan. The forward
// wedge of a joint runs from the reversed incoming halfedge to the
// outgoing one (the left of the travel direction); reversing it gives
// the wedge on the other side of the path.
type wedge struct {
	vertex VertexID
	inRev  HalfedgeID // outgoing at the vertex, start of the CCW interval
	out    HalfedgeID // outgoing at the vertex, end of the CCW interval
	angle  float64    // CCW in-fan angle from inRev to out
}

// reversed returns the wedge on the other side of the path: the CCW
// interval from out back to inRev, whose angle is the rest of the fan.
func (w wedge) reversed(sp *SignpostIndex) wedge {
	return wedge{
		vertex: w.vertex,
		inRev:  w.out,
		out:    w.inRev,
		angle:  sp.TotalAngle(w.vertex) - w.angle,
	}
}

// pathWedge resolves the halfedges of the incoming and outgoing path
// edges at v and measures the forward (CCW, left-of-travel) wedge
// between them. Returns ok=false when a needed halfedge does not exist
// (boundary edge).
func pathWedge(m *Mesh, sp *SignpostIndex, eIn, eOut EdgeID, v VertexID) (wedge, bool) {
	hInRev, ok := halfedgeFrom(m, eIn, v)
	if !ok {
		return wedge{}, false
	}
	hOut, ok := halfedgeFrom(m, eOut, v)
	if !ok {
		return wedge{}, false
	}
	return wedge{
		vertex: v,
		inRev:  hInRev,
		out:    hOut,
		angle:  sp.angleBetweenInFan(v, hInRev, hOut),
	}, true
}

// narrowSide returns the narrower of a joint's two wedges and whether
// it is narrow enough to make the joint flexible.
func (w wedge) narrowSide(sp *SignpostIndex) (wedge, bool) {
	rev := w.reversed(sp)
	narrow := w
	if rev.angle < w.angle {
		narrow = rev
	}
	return narrow, !isStraightAngle(narrow.angle)
}

// halfedgeFrom returns the halfedge of e whose source is v.
func halfedgeFrom(m *Mesh, e EdgeID, v VertexID) (HalfedgeID, bool) {
	h := m.EdgeHalfedge(e)
	if m.Source(h) == v {
		return h, true
	}
	if t := m.Twin(h); t != NoHalfedge && m.Source(t) == v {
		return t, true
	}
	return NoHalfedge, false
}

// straightnessTolerance is the slack on the straightness test: a wedge
// angle of at least pi minus this counts as straight.
const straightnessTolerance = 1e-6

// isStraightAngle reports whether a wedge angle passes the
// straightness test.
func isStraightAngle(angle float64) bool {
	return angle >= math.Pi-straightnessTolerance
}
