package geodesic

import "fmt"

// GeodesicLoop is a cyclic edge sequence with a base vertex that is
// simultaneously start and end. Unlike a path, every vertex of a loop
// is interior: the base vertex too must satisfy the straightness test.
type GeodesicLoop struct {
	mesh   *Mesh
	edges  []EdgeID
	base   VertexID
	length float64
}

// NewGeodesicLoop builds a loop from an edge sequence and validates
// it: at least three edges, cyclically edge-connected, with the first
// and last edge incident to the base vertex.
func NewGeodesicLoop(m *Mesh, edges []EdgeID, base VertexID) (*GeodesicLoop, error) {
	if len(edges) < 3 {
		return nil, fmt.Errorf("loop needs at least 3 edges, got %d: %w", len(edges), ErrPrecondition)
	}
	cur := base
	for i, e := range edges {
		next, ok := edgeOtherEndpoint(m, e, cur)
		if !ok {
			return nil, fmt.Errorf("edge %d at position %d is not incident to vertex %d: %w", e, i, cur, ErrPrecondition)
		}
		cur = next
	}
	if cur != base {
		return nil, fmt.Errorf("loop ends at vertex %d instead of closing at %d: %w", cur, base, ErrPrecondition)
	}
	l := &GeodesicLoop{mesh: m, edges: edges, base: base}
	l.UpdateLength()
	return l, nil
}

// Base returns the loop's base vertex.
func (l *GeodesicLoop) Base() VertexID { return l.base }

// Edges returns the loop's edge sequence. The slice is shared with the
// loop; callers must not mutate it.
func (l *GeodesicLoop) Edges() []EdgeID { return l.edges }

// Vertices returns the cyclic vertex sequence starting at the base
// vertex. Its length equals the number of edges; the base is not
// repeated at the end.
func (l *GeodesicLoop) Vertices() []VertexID {
	verts := make([]VertexID, 0, len(l.edges))
	cur := l.base
	for _, e := range l.edges[:len(l.edges)-1] {
		verts = append(verts, cur)
		cur, _ = edgeOtherEndpoint(l.mesh, e, cur)
	}
	verts = append(verts, cur)
	return verts
}

// InteriorVertices returns the same sequence as Vertices: every vertex
// of a loop is interior.
func (l *GeodesicLoop) InteriorVertices() []VertexID { return l.Vertices() }

// ContainsEdge reports whether e appears on the loop.
func (l *GeodesicLoop) ContainsEdge(e EdgeID) bool {
	for _, le := range l.edges {
		if le == e {
			return true
		}
	}
	return false
}

// Length returns the cached total length.
func (l *GeodesicLoop) Length() float64 { return l.length }

// UpdateLength recomputes the cached total length from the current
// edge lengths.
func (l *GeodesicLoop) UpdateLength() {
	total := 0.0
	for _, e := range l.edges {
		total += l.mesh.EdgeLength(e)
	}
	l.length = total
}

// AngleAtVertex returns the wedge angle of the loop at the vertex in
// position idx of Vertices(). The incoming edge at the base vertex
// (idx 0) is the last edge of the loop.
func (l *GeodesicLoop) AngleAtVertex(idx int, sp *SignpostIndex) (float64, error) {
	n := len(l.edges)
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("loop vertex index %d out of range [0, %d): %w", idx, n, ErrPrecondition)
	}
	v := l.Vertices()[idx]
	eIn := l.edges[(idx-1+n)%n]
	eOut := l.edges[idx]
	w, ok := pathWedge(l.mesh, sp, eIn, eOut, v)
	if !ok {
		return 0, fmt.Errorf("no reversed incoming halfedge at vertex %d: %w", v, ErrPrecondition)
	}
	return w.angle, nil
}
