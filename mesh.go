package geodesic

import (
	"fmt"
	"math"
)

// vertexData is one arena slot of a vertex: its fixed extrinsic
// position, a representative outgoing halfedge (a walk starting point,
// kept valid across flips), and the caller-settable mark flag.
type vertexData struct {
	pos    Point3
	out    HalfedgeID
	marked bool
}

// halfedgeData is one arena slot of a directed halfedge in a CCW face
// cycle. twin is NoHalfedge for boundary halfedges. The source vertex
// is derived: target of the twin, or target of prev on the boundary.
type halfedgeData struct {
	target VertexID
	edge   EdgeID
	twin   HalfedgeID
	next   HalfedgeID
	prev   HalfedgeID
	face   FaceID
}

// edgeData is one arena slot of an undirected edge: a representative
// halfedge (the other is its twin), the intrinsic length, and the
// in-path flag maintained by the path owner.
type edgeData struct {
	h      HalfedgeID
	length float64
	inPath bool
}

type faceData struct {
	h HalfedgeID
}

// Mesh is an intrinsic triangulation: halfedge connectivity plus a
// positive length per edge. The extrinsic embedding (vertex positions)
// is fixed at construction; FlipEdge is the only mutating operation.
//
// The Mesh exclusively owns all vertices, halfedges, edges, and faces.
// Everything else in this package holds non-owning handles into it.
type Mesh struct {
	verts     []vertexData
	halfedges []halfedgeData
	edges     []edgeData
	faces     []faceData
}

// NewMesh builds a mesh from an extrinsic position buffer (x,y,z per
// vertex) and a CCW triangle index buffer. Each edge's intrinsic length
// is initialized to the extrinsic distance between its endpoints.
//
// Fails with ErrMalformedInput for empty or ragged buffers and
// out-of-range indices, and with ErrNonManifold when an edge has more
// than two incident halfedges or inconsistent orientation.
func NewMesh(positions []float32, indices []uint32) (*Mesh, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("position buffer is empty: %w", ErrMalformedInput)
	}
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("position count %d is not a multiple of 3: %w", len(positions), ErrMalformedInput)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("index buffer is required: %w", ErrMalformedInput)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3: %w", len(indices), ErrMalformedInput)
	}

	numVerts := len(positions) / 3
	numFaces := len(indices) / 3

	m := &Mesh{
		verts:     make([]vertexData, numVerts),
		halfedges: make([]halfedgeData, 0, len(indices)),
		edges:     make([]edgeData, 0, len(indices)/2),
		faces:     make([]faceData, numFaces),
	}
	for i := range m.verts {
		m.verts[i] = vertexData{
			pos: Pt3(positions[3*i], positions[3*i+1], positions[3*i+2]),
			out: NoHalfedge,
		}
	}

	// First pass: create three halfedges per face, canonicalizing edges
	// by unordered vertex pair. The second halfedge seen for a pair
	// becomes the twin; a third is non-manifold.
	type edgeKey struct{ lo, hi VertexID }
	edgeByKey := make(map[edgeKey]EdgeID, len(indices)/2)

	for f := 0; f < numFaces; f++ {
		var corner [3]VertexID
		for k := 0; k < 3; k++ {
			idx := indices[3*f+k]
			if int(idx) >= numVerts {
				return nil, fmt.Errorf("face %d references vertex %d of %d: %w", f, idx, numVerts, ErrMalformedInput)
			}
			corner[k] = VertexID(idx)
		}
		base := HalfedgeID(3 * f)
		m.faces[f] = faceData{h: base}
		for k := 0; k < 3; k++ {
			src := corner[k]
			dst := corner[(k+1)%3]
			h := base + HalfedgeID(k)
			m.halfedges = append(m.halfedges, halfedgeData{
				target: dst,
				twin:   NoHalfedge,
				next:   base + HalfedgeID((k+1)%3),
				prev:   base + HalfedgeID((k+2)%3),
				face:   FaceID(f),
			})
			if m.verts[src].out == NoHalfedge {
				m.verts[src].out = h
			}

			key := edgeKey{lo: src, hi: dst}
			if key.lo > key.hi {
				key.lo, key.hi = key.hi, key.lo
			}
			e, seen := edgeByKey[key]
			if !seen {
				e = EdgeID(len(m.edges))
				edgeByKey[key] = e
				m.edges = append(m.edges, edgeData{
					h:      h,
					length: float64(m.verts[src].pos.Distance(m.verts[dst].pos)),
				})
				m.halfedges[h].edge = e
				continue
			}
			rep := m.edges[e].h
			if m.halfedges[rep].twin != NoHalfedge {
				return nil, fmt.Errorf("edge %d-%d has more than two halfedges: %w", key.lo, key.hi, ErrNonManifold)
			}
			if m.halfedges[rep].target == dst {
				return nil, fmt.Errorf("edge %d-%d appears twice with the same orientation: %w", key.lo, key.hi, ErrNonManifold)
			}
			m.halfedges[rep].twin = h
			m.halfedges[h].twin = rep
			m.halfedges[h].edge = e
		}
	}

	// Boundary vertices get their CW-most outgoing halfedge (the one
	// with no twin) as representative, so a single CCW fan walk covers
	// the whole fan.
	for h := range m.halfedges {
		if m.halfedges[h].twin != NoHalfedge {
			continue
		}
		src := m.halfedges[m.halfedges[h].prev].target
		m.verts[src].out = HalfedgeID(h)
	}
	return m, nil
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int { return len(m.verts) }

// NumHalfedges returns the number of halfedges.
func (m *Mesh) NumHalfedges() int { return len(m.halfedges) }

// NumEdges returns the number of undirected edges.
func (m *Mesh) NumEdges() int { return len(m.edges) }

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int { return len(m.faces) }

// Position returns the extrinsic position of v.
func (m *Mesh) Position(v VertexID) Point3 { return m.verts[v].pos }

// VertexHalfedge returns the representative outgoing halfedge of v.
// For boundary vertices this is the CW-most outgoing halfedge.
func (m *Mesh) VertexHalfedge(v VertexID) HalfedgeID { return m.verts[v].out }

// Marked reports whether v carries the caller-settable mark flag.
// Marked vertices are never selected as flexible joints.
func (m *Mesh) Marked(v VertexID) bool { return m.verts[v].marked }

// SetMarked sets or clears the mark flag of v.
func (m *Mesh) SetMarked(v VertexID, marked bool) { m.verts[v].marked = marked }

// Target returns the vertex h points to.
func (m *Mesh) Target(h HalfedgeID) VertexID { return m.halfedges[h].target }

// Source returns the vertex h starts from.
func (m *Mesh) Source(h HalfedgeID) VertexID {
	if t := m.halfedges[h].twin; t != NoHalfedge {
		return m.halfedges[t].target
	}
	return m.halfedges[m.halfedges[h].prev].target
}

// Twin returns the opposite halfedge of h, or NoHalfedge on the boundary.
func (m *Mesh) Twin(h HalfedgeID) HalfedgeID { return m.halfedges[h].twin }

// Next returns the next halfedge in h's face cycle.
func (m *Mesh) Next(h HalfedgeID) HalfedgeID { return m.halfedges[h].next }

// Prev returns the previous halfedge in h's face cycle.
func (m *Mesh) Prev(h HalfedgeID) HalfedgeID { return m.halfedges[h].prev }

// Face returns the face h belongs to.
func (m *Mesh) Face(h HalfedgeID) FaceID { return m.halfedges[h].face }

// Edge returns the undirected edge h belongs to.
func (m *Mesh) Edge(h HalfedgeID) EdgeID { return m.halfedges[h].edge }

// EdgeHalfedge returns the representative halfedge of e.
func (m *Mesh) EdgeHalfedge(e EdgeID) HalfedgeID { return m.edges[e].h }

// EdgeLength returns the intrinsic length of e.
func (m *Mesh) EdgeLength(e EdgeID) float64 { return m.edges[e].length }

// EdgeVertices returns the two endpoints of e.
func (m *Mesh) EdgeVertices(e EdgeID) (VertexID, VertexID) {
	h := m.edges[e].h
	return m.Source(h), m.Target(h)
}

// EdgeIsBoundary reports whether e has only one incident face.
func (m *Mesh) EdgeIsBoundary(e EdgeID) bool {
	return m.halfedges[m.edges[e].h].twin == NoHalfedge
}

// FaceHalfedge returns the representative halfedge of f.
func (m *Mesh) FaceHalfedge(f FaceID) HalfedgeID { return m.faces[f].h }

// FaceVertices returns the three corners of f in CCW order.
func (m *Mesh) FaceVertices(f FaceID) [3]VertexID {
	h := m.faces[f].h
	return [3]VertexID{m.Source(h), m.Target(h), m.Target(m.halfedges[h].next)}
}

// NextOutgoingCCW returns the outgoing halfedge CCW-adjacent to h
// around h's source vertex, or NoHalfedge when the fan ends at the
// boundary. The step crosses the previous edge of h's face, so the
// interior angle of face(h) at the source lies between h and the
// returned halfedge.
func (m *Mesh) NextOutgoingCCW(h HalfedgeID) HalfedgeID {
	return m.halfedges[m.halfedges[h].prev].twin
}

// OutgoingHalfedges returns all outgoing halfedges of v in CCW fan
// order, starting at the representative halfedge.
func (m *Mesh) OutgoingHalfedges(v VertexID) []HalfedgeID {
	start := m.verts[v].out
	if start == NoHalfedge {
		return nil
	}
	var out []HalfedgeID
	h := start
	for range m.halfedges {
		out = append(out, h)
		h = m.NextOutgoingCCW(h)
		if h == NoHalfedge || h == start {
			break
		}
	}
	return out
}

// Degree returns the number of edges incident to v.
func (m *Mesh) Degree(v VertexID) int {
	n := len(m.OutgoingHalfedges(v))
	// A boundary vertex has one more incident edge than outgoing
	// halfedges: the last fan step ends on an edge with no outgoing
	// halfedge at v.
	if h := m.verts[v].out; h != NoHalfedge && m.halfedges[h].twin == NoHalfedge {
		n++
	}
	return n
}

// CornerAngle returns the interior angle at the source of h inside
// h's face, from the intrinsic edge lengths by the law of cosines.
func (m *Mesh) CornerAngle(h HalfedgeID) (float64, error) {
	hd := m.halfedges[h]
	a := m.edges[m.halfedges[hd.next].edge].length // opposite side
	b := m.edges[hd.edge].length
	c := m.edges[m.halfedges[hd.prev].edge].length
	return cornerAngle(a, b, c)
}

// FaceAngleAt returns the interior angle of f at vertex v.
// Fails with ErrPrecondition when v is not a corner of f.
func (m *Mesh) FaceAngleAt(f FaceID, v VertexID) (float64, error) {
	h := m.faces[f].h
	for k := 0; k < 3; k++ {
		if m.Source(h) == v {
			return m.CornerAngle(h)
		}
		h = m.halfedges[h].next
	}
	return 0, fmt.Errorf("vertex %d is not a corner of face %d: %w", v, f, ErrPrecondition)
}

// FaceArea returns the area of f by Heron's formula on the intrinsic
// edge lengths.
func (m *Mesh) FaceArea(f FaceID) (float64, error) {
	h := m.faces[f].h
	a := m.edges[m.halfedges[h].edge].length
	b := m.edges[m.halfedges[m.halfedges[h].next].edge].length
	c := m.edges[m.halfedges[m.halfedges[h].prev].edge].length
	return heronArea(a, b, c)
}

// FaceOppositeHalfedge returns the halfedge of f that does not touch v.
func (m *Mesh) FaceOppositeHalfedge(f FaceID, v VertexID) (HalfedgeID, error) {
	h := m.faces[f].h
	for k := 0; k < 3; k++ {
		if m.Source(h) != v && m.Target(h) != v {
			return h, nil
		}
		h = m.halfedges[h].next
	}
	return NoHalfedge, fmt.Errorf("vertex %d touches every halfedge of face %d: %w", v, f, ErrPrecondition)
}

// FlipEdge flips the interior edge e so that it connects the two far
// vertices of the quadrilateral formed by its incident faces, and
// reports whether the flip happened. The new length is the extrinsic
// distance between the new endpoints.
//
// The flip is refused (returns false) when e is a boundary edge, an
// endpoint has degree 1, the two far vertices coincide, or the new
// triangles would violate the strict triangle inequality. A refused
// flip leaves the mesh untouched.
func (m *Mesh) FlipEdge(e EdgeID) bool {
	h0 := m.edges[e].h
	t0 := m.halfedges[h0].twin
	if t0 == NoHalfedge {
		return false
	}
	h1 := m.halfedges[h0].next
	h2 := m.halfedges[h0].prev
	t1 := m.halfedges[t0].next
	t2 := m.halfedges[t0].prev
	f0 := m.halfedges[h0].face
	f1 := m.halfedges[t0].face

	v := m.halfedges[t0].target // source of h0
	w := m.halfedges[h0].target
	c := m.halfedges[h1].target
	d := m.halfedges[t1].target

	if c == d {
		return false
	}
	if m.Degree(v) <= 1 || m.Degree(w) <= 1 {
		return false
	}

	newLen := float64(m.verts[c].pos.Distance(m.verts[d].pos))
	lenH1 := m.edges[m.halfedges[h1].edge].length // w-c
	lenH2 := m.edges[m.halfedges[h2].edge].length // c-v
	lenT1 := m.edges[m.halfedges[t1].edge].length // v-d
	lenT2 := m.edges[m.halfedges[t2].edge].length // d-w
	if !strictTriangle(lenH2, lenT1, newLen) || !strictTriangle(lenT2, lenH1, newLen) {
		return false
	}

	// New face cycles: f0 = (c->v, v->d, d->c), f1 = (d->w, w->c, c->d).
	m.halfedges[h0].target = c
	m.halfedges[h0].next = h2
	m.halfedges[h0].prev = t1
	m.halfedges[h0].face = f0

	m.halfedges[h2].next = t1
	m.halfedges[h2].prev = h0
	m.halfedges[h2].face = f0

	m.halfedges[t1].next = h0
	m.halfedges[t1].prev = h2
	m.halfedges[t1].face = f0

	m.halfedges[t0].target = d
	m.halfedges[t0].next = t2
	m.halfedges[t0].prev = h1
	m.halfedges[t0].face = f1

	m.halfedges[t2].next = h1
	m.halfedges[t2].prev = t0
	m.halfedges[t2].face = f1

	m.halfedges[h1].next = t0
	m.halfedges[h1].prev = t2
	m.halfedges[h1].face = f1

	m.faces[f0].h = h0
	m.faces[f1].h = t0
	m.edges[e].length = newLen

	// Restore vertex representatives that pointed at the flipped
	// halfedges; t1 and h1 are still outgoing at v and w.
	if m.verts[v].out == h0 || m.verts[v].out == t0 {
		m.verts[v].out = t1
	}
	if m.verts[w].out == h0 || m.verts[w].out == t0 {
		m.verts[w].out = h1
	}
	return true
}

// IsDelaunay reports whether e satisfies the Delaunay condition: the
// two angles opposite e sum to at most pi (plus tolerance). Boundary
// edges are Delaunay by convention; a degenerate corner angle counts
// as Delaunay so that MakeDelaunay skips it.
func (m *Mesh) IsDelaunay(e EdgeID) bool {
	const tol = 1e-9
	h0 := m.edges[e].h
	t0 := m.halfedges[h0].twin
	if t0 == NoHalfedge {
		return true
	}
	alpha, err := m.CornerAngle(m.halfedges[h0].prev)
	if err != nil {
		return true
	}
	beta, err := m.CornerAngle(m.halfedges[t0].prev)
	if err != nil {
		return true
	}
	return alpha+beta <= math.Pi+tol
}

// MakeDelaunay flips non-Delaunay interior edges until every edge
// satisfies the Delaunay condition, and returns the number of flips.
// The sweep is bounded by 10*NumEdges() edge visits as a safety net.
func (m *Mesh) MakeDelaunay() int {
	flips := 0
	budget := 10 * len(m.edges)
	queue := make([]EdgeID, len(m.edges))
	inQueue := make([]bool, len(m.edges))
	for i := range queue {
		queue[i] = EdgeID(i)
		inQueue[i] = true
	}
	for len(queue) > 0 && budget > 0 {
		budget--
		e := queue[0]
		queue = queue[1:]
		inQueue[e] = false
		if m.IsDelaunay(e) {
			continue
		}
		if !m.FlipEdge(e) {
			continue
		}
		flips++
		// The four surrounding edges may have lost the condition.
		h0 := m.edges[e].h
		t0 := m.halfedges[h0].twin
		for _, h := range []HalfedgeID{m.halfedges[h0].next, m.halfedges[h0].prev, m.halfedges[t0].next, m.halfedges[t0].prev} {
			ne := m.halfedges[h].edge
			if !inQueue[ne] {
				inQueue[ne] = true
				queue = append(queue, ne)
			}
		}
	}
	return flips
}

// Check verifies mesh self-consistency: triangle face cycles, twin
// involution, edge and face representatives, vertex representatives,
// positive lengths, and the strict triangle inequality per face.
// Intended for tests and debugging.
func (m *Mesh) Check() error {
	for i := range m.halfedges {
		h := HalfedgeID(i)
		hd := m.halfedges[h]
		if m.halfedges[m.halfedges[hd.next].next].next != h {
			return fmt.Errorf("halfedge %d: face cycle is not a triangle: %w", h, ErrPrecondition)
		}
		if hd.twin != NoHalfedge {
			if hd.twin == h {
				return fmt.Errorf("halfedge %d is its own twin: %w", h, ErrPrecondition)
			}
			if m.halfedges[hd.twin].twin != h {
				return fmt.Errorf("halfedge %d: twin involution broken: %w", h, ErrPrecondition)
			}
			if m.halfedges[hd.twin].edge != hd.edge {
				return fmt.Errorf("halfedge %d: twin belongs to a different edge: %w", h, ErrPrecondition)
			}
		}
		if m.halfedges[hd.next].face != hd.face || m.halfedges[hd.prev].face != hd.face {
			return fmt.Errorf("halfedge %d: face cycle spans faces: %w", h, ErrPrecondition)
		}
	}
	for i := range m.edges {
		e := EdgeID(i)
		if m.halfedges[m.edges[e].h].edge != e {
			return fmt.Errorf("edge %d: representative halfedge disagrees: %w", e, ErrPrecondition)
		}
		if m.edges[e].length <= 0 {
			return fmt.Errorf("edge %d: non-positive length %g: %w", e, m.edges[e].length, ErrPrecondition)
		}
	}
	for i := range m.faces {
		f := FaceID(i)
		if m.halfedges[m.faces[f].h].face != f {
			return fmt.Errorf("face %d: representative halfedge disagrees: %w", f, ErrPrecondition)
		}
		h := m.faces[f].h
		a := m.edges[m.halfedges[h].edge].length
		b := m.edges[m.halfedges[m.halfedges[h].next].edge].length
		c := m.edges[m.halfedges[m.halfedges[h].prev].edge].length
		if !strictTriangle(a, b, c) {
			return fmt.Errorf("face %d: sides (%g, %g, %g) violate the triangle inequality: %w", f, a, b, c, ErrDegenerateTriangle)
		}
	}
	for i := range m.verts {
		v := VertexID(i)
		out := m.verts[v].out
		if out == NoHalfedge {
			continue // isolated vertex
		}
		if m.Source(out) != v {
			return fmt.Errorf("vertex %d: representative halfedge is not outgoing: %w", v, ErrPrecondition)
		}
	}
	return nil
}
