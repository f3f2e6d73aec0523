package geodesic

import (
	"fmt"
	"math"
	"sort"
)

// SignpostIndex maintains, per vertex, the CCW angular position of
// every outgoing halfedge relative to a reference halfedge at angle 0.
// Angles come from the intrinsic corner angles of the incident faces,
// so "the wedge between two path edges" has an exact meaning that does
// not depend on the 3D embedding.
//
// The index must be kept in sync with the mesh: call UpdateAfterFlip
// after every successful FlipEdge.
type SignpostIndex struct {
	mesh *Mesh

	// angle is indexed by halfedge: the CCW angle of the halfedge at
	// its source vertex, in [0, total angle of that vertex).
	angle []float64

	// total is indexed by vertex: the sum of face angles in the fan.
	// For interior vertices of a non-Euclidean surface this differs
	// from 2*pi by the angle defect; it is never renormalized.
	total []float64

	// ref is indexed by vertex: the halfedge at angle 0.
	ref []HalfedgeID
}

// NewSignpostIndex builds the angular index for every vertex of m.
func NewSignpostIndex(m *Mesh) *SignpostIndex {
	sp := &SignpostIndex{
		mesh:  m,
		angle: make([]float64, m.NumHalfedges()),
		total: make([]float64, m.NumVertices()),
		ref:   make([]HalfedgeID, m.NumVertices()),
	}
	for v := 0; v < m.NumVertices(); v++ {
		sp.rebuildVertex(VertexID(v))
	}
	return sp
}

// rebuildVertex re-runs the CCW fan walk around v, accumulating face
// angles. The representative outgoing halfedge is the reference; a
// boundary fan terminates where the twin is missing.
func (sp *SignpostIndex) rebuildVertex(v VertexID) {
	m := sp.mesh
	start := m.VertexHalfedge(v)
	sp.ref[v] = start
	sp.total[v] = 0
	if start == NoHalfedge {
		return
	}
	theta := 0.0
	h := start
	for range m.halfedges {
		sp.angle[h] = theta
		a, err := m.CornerAngle(h)
		if err != nil {
			a = 0 // degenerate corner contributes nothing
		}
		theta += a
		h = m.NextOutgoingCCW(h)
		if h == NoHalfedge || h == start {
			break
		}
	}
	sp.total[v] = theta
}

// Angle returns the CCW angle of h at its source vertex, with the
// vertex's reference halfedge at 0.
func (sp *SignpostIndex) Angle(h HalfedgeID) float64 {
	return sp.angle[h]
}

// TotalAngle returns the sum of face angles in the fan around v.
func (sp *SignpostIndex) TotalAngle(v VertexID) float64 {
	return sp.total[v]
}

// AngleBetween returns the CCW angle from hFrom to hTo in [0, 2*pi).
// Both halfedges must share their source vertex.
func (sp *SignpostIndex) AngleBetween(hFrom, hTo HalfedgeID) float64 {
	return mod2Pi(sp.angle[hTo] - sp.angle[hFrom])
}

// angleBetweenInFan returns the CCW angle from hFrom to hTo measured
// within the fan of their shared source vertex v, modulo the vertex's
// total fan angle rather than 2*pi. The shortener uses this form so
// that saddle vertices (total angle above 2*pi) and cone vertices
// (below) are measured exactly.
func (sp *SignpostIndex) angleBetweenInFan(v VertexID, hFrom, hTo HalfedgeID) float64 {
	total := sp.total[v]
	if total <= 0 {
		return 0
	}
	d := math.Mod(sp.angle[hTo]-sp.angle[hFrom], total)
	if d < 0 {
		d += total
	}
	return d
}

// OutgoingSortedCCW returns all outgoing halfedges of v sorted by
// their signpost angle. The sort is stable, so halfedges that coincide
// in angle keep their identity order.
func (sp *SignpostIndex) OutgoingSortedCCW(v VertexID) []HalfedgeID {
	out := sp.mesh.OutgoingHalfedges(v)
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := sp.angle[out[i]], sp.angle[out[j]]
		if ai != aj {
			return ai < aj
		}
		return out[i] < out[j]
	})
	return out
}

// UpdateAfterFlip re-runs the fan walk for the four vertices of the
// quadrilateral around the flipped edge e: the two new endpoints and
// the two old ones. No other signpost entries change. Call this after
// every successful FlipEdge; no other mesh mutation exists.
func (sp *SignpostIndex) UpdateAfterFlip(e EdgeID) error {
	m := sp.mesh
	h0 := m.EdgeHalfedge(e)
	t0 := m.Twin(h0)
	if t0 == NoHalfedge {
		return fmt.Errorf("edge %d is a boundary edge and cannot have been flipped: %w", e, ErrPrecondition)
	}
	// Post-flip quad: e connects the new endpoints; the next halfedges
	// in each face lead to the old ones.
	a := m.Target(h0)
	b := m.Target(t0)
	c := m.Target(m.Next(h0))
	d := m.Target(m.Next(t0))
	for _, v := range [4]VertexID{a, b, c, d} {
		sp.rebuildVertex(v)
	}
	return nil
}
