package geodesic

import (
	"math"
	"testing"
)

func TestIcosphereOnUnitSphere(t *testing.T) {
	m, err := Icosphere(2)
	if err != nil {
		t.Fatalf("Icosphere: %v", err)
	}
	for v := 0; v < m.NumVertices(); v++ {
		if r := m.Position(VertexID(v)).Length(); math.Abs(float64(r)-1) > 1e-6 {
			t.Fatalf("vertex %d: radius %v, want 1", v, r)
		}
	}
	// Base icosahedron vertices keep their indices; 0 and 3 stay
	// exactly antipodal.
	p0, p3 := m.Position(0), m.Position(3)
	if p0.Add(p3).Length() > 1e-6 {
		t.Errorf("vertices 0 and 3 are not antipodal: %v vs %v", p0, p3)
	}
}

func TestIcosphereClosed(t *testing.T) {
	for _, sub := range []int{0, 1, 2} {
		m, err := Icosphere(sub)
		if err != nil {
			t.Fatalf("Icosphere(%d): %v", sub, err)
		}
		for e := 0; e < m.NumEdges(); e++ {
			if m.EdgeIsBoundary(EdgeID(e)) {
				t.Fatalf("Icosphere(%d): boundary edge %d", sub, e)
			}
		}
		if v, e, f := m.NumVertices(), m.NumEdges(), m.NumFaces(); v-e+f != 2 {
			t.Errorf("Icosphere(%d): Euler characteristic %d, want 2", sub, v-e+f)
		}
	}
}

func TestTorusEulerCharacteristic(t *testing.T) {
	m, err := Torus(8, 12, 2, 0.5)
	if err != nil {
		t.Fatalf("Torus: %v", err)
	}
	if v, e, f := m.NumVertices(), m.NumEdges(), m.NumFaces(); v-e+f != 0 {
		t.Errorf("Euler characteristic = %d, want 0 for a torus", v-e+f)
	}
	for e := 0; e < m.NumEdges(); e++ {
		if m.EdgeIsBoundary(EdgeID(e)) {
			t.Fatalf("torus has boundary edge %d", e)
		}
	}
}

func TestTorusValidation(t *testing.T) {
	if _, err := Torus(2, 12, 2, 0.5); err == nil {
		t.Error("Torus accepted 2 radial segments")
	}
	if _, err := Plane(0, 1, 1, 1); err == nil {
		t.Error("Plane accepted 0 cells")
	}
}

func TestPlaneBoundaryCount(t *testing.T) {
	m, err := Plane(2, 2, 2, 2)
	if err != nil {
		t.Fatalf("Plane: %v", err)
	}
	if m.NumVertices() != 9 || m.NumFaces() != 8 || m.NumEdges() != 16 {
		t.Fatalf("counts = (%d, %d, %d), want (9, 8, 16)", m.NumVertices(), m.NumFaces(), m.NumEdges())
	}
	boundary := 0
	for e := 0; e < m.NumEdges(); e++ {
		if m.EdgeIsBoundary(EdgeID(e)) {
			boundary++
		}
	}
	if boundary != 8 {
		t.Errorf("boundary edges = %d, want 8", boundary)
	}
	if err := m.Check(); err != nil {
		t.Errorf("Check: %v", err)
	}
}

// Rebuilding a mesh from its own buffers yields identical entity
// counts even though edge identities may differ.
func TestRebuildRoundTrip(t *testing.T) {
	m, err := Icosphere(1)
	if err != nil {
		t.Fatalf("Icosphere: %v", err)
	}
	positions := make([]float32, 0, 3*m.NumVertices())
	for v := 0; v < m.NumVertices(); v++ {
		p := m.Position(VertexID(v))
		positions = append(positions, p.X, p.Y, p.Z)
	}
	indices := make([]uint32, 0, 3*m.NumFaces())
	for f := 0; f < m.NumFaces(); f++ {
		for _, v := range m.FaceVertices(FaceID(f)) {
			indices = append(indices, uint32(v))
		}
	}
	m2, err := NewMesh(positions, indices)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if m2.NumVertices() != m.NumVertices() || m2.NumEdges() != m.NumEdges() || m2.NumFaces() != m.NumFaces() {
		t.Errorf("rebuilt counts = (%d, %d, %d), want (%d, %d, %d)",
			m2.NumVertices(), m2.NumEdges(), m2.NumFaces(),
			m.NumVertices(), m.NumEdges(), m.NumFaces())
	}
}
