package geodesic

import (
	"errors"
	"math"
	"testing"
)

// starLinkEdges returns three pairwise-disjoint link edges around v:
// every second edge of the hexagonal link of a degree-6 vertex. A loop
// through them encircles v's star.
func starLinkEdges(t *testing.T, m *Mesh, v VertexID) []EdgeID {
	t.Helper()
	out := m.OutgoingHalfedges(v)
	if len(out) != 6 {
		t.Fatalf("vertex %d: degree %d, want 6", v, len(out))
	}
	return []EdgeID{
		m.Edge(m.Next(out[0])),
		m.Edge(m.Next(out[2])),
		m.Edge(m.Next(out[4])),
	}
}

func TestLoopAroundVertexStar(t *testing.T) {
	m, err := Torus(16, 32, 2, 0.5)
	if err != nil {
		t.Fatalf("Torus: %v", err)
	}
	center := VertexID(100)
	waypoints := starLinkEdges(t, m, center)

	net, err := NewLoopNetworkFromEdgeWaypoints(m, waypoints)
	if err != nil {
		t.Fatalf("NewLoopNetworkFromEdgeWaypoints: %v", err)
	}
	res, err := net.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if len(res.Loop.Edges()) < 3 {
		t.Fatalf("loop edges = %d, want >= 3", len(res.Loop.Edges()))
	}
	// Every loop vertex is a pinned waypoint endpoint, so shortening
	// has nothing to do.
	if res.Stats.Iterations != 0 || !res.Stats.Converged {
		t.Errorf("stats = (%d, %v), want (0, true)", res.Stats.Iterations, res.Stats.Converged)
	}
	for _, e := range waypoints {
		if !res.Loop.ContainsEdge(e) {
			t.Errorf("waypoint edge %d missing from the loop", e)
		}
	}

	seg := res.Segmentation
	counts := 0
	for _, r := range []Region{RegionInside, RegionOutside, RegionBoundary} {
		counts += len(seg.FacesIn(r))
	}
	if counts != m.NumFaces() {
		t.Errorf("classified faces = %d, want %d", counts, m.NumFaces())
	}
	if seg.Area(RegionInside) <= 0 || seg.Area(RegionOutside) <= 0 {
		t.Errorf("areas = (%v, %v), want both positive",
			seg.Area(RegionInside), seg.Area(RegionOutside))
	}

	// The loop encircles the center vertex: its star must be entirely
	// on one side.
	starRegion := seg.RegionOf(m.Face(m.VertexHalfedge(center)))
	for _, h := range m.OutgoingHalfedges(center) {
		if got := seg.RegionOf(m.Face(h)); got != starRegion {
			t.Errorf("star face region = %v, want %v", got, starRegion)
		}
	}
}

func TestLoopPolylineClosure(t *testing.T) {
	m, err := Torus(16, 32, 2, 0.5)
	if err != nil {
		t.Fatalf("Torus: %v", err)
	}
	net, err := NewLoopNetworkFromEdgeWaypoints(m, starLinkEdges(t, m, 200))
	if err != nil {
		t.Fatalf("NewLoopNetworkFromEdgeWaypoints: %v", err)
	}
	if _, err := net.Compute(); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	line := net.LoopPolyline3D()
	if len(line) < 4 {
		t.Fatalf("polyline points = %d, want >= 4", len(line))
	}
	first, last := line[0], line[len(line)-1]
	if first.Distance(last) > 1e-5 {
		t.Errorf("polyline not closed: %v vs %v", first, last)
	}
}

func TestLoopSpreadWaypoints(t *testing.T) {
	m, err := Torus(16, 32, 2, 0.5)
	if err != nil {
		t.Fatalf("Torus: %v", err)
	}
	ne := EdgeID(m.NumEdges())
	waypoints := []EdgeID{0, ne / 4, ne / 2, 3 * ne / 4}

	net, err := NewLoopNetworkFromEdgeWaypoints(m, waypoints)
	if err != nil {
		t.Fatalf("NewLoopNetworkFromEdgeWaypoints: %v", err)
	}
	res, err := net.Compute()
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if len(res.Loop.Edges()) < 3 {
		t.Fatalf("loop edges = %d, want >= 3", len(res.Loop.Edges()))
	}
	if res.Stats.FinalLength > res.Stats.InitialLength+1e-10 {
		t.Errorf("loop length grew: %v -> %v", res.Stats.InitialLength, res.Stats.FinalLength)
	}
	counts := 0
	for _, r := range []Region{RegionInside, RegionOutside, RegionBoundary} {
		counts += len(res.Segmentation.FacesIn(r))
	}
	if counts != m.NumFaces() {
		t.Errorf("classified faces = %d, want %d", counts, m.NumFaces())
	}
	if err := m.Check(); err != nil {
		t.Errorf("mesh Check after loop shortening: %v", err)
	}
}

func TestLoopOrderingSkipsSharedEndpoint(t *testing.T) {
	m, err := Plane(2, 2, 2, 2)
	if err != nil {
		t.Fatalf("Plane: %v", err)
	}
	// Two waypoint edges sharing vertex 4: the self-crossing guard
	// cannot place the second one.
	shared := []EdgeID{findEdge(t, m, 1, 4), findEdge(t, m, 4, 3)}

	net, err := NewLoopNetworkFromEdgeWaypoints(m, shared, WithRequireAllEdges(true))
	if err != nil {
		t.Fatalf("NewLoopNetworkFromEdgeWaypoints: %v", err)
	}
	if _, err := net.Compute(); !errors.Is(err, ErrTooManySkipped) {
		t.Errorf("requireAllEdges error = %v, want ErrTooManySkipped", err)
	}

	net, err = NewLoopNetworkFromEdgeWaypoints(m, shared, WithMaxSkippedEdges(0))
	if err != nil {
		t.Fatalf("NewLoopNetworkFromEdgeWaypoints: %v", err)
	}
	if _, err := net.Compute(); !errors.Is(err, ErrTooManySkipped) {
		t.Errorf("maxSkippedEdges error = %v, want ErrTooManySkipped", err)
	}
}

func TestLoopNetworkValidation(t *testing.T) {
	m, err := Icosahedron()
	if err != nil {
		t.Fatalf("Icosahedron: %v", err)
	}
	if _, err := NewLoopNetworkFromEdgeWaypoints(m, nil); !errors.Is(err, ErrPrecondition) {
		t.Errorf("empty waypoints error = %v, want ErrPrecondition", err)
	}
	if _, err := NewLoopNetworkFromEdgeWaypoints(m, []EdgeID{999}); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("out-of-range error = %v, want ErrMalformedInput", err)
	}
}

func TestOrderEdgeWaypointsNearestNeighbor(t *testing.T) {
	m, err := Torus(16, 32, 2, 0.5)
	if err != nil {
		t.Fatalf("Torus: %v", err)
	}
	waypoints := starLinkEdges(t, m, 300)
	ordering := orderEdgeWaypoints(m, waypoints, DefaultOrderingOptions(), true)

	if len(ordering.edges) != 3 || len(ordering.skipped) != 0 {
		t.Fatalf("ordering placed %d, skipped %d; want 3, 0", len(ordering.edges), len(ordering.skipped))
	}
	verts := ordering.vertices()
	if verts[0] != verts[len(verts)-1] {
		t.Errorf("vertex tour not closed: %v", verts)
	}
	if ordering.estimated <= 0 || math.IsInf(ordering.estimated, 1) {
		t.Errorf("estimated tour length = %v", ordering.estimated)
	}
}

func TestOrderEdgeWaypointsGivenOrder(t *testing.T) {
	m, err := Torus(16, 32, 2, 0.5)
	if err != nil {
		t.Fatalf("Torus: %v", err)
	}
	waypoints := starLinkEdges(t, m, 300)
	oo := DefaultOrderingOptions()
	oo.UseNearestNeighbor = false
	oo.Use2Opt = false
	ordering := orderEdgeWaypoints(m, waypoints, oo, true)

	if len(ordering.edges) != 3 {
		t.Fatalf("ordering placed %d edges, want 3", len(ordering.edges))
	}
	for i, oe := range ordering.edges {
		if oe.edge != waypoints[i] {
			t.Errorf("position %d: edge %d, want the given order %d", i, oe.edge, waypoints[i])
		}
	}
}

func TestSegmentationSingleFaceLoop(t *testing.T) {
	m, err := Icosahedron()
	if err != nil {
		t.Fatalf("Icosahedron: %v", err)
	}
	// The triangle 0-11-5 is face 0; its edge loop separates that one
	// face from the other nineteen.
	loop, err := NewGeodesicLoop(m, []EdgeID{
		findEdge(t, m, 0, 11),
		findEdge(t, m, 11, 5),
		findEdge(t, m, 5, 0),
	}, 0)
	if err != nil {
		t.Fatalf("NewGeodesicLoop: %v", err)
	}
	seg := NewSegmentation(m, loop)

	inside := seg.FacesIn(RegionInside)
	outside := seg.FacesIn(RegionOutside)
	boundary := seg.FacesIn(RegionBoundary)
	if len(inside) != 1 || len(outside) != 19 || len(boundary) != 0 {
		t.Fatalf("regions = (%d, %d, %d), want (1, 19, 0)", len(inside), len(outside), len(boundary))
	}
	if inside[0] != 0 {
		t.Errorf("inside face = %d, want 0", inside[0])
	}
	if seg.Area(RegionInside) <= 0 || seg.Area(RegionOutside) <= seg.Area(RegionInside) {
		t.Errorf("areas = (%v, %v)", seg.Area(RegionInside), seg.Area(RegionOutside))
	}

	regions := seg.FaceRegionMap()
	if len(regions) != m.NumFaces() {
		t.Fatalf("region map size = %d, want %d", len(regions), m.NumFaces())
	}
	for f, r := range regions {
		if seg.RegionOf(FaceID(f)) != r {
			t.Errorf("face %d: RegionOf disagrees with FaceRegionMap", f)
		}
	}
}

func TestRegionString(t *testing.T) {
	tests := []struct {
		r    Region
		want string
	}{
		{RegionInside, "inside"},
		{RegionOutside, "outside"},
		{RegionBoundary, "boundary"},
		{regionUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.r, got, tt.want)
		}
	}
}
