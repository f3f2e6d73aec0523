package geodesic

// Record is a serialisable summary of a shortening run, in the shape
// collaborators persist: vertex paths, lengths, marks, polylines, and
// the waypoints needed to re-run the bootstrap. The core does not read
// this format back; reconstruction re-runs Dijkstra from Waypoints.
type Record struct {
	Paths          [][]VertexID `json:"paths"`
	Lengths        []float64    `json:"lengths"`
	MarkedVertices []VertexID   `json:"markedVertices"`
	Polylines      [][]Point3   `json:"polylines"`
	Waypoints      []VertexID   `json:"waypoints"`
}

// Record summarizes the network's current paths. The waypoints are
// supplied by the caller (the network does not retain them).
func (n *FlipNetwork) Record(waypoints []VertexID) *Record {
	r := &Record{
		Polylines: n.PathPolylines3D(),
		Waypoints: append([]VertexID(nil), waypoints...),
	}
	for _, p := range n.paths {
		r.Paths = append(r.Paths, p.Vertices())
		r.Lengths = append(r.Lengths, p.Length())
	}
	for v := 0; v < n.mesh.NumVertices(); v++ {
		if n.mesh.Marked(VertexID(v)) {
			r.MarkedVertices = append(r.MarkedVertices, VertexID(v))
		}
	}
	return r
}
