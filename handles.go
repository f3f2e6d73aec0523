package geodesic

// Typed handles into the four mesh arenas. Handles are opaque,
// copyable, and stable for the entire mesh lifetime: flips rewire
// entities but never delete them.
type (
	// VertexID identifies a vertex.
	VertexID int32
	// HalfedgeID identifies a directed halfedge.
	HalfedgeID int32
	// EdgeID identifies an undirected edge.
	EdgeID int32
	// FaceID identifies a triangular face.
	FaceID int32
)

// Sentinels for absent references (a boundary halfedge's twin, an
// unreached Dijkstra parent, an omitted target).
const (
	NoVertex   VertexID   = -1
	NoHalfedge HalfedgeID = -1
	NoEdge     EdgeID     = -1
	NoFace     FaceID     = -1
)
