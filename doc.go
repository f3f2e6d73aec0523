// Package geodesic computes exact polyhedral geodesics on triangulated
// 2-manifolds.
//
// # Overview
//
// geodesic is a Pure Go library for shortening edge paths on triangle
// meshes into locally shortest (geodesic) paths. It maintains an
// intrinsic triangulation whose connectivity can be mutated by edge
// flips while the extrinsic 3D embedding stays fixed, and straightens
// paths with the FlipOut procedure: flip every non-path edge inside a
// wedge narrower than pi until the path unfolds flat at every interior
// vertex. Closed geodesic loops through waypoint edges and the
// inside/outside face segmentation they induce are supported as well.
//
// # Quick Start
//
//	import "github.com/gogpu/geodesic"
//
//	mesh, err := geodesic.Icosphere(2)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	net, err := geodesic.NewFlipNetworkFromDijkstraPath(mesh, 0, 81)
//	if err != nil {
//		log.Fatal(err)
//	}
//	iterations, converged := net.IterativeShorten()
//	fmt.Println(iterations, converged, net.TotalLength())
//
// # Architecture
//
// The library is organized into:
//   - Mesh: halfedge connectivity plus per-edge intrinsic lengths,
//     mutated only by FlipEdge
//   - SignpostIndex: per-vertex CCW angular coordinates for outgoing
//     halfedges, updated incrementally after each flip
//   - Dijkstra: shortest-path bootstrap over the vertex graph
//   - FlipNetwork / LoopNetwork: the FlipOut iterative shortener for
//     open paths and closed loops
//   - Segmentation: inside/outside/boundary face classification for
//     closed loops
//
// All entities are addressed by copyable typed handles (VertexID,
// HalfedgeID, EdgeID, FaceID) into arenas owned by the Mesh. Flips
// never delete entities, so handles stay valid for the mesh lifetime.
//
// # Coordinate Conventions
//
// Triangle index buffers are CCW. Signpost angles are in radians and
// increase counter-clockwise from the vertex's reference halfedge at 0,
// accumulating face angles up to the vertex's total fan angle. They are
// not reduced modulo 2*pi, so at a vertex whose fan angle exceeds 2*pi
// they can exceed 2*pi; AngleBetween reports differences modulo 2*pi.
// Intrinsic edge lengths are float64;
// extrinsic positions are float32, matching typical mesh buffers.
//
// # Concurrency
//
// The core is single-threaded. A Mesh and everything referencing it
// must be confined to one goroutine while a shortening call runs.
package geodesic
