package geodesic

import "errors"

// Error sentinels for the failure classes of the core. Callers match
// them with errors.Is; concrete errors wrap a sentinel and add context.
var (
	// ErrMalformedInput reports a missing or invalid position/index
	// buffer: no positions, no index buffer, a count that is not a
	// multiple of three, or an index referencing a missing vertex.
	ErrMalformedInput = errors.New("geodesic: malformed input")

	// ErrNonManifold reports an edge with more than two incident
	// halfedges, or two incident halfedges with the same orientation.
	ErrNonManifold = errors.New("geodesic: non-manifold topology")

	// ErrDegenerateTriangle reports edge lengths that violate the
	// triangle inequality, or zero-length adjacent sides, during an
	// angle or area computation.
	ErrDegenerateTriangle = errors.New("geodesic: degenerate triangle")

	// ErrNoPath reports that Dijkstra could not reach the target.
	ErrNoPath = errors.New("geodesic: no path")

	// ErrPrecondition reports an operation invoked outside its
	// contract: a loop built from fewer than 3 edges, a piecewise path
	// from fewer than 2 waypoints, an angle query on a non-interior
	// vertex, and similar programmer errors.
	ErrPrecondition = errors.New("geodesic: precondition violated")

	// ErrTooManySkipped reports that the loop ordering skipped more
	// waypoint edges than the caller allowed.
	ErrTooManySkipped = errors.New("geodesic: too many skipped edges")
)
