package geodesic

import "math"

// NetworkOption configures a FlipNetwork or LoopNetwork during
// creation.
//
// Example:
//
//	net, err := geodesic.NewFlipNetworkFromDijkstraPath(mesh, src, tgt,
//		geodesic.WithMaxIterations(500),
//		geodesic.WithVerbose(true))
type NetworkOption func(*networkOptions)

// OrderingOptions tunes the waypoint-edge ordering optimiser used by
// loop networks.
type OrderingOptions struct {
	// UseNearestNeighbor enables the greedy nearest-neighbour
	// construction; when false the edges keep their given order.
	UseNearestNeighbor bool

	// Use2Opt enables 2-opt refinement of the constructed tour.
	Use2Opt bool

	// Max2OptIterations bounds the number of 2-opt improvement passes.
	Max2OptIterations int

	// SkipCrossingEdges applies the conservative self-crossing guard:
	// a candidate vertex that already appears in the partial ordering
	// is rejected, and edges that cannot be placed are skipped.
	SkipCrossingEdges bool
}

// DefaultOrderingOptions returns the ordering defaults.
func DefaultOrderingOptions() OrderingOptions {
	return OrderingOptions{
		UseNearestNeighbor: true,
		Use2Opt:            true,
		Max2OptIterations:  100,
		SkipCrossingEdges:  true,
	}
}

// networkOptions holds the option bag shared by both network kinds.
type networkOptions struct {
	maxIterations        int
	convergenceThreshold float64
	verbose              bool
	optimizeOrder        bool
	ordering             OrderingOptions
	requireAllEdges      bool
	maxSkippedEdges      int
}

func defaultNetworkOptions() networkOptions {
	return networkOptions{
		maxIterations:        10000,
		convergenceThreshold: 1e-10,
		optimizeOrder:        true,
		ordering:             DefaultOrderingOptions(),
		maxSkippedEdges:      math.MaxInt,
	}
}

// WithMaxIterations sets the hard cap on FlipOut outer iterations.
// The default is 10000.
func WithMaxIterations(n int) NetworkOption {
	return func(o *networkOptions) { o.maxIterations = n }
}

// WithConvergenceThreshold sets the length-change break condition.
// The default is 1e-10.
func WithConvergenceThreshold(t float64) NetworkOption {
	return func(o *networkOptions) { o.convergenceThreshold = t }
}

// WithVerbose enables per-iteration progress lines through the package
// logger (see SetLogger).
func WithVerbose(v bool) NetworkOption {
	return func(o *networkOptions) { o.verbose = v }
}

// WithOptimizeOrder toggles the waypoint-edge ordering optimiser for
// loop networks. The default is on.
func WithOptimizeOrder(v bool) NetworkOption {
	return func(o *networkOptions) { o.optimizeOrder = v }
}

// WithOrderingOptions replaces the ordering optimiser tuning.
func WithOrderingOptions(oo OrderingOptions) NetworkOption {
	return func(o *networkOptions) { o.ordering = oo }
}

// WithRequireAllEdges makes a loop build fail when any waypoint edge
// is skipped by the ordering guard. The default is off.
func WithRequireAllEdges(v bool) NetworkOption {
	return func(o *networkOptions) { o.requireAllEdges = v }
}

// WithMaxSkippedEdges bounds how many waypoint edges the ordering may
// skip before the loop build fails. The default is unbounded.
func WithMaxSkippedEdges(n int) NetworkOption {
	return func(o *networkOptions) { o.maxSkippedEdges = n }
}
