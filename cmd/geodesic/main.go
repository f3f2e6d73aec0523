// Command geodesic computes geodesic paths and loops on OBJ meshes.
//
// Usage:
//
//	geodesic shorten --mesh bunny.obj --from 0 --to 812 --json out.json
//	geodesic loop --mesh torus.obj --edges 0,128,256,384 --png loop.png
//	geodesic delaunay --mesh bunny.obj
//	geodesic job --file job.yaml
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/geodesic"
	"github.com/gogpu/geodesic/internal/objfile"
)

var (
	meshPath string
	verbose  bool

	jsonOut string
	pngOut  string
	pngSize int
)

func main() {
	root := &cobra.Command{
		Use:           "geodesic",
		Short:         "exact polyhedral geodesics on triangle meshes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				geodesic.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
			}
		},
	}
	root.PersistentFlags().StringVar(&meshPath, "mesh", "", "input OBJ mesh")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log shortening progress")

	root.AddCommand(shortenCmd(), loopCmd(), delaunayCmd(), jobCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "geodesic:", err)
		os.Exit(1)
	}
}

func loadMesh(path string) (*geodesic.Mesh, error) {
	if path == "" {
		return nil, fmt.Errorf("--mesh is required")
	}
	positions, indices, err := objfile.Load(path)
	if err != nil {
		return nil, err
	}
	return geodesic.NewMesh(positions, indices)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&jsonOut, "json", "", "write the result record as JSON")
	cmd.Flags().StringVar(&pngOut, "png", "", "render an XY-projected preview PNG")
	cmd.Flags().IntVar(&pngSize, "png-size", 1024, "preview size in pixels")
}

func shortenCmd() *cobra.Command {
	var (
		from, to     int64
		waypoints    []int64
		markInterior bool
		maxIter      int
		threshold    float64
	)
	cmd := &cobra.Command{
		Use:   "shorten",
		Short: "shorten a path between vertices into a geodesic",
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, err := loadMesh(meshPath)
			if err != nil {
				return err
			}
			opts := []geodesic.NetworkOption{
				geodesic.WithMaxIterations(maxIter),
				geodesic.WithConvergenceThreshold(threshold),
				geodesic.WithVerbose(verbose),
			}

			var net *geodesic.FlipNetwork
			var vIDs []geodesic.VertexID
			if len(waypoints) >= 2 {
				for _, w := range waypoints {
					vIDs = append(vIDs, geodesic.VertexID(w))
				}
				net, err = geodesic.NewFlipNetworkFromPiecewisePath(mesh, vIDs, markInterior, opts...)
			} else {
				vIDs = []geodesic.VertexID{geodesic.VertexID(from), geodesic.VertexID(to)}
				net, err = geodesic.NewFlipNetworkFromDijkstraPath(mesh, vIDs[0], vIDs[1], opts...)
			}
			if err != nil {
				return err
			}

			iterations, converged := net.IterativeShorten()
			fmt.Printf("iterations=%d converged=%v length=%.9f minAngle=%.9f\n",
				iterations, converged, net.TotalLength(), net.MinInteriorAngle())

			if jsonOut != "" {
				if err := writeJSON(jsonOut, net.Record(vIDs)); err != nil {
					return err
				}
			}
			if pngOut != "" {
				return renderPreview(pngOut, pngSize, mesh, net.PathPolylines3D())
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&from, "from", 0, "source vertex")
	cmd.Flags().Int64Var(&to, "to", 0, "target vertex")
	cmd.Flags().Int64SliceVar(&waypoints, "waypoints", nil, "piecewise waypoint vertices (overrides --from/--to)")
	cmd.Flags().BoolVar(&markInterior, "mark-interior", true, "pin interior waypoints")
	cmd.Flags().IntVar(&maxIter, "max-iterations", 10000, "outer iteration cap")
	cmd.Flags().Float64Var(&threshold, "threshold", 1e-10, "length convergence threshold")
	addOutputFlags(cmd)
	return cmd
}

func loopCmd() *cobra.Command {
	var (
		edges      []int64
		requireAll bool
		maxSkipped int
		noOptimize bool
	)
	cmd := &cobra.Command{
		Use:   "loop",
		Short: "compute a geodesic loop through waypoint edges",
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, err := loadMesh(meshPath)
			if err != nil {
				return err
			}
			var eIDs []geodesic.EdgeID
			for _, e := range edges {
				eIDs = append(eIDs, geodesic.EdgeID(e))
			}
			opts := []geodesic.NetworkOption{
				geodesic.WithVerbose(verbose),
				geodesic.WithRequireAllEdges(requireAll),
				geodesic.WithOptimizeOrder(!noOptimize),
			}
			if maxSkipped >= 0 {
				opts = append(opts, geodesic.WithMaxSkippedEdges(maxSkipped))
			}
			net, err := geodesic.NewLoopNetworkFromEdgeWaypoints(mesh, eIDs, opts...)
			if err != nil {
				return err
			}
			res, err := net.Compute()
			if err != nil {
				return err
			}
			fmt.Printf("iterations=%d converged=%v length=%.9f inside=%.6f outside=%.6f skipped=%d\n",
				res.Stats.Iterations, res.Stats.Converged, res.Loop.Length(),
				res.Segmentation.Area(geodesic.RegionInside),
				res.Segmentation.Area(geodesic.RegionOutside),
				len(res.Stats.SkippedEdges))

			if jsonOut != "" {
				if err := writeJSON(jsonOut, res.Stats); err != nil {
					return err
				}
			}
			if pngOut != "" {
				return renderPreview(pngOut, pngSize, mesh, [][]geodesic.Point3{net.LoopPolyline3D()})
			}
			return nil
		},
	}
	cmd.Flags().Int64SliceVar(&edges, "edges", nil, "waypoint edge ids")
	cmd.Flags().BoolVar(&requireAll, "require-all", false, "fail if any waypoint edge is skipped")
	cmd.Flags().IntVar(&maxSkipped, "max-skipped", -1, "max skipped waypoint edges (-1: unbounded)")
	cmd.Flags().BoolVar(&noOptimize, "no-optimize-order", false, "keep the given edge order")
	addOutputFlags(cmd)
	return cmd
}

func delaunayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delaunay",
		Short: "flip the intrinsic triangulation to Delaunay",
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, err := loadMesh(meshPath)
			if err != nil {
				return err
			}
			flips := mesh.MakeDelaunay()
			fmt.Printf("flips=%d edges=%d\n", flips, mesh.NumEdges())
			return nil
		},
	}
}

// jobSpec is the YAML job file consumed by the job subcommand.
type jobSpec struct {
	Mesh         string  `yaml:"mesh"`
	Mode         string  `yaml:"mode"` // "path" or "loop"
	From         int64   `yaml:"from"`
	To           int64   `yaml:"to"`
	Waypoints    []int64 `yaml:"waypoints"`
	Edges        []int64 `yaml:"edges"`
	MarkInterior bool    `yaml:"markInterior"`
	MaxIter      int     `yaml:"maxIterations"`
	Threshold    float64 `yaml:"convergenceThreshold"`
	RequireAll   bool    `yaml:"requireAllEdges"`
	JSON         string  `yaml:"json"`
	PNG          string  `yaml:"png"`
}

func jobCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "job",
		Short: "run a shortening job described by a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			spec := jobSpec{MaxIter: 10000, Threshold: 1e-10, MarkInterior: true}
			if err := yaml.Unmarshal(raw, &spec); err != nil {
				return err
			}
			mesh, err := loadMesh(spec.Mesh)
			if err != nil {
				return err
			}

			switch spec.Mode {
			case "loop":
				var eIDs []geodesic.EdgeID
				for _, e := range spec.Edges {
					eIDs = append(eIDs, geodesic.EdgeID(e))
				}
				net, err := geodesic.NewLoopNetworkFromEdgeWaypoints(mesh, eIDs,
					geodesic.WithVerbose(verbose),
					geodesic.WithRequireAllEdges(spec.RequireAll),
					geodesic.WithMaxIterations(spec.MaxIter),
					geodesic.WithConvergenceThreshold(spec.Threshold))
				if err != nil {
					return err
				}
				res, err := net.Compute()
				if err != nil {
					return err
				}
				fmt.Printf("iterations=%d converged=%v length=%.9f\n",
					res.Stats.Iterations, res.Stats.Converged, res.Loop.Length())
				if spec.PNG != "" {
					return renderPreview(spec.PNG, 1024, mesh, [][]geodesic.Point3{net.LoopPolyline3D()})
				}
				return nil
			default:
				waypoints := spec.Waypoints
				if len(waypoints) < 2 {
					waypoints = []int64{spec.From, spec.To}
				}
				var vIDs []geodesic.VertexID
				for _, w := range waypoints {
					vIDs = append(vIDs, geodesic.VertexID(w))
				}
				net, err := geodesic.NewFlipNetworkFromPiecewisePath(mesh, vIDs, spec.MarkInterior,
					geodesic.WithVerbose(verbose),
					geodesic.WithMaxIterations(spec.MaxIter),
					geodesic.WithConvergenceThreshold(spec.Threshold))
				if err != nil {
					return err
				}
				iterations, converged := net.IterativeShorten()
				fmt.Printf("iterations=%d converged=%v length=%.9f\n",
					iterations, converged, net.TotalLength())
				if spec.JSON != "" {
					if err := writeJSON(spec.JSON, net.Record(vIDs)); err != nil {
						return err
					}
				}
				if spec.PNG != "" {
					return renderPreview(spec.PNG, 1024, mesh, net.PathPolylines3D())
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "job YAML file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
