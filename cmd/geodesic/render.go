package main

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/geodesic"
)

// renderPreview draws an XY-projected preview of the mesh wireframe
// with the computed polylines on top, and saves it as a PNG.
func renderPreview(path string, size int, mesh *geodesic.Mesh, polylines [][]geodesic.Point3) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for v := 0; v < mesh.NumVertices(); v++ {
		p := mesh.Position(geodesic.VertexID(v))
		minX = math.Min(minX, float64(p.X))
		maxX = math.Max(maxX, float64(p.X))
		minY = math.Min(minY, float64(p.Y))
		maxY = math.Max(maxY, float64(p.Y))
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	const margin = 24.0
	scale := (float64(size) - 2*margin) / span
	project := func(p geodesic.Point3) (float64, float64) {
		// Flip Y: image coordinates grow downward.
		return margin + (float64(p.X)-minX)*scale,
			float64(size) - margin - (float64(p.Y)-minY)*scale
	}

	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	dc.SetRGB(0.8, 0.8, 0.8)
	dc.SetLineWidth(1)
	for e := 0; e < mesh.NumEdges(); e++ {
		a, b := mesh.EdgeVertices(geodesic.EdgeID(e))
		ax, ay := project(mesh.Position(a))
		bx, by := project(mesh.Position(b))
		dc.MoveTo(ax, ay)
		dc.LineTo(bx, by)
	}
	dc.Stroke()

	dc.SetRGB(0.85, 0.1, 0.1)
	dc.SetLineWidth(3)
	for _, line := range polylines {
		for i, p := range line {
			x, y := project(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
	}
	dc.Stroke()
	return dc.SavePNG(path)
}
