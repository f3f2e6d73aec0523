package geodesic

// Region classifies a face relative to a closed geodesic loop.
type Region int8

// Face regions. Inside is the left of the loop's travel direction.
const (
	RegionInside Region = iota
	RegionOutside
	RegionBoundary
)

// regionUnknown marks faces not yet reached during classification.
// It never survives into the final map.
const regionUnknown Region = -1

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionInside:
		return "inside"
	case RegionOutside:
		return "outside"
	case RegionBoundary:
		return "boundary"
	}
	return "unknown"
}

// Segmentation classifies every face of a mesh as inside, outside, or
// boundary relative to a closed geodesic loop, by flood fill over
// non-loop edges from a seed face on each side.
type Segmentation struct {
	mesh    *Mesh
	regions []Region
	areas   [3]float64
}

// NewSegmentation computes the face classification induced by loop.
// The loop's faces on its left become inside. A non-separating loop
// still yields a total classification: unreached faces touching a
// loop edge become boundary, the rest are filled by majority vote of
// their neighbours and default to outside.
func NewSegmentation(m *Mesh, loop *GeodesicLoop) *Segmentation {
	s := &Segmentation{
		mesh:    m,
		regions: make([]Region, m.NumFaces()),
	}
	for i := range s.regions {
		s.regions[i] = regionUnknown
	}

	inLoop := make([]bool, m.NumEdges())
	for _, e := range loop.Edges() {
		inLoop[e] = true
	}

	// Seed faces: the first loop edge oriented away from the base
	// vertex has the inside region on its left; its twin's face is the
	// outside seed.
	h := m.EdgeHalfedge(loop.Edges()[0])
	if m.Source(h) != loop.Base() {
		if t := m.Twin(h); t != NoHalfedge {
			h = t
		}
	}
	s.flood(m.Face(h), RegionInside, inLoop)
	if t := m.Twin(h); t != NoHalfedge {
		s.flood(m.Face(t), RegionOutside, inLoop)
	}

	// Unreached faces touching the loop are boundary.
	for f := 0; f < m.NumFaces(); f++ {
		if s.regions[f] != regionUnknown {
			continue
		}
		fh := m.FaceHalfedge(FaceID(f))
		for k := 0; k < 3; k++ {
			if inLoop[m.Edge(fh)] {
				s.regions[f] = RegionBoundary
				break
			}
			fh = m.Next(fh)
		}
	}

	// Remaining unknowns take the majority region of their neighbours,
	// iterated to a fixed point with a cap; residual unknowns default
	// to outside.
	const maxVotePasses = 100
	for pass := 0; pass < maxVotePasses; pass++ {
		changed := false
		for f := 0; f < m.NumFaces(); f++ {
			if s.regions[f] != regionUnknown {
				continue
			}
			inside, outside := 0, 0
			fh := m.FaceHalfedge(FaceID(f))
			for k := 0; k < 3; k++ {
				if t := m.Twin(fh); t != NoHalfedge {
					switch s.regions[m.Face(t)] {
					case RegionInside:
						inside++
					case RegionOutside:
						outside++
					}
				}
				fh = m.Next(fh)
			}
			if inside > outside {
				s.regions[f] = RegionInside
				changed = true
			} else if outside > inside {
				s.regions[f] = RegionOutside
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	for f := range s.regions {
		if s.regions[f] == regionUnknown {
			s.regions[f] = RegionOutside
		}
	}

	for f := 0; f < m.NumFaces(); f++ {
		area, err := m.FaceArea(FaceID(f))
		if err != nil {
			continue
		}
		s.areas[s.regions[f]] += area
	}
	return s
}

// flood BFS-colors every face reachable from seed without crossing a
// loop edge.
func (s *Segmentation) flood(seed FaceID, region Region, inLoop []bool) {
	if seed == NoFace || s.regions[seed] != regionUnknown {
		return
	}
	queue := []FaceID{seed}
	s.regions[seed] = region
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		h := s.mesh.FaceHalfedge(f)
		for k := 0; k < 3; k++ {
			if t := s.mesh.Twin(h); t != NoHalfedge && !inLoop[s.mesh.Edge(h)] {
				nf := s.mesh.Face(t)
				if s.regions[nf] == regionUnknown {
					s.regions[nf] = region
					queue = append(queue, nf)
				}
			}
			h = s.mesh.Next(h)
		}
	}
}

// RegionOf returns the region of f.
func (s *Segmentation) RegionOf(f FaceID) Region { return s.regions[f] }

// FacesIn returns every face classified as r.
func (s *Segmentation) FacesIn(r Region) []FaceID {
	var faces []FaceID
	for f, fr := range s.regions {
		if fr == r {
			faces = append(faces, FaceID(f))
		}
	}
	return faces
}

// FaceRegionMap returns a copy of the full face-to-region map.
func (s *Segmentation) FaceRegionMap() []Region {
	return append([]Region(nil), s.regions...)
}

// Area returns the total face area (Heron) classified as r.
func (s *Segmentation) Area(r Region) float64 { return s.areas[r] }
