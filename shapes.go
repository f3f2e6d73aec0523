package geodesic

import "github.com/chewxy/math32"

// Primitive mesh generators. Tests and examples need closed manifold
// meshes with known structure; these build the usual suspects directly
// as position/index buffers and hand them to NewMesh.

// icosahedronData returns the raw buffers of a unit icosahedron
// (12 vertices, 20 CCW outward faces).
func icosahedronData() ([]float32, []uint32) {
	t := float32((1 + math32.Sqrt(5)) / 2)
	raw := []Point3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	positions := make([]float32, 0, 3*len(raw))
	for _, p := range raw {
		u := p.Normalize()
		positions = append(positions, u.X, u.Y, u.Z)
	}
	indices := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return positions, indices
}

// Icosahedron builds a unit icosahedron.
func Icosahedron() (*Mesh, error) {
	positions, indices := icosahedronData()
	return NewMesh(positions, indices)
}

// Icosphere builds a unit sphere by subdividing an icosahedron the
// given number of times; every subdivision splits each face into four
// and projects the new vertices onto the sphere. Zero subdivisions
// yield the icosahedron itself.
func Icosphere(subdivisions int) (*Mesh, error) {
	positions, indices := icosahedronData()
	for s := 0; s < subdivisions; s++ {
		type vpair struct{ lo, hi uint32 }
		midpoint := make(map[vpair]uint32)
		mid := func(a, b uint32) uint32 {
			key := vpair{lo: a, hi: b}
			if key.lo > key.hi {
				key.lo, key.hi = key.hi, key.lo
			}
			if v, ok := midpoint[key]; ok {
				return v
			}
			pa := Pt3(positions[3*a], positions[3*a+1], positions[3*a+2])
			pb := Pt3(positions[3*b], positions[3*b+1], positions[3*b+2])
			pm := pa.Add(pb).Mul(0.5).Normalize()
			v := uint32(len(positions) / 3)
			positions = append(positions, pm.X, pm.Y, pm.Z)
			midpoint[key] = v
			return v
		}
		next := make([]uint32, 0, 4*len(indices))
		for i := 0; i < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			ab, bc, ca := mid(a, b), mid(b, c), mid(c, a)
			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca,
			)
		}
		indices = next
	}
	return NewMesh(positions, indices)
}

// Torus builds a torus with the given ring radius and tube radius,
// sampled on a radialSegments x tubularSegments vertex grid
// (radial around the tube cross-section, tubular around the ring).
func Torus(radialSegments, tubularSegments int, radius, tube float32) (*Mesh, error) {
	if radialSegments < 3 || tubularSegments < 3 {
		return nil, ErrMalformedInput
	}
	positions := make([]float32, 0, 3*radialSegments*tubularSegments)
	for i := 0; i < radialSegments; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(radialSegments)
		for j := 0; j < tubularSegments; j++ {
			phi := 2 * math32.Pi * float32(j) / float32(tubularSegments)
			r := radius + tube*math32.Cos(theta)
			positions = append(positions,
				r*math32.Cos(phi),
				r*math32.Sin(phi),
				tube*math32.Sin(theta),
			)
		}
	}
	at := func(i, j int) uint32 {
		i = (i + radialSegments) % radialSegments
		j = (j + tubularSegments) % tubularSegments
		return uint32(i*tubularSegments + j)
	}
	indices := make([]uint32, 0, 6*radialSegments*tubularSegments)
	for i := 0; i < radialSegments; i++ {
		for j := 0; j < tubularSegments; j++ {
			a, b, c, d := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			indices = append(indices, a, b, c, a, c, d)
		}
	}
	return NewMesh(positions, indices)
}

// Plane builds a flat triangulated grid in the XY plane spanning
// [0, width] x [0, height] with the given number of cells per side.
// Each cell is split along its (0,0)-(1,1) diagonal.
func Plane(cellsX, cellsY int, width, height float32) (*Mesh, error) {
	if cellsX < 1 || cellsY < 1 {
		return nil, ErrMalformedInput
	}
	positions := make([]float32, 0, 3*(cellsX+1)*(cellsY+1))
	for y := 0; y <= cellsY; y++ {
		for x := 0; x <= cellsX; x++ {
			positions = append(positions,
				width*float32(x)/float32(cellsX),
				height*float32(y)/float32(cellsY),
				0,
			)
		}
	}
	at := func(x, y int) uint32 { return uint32(y*(cellsX+1) + x) }
	indices := make([]uint32, 0, 6*cellsX*cellsY)
	for y := 0; y < cellsY; y++ {
		for x := 0; x < cellsX; x++ {
			a, b, c, d := at(x, y), at(x+1, y), at(x+1, y+1), at(x, y+1)
			indices = append(indices, a, b, c, a, c, d)
		}
	}
	return NewMesh(positions, indices)
}
