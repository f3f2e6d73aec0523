// Package objfile reads the subset of Wavefront OBJ needed to feed a
// triangle mesh into the geodesic core: v lines become the position
// buffer, f lines (fan-triangulated for polygons) become the index
// buffer. Everything else is ignored.
package objfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse reads OBJ data and returns flat position (x,y,z per vertex)
// and CCW triangle index buffers.
func Parse(r io.Reader) (positions []float32, indices []uint32, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("objfile: line %d: vertex needs 3 coordinates", lineNo)
			}
			for _, f := range fields[1:4] {
				x, perr := strconv.ParseFloat(f, 32)
				if perr != nil {
					return nil, nil, fmt.Errorf("objfile: line %d: %w", lineNo, perr)
				}
				positions = append(positions, float32(x))
			}
		case "f":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("objfile: line %d: face needs at least 3 vertices", lineNo)
			}
			corners := make([]uint32, 0, len(fields)-1)
			for _, f := range fields[1:] {
				idx, perr := parseFaceIndex(f, len(positions)/3)
				if perr != nil {
					return nil, nil, fmt.Errorf("objfile: line %d: %w", lineNo, perr)
				}
				corners = append(corners, idx)
			}
			// Fan-triangulate polygons.
			for i := 1; i+1 < len(corners); i++ {
				indices = append(indices, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("objfile: %w", err)
	}
	return positions, indices, nil
}

// parseFaceIndex resolves one face corner ("7", "7/1", "7//3", "-1")
// to a zero-based vertex index.
func parseFaceIndex(field string, numVerts int) (uint32, error) {
	if i := strings.IndexByte(field, '/'); i >= 0 {
		field = field[:i]
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n += numVerts + 1
	}
	if n < 1 || n > numVerts {
		return 0, fmt.Errorf("vertex index %s out of range (1..%d)", field, numVerts)
	}
	return uint32(n - 1), nil
}

// Load reads an OBJ file from disk.
func Load(path string) (positions []float32, indices []uint32, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Parse(f)
}
