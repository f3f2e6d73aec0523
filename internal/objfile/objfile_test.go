package objfile

import (
	"strings"
	"testing"
)

func TestParseTriangles(t *testing.T) {
	const src = `
# comment
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
vn 0 0 1
f 1 2 3
f 2/1 4/2/3 3//1
`
	positions, indices, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(positions) != 12 {
		t.Fatalf("positions = %d floats, want 12", len(positions))
	}
	want := []uint32{0, 1, 2, 1, 3, 2}
	if len(indices) != len(want) {
		t.Fatalf("indices = %v, want %v", indices, want)
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", indices, want)
		}
	}
}

func TestParsePolygonFan(t *testing.T) {
	const src = `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	_, indices, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	if len(indices) != len(want) {
		t.Fatalf("indices = %v, want %v", indices, want)
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", indices, want)
		}
	}
}

func TestParseNegativeIndices(t *testing.T) {
	const src = `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	_, indices, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []uint32{0, 1, 2}
	for i := range want {
		if indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", indices, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "short vertex", src: "v 1 2\n"},
		{name: "short face", src: "v 0 0 0\nf 1 1\n"},
		{name: "bad float", src: "v a b c\n"},
		{name: "index out of range", src: "v 0 0 0\nf 1 2 3\n"},
		{name: "zero index", src: "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Parse(strings.NewReader(tt.src)); err == nil {
				t.Errorf("Parse accepted %q", tt.src)
			}
		})
	}
}
