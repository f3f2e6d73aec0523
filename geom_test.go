package geodesic

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestCornerAngle(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    float64
		wantErr bool
	}{
		{name: "equilateral", a: 1, b: 1, c: 1, want: math.Pi / 3},
		{name: "right isoceles hypotenuse", a: math.Sqrt2, b: 1, c: 1, want: math.Pi / 2},
		{name: "3-4-5 right angle", a: 5, b: 3, c: 4, want: math.Pi / 2},
		{name: "zero side", a: 1, b: 0, c: 1, wantErr: true},
		{name: "inequality violated", a: 10, b: 1, c: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cornerAngle(tt.a, tt.b, tt.c)
			if tt.wantErr {
				if !errors.Is(err, ErrDegenerateTriangle) {
					t.Fatalf("cornerAngle = %v, %v; want ErrDegenerateTriangle", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("cornerAngle: %v", err)
			}
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("cornerAngle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeronArea(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    float64
		wantErr bool
	}{
		{name: "3-4-5", a: 3, b: 4, c: 5, want: 6},
		{name: "equilateral", a: 2, b: 2, c: 2, want: math.Sqrt(3)},
		{name: "zero side", a: 0, b: 1, c: 1, wantErr: true},
		{name: "violated", a: 1, b: 1, c: 5, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := heronArea(tt.a, tt.b, tt.c)
			if tt.wantErr {
				if !errors.Is(err, ErrDegenerateTriangle) {
					t.Fatalf("heronArea = %v, %v; want ErrDegenerateTriangle", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("heronArea: %v", err)
			}
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("heronArea = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAngleBetween(t *testing.T) {
	tests := []struct {
		name              string
		theta, start, end float64
		want              bool
	}{
		{name: "inside simple", theta: 1, start: 0.5, end: 2, want: true},
		{name: "at start inclusive", theta: 0.5, start: 0.5, end: 2, want: true},
		{name: "at end exclusive", theta: 2, start: 0.5, end: 2, want: false},
		{name: "outside", theta: 3, start: 0.5, end: 2, want: false},
		{name: "wraparound inside", theta: 0.1, start: 6, end: 1, want: true},
		{name: "wraparound outside", theta: 3, start: 6, end: 1, want: false},
		{name: "negative theta", theta: -0.2, start: 6, end: 1, want: true},
		{name: "empty interval", theta: 1, start: 1, end: 1, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAngleBetween(tt.theta, tt.start, tt.end); got != tt.want {
				t.Errorf("IsAngleBetween(%v, %v, %v) = %v, want %v", tt.theta, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestMod2Pi(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := mod2Pi(tt.in); math.Abs(got-tt.want) > epsilon {
			t.Errorf("mod2Pi(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLayoutTriangle(t *testing.T) {
	// 3-4-5 right triangle: b along +X, apex above.
	p0, p1, p2, err := layoutTriangle(5, 3, 4)
	if err != nil {
		t.Fatalf("layoutTriangle: %v", err)
	}
	if p0.X != 0 || p0.Y != 0 {
		t.Errorf("origin = %v", p0)
	}
	if math.Abs(p1.X-3) > epsilon || p1.Y != 0 {
		t.Errorf("base corner = %v, want (3,0)", p1)
	}
	if p2.Y <= 0 {
		t.Errorf("apex below base: %v", p2)
	}
	if d := p1.Sub(p2).Length(); math.Abs(d-5) > epsilon {
		t.Errorf("opposite side length = %v, want 5", d)
	}
}

func TestRaySegmentIntersect(t *testing.T) {
	tests := []struct {
		name        string
		origin, dir Vec2
		p, q        Vec2
		wantOK      bool
		wantT       float64
	}{
		{name: "hit", origin: V2(0, 0), dir: V2(1, 0), p: V2(2, -1), q: V2(2, 1), wantOK: true, wantT: 2},
		{name: "behind origin", origin: V2(0, 0), dir: V2(-1, 0), p: V2(2, -1), q: V2(2, 1), wantOK: false},
		{name: "misses segment", origin: V2(0, 5), dir: V2(1, 0), p: V2(2, -1), q: V2(2, 1), wantOK: false},
		{name: "parallel", origin: V2(0, 0), dir: V2(0, 1), p: V2(2, -1), q: V2(2, 1), wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt, _, ok := raySegmentIntersect(tt.origin, tt.dir, tt.p, tt.q)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(gt-tt.wantT) > epsilon {
				t.Errorf("t = %v, want %v", gt, tt.wantT)
			}
		})
	}
}

func TestPoint3Ops(t *testing.T) {
	p := Pt3(1, 2, 2)
	if got := p.Length(); math.Abs(float64(got)-3) > 1e-6 {
		t.Errorf("Length = %v, want 3", got)
	}
	if got := p.Normalize().Length(); math.Abs(float64(got)-1) > 1e-6 {
		t.Errorf("normalized length = %v, want 1", got)
	}
	if got := Pt3(1, 0, 0).Cross(Pt3(0, 1, 0)); got != Pt3(0, 0, 1) {
		t.Errorf("Cross = %v, want (0,0,1)", got)
	}
	if got := Pt3(3, 0, 4).Distance(Pt3(0, 0, 0)); math.Abs(float64(got)-5) > 1e-6 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := (Point3{}).Normalize(); got != (Point3{}) {
		t.Errorf("Normalize of zero = %v, want zero", got)
	}
}
