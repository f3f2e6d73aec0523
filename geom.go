package geodesic

import (
	"math"

	"github.com/chewxy/math32"
)

// Point3 represents an extrinsic 3D position or displacement.
// Positions come from float32 mesh buffers and stay float32; derived
// intrinsic quantities (lengths, angles) are computed in float64.
type Point3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Pt3 is a convenience function to create a Point3.
func Pt3(x, y, z float32) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Add returns the sum of two points (vector addition).
func (p Point3) Add(q Point3) Point3 {
	return Point3{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point3) Sub(q Point3) Point3 {
	return Point3{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Mul returns the point scaled by a scalar.
func (p Point3) Mul(s float32) Point3 {
	return Point3{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Dot returns the dot product of two vectors.
func (p Point3) Dot(q Point3) float32 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the 3D cross product.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// Length returns the length of the vector.
func (p Point3) Length() float32 {
	return math32.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Distance returns the Euclidean distance between two points.
func (p Point3) Distance(q Point3) float32 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if the original vector has zero length.
func (p Point3) Normalize() Point3 {
	length := p.Length()
	if length == 0 {
		return Point3{}
	}
	return Point3{X: p.X / length, Y: p.Y / length, Z: p.Z / length}
}

// Vec2 represents a point in an intrinsic planar layout. Triangles are
// unfolded into the plane in float64 so that wedge tests downstream of
// float32 positions do not lose the little precision they have.
type Vec2 struct {
	X, Y float64
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the 2D cross product (scalar).
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length (magnitude) of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// cornerAngle returns the interior angle opposite side a in a triangle
// with sides (a, b, c), by the law of cosines. The angle returned is the
// one enclosed by sides b and c.
func cornerAngle(a, b, c float64) (float64, error) {
	if b <= 0 || c <= 0 {
		return 0, ErrDegenerateTriangle
	}
	cos := (b*b + c*c - a*a) / (2 * b * c)
	// Tolerate rounding just past the valid range; anything further is
	// a genuine triangle-inequality violation.
	const slack = 1e-9
	if cos > 1+slack || cos < -1-slack {
		return 0, ErrDegenerateTriangle
	}
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos), nil
}

// heronArea returns the area of a triangle with sides (a, b, c).
func heronArea(a, b, c float64) (float64, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return 0, ErrDegenerateTriangle
	}
	s := (a + b + c) / 2
	arg := s * (s - a) * (s - b) * (s - c)
	if arg < 0 {
		if arg > -1e-12 {
			return 0, nil
		}
		return 0, ErrDegenerateTriangle
	}
	return math.Sqrt(arg), nil
}

// strictTriangle reports whether sides (a, b, c) satisfy the strict
// triangle inequality.
func strictTriangle(a, b, c float64) bool {
	return a > 0 && b > 0 && c > 0 &&
		a+b > c && b+c > a && c+a > b
}

// layoutTriangle places a triangle with side lengths (a, b, c) in the
// plane: the corner between b and c at the origin, side b along +X, and
// the third corner in the upper half plane. Returns the three corners
// (origin, end of b, apex).
func layoutTriangle(a, b, c float64) (Vec2, Vec2, Vec2, error) {
	angle, err := cornerAngle(a, b, c)
	if err != nil {
		return Vec2{}, Vec2{}, Vec2{}, err
	}
	return V2(0, 0), V2(b, 0), V2(c*math.Cos(angle), c*math.Sin(angle)), nil
}

// raySegmentIntersect intersects the ray from origin in direction dir
// with the segment p-q. Returns the ray parameter t >= 0 and the
// segment parameter s in [0, 1], and whether they intersect.
func raySegmentIntersect(origin, dir, p, q Vec2) (t, s float64, ok bool) {
	d := q.Sub(p)
	denom := dir.Cross(d)
	if math.Abs(denom) < 1e-15 {
		return 0, 0, false
	}
	w := p.Sub(origin)
	t = w.Cross(d) / denom
	s = w.Cross(dir) / denom
	if t < 0 || s < 0 || s > 1 {
		return 0, 0, false
	}
	return t, s, true
}

// mod2Pi normalizes an angle into [0, 2*pi). Negative inputs wrap.
func mod2Pi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// IsAngleBetween reports whether theta lies in the half-open CCW
// interval [start, end). All inputs are normalized first, so negative
// angles and wraparound across 0 are handled.
func IsAngleBetween(theta, start, end float64) bool {
	rel := mod2Pi(theta - start)
	span := mod2Pi(end - start)
	return rel < span
}
