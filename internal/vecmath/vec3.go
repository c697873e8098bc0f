// Package vecmath provides the 3-vector and color arithmetic shared by every
// other package in the ray tracer.
package vecmath

import "math"

// Vec3 represents a 3D vector or point.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Zero is the zero vector.
var Zero = Vec3{}

// Add returns the sum of two vectors.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar.
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// MultiplyVec returns the component-wise product of two vectors.
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Negate returns the negation of the vector.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Length returns the magnitude of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared magnitude of the vector.
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Normalize returns a unit vector in the same direction. The zero vector
// normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return v.Multiply(1.0 / length)
}

// Reflect reflects v about the normal n (n must be a unit vector).
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Multiply(2 * v.Dot(n)))
}

// Clamp clamps each component to [minVal, maxVal].
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	clamp1 := func(x float64) float64 {
		if x < minVal {
			return minVal
		}
		if x > maxVal {
			return maxVal
		}
		return x
	}
	return Vec3{clamp1(v.X), clamp1(v.Y), clamp1(v.Z)}
}

// Lerp linearly interpolates between a and b by t in [0,1].
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Multiply(1 - t).Add(b.Multiply(t))
}

// NearZero reports whether every component is within eps of zero.
func (v Vec3) NearZero(eps float64) bool {
	return math.Abs(v.X) < eps && math.Abs(v.Y) < eps && math.Abs(v.Z) < eps
}

// OrthonormalBasis builds a right-handed orthonormal basis (u, v, w) where w
// is the normalized input direction. Used by plane UV projection and
// disk-light sampling to derive an in-plane frame deterministically from a single vector.
func OrthonormalBasis(dir Vec3) (u, v, w Vec3) {
	w = dir.Normalize()
	var helper Vec3
	if math.Abs(w.X) > 0.9 {
		helper = Vec3{0, 1, 0}
	} else {
		helper = Vec3{1, 0, 0}
	}
	u = helper.Cross(w).Normalize()
	v = w.Cross(u)
	return u, v, w
}
