package xform

import (
	"math"

	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// mat3 is a row-major 3x3 matrix used internally to compose rotate/scale
// transform ops before baking them into a primitive's natural parameters.
type mat3 [3][3]float64

func identity3() mat3 {
	return mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func diag3(x, y, z float64) mat3 {
	return mat3{{x, 0, 0}, {0, y, 0}, {0, 0, z}}
}

func (m mat3) apply(v vecmath.Vec3) vecmath.Vec3 {
	return vecmath.NewVec3(
		m[0][0]*v.X+m[0][1]*v.Y+m[0][2]*v.Z,
		m[1][0]*v.X+m[1][1]*v.Y+m[1][2]*v.Z,
		m[2][0]*v.X+m[2][1]*v.Y+m[2][2]*v.Z,
	)
}

// mul returns a*b (apply b first, then a).
func (a mat3) mul(b mat3) mat3 {
	var out mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return out
}

func (m mat3) transpose() mat3 {
	var out mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

func (m mat3) col(j int) vecmath.Vec3 {
	return vecmath.NewVec3(m[0][j], m[1][j], m[2][j])
}

// gram returns the Gram matrix M^T*M; off-diagonal entries near zero
// indicate the columns of M are orthogonal, i.e. M carries no shear.
func (m mat3) gram() mat3 {
	return m.transpose().mul(m)
}

func (m mat3) isDiagonal(eps float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				continue
			}
			if math.Abs(m[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// determinant is used to detect degenerate (zero-scale) matrices.
func (m mat3) determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// inverseTranspose returns (M^-1)^T, used to transform normals correctly
// under non-uniform scale.
func (m mat3) inverseTranspose() (mat3, bool) {
	det := m.determinant()
	if math.Abs(det) < 1e-12 {
		return mat3{}, false
	}
	invDet := 1.0 / det
	var inv mat3
	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * invDet
	inv[0][1] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet
	inv[0][2] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet
	inv[1][0] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet
	inv[1][2] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * invDet
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet
	inv[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * invDet
	inv[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * invDet
	// (M^-1)^T
	return inv.transpose(), true
}

func rotateX(degrees float64) mat3 {
	r := degrees * math.Pi / 180
	c, s := math.Cos(r), math.Sin(r)
	return mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

func rotateY(degrees float64) mat3 {
	r := degrees * math.Pi / 180
	c, s := math.Cos(r), math.Sin(r)
	return mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

func rotateZ(degrees float64) mat3 {
	r := degrees * math.Pi / 180
	c, s := math.Cos(r), math.Sin(r)
	return mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// rotationMatrix composes Rz*Ry*Rx for a single rotate(x,y,z) op, per
// spec.md §3: "rotations composed Z·Y·X locally within a single rotate".
func rotationMatrix(degrees vecmath.Vec3) mat3 {
	return rotateZ(degrees.Z).mul(rotateY(degrees.Y)).mul(rotateX(degrees.X))
}
