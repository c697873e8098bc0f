// Package xform parses and composes the "rotate(x,y,z)|translate(x,y,z)|
// scale(x,y,z)" transform strings from spec.md §3 and applies the composed
// affine map to primitive natural parameters or mesh vertices.
package xform

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// Error reports a transform string that failed to parse, or a composed
// transform that a primitive kind cannot represent (shear, non-uniform
// scale on a sphere, non-axis-aligned rotation on a cube).
type Error struct {
	Transform string
	Reason    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid transform %q: %s", e.Transform, e.Reason)
}

var opPattern = regexp.MustCompile(`^\s*(rotate|translate|scale)\s*\(\s*([^,]+)\s*,\s*([^,]+)\s*,\s*([^)]+)\s*\)\s*$`)

type opKind int

const (
	opRotate opKind = iota
	opTranslate
	opScale
)

type op struct {
	kind opKind
	args vecmath.Vec3
	raw  string
}

func parseOp(s string) (op, error) {
	m := opPattern.FindStringSubmatch(s)
	if m == nil {
		return op{}, &Error{Transform: s, Reason: "does not match rotate(x,y,z) | translate(x,y,z) | scale(x,y,z)"}
	}
	var kind opKind
	switch m[1] {
	case "rotate":
		kind = opRotate
	case "translate":
		kind = opTranslate
	case "scale":
		kind = opScale
	}
	nums := make([]float64, 3)
	for i, tok := range m[2:5] {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return op{}, &Error{Transform: s, Reason: fmt.Sprintf("non-numeric argument %q", tok)}
		}
		nums[i] = v
	}
	return op{kind: kind, args: vecmath.NewVec3(nums[0], nums[1], nums[2]), raw: s}, nil
}

// Transform is the composed affine map p' = M*p + T built from an ordered
// list of transform strings, applied in list order.
type Transform struct {
	M mat3
	T vecmath.Vec3
	// list of raw op strings, retained for error messages
	ops []string
}

// Identity is the no-op transform.
func Identity() Transform {
	return Transform{M: identity3()}
}

// Parse parses an ordered list of transform strings and composes them into
// a single affine map, applied in list order (spec.md §3).
func Parse(specs []string) (Transform, error) {
	t := Identity()
	for _, s := range specs {
		parsed, err := parseOp(s)
		if err != nil {
			return Transform{}, err
		}
		var opM mat3
		var opT vecmath.Vec3
		switch parsed.kind {
		case opRotate:
			opM = rotationMatrix(parsed.args)
		case opTranslate:
			opM = identity3()
			opT = parsed.args
		case opScale:
			if parsed.args.X == 0 || parsed.args.Y == 0 || parsed.args.Z == 0 {
				return Transform{}, &Error{Transform: s, Reason: "scale factor of zero collapses the object to zero volume"}
			}
			opM = diag3(parsed.args.X, parsed.args.Y, parsed.args.Z)
		}
		// Compose: p_new = opM*(M*p + T) + opT = (opM*M)*p + (opM*T + opT)
		t.T = opM.apply(t.T).Add(opT)
		t.M = opM.mul(t.M)
		t.ops = append(t.ops, s)
	}
	return t, nil
}

// ApplyPoint applies the full affine map to a point.
func (t Transform) ApplyPoint(p vecmath.Vec3) vecmath.Vec3 {
	return t.M.apply(p).Add(t.T)
}

// ApplyVector applies only the linear part (no translation), for
// direction/edge vectors such as mesh vertex offsets relative to a shared
// origin.
func (t Transform) ApplyVector(v vecmath.Vec3) vecmath.Vec3 {
	return t.M.apply(v)
}

// ApplyNormal transforms a normal by the inverse-transpose of the linear
// part, which is correct under non-uniform scale (a plain M would tilt
// normals on non-uniformly scaled surfaces). Returns false if M is
// singular.
func (t Transform) ApplyNormal(n vecmath.Vec3) (vecmath.Vec3, bool) {
	invT, ok := t.M.inverseTranspose()
	if !ok {
		return vecmath.Vec3{}, false
	}
	return invT.apply(n).Normalize(), true
}

const shearEpsilon = 1e-9

// UniformScale reports whether the composed linear map is a pure
// rotation-times-uniform-scale (no shear, no anisotropy), returning that
// scale factor. Required for spheres, which only carry a scalar radius.
func (t Transform) UniformScale() (scale float64, ok bool) {
	g := t.M.gram()
	if !g.isDiagonal(shearEpsilon) {
		return 0, false
	}
	sx2, sy2, sz2 := g[0][0], g[1][1], g[2][2]
	if math.Abs(sx2-sy2) > shearEpsilon || math.Abs(sy2-sz2) > shearEpsilon {
		return 0, false
	}
	if sx2 < 0 {
		return 0, false
	}
	return math.Sqrt(sx2), true
}

// NoShear reports whether the composed linear map has no shear (its
// columns are pairwise orthogonal), meaning it factors as rotation times a
// possibly non-uniform per-axis scale. Required for planes, whose normal
// can be transformed correctly via the inverse-transpose in that case.
func (t Transform) NoShear() bool {
	return t.M.gram().isDiagonal(shearEpsilon)
}

// AxisAlignedScale reports whether the composed linear map is exactly a
// diagonal (possibly non-uniform) scale with no rotation component at all,
// or a rotation that is a multiple of 90 degrees (an axis permutation).
// Cubes are stored as axis-aligned (w,h,d) boxes (spec.md §3: "intersected
// as an AABB"), so only these compositions can be baked into a cube's
// natural parameters without changing its shape into an OBB.
func (t Transform) AxisAlignedScale() (scaleX, scaleY, scaleZ float64, ok bool) {
	// Each column of M must have exactly one non-zero entry: the matrix is
	// a signed permutation matrix times a diagonal scale.
	var perm [3]int
	var sign [3]float64
	for col := 0; col < 3; col++ {
		nonZero := -1
		for row := 0; row < 3; row++ {
			if math.Abs(t.M[row][col]) > shearEpsilon {
				if nonZero != -1 {
					return 0, 0, 0, false
				}
				nonZero = row
			}
		}
		if nonZero == -1 {
			return 0, 0, 0, false
		}
		perm[col] = nonZero
		if t.M[nonZero][col] < 0 {
			sign[col] = -1
		} else {
			sign[col] = 1
		}
	}
	mags := [3]float64{
		math.Abs(t.M[perm[0]][0]),
		math.Abs(t.M[perm[1]][1]),
		math.Abs(t.M[perm[2]][2]),
	}
	// Scatter magnitudes back to their world axis via the permutation.
	var world [3]float64
	for col := 0; col < 3; col++ {
		world[perm[col]] = mags[col]
	}
	return world[0], world[1], world[2], true
}
