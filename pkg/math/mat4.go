package math

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// gimbalEpsilon is how close |sin| of the middle angle may get to 1 before
// the first angle is pinned to zero during Euler extraction.
const gimbalEpsilon = 1e-9

// EulerXYZToMat3 builds R = Rz(z) * Ry(y) * Rx(x): X is applied first.
// Angles are in radians.
func EulerXYZToMat3(e mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DZ(e[2]).Mul3(mgl64.Rotate3DY(e[1])).Mul3(mgl64.Rotate3DX(e[0]))
}

// Mat3ToEulerXYZ is the inverse of EulerXYZToMat3 for pure rotation matrices.
// The Y angle is returned in [-pi/2, pi/2].
func Mat3ToEulerXYZ(m mgl64.Mat3) mgl64.Vec3 {
	sy := -m.At(2, 0)
	y := gomath.Asin(clamp(sy))
	if gomath.Abs(sy) > 1-gimbalEpsilon {
		// Gimbal lock: only x - z (or x + z) is defined. Put it all in X.
		return mgl64.Vec3{gomath.Atan2(-m.At(1, 2), m.At(1, 1)), y, 0}
	}
	x := gomath.Atan2(m.At(2, 1), m.At(2, 2))
	z := gomath.Atan2(m.At(1, 0), m.At(0, 0))
	return mgl64.Vec3{x, y, z}
}

// EulerXZYToMat3 builds R = Ry(y) * Rz(z) * Rx(x): X first, then Z, then Y.
// This is the game's rotation order. Angles are in radians.
func EulerXZYToMat3(e mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DY(e[1]).Mul3(mgl64.Rotate3DZ(e[2])).Mul3(mgl64.Rotate3DX(e[0]))
}

// Mat3ToEulerXZY is the inverse of EulerXZYToMat3 for pure rotation matrices.
// The Z angle is returned in [-pi/2, pi/2].
func Mat3ToEulerXZY(m mgl64.Mat3) mgl64.Vec3 {
	sz := m.At(1, 0)
	z := gomath.Asin(clamp(sz))
	if gomath.Abs(sz) > 1-gimbalEpsilon {
		return mgl64.Vec3{0, gomath.Atan2(m.At(0, 2), m.At(2, 2)), z}
	}
	x := gomath.Atan2(-m.At(1, 2), m.At(1, 1))
	y := gomath.Atan2(-m.At(2, 0), m.At(0, 0))
	return mgl64.Vec3{x, y, z}
}

// LocRotScale composes T * R * S.
func LocRotScale(translate mgl64.Vec3, rotate mgl64.Mat3, scale mgl64.Vec3) mgl64.Mat4 {
	t := mgl64.Translate3D(translate[0], translate[1], translate[2])
	s := mgl64.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(rotate.Mat4()).Mul4(s)
}

// Decompose splits an affine matrix built by LocRotScale back into its parts.
// A negative determinant is folded into the X scale so the rotation stays proper.
func Decompose(m mgl64.Mat4) (translate mgl64.Vec3, rotate mgl64.Mat3, scale mgl64.Vec3) {
	translate = mgl64.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}

	var cols [3]mgl64.Vec3
	for c := 0; c < 3; c++ {
		cols[c] = mgl64.Vec3{m.At(0, c), m.At(1, c), m.At(2, c)}
		scale[c] = cols[c].Len()
	}
	if m.Mat3().Det() < 0 {
		scale[0] = -scale[0]
	}

	for c := 0; c < 3; c++ {
		if scale[c] == 0 {
			continue
		}
		col := cols[c].Mul(1 / scale[c])
		for r := 0; r < 3; r++ {
			rotate.Set(r, c, col[r])
		}
	}
	return translate, rotate, scale
}

// SwapAxes12 conjugates m by the permutation that swaps axes 1 and 2.
// Applying it twice returns the original matrix.
func SwapAxes12(m mgl64.Mat3) mgl64.Mat3 {
	perm := [3]int{0, 2, 1}
	var out mgl64.Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Set(r, c, m.At(perm[r], perm[c]))
		}
	}
	return out
}

func clamp(x float64) float64 {
	return gomath.Max(-1, gomath.Min(1, x))
}
