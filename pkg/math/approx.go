package math

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// mgl64's ApproxEqualThreshold is relative and squares the threshold near
// zero, which rejects rounding noise around exact zeros. These helpers use an
// absolute tolerance instead.

// Near reports whether |a - b| <= eps.
func Near(a, b, eps float64) bool {
	return gomath.Abs(a-b) <= eps
}

// NearVec3 compares two vectors component-wise with an absolute tolerance.
func NearVec3(a, b mgl64.Vec3, eps float64) bool {
	return nearSlice(a[:], b[:], eps)
}

// NearVec4 compares two vectors component-wise with an absolute tolerance.
func NearVec4(a, b mgl64.Vec4, eps float64) bool {
	return nearSlice(a[:], b[:], eps)
}

// NearMat3 compares two matrices element-wise with an absolute tolerance.
func NearMat3(a, b mgl64.Mat3, eps float64) bool {
	return nearSlice(a[:], b[:], eps)
}

// NearMat4 compares two matrices element-wise with an absolute tolerance.
func NearMat4(a, b mgl64.Mat4, eps float64) bool {
	return nearSlice(a[:], b[:], eps)
}

func nearSlice(a, b []float64, eps float64) bool {
	for i := range a {
		if !Near(a[i], b[i], eps) {
			return false
		}
	}
	return true
}
