package math

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// QuatToMat3 converts a quaternion to a 3x3 rotation matrix.
// The quaternion is normalized first.
func QuatToMat3(q mgl64.Quat) mgl64.Mat3 {
	return q.Normalize().Mat4().Mat3()
}

// Mat3ToQuat converts a pure rotation matrix to a unit quaternion with W >= 0.
func Mat3ToQuat(m mgl64.Mat3) mgl64.Quat {
	q := mgl64.Mat4ToQuat(m.Mat4()).Normalize()
	if q.W < 0 {
		q = mgl64.Quat{W: -q.W, V: q.V.Mul(-1)}
	}
	return q
}

// QuatEquivalent reports whether a and b describe the same rotation within eps.
// q and -q are treated as equal.
func QuatEquivalent(a, b mgl64.Quat, eps float64) bool {
	dot := a.W*b.W + a.V.Dot(b.V)
	return gomath.Abs(gomath.Abs(dot)-1) <= eps
}
