// Package math provides float64 linear algebra helpers on top of mgl64.
package math

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// One returns the vector (1, 1, 1).
func One() mgl64.Vec3 {
	return mgl64.Vec3{1, 1, 1}
}

// Hadamard returns the component-wise product a * b.
func Hadamard(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Reciprocal returns (1/x, 1/y, 1/z). Zero components produce infinities.
func Reciprocal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{1 / v[0], 1 / v[1], 1 / v[2]}
}

// DegToRad converts each component from degrees to radians.
func DegToRad(v mgl64.Vec3) mgl64.Vec3 {
	return v.Mul(gomath.Pi / 180)
}

// RadToDeg converts each component from radians to degrees.
func RadToDeg(v mgl64.Vec3) mgl64.Vec3 {
	return v.Mul(180 / gomath.Pi)
}
