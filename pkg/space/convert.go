// Package space converts geometry between the game's left-handed space and
// the editor's right-handed space.
//
// The two spaces share the X axis and swap Y and Z. Because one space is
// left-handed and the other right-handed, rotations also flip sign: game
// Euler angles use XZY order (R = Ry * Rz * Rx) and editor Euler angles use
// XYZ order (R = Rz * Ry * Rx).
//
// Every conversion here is a component permutation and/or negation, so a
// round trip reproduces its input exactly.
package space

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/flverkit/pkg/math"
)

// GameToEditorVector swaps the Y and Z components.
func GameToEditorVector(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[2], v[1]}
}

// EditorToGameVector3 swaps the Y and Z components.
func EditorToGameVector3(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[2], v[1]}
}

// GameToEditorVector4 swaps Y and Z and passes W through.
func GameToEditorVector4(v mgl64.Vec4) mgl64.Vec4 {
	return mgl64.Vec4{v[0], v[2], v[1], v[3]}
}

// EditorToGameVector4 swaps Y and Z and appends w.
func EditorToGameVector4(v mgl64.Vec3, w float64) mgl64.Vec4 {
	return mgl64.Vec4{v[0], v[2], v[1], w}
}

// GameToEditorVectors converts a batch of vectors into a new slice.
func GameToEditorVectors(vs []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(vs))
	for i, v := range vs {
		out[i] = GameToEditorVector(v)
	}
	return out
}

// EditorToGameVectors converts a batch of vectors into a new slice.
func EditorToGameVectors(vs []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(vs))
	for i, v := range vs {
		out[i] = EditorToGameVector3(v)
	}
	return out
}

// GameToEditorEuler maps game XZY angles (x, y, z) to editor XYZ angles (-x, -z, -y).
func GameToEditorEuler(e mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{-e[0], -e[2], -e[1]}
}

// EditorToGameEuler maps editor XYZ angles (x, y, z) to game XZY angles (-x, -z, -y).
func EditorToGameEuler(e mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{-e[0], -e[2], -e[1]}
}

// GameToEditorMat3 swaps rows 1/2 and columns 1/2 of a rotation matrix.
func GameToEditorMat3(m mgl64.Mat3) mgl64.Mat3 {
	return math.SwapAxes12(m)
}

// EditorToGameMat3 swaps rows 1/2 and columns 1/2 of a rotation matrix.
func EditorToGameMat3(m mgl64.Mat3) mgl64.Mat3 {
	return math.SwapAxes12(m)
}

// GameToEditorQuat maps (w, x, y, z) to (w, -x, -z, -y).
func GameToEditorQuat(q mgl64.Quat) mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{-q.V[0], -q.V[2], -q.V[1]}}
}

// EditorToGameQuat maps (w, x, y, z) to (w, -x, -z, -y).
func EditorToGameQuat(q mgl64.Quat) mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{-q.V[0], -q.V[2], -q.V[1]}}
}
