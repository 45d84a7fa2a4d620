package space

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/flverkit/pkg/math"
)

// Dummies (orientation markers attached to models) store a forward and an up
// vector in game space instead of a rotation.

// GameForwardUpToEditorEuler converts a dummy's game-space forward and up
// vectors to editor XYZ Euler angles in radians.
func GameForwardUpToEditorEuler(forward, up mgl64.Vec3) mgl64.Vec3 {
	right := up.Cross(forward)
	rot := mgl64.Mat3FromCols(right, up, forward)
	return GameToEditorEuler(math.Mat3ToEulerXZY(rot))
}

// EditorEulerToGameForwardUp converts editor XYZ Euler angles to a dummy's
// game-space forward (third column) and up (second column) vectors.
func EditorEulerToGameForwardUp(e mgl64.Vec3) (forward, up mgl64.Vec3) {
	return forwardUp(math.EulerXZYToMat3(EditorToGameEuler(e)))
}

// EditorMat3ToGameForwardUp converts an editor rotation matrix to a dummy's
// game-space forward and up vectors.
func EditorMat3ToGameForwardUp(m mgl64.Mat3) (forward, up mgl64.Vec3) {
	return forwardUp(EditorToGameMat3(m))
}

func forwardUp(m mgl64.Mat3) (forward, up mgl64.Vec3) {
	return m.Col(2), m.Col(1)
}
