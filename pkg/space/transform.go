package space

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/flverkit/pkg/math"
)

// GameTRS is a game-space translate/rotate/scale with a quaternion rotation,
// as stored for bones and animation tracks.
type GameTRS struct {
	Translate mgl64.Vec3
	Rotate    mgl64.Quat
	Scale     mgl64.Vec3
}

// GameTRSToEditorMatrix converts each component to editor space and composes
// them as translation * rotation * scale.
func GameTRSToEditorMatrix(trs GameTRS) mgl64.Mat4 {
	translate := GameToEditorVector(trs.Translate)
	rotate := math.QuatToMat3(GameToEditorQuat(trs.Rotate))
	scale := GameToEditorVector(trs.Scale)
	return math.LocRotScale(translate, rotate, scale)
}

// EditorMatrixToGameTRS decomposes an editor-space affine matrix and converts
// each component to game space.
func EditorMatrixToGameTRS(m mgl64.Mat4) GameTRS {
	translate, rotate, scale := math.Decompose(m)
	return GameTRS{
		Translate: EditorToGameVector3(translate),
		Rotate:    EditorToGameQuat(math.Mat3ToQuat(rotate)),
		Scale:     EditorToGameVector3(scale),
	}
}

// Transform is a game-space placement with Euler rotation, as stored by map
// parts, regions and other placed entities.
type Transform struct {
	Translate mgl64.Vec3
	Rotate    mgl64.Vec3 // game XZY Euler angles
	Scale     mgl64.Vec3
	Radians   bool // Rotate is in degrees unless set
}

// NewTransform returns a game transform with unit scale and rotation in degrees.
func NewTransform(translate, rotateDeg mgl64.Vec3) Transform {
	return Transform{Translate: translate, Rotate: rotateDeg, Scale: math.One()}
}

// EditorTranslate returns the translation in editor space.
func (t Transform) EditorTranslate() mgl64.Vec3 {
	return GameToEditorVector(t.Translate)
}

// EditorRotate returns the rotation as editor XYZ Euler angles in radians.
func (t Transform) EditorRotate() mgl64.Vec3 {
	if !t.Radians {
		return GameToEditorEuler(math.DegToRad(t.Rotate))
	}
	return GameToEditorEuler(t.Rotate)
}

// EditorScale returns the scale in editor space.
func (t Transform) EditorScale() mgl64.Vec3 {
	return GameToEditorVector(t.Scale)
}

// Editor converts the whole transform to editor space.
func (t Transform) Editor() EditorTransform {
	return EditorTransform{
		Translate: t.EditorTranslate(),
		Rotate:    t.EditorRotate(),
		Scale:     t.EditorScale(),
	}
}

// EditorTransform is an editor-space translate/rotate/scale.
type EditorTransform struct {
	Translate mgl64.Vec3
	Rotate    mgl64.Vec3 // editor XYZ Euler angles, radians
	Scale     mgl64.Vec3
}

// IdentityTransform returns the transform that changes nothing.
func IdentityTransform() EditorTransform {
	return EditorTransform{Scale: math.One()}
}

// EditorTransformFromMatrix decomposes an affine matrix, e.g. an object's
// world matrix.
func EditorTransformFromMatrix(m mgl64.Mat4) EditorTransform {
	translate, rotate, scale := math.Decompose(m)
	return EditorTransform{
		Translate: translate,
		Rotate:    math.Mat3ToEulerXYZ(rotate),
		Scale:     scale,
	}
}

// GameTranslate returns the translation in game space.
func (t EditorTransform) GameTranslate() mgl64.Vec3 {
	return EditorToGameVector3(t.Translate)
}

// GameRotateRad returns the rotation as game XZY Euler angles in radians.
func (t EditorTransform) GameRotateRad() mgl64.Vec3 {
	return EditorToGameEuler(t.Rotate)
}

// GameRotateDeg returns the rotation as game XZY Euler angles in degrees.
func (t EditorTransform) GameRotateDeg() mgl64.Vec3 {
	return math.RadToDeg(t.GameRotateRad())
}

// GameScale returns the scale in game space.
func (t EditorTransform) GameScale() mgl64.Vec3 {
	return EditorToGameVector3(t.Scale)
}

// Game converts the whole transform to game space with rotation in degrees.
func (t EditorTransform) Game() Transform {
	return Transform{
		Translate: t.GameTranslate(),
		Rotate:    t.GameRotateDeg(),
		Scale:     t.GameScale(),
	}
}

// RotationMatrix returns the rotation as a 3x3 matrix.
func (t EditorTransform) RotationMatrix() mgl64.Mat3 {
	return math.EulerXYZToMat3(t.Rotate)
}

// Matrix composes translation * rotation * scale.
func (t EditorTransform) Matrix() mgl64.Mat4 {
	return math.LocRotScale(t.Translate, t.RotationMatrix(), t.Scale)
}

// Compose returns the transform that applies other first, then t.
func (t EditorTransform) Compose(other EditorTransform) EditorTransform {
	rot := t.RotationMatrix()
	return EditorTransform{
		Translate: t.Translate.Add(rot.Mul3x1(other.Translate)),
		Rotate:    math.Mat3ToEulerXYZ(rot.Mul3(other.RotationMatrix())),
		Scale:     math.Hadamard(t.Scale, other.Scale),
	}
}

// Inverse returns the transform that undoes t's translation and rotation and
// takes the reciprocal of its scale. Scale components must be non-zero.
func (t EditorTransform) Inverse() EditorTransform {
	invRot := t.RotationMatrix().Transpose()
	return EditorTransform{
		Translate: invRot.Mul3x1(t.Translate).Mul(-1),
		Rotate:    math.Mat3ToEulerXYZ(invRot),
		Scale:     math.Reciprocal(t.Scale),
	}
}

// ApproxEqual reports whether two transforms produce the same placement
// within eps. Euler angles are compared through their rotation matrices.
func (t EditorTransform) ApproxEqual(other EditorTransform, eps float64) bool {
	return math.NearVec3(t.Translate, other.Translate, eps) &&
		math.NearMat3(t.RotationMatrix(), other.RotationMatrix(), eps) &&
		math.NearVec3(t.Scale, other.Scale, eps)
}
