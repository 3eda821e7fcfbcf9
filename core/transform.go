package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t Transform) Matrix() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// Compose returns the world transform of a child whose local transform is local.
// Components are propagated directly so negative scales survive.
func (t Transform) Compose(local Transform) Transform {
	scaledLocalPos := mgl32.Vec3{
		local.Position.X() * t.Scale.X(),
		local.Position.Y() * t.Scale.Y(),
		local.Position.Z() * t.Scale.Z(),
	}
	return Transform{
		Position: t.Position.Add(t.Rotation.Rotate(scaledLocalPos)),
		Rotation: t.Rotation.Mul(local.Rotation).Normalize(),
		Scale: mgl32.Vec3{
			t.Scale.X() * local.Scale.X(),
			t.Scale.Y() * local.Scale.Y(),
			t.Scale.Z() * local.Scale.Z(),
		},
	}
}

// RotationFromMatrix extracts the orientation of m, ignoring scale and translation.
func RotationFromMatrix(m mgl32.Mat4) mgl32.Quat {
	front := m.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	up := m.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	if front.Len() == 0 || up.Len() == 0 {
		return mgl32.QuatIdent()
	}
	front = front.Normalize()
	up = up.Normalize()
	right := up.Cross(front).Normalize()
	up = front.Cross(right)

	rot := mgl32.Mat3FromCols(right, up, front)
	return mgl32.Mat4ToQuat(rot.Mat4()).Normalize()
}

func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1.0)).Vec3()
}
