package renderer

import "github.com/go-gl/mathgl/mgl32"

// Transform holds the placement of a drawable. Rotation is a set of Euler
// angles in radians.
type Transform struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// ModelMatrix is derived from the three fields on every call. A vertex is
// rotated about X, then Y, then Z, then scaled, then translated; with mgl32's
// column vectors that reads T * S * Rz * Ry * Rx.
func (t *Transform) ModelMatrix() mgl32.Mat4 {
	rotX := mgl32.HomogRotate3DX(t.Rotation.X())
	rotY := mgl32.HomogRotate3DY(t.Rotation.Y())
	rotZ := mgl32.HomogRotate3DZ(t.Rotation.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	translation := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())

	return translation.Mul4(scale).Mul4(rotZ).Mul4(rotY).Mul4(rotX)
}

func (t *Transform) SetPosition(x, y, z float32) {
	t.Position = mgl32.Vec3{x, y, z}
}

func (t *Transform) SetScale(x, y, z float32) {
	t.Scale = mgl32.Vec3{x, y, z}
}

func (t *Transform) Translate(delta mgl32.Vec3) {
	t.Position = t.Position.Add(delta)
}

// Rotate adds the given Euler angles, in radians.
func (t *Transform) Rotate(delta mgl32.Vec3) {
	t.Rotation = t.Rotation.Add(delta)
}
