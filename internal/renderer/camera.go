// camera.go
package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultMinZoom = 1.0
	DefaultMaxZoom = 45.0
	MaxPitch       = 89.0
)

type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

type Camera struct {
	// HOT DATA - read every frame for view/projection
	Position    mgl32.Vec3 // Camera position in world space
	Front       mgl32.Vec3 // Unit forward vector
	Up          mgl32.Vec3 // Unit up vector
	Right       mgl32.Vec3 // Unit right vector
	Yaw         float32    // Degrees, -90 looks down -Z
	Pitch       float32    // Degrees, kept within [-MaxPitch, MaxPitch]
	Zoom        float32    // Vertical field of view in degrees
	AspectRatio float32

	// COLD DATA - configuration
	WorldUp     mgl32.Vec3
	MinZoom     float32
	MaxZoom     float32
	Near        float32
	Far         float32
	Speed       float32 // Units per second
	Sensitivity float32 // Degrees per pixel of mouse travel
	InvertMouse bool
}

// NewCamera places a camera at position looking along front. Yaw and pitch
// are derived from front so the angles and vectors agree from the start.
func NewCamera(position, front, up mgl32.Vec3, aspectRatio float32) *Camera {
	c := &Camera{
		Position:    position,
		WorldUp:     up.Normalize(),
		Zoom:        DefaultMaxZoom,
		MinZoom:     DefaultMinZoom,
		MaxZoom:     DefaultMaxZoom,
		Near:        0.1,
		Far:         100.0,
		Speed:       5.0,
		Sensitivity: 0.1,
		AspectRatio: 1,
	}
	c.SetAspectRatio(aspectRatio)

	f := front.Normalize()
	c.Yaw = mgl32.RadToDeg(math32.Atan2(f.Z(), f.X()))
	c.Pitch = mgl32.Clamp(mgl32.RadToDeg(math32.Asin(mgl32.Clamp(f.Y(), -1, 1))), -MaxPitch, MaxPitch)
	c.updateCameraVectors()
	return c
}

func NewDefaultCamera(width, height int32) *Camera {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return NewCamera(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, aspect)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// GetProjectionMatrix uses the camera's current aspect ratio.
func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.ProjectionFor(c.AspectRatio)
}

func (c *Camera) ProjectionFor(aspectRatio float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspectRatio, c.Near, c.Far)
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.GetProjectionMatrix().Mul4(c.GetViewMatrix())
}

// SetAspectRatio ignores degenerate ratios, such as those produced by a
// minimised window.
func (c *Camera) SetAspectRatio(aspectRatio float32) {
	if aspectRatio <= 0 || math32.IsNaN(aspectRatio) || math32.IsInf(aspectRatio, 0) {
		return
	}
	c.AspectRatio = aspectRatio
}

// ModifyDirection turns the camera by the given angles in degrees. dy is a
// screen-space offset, so a positive value looks down.
func (c *Camera) ModifyDirection(dx, dy float32) {
	c.Yaw += dx
	c.Pitch -= dy
	c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	c.updateCameraVectors()
}

func (c *Camera) ModifyZoom(delta float32) {
	c.Zoom = mgl32.Clamp(c.Zoom-delta, c.MinZoom, c.MaxZoom)
}

// ProcessMouseMovement turns the camera by raw cursor offsets in pixels.
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32) {
	if c.InvertMouse {
		yoffset = -yoffset
	}
	c.ModifyDirection(xoffset*c.Sensitivity, yoffset*c.Sensitivity)
}

// Move translates the camera in the horizontal frame of its orientation.
func (c *Camera) Move(direction Direction, deltaTime float32) {
	velocity := c.Speed * deltaTime
	switch direction {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

func (c *Camera) updateCameraVectors() {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)

	front := mgl32.Vec3{
		math32.Cos(yawRad) * math32.Cos(pitchRad),
		math32.Sin(pitchRad),
		math32.Sin(yawRad) * math32.Cos(pitchRad),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
