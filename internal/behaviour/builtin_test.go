package behaviour

import (
	"testing"

	"Tekka/internal/renderer"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func near(a, b float32) bool {
	return math32.Abs(a-b) < 1e-5
}

func TestSpin(t *testing.T) {
	tr := renderer.NewTransform()
	spin := NewSpin(&tr, Params{Speed: 2, Axis: mgl32.Vec3{0, 0, 3}})

	spin.Start()
	spin.Update(0.5)

	assert.True(t, tr.Rotation.ApproxFuncEqual(mgl32.Vec3{0, 0, 1}, near), "got %v", tr.Rotation)
}

func TestSpinMixedAxisRates(t *testing.T) {
	tr := renderer.NewTransform()
	spin := NewSpin(&tr, Params{Speed: math32.Sqrt(2), Axis: mgl32.Vec3{1, 1, 0}})

	spin.Start()
	spin.Update(1)

	// Each Euler angle gets its share of Speed.
	assert.InDelta(t, 1, tr.Rotation.X(), 1e-5)
	assert.InDelta(t, 1, tr.Rotation.Y(), 1e-5)
	assert.Zero(t, tr.Rotation.Z())
}

func TestSpinDefaults(t *testing.T) {
	tr := renderer.NewTransform()
	spin := NewSpin(&tr, Params{}).(*Spin)

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, spin.Axis)
	assert.Equal(t, float32(1), spin.Speed)
}

func TestOrbit(t *testing.T) {
	tr := renderer.NewTransform()
	tr.Position = mgl32.Vec3{2, 1, 0}
	orbit := NewOrbit(&tr, Params{Speed: mgl32.DegToRad(90)})

	orbit.Start()
	orbit.Update(1)

	assert.True(t, tr.Position.ApproxFuncEqual(mgl32.Vec3{0, 1, 2}, near), "got %v", tr.Position)
	assert.Equal(t, float32(2), orbit.(*Orbit).Radius)
}

func TestOrbitAroundCenter(t *testing.T) {
	tr := renderer.NewTransform()
	orbit := NewOrbit(&tr, Params{Center: mgl32.Vec3{5, 0, 5}, Radius: 1, Speed: 1})

	orbit.Start()
	for i := 0; i < 10; i++ {
		orbit.Update(0.1)
		dist := tr.Position.Sub(mgl32.Vec3{5, 0, 5}).Len()
		assert.InDelta(t, 1, dist, 1e-5)
	}
}

func TestWanderStaysNearOrigin(t *testing.T) {
	tr := renderer.NewTransform()
	tr.Position = mgl32.Vec3{3, 3, 3}
	wander := NewWander(&tr, Params{Amplitude: 0.5, Seed: 42})

	wander.Start()
	wander.Update(1)
	assert.Equal(t, mgl32.Vec3{3, 3, 3}, tr.Position, "Update alone should not move")

	moved := false
	for i := 0; i < 60; i++ {
		wander.UpdateFixed()
		offset := tr.Position.Sub(mgl32.Vec3{3, 3, 3})
		for axis := 0; axis < 3; axis++ {
			assert.LessOrEqual(t, abs(offset[axis]), float32(1.0))
		}
		if offset.Len() > 0 {
			moved = true
		}
	}
	assert.True(t, moved)
}

func TestWanderDeterministic(t *testing.T) {
	a := renderer.NewTransform()
	b := renderer.NewTransform()
	wa := NewWander(&a, Params{Seed: 7})
	wb := NewWander(&b, Params{Seed: 7})
	wa.Start()
	wb.Start()

	for i := 0; i < 5; i++ {
		wa.UpdateFixed()
		wb.UpdateFixed()
	}

	assert.Equal(t, a.Position, b.Position)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestBounce(t *testing.T) {
	tr := renderer.NewTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	bounce := NewBounce(&tr, Params{Amplitude: 1, Speed: 1})

	bounce.Start()
	bounce.Update(math32.Pi / 2)
	assert.InDelta(t, 3, tr.Position.Y(), 1e-5)
	assert.Equal(t, float32(1), tr.Position.X())

	bounce.Update(math32.Pi)
	assert.InDelta(t, 1, tr.Position.Y(), 1e-5)
}
