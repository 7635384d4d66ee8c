package behaviour

import (
	"Tekka/internal/renderer"

	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Spin advances its target's Euler angles at Speed radians per second,
// split across X, Y and Z by the unit Axis. For a coordinate axis this is a
// true rotation about it; a mixed axis spins each Euler angle at its own
// rate rather than rotating about the axis itself.
type Spin struct {
	Target *renderer.Transform
	Axis   mgl32.Vec3
	Speed  float32
}

func NewSpin(target *renderer.Transform, params Params) Behaviour {
	axis := params.Axis
	if axis.Len() == 0 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	speed := params.Speed
	if speed == 0 {
		speed = 1
	}
	return &Spin{Target: target, Axis: axis.Normalize(), Speed: speed}
}

func (s *Spin) Start() {}

func (s *Spin) Update(deltaTime float32) {
	s.Target.Rotate(s.Axis.Mul(s.Speed * deltaTime))
}

func (s *Spin) UpdateFixed() {}

// Orbit circles its target around Center in the horizontal plane, keeping
// the target's height.
type Orbit struct {
	Target *renderer.Transform
	Center mgl32.Vec3
	Radius float32
	Speed  float32
	angle  float32
}

func NewOrbit(target *renderer.Transform, params Params) Behaviour {
	speed := params.Speed
	if speed == 0 {
		speed = 1
	}
	return &Orbit{Target: target, Center: params.Center, Radius: params.Radius, Speed: speed}
}

// Start picks up the orbit where the target already is. A zero Radius takes
// the target's current horizontal distance from Center.
func (o *Orbit) Start() {
	offset := o.Target.Position.Sub(o.Center)
	o.angle = math32.Atan2(offset.Z(), offset.X())
	if o.Radius == 0 {
		o.Radius = math32.Sqrt(offset.X()*offset.X() + offset.Z()*offset.Z())
	}
}

func (o *Orbit) Update(deltaTime float32) {
	o.angle += o.Speed * deltaTime
	o.Target.Position = mgl32.Vec3{
		o.Center.X() + o.Radius*math32.Cos(o.angle),
		o.Target.Position.Y(),
		o.Center.Z() + o.Radius*math32.Sin(o.angle),
	}
}

func (o *Orbit) UpdateFixed() {}

// FixedStep is the simulated time of one fixed update, in seconds.
const FixedStep = 1.0 / 30.0

// Wander drifts its target around its starting position along Perlin noise.
// It only moves on fixed updates, so the path is independent of frame rate.
type Wander struct {
	Target    *renderer.Transform
	Amplitude float32
	Speed     float32
	noise     *perlin.Perlin
	origin    mgl32.Vec3
	time      float64
}

func NewWander(target *renderer.Transform, params Params) Behaviour {
	amplitude := params.Amplitude
	if amplitude == 0 {
		amplitude = 1
	}
	speed := params.Speed
	if speed == 0 {
		speed = 1
	}
	return &Wander{
		Target:    target,
		Amplitude: amplitude,
		Speed:     speed,
		noise:     perlin.NewPerlin(2, 2, 3, params.Seed),
	}
}

func (w *Wander) Start() {
	w.origin = w.Target.Position
}

func (w *Wander) Update(deltaTime float32) {}

// Each axis samples the same noise curve at a different offset.
func (w *Wander) UpdateFixed() {
	w.time += FixedStep * float64(w.Speed)
	offset := mgl32.Vec3{
		float32(w.noise.Noise1D(w.time)),
		float32(w.noise.Noise1D(w.time + 31.4)),
		float32(w.noise.Noise1D(w.time + 62.8)),
	}
	w.Target.Position = w.origin.Add(offset.Mul(w.Amplitude))
}

// Bounce moves its target up and down around its starting height, Amplitude
// units each way at Speed radians per second.
type Bounce struct {
	Target    *renderer.Transform
	Amplitude float32
	Speed     float32
	startY    float32
	time      float32
}

func NewBounce(target *renderer.Transform, params Params) Behaviour {
	b := &Bounce{Target: target, Amplitude: params.Amplitude, Speed: params.Speed}
	if b.Amplitude == 0 {
		b.Amplitude = 0.5
	}
	if b.Speed == 0 {
		b.Speed = 2
	}
	return b
}

func (b *Bounce) Start() {
	b.startY = b.Target.Position.Y()
}

func (b *Bounce) Update(deltaTime float32) {
	b.time += deltaTime * b.Speed
	b.Target.Position[1] = b.startY + math32.Sin(b.time)*b.Amplitude
}

func (b *Bounce) UpdateFixed() {}
