package renderer

import (
	"fmt"

	"Tekka/internal/logger"

	"go.uber.org/zap"
)

// Scene is an ordered list of drawables. Insertion order is render order
// and decides which lights each drawable receives.
type Scene struct {
	drawables []Drawable
	shared    []*Shader
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) Add(d Drawable) {
	s.drawables = append(s.drawables, d)
}

// Remove takes d out of the scene without destroying it. It reports whether
// d was present.
func (s *Scene) Remove(d Drawable) bool {
	for i, other := range s.drawables {
		if other == d {
			s.drawables = append(s.drawables[:i], s.drawables[i+1:]...)
			return true
		}
	}
	return false
}

// Drawables returns the scene contents in render order. The slice must not
// be modified.
func (s *Scene) Drawables() []Drawable {
	return s.drawables
}

// Find returns the first drawable with the given name.
func (s *Scene) Find(name string) (Drawable, bool) {
	for _, d := range s.drawables {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}

// Share hands a shader to the scene, which deletes it on Destroy. Drawables
// using it must not own it.
func (s *Scene) Share(shader *Shader) *Shader {
	s.shared = append(s.shared, shader)
	return shader
}

// SharedShaders returns the scene-owned shaders in the order they were
// shared.
func (s *Scene) SharedShaders() []*Shader {
	return s.shared
}

// LightsFor selects the lights for target: the first MaxLights light
// sources in insertion order, excluding target itself.
func (s *Scene) LightsFor(target Drawable) []LightSource {
	lights := make([]LightSource, 0, MaxLights)
	for _, d := range s.drawables {
		if len(lights) == MaxLights {
			break
		}
		if d == target || !d.IsLight() {
			continue
		}
		lights = append(lights, d.AsLight())
	}
	return lights
}

// Render draws every drawable once with its selected lights. The first
// failure stops the frame.
func (s *Scene) Render(camera *Camera) error {
	for _, d := range s.drawables {
		if err := d.Render(camera, s.LightsFor(d)); err != nil {
			return fmt.Errorf("scene: render %q: %w", d.Name(), err)
		}
	}
	return nil
}

// Destroy releases every drawable, then the shared shaders, and empties the
// scene.
func (s *Scene) Destroy() {
	for _, d := range s.drawables {
		d.Destroy()
	}
	for _, shader := range s.shared {
		shader.Delete()
	}
	logger.Log.Debug("Scene destroyed",
		zap.Int("drawables", len(s.drawables)),
		zap.Int("sharedShaders", len(s.shared)))
	s.drawables = nil
	s.shared = nil
}
