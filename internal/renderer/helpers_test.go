package renderer

import (
	"testing"

	"Tekka/internal/gpu/gputest"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

// near compares float32 components with an absolute tolerance, so tiny
// trigonometric noise around zero still matches.
func near(a, b float32) bool {
	return math32.Abs(a-b) < 1e-5
}

func litShader(t *testing.T, dev *gputest.Device) *Shader {
	t.Helper()
	shader, err := NewLitShader(dev)
	require.NoError(t, err)
	return shader
}

func texturedShader(t *testing.T, dev *gputest.Device) *Shader {
	t.Helper()
	shader, err := NewTexturedShader(dev)
	require.NoError(t, err)
	return shader
}

// lightCube adds a light cube to the scene at the given position.
func lightCube(dev *gputest.Device, scene *Scene, shader *Shader, name string, pos mgl32.Vec3) *Cube {
	c := NewCube(dev, name, shader)
	c.Transform.Position = pos
	c.MakeLight(mgl32.Vec3{1, 1, 1})
	scene.Add(c)
	return c
}

// drawsOf returns the recorded draws that used the given vertex array.
func drawsOf(dev *gputest.Device, vao uint32) []gputest.Draw {
	var draws []gputest.Draw
	for _, d := range dev.Draws {
		if d.VAO == vao {
			draws = append(draws, d)
		}
	}
	return draws
}

func expectedUniformOrder() []string {
	names := []string{
		"uModel", "uView", "uProjection", "viewPos",
		"material.ambient", "material.diffuse", "material.specular", "material.shininess",
	}
	for _, n := range []string{"light1", "light2", "light3", "light4"} {
		names = append(names, n+".position", n+".diffuse", n+".specular")
	}
	return append(names, "world_color", "emission")
}
