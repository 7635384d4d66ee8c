package renderer

import (
	"testing"

	"Tekka/internal/gpu/gputest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLightsForInsertionOrder(t *testing.T) {
	dev := gputest.New()
	shader := litShader(t, dev)
	scene := NewScene()

	target := NewCube(dev, "target", shader)
	scene.Add(target)
	for i := 0; i < 5; i++ {
		lightCube(dev, scene, shader, "light", mgl32.Vec3{float32(i), 0, 0})
	}

	lights := scene.LightsFor(target)

	require.Len(t, lights, MaxLights)
	for i, l := range lights {
		assert.Equal(t, mgl32.Vec3{float32(i), 0, 0}, l.Position)
	}
}

func TestLightsForFourLightsOneTarget(t *testing.T) {
	dev := gputest.New()
	shader := litShader(t, dev)
	scene := NewScene()

	lightCube(dev, scene, shader, "before", mgl32.Vec3{1, 0, 0})
	target := NewCube(dev, "target", shader)
	scene.Add(target)
	lightCube(dev, scene, shader, "a", mgl32.Vec3{2, 0, 0})
	lightCube(dev, scene, shader, "b", mgl32.Vec3{3, 0, 0})
	lightCube(dev, scene, shader, "c", mgl32.Vec3{4, 0, 0})

	lights := scene.LightsFor(target)

	require.Len(t, lights, 4)
	for i, l := range lights {
		assert.Equal(t, mgl32.Vec3{float32(i + 1), 0, 0}, l.Position)
	}

	require.NoError(t, scene.Render(NewDefaultCamera(800, 600)))
	draws := drawsOf(dev, target.vao.Handle())
	require.Len(t, draws, 1)
	for i, name := range []string{"light1", "light2", "light3", "light4"} {
		assert.Equal(t, mgl32.Vec3{float32(i + 1), 0, 0}, draws[0].Uniforms[name+".position"])
		assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, draws[0].Uniforms[name+".diffuse"])
	}
}

func TestLightsForExcludesSelf(t *testing.T) {
	dev := gputest.New()
	shader := litShader(t, dev)
	scene := NewScene()

	first := lightCube(dev, scene, shader, "first", mgl32.Vec3{1, 0, 0})
	lightCube(dev, scene, shader, "second", mgl32.Vec3{2, 0, 0})

	lights := scene.LightsFor(first)

	require.Len(t, lights, 1)
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, lights[0].Position)
}

func TestLightsForSkipsNonLights(t *testing.T) {
	dev := gputest.New()
	shader := litShader(t, dev)
	scene := NewScene()

	target := NewCube(dev, "target", shader)
	scene.Add(target)
	scene.Add(NewCube(dev, "plain", shader))

	assert.Empty(t, scene.LightsFor(target))
}

func TestRenderZeroesUnusedLightSlots(t *testing.T) {
	dev := gputest.New()
	shader := litShader(t, dev)
	scene := NewScene()
	cam := NewDefaultCamera(800, 600)

	target := NewCube(dev, "target", shader)
	scene.Add(target)
	var lights []*Cube
	for i := 0; i < 3; i++ {
		lights = append(lights, lightCube(dev, scene, shader, "light", mgl32.Vec3{0, float32(i + 1), 0}))
	}

	require.NoError(t, scene.Render(cam))
	first := drawsOf(dev, target.vao.Handle())
	require.Len(t, first, 1)
	assert.Equal(t, mgl32.Vec3{0, 3, 0}, first[0].Uniforms["light3.position"])
	assert.Equal(t, mgl32.Vec3{}, first[0].Uniforms["light4.diffuse"])

	// The program keeps its uniform state between draws; the removed lights
	// must not leak into the next frame.
	scene.Remove(lights[1])
	scene.Remove(lights[2])
	require.NoError(t, scene.Render(cam))

	second := drawsOf(dev, target.vao.Handle())
	require.Len(t, second, 2)
	u := second[1].Uniforms
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, u["light1.position"])
	for _, slot := range []string{"light2", "light3", "light4"} {
		assert.Equal(t, mgl32.Vec3{}, u[slot+".position"], slot)
		assert.Equal(t, mgl32.Vec3{}, u[slot+".diffuse"], slot)
		assert.Equal(t, mgl32.Vec3{}, u[slot+".specular"], slot)
	}
}

func TestRenderUsesAtMostFourLights(t *testing.T) {
	dev := gputest.New()
	shader := litShader(t, dev)
	scene := NewScene()
	cam := NewDefaultCamera(800, 600)

	target := NewCube(dev, "target", shader)
	scene.Add(target)
	for i := 0; i < 6; i++ {
		lightCube(dev, scene, shader, "light", mgl32.Vec3{float32(i), 0, 0})
	}

	require.NoError(t, scene.Render(cam))

	u := drawsOf(dev, target.vao.Handle())[0].Uniforms
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, u["light4.position"])
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, u["light4.diffuse"])
}

func TestRenderOrderFollowsInsertion(t *testing.T) {
	dev := gputest.New()
	shader := litShader(t, dev)
	scene := NewScene()

	a := NewCube(dev, "a", shader)
	b := NewCube(dev, "b", shader)
	c := NewCube(dev, "c", shader)
	scene.Add(a)
	scene.Add(b)
	scene.Add(c)
	require.True(t, scene.Remove(b))
	scene.Add(b)

	require.NoError(t, scene.Render(NewDefaultCamera(800, 600)))

	require.Len(t, dev.Draws, 3)
	assert.Equal(t, a.vao.Handle(), dev.Draws[0].VAO)
	assert.Equal(t, c.vao.Handle(), dev.Draws[1].VAO)
	assert.Equal(t, b.vao.Handle(), dev.Draws[2].VAO)
	assert.False(t, scene.Remove(NewCube(dev, "stranger", shader)))
}

func TestRenderErrorStopsFrame(t *testing.T) {
	dev := gputest.New()
	scene := NewScene()

	// A program missing every light slot.
	partial, err := NewShader(dev, LitVertexSource, `#version 330 core
uniform vec3 viewPos;
out vec4 FragColor;
void main() { FragColor = vec4(viewPos, 1.0); }
`)
	require.NoError(t, err)

	broken := NewCube(dev, "broken", partial)
	scene.Add(broken)
	scene.Add(NewCube(dev, "next", litShader(t, dev)))

	err = scene.Render(NewDefaultCamera(800, 600))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUniformNotFound)
	assert.Contains(t, err.Error(), `scene: render "broken": uniform "material.ambient" not found`)
	assert.Empty(t, dev.Draws, "no draw may follow a failed upload")
}

func TestSceneFind(t *testing.T) {
	dev := gputest.New()
	shader := litShader(t, dev)
	scene := NewScene()
	c := NewCube(dev, "crate", shader)
	scene.Add(c)

	found, ok := scene.Find("crate")
	assert.True(t, ok)
	assert.Equal(t, Drawable(c), found)

	_, ok = scene.Find("nothing")
	assert.False(t, ok)
}

func TestSceneDestroyReleasesEverything(t *testing.T) {
	dev := gputest.New()
	scene := NewScene()
	lit := scene.Share(litShader(t, dev))
	textured := scene.Share(texturedShader(t, dev))

	scene.Add(NewCube(dev, "cube", lit))
	lightCube(dev, scene, lit, "lamp", mgl32.Vec3{0, 2, 0})
	mesh, err := NewMesh(dev, "crate", CubeMeshData(), DefaultTexture(dev), textured)
	require.NoError(t, err)
	scene.Add(mesh)

	owned := NewCube(dev, "owner", nil)
	owned.SetShader(litShader(t, dev), true)
	scene.Add(owned)

	require.NoError(t, scene.Render(NewDefaultCamera(800, 600)))
	scene.Destroy()

	assert.Zero(t, dev.Live())
	assert.Empty(t, scene.Drawables())
	assert.Empty(t, dev.Errors)
}
