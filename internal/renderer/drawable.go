package renderer

import (
	"errors"

	"Tekka/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldColor is the ambient light every lit shader receives.
var WorldColor = mgl32.Vec3{0.4, 0.4, 0.4}

var errNoShader = errors.New("drawable has no shader")

// Drawable is anything the scene can render. Render is called once per frame
// with at most MaxLights lights, never including the drawable itself.
type Drawable interface {
	Name() string
	GetTransform() *Transform
	IsLight() bool
	AsLight() LightSource
	Render(camera *Camera, lights []LightSource) error
	Destroy()
}

// Base carries the state shared by every drawable.
type Base struct {
	device     gpu.Device
	name       string
	shader     *Shader
	ownsShader bool

	Transform Transform
	Material  Material

	// Light emission; only read when LightSource is set.
	LightSource   bool
	LightColor    mgl32.Vec3
	DiffuseColor  mgl32.Vec3
	SpecularColor mgl32.Vec3
}

func newBase(device gpu.Device, name string, shader *Shader) Base {
	return Base{
		device:    device,
		name:      name,
		shader:    shader,
		Transform: NewTransform(),
		Material:  DefaultMaterial(),
	}
}

func (b *Base) Name() string { return b.name }

func (b *Base) GetTransform() *Transform { return &b.Transform }

func (b *Base) IsLight() bool { return b.LightSource }

func (b *Base) AsLight() LightSource {
	return LightSource{
		Position: b.Transform.Position,
		Color:    b.LightColor,
		Diffuse:  b.DiffuseColor,
		Specular: b.SpecularColor,
	}
}

// MakeLight turns the drawable into a light of the given colour.
func (b *Base) MakeLight(color mgl32.Vec3) {
	b.LightSource = true
	b.LightColor = color
	b.DiffuseColor = color.Mul(0.5)
	b.SpecularColor = mgl32.Vec3{1, 1, 1}
}

func (b *Base) Shader() *Shader { return b.shader }

// SetShader replaces the drawable's shader. An owned shader is deleted with
// the drawable; a shared one is left to its owner.
func (b *Base) SetShader(shader *Shader, owned bool) {
	b.releaseShader()
	b.shader = shader
	b.ownsShader = owned
}

func (b *Base) releaseShader() {
	if b.ownsShader && b.shader != nil {
		b.shader.Delete()
	}
	b.shader = nil
	b.ownsShader = false
}

// writeUniforms uploads the per-draw uniforms in a fixed order. Light slots
// without a light are zeroed so no value from an earlier draw survives.
func (b *Base) writeUniforms(camera *Camera, lights []LightSource) error {
	w := uniformWriter{shader: b.shader}

	w.setMat4("uModel", b.Transform.ModelMatrix())
	w.setMat4("uView", camera.GetViewMatrix())
	w.setMat4("uProjection", camera.GetProjectionMatrix())
	w.setVec3("viewPos", camera.Position)

	w.setVec3("material.ambient", b.Material.Ambient)
	w.setVec3("material.diffuse", b.Material.Diffuse)
	w.setVec3("material.specular", b.Material.Specular)
	w.setFloat("material.shininess", b.Material.Shininess)

	for i := 0; i < MaxLights; i++ {
		var light LightSource
		if i < len(lights) {
			light = lights[i]
		}
		w.setVec3(lightPositionNames[i], light.Position)
		w.setVec3(lightDiffuseNames[i], light.Diffuse)
		w.setVec3(lightSpecularNames[i], light.Specular)
	}

	w.setVec3("world_color", WorldColor)

	// emission is optional: shaders written against the plain lighting
	// interface do not declare it.
	if b.shader.HasUniform("emission") {
		var emission mgl32.Vec3
		if b.LightSource {
			emission = b.LightColor
		}
		w.setVec3("emission", emission)
	}
	return w.err
}

var (
	_ Drawable = (*Cube)(nil)
	_ Drawable = (*Mesh)(nil)
	_ Drawable = (*Model)(nil)
)
