package renderer

import "github.com/go-gl/mathgl/mgl32"

type Material struct {
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

// DefaultMaterial is a matte coral surface.
func DefaultMaterial() Material {
	return Material{
		Ambient:   mgl32.Vec3{1.0, 0.5, 0.31},
		Diffuse:   mgl32.Vec3{1.0, 0.5, 0.31},
		Specular:  mgl32.Vec3{0.5, 0.5, 0.5},
		Shininess: 32,
	}
}
