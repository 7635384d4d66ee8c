package renderer

import "github.com/go-gl/mathgl/mgl32"

// MaxLights is the number of light slots every lit shader declares.
const MaxLights = 4

// LightSource is the per-frame view of a drawable that emits light.
type LightSource struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// Uniform names for each light slot, light1 through light4.
var (
	lightPositionNames [MaxLights]string
	lightDiffuseNames  [MaxLights]string
	lightSpecularNames [MaxLights]string
)

func init() {
	for i := 0; i < MaxLights; i++ {
		prefix := "light" + string(rune('1'+i))
		lightPositionNames[i] = prefix + ".position"
		lightDiffuseNames[i] = prefix + ".diffuse"
		lightSpecularNames[i] = prefix + ".specular"
	}
}
