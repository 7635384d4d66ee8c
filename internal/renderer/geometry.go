package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one corner of a mesh as it is handed to the GPU.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// MeshData is indexed triangle geometry.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// Validate checks the data forms whole triangles over existing vertices.
func (m MeshData) Validate() error {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return fmt.Errorf("mesh has no geometry")
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("mesh index %d at %d out of range (%d vertices)", idx, i, len(m.Vertices))
		}
	}
	return nil
}

// Interleave packs vertices as position, normal and, when withTexCoord is
// set, texture coordinate: 8 or 6 floats per vertex.
func Interleave(vertices []Vertex, withTexCoord bool) []float32 {
	size := 6
	if withTexCoord {
		size = 8
	}
	data := make([]float32, 0, len(vertices)*size)
	for _, v := range vertices {
		data = append(data,
			v.Position.X(), v.Position.Y(), v.Position.Z(),
			v.Normal.X(), v.Normal.Y(), v.Normal.Z())
		if withTexCoord {
			data = append(data, v.TexCoord.X(), v.TexCoord.Y())
		}
	}
	return data
}

type cubeFace struct {
	normal, u, v mgl32.Vec3
}

// u x v == normal for every face, so corners run counter-clockwise when seen
// from outside.
var cubeFaces = [6]cubeFace{
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
}

var quadCorners = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// CubeMeshData is a unit cube centred on the origin with 4 vertices and 6
// indices per face, each face mapping the full texture.
func CubeMeshData() MeshData {
	var data MeshData
	for _, f := range cubeFaces {
		base := uint32(len(data.Vertices))
		centre := f.normal.Mul(0.5)
		for _, uv := range quadCorners {
			pos := centre.Add(f.u.Mul(uv.X() - 0.5)).Add(f.v.Mul(uv.Y() - 0.5))
			data.Vertices = append(data.Vertices, Vertex{Position: pos, Normal: f.normal, TexCoord: uv})
		}
		data.Indices = append(data.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return data
}

// QuadMeshData is a unit square in the XY plane facing +Z.
func QuadMeshData() MeshData {
	var data MeshData
	for _, uv := range quadCorners {
		data.Vertices = append(data.Vertices, Vertex{
			Position: mgl32.Vec3{uv.X() - 0.5, uv.Y() - 0.5, 0},
			Normal:   mgl32.Vec3{0, 0, 1},
			TexCoord: uv,
		})
	}
	data.Indices = []uint32{0, 1, 2, 2, 3, 0}
	return data
}

// CubeVertices is the unit cube expanded to 36 non-indexed position+normal
// vertices.
func CubeVertices() []float32 {
	data := CubeMeshData()
	expanded := make([]Vertex, 0, len(data.Indices))
	for _, idx := range data.Indices {
		expanded = append(expanded, data.Vertices[idx])
	}
	return Interleave(expanded, false)
}
