package renderer

import (
	"fmt"

	"Tekka/internal/gpu"
)

// Mesh is indexed position+normal+uv geometry sampled from one texture.
type Mesh struct {
	Base
	vbo     *Buffer
	ebo     *Buffer
	vao     *VertexArray
	texture *Texture
	count   int32
}

// NewMesh uploads data and takes over one reference to texture, which is
// deleted with the mesh.
func NewMesh(device gpu.Device, name string, data MeshData, texture *Texture, shader *Shader) (*Mesh, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}
	if texture == nil {
		return nil, fmt.Errorf("mesh %q: no texture", name)
	}

	vbo := NewVertexBuffer(device, Interleave(data.Vertices, true))
	ebo := NewIndexBuffer(device, data.Indices)
	vao := NewVertexArray(device, vbo, ebo)
	vao.VertexAttributePointer(PositionAttribute, 3, 8, 0)
	vao.VertexAttributePointer(NormalAttribute, 3, 8, 3)
	vao.VertexAttributePointer(TexCoordAttribute, 2, 8, 6)
	vao.Unbind()

	return &Mesh{
		Base:    newBase(device, name, shader),
		vbo:     vbo,
		ebo:     ebo,
		vao:     vao,
		texture: texture,
		count:   int32(len(data.Indices)),
	}, nil
}

// Texture returns the sampled texture, nil once destroyed.
func (m *Mesh) Texture() *Texture { return m.texture }

func (m *Mesh) Render(camera *Camera, lights []LightSource) error {
	if m.shader == nil {
		return errNoShader
	}
	m.vao.Bind()
	defer m.vao.Unbind()

	m.shader.Use()
	if err := m.writeUniforms(camera, lights); err != nil {
		return err
	}
	if err := m.shader.SetInt("modelTexture", 0); err != nil {
		return err
	}

	m.texture.Bind(0)
	m.device.DrawElements(gpu.Triangles, m.count)
	m.texture.Unbind()
	return nil
}

func (m *Mesh) Destroy() {
	m.vao.Delete()
	m.ebo.Delete()
	m.vbo.Delete()
	if m.texture != nil {
		m.texture.Delete()
		m.texture = nil
	}
	m.releaseShader()
}

// Model is a mesh imported from a file.
type Model struct {
	*Mesh
	SourcePath  string
	TexturePath string
}

func NewModel(device gpu.Device, name string, data MeshData, texture *Texture, shader *Shader) (*Model, error) {
	mesh, err := NewMesh(device, name, data, texture, shader)
	if err != nil {
		return nil, err
	}
	return &Model{Mesh: mesh, TexturePath: texture.Path}, nil
}
