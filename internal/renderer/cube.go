package renderer

import "Tekka/internal/gpu"

// Cube is an untextured unit cube drawn from 36 position+normal vertices.
type Cube struct {
	Base
	vbo   *Buffer
	vao   *VertexArray
	count int32
}

func NewCube(device gpu.Device, name string, shader *Shader) *Cube {
	vertices := CubeVertices()
	vbo := NewVertexBuffer(device, vertices)
	vao := NewVertexArray(device, vbo, nil)
	vao.VertexAttributePointer(PositionAttribute, 3, 6, 0)
	vao.VertexAttributePointer(NormalAttribute, 3, 6, 3)
	vao.Unbind()

	return &Cube{
		Base:  newBase(device, name, shader),
		vbo:   vbo,
		vao:   vao,
		count: int32(len(vertices) / 6),
	}
}

func (c *Cube) Render(camera *Camera, lights []LightSource) error {
	if c.shader == nil {
		return errNoShader
	}
	c.vao.Bind()
	defer c.vao.Unbind()

	c.shader.Use()
	if err := c.writeUniforms(camera, lights); err != nil {
		return err
	}
	c.device.DrawArrays(gpu.Triangles, 0, c.count)
	return nil
}

func (c *Cube) Destroy() {
	c.vao.Delete()
	c.vbo.Delete()
	c.releaseShader()
}
