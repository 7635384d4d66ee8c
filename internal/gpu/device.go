// Package gpu is the narrow surface of the graphics API the renderer uses.
// Every method must be called from the goroutine that owns the GL context.
package gpu

import "github.com/go-gl/mathgl/mgl32"

type BufferTarget uint32

const (
	ArrayBuffer BufferTarget = iota + 1
	ElementArrayBuffer
)

type ShaderStage uint32

const (
	VertexStage ShaderStage = iota + 1
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

type Primitive uint32

const (
	Triangles Primitive = iota + 1
	Lines
)

type TextureParam uint32

const (
	TextureWrapS TextureParam = iota + 1
	TextureWrapT
	TextureMinFilter
	TextureMagFilter
)

type TextureValue uint32

const (
	Repeat TextureValue = iota + 1
	ClampToEdge
	Nearest
	Linear
	LinearMipmapLinear
)

type Capability uint32

const (
	DepthTest Capability = iota + 1
	CullFace
)

// Device mirrors the subset of OpenGL the core needs. Handles are the native
// object names; 0 is never a valid handle.
type Device interface {
	CreateShader(stage ShaderStage) uint32
	CompileShader(shader uint32, source string)
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// UniformLocation returns -1 when the program has no active uniform with
	// that exact name.
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4(location int32, m mgl32.Mat4)

	CreateBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferFloats(target BufferTarget, data []float32)
	BufferUints(target BufferTarget, data []uint32)
	DeleteBuffer(buffer uint32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	// VertexAttribPointer declares a float attribute; stride and offset are
	// in bytes.
	VertexAttribPointer(index uint32, size int32, stride, offset int)
	EnableVertexAttribArray(index uint32)
	DeleteVertexArray(vao uint32)

	CreateTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(texture uint32)
	// TexImage2D uploads tightly packed RGBA8 pixels to the bound 2D texture.
	TexImage2D(width, height int32, pixels []uint8)
	TexParameter(param TextureParam, value TextureValue)
	GenerateMipmap()
	DeleteTexture(texture uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()
	Enable(c Capability)
	Disable(c Capability)
	DrawArrays(mode Primitive, first, count int32)
	DrawElements(mode Primitive, count int32)
}
