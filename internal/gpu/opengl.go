package gpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// OpenGL is the Device backed by a current OpenGL 4.1 core context.
type OpenGL struct{}

// NewOpenGL loads the GL function pointers for the context that is current on
// the calling thread.
func NewOpenGL() (*OpenGL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gpu: opengl init: %w", err)
	}
	return &OpenGL{}, nil
}

// Version reports the driver's version string.
func (*OpenGL) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (*OpenGL) CreateShader(stage ShaderStage) uint32 {
	return gl.CreateShader(glShaderStage(stage))
}

func (*OpenGL) CompileShader(shader uint32, source string) {
	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)
}

func (*OpenGL) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*OpenGL) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (*OpenGL) CreateProgram() uint32 { return gl.CreateProgram() }

func (*OpenGL) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (*OpenGL) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (*OpenGL) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (*OpenGL) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*OpenGL) UseProgram(program uint32) { gl.UseProgram(program) }

func (*OpenGL) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (*OpenGL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*OpenGL) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (*OpenGL) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (*OpenGL) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (*OpenGL) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (*OpenGL) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (*OpenGL) BindBuffer(target BufferTarget, buffer uint32) {
	gl.BindBuffer(glBufferTarget(target), buffer)
}

func (*OpenGL) BufferFloats(target BufferTarget, data []float32) {
	if len(data) == 0 {
		gl.BufferData(glBufferTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glBufferTarget(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (*OpenGL) BufferUints(target BufferTarget, data []uint32) {
	if len(data) == 0 {
		gl.BufferData(glBufferTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glBufferTarget(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (*OpenGL) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (*OpenGL) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (*OpenGL) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (*OpenGL) VertexAttribPointer(index uint32, size int32, stride, offset int) {
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, int32(stride), gl.PtrOffset(offset))
}

func (*OpenGL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (*OpenGL) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (*OpenGL) CreateTexture() uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	return texture
}

func (*OpenGL) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }

func (*OpenGL) BindTexture(texture uint32) { gl.BindTexture(gl.TEXTURE_2D, texture) }

func (*OpenGL) TexImage2D(width, height int32, pixels []uint8) {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

// TexParameter always goes through glTexParameteri on the bound texture; the
// DSA variant is missing on macOS's 4.1 driver.
func (*OpenGL) TexParameter(param TextureParam, value TextureValue) {
	gl.TexParameteri(gl.TEXTURE_2D, glTextureParam(param), glTextureValue(value))
}

func (*OpenGL) GenerateMipmap() { gl.GenerateMipmap(gl.TEXTURE_2D) }

func (*OpenGL) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (*OpenGL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (*OpenGL) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (*OpenGL) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }

func (*OpenGL) Enable(c Capability) { gl.Enable(glCapability(c)) }

func (*OpenGL) Disable(c Capability) { gl.Disable(glCapability(c)) }

func (*OpenGL) DrawArrays(mode Primitive, first, count int32) {
	gl.DrawArrays(glPrimitive(mode), first, count)
}

func (*OpenGL) DrawElements(mode Primitive, count int32) {
	gl.DrawElements(glPrimitive(mode), count, gl.UNSIGNED_INT, nil)
}

func glShaderStage(s ShaderStage) uint32 {
	if s == FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func glBufferTarget(t BufferTarget) uint32 {
	if t == ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glPrimitive(p Primitive) uint32 {
	if p == Lines {
		return gl.LINES
	}
	return gl.TRIANGLES
}

func glCapability(c Capability) uint32 {
	if c == CullFace {
		return gl.CULL_FACE
	}
	return gl.DEPTH_TEST
}

func glTextureParam(p TextureParam) uint32 {
	switch p {
	case TextureWrapS:
		return gl.TEXTURE_WRAP_S
	case TextureWrapT:
		return gl.TEXTURE_WRAP_T
	case TextureMinFilter:
		return gl.TEXTURE_MIN_FILTER
	default:
		return gl.TEXTURE_MAG_FILTER
	}
}

func glTextureValue(v TextureValue) int32 {
	switch v {
	case Repeat:
		return gl.REPEAT
	case ClampToEdge:
		return gl.CLAMP_TO_EDGE
	case Nearest:
		return gl.NEAREST
	case LinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}
