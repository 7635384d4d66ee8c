package renderer

import (
	"strings"

	"Tekka/internal/gpu"
	"Tekka/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	device   gpu.Device
	program  uint32
	uniforms *UniformCache
}

// NewShader compiles both stages and links them into a program. Any
// non-empty info log is treated as a failure, warnings included.
func NewShader(device gpu.Device, vertexSource, fragmentSource string) (*Shader, error) {
	program, err := buildProgram(device, vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	logger.Log.Debug("Shader program linked", zap.Uint32("program", program))
	return &Shader{
		device:   device,
		program:  program,
		uniforms: NewUniformCache(device, program),
	}, nil
}

func compileStage(device gpu.Device, stage gpu.ShaderStage, source string) (uint32, error) {
	shader := device.CreateShader(stage)
	device.CompileShader(shader, source)
	if log := strings.TrimSpace(device.ShaderInfoLog(shader)); log != "" {
		device.DeleteShader(shader)
		return 0, &ShaderBuildError{Stage: stage.String(), Log: log}
	}
	return shader, nil
}

func buildProgram(device gpu.Device, vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileStage(device, gpu.VertexStage, vertexSource)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileStage(device, gpu.FragmentStage, fragmentSource)
	if err != nil {
		device.DeleteShader(vertexShader)
		return 0, err
	}

	program := device.CreateProgram()
	device.AttachShader(program, vertexShader)
	device.AttachShader(program, fragmentShader)
	device.LinkProgram(program)

	device.DetachShader(program, vertexShader)
	device.DeleteShader(vertexShader)
	device.DetachShader(program, fragmentShader)
	device.DeleteShader(fragmentShader)

	if log := strings.TrimSpace(device.ProgramInfoLog(program)); log != "" {
		device.DeleteProgram(program)
		return 0, &ShaderBuildError{Stage: "link", Log: log}
	}
	return program, nil
}

// Program returns the native program handle, 0 once deleted.
func (shader *Shader) Program() uint32 {
	return shader.program
}

func (shader *Shader) Use() {
	shader.device.UseProgram(shader.program)
}

func (shader *Shader) Unbind() {
	shader.device.UseProgram(0)
}

// Reload replaces the program with one built from new sources. On failure
// the current program stays in use.
func (shader *Shader) Reload(vertexSource, fragmentSource string) error {
	program, err := buildProgram(shader.device, vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	if shader.program != 0 {
		shader.device.DeleteProgram(shader.program)
	}
	shader.program = program
	shader.uniforms.Reset(program)
	logger.Log.Info("Shader program reloaded", zap.Uint32("program", program))
	return nil
}

// Delete releases the program. Further calls are no-ops.
func (shader *Shader) Delete() {
	if shader.program == 0 {
		return
	}
	shader.device.DeleteProgram(shader.program)
	shader.program = 0
	shader.uniforms.Clear()
}

func (shader *Shader) location(name string) (int32, error) {
	loc, ok := shader.uniforms.GetLocation(name)
	if !ok {
		return -1, &UniformError{Name: name, Program: shader.program}
	}
	return loc, nil
}

// HasUniform reports whether the program has an active uniform with that
// exact name.
func (shader *Shader) HasUniform(name string) bool {
	_, ok := shader.uniforms.GetLocation(name)
	return ok
}

func (shader *Shader) SetInt(name string, value int32) error {
	loc, err := shader.location(name)
	if err != nil {
		return err
	}
	shader.device.Uniform1i(loc, value)
	return nil
}

func (shader *Shader) SetFloat(name string, value float32) error {
	loc, err := shader.location(name)
	if err != nil {
		return err
	}
	shader.device.Uniform1f(loc, value)
	return nil
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) error {
	loc, err := shader.location(name)
	if err != nil {
		return err
	}
	shader.device.Uniform3f(loc, value.X(), value.Y(), value.Z())
	return nil
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) error {
	loc, err := shader.location(name)
	if err != nil {
		return err
	}
	shader.device.UniformMatrix4(loc, value)
	return nil
}

// uniformWriter keeps the first failed upload and skips every write after
// it, so a render pass can upload its uniforms and check once.
type uniformWriter struct {
	shader *Shader
	err    error
}

func (w *uniformWriter) setInt(name string, value int32) {
	if w.err == nil {
		w.err = w.shader.SetInt(name, value)
	}
}

func (w *uniformWriter) setFloat(name string, value float32) {
	if w.err == nil {
		w.err = w.shader.SetFloat(name, value)
	}
}

func (w *uniformWriter) setVec3(name string, value mgl32.Vec3) {
	if w.err == nil {
		w.err = w.shader.SetVec3(name, value)
	}
}

func (w *uniformWriter) setMat4(name string, value mgl32.Mat4) {
	if w.err == nil {
		w.err = w.shader.SetMat4(name, value)
	}
}
