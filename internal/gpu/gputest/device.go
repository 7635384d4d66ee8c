// Package gputest provides an in-memory gpu.Device that records every call
// and emulates just enough of a GLSL toolchain (compile diagnostics, uniform
// reflection, per-program uniform state) to test the renderer without a
// graphics context.
package gputest

import (
	"fmt"
	"sort"
	"strings"

	"Tekka/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

type Shader struct {
	Stage    gpu.ShaderStage
	Source   string
	Log      string
	Compiled bool
}

type Program struct {
	Attached []uint32
	Linked   bool
	Log      string
	// Uniforms lists the active uniform names in declaration order.
	Uniforms  []string
	locations map[string]int32
	Values    map[string]any
}

type Attrib struct {
	Size    int32
	Stride  int
	Offset  int
	Buffer  uint32
	Enabled bool
}

type VertexArray struct {
	Attribs       map[uint32]Attrib
	ElementBuffer uint32
}

type Buffer struct {
	Target gpu.BufferTarget
	Floats []float32
	Uints  []uint32
}

type Texture struct {
	Width, Height int32
	Pixels        []uint8
	Params        map[gpu.TextureParam]gpu.TextureValue
	Mipmapped     bool
	Unit          uint32
}

// UniformWrite is one uniform upload, resolved back to its name.
type UniformWrite struct {
	Program uint32
	Name    string
	Value   any
}

// Draw is one recorded draw call with a snapshot of the program's uniform
// state at the time of the call.
type Draw struct {
	Program  uint32
	VAO      uint32
	Texture  uint32
	Mode     gpu.Primitive
	First    int32
	Count    int32
	Indexed  bool
	Uniforms map[string]any
}

// Device is a recording gpu.Device. The zero value is not usable; call New.
type Device struct {
	// Compiler produces the info log for a compiled stage; an empty log means
	// success. Defaults to CheckSource.
	Compiler func(stage gpu.ShaderStage, source string) string
	// LinkLog is reported by every subsequent link; a non-blank log fails it.
	LinkLog string

	next uint32

	Shaders      map[uint32]*Shader
	Programs     map[uint32]*Program
	Buffers      map[uint32]*Buffer
	VertexArrays map[uint32]*VertexArray
	Textures     map[uint32]*Texture

	CurrentProgram uint32
	BoundVAO       uint32
	BoundBuffers   map[gpu.BufferTarget]uint32
	BoundTexture   uint32
	ActiveUnit     uint32

	ViewportRect [4]int32
	ClearRGBA    [4]float32
	Clears       int
	Enabled      map[gpu.Capability]bool

	Writes []UniformWrite
	Draws  []Draw
	// Errors collects API misuse a real driver would flag or silently
	// mishandle: double deletes, uniform writes without a program, draws
	// without a vertex array.
	Errors []string
}

var _ gpu.Device = (*Device)(nil)

func New() *Device {
	return &Device{
		Compiler:     CheckSource,
		Shaders:      make(map[uint32]*Shader),
		Programs:     make(map[uint32]*Program),
		Buffers:      make(map[uint32]*Buffer),
		VertexArrays: make(map[uint32]*VertexArray),
		Textures:     make(map[uint32]*Texture),
		BoundBuffers: make(map[gpu.BufferTarget]uint32),
		Enabled:      make(map[gpu.Capability]bool),
	}
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

func (d *Device) fail(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

// Live reports how many native objects have not been deleted.
func (d *Device) Live() int {
	return len(d.Shaders) + len(d.Programs) + len(d.Buffers) + len(d.VertexArrays) + len(d.Textures)
}

// UniformValue returns the current value of a program's uniform.
func (d *Device) UniformValue(program uint32, name string) (any, bool) {
	p, ok := d.Programs[program]
	if !ok {
		return nil, false
	}
	v, ok := p.Values[name]
	return v, ok
}

// WriteNames returns the uniform names written between two indexes of
// Writes, in call order.
func (d *Device) WriteNames(from, to int) []string {
	names := make([]string, 0, to-from)
	for _, w := range d.Writes[from:to] {
		names = append(names, w.Name)
	}
	return names
}

func (d *Device) LastDraw() (Draw, bool) {
	if len(d.Draws) == 0 {
		return Draw{}, false
	}
	return d.Draws[len(d.Draws)-1], true
}

func (d *Device) CreateShader(stage gpu.ShaderStage) uint32 {
	h := d.handle()
	d.Shaders[h] = &Shader{Stage: stage}
	return h
}

func (d *Device) CompileShader(shader uint32, source string) {
	s, ok := d.Shaders[shader]
	if !ok {
		d.fail("compile of unknown shader %d", shader)
		return
	}
	s.Source = source
	s.Log = d.Compiler(s.Stage, source)
	// Drivers may report a blank log for a successful compile.
	s.Compiled = strings.TrimSpace(s.Log) == ""
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	if s, ok := d.Shaders[shader]; ok {
		return s.Log
	}
	return ""
}

func (d *Device) DeleteShader(shader uint32) {
	if _, ok := d.Shaders[shader]; !ok {
		d.fail("delete of unknown shader %d", shader)
		return
	}
	delete(d.Shaders, shader)
}

func (d *Device) CreateProgram() uint32 {
	h := d.handle()
	d.Programs[h] = &Program{locations: make(map[string]int32), Values: make(map[string]any)}
	return h
}

func (d *Device) AttachShader(program, shader uint32) {
	p, ok := d.Programs[program]
	if !ok {
		d.fail("attach to unknown program %d", program)
		return
	}
	p.Attached = append(p.Attached, shader)
}

func (d *Device) DetachShader(program, shader uint32) {
	p, ok := d.Programs[program]
	if !ok {
		d.fail("detach from unknown program %d", program)
		return
	}
	for i, s := range p.Attached {
		if s == shader {
			p.Attached = append(p.Attached[:i], p.Attached[i+1:]...)
			return
		}
	}
	d.fail("detach of shader %d not attached to program %d", shader, program)
}

func (d *Device) LinkProgram(program uint32) {
	p, ok := d.Programs[program]
	if !ok {
		d.fail("link of unknown program %d", program)
		return
	}
	if strings.TrimSpace(d.LinkLog) != "" {
		p.Log = d.LinkLog
		return
	}

	stages := make(map[gpu.ShaderStage]bool)
	var names []string
	for _, h := range p.Attached {
		s, ok := d.Shaders[h]
		if !ok || !s.Compiled {
			p.Log = fmt.Sprintf("error: attached shader %d is not compiled", h)
			return
		}
		stages[s.Stage] = true
		names = append(names, ReflectUniforms(s.Source)...)
	}
	if !stages[gpu.VertexStage] || !stages[gpu.FragmentStage] {
		p.Log = "error: program needs a vertex and a fragment stage"
		return
	}

	p.Linked = true
	p.Log = d.LinkLog
	for _, name := range names {
		if _, dup := p.locations[name]; dup {
			continue
		}
		p.locations[name] = int32(len(p.Uniforms))
		p.Uniforms = append(p.Uniforms, name)
	}
}

func (d *Device) ProgramInfoLog(program uint32) string {
	if p, ok := d.Programs[program]; ok {
		return p.Log
	}
	return ""
}

func (d *Device) UseProgram(program uint32) {
	if program != 0 {
		if p, ok := d.Programs[program]; !ok || !p.Linked {
			d.fail("use of unlinked program %d", program)
		}
	}
	d.CurrentProgram = program
}

func (d *Device) DeleteProgram(program uint32) {
	if _, ok := d.Programs[program]; !ok {
		d.fail("delete of unknown program %d", program)
		return
	}
	delete(d.Programs, program)
	if d.CurrentProgram == program {
		d.CurrentProgram = 0
	}
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	p, ok := d.Programs[program]
	if !ok || !p.Linked {
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) setUniform(location int32, value any) {
	if location < 0 {
		return
	}
	p, ok := d.Programs[d.CurrentProgram]
	if !ok {
		d.fail("uniform write at location %d without a program", location)
		return
	}
	if int(location) >= len(p.Uniforms) {
		d.fail("uniform write at invalid location %d", location)
		return
	}
	name := p.Uniforms[location]
	p.Values[name] = value
	d.Writes = append(d.Writes, UniformWrite{Program: d.CurrentProgram, Name: name, Value: value})
}

func (d *Device) Uniform1i(location int32, v int32) { d.setUniform(location, v) }

func (d *Device) Uniform1f(location int32, v float32) { d.setUniform(location, v) }

func (d *Device) Uniform3f(location int32, x, y, z float32) {
	d.setUniform(location, mgl32.Vec3{x, y, z})
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) { d.setUniform(location, m) }

func (d *Device) CreateBuffer() uint32 {
	h := d.handle()
	d.Buffers[h] = &Buffer{}
	return h
}

func (d *Device) BindBuffer(target gpu.BufferTarget, buffer uint32) {
	d.BoundBuffers[target] = buffer
	if target == gpu.ElementArrayBuffer && d.BoundVAO != 0 {
		d.VertexArrays[d.BoundVAO].ElementBuffer = buffer
	}
}

func (d *Device) bound(target gpu.BufferTarget) *Buffer {
	b, ok := d.Buffers[d.BoundBuffers[target]]
	if !ok {
		d.fail("upload without a bound buffer")
		return nil
	}
	b.Target = target
	return b
}

func (d *Device) BufferFloats(target gpu.BufferTarget, data []float32) {
	if b := d.bound(target); b != nil {
		b.Floats = append([]float32(nil), data...)
	}
}

func (d *Device) BufferUints(target gpu.BufferTarget, data []uint32) {
	if b := d.bound(target); b != nil {
		b.Uints = append([]uint32(nil), data...)
	}
}

func (d *Device) DeleteBuffer(buffer uint32) {
	if _, ok := d.Buffers[buffer]; !ok {
		d.fail("delete of unknown buffer %d", buffer)
		return
	}
	delete(d.Buffers, buffer)
}

func (d *Device) CreateVertexArray() uint32 {
	h := d.handle()
	d.VertexArrays[h] = &VertexArray{Attribs: make(map[uint32]Attrib)}
	return h
}

func (d *Device) BindVertexArray(vao uint32) {
	if vao != 0 {
		if _, ok := d.VertexArrays[vao]; !ok {
			d.fail("bind of unknown vertex array %d", vao)
			return
		}
	}
	d.BoundVAO = vao
}

func (d *Device) VertexAttribPointer(index uint32, size int32, stride, offset int) {
	vao, ok := d.VertexArrays[d.BoundVAO]
	if !ok {
		d.fail("attribute pointer without a vertex array")
		return
	}
	a := vao.Attribs[index]
	a.Size, a.Stride, a.Offset = size, stride, offset
	a.Buffer = d.BoundBuffers[gpu.ArrayBuffer]
	vao.Attribs[index] = a
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	vao, ok := d.VertexArrays[d.BoundVAO]
	if !ok {
		d.fail("attribute enable without a vertex array")
		return
	}
	a := vao.Attribs[index]
	a.Enabled = true
	vao.Attribs[index] = a
}

func (d *Device) DeleteVertexArray(vao uint32) {
	if _, ok := d.VertexArrays[vao]; !ok {
		d.fail("delete of unknown vertex array %d", vao)
		return
	}
	delete(d.VertexArrays, vao)
	if d.BoundVAO == vao {
		d.BoundVAO = 0
	}
}

func (d *Device) CreateTexture() uint32 {
	h := d.handle()
	d.Textures[h] = &Texture{Params: make(map[gpu.TextureParam]gpu.TextureValue)}
	return h
}

func (d *Device) ActiveTexture(unit uint32) { d.ActiveUnit = unit }

func (d *Device) BindTexture(texture uint32) {
	if texture != 0 {
		t, ok := d.Textures[texture]
		if !ok {
			d.fail("bind of unknown texture %d", texture)
			return
		}
		t.Unit = d.ActiveUnit
	}
	d.BoundTexture = texture
}

func (d *Device) boundTexture() *Texture {
	t, ok := d.Textures[d.BoundTexture]
	if !ok {
		d.fail("texture call without a bound texture")
		return nil
	}
	return t
}

func (d *Device) TexImage2D(width, height int32, pixels []uint8) {
	if t := d.boundTexture(); t != nil {
		if int(width*height*4) != len(pixels) {
			d.fail("texture upload of %dx%d with %d bytes", width, height, len(pixels))
		}
		t.Width, t.Height = width, height
		t.Pixels = append([]uint8(nil), pixels...)
	}
}

func (d *Device) TexParameter(param gpu.TextureParam, value gpu.TextureValue) {
	if t := d.boundTexture(); t != nil {
		t.Params[param] = value
	}
}

func (d *Device) GenerateMipmap() {
	if t := d.boundTexture(); t != nil {
		t.Mipmapped = true
	}
}

func (d *Device) DeleteTexture(texture uint32) {
	if _, ok := d.Textures[texture]; !ok {
		d.fail("delete of unknown texture %d", texture)
		return
	}
	delete(d.Textures, texture)
	if d.BoundTexture == texture {
		d.BoundTexture = 0
	}
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.ViewportRect = [4]int32{x, y, width, height}
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.ClearRGBA = [4]float32{r, g, b, a}
}

func (d *Device) Clear() { d.Clears++ }

func (d *Device) Enable(c gpu.Capability) { d.Enabled[c] = true }

func (d *Device) Disable(c gpu.Capability) { d.Enabled[c] = false }

func (d *Device) draw(mode gpu.Primitive, first, count int32, indexed bool) {
	if d.BoundVAO == 0 {
		d.fail("draw without a vertex array")
	}
	snapshot := make(map[string]any)
	if p, ok := d.Programs[d.CurrentProgram]; ok {
		for k, v := range p.Values {
			snapshot[k] = v
		}
	} else {
		d.fail("draw without a program")
	}
	d.Draws = append(d.Draws, Draw{
		Program:  d.CurrentProgram,
		VAO:      d.BoundVAO,
		Texture:  d.BoundTexture,
		Mode:     mode,
		First:    first,
		Count:    count,
		Indexed:  indexed,
		Uniforms: snapshot,
	})
}

func (d *Device) DrawArrays(mode gpu.Primitive, first, count int32) {
	d.draw(mode, first, count, false)
}

func (d *Device) DrawElements(mode gpu.Primitive, count int32) {
	vao, ok := d.VertexArrays[d.BoundVAO]
	if ok && vao.ElementBuffer == 0 {
		d.fail("indexed draw without an element buffer")
	}
	d.draw(mode, 0, count, true)
}

// SortedUniforms returns a program's active uniforms sorted by name.
func (d *Device) SortedUniforms(program uint32) []string {
	p, ok := d.Programs[program]
	if !ok {
		return nil
	}
	names := append([]string(nil), p.Uniforms...)
	sort.Strings(names)
	return names
}
