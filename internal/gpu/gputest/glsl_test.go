package gputest

import (
	"testing"

	"Tekka/internal/gpu"

	"github.com/stretchr/testify/assert"
)

func TestCheckSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"valid", "#version 330 core\nvoid main() { }\n", ""},
		{"no version", "void main() { }", "no #version"},
		{"no main", "#version 330 core\nvoid other() { }", "main"},
		{"open brace", "#version 330 core\nvoid main() {\n", "unbalanced '{'"},
		{"open paren", "#version 330 core\nvoid main( { }\n", "unbalanced '('"},
		{"brace in comment", "#version 330 core\n// {\nvoid main() { }\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := CheckSource(gpu.FragmentStage, tt.source)
			if tt.want == "" {
				assert.Empty(t, log)
				return
			}
			assert.Contains(t, log, tt.want)
		})
	}
}

func TestReflectUniforms(t *testing.T) {
	src := `#version 330 core
struct Light {
    vec3 position;
    vec3 diffuse;
};
uniform mat4 uModel;
uniform Light light1;
// uniform float ignored;
uniform sampler2D modelTexture;
void main() { }
`
	assert.Equal(t,
		[]string{"uModel", "light1.position", "light1.diffuse", "modelTexture"},
		ReflectUniforms(src))
}

func TestLinkMergesUniforms(t *testing.T) {
	dev := New()
	vs := dev.CreateShader(gpu.VertexStage)
	dev.CompileShader(vs, "#version 330 core\nuniform mat4 uModel;\nvoid main() { }\n")
	fs := dev.CreateShader(gpu.FragmentStage)
	dev.CompileShader(fs, "#version 330 core\nuniform vec3 viewPos;\nuniform mat4 uModel;\nvoid main() { }\n")

	prog := dev.CreateProgram()
	dev.AttachShader(prog, vs)
	dev.AttachShader(prog, fs)
	dev.LinkProgram(prog)

	assert.Empty(t, dev.ProgramInfoLog(prog))
	assert.Equal(t, []string{"uModel", "viewPos"}, dev.SortedUniforms(prog))
	assert.Equal(t, int32(-1), dev.UniformLocation(prog, "missing"))

	dev.UseProgram(prog)
	dev.Uniform1f(dev.UniformLocation(prog, "viewPos"), 2)
	v, ok := dev.UniformValue(prog, "viewPos")
	assert.True(t, ok)
	assert.Equal(t, float32(2), v)
	assert.Equal(t, []string{"viewPos"}, dev.WriteNames(0, len(dev.Writes)))
}

func TestBlankLogsCompileAndLink(t *testing.T) {
	dev := New()
	dev.Compiler = func(gpu.ShaderStage, string) string { return " \n\t" }
	dev.LinkLog = "\n"

	vs := dev.CreateShader(gpu.VertexStage)
	dev.CompileShader(vs, "#version 330 core\nvoid main() { }\n")
	fs := dev.CreateShader(gpu.FragmentStage)
	dev.CompileShader(fs, "#version 330 core\nuniform vec3 viewPos;\nvoid main() { }\n")
	assert.True(t, dev.Shaders[vs].Compiled)
	assert.True(t, dev.Shaders[fs].Compiled)

	prog := dev.CreateProgram()
	dev.AttachShader(prog, vs)
	dev.AttachShader(prog, fs)
	dev.LinkProgram(prog)
	assert.True(t, dev.Programs[prog].Linked)
	assert.Equal(t, int32(0), dev.UniformLocation(prog, "viewPos"))

	dev.UseProgram(prog)
	assert.Empty(t, dev.Errors)
}
