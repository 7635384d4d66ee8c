package renderer

import (
	"errors"
	"fmt"
)

var (
	ErrShaderBuild     = errors.New("shader build failed")
	ErrUniformNotFound = errors.New("uniform not found")
)

// ShaderBuildError reports a compile or link failure. Stage is "vertex",
// "fragment" or "link"; Log is the driver's info log.
type ShaderBuildError struct {
	Stage string
	Log   string
}

func (e *ShaderBuildError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, e.Log)
}

func (e *ShaderBuildError) Is(target error) bool {
	return target == ErrShaderBuild
}

type UniformError struct {
	Name    string
	Program uint32
}

func (e *UniformError) Error() string {
	return fmt.Sprintf("uniform %q not found in program %d", e.Name, e.Program)
}

func (e *UniformError) Is(target error) bool {
	return target == ErrUniformNotFound
}
