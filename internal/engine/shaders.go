package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"Tekka/internal/gpu"
	"Tekka/internal/logger"
	"Tekka/internal/renderer"

	"go.uber.org/zap"
)

// shaderSource is one of the engine's shared programs. A stage with a path
// is read from disk, otherwise the built-in source is used.
type shaderSource struct {
	name            string
	vertexPath      string
	fragmentPath    string
	vertexBuiltin   string
	fragmentBuiltin string
	shader          *renderer.Shader
}

func (s *shaderSource) sources() (vertex, fragment string, err error) {
	vertex, err = readStage(s.vertexPath, s.vertexBuiltin)
	if err != nil {
		return "", "", err
	}
	fragment, err = readStage(s.fragmentPath, s.fragmentBuiltin)
	if err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}

func readStage(path, builtin string) (string, error) {
	if path == "" {
		return builtin, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *shaderSource) build(device gpu.Device) error {
	vertex, fragment, err := s.sources()
	if err != nil {
		return fmt.Errorf("%s shader: %w", s.name, err)
	}
	shader, err := renderer.NewShader(device, vertex, fragment)
	if err != nil {
		return fmt.Errorf("%s shader: %w", s.name, err)
	}
	s.shader = shader
	return nil
}

// uses reports whether the absolute path is one of this program's files.
func (s *shaderSource) uses(path string) bool {
	for _, p := range []string{s.vertexPath, s.fragmentPath} {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil && abs == path {
			return true
		}
	}
	return false
}

// reload rebuilds the program from disk. On failure the running program is
// kept.
func (s *shaderSource) reload() {
	vertex, fragment, err := s.sources()
	if err == nil {
		err = s.shader.Reload(vertex, fragment)
	}
	if err != nil {
		logger.Log.Warn("Shader reload failed, keeping previous program",
			zap.String("shader", s.name),
			zap.Error(err))
		return
	}
	logger.Log.Info("Shader reloaded",
		zap.String("shader", s.name),
		zap.Uint32("program", s.shader.Program()))
}

func (s *shaderSource) files() []string {
	var files []string
	if s.vertexPath != "" {
		files = append(files, s.vertexPath)
	}
	if s.fragmentPath != "" {
		files = append(files, s.fragmentPath)
	}
	return files
}
