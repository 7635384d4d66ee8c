package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Objects, 4)

	lights := 0
	for _, o := range cfg.Objects {
		if o.Light {
			lights++
		}
	}
	assert.Equal(t, 2, lights)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[window]
width = 640
height = 480

[camera]
zoom = 30.0
invert_mouse = true

[[object]]
name = "lamp"
kind = "cube"
position = [1.0, 2.0, 3.0]
light = true
`))
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, "Tekka", cfg.Window.Title, "unset keys keep their defaults")
	assert.Equal(t, float32(30), cfg.Camera.Zoom)
	assert.Equal(t, float32(45), cfg.Camera.MaxZoom)
	assert.True(t, cfg.Camera.InvertMouse)

	require.Len(t, cfg.Objects, 1, "objects in the file replace the demo scene")
	lamp := cfg.Objects[0]
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, lamp.Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, lamp.Scale)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, lamp.LightColor)
}

func TestParseWithoutObjectsKeepsDemoScene(t *testing.T) {
	cfg, err := Parse([]byte("[log]\nlevel = \"debug\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DemoScene(), cfg.Objects)
}

func TestParseMaterialAndBehaviour(t *testing.T) {
	cfg, err := Parse([]byte(`
[[object]]
kind = "textured_cube"
texture = "crate.png"

[object.material]
diffuse = [1.0, 0.0, 0.0]
shininess = 64.0

[object.behaviour]
name = "spin"
speed = 2.0
`))
	require.NoError(t, err)
	require.Len(t, cfg.Objects, 1)

	o := cfg.Objects[0]
	assert.Equal(t, "textured_cube-0", o.Name)
	require.NotNil(t, o.Material)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, o.Material.Diffuse)
	assert.Equal(t, float32(64), o.Material.Shininess)
	require.NotNil(t, o.Behaviour)
	assert.Equal(t, "spin", o.Behaviour.Name)
	assert.Equal(t, float32(2), o.Behaviour.Speed)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[window]\nwidht = 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widht")
}

func TestParseReportsLine(t *testing.T) {
	_, err := Parse([]byte("[window]\nwidth = 1\nheight = =\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"zoom range", func(c *Config) { c.Camera.MinZoom = 50 }, "zoom range"},
		{"zoom value", func(c *Config) { c.Camera.Zoom = 60 }, "outside"},
		{"clip", func(c *Config) { c.Camera.Far = 0.01 }, "clip range"},
		{"front", func(c *Config) { c.Camera.Front = mgl32.Vec3{} }, "front"},
		{"interval", func(c *Config) { c.Render.FixedInterval = 0 }, "fixed_interval"},
		{"kind", func(c *Config) { c.Objects[0].Kind = "sphere" }, "unknown kind"},
		{"model path", func(c *Config) { c.Objects[0].Kind = KindModel }, "model path"},
		{"duplicate", func(c *Config) { c.Objects[1].Name = c.Objects[0].Name }, "duplicate"},
		{"behaviour", func(c *Config) { c.Objects[0].Behaviour = &Behaviour{} }, "behaviour needs a name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Window.Height = -1
	cfg.Objects[0].Kind = "sphere"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tekka.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"demo\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = -5\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
