// Package config loads the engine configuration from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Object kinds.
const (
	KindCube         = "cube"
	KindTexturedCube = "textured_cube"
	KindQuad         = "quad"
	KindModel        = "model"
)

type Config struct {
	Window  Window   `toml:"window"`
	Camera  Camera   `toml:"camera"`
	Render  Render   `toml:"render"`
	Shaders Shaders  `toml:"shaders"`
	Log     Log      `toml:"log"`
	Objects []Object `toml:"object"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type Camera struct {
	Position    mgl32.Vec3 `toml:"position"`
	Front       mgl32.Vec3 `toml:"front"`
	Zoom        float32    `toml:"zoom"`
	MinZoom     float32    `toml:"min_zoom"`
	MaxZoom     float32    `toml:"max_zoom"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
	Speed       float32    `toml:"speed"`
	Boost       float32    `toml:"boost"`
	Sensitivity float32    `toml:"sensitivity"`
	InvertMouse bool       `toml:"invert_mouse"`
}

type Render struct {
	DepthTest   bool       `toml:"depth_test"`
	FaceCulling bool       `toml:"face_culling"`
	ClearColor  mgl32.Vec3 `toml:"clear_color"`
	// FixedInterval is the number of frames between fixed updates.
	FixedInterval int `toml:"fixed_interval"`
}

// Shaders optionally replaces the built-in GLSL with files. Empty paths keep
// the built-in source for that stage.
type Shaders struct {
	LitVertex        string `toml:"lit_vertex"`
	LitFragment      string `toml:"lit_fragment"`
	TexturedVertex   string `toml:"textured_vertex"`
	TexturedFragment string `toml:"textured_fragment"`
	// Watch reloads a shader whenever one of its files is written.
	Watch bool `toml:"watch"`
}

type Log struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type Object struct {
	Name     string     `toml:"name"`
	Kind     string     `toml:"kind"`
	Position mgl32.Vec3 `toml:"position"`
	// Rotation is in degrees.
	Rotation mgl32.Vec3 `toml:"rotation"`
	Scale    mgl32.Vec3 `toml:"scale"`

	Light      bool       `toml:"light"`
	LightColor mgl32.Vec3 `toml:"light_color"`

	Model              string `toml:"model"`
	Texture            string `toml:"texture"`
	RecalculateNormals bool   `toml:"recalculate_normals"`

	Material  *Material  `toml:"material"`
	Behaviour *Behaviour `toml:"behaviour"`
}

type Material struct {
	Ambient   mgl32.Vec3 `toml:"ambient"`
	Diffuse   mgl32.Vec3 `toml:"diffuse"`
	Specular  mgl32.Vec3 `toml:"specular"`
	Shininess float32    `toml:"shininess"`
}

type Behaviour struct {
	Name      string     `toml:"name"`
	Speed     float32    `toml:"speed"`
	Axis      mgl32.Vec3 `toml:"axis"`
	Center    mgl32.Vec3 `toml:"center"`
	Radius    float32    `toml:"radius"`
	Amplitude float32    `toml:"amplitude"`
	Seed      int64      `toml:"seed"`
}

// Default is a runnable demo: a lit cube, two light cubes and a textured
// cube.
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "Tekka", VSync: true},
		Camera: Camera{
			Position:    mgl32.Vec3{0, 0, 3},
			Front:       mgl32.Vec3{0, 0, -1},
			Zoom:        45,
			MinZoom:     1,
			MaxZoom:     45,
			Near:        0.1,
			Far:         100,
			Speed:       5,
			Boost:       2,
			Sensitivity: 0.1,
		},
		Render: Render{
			DepthTest:     true,
			ClearColor:    mgl32.Vec3{0.1, 0.1, 0.1},
			FixedInterval: 2,
		},
		Log:     Log{Level: "info"},
		Objects: DemoScene(),
	}
}

func DemoScene() []Object {
	return []Object{
		{Name: "cube", Kind: KindCube, Scale: mgl32.Vec3{1, 1, 1}},
		{
			Name: "lamp", Kind: KindCube,
			Position: mgl32.Vec3{1.2, 1.0, 2.0}, Scale: mgl32.Vec3{0.2, 0.2, 0.2},
			Light: true, LightColor: mgl32.Vec3{1, 1, 1},
			Behaviour: &Behaviour{Name: "orbit", Speed: 0.8},
		},
		{
			Name: "warm-lamp", Kind: KindCube,
			Position: mgl32.Vec3{-2, 0.5, -1}, Scale: mgl32.Vec3{0.2, 0.2, 0.2},
			Light: true, LightColor: mgl32.Vec3{1, 0.6, 0.2},
			Behaviour: &Behaviour{Name: "wander", Amplitude: 0.5, Seed: 1},
		},
		{
			Name: "crate", Kind: KindTexturedCube,
			Position: mgl32.Vec3{2, 0, -2}, Scale: mgl32.Vec3{1, 1, 1},
			Behaviour: &Behaviour{Name: "spin", Speed: 0.5},
		},
	}
}

// Load reads path over the defaults. A file without objects keeps the demo
// scene.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults, rejecting unknown keys, then
// normalises and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	cfg.Objects = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return Config{}, fmt.Errorf("line %d column %d: %s", row, col, decodeErr.Error())
		}
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", strictErr.String())
		}
		return Config{}, err
	}

	if cfg.Objects == nil {
		cfg.Objects = DemoScene()
	}
	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalise() {
	for i := range c.Objects {
		o := &c.Objects[i]
		if o.Scale == (mgl32.Vec3{}) {
			o.Scale = mgl32.Vec3{1, 1, 1}
		}
		if o.Light && o.LightColor == (mgl32.Vec3{}) {
			o.LightColor = mgl32.Vec3{1, 1, 1}
		}
		if o.Name == "" {
			o.Name = fmt.Sprintf("%s-%d", o.Kind, i)
		}
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	cam := c.Camera
	if cam.MinZoom <= 0 || cam.MinZoom >= cam.MaxZoom {
		errs = append(errs, fmt.Errorf("camera zoom range [%g, %g] is invalid", cam.MinZoom, cam.MaxZoom))
	} else if cam.Zoom < cam.MinZoom || cam.Zoom > cam.MaxZoom {
		errs = append(errs, fmt.Errorf("camera zoom %g outside [%g, %g]", cam.Zoom, cam.MinZoom, cam.MaxZoom))
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		errs = append(errs, fmt.Errorf("camera clip range [%g, %g] is invalid", cam.Near, cam.Far))
	}
	if cam.Front == (mgl32.Vec3{}) {
		errs = append(errs, errors.New("camera front must not be zero"))
	}
	if c.Render.FixedInterval < 1 {
		errs = append(errs, fmt.Errorf("render fixed_interval %d must be at least 1", c.Render.FixedInterval))
	}

	names := make(map[string]bool)
	for i, o := range c.Objects {
		switch o.Kind {
		case KindCube, KindTexturedCube, KindQuad:
		case KindModel:
			if o.Model == "" {
				errs = append(errs, fmt.Errorf("object %d (%s): model objects need a model path", i, o.Name))
			}
		default:
			errs = append(errs, fmt.Errorf("object %d (%s): unknown kind %q", i, o.Name, o.Kind))
		}
		if names[o.Name] {
			errs = append(errs, fmt.Errorf("object %d: duplicate name %q", i, o.Name))
		}
		names[o.Name] = true
		if o.Behaviour != nil && o.Behaviour.Name == "" {
			errs = append(errs, fmt.Errorf("object %d (%s): behaviour needs a name", i, o.Name))
		}
	}
	return errors.Join(errs...)
}
