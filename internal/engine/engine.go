// Package engine drives the frame loop: input, behaviours, shader reloads and
// rendering of the configured scene.
package engine

import (
	"fmt"

	"Tekka/internal/behaviour"
	"Tekka/internal/config"
	"Tekka/internal/gpu"
	"Tekka/internal/logger"
	"Tekka/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Engine owns every GPU resource of a running scene. All methods must be
// called from the thread that owns the GL context.
type Engine struct {
	device   *gpu.Tracker
	config   config.Config
	renderer *renderer.Renderer

	Camera     *renderer.Camera
	Scene      *renderer.Scene
	Textures   *renderer.TextureManager
	Behaviours *behaviour.BehaviourManager

	lit      *shaderSource
	textured *shaderSource
	watcher  *shaderWatcher
	input    Input

	width, height int32
	frameTrackId  int
	closed        bool
}

// New builds the configured scene on device. On error everything created so
// far has already been released.
func New(device gpu.Device, cfg config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	tracker := gpu.NewTracker(device)
	e := &Engine{
		device: tracker,
		config: cfg,
		renderer: renderer.NewRenderer(tracker, renderer.FrameSettings{
			DepthTest:   cfg.Render.DepthTest,
			FaceCulling: cfg.Render.FaceCulling,
			ClearColor:  cfg.Render.ClearColor,
		}),
		Camera:     newCamera(cfg),
		Scene:      renderer.NewScene(),
		Textures:   renderer.NewTextureManager(tracker),
		Behaviours: behaviour.NewBehaviourManager(),
		width:      int32(cfg.Window.Width),
		height:     int32(cfg.Window.Height),
		lit: &shaderSource{
			name:            "lit",
			vertexPath:      cfg.Shaders.LitVertex,
			fragmentPath:    cfg.Shaders.LitFragment,
			vertexBuiltin:   renderer.LitVertexSource,
			fragmentBuiltin: renderer.LitFragmentSource,
		},
		textured: &shaderSource{
			name:            "textured",
			vertexPath:      cfg.Shaders.TexturedVertex,
			fragmentPath:    cfg.Shaders.TexturedFragment,
			vertexBuiltin:   renderer.TexturedVertexSource,
			fragmentBuiltin: renderer.TexturedFragmentSource,
		},
	}

	if err := e.buildScene(cfg.Objects); err != nil {
		e.Close()
		return nil, fmt.Errorf("engine: %w", err)
	}
	if cfg.Shaders.Watch {
		if err := e.watchShaders(); err != nil {
			logger.Log.Warn("Shader hot reload disabled", zap.Error(err))
		}
	}

	e.renderer.Init(e.width, e.height)
	logger.Log.Info("Engine initialized",
		zap.Int("drawables", len(e.Scene.Drawables())),
		zap.Int("behaviours", e.Behaviours.Len()))
	return e, nil
}

func newCamera(cfg config.Config) *renderer.Camera {
	c := cfg.Camera
	aspect := float32(cfg.Window.Width) / float32(cfg.Window.Height)
	camera := renderer.NewCamera(c.Position, c.Front, mgl32.Vec3{0, 1, 0}, aspect)
	camera.Zoom = c.Zoom
	camera.MinZoom = c.MinZoom
	camera.MaxZoom = c.MaxZoom
	camera.Near = c.Near
	camera.Far = c.Far
	camera.Speed = c.Speed
	camera.Sensitivity = c.Sensitivity
	camera.InvertMouse = c.InvertMouse
	return camera
}

func (e *Engine) watchShaders() error {
	files := append(e.lit.files(), e.textured.files()...)
	if len(files) == 0 {
		return nil
	}
	watcher, err := newShaderWatcher(files)
	if err != nil {
		return err
	}
	e.watcher = watcher
	logger.Log.Info("Watching shader files", zap.Strings("files", files))
	return nil
}

// Device returns the tracking device every resource was created through.
func (e *Engine) Device() *gpu.Tracker { return e.device }

// SetInput sets the source of held movement keys; nil disables movement.
func (e *Engine) SetInput(input Input) { e.input = input }

// Look turns the camera by raw cursor offsets.
func (e *Engine) Look(dx, dy float32) {
	e.Camera.ProcessMouseMovement(dx, dy)
}

// Zoom narrows the field of view by delta degrees.
func (e *Engine) Zoom(delta float32) {
	e.Camera.ModifyZoom(delta)
}

// Update advances one frame of simulation.
func (e *Engine) Update(deltaTime float32) {
	e.applyMovement(deltaTime)
	e.drainReloads()

	e.frameTrackId++
	if e.frameTrackId >= e.config.Render.FixedInterval {
		e.Behaviours.UpdateAllFixed()
		e.frameTrackId = 0
	}
	e.Behaviours.UpdateAll(deltaTime)
}

func (e *Engine) applyMovement(deltaTime float32) {
	if e.input == nil {
		return
	}
	if e.input.Held(Boost) {
		deltaTime *= e.config.Camera.Boost
	}
	moves := []struct {
		action    Action
		direction renderer.Direction
	}{
		{MoveForward, renderer.Forward},
		{MoveBackward, renderer.Backward},
		{MoveLeft, renderer.Left},
		{MoveRight, renderer.Right},
	}
	for _, m := range moves {
		if e.input.Held(m.action) {
			e.Camera.Move(m.direction, deltaTime)
		}
	}
}

// drainReloads applies every reload the watcher queued since the last frame.
func (e *Engine) drainReloads() {
	if e.watcher == nil {
		return
	}
	for {
		select {
		case path := <-e.watcher.Changed:
			e.reloadShadersUsing(path)
		default:
			return
		}
	}
}

func (e *Engine) reloadShadersUsing(path string) {
	for _, s := range []*shaderSource{e.lit, e.textured} {
		if s.shader != nil && s.uses(path) {
			s.reload()
		}
	}
}

// Render draws one frame. An error leaves the frame incomplete and should
// stop the loop.
func (e *Engine) Render(deltaTime float32) error {
	if err := e.renderer.Render(e.Scene, e.Camera); err != nil {
		logger.Log.Error("Frame failed", zap.Error(err))
		return err
	}
	return nil
}

// Resize follows a framebuffer size change. A zero-sized framebuffer, as
// reported for a minimised window, is ignored.
func (e *Engine) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	e.width, e.height = width, height
	e.Camera.SetAspectRatio(float32(width) / float32(height))
	e.renderer.UpdateViewport(width, height)
}

// Close releases the scene, then anything still live on the device. It is
// safe to call more than once.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true

	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
	e.Behaviours.Clear()
	e.Scene.Destroy()
	e.Textures.LogStats()

	if leaked := e.device.ReleaseAll(); leaked > 0 {
		logger.Log.Warn("GPU objects leaked at shutdown", zap.Int("count", leaked))
	}
	e.device.LogStats()
}
