package renderer

import (
	"Tekka/internal/gpu"
	"Tekka/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// FrameSettings is the fixed-function state applied at the start of every
// frame.
type FrameSettings struct {
	DepthTest   bool
	FaceCulling bool
	ClearColor  mgl32.Vec3
}

func DefaultFrameSettings() FrameSettings {
	return FrameSettings{DepthTest: true, ClearColor: mgl32.Vec3{0.1, 0.1, 0.1}}
}

// Renderer owns per-frame device state and draws a scene through a camera.
type Renderer struct {
	device   gpu.Device
	Settings FrameSettings
}

func NewRenderer(device gpu.Device, settings FrameSettings) *Renderer {
	return &Renderer{device: device, Settings: settings}
}

func (rend *Renderer) Init(width, height int32) {
	rend.UpdateViewport(width, height)
	logger.Log.Info("Renderer initialized",
		zap.Int32("width", width),
		zap.Int32("height", height))
}

// UpdateViewport updates the viewport to match the current framebuffer size
func (rend *Renderer) UpdateViewport(width, height int32) {
	rend.device.Viewport(0, 0, width, height)
}

func (rend *Renderer) Render(scene *Scene, camera *Camera) error {
	s := rend.Settings
	if s.DepthTest {
		rend.device.Enable(gpu.DepthTest)
	} else {
		rend.device.Disable(gpu.DepthTest)
	}
	if s.FaceCulling {
		rend.device.Enable(gpu.CullFace)
	} else {
		rend.device.Disable(gpu.CullFace)
	}
	rend.device.ClearColor(s.ClearColor.X(), s.ClearColor.Y(), s.ClearColor.Z(), 1.0)
	rend.device.Clear()

	return scene.Render(camera)
}
