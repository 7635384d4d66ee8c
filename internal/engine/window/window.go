// Package window runs an engine in a GLFW window.
package window

import (
	"fmt"
	"runtime"

	"Tekka/internal/config"
	"Tekka/internal/engine"
	"Tekka/internal/gpu"
	"Tekka/internal/logger"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Run opens a window for cfg and drives the engine until the window is
// closed or a frame fails. It must be called from the main goroutine.
func Run(cfg config.Config) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("engine: glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("engine: create window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	device, err := gpu.NewOpenGL()
	if err != nil {
		return err
	}
	logger.Log.Info("OpenGL context ready", zap.String("version", device.Version()))

	eng, err := engine.New(device, cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	// The framebuffer can differ from the window size on high-DPI displays.
	fbWidth, fbHeight := window.GetFramebufferSize()
	eng.Resize(int32(fbWidth), int32(fbHeight))
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		eng.Resize(int32(width), int32(height))
	})
	eng.SetInput(newWindowInput(window, eng))

	lastTime := glfw.GetTime()
	for !window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := float32(currentTime - lastTime)
		lastTime = currentTime

		eng.Update(deltaTime)
		if err := eng.Render(deltaTime); err != nil {
			return err
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
	logger.Log.Info("Window closed")
	return nil
}
