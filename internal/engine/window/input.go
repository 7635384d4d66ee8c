package window

import (
	"Tekka/internal/engine"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var actionKeys = map[engine.Action][]glfw.Key{
	engine.MoveForward:  {glfw.KeyW, glfw.KeyUp},
	engine.MoveBackward: {glfw.KeyS, glfw.KeyDown},
	engine.MoveLeft:     {glfw.KeyA, glfw.KeyLeft},
	engine.MoveRight:    {glfw.KeyD, glfw.KeyRight},
	engine.Boost:        {glfw.KeyLeftShift, glfw.KeyRightShift},
}

// windowInput reads held keys from a GLFW window and turns cursor motion
// into camera look while the cursor is captured or the right button is held.
type windowInput struct {
	window       *glfw.Window
	engine       *engine.Engine
	lastX, lastY float64
	firstMouse   bool
	captured     bool
}

func newWindowInput(window *glfw.Window, eng *engine.Engine) *windowInput {
	in := &windowInput{window: window, engine: eng, firstMouse: true}
	window.SetCursorPosCallback(in.mouseCallback)
	window.SetScrollCallback(in.scrollCallback)
	window.SetKeyCallback(in.keyCallback)
	return in
}

func (in *windowInput) Held(action engine.Action) bool {
	for _, key := range actionKeys[action] {
		if in.window.GetKey(key) == glfw.Press {
			return true
		}
	}
	return false
}

func (in *windowInput) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	looking := in.captured || w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press
	if !looking || w.GetAttrib(glfw.Focused) != glfw.True {
		in.firstMouse = true
		return
	}
	if in.firstMouse {
		in.lastX, in.lastY = xpos, ypos
		in.firstMouse = false
		return
	}

	xoffset := xpos - in.lastX
	yoffset := ypos - in.lastY
	in.lastX, in.lastY = xpos, ypos
	in.engine.Look(float32(xoffset), float32(yoffset))
}

func (in *windowInput) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	in.engine.Zoom(float32(yoff))
}

func (in *windowInput) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key != glfw.KeyEscape || action != glfw.Press {
		return
	}
	in.captured = !in.captured
	in.firstMouse = true
	if in.captured {
		w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}
