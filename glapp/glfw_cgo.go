//go:build !tinygo && cgo

package glapp

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/v4.1-core/glgl"
)

type glfwPlatform struct {
	win     *glfw.Window
	pending []Event
	// Last cursor position, used to calculate relative motion.
	lastX, lastY float64
	firstMove    bool
}

// NewGLFW creates a window with an OpenGL 4.1 core context made current on the
// calling goroutine. The calling goroutine must be locked to the main OS thread
// with runtime.LockOSThread.
func NewGLFW(cfg Config) (Platform, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))

	width, height := cfg.Width, cfg.Height
	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			glfw.Terminate()
			return nil, errors.New("no monitor available for fullscreen")
		}
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	}
	win, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if cfg.CaptureCursor {
		win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			win.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
	}
	fbw, fbh := win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.Enable(gl.DEPTH_TEST)

	p := &glfwPlatform{win: win, firstMove: true}
	win.SetKeyCallback(p.onKey)
	win.SetCursorPosCallback(p.onCursor)
	win.SetMouseButtonCallback(p.onButton)
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		p.pending = append(p.pending, Event{Kind: EventScroll, DX: float32(xoff), DY: float32(yoff)})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		p.pending = append(p.pending, Event{Kind: EventResize, Width: width, Height: height})
	})
	win.SetCloseCallback(func(_ *glfw.Window) {
		p.pending = append(p.pending, Event{Kind: EventQuit})
	})
	return p, nil
}

func (p *glfwPlatform) PollEvents(dst []Event) []Event {
	glfw.PollEvents()
	dst = append(dst, p.pending...)
	p.pending = p.pending[:0]
	if p.win.ShouldClose() && !containsQuit(dst) {
		dst = append(dst, Event{Kind: EventQuit})
	}
	return dst
}

func (p *glfwPlatform) Present() error {
	p.win.SwapBuffers()
	return glgl.Err()
}

func (p *glfwPlatform) Size() (width, height int) {
	return p.win.GetFramebufferSize()
}

func (p *glfwPlatform) Close() error {
	p.win.Destroy()
	glfw.Terminate()
	return nil
}

func (p *glfwPlatform) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k := glfwKey(key)
	if k == KeyUnknown {
		return
	}
	switch action {
	case glfw.Press:
		p.pending = append(p.pending, Event{Kind: EventKeyDown, Key: k})
	case glfw.Release:
		p.pending = append(p.pending, Event{Kind: EventKeyUp, Key: k})
	}
}

func (p *glfwPlatform) onCursor(_ *glfw.Window, xpos, ypos float64) {
	if p.firstMove {
		p.lastX, p.lastY = xpos, ypos
		p.firstMove = false
		return
	}
	dx, dy := xpos-p.lastX, ypos-p.lastY
	p.lastX, p.lastY = xpos, ypos
	p.pending = append(p.pending, Event{Kind: EventMouseMove, DX: float32(dx), DY: float32(dy)})
}

func (p *glfwPlatform) onButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	var b MouseButton
	switch button {
	case glfw.MouseButtonLeft:
		b = MouseLeft
	case glfw.MouseButtonRight:
		b = MouseRight
	case glfw.MouseButtonMiddle:
		b = MouseMiddle
	default:
		return
	}
	p.pending = append(p.pending, Event{Kind: EventMouseButton, Button: b, Pressed: action == glfw.Press})
}

func containsQuit(events []Event) bool {
	for _, ev := range events {
		if ev.Kind == EventQuit {
			return true
		}
	}
	return false
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func glfwKey(key glfw.Key) Key {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return KeyA + Key(key-glfw.KeyA)
	case key >= glfw.Key0 && key <= glfw.Key9:
		return Key0 + Key(key-glfw.Key0)
	}
	switch key {
	case glfw.KeyEscape:
		return KeyEscape
	case glfw.KeySpace:
		return KeySpace
	case glfw.KeyEnter:
		return KeyEnter
	case glfw.KeyTab:
		return KeyTab
	case glfw.KeyUp:
		return KeyUp
	case glfw.KeyDown:
		return KeyDown
	case glfw.KeyLeft:
		return KeyLeft
	case glfw.KeyRight:
		return KeyRight
	case glfw.KeyEqual, glfw.KeyKPAdd:
		return KeyPlus
	case glfw.KeyMinus, glfw.KeyKPSubtract:
		return KeyMinus
	}
	return KeyUnknown
}
