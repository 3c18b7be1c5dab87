package lightvis

import (
	"log"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/soypat/glgl/math/ms2"
)

// glfwPlatform is the production windowing backend. All calls happen on the
// control thread driving App.Run.
type glfwPlatform struct{}

func (glfwPlatform) init() error {
	return glfw.Init()
}

func (glfwPlatform) poll() {
	glfw.PollEvents()
}

func (glfwPlatform) terminate() {
	glfw.Terminate()
}

func (glfwPlatform) createSurface(w *Window) (surface, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		return nil, err
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, err
	}

	imctx := imgui.CreateContext(nil)
	if err := imctx.SetCurrent(); err != nil {
		imctx.Destroy()
		win.Destroy()
		return nil, err
	}
	io := imgui.CurrentIO()
	io.SetClipboard(glfwClipboard{win: win})

	// The GUI overlay is required infrastructure: a failed program build
	// leaves every window uncontrollable, so it aborts the process.
	gui, err := newGUIRenderer(io)
	if err != nil {
		log.Fatalf("lightvis: GUI overlay program: %v", err)
	}
	scene, err := newSceneRenderer()
	if err != nil {
		log.Fatalf("lightvis: scene program: %v", err)
	}

	s := &glfwSurface{win: win, imctx: imctx, gui: gui, scene: scene}
	fbw, fbh := win.GetFramebufferSize()
	w.camera.setViewport(fbw, fbh)

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := win.GetCursorPos()
		pos := ms2.Vec{X: float32(x), Y: float32(y)}
		var b mouseButton
		switch button {
		case glfw.MouseButtonLeft:
			b = buttonLeft
		case glfw.MouseButtonMiddle:
			b = buttonMiddle
		case glfw.MouseButtonRight:
			b = buttonRight
		default:
			return
		}
		if action == glfw.Press {
			w.events.press(b, pos, glfw.GetTime())
		} else if action == glfw.Release {
			w.events.release(b)
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.events.addScroll(float32(dx), float32(dy))
	})
	win.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.events.chars = append(w.events.chars, char)
	})
	return s, nil
}

type glfwSurface struct {
	win      *glfw.Window
	imctx    *imgui.Context
	gui      *guiRenderer
	scene    *sceneRenderer
	lastTime float64
}

func (s *glfwSurface) requestClose() {
	s.win.SetShouldClose(true)
}

func (s *glfwSurface) shouldClose() bool {
	return s.win.ShouldClose()
}

// frame runs one window turn: acquire the context, ingest input into the GUI
// and the interaction controller, draw the scene, compose and draw the GUI
// overlay, present.
func (s *glfwSurface) frame(w *Window) {
	s.win.MakeContextCurrent()
	if err := s.imctx.SetCurrent(); err != nil {
		return
	}

	width, height := s.win.GetSize()
	fbWidth, fbHeight := s.win.GetFramebufferSize()
	w.camera.setViewport(fbWidth, fbHeight)

	x, y := s.win.GetCursorPos()
	w.events.pointer = ms2.Vec{X: float32(x), Y: float32(y)}
	w.events.mod = Modifiers{
		ShiftLeft:  s.win.GetKey(glfw.KeyLeftShift) == glfw.Press,
		ShiftRight: s.win.GetKey(glfw.KeyRightShift) == glfw.Press,
		CtrlLeft:   s.win.GetKey(glfw.KeyLeftControl) == glfw.Press,
		CtrlRight:  s.win.GetKey(glfw.KeyRightControl) == glfw.Press,
	}

	io := imgui.CurrentIO()
	io.SetDisplaySize(imgui.Vec2{X: float32(width), Y: float32(height)})
	now := glfw.GetTime()
	if s.lastTime > 0 {
		io.SetDeltaTime(float32(now - s.lastTime))
	} else {
		io.SetDeltaTime(1.0 / 60.0)
	}
	s.lastTime = now

	io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	io.SetMouseButtonDown(0, w.events.left)
	io.SetMouseButtonDown(1, w.events.right)
	io.SetMouseButtonDown(2, w.events.middle)
	io.AddMouseWheelDelta(w.events.scroll.X, w.events.scroll.Y)
	if len(w.events.chars) > 0 {
		io.AddInputCharacters(string(w.events.chars))
	}
	// TODO: forward key press/release events to the GUI for text-field
	// navigation; only character input is wired so far.

	m := w.events.consume()
	w.applyInput(m, io.WantCaptureMouse())

	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.ClearColor(0.12, 0.12, 0.12, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if w.handlers.OnDraw != nil {
		w.handlers.OnDraw(fbWidth, fbHeight)
	}
	s.scene.draw(w, fbWidth, fbHeight)

	imgui.NewFrame()
	w.buildGUI(width, height)
	imgui.Render()
	s.gui.render(width, height, fbWidth, fbHeight, imgui.RenderedDrawData())

	s.win.SwapBuffers()
}

func (s *glfwSurface) releaseGraphics() {
	s.win.MakeContextCurrent()
	if err := s.imctx.SetCurrent(); err == nil {
		s.gui.release()
		s.scene.release()
	}
	s.imctx.Destroy()
}

func (s *glfwSurface) destroy() {
	s.win.SetCharCallback(nil)
	s.win.SetScrollCallback(nil)
	s.win.SetMouseButtonCallback(nil)
	s.win.Destroy()
}

// glfwClipboard bridges the GUI clipboard to the native one.
type glfwClipboard struct {
	win *glfw.Window
}

func (c glfwClipboard) Text() (string, error) {
	return c.win.GetClipboardString(), nil
}

func (c glfwClipboard) SetText(value string) {
	c.win.SetClipboardString(value)
}
