package lightvis

import (
	"math"

	"github.com/soypat/glgl/math/ms2"
)

// Double-click window: two left presses whose press-to-press interval lies
// strictly inside (min, max) seconds count as one double click.
const (
	doubleClickMinDT = 0.02
	doubleClickMaxDT = 0.2
)

type mouseButton uint8

const (
	buttonLeft mouseButton = iota
	buttonMiddle
	buttonRight
)

// Modifiers reports the modifier keys held during the current frame, with
// left/right variants kept apart.
type Modifiers struct {
	ShiftLeft, ShiftRight bool
	CtrlLeft, CtrlRight   bool
}

// Mouse is the per-frame pointer state handed to the OnMouse hook. Position
// tracks the live pointer; Anchor stays fixed at the pointer position captured
// the instant no buttons were held, so Position-Anchor is the drag vector of
// the current gesture.
type Mouse struct {
	Position ms2.Vec
	Anchor   ms2.Vec
	Scroll   ms2.Vec

	Left, Middle, Right bool
	Mod                 Modifiers

	// DoubleClick is set for exactly one frame per detected double click.
	DoubleClick    bool
	DoubleClickPos ms2.Vec
}

func (m Mouse) anyButton() bool { return m.Left || m.Middle || m.Right }

// events accumulates raw input between frames. Button and character callbacks
// append to it; the per-window frame step consumes and resets it.
type events struct {
	chars          []rune
	scroll         ms2.Vec
	pointer        ms2.Vec
	left           bool
	middle         bool
	right          bool
	mod            Modifiers
	doubleClick    bool
	doubleClickPos ms2.Vec
	lastLeftPress  float64
}

func newEvents() *events {
	return &events{lastLeftPress: math.Inf(-1)}
}

// press records a button press at time t (seconds, monotonic). Left presses
// run double-click detection on the press-to-press interval; a detected pair
// resets the timing anchor so a third rapid press starts a fresh window
// instead of chaining. Middle and right presses cancel any pending pairing.
func (e *events) press(b mouseButton, pos ms2.Vec, t float64) {
	e.pointer = pos
	switch b {
	case buttonLeft:
		e.left = true
		dt := t - e.lastLeftPress
		if dt > doubleClickMinDT && dt < doubleClickMaxDT {
			e.doubleClick = true
			e.doubleClickPos = pos
			e.lastLeftPress = math.Inf(-1)
		} else {
			e.lastLeftPress = t
		}
	case buttonMiddle:
		e.middle = true
		e.doubleClick = false
		e.lastLeftPress = math.Inf(-1)
	case buttonRight:
		e.right = true
		e.doubleClick = false
		e.lastLeftPress = math.Inf(-1)
	}
}

func (e *events) release(b mouseButton) {
	switch b {
	case buttonLeft:
		e.left = false
	case buttonMiddle:
		e.middle = false
	case buttonRight:
		e.right = false
	}
}

// addScroll accumulates scroll offsets until the next frame consumes them.
func (e *events) addScroll(dx, dy float32) {
	e.scroll = ms2.Add(e.scroll, ms2.Vec{X: dx, Y: dy})
}

// consume builds the frame's Mouse state and resets the transient parts of
// the queue (scroll delta, double-click flag, character input). Button and
// pointer state persist across frames.
func (e *events) consume() Mouse {
	m := Mouse{
		Position:       e.pointer,
		Scroll:         e.scroll,
		Left:           e.left,
		Middle:         e.middle,
		Right:          e.right,
		Mod:            e.mod,
		DoubleClick:    e.doubleClick,
		DoubleClickPos: e.doubleClickPos,
	}
	e.scroll = ms2.Vec{}
	e.doubleClick = false
	e.chars = e.chars[:0]
	return m
}

// interaction is the per-window drag state: the anchor position and the
// yaw/pitch snapshot committed when the last gesture started. Keeping it on
// the window rather than in function-local statics lets every window drag
// independently.
type interaction struct {
	anchor             ms2.Vec
	snapYaw, snapPitch float32
	snapRoll           float32
}

// applyInput arbitrates GUI-versus-scene input ownership for one frame and
// updates the camera. If the GUI has pointer capture the camera is untouched.
// Otherwise the OnMouse hook gets first refusal; when it declines (the
// default), the built-in orbit behavior applies: drag rotates yaw/pitch at a
// tenth of a degree per pixel and scroll zooms multiplicatively.
func (w *Window) applyInput(m Mouse, guiCaptured bool) {
	if guiCaptured {
		return
	}
	cam := w.camera
	if !m.anyButton() {
		w.inter.anchor = m.Position
		w.inter.snapYaw, w.inter.snapPitch, w.inter.snapRoll = cam.yaw, cam.pitch, cam.roll
	}
	m.Anchor = w.inter.anchor
	if h := w.handlers.OnMouse; h != nil && h(m) {
		return
	}
	if m.anyButton() {
		cam.yaw = w.inter.snapYaw - (m.Position.X-m.Anchor.X)/10
		cam.pitch = w.inter.snapPitch - (m.Position.Y-m.Anchor.Y)/10
	}
	cam.SetScale(cam.scale * (1 + m.Scroll.Y/600))
}
