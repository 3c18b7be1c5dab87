package lightvis

import (
	"testing"

	"github.com/soypat/glgl/math/ms2"
)

func TestDoubleClickDetection(t *testing.T) {
	for _, tc := range []struct {
		name string
		dt   float64
		want bool
	}{
		{name: "100ms pairs", dt: 0.1, want: true},
		{name: "10ms too fast", dt: 0.01, want: false},
		{name: "250ms too slow", dt: 0.25, want: false},
	} {
		e := newEvents()
		e.press(buttonLeft, ms2.Vec{X: 5, Y: 6}, 1.0)
		e.release(buttonLeft)
		e.press(buttonLeft, ms2.Vec{X: 5, Y: 6}, 1.0+tc.dt)
		m := e.consume()
		if m.DoubleClick != tc.want {
			t.Errorf("%s: double click = %v, want %v", tc.name, m.DoubleClick, tc.want)
		}
		if tc.want && m.DoubleClickPos != (ms2.Vec{X: 5, Y: 6}) {
			t.Errorf("%s: double click position %v", tc.name, m.DoubleClickPos)
		}
	}
}

func TestDoubleClickFlagLastsOneFrame(t *testing.T) {
	e := newEvents()
	e.press(buttonLeft, ms2.Vec{}, 1.0)
	e.press(buttonLeft, ms2.Vec{}, 1.1)
	if !e.consume().DoubleClick {
		t.Fatal("double click not flagged")
	}
	if e.consume().DoubleClick {
		t.Error("double click flag survived a second frame")
	}
}

func TestTripleClickDoesNotChain(t *testing.T) {
	e := newEvents()
	e.press(buttonLeft, ms2.Vec{}, 1.00)
	e.press(buttonLeft, ms2.Vec{}, 1.05)
	if !e.consume().DoubleClick {
		t.Fatal("second press did not pair")
	}
	// The pairing consumed the timing anchor: a third rapid press starts a
	// fresh window instead of forming a second double click.
	e.press(buttonLeft, ms2.Vec{}, 1.10)
	if e.consume().DoubleClick {
		t.Error("third press chained into a triple click")
	}
	// But it did arm a new window: a fourth press inside it pairs again.
	e.press(buttonLeft, ms2.Vec{}, 1.15)
	if !e.consume().DoubleClick {
		t.Error("fourth press did not start a new pairing")
	}
}

func TestOtherButtonsCancelPairing(t *testing.T) {
	e := newEvents()
	e.press(buttonLeft, ms2.Vec{}, 1.0)
	e.press(buttonRight, ms2.Vec{}, 1.02)
	e.press(buttonLeft, ms2.Vec{}, 1.1)
	if e.consume().DoubleClick {
		t.Error("right press did not cancel the pairing window")
	}
}

func TestScrollAccumulatesUntilConsumed(t *testing.T) {
	e := newEvents()
	e.addScroll(0, 1)
	e.addScroll(0.5, 2)
	m := e.consume()
	if m.Scroll != (ms2.Vec{X: 0.5, Y: 3}) {
		t.Errorf("accumulated scroll %v", m.Scroll)
	}
	if m = e.consume(); m.Scroll != (ms2.Vec{}) {
		t.Errorf("scroll not reset after consumption: %v", m.Scroll)
	}
}

func testWindow(handlers Handlers) *Window {
	app := newApp(&stubPlatform{})
	return app.NewWindow("test", 640, 480, handlers)
}

func TestDragRotatesCamera(t *testing.T) {
	w := testWindow(Handlers{})
	w.applyInput(Mouse{Position: ms2.Vec{X: 100, Y: 100}}, false)
	w.applyInput(Mouse{Position: ms2.Vec{X: 100, Y: 100}, Left: true}, false)
	w.applyInput(Mouse{Position: ms2.Vec{X: 150, Y: 100}, Left: true}, false)
	yaw, pitch, _ := w.camera.YawPitchRoll()
	if yaw != -5 {
		t.Errorf("yaw after 50px drag: got %g, want -5", yaw)
	}
	if pitch != 0 {
		t.Errorf("pitch after horizontal drag: got %g, want 0", pitch)
	}
}

func TestDragUsesGestureSnapshot(t *testing.T) {
	w := testWindow(Handlers{})
	// First gesture.
	w.applyInput(Mouse{Position: ms2.Vec{X: 0, Y: 0}}, false)
	w.applyInput(Mouse{Position: ms2.Vec{X: 10, Y: 20}, Left: true}, false)
	// Release, then a second gesture from a new anchor: rotation adds to the
	// committed angles instead of restarting from zero.
	w.applyInput(Mouse{Position: ms2.Vec{X: 10, Y: 20}}, false)
	w.applyInput(Mouse{Position: ms2.Vec{X: 40, Y: 20}, Left: true}, false)
	yaw, pitch, _ := w.camera.YawPitchRoll()
	if yaw != -1-3 {
		t.Errorf("yaw across two gestures: got %g, want -4", yaw)
	}
	if pitch != -2 {
		t.Errorf("pitch across two gestures: got %g, want -2", pitch)
	}
}

func TestScrollZoomsMultiplicatively(t *testing.T) {
	w := testWindow(Handlers{})
	w.applyInput(Mouse{Scroll: ms2.Vec{Y: 600}}, false)
	if got := w.camera.Scale(); got != 2 {
		t.Errorf("scale after +600 scroll: got %g, want 2", got)
	}
	// Zero scroll is idempotent.
	w.applyInput(Mouse{}, false)
	if got := w.camera.Scale(); got != 2 {
		t.Errorf("scale changed by zero scroll: %g", got)
	}
	// A full negative step clamps instead of reaching zero.
	w.applyInput(Mouse{Scroll: ms2.Vec{Y: -600}}, false)
	if got := w.camera.Scale(); got != minScale {
		t.Errorf("scale after -600 scroll: got %g, want clamp %g", got, float32(minScale))
	}
}

func TestGuiCaptureBlocksCamera(t *testing.T) {
	w := testWindow(Handlers{})
	w.applyInput(Mouse{Position: ms2.Vec{X: 0, Y: 0}}, false)
	w.applyInput(Mouse{Position: ms2.Vec{X: 90, Y: 40}, Left: true, Scroll: ms2.Vec{Y: 600}}, true)
	yaw, pitch, _ := w.camera.YawPitchRoll()
	if yaw != 0 || pitch != 0 || w.camera.Scale() != 1 {
		t.Errorf("camera mutated under GUI capture: yaw=%g pitch=%g scale=%g", yaw, pitch, w.camera.Scale())
	}
}

func TestMouseHookSuppressesOrbit(t *testing.T) {
	var seen []Mouse
	consume := true
	w := testWindow(Handlers{
		OnMouse: func(m Mouse) bool {
			seen = append(seen, m)
			return consume
		},
	})
	w.applyInput(Mouse{Position: ms2.Vec{X: 100, Y: 100}}, false)
	w.applyInput(Mouse{Position: ms2.Vec{X: 160, Y: 100}, Left: true}, false)
	if yaw, _, _ := w.camera.YawPitchRoll(); yaw != 0 {
		t.Errorf("hook accepted the gesture but camera moved: yaw=%g", yaw)
	}
	if len(seen) != 2 {
		t.Fatalf("hook called %d times, want 2", len(seen))
	}
	if seen[1].Anchor != (ms2.Vec{X: 100, Y: 100}) {
		t.Errorf("hook saw anchor %v, want the gesture start", seen[1].Anchor)
	}

	// Declining hands the gesture back to the built-in orbit behavior.
	consume = false
	w.applyInput(Mouse{Position: ms2.Vec{X: 160, Y: 100}, Left: true}, false)
	if yaw, _, _ := w.camera.YawPitchRoll(); yaw != -6 {
		t.Errorf("declined gesture: yaw=%g, want -6", yaw)
	}
}
