package lightvis

import (
	"github.com/inkyblackness/imgui-go/v4"
)

type windowState uint8

const (
	stateIdle windowState = iota // no surface, not awaiting one
	statePending
	stateActive
)

// Handlers are the optional scene callbacks of a window. Nil fields are
// no-ops, so the embedding application supplies only the hooks it needs.
type Handlers struct {
	// OnLoad runs once when the window's surface and GPU resources exist,
	// OnUnload once right before they are torn down.
	OnLoad   func()
	OnUnload func()
	// OnDraw runs every frame before GUI composition with the current
	// framebuffer dimensions; the window's GL context is current.
	OnDraw func(width, height int)
	// OnGui runs every frame to populate GUI widgets with the current
	// logical window dimensions.
	OnGui func(width, height int)
	// OnMouse may consume the frame's pointer state; returning true
	// suppresses the built-in orbit camera handling for that frame.
	OnMouse func(m Mouse) bool
}

// Window is one top-level visualization surface with its own camera, scene
// registry and interaction state. A Window starts hidden; Show queues it for
// surface creation on the next loop iteration and Hide requests teardown.
// After teardown the same Window may be shown again.
type Window struct {
	app      *App
	title    string
	width    int
	height   int
	handlers Handlers

	state  windowState
	surf   surface
	camera *Camera
	scene  Scene
	events *events
	inter  interaction

	panels []*panel
}

type panel struct {
	name    string
	buttons []panelButton
	repeats []panelRepeat
}

type panelButton struct {
	name string
	fn   func()
}

type panelRepeat struct {
	name   string
	fn     func() bool
	active bool
}

// NewWindow registers a hidden window with the app. Width and height are the
// initial logical window dimensions.
func (a *App) NewWindow(title string, width, height int, handlers Handlers) *Window {
	w := &Window{
		app:      a,
		title:    title,
		width:    width,
		height:   height,
		handlers: handlers,
		camera:   newCamera(),
		events:   newEvents(),
	}
	return w
}

// Camera returns the window's orbit camera.
func (w *Window) Camera() *Camera { return w.camera }

// Scene returns the window's scene registry.
func (w *Window) Scene() *Scene { return &w.scene }

// Show queues the window for surface creation. It is a no-op while the
// window is already pending or active.
func (w *Window) Show() {
	if w.state != stateIdle {
		return
	}
	w.state = statePending
	w.app.pending = append(w.app.pending, w)
}

// Hide requests window teardown on the next loop iteration. It is a no-op if
// the window is not active; a still-pending window is unqueued immediately.
func (w *Window) Hide() {
	switch w.state {
	case statePending:
		w.app.unqueue(w)
		w.state = stateIdle
	case stateActive:
		w.surf.requestClose()
	}
}

// AddButton registers a button on the named GUI panel. The callback fires
// once per click.
func (w *Window) AddButton(panelName, name string, fn func()) {
	p := w.findPanel(panelName)
	p.buttons = append(p.buttons, panelButton{name: name, fn: fn})
}

// AddRepeat registers a toggle on the named GUI panel. While toggled on, the
// callback runs every frame until it returns false.
func (w *Window) AddRepeat(panelName, name string, fn func() bool) {
	p := w.findPanel(panelName)
	p.repeats = append(p.repeats, panelRepeat{name: name, fn: fn})
}

func (w *Window) findPanel(name string) *panel {
	for _, p := range w.panels {
		if p.name == name {
			return p
		}
	}
	p := &panel{name: name}
	w.panels = append(w.panels, p)
	return p
}

// buildGUI emits the frame's GUI widgets: the application's OnGui hook first,
// then the registered panels in registration order.
func (w *Window) buildGUI(width, height int) {
	if w.handlers.OnGui != nil {
		w.handlers.OnGui(width, height)
	}
	for _, p := range w.panels {
		if imgui.Begin(p.name) {
			for _, b := range p.buttons {
				if imgui.Button(b.name) && b.fn != nil {
					b.fn()
				}
			}
			for i := range p.repeats {
				r := &p.repeats[i]
				imgui.Checkbox(r.name, &r.active)
				if r.active && r.fn != nil && !r.fn() {
					r.active = false
				}
			}
		}
		imgui.End()
	}
}
