// Package lightvis is a minimal visualization shell: it opens OpenGL-backed
// windows, drives a cooperative render loop over all of them, overlays an
// immediate-mode GUI and draws point clouds and trajectories under an orbit
// camera with a level-of-detail reference grid.
//
// Everything runs on a single control thread; App.Run must be called from
// the main goroutine with the OS thread locked, as GLFW requires.
package lightvis

// platform abstracts the windowing backend so the loop's lifecycle ordering
// is testable without a display. The production implementation is GLFW.
type platform interface {
	init() error
	poll()
	terminate()
	createSurface(w *Window) (surface, error)
}

// surface is one native window/GL-context pairing owned by a Window.
type surface interface {
	requestClose()
	shouldClose() bool
	// frame runs the window's whole per-frame turn: make the context
	// current, ingest input, invoke hooks, render scene and GUI, present.
	frame(w *Window)
	// releaseGraphics frees GPU resources with the context still current;
	// destroy then destroys the native window.
	releaseGraphics()
	destroy()
}

// App owns the window registries and the event loop. Each App is an
// independent loop instance; there is no process-wide state, so tests and
// embedders may create and tear down as many as they like.
type App struct {
	platform platform
	pending  []*Window
	active   map[surface]*Window
	order    []*Window
}

// NewApp returns an App backed by GLFW windows.
func NewApp() *App {
	return newApp(&glfwPlatform{})
}

func newApp(p platform) *App {
	return &App{
		platform: p,
		active:   make(map[surface]*Window),
	}
}

// Run initializes the backend and drives the loop until no window is pending
// or active, then shuts the backend down. Windows may be shown before or
// during the run.
func (a *App) Run() error {
	if err := a.platform.init(); err != nil {
		return err
	}
	defer a.platform.terminate()
	for len(a.pending) > 0 || len(a.order) > 0 {
		a.step()
	}
	return nil
}

// step executes one loop iteration in fixed order: materialize pending
// windows, poll OS events once, tear down close-requested windows before any
// rendering, then give every remaining active window its frame turn in
// registration order.
func (a *App) step() {
	for _, w := range a.pending {
		surf, err := a.platform.createSurface(w)
		if err != nil {
			// Surface creation failure skips the window: no crash, no
			// retry. It may be shown again later.
			w.state = stateIdle
			continue
		}
		w.surf = surf
		w.state = stateActive
		a.active[surf] = w
		a.order = append(a.order, w)
		if w.handlers.OnLoad != nil {
			w.handlers.OnLoad()
		}
	}
	a.pending = a.pending[:0]

	a.platform.poll()

	// Collect first: teardown mutates the registration order.
	var closing []*Window
	for _, w := range a.order {
		if w.surf.shouldClose() {
			closing = append(closing, w)
		}
	}
	for _, w := range closing {
		a.teardown(w)
	}

	for _, w := range a.order {
		w.surf.frame(w)
	}
}

// teardown destroys an active window synchronously: GPU resources first while
// the context is current, then the unload hook, then deregistration and the
// native surface. A closing window never renders a partial frame because this
// runs before the render pass.
func (a *App) teardown(w *Window) {
	w.surf.releaseGraphics()
	if w.handlers.OnUnload != nil {
		w.handlers.OnUnload()
	}
	delete(a.active, w.surf)
	for i, o := range a.order {
		if o == w {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	w.surf.destroy()
	w.surf = nil
	w.state = stateIdle
	w.events = newEvents()
}

func (a *App) unqueue(w *Window) {
	for i, p := range a.pending {
		if p == w {
			a.pending = append(a.pending[:i], a.pending[i+1:]...)
			return
		}
	}
}
