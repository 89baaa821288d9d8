package viewport

import "math"

// Option configures a Controller.
type Option func(*Controller)

// WithCapturer acquires and releases pointer capture around pans.
func WithCapturer(c Capturer) Option {
	return func(ctl *Controller) { ctl.capturer = c }
}

// WithOnChange registers fn to run after every state change.
func WithOnChange(fn func(State)) Option {
	return func(ctl *Controller) { ctl.onChange = fn }
}

// Controller owns the view state. See the package documentation for the
// state machine.
type Controller struct {
	cfg      Config
	state    State
	capturer Capturer
	onChange func(State)

	// Drag bookkeeping, valid while Panning.
	pointer   int
	dragStart Vec
	panOrigin Vec
}

// New returns a controller in the identity state. Zero fields of cfg take
// their defaults.
func New(cfg Config, opts ...Option) *Controller {
	c := &Controller{cfg: cfg.withDefaults(), state: Identity}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the effective configuration.
func (c *Controller) Config() Config { return c.cfg }

// State returns the current view state.
func (c *Controller) State() State { return c.state }

// Zoom returns the current zoom factor.
func (c *Controller) Zoom() float64 { return c.state.Zoom }

// Pan returns the current pan offset.
func (c *Controller) Pan() Vec { return c.state.Pan }

// Panning reports whether a drag is in progress.
func (c *Controller) Panning() bool { return c.state.Phase == Panning }

// Transform returns the transform renderers should apply.
func (c *Controller) Transform() Transform {
	return Transform{
		Zoom:     c.state.Zoom,
		Pan:      c.state.Pan,
		Animated: c.state.Phase != Panning,
	}
}

// =============================================================================
// Zoom
// =============================================================================

// SetZoom sets the zoom, rounded to two decimals and clamped.
func (c *Controller) SetZoom(v float64) {
	if math.IsNaN(v) {
		return
	}
	c.update(func(s *State) { s.Zoom = c.clampZoom(v) })
}

// AdjustZoom changes the zoom by delta.
func (c *Controller) AdjustZoom(delta float64) {
	c.SetZoom(c.state.Zoom + delta)
}

// ZoomIn increases the zoom by one step.
func (c *Controller) ZoomIn() { c.AdjustZoom(c.cfg.ZoomStep) }

// ZoomOut decreases the zoom by one step.
func (c *Controller) ZoomOut() { c.AdjustZoom(-c.cfg.ZoomStep) }

// Wheel zooms by the scroll delta. Holding ctrl or meta uses the finer
// sensitivity.
func (c *Controller) Wheel(ev Wheel) {
	sens := c.cfg.WheelSensitivity
	if ev.Ctrl || ev.Meta {
		sens = c.cfg.FineWheelSensitivity
	}
	c.AdjustZoom(-ev.DeltaY * sens)
}

// Key handles the zoom shortcuts: "+" or "=" zooms in, "-" or "_" zooms out
// and "0" resets. Ctrl or meta must be held and focus must not be in an
// editable element. It reports whether the key was consumed.
func (c *Controller) Key(ev Key) bool {
	if ev.Editable || !(ev.Ctrl || ev.Meta) {
		return false
	}
	switch ev.Key {
	case "+", "=":
		c.ZoomIn()
	case "-", "_":
		c.ZoomOut()
	case "0":
		c.Reset()
	default:
		return false
	}
	return true
}

// Fit scales and centers content of the given size in the view. When either
// size is unknown it falls back to the configured FitZoom at the origin.
func (c *Controller) Fit(view, content Size) {
	if !view.known() || !content.known() {
		c.update(func(s *State) {
			s.Zoom = c.clampZoom(c.cfg.FitZoom)
			s.Pan = Vec{}
		})
		return
	}
	zoom := c.clampZoom(math.Min(1, math.Min(view.W/content.W, view.H/content.H)))
	c.update(func(s *State) {
		s.Zoom = zoom
		s.Pan = c.clampPan(Vec{
			X: (view.W - content.W*zoom) / 2,
			Y: (view.H - content.H*zoom) / 2,
		})
	})
}

// Reset returns to the identity view, ending any pan in progress.
func (c *Controller) Reset() {
	c.endPan()
	c.update(func(s *State) { *s = Identity })
}

// =============================================================================
// Pan
// =============================================================================

// PanBy moves the view by (dx, dy).
func (c *Controller) PanBy(dx, dy float64) {
	if math.IsNaN(dx) || math.IsNaN(dy) {
		return
	}
	c.update(func(s *State) { s.Pan = c.clampPan(s.Pan.Add(Vec{dx, dy})) })
}

// PointerDown starts a pan when the configured pan button is pressed.
func (c *Controller) PointerDown(ev PointerDown) bool {
	if c.state.Phase == Panning || ev.Button != c.cfg.PanButton {
		return false
	}
	c.pointer = ev.PointerID
	c.dragStart = Vec{ev.X, ev.Y}
	c.panOrigin = c.state.Pan
	if c.capturer != nil {
		c.capturer.Capture(ev.PointerID)
	}
	c.update(func(s *State) { s.Phase = Panning })
	return true
}

// PointerMove pans while a drag is in progress.
func (c *Controller) PointerMove(ev PointerMove) bool {
	if c.state.Phase != Panning || ev.PointerID != c.pointer {
		return false
	}
	delta := Vec{ev.X, ev.Y}.Sub(c.dragStart)
	if math.IsNaN(delta.X) || math.IsNaN(delta.Y) {
		return false
	}
	c.update(func(s *State) { s.Pan = c.clampPan(c.panOrigin.Add(delta)) })
	return true
}

// PointerUp ends a drag.
func (c *Controller) PointerUp(ev PointerUp) bool {
	if c.state.Phase != Panning || ev.PointerID != c.pointer {
		return false
	}
	c.endPan()
	return true
}

// PointerLeave ends a drag when the pointer leaves the surface.
func (c *Controller) PointerLeave(ev PointerLeave) bool {
	if c.state.Phase != Panning || ev.PointerID != c.pointer {
		return false
	}
	c.endPan()
	return true
}

// =============================================================================
// Dispatch
// =============================================================================

// Handle dispatches an input event and reports whether it was consumed.
func (c *Controller) Handle(ev Event) bool {
	switch ev := ev.(type) {
	case PointerDown:
		return c.PointerDown(ev)
	case PointerMove:
		return c.PointerMove(ev)
	case PointerUp:
		return c.PointerUp(ev)
	case PointerLeave:
		return c.PointerLeave(ev)
	case Wheel:
		c.Wheel(ev)
		return true
	case Key:
		return c.Key(ev)
	}
	return false
}

// Attach subscribes the controller to src. The returned function removes
// the subscription and ends any pan in progress; calling it more than once
// is harmless.
func (c *Controller) Attach(src Source) (detach func()) {
	reg := src.Subscribe(c.Handle)
	return func() {
		reg.Cancel()
		c.endPan()
	}
}

// =============================================================================
// Internals
// =============================================================================

func (c *Controller) endPan() {
	if c.state.Phase != Panning {
		return
	}
	if c.capturer != nil {
		c.capturer.Release(c.pointer)
	}
	c.update(func(s *State) { s.Phase = Idle })
}

func (c *Controller) clampZoom(v float64) float64 {
	return clamp(round2(v), c.cfg.ZoomMin, c.cfg.ZoomMax)
}

func (c *Controller) clampPan(v Vec) Vec {
	l := c.cfg.PanLimit
	return Vec{clamp(v.X, -l, l), clamp(v.Y, -l, l)}
}

func (c *Controller) update(fn func(*State)) {
	prev := c.state
	fn(&c.state)
	if c.state != prev && c.onChange != nil {
		c.onChange(c.state)
	}
}
