package viewport

import (
	"math"
	"strconv"
)

// Phase is the pointer interaction phase.
type Phase int

const (
	Idle Phase = iota
	Panning
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	}
	return "Phase(" + strconv.Itoa(int(p)) + ")"
}

// Vec is a 2D offset in screen pixels.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Size is a width and height in pixels.
type Size struct {
	W, H float64
}

// known reports whether both dimensions are positive.
func (s Size) known() bool { return s.W > 0 && s.H > 0 }

// State is a snapshot of the view.
type State struct {
	Zoom  float64
	Pan   Vec
	Phase Phase
}

// Identity is the initial view: no zoom, no pan, idle.
var Identity = State{Zoom: 1}

// Transform is what a renderer applies to the content group.
type Transform struct {
	Zoom float64
	Pan  Vec
	// Animated is false while panning so the view follows the pointer.
	Animated bool
}

// String renders an SVG transform attribute value.
func (t Transform) String() string {
	return "translate(" + num(t.Pan.X) + ", " + num(t.Pan.Y) + ") scale(" + num(t.Zoom) + ")"
}

// Apply maps a content-space point to screen space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.Pan.X + x*t.Zoom, t.Pan.Y + y*t.Zoom
}

// Invert maps a screen-space point back to content space.
func (t Transform) Invert(x, y float64) (float64, float64) {
	if t.Zoom == 0 {
		return x, y
	}
	return (x - t.Pan.X) / t.Zoom, (y - t.Pan.Y) / t.Zoom
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

func num(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
