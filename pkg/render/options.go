package render

import (
	"github.com/matzehuels/backlogtree/pkg/fonts"
	"github.com/matzehuels/backlogtree/pkg/viewport"
)

// Option configures a renderer.
type Option func(*options)

type options struct {
	transform viewport.Transform
	view      viewport.Size
	theme     Theme
	scale     float64
	title     string
	font      string
}

func newOptions(opts ...Option) options {
	o := options{
		transform: viewport.Transform{Zoom: 1, Animated: true},
		theme:     Light,
		scale:     1,
		title:     "Backlog",
		font:      fonts.Sans,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.transform.Zoom <= 0 {
		o.transform.Zoom = 1
	}
	if o.scale <= 0 {
		o.scale = 1
	}
	if !fonts.Valid(o.font) {
		o.font = fonts.Sans
	}
	return o
}

// WithTransform applies a viewport transform to the content.
func WithTransform(t viewport.Transform) Option {
	return func(o *options) { o.transform = t }
}

// WithViewSize sets the output surface size. Without it the surface is
// sized to the transformed content.
func WithViewSize(s viewport.Size) Option {
	return func(o *options) { o.view = s }
}

// WithTheme selects the color palette.
func WithTheme(t Theme) Option { return func(o *options) { o.theme = t } }

// WithScale sets the PNG pixel density (2 for high-DPI output).
func WithScale(s float64) Option { return func(o *options) { o.scale = s } }

// WithTitle sets the document title.
func WithTitle(s string) Option { return func(o *options) { o.title = s } }

// WithFont selects the card font family, see package fonts.
func WithFont(name string) Option { return func(o *options) { o.font = name } }

// surface returns the output size for a layout of content size w×h.
func (o options) surface(w, h float64) (float64, float64) {
	if o.view.W > 0 && o.view.H > 0 {
		return o.view.W, o.view.H
	}
	t := o.transform
	return max(1, t.Pan.X+w*t.Zoom), max(1, t.Pan.Y+h*t.Zoom)
}
