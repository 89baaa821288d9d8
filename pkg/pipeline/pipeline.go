// Package pipeline runs the load → build → layout → render sequence for
// backlogtree.
//
// The CLI commands (layout, render, view) share this package so every entry
// point applies the same defaults, validation and caching.
//
// # Stages
//
//  1. Parse: read backlog items from a JSON or YAML file
//  2. Build: assemble the item forest; strict mode rejects dangling parents,
//     duplicate ids and cycles
//  3. Layout: compute card positions and connector paths
//  4. Render: produce artifacts in the requested formats
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Theme:   "dark",
//	}
//	result, err := runner.Execute(ctx, "backlog.json", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Layout and artifacts are cached by content: the layout key hashes the
// encoded items plus geometry, and artifact keys hash the layout plus the
// view and theme. [Memo] adds an in-process layer for long-running callers
// such as the interactive viewer.
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/backlogtree/pkg/cache"
	"github.com/matzehuels/backlogtree/pkg/fonts"
	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/render"
	"github.com/matzehuels/backlogtree/pkg/viewport"
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
	FormatJSON     = "json"
	FormatText     = "txt"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatDOT, FormatGraphviz, FormatJSON, FormatText}

// Defaults shared by the CLI and library callers.
const (
	DefaultTheme = "light"
	DefaultScale = 1.0
	DefaultTitle = "Backlog"

	// MaxScale caps PNG pixel density.
	MaxScale = 4.0
)

// Extension returns the file extension for a format. The graphviz format
// produces SVG.
func Extension(format string) string {
	switch format {
	case FormatGraphviz:
		return ".graphviz.svg"
	default:
		return "." + format
	}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that a theme name is known.
func ValidateTheme(theme string) error {
	if theme != render.Light.Name && theme != render.Dark.Name {
		return fmt.Errorf("invalid theme: %q (must be one of: light, dark)", theme)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Build options
	Strict bool `json:"strict,omitempty"`

	// Layout options
	Layout layout.Config `json:"layout"`

	// Render options
	Formats   []string           `json:"formats,omitempty"`
	Theme     string             `json:"theme,omitempty"`
	Scale     float64            `json:"scale,omitempty"`
	Title     string             `json:"title,omitempty"`
	Font      string             `json:"font,omitempty"`
	Transform viewport.Transform `json:"transform"`
	// View is the output surface size. Zero means size to content.
	View viewport.Size `json:"view"`
	// Fit replaces Transform with one that fits the layout in View.
	Fit      bool            `json:"fit,omitempty"`
	Viewport viewport.Config `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// SetLayoutDefaults fills unset layout geometry.
func (o *Options) SetLayoutDefaults() {
	o.Layout = o.Layout.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Layout.Validate()
}

// SetRenderDefaults fills unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Font == "" {
		o.Font = fonts.Sans
	}
	if o.Transform.Zoom == 0 {
		o.Transform = viewport.Transform{Zoom: 1, Pan: o.Transform.Pan, Animated: true}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateTheme(o.Theme); err != nil {
		return err
	}
	if !fonts.Valid(o.Font) {
		return fmt.Errorf("invalid font: %q (must be one of: %s)", o.Font, strings.Join(fonts.Names, ", "))
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return fmt.Errorf("invalid scale: %g (must be in (0, %g])", o.Scale, MaxScale)
	}
	if o.View.W < 0 || o.View.H < 0 {
		return fmt.Errorf("invalid view size: %gx%g", o.View.W, o.View.H)
	}
	return nil
}

// ValidateAndSetDefaults prepares options for a full run.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	c := o.Layout
	return cache.LayoutKeyOpts{
		CardWidth:     c.CardWidth,
		CardHeight:    c.CardHeight,
		HorizontalGap: c.HorizontalGap,
		VerticalGap:   c.VerticalGap,
		RootGapUnits:  c.RootGapUnits,
		CornerRadius:  c.CornerRadius,
		EdgeEpsilon:   c.EdgeEpsilon,
		Strict:        o.Strict,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// Formats that ignore the view (dot, graphviz, json) share a key across
// views.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Theme: o.Theme}
	switch format {
	case FormatSVG, FormatPNG, FormatText:
		k.Zoom = o.Transform.Zoom
		k.PanX = o.Transform.Pan.X
		k.PanY = o.Transform.Pan.Y
		k.Width = int(o.View.W)
		k.Height = int(o.View.H)
		if format == FormatPNG {
			k.Scale = o.Scale
			k.Font = o.Font
		}
		if format == FormatSVG {
			k.Font = o.Font
			k.Title = o.Title
			k.Static = !o.Transform.Animated
		}
	case FormatJSON:
		k.Theme = ""
	}
	return k
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Source is the input path.
	Source string

	// InputHash is the content hash of the encoded items.
	InputHash string

	// Layout is the computed layout.
	Layout layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // layout came from cache
	RenderHit bool // every artifact came from cache
}
