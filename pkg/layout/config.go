package layout

import (
	"github.com/matzehuels/backlogtree/pkg/errors"
)

// Default geometry, in pixels unless noted.
const (
	DefaultCardWidth     = 320.0
	DefaultCardHeight    = 168.0
	DefaultHorizontalGap = 48.0
	DefaultVerticalGap   = 96.0
	DefaultRootGapUnits  = 1.0
	DefaultCornerRadius  = 16.0
	DefaultEdgeEpsilon   = 0.5
)

// Config holds the card geometry the layout is computed for.
// The zero Config stands for [DefaultConfig].
type Config struct {
	CardWidth     float64 `json:"card_width" toml:"card_width"`
	CardHeight    float64 `json:"card_height" toml:"card_height"`
	HorizontalGap float64 `json:"horizontal_gap" toml:"horizontal_gap"`
	VerticalGap   float64 `json:"vertical_gap" toml:"vertical_gap"`
	RootGapUnits  float64 `json:"root_gap_units" toml:"root_gap_units"`
	CornerRadius  float64 `json:"corner_radius" toml:"corner_radius"`
	EdgeEpsilon   float64 `json:"edge_epsilon" toml:"edge_epsilon"`
}

// DefaultConfig returns the standard card geometry.
func DefaultConfig() Config {
	return Config{
		CardWidth:     DefaultCardWidth,
		CardHeight:    DefaultCardHeight,
		HorizontalGap: DefaultHorizontalGap,
		VerticalGap:   DefaultVerticalGap,
		RootGapUnits:  DefaultRootGapUnits,
		CornerRadius:  DefaultCornerRadius,
		EdgeEpsilon:   DefaultEdgeEpsilon,
	}
}

// WithDefaults returns a copy of c with zero-valued size fields replaced by
// their defaults. Gaps and the corner radius may legitimately be zero and
// are only defaulted when every field is zero, so Config{CardWidth: 200}
// lays cards out edge to edge. To change a few fields, start from
// DefaultConfig and override them.
func (c Config) WithDefaults() Config {
	if c == (Config{}) {
		return DefaultConfig()
	}
	if c.CardWidth == 0 {
		c.CardWidth = DefaultCardWidth
	}
	if c.CardHeight == 0 {
		c.CardHeight = DefaultCardHeight
	}
	if c.EdgeEpsilon == 0 {
		c.EdgeEpsilon = DefaultEdgeEpsilon
	}
	return c
}

// Validate rejects geometry that cannot produce a sensible layout.
func (c Config) Validate() error {
	if c.CardWidth <= 0 || c.CardHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "card size must be positive, got %gx%g", c.CardWidth, c.CardHeight)
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"horizontal_gap", c.HorizontalGap},
		{"vertical_gap", c.VerticalGap},
		{"root_gap_units", c.RootGapUnits},
		{"corner_radius", c.CornerRadius},
		{"edge_epsilon", c.EdgeEpsilon},
	}
	for _, f := range fields {
		if f.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %g", f.name, f.value)
		}
	}
	return nil
}

// HorizontalUnit is the pixel width of one unit of span.
func (c Config) HorizontalUnit() float64 { return c.CardWidth + c.HorizontalGap }

// LevelHeight is the pixel distance between consecutive depths.
func (c Config) LevelHeight() float64 { return c.CardHeight + c.VerticalGap }
