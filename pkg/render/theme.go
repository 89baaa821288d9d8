package render

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/backlogtree/pkg/backlog"
)

// Theme is a color palette.
type Theme struct {
	Name       string
	Background color.RGBA
	Card       color.RGBA
	CardBorder color.RGBA
	Title      color.RGBA
	Body       color.RGBA
	Muted      color.RGBA
	Edge       color.RGBA
}

// Built-in themes.
var (
	Light = Theme{
		Name:       "light",
		Background: rgb(0xf8, 0xf9, 0xfa),
		Card:       rgb(0xff, 0xff, 0xff),
		CardBorder: rgb(0xde, 0xe2, 0xe6),
		Title:      rgb(0x21, 0x25, 0x29),
		Body:       rgb(0x49, 0x50, 0x57),
		Muted:      rgb(0x86, 0x8e, 0x96),
		Edge:       rgb(0xad, 0xb5, 0xbd),
	}
	Dark = Theme{
		Name:       "dark",
		Background: rgb(0x1a, 0x1b, 0x1e),
		Card:       rgb(0x25, 0x26, 0x2b),
		CardBorder: rgb(0x37, 0x3a, 0x40),
		Title:      rgb(0xe9, 0xec, 0xef),
		Body:       rgb(0xc1, 0xc2, 0xc5),
		Muted:      rgb(0x90, 0x92, 0x96),
		Edge:       rgb(0x5c, 0x5f, 0x66),
	}
)

// ThemeByName returns the named theme, falling back to Light.
func ThemeByName(name string) Theme {
	if name == Dark.Name {
		return Dark
	}
	return Light
}

// TypeColor is the badge color for an item type.
func TypeColor(t backlog.Type) color.RGBA {
	switch t {
	case backlog.TypeEpic:
		return rgb(0xfd, 0x7e, 0x14) // orange
	case backlog.TypeFeature:
		return rgb(0x79, 0x50, 0xf2) // violet
	case backlog.TypeStory:
		return rgb(0x15, 0xaa, 0xbf) // cyan
	default:
		return rgb(0x86, 0x8e, 0x96)
	}
}

// PriorityColor is the footer dot color for a priority.
func PriorityColor(p backlog.Priority) color.RGBA {
	switch p {
	case backlog.PriorityHigh:
		return rgb(0xfa, 0x52, 0x52) // red
	case backlog.PriorityMedium:
		return rgb(0xfa, 0xb0, 0x05) // yellow
	default:
		return rgb(0xad, 0xb5, 0xbd) // gray
	}
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{r, g, b, 0xff} }
