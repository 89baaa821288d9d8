package render

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/backlogtree/pkg/layout"
)

// EmptyMessage is shown when there is nothing to draw.
const EmptyMessage = "No backlog items to display"

// Card text metrics, in pixels relative to the card's top-left corner.
const (
	cardPadding    = 16.0
	cardRadius     = 12.0
	badgeHeight    = 20.0
	badgeFontSize  = 11.0
	titleBaseline  = 62.0
	titleFontSize  = 16.0
	descBaseline   = 86.0
	descFontSize   = 13.0
	descLineHeight = 18.0
	footerInset    = 20.0 // footer baseline from card bottom
	footerFontSize = 12.0
	priorityDotR   = 5.0

	// Average glyph width as a fraction of font size, for a proportional
	// sans-serif face.
	charWidthRatio = 0.55
)

// cardText is the laid-out text content of one card.
type cardText struct {
	Badge    string
	BadgeW   float64
	Title    string
	Desc     []string
	Effort   string
	Priority string
}

func newCardText(n layout.Node, cfg layout.Config) cardText {
	inner := cfg.CardWidth - 2*cardPadding
	badge := n.Item.Type.Label()

	footerTop := cfg.CardHeight - footerInset - footerFontSize
	maxLines := int((footerTop - descBaseline) / descLineHeight)

	return cardText{
		Badge:    badge,
		BadgeW:   float64(utf8.RuneCountInString(badge))*badgeFontSize*0.7 + 16,
		Title:    truncate(n.Item.Title, charsFor(inner, titleFontSize)),
		Desc:     wrap(n.Item.Description, charsFor(inner, descFontSize), maxLines),
		Effort:   n.Item.Effort,
		Priority: n.Item.PriorityLabel(),
	}
}

func charsFor(width, fontSize float64) int {
	return max(3, int(width/(fontSize*charWidthRatio)))
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// wrap breaks s into at most maxLines lines of n runes. Overflow is marked
// on the last line.
func wrap(s string, n, maxLines int) []string {
	words := strings.Fields(s)
	if len(words) == 0 || maxLines <= 0 {
		return nil
	}
	var lines []string
	cur := ""
	for _, w := range words {
		w = truncate(w, n)
		switch {
		case cur == "":
			cur = w
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(w) <= n:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	lines = append(lines, cur)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := []rune(lines[maxLines-1])
		if len(last) >= n {
			last = last[:n-1]
		}
		lines[maxLines-1] = string(last) + "…"
	}
	return lines
}
