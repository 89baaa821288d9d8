package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/backlogtree/pkg/fonts"
	"github.com/matzehuels/backlogtree/pkg/layout"
)

const viewportCSS = `
    .viewport { transform-origin: 0 0; }
    .viewport.animated { transition: transform 150ms ease-out; }
    .card-title { font: 600 %[1]gpx %[5]s; }
    .card-desc { font: %[2]gpx %[5]s; }
    .card-badge { font: 700 %[3]gpx %[5]s; letter-spacing: 0.04em; }
    .card-footer { font: %[4]gpx %[5]s; }`

// SVG writes the layout as an SVG document.
func SVG(w io.Writer, r layout.Result, opts ...Option) error {
	o := newOptions(opts...)
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	cw, ch := r.Width, r.Height
	if r.IsEmpty() {
		cw, ch = 2*r.Config.CardWidth, r.Config.CardHeight
	}
	sw, sh := o.surface(cw, ch)
	canvas.Start(px(sw), px(sh), fmt.Sprintf(`viewBox="0 0 %d %d"`, px(sw), px(sh)))
	canvas.Title(o.title)
	canvas.Style("text/css", fmt.Sprintf(viewportCSS, titleFontSize, descFontSize, badgeFontSize, footerFontSize, fonts.CSSFamily(o.font)))
	canvas.Rect(0, 0, px(sw), px(sh), "fill:"+Hex(o.theme.Background))

	if r.IsEmpty() {
		canvas.Text(px(sw/2), px(sh/2), EmptyMessage,
			fmt.Sprintf("fill:%s;font:14px %s;text-anchor:middle;dominant-baseline:middle", Hex(o.theme.Muted), fonts.CSSFamily(o.font)))
		canvas.End()
		_, err := w.Write(buf.Bytes())
		return err
	}

	canvas.Def()
	canvas.Marker("arrow", 5, 5, 10, 10, `orient="auto"`, `markerUnits="userSpaceOnUse"`)
	canvas.Path("M 0 0 L 10 5 L 0 10 z", "fill:"+Hex(o.theme.Edge))
	canvas.MarkerEnd()
	canvas.DefEnd()

	class := `class="viewport"`
	if o.transform.Animated {
		class = `class="viewport animated"`
	}
	canvas.Group(class, fmt.Sprintf(`transform="%s"`, o.transform))

	canvas.Group(`class="edges"`)
	for _, e := range r.Edges {
		canvas.Path(e.Path, `marker-end="url(#arrow)"`,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", Hex(o.theme.Edge)))
	}
	canvas.Gend()

	canvas.Group(`class="cards"`)
	for i, n := range r.Nodes {
		svgCard(canvas, r, i, n, o.theme)
	}
	canvas.Gend()

	canvas.Gend()
	canvas.End()
	_, err := w.Write(buf.Bytes())
	return err
}

func svgCard(canvas *svg.SVG, r layout.Result, i int, n layout.Node, th Theme) {
	box := r.Card(n)
	t := newCardText(n, r.Config)
	x, y := box.X, box.Y

	canvas.Group(fmt.Sprintf(`id="card-%d"`, i), fmt.Sprintf(`class="card card-%s"`, n.Item.Type), fmt.Sprintf(`data-id="%s"`, escapeAttr(n.ID)))
	canvas.Roundrect(px(x), px(y), px(box.W), px(box.H), cardRadius, cardRadius,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", Hex(th.Card), Hex(th.CardBorder)))

	// Header: type badge and effort code.
	bx, by := x+cardPadding, y+cardPadding
	canvas.Roundrect(px(bx), px(by), px(t.BadgeW), badgeHeight, badgeHeight/2, badgeHeight/2,
		"fill:"+Hex(TypeColor(n.Item.Type)))
	canvas.Text(px(bx+t.BadgeW/2), px(by+badgeHeight/2+badgeFontSize*0.35), t.Badge,
		`class="card-badge"`, "fill:#ffffff;text-anchor:middle")
	if t.Effort != "" {
		canvas.Text(px(x+box.W-cardPadding), px(by+badgeHeight/2+badgeFontSize*0.35), t.Effort,
			`class="card-badge"`, fmt.Sprintf("fill:%s;text-anchor:end", Hex(th.Muted)))
	}

	canvas.Text(px(x+cardPadding), px(y+titleBaseline), t.Title, `class="card-title"`, "fill:"+Hex(th.Title))
	for j, line := range t.Desc {
		canvas.Text(px(x+cardPadding), px(y+descBaseline+float64(j)*descLineHeight), line,
			`class="card-desc"`, "fill:"+Hex(th.Body))
	}

	// Footer: divider, priority dot and label.
	fy := y + box.H - footerInset
	canvas.Line(px(x+cardPadding), px(fy-footerFontSize-8), px(x+box.W-cardPadding), px(fy-footerFontSize-8),
		"stroke:"+Hex(th.CardBorder))
	canvas.Circle(px(x+cardPadding+priorityDotR), px(fy-footerFontSize*0.35), priorityDotR,
		"fill:"+Hex(PriorityColor(n.Item.Priority)))
	canvas.Text(px(x+cardPadding+2*priorityDotR+8), px(fy), t.Priority, `class="card-footer"`, "fill:"+Hex(th.Muted))
	canvas.Gend()
}

func px(v float64) int { return int(math.Round(v)) }

func escapeAttr(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString("&quot;")
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
