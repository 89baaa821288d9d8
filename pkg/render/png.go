package render

import (
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"

	"github.com/matzehuels/backlogtree/pkg/fonts"
	"github.com/matzehuels/backlogtree/pkg/layout"
)

// PNG rasterizes the layout. The surface is sized like SVG output and then
// multiplied by the scale option.
func PNG(w io.Writer, r layout.Result, opts ...Option) error {
	o := newOptions(opts...)

	cw, ch := r.Width, r.Height
	if r.IsEmpty() {
		cw, ch = 2*r.Config.CardWidth, r.Config.CardHeight
	}
	sw, sh := o.surface(cw, ch)
	dc := gg.NewContext(px(sw*o.scale), px(sh*o.scale))
	dc.SetColor(o.theme.Background)
	dc.Clear()
	dc.Scale(o.scale, o.scale)

	if r.IsEmpty() {
		useFont(dc, o.font, 14, false)
		dc.SetColor(o.theme.Muted)
		dc.DrawStringAnchored(EmptyMessage, sw/2, sh/2, 0.5, 0.5)
		return dc.EncodePNG(w)
	}

	dc.Push()
	dc.Translate(o.transform.Pan.X, o.transform.Pan.Y)
	dc.Scale(o.transform.Zoom, o.transform.Zoom)

	for _, e := range r.Edges {
		drawElbow(dc, layout.ElbowFor(e.Start, e.End, r.Config), o.theme.Edge)
	}
	for _, n := range r.Nodes {
		drawCard(dc, r, n, o.theme, o.font)
	}
	dc.Pop()
	return dc.EncodePNG(w)
}

func drawElbow(dc *gg.Context, e layout.Elbow, c color.RGBA) {
	dc.SetColor(c)
	dc.SetLineWidth(2)
	s, t := e.Start, e.End
	dc.MoveTo(s.X, s.Y)
	if e.Straight {
		dc.LineTo(t.X, t.Y)
	} else {
		r, d := e.Radius, e.Dir
		dc.LineTo(s.X, e.MidY-r)
		dc.QuadraticTo(s.X, e.MidY, s.X+d*r, e.MidY)
		dc.LineTo(t.X-d*r, e.MidY)
		dc.QuadraticTo(t.X, e.MidY, t.X, e.MidY+r)
		dc.LineTo(t.X, t.Y)
	}
	dc.Stroke()
	drawArrowHead(dc, t, c)
}

// drawArrowHead draws a downward arrow ending at tip.
func drawArrowHead(dc *gg.Context, tip layout.Point, c color.RGBA) {
	const size = 8.0
	dc.SetColor(c)
	dc.MoveTo(tip.X, tip.Y)
	dc.LineTo(tip.X-size/2, tip.Y-size)
	dc.LineTo(tip.X+size/2, tip.Y-size)
	dc.ClosePath()
	dc.Fill()
}

// useFont switches to the named face, keeping the current one if it cannot
// be loaded.
func useFont(dc *gg.Context, name string, size float64, bold bool) {
	if face, err := fonts.Face(name, size, bold); err == nil {
		dc.SetFontFace(face)
	}
}

func drawCard(dc *gg.Context, r layout.Result, n layout.Node, th Theme, font string) {
	box := r.Card(n)
	t := newCardText(n, r.Config)
	x, y := box.X, box.Y

	// Drop shadow.
	dc.SetColor(color.RGBA{0, 0, 0, 0x18})
	dc.DrawRoundedRectangle(x+2, y+3, box.W, box.H, cardRadius)
	dc.Fill()

	dc.SetColor(th.Card)
	dc.DrawRoundedRectangle(x, y, box.W, box.H, cardRadius)
	dc.Fill()
	dc.SetLineWidth(1)
	dc.SetColor(th.CardBorder)
	dc.DrawRoundedRectangle(x, y, box.W, box.H, cardRadius)
	dc.Stroke()

	bx, by := x+cardPadding, y+cardPadding
	dc.SetColor(TypeColor(n.Item.Type))
	dc.DrawRoundedRectangle(bx, by, t.BadgeW, badgeHeight, badgeHeight/2)
	dc.Fill()
	useFont(dc, font, badgeFontSize, true)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(t.Badge, bx+t.BadgeW/2, by+badgeHeight/2, 0.5, 0.5)
	if t.Effort != "" {
		useFont(dc, font, footerFontSize, false)
		dc.SetColor(th.Muted)
		dc.DrawStringAnchored(t.Effort, x+box.W-cardPadding, by+badgeHeight/2, 1, 0.5)
	}

	useFont(dc, font, titleFontSize, true)
	dc.SetColor(th.Title)
	dc.DrawStringAnchored(t.Title, x+cardPadding, y+titleBaseline, 0, 0)
	useFont(dc, font, descFontSize, false)
	dc.SetColor(th.Body)
	for j, line := range t.Desc {
		dc.DrawStringAnchored(line, x+cardPadding, y+descBaseline+float64(j)*descLineHeight, 0, 0)
	}

	fy := y + box.H - footerInset
	dc.SetColor(th.CardBorder)
	dc.DrawLine(x+cardPadding, fy-footerFontSize-8, x+box.W-cardPadding, fy-footerFontSize-8)
	dc.Stroke()
	dc.SetColor(PriorityColor(n.Item.Priority))
	dc.DrawCircle(x+cardPadding+priorityDotR, fy-math.Round(footerFontSize*0.35), priorityDotR)
	dc.Fill()
	useFont(dc, font, footerFontSize, false)
	dc.SetColor(th.Muted)
	dc.DrawStringAnchored(t.Priority, x+cardPadding+2*priorityDotR+8, fy, 0, 0)
}
