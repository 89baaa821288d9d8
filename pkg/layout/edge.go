package layout

import (
	"math"
	"strconv"
	"strings"
)

// Elbow is the connector geometry between a parent and a child card.
type Elbow struct {
	Start, End Point
	Straight   bool
	MidY       float64 // y of the horizontal run
	Radius     float64 // corner radius
	Dir        float64 // +1 when the child is to the right, -1 to the left
}

// ElbowFor computes the connector from start (parent bottom-center) to end
// (child top-center). Endpoints within cfg.EdgeEpsilon horizontally get a
// straight segment; otherwise the connector drops to the vertical midpoint,
// runs horizontally and drops again, with corners of radius
// min(CornerRadius, |dx|/2, dy/2).
func ElbowFor(start, end Point, cfg Config) Elbow {
	dx := end.X - start.X
	if math.Abs(dx) <= cfg.EdgeEpsilon {
		return Elbow{Start: start, End: end, Straight: true}
	}
	dy := end.Y - start.Y
	dir := 1.0
	if dx < 0 {
		dir = -1
	}
	return Elbow{
		Start:  start,
		End:    end,
		MidY:   start.Y + dy/2,
		Radius: min(cfg.CornerRadius, math.Abs(dx)/2, math.Max(dy, 0)/2),
		Dir:    dir,
	}
}

// Path returns the connector as SVG path data.
func (e Elbow) Path() string {
	if e.Straight {
		return "M " + pt(e.Start.X, e.Start.Y) + " L " + pt(e.End.X, e.End.Y)
	}
	x1, x2, y, r, s := e.Start.X, e.End.X, e.MidY, e.Radius, e.Dir

	var b strings.Builder
	b.WriteString("M " + pt(x1, e.Start.Y))
	b.WriteString(" L " + pt(x1, y-r))
	b.WriteString(" Q " + pt(x1, y) + " " + pt(x1+s*r, y))
	b.WriteString(" L " + pt(x2-s*r, y))
	b.WriteString(" Q " + pt(x2, y) + " " + pt(x2, y+r))
	b.WriteString(" L " + pt(x2, e.End.Y))
	return b.String()
}

// EdgePath returns SVG path data connecting start to end. See ElbowFor.
func EdgePath(start, end Point, cfg Config) string {
	return ElbowFor(start, end, cfg).Path()
}

func pt(x, y float64) string { return num(x) + " " + num(y) }

func num(v float64) string {
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
