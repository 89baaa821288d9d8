package render

import (
	"math"
	"strings"

	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/viewport"
)

// Terminal cell size in layout pixels.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Text draws the layout onto a cols×rows character grid with box-drawing
// glyphs. One cell covers CellWidth×CellHeight pixels of the transformed
// surface, so the same transform drives both the terminal viewer and the
// graphical renderers.
func Text(r layout.Result, t viewport.Transform, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	g := newGrid(cols, rows)
	if r.IsEmpty() {
		g.text((cols-len([]rune(EmptyMessage)))/2, rows/2, EmptyMessage, cols)
		return g.lines()
	}
	if t.Zoom <= 0 {
		t.Zoom = 1
	}

	for _, e := range r.Edges {
		g.elbow(layout.ElbowFor(e.Start, e.End, r.Config), t)
	}
	for _, n := range r.Nodes {
		g.card(r, n, t)
	}
	return g.lines()
}

type grid struct {
	cols, rows int
	cells      [][]rune
}

func newGrid(cols, rows int) *grid {
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return &grid{cols: cols, rows: rows, cells: cells}
}

func (g *grid) set(c, r int, ch rune) {
	if c < 0 || r < 0 || c >= g.cols || r >= g.rows {
		return
	}
	g.cells[r][c] = ch
}

func (g *grid) text(c, r int, s string, limit int) {
	for i, ch := range []rune(s) {
		if i >= limit {
			return
		}
		g.set(c+i, r, ch)
	}
}

func (g *grid) lines() []string {
	out := make([]string, g.rows)
	for i, row := range g.cells {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return out
}

// cell maps a layout point to a grid cell under t.
func cell(p layout.Point, t viewport.Transform) (int, int) {
	x, y := t.Apply(p.X, p.Y)
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// Connector directions, combined so crossing lines merge into junctions.
const (
	up = 1 << iota
	down
	left
	right
)

var glyphs = map[int]rune{
	up | down:                '│',
	left | right:             '─',
	up | right:               '╰',
	up | left:                '╯',
	down | right:             '╭',
	down | left:              '╮',
	up | left | right:        '┴',
	down | left | right:      '┬',
	up | down | right:        '├',
	up | down | left:         '┤',
	up | down | left | right: '┼',
}

var masks = func() map[rune]int {
	m := make(map[rune]int, len(glyphs))
	for k, v := range glyphs {
		m[v] = k
	}
	return m
}()

// join adds connector directions to a cell.
func (g *grid) join(c, r, dirs int) {
	if c < 0 || r < 0 || c >= g.cols || r >= g.rows {
		return
	}
	dirs |= masks[g.cells[r][c]]
	if ch, ok := glyphs[dirs]; ok {
		g.cells[r][c] = ch
	}
}

// vline draws rows r0 through r1; an inverted range draws nothing.
func (g *grid) vline(c, r0, r1 int) {
	for r := r0; r <= r1; r++ {
		g.join(c, r, up|down)
	}
}

func (g *grid) hline(c0, c1, r int) {
	for c := min(c0, c1); c <= max(c0, c1); c++ {
		g.join(c, r, left|right)
	}
}

func (g *grid) elbow(e layout.Elbow, t viewport.Transform) {
	sc, sr := cell(e.Start, t)
	ec, er := cell(e.End, t)
	if e.Straight || sc == ec {
		g.vline(sc, sr, er-2)
		g.set(sc, er-1, '▼')
		return
	}
	_, mr := cell(layout.Point{X: e.Start.X, Y: e.MidY}, t)
	toward, back := right, left
	step := 1
	if e.Dir < 0 {
		toward, back, step = left, right, -1
	}
	g.vline(sc, sr, mr-1)
	g.join(sc, mr, up|toward)
	if abs(ec-sc) > 1 {
		g.hline(sc+step, ec-step, mr)
	}
	g.join(ec, mr, down|back)
	g.vline(ec, mr+1, er-2)
	g.set(ec, er-1, '▼')
}

func (g *grid) card(r layout.Result, n layout.Node, t viewport.Transform) {
	box := r.Card(n)
	c0, r0 := cell(layout.Point{X: box.X, Y: box.Y}, t)
	c1, r1 := cell(layout.Point{X: box.X + box.W, Y: box.Y + box.H}, t)
	c1, r1 = c1-1, r1-1
	if c1-c0 < 2 || r1-r0 < 2 {
		g.set(c0, r0, '■')
		return
	}

	for c := c0; c <= c1; c++ {
		for rr := r0; rr <= r1; rr++ {
			g.set(c, rr, ' ')
		}
	}
	for c := c0 + 1; c < c1; c++ {
		g.set(c, r0, '─')
		g.set(c, r1, '─')
	}
	for rr := r0 + 1; rr < r1; rr++ {
		g.set(c0, rr, '│')
		g.set(c1, rr, '│')
	}
	g.set(c0, r0, '┌')
	g.set(c1, r0, '┐')
	g.set(c0, r1, '└')
	g.set(c1, r1, '┘')

	inner := c1 - c0 - 1
	lines := []string{
		n.Item.Type.Label(),
		truncate(n.Item.Title, max(inner, 1)),
		n.Item.PriorityLabel(),
	}
	if n.Item.Effort != "" {
		lines[0] += " · " + n.Item.Effort
	}
	for i, s := range lines {
		if r0+1+i >= r1 {
			break
		}
		g.text(c0+1, r0+1+i, s, inner)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
