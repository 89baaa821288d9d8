package layout

import (
	"github.com/matzehuels/backlogtree/pkg/backlog"
	"github.com/matzehuels/backlogtree/pkg/tree"
)

// Point is a pixel coordinate in content space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a positioned backlog item.
type Node struct {
	ID     string       `json:"id"`
	Item   backlog.Item `json:"item"`
	Parent int          `json:"parent"` // index into Result.Nodes, -1 for roots
	Depth  int          `json:"depth"`
	Span   float64      `json:"span"`
	Center float64      `json:"center"` // unit space
	X      float64      `json:"x"`      // card horizontal center
	Y      float64      `json:"y"`      // card top
}

// Edge connects a parent card to one of its children.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Start Point  `json:"start"` // parent bottom-center
	End   Point  `json:"end"`   // child top-center
	Path  string `json:"path"`  // SVG path data
}

// Rect is an axis-aligned box in content space.
type Rect struct {
	X, Y, W, H float64
}

// Result is a computed layout. Nodes are in pre-order and edges follow the
// same parent order, so equal input always yields an identical Result.
type Result struct {
	Nodes    []Node  `json:"nodes"`
	Edges    []Edge  `json:"edges"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Units    float64 `json:"units"`
	MaxDepth int     `json:"max_depth"`
	Config   Config  `json:"config"`
}

// IsEmpty reports whether the layout has nothing to draw.
func (r Result) IsEmpty() bool { return len(r.Nodes) == 0 }

// Card returns the pixel rectangle occupied by n's card.
func (r Result) Card(n Node) Rect {
	return Rect{
		X: n.X - r.Config.CardWidth/2,
		Y: n.Y,
		W: r.Config.CardWidth,
		H: r.Config.CardHeight,
	}
}

// slot is the arena entry for one tree node.
type slot struct {
	node     *tree.Node
	parent   int
	depth    int
	children []int
	span     float64
	offset   float64
}

// Compute lays out the forest. It never fails; an empty forest yields an
// empty Result.
func Compute(f *tree.Forest, cfg Config) Result {
	cfg = cfg.WithDefaults()
	res := Result{Config: cfg}
	if f.IsEmpty() {
		return res
	}

	arena := flatten(f)

	// Spans, children before parents: reverse pre-order is a post-order.
	for i := len(arena) - 1; i >= 0; i-- {
		s := &arena[i]
		if len(s.children) == 0 {
			s.span = 1
			continue
		}
		var sum float64
		for _, c := range s.children {
			sum += arena[c].span
		}
		s.span = sum
	}

	// Offsets, parents before children.
	var cursor float64
	first := true
	for i := range arena {
		s := &arena[i]
		if s.parent < 0 {
			if !first {
				cursor += cfg.RootGapUnits
			}
			first = false
			s.offset = cursor
			cursor += s.span
		}
		next := s.offset
		for _, c := range s.children {
			arena[c].offset = next
			next += arena[c].span
		}
	}

	hu, lh := cfg.HorizontalUnit(), cfg.LevelHeight()
	res.Units = cursor
	res.Nodes = make([]Node, len(arena))
	for i, s := range arena {
		center := s.offset + s.span/2
		res.Nodes[i] = Node{
			ID:     s.node.ID(),
			Item:   s.node.Item,
			Parent: s.parent,
			Depth:  s.depth,
			Span:   s.span,
			Center: center,
			X:      center * hu,
			Y:      float64(s.depth) * lh,
		}
		if s.depth > res.MaxDepth {
			res.MaxDepth = s.depth
		}
	}

	res.Edges = make([]Edge, 0, len(arena)-len(f.Roots))
	for i, s := range arena {
		p := res.Nodes[i]
		start := Point{X: p.X, Y: p.Y + cfg.CardHeight}
		for _, c := range s.children {
			ch := res.Nodes[c]
			end := Point{X: ch.X, Y: ch.Y}
			res.Edges = append(res.Edges, Edge{
				From:  p.ID,
				To:    ch.ID,
				Start: start,
				End:   end,
				Path:  EdgePath(start, end, cfg),
			})
		}
	}

	res.Width = max(res.Units*hu, 2*cfg.CardWidth)
	res.Height = float64(res.MaxDepth+1)*lh + cfg.CardHeight
	return res
}

// flatten copies the reachable forest into an arena in pre-order.
func flatten(f *tree.Forest) []slot {
	arena := make([]slot, 0, f.Len())
	index := make(map[*tree.Node]int, f.Len())
	f.Walk(func(n *tree.Node, depth int) bool {
		parent := -1
		if n.Parent != nil {
			parent = index[n.Parent]
		}
		i := len(arena)
		index[n] = i
		arena = append(arena, slot{node: n, parent: parent, depth: depth})
		if parent >= 0 {
			arena[parent].children = append(arena[parent].children, i)
		}
		return true
	})
	return arena
}
