package layout

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/matzehuels/backlogtree/pkg/backlog"
	"github.com/matzehuels/backlogtree/pkg/tree"
)

func item(id, parent string) backlog.Item {
	return backlog.Item{ID: id, ParentID: parent, Type: backlog.TypeStory, Priority: backlog.PriorityLow}
}

func compute(items ...backlog.Item) Result {
	return Compute(tree.Build(items), DefaultConfig())
}

func byID(r Result) map[string]Node {
	m := make(map[string]Node, len(r.Nodes))
	for _, n := range r.Nodes {
		m[n.ID] = n
	}
	return m
}

func TestComputeSpans(t *testing.T) {
	r := compute(
		item("root", ""),
		item("c1", "root"),
		item("c2", "root"),
		item("g1", "c1"),
		item("g2", "c1"),
		item("g3", "c2"),
		item("g4", "c2"),
	)
	nodes := byID(r)

	tests := []struct {
		id     string
		span   float64
		center float64
		depth  int
	}{
		{"root", 4, 2, 0},
		{"c1", 2, 1, 1},
		{"c2", 2, 3, 1},
		{"g1", 1, 0.5, 2},
		{"g2", 1, 1.5, 2},
		{"g3", 1, 2.5, 2},
		{"g4", 1, 3.5, 2},
	}
	for _, tt := range tests {
		n := nodes[tt.id]
		if n.Span != tt.span || n.Center != tt.center || n.Depth != tt.depth {
			t.Errorf("%s: span=%g center=%g depth=%d, want span=%g center=%g depth=%d",
				tt.id, n.Span, n.Center, n.Depth, tt.span, tt.center, tt.depth)
		}
	}

	hu := DefaultConfig().HorizontalUnit()
	lh := DefaultConfig().LevelHeight()
	if g := nodes["g3"]; g.X != 2.5*hu || g.Y != 2*lh {
		t.Errorf("g3 at (%g, %g), want (%g, %g)", g.X, g.Y, 2.5*hu, 2*lh)
	}
	if r.Units != 4 || r.MaxDepth != 2 {
		t.Errorf("units=%g maxDepth=%d, want 4 and 2", r.Units, r.MaxDepth)
	}
}

func TestComputeDisconnectedRoots(t *testing.T) {
	r := compute(item("a", ""), item("b", ""))
	nodes := byID(r)
	if nodes["a"].Span != 1 || nodes["b"].Span != 1 {
		t.Fatalf("spans = %g, %g, want 1, 1", nodes["a"].Span, nodes["b"].Span)
	}
	if got, want := nodes["a"].Center, 0.5; got != want {
		t.Errorf("a center = %g, want %g", got, want)
	}
	if got, want := nodes["b"].Center, 1+DefaultRootGapUnits+0.5; got != want {
		t.Errorf("b center = %g, want %g", got, want)
	}
	if r.Units != 3 {
		t.Errorf("units = %g, want 3", r.Units)
	}
	if len(r.Edges) != 0 {
		t.Errorf("got %d edges, want 0", len(r.Edges))
	}
}

func TestComputeEmpty(t *testing.T) {
	r := Compute(tree.Build(nil), Config{})
	if !r.IsEmpty() {
		t.Fatal("expected empty result")
	}
	if len(r.Edges) != 0 || r.Width != 0 || r.Height != 0 {
		t.Errorf("empty result has content: %+v", r)
	}
	if r.Config != DefaultConfig() {
		t.Errorf("empty result should carry defaults, got %+v", r.Config)
	}
}

func TestComputeBounds(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name   string
		items  []backlog.Item
		width  float64
		height float64
	}{
		{
			name:   "single card is at least two cards wide",
			items:  []backlog.Item{item("a", "")},
			width:  2 * cfg.CardWidth,
			height: cfg.LevelHeight() + cfg.CardHeight,
		},
		{
			name:   "wide row",
			items:  []backlog.Item{item("r", ""), item("a", "r"), item("b", "r"), item("c", "r")},
			width:  3 * cfg.HorizontalUnit(),
			height: 2*cfg.LevelHeight() + cfg.CardHeight,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tree.Build(tt.items), cfg)
			if r.Width != tt.width || r.Height != tt.height {
				t.Errorf("bounds = %gx%g, want %gx%g", r.Width, r.Height, tt.width, tt.height)
			}
		})
	}
}

func TestComputeOrder(t *testing.T) {
	r := compute(
		item("b-child", "b"),
		item("a", ""),
		item("b", ""),
		item("a2", "a"),
		item("a1", "a"),
	)
	var ids []string
	for _, n := range r.Nodes {
		ids = append(ids, n.ID)
	}
	if want := []string{"a", "a2", "a1", "b", "b-child"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("node order = %v, want %v", ids, want)
	}
	var edges []string
	for _, e := range r.Edges {
		edges = append(edges, e.From+"->"+e.To)
	}
	if want := []string{"a->a2", "a->a1", "b->b-child"}; !reflect.DeepEqual(edges, want) {
		t.Errorf("edge order = %v, want %v", edges, want)
	}
	if r.Nodes[1].Parent != 0 || r.Nodes[0].Parent != -1 {
		t.Errorf("parent indexes = %d, %d", r.Nodes[0].Parent, r.Nodes[1].Parent)
	}
}

// randomItems builds a random forest of n items where every parent precedes
// or follows its children arbitrarily.
func randomItems(rng *rand.Rand, n int) []backlog.Item {
	items := make([]backlog.Item, n)
	for i := range items {
		parent := ""
		if i > 0 && rng.Intn(5) != 0 {
			parent = fmt.Sprintf("n%d", rng.Intn(i))
		}
		items[i] = item(fmt.Sprintf("n%d", i), parent)
	}
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return items
}

func TestComputeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cfg := DefaultConfig()

	for round := 0; round < 50; round++ {
		items := randomItems(rng, 1+rng.Intn(60))
		f := tree.Build(items)
		r := Compute(f, cfg)

		if len(r.Nodes) != len(items) {
			t.Fatalf("round %d: %d nodes for %d items", round, len(r.Nodes), len(items))
		}

		// Span equals sum of children, or 1 for leaves.
		sums := make([]float64, len(r.Nodes))
		kids := make([]int, len(r.Nodes))
		for _, n := range r.Nodes {
			if n.Parent >= 0 {
				sums[n.Parent] += n.Span
				kids[n.Parent]++
			}
		}
		for i, n := range r.Nodes {
			want := sums[i]
			if kids[i] == 0 {
				want = 1
			}
			if n.Span != want {
				t.Errorf("round %d: %s span = %g, want %g", round, n.ID, n.Span, want)
			}
		}

		// Cards on the same depth never overlap.
		rows := map[int][]Node{}
		for _, n := range r.Nodes {
			rows[n.Depth] = append(rows[n.Depth], n)
		}
		for depth, row := range rows {
			for i := 1; i < len(row); i++ {
				prev, cur := row[i-1], row[i]
				if cur.X-cfg.CardWidth/2 < prev.X+cfg.CardWidth/2 {
					t.Errorf("round %d depth %d: %s overlaps %s", round, depth, prev.ID, cur.ID)
				}
			}
		}

		// Idempotent.
		if again := Compute(f, cfg); !reflect.DeepEqual(r, again) {
			t.Errorf("round %d: layout not idempotent", round)
		}

		// Cards lie within the bounds.
		for _, n := range r.Nodes {
			box := r.Card(n)
			if box.X < 0 || box.X+box.W > r.Width || box.Y+box.H > r.Height {
				t.Errorf("round %d: %s card %+v outside %gx%g", round, n.ID, box, r.Width, r.Height)
			}
		}
	}
}

func TestComputeDeepChain(t *testing.T) {
	const depth = 50000
	items := make([]backlog.Item, depth)
	items[0] = item("n0", "")
	for i := 1; i < depth; i++ {
		items[i] = item(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i-1))
	}
	r := compute(items...)
	if r.MaxDepth != depth-1 {
		t.Errorf("MaxDepth = %d, want %d", r.MaxDepth, depth-1)
	}
	for _, e := range r.Edges {
		if e.Start.X != e.End.X {
			t.Fatalf("chain edge %s->%s is not vertical", e.From, e.To)
		}
	}
}

func TestEdgePath(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name       string
		start, end Point
		want       string
	}{
		{
			name:  "vertical",
			start: Point{100, 168},
			end:   Point{100, 264},
			want:  "M 100 168 L 100 264",
		},
		{
			name:  "within epsilon",
			start: Point{100, 168},
			end:   Point{100.4, 264},
			want:  "M 100 168 L 100.4 264",
		},
		{
			name:  "elbow right",
			start: Point{368, 168},
			end:   Point{552, 264},
			want:  "M 368 168 L 368 200 Q 368 216 384 216 L 536 216 Q 552 216 552 232 L 552 264",
		},
		{
			name:  "elbow left",
			start: Point{368, 168},
			end:   Point{184, 264},
			want:  "M 368 168 L 368 200 Q 368 216 352 216 L 200 216 Q 184 216 184 232 L 184 264",
		},
		{
			name:  "radius limited by dx",
			start: Point{0, 0},
			end:   Point{10, 100},
			want:  "M 0 0 L 0 45 Q 0 50 5 50 L 5 50 Q 10 50 10 55 L 10 100",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EdgePath(tt.start, tt.end, cfg); got != tt.want {
				t.Errorf("EdgePath() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestEdgeEndpoints(t *testing.T) {
	cfg := DefaultConfig()
	r := compute(item("p", ""), item("c1", "p"), item("c2", "p"))
	nodes := byID(r)
	for _, e := range r.Edges {
		from, to := nodes[e.From], nodes[e.To]
		if e.Start != (Point{from.X, from.Y + cfg.CardHeight}) {
			t.Errorf("%s->%s start = %+v", e.From, e.To, e.Start)
		}
		if e.End != (Point{to.X, to.Y}) {
			t.Errorf("%s->%s end = %+v", e.From, e.To, e.End)
		}
		if math.Abs(e.End.Y-e.Start.Y-cfg.VerticalGap) > 1e-9 {
			t.Errorf("%s->%s vertical distance = %g", e.From, e.To, e.End.Y-e.Start.Y)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero gaps", func(c *Config) { c.HorizontalGap, c.VerticalGap = 0, 0 }, false},
		{"negative width", func(c *Config) { c.CardWidth = -1 }, true},
		{"negative gap", func(c *Config) { c.RootGapUnits = -2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	got := Config{HorizontalGap: 10}.WithDefaults()
	if got.CardWidth != DefaultCardWidth || got.CardHeight != DefaultCardHeight {
		t.Errorf("card size not defaulted: %+v", got)
	}
	if got.HorizontalGap != 10 || got.VerticalGap != 0 {
		t.Errorf("explicit gaps changed: %+v", got)
	}
}

func TestConfigPartialOverride(t *testing.T) {
	items := []backlog.Item{{ID: "a"}, {ID: "b"}}

	tests := []struct {
		name    string
		cfg     Config
		wantBX  float64 // center of the second root
		wantGap float64
	}{
		// Two roots, one unit each, separated by one gap unit: centers 0.5 and 2.5.
		{"from defaults", func() Config { c := DefaultConfig(); c.CardWidth = 200; return c }(), 2.5 * 248, 48},
		{"bare struct", Config{CardWidth: 200}, 1.5 * 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tree.Build(items), tt.cfg)
			if got := r.Config.HorizontalGap; got != tt.wantGap {
				t.Errorf("HorizontalGap = %g, want %g", got, tt.wantGap)
			}
			if got := r.Nodes[1].X; got != tt.wantBX {
				t.Errorf("second root X = %g, want %g", got, tt.wantBX)
			}
		})
	}
}

func TestElbowFor(t *testing.T) {
	cfg := DefaultConfig()
	if e := ElbowFor(Point{10, 0}, Point{10.3, 96}, cfg); !e.Straight {
		t.Error("near-vertical connector should be straight")
	}
	e := ElbowFor(Point{400, 168}, Point{100, 264}, cfg)
	if e.Straight || e.Dir != -1 || e.MidY != 216 || e.Radius != 16 {
		t.Errorf("unexpected elbow: %+v", e)
	}
	flat := ElbowFor(Point{0, 100}, Point{50, 100}, cfg)
	if flat.Radius != 0 {
		t.Errorf("zero vertical distance should give zero radius, got %g", flat.Radius)
	}
}
