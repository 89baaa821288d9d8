package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/backlogtree/pkg/backlog"
	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/tree"
	"github.com/matzehuels/backlogtree/pkg/viewport"
)

func runeAt(lines []string, row, col int) rune {
	r := []rune(lines[row])
	if col >= len(r) {
		return ' '
	}
	return r[col]
}

func TestTextEmpty(t *testing.T) {
	lines := Text(layout.Result{}, viewport.Transform{Zoom: 1}, 40, 5)
	if len(lines) != 5 {
		t.Fatalf("rows = %d, want 5", len(lines))
	}
	if want := strings.Repeat(" ", 6) + EmptyMessage; lines[2] != want {
		t.Errorf("message row = %q, want %q", lines[2], want)
	}
}

func TestTextCard(t *testing.T) {
	r := layout.Compute(tree.Build([]backlog.Item{
		{ID: "a", Type: backlog.TypeStory, Title: "Login", Priority: backlog.PriorityLow},
	}), layout.DefaultConfig())
	lines := Text(r, viewport.Transform{Zoom: 1}, 60, 12)

	// Card spans x 24..344 and y 0..168: columns 3..42, rows 0..9.
	if want := "   ┌" + strings.Repeat("─", 38) + "┐"; lines[0] != want {
		t.Errorf("top border = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "   │STORY") {
		t.Errorf("badge row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "   │Login") {
		t.Errorf("title row = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "   │Priority • LOW") {
		t.Errorf("priority row = %q", lines[3])
	}
	if runeAt(lines, 9, 3) != '└' || runeAt(lines, 9, 42) != '┘' {
		t.Errorf("bottom border = %q", lines[9])
	}
}

func TestTextEdges(t *testing.T) {
	r := layout.Compute(tree.Build([]backlog.Item{
		{ID: "p", Type: backlog.TypeEpic},
		{ID: "c", Type: backlog.TypeStory, ParentID: "p"},
	}), layout.DefaultConfig())
	lines := Text(r, viewport.Transform{Zoom: 1}, 60, 30)

	// Straight connector from y=168 to y=264 at x=184 (column 23).
	for row := 10; row < 15; row++ {
		if got := runeAt(lines, row, 23); got != '│' {
			t.Errorf("row %d col 23 = %q, want │", row, got)
		}
	}
	if got := runeAt(lines, 15, 23); got != '▼' {
		t.Errorf("arrow = %q", got)
	}
	if got := runeAt(lines, 16, 3); got != '┌' {
		t.Errorf("child card corner = %q", got)
	}
}

func TestTextElbow(t *testing.T) {
	r := layout.Compute(tree.Build([]backlog.Item{
		{ID: "p"},
		{ID: "a", ParentID: "p"},
		{ID: "b", ParentID: "p"},
	}), layout.DefaultConfig())
	lines := Text(r, viewport.Transform{Zoom: 1}, 100, 30)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"┴", "╭", "╮"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing corner %s", want)
		}
	}
}

func TestTextTransform(t *testing.T) {
	r := layout.Compute(tree.Build([]backlog.Item{{ID: "a"}}), layout.DefaultConfig())
	lines := Text(r, viewport.Transform{Zoom: 1, Pan: viewport.Vec{X: 80, Y: 32}}, 60, 16)
	// Panned by 10 columns and 2 rows.
	if got := runeAt(lines, 2, 13); got != '┌' {
		t.Errorf("panned corner = %q", got)
	}
	if Text(r, viewport.Transform{Zoom: 1}, 0, 10) != nil {
		t.Error("zero columns should draw nothing")
	}
}
