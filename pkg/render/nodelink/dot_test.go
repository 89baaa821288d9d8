package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/backlogtree/pkg/backlog"
	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/tree"
)

func sample(items ...backlog.Item) layout.Result {
	return layout.Compute(tree.Build(items), layout.DefaultConfig())
}

func TestToDOT(t *testing.T) {
	r := sample(
		backlog.Item{ID: "e", Type: backlog.TypeEpic, Title: "Checkout", Priority: backlog.PriorityHigh},
		backlog.Item{ID: "f", Type: backlog.TypeFeature, Title: "Cart", ParentID: "e", Priority: backlog.PriorityLow},
	)
	dot := ToDOT(r, Options{})

	for _, want := range []string{
		"digraph backlog {",
		`n0 [label="EPIC\nCheckout", tooltip="e", pos="184,612!"`,
		`pos="184,348!"`,
		"n0 -> n1;",
		"fixedsize=true",
		`color="#fd7e14"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "Priority") {
		t.Error("compact labels should not include priority")
	}
}

func TestToDOTEdges(t *testing.T) {
	r := sample(
		backlog.Item{ID: "e", Type: backlog.TypeEpic},
		backlog.Item{ID: "f1", Type: backlog.TypeFeature, ParentID: "e"},
		backlog.Item{ID: "s", Type: backlog.TypeStory, ParentID: "f1"},
		backlog.Item{ID: "f2", Type: backlog.TypeFeature, ParentID: "e"},
		backlog.Item{ID: "lone", Type: backlog.TypeTask, ParentID: "missing"},
	)
	dot := ToDOT(r, Options{})

	want := []string{"n0 -> n1;", "n1 -> n2;", "n0 -> n3;"}
	for _, w := range want {
		if !strings.Contains(dot, w) {
			t.Errorf("DOT missing %q\n%s", w, dot)
		}
	}
	if got := strings.Count(dot, "->"); got != len(r.Edges) {
		t.Errorf("edge lines = %d, want %d", got, len(r.Edges))
	}
	if strings.Contains(dot, "%!") {
		t.Errorf("malformed edge line:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	r := sample(backlog.Item{ID: "s", Type: backlog.TypeStory, Title: "Login", Description: "Users sign in", Priority: backlog.PriorityMedium, Effort: "S"})
	dot := ToDOT(r, Options{Detailed: true})
	if !strings.Contains(dot, `label="STORY\nLogin\nUsers sign in\nPriority • MEDIUM\nEffort S"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTDuplicateIDs(t *testing.T) {
	r := sample(backlog.Item{ID: "x"}, backlog.Item{ID: "x"})
	dot := ToDOT(r, Options{})
	if !strings.Contains(dot, "n0 [") || !strings.Contains(dot, "n1 [") {
		t.Errorf("duplicate ids should map to distinct nodes:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	if !bytes.Contains(out, []byte(`width="100" height="50"`)) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if got := normalizeViewBox([]byte("<svg><g/></svg>")); string(got) != "<svg><g/></svg>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz render in short mode")
	}
	dot := ToDOT(sample(
		backlog.Item{ID: "e", Type: backlog.TypeEpic, Title: "Checkout"},
		backlog.Item{ID: "f", Type: backlog.TypeFeature, Title: "Cart", ParentID: "e"},
	), Options{})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("Checkout")) {
		t.Errorf("unexpected output: %.200s", svg)
	}
}
