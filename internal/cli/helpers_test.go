package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/backlogtree/pkg/backlog"
	"github.com/matzehuels/backlogtree/pkg/tree"
)

var testBacklog = []backlog.Item{
	{ID: "epic-1", Type: backlog.TypeEpic, Title: "Checkout", Priority: backlog.PriorityHigh, Effort: "L"},
	{ID: "feat-1", Type: backlog.TypeFeature, Title: "Cart", ParentID: "epic-1", Priority: backlog.PriorityMedium},
	{ID: "feat-2", Type: backlog.TypeFeature, Title: "Payments", ParentID: "epic-1", Priority: backlog.PriorityLow},
}

func buildForest(t *testing.T, items []backlog.Item) *tree.Forest {
	t.Helper()
	return tree.Build(items)
}

// writeBacklog writes items as JSON into a temp dir and returns the path.
func writeBacklog(t *testing.T, items []backlog.Item) string {
	t.Helper()
	var buf bytes.Buffer
	if err := backlog.Write(&buf, items); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "backlog.json")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// captureOut redirects status output to a buffer for the test's duration.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

// isolate points config and cache lookups at temp dirs.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}
