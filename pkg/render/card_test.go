package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/backlogtree/pkg/backlog"
	"github.com/matzehuels/backlogtree/pkg/layout"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"too long title", 8, "too lon…"},
		{"ünïcödé", 4, "ünï…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		n, lines int
		want     []string
	}{
		{"empty", "   ", 10, 2, nil},
		{"one line", "a b c", 10, 2, []string{"a b c"}},
		{"two lines", "alpha beta gamma", 11, 2, []string{"alpha beta", "gamma"}},
		{"overflow", "alpha beta gamma delta", 11, 1, []string{"alpha beta…"}},
		{"long word", "abcdefghijkl", 5, 2, []string{"abcd…"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrap(tt.in, tt.n, tt.lines); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrap = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCardText(t *testing.T) {
	n := layout.Node{Item: backlog.Item{
		ID:          "s1",
		Type:        backlog.TypeStory,
		Title:       strings.Repeat("x", 200),
		Description: strings.Repeat("word ", 200),
		Priority:    backlog.PriorityHigh,
		Effort:      "M",
	}}
	ct := newCardText(n, layout.DefaultConfig())
	if ct.Badge != "STORY" || ct.Effort != "M" || ct.Priority != "Priority • HIGH" {
		t.Errorf("unexpected header/footer: %+v", ct)
	}
	if !strings.HasSuffix(ct.Title, "…") {
		t.Errorf("long title not truncated: %q", ct.Title)
	}
	if len(ct.Desc) != 2 {
		t.Errorf("description lines = %d, want 2", len(ct.Desc))
	}
}
