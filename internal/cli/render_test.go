package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/backlogtree/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,png,txt", []string{"svg", "png", "txt"}},
		{"spaces trimmed", " svg , dot ", []string{"svg", "dot"}},
		{"empty entries dropped", "svg,,json,", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "backlog.json", "backlog"},
		{"", "dir/backlog.yaml", "dir/backlog"},
		{"out", "backlog.json", "out"},
		{"out.svg", "backlog.json", "out"},
		{"out.graphviz.svg", "backlog.json", "out"},
		{"out.v2", "backlog.json", "out.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "tree")
	artifacts := map[string][]byte{
		pipeline.FormatSVG:      []byte("<svg/>"),
		pipeline.FormatGraphviz: []byte("<svg>gv</svg>"),
	}

	paths, err := writeArtifacts(base, []string{pipeline.FormatSVG, pipeline.FormatGraphviz}, artifacts)
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	want := []string{base + ".svg", base + ".graphviz.svg"}
	if !slices.Equal(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	data, _ := os.ReadFile(base + ".graphviz.svg")
	if string(data) != "<svg>gv</svg>" {
		t.Errorf("graphviz file = %q", data)
	}

	if _, err := writeArtifacts(base, []string{pipeline.FormatPNG}, artifacts); err == nil {
		t.Error("missing artifact should fail")
	}
}
