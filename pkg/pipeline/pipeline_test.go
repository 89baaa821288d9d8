package pipeline

import (
	"testing"

	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/viewport"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"graphviz", false},
		{"json", false},
		{"txt", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateTheme(t *testing.T) {
	tests := []struct {
		theme   string
		wantErr bool
	}{
		{"light", false},
		{"dark", false},
		{"neon", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateTheme(tt.theme)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTheme(%q) error = %v, wantErr %v", tt.theme, err, tt.wantErr)
		}
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"svg":      ".svg",
		"png":      ".png",
		"graphviz": ".graphviz.svg",
		"txt":      ".txt",
	}
	for format, want := range tests {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Layout != layout.DefaultConfig() {
		t.Errorf("Layout should be defaults, got %+v", opts.Layout)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{Transform: viewport.Transform{Pan: viewport.Vec{X: 5}}}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Theme != DefaultTheme {
		t.Errorf("Theme should be %s, got %s", DefaultTheme, opts.Theme)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %g, got %g", DefaultScale, opts.Scale)
	}
	if opts.Transform.Zoom != 1 || opts.Transform.Pan.X != 5 {
		t.Errorf("Transform should keep pan with zoom 1, got %+v", opts.Transform)
	}
}

func TestValidateForRender(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"bad format", Options{Formats: []string{"gif"}}, true},
		{"bad theme", Options{Theme: "neon"}, true},
		{"mono font", Options{Font: "mono"}, false},
		{"bad font", Options{Font: "comic"}, true},
		{"scale too large", Options{Scale: 10}, true},
		{"negative view", Options{View: viewport.Size{W: -1, H: 10}}, true},
		{"bad geometry", Options{Layout: layout.Config{CardWidth: 10, HorizontalGap: -1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"png"}, Theme: "dark"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	first := opts.LayoutKeyOpts()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.LayoutKeyOpts() != first {
		t.Error("layout key changed on second call")
	}
	if opts.Theme != "dark" || opts.Formats[0] != "png" {
		t.Error("explicit options changed on second call")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{
		Theme:     "dark",
		Scale:     2,
		Transform: viewport.Transform{Zoom: 1.5, Pan: viewport.Vec{X: 10, Y: 20}},
		View:      viewport.Size{W: 800, H: 600},
	}

	svg := opts.ArtifactKeyOpts(FormatSVG)
	if svg.Zoom != 1.5 || svg.PanX != 10 || svg.Width != 800 || svg.Theme != "dark" {
		t.Errorf("svg key = %+v", svg)
	}
	if png := opts.ArtifactKeyOpts(FormatPNG); png.Zoom != 1.5 || png.Scale != 2 {
		t.Errorf("png key should carry zoom and scale separately, got %+v", png)
	}
	if svg.Scale != 0 {
		t.Errorf("svg key should ignore the PNG scale, got %+v", svg)
	}
	if dot := opts.ArtifactKeyOpts(FormatDOT); dot.Zoom != 0 || dot.Width != 0 {
		t.Errorf("dot key should ignore the view, got %+v", dot)
	}
	if js := opts.ArtifactKeyOpts(FormatJSON); js.Theme != "" {
		t.Errorf("json key should ignore the theme, got %+v", js)
	}
	if !svg.Static {
		t.Error("svg key should record a static transform")
	}
	if txt := opts.ArtifactKeyOpts(FormatText); txt.Static || txt.Title != "" {
		t.Errorf("txt key should ignore title and animation, got %+v", txt)
	}
}
