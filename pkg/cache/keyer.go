package cache

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey identifies a layout computed from input with the given hash.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	CardWidth     float64 `json:"cw"`
	CardHeight    float64 `json:"ch"`
	HorizontalGap float64 `json:"hg"`
	VerticalGap   float64 `json:"vg"`
	RootGapUnits  float64 `json:"rg"`
	CornerRadius  float64 `json:"cr"`
	EdgeEpsilon   float64 `json:"eps"`
	Strict        bool    `json:"strict,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered output.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Zoom   float64 `json:"zoom"`
	PanX   float64 `json:"pan_x"`
	PanY   float64 `json:"pan_y"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Theme  string  `json:"theme,omitempty"`
	Title  string  `json:"title,omitempty"`
	Font   string  `json:"font,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	Static bool    `json:"static,omitempty"`
}

// DefaultKeyer hashes options together with the content hash.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
