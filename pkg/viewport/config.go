package viewport

// Config bounds the view state and tunes input sensitivity.
type Config struct {
	ZoomMin  float64 `toml:"zoom_min"`
	ZoomMax  float64 `toml:"zoom_max"`
	ZoomStep float64 `toml:"zoom_step"`
	PanLimit float64 `toml:"pan_limit"`

	// Zoom change per unit of wheel delta, without and with ctrl/meta held.
	WheelSensitivity     float64 `toml:"wheel_sensitivity"`
	FineWheelSensitivity float64 `toml:"fine_wheel_sensitivity"`

	// FitZoom is used by Fit when the view or content size is unknown.
	FitZoom float64 `toml:"fit_zoom"`

	PanButton Button `toml:"-"`
}

// DefaultConfig returns the standard limits.
func DefaultConfig() Config {
	return Config{
		ZoomMin:              0.25,
		ZoomMax:              2,
		ZoomStep:             0.1,
		PanLimit:             4000,
		WheelSensitivity:     0.0015,
		FineWheelSensitivity: 0.0005,
		FitZoom:              0.8,
		PanButton:            ButtonPrimary,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ZoomMin <= 0 {
		c.ZoomMin = d.ZoomMin
	}
	if c.ZoomMax <= 0 {
		c.ZoomMax = d.ZoomMax
	}
	if c.ZoomMax < c.ZoomMin {
		c.ZoomMin, c.ZoomMax = c.ZoomMax, c.ZoomMin
	}
	if c.ZoomStep <= 0 {
		c.ZoomStep = d.ZoomStep
	}
	if c.PanLimit <= 0 {
		c.PanLimit = d.PanLimit
	}
	if c.WheelSensitivity <= 0 {
		c.WheelSensitivity = d.WheelSensitivity
	}
	if c.FineWheelSensitivity <= 0 {
		c.FineWheelSensitivity = d.FineWheelSensitivity
	}
	if c.FitZoom <= 0 {
		c.FitZoom = d.FitZoom
	}
	return c
}
