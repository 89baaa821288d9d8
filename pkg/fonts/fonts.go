// Package fonts provides the font faces used to draw card text.
//
// The faces are the Go fonts from golang.org/x/image, embedded in the binary,
// so PNG output looks the same on every machine. SVG output references the
// matching CSS family and leaves glyph rendering to the viewer.
package fonts

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Font families.
const (
	Sans = "sans"
	Mono = "mono"
)

// Names lists the supported families.
var Names = []string{Sans, Mono}

// Valid reports whether name is a supported family.
func Valid(name string) bool { return slices.Contains(Names, name) }

// CSSFamily returns the CSS font-family list for name.
func CSSFamily(name string) string {
	if name == Mono {
		return "ui-monospace, 'Go Mono', monospace"
	}
	return "system-ui, 'Go', sans-serif"
}

type faceKey struct {
	name string
	size float64
	bold bool
}

var (
	parseOnce sync.Once
	parsed    map[faceKey]*opentype.Font
	parseErr  error

	mu    sync.Mutex
	faces = map[faceKey]font.Face{}
)

func parseAll() {
	parsed = map[faceKey]*opentype.Font{}
	sources := map[faceKey][]byte{
		{name: Sans}:             goregular.TTF,
		{name: Sans, bold: true}: gobold.TTF,
		{name: Mono}:             gomono.TTF,
		{name: Mono, bold: true}: gomonobold.TTF,
	}
	for k, ttf := range sources {
		f, err := opentype.Parse(ttf)
		if err != nil {
			parseErr = fmt.Errorf("parse %s font: %w", k.name, err)
			return
		}
		parsed[k] = f
	}
}

// Face returns a face of the given family and pixel size. Faces are cached
// and shared; they must not be closed.
func Face(name string, size float64, bold bool) (font.Face, error) {
	if !Valid(name) {
		return nil, fmt.Errorf("unknown font %q", name)
	}
	parseOnce.Do(parseAll)
	if parseErr != nil {
		return nil, parseErr
	}

	key := faceKey{name: name, size: size, bold: bold}
	mu.Lock()
	defer mu.Unlock()
	if f, ok := faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(parsed[faceKey{name: name, bold: bold}], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%s face: %w", name, err)
	}
	faces[key] = f
	return f, nil
}
