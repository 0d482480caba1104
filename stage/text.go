package stage

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the label size used when no font is set.
const DefaultFontSize = 11

// Font wraps Ebitengine's text/v2 for TrueType label rendering.
type Font struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, errors.Wrap(err, "parse TTF data")
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &Font{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *Font) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

var defaultFont *Font

// DefaultFont returns Go Regular at DefaultFontSize, loading it on first
// use.
func DefaultFont() *Font {
	if defaultFont == nil {
		f, err := LoadFont(goregular.TTF, DefaultFontSize)
		if err != nil {
			panic("stage: embedded font: " + err.Error())
		}
		defaultFont = f
	}
	return defaultFont
}
