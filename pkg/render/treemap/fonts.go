package treemap

import (
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// FontSource provides text measurement and drawable faces at integer pixel
// sizes. Faces must never be requested at size zero; callers suppress labels
// before measurement when the fitted size is zero.
type FontSource interface {
	Measurer
	Face(size int) font.Face
}

// TrueTypeSource is a FontSource backed by one parsed TrueType font, caching
// one face per requested size. It is not safe for concurrent use.
type TrueTypeSource struct {
	font  *truetype.Font
	faces map[int]font.Face
}

// LoadFont loads a TrueType font from a file path, or resolves name through
// the system font directories when no such file exists.
func LoadFont(name string) (*TrueTypeSource, error) {
	path := name
	if _, err := os.Stat(path); err != nil {
		found, ferr := findfont.Find(name)
		if ferr != nil {
			return nil, fmt.Errorf("locate font %q: %w", name, ferr)
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %q: %w", path, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", path, err)
	}
	return &TrueTypeSource{font: f, faces: make(map[int]font.Face)}, nil
}

// Face returns a cached face at the given size.
func (t *TrueTypeSource) Face(size int) font.Face {
	if size < 1 {
		size = 1
	}
	if f, ok := t.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(t.font, &truetype.Options{Size: float64(size), DPI: 72})
	t.faces[size] = f
	return f
}

// MeasureString returns the advance width and line height of s at size.
func (t *TrueTypeSource) MeasureString(s string, size int) (w, h float64) {
	face := t.Face(size)
	adv := font.MeasureString(face, s)
	m := face.Metrics()
	return float64(adv) / 64, float64(m.Ascent+m.Descent) / 64
}
