package treemap

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Style selects how colors are assigned to the siblings at one tree depth.
type Style int

const (
	// StylePalette gives each sibling the palette entry at its position in
	// size-descending order; the merged "Other" entry gets a neutral gray
	// whose lightness matches the palette average.
	StylePalette Style = iota
	// StyleGradient keeps the parent's hue and scales saturation by each
	// sibling's size relative to the largest sibling.
	StyleGradient
	// StyleUniform gives every sibling its parent's color unchanged.
	StyleUniform
)

// String returns the style's configuration name.
func (s Style) String() string {
	switch s {
	case StylePalette:
		return "palette"
	case StyleGradient:
		return "gradient"
	default:
		return "uniform"
	}
}

// ParseStyle converts a configuration name into a Style.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "palette":
		return StylePalette, nil
	case "gradient":
		return StyleGradient, nil
	case "uniform":
		return StyleUniform, nil
	default:
		return 0, fmt.Errorf("invalid color style %q (must be 'palette', 'gradient', or 'uniform')", name)
	}
}

// ParseStyles converts a list of configuration names into Styles.
func ParseStyles(names []string) ([]Style, error) {
	out := make([]Style, 0, len(names))
	for _, n := range names {
		s, err := ParseStyle(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ColorInput carries everything a Style may consult when coloring one sibling.
type ColorInput struct {
	Index    int              // position in size-descending layout order
	Others   bool             // entry aggregates merged small categories
	Relative float64          // size relative to the largest sibling
	Base     colorful.Color   // the parent's assigned color
	Palette  []colorful.Color // first-level palette
}

// Color assigns a color for one sibling according to the style.
func (s Style) Color(in ColorInput) colorful.Color {
	switch s {
	case StylePalette:
		if in.Others {
			return othersColor(in.Palette)
		}
		return in.Palette[in.Index%len(in.Palette)]
	case StyleGradient:
		h, sat, l := in.Base.Hsl()
		return colorful.Hsl(h, sat*in.Relative, l)
	default:
		return in.Base
	}
}

// othersColor is a neutral gray whose lightness equals the palette's average,
// keeping the merged entry visible but unobtrusive next to palette colors.
func othersColor(palette []colorful.Color) colorful.Color {
	if len(palette) == 0 {
		return colorful.Hsl(0, 0, 0.5)
	}
	var sum float64
	for _, c := range palette {
		_, _, l := c.Hsl()
		sum += l
	}
	return colorful.Hsl(0, 0, sum/float64(len(palette)))
}

// Pastel generates n evenly hue-spaced pastel colors.
func Pastel(n int) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = colorful.Hsl(float64(i)*360/float64(n), 0.55, 0.80)
	}
	return out
}
