package treemap

import (
	"errors"
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Position places the legend relative to the main map.
type Position int

const (
	PositionBottom Position = iota
	PositionTop
	PositionLeft
	PositionRight
)

// String returns the position's configuration name.
func (p Position) String() string {
	switch p {
	case PositionTop:
		return "top"
	case PositionLeft:
		return "left"
	case PositionRight:
		return "right"
	default:
		return "bottom"
	}
}

// ParsePosition converts a configuration name into a Position.
func ParsePosition(name string) (Position, error) {
	switch name {
	case "top":
		return PositionTop, nil
	case "bottom":
		return PositionBottom, nil
	case "left":
		return PositionLeft, nil
	case "right":
		return PositionRight, nil
	default:
		return 0, fmt.Errorf("%q is not a valid legend position", name)
	}
}

// horizontal reports whether legend strips run as rows (top/bottom) rather
// than columns (left/right).
func (p Position) horizontal() bool {
	return p == PositionTop || p == PositionBottom
}

// Config holds all options for one render call. Colors are hex strings
// ("#rrggbb") or the names "white"/"black", keeping the struct friendly to
// flags and TOML. Exactly one of Palette and Categories must be set unless
// both agree; see resolve.
type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`

	Font         string `toml:"font"`
	BaseFontSize int    `toml:"base_font_size"`
	MinFontSize  int    `toml:"min_font_size"`

	TextColor string `toml:"text_color"`
	LineWidth int    `toml:"line_width"`
	LineColor string `toml:"line_color"`
	TopColor  string `toml:"top_color"`

	// Cutoff is the proportion-of-parent below which siblings merge into the
	// "Other ..." category. Nil auto-detects from the first degenerate
	// rectangle.
	Cutoff *float64 `toml:"cutoff"`

	Palette    []string `toml:"palette"`
	Categories int      `toml:"categories"`
	Styles     []string `toml:"styles"`

	Legend         bool   `toml:"legend"`
	LegendPosition string `toml:"legend_position"`
	LegendFontSize int    `toml:"legend_font_size"`
	SwatchSize     int    `toml:"swatch_size"`
	StripSize      int    `toml:"strip_size"`
	StripLength    int    `toml:"strip_length"`
	StripMargin    int    `toml:"strip_margin"`

	// LabelFunc maps a category's breadcrumb label to its display text.
	// Nil renders labels unchanged.
	LabelFunc func(string) string `toml:"-"`
}

// DefaultConfig returns a Config for a width×height canvas with the standard
// defaults filled in. Callers still must set Palette or Categories.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:          width,
		Height:         height,
		Font:           "DejaVuSans.ttf",
		BaseFontSize:   20,
		MinFontSize:    15,
		TextColor:      "black",
		LineWidth:      10,
		LineColor:      "black",
		TopColor:       "white",
		Styles:         []string{"palette", "gradient", "uniform"},
		Legend:         true,
		LegendPosition: "bottom",
		StripLength:    5,
	}
}

// settings is the resolved, immutable form of a Config used during one render
// call. Child calls derive new settings values rather than mutating shared
// state.
type settings struct {
	width, height int
	base, min     int
	textColor     color.Color
	lineWidth     int
	lineColor     color.Color
	cutoff        *float64
	palette       []colorful.Color
	styles        []Style
	top           colorful.Color
	legend        bool
	pos           Position
	legendFont    int
	swatch        int
	stripSize     int
	stripLen      int
	stripMargin   int
	labelFunc     func(string) string
}

// resolve validates cfg and computes derived defaults. All configuration
// errors surface here, before any drawing happens.
func (c Config) resolve() (settings, error) {
	var s settings
	if c.Width <= 0 || c.Height <= 0 {
		return s, fmt.Errorf("canvas size %dx%d is not positive", c.Width, c.Height)
	}

	palette, err := resolvePalette(c.Palette, c.Categories)
	if err != nil {
		return s, err
	}

	styleNames := c.Styles
	if len(styleNames) == 0 {
		styleNames = []string{"palette", "gradient", "uniform"}
	}
	styles, err := ParseStyles(styleNames)
	if err != nil {
		return s, err
	}

	pos := PositionBottom
	if c.LegendPosition != "" {
		if pos, err = ParsePosition(c.LegendPosition); err != nil {
			return s, err
		}
	}

	textColor, err := parseColor(c.TextColor, "black")
	if err != nil {
		return s, err
	}
	lineColor, err := parseColor(c.LineColor, "black")
	if err != nil {
		return s, err
	}
	top, err := parseColor(c.TopColor, "white")
	if err != nil {
		return s, err
	}

	s = settings{
		width:       c.Width,
		height:      c.Height,
		base:        defaulted(c.BaseFontSize, 20),
		min:         defaulted(c.MinFontSize, 15),
		textColor:   textColor,
		lineWidth:   defaulted(c.LineWidth, 10),
		lineColor:   lineColor,
		cutoff:      c.Cutoff,
		palette:     palette,
		styles:      styles,
		top:         top,
		legend:      c.Legend,
		pos:         pos,
		legendFont:  defaulted(c.LegendFontSize, defaulted(c.BaseFontSize, 20)),
		swatch:      defaulted(c.SwatchSize, min(c.Width, c.Height)/50),
		stripSize:   defaulted(c.StripSize, (c.Width+c.Height)/8),
		stripLen:    defaulted(c.StripLength, 5),
		stripMargin: c.StripMargin,
		labelFunc:   c.LabelFunc,
	}
	if s.labelFunc == nil {
		s.labelFunc = func(label string) string { return label }
	}
	return s, nil
}

// child derives the settings for one sub-rectangle: the child's canvas size
// and assigned color, a thinner outline, and the style list advanced by one
// depth (defaulting to uniform once exhausted).
func (s settings) child(w, h int, top colorful.Color) settings {
	s.width, s.height = w, h
	s.lineWidth = s.lineWidth * 2 / 3
	s.top = top
	if len(s.styles) > 1 {
		s.styles = s.styles[1:]
	} else {
		s.styles = []Style{StyleUniform}
	}
	return s
}

// resolvePalette enforces the palette/category-count constraint: at least one
// must be given, and when both are, they must agree.
func resolvePalette(hexes []string, count int) ([]colorful.Color, error) {
	if len(hexes) == 0 {
		if count <= 0 {
			return nil, errors.New("provide at least one of palette and categories")
		}
		return Pastel(count), nil
	}
	if count != 0 && count != len(hexes) {
		return nil, fmt.Errorf("categories (%d) should equal the palette length (%d)", count, len(hexes))
	}
	palette := make([]colorful.Color, 0, len(hexes))
	for _, hx := range hexes {
		c, err := parseColor(hx, "")
		if err != nil {
			return nil, err
		}
		palette = append(palette, c)
	}
	return palette, nil
}

// parseColor accepts "#rrggbb" hex and the two names the original accepts in
// practice. Empty input falls back to fallback.
func parseColor(s, fallback string) (colorful.Color, error) {
	if s == "" {
		s = fallback
	}
	switch s {
	case "white":
		return colorful.Color{R: 1, G: 1, B: 1}, nil
	case "black":
		return colorful.Color{}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

func defaulted(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
