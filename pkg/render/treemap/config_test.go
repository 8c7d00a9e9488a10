package treemap

import (
	"strings"
	"testing"
)

func TestResolveRequiresPaletteOrCategories(t *testing.T) {
	cfg := DefaultConfig(800, 600)
	if _, err := cfg.resolve(); err == nil {
		t.Error("resolve() without palette or categories should fail")
	}
}

func TestResolveGeneratesPalette(t *testing.T) {
	cfg := DefaultConfig(800, 600)
	cfg.Categories = 4
	s, err := cfg.resolve()
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}
	if got, want := len(s.palette), 4; got != want {
		t.Errorf("palette length = %d, want %d", got, want)
	}
}

func TestResolvePaletteCountMismatch(t *testing.T) {
	cfg := DefaultConfig(800, 600)
	cfg.Palette = []string{"#ff0000", "#00ff00"}
	cfg.Categories = 3
	_, err := cfg.resolve()
	if err == nil {
		t.Fatal("resolve() with mismatched palette should fail")
	}
	if !strings.Contains(err.Error(), "palette") {
		t.Errorf("error %q does not mention the palette", err)
	}
}

func TestResolvePaletteImpliesCount(t *testing.T) {
	cfg := DefaultConfig(800, 600)
	cfg.Palette = []string{"#ff0000", "#00ff00"}
	s, err := cfg.resolve()
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}
	if got, want := len(s.palette), 2; got != want {
		t.Errorf("palette length = %d, want %d", got, want)
	}
}

func TestResolveInvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad style", func(c *Config) { c.Styles = []string{"sparkly"} }},
		{"bad position", func(c *Config) { c.LegendPosition = "center" }},
		{"bad hex", func(c *Config) { c.Palette = []string{"#zzzzzz"} }},
		{"bad text color", func(c *Config) { c.TextColor = "chartreuse" }},
		{"zero canvas", func(c *Config) { c.Width = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(800, 600)
			cfg.Categories = 3
			tt.mutate(&cfg)
			if _, err := cfg.resolve(); err == nil {
				t.Error("resolve() should fail")
			}
		})
	}
}

func TestResolveDerivedDefaults(t *testing.T) {
	cfg := DefaultConfig(800, 600)
	cfg.Categories = 3
	s, err := cfg.resolve()
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}
	if got, want := s.stripSize, (800+600)/8; got != want {
		t.Errorf("strip size = %d, want %d", got, want)
	}
	if got, want := s.swatch, 600/50; got != want {
		t.Errorf("swatch size = %d, want %d", got, want)
	}
	if got, want := s.legendFont, 20; got != want {
		t.Errorf("legend font = %d, want %d", got, want)
	}
	if got, want := s.pos, PositionBottom; got != want {
		t.Errorf("position = %v, want %v", got, want)
	}
}

func TestChildSettings(t *testing.T) {
	cfg := DefaultConfig(800, 600)
	cfg.Categories = 2
	s, err := cfg.resolve()
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	child := s.child(100, 50, s.palette[0])
	if child.width != 100 || child.height != 50 {
		t.Errorf("child canvas = %dx%d, want 100x50", child.width, child.height)
	}
	if got, want := child.lineWidth, s.lineWidth*2/3; got != want {
		t.Errorf("child line width = %d, want %d", got, want)
	}
	if got, want := child.styles[0], StyleGradient; got != want {
		t.Errorf("child style = %v, want %v", got, want)
	}
	if got, want := child.top, s.palette[0]; got != want {
		t.Errorf("child top color = %v, want %v", got, want)
	}

	// Once the style list is exhausted, deeper levels default to uniform.
	deep := child.child(10, 10, child.top).child(5, 5, child.top)
	if got, want := deep.styles[0], StyleUniform; got != want {
		t.Errorf("deep style = %v, want %v", got, want)
	}
}

func TestParsePosition(t *testing.T) {
	for _, name := range []string{"top", "bottom", "left", "right"} {
		p, err := ParsePosition(name)
		if err != nil {
			t.Errorf("ParsePosition(%q) error = %v", name, err)
		}
		if p.String() != name {
			t.Errorf("round trip of %q = %q", name, p.String())
		}
	}
	if _, err := ParsePosition("middle"); err == nil {
		t.Error("ParsePosition(middle) should fail")
	}
}
