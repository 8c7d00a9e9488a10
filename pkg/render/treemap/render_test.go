package treemap

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/aliquod/treemapper/pkg/category"
)

// fixedFonts measures like unitMeasurer but hands out a real bitmap face so
// the drawing path exercises text output without loading font files.
type fixedFonts struct{}

func (fixedFonts) Face(size int) font.Face { return basicfont.Face7x13 }

func (fixedFonts) MeasureString(s string, size int) (w, h float64) {
	return float64(len(s) * size), float64(size)
}

func flatTree(t *testing.T) *category.Tree {
	t.Helper()
	tree := category.New("root")
	for _, c := range []struct {
		name string
		size float64
	}{{"alpha", 50}, {"beta", 30}, {"gamma", 20}} {
		if _, err := tree.AddChild(tree.Root(), c.name, c.size); err != nil {
			t.Fatalf("AddChild(%q) error = %v", c.name, err)
		}
	}
	return tree
}

func TestRenderWithoutLegend(t *testing.T) {
	cfg := DefaultConfig(100, 60)
	cfg.Categories = 3
	cfg.Legend = false

	img, err := Render(flatTree(t), cfg, WithFontSource(fixedFonts{}))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := img.Bounds(); got.Dx() != 100 || got.Dy() != 60 {
		t.Errorf("image size = %dx%d, want 100x60", got.Dx(), got.Dy())
	}
}

func TestRenderLegendPositions(t *testing.T) {
	// Default strip size for a 100x60 canvas is (100+60)/8 = 20, and three
	// entries fit one strip, so the legend adds 20px on its axis.
	tests := []struct {
		pos          string
		wantW, wantH int
	}{
		{"bottom", 100, 80},
		{"top", 100, 80},
		{"left", 120, 60},
		{"right", 120, 60},
	}
	for _, tt := range tests {
		t.Run(tt.pos, func(t *testing.T) {
			cfg := DefaultConfig(100, 60)
			cfg.Categories = 3
			cfg.LegendPosition = tt.pos

			img, err := Render(flatTree(t), cfg, WithFontSource(fixedFonts{}))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got := img.Bounds(); got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("image size = %dx%d, want %dx%d",
					got.Dx(), got.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRenderLeafOnlyTreeSkipsLegend(t *testing.T) {
	tree := category.New("root")
	cfg := DefaultConfig(100, 60)
	cfg.Categories = 1

	img, err := Render(tree, cfg, WithFontSource(fixedFonts{}))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := img.Bounds(); got.Dx() != 100 || got.Dy() != 60 {
		t.Errorf("image size = %dx%d, want 100x60", got.Dx(), got.Dy())
	}
}

func TestRenderNestedTree(t *testing.T) {
	tree := category.New("root")
	a, err := tree.AddChild(tree.Root(), "alpha", 60)
	if err != nil {
		t.Fatalf("AddChild() error = %v", err)
	}
	if _, err := tree.AddChild(tree.Root(), "beta", 40); err != nil {
		t.Fatalf("AddChild() error = %v", err)
	}
	for _, c := range []struct {
		name string
		size float64
	}{{"one", 40}, {"two", 20}} {
		if _, err := tree.AddChild(a, c.name, c.size); err != nil {
			t.Fatalf("AddChild(%q) error = %v", c.name, err)
		}
	}

	cfg := DefaultConfig(200, 120)
	cfg.Categories = 2
	cfg.Legend = false

	img, err := Render(tree, cfg, WithFontSource(fixedFonts{}))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := img.Bounds(); got.Dx() != 200 || got.Dy() != 120 {
		t.Errorf("image size = %dx%d, want 200x120", got.Dx(), got.Dy())
	}
}

func TestRenderInvalidConfig(t *testing.T) {
	cfg := DefaultConfig(100, 60)
	if _, err := Render(flatTree(t), cfg, WithFontSource(fixedFonts{})); err == nil {
		t.Error("Render() without palette or categories should fail")
	}
}

func TestRenderLabelFunc(t *testing.T) {
	cfg := DefaultConfig(400, 300)
	cfg.Categories = 3
	cfg.Legend = false
	var seen []string
	cfg.LabelFunc = func(label string) string {
		seen = append(seen, label)
		return label
	}

	if _, err := Render(flatTree(t), cfg, WithFontSource(fixedFonts{})); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(seen) == 0 {
		t.Fatal("LabelFunc was never called")
	}
	found := false
	for _, l := range seen {
		if l == "alpha" {
			found = true
		}
	}
	if !found {
		t.Errorf("labels %q do not include alpha", seen)
	}
}

func TestRenderGradientScalesWithSiblingRatio(t *testing.T) {
	tr := flatTree(t)
	cfg := DefaultConfig(100, 60)
	cfg.Categories = 3
	cfg.Legend = false
	cfg.TopColor = "#ff0000"
	cfg.Styles = []string{"gradient"}

	img, err := Render(tr, cfg, WithFontSource(fixedFonts{}))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	base, err := colorful.Hex("#ff0000")
	if err != nil {
		t.Fatalf("Hex() error = %v", err)
	}
	h, sat, l := base.Hsl()

	// Sample points inside each box, clear of the outlines: alpha occupies
	// 80x37 at the origin and beta the 80x22 band below it.
	tests := []struct {
		name string
		x, y int
	}{
		{"alpha", 40, 18},
		{"beta", 40, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tr.Child(tr.Root(), tt.name)
			if err != nil {
				t.Fatalf("Child(%q) error = %v", tt.name, err)
			}
			want := colorful.Hsl(h, sat*tr.RelativeProportion(id), l)

			wr, wg, wb, _ := want.RGBA()
			pr, pg, pb, _ := img.At(tt.x, tt.y).RGBA()
			if !nearChannel(pr, wr) || !nearChannel(pg, wg) || !nearChannel(pb, wb) {
				t.Errorf("pixel (%d,%d) = #%02x%02x%02x, want #%02x%02x%02x",
					tt.x, tt.y, pr>>8, pg>>8, pb>>8, wr>>8, wg>>8, wb>>8)
			}
		})
	}
}

// nearChannel compares 16-bit color channels at 8-bit precision with one
// count of rounding slack.
func nearChannel(a, b uint32) bool {
	d := int(a>>8) - int(b>>8)
	return d >= -1 && d <= 1
}
