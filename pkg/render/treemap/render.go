package treemap

import (
	"image"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/aliquod/treemapper/pkg/category"
)

// Option configures a render call.
type Option func(*renderer)

// WithFontSource injects a font source, bypassing font discovery. Useful for
// tests and for callers that manage fonts themselves.
func WithFontSource(fs FontSource) Option {
	return func(r *renderer) { r.fonts = fs }
}

// WithLogger attaches a logger for layout-level debug output.
func WithLogger(l *log.Logger) Option {
	return func(r *renderer) { r.logger = l }
}

type renderer struct {
	tree   *category.Tree
	fonts  FontSource
	logger *log.Logger
}

// Render lays out and draws tree as a treemap according to cfg, returning the
// final image with the legend composited at its configured position. All
// configuration errors are reported before any drawing happens.
func Render(tree *category.Tree, cfg Config, opts ...Option) (image.Image, error) {
	s, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	r := &renderer{tree: tree}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	if r.fonts == nil {
		fs, err := LoadFont(cfg.Font)
		if err != nil {
			return nil, err
		}
		r.fonts = fs
	}

	main, legendEntries := r.renderNode(tree.Root(), s)
	if !s.legend || len(legendEntries) == 0 {
		return main, nil
	}

	r.logger.Debugf("Laying out legend: %d entries in strips of %d", len(legendEntries), s.stripLen)
	legendImg := drawLegend(layoutLegend(legendEntries, s, r.fonts), r.fonts)
	return composeLegend(main, legendImg, s), nil
}

// renderNode draws the subtree at id onto its own surface, bottom-up:
// children render first, then paste into the parent canvas. The returned
// entries record each first-level sibling's assigned color for the legend.
func (r *renderer) renderNode(id category.ID, s settings) (image.Image, []LegendEntry) {
	children := r.tree.Children(id)
	if len(children) == 0 {
		return r.drawBox(r.tree.Label(id), s), nil
	}

	entries := make([]Entry, 0, len(children))
	for _, c := range children {
		entries = append(entries, Entry{Name: r.tree.Name(c), Size: r.tree.Size(c), Node: c})
	}
	merged := MergeSmall(entries, s.width, s.height, s.cutoff, OthersName(r.tree.GroupKey(id)))
	grid := ComputeGrid(merged, s.width, s.height)

	if len(merged) < len(entries) {
		r.logger.Debugf("Merged %d small categories under %q", len(entries)-len(merged)+1, r.tree.Name(id))
	}

	// Gradient scaling is relative to the largest original sibling, which may
	// differ from the largest merged entry under an aggressive cutoff. The
	// synthesized entry has no node, so its ratio is computed directly.
	largest := sortBySize(entries)[0].Size

	dc := gg.NewContext(s.width, s.height)
	dc.SetColor(s.top)
	dc.Clear()

	style := s.styles[0]
	legend := make([]LegendEntry, 0, len(merged))
	for i, e := range merged {
		rel := 1.0
		if e.Others {
			if largest > 0 {
				rel = e.Size / largest
			}
		} else {
			rel = r.tree.RelativeProportion(e.Node)
		}
		clr := style.Color(ColorInput{
			Index:    i,
			Others:   e.Others,
			Relative: rel,
			Base:     s.top,
			Palette:  s.palette,
		})
		legend = append(legend, LegendEntry{Label: e.Name, Color: clr})

		rect := grid[e.Name]
		sub := s.child(rect.W, rect.H, clr)
		var img image.Image
		if e.Others {
			img = r.drawBox(r.othersLabel(id, e.Name), sub)
		} else {
			img, _ = r.renderNode(e.Node, sub)
		}
		dc.DrawImage(img, rect.X, rect.Y)
	}

	r.outline(dc, s)
	return dc.Image(), legend
}

// drawBox renders one flat category box: background, fitted label, outline.
func (r *renderer) drawBox(label string, s settings) image.Image {
	dc := gg.NewContext(max(s.width, 1), max(s.height, 1))
	dc.SetColor(s.top)
	dc.Clear()

	text := s.labelFunc(label)
	lines, longest := SplitLines(text, s.width, s.base, r.fonts)
	size := 0
	if longest != "" {
		size = FitFontSize(longest, r.fonts,
			float64(s.width-6*s.lineWidth), float64(s.height-2*s.lineWidth),
			s.base, s.min)
	}

	if size > 0 {
		dc.SetFontFace(r.fonts.Face(size))
		dc.SetColor(s.textColor)
		_, lineH := r.fonts.MeasureString(longest, size)
		startY := float64(s.height)/2 - lineH*float64(len(lines))/2
		for i, line := range lines {
			y := startY + lineH*float64(i) + lineH/2
			dc.DrawStringAnchored(line, float64(s.width)/2, y, 0.5, 0.5)
		}
	}

	r.outline(dc, s)
	return dc.Image()
}

// outline strokes the box border at the configured line width.
func (r *renderer) outline(dc *gg.Context, s settings) {
	dc.SetColor(s.lineColor)
	dc.SetLineWidth(float64(s.lineWidth))
	dc.DrawRectangle(0, 0, float64(s.width), float64(s.height))
	dc.Stroke()
}

// othersLabel derives the breadcrumb label for a synthesized aggregate entry,
// following the same ancestry rule as real categories.
func (r *renderer) othersLabel(parent category.ID, name string) string {
	if r.tree.IsRoot(parent) {
		return name
	}
	return r.tree.Label(parent) + " -> " + name
}

// composeLegend pastes the main map and the legend onto one canvas according
// to the configured legend position.
func composeLegend(main, legend image.Image, s settings) image.Image {
	lw, lh := legend.Bounds().Dx(), legend.Bounds().Dy()

	var canvas *image.NRGBA
	switch s.pos {
	case PositionTop:
		canvas = imaging.New(s.width, s.height+lh, s.top)
		canvas = imaging.Paste(canvas, legend, image.Pt(0, 0))
		canvas = imaging.Paste(canvas, main, image.Pt(0, lh))
	case PositionBottom:
		canvas = imaging.New(s.width, s.height+lh, s.top)
		canvas = imaging.Paste(canvas, main, image.Pt(0, 0))
		canvas = imaging.Paste(canvas, legend, image.Pt(0, s.height))
	case PositionLeft:
		canvas = imaging.New(s.width+lw, s.height, s.top)
		canvas = imaging.Paste(canvas, legend, image.Pt(0, 0))
		canvas = imaging.Paste(canvas, main, image.Pt(lw, 0))
	default: // PositionRight
		canvas = imaging.New(s.width+lw, s.height, s.top)
		canvas = imaging.Paste(canvas, main, image.Pt(0, 0))
		canvas = imaging.Paste(canvas, legend, image.Pt(s.width, 0))
	}
	return canvas
}
