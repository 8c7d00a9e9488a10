package treemap

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mitchellh/go-wordwrap"
)

// LegendEntry pairs a first-level category's display name with its assigned
// color, in layout order.
type LegendEntry struct {
	Label string
	Color colorful.Color
}

// entryBox is one swatch+label cell: its wrapped text lines and outer pixel
// dimensions (text plus swatch gutter).
type entryBox struct {
	lines []string
	w, h  int
}

// chunkEntries splits entries into strips of at most n members.
func chunkEntries(entries []LegendEntry, n int) [][]LegendEntry {
	var out [][]LegendEntry
	for len(entries) > n {
		out = append(out, entries[:n])
		entries = entries[n:]
	}
	if len(entries) > 0 {
		out = append(out, entries)
	}
	return out
}

// measureEntry wraps label to the usable text width and computes the cell
// box. Wrapping is by character count: the limit is how many "H" glyphs fit
// the usable width at the legend font size.
func measureEntry(label string, usableWidth, swatch, fontSize int, m Measurer) entryBox {
	textWidth := usableWidth - 2*swatch
	charWidth, _ := m.MeasureString("H", fontSize)
	limit := 1
	if charWidth > 0 && float64(textWidth) > charWidth {
		limit = int(float64(textWidth) / charWidth)
	}

	lines := strings.Split(wordwrap.WrapString(label, uint(limit)), "\n")
	var maxW, totalH float64
	for _, l := range lines {
		w, h := m.MeasureString(l, fontSize)
		if w > maxW {
			maxW = w
		}
		totalH += h
	}
	return entryBox{lines: lines, w: int(maxW) + 2*swatch, h: int(totalH)}
}

// stripPlacement positions every cell of one strip.
type stripPlacement struct {
	at     []image.Point
	margin int
}

// placeRow distributes the strip's leftover width evenly between cells and
// centers each cell vertically within the strip height.
func placeRow(boxes []entryBox, stripWidth, stripHeight int) stripPlacement {
	var content int
	for _, b := range boxes {
		content += b.w
	}
	margin := (stripWidth - content) / (len(boxes) + 1)

	x := margin
	at := make([]image.Point, len(boxes))
	for i, b := range boxes {
		at[i] = image.Pt(x, (stripHeight-b.h)/2)
		x += margin + b.w
	}
	return stripPlacement{at: at, margin: margin}
}

// placeColumn distributes the strip's leftover height evenly between cells,
// with a shared left margin centering the widest cell.
func placeColumn(boxes []entryBox, stripWidth, stripHeight int) stripPlacement {
	var content int
	for _, b := range boxes {
		content += b.h
	}
	margin := (stripHeight - content) / (len(boxes) + 2)

	left := stripWidth
	for _, b := range boxes {
		if l := (stripWidth - b.w) / 2; l < left {
			left = l
		}
	}

	y := margin
	at := make([]image.Point, len(boxes))
	for i, b := range boxes {
		at[i] = image.Pt(left, y)
		y += margin + b.h
	}
	return stripPlacement{at: at, margin: margin}
}

// legendLayout is the fully measured legend: strips of cells with their
// placements, ready to draw.
type legendLayout struct {
	strips [][]LegendEntry
	boxes  [][]entryBox
	places []stripPlacement
	s      settings
}

// layoutLegend measures and places all legend entries. Entries chunk into
// strips of s.stripLen; strips run as rows for top/bottom legends and as
// columns for left/right ones.
func layoutLegend(entries []LegendEntry, s settings, m Measurer) legendLayout {
	strips := chunkEntries(entries, s.stripLen)

	usable := s.stripSize
	if s.pos.horizontal() {
		usable = s.width / min(len(entries), s.stripLen)
	}

	l := legendLayout{strips: strips, s: s}
	for _, strip := range strips {
		boxes := make([]entryBox, len(strip))
		for i, e := range strip {
			boxes[i] = measureEntry(e.Label, usable, s.swatch, s.legendFont, m)
		}
		var p stripPlacement
		if s.pos.horizontal() {
			p = placeRow(boxes, s.width, s.stripSize)
		} else {
			p = placeColumn(boxes, s.stripSize, s.height)
		}
		l.boxes = append(l.boxes, boxes)
		l.places = append(l.places, p)
	}
	return l
}

// drawLegend renders the laid-out legend onto one image with the configured
// background, compositing the transparent strips with their inter-strip
// margins.
func drawLegend(l legendLayout, fonts FontSource) image.Image {
	strips := make([]image.Image, len(l.strips))
	for i := range l.strips {
		strips[i] = drawStrip(l.strips[i], l.boxes[i], l.places[i], l.s, fonts)
	}
	if l.s.pos.horizontal() {
		return pasteRows(strips, l.s)
	}
	return pasteColumns(strips, l.s)
}

// drawStrip renders one row/column of swatch+label cells on a transparent
// surface.
func drawStrip(entries []LegendEntry, boxes []entryBox, p stripPlacement, s settings, fonts FontSource) image.Image {
	var dc *gg.Context
	if s.pos.horizontal() {
		dc = gg.NewContext(s.width, s.stripSize)
	} else {
		dc = gg.NewContext(s.stripSize, s.height)
	}

	for i, e := range entries {
		cell := drawCell(e, boxes[i], s, fonts)
		dc.DrawImage(cell, p.at[i].X, p.at[i].Y)
	}
	return dc.Image()
}

// drawCell renders one swatch and its wrapped label, both in the entry's
// color, vertically centered in the cell.
func drawCell(e LegendEntry, box entryBox, s settings, fonts FontSource) image.Image {
	dc := gg.NewContext(max(box.w, 1), max(box.h, 1))
	dc.SetColor(e.Color)

	top := float64(box.h-s.swatch) / 2
	dc.DrawRectangle(0, top, float64(s.swatch), float64(s.swatch))
	dc.Fill()

	if s.legendFont > 0 {
		dc.SetFontFace(fonts.Face(s.legendFont))
		_, lineH := fonts.MeasureString("H", s.legendFont)
		startY := float64(box.h)/2 - lineH*float64(len(box.lines))/2
		for i, line := range box.lines {
			y := startY + lineH*float64(i) + lineH/2
			dc.DrawStringAnchored(line, float64(2*s.swatch), y, 0, 0.5)
		}
	}
	return dc.Image()
}

// pasteRows stacks row strips vertically with the configured inter-strip
// margin over the top-level background color.
func pasteRows(strips []image.Image, s settings) image.Image {
	var totalH, maxW int
	for _, st := range strips {
		totalH += st.Bounds().Dy()
		if w := st.Bounds().Dx(); w > maxW {
			maxW = w
		}
	}
	totalH += s.stripMargin * (1 + len(strips))

	canvas := imaging.New(max(maxW, 1), max(totalH, 1), s.top)
	y := s.stripMargin
	for _, st := range strips {
		canvas = imaging.Overlay(canvas, st, image.Pt(0, y), 1.0)
		y += st.Bounds().Dy() + 2*s.stripMargin
	}
	return canvas
}

// pasteColumns stacks column strips horizontally.
func pasteColumns(strips []image.Image, s settings) image.Image {
	var totalW, maxH int
	for _, st := range strips {
		totalW += st.Bounds().Dx()
		if h := st.Bounds().Dy(); h > maxH {
			maxH = h
		}
	}
	totalW += s.stripMargin * len(strips)

	canvas := imaging.New(max(totalW, 1), max(maxH, 1), s.top)
	x := 0
	for _, st := range strips {
		canvas = imaging.Overlay(canvas, st, image.Pt(x, 0), 1.0)
		x += st.Bounds().Dx() + s.stripMargin
	}
	return canvas
}
