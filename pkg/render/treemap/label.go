package treemap

import "strings"

// referenceSize is the fixed small size at which candidate lines are compared
// to pick the longest one.
const referenceSize = 10

// Measurer reports the rendered dimensions of a single line of text at an
// integer font size.
type Measurer interface {
	MeasureString(s string, size int) (w, h float64)
}

// SplitLines greedily packs the words of text into lines no wider than
// boxWidth, measuring words at baseSize. A word that overflows the limit
// closes its line rather than moving to the next. It returns the lines and
// the longest line by measured width, which drives the font-size search.
// Empty text yields no lines and an empty longest line.
func SplitLines(text string, boxWidth, baseSize int, m Measurer) (lines []string, longest string) {
	words := strings.Fields(text)
	var line []string
	var lineWidth float64
	for _, w := range words {
		line = append(line, w)
		ww, _ := m.MeasureString(w, baseSize)
		lineWidth += ww
		if lineWidth > float64(boxWidth) {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}

	best := -1.0
	for _, l := range lines {
		w, _ := m.MeasureString(l, referenceSize)
		if w > best {
			best, longest = w, l
		}
	}
	return lines, longest
}

// FitFontSize finds the largest font size at which line fits a maxW×maxH box,
// growing from size 1 one unit at a time and capped at maxSize (0 means
// uncapped). If the best size falls below minSize the label is illegible and
// 0 is returned, signaling that it should be suppressed entirely.
func FitFontSize(line string, m Measurer, maxW, maxH float64, maxSize, minSize int) int {
	size := 1
	for {
		w, h := m.MeasureString(line, size)
		if w >= maxW || h >= maxH {
			break
		}
		if maxSize > 0 && size > maxSize {
			break
		}
		size++
	}
	if size-1 >= minSize {
		return size - 1
	}
	return 0
}
