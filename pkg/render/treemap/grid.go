package treemap

import (
	"slices"

	"github.com/aliquod/treemapper/pkg/category"
)

// Rect is an axis-aligned rectangle in pixel coordinates, addressed by its
// upper-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// Area returns the rectangle's area in pixels.
func (r Rect) Area() int { return r.W * r.H }

// Grid maps a sibling category's name to its assigned rectangle within one
// layout pass. Grids are recomputed fresh for every pass; entries from a
// previous pass must not be reused.
type Grid map[string]Rect

// Entry is one sibling in a layout pass: just the identity and weight the
// layout needs, detached from the tree so that merge passes can synthesize
// entries without mutating it.
type Entry struct {
	Name   string
	Size   float64
	Others bool
	Node   category.ID // -1 for synthesized entries
}

// sortBySize returns a copy of entries in descending size order. Ties keep
// their original order.
func sortBySize(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		switch {
		case a.Size > b.Size:
			return -1
		case a.Size < b.Size:
			return 1
		default:
			return 0
		}
	})
	return out
}

func totalSize(entries []Entry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Size
	}
	return sum
}

// ComputeGrid partitions a w×h rectangle among the entries so that each
// rectangle's area is proportional to its entry's size. Entries are laid out
// largest first; extents truncate to whole pixels at every step, so a few
// pixels at rectangle edges may remain unassigned.
func ComputeGrid(entries []Entry, w, h int) Grid {
	g := make(Grid, len(entries))
	sorted := sortBySize(entries)
	if len(sorted) == 0 {
		return g
	}
	partition(g, sorted, Rect{X: 0, Y: 0, W: w, H: h})
	return g
}

// partition assigns rectangles within r to entries (already sorted by
// descending size). The largest entry seeds a group that absorbs the next
// largest entries while the strip holding the group would stay too tall or
// too wide relative to its first member; the group is then stacked as one
// strip and the remainder of r is partitioned recursively.
func partition(g Grid, entries []Entry, r Rect) {
	if len(entries) == 1 {
		g[entries[0].Name] = r
		return
	}

	remaining := totalSize(entries)
	n := 1 // entries absorbed into the leading strip

	if r.W > r.H {
		need := int(float64(r.W) * entries[0].Size / remaining)
		firstExtent := float64(r.H)
		for float64(need) < firstExtent && n < len(entries) {
			n++
			groupSum := totalSize(entries[:n])
			need = int(float64(r.W) * groupSum / remaining)
			firstExtent = float64(r.H) * entries[0].Size / groupSum
		}
		stack(g, entries[:n], Rect{X: r.X, Y: r.Y, W: need, H: r.H})
		if n < len(entries) {
			partition(g, entries[n:], Rect{X: r.X + need, Y: r.Y, W: r.W - need, H: r.H})
		}
		return
	}

	need := int(float64(r.H) * entries[0].Size / remaining)
	firstExtent := float64(r.W)
	for float64(need) < firstExtent && n < len(entries) {
		n++
		groupSum := totalSize(entries[:n])
		need = int(float64(r.H) * groupSum / remaining)
		firstExtent = float64(r.W) * entries[0].Size / groupSum
	}
	// Both split branches stack their group with the same routine; the
	// height-major branch therefore spans the full width rather than the
	// group's computed extent.
	stack(g, entries[:n], Rect{X: r.X, Y: r.Y, W: r.W, H: need})
	if n < len(entries) {
		partition(g, entries[n:], Rect{X: r.X, Y: r.Y + need, W: r.W, H: r.H - need})
	}
}

// stack lays out entries top to bottom inside r, each spanning the full width
// with a height proportional to its share of the group total.
func stack(g Grid, entries []Entry, r Rect) {
	group := totalSize(entries)
	y := r.Y
	for _, e := range entries {
		h := int(float64(r.H) * e.Size / group)
		g[e.Name] = Rect{X: r.X, Y: y, W: r.W, H: h}
		y += h
	}
}
