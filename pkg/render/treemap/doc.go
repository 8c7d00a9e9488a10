// Package treemap renders a weighted category hierarchy as a nested
// rectangular treemap.
//
// # Overview
//
// Each category occupies a rectangle whose area is proportional to its weight
// within its parent; children subdivide their parent's rectangle recursively.
// The package implements the full pipeline from a [category.Tree] to a single
// raster image:
//
//  1. Grid layout: [ComputeGrid] recursively partitions a rectangle among
//     siblings, keeping sub-rectangles reasonably square.
//  2. Cutoff & merge: categories too small to render legibly are aggregated
//     into a synthetic "Other ..." entry before the final layout pass.
//  3. Colors: a per-depth [Style] (palette, gradient, or uniform) assigns each
//     category a color via go-colorful.
//  4. Labels: [SplitLines] and [FitFontSize] wrap and size label text so it
//     fits its box, suppressing labels that would be illegible.
//  5. Legend: first-level categories are laid out as swatch+label strips and
//     composited next to the map.
//
// Drawing uses fogleman/gg contexts composited bottom-up (children before
// parents) with disintegration/imaging; fonts are discovered with
// flopp/go-findfont and measured through golang.org/x/image/font.
//
// # Usage
//
//	tree, _ := category.FromTable("sales", tbl, []string{"region"}, "revenue")
//	cfg := treemap.DefaultConfig(1200, 800)
//	cfg.Categories = len(tree.Children(tree.Root()))
//	img, err := treemap.Render(tree, cfg)
package treemap
