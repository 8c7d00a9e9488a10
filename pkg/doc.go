// Package pkg provides the core libraries for Treemapper treemap rendering.
//
// # Overview
//
// Treemapper turns tabular data into nested treemaps: rows are grouped by one
// or more columns, category weights become proportional rectangles, and small
// categories fold into a synthesized "Other" box. The pkg directory is
// organized into four areas:
//
//  1. [dataset] - Tabular records (CSV ingestion, grouping, numeric sums)
//  2. [category] - The category tree built from grouped records
//  3. [render/treemap] - Layout, color, label, and legend engine
//  4. [pipeline] - Orchestration (load → build → render → encode)
//
// # Architecture
//
// The typical data flow through Treemapper:
//
//	CSV file
//	     ↓
//	[dataset] package (rows and columns)
//	     ↓
//	[category] package (grouped tree with weights)
//	     ↓
//	[render/treemap] package (layout + drawing)
//	     ↓
//	PNG output
//
// # Quick Start
//
// Group a table and render it:
//
//	import (
//	    "github.com/aliquod/treemapper/pkg/category"
//	    "github.com/aliquod/treemapper/pkg/dataset"
//	    "github.com/aliquod/treemapper/pkg/render/treemap"
//	)
//
//	// 1. Load records
//	tbl, _ := dataset.ReadCSV(file)
//
//	// 2. Group into a category tree
//	tree, _ := category.FromTable("World", tbl, []string{"continent", "country"}, "population")
//
//	// 3. Render
//	cfg := treemap.DefaultConfig(1600, 900)
//	cfg.Categories = 6
//	img, _ := treemap.Render(tree, cfg)
//
// Or run the whole pipeline in one call:
//
//	runner := pipeline.NewRunner(logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Input:   "population.csv",
//	    GroupBy: []string{"continent", "country"},
//	    Value:   "population",
//	})
//
// # Main Packages
//
// [dataset] - CSV ingestion and grouping. A Table is a header plus string
// records; GroupBy partitions rows by a column's values and SumFloat folds a
// numeric column.
//
// [category] - The category hierarchy as an arena of nodes addressed by
// stable integer IDs. Carries per-node weights, breadcrumb labels, and the
// group key each level was split by.
//
// [render/treemap] - The drawing engine: recursive rectangle partitioning,
// small-category cutoff and merging, per-depth color styles (palette,
// gradient, uniform), adaptive label fitting, and legend layout.
//
// [pipeline] - Complete load → build → render → encode pipeline used by the
// CLI. Ensures consistent behavior across all entry points.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/render/...      # Rendering engine only
//
// [dataset]: https://pkg.go.dev/github.com/aliquod/treemapper/pkg/dataset
// [category]: https://pkg.go.dev/github.com/aliquod/treemapper/pkg/category
// [render/treemap]: https://pkg.go.dev/github.com/aliquod/treemapper/pkg/render/treemap
// [pipeline]: https://pkg.go.dev/github.com/aliquod/treemapper/pkg/pipeline
package pkg
