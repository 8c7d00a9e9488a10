package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aliquod/treemapper/pkg/category"
	"github.com/aliquod/treemapper/pkg/dataset"
	"github.com/aliquod/treemapper/pkg/render/treemap"
)

// Runner executes the pipeline. It is stateless except for its logger;
// multiple goroutines can safely share one Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to the default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the grouped category hierarchy.
	Tree *category.Tree

	// Image is the rendered treemap with its legend.
	Image image.Image

	// PNG is the encoded output.
	PNG []byte

	// Stats contains timing and size information.
	Stats Stats
}

// Execute runs the complete load → build → render → encode pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	loadStart := time.Now()
	tbl, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.Rows = len(tbl.Records)
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded records",
		"input", opts.Input,
		"rows", len(tbl.Records),
		"duration", result.Stats.LoadTime)

	buildStart := time.Now()
	tree, err := r.Build(ctx, tbl, &opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Tree = tree
	result.Stats.Categories = len(tree.Children(tree.Root()))
	result.Stats.BuildTime = time.Since(buildStart)

	r.Logger.Info("built category tree",
		"categories", result.Stats.Categories,
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	img, err := r.Render(ctx, tree, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Image = img
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered treemap",
		"size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()),
		"duration", result.Stats.RenderTime)

	data, err := EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.PNG = data

	return result, nil
}

// Load reads the input CSV into a table.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(opts.Input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.ReadCSV(f)
}

// Build groups the table into a category tree. When neither a palette nor a
// category count is configured, the count defaults to the number of
// first-level categories so rendering works out of the box.
func (r *Runner) Build(ctx context.Context, tbl *dataset.Table, opts *Options) (*category.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	tree, err := category.FromTable(opts.RootName, tbl, opts.GroupBy, opts.Value)
	if err != nil {
		return nil, err
	}

	if len(opts.Render.Palette) == 0 && opts.Render.Categories == 0 {
		opts.Render.Categories = len(tree.Children(tree.Root()))
	}
	return tree, nil
}

// Render lays out and draws the tree according to the render settings.
func (r *Runner) Render(ctx context.Context, tree *category.Tree, opts Options) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	renderOpts := []treemap.Option{treemap.WithLogger(opts.Logger)}
	if opts.Fonts != nil {
		renderOpts = append(renderOpts, treemap.WithFontSource(opts.Fonts))
	}
	return treemap.Render(tree, opts.Render, renderOpts...)
}

// EncodePNG serializes the rendered image.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
