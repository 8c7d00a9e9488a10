// Package pipeline provides the core rendering pipeline for Treemapper.
//
// This package implements the complete load → group → render → encode pipeline
// shared by all entry points, so the CLI and library callers behave the same.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read tabular records from a CSV file
//  2. Build: Group records into a category tree with summed weights
//  3. Render: Lay out and draw the treemap with its legend
//  4. Encode: Serialize the image as PNG
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:   "population.csv",
//	    GroupBy: []string{"continent", "country"},
//	    Value:   "population",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.png", result.PNG, 0o644)
package pipeline

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aliquod/treemapper/pkg/render/treemap"
)

// Default canvas and font values shared by CLI and library callers.
const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 1600

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 900

	// DefaultFont is the font resolved through the system font directories
	// when no font is configured.
	DefaultFont = "DejaVuSans.ttf"
)

// ErrNoGroupColumns is returned when Options names no columns to group by.
var ErrNoGroupColumns = errors.New("at least one group-by column is required")

// ErrNoInput is returned when Options names no input file.
var ErrNoInput = errors.New("an input file is required")

// Options contains all configuration for one pipeline run. The struct is
// TOML-serializable so a whole run can be described in a config file.
type Options struct {
	// Input is the path of the CSV file to read.
	Input string `toml:"input"`

	// GroupBy lists the columns that define the category hierarchy, outermost
	// first. At least one is required.
	GroupBy []string `toml:"group_by"`

	// Value names the numeric column summed into category sizes. Empty counts
	// rows instead.
	Value string `toml:"value"`

	// RootName labels the root category. Empty derives it from the input
	// file name.
	RootName string `toml:"root_name"`

	// Render holds the canvas, color, label, and legend settings.
	Render treemap.Config `toml:"render"`

	// Runtime options (not serialized)
	Logger *log.Logger        `toml:"-"`
	Fonts  treemap.FontSource `toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return ErrNoInput
	}
	if len(o.GroupBy) == 0 {
		return ErrNoGroupColumns
	}

	if o.RootName == "" {
		base := filepath.Base(o.Input)
		o.RootName = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if o.Render.Width == 0 {
		o.Render.Width = DefaultWidth
	}
	if o.Render.Height == 0 {
		o.Render.Height = DefaultHeight
	}
	if o.Render.Font == "" {
		o.Render.Font = DefaultFont
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Categories int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}
