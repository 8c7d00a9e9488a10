package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/aliquod/treemapper/pkg/pipeline"
	"github.com/aliquod/treemapper/pkg/render/treemap"
)

// newRenderCmd creates the render command for drawing treemap PNGs.
//
// Option precedence, lowest to highest: built-in defaults, the TOML config
// file given with --config, then any flag set on the command line.
func newRenderCmd() *cobra.Command {
	var (
		f          pipeline.Options
		output     string
		configPath string
		cutoff     float64
	)
	f.Render = treemap.DefaultConfig(pipeline.DefaultWidth, pipeline.DefaultHeight)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a CSV dataset as a treemap PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Render: treemap.DefaultConfig(pipeline.DefaultWidth, pipeline.DefaultHeight)}
			if configPath != "" {
				if _, err := toml.DecodeFile(configPath, &opts); err != nil {
					return fmt.Errorf("read config %s: %w", configPath, err)
				}
			}
			applyFlagOverrides(cmd, &opts, f)
			if cmd.Flags().Changed("cutoff") {
				opts.Render.Cutoff = &cutoff
			}
			opts.Input = args[0]
			return runRender(cmd.Context(), output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with .png)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML file with render settings")

	cmd.Flags().StringSliceVarP(&f.GroupBy, "group-by", "g", nil, "column(s) to group by, outermost first")
	cmd.Flags().StringVar(&f.Value, "value", "", "numeric column summed into sizes (default: row count)")
	cmd.Flags().StringVar(&f.RootName, "root-name", "", "label for the root category (default: input name)")

	cmd.Flags().IntVar(&f.Render.Width, "width", f.Render.Width, "canvas width in pixels")
	cmd.Flags().IntVar(&f.Render.Height, "height", f.Render.Height, "canvas height in pixels")
	cmd.Flags().StringVar(&f.Render.Font, "font", f.Render.Font, "label font file name or path")
	cmd.Flags().IntVar(&f.Render.BaseFontSize, "base-font-size", f.Render.BaseFontSize, "font size labels are wrapped at")
	cmd.Flags().IntVar(&f.Render.MinFontSize, "min-font-size", f.Render.MinFontSize, "smallest legible font size; labels below it are dropped")
	cmd.Flags().StringVar(&f.Render.TextColor, "text-color", f.Render.TextColor, "label color")
	cmd.Flags().IntVar(&f.Render.LineWidth, "line-width", f.Render.LineWidth, "outline width of first-level boxes")
	cmd.Flags().StringVar(&f.Render.LineColor, "line-color", f.Render.LineColor, "outline color")
	cmd.Flags().StringVar(&f.Render.TopColor, "top-color", f.Render.TopColor, "background color of the top level")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 0, "merge categories below this proportion (default: auto-detect)")

	cmd.Flags().StringSliceVar(&f.Render.Palette, "palette", nil, "first-level colors as hex values")
	cmd.Flags().IntVar(&f.Render.Categories, "categories", 0, "generate a pastel palette of this many colors")
	cmd.Flags().StringSliceVar(&f.Render.Styles, "styles", f.Render.Styles, "per-depth color styles: palette, gradient, uniform")

	cmd.Flags().BoolVar(&f.Render.Legend, "legend", f.Render.Legend, "draw a legend")
	cmd.Flags().StringVar(&f.Render.LegendPosition, "legend-position", f.Render.LegendPosition, "legend position: top, bottom, left, right")
	cmd.Flags().IntVar(&f.Render.LegendFontSize, "legend-font-size", 0, "legend font size (default: base font size)")
	cmd.Flags().IntVar(&f.Render.SwatchSize, "swatch-size", 0, "legend swatch size (default: derived from canvas)")
	cmd.Flags().IntVar(&f.Render.StripSize, "strip-size", 0, "legend strip breadth (default: derived from canvas)")
	cmd.Flags().IntVar(&f.Render.StripLength, "strip-length", f.Render.StripLength, "legend entries per strip")
	cmd.Flags().IntVar(&f.Render.StripMargin, "strip-margin", 0, "margin between legend strips")

	return cmd
}

// applyFlagOverrides copies every flag the user set on the command line from
// the flag-bound options f into opts, on top of whatever the config file set.
func applyFlagOverrides(cmd *cobra.Command, opts *pipeline.Options, f pipeline.Options) {
	set := cmd.Flags().Changed
	if set("group-by") {
		opts.GroupBy = f.GroupBy
	}
	if set("value") {
		opts.Value = f.Value
	}
	if set("root-name") {
		opts.RootName = f.RootName
	}
	if set("width") {
		opts.Render.Width = f.Render.Width
	}
	if set("height") {
		opts.Render.Height = f.Render.Height
	}
	if set("font") {
		opts.Render.Font = f.Render.Font
	}
	if set("base-font-size") {
		opts.Render.BaseFontSize = f.Render.BaseFontSize
	}
	if set("min-font-size") {
		opts.Render.MinFontSize = f.Render.MinFontSize
	}
	if set("text-color") {
		opts.Render.TextColor = f.Render.TextColor
	}
	if set("line-width") {
		opts.Render.LineWidth = f.Render.LineWidth
	}
	if set("line-color") {
		opts.Render.LineColor = f.Render.LineColor
	}
	if set("top-color") {
		opts.Render.TopColor = f.Render.TopColor
	}
	if set("palette") {
		opts.Render.Palette = f.Render.Palette
	}
	if set("categories") {
		opts.Render.Categories = f.Render.Categories
	}
	if set("styles") {
		opts.Render.Styles = f.Render.Styles
	}
	if set("legend") {
		opts.Render.Legend = f.Render.Legend
	}
	if set("legend-position") {
		opts.Render.LegendPosition = f.Render.LegendPosition
	}
	if set("legend-font-size") {
		opts.Render.LegendFontSize = f.Render.LegendFontSize
	}
	if set("swatch-size") {
		opts.Render.SwatchSize = f.Render.SwatchSize
	}
	if set("strip-size") {
		opts.Render.StripSize = f.Render.StripSize
	}
	if set("strip-length") {
		opts.Render.StripLength = f.Render.StripLength
	}
	if set("strip-margin") {
		opts.Render.StripMargin = f.Render.StripMargin
	}
}

// runRender executes the pipeline for the given input and writes the PNG.
func runRender(ctx context.Context, output string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", opts.Input)
	opts.Logger = logger

	p := newProgress(logger)
	result, err := pipeline.NewRunner(logger).Execute(ctx, opts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d categories", result.Stats.Categories))

	path := outputPath(output, opts.Input)
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(result.PNG); err != nil {
		return err
	}

	if path != "" {
		printFile(path)
	}
	return nil
}

// outputPath derives the output file path: the explicit output if given,
// otherwise the input name with a .png extension. "-" selects stdout.
func outputPath(output, input string) string {
	switch output {
	case "-":
		return ""
	case "":
		return strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
