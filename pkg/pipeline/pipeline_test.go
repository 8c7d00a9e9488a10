package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/aliquod/treemapper/pkg/render/treemap"
)

type stubFonts struct{}

func (stubFonts) Face(size int) font.Face { return basicfont.Face7x13 }

func (stubFonts) MeasureString(s string, size int) (w, h float64) {
	return float64(len(s) * size), float64(size)
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const populationCSV = `continent,country,population
Asia,China,1400
Asia,India,1380
Europe,Germany,83
`

func TestOptionsValidation(t *testing.T) {
	opts := Options{GroupBy: []string{"continent"}}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, ErrNoInput) {
		t.Errorf("missing input error = %v, want ErrNoInput", err)
	}

	opts = Options{Input: "data.csv"}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, ErrNoGroupColumns) {
		t.Errorf("missing group-by error = %v, want ErrNoGroupColumns", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{
		Input:   "data/population.csv",
		GroupBy: []string{"continent"},
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if got, want := opts.RootName, "population"; got != want {
		t.Errorf("RootName = %q, want %q", got, want)
	}
	if opts.Render.Width != DefaultWidth || opts.Render.Height != DefaultHeight {
		t.Errorf("canvas = %dx%d, want %dx%d",
			opts.Render.Width, opts.Render.Height, DefaultWidth, DefaultHeight)
	}
	if got, want := opts.Render.Font, DefaultFont; got != want {
		t.Errorf("Font = %q, want %q", got, want)
	}
}

func TestOptionsDefaultsIdempotent(t *testing.T) {
	opts := Options{
		Input:    "data.csv",
		GroupBy:  []string{"continent"},
		RootName: "world",
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call error = %v", err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call error = %v", err)
	}
	if got, want := opts.RootName, "world"; got != want {
		t.Errorf("RootName = %q, want %q", got, want)
	}
}

func TestExecute(t *testing.T) {
	opts := Options{
		Input:   writeCSV(t, "population.csv", populationCSV),
		GroupBy: []string{"continent", "country"},
		Value:   "population",
		Render:  treemap.Config{Width: 120, Height: 80},
		Fonts:   stubFonts{},
	}

	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got, want := result.Stats.Rows, 3; got != want {
		t.Errorf("Stats.Rows = %d, want %d", got, want)
	}
	if got, want := result.Stats.Categories, 2; got != want {
		t.Errorf("Stats.Categories = %d, want %d", got, want)
	}
	if len(result.PNG) == 0 {
		t.Fatal("Execute() produced no PNG data")
	}

	img, err := png.Decode(bytes.NewReader(result.PNG))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 120 || got.Dy() != 80 {
		t.Errorf("output size = %dx%d, want 120x80", got.Dx(), got.Dy())
	}
}

func TestBuildDefaultsCategoryCount(t *testing.T) {
	opts := Options{
		Input:   writeCSV(t, "population.csv", populationCSV),
		GroupBy: []string{"continent"},
		Value:   "population",
	}
	runner := NewRunner(nil)
	ctx := context.Background()

	tbl, err := runner.Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := runner.Build(ctx, tbl, &opts); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got, want := opts.Render.Categories, 2; got != want {
		t.Errorf("Render.Categories = %d, want %d", got, want)
	}
}

func TestExecuteCanceled(t *testing.T) {
	opts := Options{
		Input:   writeCSV(t, "population.csv", populationCSV),
		GroupBy: []string{"continent"},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewRunner(nil).Execute(ctx, opts); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestExecuteMissingInput(t *testing.T) {
	opts := Options{
		Input:   filepath.Join(t.TempDir(), "absent.csv"),
		GroupBy: []string{"continent"},
	}
	if _, err := NewRunner(nil).Execute(context.Background(), opts); err == nil {
		t.Error("Execute() with a missing file should fail")
	}
}
