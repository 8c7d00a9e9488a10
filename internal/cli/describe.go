package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aliquod/treemapper/pkg/category"
	"github.com/aliquod/treemapper/pkg/dataset"
	"github.com/aliquod/treemapper/pkg/pipeline"
)

// describeOpts holds the command-line flags for the describe command.
type describeOpts struct {
	groupBy  []string // columns defining the hierarchy, outermost first
	value    string   // numeric column summed into sizes
	rootName string   // label for the root category
	depth    int      // levels to print; negative means all
}

// newDescribeCmd creates the describe command, which prints the category
// hierarchy a dataset groups into without rendering anything.
func newDescribeCmd() *cobra.Command {
	opts := describeOpts{depth: -1}

	cmd := &cobra.Command{
		Use:   "describe [file]",
		Short: "Print the category hierarchy of a CSV dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.groupBy, "group-by", "g", nil, "column(s) to group by, outermost first")
	cmd.Flags().StringVar(&opts.value, "value", "", "numeric column summed into sizes (default: row count)")
	cmd.Flags().StringVar(&opts.rootName, "root-name", "", "label for the root category (default: input name)")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", opts.depth, "levels to print (default: all)")

	return cmd
}

// runDescribe loads the input, groups it, and prints the styled tree.
func runDescribe(ctx context.Context, input string, opts *describeOpts) error {
	logger := loggerFromContext(ctx)

	pipeOpts := pipeline.Options{
		Input:    input,
		GroupBy:  opts.groupBy,
		Value:    opts.value,
		RootName: opts.rootName,
		Logger:   logger,
	}
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	f, err := os.Open(pipeOpts.Input)
	if err != nil {
		return err
	}
	defer f.Close()
	tbl, err := dataset.ReadCSV(f)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %d rows from %s", len(tbl.Records), input)

	tree, err := category.FromTable(pipeOpts.RootName, tbl, pipeOpts.GroupBy, pipeOpts.Value)
	if err != nil {
		return err
	}

	printTree(tree, tree.Root(), 0, opts.depth)
	return nil
}

// printTree prints the subtree at id, one styled line per category, stopping
// after depth levels below the root (negative prints everything).
func printTree(t *category.Tree, id category.ID, indent, depth int) {
	name := StyleValue.Render(t.Name(id))
	if t.IsRoot(id) {
		name = StyleTitle.Render(t.Name(id))
	}
	size := StyleNumber.Render(formatSize(t.Size(id)))
	fmt.Println(strings.Repeat("  ", indent) + name + StyleDim.Render(" · ") + size)

	if depth == 0 {
		return
	}
	for _, c := range t.ChildrenBySize(id) {
		printTree(t, c, indent+1, depth-1)
	}
}

// formatSize renders a category weight without trailing zeros.
func formatSize(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
