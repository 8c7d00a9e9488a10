package category

import (
	"fmt"

	"github.com/aliquod/treemapper/pkg/dataset"
)

// FromTable builds a category tree by grouping tbl's rows by each column in
// groupBy, one tree level per key. Node weights are row counts, or sums of
// valueColumn when it is non-empty.
func FromTable(rootName string, tbl *dataset.Table, groupBy []string, valueColumn string) (*Tree, error) {
	if len(groupBy) == 0 {
		return nil, fmt.Errorf("no grouping columns given")
	}
	t := New(rootName)
	size, err := weigh(tbl, valueColumn)
	if err != nil {
		return nil, err
	}
	t.SetSize(t.Root(), size)
	if err := t.grow(t.Root(), tbl, groupBy, valueColumn); err != nil {
		return nil, err
	}
	return t, nil
}

// grow attaches one level of grouped children under id and recurses while
// grouping keys remain.
func (t *Tree) grow(id ID, tbl *dataset.Table, groupBy []string, valueColumn string) error {
	t.SetGroupKey(id, groupBy[0])
	groups, err := tbl.GroupBy(groupBy[0])
	if err != nil {
		return err
	}
	for _, g := range groups {
		size, err := weigh(g.Table, valueColumn)
		if err != nil {
			return err
		}
		child, err := t.AddChild(id, g.Key, size)
		if err != nil {
			return err
		}
		if len(groupBy) > 1 {
			if err := t.grow(child, g.Table, groupBy[1:], valueColumn); err != nil {
				return err
			}
		}
	}
	return nil
}

func weigh(tbl *dataset.Table, valueColumn string) (float64, error) {
	if valueColumn == "" {
		return float64(tbl.Len()), nil
	}
	return tbl.SumFloat(valueColumn)
}
