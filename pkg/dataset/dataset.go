package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// ErrColumnNotFound is returned when a referenced column does not exist.
var ErrColumnNotFound = errors.New("column not found")

// Table is an in-memory tabular dataset. Rows are individual observations,
// columns are named fields. All cells are stored as strings; numeric access
// parses on demand.
type Table struct {
	Columns []string
	Records [][]string
}

// Group is one partition of a table sharing a single value in the grouped column.
type Group struct {
	Key   string
	Table *Table
}

// ReadCSV reads a table from CSV data. The first record is taken as the
// header row; every following record must have the same number of fields.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty CSV input")
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV record: %w", err)
		}
		records = append(records, rec)
	}
	return &Table{Columns: header, Records: records}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Records) }

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// GroupBy partitions the table's rows by their value in the named column.
// Groups are returned sorted by key so that repeated runs over the same data
// produce the same hierarchy.
func (t *Table) GroupBy(column string) ([]Group, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string][][]string)
	for _, rec := range t.Records {
		key := rec[idx]
		byKey[key] = append(byKey[key], rec)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, Group{
			Key:   k,
			Table: &Table{Columns: t.Columns, Records: byKey[k]},
		})
	}
	return groups, nil
}

// SumFloat sums the named column as float64 values. Cells that do not parse
// as numbers are reported as errors rather than skipped.
func (t *Table) SumFloat(column string) (float64, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i, rec := range t.Records {
		v, err := strconv.ParseFloat(rec[idx], 64)
		if err != nil {
			return 0, fmt.Errorf("row %d: parse %q in column %q: %w", i, rec[idx], column, err)
		}
		sum += v
	}
	return sum, nil
}
