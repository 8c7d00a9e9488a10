// Package dataset provides the tabular input model for treemap construction.
//
// A [Table] holds rows of string records under named columns, typically read
// from a CSV file. Tables can be grouped by a column value and aggregated by
// either row count or the sum of a numeric column, which is how the weighted
// category hierarchy is built.
//
// # Example
//
//	f, _ := os.Open("sales.csv")
//	tbl, err := dataset.ReadCSV(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	groups, _ := tbl.GroupBy("region")
//	for _, g := range groups {
//	    total, _ := g.Table.SumFloat("revenue")
//	    fmt.Println(g.Key, total)
//	}
package dataset
