package treemap

import "github.com/jinzhu/inflection"

// DetectCutoff finds the proportion threshold below which siblings degenerate:
// it lays the entries out once and returns the proportion-of-parent of the
// first entry (largest first) whose rectangle has zero width or height. If no
// entry degenerates the threshold is zero and nothing will be merged.
func DetectCutoff(entries []Entry, w, h int) float64 {
	g := ComputeGrid(entries, w, h)
	total := totalSize(entries)
	if total == 0 {
		return 0
	}
	for _, e := range sortBySize(entries) {
		r := g[e.Name]
		if r.W == 0 || r.H == 0 {
			return e.Size / total
		}
	}
	return 0
}

// MergeSmall partitions entries around the cutoff threshold and replaces
// those at or below it with one synthetic aggregate entry named othersName.
// When cutoff is nil the threshold is auto-detected with DetectCutoff. Kept
// entries come back sorted by descending size with the synthetic entry
// appended last; palette indices and legend order follow this enumeration.
// The input slice is left untouched.
func MergeSmall(entries []Entry, w, h int, cutoff *float64, othersName string) []Entry {
	threshold := 0.0
	if cutoff != nil {
		threshold = *cutoff
	} else {
		threshold = DetectCutoff(entries, w, h)
	}

	total := totalSize(entries)
	kept := make([]Entry, 0, len(entries))
	var cutSum float64
	var cutCount int
	for _, e := range entries {
		if total > 0 && e.Size/total > threshold {
			kept = append(kept, e)
		} else {
			cutSum += e.Size
			cutCount++
		}
	}

	kept = sortBySize(kept)
	if cutCount > 0 {
		kept = append(kept, Entry{Name: othersName, Size: cutSum, Others: true, Node: -1})
	}
	return kept
}

// OthersName derives the display name of the merged aggregate category by
// pluralizing the grouping key ("sector" becomes "Other sectors").
func OthersName(groupKey string) string {
	if groupKey == "" {
		return "Others"
	}
	return "Other " + inflection.Plural(groupKey)
}
