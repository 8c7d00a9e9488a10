// Package category implements the weighted category hierarchy that a treemap
// visualizes.
//
// # Model
//
// A [Tree] owns all of its nodes in a single arena; nodes are addressed by
// stable [ID] values and parent/child relationships are stored as IDs rather
// than pointers, so the structure has no ownership cycles. The root is a
// synthetic contains-all category; every other node carries a name (unique
// among its siblings) and a non-negative size. For any non-leaf node the size
// equals the sum of its children's sizes.
//
// # Construction
//
// Trees are either built by hand with [Tree.AddChild], or derived from
// tabular data with [FromTable], which groups rows by a sequence of column
// keys, one tree level per key. Weights are row counts, or sums of a numeric
// value column when one is named.
//
// # Labels
//
// A node's label is derived from its ancestry: the node's own name directly
// under the root, otherwise the parent's label joined with " -> ". Labels are
// what the renderer displays inside boxes.
package category
