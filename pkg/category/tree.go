package category

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a subcategory lookup by name finds no match.
var ErrNotFound = errors.New("no matching subcategory found")

// ID addresses a node within its owning Tree. IDs are stable for the lifetime
// of the tree and never reused.
type ID int

const invalid ID = -1

type node struct {
	name     string
	size     float64
	parent   ID
	children []ID
	groupKey string // column its children were grouped by, if any
	isRoot   bool
}

// Tree is an arena of category nodes. The zero value is not usable; create
// trees with New or FromTable.
type Tree struct {
	nodes []node
}

// New creates a tree holding only the synthetic root category.
func New(rootName string) *Tree {
	return &Tree{nodes: []node{{name: rootName, parent: invalid, isRoot: true}}}
}

// Root returns the ID of the root category.
func (t *Tree) Root() ID { return 0 }

// AddChild appends a child category under parent. Sibling names must be
// unique; adding a duplicate name is an error.
func (t *Tree) AddChild(parent ID, name string, size float64) (ID, error) {
	for _, c := range t.nodes[parent].children {
		if t.nodes[c].name == name {
			return invalid, fmt.Errorf("duplicate sibling name %q under %q", name, t.nodes[parent].name)
		}
	}
	id := ID(len(t.nodes))
	t.nodes = append(t.nodes, node{name: name, size: size, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id, nil
}

// Name returns the node's own name.
func (t *Tree) Name(id ID) string { return t.nodes[id].name }

// Size returns the node's weight.
func (t *Tree) Size(id ID) float64 { return t.nodes[id].size }

// SetSize replaces the node's weight. Intended for hand-built trees where
// interior sizes are assigned after their children.
func (t *Tree) SetSize(id ID, size float64) { t.nodes[id].size = size }

// Parent returns the node's parent, or false for the root.
func (t *Tree) Parent(id ID) (ID, bool) {
	p := t.nodes[id].parent
	return p, p != invalid
}

// Children returns the node's children in insertion order. The returned slice
// is owned by the tree and must not be modified.
func (t *Tree) Children(id ID) []ID { return t.nodes[id].children }

// IsRoot reports whether the node is the synthetic contains-all category.
func (t *Tree) IsRoot(id ID) bool { return t.nodes[id].isRoot }

// GroupKey returns the column name this node's children were grouped by, or
// "" for hand-built levels.
func (t *Tree) GroupKey(id ID) string { return t.nodes[id].groupKey }

// SetGroupKey records the column name this node's children were grouped by.
// The renderer uses it to name the merged "Other ..." category.
func (t *Tree) SetGroupKey(id ID, key string) { t.nodes[id].groupKey = key }

// Label returns the breadcrumb label for the node: its own name when directly
// under the root (or at the root itself), otherwise the parent's label joined
// with an arrow.
func (t *Tree) Label(id ID) string {
	n := t.nodes[id]
	if n.parent == invalid || t.nodes[n.parent].isRoot {
		return n.name
	}
	return t.Label(n.parent) + " -> " + n.name
}

// ChildrenBySize returns the node's children sorted by descending size.
// Ties keep insertion order.
func (t *Tree) ChildrenBySize(id ID) []ID {
	out := slices.Clone(t.nodes[id].children)
	slices.SortStableFunc(out, func(a, b ID) int {
		switch {
		case t.nodes[a].size > t.nodes[b].size:
			return -1
		case t.nodes[a].size < t.nodes[b].size:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Proportion returns the node's share of its parent's size. The root's
// proportion is 1.
func (t *Tree) Proportion(id ID) float64 {
	p := t.nodes[id].parent
	if p == invalid || t.nodes[p].size == 0 {
		return 1
	}
	return t.nodes[id].size / t.nodes[p].size
}

// RelativeProportion returns the node's size relative to its largest sibling.
func (t *Tree) RelativeProportion(id ID) float64 {
	p := t.nodes[id].parent
	if p == invalid {
		return 1
	}
	siblings := t.ChildrenBySize(p)
	largest := t.nodes[siblings[0]].size
	if largest == 0 {
		return 1
	}
	return t.nodes[id].size / largest
}

// Child finds a direct child by name. A missing name is reported as
// ErrNotFound.
func (t *Tree) Child(id ID, name string) (ID, error) {
	for _, c := range t.nodes[id].children {
		if t.nodes[c].name == name {
			return c, nil
		}
	}
	return invalid, fmt.Errorf("%w: %q under %q", ErrNotFound, name, t.nodes[id].name)
}

// String renders a one-line description of the node.
func (t *Tree) String(id ID) string {
	size := math.Round(t.nodes[id].size*1e4) / 1e4
	return fmt.Sprintf("Category [%s] of size %s", t.Label(id), strconv.FormatFloat(size, 'f', -1, 64))
}

// Describe renders the subtree under id, one node per line, children indented
// one tab per level. depth limits recursion; negative means unlimited.
func (t *Tree) Describe(id ID, depth int) string {
	var b strings.Builder
	t.describe(&b, id, 0, depth)
	return b.String()
}

func (t *Tree) describe(b *strings.Builder, id ID, indent, depth int) {
	b.WriteString(strings.Repeat("\t", indent))
	b.WriteString(t.String(id))
	if depth == 0 {
		return
	}
	for _, c := range t.nodes[id].children {
		b.WriteByte('\n')
		t.describe(b, c, indent+1, depth-1)
	}
}
