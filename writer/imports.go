package writer

import (
	"sort"
	"strings"

	"github.com/teranos/shapegen/symbol"
)

// ImportContainer collects the symbols referenced while rendering one
// artifact and renders them as grouped, deduplicated use statements.
//
// Each artifact owns its own container; recording is a side effect of the
// writer's type and identifier formatters.
type ImportContainer struct {
	root *importNode
}

// NewImportContainer returns an empty container.
func NewImportContainer() *ImportContainer {
	return &ImportContainer{root: newImportNode("")}
}

// Record inserts a symbol reference. Local declarations and std paths are
// ignored (no use statement needed); duplicate inserts are idempotent.
func (c *ImportContainer) Record(sym *symbol.Symbol) {
	if sym == nil || !sym.IsImportable() {
		return
	}
	current := c.root
	for _, segment := range sym.Segments() {
		current = current.child(segment)
	}
	current.child(sym.Name)
}

// Empty reports whether nothing importable has been recorded.
func (c *ImportContainer) Empty() bool {
	return len(c.root.children) == 0
}

// String renders one use statement per top-level namespace:
//
//	use smithy4rs_core::{
//	    derive::SmithyShape,
//	    prelude::{
//	        INTEGER,
//	        STRING,
//	    },
//	    smithy,
//	};
//
// A node with a single child is compressed inline; multi-child nodes open
// a brace group with children sorted lexicographically.
func (c *ImportContainer) String() string {
	var sb strings.Builder
	for _, node := range c.root.sortedChildren() {
		sb.WriteString("use ")
		node.write(&sb, 1)
		sb.WriteString(";\n")
	}
	return sb.String()
}

type importNode struct {
	name     string
	children map[string]*importNode
}

func newImportNode(name string) *importNode {
	return &importNode{name: name, children: make(map[string]*importNode)}
}

func (n *importNode) child(name string) *importNode {
	if existing, ok := n.children[name]; ok {
		return existing
	}
	created := newImportNode(name)
	n.children[name] = created
	return created
}

func (n *importNode) sortedChildren() []*importNode {
	out := make([]*importNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

const importIndent = "    "

func (n *importNode) write(sb *strings.Builder, depth int) {
	sb.WriteString(n.name)
	switch len(n.children) {
	case 0:
		// Leaf: the symbol itself
	case 1:
		sb.WriteString(symbol.Delimiter)
		n.sortedChildren()[0].write(sb, depth)
	default:
		sb.WriteString(symbol.Delimiter)
		sb.WriteString("{\n")
		for _, child := range n.sortedChildren() {
			sb.WriteString(strings.Repeat(importIndent, depth))
			child.write(sb, depth+1)
			sb.WriteString(",\n")
		}
		sb.WriteString(strings.Repeat(importIndent, depth-1))
		sb.WriteString("}")
	}
}
