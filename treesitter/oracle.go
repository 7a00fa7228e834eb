package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/odvcencio/autopair"
)

// node adapts a tree-sitter node to the engine's Node view. It carries the
// owning document so compiled query predicates can reach the source text.
type node struct {
	inner *tree_sitter.Node
	doc   *Document
}

func (n *node) Kind() string { return n.inner.Kind() }

func (n *node) Parent() autopair.Node {
	p := n.inner.Parent()
	if p == nil {
		return nil
	}
	return &node{inner: p, doc: n.doc}
}

func (n *node) IsNamed() bool { return n.inner.IsNamed() }

// IsError reports whether the node spans a parse error: tree-sitter sets
// the flag on error and missing nodes and on every node containing one.
func (n *node) IsError() bool { return n.inner.HasError() || n.inner.IsMissing() }

func (n *node) StartByte() uint { return n.inner.StartByte() }

func (n *node) EndByte() uint { return n.inner.EndByte() }

// Oracle answers the engine's parse-state queries from a live document.
// Lookups descend from the root, O(tree depth) per call.
type Oracle struct {
	doc *Document
}

// NewOracle wraps a document.
func NewOracle(doc *Document) *Oracle {
	return &Oracle{doc: doc}
}

// NodeAt returns the smallest node covering the byte offset. Offsets at or
// past the end of the source clamp to the last byte, so a lookup at the
// cursor still covers a character just typed at the end of the buffer.
// When the offset sits on whitespace between tokens, the deepest covering
// node is an interior one; in that case the token leaf just before the
// offset is the node the position refers to.
func (o *Oracle) NodeAt(pos uint) autopair.Node {
	root := o.doc.Root()
	if root == nil || len(o.doc.src) == 0 {
		return nil
	}
	if pos >= uint(len(o.doc.src)) {
		pos = uint(len(o.doc.src)) - 1
	}

	n := root.DescendantForByteRange(pos, pos)
	if n != nil && n.ChildCount() == 0 {
		return &node{inner: n, doc: o.doc}
	}

	if pos > 0 {
		if prev := root.DescendantForByteRange(pos-1, pos-1); prev != nil && prev.ChildCount() == 0 {
			return &node{inner: prev, doc: o.doc}
		}
	}

	if n == nil {
		return nil
	}
	return &node{inner: n, doc: o.doc}
}

// InStringOrComment reports whether the byte offset lies inside one of the
// grammar's string/comment node kinds, checked along the ancestor chain.
func (o *Oracle) InStringOrComment(pos uint) bool {
	n := o.NodeAt(pos)
	for cur := n; cur != nil; cur = cur.Parent() {
		if o.doc.literal[cur.Kind()] {
			return true
		}
	}
	return false
}

// NearestErrorAncestor walks from n toward the root and returns the first
// error-bearing node, or nil if the chain is clean.
func (o *Oracle) NearestErrorAncestor(n autopair.Node) autopair.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.IsError() {
			return cur
		}
	}
	return nil
}
