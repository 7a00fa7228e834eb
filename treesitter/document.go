package treesitter

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Document owns the parse state for one buffer: source bytes, the parser,
// and the current tree. Edits are applied incrementally so the tree tracks
// the buffer keystroke by keystroke. Documents are not safe for concurrent
// use; the host serializes edits with reads, as it does input events.
type Document struct {
	grammar Grammar
	literal map[string]bool
	parser  *tree_sitter.Parser
	tree    *tree_sitter.Tree
	src     []byte
}

// NewDocument parses src with the given grammar and returns a live
// document. Close must be called to release parser and tree resources.
func NewDocument(g Grammar, src []byte) (*Document, error) {
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(g.Language()); err != nil {
		parser.Close()
		return nil, fmt.Errorf("treesitter: set language %q: %w", g.Name, err)
	}

	literal := make(map[string]bool, len(g.LiteralKinds))
	for _, kind := range g.LiteralKinds {
		literal[kind] = true
	}

	d := &Document{
		grammar: g,
		literal: literal,
		parser:  parser,
		src:     append([]byte(nil), src...),
	}
	d.tree = parser.Parse(d.src, nil)
	return d, nil
}

// Edit splices newText over the byte range [start, oldEnd) and re-parses
// incrementally. It mirrors the buffer change callback: a plain insertion
// has start == oldEnd.
func (d *Document) Edit(start, oldEnd uint, newText string) {
	if oldEnd > uint(len(d.src)) {
		oldEnd = uint(len(d.src))
	}
	if start > oldEnd {
		start = oldEnd
	}

	startPoint := pointAt(d.src, start)
	oldEndPoint := pointAt(d.src, oldEnd)

	next := make([]byte, 0, uint(len(d.src))-(oldEnd-start)+uint(len(newText)))
	next = append(next, d.src[:start]...)
	next = append(next, newText...)
	next = append(next, d.src[oldEnd:]...)
	d.src = next

	newEnd := start + uint(len(newText))

	if d.tree != nil {
		d.tree.Edit(&tree_sitter.InputEdit{
			StartByte:      start,
			OldEndByte:     oldEnd,
			NewEndByte:     newEnd,
			StartPosition:  startPoint,
			OldEndPosition: oldEndPoint,
			NewEndPosition: pointAt(d.src, newEnd),
		})
	}

	old := d.tree
	d.tree = d.parser.Parse(d.src, old)
	if old != nil {
		old.Close()
	}
}

// Text returns the document's current source bytes.
func (d *Document) Text() []byte { return d.src }

// Root returns the root node of the current tree, or nil before the first
// parse.
func (d *Document) Root() *tree_sitter.Node {
	if d.tree == nil {
		return nil
	}
	return d.tree.RootNode()
}

// HasError reports whether the current tree contains any parse error.
func (d *Document) HasError() bool {
	root := d.Root()
	return root != nil && root.HasError()
}

// Close releases the parser and tree resources.
func (d *Document) Close() {
	if d.tree != nil {
		d.tree.Close()
		d.tree = nil
	}
	if d.parser != nil {
		d.parser.Close()
		d.parser = nil
	}
}

// pointAt computes the row/column of a byte offset by scanning src.
// Documents are edited one keystroke at a time, so the scan cost is
// dominated by the re-parse, not worth caching line starts for.
func pointAt(src []byte, offset uint) tree_sitter.Point {
	if offset > uint(len(src)) {
		offset = uint(len(src))
	}
	var p tree_sitter.Point
	for _, b := range src[:offset] {
		if b == '\n' {
			p.Row++
			p.Column = 0
		} else {
			p.Column++
		}
	}
	return p
}
