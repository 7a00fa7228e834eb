package treesitter

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/odvcencio/autopair"
)

// Compiler compiles .scm query patterns for one language into node
// predicates. Compilation runs once per rule at registry-population time;
// the returned predicate only executes the pre-built query.
type Compiler struct {
	lang *tree_sitter.Language
}

// NewCompiler returns a compiler for a registered grammar.
func NewCompiler(g Grammar) *Compiler {
	return &Compiler{lang: g.Language()}
}

// Compile builds the query and returns a predicate that accepts a node iff
// running the query over the node's subtree captures that exact node.
// Invalid patterns and references to unknown grammar constructs fail here,
// never per keystroke.
func (c *Compiler) Compile(pattern string) (autopair.NodePredicate, error) {
	query, qerr := tree_sitter.NewQuery(c.lang, pattern)
	if qerr != nil {
		return nil, fmt.Errorf("treesitter: compile query %q: %w", pattern, qerr)
	}

	return func(n autopair.Node) bool {
		tn, ok := n.(*node)
		if !ok || tn == nil {
			return false
		}

		cursor := tree_sitter.NewQueryCursor()
		defer cursor.Close()

		matches := cursor.Matches(query, tn.inner, tn.doc.src)
		for m := matches.Next(); m != nil; m = matches.Next() {
			for _, capture := range m.Captures {
				if capture.Node.StartByte() == tn.inner.StartByte() &&
					capture.Node.EndByte() == tn.inner.EndByte() &&
					capture.Node.KindId() == tn.inner.KindId() {
					return true
				}
			}
		}
		return false
	}, nil
}
