// Package grammars registers tree-sitter language bindings with the
// treesitter grammar registry. Importing it (often for side effects only)
// makes the bundled languages available to documents, oracles, and the
// query compiler.
package grammars

import (
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/odvcencio/autopair/treesitter"
)

func init() {
	treesitter.Register(treesitter.Grammar{
		Name:       "go",
		Extensions: []string{".go"},
		Language: sync.OnceValue(func() *tree_sitter.Language {
			return tree_sitter.NewLanguage(tree_sitter_go.Language())
		}),
		LiteralKinds: []string{
			"comment",
			"interpreted_string_literal",
			"raw_string_literal",
			"rune_literal",
		},
	})
}
