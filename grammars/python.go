package grammars

import (
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/odvcencio/autopair/treesitter"
)

func init() {
	treesitter.Register(treesitter.Grammar{
		Name:       "python",
		Extensions: []string{".py", ".pyi"},
		Language: sync.OnceValue(func() *tree_sitter.Language {
			return tree_sitter.NewLanguage(tree_sitter_python.Language())
		}),
		LiteralKinds: []string{
			"comment",
			"string",
			"string_content",
			"concatenated_string",
		},
	})
}
