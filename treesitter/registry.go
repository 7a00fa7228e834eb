// Package treesitter implements the autopair parse-state oracle and query
// compiler on top of tree-sitter. A Document owns the incremental parser
// state for one buffer; an Oracle answers point queries against it; a
// Compiler turns .scm query patterns into node predicates at rule-definition
// time.
package treesitter

import (
	"errors"
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/odvcencio/autopair"
)

// ErrUnknownLanguage is returned when no grammar is registered under the
// requested name.
var ErrUnknownLanguage = errors.New("treesitter: unknown language")

// Grammar holds a registered language with its tree-sitter binding,
// extensions, and the node kinds treated as string/comment regions.
type Grammar struct {
	Name       string
	Extensions []string // e.g. [".go", ".mod"]

	// Language lazily loads the tree-sitter language. Wrapping the binding
	// in sync.OnceValue keeps grammar initialization off the startup path.
	Language func() *tree_sitter.Language

	// LiteralKinds are node kinds whose interior counts as a string or
	// comment region for rule gating.
	LiteralKinds []string
}

var registry []Grammar

// Register adds a grammar to the registry. Registration is expected at
// startup, before documents are opened or rules compiled.
func Register(g Grammar) {
	registry = append(registry, g)
}

// Lookup returns the grammar registered under the given name.
func Lookup(name string) (Grammar, bool) {
	for i := range registry {
		if registry[i].Name == name {
			return registry[i], true
		}
	}
	return Grammar{}, false
}

// Detect returns the grammar for a filename, matching by extension, or
// false if no registered grammar claims it.
func Detect(filename string) (Grammar, bool) {
	for i := range registry {
		for _, ext := range registry[i].Extensions {
			if strings.HasSuffix(filename, ext) {
				return registry[i], true
			}
		}
	}
	return Grammar{}, false
}

// All returns all registered grammars.
func All() []Grammar {
	return registry
}

// Compilers returns a compiler source over the registered grammars,
// suitable for autopair.NewRegistry.
func Compilers() CompilerSource {
	return CompilerSource{}
}

// CompilerSource resolves query compilers from the grammar registry.
type CompilerSource struct{}

// CompilerFor returns the query compiler for a registered language.
func (CompilerSource) CompilerFor(language string) (autopair.QueryCompiler, error) {
	g, ok := Lookup(language)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	return &Compiler{lang: g.Language()}, nil
}
