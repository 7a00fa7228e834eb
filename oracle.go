package autopair

// Node is the engine's view of a single syntax-tree node. Implementations
// come from the host's incremental parser; see the treesitter subpackage.
type Node interface {
	// Kind returns the grammar type name of the node, e.g. "comment" or "{".
	Kind() string

	// Parent returns the enclosing node, or nil at the tree root.
	Parent() Node

	// IsNamed reports whether the node is a named grammar node, as opposed
	// to anonymous syntax such as punctuation.
	IsNamed() bool

	// IsError reports whether the node spans a parse error: it is, or
	// contains, an error or missing node produced by parser recovery.
	IsError() bool

	// StartByte returns the byte offset where the node begins.
	StartByte() uint

	// EndByte returns the byte offset where the node ends (exclusive).
	EndByte() uint
}

// Oracle answers point queries against the buffer's live parse tree. The
// tree may be stale or contain error subtrees mid-edit; the engine
// tolerates both. All operations are expected to answer synchronously from
// in-memory state.
type Oracle interface {
	// NodeAt returns the smallest node covering the given byte offset, or
	// nil if the tree is empty.
	NodeAt(pos uint) Node

	// InStringOrComment reports whether the given byte offset lies inside
	// a string or comment region.
	InStringOrComment(pos uint) bool

	// NearestErrorAncestor walks from n toward the root and returns the
	// first error-bearing node, or nil if the ancestor chain is clean.
	NearestErrorAncestor(n Node) Node
}

// Buffer is the host's text buffer and cursor model, reduced to what the
// engine needs: read the insertion point and insert literal text.
type Buffer interface {
	// Cursor returns the current insertion point as a byte offset.
	Cursor() uint

	// Insert places text at the given byte offset. Inserting at the cursor
	// must leave the cursor where it is, so inserted closing text ends up
	// after the insertion point.
	Insert(at uint, text string) error

	// SetCursor moves the insertion point.
	SetCursor(at uint)
}

// NodePredicate reports whether a rule's structural condition holds at a
// node. Compiled predicates are pure functions with no mutable state.
type NodePredicate func(Node) bool

// QueryCompiler compiles a tree-query pattern into a node predicate for
// one language. Compilation failures surface at rule-definition time,
// never per keystroke.
type QueryCompiler interface {
	Compile(pattern string) (NodePredicate, error)
}

// CompilerSource resolves the query compiler for a language. The
// treesitter subpackage provides one backed by registered grammars.
type CompilerSource interface {
	CompilerFor(language string) (QueryCompiler, error)
}
