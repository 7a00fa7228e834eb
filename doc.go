// Package autopair decides, on every self-insert keystroke, whether a
// configured pairing rule fires and inserts the matching closing text.
// Decisions are syntax-aware: rules consult the host's live incremental
// parse tree instead of counting characters, so they can respect nesting,
// skip string and comment regions, and key off parse-error recovery state.
//
// The package is parser-agnostic. It consumes parse results through the
// Oracle interface and mutates text through the Buffer interface; the
// treesitter subpackage provides production implementations of both sides
// on top of tree-sitter.
//
// Usage follows a strict two-phase lifecycle. During configuration the
// host defines rules on a Registry:
//
//	reg := autopair.NewRegistry(treesitter.Compilers())
//	err := reg.Define(autopair.RuleSpec{
//	    Language: "go",
//	    Trigger:  autopair.TriggerOpenDelimiter,
//	    Pattern:  `"{" @open`,
//	    Close:    "}",
//	})
//
// At buffer activation the registry is projected into a per-language
// trigger index and attached as a Mode:
//
//	mode := autopair.Attach(buf, oracle, reg, "go")
//
// The host then calls mode.HandleSelfInsert(ch) synchronously from its
// keystroke handler after the character has been inserted. The call
// performs at most one insertion and reports whether a rule fired; when
// it returns false the host's normal insertion behavior stands untouched.
package autopair
