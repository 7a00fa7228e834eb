package autopair

import (
	"errors"
	"fmt"
)

// Configuration errors surfaced at rule-definition time.
var (
	// ErrConflictingMatchers is returned when a spec sets both a raw
	// predicate and a tree pattern. The two authoring modes are mutually
	// exclusive.
	ErrConflictingMatchers = errors.New("autopair: rule sets both a predicate and a pattern")

	// ErrNoMatcher is returned when a spec sets neither a predicate nor a
	// pattern.
	ErrNoMatcher = errors.New("autopair: rule needs a predicate or a pattern")

	// ErrExcludesWithPredicate is returned when exclusion patterns are
	// combined with a raw predicate; excludes belong to the query
	// authoring mode.
	ErrExcludesWithPredicate = errors.New("autopair: exclusion patterns require a pattern matcher")

	// ErrMissingLanguage is returned when a spec has no language.
	ErrMissingLanguage = errors.New("autopair: rule needs a language")

	// ErrMissingClose is returned when a spec has no closing text.
	ErrMissingClose = errors.New("autopair: rule needs closing text")

	// ErrUnknownTrigger is returned when a spec names a trigger class with
	// no registered classifier.
	ErrUnknownTrigger = errors.New("autopair: unknown trigger class")
)

// RuleSpec is the user-facing description of one pairing rule, passed to
// Registry.Define. Exactly one of Predicate and Pattern must be set.
type RuleSpec struct {
	// Language identifies the grammar this rule applies to.
	Language string

	// Trigger is the event class the rule listens on.
	Trigger TriggerClass

	// Predicate authors the matcher directly as Go code.
	Predicate NodePredicate

	// Pattern authors the matcher as a tree-query compiled at definition
	// time.
	Pattern string

	// Excludes are tree-queries evaluated against the matched node's
	// parent; a match on any of them rejects the node. Only valid with
	// Pattern.
	Excludes []string

	// Close is the literal text inserted when the rule fires. Embedded
	// spaces are inserted verbatim as part of a single compound insertion.
	Close string

	// Pad surrounds the inserted text with single spaces and leaves the
	// cursor after the leading pad.
	Pad bool

	// InStringsAndComments lets the rule fire when the insertion point
	// lies inside a string or comment region.
	InStringsAndComments bool

	// ActivateInGoodParse controls the error-state gate. When false the
	// rule fires only inside an error-bearing subtree; when true it fires
	// regardless of parse state. A rule that leaves this false therefore
	// never fires in cleanly parsed code. That polarity is preserved from
	// the documented behavior on purpose; do not invert it.
	ActivateInGoodParse bool
}

// PairingRule is the compiled, immutable form of a RuleSpec. Rules are
// built once at registry-population time and never mutated afterward.
type PairingRule struct {
	language             string
	trigger              TriggerClass
	matcher              Matcher
	close                string
	pad                  bool
	inStringsAndComments bool
	activateInGoodParse  bool
}

// Language returns the grammar identifier the rule applies to.
func (r PairingRule) Language() string { return r.language }

// Trigger returns the event class the rule listens on.
func (r PairingRule) Trigger() TriggerClass { return r.trigger }

// Matcher returns the rule's compiled matcher.
func (r PairingRule) Matcher() Matcher { return r.matcher }

// Close returns the literal closing text.
func (r PairingRule) Close() string { return r.close }

// Pad reports whether insertions are surrounded by single spaces.
func (r PairingRule) Pad() bool { return r.pad }

// Matcher is a tagged variant over the two rule authoring modes: a raw
// predicate, or a compiled query with a positive pattern and zero or more
// negative patterns. Exactly one variant is populated.
type Matcher struct {
	predicate NodePredicate
	query     *compiledQuery
}

// compiledQuery keeps the compiled artifacts inspectable in isolation
// instead of capturing them in a closure.
type compiledQuery struct {
	positive  NodePredicate
	negatives []NodePredicate
}

// Match dispatches on the populated variant. A query matcher accepts a
// node iff the positive pattern matches it and no negative pattern matches
// its parent. Absent negatives degenerate to a pure positive match.
func (m Matcher) Match(n Node) bool {
	if n == nil {
		return false
	}
	if m.predicate != nil {
		return m.predicate(n)
	}
	if m.query == nil || !m.query.positive(n) {
		return false
	}
	if len(m.query.negatives) == 0 {
		return true
	}
	parent := n.Parent()
	if parent == nil {
		return true
	}
	for _, neg := range m.query.negatives {
		if neg(parent) {
			return false
		}
	}
	return true
}

// compileMatcher validates the authoring mode and compiles the positive
// and negative patterns for the spec's language. Compilation happens once
// per rule; the returned matcher is evaluated many times per keystroke
// session without recompiling.
func compileMatcher(spec RuleSpec, compilers CompilerSource) (Matcher, error) {
	switch {
	case spec.Predicate != nil && spec.Pattern != "":
		return Matcher{}, ErrConflictingMatchers
	case spec.Predicate == nil && spec.Pattern == "":
		return Matcher{}, ErrNoMatcher
	case spec.Predicate != nil && len(spec.Excludes) > 0:
		return Matcher{}, ErrExcludesWithPredicate
	}

	if spec.Predicate != nil {
		return Matcher{predicate: spec.Predicate}, nil
	}

	compiler, err := compilers.CompilerFor(spec.Language)
	if err != nil {
		return Matcher{}, fmt.Errorf("autopair: no compiler for language %q: %w", spec.Language, err)
	}

	positive, err := compiler.Compile(spec.Pattern)
	if err != nil {
		return Matcher{}, fmt.Errorf("autopair: compile pattern %q: %w", spec.Pattern, err)
	}

	negatives := make([]NodePredicate, 0, len(spec.Excludes))
	for _, excl := range spec.Excludes {
		neg, err := compiler.Compile(excl)
		if err != nil {
			return Matcher{}, fmt.Errorf("autopair: compile exclusion %q: %w", excl, err)
		}
		negatives = append(negatives, neg)
	}

	return Matcher{query: &compiledQuery{positive: positive, negatives: negatives}}, nil
}
