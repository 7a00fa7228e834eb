package autopair

import (
	"errors"
	"fmt"
	"unicode"
)

// TriggerClass names a classifier over a just-typed character. Rules
// declare the class they listen on; the engine resolves the class to a
// Classifier at keystroke time.
type TriggerClass string

// Built-in trigger classes.
const (
	// TriggerWhitespace fires on any whitespace character, newline
	// included. The node lookup happens one position before the cursor,
	// at the character just typed.
	TriggerWhitespace TriggerClass = "whitespace"

	// TriggerOpenDelimiter fires on (, [ and {. The node lookup happens
	// at the cursor itself.
	TriggerOpenDelimiter TriggerClass = "open-delimiter"

	// TriggerQuote fires on ", ' and `. The node lookup happens at the
	// cursor itself.
	TriggerQuote TriggerClass = "quote"
)

// LookupPoint says where, relative to the cursor, the syntax node for a
// classification pass is fetched.
type LookupPoint uint8

const (
	// LookupBeforeCursor fetches the node one position before the cursor,
	// covering the character just typed.
	LookupBeforeCursor LookupPoint = iota

	// LookupAtCursor fetches the node at the cursor position.
	LookupAtCursor
)

// Classifier couples a trigger class with its character predicate and the
// node lookup point used for rules in that class. A character may satisfy
// several classifiers; the engine tries every accepting class and stops at
// the first insertion.
type Classifier struct {
	Class  TriggerClass
	Match  func(ch rune) bool
	Lookup LookupPoint
}

var (
	// ErrClassifierInvalid is returned when a classifier lacks a class
	// name or a character predicate.
	ErrClassifierInvalid = errors.New("autopair: classifier needs a class name and a match function")

	// ErrClassifierExists is returned when registering a class name twice.
	ErrClassifierExists = errors.New("autopair: classifier already registered")
)

// classifiers is the fixed built-in set plus any registered extensions.
// Extension happens at configuration time, in the same startup phase as
// rule definition.
var classifiers = map[TriggerClass]Classifier{
	TriggerWhitespace: {
		Class:  TriggerWhitespace,
		Match:  unicode.IsSpace,
		Lookup: LookupBeforeCursor,
	},
	TriggerOpenDelimiter: {
		Class:  TriggerOpenDelimiter,
		Match:  func(ch rune) bool { return ch == '(' || ch == '[' || ch == '{' },
		Lookup: LookupAtCursor,
	},
	TriggerQuote: {
		Class:  TriggerQuote,
		Match:  func(ch rune) bool { return ch == '"' || ch == '\'' || ch == '`' },
		Lookup: LookupAtCursor,
	},
}

// RegisterClassifier adds a trigger class to the set rules may listen on.
// Registration is expected at startup, before any rules referencing the
// class are defined. Built-in classes cannot be replaced.
func RegisterClassifier(c Classifier) error {
	if c.Class == "" || c.Match == nil {
		return ErrClassifierInvalid
	}
	if _, ok := classifiers[c.Class]; ok {
		return fmt.Errorf("%w: %s", ErrClassifierExists, c.Class)
	}
	classifiers[c.Class] = c
	return nil
}

// classifierFor resolves a trigger class, reporting whether it exists.
func classifierFor(class TriggerClass) (Classifier, bool) {
	c, ok := classifiers[class]
	return c, ok
}
