package rules

import "github.com/odvcencio/autopair"

// Go returns the built-in rule table for Go buffers.
func Go() []autopair.RuleSpec {
	specs := delimiterRules("go")

	specs = append(specs,
		// Close the string the quote just opened. Quote rules must opt
		// into string regions: the typed quote itself puts the cursor
		// inside one.
		autopair.RuleSpec{
			Language:             "go",
			Trigger:              autopair.TriggerQuote,
			Predicate:            kindIs(`"`, "interpreted_string_literal"),
			Close:                `"`,
			InStringsAndComments: true,
			ActivateInGoodParse:  true,
		},
		autopair.RuleSpec{
			Language:             "go",
			Trigger:              autopair.TriggerQuote,
			Predicate:            kindIs("`", "raw_string_literal"),
			Close:                "`",
			InStringsAndComments: true,
			ActivateInGoodParse:  true,
		},
		// Typing a space after the struct/interface keyword of a type
		// still being written completes the braces. Gated to error
		// subtrees so finished declarations are left alone.
		autopair.RuleSpec{
			Language: "go",
			Trigger:  autopair.TriggerWhitespace,
			Pattern:  `"struct" @kw`,
			Excludes: []string{`(comment) @host`},
			Close:    "{}",
		},
		autopair.RuleSpec{
			Language: "go",
			Trigger:  autopair.TriggerWhitespace,
			Pattern:  `"interface" @kw`,
			Excludes: []string{`(comment) @host`},
			Close:    "{}",
		},
	)

	return specs
}
