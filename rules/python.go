package rules

import "github.com/odvcencio/autopair"

// Python returns the built-in rule table for Python buffers.
func Python() []autopair.RuleSpec {
	specs := delimiterRules("python")

	specs = append(specs,
		autopair.RuleSpec{
			Language:             "python",
			Trigger:              autopair.TriggerQuote,
			Predicate:            kindIs(`"`, "string", "string_start"),
			Close:                `"`,
			InStringsAndComments: true,
			ActivateInGoodParse:  true,
		},
		autopair.RuleSpec{
			Language:             "python",
			Trigger:              autopair.TriggerQuote,
			Predicate:            kindIs("'", "string", "string_start"),
			Close:                "'",
			InStringsAndComments: true,
			ActivateInGoodParse:  true,
		},
	)

	return specs
}
