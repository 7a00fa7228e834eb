// Package rules ships built-in pairing rule tables for the bundled
// languages. The tables are plain data; callers define them into a
// registry of their own, usually alongside rules loaded from a config
// file.
package rules

import "github.com/odvcencio/autopair"

// DefineAll defines every spec into the registry, stopping at the first
// failure so a bad table never half-populates a registry.
func DefineAll(reg *autopair.Registry, specs []autopair.RuleSpec) error {
	for _, spec := range specs {
		if err := reg.Define(spec); err != nil {
			return err
		}
	}
	return nil
}

// kindIs matches nodes whose grammar kind is one of the given names.
func kindIs(kinds ...string) autopair.NodePredicate {
	return func(n autopair.Node) bool {
		if n == nil {
			return false
		}
		kind := n.Kind()
		for _, k := range kinds {
			if kind == k {
				return true
			}
		}
		return false
	}
}

// delimiterRules builds the three bracket pairs shared by most grammars.
// Typing the opener inserts the closer right after the cursor.
func delimiterRules(language string) []autopair.RuleSpec {
	pairs := []struct{ open, close string }{
		{"(", ")"},
		{"[", "]"},
		{"{", "}"},
	}

	specs := make([]autopair.RuleSpec, 0, len(pairs))
	for _, p := range pairs {
		specs = append(specs, autopair.RuleSpec{
			Language:            language,
			Trigger:             autopair.TriggerOpenDelimiter,
			Predicate:           kindIs(p.open),
			Close:               p.close,
			ActivateInGoodParse: true,
		})
	}
	return specs
}
