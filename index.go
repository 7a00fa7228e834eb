package autopair

// TriggerIndex is the per-activation projection of a Registry for one
// language: trigger class to candidate rules, in registration order.
// It is immutable after construction and safe to read without
// synchronization. Mode toggles and rule-set changes require a rebuild;
// there is no live reload.
type TriggerIndex struct {
	language string
	groups   map[TriggerClass][]PairingRule
}

// BuildIndex filters the registry down to rules for the given language and
// groups them by trigger class. Building is idempotent and side-effect
// free apart from sealing the registry, which ends its build phase.
func BuildIndex(reg *Registry, language string) *TriggerIndex {
	reg.Seal()

	groups := make(map[TriggerClass][]PairingRule)
	for _, rule := range reg.ForLanguage(language) {
		groups[rule.trigger] = append(groups[rule.trigger], rule)
	}

	return &TriggerIndex{language: language, groups: groups}
}

// Language returns the language the index was built for.
func (ix *TriggerIndex) Language() string { return ix.language }

// Rules returns the candidate rules for a trigger class in registration
// order, or nil if no rule listens on it.
func (ix *TriggerIndex) Rules(class TriggerClass) []PairingRule {
	return ix.groups[class]
}

// Len returns the total number of rules in the index.
func (ix *TriggerIndex) Len() int {
	n := 0
	for _, rules := range ix.groups {
		n += len(rules)
	}
	return n
}
