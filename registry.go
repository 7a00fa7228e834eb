package autopair

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrRegistrySealed is returned by Define after the registry has entered
// its serve phase.
var ErrRegistrySealed = errors.New("autopair: registry is sealed; define rules before building an index")

// Registry holds the full ordered set of pairing rules across languages.
// It is an explicit configuration object with two phases: a build phase
// during which Define appends rules, and a serve phase (entered via Seal,
// or implicitly by the first index build) during which the rule set is
// immutable and safe to read without synchronization.
//
// Duplicate rules are allowed and kept in registration order; the engine's
// first-match early exit decides which one fires.
type Registry struct {
	compilers CompilerSource
	rules     []PairingRule
	sealed    bool
	log       zerolog.Logger
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*Registry)

// WithRegistryLogger attaches a logger; the default discards everything.
func WithRegistryLogger(log zerolog.Logger) RegistryOption {
	return func(r *Registry) { r.log = log }
}

// NewRegistry creates an empty registry in its build phase. The compiler
// source resolves tree-query compilation per language at Define time.
func NewRegistry(compilers CompilerSource, opts ...RegistryOption) *Registry {
	r := &Registry{
		compilers: compilers,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Define validates and compiles a rule spec and appends the resulting
// rule. Any validation or compilation failure rejects the rule outright;
// the registry is never left holding a partial rule.
func (r *Registry) Define(spec RuleSpec) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	if spec.Language == "" {
		return ErrMissingLanguage
	}
	if spec.Close == "" {
		return ErrMissingClose
	}
	if _, ok := classifierFor(spec.Trigger); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTrigger, spec.Trigger)
	}

	matcher, err := compileMatcher(spec, r.compilers)
	if err != nil {
		return err
	}

	r.rules = append(r.rules, PairingRule{
		language:             spec.Language,
		trigger:              spec.Trigger,
		matcher:              matcher,
		close:                spec.Close,
		pad:                  spec.Pad,
		inStringsAndComments: spec.InStringsAndComments,
		activateInGoodParse:  spec.ActivateInGoodParse,
	})

	r.log.Debug().
		Str("language", spec.Language).
		Str("trigger", string(spec.Trigger)).
		Str("close", spec.Close).
		Msg("rule defined")

	return nil
}

// Seal ends the build phase. Sealing twice is a no-op.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether the registry has entered its serve phase.
func (r *Registry) Sealed() bool { return r.sealed }

// Len returns the number of defined rules across all languages.
func (r *Registry) Len() int { return len(r.rules) }

// ForLanguage returns the rules for one language in registration order.
// The returned slice is a copy; callers may hold it across rebuilds.
func (r *Registry) ForLanguage(language string) []PairingRule {
	var out []PairingRule
	for _, rule := range r.rules {
		if rule.language == language {
			out = append(out, rule)
		}
	}
	return out
}
