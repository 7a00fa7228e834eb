package autopair

import "github.com/rs/zerolog"

// Mode is the engine's per-buffer activation. Attach builds the trigger
// index and arms the keystroke handler; Detach discards the index. The
// host calls HandleSelfInsert synchronously from its keystroke dispatch,
// after the typed character has been inserted into the buffer; the host
// serializes input events, so no two calls run concurrently for the same
// buffer.
type Mode struct {
	buf    Buffer
	oracle Oracle
	index  *TriggerIndex
	log    zerolog.Logger
	active bool
}

// ModeOption configures a Mode at attach time.
type ModeOption func(*Mode)

// WithModeLogger attaches a logger; the default discards everything.
func WithModeLogger(log zerolog.Logger) ModeOption {
	return func(m *Mode) { m.log = log }
}

// Attach activates the engine for one buffer, building the trigger index
// for the buffer's language. Attaching seals the registry. Rule-set
// changes after attach require a Detach and a fresh Attach to be picked
// up.
func Attach(buf Buffer, oracle Oracle, reg *Registry, language string, opts ...ModeOption) *Mode {
	m := &Mode{
		buf:    buf,
		oracle: oracle,
		index:  BuildIndex(reg, language),
		log:    zerolog.Nop(),
		active: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log.Info().
		Str("language", language).
		Int("rules", m.index.Len()).
		Msg("autopair attached")
	return m
}

// Detach deactivates the mode and discards the trigger index.
func (m *Mode) Detach() {
	m.index = nil
	m.active = false
}

// Active reports whether the mode currently handles keystrokes.
func (m *Mode) Active() bool { return m.active }

// HandleSelfInsert runs the decision procedure for one just-typed
// character and reports whether a rule fired. It performs at most one
// insertion; when it returns false the keystroke's normal insertion
// behavior stands untouched. The procedure runs to completion
// synchronously, with no suspension points.
//
// Oracle or buffer failures are not masked; they propagate to the caller's
// error reporting for this keystroke, and the next keystroke is evaluated
// fresh.
func (m *Mode) HandleSelfInsert(ch rune) (bool, error) {
	if !m.active || m.index == nil {
		return false, nil
	}

	cursor := m.buf.Cursor()

	for class, rules := range m.index.groups {
		classifier, ok := classifierFor(class)
		if !ok || !classifier.Match(ch) {
			continue
		}

		pos := cursor
		if classifier.Lookup == LookupBeforeCursor {
			if cursor == 0 {
				continue
			}
			pos = cursor - 1
		}

		node := m.oracle.NodeAt(pos)
		if node == nil {
			continue
		}

		subtreeHasError := m.oracle.NearestErrorAncestor(node) != nil
		inLiteral := m.oracle.InStringOrComment(pos)

		for _, rule := range rules {
			if inLiteral && !rule.inStringsAndComments {
				continue
			}
			// Literal documented polarity: a rule that does not opt into
			// good-parse activation fires only inside an error subtree.
			if !subtreeHasError && !rule.activateInGoodParse {
				continue
			}
			if !rule.matcher.Match(node) {
				continue
			}

			// Capture the kind before inserting: the insertion re-parses the
			// document, invalidating nodes from the pre-edit tree.
			nodeKind := node.Kind()

			if err := m.insert(rule, cursor); err != nil {
				return false, err
			}

			m.log.Debug().
				Str("trigger", string(class)).
				Str("close", rule.close).
				Str("node", nodeKind).
				Bool("error_subtree", subtreeHasError).
				Msg("rule fired")

			// First successful insertion stops everything: remaining
			// rules, remaining groups, remaining classifiers.
			return true, nil
		}
	}

	return false, nil
}

// insert synthesizes the closing text and performs the single insertion at
// the cursor. With padding, the cursor ends up after the leading space,
// immediately before the closing text; without it, the cursor stays put,
// before the inserted text.
func (m *Mode) insert(rule PairingRule, cursor uint) error {
	text := rule.close
	if rule.pad {
		text = " " + text + " "
	}
	if err := m.buf.Insert(cursor, text); err != nil {
		return err
	}
	if rule.pad {
		m.buf.SetCursor(cursor + 1)
	}
	return nil
}
