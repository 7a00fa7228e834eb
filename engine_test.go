package autopair

import (
	"errors"
	"testing"
)

func TestHandleSelfInsertPadScenario(t *testing.T) {
	// Typing a space after "let" in an incomplete binding inserts " in "
	// with the cursor resting after the leading pad.
	reg := NewRegistry(fakeCompilers{})
	err := reg.Define(RuleSpec{
		Language:            "ml",
		Trigger:             TriggerWhitespace,
		Predicate:           kindPredicate("let"),
		Close:               "in",
		Pad:                 true,
		ActivateInGoodParse: true,
	})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}

	letNode := &fakeNode{kind: "let", start: 0, end: 3}
	oracle := &fakeOracle{nodes: map[uint]*fakeNode{3: letNode}}
	buf := &fakeBuffer{text: "let ", cursor: 4}

	mode := Attach(buf, oracle, reg, "ml")
	handled, err := mode.HandleSelfInsert(' ')
	if err != nil {
		t.Fatalf("HandleSelfInsert: %v", err)
	}
	if !handled {
		t.Fatal("expected rule to fire")
	}
	if got, want := buf.text, "let  in "; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if got, want := buf.cursor, uint(5); got != want {
		t.Errorf("cursor = %d, want %d", got, want)
	}
}

func TestHandleSelfInsertOpenBraceScenario(t *testing.T) {
	// Typing { inserts } right after the cursor, leaving the cursor
	// between the braces.
	reg := NewRegistry(fakeCompilers{})
	err := reg.Define(RuleSpec{
		Language:            "go",
		Trigger:             TriggerOpenDelimiter,
		Predicate:           kindPredicate("{"),
		Close:               "}",
		ActivateInGoodParse: true,
	})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}

	brace := &fakeNode{kind: "{", start: 0, end: 1}
	oracle := &fakeOracle{nodes: map[uint]*fakeNode{1: brace}}
	buf := &fakeBuffer{text: "{", cursor: 1}

	mode := Attach(buf, oracle, reg, "go")
	handled, err := mode.HandleSelfInsert('{')
	if err != nil {
		t.Fatalf("HandleSelfInsert: %v", err)
	}
	if !handled {
		t.Fatal("expected rule to fire")
	}
	if got, want := buf.text, "{}"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if got, want := buf.cursor, uint(1); got != want {
		t.Errorf("cursor = %d, want %d", got, want)
	}
}

func TestHandleSelfInsertSelectsMatchingRule(t *testing.T) {
	// Two whitespace rules; only the if-rule's predicate matches the
	// located node, so the =-rule must not fire.
	reg := NewRegistry(fakeCompilers{})
	for _, spec := range []RuleSpec{
		{Language: "ml", Trigger: TriggerWhitespace, Predicate: kindPredicate("="), Close: ";", ActivateInGoodParse: true},
		{Language: "ml", Trigger: TriggerWhitespace, Predicate: kindPredicate("if"), Close: "then else", ActivateInGoodParse: true},
	} {
		if err := reg.Define(spec); err != nil {
			t.Fatalf("Define: %v", err)
		}
	}

	ifNode := &fakeNode{kind: "if", start: 0, end: 2}
	oracle := &fakeOracle{nodes: map[uint]*fakeNode{2: ifNode}}
	buf := &fakeBuffer{text: "if ", cursor: 3}

	mode := Attach(buf, oracle, reg, "ml")
	handled, err := mode.HandleSelfInsert(' ')
	if err != nil {
		t.Fatalf("HandleSelfInsert: %v", err)
	}
	if !handled {
		t.Fatal("expected if rule to fire")
	}
	if got, want := buf.text, "if then else"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestHandleSelfInsertFirstMatchWins(t *testing.T) {
	// Both rules match; the first-registered one fires and the second's
	// predicate is never evaluated.
	secondEvaluated := false

	reg := NewRegistry(fakeCompilers{})
	specs := []RuleSpec{
		{Language: "go", Trigger: TriggerOpenDelimiter, Predicate: kindPredicate("{"), Close: "}", ActivateInGoodParse: true},
		{Language: "go", Trigger: TriggerOpenDelimiter, Close: "}}", ActivateInGoodParse: true,
			Predicate: func(n Node) bool {
				secondEvaluated = true
				return true
			}},
	}
	for _, spec := range specs {
		if err := reg.Define(spec); err != nil {
			t.Fatalf("Define: %v", err)
		}
	}

	brace := &fakeNode{kind: "{"}
	oracle := &fakeOracle{nodes: map[uint]*fakeNode{1: brace}}
	buf := &fakeBuffer{text: "{", cursor: 1}

	mode := Attach(buf, oracle, reg, "go")
	handled, err := mode.HandleSelfInsert('{')
	if err != nil {
		t.Fatalf("HandleSelfInsert: %v", err)
	}
	if !handled {
		t.Fatal("expected first rule to fire")
	}
	if buf.inserts != 1 {
		t.Errorf("inserts = %d, want 1", buf.inserts)
	}
	if buf.text != "{}" {
		t.Errorf("text = %q, want %q", buf.text, "{}")
	}
	if secondEvaluated {
		t.Error("second rule's predicate was evaluated after the first match")
	}
}

func TestHandleSelfInsertAtMostOneInsertion(t *testing.T) {
	// Three matching rules across the group still produce exactly one
	// insertion per keystroke.
	reg := NewRegistry(fakeCompilers{})
	for range 3 {
		err := reg.Define(RuleSpec{
			Language:            "go",
			Trigger:             TriggerOpenDelimiter,
			Predicate:           kindPredicate("("),
			Close:               ")",
			ActivateInGoodParse: true,
		})
		if err != nil {
			t.Fatalf("Define: %v", err)
		}
	}

	paren := &fakeNode{kind: "("}
	oracle := &fakeOracle{nodes: map[uint]*fakeNode{1: paren}}
	buf := &fakeBuffer{text: "(", cursor: 1}

	mode := Attach(buf, oracle, reg, "go")
	if _, err := mode.HandleSelfInsert('('); err != nil {
		t.Fatalf("HandleSelfInsert: %v", err)
	}
	if buf.inserts != 1 {
		t.Errorf("inserts = %d, want 1", buf.inserts)
	}
}

func TestHandleSelfInsertStringCommentGating(t *testing.T) {
	tests := []struct {
		name        string
		optIn       bool
		wantHandled bool
	}{
		{name: "rule without opt-in never fires in a string", optIn: false, wantHandled: false},
		{name: "rule with opt-in fires in a string", optIn: true, wantHandled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(fakeCompilers{})
			err := reg.Define(RuleSpec{
				Language:             "go",
				Trigger:              TriggerOpenDelimiter,
				Predicate:            kindPredicate("{"),
				Close:                "}",
				InStringsAndComments: tt.optIn,
				ActivateInGoodParse:  true,
			})
			if err != nil {
				t.Fatalf("Define: %v", err)
			}

			brace := &fakeNode{kind: "{"}
			oracle := &fakeOracle{
				nodes:   map[uint]*fakeNode{1: brace},
				literal: map[uint]bool{1: true},
			}
			buf := &fakeBuffer{text: "{", cursor: 1}

			mode := Attach(buf, oracle, reg, "go")
			handled, err := mode.HandleSelfInsert('{')
			if err != nil {
				t.Fatalf("HandleSelfInsert: %v", err)
			}
			if handled != tt.wantHandled {
				t.Errorf("handled = %v, want %v", handled, tt.wantHandled)
			}
		})
	}
}

func TestHandleSelfInsertErrorStateGating(t *testing.T) {
	tests := []struct {
		name        string
		inGoodParse bool
		chainErr    bool
		wantHandled bool
	}{
		{name: "error-only rule stays quiet on clean parse", inGoodParse: false, chainErr: false, wantHandled: false},
		{name: "error-only rule fires inside error subtree", inGoodParse: false, chainErr: true, wantHandled: true},
		{name: "good-parse rule fires on clean parse", inGoodParse: true, chainErr: false, wantHandled: true},
		{name: "good-parse rule fires inside error subtree", inGoodParse: true, chainErr: true, wantHandled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(fakeCompilers{})
			err := reg.Define(RuleSpec{
				Language:            "go",
				Trigger:             TriggerOpenDelimiter,
				Predicate:           kindPredicate("{"),
				Close:               "}",
				ActivateInGoodParse: tt.inGoodParse,
			})
			if err != nil {
				t.Fatalf("Define: %v", err)
			}

			parent := &fakeNode{kind: "block", err: tt.chainErr}
			brace := &fakeNode{kind: "{", parent: parent}
			oracle := &fakeOracle{nodes: map[uint]*fakeNode{1: brace}}
			buf := &fakeBuffer{text: "{", cursor: 1}

			mode := Attach(buf, oracle, reg, "go")
			handled, err := mode.HandleSelfInsert('{')
			if err != nil {
				t.Fatalf("HandleSelfInsert: %v", err)
			}
			if handled != tt.wantHandled {
				t.Errorf("handled = %v, want %v", handled, tt.wantHandled)
			}
		})
	}
}

func TestHandleSelfInsertNoop(t *testing.T) {
	reg := NewRegistry(fakeCompilers{})
	err := reg.Define(RuleSpec{
		Language:            "go",
		Trigger:             TriggerOpenDelimiter,
		Predicate:           kindPredicate("{"),
		Close:               "}",
		ActivateInGoodParse: true,
	})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}

	tests := []struct {
		name   string
		ch     rune
		cursor uint
		nodes  map[uint]*fakeNode
	}{
		{
			name:   "character matches no classifier in the index",
			ch:     'a',
			cursor: 1,
			nodes:  map[uint]*fakeNode{1: {kind: "{"}},
		},
		{
			name:   "no node at lookup position",
			ch:     '{',
			cursor: 1,
			nodes:  map[uint]*fakeNode{},
		},
		{
			name:   "predicate rejects the located node",
			ch:     '(',
			cursor: 1,
			nodes:  map[uint]*fakeNode{1: {kind: "("}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &fakeOracle{nodes: tt.nodes}
			buf := &fakeBuffer{text: "x", cursor: tt.cursor}

			mode := Attach(buf, oracle, reg, "go")
			handled, err := mode.HandleSelfInsert(tt.ch)
			if err != nil {
				t.Fatalf("HandleSelfInsert: %v", err)
			}
			if handled {
				t.Error("expected no-op")
			}
			if buf.inserts != 0 {
				t.Errorf("inserts = %d, want 0", buf.inserts)
			}
		})
	}
}

func TestHandleSelfInsertWhitespaceAtBufferStart(t *testing.T) {
	// Cursor at offset 0 cannot look one position back; the pass is
	// skipped without underflow.
	reg := NewRegistry(fakeCompilers{})
	err := reg.Define(RuleSpec{
		Language:            "ml",
		Trigger:             TriggerWhitespace,
		Predicate:           kindPredicate("let"),
		Close:               "in",
		ActivateInGoodParse: true,
	})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}

	oracle := &fakeOracle{nodes: map[uint]*fakeNode{}}
	buf := &fakeBuffer{cursor: 0}

	mode := Attach(buf, oracle, reg, "ml")
	handled, err := mode.HandleSelfInsert(' ')
	if err != nil {
		t.Fatalf("HandleSelfInsert: %v", err)
	}
	if handled {
		t.Error("expected no-op at buffer start")
	}
}

func TestHandleSelfInsertDetached(t *testing.T) {
	reg := NewRegistry(fakeCompilers{})
	err := reg.Define(RuleSpec{
		Language:            "go",
		Trigger:             TriggerOpenDelimiter,
		Predicate:           kindPredicate("{"),
		Close:               "}",
		ActivateInGoodParse: true,
	})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}

	brace := &fakeNode{kind: "{"}
	oracle := &fakeOracle{nodes: map[uint]*fakeNode{1: brace}}
	buf := &fakeBuffer{text: "{", cursor: 1}

	mode := Attach(buf, oracle, reg, "go")
	mode.Detach()

	if mode.Active() {
		t.Error("mode still active after Detach")
	}
	handled, err := mode.HandleSelfInsert('{')
	if err != nil {
		t.Fatalf("HandleSelfInsert: %v", err)
	}
	if handled || buf.inserts != 0 {
		t.Error("detached mode must not handle keystrokes")
	}
}

func TestHandleSelfInsertBufferFailurePropagates(t *testing.T) {
	reg := NewRegistry(fakeCompilers{})
	err := reg.Define(RuleSpec{
		Language:            "go",
		Trigger:             TriggerOpenDelimiter,
		Predicate:           kindPredicate("{"),
		Close:               "}",
		ActivateInGoodParse: true,
	})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}

	wantErr := errors.New("buffer refused the edit")
	brace := &fakeNode{kind: "{"}
	oracle := &fakeOracle{nodes: map[uint]*fakeNode{1: brace}}
	buf := &fakeBuffer{text: "{", cursor: 1, insertErr: wantErr}

	mode := Attach(buf, oracle, reg, "go")
	handled, err := mode.HandleSelfInsert('{')
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if handled {
		t.Error("failed insertion must not report handled")
	}
}
