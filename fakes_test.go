package autopair

import (
	"errors"
	"fmt"
	"strings"
)

// fakeNode is a hand-built syntax node for engine tests.
type fakeNode struct {
	kind   string
	parent *fakeNode
	named  bool
	err    bool
	start  uint
	end    uint
}

func (n *fakeNode) Kind() string { return n.kind }

func (n *fakeNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) IsNamed() bool   { return n.named }
func (n *fakeNode) IsError() bool   { return n.err }
func (n *fakeNode) StartByte() uint { return n.start }
func (n *fakeNode) EndByte() uint   { return n.end }

// fakeOracle answers lookups from fixed tables.
type fakeOracle struct {
	nodes   map[uint]*fakeNode
	literal map[uint]bool
}

func (o *fakeOracle) NodeAt(pos uint) Node {
	n, ok := o.nodes[pos]
	if !ok {
		return nil
	}
	return n
}

func (o *fakeOracle) InStringOrComment(pos uint) bool {
	return o.literal[pos]
}

func (o *fakeOracle) NearestErrorAncestor(n Node) Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.IsError() {
			return cur
		}
	}
	return nil
}

// fakeBuffer is an in-memory Buffer that counts insertions.
type fakeBuffer struct {
	text      string
	cursor    uint
	inserts   int
	insertErr error
}

func (b *fakeBuffer) Cursor() uint { return b.cursor }

func (b *fakeBuffer) Insert(at uint, text string) error {
	if b.insertErr != nil {
		return b.insertErr
	}
	b.inserts++
	b.text = b.text[:at] + text + b.text[at:]
	return nil
}

func (b *fakeBuffer) SetCursor(at uint) { b.cursor = at }

// fakeCompilers compiles patterns of the form "(kind)" into a predicate
// matching nodes of that kind, close enough to real tree queries for
// registry and matcher tests.
type fakeCompilers struct {
	forErr     error // returned by CompilerFor when set
	compileErr error // returned by Compile when set
}

func (f fakeCompilers) CompilerFor(language string) (QueryCompiler, error) {
	if f.forErr != nil {
		return nil, f.forErr
	}
	return fakeCompiler{compileErr: f.compileErr}, nil
}

type fakeCompiler struct {
	compileErr error
}

var errBadPattern = errors.New("bad pattern")

func (c fakeCompiler) Compile(pattern string) (NodePredicate, error) {
	if c.compileErr != nil {
		return nil, c.compileErr
	}
	kind := strings.Trim(pattern, "() ")
	if kind == "" {
		return nil, fmt.Errorf("%w: %q", errBadPattern, pattern)
	}
	return func(n Node) bool { return n != nil && n.Kind() == kind }, nil
}

// kindPredicate matches nodes by kind, the raw authoring mode counterpart
// of the fake compiler.
func kindPredicate(kinds ...string) NodePredicate {
	return func(n Node) bool {
		if n == nil {
			return false
		}
		for _, k := range kinds {
			if n.Kind() == k {
				return true
			}
		}
		return false
	}
}
