package switchgen

import (
	"testing"

	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/diag"
	"github.com/pan0cc/qbegen/pkg/funcbuilder"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

type testSink struct{}

func (testSink) EmitStringData(name, value string) {}
func (testSink) DeclareType(t *ctype.Type)          {}

func newBuilder(t *testing.T) *funcbuilder.Builder {
	t.Helper()
	mod := ssa.NewModule()
	sig := ctype.Function(ctype.Void(), nil, false, true)
	b, err := funcbuilder.New(mod, testSink{}, "f", true, sig, nil)
	if err != nil {
		t.Fatalf("funcbuilder.New: %v", err)
	}
	return b
}

// TestSwitchThreeCasesRootsAtMiddleKey grounds scenario S3: cases
// 1, 5, 7 balance to an AVL rooted at 5, with 1 and 7 as children, so
// every case is reached within one equality and one ordered compare of
// the root.
func TestSwitchThreeCasesRootsAtMiddleKey(t *testing.T) {
	b := newBuilder(t)
	intT := ctype.Int(4, true)
	v := ssa.IntConst(5)

	body1 := b.NewBlock("case1")
	body5 := b.NewBlock("case5")
	body7 := b.NewBlock("case7")
	def := b.NewBlock("default")

	cases := []Case{
		{Key: 1, Body: body1},
		{Key: 5, Body: body5},
		{Key: 7, Body: body7},
	}

	sink := diag.NewWriterSink(&discard{})
	if err := Switch(b, sink, diag.Loc{}, intT, v, cases, def); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if sink.ErrCount != 0 {
		t.Fatalf("expected no duplicate-case diagnostics, got %d", sink.ErrCount)
	}

	entry := b.Fn.Blocks()[0]
	if entry.Term.Kind != ssa.TJnz {
		t.Fatalf("expected the root comparison to end in jnz")
	}
	if entry.Term.Target[0] != body5 {
		t.Fatalf("expected the root equality compare to target the middle case's body directly")
	}
	if len(entry.Insts) != 1 || entry.Insts[0].Op != ssa.CmpOp(ssa.CEq, false, ssa.W) {
		t.Fatalf("expected a single unsigned word equality compare at entry, got %+v", entry.Insts)
	}
}

func TestSwitchDuplicateCaseIsDiagnosed(t *testing.T) {
	b := newBuilder(t)
	intT := ctype.Int(4, true)
	v := ssa.IntConst(1)

	body1 := b.NewBlock("case1")
	body1b := b.NewBlock("case1b")
	def := b.NewBlock("default")

	cases := []Case{
		{Key: 1, Body: body1},
		{Key: 1, Body: body1b},
	}

	sink := diag.NewWriterSink(&discard{})
	if err := Switch(b, sink, diag.Loc{}, intT, v, cases, def); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if sink.ErrCount != 1 {
		t.Fatalf("expected exactly one duplicate-case diagnostic, got %d", sink.ErrCount)
	}
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
