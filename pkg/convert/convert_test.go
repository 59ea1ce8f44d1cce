package convert

import (
	"testing"

	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// harness is a minimal Blocks implementation backed by a real
// ssa.Function, just enough to exercise the CFG-shaped conversions
// without pulling in pkg/funcbuilder (which would create an import
// cycle back into this package's own tests).
type harness struct {
	mod *ssa.Module
	fn  *ssa.Function
}

func newHarness() *harness {
	mod := ssa.NewModule()
	fn := ssa.NewFunction("f", true, false, ssa.W)
	fn.AppendBlock(ssa.NewBlock(mod.NewLabel("start")))
	return &harness{mod: mod, fn: fn}
}

func (h *harness) NewBlock(hint string) *ssa.Block { return ssa.NewBlock(h.mod.NewLabel(hint)) }
func (h *harness) Label(b *ssa.Block)               { h.fn.AppendBlock(b) }

func (h *harness) Jmp(target *ssa.Block) {
	tail := h.fn.Tail()
	if !tail.Terminated() {
		tail.Term = ssa.Terminator{Kind: ssa.TJmp, Target: [2]*ssa.Block{target}}
	}
}

func (h *harness) Jnz(cond ssa.Value, ifTrue, ifFalse *ssa.Block) {
	tail := h.fn.Tail()
	if !tail.Terminated() {
		tail.Term = ssa.Terminator{Kind: ssa.TJnz, Cond: cond, Target: [2]*ssa.Block{ifTrue, ifFalse}}
	}
}

func (h *harness) Emit(op ssa.Op, class ssa.Class, a0, a1 ssa.Value) ssa.Value {
	return h.fn.Emit(h.fn.Tail(), op, class, a0, a1)
}

func (h *harness) EmitPhi(merge *ssa.Block, class ssa.Class) ssa.Value {
	res := h.fn.NewTemp()
	merge.Phi = ssa.PhiSlot{Present: true, Res: res, Class: class}
	return res
}

func (h *harness) FillPhi(merge *ssa.Block, slot int, pred *ssa.Block, val ssa.Value) {
	merge.Phi.Pred[slot] = pred
	merge.Phi.Val[slot] = val
}

var _ Blocks = (*harness)(nil)

func lastInst(h *harness) ssa.Instruction {
	insts := h.fn.Tail().Insts
	return insts[len(insts)-1]
}

func TestConvertSameWidthIntIsNoOp(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	out, err := Convert(h, ctype.Int(4, true), ctype.Int(4, false), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out != in {
		t.Fatalf("expected no-op same-width conversion to return the input value, got %v", out)
	}
	if len(h.fn.Tail().Insts) != 0 {
		t.Fatalf("expected no instructions emitted, got %d", len(h.fn.Tail().Insts))
	}
}

func TestConvertSignedNarrowingIsNoOp(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	out, err := Convert(h, ctype.Int(8, true), ctype.Int(4, true), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out != in {
		t.Fatalf("narrowing long -> int must be a no-op, got %v", out)
	}
}

func TestConvertPointerIntRetagIsNoOp(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	out, err := Convert(h, ctype.Pointer(ctype.Void()), ctype.Int(8, false), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out != in {
		t.Fatalf("pointer->ulong must re-tag without an instruction, got %v", out)
	}
}

func TestConvertWideningSignExtends(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	_, err := Convert(h, ctype.Int(2, true), ctype.Int(8, true), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	inst := lastInst(h)
	if inst.Op != ssa.OExtSH || inst.Class != ssa.L {
		t.Fatalf("expected extsh to class l, got %s/%s", inst.Op, inst.Class)
	}
}

func TestConvertWideningZeroExtends(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	_, err := Convert(h, ctype.Int(1, false), ctype.Int(4, false), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	inst := lastInst(h)
	if inst.Op != ssa.OExtUB || inst.Class != ssa.W {
		t.Fatalf("expected extub to class w, got %s/%s", inst.Op, inst.Class)
	}
}

func TestConvertToBool(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	_, err := Convert(h, ctype.Int(4, true), ctype.Bool(), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	inst := lastInst(h)
	if inst.Op != ssa.CmpOp(ssa.CNe, true, ssa.W) {
		t.Fatalf("expected signed cne comparison against zero, got %s", inst.Op)
	}
}

func TestConvertSignedIntToFloat(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	_, err := Convert(h, ctype.Int(4, true), ctype.Float64(), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	inst := lastInst(h)
	if inst.Op != ssa.OSwtof || inst.Class != ssa.D {
		t.Fatalf("expected swtof to class d, got %s/%s", inst.Op, inst.Class)
	}
}

func TestConvertUnsignedWordToFloatZeroExtends(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	_, err := Convert(h, ctype.Int(4, false), ctype.Float32(), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	insts := h.fn.Tail().Insts
	if len(insts) != 2 {
		t.Fatalf("expected extuw then sltof, got %d instructions", len(insts))
	}
	if insts[0].Op != ssa.OExtUW || insts[0].Class != ssa.L {
		t.Fatalf("expected extuw to l first, got %s/%s", insts[0].Op, insts[0].Class)
	}
	if insts[1].Op != ssa.OSltof || insts[1].Class != ssa.S {
		t.Fatalf("expected sltof to s second, got %s/%s", insts[1].Op, insts[1].Class)
	}
}

func TestConvertUnsignedLongToFloatBuildsRoundToOddCFG(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	res, err := Convert(h, ctype.Int(8, false), ctype.Float64(), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !res.IsSet() {
		t.Fatalf("expected a phi result value")
	}
	blocks := h.fn.Blocks()
	// start (big-check), small, big, join
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks in the u2f CFG, got %d", len(blocks))
	}
	start := blocks[0]
	if start.Term.Kind != ssa.TJnz {
		t.Fatalf("expected start block to end in jnz, got %v", start.Term.Kind)
	}
	join := blocks[3]
	if !join.Phi.Present || join.Phi.Class != ssa.D {
		t.Fatalf("expected join block to carry a double-class phi")
	}
	if join.Phi.Pred[0] == nil || join.Phi.Pred[1] == nil {
		t.Fatalf("expected both phi predecessors to be filled")
	}
}

func TestConvertSignedFloatToInt(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	_, err := Convert(h, ctype.Float64(), ctype.Int(4, true), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	inst := lastInst(h)
	if inst.Op != ssa.ODtoSI || inst.Class != ssa.W {
		t.Fatalf("expected dtosi to class w, got %s/%s", inst.Op, inst.Class)
	}
}

func TestConvertFloatToUnsignedWordReusesSignedPath(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	_, err := Convert(h, ctype.Float32(), ctype.Int(4, false), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	inst := lastInst(h)
	if inst.Op != ssa.OStoSI || inst.Class != ssa.W {
		t.Fatalf("expected stosi to class w, got %s/%s", inst.Op, inst.Class)
	}
}

func TestConvertFloatToUnsignedLongBuildsCFG(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	res, err := Convert(h, ctype.Float64(), ctype.Int(8, false), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !res.IsSet() {
		t.Fatalf("expected a phi result value")
	}
	blocks := h.fn.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks in the f2u CFG, got %d", len(blocks))
	}
	join := blocks[3]
	if !join.Phi.Present || join.Phi.Class != ssa.L {
		t.Fatalf("expected join block to carry a long-class phi")
	}
}

func TestConvertFloatWidensToDouble(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	_, err := Convert(h, ctype.Float32(), ctype.Float64(), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	inst := lastInst(h)
	if inst.Op != ssa.OExtS || inst.Class != ssa.D {
		t.Fatalf("expected exts to class d, got %s/%s", inst.Op, inst.Class)
	}
}

func TestConvertDoubleNarrowsToFloat(t *testing.T) {
	h := newHarness()
	in := h.fn.NewTemp()
	_, err := Convert(h, ctype.Float64(), ctype.Float32(), in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	inst := lastInst(h)
	if inst.Op != ssa.OTruncD || inst.Class != ssa.S {
		t.Fatalf("expected truncd to class s, got %s/%s", inst.Op, inst.Class)
	}
}
