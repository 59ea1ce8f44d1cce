package funcbuilder

import (
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// NewBlock allocates a fresh, unlinked block with a process-wide-unique
// label built from hint.
func (b *Builder) NewBlock(hint string) *ssa.Block {
	return ssa.NewBlock(b.Mod.NewLabel(hint))
}

// Label appends blk after the current tail and makes it the new tail.
func (b *Builder) Label(blk *ssa.Block) {
	b.Fn.AppendBlock(blk)
}

// Emit is the block & instruction store's append primitive, scoped to
// this function's temp counter.
func (b *Builder) Emit(op ssa.Op, class ssa.Class, a0, a1 ssa.Value) ssa.Value {
	return b.Fn.Emit(b.Fn.Tail(), op, class, a0, a1)
}

// Jmp sets the current tail's terminator to an unconditional jump to
// target, iff the tail is not already terminated.
func (b *Builder) Jmp(target *ssa.Block) {
	tail := b.Fn.Tail()
	if tail.Terminated() {
		return
	}
	tail.Term = ssa.Terminator{Kind: ssa.TJmp, Target: [2]*ssa.Block{target}}
}

// Jnz sets the current tail's terminator to a conditional jump on cond,
// iff not already terminated.
func (b *Builder) Jnz(cond ssa.Value, ifTrue, ifFalse *ssa.Block) {
	tail := b.Fn.Tail()
	if tail.Terminated() {
		return
	}
	tail.Term = ssa.Terminator{Kind: ssa.TJnz, Cond: cond, Target: [2]*ssa.Block{ifTrue, ifFalse}}
}

// Ret sets the current tail's terminator to a return, iff not already
// terminated. Pass the zero ssa.Value for a bare
// `ret` (void function).
func (b *Builder) Ret(val ssa.Value) {
	tail := b.Fn.Tail()
	if tail.Terminated() {
		return
	}
	tail.Term = ssa.Terminator{Kind: ssa.TRet, RetVal: val, HasRet: val.IsSet()}
}

// Goto looks up or creates the placeholder block for a named C label,
// collapsing repeat references to the same name to one block.
func (b *Builder) Goto(name string) *ssa.Block {
	if blk, ok := b.gotos[name]; ok {
		return blk
	}
	blk := b.NewBlock(name)
	b.gotos[name] = blk
	return blk
}

// ResolveLabel appends the (possibly already-referenced) placeholder
// block for a C label statement, creating it first if this is the
// label's first mention.
func (b *Builder) ResolveLabel(name string) {
	b.Label(b.Goto(name))
}

// EmitPhi installs the phi slot on merge, the join block for a
// two-predecessor merge built by the caller (short-circuit operators,
// conditional expressions, switch dispatch). Both incoming edges must
// already be known; FillPhi should be called once per predecessor after
// EmitPhi to record the predecessor/value pair.
func (b *Builder) EmitPhi(merge *ssa.Block, class ssa.Class) ssa.Value {
	res := b.Fn.NewTemp()
	merge.Phi = ssa.PhiSlot{Present: true, Res: res, Class: class}
	return res
}

// FillPhi records the (predecessor, incoming value) pair at slot
// (0 or 1) of merge's phi.
func (b *Builder) FillPhi(merge *ssa.Block, slot int, pred *ssa.Block, val ssa.Value) {
	merge.Phi.Pred[slot] = pred
	merge.Phi.Val[slot] = val
}

// Tail returns the current insertion point, so a caller building a
// multi-block CFG (short-circuit operators, conditionals, switch
// dispatch) can capture the predecessor block before branching away
// from it.
func (b *Builder) Tail() *ssa.Block { return b.Fn.Tail() }

// EmitCall appends a call or vacall instruction into the current tail.
func (b *Builder) EmitCall(vararg bool, class ssa.Class, callee ssa.Value) ssa.Value {
	return b.Fn.EmitCall(b.Fn.Tail(), vararg, class, callee)
}

// EmitArg appends a contiguous call-argument marker after a call/vacall
// instruction in the current tail.
func (b *Builder) EmitArg(class ssa.Class, val ssa.Value) bool {
	return b.Fn.EmitArg(b.Fn.Tail(), class, val)
}

// DeclareType forwards to the sink so a caller lowering a call or a
// declaration can ensure an aggregate type is streamed before it is
// referenced.
func (b *Builder) DeclareType(t *ctype.Type) { b.sink.DeclareType(t) }
