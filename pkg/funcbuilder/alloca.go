package funcbuilder

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// allocaOp picks alloc4/alloc8/alloc16 from a declaration's alignment:
// alignments 1, 2 and 4 all map to alloc4.
func allocaOp(align int64) (ssa.Op, error) {
	switch align {
	case 1, 2, 4:
		return ssa.OAlloc4, nil
	case 8:
		return ssa.OAlloc8, nil
	case 16:
		return ssa.OAlloc16, nil
	}
	return ssa.OpNone, ierr.Internal("invalid alignment %d reached the alloca dispatcher", align)
}

// Alloca emits an alloca instruction for a size-byte object of the given
// alignment into blk (normally the function's start block, so the
// allocation dominates every use regardless of where the declaration
// appears syntactically in the source). It appends directly rather than
// through Emit: the start block may already carry a terminator by the
// time a later declaration allocates its slot, and the post-terminator
// suppression rule must not swallow the allocation.
func (b *Builder) Alloca(blk *ssa.Block, align, size int64) (ssa.Value, error) {
	op, err := allocaOp(align)
	if err != nil {
		return ssa.Value{}, err
	}
	res := b.Fn.NewTemp()
	blk.Insts = append(blk.Insts, ssa.Instruction{
		Op:    op,
		Class: ssa.L,
		Res:   res,
		Arg:   [2]ssa.Value{ssa.IntConst(uint64(size))},
	})
	return res, nil
}

// AllocaLocal emits an alloca in the function's start block for a local
// declaration, regardless of the current tail block.
func (b *Builder) AllocaLocal(align, size int64) (ssa.Value, error) {
	return b.Alloca(b.Fn.Start, align, size)
}
