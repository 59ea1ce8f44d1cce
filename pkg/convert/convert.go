// Package convert implements the scalar conversion engine driving
// Cast and the implicit conversions around assignment, arithmetic and
// call arguments: integer widening/narrowing, pointer<->integer
// retagging, bool normalization, and float<->int conversion. Most
// conversions are a single instruction; the two unsigned-int<->float
// directions the target lacks natively are
// lowered as small explicit CFGs, so this package needs just enough of
// the function builder's control-flow primitives (Blocks) to build
// those, without importing pkg/funcbuilder itself.
package convert

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// Blocks is the subset of funcbuilder.Builder's API the CFG-shaped
// conversions need. funcbuilder.Builder satisfies this interface
// structurally; no import cycle is created because this package never
// names funcbuilder.Builder directly.
type Blocks interface {
	NewBlock(hint string) *ssa.Block
	Label(b *ssa.Block)
	Jmp(target *ssa.Block)
	Jnz(cond ssa.Value, ifTrue, ifFalse *ssa.Block)
	Emit(op ssa.Op, class ssa.Class, a0, a1 ssa.Value) ssa.Value
	EmitPhi(merge *ssa.Block, class ssa.Class) ssa.Value
	FillPhi(merge *ssa.Block, slot int, pred *ssa.Block, val ssa.Value)
}

// Convert lowers v (of type from) to type to, dispatching on the
// (source kind, destination kind) pair.
func Convert(cfg Blocks, from, to *ctype.Type, v ssa.Value) (ssa.Value, error) {
	if sameRepr(from, to) {
		return v, nil
	}

	switch {
	case to.IsBoolType:
		return toBool(cfg, from, v)

	case (from.Kind == ctype.KPointer || from.Kind == ctype.KInt) &&
		(to.Kind == ctype.KPointer || to.Kind == ctype.KInt):
		return convertInt(cfg, from, to, v)

	case from.Kind == ctype.KInt && to.Kind == ctype.KFloat:
		return intToFloat(cfg, from, to, v)

	case from.Kind == ctype.KFloat && to.Kind == ctype.KInt:
		return floatToInt(cfg, from, to, v)

	case from.Kind == ctype.KFloat && to.Kind == ctype.KFloat:
		return floatToFloat(cfg, from, to, v), nil
	}
	return ssa.Value{}, ierr.Internal("no conversion defined from %v to %v", from.Kind, to.Kind)
}

// sameRepr reports whether from and to share an SSA representation, so
// no instruction at all is needed: pointer<->integer of the same width
// is always a re-tagging, and signed narrowing or
// same-size casts are no-ops.
func sameRepr(from, to *ctype.Type) bool {
	if to.IsBoolType {
		return false
	}
	fromIsWord := from.Kind == ctype.KPointer || (from.Kind == ctype.KInt && from.Size >= 4)
	toIsWord := to.Kind == ctype.KPointer || (to.Kind == ctype.KInt && to.Size >= 4)
	if fromIsWord && toIsWord && from.Size == to.Size {
		return true
	}
	if from.Kind == ctype.KInt && to.Kind == ctype.KInt && to.Size <= from.Size && to.Size >= 4 {
		return true
	}
	return false
}

func toBool(cfg Blocks, from *ctype.Type, v ssa.Value) (ssa.Value, error) {
	class, err := ctype.RegClass(from)
	if err != nil {
		return ssa.Value{}, err
	}
	var zero ssa.Value
	switch class {
	case ssa.W:
		zero = ssa.IntConst(0)
	case ssa.L:
		zero = ssa.IntConst(0)
	case ssa.S:
		zero = ssa.FloatConst(0)
	case ssa.D:
		zero = ssa.DoubleConst(0)
	default:
		return ssa.Value{}, ierr.Internal("bool cast from void/aggregate type")
	}
	return cfg.Emit(ssa.CmpOp(ssa.CNe, !from.IsUnsignedLike(), class), ssa.W, v, zero), nil
}

func extOpForWidening(from *ctype.Type) ssa.Op {
	if from.Signed {
		switch from.Size {
		case 1:
			return ssa.OExtSB
		case 2:
			return ssa.OExtSH
		case 4:
			return ssa.OExtSW
		}
	} else {
		switch from.Size {
		case 1:
			return ssa.OExtUB
		case 2:
			return ssa.OExtUH
		case 4:
			return ssa.OExtUW
		}
	}
	return ssa.OpNone
}

func convertInt(cfg Blocks, from, to *ctype.Type, v ssa.Value) (ssa.Value, error) {
	if from.Kind == ctype.KPointer || to.Kind == ctype.KPointer {
		// Pointer<->integer re-tags as unsigned long; same width always.
		return v, nil
	}
	if to.Size <= from.Size {
		// Narrowing, or same-size: no instruction needed.
		return v, nil
	}
	dstClass, err := ctype.RegClass(to)
	if err != nil {
		return ssa.Value{}, err
	}
	op := extOpForWidening(from)
	if op == ssa.OpNone {
		return ssa.Value{}, ierr.Internal("no extension opcode for %d-byte %s source", from.Size, signStr(from.Signed))
	}
	return cfg.Emit(op, dstClass, v, ssa.Value{}), nil
}

func signStr(signed bool) string {
	if signed {
		return "signed"
	}
	return "unsigned"
}

func floatToFloat(cfg Blocks, from, to *ctype.Type, v ssa.Value) ssa.Value {
	if from.Size == to.Size {
		return v
	}
	if to.Size > from.Size {
		return cfg.Emit(ssa.OExtS, ssa.D, v, ssa.Value{})
	}
	return cfg.Emit(ssa.OTruncD, ssa.S, v, ssa.Value{})
}
