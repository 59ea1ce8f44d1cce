package convert

import (
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

func floatResultClass(to *ctype.Type) ssa.Class {
	if to.Size == 4 {
		return ssa.S
	}
	return ssa.D
}

func intToFloat(cfg Blocks, from, to *ctype.Type, v ssa.Value) (ssa.Value, error) {
	dstClass := floatResultClass(to)
	if from.Signed {
		op := ssa.OSwtof
		if from.Size == 8 {
			op = ssa.OSltof
		}
		return cfg.Emit(op, dstClass, v, ssa.Value{}), nil
	}
	// Unsigned int -> float.
	if from.Size <= 4 {
		// Zero-extend to 64 bits, then use the signed long path; the
		// value now fits in the signed range.
		wide := cfg.Emit(ssa.OExtUW, ssa.L, v, ssa.Value{})
		return cfg.Emit(ssa.OSltof, dstClass, wide, ssa.Value{}), nil
	}
	return u64ToFloat(cfg, dstClass, v)
}

func floatToInt(cfg Blocks, from, to *ctype.Type, v ssa.Value) (ssa.Value, error) {
	op := ssa.OStoSI
	if from.Size == 8 {
		op = ssa.ODtoSI
	}
	dstClass, err := ctype.RegClass(to)
	if err != nil {
		return ssa.Value{}, err
	}
	if to.Signed || to.Size <= 4 {
		// Signed destination, or an unsigned destination narrow enough
		// that the signed 64-bit conversion already represents every
		// value: float -> u32 fits entirely within the signed 64-bit
		// range, so the plain conversion suffices.
		return cfg.Emit(op, dstClass, v, ssa.Value{}), nil
	}
	return floatToU64(cfg, from, op, v)
}
