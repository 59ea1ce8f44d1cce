// Package initializer implements object initialization:
// zero-filling the gaps between explicit sub-ranges, storing string
// literals byte-by-byte, packing bit-fields, and storing scalar
// elements at their sub-object offset. The front end has already sorted
// and resolved each cast.Initializer's ranges; this package only has to
// walk the list and synthesize the stores.
package initializer

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/funcbuilder"
	"github.com/pan0cc/qbegen/pkg/lower"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// Lower materializes init at dst: for each sorted range it zero-fills
// the gap since the cursor, then stores the range's value (a string,
// a bit-field, or a plain scalar/aggregate), and finally zero-fills
// from the last range's end to the object's full size.
func Lower(b *funcbuilder.Builder, dst ssa.Value, init *cast.Initializer) error {
	var cursor int64
	bitStorageStart := int64(-1) // no storage unit touched yet

	for _, r := range init.Ranges {
		if err := zeroFill(b, dst, cursor, r.Start); err != nil {
			return err
		}

		switch {
		case r.Expr == nil:
			// A pure zero-fill range with no explicit value; nothing
			// beyond the zeroing above to do.

		case isStringLit(r.Expr):
			lowerString(b, dst, r)

		case r.Bits.Before != 0 || r.Bits.After != 0:
			if err := lowerBitfield(b, dst, r, &bitStorageStart); err != nil {
				return err
			}

		default:
			if err := lowerScalar(b, dst, r); err != nil {
				return err
			}
		}

		cursor = r.End
	}

	return zeroFill(b, dst, cursor, init.Type.Size)
}

func isStringLit(e cast.Expr) bool {
	_, ok := e.(*cast.StringLit)
	return ok
}

// offsetAddr computes dst+off, skipping the add when off is zero so a
// downstream memory optimizer can see the bare base pointer.
func offsetAddr(b *funcbuilder.Builder, dst ssa.Value, off int64) ssa.Value {
	if off == 0 {
		return dst
	}
	return b.Emit(ssa.OAdd, ssa.L, dst, ssa.IntConst(uint64(off)))
}

// strideFor picks the largest power-of-two store (8/4/2/1 bytes) that
// fits both the remaining distance to the next initialized byte and the
// current byte offset's natural alignment.
func strideFor(cursor, remain int64) int64 {
	for _, s := range []int64{8, 4, 2, 1} {
		if remain >= s && cursor%s == 0 {
			return s
		}
	}
	return 1
}

func storeOpFor(size int64) (ssa.Op, error) {
	switch size {
	case 1:
		return ssa.OStoreB, nil
	case 2:
		return ssa.OStoreH, nil
	case 4:
		return ssa.OStoreW, nil
	case 8:
		return ssa.OStoreL, nil
	}
	return ssa.OpNone, ierr.Internal("invalid zero-fill stride %d", size)
}

// zeroFill synthesizes aligned zero stores covering the half-open byte
// range [from, to) of dst, choosing the largest power-of-two store that
// fits the current alignment and remaining distance at each step.
func zeroFill(b *funcbuilder.Builder, dst ssa.Value, from, to int64) error {
	cursor := from
	for cursor < to {
		size := strideFor(cursor, to-cursor)
		op, err := storeOpFor(size)
		if err != nil {
			return err
		}
		addr := offsetAddr(b, dst, cursor)
		b.Emit(op, ssa.ClassNone, addr, ssa.IntConst(0))
		cursor += size
	}
	return nil
}

// lowerString stores a string literal's bytes (truncated or zero-padded
// to the range's width) one byte at a time starting at r.Start.
func lowerString(b *funcbuilder.Builder, dst ssa.Value, r cast.InitRange) {
	s := r.Expr.(*cast.StringLit)
	width := r.End - r.Start
	for i := int64(0); i < width; i++ {
		var by byte
		if i < int64(len(s.Value)) {
			by = s.Value[i]
		}
		addr := offsetAddr(b, dst, r.Start+i)
		b.Emit(ssa.OStoreB, ssa.ClassNone, addr, ssa.IntConst(uint64(by)))
	}
}

// lowerBitfield packs r's value into its enclosing storage unit. The
// unit's byte extent is exactly [r.Start, r.End) (the front end has
// already widened the range to the smallest aligned storage unit
// containing the field); the unit is zeroed the first time this
// storage-unit offset is seen so sibling fields packed earlier into the
// same unit survive the read-modify-write that lower.Store performs.
func lowerBitfield(b *funcbuilder.Builder, dst ssa.Value, r cast.InitRange, bitStorageStart *int64) error {
	unitSize := r.End - r.Start
	addr := offsetAddr(b, dst, r.Start)

	if r.Start != *bitStorageStart {
		op, err := storeOpFor(unitSize)
		if err != nil {
			return err
		}
		b.Emit(op, ssa.ClassNone, addr, ssa.IntConst(0))
		*bitStorageStart = r.Start
	}

	v, err := lower.Lower(b, r.Expr)
	if err != nil {
		return err
	}

	unit := ctype.Int(unitSize, false)
	lv := lower.LValue{Addr: addr, Type: unit, Bits: r.Bits, Unit: unit}
	_, err = lower.Store(b, lv, v)
	return err
}

// lowerScalar stores an ordinary (non-string, non-bit-field) range: an
// aggregate sub-object is copied in alignment-sized chunks (at most 8
// bytes each, via lower.CopyAggregate), a scalar is stored
// directly with its own type's store opcode.
func lowerScalar(b *funcbuilder.Builder, dst ssa.Value, r cast.InitRange) error {
	addr := offsetAddr(b, dst, r.Start)
	t := r.Expr.Type()

	if t.IsAggregate() {
		b.DeclareType(t)
		src, err := lower.Lower(b, r.Expr)
		if err != nil {
			return err
		}
		return lower.CopyAggregate(b, addr, src, t.Size, t.Align)
	}

	v, err := lower.Lower(b, r.Expr)
	if err != nil {
		return err
	}
	_, _, _, store, err := ctype.Classify(t)
	if err != nil {
		return err
	}
	if store == ssa.OpNone {
		return ierr.Internal("cannot store initializer value of type with no SSA class")
	}
	b.Emit(store, ssa.ClassNone, addr, v)
	return nil
}
