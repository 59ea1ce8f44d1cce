// Package lower implements expression and lvalue lowering: the
// translation of one typed C expression tree into a sequence of SSA
// instructions appended to a function builder's current block.
package lower

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/funcbuilder"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// LValue is an addressable location: either ordinary storage at Addr,
// or (for a not-yet-bound compiler-introduced temporary) a direct slot
// that skips memory entirely.
type LValue struct {
	Addr ssa.Value
	Type *ctype.Type
	Bits ctype.Bitfield // zero value for an ordinary (non-bit-field) lvalue
	Unit *ctype.Type    // the bit-field's declared storage type, nil otherwise

	Slot *ssa.Value // non-nil for a TempPlaceholder lvalue
}

func (lv LValue) isBitfield() bool { return lv.Bits.Before != 0 || lv.Bits.After != 0 }

// bitWidth returns a bit-field's width in bits given the enclosing
// storage unit's size in bits.
func bitWidth(bits ctype.Bitfield, storageBits int) int {
	return storageBits - bits.Before - bits.After
}

// LValueOf lowers e as an addressable location.
func LValueOf(b *funcbuilder.Builder, e cast.Expr) (LValue, error) {
	switch n := e.(type) {
	case *cast.Ident:
		if n.Decl.Kind == cast.DeclConst {
			return LValue{}, ierr.NewUserDiagnostic("%q is not an object or function", n.Decl.Name)
		}
		addr, ok := n.Decl.Addr()
		if !ok {
			return LValue{}, ierr.Internal("identifier %q lowered before its storage was bound", n.Decl.Name)
		}
		return LValue{Addr: addr, Type: n.Type()}, nil

	case *cast.Deref:
		ptr, err := Lower(b, n.X)
		if err != nil {
			return LValue{}, err
		}
		return LValue{Addr: ptr, Type: n.Type()}, nil

	case *cast.Field:
		base, err := LValueOf(b, n.X)
		if err != nil {
			return LValue{}, err
		}
		f := n.X.Type().Members[n.Index]
		addr := base.Addr
		if f.Offset != 0 {
			addr = b.Emit(ssa.OAdd, ssa.L, addr, ssa.IntConst(uint64(f.Offset)))
		}
		lv := LValue{Addr: addr, Type: n.Type()}
		if f.IsBitfield() {
			lv.Bits = f.Bits
			lv.Unit = f.Type
		}
		return lv, nil

	case *cast.TempPlaceholder:
		return LValue{Type: n.Type(), Slot: n.Slot}, nil

	default:
		return LValue{}, ierr.Internal("expression of type %T is not an lvalue", e)
	}
}

// roundup4 rounds n up to the next multiple of 4.
func roundup4(n int64) int64 {
	return (n + 3) &^ 3
}

// storageClass picks the register class used to hold the bit-field's
// enclosing storage unit: w for units of 4 bytes or fewer, l otherwise.
func storageClass(unitSize int64) ssa.Class {
	if unitSize <= 4 {
		return ssa.W
	}
	return ssa.L
}

func wideLoadOp(unitSize int64) ssa.Op {
	switch unitSize {
	case 1:
		return ssa.OLoadUB
	case 2:
		return ssa.OLoadUH
	case 4:
		return ssa.OLoadW
	default:
		return ssa.OLoadL
	}
}

func wideStoreOp(unitSize int64) ssa.Op {
	switch unitSize {
	case 1:
		return ssa.OStoreB
	case 2:
		return ssa.OStoreH
	case 4:
		return ssa.OStoreW
	default:
		return ssa.OStoreL
	}
}

func allOnes(class ssa.Class) ssa.Value {
	if class == ssa.L {
		return ssa.IntConst(^uint64(0))
	}
	return ssa.IntConst(uint64(uint32(^uint32(0))))
}

// extractBits pulls a bit-field's value out of a wide register value
// already holding its enclosing storage unit: shift left to discard the
// high padding, then shift right (arithmetic for a signed field,
// logical otherwise) to place the field in the low bits, sign- or
// zero-extending it in the process.
func extractBits(b *funcbuilder.Builder, class ssa.Class, wide ssa.Value, bits ctype.Bitfield, unitSize int64, signed bool) ssa.Value {
	after := bits.After
	if unitSize < 4 {
		after += int(roundup4(unitSize)-unitSize) * 8
	}
	shifted := b.Emit(ssa.OShl, class, wide, ssa.IntConst(uint64(after)))
	shiftOp := ssa.OShr
	if signed {
		shiftOp = ssa.OSar
	}
	return b.Emit(shiftOp, class, shifted, ssa.IntConst(uint64(bits.Before+after)))
}

// Load produces the rvalue held at lv: a bit-field extraction, a plain
// memory load, or the bound value of a not-yet-materialized temporary.
func Load(b *funcbuilder.Builder, lv LValue) (ssa.Value, error) {
	if lv.Slot != nil {
		return *lv.Slot, nil
	}
	if lv.isBitfield() {
		class := storageClass(lv.Unit.Size)
		wide := b.Emit(wideLoadOp(lv.Unit.Size), class, lv.Addr, ssa.Value{})
		return extractBits(b, class, wide, lv.Bits, lv.Unit.Size, lv.Type.Signed), nil
	}
	_, _, load, _, err := ctype.Classify(lv.Type)
	if err != nil {
		return ssa.Value{}, err
	}
	if load == ssa.OpNone {
		return ssa.Value{}, ierr.Internal("cannot load a value of type with no SSA class")
	}
	class, err := ctype.RegClass(lv.Type)
	if err != nil {
		return ssa.Value{}, err
	}
	return b.Emit(load, class, lv.Addr, ssa.Value{}), nil
}

// Store writes v to lv and returns the readback value: for an ordinary
// lvalue this is v itself; for a bit-field it is v re-extracted from the
// freshly written storage word, so the caller observes any truncation
// the field width imposed.
func Store(b *funcbuilder.Builder, lv LValue, v ssa.Value) (ssa.Value, error) {
	if lv.Slot != nil {
		*lv.Slot = v
		return v, nil
	}
	if lv.isBitfield() {
		return storeBitfield(b, lv, v)
	}
	_, _, _, store, err := ctype.Classify(lv.Type)
	if err != nil {
		return ssa.Value{}, err
	}
	if store == ssa.OpNone {
		return ssa.Value{}, ierr.Internal("cannot store a value of type with no SSA class")
	}
	b.Emit(store, ssa.ClassNone, lv.Addr, v)
	return v, nil
}

// storeBitfield implements the read-modify-write protocol: mask out the
// field's old bits, OR in the new (shifted, masked) value, store the
// whole unit back, and return the field re-extracted from the updated
// word so the assignment expression observes the stored-as-observed
// value (truncated/sign-corrected to the field's width).
func storeBitfield(b *funcbuilder.Builder, lv LValue, v ssa.Value) (ssa.Value, error) {
	class := storageClass(lv.Unit.Size)
	loadOp := wideLoadOp(lv.Unit.Size)
	storeOp := wideStoreOp(lv.Unit.Size)

	width := bitWidth(lv.Bits, int(lv.Unit.Size*8))
	var mask uint64
	if width >= 64 {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1)<<uint(width) - 1) << uint(lv.Bits.Before)
	}

	old := b.Emit(loadOp, class, lv.Addr, ssa.Value{})
	notMask := b.Emit(ssa.OXor, class, ssa.IntConst(mask), allOnes(class))
	cleared := b.Emit(ssa.OAnd, class, old, notMask)

	shifted := b.Emit(ssa.OShl, class, v, ssa.IntConst(uint64(lv.Bits.Before)))
	maskedShifted := b.Emit(ssa.OAnd, class, shifted, ssa.IntConst(mask))
	updated := b.Emit(ssa.OOr, class, cleared, maskedShifted)

	b.Emit(storeOp, ssa.ClassNone, lv.Addr, updated)

	return extractBits(b, class, updated, lv.Bits, lv.Unit.Size, lv.Type.Signed), nil
}

// CopyAggregate copies size bytes from src to dst, striding by align and
// using the matching scalar load/store pair at each step. Used for
// struct/union/array assignment, where the value itself never occupies
// a register.
func CopyAggregate(b *funcbuilder.Builder, dst, src ssa.Value, size, align int64) error {
	// The widest scalar load/store pair is 8 bytes; a 16-byte-aligned
	// aggregate still copies in 8-byte strides.
	stride := align
	if stride > 8 {
		stride = 8
	}
	loadOp, storeOp, class, err := copyOps(stride)
	if err != nil {
		return err
	}
	var off int64
	for off < size {
		srcAddr := src
		dstAddr := dst
		if off != 0 {
			srcAddr = b.Emit(ssa.OAdd, ssa.L, src, ssa.IntConst(uint64(off)))
			dstAddr = b.Emit(ssa.OAdd, ssa.L, dst, ssa.IntConst(uint64(off)))
		}
		v := b.Emit(loadOp, class, srcAddr, ssa.Value{})
		b.Emit(storeOp, ssa.ClassNone, dstAddr, v)
		off += stride
	}
	return nil
}

func copyOps(stride int64) (ssa.Op, ssa.Op, ssa.Class, error) {
	switch stride {
	case 1:
		return ssa.OLoadUB, ssa.OStoreB, ssa.W, nil
	case 2:
		return ssa.OLoadUH, ssa.OStoreH, ssa.W, nil
	case 4:
		return ssa.OLoadW, ssa.OStoreW, ssa.W, nil
	case 8:
		return ssa.OLoadL, ssa.OStoreL, ssa.L, nil
	}
	return ssa.OpNone, ssa.OpNone, ssa.ClassNone, ierr.Internal("invalid aggregate copy stride %d", stride)
}
