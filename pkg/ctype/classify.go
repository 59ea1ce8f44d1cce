package ctype

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// Classify derives (base_class, data_class, load_opcode, store_opcode)
// for t:
//
//   - void                     -> zeros
//   - struct/union/array       -> (l, l, loadl, storel): addresses only
//   - 1-byte scalar            -> (w, w, loadsb|loadub, storeb)
//   - 2-byte scalar            -> (w, w, loadsh|loaduh, storeh)
//   - 4-byte int               -> (w, w, loadw, storew)
//   - 4-byte float             -> (s, s, loads, stores)
//   - 8-byte int               -> (l, l, loadl, storel)
//   - 8-byte float             -> (d, d, loadd, stored)
//   - 16-byte (long double)    -> ErrUnsupported
//
// Sub-word types share the w data class; the byte/half distinction
// lives in the load/store mnemonics (and in the data-section letters
// the emitter picks separately for aggregate fields).
func Classify(t *Type) (base, data ssa.Class, load, store ssa.Op, err error) {
	switch {
	case t.Kind == KVoid:
		return ssa.ClassNone, ssa.ClassNone, ssa.OpNone, ssa.OpNone, nil
	case t.IsAggregate() || t.Kind == KFunc:
		return ssa.L, ssa.L, ssa.OLoadL, ssa.OStoreL, nil
	case t.Kind == KPointer:
		return ssa.L, ssa.L, ssa.OLoadL, ssa.OStoreL, nil
	}

	switch t.Size {
	case 1:
		if t.Signed {
			return ssa.W, ssa.W, ssa.OLoadSB, ssa.OStoreB, nil
		}
		return ssa.W, ssa.W, ssa.OLoadUB, ssa.OStoreB, nil
	case 2:
		if t.Signed {
			return ssa.W, ssa.W, ssa.OLoadSH, ssa.OStoreH, nil
		}
		return ssa.W, ssa.W, ssa.OLoadUH, ssa.OStoreH, nil
	case 4:
		if t.Kind == KFloat {
			return ssa.S, ssa.S, ssa.OLoadS, ssa.OStoreS, nil
		}
		return ssa.W, ssa.W, ssa.OLoadW, ssa.OStoreW, nil
	case 8:
		if t.Kind == KFloat {
			return ssa.D, ssa.D, ssa.OLoadD, ssa.OStoreD, nil
		}
		return ssa.L, ssa.L, ssa.OLoadL, ssa.OStoreL, nil
	case 16:
		return ssa.ClassNone, ssa.ClassNone, ssa.OpNone, ssa.OpNone,
			ierr.Unsupported("long double (16-byte type %q) is not supported", t.Tag)
	}
	return ssa.ClassNone, ssa.ClassNone, ssa.OpNone, ssa.OpNone,
		ierr.Internal("type of size %d has no SSA class", t.Size)
}

// RegClass is a convenience over Classify for callers that only need the
// register class a value of t would live in (e.g. phi/result typing).
func RegClass(t *Type) (ssa.Class, error) {
	base, _, _, _, err := Classify(t)
	return base, err
}
