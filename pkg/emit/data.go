package emit

import (
	"fmt"
	"strings"

	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/cast"
)

// EmitData prints one global/static object definition as `[export] data
// $name = align A { <items> }`. Ranges are walked the same way
// pkg/initializer walks them for a local object, but each range
// contributes a printable item instead of a store instruction, and
// gaps coalesce into a single `z N` run rather than a sequence of
// aligned zero stores.
func (e *Emitter) EmitData(d *cast.Data) error {
	if d.Exported {
		fmt.Fprint(e.w, "export ")
	}
	fmt.Fprintf(e.w, "data $%s = align %d { ", d.Name, d.Align)

	var items []string
	var cursor int64
	bitStorageStart := int64(-1)
	var acc uint64
	var accBytes int64

	flushBits := func() {
		for i := int64(0); i < accBytes; i++ {
			items = append(items, fmt.Sprintf("b %d", (acc>>(8*uint(i)))&0xff))
		}
		acc, accBytes = 0, 0
	}

	isBitfield := func(r cast.InitRange) bool { return r.Bits.Before != 0 || r.Bits.After != 0 }

	for _, r := range d.Init.Ranges {
		// Leaving the storage unit currently being packed (this range
		// starts a new one, or isn't a bit-field at all): flush the
		// accumulator before anything else from this range is printed.
		if accBytes > 0 && (!isBitfield(r) || r.Start != bitStorageStart) {
			flushBits()
		}

		if r.Start > cursor {
			items = append(items, fmt.Sprintf("z %d", r.Start-cursor))
		}

		switch {
		case r.Expr == nil:
			// Pure zero-fill range; the z item above already covers it.

		case isStringLit(r.Expr):
			items = append(items, stringItem(r.Expr.(*cast.StringLit), r.End-r.Start))

		case isBitfield(r):
			if r.Start != bitStorageStart {
				bitStorageStart = r.Start
				accBytes = r.End - r.Start
			}
			v, err := constUint(r.Expr)
			if err != nil {
				return err
			}
			storageBits := accBytes * 8
			width := uint(storageBits) - uint(r.Bits.Before) - uint(r.Bits.After)
			shift := uint(r.Bits.Before)
			mask := (uint64(1)<<width - 1) << shift
			acc |= (v << shift) & mask

		default:
			letter, err := dataLetter(r.Expr.Type())
			if err != nil {
				return err
			}
			val, err := dataItemText(r.Expr)
			if err != nil {
				return err
			}
			items = append(items, fmt.Sprintf("%s %s", letter, val))
		}

		cursor = r.End
	}
	flushBits()

	if d.Init.Type.Size > cursor {
		items = append(items, fmt.Sprintf("z %d", d.Init.Type.Size-cursor))
	}

	fmt.Fprintln(e.w, strings.Join(items, ", ")+" }")
	return nil
}

func isStringLit(e cast.Expr) bool {
	_, ok := e.(*cast.StringLit)
	return ok
}

// stringItem renders a string literal truncated or zero-padded to
// width bytes as a single `b "…"` item plus a trailing `z` run covering
// the rest of width (the NUL terminator and any further padding).
func stringItem(s *cast.StringLit, width int64) string {
	text := s.Value
	if int64(len(text)) > width {
		text = text[:width]
	}
	pad := width - int64(len(text))
	if pad <= 0 {
		return fmt.Sprintf("b \"%s\"", quoteString(text))
	}
	return fmt.Sprintf("b \"%s\", z %d", quoteString(text), pad)
}

// constUint extracts the raw bit pattern of a compile-time-constant
// scalar expression for bit-field packing.
func constUint(e cast.Expr) (uint64, error) {
	switch v := e.(type) {
	case *cast.ConstInt:
		return v.Value, nil
	default:
		return 0, ierr.Internal("non-constant expression %T in static bit-field initializer", e)
	}
}

// dataItemText renders a scalar initializer expression as the textual
// `expr-item`: a numeric literal, a bare global name, or a global plus
// a byte offset.
func dataItemText(e cast.Expr) (string, error) {
	switch v := e.(type) {
	case *cast.ConstInt:
		return fmt.Sprintf("%d", v.Value), nil
	case *cast.ConstFloat:
		if v.Type().Size == 4 {
			return fmt.Sprintf("s_%.17g", v.Value), nil
		}
		return fmt.Sprintf("d_%.17g", v.Value), nil
	case *cast.GlobalRef:
		if v.Offset == 0 {
			return "$" + v.Name, nil
		}
		return fmt.Sprintf("$%s + %d", v.Name, v.Offset), nil
	}
	return "", ierr.Internal("expression %T cannot appear in a static initializer", e)
}
