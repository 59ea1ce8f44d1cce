package emit

import (
	"fmt"

	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/ctype"
)

// DeclareType implements funcbuilder.Sink. Scalars need no declaration
// at all; an aggregate is streamed as a `type :name = ...` line, once,
// with its element/member types declared first so a reader never sees a
// forward reference.
func (e *Emitter) DeclareType(t *ctype.Type) {
	if t == nil || !t.IsAggregate() {
		return
	}
	e.declareAggregate(t)
}

func (e *Emitter) declareAggregate(t *ctype.Type) {
	switch t.Kind {
	case ctype.KArray:
		e.DeclareType(t.Base)
	case ctype.KStruct, ctype.KUnion:
		for _, m := range t.Members {
			e.DeclareType(m.Type)
		}
	default:
		return
	}

	name, emitted := t.EmittedName()
	if !emitted {
		name = e.nameFor(t)
		t.MarkEmitted(name)
	}
	if !e.mod.MarkTypeEmitted(name) {
		return
	}

	switch t.Kind {
	case ctype.KArray:
		n := t.ArrayLen
		if n < 0 {
			n = 0
		}
		fmt.Fprintf(e.w, "type :%s = { %s %d }\n", name, typeRefName(t.Base), n)
	case ctype.KStruct:
		e.printStruct(name, t)
	case ctype.KUnion:
		e.printUnion(name, t)
	}
}

// nameFor returns the tag the type declaration should print under: the
// C tag if it has one, otherwise a fresh module-wide anonymous name.
func (e *Emitter) nameFor(t *ctype.Type) string {
	if t.Tag != "" {
		return t.Tag
	}
	return e.mod.AnonTypeName()
}

// typeRefName resolves the printable name of t's own declaration for
// use inside a containing aggregate's field list: scalars print their
// data-section letter (w/l/s/d/b/h), aggregates print `:name`.
func typeRefName(t *ctype.Type) string {
	if t.IsAggregate() {
		name, _ := t.EmittedName()
		return ":" + name
	}
	letter, err := dataLetter(t)
	if err != nil {
		return "w"
	}
	return letter
}

// printStruct groups adjacent members sharing a storage unit into a
// single field: bit-field packing collapses to the largest member in
// that unit, since the SSA type system has no bit-field concept of its
// own.
func (e *Emitter) printStruct(name string, t *ctype.Type) {
	fields := flattenStorageUnits(t.Members)
	fmt.Fprintf(e.w, "type :%s = align %d { ", name, t.Align)
	for i, f := range fields {
		if i > 0 {
			fmt.Fprint(e.w, ", ")
		}
		fmt.Fprint(e.w, typeRefName(f.Type))
	}
	fmt.Fprintln(e.w, " }")
}

// printUnion wraps every member's type in its own one-element brace
// group, per the `{T}, {T}, …` union shape.
func (e *Emitter) printUnion(name string, t *ctype.Type) {
	fmt.Fprintf(e.w, "type :%s = align %d { ", name, t.Align)
	for i, m := range t.Members {
		if i > 0 {
			fmt.Fprint(e.w, ", ")
		}
		fmt.Fprintf(e.w, "{ %s }", typeRefName(m.Type))
	}
	fmt.Fprintln(e.w, " }")
}

// flattenStorageUnits collapses runs of members sharing the same
// storage-unit byte Offset (the shape bit-field packing produces) into
// one representative field apiece, keeping the largest member of each
// unit since it alone determines the unit's class.
func flattenStorageUnits(members []ctype.Field) []ctype.Field {
	var out []ctype.Field
	i := 0
	for i < len(members) {
		best := members[i]
		j := i + 1
		for j < len(members) && members[j].Offset == best.Offset {
			if members[j].Type.Size > best.Type.Size {
				best = members[j]
			}
			j++
		}
		out = append(out, best)
		i = j
	}
	return out
}

// dataLetter is the one-character QBE data-section/field type letter
// for a scalar type: finer-grained than ssa.Class, which only models
// register classes (w/l/s/d) and has no byte/half letters.
func dataLetter(t *ctype.Type) (string, error) {
	if t.Kind == ctype.KPointer {
		return "l", nil
	}
	switch t.Size {
	case 1:
		return "b", nil
	case 2:
		return "h", nil
	case 4:
		if t.Kind == ctype.KFloat {
			return "s", nil
		}
		return "w", nil
	case 8:
		if t.Kind == ctype.KFloat {
			return "d", nil
		}
		return "l", nil
	}
	return "", ierr.Internal("type of size %d has no data-section letter", t.Size)
}
