package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

func TestDeclareTypeIgnoresScalars(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, ssa.NewModule())

	e.DeclareType(ctype.Int(4, true))
	e.DeclareType(ctype.Pointer(ctype.Void()))
	e.DeclareType(nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output for scalar types, got %q", buf.String())
	}
}

func TestDeclareTypeEmitsStructOnce(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, ssa.NewModule())

	st := ctype.Struct("point", []ctype.Field{
		{Name: "x", Type: ctype.Int(4, true), Offset: 0},
		{Name: "y", Type: ctype.Int(4, true), Offset: 4},
	}, 8, 4)

	e.DeclareType(st)
	e.DeclareType(st)

	output := buf.String()
	if strings.Count(output, "type :point") != 1 {
		t.Fatalf("expected exactly one type declaration, got:\n%s", output)
	}
	if !strings.Contains(output, "type :point = align 4 { w, w }") {
		t.Fatalf("expected flattened member list, got:\n%s", output)
	}
}

func TestDeclareTypeFlattensSharedStorageUnit(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, ssa.NewModule())

	st := ctype.Struct("flags", []ctype.Field{
		{Name: "a", Type: ctype.Int(4, false), Offset: 0, Bits: ctype.Bitfield{Before: 0, After: 29}},
		{Name: "b", Type: ctype.Int(4, false), Offset: 0, Bits: ctype.Bitfield{Before: 3, After: 24}},
		{Name: "c", Type: ctype.Int(4, true), Offset: 4},
	}, 8, 4)

	e.DeclareType(st)

	output := buf.String()
	if !strings.Contains(output, "type :flags = align 4 { w, w }") {
		t.Fatalf("expected the two bit-fields sharing offset 0 to collapse to one field, got:\n%s", output)
	}
}

func TestDeclareTypeEmitsNestedAggregateFirst(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, ssa.NewModule())

	inner := ctype.Struct("inner", []ctype.Field{{Name: "v", Type: ctype.Int(4, true)}}, 4, 4)
	outer := ctype.Struct("outer", []ctype.Field{{Name: "i", Type: inner}}, 4, 4)

	e.DeclareType(outer)

	output := buf.String()
	innerIdx := strings.Index(output, "type :inner")
	outerIdx := strings.Index(output, "type :outer")
	if innerIdx < 0 || outerIdx < 0 || innerIdx > outerIdx {
		t.Fatalf("expected inner type declared before outer, got:\n%s", output)
	}
	if !strings.Contains(output, "type :outer = align 4 { :inner }") {
		t.Fatalf("expected outer to reference inner by name, got:\n%s", output)
	}
}

func TestDeclareTypeUnionWrapsEachMember(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, ssa.NewModule())

	un := ctype.Union("u", []ctype.Field{
		{Name: "i", Type: ctype.Int(4, true)},
		{Name: "f", Type: ctype.Float32()},
	}, 4, 4)

	e.DeclareType(un)

	if !strings.Contains(buf.String(), "type :u = align 4 { { w }, { s } }") {
		t.Fatalf("expected each union member wrapped in braces, got:\n%s", buf.String())
	}
}

func TestDeclareTypeArrayEmitsElementAndLength(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, ssa.NewModule())

	arr := ctype.Array(ctype.Int(4, true), 10)

	e.DeclareType(arr)

	if !strings.Contains(buf.String(), "type :.anon.1 = { w 10 }") {
		t.Fatalf("expected anonymous array declaration, got:\n%s", buf.String())
	}
}
