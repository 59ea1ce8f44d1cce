package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

func TestEmitDataScalarWithGap(t *testing.T) {
	val := &cast.ConstInt{Value: 7}
	val.Typ = ctype.Int(4, true)

	d := &cast.Data{
		Name:     "counter",
		Exported: true,
		Align:    4,
		Init: cast.Initializer{
			Type: ctype.Int(8, true),
			Ranges: []cast.InitRange{
				{Start: 4, End: 8, Expr: val},
			},
		},
	}

	var buf bytes.Buffer
	e := New(&buf, ssa.NewModule())
	if err := e.EmitData(d); err != nil {
		t.Fatalf("EmitData: %v", err)
	}

	want := "export data $counter = align 4 { z 4, w 7 }\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestEmitDataStringLiteral(t *testing.T) {
	d := &cast.Data{
		Name:  "msg",
		Align: 1,
		Init: cast.Initializer{
			Type: ctype.Array(ctype.Int(1, true), 6),
			Ranges: []cast.InitRange{
				{Start: 0, End: 6, Expr: &cast.StringLit{Value: "hi"}},
			},
		},
	}

	var buf bytes.Buffer
	e := New(&buf, ssa.NewModule())
	if err := e.EmitData(d); err != nil {
		t.Fatalf("EmitData: %v", err)
	}

	if !strings.Contains(buf.String(), `b "hi", z 4`) {
		t.Fatalf("expected string item with zero-padding, got %q", buf.String())
	}
}

func TestEmitDataGlobalRefWithOffset(t *testing.T) {
	ref := &cast.GlobalRef{Name: "table", Offset: 12}
	ref.Typ = ctype.Pointer(ctype.Void())
	d := &cast.Data{
		Name:  "p",
		Align: 8,
		Init: cast.Initializer{
			Type: ctype.Pointer(ctype.Void()),
			Ranges: []cast.InitRange{
				{Start: 0, End: 8, Expr: ref},
			},
		},
	}

	var buf bytes.Buffer
	e := New(&buf, ssa.NewModule())
	if err := e.EmitData(d); err != nil {
		t.Fatalf("EmitData: %v", err)
	}

	if !strings.Contains(buf.String(), "l $table + 12") {
		t.Fatalf("expected global+offset item, got %q", buf.String())
	}
}

func TestEmitDataBitfieldsPackIntoOneByteRun(t *testing.T) {
	unsigned := ctype.Int(4, false)
	a := &cast.ConstInt{Value: 3}
	a.Typ = unsigned
	bv := &cast.ConstInt{Value: 5}
	bv.Typ = unsigned

	d := &cast.Data{
		Name:  "flags",
		Align: 4,
		Init: cast.Initializer{
			Type: ctype.Int(4, true),
			Ranges: []cast.InitRange{
				{Start: 0, End: 4, Bits: ctype.Bitfield{Before: 0, After: 29}, Expr: a},
				{Start: 0, End: 4, Bits: ctype.Bitfield{Before: 3, After: 24}, Expr: bv},
			},
		},
	}

	var buf bytes.Buffer
	e := New(&buf, ssa.NewModule())
	if err := e.EmitData(d); err != nil {
		t.Fatalf("EmitData: %v", err)
	}

	// a (3, width 3) at bit 0, b (5, width 5) at bit 3: byte0 = 3 | 5<<3 = 0x2b.
	if !strings.Contains(buf.String(), "b 43, b 0, b 0, b 0") {
		t.Fatalf("expected packed little-endian byte run, got %q", buf.String())
	}
}

func TestEmitDataZeroInitializerIsWhollyZero(t *testing.T) {
	d := &cast.Data{
		Name:  "z",
		Align: 4,
		Init:  cast.Initializer{Type: ctype.Int(4, true)},
	}

	var buf bytes.Buffer
	e := New(&buf, ssa.NewModule())
	if err := e.EmitData(d); err != nil {
		t.Fatalf("EmitData: %v", err)
	}

	want := "data $z = align 4 { z 4 }\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}
