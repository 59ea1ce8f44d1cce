package ctype

import (
	"testing"

	"github.com/pan0cc/qbegen/pkg/ssa"
)

func TestClassifyScalars(t *testing.T) {
	cases := []struct {
		name  string
		typ   *Type
		base  ssa.Class
		load  ssa.Op
		store ssa.Op
	}{
		{"signed char", Int(1, true), ssa.W, ssa.OLoadSB, ssa.OStoreB},
		{"unsigned char", Int(1, false), ssa.W, ssa.OLoadUB, ssa.OStoreB},
		{"short", Int(2, true), ssa.W, ssa.OLoadSH, ssa.OStoreH},
		{"int", Int(4, true), ssa.W, ssa.OLoadW, ssa.OStoreW},
		{"long", Int(8, true), ssa.L, ssa.OLoadL, ssa.OStoreL},
		{"float", Float32(), ssa.S, ssa.OLoadS, ssa.OStoreS},
		{"double", Float64(), ssa.D, ssa.OLoadD, ssa.OStoreD},
		{"pointer", Pointer(Int(4, true)), ssa.L, ssa.OLoadL, ssa.OStoreL},
	}
	for _, c := range cases {
		base, _, load, store, err := Classify(c.typ)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", c.name, err)
		}
		if base != c.base || load != c.load || store != c.store {
			t.Errorf("%s: got (%v,%v,%v), want (%v,%v,%v)", c.name, base, load, store, c.base, c.load, c.store)
		}
	}
}

func TestClassifyAggregateIsAddressOnly(t *testing.T) {
	st := Struct("point", nil, 16, 8)
	base, data, load, store, err := Classify(st)
	if err != nil {
		t.Fatal(err)
	}
	if base != ssa.L || data != ssa.L || load != ssa.OLoadL || store != ssa.OStoreL {
		t.Errorf("aggregate classified as (%v,%v,%v,%v), want all-l", base, data, load, store)
	}
}

func TestClassifyLongDoubleUnsupported(t *testing.T) {
	ld := &Type{Kind: KFloat, Size: 16, Align: 16}
	_, _, _, _, err := Classify(ld)
	if err == nil {
		t.Fatal("expected an error for a 16-byte type")
	}
}

func TestClassifyVoid(t *testing.T) {
	base, _, _, _, err := Classify(Void())
	if err != nil {
		t.Fatal(err)
	}
	if base != ssa.ClassNone {
		t.Errorf("void classified with class %v, want none", base)
	}
}
