package initializer

import (
	"testing"

	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/funcbuilder"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

type fakeSink struct{}

func (fakeSink) EmitStringData(name, value string) {}
func (fakeSink) DeclareType(t *ctype.Type)          {}

func newBuilder(t *testing.T) (*funcbuilder.Builder, ssa.Value) {
	t.Helper()
	mod := ssa.NewModule()
	sig := ctype.Function(ctype.Void(), nil, false, true)
	b, err := funcbuilder.New(mod, fakeSink{}, "f", true, sig, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	addr, err := b.AllocaLocal(4, 12)
	if err != nil {
		t.Fatalf("AllocaLocal: %v", err)
	}
	return b, addr
}

func opsOf(blk *ssa.Block) []ssa.Op {
	var ops []ssa.Op
	for _, inst := range blk.Insts {
		ops = append(ops, inst.Op)
	}
	return ops
}

// storesOf filters a block down to its store instructions, skipping the
// alloca and the address-offset adds that interleave them.
func storesOf(blk *ssa.Block) []ssa.Instruction {
	var out []ssa.Instruction
	for _, inst := range blk.Insts {
		switch inst.Op {
		case ssa.OStoreB, ssa.OStoreH, ssa.OStoreW, ssa.OStoreL, ssa.OStoreS, ssa.OStoreD:
			out = append(out, inst)
		}
	}
	return out
}

func TestZeroInitializerCoversWholeObjectOnce(t *testing.T) {
	b, addr := newBuilder(t)
	init := &cast.Initializer{Type: ctype.Int(12, true)}

	if err := Lower(b, addr, init); err != nil {
		t.Fatalf("Lower: %v", err)
	}

	// Zero-fill of 12 bytes as 8+4.
	stores := storesOf(b.Fn.Start)
	if len(stores) != 2 {
		t.Fatalf("expected 2 zero stores, got %v", opsOf(b.Fn.Start))
	}
	if stores[0].Op != ssa.OStoreL || stores[1].Op != ssa.OStoreW {
		t.Fatalf("expected storel then storew zero-fill, got %v", opsOf(b.Fn.Start))
	}
}

func TestSparseInitializerZeroFillsGapsAndTail(t *testing.T) {
	b, addr := newBuilder(t)
	intT := ctype.Int(4, true)
	init := &cast.Initializer{
		Type: ctype.Int(12, true),
		Ranges: []cast.InitRange{
			{Start: 4, End: 8, Expr: &cast.ConstInt{Value: 7}},
		},
	}
	init.Ranges[0].Expr.(*cast.ConstInt).Typ = intT

	if err := Lower(b, addr, init); err != nil {
		t.Fatalf("Lower: %v", err)
	}

	// Zero [0,4), store at [4,8), zero [8,12): three word stores, each
	// covering its 4-byte slot exactly once.
	stores := storesOf(b.Fn.Start)
	if len(stores) != 3 {
		t.Fatalf("expected 3 word stores, got %v", opsOf(b.Fn.Start))
	}
	for i, st := range stores {
		if st.Op != ssa.OStoreW {
			t.Fatalf("store %d: expected storew, got %s", i, st.Op)
		}
	}
	if stores[0].Arg[1].IntVal != 0 || stores[2].Arg[1].IntVal != 0 {
		t.Fatalf("expected the gap and tail stores to write zero")
	}
	if stores[1].Arg[1].IntVal != 7 {
		t.Fatalf("expected the explicit range to store 7, got %d", stores[1].Arg[1].IntVal)
	}
}

func TestStringInitializerPads(t *testing.T) {
	b, addr := newBuilder(t)
	init := &cast.Initializer{
		Type: ctype.Array(ctype.Int(1, true), 6),
		Ranges: []cast.InitRange{
			{Start: 0, End: 6, Expr: &cast.StringLit{Value: "hi"}},
		},
	}

	if err := Lower(b, addr, init); err != nil {
		t.Fatalf("Lower: %v", err)
	}

	// 6 byte stores ("h", "i", then 4 zero bytes), no additional tail
	// zero-fill since the range already covers the whole object.
	stores := storesOf(b.Fn.Start)
	if len(stores) != 6 {
		t.Fatalf("expected 6 byte stores, got %v", opsOf(b.Fn.Start))
	}
	for _, st := range stores {
		if st.Op != ssa.OStoreB {
			t.Fatalf("expected every string-init store to be storeb, got %s", st.Op)
		}
	}
	if stores[0].Arg[1].IntVal != 'h' {
		t.Fatalf("expected the first stored byte to be 'h', got %d", stores[0].Arg[1].IntVal)
	}
	if stores[5].Arg[1].IntVal != 0 {
		t.Fatalf("expected the padding byte to be zero, got %d", stores[5].Arg[1].IntVal)
	}
}

func TestBitfieldSiblingsShareStorageUnitWithoutReZeroing(t *testing.T) {
	b, addr := newBuilder(t)
	unsigned := ctype.Int(4, false)
	a := &cast.ConstInt{Value: 3}
	a.Typ = unsigned
	bv := &cast.ConstInt{Value: 5}
	bv.Typ = unsigned

	init := &cast.Initializer{
		Type: ctype.Int(12, true),
		Ranges: []cast.InitRange{
			{Start: 0, End: 4, Bits: ctype.Bitfield{Before: 0, After: 29}, Expr: a},
			{Start: 0, End: 4, Bits: ctype.Bitfield{Before: 3, After: 24}, Expr: bv},
		},
	}

	if err := Lower(b, addr, init); err != nil {
		t.Fatalf("Lower: %v", err)
	}

	ops := opsOf(b.Fn.Start)
	// alloc4; field a: zero the unit once, then loadw/xor/and/shl/and/or/storew
	// (storeBitfield's read-modify-write); field b: no re-zero, same
	// read-modify-write sequence. Count the storew ops: one zero-fill
	// plus one store per field.
	storeCount := 0
	for _, op := range ops {
		if op == ssa.OStoreW {
			storeCount++
		}
	}
	// 1 zero-fill of the shared storage unit + 1 write per field + 2
	// 4-byte zero stores covering the unaligned [4,12) tail.
	if storeCount != 5 {
		t.Fatalf("expected exactly 5 storew (1 zero + 2 field writes + 2 tail zero-fills), got %d in %v", storeCount, ops)
	}
}
