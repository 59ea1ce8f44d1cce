package ssa

import "testing"

func TestAppendInstSuppressedAfterTerminator(t *testing.T) {
	fn := NewFunction("f", true, false, W)
	b := NewBlock(Label(1, "start"))
	fn.AppendBlock(b)

	b.Term = Terminator{Kind: TRet}
	v := fn.Emit(b, OAdd, W, IntConst(1), IntConst(2))
	if v.IsSet() {
		t.Fatalf("Emit into terminated block returned a value: %v", v)
	}
	if len(b.Insts) != 0 {
		t.Fatalf("Emit into terminated block appended an instruction: %v", b.Insts)
	}
}

func TestTempsAreDenseAndUnique(t *testing.T) {
	fn := NewFunction("f", true, false, W)
	b := NewBlock(Label(1, "start"))
	fn.AppendBlock(b)

	seen := map[uint64]bool{}
	for i := 0; i < 5; i++ {
		v := fn.Emit(b, OAdd, W, IntConst(1), IntConst(2))
		if seen[v.ID] {
			t.Fatalf("duplicate temp id %d", v.ID)
		}
		seen[v.ID] = true
	}
	if fn.LastTemp() != 5 {
		t.Fatalf("LastTemp() = %d, want 5", fn.LastTemp())
	}
	for id := uint64(1); id <= 5; id++ {
		if !seen[id] {
			t.Fatalf("temp id %d missing, ids are not dense", id)
		}
	}
}

func TestArgNeverProducesResult(t *testing.T) {
	fn := NewFunction("f", true, false, W)
	b := NewBlock(Label(1, "start"))
	fn.AppendBlock(b)

	v := fn.Emit(b, OArg, W, IntConst(7), Value{})
	if v.IsSet() {
		t.Fatalf("OArg produced a result value: %v", v)
	}
	if fn.LastTemp() != 0 {
		t.Fatalf("OArg allocated a temp: LastTemp()=%d", fn.LastTemp())
	}
}

func TestStoreProducesNoResult(t *testing.T) {
	fn := NewFunction("f", true, false, W)
	b := NewBlock(Label(1, "start"))
	fn.AppendBlock(b)

	v := fn.Emit(b, OStoreW, ClassNone, IntConst(1), IntConst(2))
	if v.IsSet() {
		t.Fatalf("store produced a result value: %v", v)
	}
}
