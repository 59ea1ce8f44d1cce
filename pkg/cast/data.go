package cast

// GlobalRef is a compile-time-constant reference to another global plus
// a byte offset ("global + offset" in the upstream constant-folding
// contract). It only ever appears inside a static initializer's
// Initializer.Ranges, never in ordinary expression lowering, since it is
// not a value any runtime instruction could produce.
type GlobalRef struct {
	exprBase
	Name   string
	Offset int64
}

// Data is one top-level global or static object definition: a name, its
// linkage, the alignment the emitter must print, and the sorted
// initializer ranges describing its contents. It reuses Initializer
// exactly as funcbuilder/initializer does for local objects, so a
// single range-walking shape serves both "store instructions into a
// stack slot" and "printable data items" consumers.
type Data struct {
	Name     string
	Exported bool
	Align    int64
	Init     Initializer
}
