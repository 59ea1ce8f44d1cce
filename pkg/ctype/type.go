// Package ctype models the subset of the C type system the backend must
// reason about to lower expressions and initializers: scalar kinds,
// signedness, aggregate layout and bit-field windows. It is the Go
// shape of the upstream `struct type` contract.
package ctype

// Kind is the top-level shape of a type.
type Kind int

const (
	KVoid Kind = iota
	KInt
	KFloat
	KPointer
	KArray
	KFunc
	KStruct
	KUnion
)

// Prop is a bitset of the scalar-property flags the front end attaches
// to a type (PROPINT/PROPFLOAT/PROPSCALAR/PROPREAL in ).
type Prop int

const (
	PropInt Prop = 1 << iota
	PropFloat
	PropScalar
	PropReal
)

// Field is one member of a struct or union.
type Field struct {
	Name   string
	Type   *Type
	Offset int64 // byte offset of the storage unit containing Bits/whole field
	Bits   Bitfield
}

// Bitfield is the (before, after) padding-bit descriptor of a struct
// member's storage-unit placement. Before+After is zero for an
// ordinary (non-bit-field) member.
type Bitfield struct {
	Before int
	After  int
}

// IsBitfield reports whether f occupies less than its full storage unit.
func (f Field) IsBitfield() bool { return f.Bits.Before != 0 || f.Bits.After != 0 }

// Width returns the bit-field's width in bits; only meaningful when
// f.IsBitfield().
func (f Field) Width(storageBits int) int {
	return storageBits - f.Bits.Before - f.Bits.After
}

// Func describes a function type.
type Func struct {
	Params      []*Type
	IsVararg    bool
	IsPrototype bool
}

// Type is one C type. Only the fields relevant to Kind are meaningful;
// this mirrors the tagged-struct style of the front end's own `struct
// type` rather than a Go sum type, since the backend reads
// fields like Size/Align/Signed across every Kind uniformly.
type Type struct {
	Kind       Kind
	Size       int64
	Align      int64
	Prop       Prop
	Signed     bool   // basic.issigned; meaningful for KInt
	IsBoolType bool   // distinguishes _Bool from other 1-byte integer types
	Base       *Type  // pointee / element type for KPointer/KArray
	ArrayLen   int64  // -1 for incomplete array
	Func       Func
	Tag        string
	Members    []Field
	Incomplete bool

	// emittedName is set by pkg/emit the first time this type's
	// aggregate definition is streamed, so a second emission of the
	// same *Type is a no-op. Left empty for scalars.
	emittedName string
}

// EmittedName returns the aggregate type's emitted name, and whether it
// has been emitted yet.
func (t *Type) EmittedName() (string, bool) { return t.emittedName, t.emittedName != "" }

// MarkEmitted records name as t's emitted aggregate type name.
func (t *Type) MarkEmitted(name string) { t.emittedName = name }

// IsAggregate reports whether values of t live only in memory.
func (t *Type) IsAggregate() bool {
	return t.Kind == KStruct || t.Kind == KUnion || t.Kind == KArray
}

// IsScalar reports whether values of t live in a register.
func (t *Type) IsScalar() bool { return !t.IsAggregate() && t.Kind != KVoid && t.Kind != KFunc }
