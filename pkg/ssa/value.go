// Package ssa defines the typed SSA intermediate representation emitted by
// the backend: values, register classes, instructions, basic blocks and
// functions. It owns no knowledge of C; the lowering packages translate
// C declarations and expressions into this model.
package ssa

import "fmt"

// Class is an SSA register class: 32/64-bit integer, 32/64-bit float, or
// none (void / aggregate, which never lives in a register).
type Class byte

const (
	ClassNone Class = 0
	W         Class = 'w'
	L         Class = 'l'
	S         Class = 's'
	D         Class = 'd'
)

func (c Class) String() string {
	if c == ClassNone {
		return ""
	}
	return string(rune(c))
}

// IsFloat reports whether c is a floating-point register class.
func (c Class) IsFloat() bool { return c == S || c == D }

// Kind distinguishes the shape of a value's payload.
type Kind int

const (
	VNone Kind = iota
	VGlobal
	VIntConst
	VFloatConst
	VDoubleConst
	VTemp
	VType
	VLabel
)

// Value is the single identity-carrying unit of the IR: a global, a
// constant, a function-local temporary, a type reference or a block
// label. Once issued, a value's identity (ID/Name) never changes.
type Value struct {
	Kind      Kind
	ID        uint64 // temp or label ID
	Name      string // global or type name, already privacy-encoded
	IntVal    uint64
	FloatVal  float32
	DoubleVal float64
}

// IsSet reports whether v carries a real value (vs. the zero Value).
func (v Value) IsSet() bool { return v.Kind != VNone }

// Temp constructs a function-local temporary value.
func Temp(id uint64) Value { return Value{Kind: VTemp, ID: id} }

// Label constructs a block-label value.
func Label(id uint64, name string) Value { return Value{Kind: VLabel, ID: id, Name: name} }

// Global constructs a named global value reference.
func Global(name string) Value { return Value{Kind: VGlobal, Name: name} }

// TypeRef constructs a reference to an aggregate type definition.
func TypeRef(name string) Value { return Value{Kind: VType, Name: name} }

// IntConst constructs a 64-bit unsigned integer constant (pointers and
// signed integers are bit-reinterpreted into this same representation).
func IntConst(v uint64) Value { return Value{Kind: VIntConst, IntVal: v} }

// FloatConst constructs a single-precision float constant.
func FloatConst(v float32) Value { return Value{Kind: VFloatConst, FloatVal: v} }

// DoubleConst constructs a double-precision float constant.
func DoubleConst(v float64) Value { return Value{Kind: VDoubleConst, DoubleVal: v} }

func (v Value) String() string {
	switch v.Kind {
	case VNone:
		return "<none>"
	case VGlobal:
		return "$" + v.Name
	case VIntConst:
		return fmt.Sprintf("%d", v.IntVal)
	case VFloatConst:
		return fmt.Sprintf("s_%.17g", v.FloatVal)
	case VDoubleConst:
		return fmt.Sprintf("d_%.17g", v.DoubleVal)
	case VTemp:
		return fmt.Sprintf("%%.%d", v.ID)
	case VType:
		return ":" + v.Name
	case VLabel:
		return fmt.Sprintf("@%s.%d", v.Name, v.ID)
	}
	return "?"
}
