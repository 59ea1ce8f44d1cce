// Package cast is the typed C abstract syntax tree the backend consumes
// from its upstream collaborators (lexer, parser, semantic analyzer).
// It is a Go-native stand-in for the front end's own `struct decl` /
// `struct expr` / `struct type` contracts: a typed, already-resolved
// tree with no further name or type analysis left to do. Every
// concrete node is a tagged variant implementing Expr.
package cast

import (
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// DeclKind distinguishes an object declaration, a function declaration,
// and an enumeration constant.
type DeclKind int

const (
	DeclObject DeclKind = iota
	DeclFunction
	DeclConst
)

// Linkage records whether an object/function decl is visible outside
// the translation unit.
type Linkage int

const (
	LinkNone Linkage = iota
	LinkInternal
	LinkExternal
)

// Decl is the upstream declaration contract: {kind, type, align, linkage,
// value}. Addr is populated by the function builder the first time the
// declaration's storage is materialized (a stack alloca, or a global
// reference) and is then stable for the rest of the function.
type Decl struct {
	Kind       DeclKind
	Type       *ctype.Type
	Align      int64
	Linkage    Linkage
	Name       string
	ReadOnly   bool      // const-qualified object; stores are diagnosed
	ConstValue ssa.Value // meaningful when Kind == DeclConst

	addr    ssa.Value
	hasAddr bool
}

// Addr returns the declaration's bound storage address, if any.
func (d *Decl) Addr() (ssa.Value, bool) { return d.addr, d.hasAddr }

// BindAddr records the declaration's storage address. Idempotent: the
// first bind wins, since a declaration's address never moves once
// issued (alloca result, or a global value).
func (d *Decl) BindAddr(v ssa.Value) {
	if !d.hasAddr {
		d.addr = v
		d.hasAddr = true
	}
}

// Expr is any typed C expression node. Every node carries its result
// type (Type()); qualifiers (const/volatile) live on the Type itself via
// the front end's own type table and are not modeled separately here,
// except for the single qualifier the backend must act on: Volatile,
// exposed per-node since volatile stores are flagged as an explicit
// user diagnostic rather than carried on ctype.Type.
type Expr interface {
	Type() *ctype.Type
	Volatile() bool
}

type exprBase struct {
	Typ  *ctype.Type
	Qual bool // volatile
}

func (e exprBase) Type() *ctype.Type { return e.Typ }
func (e exprBase) Volatile() bool    { return e.Qual }

// Ident references an object, function, or enumeration-constant
// declaration.
type Ident struct {
	exprBase
	Decl *Decl
}

// ConstInt is an integer or pointer constant.
type ConstInt struct {
	exprBase
	Value uint64
}

// ConstFloat is a floating-point constant; Typ's size selects single vs.
// double.
type ConstFloat struct {
	exprBase
	Value float64
}

// StringLit is a string literal; the front end has already computed its
// array type (length = len(Value)+1).
type StringLit struct {
	exprBase
	Value string
}

type UnaryOp int

const (
	ONeg UnaryOp = iota
	ONot        // bitwise ~
	OLNot       // logical !
)

type Unary struct {
	exprBase
	Op UnaryOp
	X  Expr
}

type BinaryOp int

const (
	BAdd BinaryOp = iota
	BSub
	BMul
	BDiv
	BMod
	BAnd
	BOr
	BXor
	BShl
	BShr
	BEq
	BNe
	BLt
	BLe
	BGt
	BGe
	BLAnd // short-circuit &&
	BLOr  // short-circuit ||
)

type Binary struct {
	exprBase
	Op   BinaryOp
	L, R Expr
}

// Addr is &X; X must lower as an lvalue.
type Addr struct {
	exprBase
	X Expr
}

// Deref is *X; X lowers as an rvalue pointer.
type Deref struct {
	exprBase
	X Expr
}

// Field is a (possibly bit-field) struct/union member access, X.Name.
// X must lower as an lvalue (member-of-pointer accesses are expected to
// already have been desugared to Deref{X}.Name by the front end).
type Field struct {
	exprBase
	X     Expr
	Index int // index into X.Type().Members
}

type Call struct {
	exprBase
	Func Expr
	Args []Expr
}

type Cond struct {
	exprBase
	C, T, E Expr
}

type Assign struct {
	exprBase
	L, R Expr
}

type Comma struct {
	exprBase
	X, Y Expr
}

type IncDecOp int

const (
	PreInc IncDecOp = iota
	PreDec
	PostInc
	PostDec
)

type IncDec struct {
	exprBase
	Op IncDecOp
	X  Expr
}

// Cast converts X to Typ.
type Cast struct {
	exprBase
	X Expr
}

// TempPlaceholder names a not-yet-bound SSA temporary; assigning to it
// (Assign.L) binds it instead of emitting a store,
// Assignment.
type TempPlaceholder struct {
	exprBase
	Slot *ssa.Value
}

type BuiltinKind int

const (
	BuiltinVAStart BuiltinKind = iota
	BuiltinVAArg
	BuiltinVAEnd
	BuiltinAlloca
)

type Builtin struct {
	exprBase
	Kind BuiltinKind
	Args []Expr
}
