package cast

// The types below are the YAML-decodable shape of a tiny, already-typed
// C translation unit: a flat, Kind-discriminated tree with no custom
// unmarshaling, the same way a parser's own test fixtures describe an
// expected AST. pkg/fixturegen walks this tree and builds the real
// Expr/Decl/ctype.Type values lowering actually consumes; these structs
// never appear past that point.

// TypeSpec describes one C type.
//
// Kind is one of: void, int, float, bool, pointer, array, struct,
// union. Size/Signed apply to "int"; Of/Length apply to
// "pointer"/"array" (Of is the pointee/element type, Length the
// array's element count); Tag/Members apply to "struct"/"union".
// Member layout is computed the same way a platform ABI lays out a
// plain (no explicit packing, no bit-fields) aggregate: each member at
// its own type's natural alignment, union members all at offset 0.
type TypeSpec struct {
	Kind    string       `yaml:"kind"`
	Size    int64        `yaml:"size,omitempty"`
	Signed  bool         `yaml:"signed,omitempty"`
	Of      *TypeSpec    `yaml:"of,omitempty"`
	Length  int64        `yaml:"length,omitempty"`
	Tag     string       `yaml:"tag,omitempty"`
	Members []MemberSpec `yaml:"members,omitempty"`
}

// MemberSpec is one struct/union member.
type MemberSpec struct {
	Name string   `yaml:"name"`
	Type TypeSpec `yaml:"type"`
}

// ParamSpec is one function parameter.
type ParamSpec struct {
	Name string   `yaml:"name"`
	Type TypeSpec `yaml:"type"`
}

// ExprSpec describes one expression node.
//
// Kind is one of: ident, int, float, str, unary, binary, addr, deref,
// field, call, cond, assign, comma, incdec, cast, globalref. Op
// carries the operator name for unary/binary/incdec ("add", "eq",
// "preinc", ...); the field used for each operand varies by Kind (X
// for unary/deref/addr/cast/incdec/field, L/R for binary/assign, C/T/E
// for cond, X/Y for comma, Func/Args for call). "field" reads member
// Name off X; "globalref" reads a compile-time "Name + Value" address,
// valid only inside a global's initializer.
type ExprSpec struct {
	Kind   string     `yaml:"kind"`
	Name   string     `yaml:"name,omitempty"`
	Value  *int64     `yaml:"value,omitempty"`
	FValue *float64   `yaml:"fvalue,omitempty"`
	Str    string     `yaml:"str,omitempty"`
	Type   *TypeSpec  `yaml:"type,omitempty"`
	Op     string     `yaml:"op,omitempty"`
	X      *ExprSpec  `yaml:"x,omitempty"`
	Y      *ExprSpec  `yaml:"y,omitempty"`
	L      *ExprSpec  `yaml:"l,omitempty"`
	R      *ExprSpec  `yaml:"r,omitempty"`
	C      *ExprSpec  `yaml:"c,omitempty"`
	T      *ExprSpec  `yaml:"t,omitempty"`
	E      *ExprSpec  `yaml:"e,omitempty"`
	Func   *ExprSpec  `yaml:"func,omitempty"`
	Args   []ExprSpec `yaml:"args,omitempty"`
}

// CaseSpec is one switch-statement case arm.
type CaseSpec struct {
	Value int64      `yaml:"value"`
	Body  []StmtSpec `yaml:"body"`
}

// StmtSpec describes one statement.
//
// Kind is one of: decl, expr, if, while, return, switch, break,
// continue, goto, label, block. Then/Else belong to "if"; Body belongs
// to "while"/"block"; Cases/Default belong to "switch"; Init/Items
// belong to "decl" (a scalar initializer or, for an array type, one
// element expression per Items entry); Name carries the target for
// "goto"/"label" (and the declared identifier for "decl").
type StmtSpec struct {
	Kind    string     `yaml:"kind"`
	Name    string     `yaml:"name,omitempty"`
	Type    *TypeSpec  `yaml:"type,omitempty"`
	Init    *ExprSpec  `yaml:"init,omitempty"`
	Items   []ExprSpec `yaml:"items,omitempty"`
	Expr    *ExprSpec  `yaml:"expr,omitempty"`
	Cond    *ExprSpec  `yaml:"cond,omitempty"`
	Then    []StmtSpec `yaml:"then,omitempty"`
	Else    []StmtSpec `yaml:"else,omitempty"`
	Body    []StmtSpec `yaml:"body,omitempty"`
	Cases   []CaseSpec `yaml:"cases,omitempty"`
	Default []StmtSpec `yaml:"default,omitempty"`
}

// GlobalSpec is one top-level global/static object definition. Init is
// a scalar initializer; Items, for an array-typed global, supplies one
// element expression per entry. Both nil zero-initializes the object.
type GlobalSpec struct {
	Name     string     `yaml:"name"`
	Exported bool       `yaml:"exported,omitempty"`
	Type     TypeSpec   `yaml:"type"`
	Init     *ExprSpec  `yaml:"init,omitempty"`
	Items    []ExprSpec `yaml:"items,omitempty"`
}

// FuncSpec is one function definition.
type FuncSpec struct {
	Name       string      `yaml:"name"`
	Exported   bool        `yaml:"exported,omitempty"`
	ReturnType TypeSpec    `yaml:"return_type"`
	Params     []ParamSpec `yaml:"params,omitempty"`
	Vararg     bool        `yaml:"vararg,omitempty"`
	Prototype  bool        `yaml:"prototype,omitempty"`
	Body       []StmtSpec  `yaml:"body"`
}

// ModuleSpec is the top-level fixture: one translation unit's global
// declarations and function definitions.
type ModuleSpec struct {
	Globals   []GlobalSpec `yaml:"globals,omitempty"`
	Functions []FuncSpec   `yaml:"functions"`
}
