package cast

import "github.com/pan0cc/qbegen/pkg/ctype"

// Convenience constructors mirroring pkg/ctype's own (ctype.Int,
// ctype.Pointer, ...): a caller that is not a parser/semantic-analysis
// pass, such as pkg/fixturegen, still needs to build Expr nodes whose
// exprBase cannot be literal-embedded from outside this package.

func NewIdent(t *ctype.Type, d *Decl) *Ident {
	return &Ident{exprBase: exprBase{Typ: t}, Decl: d}
}

func NewConstInt(t *ctype.Type, v uint64) *ConstInt {
	return &ConstInt{exprBase: exprBase{Typ: t}, Value: v}
}

func NewConstFloat(t *ctype.Type, v float64) *ConstFloat {
	return &ConstFloat{exprBase: exprBase{Typ: t}, Value: v}
}

// NewStringLit builds a string literal whose array type is the
// front end's usual length = len(v)+1 (the NUL terminator).
func NewStringLit(v string) *StringLit {
	t := ctype.Array(ctype.Int(1, true), int64(len(v))+1)
	return &StringLit{exprBase: exprBase{Typ: t}, Value: v}
}

func NewGlobalRef(t *ctype.Type, name string, offset int64) *GlobalRef {
	return &GlobalRef{exprBase: exprBase{Typ: t}, Name: name, Offset: offset}
}

func NewUnary(t *ctype.Type, op UnaryOp, x Expr) *Unary {
	return &Unary{exprBase: exprBase{Typ: t}, Op: op, X: x}
}

func NewBinary(t *ctype.Type, op BinaryOp, l, r Expr) *Binary {
	return &Binary{exprBase: exprBase{Typ: t}, Op: op, L: l, R: r}
}

func NewAddr(t *ctype.Type, x Expr) *Addr {
	return &Addr{exprBase: exprBase{Typ: t}, X: x}
}

func NewDeref(t *ctype.Type, x Expr) *Deref {
	return &Deref{exprBase: exprBase{Typ: t}, X: x}
}

func NewField(t *ctype.Type, x Expr, index int) *Field {
	return &Field{exprBase: exprBase{Typ: t}, X: x, Index: index}
}

func NewCall(t *ctype.Type, fn Expr, args []Expr) *Call {
	return &Call{exprBase: exprBase{Typ: t}, Func: fn, Args: args}
}

func NewCond(t *ctype.Type, c, tExpr, e Expr) *Cond {
	return &Cond{exprBase: exprBase{Typ: t}, C: c, T: tExpr, E: e}
}

func NewAssign(t *ctype.Type, l, r Expr) *Assign {
	return &Assign{exprBase: exprBase{Typ: t}, L: l, R: r}
}

func NewComma(t *ctype.Type, x, y Expr) *Comma {
	return &Comma{exprBase: exprBase{Typ: t}, X: x, Y: y}
}

func NewIncDec(t *ctype.Type, op IncDecOp, x Expr) *IncDec {
	return &IncDec{exprBase: exprBase{Typ: t}, Op: op, X: x}
}

func NewCast(t *ctype.Type, x Expr) *Cast {
	return &Cast{exprBase: exprBase{Typ: t}, X: x}
}
