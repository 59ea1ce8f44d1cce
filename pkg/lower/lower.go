package lower

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/convert"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/funcbuilder"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// Lower translates e into a sequence of SSA instructions appended to
// b's current block, returning the value it computes. Lowering is
// post-order: sub-expressions are evaluated left-to-right, except for
// the short-circuit and conditional operators, which build explicit
// control flow instead.
func Lower(b *funcbuilder.Builder, e cast.Expr) (ssa.Value, error) {
	switch n := e.(type) {
	case *cast.Ident:
		return lowerIdent(b, n)
	case *cast.ConstInt:
		return ssa.IntConst(n.Value), nil
	case *cast.ConstFloat:
		if n.Type().Size == 4 {
			return ssa.FloatConst(float32(n.Value)), nil
		}
		return ssa.DoubleConst(n.Value), nil
	case *cast.StringLit:
		return ssa.Value{}, ierr.Internal("string literal reached expression lowering; it must be materialized as a global by the initializer/declaration path")
	case *cast.Unary:
		return lowerUnary(b, n)
	case *cast.Binary:
		return lowerBinary(b, n)
	case *cast.Addr:
		lv, err := LValueOf(b, n.X)
		if err != nil {
			return ssa.Value{}, err
		}
		return lv.Addr, nil
	case *cast.Deref:
		return rvalueOf(b, n)
	case *cast.Field:
		return rvalueOf(b, n)
	case *cast.Call:
		return lowerCall(b, n)
	case *cast.Cond:
		return lowerCond(b, n)
	case *cast.Assign:
		return lowerAssign(b, n)
	case *cast.Comma:
		if _, err := Lower(b, n.X); err != nil {
			return ssa.Value{}, err
		}
		return Lower(b, n.Y)
	case *cast.IncDec:
		return lowerIncDec(b, n)
	case *cast.Cast:
		v, err := Lower(b, n.X)
		if err != nil {
			return ssa.Value{}, err
		}
		return convert.Convert(b, n.X.Type(), n.Type(), v)
	case *cast.TempPlaceholder:
		if n.Slot == nil {
			return ssa.Value{}, ierr.Internal("temp placeholder read before its slot was assigned")
		}
		return *n.Slot, nil
	case *cast.Builtin:
		return lowerBuiltin(b, n)
	}
	return ssa.Value{}, ierr.Internal("expression of type %T is not supported by expression lowering", e)
}

func lowerIdent(b *funcbuilder.Builder, n *cast.Ident) (ssa.Value, error) {
	switch n.Decl.Kind {
	case cast.DeclConst:
		return n.Decl.ConstValue, nil
	case cast.DeclFunction:
		addr, ok := n.Decl.Addr()
		if !ok {
			return ssa.Value{}, ierr.Internal("function declaration %q lowered before its global was bound", n.Decl.Name)
		}
		return addr, nil
	default:
		return rvalueOf(b, n)
	}
}

// rvalueOf lowers e as an lvalue and returns the value it holds: the
// address itself for an aggregate type (since such values live only in
// memory), or a memory/bit-field load otherwise.
func rvalueOf(b *funcbuilder.Builder, e cast.Expr) (ssa.Value, error) {
	lv, err := LValueOf(b, e)
	if err != nil {
		return ssa.Value{}, err
	}
	if lv.Type.IsAggregate() {
		return lv.Addr, nil
	}
	return Load(b, lv)
}

func lowerUnary(b *funcbuilder.Builder, n *cast.Unary) (ssa.Value, error) {
	t := n.Type()
	class, err := ctype.RegClass(t)
	if err != nil {
		return ssa.Value{}, err
	}
	x, err := Lower(b, n.X)
	if err != nil {
		return ssa.Value{}, err
	}
	switch n.Op {
	case cast.ONeg:
		return b.Emit(ssa.ONeg, class, x, ssa.Value{}), nil
	case cast.ONot:
		return b.Emit(ssa.OXor, class, x, allOnes(class)), nil
	case cast.OLNot:
		xClass, err := ctype.RegClass(n.X.Type())
		if err != nil {
			return ssa.Value{}, err
		}
		zero, err := zeroOf(xClass)
		if err != nil {
			return ssa.Value{}, err
		}
		return b.Emit(ssa.CmpOp(ssa.CEq, true, xClass), ssa.W, x, zero), nil
	}
	return ssa.Value{}, ierr.Internal("unknown unary operator %d", n.Op)
}

func zeroOf(class ssa.Class) (ssa.Value, error) {
	switch class {
	case ssa.W, ssa.L:
		return ssa.IntConst(0), nil
	case ssa.S:
		return ssa.FloatConst(0), nil
	case ssa.D:
		return ssa.DoubleConst(0), nil
	}
	return ssa.Value{}, ierr.Internal("cannot build a zero constant of class %q", class)
}

func lowerCond(b *funcbuilder.Builder, n *cast.Cond) (ssa.Value, error) {
	cond, err := Lower(b, n.C)
	if err != nil {
		return ssa.Value{}, err
	}
	tBlk := b.NewBlock("cond_t")
	fBlk := b.NewBlock("cond_f")
	joinBlk := b.NewBlock("cond_join")
	b.Jnz(cond, tBlk, fBlk)

	voidResult := n.Type().Kind == ctype.KVoid

	b.Label(tBlk)
	tVal, err := Lower(b, n.T)
	if err != nil {
		return ssa.Value{}, err
	}
	tTail := b.Tail()
	b.Jmp(joinBlk)

	b.Label(fBlk)
	fVal, err := Lower(b, n.E)
	if err != nil {
		return ssa.Value{}, err
	}
	fTail := b.Tail()
	b.Jmp(joinBlk)

	b.Label(joinBlk)
	if voidResult {
		return ssa.Value{}, nil
	}
	class, err := ctype.RegClass(n.Type())
	if err != nil {
		return ssa.Value{}, err
	}
	res := b.EmitPhi(joinBlk, class)
	b.FillPhi(joinBlk, 0, tTail, tVal)
	b.FillPhi(joinBlk, 1, fTail, fVal)
	return res, nil
}

func lowerAssign(b *funcbuilder.Builder, n *cast.Assign) (ssa.Value, error) {
	if n.L.Volatile() {
		return ssa.Value{}, ierr.NewUserDiagnostic("volatile store is not yet supported")
	}
	if id, ok := n.L.(*cast.Ident); ok && id.Decl.ReadOnly {
		return ssa.Value{}, ierr.NewUserDiagnostic("cannot store to %q: declared const", id.Decl.Name)
	}
	rhs, err := Lower(b, n.R)
	if err != nil {
		return ssa.Value{}, err
	}
	if slot, ok := n.L.(*cast.TempPlaceholder); ok {
		lv := LValue{Type: slot.Type(), Slot: slot.Slot}
		return Store(b, lv, rhs)
	}
	lv, err := LValueOf(b, n.L)
	if err != nil {
		return ssa.Value{}, err
	}
	if lv.Type.IsAggregate() {
		if err := CopyAggregate(b, lv.Addr, rhs, lv.Type.Size, lv.Type.Align); err != nil {
			return ssa.Value{}, err
		}
		return lv.Addr, nil
	}
	return Store(b, lv, rhs)
}
