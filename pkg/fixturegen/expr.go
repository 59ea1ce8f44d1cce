package fixturegen

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ctype"
)

func unaryOp(name string) (cast.UnaryOp, error) {
	switch name {
	case "neg":
		return cast.ONeg, nil
	case "not":
		return cast.ONot, nil
	case "lnot":
		return cast.OLNot, nil
	}
	return 0, ierr.Internal("fixture: unknown unary op %q", name)
}

func binaryOp(name string) (cast.BinaryOp, error) {
	switch name {
	case "add":
		return cast.BAdd, nil
	case "sub":
		return cast.BSub, nil
	case "mul":
		return cast.BMul, nil
	case "div":
		return cast.BDiv, nil
	case "mod":
		return cast.BMod, nil
	case "and":
		return cast.BAnd, nil
	case "or":
		return cast.BOr, nil
	case "xor":
		return cast.BXor, nil
	case "shl":
		return cast.BShl, nil
	case "shr":
		return cast.BShr, nil
	case "eq":
		return cast.BEq, nil
	case "ne":
		return cast.BNe, nil
	case "lt":
		return cast.BLt, nil
	case "le":
		return cast.BLe, nil
	case "gt":
		return cast.BGt, nil
	case "ge":
		return cast.BGe, nil
	case "land":
		return cast.BLAnd, nil
	case "lor":
		return cast.BLOr, nil
	}
	return 0, ierr.Internal("fixture: unknown binary op %q", name)
}

func incDecOp(name string) (cast.IncDecOp, error) {
	switch name {
	case "preinc":
		return cast.PreInc, nil
	case "predec":
		return cast.PreDec, nil
	case "postinc":
		return cast.PostInc, nil
	case "postdec":
		return cast.PostDec, nil
	}
	return 0, ierr.Internal("fixture: unknown incdec op %q", name)
}

func isComparisonOp(op cast.BinaryOp) bool {
	switch op {
	case cast.BEq, cast.BNe, cast.BLt, cast.BLe, cast.BGt, cast.BGe, cast.BLAnd, cast.BLOr:
		return true
	}
	return false
}

// calleeSigType returns the function type a callee expression's type
// names, following through a pointer-to-function if necessary.
func calleeSigType(t *ctype.Type) *ctype.Type {
	if t.Kind == ctype.KFunc {
		return t
	}
	if t.Kind == ctype.KPointer && t.Base != nil && t.Base.Kind == ctype.KFunc {
		return t.Base
	}
	return nil
}

// buildExpr converts one fixture expression into a real cast.Expr,
// resolving identifiers against sc.
func buildExpr(sc *scope, s *cast.ExprSpec) (cast.Expr, error) {
	switch s.Kind {
	case "ident":
		d, ok := sc.lookup(s.Name)
		if !ok {
			return nil, ierr.Internal("fixture: undeclared identifier %q", s.Name)
		}
		return cast.NewIdent(d.Type, d), nil

	case "int":
		t, err := intLikeType(s.Type)
		if err != nil {
			return nil, err
		}
		var v int64
		if s.Value != nil {
			v = *s.Value
		}
		return cast.NewConstInt(t, uint64(v)), nil

	case "float":
		t, err := floatLikeType(s.Type)
		if err != nil {
			return nil, err
		}
		var v float64
		if s.FValue != nil {
			v = *s.FValue
		}
		return cast.NewConstFloat(t, v), nil

	case "str":
		return cast.NewStringLit(s.Str), nil

	case "globalref":
		t, err := buildType(s.Type)
		if err != nil {
			return nil, err
		}
		var off int64
		if s.Value != nil {
			off = *s.Value
		}
		return cast.NewGlobalRef(t, s.Name, off), nil

	case "unary":
		x, err := buildExpr(sc, s.X)
		if err != nil {
			return nil, err
		}
		op, err := unaryOp(s.Op)
		if err != nil {
			return nil, err
		}
		t := x.Type()
		if op == cast.OLNot {
			t = ctype.Int(4, true)
		}
		return cast.NewUnary(t, op, x), nil

	case "binary":
		l, err := buildExpr(sc, s.L)
		if err != nil {
			return nil, err
		}
		r, err := buildExpr(sc, s.R)
		if err != nil {
			return nil, err
		}
		op, err := binaryOp(s.Op)
		if err != nil {
			return nil, err
		}
		t := l.Type()
		if isComparisonOp(op) {
			t = ctype.Int(4, true)
		}
		return cast.NewBinary(t, op, l, r), nil

	case "addr":
		x, err := buildExpr(sc, s.X)
		if err != nil {
			return nil, err
		}
		return cast.NewAddr(ctype.Pointer(x.Type()), x), nil

	case "deref":
		x, err := buildExpr(sc, s.X)
		if err != nil {
			return nil, err
		}
		if x.Type().Kind != ctype.KPointer {
			return nil, ierr.Internal("fixture: deref of non-pointer expression")
		}
		return cast.NewDeref(x.Type().Base, x), nil

	case "field":
		x, err := buildExpr(sc, s.X)
		if err != nil {
			return nil, err
		}
		idx, err := memberIndex(x.Type(), s.Name)
		if err != nil {
			return nil, err
		}
		return cast.NewField(x.Type().Members[idx].Type, x, idx), nil

	case "call":
		fn, err := buildExpr(sc, s.Func)
		if err != nil {
			return nil, err
		}
		sig := calleeSigType(fn.Type())
		if sig == nil {
			return nil, ierr.Internal("fixture: call target is not a function or function pointer")
		}
		args := make([]cast.Expr, len(s.Args))
		for i := range s.Args {
			a, err := buildExpr(sc, &s.Args[i])
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return cast.NewCall(sig.Base, fn, args), nil

	case "cond":
		c, err := buildExpr(sc, s.C)
		if err != nil {
			return nil, err
		}
		tExpr, err := buildExpr(sc, s.T)
		if err != nil {
			return nil, err
		}
		e, err := buildExpr(sc, s.E)
		if err != nil {
			return nil, err
		}
		return cast.NewCond(tExpr.Type(), c, tExpr, e), nil

	case "assign":
		l, err := buildExpr(sc, s.L)
		if err != nil {
			return nil, err
		}
		r, err := buildExpr(sc, s.R)
		if err != nil {
			return nil, err
		}
		return cast.NewAssign(l.Type(), l, r), nil

	case "comma":
		x, err := buildExpr(sc, s.X)
		if err != nil {
			return nil, err
		}
		y, err := buildExpr(sc, s.Y)
		if err != nil {
			return nil, err
		}
		return cast.NewComma(y.Type(), x, y), nil

	case "incdec":
		x, err := buildExpr(sc, s.X)
		if err != nil {
			return nil, err
		}
		op, err := incDecOp(s.Op)
		if err != nil {
			return nil, err
		}
		return cast.NewIncDec(x.Type(), op, x), nil

	case "cast":
		x, err := buildExpr(sc, s.X)
		if err != nil {
			return nil, err
		}
		t, err := buildType(s.Type)
		if err != nil {
			return nil, err
		}
		return cast.NewCast(t, x), nil
	}
	return nil, ierr.Internal("fixture: unknown expression kind %q", s.Kind)
}

func intLikeType(s *cast.TypeSpec) (*ctype.Type, error) {
	if s == nil {
		return ctype.Int(4, true), nil
	}
	return buildType(s)
}

func floatLikeType(s *cast.TypeSpec) (*ctype.Type, error) {
	if s == nil {
		return ctype.Float64(), nil
	}
	return buildType(s)
}

// buildConstExpr converts a fixture expression appearing inside a
// global's static initializer, where only the handful of kinds
// pkg/emit's data printer understands are legal: a numeric constant, a
// string, or a reference to another global.
func buildConstExpr(s *cast.ExprSpec) (cast.Expr, error) {
	switch s.Kind {
	case "int", "float", "str", "globalref":
		return buildExpr(newScope(nil), s)
	}
	return nil, ierr.Internal("fixture: expression kind %q cannot appear in a static initializer", s.Kind)
}
