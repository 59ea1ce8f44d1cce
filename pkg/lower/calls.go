package lower

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/funcbuilder"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// lowerCall lowers a function call: the callee and arguments are
// evaluated left-to-right, then the call instruction is emitted, and
// finally one arg marker per argument follows contiguously so the
// emitter can print the parenthesized argument list.
func lowerCall(b *funcbuilder.Builder, n *cast.Call) (ssa.Value, error) {
	calleeType := calleeSigType(n.Func.Type())
	if calleeType == nil {
		return ssa.Value{}, ierr.Internal("call target is not a function or function-pointer type")
	}

	callee, err := Lower(b, n.Func)
	if err != nil {
		return ssa.Value{}, err
	}

	retClass, err := ctype.RegClass(calleeType.Base)
	if err != nil {
		return ssa.Value{}, err
	}
	b.DeclareType(calleeType.Base)

	argVals := make([]ssa.Value, len(n.Args))
	argClasses := make([]ssa.Class, len(n.Args))
	for i, a := range n.Args {
		b.DeclareType(a.Type())
		v, err := Lower(b, a)
		if err != nil {
			return ssa.Value{}, err
		}
		class, err := ctype.RegClass(a.Type())
		if err != nil {
			return ssa.Value{}, err
		}
		argVals[i] = v
		argClasses[i] = class
	}

	res := b.EmitCall(calleeType.Func.IsVararg, retClass, callee)
	for i := range argVals {
		b.EmitArg(argClasses[i], argVals[i])
	}
	return res, nil
}

// calleeSigType returns the function type being called, following
// through a pointer-to-function if necessary.
func calleeSigType(t *ctype.Type) *ctype.Type {
	if t.Kind == ctype.KFunc {
		return t
	}
	if t.Kind == ctype.KPointer && t.Base != nil && t.Base.Kind == ctype.KFunc {
		return t.Base
	}
	return nil
}

func lowerIncDec(b *funcbuilder.Builder, n *cast.IncDec) (ssa.Value, error) {
	lv, err := LValueOf(b, n.X)
	if err != nil {
		return ssa.Value{}, err
	}
	old, err := Load(b, lv)
	if err != nil {
		return ssa.Value{}, err
	}

	class, err := ctype.RegClass(lv.Type)
	if err != nil {
		return ssa.Value{}, err
	}
	stride, err := strideOf(lv.Type)
	if err != nil {
		return ssa.Value{}, err
	}

	op := ssa.OAdd
	if n.Op == cast.PreDec || n.Op == cast.PostDec {
		op = ssa.OSub
	}
	updated := b.Emit(op, class, old, stride)

	if _, err := Store(b, lv, updated); err != nil {
		return ssa.Value{}, err
	}

	if n.Op == cast.PreInc || n.Op == cast.PreDec {
		return updated, nil
	}
	return old, nil
}

// strideOf returns the increment/decrement step for t: a pointer steps
// by its pointee's size, an integer by one, a float by 1.0.
func strideOf(t *ctype.Type) (ssa.Value, error) {
	switch t.Kind {
	case ctype.KPointer:
		return ssa.IntConst(uint64(t.Base.Size)), nil
	case ctype.KInt:
		return ssa.IntConst(1), nil
	case ctype.KFloat:
		if t.Size == 4 {
			return ssa.FloatConst(1), nil
		}
		return ssa.DoubleConst(1), nil
	}
	return ssa.Value{}, ierr.Internal("increment/decrement of non-scalar type")
}
