package lower

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/funcbuilder"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

func lowerBuiltin(b *funcbuilder.Builder, n *cast.Builtin) (ssa.Value, error) {
	switch n.Kind {
	case cast.BuiltinVAStart:
		p, err := Lower(b, n.Args[0])
		if err != nil {
			return ssa.Value{}, err
		}
		b.Emit(ssa.OVAStart, ssa.ClassNone, p, ssa.Value{})
		return ssa.Value{}, nil

	case cast.BuiltinVAEnd:
		return ssa.Value{}, nil

	case cast.BuiltinVAArg:
		p, err := Lower(b, n.Args[0])
		if err != nil {
			return ssa.Value{}, err
		}
		if !n.Type().IsScalar() {
			return ssa.Value{}, ierr.Unsupported("va_arg of a non-scalar type is not supported")
		}
		class, err := ctype.RegClass(n.Type())
		if err != nil {
			return ssa.Value{}, err
		}
		return b.Emit(ssa.OVAArg, class, p, ssa.Value{}), nil

	case cast.BuiltinAlloca:
		size, err := Lower(b, n.Args[0])
		if err != nil {
			return ssa.Value{}, err
		}
		return b.Emit(ssa.OAlloc16, ssa.L, size, ssa.Value{}), nil
	}
	return ssa.Value{}, ierr.Internal("unknown builtin kind %d", n.Kind)
}
