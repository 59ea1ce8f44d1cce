package lower

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/funcbuilder"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

func lowerBinary(b *funcbuilder.Builder, n *cast.Binary) (ssa.Value, error) {
	switch n.Op {
	case cast.BLAnd, cast.BLOr:
		return lowerShortCircuit(b, n)
	}

	l, err := Lower(b, n.L)
	if err != nil {
		return ssa.Value{}, err
	}
	r, err := Lower(b, n.R)
	if err != nil {
		return ssa.Value{}, err
	}

	if isComparison(n.Op) {
		operandClass, err := ctype.RegClass(n.L.Type())
		if err != nil {
			return ssa.Value{}, err
		}
		signed := !n.L.Type().IsUnsignedLike()
		cond, ok := condFor(n.Op)
		if !ok {
			return ssa.Value{}, ierr.Internal("unknown comparison operator %d", n.Op)
		}
		return b.Emit(ssa.CmpOp(cond, signed, operandClass), ssa.W, l, r), nil
	}

	class, err := ctype.RegClass(n.Type())
	if err != nil {
		return ssa.Value{}, err
	}
	unsigned := n.Type().IsUnsignedLike()
	op, err := arithOp(n.Op, unsigned)
	if err != nil {
		return ssa.Value{}, err
	}
	return b.Emit(op, class, l, r), nil
}

func isComparison(op cast.BinaryOp) bool {
	switch op {
	case cast.BEq, cast.BNe, cast.BLt, cast.BLe, cast.BGt, cast.BGe:
		return true
	}
	return false
}

func condFor(op cast.BinaryOp) (ssa.Cond, bool) {
	switch op {
	case cast.BEq:
		return ssa.CEq, true
	case cast.BNe:
		return ssa.CNe, true
	case cast.BLt:
		return ssa.CLt, true
	case cast.BLe:
		return ssa.CLe, true
	case cast.BGt:
		return ssa.CGt, true
	case cast.BGe:
		return ssa.CGe, true
	}
	return 0, false
}

func arithOp(op cast.BinaryOp, unsigned bool) (ssa.Op, error) {
	switch op {
	case cast.BAdd:
		return ssa.OAdd, nil
	case cast.BSub:
		return ssa.OSub, nil
	case cast.BMul:
		return ssa.OMul, nil
	case cast.BDiv:
		if unsigned {
			return ssa.OUdiv, nil
		}
		return ssa.ODiv, nil
	case cast.BMod:
		if unsigned {
			return ssa.OUrem, nil
		}
		return ssa.ORem, nil
	case cast.BAnd:
		return ssa.OAnd, nil
	case cast.BOr:
		return ssa.OOr, nil
	case cast.BXor:
		return ssa.OXor, nil
	case cast.BShl:
		return ssa.OShl, nil
	case cast.BShr:
		if unsigned {
			return ssa.OShr, nil
		}
		return ssa.OSar, nil
	}
	return ssa.OpNone, ierr.Internal("unknown arithmetic operator %d", op)
}

// lowerShortCircuit builds the two-block CFG for && and ||: the right
// operand is only evaluated when its result can still affect the
// outcome, and the result merges at a join block with a w-class phi.
func lowerShortCircuit(b *funcbuilder.Builder, n *cast.Binary) (ssa.Value, error) {
	l, err := Lower(b, n.L)
	if err != nil {
		return ssa.Value{}, err
	}
	entryTail := b.Tail()

	rhsBlk := b.NewBlock("logic_right")
	joinBlk := b.NewBlock("logic_join")
	if n.Op == cast.BLOr {
		b.Jnz(l, joinBlk, rhsBlk)
	} else {
		b.Jnz(l, rhsBlk, joinBlk)
	}

	b.Label(rhsBlk)
	r, err := Lower(b, n.R)
	if err != nil {
		return ssa.Value{}, err
	}
	rhsTail := b.Tail()
	b.Jmp(joinBlk)

	b.Label(joinBlk)
	res := b.EmitPhi(joinBlk, ssa.W)
	b.FillPhi(joinBlk, 0, entryTail, l)
	b.FillPhi(joinBlk, 1, rhsTail, r)
	return res, nil
}
