package convert

import (
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// u64ToFloat lowers an unsigned 64-bit integer to a float/double via a
// round-to-odd CFG, since the target SSA only has a signed
// long-to-float conversion.
//
//	big = (v < 0)                         ; high bit set -> needs correction
//	jnz big -> (big_blk, small_blk)
//	small_blk: r0 = sltof(v); jmp join
//	big_blk:   odd = v & 1; v' = (v>>1) | odd
//	           r1 = sltof(v'); r1' = r1 + r1
//	join: phi (small_blk, r0), (big_blk, r1')
func u64ToFloat(cfg Blocks, dstClass ssa.Class, v ssa.Value) (ssa.Value, error) {
	bigBlk := cfg.NewBlock("utof_big")
	smallBlk := cfg.NewBlock("utof_small")
	joinBlk := cfg.NewBlock("utof_join")

	big := cfg.Emit(ssa.CmpOp(ssa.CLt, true, ssa.L), ssa.W, v, ssa.IntConst(0))
	cfg.Jnz(big, bigBlk, smallBlk)

	cfg.Label(smallBlk)
	r0 := cfg.Emit(ssa.OSltof, dstClass, v, ssa.Value{})
	cfg.Jmp(joinBlk)

	cfg.Label(bigBlk)
	odd := cfg.Emit(ssa.OAnd, ssa.L, v, ssa.IntConst(1))
	shifted := cfg.Emit(ssa.OShr, ssa.L, v, ssa.IntConst(1))
	rounded := cfg.Emit(ssa.OOr, ssa.L, shifted, odd)
	r1 := cfg.Emit(ssa.OSltof, dstClass, rounded, ssa.Value{})
	r1doubled := cfg.Emit(ssa.OAdd, dstClass, r1, r1)
	cfg.Jmp(joinBlk)

	cfg.Label(joinBlk)
	res := cfg.EmitPhi(joinBlk, dstClass)
	cfg.FillPhi(joinBlk, 0, smallBlk, r0)
	cfg.FillPhi(joinBlk, 1, bigBlk, r1doubled)
	return res, nil
}

// floatToU64 lowers a float/double to an unsigned 64-bit integer via a
// threshold-split CFG:
//
//	maxf = 2^63 as float; maxi = 1<<63
//	big = (v >= maxf)
//	jnz big -> (big_blk, small_blk)
//	small_blk: r0 = f_to_si(v); jmp join
//	big_blk:   v' = v - maxf; r1 = f_to_si(v') ^ maxi
//	join: phi (small_blk, r0), (big_blk, r1)
//
// toSI is the plain signed conversion opcode (stosi/dtosi) already chosen
// by the caller from from.Size.
func floatToU64(cfg Blocks, from *ctype.Type, toSI ssa.Op, v ssa.Value) (ssa.Value, error) {
	srcClass := floatResultClass(from)

	var maxf ssa.Value
	if srcClass == ssa.S {
		maxf = ssa.FloatConst(9223372036854775808.0)
	} else {
		maxf = ssa.DoubleConst(9223372036854775808.0)
	}
	maxi := ssa.IntConst(1 << 63)

	bigBlk := cfg.NewBlock("ftou_big")
	smallBlk := cfg.NewBlock("ftou_small")
	joinBlk := cfg.NewBlock("ftou_join")

	big := cfg.Emit(ssa.CmpOp(ssa.CGe, true, srcClass), ssa.W, v, maxf)
	cfg.Jnz(big, bigBlk, smallBlk)

	cfg.Label(smallBlk)
	r0 := cfg.Emit(toSI, ssa.L, v, ssa.Value{})
	cfg.Jmp(joinBlk)

	cfg.Label(bigBlk)
	shifted := cfg.Emit(ssa.OSub, srcClass, v, maxf)
	converted := cfg.Emit(toSI, ssa.L, shifted, ssa.Value{})
	r1 := cfg.Emit(ssa.OXor, ssa.L, converted, maxi)
	cfg.Jmp(joinBlk)

	cfg.Label(joinBlk)
	res := cfg.EmitPhi(joinBlk, ssa.L)
	cfg.FillPhi(joinBlk, 0, smallBlk, r0)
	cfg.FillPhi(joinBlk, 1, bigBlk, r1)
	return res, nil
}
