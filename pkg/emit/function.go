package emit

import (
	"fmt"

	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// EmitFunction prints fn's signature and every block in insertion
// order. The caller is responsible for having already declared fn's
// return and parameter types to the sink (funcbuilder.New does this at
// construction time).
func (e *Emitter) EmitFunction(fn *ssa.Function) error {
	e.printSignature(fn)
	for blk := fn.Start; blk != nil; blk = blk.Next {
		if err := e.printBlock(blk); err != nil {
			return err
		}
	}
	fmt.Fprintln(e.w, "}")
	return nil
}

func (e *Emitter) printSignature(fn *ssa.Function) {
	if fn.Exported {
		fmt.Fprint(e.w, "export ")
	}
	fmt.Fprint(e.w, "function ")
	if fn.RetClass != ssa.ClassNone {
		fmt.Fprintf(e.w, "%s ", fn.RetClass)
	}
	fmt.Fprintf(e.w, "$%s(", fn.Name)
	for i, p := range fn.Params {
		if i > 0 {
			fmt.Fprint(e.w, ", ")
		}
		fmt.Fprintf(e.w, "%s %s", p.Class, p.Value)
	}
	if fn.IsVararg {
		if len(fn.Params) > 0 {
			fmt.Fprint(e.w, ", ")
		}
		fmt.Fprint(e.w, "...")
	}
	fmt.Fprintln(e.w, ") {")
}

func (e *Emitter) printBlock(blk *ssa.Block) error {
	fmt.Fprintf(e.w, "%s\n", blk.Label)

	if blk.Phi.Present {
		fmt.Fprintf(e.w, "  %s =%s phi %s %s, %s %s\n",
			blk.Phi.Res, blk.Phi.Class,
			blk.Phi.Pred[0].Label, blk.Phi.Val[0],
			blk.Phi.Pred[1].Label, blk.Phi.Val[1])
	}

	insts := blk.Insts
	for i := 0; i < len(insts); i++ {
		inst := insts[i]
		switch inst.Op {
		case ssa.OArg:
			// Consumed as part of a preceding OCall/OVACall's argument
			// list; never printed standalone.
			continue
		case ssa.OCall, ssa.OVACall:
			j := i + 1
			for j < len(insts) && insts[j].Op == ssa.OArg {
				j++
			}
			e.printCall(inst, insts[i+1:j])
			i = j - 1
		default:
			if err := e.printInstruction(inst); err != nil {
				return err
			}
		}
	}

	e.printTerminator(blk.Term)
	return nil
}

func (e *Emitter) printCall(inst ssa.Instruction, args []ssa.Instruction) {
	fmt.Fprint(e.w, "  ")
	if inst.Res.IsSet() {
		fmt.Fprintf(e.w, "%s =%s ", inst.Res, inst.Class)
	}
	fmt.Fprintf(e.w, "%s %s(", inst.Op, inst.Callee)
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(e.w, ", ")
		}
		fmt.Fprintf(e.w, "%s %s", a.Class, a.Arg[0])
	}
	fmt.Fprintln(e.w, ")")
}

// printInstruction prints one ordinary (non-call) instruction. Stores
// are stored internally as (addr, value) but print as `storeX VALUE,
// ADDR`; every other two-operand op prints its operands in storage
// order.
func (e *Emitter) printInstruction(inst ssa.Instruction) error {
	fmt.Fprint(e.w, "  ")
	if inst.Res.IsSet() {
		fmt.Fprintf(e.w, "%s =%s ", inst.Res, inst.Class)
	}

	switch inst.Op {
	case ssa.OStoreB, ssa.OStoreH, ssa.OStoreW, ssa.OStoreL, ssa.OStoreS, ssa.OStoreD:
		fmt.Fprintf(e.w, "%s %s, %s\n", inst.Op, inst.Arg[1], inst.Arg[0])
		return nil
	case ssa.OVAStart:
		fmt.Fprintf(e.w, "%s %s\n", inst.Op, inst.Arg[0])
		return nil
	}

	switch operandCount(inst.Op) {
	case 0:
		fmt.Fprintf(e.w, "%s\n", inst.Op)
	case 1:
		fmt.Fprintf(e.w, "%s %s\n", inst.Op, inst.Arg[0])
	case 2:
		fmt.Fprintf(e.w, "%s %s, %s\n", inst.Op, inst.Arg[0], inst.Arg[1])
	default:
		return ierr.Internal("unrecognized instruction opcode %q", inst.Op)
	}
	return nil
}

// operandCount classifies how many operands op's mnemonic takes, for
// every op that isn't a store (handled separately above) or a
// call/arg (handled by printCall). Dynamically built comparison
// mnemonics (CmpOp) are two-operand, same as ordinary binary arithmetic,
// so they fall through the default two-operand case via their shared
// "cXXXclass" prefix rather than a name comparison.
func operandCount(op ssa.Op) int {
	switch op {
	case ssa.OLoadSB, ssa.OLoadUB, ssa.OLoadSH, ssa.OLoadUH,
		ssa.OLoadW, ssa.OLoadL, ssa.OLoadS, ssa.OLoadD,
		ssa.ONeg, ssa.OCopy,
		ssa.OExtSB, ssa.OExtUB, ssa.OExtSH, ssa.OExtUH, ssa.OExtSW, ssa.OExtUW,
		ssa.OExtS, ssa.OTruncD,
		ssa.OStoSI, ssa.ODtoSI, ssa.OSwtof, ssa.OSltof,
		ssa.OAlloc4, ssa.OAlloc8, ssa.OAlloc16,
		ssa.OVAArg:
		return 1
	case ssa.OAdd, ssa.OSub, ssa.OMul, ssa.ODiv, ssa.OUdiv, ssa.ORem, ssa.OUrem,
		ssa.OOr, ssa.OXor, ssa.OAnd, ssa.OSar, ssa.OShr, ssa.OShl:
		return 2
	}
	if len(op) > 0 && op[0] == 'c' {
		return 2
	}
	return -1
}

func (e *Emitter) printTerminator(term ssa.Terminator) {
	switch term.Kind {
	case ssa.TJmp:
		fmt.Fprintf(e.w, "  jmp %s\n", term.Target[0].Label)
	case ssa.TJnz:
		fmt.Fprintf(e.w, "  jnz %s, %s, %s\n", term.Cond, term.Target[0].Label, term.Target[1].Label)
	case ssa.TRet:
		if term.HasRet && term.RetVal.IsSet() {
			fmt.Fprintf(e.w, "  ret %s\n", term.RetVal)
		} else {
			fmt.Fprintln(e.w, "  ret")
		}
	}
}
