package funcbuilder

import "github.com/pan0cc/qbegen/pkg/ssa"

// Finish synthesizes a terminator for the function's final block if the
// caller left it unterminated: `main` returns 0, every other function
// returns void.
func (b *Builder) Finish() *ssa.Function {
	tail := b.Fn.Tail()
	if tail != nil && !tail.Terminated() {
		if b.Fn.Name == "main" {
			tail.Term = ssa.Terminator{Kind: ssa.TRet, RetVal: ssa.IntConst(0), HasRet: true}
		} else {
			tail.Term = ssa.Terminator{Kind: ssa.TRet}
		}
	}
	return b.Fn
}
