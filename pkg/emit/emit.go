// Package emit implements the textual SSA assembly printer: type
// declarations, data definitions and function bodies, in the QBE
// dialect consumed downstream. Compatibility with that consumer is
// bit-exact, so every mnemonic, sigil and keyword printed here comes
// straight off the closed opcode and class tables; this package
// invents nothing.
package emit

import (
	"fmt"
	"io"

	"github.com/pan0cc/qbegen/pkg/ssa"
)

// Emitter streams type declarations, data definitions and function
// bodies to w. It implements funcbuilder.Sink, so a single value can be
// handed to every function builder in a translation unit and also drive
// the top-level program walk.
type Emitter struct {
	w   io.Writer
	mod *ssa.Module
}

// New creates an emitter writing to w on behalf of mod. mod's type,
// label and private-global counters are shared with every function
// builder constructed against the same translation unit, so idempotent
// re-emission (MarkTypeEmitted) stays consistent across the whole run.
func New(w io.Writer, mod *ssa.Module) *Emitter {
	return &Emitter{w: w, mod: mod}
}

// EmitStringData implements funcbuilder.Sink: it prints the `__func__`
// string datum as a bare brace list with no `align` keyword, since the
// front end already knows the array has no padding to account for.
func (e *Emitter) EmitStringData(name, value string) {
	fmt.Fprintf(e.w, "data $%s = { b \"%s\", b 0 }\n", name, quoteString(value))
}
