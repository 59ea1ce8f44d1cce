package cast

import "github.com/pan0cc/qbegen/pkg/ctype"

// InitRange is one sub-range of an object initializer: the half-open
// byte range [Start, End) it covers, the bit-field window if this slot
// packs into a shared storage unit, and the expression supplying the
// value. The front end's constant-expression evaluator has already
// sorted and resolved these; pkg/initializer only has to walk the list.
type InitRange struct {
	Start, End int64
	Bits       ctype.Bitfield
	Expr       Expr // nil for a pure zero-fill range with no explicit value
}

// Initializer is the front end's already-sorted description of one
// object's initialization, as consumed by pkg/initializer.
type Initializer struct {
	Type   *ctype.Type
	Ranges []InitRange
}
