package fixturegen

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ctype"
)

// buildInitRanges converts a decl/global's Init/Items fixture fields
// into the sorted cast.InitRange list pkg/initializer and pkg/emit's
// data printer both walk. Exactly one of init/items is meaningful;
// both nil zero-fills the whole object via an empty range list.
func buildInitRanges(t *ctype.Type, init *cast.ExprSpec, items []cast.ExprSpec, build func(*cast.ExprSpec) (cast.Expr, error)) ([]cast.InitRange, error) {
	switch {
	case len(items) > 0:
		if t.Kind != ctype.KArray {
			return nil, ierr.Internal("fixture: an item list was given for non-array type %q", t.Tag)
		}
		elem := t.Base
		ranges := make([]cast.InitRange, len(items))
		for i := range items {
			e, err := build(&items[i])
			if err != nil {
				return nil, err
			}
			start := int64(i) * elem.Size
			ranges[i] = cast.InitRange{Start: start, End: start + elem.Size, Expr: e}
		}
		return ranges, nil

	case init != nil:
		e, err := build(init)
		if err != nil {
			return nil, err
		}
		return []cast.InitRange{{Start: 0, End: t.Size, Expr: e}}, nil

	default:
		return nil, nil
	}
}
