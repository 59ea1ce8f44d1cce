// Package fixturegen translates a YAML fixture (pkg/cast's
// TypeSpec/ExprSpec/StmtSpec/FuncSpec/ModuleSpec tree) into SSA IR and
// streams it through pkg/emit. It plays the role the teacher's own
// generator passes (clightgen, cminorgen, rtlgen, ...) play between two
// adjacent IRs, except there is no further typed-statement IR upstream
// of this backend to translate from: a fixture file stands in for a
// parser and semantic analyzer, and this package's statement builder
// is the front end's lowering driver, not a generic AST walker.
package fixturegen

import (
	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ctype"
)

// buildType converts a fixture TypeSpec into a real ctype.Type. A nil
// spec means void, matching a C function's implicit return type.
func buildType(s *cast.TypeSpec) (*ctype.Type, error) {
	if s == nil {
		return ctype.Void(), nil
	}
	switch s.Kind {
	case "", "void":
		return ctype.Void(), nil
	case "bool":
		return ctype.Bool(), nil
	case "int":
		size := s.Size
		if size == 0 {
			size = 4
		}
		return ctype.Int(size, s.Signed), nil
	case "float":
		size := s.Size
		if size == 0 {
			size = 8
		}
		if size == 4 {
			return ctype.Float32(), nil
		}
		return ctype.Float64(), nil
	case "pointer":
		base, err := buildType(s.Of)
		if err != nil {
			return nil, err
		}
		return ctype.Pointer(base), nil
	case "array":
		base, err := buildType(s.Of)
		if err != nil {
			return nil, err
		}
		return ctype.Array(base, s.Length), nil
	case "struct":
		return buildAggregate(s, false)
	case "union":
		return buildAggregate(s, true)
	}
	return nil, ierr.Internal("fixture: unknown type kind %q", s.Kind)
}

// alignUp rounds n up to the next multiple of align.
func alignUp(n, align int64) int64 {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

// buildAggregate lays out a struct/union the plain way a target ABI
// would with no explicit packing and no bit-fields: each member sits at
// its own type's natural alignment (union members all at offset 0).
// The aggregate's alignment is its most-aligned member's; its size is
// the end of the last member (for a union, the largest member's size)
// rounded up to that alignment.
func buildAggregate(s *cast.TypeSpec, union bool) (*ctype.Type, error) {
	fields := make([]ctype.Field, len(s.Members))
	var cursor, maxAlign int64 = 0, 1
	for i, m := range s.Members {
		mt, err := buildType(&m.Type)
		if err != nil {
			return nil, err
		}
		if mt.Align > maxAlign {
			maxAlign = mt.Align
		}
		off := int64(0)
		if !union {
			off = alignUp(cursor, mt.Align)
			cursor = off + mt.Size
		} else if mt.Size > cursor {
			cursor = mt.Size
		}
		fields[i] = ctype.Field{Name: m.Name, Type: mt, Offset: off}
	}
	size := alignUp(cursor, maxAlign)
	if union {
		return ctype.Union(s.Tag, fields, size, maxAlign), nil
	}
	return ctype.Struct(s.Tag, fields, size, maxAlign), nil
}

// memberIndex finds name among t's members.
func memberIndex(t *ctype.Type, name string) (int, error) {
	for i, f := range t.Members {
		if f.Name == name {
			return i, nil
		}
	}
	return 0, ierr.Internal("fixture: type %q has no member %q", t.Tag, name)
}
