package ctype

// Convenience constructors for the fixed-size scalar types the backend
// actually needs to reason about; the front end's real type table is
// richer (named typedefs, qualifiers) but none of that affects lowering
// once Size/Align/Signed/Kind are known.

func Void() *Type { return &Type{Kind: KVoid} }

func Int(size int64, signed bool) *Type {
	p := PropInt | PropScalar | PropReal
	return &Type{Kind: KInt, Size: size, Align: size, Signed: signed, Prop: p}
}

func Bool() *Type {
	t := Int(1, false)
	t.IsBoolType = true
	return t
}

func Float32() *Type {
	return &Type{Kind: KFloat, Size: 4, Align: 4, Prop: PropFloat | PropScalar | PropReal}
}

func Float64() *Type {
	return &Type{Kind: KFloat, Size: 8, Align: 8, Prop: PropFloat | PropScalar | PropReal}
}

func Pointer(base *Type) *Type {
	return &Type{Kind: KPointer, Size: 8, Align: 8, Prop: PropScalar, Base: base}
}

func Array(base *Type, length int64) *Type {
	size := int64(-1)
	if length >= 0 && base.Size >= 0 {
		size = base.Size * length
	}
	return &Type{Kind: KArray, Size: size, Align: base.Align, Base: base, ArrayLen: length, Incomplete: length < 0}
}

func Struct(tag string, members []Field, size, align int64) *Type {
	return &Type{Kind: KStruct, Tag: tag, Members: members, Size: size, Align: align}
}

func Union(tag string, members []Field, size, align int64) *Type {
	return &Type{Kind: KUnion, Tag: tag, Members: members, Size: size, Align: align}
}

func Function(ret *Type, params []*Type, vararg, prototype bool) *Type {
	return &Type{Kind: KFunc, Base: ret, Func: Func{Params: params, IsVararg: vararg, IsPrototype: prototype}}
}

// IsFloat reports whether t is a floating-point scalar.
func (t *Type) IsFloat() bool { return t.Kind == KFloat }

// IsInteger reports whether t is an integer scalar (including pointers,
// which this backend treats as unsigned long).
func (t *Type) IsInteger() bool { return t.Kind == KInt || t.Kind == KPointer }

// IsUnsignedLike reports the effective signedness used for arithmetic
// and comparisons: pointers behave as unsigned long.
func (t *Type) IsUnsignedLike() bool {
	if t.Kind == KPointer {
		return true
	}
	return t.Kind == KInt && !t.Signed
}
