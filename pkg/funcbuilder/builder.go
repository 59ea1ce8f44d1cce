// Package funcbuilder implements the per-function control-flow
// primitives a lowering pass needs: block construction, jumps,
// allocas, the parameter prologue, and the lazily-materialized
// `__func__` global. It owns the one Function arena for the duration of
// one C function's lowering.
package funcbuilder

import (
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/convert"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// Sink receives data that must be streamed out immediately as a side
// effect of building a function (the `__func__` string literal, and the
// aggregate type declarations a function's signature requires), rather
// than waiting for the whole function to be finished. pkg/emit.Emitter
// implements this interface.
type Sink interface {
	EmitStringData(name, value string)
	DeclareType(t *ctype.Type)
}

// Builder is the stateful, single-owner object that lowers one C
// function into an ssa.Function. It is passed by unique mutable
// reference throughout lowering, the same way a per-function translator
// object accumulates state across a single pass.
type Builder struct {
	Mod *ssa.Module
	Fn  *ssa.Function
	Sig *ctype.Type // the function's own C type (for __func__ and va_start)

	sink  Sink
	gotos map[string]*ssa.Block

	nameDecl *cast.Decl // __func__ one-shot slot; nil once materialized
	funcName ssa.Value  // the private global issued on first __func__ reference
}

// New creates a function builder: it declares the
// return and parameter types to sink, then runs the parameter prologue.
func New(mod *ssa.Module, sink Sink, name string, exported bool, sig *ctype.Type, params []ParamDecl) (*Builder, error) {
	retClass, err := ctype.RegClass(sig.Base)
	if err != nil {
		return nil, err
	}
	fn := ssa.NewFunction(name, exported, sig.Func.IsVararg, retClass)
	b := &Builder{
		Mod:   mod,
		Fn:    fn,
		Sig:   sig,
		sink:  sink,
		gotos: make(map[string]*ssa.Block),
		nameDecl: &cast.Decl{Kind: cast.DeclConst, Name: name},
	}

	sink.DeclareType(sig.Base)
	for _, p := range params {
		sink.DeclareType(p.Decl.Type)
	}

	entry := ssa.NewBlock(mod.NewLabel("start"))
	fn.AppendBlock(entry)

	if err := b.prologue(entry, params, sig.Func.IsPrototype); err != nil {
		return nil, err
	}
	return b, nil
}

// ParamDecl wraps a formal parameter's declaration, used only to build
// the prologue; a parameter's position is its index in the params slice.
type ParamDecl struct {
	Decl *cast.Decl
}

func (b *Builder) prologue(entry *ssa.Block, params []ParamDecl, hasPrototype bool) error {
	for _, p := range params {
		class, err := ctype.RegClass(p.Decl.Type)
		if err != nil {
			return err
		}
		incoming := b.Fn.NewTemp()
		b.Fn.Params = append(b.Fn.Params, ssa.Param{Class: class, Value: incoming})

		if p.Decl.Type.IsAggregate() {
			p.Decl.BindAddr(incoming)
			continue
		}

		addr, err := b.Alloca(entry, p.Decl.Align, p.Decl.Type.Size)
		if err != nil {
			return err
		}
		p.Decl.BindAddr(addr)

		stored := incoming
		if !hasPrototype {
			promoted := promote(p.Decl.Type)
			stored, err = convert.Convert(b, promoted, p.Decl.Type, incoming)
			if err != nil {
				return err
			}
		}
		_, _, _, store, err := ctype.Classify(p.Decl.Type)
		if err != nil {
			return err
		}
		b.Fn.Emit(entry, store, ssa.ClassNone, addr, stored)
	}
	return nil
}

// promote returns the C default-argument-promotion type used when a
// function has no prototype: integers smaller than int promote to int,
// float promotes to double. The incoming SSA value already arrives at
// this promoted width; prologue narrows it back down to the declared
// parameter type.
func promote(t *ctype.Type) *ctype.Type {
	switch {
	case t.Kind == ctype.KFloat && t.Size < 8:
		return ctype.Float64()
	case t.Kind == ctype.KInt && t.Size < 4:
		return ctype.Int(4, true)
	default:
		return t
	}
}

// FuncName returns the lazily-materialized `__func__` global, emitting
// its string datum to the sink on first reference.
func (b *Builder) FuncName() ssa.Value {
	if b.nameDecl != nil {
		g := b.Mod.PrivateGlobal(b.Fn.Name)
		b.sink.EmitStringData(g.Name, b.Fn.Name)
		b.funcName = g
		b.nameDecl = nil
	}
	return b.funcName
}
