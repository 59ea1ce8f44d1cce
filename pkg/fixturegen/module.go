package fixturegen

import (
	"io"

	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/diag"
	"github.com/pan0cc/qbegen/pkg/emit"
	"github.com/pan0cc/qbegen/pkg/funcbuilder"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

func linkageFor(exported bool) cast.Linkage {
	if exported {
		return cast.LinkExternal
	}
	return cast.LinkInternal
}

// Build lowers an entire fixture translation unit and streams its type
// declarations, data definitions and function bodies to w in source
// order. Globals and functions are declared in a first pass so that
// forward references and recursive calls resolve regardless of
// declaration order, then built in a second pass.
func Build(w io.Writer, m *cast.ModuleSpec) error {
	mod := ssa.NewModule()
	e := emit.New(w, mod)
	sink := diag.NewWriterSink(w)
	global := newScope(nil)

	globalTypes := make([]*ctype.Type, len(m.Globals))
	for i := range m.Globals {
		g := &m.Globals[i]
		t, err := buildType(&g.Type)
		if err != nil {
			return err
		}
		globalTypes[i] = t
		d := &cast.Decl{Kind: cast.DeclObject, Type: t, Align: t.Align, Linkage: linkageFor(g.Exported)}
		d.BindAddr(mod.ExternalGlobal(g.Name))
		global.declare(g.Name, d)
	}

	funcTypes := make([]*ctype.Type, len(m.Functions))
	for i := range m.Functions {
		f := &m.Functions[i]
		ft, err := buildFuncType(f)
		if err != nil {
			return err
		}
		funcTypes[i] = ft
		d := &cast.Decl{Kind: cast.DeclFunction, Type: ft, Linkage: linkageFor(f.Exported)}
		d.BindAddr(mod.ExternalGlobal(f.Name))
		global.declare(f.Name, d)
	}

	for i := range m.Globals {
		if err := buildGlobal(e, &m.Globals[i], globalTypes[i]); err != nil {
			return err
		}
	}
	for i := range m.Functions {
		if err := buildFunc(e, mod, sink, global, &m.Functions[i], funcTypes[i]); err != nil {
			return err
		}
	}
	return nil
}

// buildFuncType builds a function's own ctype.Type from its fixture
// signature. A function with declared parameters is treated as
// prototyped (no default-argument promotion at the call boundary);
// Prototype lets a zero-parameter fixture function opt into the same
// behavior explicitly.
func buildFuncType(f *cast.FuncSpec) (*ctype.Type, error) {
	ret, err := buildType(&f.ReturnType)
	if err != nil {
		return nil, err
	}
	params := make([]*ctype.Type, len(f.Params))
	for i := range f.Params {
		pt, err := buildType(&f.Params[i].Type)
		if err != nil {
			return nil, err
		}
		params[i] = pt
	}
	prototype := f.Prototype || len(f.Params) > 0
	return ctype.Function(ret, params, f.Vararg, prototype), nil
}

func buildGlobal(e *emit.Emitter, g *cast.GlobalSpec, t *ctype.Type) error {
	if t.IsAggregate() {
		e.DeclareType(t)
	}
	ranges, err := buildInitRanges(t, g.Init, g.Items, buildConstExpr)
	if err != nil {
		return err
	}
	data := &cast.Data{
		Name:     g.Name,
		Exported: g.Exported,
		Align:    t.Align,
		Init:     cast.Initializer{Type: t, Ranges: ranges},
	}
	return e.EmitData(data)
}

func buildFunc(e *emit.Emitter, mod *ssa.Module, sink diag.Sink, global *scope, f *cast.FuncSpec, ft *ctype.Type) error {
	sc := newScope(global)

	builderParams := make([]funcbuilder.ParamDecl, len(f.Params))
	for i := range f.Params {
		d := &cast.Decl{Kind: cast.DeclObject, Type: ft.Func.Params[i], Align: ft.Func.Params[i].Align}
		builderParams[i] = funcbuilder.ParamDecl{Decl: d}
		sc.declare(f.Params[i].Name, d)
	}

	b, err := funcbuilder.New(mod, e, f.Name, f.Exported, ft, builderParams)
	if err != nil {
		return err
	}

	if err := buildBlock(b, sink, sc, nil, f.Body); err != nil {
		return err
	}

	return e.EmitFunction(b.Finish())
}
