package fixturegen

import (
	"errors"

	"github.com/pan0cc/qbegen/internal/ierr"
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/diag"
	"github.com/pan0cc/qbegen/pkg/funcbuilder"
	"github.com/pan0cc/qbegen/pkg/initializer"
	"github.com/pan0cc/qbegen/pkg/lower"
	"github.com/pan0cc/qbegen/pkg/ssa"
	"github.com/pan0cc/qbegen/pkg/switchgen"
)

// reportIfUser forwards a recoverable user diagnostic to sink and
// swallows it so the rest of the function keeps lowering (and keeps
// reporting); anything else stays fatal.
func reportIfUser(sink diag.Sink, err error) error {
	var ud *ierr.UserDiagnostic
	if errors.As(err, &ud) {
		sink.Errorf(diag.Loc{}, "%s", ud.Msg)
		return nil
	}
	return err
}

// buildBlock lowers a sequence of statements in a fresh child scope, so
// a decl inside the block shadows an outer declaration of the same
// name for the rest of the block only.
func buildBlock(b *funcbuilder.Builder, sink diag.Sink, sc *scope, lc *loopCtx, stmts []cast.StmtSpec) error {
	inner := newScope(sc)
	for i := range stmts {
		if err := buildStmt(b, sink, inner, lc, &stmts[i]); err != nil {
			return err
		}
	}
	return nil
}

// buildStmt lowers one fixture statement, driving funcbuilder's
// control-flow primitives directly: no generic statement AST sits
// upstream of this package to dispatch through, so each statement kind
// builds its own little CFG the way a front end's own lowering pass
// would.
func buildStmt(b *funcbuilder.Builder, sink diag.Sink, sc *scope, lc *loopCtx, s *cast.StmtSpec) error {
	switch s.Kind {
	case "decl":
		return buildDecl(b, sc, s)

	case "expr":
		e, err := buildExpr(sc, s.Expr)
		if err != nil {
			return err
		}
		_, err = lower.Lower(b, e)
		return reportIfUser(sink, err)

	case "return":
		if s.Expr == nil {
			b.Ret(ssa.Value{})
			return nil
		}
		e, err := buildExpr(sc, s.Expr)
		if err != nil {
			return err
		}
		v, err := lower.Lower(b, e)
		if err != nil {
			return err
		}
		b.Ret(v)
		return nil

	case "if":
		return buildIf(b, sink, sc, lc, s)

	case "while":
		return buildWhile(b, sink, sc, lc, s)

	case "switch":
		return buildSwitch(b, sink, sc, lc, s)

	case "break":
		if lc == nil || lc.breakTo == nil {
			return ierr.Internal("fixture: break statement outside a loop or switch")
		}
		b.Jmp(lc.breakTo)
		return nil

	case "continue":
		if lc == nil || lc.continueTo == nil {
			return ierr.Internal("fixture: continue statement outside a loop")
		}
		b.Jmp(lc.continueTo)
		return nil

	case "goto":
		b.Jmp(b.Goto(s.Name))
		return nil

	case "label":
		blk := b.Goto(s.Name)
		b.Jmp(blk)
		b.Label(blk)
		return nil

	case "block":
		return buildBlock(b, sink, sc, lc, s.Body)
	}
	return ierr.Internal("fixture: unknown statement kind %q", s.Kind)
}

func buildDecl(b *funcbuilder.Builder, sc *scope, s *cast.StmtSpec) error {
	t, err := buildType(s.Type)
	if err != nil {
		return err
	}
	addr, err := b.AllocaLocal(t.Align, t.Size)
	if err != nil {
		return err
	}
	d := &cast.Decl{Kind: cast.DeclObject, Type: t, Align: t.Align}
	d.BindAddr(addr)
	sc.declare(s.Name, d)

	ranges, err := buildInitRanges(t, s.Init, s.Items, func(e *cast.ExprSpec) (cast.Expr, error) {
		return buildExpr(sc, e)
	})
	if err != nil {
		return err
	}
	return initializer.Lower(b, addr, &cast.Initializer{Type: t, Ranges: ranges})
}

func buildIf(b *funcbuilder.Builder, sink diag.Sink, sc *scope, lc *loopCtx, s *cast.StmtSpec) error {
	condExpr, err := buildExpr(sc, s.Cond)
	if err != nil {
		return err
	}
	cond, err := lower.Lower(b, condExpr)
	if err != nil {
		return err
	}

	thenBlk := b.NewBlock("if_then")
	elseBlk := b.NewBlock("if_else")
	joinBlk := b.NewBlock("if_join")
	b.Jnz(cond, thenBlk, elseBlk)

	b.Label(thenBlk)
	if err := buildBlock(b, sink, sc, lc, s.Then); err != nil {
		return err
	}
	b.Jmp(joinBlk)

	b.Label(elseBlk)
	if err := buildBlock(b, sink, sc, lc, s.Else); err != nil {
		return err
	}
	b.Jmp(joinBlk)

	b.Label(joinBlk)
	return nil
}

func buildWhile(b *funcbuilder.Builder, sink diag.Sink, sc *scope, lc *loopCtx, s *cast.StmtSpec) error {
	condBlk := b.NewBlock("while_cond")
	bodyBlk := b.NewBlock("while_body")
	doneBlk := b.NewBlock("while_done")

	b.Jmp(condBlk)
	b.Label(condBlk)
	condExpr, err := buildExpr(sc, s.Cond)
	if err != nil {
		return err
	}
	cond, err := lower.Lower(b, condExpr)
	if err != nil {
		return err
	}
	b.Jnz(cond, bodyBlk, doneBlk)

	b.Label(bodyBlk)
	inner := &loopCtx{breakTo: doneBlk, continueTo: condBlk, parent: lc}
	if err := buildBlock(b, sink, sc, inner, s.Body); err != nil {
		return err
	}
	b.Jmp(condBlk)

	b.Label(doneBlk)
	return nil
}

// buildSwitch dispatches through switchgen's binary-search decision
// tree, then lowers each case body in source order, falling through
// into the next case (and finally into default) exactly as C's switch
// does absent an explicit break.
func buildSwitch(b *funcbuilder.Builder, sink diag.Sink, sc *scope, lc *loopCtx, s *cast.StmtSpec) error {
	condExpr, err := buildExpr(sc, s.Cond)
	if err != nil {
		return err
	}
	v, err := lower.Lower(b, condExpr)
	if err != nil {
		return err
	}

	bodies := make([]*ssa.Block, len(s.Cases))
	cases := make([]switchgen.Case, len(s.Cases))
	for i, c := range s.Cases {
		blk := b.NewBlock("switch_case")
		bodies[i] = blk
		cases[i] = switchgen.Case{Key: uint64(c.Value), Body: blk}
	}
	defaultBlk := b.NewBlock("switch_default")
	doneBlk := b.NewBlock("switch_done")

	if err := switchgen.Switch(b, sink, diag.Loc{}, condExpr.Type(), v, cases, defaultBlk); err != nil {
		return err
	}

	var continueTo *ssa.Block
	if lc != nil {
		continueTo = lc.continueTo
	}
	inner := &loopCtx{breakTo: doneBlk, continueTo: continueTo, parent: lc}

	for i, c := range s.Cases {
		b.Label(bodies[i])
		if err := buildBlock(b, sink, sc, inner, c.Body); err != nil {
			return err
		}
		if i+1 < len(bodies) {
			b.Jmp(bodies[i+1])
		} else {
			b.Jmp(defaultBlk)
		}
	}

	b.Label(defaultBlk)
	if err := buildBlock(b, sink, sc, inner, s.Default); err != nil {
		return err
	}
	b.Jmp(doneBlk)

	b.Label(doneBlk)
	return nil
}
