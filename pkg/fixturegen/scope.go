package fixturegen

import (
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// scope resolves a fixture identifier to its declaration: the global
// scope holds every function and global-variable Decl in the module,
// and each block statement pushes a child scope for its own locals, so
// a name declared in an inner block shadows an outer one of the same
// name for the rest of that block.
type scope struct {
	vars   map[string]*cast.Decl
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]*cast.Decl), parent: parent}
}

func (s *scope) declare(name string, d *cast.Decl) {
	s.vars[name] = d
}

func (s *scope) lookup(name string) (*cast.Decl, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if d, ok := cur.vars[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// loopCtx threads the enclosing loop's break/continue targets through
// statement building; switchgen's dispatch tree is not itself a loop,
// so a switch statement reuses the enclosing loopCtx for continue but
// installs its own break target.
type loopCtx struct {
	breakTo    *ssa.Block
	continueTo *ssa.Block
	parent     *loopCtx
}
