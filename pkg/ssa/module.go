package ssa

import "fmt"

// Module is the process-wide (translation-unit-wide) state shared by
// every function built during one compilation: the label counter and
// the private-global counter, plus the set
// of aggregate type names already streamed to the emitter so that
// re-emitting the same type is a no-op.
//
// Globals, type values and constants are conceptually heap-allocated on
// first reference and live for the whole translation unit; Module is
// the arena that owns their identity-issuing counters. It does not own
// per-function blocks/instructions, which are freed with the function
// builder that created them.
type Module struct {
	nextLabel    uint64
	nextPrivate  uint64
	nextAnonType uint64
	emittedType  map[string]bool
}

// NewModule creates an empty module context.
func NewModule() *Module {
	return &Module{emittedType: make(map[string]bool)}
}

// NewLabel issues a fresh, process-wide-unique block label value.
func (m *Module) NewLabel(hint string) Value {
	m.nextLabel++
	return Label(m.nextLabel, hint)
}

// PrivateGlobal issues a global value for a statically-linked (file-local)
// declaration: a ".L" prefix plus a numeric suffix, so that identically
// named statics in different functions never collide in the printed
// output.
func (m *Module) PrivateGlobal(base string) Value {
	m.nextPrivate++
	return Global(fmt.Sprintf(".L%s.%d", base, m.nextPrivate))
}

// ExternalGlobal issues a global value for an externally-linked
// declaration: the declared name is used verbatim, since external
// linkage requires the symbol to be stable across translation units.
func (m *Module) ExternalGlobal(name string) Value {
	return Global(name)
}

// AnonTypeName issues a fresh, process-wide-unique name for an
// aggregate type with no tag (an anonymous struct/union), so the type
// emitter always has something to print after the `type` keyword.
func (m *Module) AnonTypeName() string {
	m.nextAnonType++
	return fmt.Sprintf(".anon.%d", m.nextAnonType)
}

// MarkTypeEmitted records that the aggregate type named name has been
// streamed to the emitter, and reports whether it was already marked
// (i.e. whether this call is the one that should actually print it).
func (m *Module) MarkTypeEmitted(name string) (firstTime bool) {
	if m.emittedType[name] {
		return false
	}
	m.emittedType[name] = true
	return true
}
