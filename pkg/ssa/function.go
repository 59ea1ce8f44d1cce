package ssa

// Param is one incoming function parameter: its register class and the
// temporary value bound to it by the parameter prologue.
type Param struct {
	Class Class
	Value Value
}

// Function owns the blocks, instructions and temporaries of a single
// lowered C function. It is an arena: everything reachable from Start is
// released together when the function is torn down.
type Function struct {
	Name     string
	Exported bool
	IsVararg bool
	RetClass Class
	Params   []Param

	Start *Block
	tail  *Block

	lastTemp uint64
}

// NewFunction creates an empty function-builder target with no blocks.
// The caller (funcbuilder.Builder) appends the entry block immediately
// after construction.
func NewFunction(name string, exported, isVararg bool, retClass Class) *Function {
	return &Function{Name: name, Exported: exported, IsVararg: isVararg, RetClass: retClass}
}

// Tail returns the current insertion point: the most recently appended
// block.
func (f *Function) Tail() *Block { return f.tail }

// AppendBlock links b after the current tail (or makes it Start, if this
// is the first block) and makes it the new tail.
func (f *Function) AppendBlock(b *Block) {
	if f.Start == nil {
		f.Start = b
		f.tail = b
		return
	}
	f.tail.Next = b
	f.tail = b
}

// NewTemp issues a fresh, function-local temporary. Temp IDs are dense
// and start at 1.
func (f *Function) NewTemp() Value {
	f.lastTemp++
	return Temp(f.lastTemp)
}

// LastTemp returns the most recently issued temporary ID (0 if none).
func (f *Function) LastTemp() uint64 { return f.lastTemp }

// Blocks returns the function's blocks in insertion order.
func (f *Function) Blocks() []*Block {
	var out []*Block
	for b := f.Start; b != nil; b = b.Next {
		out = append(out, b)
	}
	return out
}
