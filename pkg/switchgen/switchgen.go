// Package switchgen lowers a switch statement's case set into a binary
// search decision tree of equality and ordered comparisons over the
// dispatch value, using pkg/casetree's balanced case map to pick the
// comparison order.
package switchgen

import (
	"github.com/pan0cc/qbegen/pkg/casetree"
	"github.com/pan0cc/qbegen/pkg/ctype"
	"github.com/pan0cc/qbegen/pkg/diag"
	"github.com/pan0cc/qbegen/pkg/ssa"
)

// Builder is the subset of funcbuilder.Builder that switch lowering
// needs.
type Builder interface {
	NewBlock(hint string) *ssa.Block
	Label(b *ssa.Block)
	Jmp(target *ssa.Block)
	Jnz(cond ssa.Value, ifTrue, ifFalse *ssa.Block)
	Emit(op ssa.Op, class ssa.Class, a0, a1 ssa.Value) ssa.Value
}

// Case is one switch-case arm: its normalized key and the block its
// label targets.
type Case struct {
	Key  uint64
	Body *ssa.Block
}

// Switch builds the case AVL from cases (reporting a duplicate-key
// diagnostic through sink for any repeated key) and emits the binary
// search decision tree that dispatches v, of type t, to the matching
// case body or defaultBlock.
func Switch(b Builder, sink diag.Sink, loc diag.Loc, t *ctype.Type, v ssa.Value, cases []Case, defaultBlock *ssa.Block) error {
	tree := &casetree.Tree{}
	for _, c := range cases {
		node := tree.Insert(c.Key, c.Body)
		if !node.New {
			sink.Errorf(loc, "multiple 'case' labels with same value (%d)", c.Key)
		}
	}

	class, err := ctype.RegClass(t)
	if err != nil {
		return err
	}
	return search(b, class, v, tree.Root, defaultBlock)
}

// search recurses over the AVL, emitting at most one equality
// comparison and one ordered comparison per visited node: an equality
// check dispatches directly to the node's body, and an unsigned
// ordered check picks which subtree (already narrowed to keys
// above/below node.Key) to search next.
func search(b Builder, class ssa.Class, v ssa.Value, node *casetree.Node, defaultBlock *ssa.Block) error {
	if node == nil {
		b.Jmp(defaultBlock)
		return nil
	}

	ltBlk := b.NewBlock("case_lt")
	eq := b.Emit(ssa.CmpOp(ssa.CEq, false, class), ssa.W, v, ssa.IntConst(node.Key))
	b.Jnz(eq, node.Body, ltBlk)

	b.Label(ltBlk)
	ltChildBlk := b.NewBlock("case_lt_child")
	gtChildBlk := b.NewBlock("case_gt_child")
	lt := b.Emit(ssa.CmpOp(ssa.CLt, false, class), ssa.W, v, ssa.IntConst(node.Key))
	b.Jnz(lt, ltChildBlk, gtChildBlk)

	b.Label(ltChildBlk)
	if err := search(b, class, v, node.Child[0], defaultBlock); err != nil {
		return err
	}

	b.Label(gtChildBlk)
	if err := search(b, class, v, node.Child[1], defaultBlock); err != nil {
		return err
	}
	return nil
}
