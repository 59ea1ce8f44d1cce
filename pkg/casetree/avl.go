// Package casetree implements the balanced ordered map from switch case
// value to target block used by the switch lowerer. It supports only
// insertion and ordered traversal.
//
// The rebalancing algorithm is a bounded-depth explicit-stack walk to
// the insertion point followed by rebalancing each ancestor on the way
// back up, with the same single/double rotation split on whether the
// inner grandchild is taller than the outer one.
package casetree

import "github.com/pan0cc/qbegen/pkg/ssa"

// Node is one entry: a 64-bit case key, two children, a maintained
// height, whether this insert call created it, and the block it targets.
type Node struct {
	Key    uint64
	Child  [2]*Node
	Height int
	New    bool
	Body   *ssa.Block
}

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return n.Height
}

// Tree is an ordered map keyed by case value.
type Tree struct {
	Root *Node
}

// maxDepth bounds the explicit-stack insertion walk (sizeof(void*) * 8
// * 3 / 2): generous enough for any AVL tree over a 64-bit key space.
const maxDepth = 96

// Insert inserts key with target body, or returns the existing node
// unmodified (New cleared) if key is already present. The caller (the
// switch lowerer) treats a non-new return as a duplicate-case-label
// diagnostic.
func (t *Tree) Insert(key uint64, body *ssa.Block) *Node {
	var path [maxDepth]**Node
	depth := 0
	cur := &t.Root
	path[depth] = cur
	depth++

	for *cur != nil {
		n := *cur
		if key == n.Key {
			n.New = false
			return n
		}
		dir := 0
		if key > n.Key {
			dir = 1
		}
		cur = &n.Child[dir]
		path[depth] = cur
		depth++
	}

	node := &Node{Key: key, Height: 1, New: true, Body: body}
	*path[depth-1] = node

	for depth > 1 {
		depth--
		if !balance(path[depth-1]) {
			break
		}
	}
	return node
}

// balance rebalances the subtree rooted at *p in place, returning
// whether the subtree's height changed, so the caller can stop walking
// ancestors once a rebalance leaves height unchanged.
func balance(p **Node) bool {
	n := *p
	h0 := height(n.Child[0])
	h1 := height(n.Child[1])
	if diff := h0 - h1; diff >= -1 && diff <= 1 {
		old := n.Height
		if h0 < h1 {
			n.Height = h1 + 1
		} else {
			n.Height = h0 + 1
		}
		return n.Height != old
	}
	dir := 0
	if h0 < h1 {
		dir = 1
	}
	before := n.Height
	rotate(p, n, dir)
	return (*p).Height != before
}

// rotate performs a single or double AVL rotation at x in the direction
// of its taller child (dir).
func rotate(p **Node, x *Node, dir int) {
	y := x.Child[dir]
	other := 1 - dir
	nz := y.Child[other]

	if height(nz) > height(y.Child[dir]) {
		z := nz
		x.Child[dir] = z.Child[other]
		y.Child[other] = z.Child[dir]
		z.Child[other] = x
		z.Child[dir] = y
		hz := height(nz)
		x.Height = hz
		y.Height = hz
		z.Height = hz + 1
		*p = z
	} else {
		x.Child[dir] = nz
		y.Child[other] = x
		x.Height = height(nz) + 1
		y.Height = height(nz) + 2
		*p = y
	}
}

// InOrder visits every node in ascending key order.
func (t *Tree) InOrder(visit func(*Node)) {
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.Child[0])
		visit(n)
		walk(n.Child[1])
	}
	walk(t.Root)
}
