package casetree

import (
	"math/rand"
	"testing"

	"github.com/pan0cc/qbegen/pkg/ssa"
)

func checkBalanced(t *testing.T, n *Node) int {
	t.Helper()
	if n == nil {
		return 0
	}
	hl := checkBalanced(t, n.Child[0])
	hr := checkBalanced(t, n.Child[1])
	diff := hl - hr
	if diff < -1 || diff > 1 {
		t.Fatalf("node %d unbalanced: left height %d, right height %d", n.Key, hl, hr)
	}
	want := hl + 1
	if hr > hl {
		want = hr + 1
	}
	if n.Height != want {
		t.Fatalf("node %d height %d, want %d", n.Key, n.Height, want)
	}
	return n.Height
}

func TestAVLBalanceAfterRandomInserts(t *testing.T) {
	tree := &Tree{}
	r := rand.New(rand.NewSource(1))
	keys := r.Perm(500)
	for _, k := range keys {
		tree.Insert(uint64(k), &ssa.Block{})
	}
	checkBalanced(t, tree.Root)
}

func TestAVLBalanceAscendingInserts(t *testing.T) {
	tree := &Tree{}
	for i := 0; i < 200; i++ {
		tree.Insert(uint64(i), &ssa.Block{})
	}
	checkBalanced(t, tree.Root)
}

func TestAVLDuplicateKeyNotNew(t *testing.T) {
	tree := &Tree{}
	b1 := &ssa.Block{}
	b2 := &ssa.Block{}
	n1 := tree.Insert(5, b1)
	if !n1.New {
		t.Fatal("first insert of a key should be New")
	}
	n2 := tree.Insert(5, b2)
	if n2.New {
		t.Fatal("second insert of the same key should not be New")
	}
	if n2.Body != b1 {
		t.Fatal("duplicate insert must not overwrite the existing body")
	}
}

func TestAVLInOrder(t *testing.T) {
	tree := &Tree{}
	for _, k := range []uint64{5, 1, 7, 3, 9, 2} {
		tree.Insert(k, &ssa.Block{})
	}
	var got []uint64
	tree.InOrder(func(n *Node) { got = append(got, n.Key) })
	want := []uint64{1, 2, 3, 5, 7, 9}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
