package Trees

import "golang.org/x/exp/constraints"

// A node in the AVLTree.
// The zero value is meaningless; nodes only come from insertions.
type node[T any, S constraints.Unsigned] struct {
	v    T
	l, r *node[T, S]
	sz   S
	h    int8 //height of the subtree rooting here, 1 for a leaf. h<1.45*log2(n)+2 so int8 is always wide enough.
}

// height of a subtree; 0 for an absent subtree. Reads only the cached field.
func height[T any, S constraints.Unsigned](n *node[T, S]) int {
	if n == nil {
		return 0
	}
	return int(n.h)
}

// count of nodes in a subtree; 0 for an absent subtree. Reads only the cached field.
func count[T any, S constraints.Unsigned](n *node[T, S]) S {
	if n == nil {
		return 0
	}
	return n.sz
}

// balance factor of an existing node.
func balance[T any, S constraints.Unsigned](n *node[T, S]) int {
	return height(n.l) - height(n.r)
}

// refresh the cached height and size from the direct children's caches.
func (n *node[T, S]) refresh() {
	n.h = int8(1 + max(height(n.l), height(n.r)))
	n.sz = count(n.l) + count(n.r) + 1
}

// rotateLeft performs a left rotation on nodePtr *np. np is passed by reference
// in order to modify its content. (*np).r must exist; reaching a nil here
// means the balance invariant was already broken before the call.
// Refresh order matters: the promoted node's caches are recomputed from the
// demoted node's, so the demoted node goes first.
// Time: O(1); Space: O(1)
func rotateLeft[T any, S constraints.Unsigned](np **node[T, S]) {
	n := *np
	rc := n.r
	n.r = rc.l
	rc.l = n
	n.refresh()
	rc.refresh()
	*np = rc
}

// rotateRight is the mirror image of rotateLeft. (*np).l must exist.
// Time: O(1); Space: O(1)
func rotateRight[T any, S constraints.Unsigned](np **node[T, S]) {
	n := *np
	lc := n.l
	n.l = lc.r
	lc.r = n
	n.refresh()
	lc.refresh()
	*np = lc
}

// rebalance restores the height invariant at *np after a single insertion or
// removal below it, assuming both subtrees already satisfy it. This is the
// single decision point for all four rotation cases: a left-heavy node whose
// left child leans right needs the LR double rotation, mirrored for RL;
// otherwise one rotation suffices.
// Time: O(1)
func rebalance[T any, S constraints.Unsigned](np **node[T, S]) {
	n := *np
	n.refresh()
	if b := balance(n); b > 1 {
		if balance(n.l) < 0 {
			rotateLeft(&n.l)
		}
		rotateRight(np)
	} else if b < -1 {
		if balance(n.r) > 0 {
			rotateRight(&n.r)
		}
		rotateLeft(np)
	}
}
