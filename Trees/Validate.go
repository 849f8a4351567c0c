package Trees

import "golang.org/x/exp/constraints"

// Oracles for tests and debugging; no mutation path calls these.

// validBST asserts that every value in the subtree falls strictly inside
// the open interval (lo,hi), narrowing the bounds into the subtrees. A nil
// bound is unbounded on that side.
func (u *AVLTree[T, S]) validBST(n *node[T, S], lo, hi *T) bool {
	if n == nil {
		return true
	}
	if lo != nil && u.cmp(n.v, *lo) <= 0 {
		return false
	}
	if hi != nil && u.cmp(n.v, *hi) >= 0 {
		return false
	}
	return u.validBST(n.l, lo, &n.v) && u.validBST(n.r, &n.v, hi)
}

// validAVL asserts at every node that the balance factor is within ±1 and
// that the cached height and size agree with the children's.
func validAVL[T any, S constraints.Unsigned](n *node[T, S]) bool {
	if n == nil {
		return true
	}
	if b := balance(n); b < -1 || b > 1 {
		return false
	}
	if int(n.h) != 1+max(height(n.l), height(n.r)) {
		return false
	}
	if n.sz != count(n.l)+count(n.r)+1 {
		return false
	}
	return validAVL(n.l) && validAVL(n.r)
}

// Corrupt [Tree.Corrupt]. Recursive.
// Time: O(n)
func (u *AVLTree[T, S]) Corrupt() bool {
	return !u.validBST(u.root, nil, nil) || !validAVL(u.root)
}
