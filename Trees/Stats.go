package Trees

// This file holds the positional queries. They all derive positions purely
// from the cached subtree sizes, so every descent is a single root-to-node
// path.

// RankOf [Tree.RankOf]
// Every time the descent goes right or stops on a match, everything in the
// current left subtree plus the current node precedes v in in-order.
// Time: O(D); Space: O(1)
func (u *AVLTree[T, S]) RankOf(v T) uint {
	var ra S
	for cur := u.root; cur != nil; {
		switch c := u.cmp(v, cur.v); {
		case c < 0:
			cur = cur.l
		case c > 0:
			ra += count(cur.l) + 1
			cur = cur.r
		default:
			return uint(ra + count(cur.l) + 1)
		}
	}
	return 0
}

// KSmallest [Tree.KSmallest]
// Returns (x,true) if 1<=k<=Size(), otherwise (_,false).
// Time: O(D); Space: O(1)
func (u *AVLTree[T, S]) KSmallest(k uint) (T, bool) {
	if k < 1 || k > uint(count(u.root)) {
		return *new(T), false
	}
	cur, t := u.root, S(k)
	for {
		if ls := count(cur.l); t <= ls {
			cur = cur.l
		} else if t == ls+1 {
			return cur.v, true
		} else {
			t -= ls + 1
			cur = cur.r
		}
	}
}

// KLargest [Tree.KLargest]
// Returns (x,true) if 1<=k<=Size(), otherwise (_,false).
// Time: O(D); Space: O(1)
func (u *AVLTree[T, S]) KLargest(k uint) (T, bool) {
	n := uint(count(u.root))
	if k < 1 || k > n {
		return *new(T), false
	}
	return u.KSmallest(n - k + 1)
}

// Range [Tree.Range]. Recursive.
// Bounds are inclusive. The left subtree is entered only when the current
// value is above lo and the right one only when it is below hi, so the
// descent touches O(D) nodes off the boundary paths.
// Time: O(D+r) where r is the number of elements enumerated.
func (u *AVLTree[T, S]) Range(lo, hi T, f func(T) bool) bool {
	return u.ascend(u.root, lo, hi, f)
}

func (u *AVLTree[T, S]) ascend(n *node[T, S], lo, hi T, f func(T) bool) bool {
	if n == nil {
		return true
	}
	cl, ch := u.cmp(n.v, lo), u.cmp(n.v, hi)
	if cl > 0 && !u.ascend(n.l, lo, hi, f) {
		return false
	}
	if cl >= 0 && ch <= 0 && !f(n.v) {
		return false
	}
	if ch < 0 {
		return u.ascend(n.r, lo, hi, f)
	}
	return true
}

// countBelow returns the number of stored values less than v, or less than
// or equal when orEqual. Same descent as RankOf but defined for absent v too.
func (u *AVLTree[T, S]) countBelow(v T, orEqual bool) S {
	var c S
	for cur := u.root; cur != nil; {
		switch d := u.cmp(v, cur.v); {
		case d < 0:
			cur = cur.l
		case d > 0:
			c += count(cur.l) + 1
			cur = cur.r
		default:
			c += count(cur.l)
			if orEqual {
				c++
			}
			return c
		}
	}
	return c
}

// CountRange [Tree.CountRange]
// Computed as two boundary descents instead of an enumeration, it always
// agrees with the cardinality Range(lo,hi,...) produces.
// Time: O(D); Space: O(1)
func (u *AVLTree[T, S]) CountRange(lo, hi T) uint {
	if u.cmp(lo, hi) > 0 {
		return 0
	}
	return uint(u.countBelow(hi, true) - u.countBelow(lo, false))
}
