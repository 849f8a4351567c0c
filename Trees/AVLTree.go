package Trees

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// AVLTree is a binary search tree with no repeated values. It maintains
// balance through rotations by checking the heights of subtrees, and
// additionally caches the size of every subtree so that positional
// queries (RankOf, KSmallest, KLargest, CountRange) need no extra index.
// T is the type of values it will hold, S is the type of the variables
// used for storing the sizes of different subtrees; S should be a wide
// upperbound for the size of the tree.
// Ordering is defined entirely by the supplied three-way comparator, which
// must be consistent for the lifetime of the tree. The optional release
// hook runs exactly once per value destroyed by Remove or Clear; it never
// runs for values the tree rejected or merely relocated.
// The height difference of the two subtrees of every node is at most 1,
// so the height D of the tree is less than 1.45*log2(n+2), and every
// operation is O(D) with at most two rotations per affected level.
// Exclusive access is assumed for the duration of every call; reads may
// run concurrently with each other but never with a mutation.
type AVLTree[T any, S constraints.Unsigned] struct {
	root    *node[T, S]
	cmp     func(a, b T) int
	release func(T)
}

// NewFunc returns an empty AVLTree ordered by the three-way comparator cmp.
// release may be nil, in which case value lifetime is entirely the caller's
// concern.
func NewFunc[T any, S constraints.Unsigned](cmp func(a, b T) int, release func(T)) *AVLTree[T, S] {
	return &AVLTree[T, S]{cmp: cmp, release: release}
}

// New returns an empty AVLTree over a naturally ordered type.
func New[T cmp.Ordered, S constraints.Unsigned]() *AVLTree[T, S] {
	return NewFunc[T, S](cmp.Compare[T], nil)
}

// From builds an AVLTree by inserting every element of vs in order;
// duplicates in vs are silently dropped.
// Time: O(n*log n)
func From[T cmp.Ordered, S constraints.Unsigned](vs []T) *AVLTree[T, S] {
	u := New[T, S]()
	for _, v := range vs {
		u.Insert(v)
	}
	return u
}

// FromSorted builds an AVLTree from the given sorted slice recursively by
// repeated halving; the result is height-balanced because sibling subtree
// sizes differ by at most 1. This is faster than repeatedly calling Insert.
// The given slice must be sorted in ascending order and mustn't contain
// duplicate elements. If safe==true, this function will check the conditions
// and panic with InvalidSliceError if they are broken. Otherwise, it is up
// to the user to ensure the conditions are met(otherwise the tree will be
// corrupt).
// Time: O(n)
func FromSorted[T cmp.Ordered, S constraints.Unsigned](sli []T, safe bool) *AVLTree[T, S] {
	var build func([]T) *node[T, S]
	if safe {
		build = func(s []T) *node[T, S] {
			if len(s) == 0 {
				return nil
			}
			mid := len(s) >> 1
			l, r := build(s[:mid]), build(s[mid+1:])
			if (l != nil && l.v >= s[mid]) || (r != nil && s[mid] >= r.v) {
				var lv, rv T
				if l != nil {
					lv = l.v
				}
				if r != nil {
					rv = r.v
				}
				panic(InvalidSliceError[T]{lv, s[mid], s[mid], rv})
			}
			n := &node[T, S]{v: s[mid], l: l, r: r}
			n.refresh()
			return n
		}
	} else {
		build = func(s []T) *node[T, S] {
			if len(s) == 0 {
				return nil
			}
			mid := len(s) >> 1
			n := &node[T, S]{v: s[mid], l: build(s[:mid]), r: build(s[mid+1:])}
			n.refresh()
			return n
		}
	}
	return &AVLTree[T, S]{root: build(sli), cmp: cmp.Compare[T]}
}

// insert the value v to the subtree rooting at *np recursively. np is
// passed by reference. A successful insertion returns true. A failed
// insertion happens when the value is already in u, in which case it
// returns false and nothing was touched on the way down.
func (u *AVLTree[T, S]) insert(np **node[T, S], v T) bool {
	n := *np
	if n == nil {
		*np = &node[T, S]{v: v, sz: 1, h: 1}
		return true
	}
	switch c := u.cmp(v, n.v); {
	case c < 0:
		if !u.insert(&n.l, v) {
			return false
		}
	case c > 0:
		if !u.insert(&n.r, v) {
			return false
		}
	default:
		return false
	}
	rebalance(np)
	return true
}

// Insert [Tree.Insert]. Recursive.
// On false the tree is untouched and the root pointer unchanged; the caller keeps
// ownership of the rejected value.
// Time: O(D)
func (u *AVLTree[T, S]) Insert(v T) bool {
	return u.insert(&u.root, v)
}

// remove the value v from the subtree rooting at *np recursively. dispose
// tells whether the release hook should fire for the value actually
// destroyed; the successor-relocation case below recurses with false since
// the successor's value was moved, not destroyed.
func (u *AVLTree[T, S]) remove(np **node[T, S], v T, dispose bool) bool {
	n := *np
	if n == nil {
		return false
	}
	switch c := u.cmp(v, n.v); {
	case c < 0:
		if !u.remove(&n.l, v, dispose) {
			return false
		}
	case c > 0:
		if !u.remove(&n.r, v, dispose) {
			return false
		}
	default:
		if n.l == nil || n.r == nil {
			if dispose && u.release != nil {
				u.release(n.v)
			}
			//splice out n; the remaining child keeps its own invariants and
			//its height bookkeeping, so only the ancestors need rebalancing.
			if *np = n.l; n.l == nil {
				*np = n.r
			}
			return true
		}
		//two children: relocate the in-order successor's value here, then
		//remove the successor from the right subtree without disposing it.
		s := n.r
		for s.l != nil {
			s = s.l
		}
		if dispose && u.release != nil {
			u.release(n.v)
		}
		n.v = s.v
		u.remove(&n.r, s.v, false)
	}
	rebalance(np)
	return true
}

// Remove [Tree.Remove]. Recursive.
// On false the tree is untouched, the root pointer unchanged, and no release occurs.
// Time: O(D)
func (u *AVLTree[T, S]) Remove(v T) bool {
	return u.remove(&u.root, v, true)
}

// Get returns a pointer to the stored value comparing equal to v, nil when
// absent. The pointee must not be mutated in a way that changes its order;
// ordering mutations must go through Insert/Remove.
// Time: O(D); Space: O(1)
func (u *AVLTree[T, S]) Get(v T) *T {
	for cur := u.root; cur != nil; {
		switch c := u.cmp(v, cur.v); {
		case c < 0:
			cur = cur.l
		case c > 0:
			cur = cur.r
		default:
			return &cur.v
		}
	}
	return nil
}

// Has [Tree.Has]
// Time: O(D); Space: O(1)
func (u *AVLTree[T, S]) Has(v T) bool {
	for cur := u.root; cur != nil; {
		switch c := u.cmp(v, cur.v); {
		case c < 0:
			cur = cur.l
		case c > 0:
			cur = cur.r
		default:
			return true
		}
	}
	return false
}

// Minimum [Tree.Minimum]
// Time: O(D); Space: O(1)
func (u *AVLTree[T, S]) Minimum() (T, bool) {
	cur := u.root
	if cur == nil {
		return *new(T), false
	}
	for cur.l != nil {
		cur = cur.l
	}
	return cur.v, true
}

// Maximum [Tree.Maximum]
// Time: O(D); Space: O(1)
func (u *AVLTree[T, S]) Maximum() (T, bool) {
	cur := u.root
	if cur == nil {
		return *new(T), false
	}
	for cur.r != nil {
		cur = cur.r
	}
	return cur.v, true
}

// Predecessor [Tree.Predecessor]
// Time: O(D); Space: O(1)
func (u *AVLTree[T, S]) Predecessor(v T) (T, bool) {
	var p *node[T, S]
	for cur := u.root; cur != nil; {
		if u.cmp(v, cur.v) <= 0 {
			cur = cur.l
		} else {
			p = cur
			cur = cur.r
		}
	}
	if p == nil {
		return *new(T), false
	}
	return p.v, true
}

// Successor [Tree.Successor]
// Time: O(D); Space: O(1)
func (u *AVLTree[T, S]) Successor(v T) (T, bool) {
	var p *node[T, S]
	for cur := u.root; cur != nil; {
		if u.cmp(v, cur.v) < 0 {
			p = cur
			cur = cur.l
		} else {
			cur = cur.r
		}
	}
	if p == nil {
		return *new(T), false
	}
	return p.v, true
}

// Size [Tree.Size]
// Time: O(1); Space: O(1)
func (u *AVLTree[T, S]) Size() uint {
	return uint(count(u.root))
}

// Height of the whole tree; 0 when empty.
// Time: O(1); Space: O(1)
func (u *AVLTree[T, S]) Height() uint {
	return uint(height(u.root))
}

// Clear removes every element. When a release hook is present it runs once
// per stored value, children before parent.
// Time: O(n) with a hook, O(1) without.
func (u *AVLTree[T, S]) Clear() {
	if u.release != nil {
		var walk func(*node[T, S])
		walk = func(n *node[T, S]) {
			if n == nil {
				return
			}
			walk(n.l)
			walk(n.r)
			u.release(n.v)
		}
		walk(u.root)
	}
	u.root = nil
}

// InOrder [Tree.InOrder]
// Time: f(): amortized O(1) at each call to the returned function. Space: O(D)
func (u *AVLTree[T, S]) InOrder() func() (T, bool) {
	st := make([]*node[T, S], 0, height(u.root))
	for cur := u.root; cur != nil; cur = cur.l {
		st = append(st, cur)
	}
	return func() (r T, has bool) {
		if len(st) == 0 {
			return
		}
		n := st[len(st)-1]
		st = st[:len(st)-1]
		for cur := n.r; cur != nil; cur = cur.l {
			st = append(st, cur)
		}
		return n.v, true
	}
}
