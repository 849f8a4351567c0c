package Trees

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// PreOrder calls f on every value, parent before children, until f returns
// false. Returns false iff f did. Recursive.
func (u *AVLTree[T, S]) PreOrder(f func(T) bool) bool {
	return preorder(u.root, f)
}

func preorder[T any, S constraints.Unsigned](n *node[T, S], f func(T) bool) bool {
	if n == nil {
		return true
	}
	return f(n.v) && preorder(n.l, f) && preorder(n.r, f)
}

// PostOrder calls f on every value, children before parent, until f returns
// false. Returns false iff f did. Recursive.
func (u *AVLTree[T, S]) PostOrder(f func(T) bool) bool {
	return postorder(u.root, f)
}

func postorder[T any, S constraints.Unsigned](n *node[T, S], f func(T) bool) bool {
	if n == nil {
		return true
	}
	return postorder(n.l, f) && postorder(n.r, f) && f(n.v)
}

// String renders the structure top-down with the cached height and balance
// factor of every node, right subtree printed above the left.
func (u *AVLTree[T, S]) String() string {
	var sb strings.Builder
	u.render(&sb, u.root, "", true)
	return sb.String()
}

func (u *AVLTree[T, S]) render(sb *strings.Builder, n *node[T, S], prefix string, last bool) {
	if n == nil {
		return
	}
	sb.WriteString(prefix)
	if last {
		sb.WriteString("└── ")
	} else {
		sb.WriteString("├── ")
	}
	fmt.Fprintf(sb, "%v[h:%d,b:%+d]\n", n.v, n.h, balance(n))
	if n.l != nil || n.r != nil {
		if last {
			prefix += "    "
		} else {
			prefix += "│   "
		}
		if n.r != nil {
			u.render(sb, n.r, prefix, n.l == nil)
		}
		if n.l != nil {
			u.render(sb, n.l, prefix, true)
		}
	}
}
