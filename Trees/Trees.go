package Trees

import "fmt"

// Tree represents an ordered set implemented using nodes.
// Receivers that has A bool as A second return value indicates whether
// the first return value is defined. For example, if calling Minimum on
// an empty tree, the return value will be (x T, false bool). In this
// case the value of x should be undefined. However, depending on
// specific implementations, the value of x might have A meaning, but it's
// advised that x not to be used.
// If an implementation didn't specify anything special, then the implemented
// receivers follows the behaviors defined here. Methods implemented recursively
// should be noted, otherwise functions are implemented iteratively.
type Tree[T any] interface {
	//Insert v to the Tree. Returning true if successful, false if v
	//is already present, in which case the Tree is left untouched.
	Insert(v T) bool
	//Remove v from the Tree. Returning true if successful, false if v
	//isn't present, in which case the Tree is left untouched.
	Remove(v T) bool
	//Minimum element of the tree.
	Minimum() (T, bool)
	//Maximum element of the tree.
	Maximum() (T, bool)
	//Predecessor returns the greatest element less than v.
	Predecessor(v T) (T, bool)
	//Successor returns the smallest element greater than v.
	Successor(T) (T, bool)
	//KSmallest find the k-th smallest element in in-order.
	//1<=k<=Size().
	KSmallest(k uint) (T, bool)
	//KLargest find the k-th largest element, KLargest(k)==KSmallest(Size()-k+1).
	//1<=k<=Size().
	KLargest(k uint) (T, bool)
	//RankOf v in the tree according to in-order.
	//1<=r<=Size() when v is present, 0 otherwise.
	RankOf(v T) uint
	//Range calls f on every element x with lo<=x<=hi in ascending order
	//until f returns false. Returns false iff f did.
	//The tree must not be modified during the enumeration.
	Range(lo, hi T, f func(T) bool) bool
	//CountRange returns the number of elements x with lo<=x<=hi.
	CountRange(lo, hi T) uint
	//Has element v. Note that even though by utilizing the second
	//return value of other methods achieves the same functionality
	//as Has, it is encouraged to use Has for the purposes of checking
	//if some value exists, as Has should be optimized for this purpose
	//in implementations.
	Has(v T) bool
	//Size of the tree.
	Size() uint
	//InOrder returns A closure function f acting like an iterator. f
	//gives nodes in the in-order traversal of the tree.
	//Calling f is like calling "Next()" of iterators: val, valid=f()
	//val is meaningful only if valid is true. When valid==false,
	//then f is exhausted. valid can't turn true after it first became false.
	//The tree must not be modified during the iteration of f.
	InOrder() func() (T, bool)
	//Corrupt returns whether the tree has corrupt structures, when the value
	//or the cached augmentation at some node violates the properties of that
	//specific implementation.
	Corrupt() bool
}

// InvalidSliceError is the panic value of FromSorted in safe mode when the
// given slice isn't sorted in strictly ascending order. Left<Mid1 and
// Mid2<Right is the pair of conditions that failed.
type InvalidSliceError[T any] struct {
	Left, Mid1, Mid2, Right T
}

func (e InvalidSliceError[T]) Error() string {
	return fmt.Sprintf("slice isn't sorted in strictly ascending order: need %v < %v and %v < %v", e.Left, e.Mid1, e.Mid2, e.Right)
}
