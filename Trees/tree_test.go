package Trees

import (
	"math/rand"
	"slices"
	"testing"
)

var rg = *rand.New(rand.NewSource(0))

var _ Tree[int] = (*AVLTree[int, uint32])(nil)

const (
	tAddN        = 40000
	tAddValRange = 80000
)

// average leaf depth, for logging only.
func (u *AVLTree[T, S]) depth() float32 {
	var leaves, total uint
	var walk func(*node[T, S], uint)
	walk = func(n *node[T, S], d uint) {
		if n == nil {
			return
		}
		if n.l == nil && n.r == nil {
			leaves++
			total += d
		}
		walk(n.l, d+1)
		walk(n.r, d+1)
	}
	walk(u.root, 1)
	if leaves == 0 {
		return 0
	}
	return float32(total) / float32(leaves)
}

func TestAVLTree_Insert(t *testing.T) {
	tree := New[int, uint32]()
	content := make(map[int]struct{})
	for range tAddN {
		b := rg.Intn(tAddValRange)
		_, in := content[b]
		if tree.Insert(b) == in {
			t.Errorf("wrong insert result for key %v", b)
		}
		content[b] = struct{}{}
	}
	if int(tree.Size()) != len(content) {
		t.Errorf("tree size is %d, want %d", tree.Size(), len(content))
	}
	if tree.Corrupt() {
		t.Error("tree is corrupt after inserts")
	}
	t.Logf("depth: %f, height: %d, size: %d.\n", tree.depth(), tree.Height(), tree.Size())
	for k := range content {
		if tree.Get(k) == nil {
			t.Errorf("tree does not have key %v", k)
		}
	}
}

func TestAVLTree_DuplicateInsert(t *testing.T) {
	tree := New[int, uint32]()
	for i := range 1024 {
		tree.Insert(i * 2)
	}
	before := tree.root
	for i := range 1024 {
		if tree.Insert(i * 2) {
			t.Errorf("inserted key %v a second time", i*2)
		}
	}
	if tree.root != before {
		t.Error("duplicate insert moved the root")
	}
	if tree.Size() != 1024 {
		t.Errorf("tree size is %d, want %d", tree.Size(), 1024)
	}
}

func TestAVLTree_Remove(t *testing.T) {
	tree := New[int, uint32]()
	content := make(map[int]struct{})
	if tree.Remove(0) {
		t.Errorf("empty tree has non existent key %v", 0)
	}
	a := make([]int, tAddN)
	for i := range a {
		a[i] = rg.Intn(tAddValRange)
		tree.Insert(a[i])
		content[a[i]] = struct{}{}
	}
	for i := range tAddN / 2 {
		_, in := content[a[i]]
		if tree.Remove(a[i]) != in {
			t.Errorf("failed to delete key %v", a[i])
		}
		if tree.Remove(a[i]) {
			t.Errorf("can delete a second time key %v", a[i])
		}
		delete(content, a[i])
	}
	if int(tree.Size()) != len(content) {
		t.Errorf("tree size is %d, want %d", tree.Size(), len(content))
	}
	if tree.Corrupt() {
		t.Error("tree is corrupt after removals")
	}
	t.Logf("depth: %f, height: %d, size: %d.\n", tree.depth(), tree.Height(), tree.Size())
	for k := range content {
		if !tree.Has(k) {
			t.Errorf("tree does not have key %v", k)
		}
	}
	before := tree.root
	if tree.Remove(tAddValRange + 1) {
		t.Error("deleted a key that was never inserted")
	}
	if tree.root != before {
		t.Error("failed delete moved the root")
	}
}

func TestAVLTree_Invariants(t *testing.T) {
	tree := New[int, uint32]()
	content := make(map[int]struct{})
	for range 2000 {
		b := rg.Intn(400)
		if rg.Intn(3) == 0 {
			_, in := content[b]
			if tree.Remove(b) != in {
				t.Errorf("wrong remove result for key %v", b)
			}
			delete(content, b)
		} else {
			_, in := content[b]
			if tree.Insert(b) == in {
				t.Errorf("wrong insert result for key %v", b)
			}
			content[b] = struct{}{}
		}
		if tree.Corrupt() {
			t.Fatalf("tree is corrupt at size %d", tree.Size())
		}
		if int(tree.Size()) != len(content) {
			t.Fatalf("tree size is %d, want %d", tree.Size(), len(content))
		}
	}
}

func TestAVLTree_Rotations(t *testing.T) {
	tree := From[int, uint32]([]int{50, 30, 70, 20, 40, 60, 80})
	if tree.Size() != 7 || tree.Corrupt() {
		t.Errorf("tree size is %d, want 7", tree.Size())
	}
	if tree.root.v != 50 {
		t.Errorf("root is %v, want 50", tree.root.v)
	}
	//ascending run forces one left rotation, descending one right rotation.
	tree = From[int, uint32]([]int{10, 20, 30})
	if tree.root.v != 20 {
		t.Errorf("root is %v after left rotation, want 20", tree.root.v)
	}
	tree = From[int, uint32]([]int{30, 20, 10})
	if tree.root.v != 20 {
		t.Errorf("root is %v after right rotation, want 20", tree.root.v)
	}
}

func TestAVLTree_Release(t *testing.T) {
	released := make(map[int]int)
	tree := NewFunc[int, uint32](func(a, b int) int { return a - b }, func(v int) { released[v]++ })
	for i := range 512 {
		tree.Insert(i)
	}
	for i := 0; i < 512; i += 2 {
		tree.Remove(i)
	}
	tree.Remove(1024) //absent, must not release
	for i := 0; i < 512; i += 2 {
		if released[i] != 1 {
			t.Errorf("key %v released %d times, want 1", i, released[i])
		}
	}
	for i := 1; i < 512; i += 2 {
		if released[i] != 0 {
			t.Errorf("live key %v released %d times", i, released[i])
		}
	}
	tree.Clear()
	for i := range 512 {
		if released[i] != 1 {
			t.Errorf("key %v released %d times after Clear, want 1", i, released[i])
		}
	}
	if tree.Size() != 0 {
		t.Errorf("tree size is %d after Clear, want 0", tree.Size())
	}
}

func TestAVLTree_InOrder(t *testing.T) {
	tree := New[int, uint32]()
	content := make(map[int]struct{})
	for range tAddN {
		b := rg.Intn(tAddValRange)
		tree.Insert(b)
		content[b] = struct{}{}
	}
	var s []int
	for next := tree.InOrder(); ; {
		v, ok := next()
		if !ok {
			break
		}
		s = append(s, v)
	}
	if len(s) != len(content) {
		t.Errorf("sorted size is %d, want %d", len(s), len(content))
	}
	if !slices.IsSorted(s) {
		t.Errorf("sorted is not sorted")
	}
	for _, v := range s {
		if _, in := content[v]; !in {
			t.Errorf("sorted has non existent key %v", v)
		}
	}
}

func TestAVLTree_MinimumMaximum(t *testing.T) {
	tree := New[int, uint32]()
	if _, ok := tree.Minimum(); ok {
		t.Error("empty tree has a minimum")
	}
	if _, ok := tree.Maximum(); ok {
		t.Error("empty tree has a maximum")
	}
	a := rg.Perm(4096)
	for _, v := range a {
		tree.Insert(v)
	}
	if v, ok := tree.Minimum(); !ok || v != 0 {
		t.Errorf("minimum is %v, want 0", v)
	}
	if v, ok := tree.Maximum(); !ok || v != 4095 {
		t.Errorf("maximum is %v, want 4095", v)
	}
}

func TestAVLTree_PredecessorSuccessor(t *testing.T) {
	tree := New[int, uint32]()
	for i := range 1024 {
		tree.Insert(i * 2)
	}
	for i := range 1024 {
		if v, ok := tree.Successor(i * 2); i < 1023 && (!ok || v != i*2+2) {
			t.Errorf("successor of %v is %v, want %v", i*2, v, i*2+2)
		}
		if v, ok := tree.Predecessor(i*2 + 1); !ok || v != i*2 {
			t.Errorf("predecessor of %v is %v, want %v", i*2+1, v, i*2)
		}
	}
	if _, ok := tree.Predecessor(0); ok {
		t.Error("minimum has a predecessor")
	}
	if _, ok := tree.Successor(2046); ok {
		t.Error("maximum has a successor")
	}
}

func TestAVLTree_FromSorted(t *testing.T) {
	a := make([]int, 10000)
	for i := range a {
		a[i] = i * 3
	}
	tree := FromSorted[int, uint32](a, true)
	if int(tree.Size()) != len(a) {
		t.Errorf("tree size is %d, want %d", tree.Size(), len(a))
	}
	if tree.Corrupt() {
		t.Error("tree is corrupt after FromSorted")
	}
	for _, v := range a {
		if !tree.Has(v) {
			t.Errorf("tree does not have key %v", v)
		}
	}
	defer func() {
		if recover() == nil {
			t.Error("FromSorted accepted an unsorted slice in safe mode")
		}
	}()
	FromSorted[int, uint32]([]int{1, 3, 2, 4}, true)
}

func TestAVLTree_String(t *testing.T) {
	tree := From[int, uint32]([]int{2, 1, 3})
	want := "└── 2[h:2,b:+0]\n    ├── 3[h:1,b:+0]\n    └── 1[h:1,b:+0]\n"
	if s := tree.String(); s != want {
		t.Errorf("rendered %q, want %q", s, want)
	}
}

func TestAVLTree_TraversalOrders(t *testing.T) {
	tree := From[int, uint32]([]int{2, 1, 3})
	var pre, post []int
	tree.PreOrder(func(v int) bool { pre = append(pre, v); return true })
	tree.PostOrder(func(v int) bool { post = append(post, v); return true })
	if !slices.Equal(pre, []int{2, 1, 3}) {
		t.Errorf("preorder is %v", pre)
	}
	if !slices.Equal(post, []int{1, 3, 2}) {
		t.Errorf("postorder is %v", post)
	}
}
