package Trees

import (
	"slices"
	"testing"
)

var (
	bAddN uint32 = 1000000
	bQryN uint32 = bAddN / 2
)

func BenchmarkInsert(b *testing.B) {
	for range b.N {
		tree := New[int, uint32]()
		for range bAddN {
			tree.Insert(rg.Int())
		}
	}
}

func create(b *testing.B) (*AVLTree[int, uint32], []int) {
	b.Helper()
	all := make([]int, bAddN)
	for i := range all {
		all[i] = rg.Int()
	}
	slices.Sort(all)
	all = slices.Compact(all)
	return FromSorted[int, uint32](all, false), all
}

func BenchmarkRemove(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		b.StopTimer()
		tree, all := create(b)
		b.StartTimer()
		for _, v := range all {
			tree.Remove(v)
		}
	}
}

var sideEff *int

func BenchmarkGet(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		b.StopTimer()
		tree, all := create(b)
		rg.Shuffle(int(bQryN), func(i, j int) {
			all[i], all[j] = all[j], all[i]
		})
		b.StartTimer()
		for _, v := range all[:bQryN] {
			sideEff = tree.Get(v)
		}
		for range int(bAddN - bQryN) {
			sideEff = tree.Get(rg.Int())
		}
	}
}

var sideEff2 uint

func BenchmarkRankOf(b *testing.B) {
	tree, all := create(b)
	b.ResetTimer()
	for i := range b.N {
		sideEff2 = tree.RankOf(all[i%len(all)])
	}
}

var sideEff3 int

func BenchmarkKSmallest(b *testing.B) {
	tree, all := create(b)
	b.ResetTimer()
	for i := range b.N {
		sideEff3, _ = tree.KSmallest(uint(i%len(all)) + 1)
	}
}

func BenchmarkCountRange(b *testing.B) {
	tree, all := create(b)
	b.ResetTimer()
	for i := range b.N {
		lo := all[i%len(all)]
		hi := all[(i*7+13)%len(all)]
		if lo > hi {
			lo, hi = hi, lo
		}
		sideEff2 = tree.CountRange(lo, hi)
	}
}
