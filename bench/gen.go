package bench

import (
	"fmt"
	"math/rand"
)

// OpKind discriminates the mutations an OpIterator emits.
type OpKind byte

const (
	OpInsert OpKind = iota
	OpDelete
)

// Op is a single mutation against the tree under test. Applying a stream in
// emission order never inserts a live key and never deletes a dead one, so
// the boolean results of the tree are fully predicted.
type Op struct {
	Kind    OpKind
	Key     int64
	Version int64
}

// WorkloadGenerator deterministically generates a versioned op stream over an
// int64 key space. Version 1 creates InitialSize keys; every later version
// applies ChangePerVersion mixed ops plus enough extra creates to reach
// FinalSize by the last version.
type WorkloadGenerator struct {
	Seed             int64
	InitialSize      int
	FinalSize        int
	Versions         int64
	ChangePerVersion int
	DeleteFraction   float64
}

// OpIterator walks an op stream one op at a time.
type OpIterator interface {
	// Next advances to the next op.
	Next() error
	// Valid reports whether Op and Version are defined; once false it stays false.
	Valid() bool
	// Op returns the current op.
	Op() Op
	// Version returns the version the current op belongs to.
	Version() int64
}

// Iterator validates the parameters and starts the stream.
func (g WorkloadGenerator) Iterator() (OpIterator, error) {
	if g.FinalSize < g.InitialSize {
		return nil, fmt.Errorf("final size %d must not be less than initial size %d", g.FinalSize, g.InitialSize)
	}
	if g.Versions < 1 {
		return nil, fmt.Errorf("versions must be at least 1, got %d", g.Versions)
	}
	itr := &workloadItr{
		gen:     g,
		rand:    rand.New(rand.NewSource(g.Seed)),
		liveIdx: make(map[int64]int, g.FinalSize),
	}
	if g.Versions > 1 {
		itr.createsPerVersion = float64(g.FinalSize-g.InitialSize) / float64(g.Versions-1)
	}
	itr.genVersion()
	return itr, itr.Next()
}

type workloadItr struct {
	gen               WorkloadGenerator
	rand              *rand.Rand
	version           int64
	queue             []Op
	op                Op
	valid             bool
	live              []int64
	liveIdx           map[int64]int
	createsPerVersion float64
}

// freshKey draws a key not currently live. The key space is 2^63 so the
// retry loop terminates almost immediately.
func (itr *workloadItr) freshKey() int64 {
	for {
		k := itr.rand.Int63()
		if _, in := itr.liveIdx[k]; !in {
			return k
		}
	}
}

func (itr *workloadItr) emitInsert() {
	k := itr.freshKey()
	itr.liveIdx[k] = len(itr.live)
	itr.live = append(itr.live, k)
	itr.queue = append(itr.queue, Op{Kind: OpInsert, Key: k, Version: itr.version})
}

func (itr *workloadItr) emitDelete() {
	i := itr.rand.Intn(len(itr.live))
	k := itr.live[i]
	last := len(itr.live) - 1
	itr.live[i] = itr.live[last]
	itr.liveIdx[itr.live[i]] = i
	itr.live = itr.live[:last]
	delete(itr.liveIdx, k)
	itr.queue = append(itr.queue, Op{Kind: OpDelete, Key: k, Version: itr.version})
}

// genVersion fills the queue with the next version's ops. The live-key
// bookkeeping is updated at generation time, so the stream is sequentially
// consistent regardless of version boundaries. After the churn ops the live
// count is steered back onto the InitialSize→FinalSize ramp, which pins the
// size after the last version to exactly FinalSize.
func (itr *workloadItr) genVersion() {
	itr.version++
	if itr.version > itr.gen.Versions {
		return
	}
	if itr.version == 1 {
		for range itr.gen.InitialSize {
			itr.emitInsert()
		}
		return
	}
	for range itr.gen.ChangePerVersion {
		if itr.rand.Float64() < itr.gen.DeleteFraction && len(itr.live) > 0 {
			itr.emitDelete()
		} else {
			itr.emitInsert()
		}
	}
	target := itr.gen.InitialSize + int(float64(itr.version-1)*itr.createsPerVersion)
	if itr.version == itr.gen.Versions {
		target = itr.gen.FinalSize
	}
	for len(itr.live) < target {
		itr.emitInsert()
	}
	for len(itr.live) > target {
		itr.emitDelete()
	}
}

func (itr *workloadItr) Next() error {
	for len(itr.queue) == 0 {
		if itr.version >= itr.gen.Versions {
			itr.valid = false
			return nil
		}
		itr.genVersion()
	}
	itr.op = itr.queue[0]
	itr.queue = itr.queue[1:]
	itr.valid = true
	return nil
}

func (itr *workloadItr) Valid() bool { return itr.valid }

func (itr *workloadItr) Op() Op { return itr.op }

func (itr *workloadItr) Version() int64 { return itr.op.Version }
