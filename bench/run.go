package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/Pp3ng/AVL/Trees"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// TreeContext carries everything one run needs: the workload, a logger and
// the metrics to publish. The prometheus fields may be nil, metrics are then
// skipped.
type TreeContext struct {
	context.Context

	Log              zerolog.Logger
	Generator        WorkloadGenerator
	VersionLimit     int64
	MetricOpCount    prometheus.Counter
	MetricTreeSize   prometheus.Gauge
	MetricTreeHeight prometheus.Gauge
}

// Build applies the generated op stream to tree in emission order. Every op's
// boolean result is predicted by the generator, so any false is reported as
// an error rather than ignored. Progress is logged every 100k ops.
func (c *TreeContext) Build(tree *Trees.AVLTree[int64, uint32]) error {
	itr, err := c.Generator.Iterator()
	if err != nil {
		return err
	}
	var cnt int64
	since := time.Now()
	for ; itr.Valid(); err = itr.Next() {
		if err != nil {
			return err
		}
		if c.VersionLimit > 0 && itr.Version() > c.VersionLimit {
			break
		}
		op := itr.Op()
		switch op.Kind {
		case OpInsert:
			if !tree.Insert(op.Key) {
				return fmt.Errorf("duplicate insert of key %d; version %d", op.Key, op.Version)
			}
		case OpDelete:
			if !tree.Remove(op.Key) {
				return fmt.Errorf("failed to remove key %d; version %d", op.Key, op.Version)
			}
		}
		if c.MetricOpCount != nil {
			c.MetricOpCount.Inc()
		}
		cnt++
		if cnt%100_000 == 0 {
			c.Log.Info().Msgf("processed %s ops in %s; %s ops/s; version=%d; size=%s",
				humanize.Comma(cnt),
				time.Since(since),
				humanize.Comma(int64(100_000/time.Since(since).Seconds())),
				itr.Version(),
				humanize.Comma(int64(tree.Size())))
			since = time.Now()
			c.observe(tree)
		}
	}
	c.observe(tree)
	return nil
}

func (c *TreeContext) observe(tree *Trees.AVLTree[int64, uint32]) {
	if c.MetricTreeSize != nil {
		c.MetricTreeSize.Set(float64(tree.Size()))
	}
	if c.MetricTreeHeight != nil {
		c.MetricTreeHeight.Set(float64(tree.Height()))
	}
}
