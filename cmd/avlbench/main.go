package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Pp3ng/AVL/Trees"
	"github.com/Pp3ng/AVL/bench"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}).
	With().Timestamp().Str("bench", "avl").Logger()

func main() {
	root := &cobra.Command{
		Use:   "avlbench",
		Short: "Workload benchmarks for the AVL tree.",
	}
	root.AddCommand(runCommand(context.Background()))

	if err := root.Execute(); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		os.Exit(1)
	}
}

func runCommand(c context.Context) *cobra.Command {
	var (
		seed        int64
		metricsAddr string
	)
	ctx := &bench.TreeContext{
		Context: c,
		Log:     log,
	}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "builds a tree from a generated workload and reports order-statistics samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx.Generator.Seed = seed

			labels := map[string]string{"balance": "avl"}
			ctx.MetricOpCount = promauto.NewCounter(prometheus.CounterOpts{
				Name:        "avl_op_count",
				Help:        "number of ops applied to the tree",
				ConstLabels: labels,
			})
			ctx.MetricTreeSize = promauto.NewGauge(prometheus.GaugeOpts{
				Name:        "avl_tree_size",
				ConstLabels: labels,
			})
			ctx.MetricTreeHeight = promauto.NewGauge(prometheus.GaugeOpts{
				Name:        "avl_tree_height",
				ConstLabels: labels,
			})

			if metricsAddr != "" {
				go func() {
					http.Handle("/metrics", promhttp.Handler())
					if err := http.ListenAndServe(metricsAddr, nil); err != nil {
						log.Error().Err(err).Msg("metrics server stopped")
					}
				}()
			}

			tree := Trees.New[int64, uint32]()
			started := time.Now()
			if err := ctx.Build(tree); err != nil {
				return err
			}
			log.Info().Msgf("built tree in %s", time.Since(started))

			n := tree.Size()
			if n == 0 {
				return nil
			}
			lo, _ := tree.Minimum()
			hi, _ := tree.Maximum()
			med, _ := tree.KSmallest((n + 1) / 2)
			log.Info().
				Uint("size", n).
				Uint("height", tree.Height()).
				Int64("median", med).
				Uint("median_rank", tree.RankOf(med)).
				Uint("full_range_count", tree.CountRange(lo, hi)).
				Msg("order-statistics sample")
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the workload generator")
	cmd.Flags().IntVar(&ctx.Generator.InitialSize, "initial-size", 100_000, "keys created in the first version")
	cmd.Flags().IntVar(&ctx.Generator.FinalSize, "final-size", 1_000_000, "keys live after the last version")
	cmd.Flags().Int64Var(&ctx.Generator.Versions, "versions", 10, "number of versions to generate")
	cmd.Flags().IntVar(&ctx.Generator.ChangePerVersion, "changes-per-version", 50_000, "churn ops per version")
	cmd.Flags().Float64Var(&ctx.Generator.DeleteFraction, "delete-fraction", 0.25, "fraction of churn ops that are deletes")
	cmd.Flags().Int64Var(&ctx.VersionLimit, "version-limit", 0, "stop after this version; 0 applies all versions")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve prometheus metrics at this address")
	return cmd
}
