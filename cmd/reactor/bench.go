package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/vango-dev/reactor/reactor"
)

var (
	benchWidths = []int{1, 10, 100, 1000}
	benchDepths = []int{1, 10, 100, 1000}
	benchIters  = 100
)

func benchCmd() *cobra.Command {
	var iters int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure propagation latency across a matrix of fan-out and chain depth",
		Long: `bench builds a width x depth dependency graph (one source fanning
out to width chains, each depth derived nodes deep and ending in an
effect), writes to that source iters times, and reports how long each
write took to fully propagate and drain.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if iters > 0 {
				benchIters = iters
			}
			runBench()
			return nil
		},
	}

	cmd.Flags().IntVarP(&iters, "iters", "n", benchIters, "number of writes to time per matrix cell")
	return cmd
}

func runBench() {
	printBanner()
	fmt.Println()
	info("propagation benchmark: %s iterations per cell", humanize.Comma(int64(benchIters)))
	fmt.Println()

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"width x depth", "avg", "min", "p75", "p99", "max"})

	for _, w := range benchWidths {
		for _, d := range benchDepths {
			tach := tachymeter.New(&tachymeter.Config{Size: benchIters})

			src := reactor.NewSource(0)
			for i := 0; i < w; i++ {
				var last reactor.Readable[int] = src
				for j := 0; j < d; j++ {
					prev := last
					last = reactor.NewDerived(func() int { return prev.Get() + 1 })
				}
				dispose := reactor.Subscribe[int](last, func(int) {})
				defer dispose()
			}

			for i := 0; i < benchIters; i++ {
				start := time.Now()
				src.Set(src.Peek() + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.Append([]string{
				fmt.Sprintf("%d x %d", w, d),
				calc.Time.Avg.String(),
				calc.Time.Min.String(),
				calc.Time.P75.String(),
				calc.Time.P99.String(),
				calc.Time.Max.String(),
			})
		}
	}

	tbl.Render()
	fmt.Println()

	snap := reactor.Snapshot()
	info("%s total recomputes, %s total effect runs across the whole matrix",
		humanize.Comma(int64(snap.Recomputes)), humanize.Comma(int64(snap.EffectRuns)))
	success("bench complete")
}
