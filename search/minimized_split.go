package search

import (
	"context"
	"sort"

	"github.com/lummax/switching-lattice-synth/lattice"
	"github.com/lummax/switching-lattice-synth/timer"
)

// MinimizedSplit binary-searches the scalar area between lowerArea and
// upper.M*upper.N. At each candidate area mid it enumerates the (m,n)
// configurations with m*n <= mid that exceed mid when grown by one row
// or by one column, skipping any dominated by an already-failed
// configuration, then tries them largest-area-first; the first success
// lowers the upper area bound to its area minus one.
//
// Grounded in the original's synth.search.MinimizedSplit. The package's
// tests check it only against a threshold oracle
// (TestMinimizedSplitFindsMinimalArea); no general optimality property is
// asserted for it.
type MinimizedSplit struct{}

type minSplitCandidate struct{ M, N int }

func (MinimizedSplit) Search(ctx context.Context, oracle Oracle, upper lattice.Dims, lowerArea int) (*Result, error) {
	var tm timer.Timer
	steps := 0
	lower := lowerArea
	upperArea := upper.M * upper.N
	var best *Solution
	var failed []minSplitCandidate

	for lower <= upperArea {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mid := (lower + upperArea) / 2
		configs := minSplitConfigurations(mid, failed)
		sort.Slice(configs, func(i, j int) bool {
			return configs[i].M*configs[i].N > configs[j].M*configs[j].N
		})

		found := false
		for _, c := range configs {
			var sol *Solution
			var err error
			tm.Measure(false, func() { sol, err = oracle(ctx, c.M, c.N) })
			steps++
			if err != nil {
				return nil, err
			}
			if sol == nil {
				failed = append(failed, c)
				continue
			}
			best = sol
			upperArea = c.M*c.N - 1
			found = true
			break
		}
		if !found {
			lower = mid + 1
		}
	}
	return &Result{Solution: best, Elapsed: tm.Elapsed(), Steps: steps}, nil
}

// minSplitConfigurations enumerates every (m,n) with m*n <= mid,
// n*(m+1) > mid, (n+1)*m > mid, that isn't dominated by a prior failure
// (m <= fm && n <= fn for some failed (fm,fn)).
func minSplitConfigurations(mid int, failed []minSplitCandidate) []minSplitCandidate {
	var out []minSplitCandidate
	for m := 1; m <= mid; m++ {
		for n := 1; n <= mid; n++ {
			if m*n > mid {
				continue
			}
			if n*(m+1) <= mid {
				continue
			}
			if (n+1)*m <= mid {
				continue
			}
			dominated := false
			for _, f := range failed {
				if !(m > f.M || n > f.N) {
					dominated = true
					break
				}
			}
			if dominated {
				continue
			}
			out = append(out, minSplitCandidate{M: m, N: n})
		}
	}
	return out
}
