package search

import (
	"context"

	"github.com/lummax/switching-lattice-synth/lattice"
	"github.com/lummax/switching-lattice-synth/timer"
)

// Saddleback walks the (m,n) grid staircase-fashion from (1, upper.N):
// increasing row on failure or when row*column is below lowerArea,
// decreasing column on success. A success replaces the best solution so
// far only if its area is no larger. Grounded in the original's
// synth.search.Saddleback (_saddle_back).
type Saddleback struct{}

func (Saddleback) Search(ctx context.Context, oracle Oracle, upper lattice.Dims, lowerArea int) (*Result, error) {
	var tm timer.Timer
	steps := 0

	var best *Solution
	bestM, bestN := upper.M, upper.N

	row, column := 1, upper.N
	for row <= upper.M && column >= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if row*column < lowerArea {
			row++
			continue
		}

		var sol *Solution
		var err error
		tm.Measure(false, func() { sol, err = oracle(ctx, row, column) })
		steps++
		if err != nil {
			return nil, err
		}

		if sol == nil {
			row++
			continue
		}
		if row*column <= bestM*bestN {
			best = sol
			bestM, bestN = row, column
		}
		column--
	}

	return &Result{Solution: best, Elapsed: tm.Elapsed(), Steps: steps}, nil
}
