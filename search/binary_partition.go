package search

import (
	"context"

	"github.com/lummax/switching-lattice-synth/lattice"
	"github.com/lummax/switching-lattice-synth/timer"
)

// BinaryPartition recursively shrinks the (m,n) rectangle bounded by
// lowerArea and upper, bisecting whichever of the two axes is longer and
// binary-searching along the bisecting row or column for the smallest
// dimension that still has a solution, then recursing into the two
// sub-rectangles either side of that parting line.
//
// Grounded in the original's synth.search.BinaryPartition
// (_binary_partition / _partition_horizontal / _partition_vertical /
// _binary_minimum).
type BinaryPartition struct{}

type minimumResult struct {
	Solution      *Solution
	Height, Width int
}

func (BinaryPartition) Search(ctx context.Context, oracle Oracle, upper lattice.Dims, lowerArea int) (*Result, error) {
	var tm timer.Timer
	steps := 0
	sol, err := binaryPartition(ctx, oracle, &tm, &steps, lowerArea,
		lattice.Dims{M: 1, N: 1}, upper)
	if err != nil {
		return nil, err
	}
	return &Result{Solution: sol, Elapsed: tm.Elapsed(), Steps: steps}, nil
}

func binaryPartition(ctx context.Context, oracle Oracle, tm *timer.Timer, steps *int, lowerArea int, lower, upper lattice.Dims) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if upper.M*upper.N < lowerArea || lower.M > upper.M || lower.N > upper.N {
		return nil, nil
	}
	if upper.M*lower.N < lowerArea {
		return binaryPartition(ctx, oracle, tm, steps, lowerArea, lattice.Dims{M: lower.M, N: lower.N + 1}, upper)
	}
	if lower.M*upper.N < lowerArea {
		return binaryPartition(ctx, oracle, tm, steps, lowerArea, lattice.Dims{M: lower.M + 1, N: lower.N}, upper)
	}

	horizontal := upper.M-lower.M > upper.N-lower.N
	if horizontal {
		return partitionHorizontal(ctx, oracle, tm, steps, lowerArea, lower, upper)
	}
	return partitionVertical(ctx, oracle, tm, steps, lowerArea, lower, upper)
}

func partitionVertical(ctx context.Context, oracle Oracle, tm *timer.Timer, steps *int, lowerArea int, lower, upper lattice.Dims) (*Solution, error) {
	midColumn := lower.N + (upper.N-lower.N)/2

	rowValues := make([]lattice.Dims, 0, upper.M-lower.M+1)
	for m := lower.M; m <= upper.M; m++ {
		rowValues = append(rowValues, lattice.Dims{M: m, N: midColumn})
	}
	minimum, err := binaryMinimum(ctx, oracle, tm, steps, rowValues)
	if err != nil {
		return nil, err
	}
	partingRow := minimum.Height

	left, err := binaryPartition(ctx, oracle, tm, steps, lowerArea,
		lattice.Dims{M: partingRow, N: lower.N}, lattice.Dims{M: upper.M, N: midColumn - 1})
	if err != nil {
		return nil, err
	}
	right, err := binaryPartition(ctx, oracle, tm, steps, lowerArea,
		lattice.Dims{M: lower.M, N: midColumn + 1}, lattice.Dims{M: partingRow - 1, N: upper.N})
	if err != nil {
		return nil, err
	}
	return smallestArea(minimum.Solution, left, right), nil
}

func partitionHorizontal(ctx context.Context, oracle Oracle, tm *timer.Timer, steps *int, lowerArea int, lower, upper lattice.Dims) (*Solution, error) {
	midRow := lower.M + (upper.M-lower.M)/2

	columnValues := make([]lattice.Dims, 0, upper.N-lower.N+1)
	for n := lower.N; n <= upper.N; n++ {
		columnValues = append(columnValues, lattice.Dims{M: midRow, N: n})
	}
	minimum, err := binaryMinimum(ctx, oracle, tm, steps, columnValues)
	if err != nil {
		return nil, err
	}
	partingColumn := minimum.Width

	left, err := binaryPartition(ctx, oracle, tm, steps, lowerArea,
		lattice.Dims{M: lower.M, N: partingColumn}, lattice.Dims{M: midRow - 1, N: upper.N})
	if err != nil {
		return nil, err
	}
	right, err := binaryPartition(ctx, oracle, tm, steps, lowerArea,
		lattice.Dims{M: midRow + 1, N: lower.N}, lattice.Dims{M: upper.M, N: partingColumn - 1})
	if err != nil {
		return nil, err
	}
	return smallestArea(minimum.Solution, left, right), nil
}

// binaryMinimum binary-searches values (ordered along the bisecting row
// or column) for the smallest index with a solution, assuming — as the
// original does — that once a candidate succeeds every candidate further
// along the line also succeeds. If none do, it reports one index past
// the end as the parting coordinate, matching the original's
// out-of-range sentinel so the caller's sub-rectangle split still makes
// sense.
func binaryMinimum(ctx context.Context, oracle Oracle, tm *timer.Timer, steps *int, values []lattice.Dims) (*minimumResult, error) {
	cache := make(map[int]*Solution)
	get := func(idx int) (*Solution, error) {
		if sol, ok := cache[idx]; ok {
			return sol, nil
		}
		var sol *Solution
		var err error
		tm.Measure(false, func() { sol, err = oracle(ctx, values[idx].M, values[idx].N) })
		*steps++
		if err != nil {
			return nil, err
		}
		cache[idx] = sol
		return sol, nil
	}

	lower, upper := 0, len(values)-1
	for lower < upper {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mid := (lower + upper) / 2
		sol, err := get(mid)
		if err != nil {
			return nil, err
		}
		if sol == nil {
			lower = mid + 1
		} else {
			upper = mid
		}
	}

	sol, err := get(lower)
	if err != nil {
		return nil, err
	}
	if sol == nil {
		last := values[len(values)-1]
		return &minimumResult{Solution: nil, Height: last.M + 1, Width: last.N + 1}, nil
	}
	return &minimumResult{Solution: sol, Height: values[lower].M, Width: values[lower].N}, nil
}
