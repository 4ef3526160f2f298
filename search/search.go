// Package search implements spec.md §4.7's dimension-search strategies:
// each wraps a synth oracle that tests one (m,n) candidate and searches
// the space between the area lower bound (spec.md §3) and the naive
// upper bound (m0,n0 = len(dual ISOP), len(ISOP)) for the
// smallest-area lattice. Grounded in the original's synth.search module;
// every strategy there subclasses SearchBase and calls
// self._synthesize(timer, m, n) repeatedly — here that becomes an Oracle
// function value passed in by the caller (cmd/latsynth), decoupling the
// search strategies from which encoder/quantification-strategy/solver
// combination the oracle actually runs.
package search

import (
	"context"
	"time"

	"github.com/lummax/switching-lattice-synth/lattice"
	"github.com/lummax/switching-lattice-synth/timer"
)

// Solution is one successful oracle result.
type Solution struct {
	Grid                     *lattice.Grid
	Height, Width            int
	NumVariables, NumClauses int
	UnfoldingSteps           int
}

// Oracle tests whether an m-by-n lattice realizing the target function
// exists. A nil Solution with a nil error means the candidate is
// UNSAT — a genuine negative result, not a backend failure. A non-nil
// error (almost always wrapping solver.ErrBackendFailure) must abort the
// whole search rather than being treated as UNSAT, per spec.md §9.
type Oracle func(ctx context.Context, m, n int) (*Solution, error)

// Result is what a Strategy returns: the best Solution found (nil if
// none exists within the search space), how much oracle CPU time was
// spent, and how many oracle calls were made.
type Result struct {
	Solution *Solution
	Elapsed  time.Duration
	Steps    int
}

// Strategy searches the (m,n) space between lowerArea (the scalar area
// lower bound) and upper (the naive (m0,n0) bound, or a user override)
// for the smallest-area lattice the oracle can realize.
type Strategy interface {
	Search(ctx context.Context, oracle Oracle, upper lattice.Dims, lowerArea int) (*Result, error)
}

// Simple makes a single oracle call at upper, the original's default
// search when the user just wants one fixed-size attempt (optionally via
// --upper-bound).
type Simple struct{}

func (Simple) Search(ctx context.Context, oracle Oracle, upper lattice.Dims, lowerArea int) (*Result, error) {
	var tm timer.Timer
	var sol *Solution
	var err error
	tm.Measure(false, func() { sol, err = oracle(ctx, upper.M, upper.N) })
	if err != nil {
		return nil, err
	}
	return &Result{Solution: sol, Elapsed: tm.Elapsed(), Steps: 1}, nil
}

// smallestArea returns whichever of the given solutions (skipping nils)
// has the smallest m*n area, or nil if all are nil.
func smallestArea(solutions ...*Solution) *Solution {
	var best *Solution
	for _, s := range solutions {
		if s == nil {
			continue
		}
		if best == nil || s.Height*s.Width < best.Height*best.Width {
			best = s
		}
	}
	return best
}
