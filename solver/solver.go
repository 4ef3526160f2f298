// Package solver adapts this module's cnf.Clause formulas to concrete SAT
// and QBF backends: an in-process DPLL solver (Native), an in-process
// gini-backed solver (Gini), and a subprocess adapter driving an external
// DIMACS/QDIMACS solver binary (Process). spec.md §4.8 describes the
// interface; which concrete backend a search strategy uses is a runtime
// choice, not an encoding-time one.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/lummax/switching-lattice-synth/cnf"
)

// Model maps every variable the solver assigned to its truth value.
type Model map[cnf.Var]bool

// CNF is a propositional SAT backend: clauses are streamed in via Add
// (cnf.Sink), then Solve checks satisfiability under the given
// assumptions (additional unit literals, not added permanently to the
// formula — used by Cegar to fix a candidate labelling without rebuilding
// the whole formula).
type CNF interface {
	cnf.Sink
	Solve(ctx context.Context, assumptions []cnf.Lit) (Model, bool, error)
}

// QBF is a 2-level exists/forall QBF backend. existential is bound
// outermost and universal after it; a variable of the streamed clauses
// that appears in neither is existentially bound in an innermost block.
type QBF interface {
	cnf.Sink
	SolveQBF(ctx context.Context, existential, universal []cnf.Var) (Model, bool, error)
}

// ErrBackendFailure wraps a solver backend failure that is not itself a
// UNSAT verdict: a subprocess exiting for a reason other than reporting
// UNSAT, a result that doesn't parse, or similar. Per spec.md §9's
// resolved open question, callers (search strategies) must treat this as
// fatal and abort rather than silently treating it as UNSAT and
// continuing to a smaller candidate.
var ErrBackendFailure = errors.New("solver: backend failure")

// WrapBackendFailure wraps err (if non-nil) as an ErrBackendFailure,
// preserving err for errors.Is/errors.As via %w.
func WrapBackendFailure(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrBackendFailure, context, err)
}
