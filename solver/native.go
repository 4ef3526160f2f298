package solver

import (
	"context"

	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/dimacs"
	"github.com/lummax/switching-lattice-synth/internal/dpll"
)

// Native is an in-process CNF solver backed by internal/dpll, the
// module's own watched-literal DPLL fork. It requires no external binary,
// so it's the default backend for tests and for search strategies that
// don't explicitly request a different one.
type Native struct {
	Options dpll.Options

	reg     *dimacs.Registry
	clauses []cnf.Clause
}

// NewNative returns a ready-to-use Native solver.
func NewNative(opts dpll.Options) *Native {
	return &Native{Options: opts, reg: dimacs.NewRegistry()}
}

// Add implements cnf.Sink.
func (n *Native) Add(c cnf.Clause) {
	n.clauses = append(n.clauses, c)
}

// Solve implements CNF.
func (n *Native) Solve(ctx context.Context, assumptions []cnf.Lit) (Model, bool, error) {
	problem := make([][]int, 0, len(n.clauses)+len(assumptions))
	for _, c := range n.clauses {
		problem = append(problem, n.reg.ClauseInts(c))
	}
	for _, a := range assumptions {
		problem = append(problem, []int{n.reg.LitInt(a)})
	}
	assignment, _, sat, err := dpll.Solve(ctx, problem, n.Options)
	if err != nil {
		return nil, false, WrapBackendFailure("internal/dpll", err)
	}
	if !sat {
		return nil, false, nil
	}
	return Model(n.reg.ModelFromInts(assignment)), true, nil
}
