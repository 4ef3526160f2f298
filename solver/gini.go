package solver

import (
	"context"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/dimacs"
)

const (
	giniSatisfiable   = 1
	giniUnsatisfiable = -1
)

// Gini is a CNF backend wrapping a github.com/go-air/gini in-process
// solver. It trades internal/dpll's transparency for gini's
// considerably faster CDCL search on larger lattices.
type Gini struct {
	g   inter.S
	reg *dimacs.Registry
}

// NewGini returns a ready-to-use Gini solver.
func NewGini() *Gini {
	return &Gini{g: gini.New(), reg: dimacs.NewRegistry()}
}

func (s *Gini) lit(l cnf.Lit) z.Lit {
	return z.Dimacs2Lit(s.reg.LitInt(l))
}

// Add implements cnf.Sink.
func (s *Gini) Add(c cnf.Clause) {
	for _, l := range c {
		s.g.Add(s.lit(l))
	}
	s.g.Add(z.LitNull)
}

// Solve implements CNF.
func (s *Gini) Solve(ctx context.Context, assumptions []cnf.Lit) (Model, bool, error) {
	lits := make([]z.Lit, len(assumptions))
	for i, a := range assumptions {
		lits[i] = s.lit(a)
	}
	s.g.Assume(lits...)
	result := s.g.Solve()
	switch result {
	case giniSatisfiable:
		model := make(Model, s.reg.NumVars())
		for v := 1; v <= s.reg.NumVars(); v++ {
			cv, ok := s.reg.VarOf(v)
			if !ok {
				continue
			}
			model[cv] = s.g.Value(z.Dimacs2Lit(v))
		}
		return model, true, nil
	case giniUnsatisfiable:
		return nil, false, nil
	default:
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		return nil, false, WrapBackendFailure("gini", ErrBackendFailure)
	}
}
