package reachability

import (
	"context"

	"github.com/lummax/switching-lattice-synth/boolfn"
	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/lattice"
	"github.com/lummax/switching-lattice-synth/solver"
)

// CegarResult mirrors encode/irredundant.CegarResult.
type CegarResult struct {
	Model          solver.Model
	UnfoldingSteps int
}

// RunCegar implements spec.md §4.6's CEGAR loop over the reachability
// encoding instead of encode/irredundant's explicit path variables,
// otherwise identical to encode/irredundant.RunCegar: refining starts out
// holding only the constraint base, counterexample holds the full
// switch+reachability structure plus the swapped-polarity violation
// implications (BuildCounterexampleImplication), so it is SAT exactly
// when some input breaks the candidate labelling, and every
// counterexample input assignment is folded into refining as a fresh
// Unfolded block (with the normal-polarity Build).
func RunCegar(ctx context.Context, gen *cnf.NameGen, refining, counterexample solver.CNF, dims lattice.Dims, fn *boolfn.Function, opts lattice.Options) (*CegarResult, bool, error) {
	support := boolfn.Inputs(fn.Expr())
	lattice.AssertBaseClauses(gen, refining, dims, support, opts)

	boolfn.AssertConstantTrue(counterexample)
	counterInputLit := func(name string) cnf.Lit { return cnf.Pos(boolfn.InputVar(name)) }
	counterFLit := boolfn.ToCNF(fn.Expr(), gen, counterexample)
	BuildCounterexample(gen, counterexample, dims, support, 0, counterInputLit, counterFLit)

	steps := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		candidate, sat, err := refining.Solve(ctx, nil)
		if err != nil {
			return nil, false, err
		}
		if !sat {
			return nil, false, nil
		}

		assumptions := cellAssumptions(candidate)
		counterModel, sat, err := counterexample.Solve(ctx, assumptions)
		if err != nil {
			return nil, false, err
		}
		if !sat {
			return &CegarResult{Model: candidate, UnfoldingSteps: steps}, true, nil
		}

		alpha := inputAssignment(support, counterModel)
		tag := gen.Tag()
		inputLit := constantInputLit(alpha)
		fLit := constantLit(boolfn.Eval(fn.Expr(), alpha))
		Build(gen, refining, dims, support, tag, inputLit, fLit)
		steps++
	}
}

func cellAssumptions(model solver.Model) []cnf.Lit {
	out := make([]cnf.Lit, 0, len(model))
	for v, value := range model {
		if v.Kind != "cell" {
			continue
		}
		l := cnf.Pos(v)
		if !value {
			l = l.Not()
		}
		out = append(out, l)
	}
	return out
}

func inputAssignment(support []string, model solver.Model) map[string]bool {
	assignment := make(map[string]bool, len(support))
	for _, name := range support {
		assignment[name] = model[boolfn.InputVar(name)]
	}
	return assignment
}
