package irredundant

import (
	"context"

	"github.com/lummax/switching-lattice-synth/boolfn"
	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/lattice"
	"github.com/lummax/switching-lattice-synth/solver"
)

// CegarResult is what RunCegar returns on success: the solved candidate
// labelling plus how many counterexamples were folded into the refining
// solver before it converged.
type CegarResult struct {
	Model          solver.Model
	UnfoldingSteps int
}

// RunCegar implements spec.md §4.6's counterexample-guided refinement
// loop. refining starts out holding only the constraint base
// (constant-set + one-hot); RunCegar streams the counterexample solver's
// full two-path lattice plus the swapped-polarity violation implications
// (BuildCounterexampleImplication: f(x) => negative path, ¬f(x) =>
// positive path) into counterexample up front, so that it is SAT exactly
// when some input breaks the candidate labelling. RunCegar then iterates:
// solve refining for a candidate labelling σ, solve counterexample with σ
// fixed as assumptions on the X[i,j,l] variables (inputs free), and
// either accept σ (counterexample is UNSAT — no input breaks it) or fold
// the discovered counterexample input assignment into refining as a fresh
// Unfolded block (with the normal-polarity Build) and loop. Termination
// follows because the input-assignment space is finite and every
// counterexample folded into refining is new.
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

// cellAssumptions turns a solved refining model into the full set of
// assumption literals that pin every X[i,j,l] variable's value in model,
// fixing the candidate labelling exactly when handed to the
// counterexample solver.
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

// inputAssignment extracts the truth value of every support input from a
// counterexample model built over genuine "input" variables.
func inputAssignment(support []string, model solver.Model) map[string]bool {
	assignment := make(map[string]bool, len(support))
	for _, name := range support {
		assignment[name] = model[boolfn.InputVar(name)]
	}
	return assignment
}
