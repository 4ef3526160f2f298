package main

import (
	"context"
	"fmt"
	"io"

	"github.com/lummax/switching-lattice-synth/boolfn"
	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/dimacs"
	"github.com/lummax/switching-lattice-synth/encode/irredundant"
	"github.com/lummax/switching-lattice-synth/encode/reachability"
	"github.com/lummax/switching-lattice-synth/lattice"
	"github.com/lummax/switching-lattice-synth/search"
	"github.com/lummax/switching-lattice-synth/solver"
)

// trackingSink wraps a cnf.Sink, recording every variable and clause
// streamed through it so the caller can partition the formula into
// existential/universal variable sets for QBF solving and report
// num_variables/num_clauses statistics without the encoder packages
// needing to expose that bookkeeping themselves.
type trackingSink struct {
	cnf.Sink
	vars    map[cnf.Var]bool
	clauses []cnf.Clause
}

func newTrackingSink(sink cnf.Sink) *trackingSink {
	return &trackingSink{Sink: sink, vars: make(map[cnf.Var]bool)}
}

func (t *trackingSink) Add(c cnf.Clause) {
	t.clauses = append(t.clauses, c)
	for _, l := range c {
		t.vars[l.Var] = true
	}
	t.Sink.Add(c)
}

// partition splits every tracked variable into the universal set (the
// support's genuine input variables) and the existential set (everything
// else: cell labels, path/reachability structure, Tseitin auxiliaries).
func (t *trackingSink) partition() (existential, universal []cnf.Var) {
	for v := range t.vars {
		if v.Kind == "input" {
			universal = append(universal, v)
		} else {
			existential = append(existential, v)
		}
	}
	return existential, universal
}

// trackingCNF is trackingSink's counterpart for the CEGAR path, where
// RunCegar itself owns the Add calls against a solver.CNF it is handed
// directly: wrapping the backend in a type that is still a solver.CNF
// (Solve is promoted from the embedded interface; only Add is
// overridden) lets RunCegar stream clauses through it unmodified while
// this command still gets the same variable/clause bookkeeping.
type trackingCNF struct {
	solver.CNF
	vars    map[cnf.Var]bool
	clauses int
}

func newTrackingCNF(backend solver.CNF) *trackingCNF {
	return &trackingCNF{CNF: backend, vars: make(map[cnf.Var]bool)}
}

func (t *trackingCNF) Add(c cnf.Clause) {
	t.clauses++
	for _, l := range c {
		t.vars[l.Var] = true
	}
	t.CNF.Add(c)
}

func buildQBF(method string) func(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, fn *boolfn.Function, opts lattice.Options) {
	if method == "reachability" {
		return reachability.BuildQBF
	}
	return irredundant.BuildQBF
}

func buildUnfolded(method string) func(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, fn *boolfn.Function, opts lattice.Options) {
	if method == "reachability" {
		return reachability.BuildUnfolded
	}
	return irredundant.BuildUnfolded
}

// oracleConfig carries everything buildOracle needs beyond (m,n): which
// method/synthesizer combination to run, how to obtain fresh solver
// backends, and where --dump-dimacs output (if requested) goes.
type oracleConfig struct {
	method      string
	synthesizer string
	fn          *boolfn.Function
	opts        lattice.Options
	satSolver   string
	qbfSolver   string
	dumpDimacs  bool
	noDecode    bool
	out         io.Writer
}

// buildOracle wires one (method, synthesizer) combination into a
// search.Oracle, the seam every search.Strategy drives. Grounded in the
// original's SearchBase.with_qbf / with_qbf_unfolded / with_cegar, which
// likewise close over a fixed synthesizer+solver pair and expose
// "synth(m, n)" as the thing the search strategies call.
func buildOracle(cfg oracleConfig) search.Oracle {
	return func(ctx context.Context, m, n int) (*search.Solution, error) {
		dims := lattice.Dims{M: m, N: n}
		gen := cnf.NewNameGen()

		switch cfg.synthesizer {
		case "QBF":
			backend, err := newQBFBackend(cfg.qbfSolver)
			if err != nil {
				return nil, err
			}
			tracking := newTrackingSink(backend)
			buildQBF(cfg.method)(gen, tracking, dims, cfg.fn, cfg.opts)
			if cfg.dumpDimacs {
				writeQDIMACSDump(cfg.out, tracking)
			}
			existential, universal := tracking.partition()
			model, sat, err := backend.SolveQBF(ctx, existential, universal)
			if err != nil {
				return nil, err
			}
			if !sat {
				return nil, nil
			}
			return decodeSolution(dims, model, len(tracking.vars), len(tracking.clauses), 0, cfg.noDecode)

		case "QBFU":
			backend, err := newCNFBackend(cfg.satSolver)
			if err != nil {
				return nil, err
			}
			tracking := newTrackingSink(backend)
			buildUnfolded(cfg.method)(gen, tracking, dims, cfg.fn, cfg.opts)
			if cfg.dumpDimacs {
				writeCNFDump(cfg.out, tracking)
			}
			model, sat, err := backend.Solve(ctx, nil)
			if err != nil {
				return nil, err
			}
			if !sat {
				return nil, nil
			}
			return decodeSolution(dims, model, len(tracking.vars), len(tracking.clauses), 0, cfg.noDecode)

		case "CEGAR":
			refiningBackend, err := newCNFBackend(cfg.satSolver)
			if err != nil {
				return nil, err
			}
			counterBackend, err := newCNFBackend(cfg.satSolver)
			if err != nil {
				return nil, err
			}
			refining := newTrackingCNF(refiningBackend)
			counterexample := newTrackingCNF(counterBackend)

			var model solver.Model
			var unfoldingSteps int
			var sat bool
			if cfg.method == "reachability" {
				reachResult, reachSat, rerr := reachability.RunCegar(ctx, gen, refining, counterexample, dims, cfg.fn, cfg.opts)
				if rerr != nil {
					return nil, rerr
				}
				sat = reachSat
				if sat {
					model, unfoldingSteps = reachResult.Model, reachResult.UnfoldingSteps
				}
			} else {
				irResult, irSat, ierr := irredundant.RunCegar(ctx, gen, refining, counterexample, dims, cfg.fn, cfg.opts)
				if ierr != nil {
					return nil, ierr
				}
				sat = irSat
				if sat {
					model, unfoldingSteps = irResult.Model, irResult.UnfoldingSteps
				}
			}
			if !sat {
				return nil, nil
			}
			numVars := len(refining.vars) + len(counterexample.vars)
			numClauses := refining.clauses + counterexample.clauses
			return decodeSolution(dims, model, numVars, numClauses, unfoldingSteps, cfg.noDecode)

		default:
			return nil, fmt.Errorf("latsynth: unknown synthesizer %q", cfg.synthesizer)
		}
	}
}

func decodeSolution(dims lattice.Dims, model solver.Model, numVariables, numClauses, unfoldingSteps int, noDecode bool) (*search.Solution, error) {
	sol := &search.Solution{
		Height:         dims.M,
		Width:          dims.N,
		NumVariables:   numVariables,
		NumClauses:     numClauses,
		UnfoldingSteps: unfoldingSteps,
	}
	if noDecode {
		return sol, nil
	}
	grid, err := lattice.DecodeModel(dims, model)
	if err != nil {
		return nil, err
	}
	sol.Grid = grid
	return sol, nil
}

func writeCNFDump(w io.Writer, tracking *trackingSink) {
	if w == nil {
		return
	}
	reg := dimacs.NewRegistry()
	if err := dimacs.WriteCNF(w, tracking.clauses, reg); err != nil {
		fmt.Fprintf(w, "# error writing DIMACS dump: %v\n", err)
	}
}

func writeQDIMACSDump(w io.Writer, tracking *trackingSink) {
	if w == nil {
		return
	}
	existential, universal := tracking.partition()
	reg := dimacs.NewRegistry()
	blocks := []dimacs.Block{
		{Quantifier: dimacs.Exists, Vars: existential},
		{Quantifier: dimacs.Forall, Vars: universal},
	}
	if err := dimacs.WriteQDIMACS(w, tracking.clauses, blocks, reg); err != nil {
		fmt.Fprintf(w, "# error writing QDIMACS dump: %v\n", err)
	}
}
