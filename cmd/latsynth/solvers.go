package main

import (
	"fmt"

	"github.com/lummax/switching-lattice-synth/internal/dpll"
	"github.com/lummax/switching-lattice-synth/solver"
)

// satSolverNames are the --sat-solver choices: "native" and "gini" solve
// in-process (the Go equivalents of the original's libcryptominisat /
// libminisat in-process cffi bindings); any other name is taken as the
// path to an external DIMACS solver binary run as a subprocess, the way
// the original's synth.sat.Dimacs drives cryptominisat5/minisat.
var satSolverNames = []string{"native", "gini", "minisat", "cryptominisat5"}

// qbfSolverNames are the --qbf-solver choices. There is no in-process QBF
// backend in this module, so both always run as a subprocess.
var qbfSolverNames = []string{"depqbf", "rareqs"}

// newCNFBackend returns a fresh solver.CNF for one oracle call. A fresh
// backend per call keeps each (m,n) candidate's clause set independent,
// matching the original's behaviour of building a brand new solver
// instance per synthesis attempt.
func newCNFBackend(name string) (solver.CNF, error) {
	switch name {
	case "native":
		return solver.NewNative(dpll.Options{}), nil
	case "gini":
		return solver.NewGini(), nil
	case "":
		return solver.NewNative(dpll.Options{}), nil
	default:
		return solver.NewProcess(name), nil
	}
}

// newQBFBackend returns a fresh solver.QBF for one oracle call. Only the
// subprocess adapter implements QBF solving, since QDIMACS solving
// requires an external solver binary (depqbf, rareqs, ...).
func newQBFBackend(name string) (solver.QBF, error) {
	switch name {
	case "":
		return solver.NewProcess("depqbf"), nil
	default:
		return solver.NewProcess(name), nil
	}
}

func printChoices(name string, choices []string) {
	fmt.Printf("%s:\n", name)
	for _, c := range choices {
		fmt.Printf("  %s\n", c)
	}
}
