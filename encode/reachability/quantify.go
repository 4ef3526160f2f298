package reachability

import (
	"github.com/lummax/switching-lattice-synth/boolfn"
	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/lattice"
)

// BuildQBF streams the full QBF-quantified reachability encoding for one
// (m,n) candidate, mirroring encode/irredundant.BuildQBF: X[i,j,l] and
// the switch/reachability variables are existentially bound, the
// support's inputs are left as the genuine variables a QDIMACS "forall"
// block binds.
func BuildQBF(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, fn *boolfn.Function, opts lattice.Options) {
	support := boolfn.Inputs(fn.Expr())
	lattice.AssertBaseClauses(gen, sink, dims, support, opts)

	inputLit := func(name string) cnf.Lit { return cnf.Pos(boolfn.InputVar(name)) }
	fLit := boolfn.ToCNF(fn.Expr(), gen, sink)
	Build(gen, sink, dims, support, 0, inputLit, fLit)
}

// BuildUnfolded streams the propositional unfolding of the reachability
// encoding: one full copy of Build per point in the support's domain,
// each tagged distinctly, mirroring encode/irredundant.BuildUnfolded per
// spec.md §4.5.
func BuildUnfolded(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, fn *boolfn.Function, opts lattice.Options) {
	support := boolfn.Inputs(fn.Expr())
	lattice.AssertBaseClauses(gen, sink, dims, support, opts)

	ForEachAssignment(support, func(assignment map[string]bool) {
		tag := gen.Tag()
		inputLit := constantInputLit(assignment)
		fLit := constantLit(boolfn.Eval(fn.Expr(), assignment))
		Build(gen, sink, dims, support, tag, inputLit, fLit)
	})
}

func constantInputLit(assignment map[string]bool) InputLit {
	return func(name string) cnf.Lit { return constantLit(assignment[name]) }
}

func constantLit(v bool) cnf.Lit {
	if v {
		return cnf.Pos(boolfn.ConstantVar)
	}
	return cnf.Pos(boolfn.ConstantVar).Not()
}

// ForEachAssignment calls f once per point in {0,1}^len(names), in
// lexicographic order of names, identically to
// encode/irredundant.ForEachAssignment.
func ForEachAssignment(names []string, f func(assignment map[string]bool)) {
	assignment := make(map[string]bool, len(names))
	var rec func(i int)
	rec = func(i int) {
		if i == len(names) {
			f(assignment)
			return
		}
		assignment[names[i]] = false
		rec(i + 1)
		assignment[names[i]] = true
		rec(i + 1)
	}
	rec(0)
}
