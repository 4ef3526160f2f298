package irredundant

import (
	"github.com/lummax/switching-lattice-synth/boolfn"
	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/lattice"
)

// BuildQBF streams the full QBF-quantified irredundant encoding for one
// (m,n) candidate: existentially-bound X[i,j,l]/path variables, with the
// support's input variables left as the genuine, solver-quantified
// variables a QDIMACS "forall" block binds. Every cnf.Var with Kind
// "input" in the resulting formula is exactly the universal set.
func BuildQBF(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, fn *boolfn.Function, opts lattice.Options) {
	support := boolfn.Inputs(fn.Expr())
	lattice.AssertBaseClauses(gen, sink, dims, support, opts)

	inputLit := func(name string) cnf.Lit { return cnf.Pos(boolfn.InputVar(name)) }
	fLit := boolfn.ToCNF(fn.Expr(), gen, sink)
	Build(gen, sink, dims, support, 0, inputLit, fLit)
}

// BuildUnfolded streams the propositional unfolding of the irredundant
// encoding: one full copy of Build per point in the support's domain
// (2^|support| assignments), each tagged distinctly so the path variables
// of different assignments never alias. This replaces QBF's universal
// quantifier with explicit conjunction, per spec.md §4.5.
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

// constantInputLit resolves each input name to a literal pinned to
// boolfn.ConstantVar's truth (already asserted true by
// lattice.AssertBaseClauses), letting BuildStructure's clause shapes stay
// identical between the QBF and Unfolded strategies.
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
// lexicographic order of names.
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
