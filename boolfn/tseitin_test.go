package boolfn

import (
	"testing"

	"github.com/lummax/switching-lattice-synth/cnf"
)

// evalClauses checks whether every clause in cs is satisfied by the given
// DIMACS-style model (a set of true literal Vars).
func evalClauses(cs []cnf.Clause, true_ map[cnf.Var]bool) bool {
	for _, c := range cs {
		sat := false
		for _, l := range c {
			v := true_[l.Var]
			if l.Neg {
				v = !v
			}
			if v {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

func TestToCNFTseitinEquivalence(t *testing.T) {
	e := Or(And(Var("a"), Not(Var("b"))), Var("c"))
	gen := cnf.NewNameGen()
	sink := &cnf.SliceSink{}
	out := ToCNF(e, gen, sink)

	names := Inputs(e)
	assignment := make(map[string]bool, len(names))
	var rec func(i int)
	rec = func(i int) {
		if i == len(names) {
			want := Eval(e, assignment)
			model := map[cnf.Var]bool{}
			for n, v := range assignment {
				model[InputVar(n)] = v
			}
			// Try both polarities for every auxiliary the Tseitin pass
			// introduced: a satisfying model exists with out's polarity
			// fixed to want iff the transformation is correct.
			ok := findModelExtending(sink.Clauses, model, out, want)
			if !ok {
				t.Errorf("assignment %v: no model extends it with ToCNF's output fixed to %v", assignment, want)
			}
			return
		}
		assignment[names[i]] = false
		rec(i + 1)
		assignment[names[i]] = true
		rec(i + 1)
	}
	rec(0)
}

// findModelExtending brute-forces every remaining (unassigned) variable
// appearing in clauses to see whether some total assignment extending
// base, with out fixed to wantOut, satisfies every clause.
func findModelExtending(clauses []cnf.Clause, base map[cnf.Var]bool, out cnf.Lit, wantOut bool) bool {
	vars := map[cnf.Var]bool{}
	for _, c := range clauses {
		for _, l := range c {
			if _, ok := base[l.Var]; !ok {
				vars[l.Var] = true
			}
		}
	}
	free := make([]cnf.Var, 0, len(vars))
	for v := range vars {
		free = append(free, v)
	}
	model := map[cnf.Var]bool{}
	for v, b := range base {
		model[v] = b
	}
	outVal := wantOut
	if out.Neg {
		outVal = !wantOut
	}
	model[out.Var] = outVal

	var rec func(i int) bool
	rec = func(i int) bool {
		if i == len(free) {
			return evalClauses(clauses, model)
		}
		model[free[i]] = false
		if rec(i + 1) {
			return true
		}
		model[free[i]] = true
		if rec(i + 1) {
			return true
		}
		delete(model, free[i])
		return false
	}
	return rec(0)
}
