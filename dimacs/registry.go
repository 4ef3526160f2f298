// Package dimacs converts between this module's cnf.Var/cnf.Lit/cnf.Clause
// types and the DIMACS CNF and QDIMACS QBF wire formats that external
// solver binaries (and this module's own solver.Process adapter) read and
// write.
package dimacs

import "github.com/lummax/switching-lattice-synth/cnf"

// Registry assigns a stable, contiguous DIMACS integer (starting at 1) to
// every cnf.Var it sees, in first-seen order, and can translate both
// directions. Solver adapters build one fresh Registry per formula.
type Registry struct {
	toInt  map[cnf.Var]int
	toVar  []cnf.Var // index i holds the Var for DIMACS int i+1
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{toInt: make(map[cnf.Var]int)}
}

// IntOf returns the DIMACS integer for v, assigning a fresh one if v
// hasn't been seen before.
func (r *Registry) IntOf(v cnf.Var) int {
	if n, ok := r.toInt[v]; ok {
		return n
	}
	r.toVar = append(r.toVar, v)
	n := len(r.toVar)
	r.toInt[v] = n
	return n
}

// VarOf returns the cnf.Var for DIMACS integer n (1-indexed), or false if
// n is out of range.
func (r *Registry) VarOf(n int) (cnf.Var, bool) {
	if n < 1 || n > len(r.toVar) {
		return cnf.Var{}, false
	}
	return r.toVar[n-1], true
}

// NumVars reports how many distinct variables have been registered.
func (r *Registry) NumVars() int { return len(r.toVar) }

// LitInt returns l's signed DIMACS literal (negative if l is negated).
func (r *Registry) LitInt(l cnf.Lit) int {
	n := r.IntOf(l.Var)
	if l.Neg {
		return -n
	}
	return n
}

// ClauseInts converts one clause to its DIMACS integer form.
func (r *Registry) ClauseInts(c cnf.Clause) []int {
	out := make([]int, len(c))
	for i, l := range c {
		out[i] = r.LitInt(l)
	}
	return out
}

// ModelFromInts converts a satisfying assignment in DIMACS form (each
// entry's sign giving the variable's truth value, as returned by
// internal/dpll.Solve and most SAT solver binaries) back into a
// cnf.Var-keyed model.
func (r *Registry) ModelFromInts(assignment []int) map[cnf.Var]bool {
	model := make(map[cnf.Var]bool, len(assignment))
	for _, n := range assignment {
		v, ok := r.VarOf(abs(n))
		if !ok {
			continue
		}
		model[v] = n > 0
	}
	return model
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
