package cardinality

import (
	"math/rand"
	"testing"

	"github.com/lummax/switching-lattice-synth/cnf"
)

// solveBruteForce finds a satisfying assignment for clauses that extends
// base, exhaustively trying every remaining variable. A padded
// cardinality network over n <= 5 inputs has dozens of auxiliaries, so
// the free variables are tried in order of first appearance in clauses
// (each network output after its inputs) and a branch is abandoned as
// soon as one clause has all its variables assigned and is false.
func solveBruteForce(clauses []cnf.Clause, base map[cnf.Var]bool) (map[cnf.Var]bool, bool) {
	vars := map[cnf.Var]bool{}
	free := []cnf.Var{}
	for _, c := range clauses {
		for _, l := range c {
			if _, ok := base[l.Var]; !ok && !vars[l.Var] {
				vars[l.Var] = true
				free = append(free, l.Var)
			}
		}
	}
	model := map[cnf.Var]bool{}
	for v, b := range base {
		model[v] = b
	}
	var rec func(i int) bool
	rec = func(i int) bool {
		if i == len(free) {
			return satisfies(clauses, model)
		}
		model[free[i]] = false
		if !falsified(clauses, model) && rec(i+1) {
			return true
		}
		model[free[i]] = true
		if !falsified(clauses, model) && rec(i+1) {
			return true
		}
		delete(model, free[i])
		return false
	}
	if rec(0) {
		return model, true
	}
	return nil, false
}

// falsified reports whether some clause has every variable assigned in
// model and no true literal.
func falsified(clauses []cnf.Clause, model map[cnf.Var]bool) bool {
	for _, c := range clauses {
		open := false
		for _, l := range c {
			if v, ok := model[l.Var]; !ok || v != l.Neg {
				open = true
				break
			}
		}
		if !open {
			return true
		}
	}
	return false
}

func satisfies(clauses []cnf.Clause, model map[cnf.Var]bool) bool {
	for _, c := range clauses {
		ok := false
		for _, l := range c {
			v := model[l.Var]
			if l.Neg {
				v = !v
			}
			if v {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func inputVars(n int) ([]cnf.Var, []cnf.Lit) {
	vars := make([]cnf.Var, n)
	lits := make([]cnf.Lit, n)
	for i := range vars {
		vars[i] = cnf.Var{Kind: "test.input", Extra: [3]int{i}}
		lits[i] = cnf.Pos(vars[i])
	}
	return vars, lits
}

// assignMask assigns vars from the bits of mask and counts how many of
// them are true.
func assignMask(vars []cnf.Var, mask int) (map[cnf.Var]bool, int) {
	m := map[cnf.Var]bool{}
	count := 0
	for i, v := range vars {
		b := mask&(1<<uint(i)) != 0
		m[v] = b
		if b {
			count++
		}
	}
	return m, count
}

func TestAtMostExhaustive(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for k := 0; k <= n; k++ {
			vars, lits := inputVars(n)
			sink := &cnf.SliceSink{}
			AtMost(cnf.NewNameGen(), sink, lits, k)
			for mask := 0; mask < 1<<uint(n); mask++ {
				base, count := assignMask(vars, mask)
				_, ok := solveBruteForce(sink.Clauses, base)
				want := count <= k
				if ok != want {
					t.Errorf("n=%d k=%d mask=%b (count=%d): satisfiable=%v, want %v", n, k, mask, count, ok, want)
				}
			}
		}
	}
}

func TestAtLeastExhaustive(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for k := 0; k <= n; k++ {
			vars, lits := inputVars(n)
			sink := &cnf.SliceSink{}
			AtLeast(cnf.NewNameGen(), sink, lits, k)
			for mask := 0; mask < 1<<uint(n); mask++ {
				base, count := assignMask(vars, mask)
				_, ok := solveBruteForce(sink.Clauses, base)
				want := count >= k
				if ok != want {
					t.Errorf("n=%d k=%d mask=%b (count=%d): satisfiable=%v, want %v", n, k, mask, count, ok, want)
				}
			}
		}
	}
}

func TestEqualsExhaustive(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for k := 0; k <= n; k++ {
			vars, lits := inputVars(n)
			sink := &cnf.SliceSink{}
			Equals(cnf.NewNameGen(), sink, lits, k)
			for mask := 0; mask < 1<<uint(n); mask++ {
				base, count := assignMask(vars, mask)
				_, ok := solveBruteForce(sink.Clauses, base)
				want := count == k
				if ok != want {
					t.Errorf("n=%d k=%d mask=%b (count=%d): satisfiable=%v, want %v", n, k, mask, count, ok, want)
				}
			}
		}
	}
}

// TestAtMostReifiedRandomized fuzzes small reified AtMost constraints,
// checking that eq's truth value always matches the actual cardinality
// condition, in the style of the teacher's seeded randomized tests
// (cespare/saturday's TestRandomized).
func TestAtMostReifiedRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(5)
		k := rng.Intn(n + 1)
		vars, lits := inputVars(n)
		sink := &cnf.SliceSink{}
		eq := AtMostReified(cnf.NewNameGen(), sink, lits, k)

		mask := rng.Intn(1 << uint(n))
		base, count := assignMask(vars, mask)

		base[eq.Var] = !eq.Neg == (count <= k)
		if _, ok := solveBruteForce(sink.Clauses, base); !ok {
			t.Fatalf("trial %d: n=%d k=%d mask=%b (count=%d): eq should be satisfiable when set to its true value", trial, n, k, mask, count)
		}
		base[eq.Var] = !(!eq.Neg == (count <= k))
		if _, ok := solveBruteForce(sink.Clauses, base); ok {
			t.Fatalf("trial %d: n=%d k=%d mask=%b (count=%d): eq should be unsatisfiable when set to the wrong value", trial, n, k, mask, count)
		}
	}
}
