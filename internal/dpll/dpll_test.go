package dpll

import (
	"context"
	"math/rand"
	"testing"
)

func solutionIsValid(problem [][]int, assignment []int) bool {
	vals := make(map[int]bool, len(assignment))
	for _, v := range assignment {
		if v < 0 {
			vals[-v] = false
		} else {
			vals[v] = true
		}
	}
	for _, cls := range problem {
		ok := false
		for _, v := range cls {
			var want bool
			n := v
			if n < 0 {
				want = false
				n = -n
			} else {
				want = true
			}
			if vals[n] == want {
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

func TestSolveSatisfiable(t *testing.T) {
	// (a | b) & (~a | c) & (~b | ~c)
	problem := [][]int{{1, 2}, {-1, 3}, {-2, -3}}
	assignment, _, sat, err := Solve(context.Background(), problem, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !sat {
		t.Fatalf("Solve: problem is satisfiable but got sat=false")
	}
	if !solutionIsValid(problem, assignment) {
		t.Errorf("Solve: assignment %v does not satisfy %v", assignment, problem)
	}
}

func TestSolveUnsatisfiable(t *testing.T) {
	// a & ~a
	problem := [][]int{{1}, {-1}}
	_, _, sat, err := Solve(context.Background(), problem, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sat {
		t.Errorf("Solve: problem is unsatisfiable but got sat=true")
	}
}

func TestSolveRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err := Solve(ctx, [][]int{{1, 2}, {-1, -2}}, Options{})
	if err == nil {
		t.Errorf("Solve: expected error from a pre-cancelled context, got nil")
	}
}

// makeRandomSAT builds a random 3-SAT instance over numVars variables with
// numClauses clauses, in the style of the teacher's TestRandomized fuzzer.
func makeRandomSAT(rng *rand.Rand, numVars, numClauses int) [][]int {
	problem := make([][]int, numClauses)
	for i := range problem {
		cls := make([]int, 3)
		for j := range cls {
			v := rng.Intn(numVars) + 1
			if rng.Intn(2) == 0 {
				v = -v
			}
			cls[j] = v
		}
		problem[i] = cls
	}
	return problem
}

func TestRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		problem := makeRandomSAT(rng, 6, 20)
		assignment, _, sat, err := Solve(context.Background(), problem, Options{})
		if err != nil {
			t.Fatalf("trial %d: Solve: %v", trial, err)
		}
		if sat && !solutionIsValid(problem, assignment) {
			t.Fatalf("trial %d: invalid assignment %v for %v", trial, assignment, problem)
		}
	}
}
