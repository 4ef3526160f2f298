package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/internal/dpll"
)

func xorClauses(sink cnf.Sink, a, b, c cnf.Var) {
	cnf.AddAll(sink, []cnf.Clause{
		{cnf.Pos(a), cnf.Pos(b), cnf.Pos(c).Not()},
		{cnf.Pos(a), cnf.Pos(b).Not(), cnf.Pos(c)},
		{cnf.Pos(a).Not(), cnf.Pos(b), cnf.Pos(c)},
		{cnf.Pos(a).Not(), cnf.Pos(b).Not(), cnf.Pos(c).Not()},
	})
}

func TestNativeSolvesXOR(t *testing.T) {
	a := cnf.Var{Kind: "t", Label: "a"}
	b := cnf.Var{Kind: "t", Label: "b"}
	c := cnf.Var{Kind: "t", Label: "c"}

	n := NewNative(dpll.Options{})
	xorClauses(n, a, b, c)

	model, sat, err := n.Solve(context.Background(), []cnf.Lit{cnf.Pos(a), cnf.Pos(b)})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !sat {
		t.Fatal("expected satisfiable")
	}
	if model[c] {
		t.Errorf("xor(1,1) should force c=false, got %v", model[c])
	}
}

func TestNativeDetectsUnsat(t *testing.T) {
	a := cnf.Var{Kind: "t", Label: "a"}
	n := NewNative(dpll.Options{})
	n.Add(cnf.Clause{cnf.Pos(a)})
	n.Add(cnf.Clause{cnf.Pos(a).Not()})
	_, sat, err := n.Solve(context.Background(), nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sat {
		t.Fatal("expected unsatisfiable")
	}
}

func TestGiniSolvesXOR(t *testing.T) {
	a := cnf.Var{Kind: "t", Label: "a"}
	b := cnf.Var{Kind: "t", Label: "b"}
	c := cnf.Var{Kind: "t", Label: "c"}

	g := NewGini()
	xorClauses(g, a, b, c)

	model, sat, err := g.Solve(context.Background(), []cnf.Lit{cnf.Pos(a), cnf.Pos(b).Not()})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !sat {
		t.Fatal("expected satisfiable")
	}
	if !model[c] {
		t.Errorf("xor(1,0) should force c=true, got %v", model[c])
	}
}

func TestWrapBackendFailureUnwraps(t *testing.T) {
	inner := errors.New("boom")
	wrapped := WrapBackendFailure("test", inner)
	if !errors.Is(wrapped, ErrBackendFailure) {
		t.Errorf("expected errors.Is(wrapped, ErrBackendFailure)")
	}
	if !errors.Is(wrapped, inner) {
		t.Errorf("expected errors.Is(wrapped, inner)")
	}
}
