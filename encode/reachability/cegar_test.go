package reachability

import (
	"context"
	"testing"

	"github.com/lummax/switching-lattice-synth/boolfn"
	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/internal/dpll"
	"github.com/lummax/switching-lattice-synth/lattice"
	"github.com/lummax/switching-lattice-synth/solver"
)

func TestRunCegarSolvesSingleLiteralOnSingleCell(t *testing.T) {
	fn := boolfn.New(boolfn.Var("a"), nil)
	dims := lattice.Dims{M: 1, N: 1}

	gen := cnf.NewNameGen()
	refining := solver.NewNative(dpll.Options{})
	counterexample := solver.NewNative(dpll.Options{})

	result, sat, err := RunCegar(context.Background(), gen, refining, counterexample, dims, fn, lattice.Options{})
	if err != nil {
		t.Fatalf("RunCegar: %v", err)
	}
	if !sat {
		t.Fatal("a single input literal should be realizable on a 1x1 lattice")
	}
	if result.Model == nil {
		t.Fatal("expected a non-nil model on success")
	}
}

func TestRunCegarRejectsTwoVariableFunctionOnSingleCell(t *testing.T) {
	fn := boolfn.New(boolfn.And(boolfn.Var("a"), boolfn.Var("b")), nil)
	dims := lattice.Dims{M: 1, N: 1}

	gen := cnf.NewNameGen()
	refining := solver.NewNative(dpll.Options{})
	counterexample := solver.NewNative(dpll.Options{})

	_, sat, err := RunCegar(context.Background(), gen, refining, counterexample, dims, fn, lattice.Options{})
	if err != nil {
		t.Fatalf("RunCegar: %v", err)
	}
	if sat {
		t.Fatal("a two-variable function cannot fit on a single switching cell")
	}
}

func TestRoundsBound(t *testing.T) {
	tests := []struct {
		dims lattice.Dims
		want int
	}{
		{lattice.Dims{M: 1, N: 1}, 0},
		{lattice.Dims{M: 2, N: 2}, 2},
		{lattice.Dims{M: 3, N: 3}, 4},
	}
	for _, tt := range tests {
		if got := Rounds(tt.dims); got != tt.want {
			t.Errorf("Rounds(%v) = %d, want %d", tt.dims, got, tt.want)
		}
	}
}
