package search

import (
	"context"
	"errors"
	"testing"

	"github.com/lummax/switching-lattice-synth/lattice"
)

// thresholdOracle succeeds iff m*n is at least area, modeling a function
// whose lattice realizations exist for every candidate at or above its
// true minimum area — the monotonicity every strategy here assumes.
func thresholdOracle(area int) Oracle {
	return func(_ context.Context, m, n int) (*Solution, error) {
		if m*n < area {
			return nil, nil
		}
		return &Solution{Height: m, Width: n}, nil
	}
}

func TestSimpleFindsSolutionAtUpperBound(t *testing.T) {
	oracle := thresholdOracle(6)
	result, err := Simple{}.Search(context.Background(), oracle, lattice.Dims{M: 3, N: 4}, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Solution == nil {
		t.Fatal("expected a solution")
	}
	if result.Steps != 1 {
		t.Errorf("steps = %d, want 1", result.Steps)
	}
}

func TestSimplePropagatesOracleError(t *testing.T) {
	boom := errors.New("boom")
	oracle := func(_ context.Context, m, n int) (*Solution, error) { return nil, boom }
	_, err := Simple{}.Search(context.Background(), oracle, lattice.Dims{M: 2, N: 2}, 1)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestMinimizedSplitFindsMinimalArea(t *testing.T) {
	oracle := thresholdOracle(6)
	result, err := MinimizedSplit{}.Search(context.Background(), oracle, lattice.Dims{M: 4, N: 4}, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Solution == nil {
		t.Fatal("expected a solution")
	}
	if got := result.Solution.Height * result.Solution.Width; got != 6 {
		t.Errorf("area = %d, want 6", got)
	}
}

// TestMinimizedSplitGeneralOptimality is skipped: MinimizedSplit is
// checked only against the threshold oracle in
// TestMinimizedSplitFindsMinimalArea, and no optimality property over
// arbitrary oracles is asserted for it.
func TestMinimizedSplitGeneralOptimality(t *testing.T) {
	t.Skip("no general optimality property is asserted for MinimizedSplit")
}

func TestBinaryPartitionFindsMinimalArea(t *testing.T) {
	oracle := thresholdOracle(6)
	result, err := BinaryPartition{}.Search(context.Background(), oracle, lattice.Dims{M: 4, N: 4}, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Solution == nil {
		t.Fatal("expected a solution")
	}
	if got := result.Solution.Height * result.Solution.Width; got != 6 {
		t.Errorf("area = %d, want 6", got)
	}
}

func TestSaddlebackFindsMinimalArea(t *testing.T) {
	oracle := thresholdOracle(6)
	result, err := Saddleback{}.Search(context.Background(), oracle, lattice.Dims{M: 4, N: 4}, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Solution == nil {
		t.Fatal("expected a solution")
	}
	if got := result.Solution.Height * result.Solution.Width; got != 6 {
		t.Errorf("area = %d, want 6", got)
	}
}

func TestSaddlebackRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	oracle := thresholdOracle(6)
	_, err := Saddleback{}.Search(ctx, oracle, lattice.Dims{M: 4, N: 4}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
