package reference

import (
	"testing"

	"github.com/lummax/switching-lattice-synth/boolfn"
)

func TestDualProductProducesConsistentGrid(t *testing.T) {
	expr, err := boolfn.Parse("a & b | ~a & ~b")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := boolfn.New(expr, nil)

	grid, err := DualProduct(fn)
	if err != nil {
		t.Fatalf("DualProduct: %v", err)
	}

	m0, n0 := fn.NaiveLatticeBounds()
	if grid.Dims.M != m0 || grid.Dims.N != n0 {
		t.Errorf("grid dims = %v, want %dx%d", grid.Dims, m0, n0)
	}
	for _, row := range grid.Cells {
		if len(row) != grid.Dims.N {
			t.Errorf("row length = %d, want %d", len(row), grid.Dims.N)
		}
		for _, cell := range row {
			if cell.Literal.Name == "" {
				t.Errorf("cell has no literal assigned: %+v", cell)
			}
		}
	}
}

func TestDualProductSingleLiteral(t *testing.T) {
	fn := boolfn.New(boolfn.Var("a"), nil)
	grid, err := DualProduct(fn)
	if err != nil {
		t.Fatalf("DualProduct: %v", err)
	}
	if grid.Dims.M != 1 || grid.Dims.N != 1 {
		t.Fatalf("grid dims = %v, want 1x1", grid.Dims)
	}
	if grid.Cells[0][0].Literal.Name != "a" || grid.Cells[0][0].Literal.Neg {
		t.Errorf("cell = %+v, want literal a", grid.Cells[0][0])
	}
}
