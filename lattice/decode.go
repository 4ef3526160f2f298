package lattice

import (
	"fmt"

	"github.com/lummax/switching-lattice-synth/cnf"
)

// DecodeModel builds a Grid from a solved model (the set of variables the
// solver reports true), per spec.md §4.2: iterate the model entries
// mapping X[i,j,l]=TRUE and fill cell (i-1,j-1) with l.
func DecodeModel(dims Dims, model map[cnf.Var]bool) (*Grid, error) {
	grid := &Grid{Dims: dims, Cells: make([][]Cell, dims.M)}
	for i := range grid.Cells {
		grid.Cells[i] = make([]Cell, dims.N)
	}
	filled := make([][]bool, dims.M)
	for i := range filled {
		filled[i] = make([]bool, dims.N)
	}

	for v, true_ := range model {
		if !true_ {
			continue
		}
		i, j, l, ok := ParsePositionVar(v)
		if !ok {
			continue
		}
		if i < 1 || i > dims.M || j < 1 || j > dims.N {
			continue
		}
		if filled[i-1][j-1] {
			return nil, fmt.Errorf("lattice: DecodeModel: cell (%d,%d) has more than one true label (one-hot violated)", i, j)
		}
		grid.Cells[i-1][j-1] = Cell{Literal: l}
		filled[i-1][j-1] = true
	}

	for i := 1; i <= dims.M; i++ {
		for j := 1; j <= dims.N; j++ {
			if !filled[i-1][j-1] {
				return nil, fmt.Errorf("lattice: DecodeModel: cell (%d,%d) has no true label", i, j)
			}
		}
	}
	return grid, nil
}
