// Package reference implements spec.md §6's reference construction: the
// classical Dual Product (Shannon/dual-ISOP) synthesis that produces a
// correct, if not area-minimal, lattice directly from a Function's two
// covers, with no SAT solving at all. It exists to sanity-check the SAT-
// based encoders against a construction whose correctness doesn't depend
// on CNF generation, and to seed --print-reference. Grounded in the
// original's synth.dp_construction.DualProductConstruction: every product
// of F's ISOP becomes a column, every product of F*'s ISOP becomes a row,
// and cell (row, column) is labelled with any literal the two products
// share (duality guarantees at least one always exists).
package reference

import (
	"fmt"
	"sort"

	"github.com/lummax/switching-lattice-synth/boolfn"
	"github.com/lummax/switching-lattice-synth/lattice"
)

// DualProduct builds the m×n grid directly from fn's ISOP (columns) and
// dual ISOP (rows), where m = len(dual ISOP) and n = len(ISOP), matching
// fn.NaiveLatticeBounds().
func DualProduct(fn *boolfn.Function) (*lattice.Grid, error) {
	columns := fn.ISOP()
	rows := fn.Dual()

	grid := &lattice.Grid{
		Dims:  lattice.Dims{M: len(rows), N: len(columns)},
		Cells: make([][]lattice.Cell, len(rows)),
	}
	for i, row := range rows {
		grid.Cells[i] = make([]lattice.Cell, len(columns))
		for j, column := range columns {
			shared, ok := sharedLiteral(row, column)
			if !ok {
				return nil, fmt.Errorf("reference: row %d and column %d share no literal", i, j)
			}
			grid.Cells[i][j] = lattice.Cell{Literal: lattice.Literal{Name: shared.Name, Neg: shared.Neg}}
		}
	}
	return grid, nil
}

// sharedLiteral returns the literal row and column terms have in common,
// deterministically picking the lexicographically smallest one when more
// than one qualifies (the original picks whichever next(iter(...)) hands
// it, an arbitrary but fixed choice; determinism here just makes this
// package's output reproducible run to run).
func sharedLiteral(row, column []boolfn.Literal) (boolfn.Literal, bool) {
	inRow := make(map[boolfn.Literal]bool, len(row))
	for _, l := range row {
		inRow[l] = true
	}
	var candidates []boolfn.Literal
	for _, l := range column {
		if inRow[l] {
			candidates = append(candidates, l)
		}
	}
	if len(candidates) == 0 {
		return boolfn.Literal{}, false
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].Name != candidates[b].Name {
			return candidates[a].Name < candidates[b].Name
		}
		return !candidates[a].Neg && candidates[b].Neg
	})
	return candidates[0], true
}
