package lattice

import (
	"testing"

	"github.com/lummax/switching-lattice-synth/cnf"
)

func TestPositionVarRoundTrips(t *testing.T) {
	lits := InputsPlus([]string{"a", "b"})
	for _, l := range lits {
		v := PositionVar(3, 5, l)
		i, j, got, ok := ParsePositionVar(v)
		if !ok {
			t.Fatalf("ParsePositionVar(%v): ok = false", v)
		}
		if i != 3 || j != 5 {
			t.Errorf("ParsePositionVar(%v) = (%d,%d,...), want (3,5,...)", v, i, j)
		}
		if got != l {
			t.Errorf("ParsePositionVar(%v) literal = %+v, want %+v", v, got, l)
		}
	}
}

func TestAdjacent4ClipsToGrid(t *testing.T) {
	got := Adjacent4(1, 1, 3, 3)
	if len(got) != 2 {
		t.Fatalf("Adjacent4(1,1,3,3) = %v, want 2 neighbours", got)
	}
}

func TestAdjacent8ExcludesSelf(t *testing.T) {
	got := Adjacent8(2, 2, 3, 3)
	if len(got) != 8 {
		t.Fatalf("Adjacent8(2,2,3,3) = %d neighbours, want 8", len(got))
	}
	for _, c := range got {
		if c.I == 2 && c.J == 2 {
			t.Fatalf("Adjacent8 included the cell itself")
		}
	}
}

func TestDecodeModelRoundTrip(t *testing.T) {
	dims := Dims{M: 2, N: 2}
	model := map[cnf.Var]bool{
		PositionVar(1, 1, Literal{Name: "a"}):               true,
		PositionVar(1, 2, Literal{Name: "a", Neg: true}):    true,
		PositionVar(2, 1, Literal{Constant: true}):          true,
		PositionVar(2, 2, Literal{Constant: true, Neg: true}): true,
	}
	grid, err := DecodeModel(dims, model)
	if err != nil {
		t.Fatalf("DecodeModel: %v", err)
	}
	if grid.Cells[0][0].Literal != (Literal{Name: "a"}) {
		t.Errorf("cell (1,1) = %+v, want a", grid.Cells[0][0].Literal)
	}
	if grid.Cells[1][1].Literal != (Literal{Constant: true, Neg: true}) {
		t.Errorf("cell (2,2) = %+v, want FALSE", grid.Cells[1][1].Literal)
	}
}

func TestDecodeModelRejectsMissingCell(t *testing.T) {
	dims := Dims{M: 1, N: 2}
	model := map[cnf.Var]bool{
		PositionVar(1, 1, Literal{Name: "a"}): true,
	}
	if _, err := DecodeModel(dims, model); err == nil {
		t.Errorf("DecodeModel: expected error for missing cell, got nil")
	}
}
