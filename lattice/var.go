// Package lattice provides the shared position-literal variable algebra
// and fixed clause set ("constraint base" per spec.md §4.2) that both
// lattice-validity encodings in encode/irredundant and
// encode/reachability build on: the X[i,j,l] variable naming scheme,
// 4-/8-connected neighbour enumeration, the one-hot-per-cell and
// constant-set clauses, and decoding a solved model back into a grid.
package lattice

import (
	"fmt"

	"github.com/lummax/switching-lattice-synth/boolfn"
	"github.com/lummax/switching-lattice-synth/cnf"
)

// Options controls policy decisions left open by spec.md §9.
type Options struct {
	// ForbidConstantCells, when true, adds unit clauses forbidding every
	// cell from being labelled with either constant literal, so every
	// switch in the synthesized lattice is a genuine input literal. The
	// original implementation always permits constant-labelled ("shorted")
	// cells; that remains the default (false).
	ForbidConstantCells bool
}

// Dims is a candidate lattice's height (rows) and width (columns).
type Dims struct {
	M, N int
}

// Literal is one candidate label for a cell: either a named input,
// positive or negated, or the constant TRUE/FALSE label.
type Literal struct {
	Name     string
	Neg      bool
	Constant bool // true labels the cell with the constant, ignoring Name
}

func (l Literal) String() string {
	switch {
	case l.Constant && l.Neg:
		return "FALSE"
	case l.Constant:
		return "TRUE"
	case l.Neg:
		return "~" + l.Name
	default:
		return l.Name
	}
}

// InputsPlus returns every candidate literal over a function's support
// plus the two constant literals, the alphabet every cell's X[i,j,l]
// variable ranges over.
func InputsPlus(names []string) []Literal {
	lits := make([]Literal, 0, 2*len(names)+2)
	for _, n := range names {
		lits = append(lits, Literal{Name: n, Neg: false})
		lits = append(lits, Literal{Name: n, Neg: true})
	}
	lits = append(lits, Literal{Constant: true, Neg: false})
	lits = append(lits, Literal{Constant: true, Neg: true})
	return lits
}

// PositionVar returns the cnf.Var naming X[i,j,l]: "this cell is labelled
// with literal l".
func PositionVar(i, j int, l Literal) cnf.Var {
	extra := [3]int{0, 0, 0}
	if l.Constant {
		extra[0] = 1
	}
	if l.Neg {
		extra[1] = 1
	}
	return cnf.Var{Kind: "cell", I: i, J: j, Extra: extra, Label: l.Name}
}

// ParsePositionVar is the inverse of PositionVar: given a cnf.Var of kind
// "cell", it recovers (i, j, l).
func ParsePositionVar(v cnf.Var) (i, j int, l Literal, ok bool) {
	if v.Kind != "cell" {
		return 0, 0, Literal{}, false
	}
	return v.I, v.J, Literal{
		Name:     v.Label,
		Neg:      v.Extra[1] != 0,
		Constant: v.Extra[0] != 0,
	}, true
}

// LiteralValue reports whether l evaluates true under assignment.
// Constant literals ignore the assignment.
func LiteralValue(l Literal, assignment map[string]bool) bool {
	if l.Constant {
		return !l.Neg
	}
	v := assignment[l.Name]
	if l.Neg {
		return !v
	}
	return v
}

// Cell is one position's label in a decoded lattice.
type Cell struct {
	Literal Literal
}

// Grid is a decoded m-by-n lattice, row-major, 0-indexed.
type Grid struct {
	Dims  Dims
	Cells [][]Cell
}

func (g *Grid) String() string {
	s := ""
	for _, row := range g.Cells {
		for j, c := range row {
			if j > 0 {
				s += " "
			}
			s += c.Literal.String()
		}
		s += "\n"
	}
	return s
}

// Adjacent4 returns the orthogonal (4-connected) in-bounds neighbours of
// (i,j) in an m-by-n grid (1-indexed coordinates, as in PositionVar).
func Adjacent4(i, j, m, n int) []struct{ I, J int } {
	candidates := []struct{ I, J int }{
		{i - 1, j}, {i + 1, j}, {i, j - 1}, {i, j + 1},
	}
	return filterInBounds(candidates, m, n)
}

// Adjacent8 returns the king-move (8-connected) in-bounds neighbours of
// (i,j), excluding (i,j) itself.
func Adjacent8(i, j, m, n int) []struct{ I, J int } {
	var candidates []struct{ I, J int }
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			candidates = append(candidates, struct{ I, J int }{i + di, j + dj})
		}
	}
	return filterInBounds(candidates, m, n)
}

func filterInBounds(cs []struct{ I, J int }, m, n int) []struct{ I, J int } {
	var out []struct{ I, J int }
	for _, c := range cs {
		if c.I >= 1 && c.I <= m && c.J >= 1 && c.J <= n {
			out = append(out, c)
		}
	}
	return out
}

// AssertBaseClauses streams the constant-set and one-hot-per-cell clauses
// that every encoding needs regardless of quantification strategy, and
// returns the alphabet of literals used so callers can build per-cell
// literal lists without recomputing InputsPlus repeatedly.
func AssertBaseClauses(gen *cnf.NameGen, sink cnf.Sink, dims Dims, support []string, opts Options) []Literal {
	lits := InputsPlus(support)

	sink.Add(cnf.Unit(cnf.Pos(boolfn.ConstantVar)))

	for i := 1; i <= dims.M; i++ {
		for j := 1; j <= dims.N; j++ {
			cellLits := make([]cnf.Lit, len(lits))
			for k, l := range lits {
				cellLits[k] = cnf.Pos(PositionVar(i, j, l))
			}
			AssertOneHot(gen, sink, cellLits)
			if opts.ForbidConstantCells {
				forbidConstant(sink, i, j)
			}
		}
	}
	return lits
}

func forbidConstant(sink cnf.Sink, i, j int) {
	sink.Add(cnf.Unit(cnf.Pos(PositionVar(i, j, Literal{Constant: true, Neg: false})).Not()))
	sink.Add(cnf.Unit(cnf.Pos(PositionVar(i, j, Literal{Constant: true, Neg: true})).Not()))
}

// CellLiteral returns the literal for cell (i,j) labelled l, as used by
// both the position variable and the per-input lattice-on-path auxiliary
// clauses in encode/irredundant and encode/reachability.
func CellLiteral(i, j int, l Literal) cnf.Lit {
	return cnf.Pos(PositionVar(i, j, l))
}

func (d Dims) String() string { return fmt.Sprintf("%dx%d", d.M, d.N) }
