// Package irredundant implements spec.md §4.3's irredundant lattice
// encoding: explicit path variables P[i,j] (positive path, top to bottom)
// and N[i,j] (negative path, left to right), asserted directly rather
// than via reachability rounds. The three quantification strategies
// (§4.3/§4.5/§4.6) share this file's clause-building code, differing only
// in how the per-input "is this input true under the current
// assignment(s)" literal and the function-value literal are supplied — see
// BuildQBF and BuildUnfolded in quantify.go and RunCegar in cegar.go.
package irredundant

import (
	"github.com/lummax/switching-lattice-synth/cardinality"
	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/lattice"
)

// InputLit resolves what "input x is true" means for the clauses in this
// file: a genuine solver variable under QBF quantification, or a literal
// pinned to boolfn.ConstantVar's polarity when the caller has already
// fixed an assignment (Unfolded/Cegar).
type InputLit func(name string) cnf.Lit

func positiveVar(i, j, tag int) cnf.Var { return cnf.Var{Kind: "path.pos", I: i, J: j, Extra: [3]int{tag}} }
func negativeVar(i, j, tag int) cnf.Var { return cnf.Var{Kind: "path.neg", I: i, J: j, Extra: [3]int{tag}} }

// PositiveVar returns the cnf.Lit for P[i,j] under the given tag (0 for a
// single QBF formula, an assignment index for Unfolded/Cegar).
func PositiveVar(i, j, tag int) cnf.Lit { return cnf.Pos(positiveVar(i, j, tag)) }

// NegativeVar returns the cnf.Lit for N[i,j] under the given tag.
func NegativeVar(i, j, tag int) cnf.Lit { return cnf.Pos(negativeVar(i, j, tag)) }

// Build streams every irredundant-encoding clause for one (m,n) candidate
// and one quantification instance (tag distinguishes repeated calls, e.g.
// once per Unfolded assignment) into sink. Callers must have already
// streamed lattice.AssertBaseClauses once per (m,n) (it does not depend on
// tag or inputLit). fLit must be the literal for f(x)'s truth value under
// whatever inputLit resolves to.
func Build(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, support []string, tag int, inputLit InputLit, fLit cnf.Lit) {
	BuildStructure(gen, sink, dims, support, tag, inputLit)
	BuildFunctionImplication(sink, dims, tag, fLit)
}

// BuildStructure asserts the lattice-on-path and path-shape clauses only
// (no function implication): the part of the encoding that depends only
// on the candidate labelling and the current input resolution, not on
// what f(x) evaluates to. Cegar's counterexample formula reuses this
// piece on its own via BuildCounterexample, which pairs it with
// BuildCounterexampleImplication instead of BuildFunctionImplication's
// unconditional implications.
func BuildStructure(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, support []string, tag int, inputLit InputLit) {
	assertLatticeOnPath(gen, sink, dims, support, tag, inputLit, true)
	assertLatticeOnPath(gen, sink, dims, support, tag, inputLit, false)
	assertPositiveShape(gen, sink, dims, tag)
	assertNegativeShape(gen, sink, dims, tag)
}

// BuildFunctionImplication asserts f(x) => exists-positive-path and
// ¬f(x) => exists-negative-path for the given tag.
func BuildFunctionImplication(sink cnf.Sink, dims lattice.Dims, tag int, fLit cnf.Lit) {
	var bottomRow []cnf.Lit
	for j := 1; j <= dims.N; j++ {
		bottomRow = append(bottomRow, PositiveVar(dims.M, j, tag))
	}
	sink.Add(cnf.ImplyOr(fLit, bottomRow...))

	var rightCol []cnf.Lit
	for i := 1; i <= dims.M; i++ {
		rightCol = append(rightCol, NegativeVar(i, dims.N, tag))
	}
	sink.Add(cnf.ImplyOr(fLit.Not(), rightCol...))
}

// BuildCounterexampleImplication asserts the dual of
// BuildFunctionImplication: f(x) => exists-negative-path and ¬f(x) =>
// exists-positive-path. Cegar's counterexample solver needs this swapped
// polarity rather than BuildFunctionImplication's, since it must be SAT
// exactly when some input breaks the candidate labelling: f(x) true but
// only the negative path survives, or f(x) false but only the positive
// path survives.
func BuildCounterexampleImplication(sink cnf.Sink, dims lattice.Dims, tag int, fLit cnf.Lit) {
	sink.Add(cnf.ImplyOr(fLit, RightColLits(dims, tag)...))
	sink.Add(cnf.ImplyOr(fLit.Not(), BottomRowLits(dims, tag)...))
}

// BuildCounterexample streams BuildStructure plus
// BuildCounterexampleImplication, the counterexample-solver counterpart
// to Build.
func BuildCounterexample(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, support []string, tag int, inputLit InputLit, fLit cnf.Lit) {
	BuildStructure(gen, sink, dims, support, tag, inputLit)
	BuildCounterexampleImplication(sink, dims, tag, fLit)
}

// BottomRowLits and RightColLits expose the literal lists
// BuildFunctionImplication and BuildCounterexampleImplication disjoin
// over.
func BottomRowLits(dims lattice.Dims, tag int) []cnf.Lit {
	out := make([]cnf.Lit, dims.N)
	for j := 1; j <= dims.N; j++ {
		out[j-1] = PositiveVar(dims.M, j, tag)
	}
	return out
}

func RightColLits(dims lattice.Dims, tag int) []cnf.Lit {
	out := make([]cnf.Lit, dims.M)
	for i := 1; i <= dims.M; i++ {
		out[i-1] = NegativeVar(i, dims.N, tag)
	}
	return out
}

// assertLatticeOnPath asserts, for every cell, the per-input auxiliaries
// whose disjunction the path variable implies: P[i,j] => "cell's label
// evaluates true under the current inputs" for positive, or the
// complementary condition for negative.
func assertLatticeOnPath(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, support []string, tag int, inputLit InputLit, positive bool) {
	for i := 1; i <= dims.M; i++ {
		for j := 1; j <= dims.N; j++ {
			var disjuncts []cnf.Lit
			for _, name := range support {
				posCell := lattice.CellLiteral(i, j, lattice.Literal{Name: name})
				negCell := lattice.CellLiteral(i, j, lattice.Literal{Name: name, Neg: true})
				in := inputLit(name)
				aux := cnf.Pos(gen.Next(auxKind(positive), 0))
				var pairs [2][2]cnf.Lit
				if positive {
					pairs = [2][2]cnf.Lit{{posCell, in}, {negCell, in.Not()}}
				} else {
					pairs = [2][2]cnf.Lit{{posCell, in.Not()}, {negCell, in}}
				}
				cnf.AddAll(sink, cnf.ImplyOrOfConjunctions(aux, pairs[0], pairs[1]))
				disjuncts = append(disjuncts, aux)
			}
			var constLit cnf.Lit
			if positive {
				constLit = lattice.CellLiteral(i, j, lattice.Literal{Constant: true})
			} else {
				constLit = lattice.CellLiteral(i, j, lattice.Literal{Constant: true, Neg: true})
			}
			disjuncts = append(disjuncts, constLit)

			var pathVar cnf.Lit
			if positive {
				pathVar = PositiveVar(i, j, tag)
			} else {
				pathVar = NegativeVar(i, j, tag)
			}
			sink.Add(cnf.ImplyOr(pathVar, disjuncts...))
		}
	}
}

func auxKind(positive bool) string {
	if positive {
		return "path.pos.aux"
	}
	return "path.neg.aux"
}

// assertPositiveShape asserts the positive path's top-to-bottom shape:
// at most one entry in row 1, at most one exit in row m, each boundary
// row's active cell forcing its vertical neighbour, and every interior
// row's active cell forcing exactly two 4-adjacent active neighbours. For
// m=1, the shape has no additional structure beyond the single at-most-one
// row (both "enter" and "exit" are the same row).
func assertPositiveShape(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, tag int) {
	m, n := dims.M, dims.N

	topRow := rowLits(n, func(j int) cnf.Lit { return PositiveVar(1, j, tag) })
	cardinality.AtMost(gen, sink, topRow, 1)
	if m == 1 {
		return
	}
	bottomRow := rowLits(n, func(j int) cnf.Lit { return PositiveVar(m, j, tag) })
	cardinality.AtMost(gen, sink, bottomRow, 1)

	for j := 1; j <= n; j++ {
		sink.Add(cnf.Imply(PositiveVar(1, j, tag), PositiveVar(2, j, tag)))
		sink.Add(cnf.Imply(PositiveVar(m, j, tag), PositiveVar(m-1, j, tag)))
	}

	for i := 2; i <= m-1; i++ {
		for j := 1; j <= n; j++ {
			neighbours := lattice.Adjacent4(i, j, m, n)
			lits := make([]cnf.Lit, len(neighbours))
			for k, c := range neighbours {
				lits[k] = PositiveVar(c.I, c.J, tag)
			}
			assertEqualsReifiedOnSelf(gen, sink, lits, 2, PositiveVar(i, j, tag))
		}
	}
}

// assertNegativeShape mirrors assertPositiveShape for the left-to-right
// negative path, using 8-adjacency for interior cells.
func assertNegativeShape(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, tag int) {
	m, n := dims.M, dims.N

	leftCol := colLits(m, func(i int) cnf.Lit { return NegativeVar(i, 1, tag) })
	cardinality.AtMost(gen, sink, leftCol, 1)
	if n == 1 {
		return
	}
	rightCol := colLits(m, func(i int) cnf.Lit { return NegativeVar(i, n, tag) })
	cardinality.AtMost(gen, sink, rightCol, 1)

	for i := 1; i <= m; i++ {
		sink.Add(cnf.Imply(NegativeVar(i, 1, tag), NegativeVar(i, 2, tag)))
		sink.Add(cnf.Imply(NegativeVar(i, n, tag), NegativeVar(i, n-1, tag)))
	}

	for j := 2; j <= n-1; j++ {
		for i := 1; i <= m; i++ {
			neighbours := lattice.Adjacent8(i, j, m, n)
			lits := make([]cnf.Lit, len(neighbours))
			for k, c := range neighbours {
				lits[k] = NegativeVar(c.I, c.J, tag)
			}
			assertEqualsReifiedOnSelf(gen, sink, lits, 2, NegativeVar(i, j, tag))
		}
	}
}

// assertEqualsReifiedOnSelf asserts self <=> "exactly k of lits are true",
// the "equals(neighbours,k) reified" pattern spec.md §4.3 calls for,
// reified directly onto the cell's own path variable rather than a fresh
// auxiliary.
func assertEqualsReifiedOnSelf(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, k int, self cnf.Lit) {
	eq := cardinality.EqualsReified(gen, sink, lits, k)
	cnf.AddAll(sink, cnf.Iff(self, eq))
}

func rowLits(n int, at func(j int) cnf.Lit) []cnf.Lit {
	out := make([]cnf.Lit, n)
	for j := 1; j <= n; j++ {
		out[j-1] = at(j)
	}
	return out
}

func colLits(m int, at func(i int) cnf.Lit) []cnf.Lit {
	out := make([]cnf.Lit, m)
	for i := 1; i <= m; i++ {
		out[i-1] = at(i)
	}
	return out
}
