// Package reachability implements spec.md §4.4's reachability encoding:
// an alternative to encode/irredundant's explicit path variables that
// replaces the path-shape clauses with BFS-round reachability, which
// unfolds more cleanly under Cegar's propositional counterexample
// solver. Active/inactive switch variables S+[i,j]/S-[i,j] play the role
// encode/irredundant's P[i,j]/N[i,j] play directly (a cell's label
// evaluated under the current inputs); per-round reachability variables
// R+[i,j,r]/R-[i,j,r] then propagate from the top row / left column
// outward over at most floor(m*n/2) rounds.
package reachability

import (
	"fmt"

	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/lattice"
)

// InputLit resolves what "input x is true" means for the clauses in this
// file, mirroring encode/irredundant.InputLit: a genuine solver variable
// under QBF quantification, or a literal pinned to a concrete assignment
// under Unfolded/Cegar.
type InputLit func(name string) cnf.Lit

func activeVar(i, j, tag int) cnf.Var   { return cnf.Var{Kind: "switch.pos", I: i, J: j, Extra: [3]int{tag}} }
func inactiveVar(i, j, tag int) cnf.Var { return cnf.Var{Kind: "switch.neg", I: i, J: j, Extra: [3]int{tag}} }
func reachPosVar(i, j, r, tag int) cnf.Var {
	return cnf.Var{Kind: "reach.pos", I: i, J: j, Extra: [3]int{r, tag}}
}
func reachNegVar(i, j, r, tag int) cnf.Var {
	return cnf.Var{Kind: "reach.neg", I: i, J: j, Extra: [3]int{r, tag}}
}

// ActiveVar and InactiveVar return the cnf.Lit for S+[i,j]/S-[i,j] under
// the given tag.
func ActiveVar(i, j, tag int) cnf.Lit   { return cnf.Pos(activeVar(i, j, tag)) }
func InactiveVar(i, j, tag int) cnf.Lit { return cnf.Pos(inactiveVar(i, j, tag)) }

// ReachPosVar and ReachNegVar return the cnf.Lit for R+[i,j,r]/R-[i,j,r]
// under the given tag.
func ReachPosVar(i, j, r, tag int) cnf.Lit { return cnf.Pos(reachPosVar(i, j, r, tag)) }
func ReachNegVar(i, j, r, tag int) cnf.Lit { return cnf.Pos(reachNegVar(i, j, r, tag)) }

// Rounds reports the round bound floor(m*n/2) a dims candidate needs.
func Rounds(dims lattice.Dims) int { return (dims.M * dims.N) / 2 }

// Build streams every reachability-encoding clause for one (m,n)
// candidate and one quantification instance into sink, mirroring
// encode/irredundant.Build's shape.
func Build(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, support []string, tag int, inputLit InputLit, fLit cnf.Lit) {
	BuildStructure(gen, sink, dims, support, tag, inputLit)
	BuildFunctionImplication(sink, dims, tag, fLit)
}

// BuildStructure asserts the switch-label and round-by-round reachability
// clauses, independent of what f(x) evaluates to. Cegar's counterexample
// formula reuses this on its own via BuildCounterexample, paired with
// BuildCounterexampleImplication instead of BuildFunctionImplication, the
// same way encode/irredundant.BuildStructure does.
func BuildStructure(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, support []string, tag int, inputLit InputLit) {
	assertSwitch(gen, sink, dims, support, tag, inputLit, true)
	assertSwitch(gen, sink, dims, support, tag, inputLit, false)
	assertReachability(sink, dims, tag, true)
	assertReachability(sink, dims, tag, false)
}

// BuildFunctionImplication asserts the terminal implications:
// f(x) => exists an active, reached bottom-row cell (positive), and
// ¬f(x) => exists an active, reached rightmost-column cell (negative).
func BuildFunctionImplication(sink cnf.Sink, dims lattice.Dims, tag int, fLit cnf.Lit) {
	sink.Add(cnf.ImplyOr(fLit, TerminalPositiveLits(sink, dims, tag)...))
	sink.Add(cnf.ImplyOr(fLit.Not(), TerminalNegativeLits(sink, dims, tag)...))
}

// BuildCounterexampleImplication asserts the dual of
// BuildFunctionImplication: f(x) => exists a reached right-column
// negative terminal, ¬f(x) => exists a reached bottom-row positive
// terminal. Cegar's counterexample solver needs this swapped polarity so
// it is SAT exactly when some input breaks the candidate labelling.
func BuildCounterexampleImplication(sink cnf.Sink, dims lattice.Dims, tag int, fLit cnf.Lit) {
	sink.Add(cnf.ImplyOr(fLit, TerminalNegativeLits(sink, dims, tag)...))
	sink.Add(cnf.ImplyOr(fLit.Not(), TerminalPositiveLits(sink, dims, tag)...))
}

// BuildCounterexample streams BuildStructure plus
// BuildCounterexampleImplication, the counterexample-solver counterpart
// to Build.
func BuildCounterexample(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, support []string, tag int, inputLit InputLit, fLit cnf.Lit) {
	BuildStructure(gen, sink, dims, support, tag, inputLit)
	BuildCounterexampleImplication(sink, dims, tag, fLit)
}

// TerminalPositiveLits and TerminalNegativeLits expose the literal lists
// BuildFunctionImplication and BuildCounterexampleImplication disjoin
// over: the (S+[m,j] ∧ R+[m,j,rounds]) auxiliaries for every bottom-row
// column, and the (S-[i,n] ∧ R-[i,n,rounds]) auxiliaries for every
// right-column row. Each call streams the Tseitin auxiliaries it needs
// into sink, mirroring encode/irredundant.BottomRowLits/RightColLits.
func TerminalPositiveLits(sink cnf.Sink, dims lattice.Dims, tag int) []cnf.Lit {
	rounds := Rounds(dims)
	out := make([]cnf.Lit, dims.N)
	for j := 1; j <= dims.N; j++ {
		out[j-1] = andPair(sink, ActiveVar(dims.M, j, tag), ReachPosVar(dims.M, j, rounds, tag))
	}
	return out
}

func TerminalNegativeLits(sink cnf.Sink, dims lattice.Dims, tag int) []cnf.Lit {
	rounds := Rounds(dims)
	out := make([]cnf.Lit, dims.M)
	for i := 1; i <= dims.M; i++ {
		out[i-1] = andPair(sink, InactiveVar(i, dims.N, tag), ReachNegVar(i, dims.N, rounds, tag))
	}
	return out
}

// andPair streams a fresh auxiliary <=> (a ∧ b), via a 2-ary NameGen-free
// Tseitin pair (no fresh-name counter needed for a fixed (i,j,r,tag)
// combination: the auxiliary is keyed directly on that combination, so
// repeated Build calls for the same tag never collide and never need a
// counter).
func andPair(sink cnf.Sink, a, b cnf.Lit) cnf.Lit {
	aux := cnf.Pos(cnf.Var{
		Kind:  "reach.and.aux",
		I:     a.Var.I,
		J:     a.Var.J,
		Extra: a.Var.Extra,
		Label: fmt.Sprintf("%s|%s", a.Var.Kind, b.Var.Kind),
	})
	cnf.AddAll(sink, []cnf.Clause{
		cnf.Imply(aux, a),
		cnf.Imply(aux, b),
		cnf.ConjImply([]cnf.Lit{a, b}, aux),
	})
	return aux
}

// assertSwitch asserts S+[i,j]/S-[i,j] via the same "per-input auxiliary,
// plus constant literal" construction encode/irredundant.assertLatticeOnPath
// uses for P/N: the switch variable is active only if its cell's label
// evaluates true (positive) or false (negative) under the current inputs.
func assertSwitch(gen *cnf.NameGen, sink cnf.Sink, dims lattice.Dims, support []string, tag int, inputLit InputLit, positive bool) {
	for i := 1; i <= dims.M; i++ {
		for j := 1; j <= dims.N; j++ {
			var disjuncts []cnf.Lit
			for _, name := range support {
				posCell := lattice.CellLiteral(i, j, lattice.Literal{Name: name})
				negCell := lattice.CellLiteral(i, j, lattice.Literal{Name: name, Neg: true})
				in := inputLit(name)
				aux := cnf.Pos(gen.Next(switchAuxKind(positive), 0))
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

			var switchVar cnf.Lit
			if positive {
				switchVar = ActiveVar(i, j, tag)
			} else {
				switchVar = InactiveVar(i, j, tag)
			}
			sink.Add(cnf.ImplyOr(switchVar, disjuncts...))
		}
	}
}

func switchAuxKind(positive bool) string {
	if positive {
		return "switch.pos.aux"
	}
	return "switch.neg.aux"
}

// assertReachability asserts round 0's fixed sources (row 1 for
// positive, column 1 for negative) and the per-round step implication.
// The general 4-/8-adjacency step formula already degenerates correctly
// for m=1 or n=1: lattice.Adjacent4/Adjacent8 clip to the grid bounds, so
// a single row or column simply has fewer neighbours to spread through,
// which is exactly the "collapse to a direct reachability" and "monotone
// reach along the line" spec.md §4.4 calls for in the degenerate case.
func assertReachability(sink cnf.Sink, dims lattice.Dims, tag int, positive bool) {
	m, n := dims.M, dims.N
	rounds := Rounds(dims)

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			var source bool
			if positive {
				source = i == 1
			} else {
				source = j == 1
			}
			var r0 cnf.Lit
			if positive {
				r0 = ReachPosVar(i, j, 0, tag)
			} else {
				r0 = ReachNegVar(i, j, 0, tag)
			}
			if source {
				sink.Add(cnf.Unit(r0))
			} else {
				sink.Add(cnf.Unit(r0.Not()))
			}
		}
	}

	for r := 1; r <= rounds; r++ {
		for i := 1; i <= m; i++ {
			for j := 1; j <= n; j++ {
				var self, prevSelf cnf.Lit
				var neighbours []struct{ I, J int }
				var switchAt func(i, j int) cnf.Lit
				if positive {
					self = ReachPosVar(i, j, r, tag)
					prevSelf = ReachPosVar(i, j, r-1, tag)
					neighbours = lattice.Adjacent4(i, j, m, n)
					switchAt = func(i, j int) cnf.Lit { return ActiveVar(i, j, tag) }
				} else {
					self = ReachNegVar(i, j, r, tag)
					prevSelf = ReachNegVar(i, j, r-1, tag)
					neighbours = lattice.Adjacent8(i, j, m, n)
					switchAt = func(i, j int) cnf.Lit { return InactiveVar(i, j, tag) }
				}

				pairs := make([][2]cnf.Lit, 0, len(neighbours))
				for _, c := range neighbours {
					var prevNeighbour cnf.Lit
					if positive {
						prevNeighbour = ReachPosVar(c.I, c.J, r-1, tag)
					} else {
						prevNeighbour = ReachNegVar(c.I, c.J, r-1, tag)
					}
					pairs = append(pairs, [2]cnf.Lit{prevNeighbour, switchAt(c.I, c.J)})
				}
				sink.Add(cnf.ImplyOr(self, append([]cnf.Lit{prevSelf}, conjoinedOr(sink, pairs)...)...))
			}
		}
	}
}

// conjoinedOr streams a fresh auxiliary per (prevNeighbour ∧ switch) pair
// and returns their literals, so the caller can OR them together with a
// single ImplyOr instead of needing ImplyOrOfConjunctions' full
// distribution (the step relation is one implication, not an iff, so
// each disjunct only needs a one-directional <= encoding).
func conjoinedOr(sink cnf.Sink, pairs [][2]cnf.Lit) []cnf.Lit {
	out := make([]cnf.Lit, len(pairs))
	for i, p := range pairs {
		out[i] = andPair(sink, p[0], p[1])
	}
	return out
}
