// Package cnf provides the shared literal/clause/variable algebra used by
// every constraint-generating package in this module: structured,
// value-comparable variable names, clause construction helpers for the
// handful of Tseitin shapes the encoders need, and a per-formula auxiliary
// name generator.
package cnf

import "fmt"

// Var is a structured variable name. Two Vars are the same SAT variable iff
// they compare equal, so encoders build Vars directly instead of interning
// strings themselves; solver adapters are the only place a Var is mapped to
// a DIMACS integer. Which fields are meaningful depends on Kind; unused
// fields are left at their zero value.
type Var struct {
	Kind  string // variable family: "cell", "input", "constant", "path.pos", ...
	I, J  int    // lattice cell coordinates (1-indexed); 0 when not a cell variable
	Extra [3]int
	Label string // symbolic name, e.g. the underlying input's name
}

func (v Var) String() string {
	switch {
	case v.I != 0 || v.J != 0:
		return fmt.Sprintf("%s(%d,%d,%v,%q)", v.Kind, v.I, v.J, v.Extra, v.Label)
	case v.Label != "":
		return fmt.Sprintf("%s(%q,%v)", v.Kind, v.Label, v.Extra)
	default:
		return fmt.Sprintf("%s(%v)", v.Kind, v.Extra)
	}
}

// Lit is a variable together with its polarity.
type Lit struct {
	Var Var
	Neg bool
}

// Pos returns the positive literal of v.
func Pos(v Var) Lit { return Lit{Var: v} }

// Not returns the negation of l.
func (l Lit) Not() Lit { return Lit{Var: l.Var, Neg: !l.Neg} }

func (l Lit) String() string {
	if l.Neg {
		return "¬" + l.Var.String()
	}
	return l.Var.String()
}

// NameGen mints fresh auxiliary Vars, tagged with a monotonically
// increasing counter so that distinct calls never collide within the
// lifetime of the generator. Per spec.md §9 ("global auxiliary counter"),
// an implementation must only guarantee uniqueness within a single formula;
// callers construct a fresh NameGen per oracle invocation rather than
// sharing one across (m,n) candidates.
type NameGen struct {
	counter int
}

// NewNameGen returns a NameGen whose counter starts at zero.
func NewNameGen() *NameGen {
	return &NameGen{}
}

// Next mints a fresh Var of the given kind. index, when non-zero, is
// threaded into Extra[0] ahead of the counter (mirroring the original
// `(index, count) if index else count` naming scheme), so that two
// families of auxiliaries minted from the same counter stream stay
// distinguishable by index alone when that's all a caller needs.
func (g *NameGen) Next(kind string, index int) Var {
	g.counter++
	return Var{Kind: kind, Extra: [3]int{index, g.counter}}
}

// Tag mints a fresh, monotonically increasing tag usable to disambiguate
// an entire family of variables (e.g. the per-assignment path variables in
// the unfolded/CEGAR quantification strategies, see encode/*).
func (g *NameGen) Tag() int {
	g.counter++
	return g.counter
}
