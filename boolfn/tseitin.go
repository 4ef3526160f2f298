package boolfn

import "github.com/lummax/switching-lattice-synth/cnf"

// InputVar returns the cnf.Var naming the Boolean input x in every place
// this module needs to refer to "the literal of input x", e.g. the lattice
// position-literal variables' Label field and the antecedent variables
// Tseitin expansion below builds from.
func InputVar(name string) cnf.Var {
	return cnf.Var{Kind: "input", Label: name}
}

// ConstantVar is the distinguished "constant" variable spec.md §3 calls
// for: the positive literal is pinned true by a unit clause wherever a
// formula needs a source of TRUE, and its negation stands for the
// constant FALSE literal.
var ConstantVar = cnf.Var{Kind: "constant"}

// ToCNF performs a Tseitin transformation of e, streaming the defining
// clauses of every introduced auxiliary into sink and returning the
// literal equivalent to e's truth value. gen mints the auxiliary
// variables, so callers share one gen across every expression folded into
// the same formula.
func ToCNF(e *Expr, gen *cnf.NameGen, sink cnf.Sink) cnf.Lit {
	switch e.Kind {
	case KindConst:
		if e.Value {
			return cnf.Pos(ConstantVar)
		}
		return cnf.Pos(ConstantVar).Not()
	case KindVar:
		return cnf.Pos(InputVar(e.Name))
	case KindNot:
		return ToCNF(e.Children[0], gen, sink).Not()
	case KindAnd:
		lits := make([]cnf.Lit, len(e.Children))
		for i, c := range e.Children {
			lits[i] = ToCNF(c, gen, sink)
		}
		aux := cnf.Pos(gen.Next("tseitin.and", 0))
		cnf.AddAll(sink, cnf.IffAnd(aux, lits...))
		return aux
	case KindOr:
		lits := make([]cnf.Lit, len(e.Children))
		for i, c := range e.Children {
			lits[i] = ToCNF(c, gen, sink)
		}
		aux := cnf.Pos(gen.Next("tseitin.or", 0))
		cnf.AddAll(sink, cnf.IffOr(aux, lits...))
		return aux
	default:
		panic("boolfn: ToCNF: unknown expression kind")
	}
}

// AssertConstantTrue streams the unit clause pinning ConstantVar true.
// Every formula that uses ConstantVar (directly or via ToCNF on an
// expression containing a literal constant) must include this once.
func AssertConstantTrue(sink cnf.Sink) {
	sink.Add(cnf.Unit(cnf.Pos(ConstantVar)))
}
