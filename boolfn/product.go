package boolfn

import "sort"

// Literal is one signed occurrence of a variable inside a product term.
type Literal struct {
	Name string
	Neg  bool
}

// Product is a sum of products (disjunctive normal form): each inner slice
// is a conjunction of Literals, and the Product is their disjunction. An
// irredundant sum-of-products (ISOP) is a Product with no product implying
// another and no literal removable from any product without changing the
// function, which is the form boolfn.Minimizer implementations are
// expected to return.
type Product [][]Literal

// ToExpr renders p back into an Expr tree (Or-of-Ands), so a Product can be
// fed anywhere an *Expr is expected, e.g. ToCNF.
func (p Product) ToExpr() *Expr {
	if len(p) == 0 {
		return Const(false)
	}
	terms := make([]*Expr, len(p))
	for i, term := range p {
		terms[i] = literalsToExpr(term)
	}
	return Or(terms...)
}

func literalsToExpr(term []Literal) *Expr {
	if len(term) == 0 {
		return Const(true)
	}
	lits := make([]*Expr, len(term))
	for i, l := range term {
		v := Expr(*Var(l.Name))
		if l.Neg {
			lits[i] = Not(&v)
		} else {
			lits[i] = &v
		}
	}
	return And(lits...)
}

// Dual swaps AND for OR at every level of p's underlying Or-of-Ands
// structure and complements no literals: for a Product already in
// disjunctive normal form, the textbook product-of-sums dual is built by
// treating each product as a sum and each sum as a product, i.e. simply
// exchanging the sum-of-products reading for a product-of-sums one. Since
// this package keeps every function in SOP form, Dual returns the SOP of
// f* by De Morgan expansion: f*(x) = ~f(~x1,...,~xn).
func Dual(p Product) Product {
	e := p.ToExpr()
	names := Inputs(e)
	complemented := make(map[string]*Expr, len(names))
	for _, n := range names {
		v := Expr(*Var(n))
		complemented[n] = Not(&v)
	}
	dualExpr := Not(substitute(e, complemented))
	return Isop(dualExpr)
}

func substitute(e *Expr, by map[string]*Expr) *Expr {
	switch e.Kind {
	case KindConst:
		return Const(e.Value)
	case KindVar:
		if r, ok := by[e.Name]; ok {
			return r
		}
		return Var(e.Name)
	case KindNot:
		return Not(substitute(e.Children[0], by))
	case KindAnd:
		children := make([]*Expr, len(e.Children))
		for i, c := range e.Children {
			children[i] = substitute(c, by)
		}
		return And(children...)
	case KindOr:
		children := make([]*Expr, len(e.Children))
		for i, c := range e.Children {
			children[i] = substitute(c, by)
		}
		return Or(children...)
	default:
		return e
	}
}

// sortProduct canonicalizes term and literal order so two equal Products
// compare equal regardless of construction order; Isop applies it to the
// cover it returns.
func sortProduct(p Product) Product {
	out := make(Product, len(p))
	for i, term := range p {
		t := append([]Literal(nil), term...)
		sort.Slice(t, func(a, b int) bool {
			if t[a].Name != t[b].Name {
				return t[a].Name < t[b].Name
			}
			return !t[a].Neg && t[b].Neg
		})
		out[i] = t
	}
	sort.Slice(out, func(a, b int) bool {
		return termKey(out[a]) < termKey(out[b])
	})
	return out
}

func termKey(term []Literal) string {
	s := ""
	for _, l := range term {
		if l.Neg {
			s += "~"
		}
		s += l.Name + ","
	}
	return s
}
