// Package boolfn models single-output Boolean functions: parsing them from
// an expression grammar or a PLA cover, minimizing them to an irredundant
// sum-of-products, computing their dual, and converting arbitrary
// expressions to CNF via Tseitin transformation for use as an antecedent in
// the lattice encoders.
package boolfn

import (
	"fmt"
	"sort"
)

// Kind identifies the shape of an Expr node.
type Kind int

const (
	KindConst Kind = iota
	KindVar
	KindNot
	KindAnd
	KindOr
)

// Expr is a Boolean expression tree over named Boolean inputs. The zero
// value is not meaningful; build expressions with Const, Var, Not, And, Or.
type Expr struct {
	Kind     Kind
	Value    bool    // meaningful when Kind == KindConst
	Name     string  // meaningful when Kind == KindVar
	Children []*Expr // one child for KindNot, two or more for KindAnd/KindOr
}

func Const(v bool) *Expr { return &Expr{Kind: KindConst, Value: v} }
func Var(name string) *Expr { return &Expr{Kind: KindVar, Name: name} }

func Not(e *Expr) *Expr { return &Expr{Kind: KindNot, Children: []*Expr{e}} }

func And(es ...*Expr) *Expr { return &Expr{Kind: KindAnd, Children: flatten(KindAnd, es)} }
func Or(es ...*Expr) *Expr  { return &Expr{Kind: KindOr, Children: flatten(KindOr, es)} }

// flatten absorbs nested nodes of the same kind, e.g. And(And(a,b),c) ->
// And(a,b,c), so later passes don't need to recurse through redundant
// nesting introduced by a naive parser or minimizer.
func flatten(k Kind, es []*Expr) []*Expr {
	out := make([]*Expr, 0, len(es))
	for _, e := range es {
		if e.Kind == k {
			out = append(out, e.Children...)
		} else {
			out = append(out, e)
		}
	}
	return out
}

// Inputs returns the distinct variable names appearing in e, sorted.
func Inputs(e *Expr) []string {
	seen := map[string]bool{}
	var walk func(*Expr)
	walk = func(e *Expr) {
		switch e.Kind {
		case KindVar:
			seen[e.Name] = true
		default:
			for _, c := range e.Children {
				walk(c)
			}
		}
	}
	walk(e)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Eval evaluates e under assignment (a full map from variable name to
// truth value). Eval panics if a KindVar name isn't present in assignment;
// callers are expected to supply every name from Inputs(e).
func Eval(e *Expr, assignment map[string]bool) bool {
	switch e.Kind {
	case KindConst:
		return e.Value
	case KindVar:
		v, ok := assignment[e.Name]
		if !ok {
			panic(fmt.Sprintf("boolfn: Eval: no assignment for variable %q", e.Name))
		}
		return v
	case KindNot:
		return !Eval(e.Children[0], assignment)
	case KindAnd:
		for _, c := range e.Children {
			if !Eval(c, assignment) {
				return false
			}
		}
		return true
	case KindOr:
		for _, c := range e.Children {
			if Eval(c, assignment) {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("boolfn: Eval: unknown kind %v", e.Kind))
	}
}

func (e *Expr) String() string {
	switch e.Kind {
	case KindConst:
		if e.Value {
			return "1"
		}
		return "0"
	case KindVar:
		return e.Name
	case KindNot:
		return "~" + e.Children[0].String()
	case KindAnd:
		return joinChildren(e.Children, "&")
	case KindOr:
		return joinChildren(e.Children, "|")
	default:
		return "?"
	}
}

func joinChildren(children []*Expr, op string) string {
	s := "("
	for i, c := range children {
		if i > 0 {
			s += op
		}
		s += c.String()
	}
	return s + ")"
}
