package boolfn

import (
	"fmt"
	"strings"
)

// Parse reads a small infix Boolean expression grammar: variable names are
// identifiers, `~`/`!` negate, `&`/`*` is conjunction, `|`/`+` is
// disjunction, `(`/`)` group, and `0`/`1` are the constants. Operator
// precedence is the usual not > and > or. This replaces pyeda's expression
// parser from the original implementation; it covers the same surface the
// CLI's `--function` flag needs, not a general Boolean-algebra parser.
func Parse(s string) (*Expr, error) {
	p := &parser{toks: tokenize(s)}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("boolfn: Parse(%q): unexpected trailing input at %q", s, p.toks[p.pos])
	}
	return e, nil
}

type parser struct {
	toks []string
	pos  int
}

func (p *parser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) parseOr() (*Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []*Expr{left}
	for p.peek() == "|" || p.peek() == "+" {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, right)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return Or(terms...), nil
}

func (p *parser) parseAnd() (*Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	terms := []*Expr{left}
	for p.peek() == "&" || p.peek() == "*" {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		terms = append(terms, right)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return And(terms...), nil
}

func (p *parser) parseNot() (*Expr, error) {
	if p.peek() == "~" || p.peek() == "!" {
		p.next()
		e, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not(e), nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (*Expr, error) {
	t := p.next()
	switch {
	case t == "":
		return nil, fmt.Errorf("boolfn: Parse: unexpected end of input")
	case t == "(":
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.next() != ")" {
			return nil, fmt.Errorf("boolfn: Parse: expected ')'")
		}
		return e, nil
	case t == "0":
		return Const(false), nil
	case t == "1":
		return Const(true), nil
	default:
		if !isIdent(t) {
			return nil, fmt.Errorf("boolfn: Parse: invalid token %q", t)
		}
		return Var(t), nil
	}
}

func isIdent(t string) bool {
	if t == "" {
		return false
	}
	for i, r := range t {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func tokenize(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch r {
		case '(', ')', '~', '!', '&', '*', '|', '+':
			flush()
			toks = append(toks, string(r))
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}
