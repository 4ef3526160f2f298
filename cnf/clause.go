package cnf

// Clause is a disjunction of literals. The Go type system makes the
// "invariant violation: non-CNF clause emitted" case from spec.md §7
// structurally unreachable for anything built through this package's
// constructors: a Clause is always already a flat slice of Lit, never a
// nested boolean tree, so there is nothing for an assert-is-CNF check to
// catch. The handful of constructs that would need real Tseitin expansion
// (general Boolean combinations, as opposed to the implications-of-literals
// and implications-of-conjunctions the encoders actually use) go through
// ImplyOrOfConjunctions or boolfn.ToCNF instead of being hand-rolled.
type Clause []Lit

// Sink receives clauses as they're generated. Encoders stream clauses one
// at a time into a Sink instead of materializing the whole formula, the Go
// analogue of the lazy clause-generator streams in spec.md §9. Every
// solver.CNF adapter implements Sink.
type Sink interface {
	Add(c Clause)
}

// SliceSink collects clauses into a slice, e.g. for tests that inspect a
// generated formula directly.
type SliceSink struct {
	Clauses []Clause
}

func (s *SliceSink) Add(c Clause) { s.Clauses = append(s.Clauses, c) }

// AddAll streams every clause in cs to sink.
func AddAll(sink Sink, cs []Clause) {
	for _, c := range cs {
		sink.Add(c)
	}
}

// Unit returns the one-literal clause asserting l.
func Unit(l Lit) Clause { return Clause{l} }

// Or returns the disjunction of lits.
func Or(lits ...Lit) Clause {
	c := make(Clause, len(lits))
	copy(c, lits)
	return c
}

// Imply returns the single clause encoding a => b, i.e. (¬a ∨ b).
func Imply(a, b Lit) Clause { return Clause{a.Not(), b} }

// ImplyOr returns the single clause encoding a => (b1 ∨ b2 ∨ ...), i.e.
// (¬a ∨ b1 ∨ b2 ∨ ...).
func ImplyOr(a Lit, bs ...Lit) Clause {
	c := make(Clause, 0, len(bs)+1)
	c = append(c, a.Not())
	c = append(c, bs...)
	return c
}

// ImplyEach returns one clause a => b per b in bs, encoding a => (b1 ∧ b2 ∧ ...).
func ImplyEach(a Lit, bs ...Lit) []Clause {
	out := make([]Clause, len(bs))
	for i, b := range bs {
		out[i] = Imply(a, b)
	}
	return out
}

// ConjImply returns the single clause encoding (a1 ∧ a2 ∧ ...) => b, i.e.
// (¬a1 ∨ ¬a2 ∨ ... ∨ b).
func ConjImply(as []Lit, b Lit) Clause {
	c := make(Clause, 0, len(as)+1)
	for _, a := range as {
		c = append(c, a.Not())
	}
	c = append(c, b)
	return c
}

// Iff returns the two clauses encoding a <=> b.
func Iff(a, b Lit) []Clause {
	return []Clause{Imply(a, b), Imply(b, a)}
}

// IffAnd returns the clauses encoding eq <=> (b1 ∧ b2 ∧ ...).
func IffAnd(eq Lit, bs ...Lit) []Clause {
	out := ImplyEach(eq, bs...)
	return append(out, ConjImply(bs, eq))
}

// IffOr returns the clauses encoding eq <=> (b1 ∨ b2 ∨ ...).
func IffOr(eq Lit, bs ...Lit) []Clause {
	out := []Clause{ImplyOr(eq, bs...)}
	for _, b := range bs {
		out = append(out, Imply(b, eq))
	}
	return out
}

// ImplyOrOfConjunctions returns the clauses encoding
//
//	ante => (pairs[0][0] ∧ pairs[0][1]) ∨ (pairs[1][0] ∧ pairs[1][1]) ∨ ...
//
// by distributing the OR of conjunctions into CNF: one clause per
// combination choosing a single literal out of each pair, unioned with
// ¬ante. This is the one place the encoders need genuine OR-over-AND
// distribution (the "cell is on the path" / "switch is active" clauses in
// lattice and encode/*), so it's implemented once here instead of ad hoc
// in each caller.
func ImplyOrOfConjunctions(ante Lit, pairs ...[2]Lit) []Clause {
	if len(pairs) == 0 {
		return nil
	}
	results := make([]Clause, 0, 1<<uint(len(pairs)))
	acc := make([]Lit, 0, len(pairs))
	var rec func(idx int)
	rec = func(idx int) {
		if idx == len(pairs) {
			c := make(Clause, 0, len(acc)+1)
			c = append(c, ante.Not())
			c = append(c, acc...)
			results = append(results, c)
			return
		}
		acc = append(acc, pairs[idx][0])
		rec(idx + 1)
		acc = acc[:len(acc)-1]

		acc = append(acc, pairs[idx][1])
		rec(idx + 1)
		acc = acc[:len(acc)-1]
	}
	rec(0)
	return results
}
