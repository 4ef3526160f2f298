// This file dispatches the package's public constraint-building API
// (AtMost, AtLeast, Equals) between the two internal encoders: the k=1
// case always goes to the sequential-counter encoding (it's both simpler
// and smaller than building a trivial cardinality network for it), and
// every other k goes through the sorting-network-based cardinality
// network, matching the original implementation's
// `at_most`/`at_least`/`equals` dispatcher in `synth/constraint/__init__.py`.
package cardinality

import "github.com/lummax/switching-lattice-synth/cnf"

// AtMost asserts that at most k of lits are true. AtMostReified is the
// form that returns an equivalence literal instead of asserting the
// constraint.
func AtMost(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, k int) {
	atMost(gen, sink, lits, k, nil)
}

// AtMostReified is AtMost's reified form: it returns a fresh literal
// equivalent to "at most k of lits are true" instead of asserting it.
func AtMostReified(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, k int) cnf.Lit {
	var eq cnf.Lit
	atMost(gen, sink, lits, k, &eq)
	return eq
}

func atMost(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, k int, eq *cnf.Lit) {
	switch {
	case k < 0:
		// Unsatisfiable: no assignment has fewer than zero true literals.
		assertFalse(gen, sink, eq)
	case k >= len(lits):
		assertTrue(gen, sink, eq)
	case k == 0:
		assertAllFalse(gen, sink, lits, eq)
	case k == 1:
		atMostOneDispatch(gen, sink, lits, eq)
	default:
		atMostCardnet(gen, sink, lits, k, eq)
	}
}

// AtLeast asserts that at least k of lits are true, via the textbook
// reduction at_least(S,k) = at_most({¬s : s in S}, |S|-k).
func AtLeast(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, k int) {
	atMost(gen, sink, negated(lits), len(lits)-k, nil)
}

// AtLeastReified is AtLeast's reified form.
func AtLeastReified(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, k int) cnf.Lit {
	var eq cnf.Lit
	atMost(gen, sink, negated(lits), len(lits)-k, &eq)
	return eq
}

// Equals asserts that exactly k of lits are true.
func Equals(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, k int) {
	AtMost(gen, sink, lits, k)
	AtLeast(gen, sink, lits, k)
}

// EqualsReified is Equals's reified form: *eq is set equivalent to "exactly
// k of lits are true". This intentionally keeps the same reification
// subtlety the original `equals()` has: the at-most half and the
// at-least half are each reified independently and then conjoined, rather
// than reifying one combined clause set, so a caller asserting only the
// at-most side's generated equivalence literal true does not by itself
// force the at-least side.
func EqualsReified(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, k int) cnf.Lit {
	atMostEq := AtMostReified(gen, sink, lits, k)
	atLeastEq := AtLeastReified(gen, sink, lits, k)
	eq := cnf.Pos(gen.Next("cardinality.eq", 0))
	cnf.AddAll(sink, cnf.IffAnd(eq, atMostEq, atLeastEq))
	return eq
}

func atMostOneDispatch(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, eq *cnf.Lit) {
	if eq == nil {
		atMostOneSequential(gen, sink, lits)
		return
	}
	*eq = atMostOneReified(gen, sink, lits)
}

// atMostOneReified reifies the sequential-counter encoding: each prefix
// auxiliary s_i is defined outright as s_i <=> lits[0] ∨ ... ∨ lits[i], each
// clause (¬lits[i] ∨ ¬s_{i-1}) that catches a second true literal is
// reified individually, and every reification literal is conjoined into one
// outer equivalence, so the returned literal is true exactly when at most
// one of lits is true.
func atMostOneReified(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit) cnf.Lit {
	n := len(lits)
	if n <= 1 {
		eq := cnf.Pos(gen.Next("cardinality.atmostone.eq", 0))
		sink.Add(cnf.Unit(eq))
		return eq
	}
	s := make([]cnf.Lit, n-1)
	for i := range s {
		s[i] = cnf.Pos(gen.Next("cardinality.seq", i+1))
	}
	var bs []cnf.Lit
	cnf.AddAll(sink, cnf.Iff(s[0], lits[0]))
	for i := 1; i < n-1; i++ {
		cnf.AddAll(sink, cnf.IffOr(s[i], lits[i], s[i-1]))
		bs = append(bs, reifyClause(gen, sink, "cardinality.seq.b", cnf.Clause{lits[i].Not(), s[i-1].Not()}))
	}
	bs = append(bs, reifyClause(gen, sink, "cardinality.seq.b", cnf.Clause{lits[n-1].Not(), s[n-2].Not()}))

	eq := cnf.Pos(gen.Next("cardinality.atmostone.eq", 0))
	cnf.AddAll(sink, cnf.IffAnd(eq, bs...))
	return eq
}

func atMostCardnet(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, k int, eq *cnf.Lit) {
	sorted := cardnetSorted(gen, sink, lits)
	// sorted is descending: position k (0-indexed) is true iff more than k
	// of the inputs are true. "At most k" is exactly its negation.
	cond := sorted[k].Not()
	if eq == nil {
		sink.Add(cnf.Unit(cond))
		return
	}
	*eq = cond
}

func assertTrue(gen *cnf.NameGen, sink cnf.Sink, eq *cnf.Lit) {
	if eq == nil {
		return
	}
	v := cnf.Pos(gen.Next("cardinality.const", 0))
	sink.Add(cnf.Unit(v))
	*eq = v
}

func assertFalse(gen *cnf.NameGen, sink cnf.Sink, eq *cnf.Lit) {
	if eq == nil {
		sink.Add(cnf.Clause{}) // the empty clause: unsatisfiable by construction
		return
	}
	v := cnf.Pos(gen.Next("cardinality.const", 0))
	sink.Add(cnf.Unit(v.Not()))
	*eq = v
}

func assertAllFalse(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, eq *cnf.Lit) {
	if eq == nil {
		for _, l := range lits {
			sink.Add(cnf.Unit(l.Not()))
		}
		return
	}
	bs := make([]cnf.Lit, len(lits))
	for i, l := range lits {
		bs[i] = l.Not()
	}
	v := cnf.Pos(gen.Next("cardinality.atmostzero.eq", 0))
	cnf.AddAll(sink, cnf.IffAnd(v, bs...))
	*eq = v
}

func negated(lits []cnf.Lit) []cnf.Lit {
	out := make([]cnf.Lit, len(lits))
	for i, l := range lits {
		out[i] = l.Not()
	}
	return out
}
