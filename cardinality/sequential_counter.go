// Package cardinality builds CNF cardinality constraints ("at most k of
// these literals are true", "at least k", "exactly k") over a set of
// literals, with an optional equivalence literal that reifies the
// constraint instead of asserting it unconditionally. Two internal
// encoders are used depending on k, exactly as the original implementation
// dispatches: a Sinz sequential-counter encoding for the k=1 special case,
// and a pairwise-merge cardinality network for k>=2.
package cardinality

import "github.com/lummax/switching-lattice-synth/cnf"

// atMostOneSequential asserts "at most one of lits is true" using Sinz's
// sequential counter encoding: one auxiliary s_i per prefix of lits
// tracking whether any of the first i literals was true, chained so that
// two simultaneously-true literals are always caught by consecutive
// clauses.
func atMostOneSequential(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit) {
	n := len(lits)
	if n <= 1 {
		return
	}
	s := make([]cnf.Lit, n-1)
	for i := range s {
		s[i] = cnf.Pos(gen.Next("cardinality.seq", i+1))
	}
	sink.Add(cnf.Clause{lits[0].Not(), s[0]})
	for i := 1; i < n-1; i++ {
		sink.Add(cnf.Clause{lits[i].Not(), s[i]})
		sink.Add(cnf.Clause{s[i-1].Not(), s[i]})
		sink.Add(cnf.Clause{lits[i].Not(), s[i-1].Not()})
	}
	sink.Add(cnf.Clause{lits[n-1].Not(), s[n-2].Not()})
}

// atLeastOneSequential asserts "at least one of lits is true": the single
// disjunctive clause.
func atLeastOneSequential(sink cnf.Sink, lits []cnf.Lit) {
	sink.Add(cnf.Or(lits...))
}

// reifyClause streams the clauses of b <=> c (c read as a disjunction),
// returning b, following the original's pattern of reifying each
// individual generated clause so a caller can later combine several such
// b's into one outer equivalence with IffAnd.
func reifyClause(gen *cnf.NameGen, sink cnf.Sink, kind string, c cnf.Clause) cnf.Lit {
	b := cnf.Pos(gen.Next(kind, 0))
	cnf.AddAll(sink, cnf.IffOr(b, c...))
	return b
}
