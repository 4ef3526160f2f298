package lattice

import (
	"github.com/lummax/switching-lattice-synth/cardinality"
	"github.com/lummax/switching-lattice-synth/cnf"
)

// AssertOneHot asserts that exactly one of lits is true, the "one-hot per
// cell" invariant from spec.md §3: every cell carries exactly one label.
func AssertOneHot(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit) {
	cardinality.Equals(gen, sink, lits, 1)
}
