package cardinality

import "github.com/lummax/switching-lattice-synth/cnf"

// halfSorter is the base comparator: it sorts two literals into
// (high, low) = (a OR b, a AND b), the degenerate 2-input case every
// merger in a Boolean cardinality network bottoms out in, since sorting
// two bits doesn't need carries the way sorting two integers would.
func halfSorter(gen *cnf.NameGen, sink cnf.Sink, a, b cnf.Lit) (high, low cnf.Lit) {
	high = cnf.Pos(gen.Next("cardnet.high", 0))
	low = cnf.Pos(gen.Next("cardnet.low", 0))
	cnf.AddAll(sink, cnf.IffOr(high, a, b))
	cnf.AddAll(sink, cnf.IffAnd(low, a, b))
	return high, low
}

// hMerger is the direct merger: given two sorted sequences x and y of
// equal length n (n a power of two), it returns their sorted merge of
// length 2n using the standard odd-even recursive construction (Batcher's
// merging network specialized to Boolean comparators).
func hMerger(gen *cnf.NameGen, sink cnf.Sink, x, y []cnf.Lit) []cnf.Lit {
	n := len(x)
	if n != len(y) {
		panic("cardnet: hMerger requires equal-length inputs")
	}
	if n == 1 {
		high, low := halfSorter(gen, sink, x[0], y[0])
		return []cnf.Lit{high, low}
	}
	oddX, evenX := split(x)
	oddY, evenY := split(y)
	zOdd := hMerger(gen, sink, oddX, oddY)
	zEven := hMerger(gen, sink, evenX, evenY)

	result := make([]cnf.Lit, 2*n)
	result[0] = zOdd[0]
	for i := 1; i < n; i++ {
		high, low := halfSorter(gen, sink, zEven[i-1], zOdd[i])
		result[2*i-1] = high
		result[2*i] = low
	}
	result[2*n-1] = zEven[n-1]
	return result
}

// split partitions xs into its odd-indexed and even-indexed (1-based)
// elements: split([x1,x2,x3,x4]) = ([x1,x3], [x2,x4]).
func split(xs []cnf.Lit) (odd, even []cnf.Lit) {
	for i, x := range xs {
		if i%2 == 0 {
			odd = append(odd, x)
		} else {
			even = append(even, x)
		}
	}
	return odd, even
}

// sortNetwork sorts xs (length a power of two) into descending order
// (all true literals before all false ones) using recursive halving plus
// hMerger, giving the cardinality network the rest of this package builds
// on. A length-1 input is trivially sorted.
func sortNetwork(gen *cnf.NameGen, sink cnf.Sink, xs []cnf.Lit) []cnf.Lit {
	if len(xs) == 1 {
		return xs
	}
	mid := len(xs) / 2
	left := sortNetwork(gen, sink, xs[:mid])
	right := sortNetwork(gen, sink, xs[mid:])
	return hMerger(gen, sink, left, right)
}

// nextPowerOfTwo returns the smallest power of two >= n (>= 1).
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// padFalse pads lits up to length n with fresh literals pinned false by a
// unit clause, the cardinality-network equivalent of the original's
// "pad the input to a multiple of k with fresh auxiliaries".
func padFalse(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit, n int) []cnf.Lit {
	if len(lits) >= n {
		return lits
	}
	out := append([]cnf.Lit(nil), lits...)
	for len(out) < n {
		pad := cnf.Pos(gen.Next("cardnet.pad", 0))
		sink.Add(cnf.Unit(pad.Not()))
		out = append(out, pad)
	}
	return out
}

// cardnetSorted builds the full sorted network over lits (padded to the
// next power of two) and returns it, so atMostCardnet can read off
// position k (0-indexed) directly as the "more than k true" condition.
func cardnetSorted(gen *cnf.NameGen, sink cnf.Sink, lits []cnf.Lit) []cnf.Lit {
	padded := padFalse(gen, sink, lits, nextPowerOfTwo(len(lits)))
	return sortNetwork(gen, sink, padded)
}
