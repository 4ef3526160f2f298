package boolfn

// Minimizer reduces a Boolean expression to an irredundant sum-of-products.
// spec.md keeps Espresso-grade minimization out of scope as an external
// collaborator; Minimizer is the seam a caller plugs a better minimizer
// into. boolfn.Function uses NaiveMinimizer unless given another.
type Minimizer interface {
	Minimize(e *Expr) Product
}

// NaiveMinimizer expands e to its full minterm canonical form and then
// applies iterative consensus and absorption until no further reduction
// applies. It is not an Espresso port (no essential-prime-implicant
// heuristics, no don't-care handling) but it is a real irredundant cover:
// every product is prime with respect to the remaining cover and no
// product is implied by another.
type NaiveMinimizer struct{}

// Minimize implements Minimizer.
func (NaiveMinimizer) Minimize(e *Expr) Product {
	return Isop(e)
}

// Isop computes an irredundant sum-of-products for e using the default
// NaiveMinimizer strategy: enumerate minterms, then repeatedly try to
// combine/absorb terms that differ in exactly one literal (the classical
// Quine-McCluskey combine step) until a fixed point, then drop any term
// implied by another and any prime whose minterms the remaining primes
// already cover.
func Isop(e *Expr) Product {
	names := Inputs(e)
	var minterms Product
	assignment := make(map[string]bool, len(names))
	var rec func(i int)
	rec = func(i int) {
		if i == len(names) {
			if Eval(e, assignment) {
				term := make([]Literal, len(names))
				for j, n := range names {
					term[j] = Literal{Name: n, Neg: !assignment[n]}
				}
				minterms = append(minterms, term)
			}
			return
		}
		assignment[names[i]] = false
		rec(i + 1)
		assignment[names[i]] = true
		rec(i + 1)
	}
	rec(0)

	if len(minterms) == 0 {
		return Product{}
	}

	cover := combineToFixpoint(minterms)
	cover = dropImplied(cover)
	// Drop, one at a time, any prime whose minterms the other primes cover.
	for i := 0; i < len(cover); {
		rest := append(append(Product(nil), cover[:i]...), cover[i+1:]...)
		redundant := true
		for _, mt := range minterms {
			hit := false
			for j := 0; j < len(rest) && !hit; j++ {
				hit = implies(mt, rest[j])
			}
			redundant = redundant && hit
		}
		if redundant {
			cover = rest
		} else {
			i++
		}
	}
	return sortProduct(cover)
}

// combineToFixpoint repeatedly merges pairs of terms that differ in
// exactly one literal's polarity (e.g. a&b and a&~b combine to a),
// discarding the merged-away inputs, until no more merges apply.
func combineToFixpoint(terms Product) Product {
	current := terms
	for {
		next, changed := combineOnce(current)
		if !changed {
			return dedupe(current)
		}
		current = next
	}
}

func combineOnce(terms Product) (Product, bool) {
	used := make([]bool, len(terms))
	var out Product
	changed := false
	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			merged, ok := combinePair(terms[i], terms[j])
			if ok {
				out = append(out, merged)
				used[i], used[j] = true, true
				changed = true
			}
		}
	}
	for i, t := range terms {
		if !used[i] {
			out = append(out, t)
		}
	}
	return out, changed
}

// combinePair merges a and b into their shared literals if they differ in
// exactly one variable's polarity and otherwise share every literal.
func combinePair(a, b []Literal) ([]Literal, bool) {
	if len(a) != len(b) {
		return nil, false
	}
	bByName := make(map[string]Literal, len(b))
	for _, l := range b {
		bByName[l.Name] = l
	}
	diffs := 0
	var shared []Literal
	for _, l := range a {
		other, ok := bByName[l.Name]
		if !ok {
			return nil, false
		}
		if other.Neg != l.Neg {
			diffs++
			continue
		}
		shared = append(shared, l)
	}
	if diffs != 1 {
		return nil, false
	}
	return shared, true
}

func dedupe(terms Product) Product {
	seen := map[string]bool{}
	var out Product
	for _, t := range terms {
		k := termKey(append([]Literal(nil), t...))
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}

// dropImplied removes any term whose literal set is a superset of another
// term's (the superset term is the more restrictive, hence redundant, one
// once the subset term is present), leaving an irredundant cover.
func dropImplied(terms Product) Product {
	var out Product
	for i, t := range terms {
		redundant := false
		for j, u := range terms {
			if i == j {
				continue
			}
			if implies(t, u) && (len(t) > len(u) || (len(t) == len(u) && j < i)) {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, t)
		}
	}
	return out
}

// implies reports whether term t's literal set is a superset of u's,
// i.e. satisfying t always satisfies u.
func implies(t, u []Literal) bool {
	set := make(map[string]Literal, len(t))
	for _, l := range t {
		set[l.Name] = l
	}
	for _, l := range u {
		got, ok := set[l.Name]
		if !ok || got.Neg != l.Neg {
			return false
		}
	}
	return true
}
