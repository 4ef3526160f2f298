// Package dpll implements a DIMACS-CNF SAT solver using the
// Davis-Putnam-Logemann-Loveland backtracking algorithm with watched
// literals, as described in the 2001 paper "Chaff: Engineering an
// Efficient SAT Solver". It is the module's default in-process SAT
// backend (solver.Native), used so tests never depend on an external
// solver binary being on PATH.
package dpll

import (
	"container/heap"
	"context"
	"sort"
	"strings"

	"github.com/kr/pretty"
)

// Options controls solver behavior beyond the CNF problem itself.
type Options struct {
	// Debug, when true, prints the solver's internal assignment and watch
	// state via kr/pretty every time bcp propagates a new implication. It
	// exists for interactive debugging of the encoders, not for production
	// use; leave it false (the default) in search loops.
	Debug bool
}

type solver struct {
	opts Options

	sourceVars []sourceVar
	simpleSat  assnVal
	simplified [][]int

	origVars []int

	assignments []assnVal
	watches     [][]int

	unassigned litHeap

	decisions    []decision
	implications []literal
	propIndex    int

	clauses []clause

	numDecisions    int64
	numImplications int64
}

type sourceVar struct {
	v    int
	assn assnVal
	i    int
}

type clause struct {
	lits []literal
}

type litHeap struct {
	watches [][]int
	lits    []litHeapItem
	m       map[literal]int
}

type litHeapItem struct {
	lit literal
	i   int
}

func (h *litHeap) Len() int { return len(h.lits) }

func (h *litHeap) Less(i, j int) bool {
	lit0, lit1 := h.lits[i].lit, h.lits[j].lit
	return len(h.watches[lit0]) > len(h.watches[lit1])
}

func (h *litHeap) Swap(i, j int) {
	e0, e1 := h.lits[i], h.lits[j]
	e0.i = j
	e1.i = i
	h.lits[i] = e1
	h.lits[j] = e0
	h.m[e0.lit] = j
	h.m[e1.lit] = i
}

func (h *litHeap) Push(x interface{}) {
	elt := x.(litHeapItem)
	h.m[elt.lit] = len(h.lits)
	elt.i = len(h.lits)
	h.lits = append(h.lits, elt)
}

func (h *litHeap) Pop() interface{} {
	elt := h.lits[len(h.lits)-1]
	h.lits = h.lits[:len(h.lits)-1]
	elt.i = -1
	delete(h.m, elt.lit)
	return elt
}

func newSolver(problem [][]int, opts Options) *solver {
	sv := simplify(problem)
	sv.opts = opts
	if sv.simpleSat != unassigned {
		return sv
	}
	vars := make(map[int]int)
	for _, cls := range sv.simplified {
		for _, v := range cls {
			v = abs(v)
			if _, ok := vars[v]; !ok {
				sv.origVars = append(sv.origVars, v)
				vars[v] = 0
			}
		}
	}
	sort.Ints(sv.origVars)
	for i, v := range sv.origVars {
		vars[v] = i
	}
	for i, v := range sv.sourceVars {
		if v.assn == unassigned {
			sv.sourceVars[i].i = vars[v.v]
		}
	}
	sv.watches = make([][]int, len(sv.origVars)*2)
	sv.assignments = make([]assnVal, len(sv.origVars))
	sv.clauses = make([]clause, len(sv.simplified))
	for i, cls := range sv.simplified {
		for j, v := range cls {
			neg := false
			if v < 0 {
				neg = true
				v = -v
			}
			lit := literal(vars[v]) << 1
			if neg {
				lit ^= 1
			}
			sv.clauses[i].lits = append(sv.clauses[i].lits, lit)
			if j < 2 {
				sv.watches[lit] = append(sv.watches[lit], i)
			}
		}
	}
	sv.unassigned.watches = sv.watches
	sv.unassigned.m = make(map[literal]int)
	for lit, watches := range sv.watches {
		if len(watches) > 0 {
			sv.pushUnassigned(literal(lit))
		}
	}
	return sv
}

// simplify performs unit propagation and trivial simplification to a
// fixpoint, returning a solver with only sourceVars/simplified/simpleSat
// set.
func simplify(problem [][]int) *solver {
	var sv solver
	vars := make(map[int]assnVal)
	sv.simplified = make([][]int, len(problem))
	for i, cls := range problem {
		seen := make(map[int]struct{})
		var clause1 []int
		for _, v := range cls {
			if v == 0 {
				panic("dpll: zero var passed to Solve")
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			clause1 = append(clause1, v)
			vars[abs(v)] = unassigned
		}
		sv.simplified[i] = clause1
	}
	changed := true
	for changed {
		if len(sv.simplified) == 0 {
			sv.simpleSat = assnTrue
			for v, assn := range vars {
				if assn == unassigned {
					vars[v] = assnTrue
				}
			}
			break
		}
		changed = false
		var i int
	clauseLoop:
		for _, cls := range sv.simplified {
			if len(cls) == 0 {
				sv.simpleSat = assnFalse
				return &sv
			}
			if len(cls) == 1 {
				v := cls[0]
				assn := assnTrue
				if v < 0 {
					assn = assnFalse
					v = -v
				}
				if vars[v] != unassigned && vars[v] != assn {
					sv.simpleSat = assnFalse
					return &sv
				}
				vars[v] = assn
				changed = true
				continue clauseLoop
			}
			var j int
			for _, v := range cls {
				assn := vars[abs(v)]
				if assn == unassigned {
					cls[j] = v
					j++
					continue
				}
				changed = true
				if (assn == assnTrue) == (v > 0) {
					continue clauseLoop
				}
			}
			sv.simplified[i] = cls[:j]
			i++
		}
		sv.simplified = sv.simplified[:i]
	}
	sv.sourceVars = make([]sourceVar, 0, len(vars))
	for v, assn := range vars {
		sv.sourceVars = append(sv.sourceVars, sourceVar{v: v, assn: assn})
	}
	sort.Slice(sv.sourceVars, func(i, j int) bool {
		return sv.sourceVars[i].v < sv.sourceVars[j].v
	})
	return &sv
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Stats carries purely informational solve statistics; set and type may
// change across versions.
type Stats struct {
	SolvedBySimplification bool
	NumDecisions           int64
	NumImplications        int64
}

// Solve determines whether the CNF formula problem is satisfiable and, if
// so, returns a satisfying assignment: one entry per variable appearing
// in problem, positive if the variable is true, negative if false.
// Variables are plain nonzero integers; they need not be contiguous.
// ctx is checked between decisions so a caller can abort a long search.
func Solve(ctx context.Context, problem [][]int, opts Options) (assignment []int, stats Stats, sat bool, err error) {
	sv := newSolver(problem, opts)
	ok, err := sv.solve(ctx)
	stats = Stats{
		SolvedBySimplification: sv.simpleSat != unassigned,
		NumDecisions:           sv.numDecisions,
		NumImplications:        sv.numImplications,
	}
	if err != nil {
		return nil, stats, false, err
	}
	if !ok {
		return nil, stats, false, nil
	}

	soln := make([]int, len(sv.sourceVars))
	for i, v := range sv.sourceVars {
		assn := v.assn
		if assn == unassigned {
			assn = sv.assignments[v.i] & 3
		}
		switch assn {
		case assnFalse:
			soln[i] = -v.v
		case assnTrue:
			soln[i] = v.v
		default:
			panic("dpll: incomplete solution")
		}
	}
	return soln, stats, true, nil
}

type literal uint32

func (l literal) assn() assnVal {
	return assnVal(l&1) + 1
}

type assnVal uint8

const (
	unassigned assnVal = 0
	assnTrue   assnVal = 1
	assnFalse  assnVal = 2
	// The "second" values indicate an assignment being tried for a second
	// time (the opposite polarity from the original decision).
	assnTrueSecond  assnVal = 5
	assnFalseSecond assnVal = 6
)

func (a assnVal) inv() assnVal { return a ^ 3 }

func (a assnVal) String() string {
	switch a {
	case unassigned:
		return "unassigned"
	case assnTrue, assnTrueSecond:
		return "true"
	case assnFalse, assnFalseSecond:
		return "false"
	default:
		panic("unreached")
	}
}

type decision struct {
	implicationIdx int
	lit            literal
}

func (sv *solver) solve(ctx context.Context) (bool, error) {
	switch sv.simpleSat {
	case assnTrue:
		return true, nil
	case assnFalse:
		return false, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		lit, ok := sv.popUnassigned()
		if !ok {
			return true, nil
		}
		sv.deleteUnassigned(lit ^ 1)
		v := lit >> 1
		sv.assignments[v] = lit.assn()
		sv.numDecisions++
		sv.decisions = append(sv.decisions, decision{
			implicationIdx: len(sv.implications),
			lit:            lit,
		})
		sv.propIndex = len(sv.implications)
		sv.implications = append(sv.implications, lit)

		for !sv.bcp() {
			if !sv.resolveConflict() {
				return false, nil
			}
		}
	}
}

// bcp carries out boolean constraint propagation: it finds all direct
// implications of the current variable state via the watched-literal
// scheme, returning false as soon as it finds a conflict.
func (sv *solver) bcp() bool {
	for {
		imps := sv.implications[sv.propIndex:]
		if len(imps) == 0 {
			return true
		}
		sv.propIndex = len(sv.implications)
		for _, impliedLit := range imps {
			neg := impliedLit ^ 1
			watches := sv.watches[neg]
		watchesLoop:
			for i := 0; i < len(watches); {
				clauseIdx := watches[i]
				cls := sv.clauses[clauseIdx]
				if cls.lits[0] == neg {
					cls.lits[0], cls.lits[1] = cls.lits[1], cls.lits[0]
				} else if cls.lits[1] != neg {
					panic("dpll: bad watch var state")
				}
				lit0 := cls.lits[0]
				if sv.assignments[lit0>>1]&3 == lit0.assn() {
					i++
					continue
				}
				for j := 2; j < len(cls.lits); j++ {
					lit := cls.lits[j]
					assn := sv.assignments[lit>>1] & 3
					if assn == lit.assn().inv() {
						continue
					}
					sv.watches[lit] = append(sv.watches[lit], clauseIdx)
					if assn == unassigned {
						sv.updateUnassigned(lit)
					}
					watches[i], watches[len(watches)-1] = watches[len(watches)-1], watches[i]
					watches = watches[:len(watches)-1]
					sv.watches[neg] = watches
					cls.lits[1], cls.lits[j] = cls.lits[j], cls.lits[1]
					continue watchesLoop
				}
				i++
				otherWatch := cls.lits[0]
				v := int(otherWatch >> 1)
				if sv.assignments[v] != unassigned {
					return false
				}
				sv.assignments[v] = otherWatch.assn()
				if sv.opts.Debug {
					pretty.Println(sv.stateString())
				}
				sv.deleteUnassigned(otherWatch)
				sv.numImplications++
				sv.implications = append(sv.implications, otherWatch)
			}
		}
	}
}

func (sv *solver) stateString() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, assn := range sv.assignments {
		var s string
		if i > 0 {
			s = ", "
		}
		b.WriteString(s)
		b.WriteString(sv.origLitString(i, assn))
	}
	b.WriteString("}")
	return b.String()
}

func (sv *solver) origLitString(i int, assn assnVal) string {
	return strings.TrimSpace(
		pretty.Sprint(sv.origVars[i]) + ":" + assn.String()[:1],
	)
}

func (sv *solver) origLit(lit literal) int {
	x := sv.origVars[lit>>1]
	if lit&1 == 1 {
		return -x
	}
	return x
}

// resolveConflict tries to fix the current conflict by flipping the most
// recently made decision that hasn't already been tried both ways.
func (sv *solver) resolveConflict() bool {
	di := -1
	var d decision
	for i := len(sv.decisions) - 1; i >= 0; i-- {
		d = sv.decisions[i]
		if sv.assignments[d.lit>>1]&4 == 0 {
			di = i
			break
		}
	}
	if di == -1 {
		return false
	}
	for i := len(sv.implications) - 1; i > d.implicationIdx; i-- {
		lit := sv.implications[i]
		sv.pushUnassigned(lit)
		sv.assignments[lit>>1] = unassigned
	}
	sv.implications = sv.implications[:d.implicationIdx+1]
	sv.implications[len(sv.implications)-1] ^= 1
	sv.decisions = sv.decisions[:di+1]
	sv.decisions[di].lit ^= 1
	sv.assignments[d.lit>>1] ^= 5
	sv.propIndex = d.implicationIdx
	return true
}

func (sv *solver) pushUnassigned(lit literal) {
	if _, ok := sv.unassigned.m[lit]; ok {
		panic("dpll: push of literal already in the unassigned queue")
	}
	heap.Push(&sv.unassigned, litHeapItem{lit: lit})
}

func (sv *solver) popUnassigned() (literal, bool) {
	if len(sv.unassigned.lits) == 0 {
		return 0, false
	}
	e := heap.Pop(&sv.unassigned).(litHeapItem)
	return e.lit, true
}

func (sv *solver) deleteUnassigned(lit literal) {
	i, ok := sv.unassigned.m[lit]
	if !ok {
		panic("dpll: delete of nonexistent unassigned var")
	}
	heap.Remove(&sv.unassigned, i)
}

func (sv *solver) updateUnassigned(lit literal) {
	if i, ok := sv.unassigned.m[lit]; ok {
		heap.Fix(&sv.unassigned, i)
	} else {
		heap.Push(&sv.unassigned, litHeapItem{lit: lit})
	}
}
