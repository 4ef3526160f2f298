package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lummax/switching-lattice-synth/cnf"
)

// ParseInts parses text in the DIMACS CNF format into raw integer clauses.
// As in the teacher solver's own reader, a couple of non-standard
// variations are accepted for convenience: comments ('c' lines) may
// appear anywhere, not just in the preamble, and the problem line may be
// missing.
func ParseInts(r io.Reader) ([][]int, error) {
	var problem struct{ vars, clauses int }
	var clauses [][]int
	var clause []int
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			if len(clauses) > 0 {
				return nil, fmt.Errorf("dimacs: problem line appears after clauses")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
				return nil, fmt.Errorf("dimacs: malformed problem line %q", line)
			}
			var err error
			problem.vars, err = strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("dimacs: malformed #vars: %w", err)
			}
			problem.clauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, fmt.Errorf("dimacs: malformed #clauses: %w", err)
			}
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("dimacs: invalid token %q: %w", field, err)
			}
			if n == 0 {
				clauses = append(clauses, clause)
				clause = nil
			} else {
				clause = append(clause, n)
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(clause) > 0 {
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

// WriteCNF writes clauses in DIMACS CNF format, registering a fresh
// integer for every cnf.Var encountered (in first-seen order) in reg.
func WriteCNF(w io.Writer, clauses []cnf.Clause, reg *Registry) error {
	ints := make([][]int, len(clauses))
	for i, c := range clauses {
		ints[i] = reg.ClauseInts(c)
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", reg.NumVars(), len(ints)); err != nil {
		return err
	}
	for _, cls := range ints {
		for _, n := range cls {
			if _, err := fmt.Fprintf(bw, "%d ", n); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw, "0"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
