package boolfn

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadPLA reads a single-output Berkeley PLA (the `.i`/`.o`/`.ilb`/`.p`/`.e`
// subset used by the original implementation's `_read_pla`). Each product
// row is `<input-plane> <output-bit>`, where the input plane uses
// '0'/'1'/'-' (don't-care) per input, and the output bit must be '0' or
// '1' (single output only; '1' rows contribute a product, '0'/'-' rows are
// ignored as in the original). The returned Expr is the raw Or-of-Ands
// cover exactly as it appears in the file, not yet minimized; pass it to
// New to get a Function with its ISOP and dual computed.
func ReadPLA(r io.Reader) (*Expr, error) {
	s := bufio.NewScanner(r)
	numInputs := -1
	numOutputs := -1
	names := []string(nil)
	var terms []*Expr

	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, ".i "):
			n, err := strconv.Atoi(strings.TrimSpace(line[3:]))
			if err != nil {
				return nil, fmt.Errorf("boolfn: ReadPLA: malformed .i line %q: %w", line, err)
			}
			numInputs = n
		case strings.HasPrefix(line, ".o "):
			n, err := strconv.Atoi(strings.TrimSpace(line[3:]))
			if err != nil {
				return nil, fmt.Errorf("boolfn: ReadPLA: malformed .o line %q: %w", line, err)
			}
			numOutputs = n
			if numOutputs != 1 {
				return nil, fmt.Errorf("boolfn: ReadPLA: only single-output PLAs are supported, got .o %d", numOutputs)
			}
		case strings.HasPrefix(line, ".ilb "):
			names = strings.Fields(line)[1:]
		case strings.HasPrefix(line, ".ob "):
			// output name(s), not needed for a single-output function
		case strings.HasPrefix(line, ".p "):
			// product count, informational only
		case strings.HasPrefix(line, ".type"), strings.HasPrefix(line, ".phase"):
			// unsupported PLA extensions; ignored like the reference reader
		case line == ".e" || line == ".end":
			goto done
		case strings.HasPrefix(line, "."):
			// unrecognized directive; ignore
		default:
			if numInputs < 0 {
				return nil, fmt.Errorf("boolfn: ReadPLA: product row before .i directive: %q", line)
			}
			fields := strings.Fields(line)
			if len(fields) != 2 {
				return nil, fmt.Errorf("boolfn: ReadPLA: malformed product row %q", line)
			}
			plane, out := fields[0], fields[1]
			if len(plane) != numInputs {
				return nil, fmt.Errorf("boolfn: ReadPLA: product row %q has %d input positions, expected %d", line, len(plane), numInputs)
			}
			if out != "1" {
				continue
			}
			term, err := coverRowToExpr(plane, names)
			if err != nil {
				return nil, err
			}
			if term != nil {
				terms = append(terms, term)
			}
		}
	}
done:
	if err := s.Err(); err != nil {
		return nil, err
	}
	if numInputs < 0 {
		return nil, fmt.Errorf("boolfn: ReadPLA: missing .i directive")
	}
	if len(terms) == 0 {
		return Const(false), nil
	}
	return Or(terms...), nil
}

func coverRowToExpr(plane string, names []string) (*Expr, error) {
	var lits []*Expr
	for i, c := range plane {
		name := inputName(names, i)
		switch c {
		case '1':
			lits = append(lits, Var(name))
		case '0':
			lits = append(lits, Not(Var(name)))
		case '-':
			// don't-care: contributes no literal for this input
		default:
			return nil, fmt.Errorf("boolfn: ReadPLA: invalid input symbol %q in row %q", c, plane)
		}
	}
	if len(lits) == 0 {
		return Const(true), nil
	}
	return And(lits...), nil
}

func inputName(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("x%d", i)
}
