package solver

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/lummax/switching-lattice-synth/cnf"
	"github.com/lummax/switching-lattice-synth/dimacs"
)

// Process drives an external DIMACS/QDIMACS solver binary as a
// subprocess, the way the original's synth.sat.Dimacs/QDimacs classes
// shell out to minisat/cryptominisat5/depqbf/rareqs. It implements both
// CNF and QBF: which interface a caller uses determines whether clauses
// are written as plain DIMACS or QDIMACS with a quantifier prefix.
type Process struct {
	// Path is the solver executable, resolved via exec.LookPath rules.
	Path string
	// Args are extra arguments passed before the problem is delivered,
	// e.g. []string{"--qdo"} for depqbf.
	Args []string

	reg     *dimacs.Registry
	clauses []cnf.Clause
}

// NewProcess returns a Process adapter invoking path with args.
func NewProcess(path string, args ...string) *Process {
	return &Process{Path: path, Args: args, reg: dimacs.NewRegistry()}
}

// Add implements cnf.Sink.
func (p *Process) Add(c cnf.Clause) {
	p.clauses = append(p.clauses, c)
}

// Solve implements CNF by writing plain DIMACS to the solver's stdin
// (assumptions appended as unit clauses, since most DIMACS solvers have
// no separate assumption channel) and parsing a "v ..." / "s SATISFIABLE"
// style model from stdout.
func (p *Process) Solve(ctx context.Context, assumptions []cnf.Lit) (Model, bool, error) {
	var input bytes.Buffer
	clauses := append(append([]cnf.Clause(nil), p.clauses...), assumptionClauses(assumptions)...)
	if err := dimacs.WriteCNF(&input, clauses, p.reg); err != nil {
		return nil, false, WrapBackendFailure(p.Path, err)
	}

	out, err := p.run(ctx, &input)
	if err != nil {
		return nil, false, WrapBackendFailure(p.Path, err)
	}

	sat, values, ok := parseModelOutput(out)
	if !ok {
		return nil, false, WrapBackendFailure(p.Path, ErrBackendFailure)
	}
	if !sat {
		return nil, false, nil
	}
	return Model(p.reg.ModelFromInts(values)), true, nil
}

// SolveQBF implements QBF by writing QDIMACS (existential block, then
// universal block, then a trailing implicit existential block for
// anything left over) and parsing a depqbf/rareqs-style "s cnf 1 ..."
// verdict line plus "V ..." assignment lines.
func (p *Process) SolveQBF(ctx context.Context, existential, universal []cnf.Var) (Model, bool, error) {
	var input bytes.Buffer
	blocks := []dimacs.Block{
		{Quantifier: dimacs.Exists, Vars: existential},
		{Quantifier: dimacs.Forall, Vars: universal},
	}
	if err := dimacs.WriteQDIMACS(&input, p.clauses, blocks, p.reg); err != nil {
		return nil, false, WrapBackendFailure(p.Path, err)
	}

	out, err := p.run(ctx, &input)
	if err != nil {
		return nil, false, WrapBackendFailure(p.Path, err)
	}

	sat, ok, err := dimacs.ParseQDIMACSVerdict(bytes.NewReader(out))
	if err != nil {
		return nil, false, WrapBackendFailure(p.Path, err)
	}
	if !ok {
		return nil, false, WrapBackendFailure(p.Path, ErrBackendFailure)
	}
	if !sat {
		return nil, false, nil
	}
	_, values, _ := parseModelOutput(out)
	return Model(p.reg.ModelFromInts(values)), true, nil
}

func (p *Process) run(ctx context.Context, stdin *bytes.Buffer) ([]byte, error) {
	cmd := exec.CommandContext(ctx, p.Path, p.Args...)
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if _, isExit := err.(*exec.ExitError); !isExit {
			return nil, err
		}
		// Most DIMACS solvers exit non-zero on UNSAT; the verdict lives
		// in stdout, so a non-zero exit alone isn't a backend failure.
	}
	return stdout.Bytes(), nil
}

func assumptionClauses(assumptions []cnf.Lit) []cnf.Clause {
	out := make([]cnf.Clause, len(assumptions))
	for i, a := range assumptions {
		out[i] = cnf.Clause{a}
	}
	return out
}

// parseModelOutput recognizes the two DIMACS solver output conventions
// the original shelled out to: minisat's bare "SAT"/"UNSAT" line
// followed by a value line, and the "s SATISFIABLE"/"v ..." convention
// used by cryptominisat and most SAT-competition solvers.
func parseModelOutput(out []byte) (sat bool, values []int, ok bool) {
	s := bufio.NewScanner(bytes.NewReader(out))
	var seenVerdict bool
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		switch {
		case line == "UNSAT" || strings.HasPrefix(line, "s UNSATISFIABLE"):
			return false, nil, true
		case line == "SAT" || strings.HasPrefix(line, "s SATISFIABLE"):
			sat, seenVerdict = true, true
		case strings.HasPrefix(line, "v "), strings.HasPrefix(line, "V "):
			fields := strings.Fields(line)[1:]
			for _, f := range fields {
				n, err := strconv.Atoi(f)
				if err != nil || n == 0 {
					continue
				}
				values = append(values, n)
			}
		case seenVerdict && line != "" && !strings.HasPrefix(line, "c") && !strings.HasPrefix(line, "s"):
			for _, f := range strings.Fields(line) {
				n, err := strconv.Atoi(f)
				if err != nil || n == 0 {
					continue
				}
				values = append(values, n)
			}
		}
	}
	if !seenVerdict {
		return false, values, false
	}
	return sat, values, true
}
