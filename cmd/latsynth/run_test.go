package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lummax/switching-lattice-synth/boolfn"
	"github.com/lummax/switching-lattice-synth/stats"
)

func TestBuildFunctionsParsesInlineExpressions(t *testing.T) {
	functions, err := buildFunctions([]string{"a & b"}, nil)
	if err != nil {
		t.Fatalf("buildFunctions: %v", err)
	}
	if len(functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(functions))
	}
	if functions[0].Fn.Inputs() != 2 {
		t.Errorf("inputs = %d, want 2", functions[0].Fn.Inputs())
	}
}

func TestIterateFunctionsRunsEachSynthesizer(t *testing.T) {
	e, err := boolfn.Parse("a")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := boolfn.New(e, nil)

	cfg := runConfig{
		searchName:   "simple",
		methodName:   "irredundant",
		synthesizers: []string{"cegar"},
		satSolver:    "native",
	}
	rows, err := iterateFunctions(context.Background(), cfg, []namedFunction{{Path: "inline", Fn: fn}})
	if err != nil {
		t.Fatalf("iterateFunctions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if !rows[0].HasSolution {
		t.Errorf("expected a solution for a single-literal function on its naive bound")
	}
}

func TestPrintResultsReportsNoSolution(t *testing.T) {
	var buf bytes.Buffer
	printResults(&buf, []stats.Row{{Search: "simple", Method: "irredundant", Synthesizer: "CEGAR", Path: "f.pla"}})
	if !strings.Contains(buf.String(), "no solution found") {
		t.Errorf("output = %q, want it to report no solution", buf.String())
	}
}
