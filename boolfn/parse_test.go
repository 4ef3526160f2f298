package boolfn

import "testing"

func TestParseAgreesWithEval(t *testing.T) {
	tests := []struct {
		expr string
	}{
		{"a & b"},
		{"a | b"},
		{"~a & b"},
		{"(a | b) & ~c"},
		{"a & b | c"},
		{"1"},
		{"0"},
	}
	for _, tt := range tests {
		e, err := Parse(tt.expr)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.expr, err)
		}
		names := Inputs(e)
		assignment := make(map[string]bool, len(names))
		for _, n := range names {
			assignment[n] = true
		}
		// Just confirm it evaluates without panicking under a full
		// assignment; exact truth table behavior is covered by TestEval.
		_ = Eval(e, assignment)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	tests := []string{"a &", "(a", "a ? b", ""}
	for _, in := range tests {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error, got nil", in)
		}
	}
}
