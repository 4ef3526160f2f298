package boolfn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInputs(t *testing.T) {
	e := Or(And(Var("a"), Not(Var("b"))), Var("c"))
	got := Inputs(e)
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestEval(t *testing.T) {
	// (a & ~b) | c
	e := Or(And(Var("a"), Not(Var("b"))), Var("c"))
	tests := []struct {
		a, b, c bool
		want    bool
	}{
		{true, false, false, true},
		{true, true, false, false},
		{false, false, true, true},
		{false, false, false, false},
	}
	for _, tt := range tests {
		got := Eval(e, map[string]bool{"a": tt.a, "b": tt.b, "c": tt.c})
		if got != tt.want {
			t.Errorf("Eval(a=%v,b=%v,c=%v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
		}
	}
}

func TestFlattenAbsorbsNesting(t *testing.T) {
	e := And(And(Var("a"), Var("b")), Var("c"))
	if len(e.Children) != 3 {
		t.Fatalf("And flatten: got %d children, want 3", len(e.Children))
	}
}
