package boolfn

import "strings"

import "testing"

func TestReadPLAXor(t *testing.T) {
	pla := `.i 2
.o 1
.ilb a b
.ob f
00 0
01 1
10 1
11 0
.e
`
	e, err := ReadPLA(strings.NewReader(pla))
	if err != nil {
		t.Fatalf("ReadPLA: %v", err)
	}
	for _, tt := range []struct {
		a, b, want bool
	}{
		{false, false, false},
		{false, true, true},
		{true, false, true},
		{true, true, false},
	} {
		got := Eval(e, map[string]bool{"a": tt.a, "b": tt.b})
		if got != tt.want {
			t.Errorf("Eval(a=%v,b=%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestReadPLADontCare(t *testing.T) {
	pla := `.i 2
.o 1
1- 1
.e
`
	e, err := ReadPLA(strings.NewReader(pla))
	if err != nil {
		t.Fatalf("ReadPLA: %v", err)
	}
	for _, b := range []bool{false, true} {
		got := Eval(e, map[string]bool{"x0": true, "x1": b})
		if !got {
			t.Errorf("Eval(x0=true,x1=%v) = false, want true (don't-care column)", b)
		}
	}
}

func TestReadPLARejectsMultiOutput(t *testing.T) {
	pla := `.i 2
.o 2
.e
`
	if _, err := ReadPLA(strings.NewReader(pla)); err == nil {
		t.Errorf("ReadPLA: expected error for multi-output PLA, got nil")
	}
}
