package dimacs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lummax/switching-lattice-synth/cnf"
)

func TestParseInts(t *testing.T) {
	in := `c a comment
p cnf 3 2
1 -2 0
c another comment
-1 2 3 0
`
	got, err := ParseInts(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseInts: %v", err)
	}
	want := [][]int{{1, -2}, {-1, 2, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseInts mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIntsPercentTrailer(t *testing.T) {
	in := "p cnf 1 1\n1 0\n%\nsome trailer junk\n"
	got, err := ParseInts(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseInts: %v", err)
	}
	want := [][]int{{1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseInts mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCNFRoundTrips(t *testing.T) {
	a := cnf.Var{Kind: "test", Label: "a"}
	b := cnf.Var{Kind: "test", Label: "b"}
	clauses := []cnf.Clause{
		{cnf.Pos(a), cnf.Pos(b).Not()},
		{cnf.Pos(a).Not()},
	}
	reg := NewRegistry()
	var buf bytes.Buffer
	if err := WriteCNF(&buf, clauses, reg); err != nil {
		t.Fatalf("WriteCNF: %v", err)
	}
	parsed, err := ParseInts(&buf)
	if err != nil {
		t.Fatalf("ParseInts: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("ParseInts: got %d clauses, want 2", len(parsed))
	}
	model := reg.ModelFromInts([]int{reg.IntOf(a), -reg.IntOf(b)})
	if !model[a] || model[b] {
		t.Errorf("ModelFromInts: got %v, want a=true,b=false", model)
	}
}

func TestParseQDIMACSVerdict(t *testing.T) {
	tests := []struct {
		in       string
		wantSat  bool
		wantOK   bool
	}{
		{"s cnf 1 0 0\nUNSAT\n", false, true},
		{"SAT\n1 -2 0\n", true, true},
		{"garbage\n", false, false},
	}
	for _, tt := range tests {
		sat, ok, err := ParseQDIMACSVerdict(strings.NewReader(tt.in))
		if err != nil {
			t.Fatalf("ParseQDIMACSVerdict(%q): %v", tt.in, err)
		}
		if ok != tt.wantOK || (ok && sat != tt.wantSat) {
			t.Errorf("ParseQDIMACSVerdict(%q) = (%v,%v), want (%v,%v)", tt.in, sat, ok, tt.wantSat, tt.wantOK)
		}
	}
}
