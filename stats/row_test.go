package stats

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestWriterRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	row := Row{
		Search: "simple", Method: "irredundant", Synthesizer: "CEGAR",
		Solver: "native", Path: "f.pla", UpperHeight: 3, UpperWidth: 4,
		Time: 1.5, Steps: 2, SolutionHeight: 2, SolutionWidth: 2,
		HasSolution: true, LowerBound: 4, Inputs: 3, UnfoldingSteps: 2,
		NumVariables: 100, NumClauses: 400,
	}
	if err := w.WriteRow(row); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}

	r := csv.NewReader(bytes.NewReader(buf.Bytes()))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if got := records[0]; len(got) != len(Fieldnames) {
		t.Errorf("header has %d fields, want %d", len(got), len(Fieldnames))
	}
	if records[1][2] != "CEGAR" {
		t.Errorf("synthesizer field = %q, want CEGAR", records[1][2])
	}
	if records[1][9] != "2" {
		t.Errorf("solution_height field = %q, want 2", records[1][9])
	}
}

func TestWriterBlanksMissingSolution(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteRow(Row{Search: "simple"}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	r := csv.NewReader(bytes.NewReader(buf.Bytes()))
	record, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if record[9] != "" || record[10] != "" {
		t.Errorf("expected blank solution fields, got %q %q", record[9], record[10])
	}
}
