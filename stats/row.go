// Package stats writes one CSV row per synthesis attempt, matching
// spec.md §6's fieldnames list verbatim so existing downstream tooling
// built against the original's lattice-synth.py --dump-csv output keeps
// working unchanged. Grounded in the original's dump_csv using
// csv.DictWriter with extrasaction="ignore"; here encoding/csv.Writer
// writes every Row field in the fixed Fieldnames order.
package stats

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Fieldnames is the exact, ordered CSV header spec.md §6 specifies.
var Fieldnames = []string{
	"search", "method", "synthesizer", "solver", "path",
	"upper_height", "upper_width", "time", "steps",
	"solution_height", "solution_width", "lower_bound", "inputs",
	"unfolding_steps", "num_variables", "num_clauses",
}

// Row is one synthesis attempt's statistics. Empty string fields are
// written blank and integer fields are always written as numbers (0 when
// unset); solution_height and solution_width are the only columns left
// blank, when HasSolution is false.
type Row struct {
	Search         string
	Method         string
	Synthesizer    string
	Solver         string
	Path           string
	UpperHeight    int
	UpperWidth     int
	Time           float64
	Steps          int
	SolutionHeight int
	SolutionWidth  int
	LowerBound     int
	Inputs         int
	UnfoldingSteps int
	NumVariables   int
	NumClauses     int

	// HasSolution distinguishes "no solution found" (both
	// SolutionHeight/Width left at 0, written blank) from a genuine 0x0
	// result, which never actually occurs but keeps the CSV's semantics
	// explicit rather than relying on a sentinel dimension.
	HasSolution bool
}

func (r Row) record() []string {
	solutionHeight, solutionWidth := "", ""
	if r.HasSolution {
		solutionHeight = strconv.Itoa(r.SolutionHeight)
		solutionWidth = strconv.Itoa(r.SolutionWidth)
	}
	return []string{
		r.Search,
		r.Method,
		r.Synthesizer,
		r.Solver,
		r.Path,
		strconv.Itoa(r.UpperHeight),
		strconv.Itoa(r.UpperWidth),
		strconv.FormatFloat(r.Time, 'f', -1, 64),
		strconv.Itoa(r.Steps),
		solutionHeight,
		solutionWidth,
		strconv.Itoa(r.LowerBound),
		strconv.Itoa(r.Inputs),
		strconv.Itoa(r.UnfoldingSteps),
		strconv.Itoa(r.NumVariables),
		strconv.Itoa(r.NumClauses),
	}
}

// Writer streams Rows as CSV in Fieldnames order.
type Writer struct {
	csv *csv.Writer
}

// NewWriter returns a Writer flushing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the fixed CSV header line.
func (w *Writer) WriteHeader() error {
	if err := w.csv.Write(Fieldnames); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}

// WriteRow writes one row and flushes, so --dump-csv output streams
// incrementally the way the original's csv.DictWriter does.
func (w *Writer) WriteRow(r Row) error {
	if err := w.csv.Write(r.record()); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}
