package main

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/lummax/switching-lattice-synth/boolfn"
	"github.com/lummax/switching-lattice-synth/lattice"
	"github.com/lummax/switching-lattice-synth/reference"
	"github.com/lummax/switching-lattice-synth/search"
	"github.com/lummax/switching-lattice-synth/stats"
)

// synthesizerNames are the --synthesizer choices, matching the original's
// "qbf", "qbfu", "cegar".
var synthesizerNames = []string{"qbf", "qbfu", "cegar"}

// searchNames are the --search choices.
var searchNames = []string{"simple", "split", "partition", "saddleback"}

// methodNames are the --method choices.
var methodNames = []string{"irredundant", "reachability"}

func synthesizerLabel(name string) string {
	switch name {
	case "qbf":
		return "QBF"
	case "qbfu":
		return "QBFU"
	case "cegar":
		return "CEGAR"
	default:
		return name
	}
}

func searchStrategy(name string) (search.Strategy, error) {
	switch name {
	case "", "simple":
		return search.Simple{}, nil
	case "split":
		return search.MinimizedSplit{}, nil
	case "partition":
		return search.BinaryPartition{}, nil
	case "saddleback":
		return search.Saddleback{}, nil
	default:
		return nil, fmt.Errorf("latsynth: unknown search strategy %q", name)
	}
}

// namedFunction is one function to synthesize, together with the path it
// came from (blank for an inline --function expression), matching the
// original's build_functions: one Function per --function flag, then one
// per positional PLA path.
type namedFunction struct {
	Path string
	Fn   *boolfn.Function
}

func buildFunctions(functionExprs []string, paths []string) ([]namedFunction, error) {
	var out []namedFunction
	for _, expr := range functionExprs {
		e, err := boolfn.Parse(expr)
		if err != nil {
			return nil, fmt.Errorf("latsynth: parsing --function %q: %w", expr, err)
		}
		out = append(out, namedFunction{Fn: boolfn.New(e, nil)})
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("latsynth: opening %q: %w", path, err)
		}
		e, err := boolfn.ReadPLA(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("latsynth: reading PLA %q: %w", path, err)
		}
		out = append(out, namedFunction{Path: path, Fn: boolfn.New(e, nil)})
	}
	return out, nil
}

// runConfig carries the resolved CLI flags iterateFunctions/runSearch need.
type runConfig struct {
	searchName     string
	methodName     string
	synthesizers   []string
	satSolver      string
	qbfSolver      string
	upperOverride  *lattice.Dims
	printReference bool
	noDecode       bool
	dumpDimacs     bool
	dumpOut        io.Writer
}

func iterateFunctions(ctx context.Context, cfg runConfig, functions []namedFunction) ([]stats.Row, error) {
	var rows []stats.Row
	strategy, err := searchStrategy(cfg.searchName)
	if err != nil {
		return nil, err
	}

	synthesizers := cfg.synthesizers
	if len(synthesizers) == 0 {
		synthesizers = synthesizerNames
	}

	for _, nf := range functions {
		if cfg.printReference {
			grid, err := reference.DualProduct(nf.Fn)
			if err != nil {
				log.Warnf("reference construction failed for %s: %v", nf.Path, err)
			} else {
				log.Infof("reference construction for %s:\n%s", nf.Path, grid.String())
			}
		}

		m0, n0 := nf.Fn.NaiveLatticeBounds()
		upper := lattice.Dims{M: m0, N: n0}
		if cfg.upperOverride != nil {
			upper = *cfg.upperOverride
		}
		lowerBound := nf.Fn.LowerBound()

		for _, synth := range synthesizers {
			oracle := buildOracle(oracleConfig{
				method:      cfg.methodName,
				synthesizer: synthesizerLabel(synth),
				fn:          nf.Fn,
				satSolver:   cfg.satSolver,
				qbfSolver:   cfg.qbfSolver,
				dumpDimacs:  cfg.dumpDimacs,
				noDecode:    cfg.noDecode,
				out:         cfg.dumpOut,
			})

			result, err := strategy.Search(ctx, oracle, upper, lowerBound)
			if err != nil {
				return rows, fmt.Errorf("latsynth: %s/%s on %s: %w", cfg.methodName, synth, nf.Path, err)
			}

			row := stats.Row{
				Search:      cfg.searchName,
				Method:      cfg.methodName,
				Synthesizer: synthesizerLabel(synth),
				Solver:      solverLabel(cfg, synth),
				Path:        nf.Path,
				UpperHeight: upper.M,
				UpperWidth:  upper.N,
				Time:        result.Elapsed.Seconds(),
				Steps:       result.Steps,
				LowerBound:  lowerBound,
				Inputs:      nf.Fn.Inputs(),
			}
			if result.Solution != nil {
				row.HasSolution = true
				row.SolutionHeight = result.Solution.Height
				row.SolutionWidth = result.Solution.Width
				row.UnfoldingSteps = result.Solution.UnfoldingSteps
				row.NumVariables = result.Solution.NumVariables
				row.NumClauses = result.Solution.NumClauses
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func solverLabel(cfg runConfig, synth string) string {
	if synth == "qbf" {
		if cfg.qbfSolver != "" {
			return cfg.qbfSolver
		}
		return "depqbf"
	}
	if cfg.satSolver != "" {
		return cfg.satSolver
	}
	return "native"
}

// printResults is the human-readable fallback when --dump-csv isn't
// given, matching the original's print_results.
func printResults(w io.Writer, rows []stats.Row) {
	for _, r := range rows {
		fmt.Fprintf(w, "%s/%s/%s on %s: ", r.Search, r.Method, r.Synthesizer, r.Path)
		if !r.HasSolution {
			fmt.Fprintln(w, "no solution found")
			continue
		}
		fmt.Fprintf(w, "%dx%d in %.3fs (%d steps)\n", r.SolutionHeight, r.SolutionWidth, r.Time, r.Steps)
	}
}
