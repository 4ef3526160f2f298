// Command latsynth synthesizes minimum-area two-terminal switching
// lattices for a target Boolean function via CNF/QBF SAT reduction.
// Grounded in the original's lattice-synth.py CLI; replaces its argparse
// surface with cobra/pflag the way this module's other commands do.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lummax/switching-lattice-synth/lattice"
	"github.com/lummax/switching-lattice-synth/stats"
)

var (
	flagVerbose        bool
	flagSATSolver      string
	flagQBFSolver      string
	flagSynthesizers   []string
	flagSearch         string
	flagMethod         string
	flagDumpCSV        bool
	flagDumpCSVHeader  bool
	flagDumpDimacs     bool
	flagNoDecode       bool
	flagPrintReference bool
	flagFunctions      []string
	flagUpperBound     string
	flagListSATSolver  bool
	flagListQBFSolver  bool
	flagListSynth      bool
	flagListSearch     bool
	flagListMethod     bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latsynth [flags] [path...]",
		Short: "Synthesize minimum-area two-terminal switching lattices",
		Long: `latsynth searches for the smallest two-terminal switching lattice
realizing a target Boolean function, encoding lattice validity as CNF or
QBF and discharging it to a SAT or QBF solver.

Functions come from --function expressions and/or positional PLA file
paths; at least one is required unless a --list-* flag is given.`,
		RunE:          runLatsynth,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")
	cmd.Flags().StringVar(&flagSATSolver, "sat-solver", "native", "SAT solver backend ("+strings.Join(satSolverNames, ", ")+", or a path to an external DIMACS solver)")
	cmd.Flags().BoolVar(&flagListSATSolver, "list-sat-solver", false, "list available SAT solver backends and exit")
	cmd.Flags().StringVar(&flagQBFSolver, "qbf-solver", "depqbf", "QBF solver backend ("+strings.Join(qbfSolverNames, ", ")+")")
	cmd.Flags().BoolVar(&flagListQBFSolver, "list-qbf-solver", false, "list available QBF solver backends and exit")
	cmd.Flags().StringSliceVar(&flagSynthesizers, "synthesizer", nil, "synthesizer(s) to run ("+strings.Join(synthesizerNames, ", ")+"); repeatable, default all")
	cmd.Flags().BoolVar(&flagListSynth, "list-synthesizer", false, "list available synthesizers and exit")
	cmd.Flags().StringVar(&flagSearch, "search", "simple", "dimension search strategy ("+strings.Join(searchNames, ", ")+")")
	cmd.Flags().BoolVar(&flagListSearch, "list-search", false, "list available search strategies and exit")
	cmd.Flags().StringVar(&flagMethod, "method", "irredundant", "lattice validity encoding ("+strings.Join(methodNames, ", ")+")")
	cmd.Flags().BoolVar(&flagListMethod, "list-method", false, "list available encodings and exit")
	cmd.Flags().BoolVar(&flagDumpCSV, "dump-csv", false, "write results as CSV instead of human-readable text")
	cmd.Flags().BoolVar(&flagDumpCSVHeader, "dump-csv-header", false, "print the CSV header and exit")
	cmd.Flags().BoolVar(&flagDumpDimacs, "dump-dimacs", false, "dump the generated DIMACS/QDIMACS formula for every qbf/qbfu oracle call to stderr (cegar calls are not dumped)")
	cmd.Flags().BoolVar(&flagNoDecode, "no-decode", false, "skip decoding a found model into a lattice grid")
	cmd.Flags().BoolVar(&flagPrintReference, "print-reference", false, "also print the Dual Product reference construction for each function")
	cmd.Flags().StringArrayVar(&flagFunctions, "function", nil, "inline Boolean expression to synthesize; repeatable")
	cmd.Flags().StringVar(&flagUpperBound, "upper-bound", "", "override the search upper bound as m,n; only valid with --search=simple")

	return cmd
}

func runLatsynth(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		log.SetLevel(log.DebugLevel)
	}

	switch {
	case flagListSATSolver:
		printChoices("sat-solver", satSolverNames)
		return nil
	case flagListQBFSolver:
		printChoices("qbf-solver", qbfSolverNames)
		return nil
	case flagListSynth:
		printChoices("synthesizer", synthesizerNames)
		return nil
	case flagListSearch:
		printChoices("search", searchNames)
		return nil
	case flagListMethod:
		printChoices("method", methodNames)
		return nil
	case flagDumpCSVHeader:
		return stats.NewWriter(os.Stdout).WriteHeader()
	}

	if flagUpperBound != "" && flagSearch != "" && flagSearch != "simple" {
		return fmt.Errorf("latsynth: --upper-bound is only valid with --search=simple")
	}
	var upperOverride *lattice.Dims
	if flagUpperBound != "" {
		dims, err := parseDims(flagUpperBound)
		if err != nil {
			return err
		}
		upperOverride = &dims
	}

	functions, err := buildFunctions(flagFunctions, args)
	if err != nil {
		return err
	}
	if len(functions) == 0 {
		return fmt.Errorf("latsynth: no functions given; pass --function or a PLA path")
	}

	cfg := runConfig{
		searchName:     flagSearch,
		methodName:     flagMethod,
		synthesizers:   flagSynthesizers,
		satSolver:      flagSATSolver,
		qbfSolver:      flagQBFSolver,
		upperOverride:  upperOverride,
		printReference: flagPrintReference,
		noDecode:       flagNoDecode,
		dumpDimacs:     flagDumpDimacs,
		dumpOut:        os.Stderr,
	}

	rows, err := iterateFunctions(context.Background(), cfg, functions)
	if err != nil {
		return err
	}

	if flagDumpCSV {
		w := stats.NewWriter(os.Stdout)
		if err := w.WriteHeader(); err != nil {
			return err
		}
		for _, row := range rows {
			if err := w.WriteRow(row); err != nil {
				return err
			}
		}
		return nil
	}

	printResults(os.Stdout, rows)
	return nil
}

func parseDims(s string) (lattice.Dims, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return lattice.Dims{}, fmt.Errorf("latsynth: --upper-bound must be m,n, got %q", s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return lattice.Dims{}, fmt.Errorf("latsynth: --upper-bound m: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return lattice.Dims{}, fmt.Errorf("latsynth: --upper-bound n: %w", err)
	}
	return lattice.Dims{M: m, N: n}, nil
}
