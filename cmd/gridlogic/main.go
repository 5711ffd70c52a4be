// Command gridlogic is the CLI surface of spec §6: solve, random,
// logical, count, check, truecandidates, solvepath, step, and estimate
// subcommands over a classic or variant-augmented Sudoku grid.
//
// The teacher's cmd/sudoku/main.go (now superseded) reads a flat 81-
// character board off stdin and prints one solved/partial grid with
// mattn/go-isatty-gated instructions and fatih/color output. This
// command keeps that read-stdin-print-colored-board shape for `solve`/
// `random`, and uses github.com/spf13/cobra (the idiomatic ecosystem
// answer for a multi-subcommand CLI, adopted here since the teacher's
// single-command flag-free main doesn't need one but this module's
// nine-subcommand surface does) to add the rest of spec §6's surface
// alongside it.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kpitt/gridlogic/internal/board"
	"github.com/kpitt/gridlogic/internal/format"
	"github.com/kpitt/gridlogic/internal/group"
	"github.com/kpitt/gridlogic/internal/logic"
	"github.com/kpitt/gridlogic/internal/mask"
	"github.com/kpitt/gridlogic/internal/search"
	"github.com/kpitt/gridlogic/internal/solver"
	"github.com/kpitt/gridlogic/internal/variants"
)

// cliFlags mirrors the options spec §6 names explicitly: cancellation
// token, multithread flag, max-solution count, random flag, and
// disabled-logic list.
type cliFlags struct {
	givens        string
	timeout       time.Duration
	multithread   bool
	random        bool
	maxSolutions  int
	disabledLogic []string
	verbose       bool

	antiKnight      bool
	antiKing        bool
	nonConsecutive  bool
	mainDiagonal    bool
	antiDiagonal    bool
}

func main() {
	flags := &cliFlags{}
	root := &cobra.Command{
		Use:   "gridlogic",
		Short: "Constraint-based Sudoku and variant solver",
	}
	root.PersistentFlags().StringVar(&flags.givens, "givens", "", "flat row-major givens string (81 chars for classic 9x9; '.' or '0' for empty)")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "cancel the operation after this duration (0 = no timeout)")
	root.PersistentFlags().BoolVar(&flags.multithread, "multithread", false, "partition the search across worker goroutines")
	root.PersistentFlags().BoolVar(&flags.random, "random", false, "randomize search branch order")
	root.PersistentFlags().IntVar(&flags.maxSolutions, "max-solutions", 0, "stop counting after this many solutions (0 = exhaustive)")
	root.PersistentFlags().StringSliceVar(&flags.disabledLogic, "disable-logic", nil, "comma-separated technique families to disable: tuples,pointing,fishes,wings,contradictions")
	root.PersistentFlags().BoolVar(&flags.antiKnight, "anti-knight", false, "add the anti-knight variant constraint")
	root.PersistentFlags().BoolVar(&flags.antiKing, "anti-king", false, "add the anti-king variant constraint")
	root.PersistentFlags().BoolVar(&flags.nonConsecutive, "non-consecutive", false, "add the non-consecutive variant constraint")
	root.PersistentFlags().BoolVar(&flags.mainDiagonal, "main-diagonal", false, "add a main-diagonal uniqueness group")
	root.PersistentFlags().BoolVar(&flags.antiDiagonal, "anti-diagonal", false, "add an anti-diagonal uniqueness group")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log every propagation cascade step to stderr")

	root.AddCommand(
		newSolveCmd(flags, false),
		newSolveCmd(flags, true),
		newLogicalCmd(flags),
		newCountCmd(flags),
		newCheckCmd(flags),
		newTrueCandidatesCmd(flags),
		newSolvePathCmd(flags),
		newStepCmd(flags),
		newEstimateCmd(flags),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildSolver constructs a Solver over the classic 9x9 shape (spec's
// default board), applies --givens if given, wires any requested
// variant constraints, and runs FinalizeConstraints. Solver failures
// are reported on stderr without a non-zero exit, per spec §6.
func buildSolver(flags *cliFlags) (*solver.Solver, error) {
	shape := board.Classic9x9
	s := solver.New(shape, classicRegions(shape))

	if flags.verbose {
		s.Kernel.Log = zerolog.New(os.Stderr).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	if flags.antiKnight {
		s.AddConstraint(variants.NewAntiKnight(shape.Height, shape.Width))
	}
	if flags.antiKing {
		s.AddConstraint(variants.NewAntiKing(shape.Height, shape.Width))
	}
	if flags.nonConsecutive {
		s.AddConstraint(variants.NewNonConsecutive())
	}
	if flags.mainDiagonal {
		cells := variants.MainDiagonalCells(shape.Height)
		s.AddExtraGroup(cells, group.Diagonal)
		s.AddConstraint(variants.NewDiagonal("Main Diagonal", cells))
	}
	if flags.antiDiagonal {
		cells := variants.AntiDiagonalCells(shape.Height)
		s.AddExtraGroup(cells, group.Diagonal)
		s.AddConstraint(variants.NewDiagonal("Anti-Diagonal", cells))
	}
	for _, name := range flags.disabledLogic {
		s.DisableLogic(logic.DisabledFlag(strings.TrimSpace(name)))
	}

	if flags.givens != "" {
		if err := format.ApplyGivens(s.Kernel, flags.givens); err != nil {
			return nil, err
		}
	}
	if _, err := s.FinalizeConstraints(); err != nil {
		return nil, err
	}
	return s, nil
}

// classicRegions derives the standard 3x3-box region matrix for a
// square board whose box dimensions are set in its shape.
func classicRegions(shape board.Shape) [][]int {
	regions := make([][]int, shape.Height)
	boxesPerRow := shape.Width / shape.BoxWidth
	for r := range regions {
		regions[r] = make([]int, shape.Width)
		for c := range regions[r] {
			regions[r][c] = (r/shape.BoxHeight)*boxesPerRow + c/shape.BoxWidth
		}
	}
	return regions
}

func withTimeout(flags *cliFlags) (context.Context, context.CancelFunc) {
	if flags.timeout <= 0 {
		return context.Background(), func() {}
	}
	return context.WithTimeout(context.Background(), flags.timeout)
}

func searchOptions(flags *cliFlags) search.Options {
	return search.Options{MultiThread: flags.multithread, Random: flags.random}
}

func printGrid(s *solver.Solver) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		color.HiWhite("Solution:")
	}
	format.Print(os.Stdout, s.Board(), nil)
}

func newSolveCmd(flags *cliFlags, random bool) *cobra.Command {
	name := "solve"
	short := "Find one solution via backtracking search"
	if random {
		name = "random"
		short = "Find one randomized solution via backtracking search"
	}
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSolver(flags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			flags.random = flags.random || random
			ctx, cancel := withTimeout(flags)
			defer cancel()
			grid, ok, err := s.FindSolution(ctx, searchOptions(flags))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			if !ok {
				fmt.Fprintln(os.Stderr, "no solution found")
				return nil
			}
			for r, row := range grid {
				for c, v := range row {
					s.SetMask(r, c, mask.WithSet(mask.ValueMask(v)))
				}
			}
			printGrid(s)
			return nil
		},
	}
}

func newLogicalCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logical",
		Short: "Run pure logical solving (no backtracking) to a fixpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSolver(flags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			res, _, err := s.ConsolidateBoard()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			fmt.Println("result:", res)
			printGrid(s)
			return nil
		},
	}
}

func newCountCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count completions up to --max-solutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSolver(flags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			ctx, cancel := withTimeout(flags)
			defer cancel()
			n, err := s.CountSolutions(ctx, flags.maxSolutions, searchOptions(flags), nil, nil)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			fmt.Println(n)
			return nil
		},
	}
}

func newCheckCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether the puzzle has zero, one, or multiple solutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSolver(flags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			ctx, cancel := withTimeout(flags)
			defer cancel()
			n, err := s.CountSolutions(ctx, 2, searchOptions(flags), nil, nil)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			switch n {
			case 0:
				fmt.Println("no solutions")
			case 1:
				fmt.Println("unique solution")
			default:
				fmt.Println("multiple solutions")
			}
			return nil
		},
	}
}

func newTrueCandidatesCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "truecandidates",
		Short: "Mark candidates that appear in at least one completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSolver(flags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			ctx, cancel := withTimeout(flags)
			defer cancel()
			counts, err := s.TrueCandidates(ctx, flags.maxSolutions, searchOptions(flags))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			for r, row := range counts {
				for c, cell := range row {
					var present []rune
					for v, n := range cell {
						if n > 0 {
							present = append(present, format.RuneForValue(v+1))
						}
					}
					fmt.Printf("%s: %s\n", format.FormatCell(r, c), string(present))
				}
			}
			return nil
		},
	}
}

func newSolvePathCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "solvepath",
		Short: "Print every logical step taken while consolidating the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSolver(flags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			_, steps, err := s.ConsolidateBoard()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			for _, step := range steps {
				fmt.Println(step.Description)
			}
			printGrid(s)
			return nil
		},
	}
}

func newStepCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "step",
		Short: "Run a single logical deduction step",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSolver(flags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			res, steps, err := s.StepLogic(false)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			fmt.Println("result:", res)
			for _, step := range steps {
				fmt.Println(step.Description)
			}
			return nil
		},
	}
}

func newEstimateCmd(flags *cliFlags) *cobra.Command {
	var iters int
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Monte-Carlo estimate the number of completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSolver(flags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			ctx, cancel := withTimeout(flags)
			defer cancel()
			result, err := s.EstimateSolutions(ctx, iters, searchOptions(flags), nil)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			fmt.Printf("mean=%.2f stderr=%.2f ci95=[%.2f, %.2f] iterations=%d\n",
				result.Mean, result.StdError, result.CI95Low, result.CI95High, result.Iterations)
			return nil
		},
	}
	cmd.Flags().IntVar(&iters, "iterations", 200, "number of Monte-Carlo samples")
	return cmd
}
