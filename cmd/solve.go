package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gocross/internal/beamfile"
	"github.com/alexiusacademia/gocross/internal/cross"
	"github.com/alexiusacademia/gocross/internal/diagram"
	"github.com/spf13/cobra"
)

var (
	solveFile     string
	solveSpans    []string
	solveLeft     string
	solveRight    string
	solveDecimals int
	solveMaxSteps int

	solveShowSteps bool
	solveDiagram   bool
	solvePNG       string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a continuous beam to convergence",
	Long: `Solve a continuous beam by the moment distribution method.

The beam comes either from a beam file (--file) or from repeated --span
flags. Each --span is L:q or L:q:EI, where L is the span length (m), q the
uniform load (kN/m), and EI the flexural stiffness (kN-m², default 10000).

Examples:
  # The classic three-span textbook beam
  gocross solve --span 8:8 --span 6:38 --span 6:28 --left pinned --right fixed

  # From a beam file, with the full balancing history
  gocross solve --file beam.txt --steps

  # Export the bending moment diagram
  gocross solve --file beam.txt --png moments.png`,
	Run: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "Beam file to solve")
	solveCmd.Flags().StringArrayVarP(&solveSpans, "span", "s", nil, "Span as L:q or L:q:EI (repeatable, left to right)")
	solveCmd.Flags().StringVar(&solveLeft, "left", "pinned", "Left boundary: pinned, fixed or free")
	solveCmd.Flags().StringVar(&solveRight, "right", "pinned", "Right boundary: pinned, fixed or free")
	solveCmd.Flags().IntVarP(&solveDecimals, "decimals", "d", cross.DefaultDecimals, "Moment tolerance in decimal places (0-2)")
	solveCmd.Flags().IntVar(&solveMaxSteps, "max-steps", cross.DefaultMaxSteps, "Balancing step budget")

	solveCmd.Flags().BoolVar(&solveShowSteps, "steps", false, "Show the balancing step history")
	solveCmd.Flags().BoolVar(&solveDiagram, "diagram", false, "Draw the ASCII bending moment diagram")
	solveCmd.Flags().StringVar(&solvePNG, "png", "", "Export the bending moment diagram to an image file")
}

func runSolve(cmd *cobra.Command, args []string) {
	def, err := buildDefinition(solveFile, solveSpans, solveLeft, solveRight, solveDecimals)
	if err != nil {
		fail(err)
	}

	solver := cross.New(cross.Options{MaxSteps: solveMaxSteps})
	if err := initializeSolver(solver, def); err != nil {
		fail(err)
	}

	printHeader("MOMENT DISTRIBUTION ANALYSIS")
	printTopology(solver)

	fmt.Println("FIXED-END MOMENTS (kN-m):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	printMembers(solver)

	if err := solver.RunToConvergence(); err != nil {
		if errors.Is(err, cross.ErrStepOverflow) {
			fmt.Println()
			fmt.Printf("  NOT CONVERGED: %v\n", err)
			fmt.Println("  The configuration may be cyclic; increase --max-steps or review the beam.")
			os.Exit(1)
		}
		fail(err)
	}

	if solveShowSteps {
		fmt.Println("BALANCING HISTORY:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		printSteps(solver)
	}

	fmt.Println("FINAL END MOMENTS (kN-m):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	printMembers(solver)

	fmt.Println("JOINTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	printNodes(solver)

	fmt.Printf("  Converged in %d steps (tolerance %g kN-m).\n", len(solver.Steps()), solver.Threshold())
	fmt.Println()

	if solveDiagram {
		data := diagram.FromSolver(solver)
		fmt.Println(diagram.DrawASCIIBeam(data))
		fmt.Println(diagram.DrawASCIIMomentDiagram(data))
	}

	if solvePNG != "" {
		if err := diagram.ExportMomentDiagram(diagram.FromSolver(solver), solvePNG); err != nil {
			fail(err)
		}
		fmt.Printf("  Moment diagram exported to %s\n", solvePNG)
		fmt.Println()
	}
}

// initializeSolver feeds a definition to the solver, downgrading an
// out-of-range tolerance to a warning since the solver recovers with its
// default.
func initializeSolver(s *cross.Solver, def *beamfile.Definition) error {
	err := s.Initialize(def.Spans, def.Left, def.Right, def.Decimals)
	if errors.Is(err, cross.ErrToleranceOutOfRange) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return nil
	}
	return err
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func printHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("          %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

func printTopology(s *cross.Solver) {
	left, right := s.Boundaries()
	fmt.Println("BEAM:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Spans:\t%d\n", s.NumMembers())
	fmt.Fprintf(w, "  Total length:\t%g m\n", s.TotalLength())
	fmt.Fprintf(w, "  Boundaries:\t%s / %s\n", left, right)
	fmt.Fprintf(w, "  Tolerance:\t%d decimal place(s)\n", s.Decimals())
	w.Flush()
	fmt.Println()
}

func printMembers(s *cross.Solver) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Span\tL (m)\tq (kN/m)\tML\tMR\n")
	fmt.Fprintf(w, "  ────\t─────\t────────\t──\t──\n")
	for i, m := range s.Members() {
		fmt.Fprintf(w, "  %d\t%g\t%g\t%s\t%s\n",
			i+1, m.L, m.Q, s.FormatMoment(m.ML), s.FormatMoment(m.MR))
	}
	w.Flush()
	fmt.Println()
}

func printNodes(s *cross.Solver) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Joint\tDL\tDR\tTL\tTR\tRotation\tUnbalance\t\n")
	fmt.Fprintf(w, "  ─────\t──\t──\t──\t──\t────────\t─────────\t\n")
	for i, n := range s.Nodes() {
		mark := ""
		if s.Unbalanced(i) {
			mark = " ← UNBALANCED"
		}
		fmt.Fprintf(w, "  %d\t%.3f\t%.3f\t%.1f\t%.1f\t%.6f\t%s%s\t\n",
			i+1, n.DL, n.DR, n.TL, n.TR, n.Rot,
			s.FormatMoment(s.UnbalancedMoment(i)), mark)
	}
	w.Flush()
	fmt.Println()
}

func printSteps(s *cross.Solver) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Step\tJoint\tBML\tBMR\tTML\tTMR\n")
	fmt.Fprintf(w, "  ────\t─────\t───\t───\t───\t───\n")
	for i, st := range s.Steps() {
		fmt.Fprintf(w, "  %d\t%d\t%s\t%s\t%s\t%s\n",
			i+1, st.Node+1,
			s.FormatMoment(st.BML), s.FormatMoment(st.BMR),
			s.FormatMoment(st.TML), s.FormatMoment(st.TMR))
	}
	w.Flush()
	fmt.Println()
}
