package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexiusacademia/gocross/internal/cross"
	"github.com/spf13/cobra"
)

var (
	stepFile     string
	stepSpans    []string
	stepLeft     string
	stepRight    string
	stepDecimals int
	stepMaxSteps int

	stepNode  int
	stepCount int
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Balance the beam one step at a time",
	Long: `Initialize a beam and perform individual balancing steps, printing
each step record as it happens.

With --node, each step balances that joint (1-based); the step is a no-op
when the joint is already within tolerance. Without --node, each step
picks the most unbalanced joint, largest residual first, lowest joint
number on ties.

Examples:
  # Watch the first five automatic steps
  gocross step --file beam.txt --count 5

  # Balance joint 2 once by hand
  gocross step --file beam.txt --node 2`,
	Run: runStep,
}

func init() {
	rootCmd.AddCommand(stepCmd)

	stepCmd.Flags().StringVarP(&stepFile, "file", "f", "", "Beam file to step through")
	stepCmd.Flags().StringArrayVarP(&stepSpans, "span", "s", nil, "Span as L:q or L:q:EI (repeatable, left to right)")
	stepCmd.Flags().StringVar(&stepLeft, "left", "pinned", "Left boundary: pinned, fixed or free")
	stepCmd.Flags().StringVar(&stepRight, "right", "pinned", "Right boundary: pinned, fixed or free")
	stepCmd.Flags().IntVarP(&stepDecimals, "decimals", "d", cross.DefaultDecimals, "Moment tolerance in decimal places (0-2)")
	stepCmd.Flags().IntVar(&stepMaxSteps, "max-steps", cross.DefaultMaxSteps, "Balancing step budget")

	stepCmd.Flags().IntVarP(&stepNode, "node", "n", 0, "Joint to balance (1-based, 0 = most unbalanced)")
	stepCmd.Flags().IntVarP(&stepCount, "count", "c", 1, "Number of steps to perform")
}

func runStep(cmd *cobra.Command, args []string) {
	def, err := buildDefinition(stepFile, stepSpans, stepLeft, stepRight, stepDecimals)
	if err != nil {
		fail(err)
	}

	solver := cross.New(cross.Options{MaxSteps: stepMaxSteps})
	if err := initializeSolver(solver, def); err != nil {
		fail(err)
	}

	printHeader("STEP-BY-STEP BALANCING")

	fmt.Println("FIXED-END MOMENTS (kN-m):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	printMembers(solver)

	for i := 0; i < stepCount; i++ {
		var stepped bool
		var err error
		if stepNode > 0 {
			stepped, err = solver.StepAt(stepNode - 1)
		} else {
			stepped, err = solver.AutoStep()
		}
		if err != nil {
			if errors.Is(err, cross.ErrStepOverflow) {
				fmt.Printf("  NOT CONVERGED: %v\n", err)
				os.Exit(1)
			}
			fail(err)
		}
		if !stepped {
			if stepNode > 0 && (stepNode > solver.NumNodes()) {
				fmt.Printf("  No such joint: %d (beam has %d interior joints).\n", stepNode, solver.NumNodes())
			} else if stepNode > 0 {
				fmt.Printf("  Joint %d is already within tolerance; nothing to do.\n", stepNode)
			} else {
				fmt.Println("  All joints are within tolerance; the beam is converged.")
			}
			break
		}

		steps := solver.Steps()
		st := steps[len(steps)-1]
		fmt.Printf("  Step %d: joint %d  bml=%s  bmr=%s  tml=%s  tmr=%s\n",
			len(steps), st.Node+1,
			solver.FormatMoment(st.BML), solver.FormatMoment(st.BMR),
			solver.FormatMoment(st.TML), solver.FormatMoment(st.TMR))
	}
	fmt.Println()

	fmt.Println("CURRENT END MOMENTS (kN-m):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	printMembers(solver)

	if solver.HasMoreSteps() {
		fmt.Println("  Joints remain unbalanced; run more steps or 'gocross solve'.")
	} else {
		fmt.Println("  The beam is converged.")
	}
	fmt.Println()
}
