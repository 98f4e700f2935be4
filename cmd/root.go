package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gocross/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gocross",
	Short: "Continuous Beam Moment Distribution Tool",
	Long: `gocross - Go Continuous Beam Solver

A CLI tool for the analysis of continuous beams using the
moment distribution (Hardy Cross) method.

This tool helps structural engineers perform:
  - Fixed-end moment derivation per span and boundary condition
  - Iterative joint balancing with a replayable step history
  - Single-step, automatic, and run-to-convergence solving
  - Topology edits (insert/delete/move supports, change loads)
  - Bending moment diagrams (terminal and image export)

Uniform span loads only; spans are Euler-Bernoulli flexural members.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gocross v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Continuous Beam Solver                               ║")
		fmt.Println("  ║   Alexius S. Academia ©  2026                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the analysis of continuous beams using the")
		fmt.Println("  moment distribution (Hardy Cross) method.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Fixed-end moments for pinned, fixed and free outer ends")
		fmt.Println("    • Greedy joint balancing with full step audit trail")
		fmt.Println("    • Live topology editing of supports and loads")
		fmt.Println("    • ASCII and image bending moment diagrams")
		fmt.Println()
		fmt.Println("  Use 'gocross --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
