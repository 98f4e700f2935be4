package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gocross/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gocross",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gocross v%s\n", version.Version)
		fmt.Println("Continuous Beam Moment Distribution Tool")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
