package main

import (
	"github.com/paratype/paratype/cmd"
	"github.com/spf13/cobra"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "paratype [subcommand]",
	Short:        "paratype\n canonical forms for parametric type descriptors",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.SimplifyCmd)
	rootCmd.AddCommand(cmd.FactsCmd)
}
