package main

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "logkeeper",
	Short: "logkeeper - retention engine for log directories",
	Long: `logkeeper walks configured log directories, compresses files past the
cool threshold, deletes files past the cold threshold, protects excluded
names from both actions, and writes an append-only audit record of
everything it did.`,
	Version: Version,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
}
