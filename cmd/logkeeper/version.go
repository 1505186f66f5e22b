package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set at build time via -ldflags
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("logkeeper %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}
