package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	wslog "github.com/davetashner/wsinfo/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for wsinfo.
var rootCmd = &cobra.Command{
	Use:   "wsinfo",
	Short: "List the packages of a monorepo workspace",
	Long: `Wsinfo finds the workspace root above a directory, reads its manifest
(lerna.json by default) and lists every member package directory by name.
Dependency, test and dot-prefixed directories are never members.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		wslog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(whereCmd)
	rootCmd.AddCommand(versionCmd)
}
