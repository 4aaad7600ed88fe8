package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the wsinfo version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version of the wsinfo binary.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wsinfo %s\n", Version)
	},
}
