package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davetashner/wsinfo/internal/workspace"
)

// whereCmd prints the workspace root.
var whereCmd = &cobra.Command{
	Use:   "root [dir]",
	Short: "Print the workspace root",
	Long: `Print the root directory of the workspace containing dir (default: the
current directory). With --verbose the detected kind is printed as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWhere,
}

func init() {
	whereCmd.Flags().StringP("kind", "k", string(workspace.KindLerna), "workspace kind: "+kindNames())
}

func runWhere(cmd *cobra.Command, args []string) error {
	res, _, err := resolve(cmd, args)
	if err != nil {
		return err
	}
	if verbose {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.Root, res.Kind)
	} else {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Root)
	}
	return err
}
