package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/wsinfo/internal/config"
	"github.com/davetashner/wsinfo/internal/jsonfile"
	"github.com/davetashner/wsinfo/internal/workspace"
)

// listOut is the optional JSON output file. The remaining list flags are
// read through loadSettings so config files can supply them.
var listOut string

// listCmd prints the workspace's member packages.
var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List workspace packages",
	Long: `List the member packages of the workspace containing dir (default: the
current directory). Packages are keyed by directory name and paths are
relative to the workspace root.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("format", "f", config.FormatText,
		"output format: "+strings.Join(config.Formats(), ", "))
	listCmd.Flags().StringP("kind", "k", string(workspace.KindLerna), "workspace kind: "+kindNames())
	listCmd.Flags().StringSlice("ignore", nil, "additional ignore glob (repeatable)")
	listCmd.Flags().Bool("strict", false, "fail when two packages share a directory name")
	listCmd.Flags().StringVarP(&listOut, "out", "o", "", "also write the package map as JSON to this file")
}

func runList(cmd *cobra.Command, args []string) error {
	res, s, err := resolve(cmd, args)
	if err != nil {
		return err
	}

	if listOut != "" {
		if err := jsonfile.WriteFile(cmdFS, listOut, res.Packages, 0o644); err != nil { //nolint:gosec // output file is meant to be readable
			return exitError(ExitError, "wsinfo: %v", err)
		}
		slog.Info("package map written", "path", listOut, "packages", len(res.Packages))
	}

	if err := render(cmd.OutOrStdout(), res, s.Format); err != nil {
		return exitError(ExitError, "wsinfo: %v", err)
	}
	return nil
}

// Shared color printers for text output.
var (
	colorBold  = color.New(color.Bold)
	colorCyan  = color.New(color.FgCyan)
	colorFaint = color.New(color.Faint)
)

// render writes the package map in the requested format.
func render(w io.Writer, res *workspace.Result, format string) error {
	switch format {
	case config.FormatJSON:
		return jsonfile.Write(w, res.Packages)
	case config.FormatPaths:
		for _, name := range res.Packages.Names() {
			if _, err := fmt.Fprintln(w, res.Packages[name].Path); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderText(w, res)
	}
}

func renderText(w io.Writer, res *workspace.Result) error {
	names := res.Packages.Names()
	if _, err := fmt.Fprintf(w, "%s workspace %s (%d packages)\n",
		colorBold.Sprint(res.Kind), res.Root, len(names)); err != nil {
		return err
	}

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		pad := strings.Repeat(" ", width-len(name))
		if _, err := fmt.Fprintf(w, "  %s%s  %s\n",
			colorCyan.Sprint(name), pad, res.Packages[name].Path); err != nil {
			return err
		}
	}
	for _, c := range res.Collisions {
		if _, err := fmt.Fprintf(w, "  %s\n",
			colorFaint.Sprintf("%s: %s replaced by %s", c.Name, c.Replaced, c.Kept)); err != nil {
			return err
		}
	}
	return nil
}

func kindNames() string {
	kinds := workspace.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
