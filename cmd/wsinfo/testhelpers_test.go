package main

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/wsinfo/internal/testable"
)

// resetFlags restores every command flag to its default so tests do not
// leak state into each other through the package-level commands.
func resetFlags() {
	listOut = ""
	verbose, quiet, noColor = false, false, false
	for _, c := range []*cobra.Command{rootCmd, listCmd, whereCmd, versionCmd} {
		for _, set := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			set.VisitAll(func(f *pflag.Flag) {
				if sv, ok := f.Value.(pflag.SliceValue); ok {
					_ = sv.Replace(nil)
				} else {
					_ = f.Value.Set(f.DefValue)
				}
				f.Changed = false
			})
		}
	}
}

// execute runs the root command with args against an isolated file system
// rooted at dir and returns stdout.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	prev := cmdFS
	cmdFS = isolatedFS(dir)
	t.Cleanup(func() { cmdFS = prev })

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(append(args, "--no-color"))
	err := rootCmd.Execute()
	return buf.String(), err
}

// isolatedFS hides every file outside dir from marker lookups.
func isolatedFS(dir string) *testable.MockFileSystem {
	return &testable.MockFileSystem{
		StatFn: func(name string) (os.FileInfo, error) {
			if name != dir && !strings.HasPrefix(name, dir+string(filepath.Separator)) {
				return nil, fs.ErrNotExist
			}
			return os.Stat(name)
		},
	}
}

// initTestWorkspace creates a Lerna workspace with two packages and a
// node_modules directory that must never be listed.
func initTestWorkspace(t *testing.T) string {
	t.Helper()

	// Resolve symlinks so paths match what wsinfo resolves internally
	// (e.g., macOS /var -> /private/var).
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	writeTestFile(t, dir, "lerna.json", `{"packages": ["packages/*"], "version": "1.0.0"}`)
	writeTestFile(t, dir, "packages/alpha/package.json", `{"name": "alpha"}`)
	writeTestFile(t, dir, "packages/beta/package.json", `{"name": "beta"}`)
	writeTestFile(t, dir, "packages/node_modules/dep/package.json", `{"name": "dep"}`)
	return dir
}

func writeTestFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
