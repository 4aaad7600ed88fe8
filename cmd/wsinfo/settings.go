package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/davetashner/wsinfo/internal/config"
	"github.com/davetashner/wsinfo/internal/workspace"
)

// settings are the effective options for one command run, after layering
// global config, the .wsinfo.yaml nearest the start directory and explicit
// flags.
type settings struct {
	Kind   workspace.Kind
	Format string
	Ignore []string
	Strict bool
}

func loadSettings(flags *pflag.FlagSet, dir string) (*settings, error) {
	global, err := config.LoadGlobal(cmdFS)
	if err != nil {
		return nil, exitError(ExitError, "global config: %v", err)
	}
	repo, path, err := config.LoadNearest(cmdFS, dir)
	if err != nil {
		return nil, exitError(ExitError, "%v", err)
	}

	if path != "" {
		slog.Debug("loaded config", "path", path)
	}

	cfg := config.Merge(global, repo)
	applyFlagOverrides(flags, cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitError, "%v", err)
	}

	kind, _ := workspace.ParseKind(cfg.Kind) // validated above
	format := cfg.Format
	if format == "" {
		format = config.FormatText
	}
	return &settings{
		Kind:   kind,
		Format: format,
		Ignore: cfg.Ignore,
		Strict: cfg.StrictEnabled(),
	}, nil
}

// applyFlagOverrides copies explicitly set flags over the file config.
// Flags the command does not define are skipped.
func applyFlagOverrides(flags *pflag.FlagSet, cfg *config.Config) {
	if changed(flags, "kind") {
		cfg.Kind, _ = flags.GetString("kind")
	}
	if changed(flags, "format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if changed(flags, "strict") {
		strict, _ := flags.GetBool("strict")
		cfg.Strict = &strict
	}
	if changed(flags, "ignore") {
		extra, _ := flags.GetStringSlice("ignore")
		cfg.Ignore = append(cfg.Ignore, extra...)
	}
}

func changed(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

// resolve runs the workspace resolver for the directory named in args.
func resolve(cmd *cobra.Command, args []string) (*workspace.Result, *settings, error) {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}

	s, err := loadSettings(cmd.Flags(), dir)
	if err != nil {
		return nil, nil, err
	}

	r := workspace.New(
		workspace.WithFS(cmdFS),
		workspace.WithKind(s.Kind),
		workspace.WithIgnore(s.Ignore...),
		workspace.WithStrict(s.Strict),
		workspace.WithLogger(slog.Default()),
	)
	res, err := r.Resolve(commandContext(cmd), dir)
	if err != nil {
		return nil, nil, exitError(ExitError, "wsinfo: %v", err)
	}
	if !res.Found() {
		return res, s, exitError(ExitNotWorkspace, "")
	}
	return res, s, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
