// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/davetashner/wsinfo/internal/jsonfile"
	"github.com/davetashner/wsinfo/internal/testable"
)

// DefaultConcurrency bounds how many patterns are expanded at once.
const DefaultConcurrency = 8

// Resolver maps a workspace's member packages. A Resolver holds no state
// between calls and is safe for concurrent use.
type Resolver struct {
	fs          testable.FileSystem
	logger      *slog.Logger
	kind        Kind
	ignore      []string
	strict      bool
	concurrency int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithKind selects the manifest format. KindAuto probes every format.
func WithKind(k Kind) Option {
	return func(r *Resolver) { r.kind = k }
}

// WithFS replaces the file system used for every read.
func WithFS(fsys testable.FileSystem) Option {
	return func(r *Resolver) { r.fs = fsys }
}

// WithLogger sets the logger used for diagnostics. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithIgnore adds ignore patterns on top of DefaultIgnore.
func WithIgnore(patterns ...string) Option {
	return func(r *Resolver) { r.ignore = append(r.ignore, patterns...) }
}

// WithStrict makes duplicate package names an error instead of an overwrite.
func WithStrict(strict bool) Option {
	return func(r *Resolver) { r.strict = strict }
}

// WithConcurrency bounds concurrent pattern expansion. Values below one
// select DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(r *Resolver) { r.concurrency = n }
}

// New returns a Resolver for Lerna workspaces unless options say otherwise.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		fs:          testable.DefaultFS,
		kind:        KindLerna,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency < 1 {
		r.concurrency = DefaultConcurrency
	}
	return r
}

func (r *Resolver) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// Resolve locates the workspace containing startDir (the working directory
// when empty) and maps its member packages. A directory outside any
// workspace yields a Result with StatusNotAWorkspace and a nil error.
func (r *Resolver) Resolve(ctx context.Context, startDir string) (*Result, error) {
	formats, err := formatsFor(r.kind)
	if err != nil {
		return nil, err
	}

	if startDir == "" {
		startDir, err = r.fs.Getwd()
		if err != nil {
			return nil, fmt.Errorf("working directory: %w", err)
		}
	}
	start := jsonfile.RealPath(r.fs, startDir)

	root, kf, ok, err := locateRoot(ctx, r.fs, start, formats)
	if err != nil {
		return nil, err
	}
	if !ok {
		r.log().Warn(notWorkspaceMessage(r.kind), "dir", start)
		return &Result{Status: StatusNotAWorkspace}, nil
	}

	m, info := r.readManifest(root, kf)

	include, negated := splitPatterns(root, m.Patterns)
	ignore, err := newIgnoreSet(concat(DefaultIgnore, r.ignore, m.Exclude, negated))
	if err != nil {
		return nil, err
	}

	mt := &matcher{fsys: r.fs.DirFS(root), ignore: ignore, concurrency: r.concurrency}
	dirs, err := mt.expand(ctx, include)
	if err != nil {
		return nil, err
	}

	packages, collisions := buildInfo(dirs)
	for _, c := range collisions {
		if r.strict {
			return nil, fmt.Errorf("%w %q: %s and %s", ErrNameCollision, c.Name, c.Replaced, c.Kept)
		}
		r.log().Warn("duplicate package name, later path wins",
			"name", c.Name, "kept", c.Kept, "replaced", c.Replaced)
	}

	r.log().Debug("workspace resolved",
		"kind", kf.kind, "root", root, "packages", len(packages))

	return &Result{
		Status:     StatusFound,
		Kind:       kf.kind,
		Root:       root,
		Manifest:   info,
		Packages:   packages,
		Collisions: collisions,
	}, nil
}

// Outcome carries the result of ResolveAsync.
type Outcome struct {
	Result *Result
	Err    error
}

// ResolveAsync runs Resolve on its own goroutine. The returned channel
// delivers exactly one Outcome and is then closed.
func (r *Resolver) ResolveAsync(ctx context.Context, startDir string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		res, err := r.Resolve(ctx, startDir)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}

// readManifest loads the marker file. Read and parse failures leave an
// empty pattern list; the returned info says which one happened.
func (r *Resolver) readManifest(root string, kf kindFormat) (manifest, ManifestInfo) {
	path := filepath.Join(root, kf.marker)
	info := ManifestInfo{Path: path, Fields: map[string]any{}}

	data, err := r.fs.ReadFile(path)
	if err != nil {
		info.State = ManifestMissing
		info.Err = err
		if !errors.Is(err, fs.ErrNotExist) {
			r.log().Debug("manifest unreadable", "path", path, "error", err)
		}
		return manifest{}, info
	}

	m, err := kf.parse(data)
	if m.Fields != nil {
		info.Fields = m.Fields
	}
	if err != nil {
		info.State = ManifestMalformed
		info.Err = err
		r.log().Debug("manifest malformed", "path", path, "error", err)
		return manifest{}, info
	}
	info.State = ManifestLoaded
	return m, info
}

func notWorkspaceMessage(k Kind) string {
	if k == KindAuto {
		return "not a workspace project"
	}
	return fmt.Sprintf("not a %s workspace project", k)
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Resolve runs a Lerna Resolver with default options. The resolver is built
// per call so it sees the current testable.DefaultFS and slog default.
func Resolve(ctx context.Context, startDir string) (*Result, error) {
	return New().Resolve(ctx, startDir)
}

// ResolveAsync is the asynchronous form of Resolve.
func ResolveAsync(ctx context.Context, startDir string) <-chan Outcome {
	return New().ResolveAsync(ctx, startDir)
}
