package workspace

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/wsinfo/internal/testable"
)

func TestResolve_LernaPackages(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{
  "packages": ["packages/*"],
  "version": "1.0.0"
}`)
	mkdirAll(t, filepath.Join(dir, "packages", "a"))
	mkdirAll(t, filepath.Join(dir, "packages", "b"))

	res, err := newTestResolver(t, dir, nil).Resolve(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, KindLerna, res.Kind)
	assert.Equal(t, dir, res.Root)
	assert.Equal(t, ManifestLoaded, res.Manifest.State)
	assert.Equal(t, "1.0.0", res.Manifest.Fields["version"])
	assert.Equal(t, Info{
		"a": {Path: "packages/a"},
		"b": {Path: "packages/b"},
	}, res.Packages)
	assert.Empty(t, res.Collisions)
}

func TestResolve_FromNestedDirectory(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/*"]}`)
	mkdirAll(t, filepath.Join(dir, "packages", "core", "src"))

	res, err := newTestResolver(t, dir, nil).Resolve(context.Background(), filepath.Join(dir, "packages", "core", "src"))
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, dir, res.Root)
	assert.Equal(t, Info{"core": {Path: "packages/core"}}, res.Packages)
}

func TestResolve_NotAWorkspace(t *testing.T) {
	dir := tempDir(t)
	mkdirAll(t, filepath.Join(dir, "some", "project"))
	start := filepath.Join(dir, "some", "project")

	var syncLog, asyncLog bytes.Buffer

	res, err := newTestResolver(t, dir, &syncLog).Resolve(context.Background(), start)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.Found())
	assert.Equal(t, StatusNotAWorkspace, res.Status)
	assert.Nil(t, res.Packages)

	out := <-newTestResolver(t, dir, &asyncLog).ResolveAsync(context.Background(), start)
	require.NoError(t, out.Err)
	assert.False(t, out.Result.Found())

	for _, buf := range []*bytes.Buffer{&syncLog, &asyncLog} {
		assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "exactly one diagnostic line")
		assert.Contains(t, buf.String(), "not a lerna workspace project")
	}
}

func TestResolve_InvalidJSON(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/*"`)
	mkdirAll(t, filepath.Join(dir, "packages", "a"))

	res, err := newTestResolver(t, dir, nil).Resolve(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, ManifestMalformed, res.Manifest.State)
	assert.Error(t, res.Manifest.Err)
	assert.Empty(t, res.Manifest.Fields)
	assert.NotNil(t, res.Packages)
	assert.Empty(t, res.Packages)
}

func TestResolve_PackagesWrongType(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": 42, "version": "2.0.0"}`)

	res, err := newTestResolver(t, dir, nil).Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, ManifestMalformed, res.Manifest.State)
	assert.ErrorIs(t, res.Manifest.Err, errInvalidPatterns)
	assert.Equal(t, "2.0.0", res.Manifest.Fields["version"])
	assert.Empty(t, res.Packages)
}

func TestResolve_PackagesAbsent(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"version": "independent"}`)
	mkdirAll(t, filepath.Join(dir, "packages", "a"))

	res, err := newTestResolver(t, dir, nil).Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, ManifestLoaded, res.Manifest.State)
	assert.Empty(t, res.Packages)
}

func TestResolve_ManifestUnreadable(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": "packages/*"}`)
	mkdirAll(t, filepath.Join(dir, "packages", "a"))

	fsys := isolatedFS(dir)
	fsys.ReadFileFn = func(string) ([]byte, error) { return nil, fs.ErrPermission }

	res, err := New(WithFS(fsys), WithLogger(discardLogger())).Resolve(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, ManifestMissing, res.Manifest.State)
	assert.ErrorIs(t, res.Manifest.Err, fs.ErrPermission)
	assert.Empty(t, res.Packages)
}

func TestResolve_StringAndListPackagesAgree(t *testing.T) {
	single := tempDir(t)
	list := tempDir(t)
	writeFile(t, filepath.Join(single, "lerna.json"), `{"packages": "pkgs/*"}`)
	writeFile(t, filepath.Join(list, "lerna.json"), `{"packages": ["pkgs/*"]}`)
	for _, dir := range []string{single, list} {
		mkdirAll(t, filepath.Join(dir, "pkgs", "one"))
		mkdirAll(t, filepath.Join(dir, "pkgs", "two"))
	}

	a, err := newTestResolver(t, single, nil).Resolve(context.Background(), single)
	require.NoError(t, err)
	b, err := newTestResolver(t, list, nil).Resolve(context.Background(), list)
	require.NoError(t, err)

	assert.Equal(t, a.Packages, b.Packages)
	assert.Len(t, a.Packages, 2)
}

func TestResolve_IgnoresDefaultDirectories(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/*", "packages/*/*"]}`)
	for _, name := range []string{
		"node_modules", "bower_components", "test", "tests",
		"__test__", "__tests__", ".git", ".cache",
	} {
		mkdirAll(t, filepath.Join(dir, "packages", name))
		mkdirAll(t, filepath.Join(dir, "packages", "real", name))
	}
	mkdirAll(t, filepath.Join(dir, "packages", "real", "src"))
	mkdirAll(t, filepath.Join(dir, "packages", "node_modules", "dep"))

	res, err := newTestResolver(t, dir, nil).Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Info{
		"real": {Path: "packages/real"},
		"src":  {Path: "packages/real/src"},
	}, res.Packages)
}

func TestResolve_DirectoriesOnly(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/*", "packages/notes.txt"]}`)
	writeFile(t, filepath.Join(dir, "packages", "notes.txt"), "not a dir")
	mkdirAll(t, filepath.Join(dir, "packages", "real"))

	res, err := newTestResolver(t, dir, nil).Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Info{"real": {Path: "packages/real"}}, res.Packages)
}

func TestResolve_NoMatches(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/*"]}`)
	mkdirAll(t, filepath.Join(dir, "packages"))

	res, err := newTestResolver(t, dir, nil).Resolve(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.NotNil(t, res.Packages)
	assert.Empty(t, res.Packages)
}

func TestResolve_SyncAndAsyncAgree(t *testing.T) {
	dir := lernaFixture(t)
	r := newTestResolver(t, dir, nil)

	syncRes, err := r.Resolve(context.Background(), dir)
	require.NoError(t, err)

	out, ok := <-r.ResolveAsync(context.Background(), dir)
	require.True(t, ok)
	require.NoError(t, out.Err)
	assert.Equal(t, syncRes, out.Result)
}

func TestResolve_AsyncChannelClosesAfterOutcome(t *testing.T) {
	dir := lernaFixture(t)
	ch := newTestResolver(t, dir, nil).ResolveAsync(context.Background(), dir)

	<-ch
	_, open := <-ch
	assert.False(t, open)
}

func TestResolve_Idempotent(t *testing.T) {
	dir := lernaFixture(t)
	r := newTestResolver(t, dir, nil)

	first, err := r.Resolve(context.Background(), dir)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_CollisionLaterPathWins(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/*", "libs/*"]}`)
	mkdirAll(t, filepath.Join(dir, "packages", "core"))
	mkdirAll(t, filepath.Join(dir, "libs", "core"))

	var logBuf bytes.Buffer
	res, err := newTestResolver(t, dir, &logBuf).Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Info{"core": {Path: "libs/core"}}, res.Packages)
	assert.Equal(t, []Collision{{Name: "core", Kept: "libs/core", Replaced: "packages/core"}}, res.Collisions)
	assert.Contains(t, logBuf.String(), "duplicate package name")
}

func TestResolve_StrictRejectsCollision(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/*", "libs/*"]}`)
	mkdirAll(t, filepath.Join(dir, "packages", "core"))
	mkdirAll(t, filepath.Join(dir, "libs", "core"))

	_, err := New(WithFS(isolatedFS(dir)), WithLogger(discardLogger()), WithStrict(true)).
		Resolve(context.Background(), dir)
	assert.ErrorIs(t, err, ErrNameCollision)
}

func TestResolve_NegatedPatternAndExtraIgnore(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/*", "!packages/legacy"]}`)
	mkdirAll(t, filepath.Join(dir, "packages", "legacy"))
	mkdirAll(t, filepath.Join(dir, "packages", "fixtures"))
	mkdirAll(t, filepath.Join(dir, "packages", "app"))

	res, err := New(WithFS(isolatedFS(dir)), WithLogger(discardLogger()), WithIgnore("**/fixtures")).
		Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Info{"app": {Path: "packages/app"}}, res.Packages)
}

func TestResolve_DefaultsToWorkingDirectory(t *testing.T) {
	dir := lernaFixture(t)
	fsys := isolatedFS(dir)
	fsys.GetwdFn = func() (string, error) { return filepath.Join(dir, "packages", "alpha"), nil }

	res, err := New(WithFS(fsys), WithLogger(discardLogger())).Resolve(context.Background(), "")
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, dir, res.Root)
}

func TestResolve_GetwdError(t *testing.T) {
	errGone := errors.New("cwd removed")
	fsys := &testable.MockFileSystem{GetwdFn: func() (string, error) { return "", errGone }}

	_, err := New(WithFS(fsys)).Resolve(context.Background(), "")
	assert.ErrorIs(t, err, errGone)
}

func TestResolve_Canceled(t *testing.T) {
	dir := lernaFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestResolver(t, dir, nil).Resolve(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_BadPattern(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/["]}`)
	mkdirAll(t, filepath.Join(dir, "packages"))

	_, err := newTestResolver(t, dir, nil).Resolve(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "packages/[")
}

func TestResolve_UnknownKind(t *testing.T) {
	_, err := New(WithKind("bazel")).Resolve(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindLerna, k)

	for _, want := range Kinds() {
		got, err := ParseKind(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = ParseKind("rush")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestInfo_Names(t *testing.T) {
	info := Info{"b": {Path: "packages/b"}, "a": {Path: "packages/a"}}
	assert.Equal(t, []string{"a", "b"}, info.Names())
	assert.Empty(t, Info{}.Names())
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "found", StatusFound.String())
	assert.Equal(t, "not-a-workspace", StatusNotAWorkspace.String())
	assert.Equal(t, "loaded", ManifestLoaded.String())
	assert.Equal(t, "missing", ManifestMissing.String())
	assert.Equal(t, "malformed", ManifestMalformed.String())

	var nilResult *Result
	assert.False(t, nilResult.Found())
}

func TestResolve_DoubleStarExcludesBase(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/**"]}`)
	mkdirAll(t, filepath.Join(dir, "packages", "a"))

	res, err := newTestResolver(t, dir, nil).Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Info{"a": {Path: "packages/a"}}, res.Packages)
}

func TestResolve_LinkedPackageDirectory(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/*"]}`)
	mkdirAll(t, filepath.Join(dir, "packages"))
	mkdirAll(t, filepath.Join(dir, "vendor", "shared"))
	if err := os.Symlink(filepath.Join("..", "vendor", "shared"), filepath.Join(dir, "packages", "shared")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	res, err := newTestResolver(t, dir, nil).Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Info{"shared": {Path: "packages/shared"}}, res.Packages)
}

func TestResolve_SymlinkLoopUnderDoubleStar(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/**"]}`)
	mkdirAll(t, filepath.Join(dir, "packages", "a"))
	if err := os.Symlink(filepath.Join("..", "a"), filepath.Join(dir, "packages", "a", "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	res, err := newTestResolver(t, dir, nil).Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Package{Path: "packages/a"}, res.Packages["a"])
	for _, pkg := range res.Packages {
		assert.LessOrEqual(t, strings.Count(pkg.Path, "/"), 2, "link %s was traversed", pkg.Path)
	}
}

func TestResolve_PackageLevelUsesDefaultFS(t *testing.T) {
	dir := lernaFixture(t)

	prevLog := slog.Default()
	slog.SetDefault(discardLogger())
	t.Cleanup(func() { slog.SetDefault(prevLog) })

	prev := testable.DefaultFS
	testable.DefaultFS = isolatedFS(dir)
	t.Cleanup(func() { testable.DefaultFS = prev })

	res, err := Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, res.Packages.Names())

	testable.DefaultFS = &testable.MockFileSystem{
		StatFn: func(string) (os.FileInfo, error) { return nil, fs.ErrNotExist },
	}
	out := <-ResolveAsync(context.Background(), dir)
	require.NoError(t, out.Err)
	assert.False(t, out.Result.Found(), "package-level resolver picks up the current DefaultFS")
}

// --- helpers ---

// tempDir returns a symlink-free temporary directory so it compares equal
// to the resolved workspace root.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

// isolatedFS hides every marker file outside dir so fixtures never pick up
// a manifest from the machine running the tests.
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

func newTestResolver(t *testing.T, dir string, logBuf *bytes.Buffer, opts ...Option) *Resolver {
	t.Helper()
	logger := discardLogger()
	if logBuf != nil {
		logger = slog.New(slog.NewTextHandler(logBuf, nil))
	}
	base := []Option{WithFS(isolatedFS(dir)), WithLogger(logger)}
	return New(append(base, opts...)...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func lernaFixture(t *testing.T) string {
	t.Helper()
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "lerna.json"), `{"packages": ["packages/*"]}`)
	mkdirAll(t, filepath.Join(dir, "packages", "alpha"))
	mkdirAll(t, filepath.Join(dir, "packages", "beta"))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func mkdirAll(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o750))
}
