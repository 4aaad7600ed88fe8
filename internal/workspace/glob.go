package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// DefaultIgnore lists the directories that are never workspace members:
// dependency folders, test folders and anything dot-prefixed, at any depth.
var DefaultIgnore = []string{
	"**/node_modules/**",
	"**/bower_components/**",
	"**/.*/**",
	"**/__test__/**",
	"**/__tests__/**",
	"**/test/**",
	"**/tests/**",
}

// ignoreSet matches relative paths against ignore patterns. A pattern
// excludes every directory it matches together with that directory's
// subtree, so "**/test/**" drops "test" itself as well as its children.
type ignoreSet []string

func newIgnoreSet(patterns []string) (ignoreSet, error) {
	set := make(ignoreSet, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(filepath.ToSlash(p))
		if p == "" {
			continue
		}
		p = strings.TrimPrefix(p, "./")
		p = strings.TrimSuffix(p, "/")
		if trimmed := strings.TrimSuffix(p, "/**"); trimmed != "" {
			p = trimmed
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("ignore pattern %q: %w", p, doublestar.ErrBadPattern)
		}
		set = append(set, p)
	}
	return set, nil
}

// match reports whether rel or any of its ancestors matches a pattern.
func (s ignoreSet) match(rel string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i <= len(rel); i++ {
		if i < len(rel) && rel[i] != '/' {
			continue
		}
		prefix := rel[:i]
		for _, p := range s {
			if ok, _ := doublestar.Match(p, prefix); ok {
				return true
			}
		}
	}
	return false
}

// matcher expands member patterns to directories below a root.
type matcher struct {
	fsys        fs.FS
	ignore      ignoreSet
	concurrency int
}

// expand runs every pattern concurrently and merges the results in pattern
// order, lexical within a pattern, without duplicates.
func (m *matcher) expand(ctx context.Context, patterns []string) ([]string, error) {
	results := make([][]string, len(patterns))

	g, gctx := errgroup.WithContext(ctx)
	if m.concurrency > 0 {
		g.SetLimit(m.concurrency)
	}
	for i, pat := range patterns {
		i, pat := i, pat
		g.Go(func() error {
			dirs, err := m.expandOne(gctx, pat)
			if err != nil {
				return fmt.Errorf("expand pattern %q: %w", pat, err)
			}
			results[i] = dirs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, batch := range results {
		for _, d := range batch {
			if seen[d] {
				continue
			}
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs, nil
}

// expandOne walks a single pattern. The static base of a pattern with
// meta characters is never a member itself, so "packages/**" lists the
// directories below packages but not packages. Symlinks are not followed
// while walking "**", which keeps link cycles from recursing.
func (m *matcher) expandOne(ctx context.Context, pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(pattern)
	if !hasMeta(rest) {
		base = "."
	}

	var dirs []string
	err := doublestar.GlobWalk(m.fsys, pattern, func(p string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == "." || p == base || m.ignore.match(p) {
			return nil
		}
		isDir, err := m.isDir(p, d)
		if err != nil {
			return err
		}
		if isDir {
			dirs = append(dirs, p)
		}
		return nil
	}, doublestar.WithFailOnIOErrors(), doublestar.WithNoFollow())
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// isDir follows symlinks so linked package directories count as members.
func (m *matcher) isDir(p string, d fs.DirEntry) (bool, error) {
	if d == nil || d.Type()&fs.ModeSymlink != 0 {
		info, err := fs.Stat(m.fsys, p)
		if err != nil {
			return false, nil
		}
		return info.IsDir(), nil
	}
	return d.IsDir(), nil
}

// splitPatterns separates member patterns from "!" negations and rewrites
// both relative to root in slash form. Patterns that leave the root or name
// the root itself are dropped.
func splitPatterns(root string, patterns []string) (include, exclude []string) {
	for _, raw := range patterns {
		p := strings.TrimSpace(raw)
		negated := strings.HasPrefix(p, "!")
		if negated {
			p = strings.TrimSpace(p[1:])
		}
		p, ok := relPattern(root, p)
		if !ok {
			continue
		}
		if negated {
			exclude = append(exclude, p)
		} else {
			include = append(include, p)
		}
	}
	return include, exclude
}

func relPattern(root, p string) (string, bool) {
	if p == "" {
		return "", false
	}
	if native := filepath.FromSlash(p); filepath.IsAbs(native) {
		rel, err := filepath.Rel(root, native)
		if err != nil {
			return "", false
		}
		p = rel
	}
	p = path.Clean(filepath.ToSlash(p))
	if p == "." || p == ".." || strings.HasPrefix(p, "../") || strings.HasPrefix(p, "/") {
		return "", false
	}
	return p, true
}

// baseName returns the last segment of a slash separated path.
func baseName(p string) string {
	return path.Base(p)
}
