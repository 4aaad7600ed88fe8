package workspace

import (
	"context"
	"path/filepath"

	"github.com/davetashner/wsinfo/internal/testable"
)

// locateRoot walks from start up to the filesystem root and returns the
// first directory holding a marker that claims a workspace. Within one
// directory the formats are tried in order.
func locateRoot(ctx context.Context, fsys testable.FileSystem, start string, formats []kindFormat) (string, kindFormat, bool, error) {
	dir := start
	for {
		if err := ctx.Err(); err != nil {
			return "", kindFormat{}, false, err
		}
		for _, s := range formats {
			if claimsAt(fsys, filepath.Join(dir, s.marker), s) {
				return dir, s, true, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", kindFormat{}, false, nil
		}
		dir = parent
	}
}

func claimsAt(fsys testable.FileSystem, marker string, s kindFormat) bool {
	if !fileExists(fsys, marker) {
		return false
	}
	if s.claims == nil {
		return true
	}
	data, err := fsys.ReadFile(marker)
	if err != nil {
		return false
	}
	return s.claims(data)
}

// fileExists returns true if path exists and is a regular file.
func fileExists(fsys testable.FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
