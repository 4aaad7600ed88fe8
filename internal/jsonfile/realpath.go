// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package jsonfile

import (
	"fmt"

	"github.com/davetashner/wsinfo/internal/testable"
)

// RealPathStrict returns the absolute, symlink-free form of path.
func RealPathStrict(fsys testable.FileSystem, path string) (string, error) {
	abs, err := fsys.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	resolved, err := fsys.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return resolved, nil
}

// RealPath is RealPathStrict that falls back to the absolute path, or to
// path itself, when resolution fails.
func RealPath(fsys testable.FileSystem, path string) string {
	resolved, err := RealPathStrict(fsys, path)
	if err == nil {
		return resolved
	}
	if abs, absErr := fsys.Abs(path); absErr == nil {
		return abs
	}
	return path
}
