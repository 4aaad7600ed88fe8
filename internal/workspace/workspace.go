// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package workspace locates monorepo roots and maps their member packages
// by directory name.
//
// Resolution walks upward from a start directory to the nearest manifest
// (lerna.json by default), reads the manifest's package glob patterns and
// expands them to directories relative to the root. Directories under
// dependency, test and dot-prefixed folders are never members.
package workspace

import (
	"errors"
	"fmt"
	"sort"
)

// Kind identifies the monorepo tool or convention that defines the workspace layout.
type Kind string

const (
	KindAuto   Kind = "auto"
	KindGoWork Kind = "go-work"
	KindPnpm   Kind = "pnpm"
	KindNpm    Kind = "npm"
	KindLerna  Kind = "lerna"
	KindNx     Kind = "nx"
	KindCargo  Kind = "cargo"
)

var (
	// ErrUnknownKind is returned for a Kind with no registered manifest format.
	ErrUnknownKind = errors.New("unknown workspace kind")

	// ErrNameCollision is returned in strict mode when two member
	// directories share a basename.
	ErrNameCollision = errors.New("duplicate package name")
)

// ParseKind converts a user supplied name into a Kind. The empty string
// selects KindLerna.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindLerna, nil
	}
	k := Kind(s)
	if k == KindAuto {
		return k, nil
	}
	if _, ok := lookupKind(k); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Kinds lists every selectable kind, KindAuto first.
func Kinds() []Kind {
	out := []Kind{KindAuto}
	for _, s := range kindFormats {
		out = append(out, s.kind)
	}
	return out
}

// Package is a single member of a workspace.
type Package struct {
	Path string `json:"path"` // relative to the workspace root, slash separated
}

// Info maps member directory names to their packages.
type Info map[string]Package

// Names returns the package names in lexical order.
func (i Info) Names() []string {
	names := make([]string, 0, len(i))
	for name := range i {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Status tags the outcome of a resolution.
type Status int

const (
	StatusNotAWorkspace Status = iota
	StatusFound
)

func (s Status) String() string {
	if s == StatusFound {
		return "found"
	}
	return "not-a-workspace"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ManifestState records how the manifest read went. Missing and malformed
// manifests both resolve to an empty package set.
type ManifestState int

const (
	ManifestLoaded ManifestState = iota
	ManifestMissing
	ManifestMalformed
)

func (s ManifestState) String() string {
	switch s {
	case ManifestLoaded:
		return "loaded"
	case ManifestMissing:
		return "missing"
	default:
		return "malformed"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ManifestState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ManifestInfo describes the manifest a resolution read.
type ManifestInfo struct {
	Path   string         `json:"path"`
	State  ManifestState  `json:"state"`
	Err    error          `json:"-"`
	Fields map[string]any `json:"fields,omitempty"`
}

// Collision records a basename shared by two member directories. Later
// matches overwrite earlier ones, so Kept is the path that ends up in Info.
type Collision struct {
	Name     string `json:"name"`
	Kept     string `json:"kept"`
	Replaced string `json:"replaced"`
}

// Result is the outcome of a resolution.
type Result struct {
	Status     Status       `json:"status"`
	Kind       Kind         `json:"kind,omitempty"`
	Root       string       `json:"root,omitempty"`
	Manifest   ManifestInfo `json:"manifest"`
	Packages   Info         `json:"packages"`
	Collisions []Collision  `json:"collisions,omitempty"`
}

// Found reports whether a workspace root was located.
func (r *Result) Found() bool {
	return r != nil && r.Status == StatusFound
}

// buildInfo keys each relative path by its last segment. Paths are applied
// in order, so a later duplicate replaces an earlier one.
func buildInfo(paths []string) (Info, []Collision) {
	info := make(Info, len(paths))
	var collisions []Collision
	for _, p := range paths {
		name := baseName(p)
		if prev, ok := info[name]; ok {
			collisions = append(collisions, Collision{Name: name, Kept: p, Replaced: prev.Path})
		}
		info[name] = Package{Path: p}
	}
	return info, collisions
}
