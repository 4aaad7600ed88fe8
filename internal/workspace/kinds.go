// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package workspace

import (
	"errors"
	"fmt"
)

// errInvalidPatterns marks a manifest whose pattern field has the wrong shape.
var errInvalidPatterns = errors.New("patterns must be a string or a list of strings")

// manifest is the parsed form of a workspace manifest.
type manifest struct {
	Patterns []string       // member globs, may contain !negations
	Exclude  []string       // extra ignore patterns
	Fields   map[string]any // the whole document
}

// kindFormat describes one manifest format.
type kindFormat struct {
	kind   Kind
	marker string

	// claims reports whether a marker file actually declares a workspace.
	// Nil means the file's presence is enough.
	claims func(data []byte) bool

	parse func(data []byte) (manifest, error)
}

// kindFormats is the ordered list of supported formats. When several markers
// sit in the same directory, the first one wins.
var kindFormats = []kindFormat{
	goWorkFormat,
	pnpmFormat,
	npmFormat,
	lernaFormat,
	nxFormat,
	cargoFormat,
}

func lookupKind(k Kind) (kindFormat, bool) {
	for _, s := range kindFormats {
		if s.kind == k {
			return s, true
		}
	}
	return kindFormat{}, false
}

// formatsFor returns the formats a resolver probes for k.
func formatsFor(k Kind) ([]kindFormat, error) {
	if k == KindAuto {
		return kindFormats, nil
	}
	s, ok := lookupKind(k)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	return []kindFormat{s}, nil
}

// stringList normalizes a decoded pattern field: a single string becomes a
// one-element list, a list must hold only strings, and absent means none.
func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{t}, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: got %T element", errInvalidPatterns, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", errInvalidPatterns, v)
	}
}
