// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package workspace

import (
	"fmt"

	"github.com/davetashner/wsinfo/internal/jsonfile"
)

// npmFormat reads the "workspaces" field of the root package.json. Member
// package.json files have no such field, so they do not claim the root.
var npmFormat = kindFormat{
	kind:   KindNpm,
	marker: "package.json",
	claims: func(data []byte) bool {
		doc, err := jsonfile.Decode(data)
		if err != nil {
			return false
		}
		_, ok := doc["workspaces"]
		return ok
	},
	parse: parseNpm,
}

// parseNpm handles both the array form ["packages/*"] and the object form
// {"packages": ["packages/*"]} used by yarn.
func parseNpm(data []byte) (manifest, error) {
	doc, err := jsonfile.Decode(data)
	if err != nil {
		return manifest{}, err
	}

	field := doc["workspaces"]
	if obj, ok := field.(map[string]any); ok {
		field = obj["packages"]
	}
	patterns, err := stringList(field)
	if err != nil {
		return manifest{Fields: doc}, fmt.Errorf("package.json workspaces: %w", err)
	}
	return manifest{Patterns: patterns, Fields: doc}, nil
}
