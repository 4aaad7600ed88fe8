// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package workspace

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// pnpmFormat reads the "packages" list of pnpm-workspace.yaml. Entries
// starting with "!" exclude directories.
var pnpmFormat = kindFormat{
	kind:   KindPnpm,
	marker: "pnpm-workspace.yaml",
	parse:  parsePnpm,
}

func parsePnpm(data []byte) (manifest, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return manifest{}, fmt.Errorf("pnpm-workspace.yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	patterns, err := stringList(doc["packages"])
	if err != nil {
		return manifest{Fields: doc}, fmt.Errorf("pnpm-workspace.yaml packages: %w", err)
	}
	return manifest{Patterns: patterns, Fields: doc}, nil
}
