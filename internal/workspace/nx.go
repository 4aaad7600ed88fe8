// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package workspace

import (
	"github.com/davetashner/wsinfo/internal/jsonfile"
)

// nxDefaultPatterns are the conventional workspace directories in an Nx monorepo.
var nxDefaultPatterns = []string{"packages/*", "apps/*", "libs/*"}

// nxFormat detects an Nx monorepo by the presence of nx.json. If
// workspaceLayout is defined, its directories are used; otherwise the
// conventional packages/*, apps/*, libs/* layout applies.
var nxFormat = kindFormat{
	kind:   KindNx,
	marker: "nx.json",
	parse:  parseNx,
}

func parseNx(data []byte) (manifest, error) {
	doc, err := jsonfile.Decode(data)
	if err != nil {
		return manifest{}, err
	}

	var patterns []string
	if layout, ok := doc["workspaceLayout"].(map[string]any); ok {
		for _, key := range []string{"appsDir", "libsDir"} {
			if dir, ok := layout[key].(string); ok && dir != "" {
				patterns = append(patterns, dir+"/*")
			}
		}
	}
	if len(patterns) == 0 {
		patterns = nxDefaultPatterns
	}
	return manifest{Patterns: patterns, Fields: doc}, nil
}
