// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package workspace

import (
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// goWorkFormat reads the use directives of a go.work file. Each directive is
// a literal directory, expanded like any other pattern.
var goWorkFormat = kindFormat{
	kind:   KindGoWork,
	marker: "go.work",
	parse:  parseGoWork,
}

func parseGoWork(data []byte) (manifest, error) {
	wf, err := modfile.ParseWork("go.work", data, nil)
	if err != nil {
		return manifest{}, err
	}

	uses := make([]any, 0, len(wf.Use))
	patterns := make([]string, 0, len(wf.Use))
	for _, use := range wf.Use {
		rel := filepath.ToSlash(filepath.Clean(use.Path))
		uses = append(uses, rel)
		patterns = append(patterns, rel)
	}

	fields := map[string]any{"use": uses}
	if wf.Go != nil {
		fields["go"] = wf.Go.Version
	}
	return manifest{Patterns: patterns, Fields: fields}, nil
}
