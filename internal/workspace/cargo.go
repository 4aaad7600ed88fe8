// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package workspace

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// cargoConfig represents the subset of Cargo.toml fields we need.
type cargoConfig struct {
	Workspace *cargoWorkspace `toml:"workspace"`
}

type cargoWorkspace struct {
	Members []string `toml:"members"`
	Exclude []string `toml:"exclude"`
}

// cargoFormat detects a Rust workspace defined by a [workspace] section in
// Cargo.toml. Crate manifests without that section do not claim the root.
var cargoFormat = kindFormat{
	kind:   KindCargo,
	marker: "Cargo.toml",
	claims: func(data []byte) bool {
		var cfg cargoConfig
		return toml.Unmarshal(data, &cfg) == nil && cfg.Workspace != nil
	},
	parse: parseCargo,
}

func parseCargo(data []byte) (manifest, error) {
	var cfg cargoConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return manifest{}, fmt.Errorf("Cargo.toml: %w", err)
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return manifest{}, fmt.Errorf("Cargo.toml: %w", err)
	}
	if cfg.Workspace == nil {
		return manifest{Fields: doc}, nil
	}
	return manifest{
		Patterns: cfg.Workspace.Members,
		Exclude:  cfg.Workspace.Exclude,
		Fields:   doc,
	}, nil
}
