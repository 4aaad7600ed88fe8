package workspace

import (
	"fmt"

	"github.com/davetashner/wsinfo/internal/jsonfile"
)

// LernaManifest is the Lerna manifest file name.
const LernaManifest = "lerna.json"

// lernaFormat reads the "packages" field of lerna.json, which may be a single
// glob or a list of globs.
var lernaFormat = kindFormat{
	kind:   KindLerna,
	marker: LernaManifest,
	parse:  parseLerna,
}

func parseLerna(data []byte) (manifest, error) {
	doc, err := jsonfile.Decode(data)
	if err != nil {
		return manifest{}, err
	}
	patterns, err := stringList(doc["packages"])
	if err != nil {
		return manifest{Fields: doc}, fmt.Errorf("lerna.json packages: %w", err)
	}
	return manifest{Patterns: patterns, Fields: doc}, nil
}
