package cli

import (
	"fmt"
	"os"
)

// artifactWriteParams bundles arguments for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // source file, used to derive the base path
	output    string // explicit output path, may be empty
}

// writeArtifacts writes rendered artifacts to disk, one file per format.
// A single format with an explicit output path is written as-is; otherwise
// files are named <base>.<format>.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if p.output != "" && len(p.formats) == 1 {
			path = p.output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
