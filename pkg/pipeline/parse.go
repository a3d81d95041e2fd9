package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/sosatree/sosatree/pkg/errors"
	"github.com/sosatree/sosatree/pkg/gedcom"
	"github.com/sosatree/sosatree/pkg/observability"
)

// ReadSource returns the raw GEDCOM bytes for the options: inline data if
// present, otherwise the contents of the source file.
func ReadSource(opts Options) ([]byte, error) {
	if len(opts.SourceData) > 0 {
		return opts.SourceData, nil
	}
	data, err := os.ReadFile(opts.Source)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", opts.Source)
	}
	return data, nil
}

// Parse turns GEDCOM bytes into a tree, emitting observability events.
func Parse(ctx context.Context, source string, data []byte) (*gedcom.Tree, error) {
	observability.Pipeline().OnParseStart(ctx, source)
	start := time.Now()

	tree, err := gedcom.Parse(bytes.NewReader(data))

	individuals := 0
	if tree != nil {
		individuals = tree.Len()
	}
	observability.Pipeline().OnParseComplete(ctx, source, individuals, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if tree.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGedcom, "no individuals in %s", sourceName(source))
	}
	return tree, nil
}

func sourceName(source string) string {
	if source == "" {
		return "uploaded data"
	}
	return source
}
