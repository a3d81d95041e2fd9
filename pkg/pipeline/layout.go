package pipeline

import (
	"context"
	"time"

	"github.com/sosatree/sosatree/pkg/chart"
	"github.com/sosatree/sosatree/pkg/errors"
	"github.com/sosatree/sosatree/pkg/gedcom"
	"github.com/sosatree/sosatree/pkg/observability"
	"github.com/sosatree/sosatree/pkg/pedigree"
	"github.com/sosatree/sosatree/pkg/theme"
)

// ResolveRoot picks the chart root: the named xref, or the first individual
// by xref order when none is named.
func ResolveRoot(tree *gedcom.Tree, xref string) (*gedcom.Individual, error) {
	if xref == "" {
		all := tree.Individuals()
		if len(all) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidGedcom, "tree has no individuals")
		}
		return all[0], nil
	}
	root, ok := tree.Individual(xref)
	if !ok {
		return nil, errors.New(errors.ErrCodeIndividualNotFound, "individual %s not found", xref)
	}
	return root, nil
}

// ComputeChart runs the layout engine for the options' root, depth, and
// orientation and converts the geometry into the serialization format.
func ComputeChart(ctx context.Context, tree *gedcom.Tree, th theme.Theme, opts Options) (chart.Chart, error) {
	root, err := ResolveRoot(tree, opts.Root)
	if err != nil {
		return chart.Chart{}, err
	}

	observability.Pipeline().OnLayoutStart(ctx, root.Xref, opts.Generations)
	start := time.Now()

	var engineOpts []pedigree.Option
	if opts.Clamp {
		engineOpts = append(engineOpts, pedigree.WithClamping())
	}
	engine := pedigree.New(th.Dimensions(), th.SpacingX, th.SpacingY, engineOpts...)

	geom, err := engine.Layout(root, opts.Generations, opts.orientation())
	observability.Pipeline().OnLayoutComplete(ctx, root.Xref, time.Since(start), err)
	if err != nil {
		return chart.Chart{}, err
	}

	return chart.FromGeometry(geom, th.Dimensions(), th.Name), nil
}
