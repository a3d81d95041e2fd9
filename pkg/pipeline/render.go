package pipeline

import (
	"context"
	"time"

	"github.com/sosatree/sosatree/pkg/chart"
	"github.com/sosatree/sosatree/pkg/observability"
	"github.com/sosatree/sosatree/pkg/render/dot"
	"github.com/sosatree/sosatree/pkg/render/sink"
	"github.com/sosatree/sosatree/pkg/render/styles"
	"github.com/sosatree/sosatree/pkg/theme"
)

// RenderChart produces the requested artifact formats for a chart.
// Formats must already be validated.
func RenderChart(ctx context.Context, c chart.Chart, th theme.Theme, opts Options) (map[string][]byte, error) {
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		data, err = renderFormat(ctx, c, th, format, opts)
		if err != nil {
			break
		}
		artifacts[format] = data
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, c chart.Chart, th theme.Theme, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithStyle(styles.NewClassic(th))}
		if opts.NoLines {
			svgOpts = append(svgOpts, sink.WithoutLines())
		}
		return sink.RenderSVG(c, svgOpts...), nil

	case FormatJSON:
		return sink.RenderJSON(c)

	case FormatDOT:
		return []byte(dot.ToDOT(c, dot.Options{Detailed: opts.Detailed})), nil

	case FormatPNG:
		// PNG goes through Graphviz; the exact engine coordinates are only
		// preserved in the SVG and JSON outputs.
		return dot.RenderPNG(ctx, dot.ToDOT(c, dot.Options{Detailed: opts.Detailed}))
	}

	return nil, ValidateFormat(format)
}
