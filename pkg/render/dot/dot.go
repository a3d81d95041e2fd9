// Package dot renders pedigree charts through Graphviz. Unlike the SVG sink,
// which honors the engine's exact coordinates, the DOT output hands the
// generation structure to Graphviz and lets its layout engine place the
// boxes. Useful for quick previews and for piping into other Graphviz
// tooling.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/sosatree/sosatree/pkg/chart"
	"github.com/sosatree/sosatree/pkg/errors"
	"github.com/sosatree/sosatree/pkg/pedigree"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes the Sosa number and sex in node labels.
	// When false, only the name is shown.
	Detailed bool
}

// ToDOT converts a chart to Graphviz DOT format. Each known ancestor becomes
// a node; child-to-parent edges follow the Sosa structure. Unknown ancestors
// are omitted, so the graph shows only the recorded part of the tree.
//
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(c chart.Chart, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph pedigree {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, b := range c.Boxes {
		if !b.Known() {
			continue
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", b.Xref, fmtLabel(b, opts.Detailed), fmtFill(b))
	}

	buf.WriteString("\n")
	for i, b := range c.Boxes {
		if !b.Known() {
			continue
		}
		father, mother := pedigree.ChildIndices(i)
		for _, p := range []int{father, mother} {
			if p >= len(c.Boxes) || !c.Boxes[p].Known() {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", b.Xref, c.Boxes[p].Xref)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b chart.Box, detailed bool) string {
	name := b.Name
	if name == "" {
		name = b.Xref
	}
	if !detailed {
		return name
	}
	label := fmt.Sprintf("%s\nsosa: %d", name, b.Sosa)
	if b.Sex != "" {
		label += "\nsex: " + b.Sex
	}
	return label
}

func fmtFill(b chart.Box) string {
	switch b.Sex {
	case "M":
		return `, fillcolor="#e3f2fd"`
	case "F":
		return `, fillcolor="#fce4ec"`
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG, nil)
}

func render(ctx context.Context, dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}

	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's point-based svg element into a plain
// zero-origin viewBox so the output scales cleanly in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
