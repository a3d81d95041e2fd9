// Package sink converts a serialized chart into output artifacts: SVG for
// display and JSON for interchange.
package sink

import (
	"bytes"
	"fmt"

	"github.com/sosatree/sosatree/pkg/chart"
	"github.com/sosatree/sosatree/pkg/pedigree"
	"github.com/sosatree/sosatree/pkg/render/styles"
	"github.com/sosatree/sosatree/pkg/theme"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     styles.Style
	showLines bool
}

// WithStyle selects the visual style. The default is the classic style with
// classic theme colors.
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithoutLines suppresses the child-to-parent connector lines.
func WithoutLines() SVGOption { return func(r *svgRenderer) { r.showLines = false } }

// RenderSVG renders a chart as a standalone SVG document.
//
// Boxes are drawn in Sosa order, connectors underneath them, labels on top.
// Unknown ancestors get dashed placeholder boxes so the tree shape stays
// readable. The output is deterministic for a given chart.
func RenderSVG(c chart.Chart, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.NewClassic(theme.Classic()), showLines: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		c.Width, c.Height, c.Width, c.Height)

	r.style.RenderBackground(&buf, c.Width, c.Height)

	if r.showLines {
		for _, conn := range buildConnectors(c) {
			r.style.RenderConnector(&buf, conn)
		}
	}

	boxes := buildBoxes(c)
	for _, b := range boxes {
		r.style.RenderBox(&buf, b)
	}
	for _, b := range boxes {
		r.style.RenderText(&buf, b)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildBoxes(c chart.Chart) []styles.Box {
	boxes := make([]styles.Box, len(c.Boxes))
	for i, b := range c.Boxes {
		boxes[i] = styles.Box{
			Sosa:  b.Sosa,
			Label: b.Name,
			Sex:   b.Sex,
			X:     b.X, Y: b.Y,
			W: c.BoxWidth, H: c.BoxHeight,
			Known: b.Known(),
		}
	}
	return boxes
}

// buildConnectors links each box to its two parent boxes, center to center.
// Lines to unknown parents are drawn too: the placeholder box is still there.
func buildConnectors(c chart.Chart) []styles.Connector {
	var conns []styles.Connector
	for i := range c.Boxes {
		father, mother := pedigree.ChildIndices(i)
		for _, p := range []int{father, mother} {
			if p >= len(c.Boxes) {
				continue
			}
			conns = append(conns, styles.Connector{
				X1: c.Boxes[i].X + c.BoxWidth/2, Y1: c.Boxes[i].Y + c.BoxHeight/2,
				X2: c.Boxes[p].X + c.BoxWidth/2, Y2: c.Boxes[p].Y + c.BoxHeight/2,
			})
		}
	}
	return conns
}
