// Package styles defines the visual styles for pedigree chart rendering.
package styles

import "bytes"

// Style defines the visual appearance for chart rendering.
// Implementations control how the background, boxes, connectors, and labels
// are drawn.
type Style interface {
	// RenderBackground writes the canvas background for the given size.
	RenderBackground(buf *bytes.Buffer, width, height int)
	// RenderBox writes the SVG for a single individual's box.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderConnector writes the SVG for a child-to-parent connector line.
	RenderConnector(buf *bytes.Buffer, c Connector)
	// RenderText writes the SVG for a box's label text.
	RenderText(buf *bytes.Buffer, b Box)
}

// Box contains all data needed to render a single chart box.
type Box struct {
	Sosa       int    // Sosa-Stradonitz number (1 = root)
	Label      string // Display name
	Sex        string // "M", "F" or ""
	X, Y, W, H int    // Position and dimensions
	Known      bool   // Whether the slot holds a recorded individual
}

// Connector contains positioning data for a child-to-parent line.
type Connector struct {
	X1, Y1, X2, Y2 int
}
