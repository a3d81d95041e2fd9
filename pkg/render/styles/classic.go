package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/sosatree/sosatree/pkg/theme"
)

const (
	fontSizeMin   = 8.0
	fontSizeMax   = 16.0
	fontCharWidth = 0.55
	textPadding   = 8
)

// Classic renders plain rectangular boxes colored by sex, with the Sosa
// number in the corner. It is the style of the built-in classic theme.
type Classic struct {
	Colors theme.Colors
}

// NewClassic builds the classic style from a theme's colors.
func NewClassic(t theme.Theme) Classic {
	return Classic{Colors: t.Colors}
}

func (s Classic) RenderBackground(buf *bytes.Buffer, width, height int) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
		width, height, s.Colors.Background)
}

func (s Classic) RenderBox(buf *bytes.Buffer, b Box) {
	fill := s.fillFor(b)
	stroke := s.Colors.BoxStroke
	dash := ""
	if !b.Known {
		dash = ` stroke-dasharray="4 3"`
	}
	fmt.Fprintf(buf, `  <rect class="box" id="sosa-%d" x="%d" y="%d" width="%d" height="%d" rx="4" fill="%s" stroke="%s"%s/>`+"\n",
		b.Sosa, b.X, b.Y, b.W, b.H, fill, stroke, dash)
}

func (s Classic) fillFor(b Box) string {
	if !b.Known {
		return s.Colors.BoxFill
	}
	switch b.Sex {
	case "M":
		return s.Colors.MaleFill
	case "F":
		return s.Colors.FemaleFill
	}
	return s.Colors.BoxFill
}

func (s Classic) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf, `  <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
		c.X1, c.Y1, c.X2, c.Y2, s.Colors.Line)
}

func (s Classic) RenderText(buf *bytes.Buffer, b Box) {
	label := b.Label
	if !b.Known {
		label = "?"
	}
	size := fontSizeFor(b.W-2*textPadding, len(label))
	var esc bytes.Buffer
	xml.EscapeText(&esc, []byte(label))

	fmt.Fprintf(buf, `  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="central" font-size="%.1f" fill="%s">%s</text>`+"\n",
		b.X+b.W/2, b.Y+b.H/2, size, s.Colors.Text, esc.String())
	fmt.Fprintf(buf, `  <text x="%d" y="%d" font-size="%.1f" fill="%s">%d</text>`+"\n",
		b.X+4, b.Y+12, fontSizeMin+2, s.Colors.Line, b.Sosa)
}

// fontSizeFor shrinks the label font until it fits the available width.
func fontSizeFor(availWidth, textLen int) float64 {
	n := max(1, textLen)
	byWidth := float64(availWidth) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, byWidth))
}
