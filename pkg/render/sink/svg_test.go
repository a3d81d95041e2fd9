package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sosatree/sosatree/pkg/chart"
)

func sampleChart() chart.Chart {
	return chart.Chart{
		RootXref:    "I1",
		RootName:    "Root Person",
		Generations: 2,
		Orientation: "landscape",
		Width:       600,
		Height:      250,
		BoxWidth:    270,
		BoxHeight:   80,
		Boxes: []chart.Box{
			{Sosa: 1, Generation: 1, Xref: "I1", Name: "Root Person", Sex: "M", X: 0, Y: 60},
			{Sosa: 2, Generation: 2, Xref: "I2", Name: "Father Person", Sex: "M", X: 300, Y: 0},
			{Sosa: 3, Generation: 2, X: 300, Y: 120}, // unknown mother
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := RenderSVG(sampleChart())

	checks := []string{
		`viewBox="0 0 600 250"`,
		`id="sosa-1"`,
		`id="sosa-2"`,
		`id="sosa-3"`,
		"Root Person",
		"Father Person",
		"stroke-dasharray", // unknown mother gets a dashed placeholder
		"<line ",
		"</svg>",
	}
	for _, want := range checks {
		if !bytes.Contains(svg, []byte(want)) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	c := sampleChart()
	a, b := RenderSVG(c), RenderSVG(c)
	if !bytes.Equal(a, b) {
		t.Error("RenderSVG output is not deterministic")
	}
}

func TestRenderSVGWithoutLines(t *testing.T) {
	svg := RenderSVG(sampleChart(), WithoutLines())
	if bytes.Contains(svg, []byte("<line ")) {
		t.Error("WithoutLines() should suppress connectors")
	}
}

func TestRenderSVGEscapesNames(t *testing.T) {
	c := sampleChart()
	c.Boxes[0].Name = `Tom & <Jerry>`
	svg := string(RenderSVG(c))
	if strings.Contains(svg, "<Jerry>") {
		t.Error("name not escaped")
	}
	if !strings.Contains(svg, "Tom &amp; &lt;Jerry&gt;") {
		t.Errorf("escaped name missing from output")
	}
}

func TestConnectorsFollowSosaStructure(t *testing.T) {
	conns := buildConnectors(sampleChart())
	// Three boxes: root connects to father and mother. Parents have no
	// parents inside the chart.
	if len(conns) != 2 {
		t.Fatalf("len(connectors) = %d, want 2", len(conns))
	}
	for _, c := range conns {
		if c.X1 != 0+270/2 {
			t.Errorf("connector does not start at root center: %+v", c)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleChart())
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	got, err := chart.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.RootXref != "I1" || len(got.Boxes) != 3 {
		t.Errorf("round-trip chart = %+v", got)
	}
}
