package dot

import (
	"strings"
	"testing"

	"github.com/sosatree/sosatree/pkg/chart"
)

func sampleChart() chart.Chart {
	return chart.Chart{
		Generations: 2,
		Orientation: "portrait",
		Boxes: []chart.Box{
			{Sosa: 1, Generation: 1, Xref: "I1", Name: "Root Person", Sex: "M"},
			{Sosa: 2, Generation: 2, Xref: "I2", Name: "Father Person", Sex: "M"},
			{Sosa: 3, Generation: 2}, // unknown mother
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleChart(), Options{})

	checks := []string{
		"digraph pedigree {",
		"rankdir=BT",
		`"I1" [label="Root Person"`,
		`"I2" [label="Father Person"`,
		`"I1" -> "I2";`,
	}
	for _, want := range checks {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Unknown ancestors don't become nodes or edges.
	if strings.Count(dot, "->") != 1 {
		t.Errorf("want exactly one edge, got:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleChart(), Options{Detailed: true})
	if !strings.Contains(dot, "sosa: 2") {
		t.Errorf("detailed label missing sosa number:\n%s", dot)
	}
	if !strings.Contains(dot, "sex: M") {
		t.Errorf("detailed label missing sex:\n%s", dot)
	}
}

func TestToDOTFillsBySex(t *testing.T) {
	c := sampleChart()
	c.Boxes[2] = chart.Box{Sosa: 3, Generation: 2, Xref: "I3", Name: "Mother Person", Sex: "F"}
	dot := ToDOT(c, Options{})
	if !strings.Contains(dot, `fillcolor="#fce4ec"`) {
		t.Errorf("female fill missing:\n%s", dot)
	}
	if !strings.Contains(dot, `fillcolor="#e3f2fd"`) {
		t.Errorf("male fill missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if strings.Contains(out, "pt") {
		t.Errorf("point units survived: %s", out)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	in := []byte("<svg>no viewbox</svg>")
	if got := normalizeViewBox(in); string(got) != string(in) {
		t.Errorf("input without viewBox should pass through unchanged")
	}
}
