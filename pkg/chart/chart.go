// Package chart defines the serialization format for computed pedigree
// charts. It is the interchange type between the layout engine, the render
// sinks, the cache, and the store: compute once, persist, re-render later.
package chart

import (
	"encoding/json"
	"os"

	"github.com/sosatree/sosatree/pkg/errors"
	"github.com/sosatree/sosatree/pkg/gedcom"
	"github.com/sosatree/sosatree/pkg/pedigree"
)

// =============================================================================
// Chart - Unified Serialization Format
// =============================================================================

// Chart is the canonical serialization format for a computed pedigree chart.
// Used for API responses, storage, caching, and re-rendering without
// recomputing the layout.
type Chart struct {
	// Root identification
	RootXref string `json:"root_xref" bson:"root_xref"`
	RootName string `json:"root_name,omitempty" bson:"root_name,omitempty"`

	// Layout inputs
	Generations int    `json:"generations" bson:"generations"`
	Orientation string `json:"orientation" bson:"orientation"`
	Theme       string `json:"theme,omitempty" bson:"theme,omitempty"`

	// Canvas dimensions
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`

	// Box geometry used for the layout (needed to re-render faithfully)
	BoxWidth  int `json:"box_width" bson:"box_width"`
	BoxHeight int `json:"box_height" bson:"box_height"`

	// Positioned ancestor boxes, one per arena slot, in Sosa order
	Boxes []Box `json:"boxes" bson:"boxes"`

	// Presentation policy
	HasAncestorsBeyondChart bool   `json:"has_ancestors_beyond_chart,omitempty" bson:"has_ancestors_beyond_chart,omitempty"`
	PrevGenIcon             string `json:"prev_gen_icon,omitempty" bson:"prev_gen_icon,omitempty"`
	MenuIcon                string `json:"menu_icon,omitempty" bson:"menu_icon,omitempty"`
}

// Box is one positioned individual in the chart. Empty Xref means the
// ancestor is unknown; the slot still carries coordinates so sinks can draw
// a placeholder.
type Box struct {
	Sosa       int    `json:"sosa" bson:"sosa"`
	Generation int    `json:"generation" bson:"generation"`
	Xref       string `json:"xref,omitempty" bson:"xref,omitempty"`
	Name       string `json:"name,omitempty" bson:"name,omitempty"`
	Sex        string `json:"sex,omitempty" bson:"sex,omitempty"`
	X          int    `json:"x" bson:"x"`
	Y          int    `json:"y" bson:"y"`
}

// Known reports whether the box holds a recorded individual.
func (b *Box) Known() bool { return b.Xref != "" }

// =============================================================================
// Geometry → Chart Conversion
// =============================================================================

// FromGeometry converts engine output into the serialization format.
// Individuals that are *gedcom.Individual contribute xref, name and sex;
// any other implementation yields anonymous boxes with coordinates only.
func FromGeometry(g *pedigree.ChartGeometry, dims pedigree.BoxDimensions, themeName string) Chart {
	c := Chart{
		Generations:             g.Generations,
		Orientation:             g.Orientation.String(),
		Theme:                   themeName,
		Width:                   g.Width,
		Height:                  g.Height,
		BoxWidth:                dims.Width,
		BoxHeight:               dims.Height,
		HasAncestorsBeyondChart: g.HasAncestorsBeyondChart,
		PrevGenIcon:             g.Policy.PrevGenIcon,
		MenuIcon:                g.Policy.MenuIcon,
		Boxes:                   make([]Box, len(g.Nodes)),
	}

	for i, slot := range g.Nodes {
		b := Box{
			Sosa:       pedigree.SosaOf(i),
			Generation: pedigree.GenerationOf(i),
			X:          slot.X,
			Y:          slot.Y,
		}
		if ind, ok := slot.Individual.(*gedcom.Individual); ok && ind != nil {
			b.Xref = ind.Xref
			b.Name = ind.Name
			b.Sex = ind.Sex
		}
		c.Boxes[i] = b
	}

	if len(c.Boxes) > 0 {
		c.RootXref = c.Boxes[0].Xref
		c.RootName = c.Boxes[0].Name
	}

	return c
}

// =============================================================================
// Chart Serialization API
// =============================================================================

// Marshal serializes a Chart to pretty-printed JSON bytes.
func Marshal(c Chart) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Chart.
// Validates that the structure is a plausible chart, so a stale or foreign
// cache entry fails loudly instead of rendering an empty canvas.
func Unmarshal(data []byte) (Chart, error) {
	var c Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return Chart{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal chart")
	}

	if len(c.Boxes) == 0 {
		return Chart{}, errors.New(errors.ErrCodeInvalidFormat, "chart contains no boxes")
	}
	if want := pedigree.Treesize(c.Generations); len(c.Boxes) != want {
		return Chart{}, errors.New(errors.ErrCodeInvalidFormat,
			"chart has %d boxes, want %d for %d generations", len(c.Boxes), want, c.Generations)
	}
	if _, ok := pedigree.ParseOrientation(c.Orientation); !ok {
		return Chart{}, errors.New(errors.ErrCodeInvalidOrientation, "unknown orientation %q", c.Orientation)
	}

	return c, nil
}

// WriteFile writes a Chart to a JSON file.
func WriteFile(c Chart, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Chart from a JSON file.
func ReadFile(path string) (Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return Unmarshal(data)
}
