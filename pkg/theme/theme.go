// Package theme defines the visual parameters of a pedigree chart: box
// dimensions, spacing between boxes, and the colors used when rendering.
//
// Themes are loaded from TOML files. The built-in "classic" theme is always
// available; additional themes can be dropped into a theme directory and
// selected by name.
package theme

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sosatree/sosatree/pkg/errors"
	"github.com/sosatree/sosatree/pkg/pedigree"
)

// Theme describes how a chart looks. Zero values are filled in from the
// classic defaults by ValidateAndSetDefaults.
type Theme struct {
	Name string `toml:"name"`

	// Box geometry. Width and Height feed directly into the layout engine;
	// ArrowWidth and ArrowHeight reserve space for the prev-generation and
	// root-family arrows.
	BoxWidth    int `toml:"box_width"`
	BoxHeight   int `toml:"box_height"`
	ArrowWidth  int `toml:"arrow_width"`
	ArrowHeight int `toml:"arrow_height"`

	// Gaps between adjacent boxes.
	SpacingX int `toml:"spacing_x"`
	SpacingY int `toml:"spacing_y"`

	Colors Colors `toml:"colors"`
}

// Colors are the fill and stroke colors used by the SVG sink. Values are
// anything SVG accepts: named colors or #rrggbb.
type Colors struct {
	Background string `toml:"background"`
	BoxFill    string `toml:"box_fill"`
	BoxStroke  string `toml:"box_stroke"`
	Line       string `toml:"line"`
	Text       string `toml:"text"`
	MaleFill   string `toml:"male_fill"`
	FemaleFill string `toml:"female_fill"`
}

// Classic returns the built-in default theme.
func Classic() Theme {
	return Theme{
		Name:        "classic",
		BoxWidth:    270,
		BoxHeight:   80,
		ArrowWidth:  20,
		ArrowHeight: 20,
		SpacingX:    20,
		SpacingY:    10,
		Colors: Colors{
			Background: "white",
			BoxFill:    "#f8f8f8",
			BoxStroke:  "#555555",
			Line:       "#999999",
			Text:       "#222222",
			MaleFill:   "#e3f2fd",
			FemaleFill: "#fce4ec",
		},
	}
}

// ValidateAndSetDefaults fills zero-valued fields from the classic theme and
// rejects negative geometry. Calling it twice is a no-op.
func (t *Theme) ValidateAndSetDefaults() error {
	def := Classic()
	if t.Name == "" {
		t.Name = def.Name
	}
	if t.BoxWidth == 0 {
		t.BoxWidth = def.BoxWidth
	}
	if t.BoxHeight == 0 {
		t.BoxHeight = def.BoxHeight
	}
	if t.ArrowWidth == 0 {
		t.ArrowWidth = def.ArrowWidth
	}
	if t.ArrowHeight == 0 {
		t.ArrowHeight = def.ArrowHeight
	}
	if t.SpacingX == 0 {
		t.SpacingX = def.SpacingX
	}
	if t.SpacingY == 0 {
		t.SpacingY = def.SpacingY
	}
	fillColors(&t.Colors, def.Colors)

	if t.BoxWidth < 0 || t.BoxHeight < 0 || t.ArrowWidth < 0 || t.ArrowHeight < 0 ||
		t.SpacingX < 0 || t.SpacingY < 0 {
		return errors.New(errors.ErrCodeInvalidTheme, "theme %q has negative geometry", t.Name)
	}
	return nil
}

func fillColors(c *Colors, def Colors) {
	if c.Background == "" {
		c.Background = def.Background
	}
	if c.BoxFill == "" {
		c.BoxFill = def.BoxFill
	}
	if c.BoxStroke == "" {
		c.BoxStroke = def.BoxStroke
	}
	if c.Line == "" {
		c.Line = def.Line
	}
	if c.Text == "" {
		c.Text = def.Text
	}
	if c.MaleFill == "" {
		c.MaleFill = def.MaleFill
	}
	if c.FemaleFill == "" {
		c.FemaleFill = def.FemaleFill
	}
}

// Dimensions converts the theme's box geometry into engine dimensions.
func (t Theme) Dimensions() pedigree.BoxDimensions {
	return pedigree.BoxDimensions{
		Width:       t.BoxWidth,
		Height:      t.BoxHeight,
		ArrowWidth:  t.ArrowWidth,
		ArrowHeight: t.ArrowHeight,
	}
}

// LoadFile reads a theme from a TOML file and applies defaults.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read theme %s", path)
	}
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "parse theme %s", path)
	}
	if err := t.ValidateAndSetDefaults(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// Load resolves a theme by name. The built-in "classic" theme needs no
// directory; anything else is looked up as <dir>/<name>.toml.
func Load(name, dir string) (Theme, error) {
	if name == "" || name == "classic" {
		return Classic(), nil
	}
	if err := errors.ValidateThemeName(name); err != nil {
		return Theme{}, err
	}
	if dir == "" {
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "theme %q requires a theme directory", name)
	}
	return LoadFile(filepath.Join(dir, name+".toml"))
}
