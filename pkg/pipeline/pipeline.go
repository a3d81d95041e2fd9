// Package pipeline provides the core chart pipeline for sosatree.
//
// This package implements the complete parse → layout → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read a GEDCOM source into an individual/family tree
//  2. Layout: Compute box positions for the chosen root and orientation
//  3. Render: Generate output in various formats (SVG, JSON, DOT, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:      "family.ged",
//	    Root:        "I1",
//	    Generations: 4,
//	    Orientation: "landscape",
//	    Formats:     []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sosatree/sosatree/pkg/cache"
	"github.com/sosatree/sosatree/pkg/chart"
	"github.com/sosatree/sosatree/pkg/errors"
	"github.com/sosatree/sosatree/pkg/gedcom"
	"github.com/sosatree/sosatree/pkg/pedigree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultGenerations is the number of generations shown when the caller
	// doesn't ask for a specific depth.
	DefaultGenerations = 4

	// DefaultOrientation is the default chart orientation.
	DefaultOrientation = "portrait"

	// DefaultTheme is the built-in theme used when none is named.
	DefaultTheme = "classic"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Source     string `json:"source,omitempty"`      // Path to a GEDCOM file
	SourceData []byte `json:"source_data,omitempty"` // Inline GEDCOM content (API uploads)
	Refresh    bool   `json:"refresh,omitempty"`     // Bypass the tree cache

	// Layout options
	Root        string `json:"root,omitempty"` // Root xref; empty picks the first individual
	Generations int    `json:"generations,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Clamp       bool   `json:"clamp,omitempty"` // Clamp out-of-range inputs instead of failing

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Theme    string   `json:"theme,omitempty"`
	ThemeDir string   `json:"-"`
	NoLines  bool     `json:"no_lines,omitempty"` // Suppress connector lines in SVG
	Detailed bool     `json:"detailed,omitempty"` // Sosa numbers and sex in DOT labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed GEDCOM tree.
	Tree *gedcom.Tree

	// TreeHash is the content hash of the GEDCOM source.
	TreeHash string

	// Chart contains the computed chart geometry.
	Chart chart.Chart

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Individuals int
	Boxes       int
	ParseTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the source came from cache
	LayoutHit bool // Whether the chart came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json, dot, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrientation checks that an orientation name or code is valid.
func ValidateOrientation(s string) error {
	if _, ok := pedigree.ParseOrientation(s); !ok {
		return errors.New(errors.ErrCodeInvalidOrientation,
			"invalid orientation: %q (must be one of: portrait, landscape, oldest-at-top, oldest-at-bottom)", s)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Source == "" && len(o.SourceData) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "source or source_data is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Generations == 0 {
		o.Generations = DefaultGenerations
	}
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
//
// Generations are range-checked by the engine itself (strict or clamped per
// o.Clamp), so only the orientation and root xref are validated here.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Root != "" {
		if err := errors.ValidateXref(o.Root); err != nil {
			return err
		}
	}
	if o.Clamp {
		return nil
	}
	return ValidateOrientation(o.Orientation)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Theme != DefaultTheme {
		return errors.ValidateThemeName(o.Theme)
	}
	return nil
}

// orientation returns the parsed orientation, clamping unknown names to
// portrait when clamping is enabled.
func (o *Options) orientation() pedigree.Orientation {
	mode, ok := pedigree.ParseOrientation(o.Orientation)
	if !ok {
		return pedigree.Portrait
	}
	return mode
}

// GeometryKeyOpts returns cache key options for chart layout.
func (o *Options) GeometryKeyOpts(th themeGeometry) cache.GeometryKeyOpts {
	return cache.GeometryKeyOpts{
		Generations: o.Generations,
		Orientation: int(o.orientation()),
		Strict:      !o.Clamp,
		BoxWidth:    th.BoxWidth,
		BoxHeight:   th.BoxHeight,
		SpacingX:    th.SpacingX,
		SpacingY:    th.SpacingY,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Theme:  o.Theme,
		Lines:  !o.NoLines,
	}
}

// themeGeometry is the subset of theme fields that shape the layout.
type themeGeometry struct {
	BoxWidth  int
	BoxHeight int
	SpacingX  int
	SpacingY  int
}
