package pedigree

import (
	"github.com/sosatree/sosatree/pkg/errors"
)

// BoxDimensions is the pixel size of one individual's box plus the arrow
// icons, supplied by the presentation theme. The engine treats these as
// opaque inputs and never derives them itself.
type BoxDimensions struct {
	Width       int
	Height      int
	ArrowWidth  int
	ArrowHeight int
}

// ChartGeometry is the read-only result of a layout run: every slot with
// final coordinates, the canvas size, and the resolved presentation policy.
type ChartGeometry struct {
	Nodes                   []Slot
	Width                   int
	Height                  int
	HasAncestorsBeyondChart bool
	Policy                  Policy
	Generations             int
	Orientation             Orientation
}

// Engine computes pedigree chart geometry. It is immutable after
// construction and safe for concurrent use.
type Engine struct {
	dims     BoxDimensions
	spacingX int
	spacingY int
	clamp    bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClamping makes the engine silently clamp out-of-range generation
// counts and orientations instead of failing. The default is strict: callers
// are expected to validate their inputs, and a bad value usually means a
// caller bug that should surface.
func WithClamping() Option {
	return func(e *Engine) { e.clamp = true }
}

// New creates an engine for the given theme constants. All values are
// positive pixel integers.
func New(dims BoxDimensions, spacingX, spacingY int, opts ...Option) *Engine {
	e := &Engine{dims: dims, spacingX: spacingX, spacingY: spacingY}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout produces the positioned ancestor tree for root.
//
// In strict mode (the default) a generation count outside [2, 8] or an
// undefined orientation returns an INVALID_GENERATIONS / INVALID_ORIENTATION
// error. With [WithClamping] both are clamped into range instead.
func (e *Engine) Layout(root Individual, generations int, mode Orientation) (*ChartGeometry, error) {
	switch {
	case generations >= MinGenerations && generations <= MaxGenerations:
	case e.clamp:
		generations = min(max(generations, MinGenerations), MaxGenerations)
	default:
		return nil, errors.New(errors.ErrCodeInvalidGenerations,
			"generations must be between %d and %d, got %d", MinGenerations, MaxGenerations, generations)
	}

	if !mode.Valid() {
		if !e.clamp {
			return nil, errors.New(errors.ErrCodeInvalidOrientation,
				"orientation must be between %d and %d, got %d", Portrait, OldestAtBottom, mode)
		}
		mode = min(max(mode, Portrait), OldestAtBottom)
	}

	slots, beyond := Collect(root, generations)

	rootHasSpouseFamily := root != nil && root.HasSpouseFamily()
	computeOffsets(slots, generations, mode, e.dims, e.spacingX, e.spacingY, rootHasSpouseFamily)

	policy := ResolvePolicy(mode, e.dims, beyond, rootHasSpouseFamily)
	width, height := normalize(slots, policy, e.dims, e.spacingX, e.spacingY)

	return &ChartGeometry{
		Nodes:                   slots,
		Width:                   width,
		Height:                  height,
		HasAncestorsBeyondChart: beyond,
		Policy:                  policy,
		Generations:             generations,
		Orientation:             mode,
	}, nil
}

// Dims returns the box dimensions the engine was built with.
func (e *Engine) Dims() BoxDimensions { return e.dims }

// Spacing returns the horizontal and vertical spacing constants.
func (e *Engine) Spacing() (x, y int) { return e.spacingX, e.spacingY }
