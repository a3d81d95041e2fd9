package pedigree

// Orientation selects one of the four chart layout directions.
//
// The numeric values are load-bearing: the offset calculator uses the value
// itself in its generation-offset exponent, and comparisons against
// OldestAtTop split the modes into the vertical-canvas family (Portrait,
// Landscape) and the horizontal-canvas family (OldestAtTop, OldestAtBottom).
// Do not reorder.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
	OldestAtTop
	OldestAtBottom
)

// String returns the flag-friendly name of the orientation.
func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	case OldestAtTop:
		return "oldest-at-top"
	case OldestAtBottom:
		return "oldest-at-bottom"
	}
	return "unknown"
}

// Valid reports whether o is one of the four defined modes.
func (o Orientation) Valid() bool {
	return o >= Portrait && o <= OldestAtBottom
}

// vertical reports whether o lays the generations out on a vertical canvas.
func (o Orientation) vertical() bool { return o < OldestAtTop }

// ParseOrientation converts a flag value to an Orientation.
// Both names ("landscape") and numeric codes ("1") are accepted.
func ParseOrientation(s string) (Orientation, bool) {
	switch s {
	case "portrait", "0":
		return Portrait, true
	case "landscape", "1":
		return Landscape, true
	case "oldest-at-top", "top", "2":
		return OldestAtTop, true
	case "oldest-at-bottom", "bottom", "3":
		return OldestAtBottom, true
	}
	return 0, false
}

// Policy carries the per-orientation presentation decisions consumed by the
// offset calculator and the normalizer: which arrow icons to show and how
// much extra canvas margin to reserve for them.
type Policy struct {
	PrevGenIcon  string // icon shown beside last-generation boxes with more ancestors
	MenuIcon     string // icon for the root's family navigation menu
	ExtraOffsetX int    // extra canvas width reserved for icons
	ExtraOffsetY int    // extra canvas height reserved for icons
}

// ResolvePolicy returns the presentation policy for a mode.
//
// Portrait and Landscape share arrow icons; Portrait reserves horizontal
// margin only when ancestors exist beyond the chart bound, Landscape none.
// OldestAtTop reserves vertical margin when the root has a spouse family,
// OldestAtBottom when ancestors exist beyond the bound.
func ResolvePolicy(mode Orientation, dims BoxDimensions, ancestorsBeyondChart, rootHasSpouseFamily bool) Policy {
	switch mode {
	case Portrait:
		p := Policy{PrevGenIcon: "arrow-right", MenuIcon: "arrow-down"}
		if ancestorsBeyondChart {
			p.ExtraOffsetX = dims.ArrowWidth
		}
		return p
	case Landscape:
		return Policy{PrevGenIcon: "arrow-right", MenuIcon: "arrow-down"}
	case OldestAtTop:
		p := Policy{PrevGenIcon: "arrow-up", MenuIcon: "arrow-down"}
		if rootHasSpouseFamily {
			p.ExtraOffsetY = dims.ArrowHeight
		}
		return p
	case OldestAtBottom:
		p := Policy{PrevGenIcon: "arrow-down", MenuIcon: "arrow-up"}
		if ancestorsBeyondChart {
			p.ExtraOffsetY = dims.ArrowHeight
		}
		return p
	}
	return Policy{}
}
