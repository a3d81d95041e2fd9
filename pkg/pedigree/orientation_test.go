package pedigree

import "testing"

func TestOrientationString(t *testing.T) {
	tests := []struct {
		mode Orientation
		want string
	}{
		{Portrait, "portrait"},
		{Landscape, "landscape"},
		{OldestAtTop, "oldest-at-top"},
		{OldestAtBottom, "oldest-at-bottom"},
		{Orientation(9), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Orientation(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		input  string
		want   Orientation
		wantOK bool
	}{
		{"portrait", Portrait, true},
		{"0", Portrait, true},
		{"landscape", Landscape, true},
		{"1", Landscape, true},
		{"oldest-at-top", OldestAtTop, true},
		{"top", OldestAtTop, true},
		{"2", OldestAtTop, true},
		{"oldest-at-bottom", OldestAtBottom, true},
		{"bottom", OldestAtBottom, true},
		{"3", OldestAtBottom, true},
		{"diagonal", 0, false},
		{"", 0, false},
		{"4", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseOrientation(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseOrientation(%q) = (%v, %v), want (%v, %v)",
				tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestOrientationValid(t *testing.T) {
	for mode := Portrait; mode <= OldestAtBottom; mode++ {
		if !mode.Valid() {
			t.Errorf("Orientation(%d).Valid() = false, want true", mode)
		}
	}
	if Orientation(-1).Valid() {
		t.Error("Orientation(-1).Valid() = true, want false")
	}
	if Orientation(4).Valid() {
		t.Error("Orientation(4).Valid() = true, want false")
	}
}

func TestResolvePolicy(t *testing.T) {
	dims := BoxDimensions{Width: 270, Height: 80, ArrowWidth: 20, ArrowHeight: 20}

	tests := []struct {
		name        string
		mode        Orientation
		beyond      bool
		spouse      bool
		wantPrev    string
		wantMenu    string
		wantExtraX  int
		wantExtraY  int
	}{
		{
			name:       "portrait with ancestors beyond",
			mode:       Portrait,
			beyond:     true,
			wantPrev:   "arrow-right",
			wantMenu:   "arrow-down",
			wantExtraX: dims.ArrowWidth,
		},
		{
			name:     "portrait without ancestors beyond",
			mode:     Portrait,
			wantPrev: "arrow-right",
			wantMenu: "arrow-down",
		},
		{
			name:     "landscape never reserves margin",
			mode:     Landscape,
			beyond:   true,
			spouse:   true,
			wantPrev: "arrow-right",
			wantMenu: "arrow-down",
		},
		{
			name:       "oldest-at-top with spouse family",
			mode:       OldestAtTop,
			spouse:     true,
			wantPrev:   "arrow-up",
			wantMenu:   "arrow-down",
			wantExtraY: dims.ArrowHeight,
		},
		{
			name:     "oldest-at-top without spouse family",
			mode:     OldestAtTop,
			beyond:   true,
			wantPrev: "arrow-up",
			wantMenu: "arrow-down",
		},
		{
			name:       "oldest-at-bottom with ancestors beyond",
			mode:       OldestAtBottom,
			beyond:     true,
			wantPrev:   "arrow-down",
			wantMenu:   "arrow-up",
			wantExtraY: dims.ArrowHeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ResolvePolicy(tt.mode, dims, tt.beyond, tt.spouse)
			if p.PrevGenIcon != tt.wantPrev {
				t.Errorf("PrevGenIcon = %q, want %q", p.PrevGenIcon, tt.wantPrev)
			}
			if p.MenuIcon != tt.wantMenu {
				t.Errorf("MenuIcon = %q, want %q", p.MenuIcon, tt.wantMenu)
			}
			if p.ExtraOffsetX != tt.wantExtraX {
				t.Errorf("ExtraOffsetX = %d, want %d", p.ExtraOffsetX, tt.wantExtraX)
			}
			if p.ExtraOffsetY != tt.wantExtraY {
				t.Errorf("ExtraOffsetY = %d, want %d", p.ExtraOffsetY, tt.wantExtraY)
			}
		})
	}
}
