package pedigree

import "testing"

// TestComputeOffsetsLandscapeRaw pins the raw landscape coordinates for the
// smallest chart, worked out by hand from the banded offset formula with a
// 100x50 box, spacingX=10, spacingY=10: the parents stack one band apart in
// one column, and the root centers between them with the final-generation
// x nudge.
func TestComputeOffsetsLandscapeRaw(t *testing.T) {
	dims := BoxDimensions{Width: 100, Height: 50, ArrowWidth: 20, ArrowHeight: 20}
	slots := make([]Slot, Treesize(2))

	computeOffsets(slots, 2, Landscape, dims, 10, 10, false)

	want := []struct{ x, y int }{
		{10, 60},  // root, nudged +10 at the youngest generation
		{110, 30}, // father
		{110, 90}, // mother
	}
	for i, w := range want {
		if slots[i].X != w.x || slots[i].Y != w.y {
			t.Errorf("slot %d = (%d, %d), want (%d, %d)", i, slots[i].X, slots[i].Y, w.x, w.y)
		}
	}
}

// TestLayoutLandscapeParentSymmetry checks the landscape invariant through
// the full Layout pass: every individual's parents share a column, and their
// y positions average to the individual's own, so couples center on their
// child. Normalization shifts all slots uniformly and cannot break this.
func TestLayoutLandscapeParentSymmetry(t *testing.T) {
	e := newTestEngine()
	g, err := e.Layout(fullAncestry(5), 4, Landscape)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	for i := 0; i < len(g.Nodes)/2; i++ {
		father, mother := g.Nodes[2*i+1], g.Nodes[2*i+2]
		if father.X != mother.X {
			t.Errorf("slot %d: parents at X=%d and X=%d, want same column", i, father.X, mother.X)
		}
		if father.Y+mother.Y != 2*g.Nodes[i].Y {
			t.Errorf("slot %d: parent Y %d+%d does not center on child Y %d",
				i, father.Y, mother.Y, g.Nodes[i].Y)
		}
	}
}

// TestComputeOffsetsBandSpacing pins the generation-band arithmetic two
// bands above the root of a 4-generation chart, where the vertical and
// horizontal orientation families pick different band formulas. Slots 1 and
// 2 (the root's parents) sit 2^(curgen-mode) box-spacings apart in vertical
// orientations and 2^(curgen-1) in horizontal ones, sharing the cross axis.
func TestComputeOffsetsBandSpacing(t *testing.T) {
	dims := BoxDimensions{Width: 100, Height: 50, ArrowWidth: 20, ArrowHeight: 20}

	tests := []struct {
		mode    Orientation
		mainGap int  // distance between slots 1 and 2 on the banded axis
		cross   int  // shared cross-axis coordinate for horizontal modes
		checkX  bool // banded axis is X (horizontal orientations)
	}{
		{mode: Landscape, mainGap: 4 * (50 + 10), checkX: false},
		{mode: OldestAtTop, mainGap: 4 * (100 + 10), cross: 3 * (50 + 4*10), checkX: true},
		{mode: OldestAtBottom, mainGap: 4 * (100 + 10), cross: 1 * (50 + 2*10), checkX: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			slots := make([]Slot, Treesize(4))
			computeOffsets(slots, 4, tt.mode, dims, 10, 10, false)

			father, mother := slots[1], slots[2]
			if tt.checkX {
				if gap := mother.X - father.X; gap != tt.mainGap {
					t.Errorf("X gap = %d, want %d", gap, tt.mainGap)
				}
				if father.Y != tt.cross || mother.Y != tt.cross {
					t.Errorf("Y = %d and %d, want both %d", father.Y, mother.Y, tt.cross)
				}
			} else {
				if gap := mother.Y - father.Y; gap != tt.mainGap {
					t.Errorf("Y gap = %d, want %d", gap, tt.mainGap)
				}
				if father.X != mother.X {
					t.Errorf("X = %d and %d, want same column", father.X, mother.X)
				}
			}
		})
	}
}
