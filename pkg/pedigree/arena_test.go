package pedigree

import "testing"

func TestTreesize(t *testing.T) {
	tests := []struct {
		generations int
		want        int
	}{
		{2, 3},
		{3, 7},
		{4, 15},
		{5, 31},
		{6, 63},
		{7, 127},
		{8, 255},
	}

	for _, tt := range tests {
		if got := Treesize(tt.generations); got != tt.want {
			t.Errorf("Treesize(%d) = %d, want %d", tt.generations, got, tt.want)
		}
	}
}

func TestParentChildIndices(t *testing.T) {
	if got := ParentIndex(0); got != -1 {
		t.Errorf("ParentIndex(0) = %d, want -1", got)
	}

	// Parent/child must invert each other across the arena.
	for i := 0; i < Treesize(6)/2; i++ {
		father, mother := ChildIndices(i)
		if ParentIndex(father) != i {
			t.Errorf("ParentIndex(%d) = %d, want %d", father, ParentIndex(father), i)
		}
		if ParentIndex(mother) != i {
			t.Errorf("ParentIndex(%d) = %d, want %d", mother, ParentIndex(mother), i)
		}
		if mother != father+1 {
			t.Errorf("ChildIndices(%d) = (%d, %d), mother should follow father", i, father, mother)
		}
	}
}

func TestGenerationOf(t *testing.T) {
	tests := []struct {
		index int
		want  int
	}{
		{0, 1},
		{1, 2},
		{2, 2},
		{3, 3},
		{6, 3},
		{7, 4},
		{14, 4},
		{15, 5},
	}

	for _, tt := range tests {
		if got := GenerationOf(tt.index); got != tt.want {
			t.Errorf("GenerationOf(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestSosaNumbering(t *testing.T) {
	if got := SosaOf(0); got != 1 {
		t.Errorf("SosaOf(0) = %d, want 1", got)
	}
	if got := SosaOf(14); got != 15 {
		t.Errorf("SosaOf(14) = %d, want 15", got)
	}

	// Even Sosa numbers are fathers, odd are mothers; the root is neither.
	if IsFatherSlot(0) {
		t.Error("IsFatherSlot(0) should be false for the root")
	}
	if !IsFatherSlot(1) {
		t.Error("IsFatherSlot(1) should be true (Sosa 2)")
	}
	if IsFatherSlot(2) {
		t.Error("IsFatherSlot(2) should be false (Sosa 3)")
	}
}

func TestAncestorRootIndex(t *testing.T) {
	treesize := Treesize(4) // 15 slots, last generation at indices 7..14
	for arrow := 0; arrow < 8; arrow++ {
		want := 7 + arrow
		if got := AncestorRootIndex(arrow, treesize); got != want {
			t.Errorf("AncestorRootIndex(%d, %d) = %d, want %d", arrow, treesize, got, want)
		}
	}
}
