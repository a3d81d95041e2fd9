package pedigree

// Collect builds the dense ancestor arena for the given root and generation
// count. All 2^generations − 1 slots are allocated up front; unknown
// ancestors are left with a nil Individual so that indices always line up
// with Sosa numbers.
//
// The second return value reports whether any individual in the last
// generation has recorded parents of their own, i.e. whether the chart was
// truncated rather than exhausted.
//
// generations is not validated here; Collect is an internal building block
// and [Engine.Layout] asserts the bounds.
func Collect(root Individual, generations int) ([]Slot, bool) {
	treesize := Treesize(generations)
	slots := make([]Slot, treesize)
	if root == nil {
		return slots, false
	}
	slots[0].Individual = root

	// Walk the first half of the arena; children of slot i land at 2i+1
	// and 2i+2, which stay in range for i < treesize/2.
	for i := 0; i < treesize/2; i++ {
		indi := slots[i].Individual
		if indi == nil {
			continue
		}
		father, mother := ChildIndices(i)
		slots[father].Individual = indi.Father()
		slots[mother].Individual = indi.Mother()
	}

	beyond := false
	for i := treesize / 2; i < treesize; i++ {
		if indi := slots[i].Individual; indi != nil && indi.HasParents() {
			beyond = true
			break
		}
	}
	return slots, beyond
}
