// Package pedigree computes pixel positions for ancestor charts.
//
// Given a root individual, a generation count, and a chart orientation, the
// engine builds a complete binary ancestor tree indexed by Sosa-Stradonitz
// numbers and assigns every ancestor box an (x, y) position plus the overall
// canvas size. The computation is a deterministic pure function: no I/O, no
// shared state, safe for concurrent use across requests.
//
// # Sosa indexing
//
// The tree is stored as a flat arena of 2^g − 1 slots. Slot i holds Sosa
// number i+1 (root = 1, father of n = 2n, mother = 2n+1). Index arithmetic
// replaces pointer chasing: see [ParentIndex], [ChildIndices] and
// [GenerationOf].
//
// # Usage
//
//	eng := pedigree.New(theme.BoxDimensions{Width: 110, Height: 80}, 20, 10)
//	geo, err := eng.Layout(root, 4, pedigree.Landscape)
//	if err != nil {
//	    return err
//	}
//	for _, slot := range geo.Nodes {
//	    // place slot.Individual at (slot.X, slot.Y)
//	}
//
// Missing ancestors are not errors: their slots carry a nil Individual but
// still receive coordinates, so connecting lines stay straight.
package pedigree
