package pedigree

import "math/bits"

// Generation bounds for a pedigree chart. Above eight generations the
// coordinate space becomes impractically large, below two there is no chart.
const (
	MinGenerations = 2
	MaxGenerations = 8
)

// Individual is the non-owning reference the engine positions. The engine
// never inspects person data beyond parentage; callers keep ownership.
type Individual interface {
	// Father returns the father, or nil if unknown.
	Father() Individual
	// Mother returns the mother, or nil if unknown.
	Mother() Individual
	// HasParents reports whether any parent is recorded.
	HasParents() bool
	// HasSpouseFamily reports whether at least one spouse family is recorded.
	HasSpouseFamily() bool
}

// Slot is one cell of the ancestor arena. Slot i holds Sosa number i+1.
// Individual is nil for unknown ancestors; such slots still get coordinates.
type Slot struct {
	Individual Individual
	X, Y       int
}

// Treesize returns the number of slots for g generations: 2^g − 1.
func Treesize(generations int) int {
	return 1<<generations - 1
}

// ParentIndex returns the arena index of the tree parent of slot i,
// or -1 for the root. In Sosa terms this maps n to n/2.
func ParentIndex(i int) int {
	if i == 0 {
		return -1
	}
	return (i - 1) / 2
}

// ChildIndices returns the arena indices of the father and mother slots of
// slot i (Sosa 2n and 2n+1 for Sosa n).
func ChildIndices(i int) (father, mother int) {
	return 2*i + 1, 2*i + 2
}

// GenerationOf returns the generation of slot i, counting the root as 1.
func GenerationOf(i int) int {
	return bits.Len(uint(i + 1))
}

// SosaOf returns the Sosa-Stradonitz number of slot i.
func SosaOf(i int) int { return i + 1 }

// IsFatherSlot reports whether slot i holds a father (even Sosa number).
func IsFatherSlot(i int) bool { return i > 0 && (i+1)%2 == 0 }

// AncestorRootIndex maps a previous-generation arrow to the slot whose
// individual becomes the next chart root. Arrow j (0-based, one per box in
// the last generation) points at slot treesize/2 + j.
func AncestorRootIndex(arrow, treesize int) int {
	return treesize/2 + arrow
}
