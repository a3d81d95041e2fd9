// Package gedcom parses the GEDCOM subset sosatree needs for pedigree
// charts: individuals, their parent families and their spouse families.
//
// The parser is deliberately shallow. It reads level-0 INDI and FAM records
// and the level-1 tags that wire them together (NAME, SEX, FAMC, FAMS, HUSB,
// WIFE, CHIL); everything else (dates, places, notes, sources) is skipped
// without error, since the layout engine only needs parentage.
package gedcom

import (
	"slices"
	"strings"

	"github.com/sosatree/sosatree/pkg/pedigree"
)

// Individual is one INDI record. It implements [pedigree.Individual] so a
// parsed tree can be handed straight to the layout engine.
type Individual struct {
	Xref string // cross-reference ID without @-delimiters, e.g. "I1"
	Name string // display name with the /surname/ markers stripped
	Sex  string // "M", "F" or ""

	famc string   // xref of the family this individual is a child in
	fams []string // xrefs of families this individual is a spouse in
	tree *Tree
}

// family is one FAM record.
type family struct {
	xref string
	husb string
	wife string
}

// Tree is a parsed GEDCOM file.
type Tree struct {
	individuals map[string]*Individual
	families    map[string]*family
}

// Individual looks up an individual by xref.
func (t *Tree) Individual(xref string) (*Individual, bool) {
	i, ok := t.individuals[xref]
	return i, ok
}

// Individuals returns all individuals sorted by xref for deterministic
// iteration.
func (t *Tree) Individuals() []*Individual {
	out := make([]*Individual, 0, len(t.individuals))
	for _, i := range t.individuals {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Individual) int {
		return strings.Compare(a.Xref, b.Xref)
	})
	return out
}

// Len returns the number of individuals in the tree.
func (t *Tree) Len() int { return len(t.individuals) }

// FamilyCount returns the number of family records in the tree.
func (t *Tree) FamilyCount() int { return len(t.families) }

// father returns the concrete father record, or nil.
func (i *Individual) father() *Individual {
	if fam, ok := i.tree.families[i.famc]; ok && fam.husb != "" {
		return i.tree.individuals[fam.husb]
	}
	return nil
}

// mother returns the concrete mother record, or nil.
func (i *Individual) mother() *Individual {
	if fam, ok := i.tree.families[i.famc]; ok && fam.wife != "" {
		return i.tree.individuals[fam.wife]
	}
	return nil
}

// Father implements [pedigree.Individual]. The explicit nil return avoids
// handing the engine a non-nil interface around a nil pointer.
func (i *Individual) Father() pedigree.Individual {
	if f := i.father(); f != nil {
		return f
	}
	return nil
}

// Mother implements [pedigree.Individual].
func (i *Individual) Mother() pedigree.Individual {
	if m := i.mother(); m != nil {
		return m
	}
	return nil
}

// HasParents implements [pedigree.Individual].
func (i *Individual) HasParents() bool {
	return i.father() != nil || i.mother() != nil
}

// HasSpouseFamily implements [pedigree.Individual].
func (i *Individual) HasSpouseFamily() bool {
	return len(i.fams) > 0
}

// Ensure the engine contract is satisfied.
var _ pedigree.Individual = (*Individual)(nil)
