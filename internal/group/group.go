// Package group implements the group registry of spec §4.C: named
// sets of MaxValue cells that must hold a permutation of 1..MaxValue,
// each with a per-value candidate-location cache.
//
// Grounded on the teacher's internal/solver/group.go and
// internal/solver/house.go, which both maintain a
// map[value]set-of-locations cache per row/column/box (one keyed by
// int8, the other by int, with slightly different field names — a
// sign the teacher was mid-rewrite from Group to House). This package
// unifies that into one Kind-tagged Group type, generalized from a
// hardwired 9 to MaxValue, with Extra/Diagonal/Custom kinds added for
// the groups a constraint can contribute (spec §3).
package group

import "github.com/kpitt/gridlogic/internal/mask"

// Kind identifies what a Group represents. It labels logical steps
// (spec's LogicalStepDesc) and lets techniques select groups by kind
// (e.g. boxes for locked candidates, rows/columns for fishes).
type Kind int

const (
	Row Kind = iota
	Column
	Box
	Extra
	Diagonal
	Custom
)

// ShortName returns the single-letter prefix the teacher's
// formatHouse/formatHouses used ("r1", "c4", "b9", …).
func (k Kind) ShortName() string {
	switch k {
	case Row:
		return "r"
	case Column:
		return "c"
	case Box:
		return "b"
	case Diagonal:
		return "d"
	case Extra:
		return "x"
	default:
		return "g"
	}
}

// ID is the index of a Group within a Registry.
type ID int

// Group is an ordered list of cells that must collectively hold a
// permutation of 1..MaxValue, plus a per-value cache of which of its
// cell-slots still carry that candidate.
type Group struct {
	ID       ID
	Kind     Kind
	Index    int // kind-relative index (row number, column number, ...), for display
	Cells    []mask.Coord
	maxValue int

	// locations[v-1] is the set of cell-slot indexes (into Cells) that
	// still have v as a candidate. A value absent from the group (no
	// cell carries it) is represented by an empty, non-nil set.
	locations []locSet
}

// locSet is a small fixed-capacity bitset over cell-slot indexes
// (at most 30, matching mask.Mask's candidate range).
type locSet uint32

func (s locSet) has(i int) bool  { return s&(1<<uint(i)) != 0 }
func (s *locSet) remove(i int)   { *s &^= 1 << uint(i) }
func (s locSet) size() int       { return popcount(uint32(s)) }
func (s locSet) slots() []int {
	out := make([]int, 0, s.size())
	for i := 0; i < 32; i++ {
		if s.has(i) {
			out = append(out, i)
		}
	}
	return out
}

func popcount(x uint32) int {
	n := 0
	for x != 0 {
		n++
		x &= x - 1
	}
	return n
}

// New builds a Group over cells for a board whose maximum value is
// maxValue. Every value starts present in every cell-slot; the caller
// (internal/kernel, during InitCandidates / fixpoint propagation) is
// responsible for narrowing the cache to match the board's actual
// candidates once givens are applied.
func New(id ID, kind Kind, index int, cells []mask.Coord, maxValue int) *Group {
	g := &Group{ID: id, Kind: kind, Index: index, Cells: cells, maxValue: maxValue}
	full := locSet(0)
	for i := range cells {
		full |= 1 << uint(i)
	}
	g.locations = make([]locSet, maxValue)
	for v := range g.locations {
		g.locations[v] = full
	}
	return g
}

// Size returns the number of cells in the group.
func (g *Group) Size() int { return len(g.Cells) }

// RemoveCandidateCell removes the group's local slot index for cell
// (r,c) from the candidate-location cache for value v. Called by the
// kernel whenever v is eliminated as a candidate of that cell.
func (g *Group) RemoveCandidateCell(v int, slot int) {
	g.locations[v-1].remove(slot)
}

// RemoveCandidateValue removes value v from every cell-slot's
// candidate-location cache (v is now fully placed in the group), and
// also removes the given slot from every other value's cache (a fixed
// cell can't hold any other value). Called by the kernel when a cell
// is set to v.
func (g *Group) RemoveCandidateValue(v int, placedSlot int) {
	g.locations[v-1] = 0
	for i := range g.locations {
		if i == v-1 {
			continue
		}
		g.locations[i].remove(placedSlot)
	}
}

// NumLocations returns how many cell-slots can still hold v.
func (g *Group) NumLocations(v int) int {
	return g.locations[v-1].size()
}

// Locations returns the cell-slot indexes (into g.Cells) that can
// still hold v, ascending.
func (g *Group) Locations(v int) []int {
	return g.locations[v-1].slots()
}

// UnsolvedValues returns every value 1..MaxValue that still has at
// least one candidate location in the group.
func (g *Group) UnsolvedValues() []int {
	out := make([]int, 0, g.maxValue)
	for v := 1; v <= g.maxValue; v++ {
		if g.locations[v-1].size() > 0 {
			out = append(out, v)
		}
	}
	return out
}

// Cell returns the coordinate at the group's slot index.
func (g *Group) Cell(slot int) mask.Coord {
	return g.Cells[slot]
}

// SlotOf returns the group-local slot index of (r,c), or -1 if the
// cell is not a member of this group.
func (g *Group) SlotOf(r, c int) int {
	for i, cell := range g.Cells {
		if cell.Row == r && cell.Col == c {
			return i
		}
	}
	return -1
}
