package group

import "github.com/kpitt/gridlogic/internal/mask"

// Registry owns every Group on a board: the standard rows/columns/
// boxes plus whatever extra groups constraints register (diagonals,
// extra regions, disjoint-group cells — spec §3).
type Registry struct {
	maxValue int
	groups   []*Group
	// byCell[r][c] lists every group ID that contains (r,c), so the
	// kernel can fan a single-cell elimination out to every group that
	// needs its cache updated without a linear scan of all groups.
	byCell [][][]ID
}

// NewRegistry derives the standard row/column/box groups for a board
// of the given dimensions from a regions matrix (regions[r][c] is the
// 0-based box/region id of cell (r,c), spec §3). Pass a nil regions
// matrix to skip box groups (e.g. for non-rectangular-region variants
// that register their own Extra groups instead).
func NewRegistry(height, width, maxValue int, regions [][]int) *Registry {
	reg := &Registry{maxValue: maxValue}
	reg.byCell = make([][][]ID, height)
	for r := range reg.byCell {
		reg.byCell[r] = make([][]ID, width)
	}

	for r := 0; r < height; r++ {
		cells := make([]mask.Coord, width)
		for c := 0; c < width; c++ {
			cells[c] = mask.Coord{Row: r, Col: c}
		}
		reg.addGroup(Row, r, cells)
	}
	for c := 0; c < width; c++ {
		cells := make([]mask.Coord, height)
		for r := 0; r < height; r++ {
			cells[r] = mask.Coord{Row: r, Col: c}
		}
		reg.addGroup(Column, c, cells)
	}
	if regions != nil {
		byRegion := map[int][]mask.Coord{}
		order := []int{}
		for r := 0; r < height; r++ {
			for c := 0; c < width; c++ {
				id := regions[r][c]
				if _, ok := byRegion[id]; !ok {
					order = append(order, id)
				}
				byRegion[id] = append(byRegion[id], mask.Coord{Row: r, Col: c})
			}
		}
		for _, id := range order {
			reg.addGroup(Box, id, byRegion[id])
		}
	}
	return reg
}

func (reg *Registry) addGroup(kind Kind, index int, cells []mask.Coord) ID {
	id := ID(len(reg.groups))
	g := New(id, kind, index, cells, reg.maxValue)
	reg.groups = append(reg.groups, g)
	for _, cell := range cells {
		reg.byCell[cell.Row][cell.Col] = append(reg.byCell[cell.Row][cell.Col], id)
	}
	return id
}

// AddGroup registers a constraint-supplied group (diagonal, extra
// region, disjoint-group cells, …) and returns its ID.
func (reg *Registry) AddGroup(cells []mask.Coord, kind Kind) ID {
	return reg.addGroup(kind, len(reg.groups), cells)
}

// Group returns the group with the given ID.
func (reg *Registry) Group(id ID) *Group { return reg.groups[id] }

// Groups returns every registered group.
func (reg *Registry) Groups() []*Group { return reg.groups }

// GroupsOf returns every group containing cell (r,c).
func (reg *Registry) GroupsOf(r, c int) []*Group {
	ids := reg.byCell[r][c]
	out := make([]*Group, len(ids))
	for i, id := range ids {
		out[i] = reg.groups[id]
	}
	return out
}

// GroupsByKind returns every registered group of the given kind, in
// registration order.
func (reg *Registry) GroupsByKind(kind Kind) []*Group {
	var out []*Group
	for _, g := range reg.groups {
		if g.Kind == kind {
			out = append(out, g)
		}
	}
	return out
}

// RemoveCandidateCell notifies every group containing (r,c) that v is
// no longer a candidate there.
func (reg *Registry) RemoveCandidateCell(r, c, v int) {
	for _, id := range reg.byCell[r][c] {
		g := reg.groups[id]
		g.RemoveCandidateCell(v, g.SlotOf(r, c))
	}
}

// RemoveCandidateValue notifies every group containing (r,c) that
// (r,c) has been fixed to v.
func (reg *Registry) RemoveCandidateValue(r, c, v int) {
	for _, id := range reg.byCell[r][c] {
		g := reg.groups[id]
		g.RemoveCandidateValue(v, g.SlotOf(r, c))
	}
}

// Clone deep-copies every group's candidate-location cache (group
// membership/cell lists are immutable after construction and are
// shared by reference, per spec §3's Clone semantics).
func (reg *Registry) Clone() *Registry {
	nreg := &Registry{maxValue: reg.maxValue, byCell: reg.byCell}
	nreg.groups = make([]*Group, len(reg.groups))
	for i, g := range reg.groups {
		ng := &Group{ID: g.ID, Kind: g.Kind, Index: g.Index, Cells: g.Cells, maxValue: g.maxValue}
		ng.locations = make([]locSet, len(g.locations))
		copy(ng.locations, g.locations)
		nreg.groups[i] = ng
	}
	return nreg
}
