package group_test

import (
	"testing"

	"github.com/kpitt/gridlogic/internal/group"
	"github.com/kpitt/gridlogic/internal/mask"
)

func classicRegions() [][]int {
	regions := make([][]int, 9)
	for r := range regions {
		regions[r] = make([]int, 9)
		for c := range regions[r] {
			regions[r][c] = (r/3)*3 + c/3
		}
	}
	return regions
}

func TestNewRegistryRowColumnBoxMembership(t *testing.T) {
	reg := group.NewRegistry(9, 9, 9, classicRegions())

	groups := reg.GroupsOf(4, 4)
	var kinds []group.Kind
	for _, g := range groups {
		kinds = append(kinds, g.Kind)
	}
	if len(kinds) != 3 {
		t.Fatalf("cell (4,4) belongs to %d groups, want 3 (row, column, box)", len(kinds))
	}

	rows := reg.GroupsByKind(group.Row)
	cols := reg.GroupsByKind(group.Column)
	boxes := reg.GroupsByKind(group.Box)
	if len(rows) != 9 || len(cols) != 9 || len(boxes) != 9 {
		t.Fatalf("got %d rows, %d cols, %d boxes, want 9 each", len(rows), len(cols), len(boxes))
	}
}

func TestRemoveCandidateCellAndValue(t *testing.T) {
	reg := group.NewRegistry(9, 9, 9, classicRegions())

	reg.RemoveCandidateCell(0, 0, 5)
	row0 := reg.GroupsByKind(group.Row)[0]
	for _, slot := range row0.Locations(5) {
		if row0.Cell(slot) == (mask.Coord{Row: 0, Col: 0}) {
			t.Fatalf("cell (0,0) still listed as a location for value 5 after removal")
		}
	}

	reg.RemoveCandidateValue(0, 0, 5)
	if row0.NumLocations(5) != 0 {
		t.Fatalf("value 5 still has locations in row 0 after RemoveCandidateValue")
	}
	for v := 1; v <= 9; v++ {
		if v == 5 {
			continue
		}
		for _, slot := range row0.Locations(v) {
			if row0.Cell(slot) == (mask.Coord{Row: 0, Col: 0}) {
				t.Fatalf("fixed cell (0,0) still listed as a location for value %d", v)
			}
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	reg := group.NewRegistry(9, 9, 9, classicRegions())
	clone := reg.Clone()

	reg.RemoveCandidateCell(0, 0, 1)

	row0Clone := clone.GroupsByKind(group.Row)[0]
	found := false
	for _, slot := range row0Clone.Locations(1) {
		if row0Clone.Cell(slot) == (mask.Coord{Row: 0, Col: 0}) {
			found = true
		}
	}
	if !found {
		t.Fatalf("mutating original registry affected its clone")
	}
}

func TestAddGroupExtra(t *testing.T) {
	reg := group.NewRegistry(9, 9, 9, classicRegions())
	cells := []mask.Coord{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}
	id := reg.AddGroup(cells, group.Diagonal)
	g := reg.Group(id)
	if g.Kind != group.Diagonal {
		t.Fatalf("AddGroup kind = %v, want Diagonal", g.Kind)
	}
	if g.Size() != 3 {
		t.Fatalf("AddGroup size = %d, want 3", g.Size())
	}
	groups := reg.GroupsOf(1, 1)
	foundDiag := false
	for _, gr := range groups {
		if gr.ID == id {
			foundDiag = true
		}
	}
	if !foundDiag {
		t.Fatalf("cell (1,1) not linked to newly added diagonal group")
	}
}
