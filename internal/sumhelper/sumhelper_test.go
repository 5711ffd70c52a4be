package sumhelper_test

import (
	"testing"

	"github.com/kpitt/gridlogic/internal/board"
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/group"
	"github.com/kpitt/gridlogic/internal/kernel"
	"github.com/kpitt/gridlogic/internal/links"
	"github.com/kpitt/gridlogic/internal/mask"
	"github.com/kpitt/gridlogic/internal/sumhelper"
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

func newKernel() *kernel.Kernel {
	b := board.New(board.Classic9x9)
	reg := group.NewRegistry(9, 9, 9, classicRegions())
	graph := links.New()
	return kernel.New(b, reg, graph)
}

// A two-cell cage in the same box (so its cells can't repeat a digit)
// summing to 3 can only be {1,2} in some order.
func TestHelperInitPrunesToFeasibleCombinations(t *testing.T) {
	k := newKernel()
	cells := []mask.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	h := sumhelper.New(cells, 9, func(a, b mask.Coord) bool { return true })

	res, err := h.Init(k, []int{3})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if res != constraint.ResultChanged {
		t.Fatalf("Init result = %v, want ResultChanged", res)
	}
	for _, cell := range cells {
		m := mask.Candidates(k.Candidates(cell.Row, cell.Col))
		if mask.PopCount(m) != 2 || !mask.Has(m, 1) || !mask.Has(m, 2) {
			t.Fatalf("cell %v candidates = %v, want {1,2}", cell, mask.Values(m))
		}
	}
}

func TestHelperInitInvalidWhenNoCombinationFits(t *testing.T) {
	k := newKernel()
	cells := []mask.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	h := sumhelper.New(cells, 9, func(a, b mask.Coord) bool { return true })

	// Smallest achievable sum with two distinct digits is 1+2=3.
	res, err := h.Init(k, []int{2})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if res != constraint.ResultInvalid {
		t.Fatalf("Init result = %v, want ResultInvalid", res)
	}
}

func TestHelperPossibleSums(t *testing.T) {
	k := newKernel()
	cells := []mask.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	h := sumhelper.New(cells, 9, func(a, b mask.Coord) bool { return true })
	sums := h.PossibleSums(k)
	if len(sums) == 0 {
		t.Fatalf("PossibleSums returned none")
	}
	if sums[0] != 3 {
		// 1+2, the minimum distinct-digit sum over two fresh cells.
		t.Fatalf("PossibleSums[0] = %d, want 3", sums[0])
	}
}

func TestPillHelperPossibleValues(t *testing.T) {
	k := newKernel()
	// Narrow both pill cells down to a single candidate each: {1},{2}.
	if _, err := k.SetValue(0, 0, 1); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	if _, err := k.SetValue(0, 1, 2); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	p := sumhelper.NewPillHelper([]mask.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, 9)
	got := p.PossibleValues(k)
	if len(got) != 1 || got[0] != 12 {
		t.Fatalf("PossibleValues = %v, want [12]", got)
	}
}
