package variants_test

import (
	"testing"

	"github.com/kpitt/gridlogic/internal/board"
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/group"
	"github.com/kpitt/gridlogic/internal/kernel"
	"github.com/kpitt/gridlogic/internal/links"
	"github.com/kpitt/gridlogic/internal/mask"
	"github.com/kpitt/gridlogic/internal/variants"
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

func TestCageInitCandidatesNarrowsToFeasibleDigits(t *testing.T) {
	k := newKernel()
	cells := []mask.Coord{{Row: 0, Col: 0}, {Row: 5, Col: 5}}
	cage := variants.NewCage(cells, 3)
	k.Constraints = append(k.Constraints, cage)

	res, err := cage.InitCandidates(k)
	if err != nil {
		t.Fatalf("InitCandidates error: %v", err)
	}
	if res != constraint.ResultChanged {
		t.Fatalf("InitCandidates result = %v, want ResultChanged", res)
	}
	for _, cell := range cells {
		m := mask.Candidates(k.Candidates(cell.Row, cell.Col))
		if mask.PopCount(m) != 2 || !mask.Has(m, 1) || !mask.Has(m, 2) {
			t.Fatalf("cage cell %v candidates = %v, want {1,2}", cell, mask.Values(m))
		}
	}
}

func TestCageEnforceConstraintRejectsOverSum(t *testing.T) {
	k := newKernel()
	cells := []mask.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	cage := variants.NewCage(cells, 3)
	ok, err := cage.EnforceConstraint(k, 0, 0, 5)
	if err != nil {
		t.Fatalf("EnforceConstraint error: %v", err)
	}
	if ok {
		t.Fatalf("EnforceConstraint allowed a running sum already over target")
	}
}

func TestThermometerReduceOrdersCandidates(t *testing.T) {
	k := newKernel()
	cells := []mask.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}
	therm := variants.NewThermometer(cells)
	res, err := therm.InitCandidates(k)
	if err != nil {
		t.Fatalf("InitCandidates error: %v", err)
	}
	if res == constraint.ResultInvalid {
		t.Fatalf("InitCandidates reported invalid on a satisfiable thermometer")
	}
	// The bulb (first cell) can never hold MaxValue, the tip (last cell)
	// can never hold 1, since two more cells must fit on each side.
	bulb := mask.Candidates(k.Candidates(0, 0))
	if mask.Has(bulb, 9) || mask.Has(bulb, 8) {
		t.Fatalf("bulb candidates = %v, want no 8 or 9 (two cells must exceed it)", mask.Values(bulb))
	}
	tip := mask.Candidates(k.Candidates(0, 2))
	if mask.Has(tip, 1) || mask.Has(tip, 2) {
		t.Fatalf("tip candidates = %v, want no 1 or 2 (two cells must precede it)", mask.Values(tip))
	}
}

func TestThermometerEnforceConstraintRejectsOutOfOrder(t *testing.T) {
	k := newKernel()
	cells := []mask.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	therm := variants.NewThermometer(cells)
	if _, err := k.SetValue(0, 0, 5); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	ok, err := therm.EnforceConstraint(k, 0, 1, 3)
	if err != nil {
		t.Fatalf("EnforceConstraint error: %v", err)
	}
	if ok {
		t.Fatalf("EnforceConstraint allowed tip value less than bulb value")
	}
}

func TestRenbanRequiresConsecutiveRun(t *testing.T) {
	k := newKernel()
	cells := []mask.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}
	renban := variants.NewRenban(cells)
	if _, err := k.SetValue(0, 0, 1); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	if _, err := k.SetValue(0, 1, 9); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	ok, err := renban.EnforceConstraint(k, 0, 2, 5)
	if err != nil {
		t.Fatalf("EnforceConstraint error: %v", err)
	}
	if ok {
		t.Fatalf("EnforceConstraint allowed a span wider than the line length")
	}
}

func TestWhisperRejectsSmallGap(t *testing.T) {
	k := newKernel()
	cells := []mask.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	whisper := variants.NewWhisper(cells, 5)
	if _, err := k.SetValue(0, 0, 4); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	ok, err := whisper.EnforceConstraint(k, 0, 1, 6)
	if err != nil {
		t.Fatalf("EnforceConstraint error: %v", err)
	}
	if ok {
		t.Fatalf("EnforceConstraint allowed a gap of 2 with Gap=5")
	}
}

func TestWhisperDefaultGap(t *testing.T) {
	w := variants.NewWhisper(nil, 0)
	if w.Gap != variants.DefaultWhisperGap {
		t.Fatalf("NewWhisper(nil, 0).Gap = %d, want %d", w.Gap, variants.DefaultWhisperGap)
	}
}

func TestNonConsecutiveRejectsAdjacentConsecutive(t *testing.T) {
	k := newKernel()
	nc := variants.NewNonConsecutive()
	if _, err := k.SetValue(0, 0, 5); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	ok, err := nc.EnforceConstraint(k, 0, 1, 6)
	if err != nil {
		t.Fatalf("EnforceConstraint error: %v", err)
	}
	if ok {
		t.Fatalf("EnforceConstraint allowed orthogonally adjacent consecutive digits")
	}
	ok, err = nc.EnforceConstraint(k, 0, 1, 7)
	if err != nil {
		t.Fatalf("EnforceConstraint error: %v", err)
	}
	if !ok {
		t.Fatalf("EnforceConstraint rejected a non-consecutive adjacent digit")
	}
}

func TestAntiKnightSeenCellsAndEnforce(t *testing.T) {
	k := newKernel()
	ak := variants.NewAntiKnight(9, 9)
	if _, err := k.SetValue(0, 0, 5); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	// (1,2) and (2,1) are a knight's move from (0,0).
	ok, err := ak.EnforceConstraint(k, 1, 2, 5)
	if err != nil {
		t.Fatalf("EnforceConstraint error: %v", err)
	}
	if ok {
		t.Fatalf("EnforceConstraint allowed a knight's-move repeat of 5")
	}
	ok, err = ak.EnforceConstraint(k, 1, 1, 5)
	if err != nil {
		t.Fatalf("EnforceConstraint error: %v", err)
	}
	if !ok {
		t.Fatalf("EnforceConstraint rejected a value outside any knight's move from (0,0)")
	}
}

func TestDiagonalHelpers(t *testing.T) {
	main := variants.MainDiagonalCells(9)
	if len(main) != 9 || main[0] != (mask.Coord{Row: 0, Col: 0}) || main[8] != (mask.Coord{Row: 8, Col: 8}) {
		t.Fatalf("MainDiagonalCells = %v", main)
	}
	anti := variants.AntiDiagonalCells(9)
	if len(anti) != 9 || anti[0] != (mask.Coord{Row: 0, Col: 8}) || anti[8] != (mask.Coord{Row: 8, Col: 0}) {
		t.Fatalf("AntiDiagonalCells = %v", anti)
	}
}
