package variants_test

import (
	"testing"

	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/mask"
	"github.com/kpitt/gridlogic/internal/variants"
)

// An arrow whose circle sits at (0,2) and whose two-cell body is
// (0,0),(0,1): with the circle fixed to 3 the body must sum to 3,
// which for two distinct digits can only be {1,2}.
func TestArrowCircleRestrictsBody(t *testing.T) {
	k := newKernel()
	if _, err := k.SetValue(0, 2, 3); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	strategy := variants.ArrowCircleStrategy{Cell: mask.Coord{Row: 0, Col: 2}}
	arrow := variants.NewArrow([]mask.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, strategy)

	res, err := arrow.InitCandidates(k)
	if err != nil {
		t.Fatalf("InitCandidates error: %v", err)
	}
	if res != constraint.ResultChanged {
		t.Fatalf("InitCandidates result = %v, want ResultChanged", res)
	}
	for _, cell := range []mask.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}} {
		m := mask.Candidates(k.Candidates(cell.Row, cell.Col))
		if mask.PopCount(m) != 2 || !mask.Has(m, 1) || !mask.Has(m, 2) {
			t.Fatalf("body cell %v candidates = %v, want {1,2}", cell, mask.Values(m))
		}
	}
}

func TestArrowPillStrategyRestrictsCircleTotal(t *testing.T) {
	k := newKernel()
	// A two-cell pill at (1,0),(1,1), most-significant digit first.
	strategy := variants.NewArrowPillStrategy([]mask.Coord{{Row: 1, Col: 0}, {Row: 1, Col: 1}}, 9)
	arrow := variants.NewArrow([]mask.Coord{{Row: 0, Col: 0}}, strategy)

	// Restrict the single-cell body to {9}, so the only achievable pill
	// total is 9, and the pill cells must encode a two-digit number
	// equal to 9, which is impossible (two-digit numbers are >= 10):
	// InitCandidates should report a contradiction.
	if _, err := k.SetValue(0, 0, 9); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	res, err := arrow.InitCandidates(k)
	if err != nil {
		t.Fatalf("InitCandidates error: %v", err)
	}
	if res != constraint.ResultInvalid {
		t.Fatalf("InitCandidates result = %v, want ResultInvalid (no two-digit pill sums to 9)", res)
	}
}
