package kernel_test

import (
	"errors"
	"testing"

	"github.com/kpitt/gridlogic/internal/board"
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/errs"
	"github.com/kpitt/gridlogic/internal/group"
	"github.com/kpitt/gridlogic/internal/kernel"
	"github.com/kpitt/gridlogic/internal/links"
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

func newKernel() *kernel.Kernel {
	b := board.New(board.Classic9x9)
	reg := group.NewRegistry(9, 9, 9, classicRegions())
	graph := links.New()
	return kernel.New(b, reg, graph)
}

func TestSetValueCascadesRowColumnBox(t *testing.T) {
	k := newKernel()
	res, err := k.SetValue(0, 0, 5)
	if err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	if res != constraint.ResultChanged {
		t.Fatalf("SetValue result = %v, want ResultChanged", res)
	}
	if mask.Has(k.Board.Get(0, 1), 5) {
		t.Fatalf("value 5 still a candidate of r1c2 after setting r1c1=5")
	}
	if mask.Has(k.Board.Get(1, 0), 5) {
		t.Fatalf("value 5 still a candidate of r2c1 after setting r1c1=5")
	}
	if mask.Has(k.Board.Get(1, 1), 5) {
		t.Fatalf("value 5 still a candidate of r2c2 (same box) after setting r1c1=5")
	}
	if mask.Has(k.Board.Get(5, 5), 5) {
		// unrelated cell, should still have it
	} else {
		t.Fatalf("value 5 wrongly removed from unrelated cell r6c6")
	}
}

func TestSetValueContradictionOnDuplicate(t *testing.T) {
	k := newKernel()
	if _, err := k.SetValue(0, 0, 5); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	_, err := k.SetValue(0, 1, 5)
	if !errors.Is(err, errs.ErrContradiction) {
		t.Fatalf("SetValue duplicate in row = %v, want ErrContradiction", err)
	}
}

func TestSetValueIdempotentOnSameValue(t *testing.T) {
	k := newKernel()
	if _, err := k.SetValue(0, 0, 5); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	res, err := k.SetValue(0, 0, 5)
	if err != nil {
		t.Fatalf("re-SetValue same value errored: %v", err)
	}
	if res != constraint.ResultNone {
		t.Fatalf("re-SetValue same value = %v, want ResultNone", res)
	}
}

func TestClearValueTriggersNakedSingle(t *testing.T) {
	k := newKernel()
	// Eliminate every candidate but one from r1c1.
	for v := 2; v <= 9; v++ {
		if _, err := k.ClearValue(0, 0, v); err != nil {
			t.Fatalf("ClearValue(%d) error: %v", v, err)
		}
	}
	if !mask.IsSet(k.Board.Get(0, 0)) {
		t.Fatalf("r1c1 not set after eliminating all but one candidate")
	}
	if v, _ := mask.GetValue(k.Board.Get(0, 0)); v != 1 {
		t.Fatalf("r1c1 naked single = %d, want 1", v)
	}
}

func TestKeepMaskNarrowsCandidates(t *testing.T) {
	k := newKernel()
	keep := mask.ValueMask(1) | mask.ValueMask(2) | mask.ValueMask(3)
	res, err := k.KeepMask(0, 0, keep)
	if err != nil {
		t.Fatalf("KeepMask error: %v", err)
	}
	if res != constraint.ResultChanged {
		t.Fatalf("KeepMask result = %v, want ResultChanged", res)
	}
	if mask.PopCount(k.Board.Get(0, 0)) != 3 {
		t.Fatalf("r1c1 candidate count = %d, want 3", mask.PopCount(k.Board.Get(0, 0)))
	}
}

func TestAddWeakLinkPropagatesFromSetCell(t *testing.T) {
	k := newKernel()
	if _, err := k.SetValue(3, 3, 7); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	a := k.CandidateIndex(3, 3, 7)
	b := k.CandidateIndex(8, 8, 7)
	res, err := k.AddWeakLink(a, b)
	if err != nil {
		t.Fatalf("AddWeakLink error: %v", err)
	}
	if res != constraint.ResultChanged {
		t.Fatalf("AddWeakLink result = %v, want ResultChanged", res)
	}
	if mask.Has(k.Board.Get(8, 8), 7) {
		t.Fatalf("value 7 still a candidate of r9c9 after weak link from a fixed r4c4=7")
	}
}

func TestAddWeakLinkPropagatesFromSecondEndpoint(t *testing.T) {
	k := newKernel()
	if _, err := k.SetValue(8, 8, 7); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	a := k.CandidateIndex(3, 3, 7)
	b := k.CandidateIndex(8, 8, 7)
	// a is still a candidate of r4c4; b is already fixed true at r9c9.
	// AddWeakLink(a, b) must clear a even though a, not b, was passed
	// first, since a weak link is symmetric.
	res, err := k.AddWeakLink(a, b)
	if err != nil {
		t.Fatalf("AddWeakLink error: %v", err)
	}
	if res != constraint.ResultChanged {
		t.Fatalf("AddWeakLink result = %v, want ResultChanged", res)
	}
	if mask.Has(k.Board.Get(3, 3), 7) {
		t.Fatalf("value 7 still a candidate of r4c4 after weak link to a fixed r9c9=7")
	}
}

func TestCloneIndependence(t *testing.T) {
	k := newKernel()
	clone := k.Clone()
	if _, err := k.SetValue(0, 0, 5); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	if mask.IsSet(clone.Board.Get(0, 0)) {
		t.Fatalf("mutating original kernel affected its clone's board")
	}
}
