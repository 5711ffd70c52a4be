package logic_test

import (
	"testing"

	"github.com/kpitt/gridlogic/internal/board"
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/group"
	"github.com/kpitt/gridlogic/internal/kernel"
	"github.com/kpitt/gridlogic/internal/links"
	"github.com/kpitt/gridlogic/internal/logic"
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

func TestFindHiddenSingleViaStepLogic(t *testing.T) {
	k := newKernel()
	e := logic.New(k)

	// Eliminate 9 from every cell of row 0 except r1c1, so 9 has exactly
	// one remaining location in row 0.
	for c := 1; c < 9; c++ {
		if _, err := k.ClearValue(0, c, 9); err != nil {
			t.Fatalf("ClearValue error: %v", err)
		}
	}

	res, steps, err := e.StepLogic(false)
	if err != nil {
		t.Fatalf("StepLogic error: %v", err)
	}
	if res != constraint.ResultChanged {
		t.Fatalf("StepLogic result = %v, want ResultChanged", res)
	}
	if len(steps) != 1 || steps[0].Placed == nil || steps[0].Placed.Value != 9 {
		t.Fatalf("StepLogic steps = %+v, want one placement of 9", steps)
	}
	if steps[0].Placed.Row != 0 || steps[0].Placed.Col != 0 {
		t.Fatalf("hidden single placed at (%d,%d), want (0,0)", steps[0].Placed.Row, steps[0].Placed.Col)
	}
}

func TestDisabledFlagIsRecorded(t *testing.T) {
	k := newKernel()
	e := logic.New(k)
	e.Disabled[logic.FlagPointing] = true
	if !e.Disabled[logic.FlagPointing] {
		t.Fatalf("setting Disabled[FlagPointing] did not stick")
	}
}

func TestConsolidateBoardStopsOnNone(t *testing.T) {
	k := newKernel()
	e := logic.New(k)
	res, _, err := e.ConsolidateBoard()
	if err != nil {
		t.Fatalf("ConsolidateBoard error: %v", err)
	}
	if res != constraint.ResultNone {
		t.Fatalf("ConsolidateBoard on a fresh empty board = %v, want ResultNone", res)
	}
}
