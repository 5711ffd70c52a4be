package variants

import (
	"fmt"

	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/mask"
	"github.com/kpitt/gridlogic/internal/sumhelper"
)

// ArrowStrategy is the "circle vs. pill" strategy seam called out by
// the design note: an arrow's total can be read off a single circle
// cell or a multi-cell pill number, and Arrow itself doesn't care
// which — it only needs the achievable totals and a way to narrow them
// back down once the arrow body's own achievable sums are known.
type ArrowStrategy interface {
	Cells() []mask.Coord
	PossibleValues(k constraint.Kernel) []int
	RestrictByAllowedSums(k constraint.Kernel, allowedSums []int) (constraint.LogicResult, error)
}

// ArrowCircleStrategy reads the arrow's total off a single cell, the
// classic single-digit circle (valid only when the arrow body can
// never exceed MaxValue).
type ArrowCircleStrategy struct {
	Cell mask.Coord
}

func (s ArrowCircleStrategy) Cells() []mask.Coord { return []mask.Coord{s.Cell} }

func (s ArrowCircleStrategy) PossibleValues(k constraint.Kernel) []int {
	return mask.Values(k.Candidates(s.Cell.Row, s.Cell.Col))
}

func (s ArrowCircleStrategy) RestrictByAllowedSums(k constraint.Kernel, allowedSums []int) (constraint.LogicResult, error) {
	var keep mask.Mask
	for _, v := range allowedSums {
		if v >= 1 && v <= k.MaxValue() {
			keep |= mask.ValueMask(v)
		}
	}
	return k.KeepMask(s.Cell.Row, s.Cell.Col, keep)
}

// ArrowPillStrategy reads the arrow's total off a multi-cell decimal
// pill, delegating to sumhelper.PillHelper (spec §4.F).
type ArrowPillStrategy struct {
	helper *sumhelper.PillHelper
}

// NewArrowPillStrategy builds a pill strategy over cells in
// most-significant-digit-first order.
func NewArrowPillStrategy(cells []mask.Coord, maxValue int) *ArrowPillStrategy {
	return &ArrowPillStrategy{helper: sumhelper.NewPillHelper(cells, maxValue)}
}

func (s *ArrowPillStrategy) Cells() []mask.Coord { return s.helper.Cells }

func (s *ArrowPillStrategy) PossibleValues(k constraint.Kernel) []int {
	return s.helper.PossibleValues(k)
}

func (s *ArrowPillStrategy) RestrictByAllowedSums(k constraint.Kernel, allowedSums []int) (constraint.LogicResult, error) {
	return s.helper.RestrictByAllowedSums(k, allowedSums)
}

// Arrow constrains a line of body cells to sum to the total its
// Strategy reads off the circle or pill, per spec §4.F. Grounded on
// SumCellsHelper for the body sum and on the design note's explicit
// strategy-interface call-out for the total itself.
type Arrow struct {
	Body     []mask.Coord
	Strategy ArrowStrategy

	bodyHelper *sumhelper.Helper
}

// NewArrow builds an arrow over body cells (the line, tail first) whose
// total is read by strategy.
func NewArrow(body []mask.Coord, strategy ArrowStrategy) *Arrow {
	return &Arrow{
		Body:     body,
		Strategy: strategy,
		bodyHelper: sumhelper.New(body, 0, func(a, b mask.Coord) bool {
			return a != b
		}),
	}
}

func (a *Arrow) Name() string { return "Arrow" }

func (a *Arrow) InitCandidates(k constraint.Kernel) (constraint.LogicResult, error) {
	return a.reduce(k, nil)
}

func (a *Arrow) EnforceConstraint(k constraint.Kernel, r, c, v int) (bool, error) {
	allSet := func(cells []mask.Coord) (int, bool) {
		sum := 0
		for _, cell := range cells {
			m := k.Candidates(cell.Row, cell.Col)
			if !mask.IsSet(m) {
				return sum, false
			}
			val, err := mask.GetValue(m)
			if err != nil {
				return sum, false
			}
			sum += val
		}
		return sum, true
	}
	bodySum, bodyDone := allSet(a.Body)
	if !bodyDone {
		return true, nil
	}
	totals := a.Strategy.PossibleValues(k)
	for _, t := range totals {
		if t == bodySum {
			return true, nil
		}
	}
	return len(totals) == 0, nil
}

func (a *Arrow) StepLogic(k constraint.Kernel, steps *[]constraint.StepDesc, isBruteForcing bool) (constraint.LogicResult, error) {
	return a.reduce(k, steps)
}

func (a *Arrow) reduce(k constraint.Kernel, steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	pillValues := a.Strategy.PossibleValues(k)
	if len(pillValues) == 0 {
		return constraint.ResultInvalid, nil
	}
	res, err := a.bodyHelper.StepLogic(k, pillValues, steps, steps == nil)
	if err != nil || res == constraint.ResultInvalid {
		return res, err
	}
	changed := res == constraint.ResultChanged || res == constraint.ResultPuzzleComplete

	bodySums := a.bodyHelper.PossibleSums(k)
	if len(bodySums) == 0 {
		return constraint.ResultInvalid, nil
	}
	res2, err := a.Strategy.RestrictByAllowedSums(k, bodySums)
	if err != nil || res2 == constraint.ResultInvalid {
		return res2, err
	}
	if res2 == constraint.ResultChanged || res2 == constraint.ResultPuzzleComplete {
		changed = true
		if steps != nil {
			*steps = append(*steps, constraint.StepDesc{
				Description: fmt.Sprintf("Arrow: restricted total to body's achievable sums %v", bodySums),
			})
		}
	}
	if !changed {
		return constraint.ResultNone, nil
	}
	return constraint.ResultChanged, nil
}

func (a *Arrow) InitLinks(k constraint.Kernel, steps *[]constraint.StepDesc, isInitializing bool) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}
