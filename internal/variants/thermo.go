package variants

import (
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/mask"
)

// Thermometer constrains a line of cells (bulb first) to hold strictly
// increasing values along the line. There is no sum window here, so it
// doesn't fit SumCellsHelper directly, but it's grounded on the same
// recursive-enumeration shape: walk the line's current candidates,
// keep only assignments whose values strictly increase, and union the
// surviving per-cell values back into each cell's candidates.
type Thermometer struct {
	Cells []mask.Coord // bulb first
}

// NewThermometer builds a thermometer over cells ordered bulb-first.
func NewThermometer(cells []mask.Coord) *Thermometer {
	return &Thermometer{Cells: cells}
}

func (t *Thermometer) Name() string { return "Thermometer" }

func (t *Thermometer) InitCandidates(k constraint.Kernel) (constraint.LogicResult, error) {
	return t.reduce(k, nil)
}

func (t *Thermometer) EnforceConstraint(k constraint.Kernel, r, c, v int) (bool, error) {
	idx := -1
	for i, cell := range t.Cells {
		if cell.Row == r && cell.Col == c {
			idx = i
			break
		}
	}
	if idx == -1 {
		return true, nil
	}
	for i, cell := range t.Cells {
		if i == idx {
			continue
		}
		m := k.Candidates(cell.Row, cell.Col)
		if !mask.IsSet(m) {
			continue
		}
		other, err := mask.GetValue(m)
		if err != nil {
			return false, err
		}
		if i < idx && other >= v {
			return false, nil
		}
		if i > idx && other <= v {
			return false, nil
		}
	}
	return true, nil
}

func (t *Thermometer) StepLogic(k constraint.Kernel, steps *[]constraint.StepDesc, isBruteForcing bool) (constraint.LogicResult, error) {
	return t.reduce(k, steps)
}

func (t *Thermometer) reduce(k constraint.Kernel, steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	n := len(t.Cells)
	cellMasks := make([]mask.Mask, n)
	for i, cell := range t.Cells {
		cellMasks[i] = mask.Candidates(k.Candidates(cell.Row, cell.Col))
	}

	unions := make([]mask.Mask, n)
	combo := make([]int, n)
	found := false

	var walk func(i, prev int)
	walk = func(i, prev int) {
		if i == n {
			found = true
			for j, v := range combo {
				unions[j] |= mask.ValueMask(v)
			}
			return
		}
		for _, v := range mask.Values(cellMasks[i]) {
			if v > prev {
				combo[i] = v
				walk(i+1, v)
			}
		}
	}
	walk(0, 0)

	if !found {
		return constraint.ResultInvalid, nil
	}

	changed := false
	for i, cell := range t.Cells {
		res, err := k.KeepMask(cell.Row, cell.Col, unions[i])
		if err != nil {
			return res, err
		}
		if res == constraint.ResultInvalid {
			return res, nil
		}
		if res == constraint.ResultChanged || res == constraint.ResultPuzzleComplete {
			changed = true
			if steps != nil {
				*steps = append(*steps, constraint.StepDesc{Description: "Thermometer elimination"})
			}
		}
	}
	if !changed {
		return constraint.ResultNone, nil
	}
	return constraint.ResultChanged, nil
}

func (t *Thermometer) InitLinks(k constraint.Kernel, steps *[]constraint.StepDesc, isInitializing bool) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}
