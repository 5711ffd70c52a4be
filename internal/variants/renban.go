package variants

import (
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/mask"
)

// Renban constrains a line of cells to hold a set of consecutive
// distinct digits in any order (a "run"): e.g. {4,5,6} for a 3-cell
// line. Like Cage it needs mutual distinctness regardless of row/
// column/box membership, so it implements SeenCellsConstraint the same
// way; its own reduce walk additionally requires the chosen values,
// sorted, to span exactly len(Cells) consecutive integers.
type Renban struct {
	Cells []mask.Coord
}

func NewRenban(cells []mask.Coord) *Renban { return &Renban{Cells: cells} }

func (r *Renban) Name() string { return "Renban Line" }

func (r *Renban) SeenCells(cell mask.Coord) []mask.Coord {
	for _, own := range r.Cells {
		if own == cell {
			out := make([]mask.Coord, 0, len(r.Cells)-1)
			for _, other := range r.Cells {
				if other != cell {
					out = append(out, other)
				}
			}
			return out
		}
	}
	return nil
}

func (r *Renban) InitCandidates(k constraint.Kernel) (constraint.LogicResult, error) {
	return r.reduce(k, nil)
}

func (r *Renban) EnforceConstraint(k constraint.Kernel, row, col, v int) (bool, error) {
	inLine := false
	for _, cell := range r.Cells {
		if cell.Row == row && cell.Col == col {
			inLine = true
			break
		}
	}
	if !inLine {
		return true, nil
	}
	min, max, count := 0, 0, 0
	for _, cell := range r.Cells {
		m := k.Candidates(cell.Row, cell.Col)
		if !mask.IsSet(m) {
			continue
		}
		val, err := mask.GetValue(m)
		if err != nil {
			return false, err
		}
		if count == 0 || val < min {
			min = val
		}
		if count == 0 || val > max {
			max = val
		}
		count++
	}
	if count == 0 {
		return true, nil
	}
	return max-min < len(r.Cells), nil
}

func (r *Renban) StepLogic(k constraint.Kernel, steps *[]constraint.StepDesc, isBruteForcing bool) (constraint.LogicResult, error) {
	return r.reduce(k, steps)
}

func (r *Renban) reduce(k constraint.Kernel, steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	n := len(r.Cells)
	cellMasks := make([]mask.Mask, n)
	for i, cell := range r.Cells {
		cellMasks[i] = mask.Candidates(k.Candidates(cell.Row, cell.Col))
	}

	unions := make([]mask.Mask, n)
	combo := make([]int, n)
	used := make([]bool, n)
	found := false

	var walk func(i int)
	walk = func(i int) {
		if i == n {
			min, max := combo[0], combo[0]
			for _, v := range combo {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			if max-min == n-1 {
				found = true
				for j, v := range combo {
					unions[j] |= mask.ValueMask(v)
				}
			}
			return
		}
		for _, v := range mask.Values(cellMasks[i]) {
			dup := false
			for j := 0; j < i; j++ {
				if used[j] && combo[j] == v {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			combo[i] = v
			used[i] = true
			walk(i + 1)
			used[i] = false
		}
	}
	walk(0)

	if !found {
		return constraint.ResultInvalid, nil
	}

	changed := false
	for i, cell := range r.Cells {
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
				*steps = append(*steps, constraint.StepDesc{Description: "Renban elimination"})
			}
		}
	}
	if !changed {
		return constraint.ResultNone, nil
	}
	return constraint.ResultChanged, nil
}

func (r *Renban) InitLinks(k constraint.Kernel, steps *[]constraint.StepDesc, isInitializing bool) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}
