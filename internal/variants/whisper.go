package variants

import (
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/mask"
)

// DefaultWhisperGap is the minimum difference required between
// adjacent cells on a German whispers line.
const DefaultWhisperGap = 5

// Whisper constrains every pair of line-adjacent cells to differ by at
// least Gap (German whispers, spec's line-variant catalog entry).
// Unlike Cage/Renban this isn't a distinctness rule: it's local to each
// adjacent pair, so it's implemented as a fixpoint candidate-pruning
// walk rather than a SeenCellsConstraint or SumCellsHelper use.
type Whisper struct {
	Cells []mask.Coord
	Gap   int
}

// NewWhisper builds a whisper line with the given minimum gap; gap<=0
// uses DefaultWhisperGap.
func NewWhisper(cells []mask.Coord, gap int) *Whisper {
	if gap <= 0 {
		gap = DefaultWhisperGap
	}
	return &Whisper{Cells: cells, Gap: gap}
}

func (w *Whisper) Name() string { return "German Whispers" }

func (w *Whisper) indexOf(r, c int) int {
	for i, cell := range w.Cells {
		if cell.Row == r && cell.Col == c {
			return i
		}
	}
	return -1
}

func (w *Whisper) InitCandidates(k constraint.Kernel) (constraint.LogicResult, error) {
	return w.reduce(k, nil)
}

func (w *Whisper) EnforceConstraint(k constraint.Kernel, r, c, v int) (bool, error) {
	idx := w.indexOf(r, c)
	if idx < 0 {
		return true, nil
	}
	for _, ni := range [2]int{idx - 1, idx + 1} {
		if ni < 0 || ni >= len(w.Cells) {
			continue
		}
		cell := w.Cells[ni]
		m := k.Candidates(cell.Row, cell.Col)
		if !mask.IsSet(m) {
			continue
		}
		other, err := mask.GetValue(m)
		if err != nil {
			return false, err
		}
		if abs(other-v) < w.Gap {
			return false, nil
		}
	}
	return true, nil
}

func (w *Whisper) StepLogic(k constraint.Kernel, steps *[]constraint.StepDesc, isBruteForcing bool) (constraint.LogicResult, error) {
	return w.reduce(k, steps)
}

func (w *Whisper) reduce(k constraint.Kernel, steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	n := len(w.Cells)
	masks := make([]mask.Mask, n)
	for i, cell := range w.Cells {
		masks[i] = mask.Candidates(k.Candidates(cell.Row, cell.Col))
	}

	for progress := true; progress; {
		progress = false
		for i := 0; i < n; i++ {
			var keep mask.Mask
			for _, v := range mask.Values(masks[i]) {
				ok := true
				for _, ni := range [2]int{i - 1, i + 1} {
					if ni < 0 || ni >= n {
						continue
					}
					valid := false
					for _, v2 := range mask.Values(masks[ni]) {
						if abs(v-v2) >= w.Gap {
							valid = true
							break
						}
					}
					if !valid {
						ok = false
						break
					}
				}
				if ok {
					keep |= mask.ValueMask(v)
				}
			}
			if keep != masks[i] {
				masks[i] = keep
				progress = true
			}
			if keep == 0 {
				return constraint.ResultInvalid, nil
			}
		}
	}

	changed := false
	for i, cell := range w.Cells {
		res, err := k.KeepMask(cell.Row, cell.Col, masks[i])
		if err != nil {
			return res, err
		}
		if res == constraint.ResultInvalid {
			return res, nil
		}
		if res == constraint.ResultChanged || res == constraint.ResultPuzzleComplete {
			changed = true
			if steps != nil {
				*steps = append(*steps, constraint.StepDesc{Description: "Whisper elimination"})
			}
		}
	}
	if !changed {
		return constraint.ResultNone, nil
	}
	return constraint.ResultChanged, nil
}

func (w *Whisper) InitLinks(k constraint.Kernel, steps *[]constraint.StepDesc, isInitializing bool) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
