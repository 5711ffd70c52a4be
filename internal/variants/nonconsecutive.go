package variants

import (
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/mask"
)

// NonConsecutive forbids any two orthogonally adjacent cells on the
// whole board from holding consecutive digits. Unlike Whisper it has
// no fixed cell list: every orthogonal neighbor pair in the grid is in
// scope, read fresh from the kernel's dimensions each call.
type NonConsecutive struct{}

func NewNonConsecutive() *NonConsecutive { return &NonConsecutive{} }

func (n *NonConsecutive) Name() string { return "Non-Consecutive" }

func (n *NonConsecutive) neighbors(k constraint.Kernel, r, c int) []mask.Coord {
	var out []mask.Coord
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nr, nc := r+d[0], c+d[1]
		if nr >= 0 && nr < k.Height() && nc >= 0 && nc < k.Width() {
			out = append(out, mask.Coord{Row: nr, Col: nc})
		}
	}
	return out
}

func (n *NonConsecutive) InitCandidates(k constraint.Kernel) (constraint.LogicResult, error) {
	return n.reduce(k, nil)
}

func (n *NonConsecutive) EnforceConstraint(k constraint.Kernel, r, c, v int) (bool, error) {
	for _, nb := range n.neighbors(k, r, c) {
		m := k.Candidates(nb.Row, nb.Col)
		if !mask.IsSet(m) {
			continue
		}
		other, err := mask.GetValue(m)
		if err != nil {
			return false, err
		}
		if abs(other-v) == 1 {
			return false, nil
		}
	}
	return true, nil
}

func (n *NonConsecutive) StepLogic(k constraint.Kernel, steps *[]constraint.StepDesc, isBruteForcing bool) (constraint.LogicResult, error) {
	return n.reduce(k, steps)
}

func (n *NonConsecutive) reduce(k constraint.Kernel, steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	changed := false
	for r := 0; r < k.Height(); r++ {
		for c := 0; c < k.Width(); c++ {
			cur := mask.Candidates(k.Candidates(r, c))
			if mask.IsSet(k.Candidates(r, c)) {
				continue
			}
			var forbid mask.Mask
			for _, nb := range n.neighbors(k, r, c) {
				m := k.Candidates(nb.Row, nb.Col)
				if mask.IsSet(m) {
					v, err := mask.GetValue(m)
					if err != nil {
						return constraint.ResultInvalid, err
					}
					if v+1 <= k.MaxValue() {
						forbid |= mask.ValueMask(v + 1)
					}
					if v-1 >= 1 {
						forbid |= mask.ValueMask(v - 1)
					}
				}
			}
			keep := cur &^ forbid
			if keep == cur {
				continue
			}
			res, err := k.KeepMask(r, c, keep)
			if err != nil {
				return res, err
			}
			if res == constraint.ResultInvalid {
				return res, nil
			}
			if res == constraint.ResultChanged || res == constraint.ResultPuzzleComplete {
				changed = true
				if steps != nil {
					*steps = append(*steps, constraint.StepDesc{Description: "Non-Consecutive elimination"})
				}
			}
		}
	}
	if !changed {
		return constraint.ResultNone, nil
	}
	return constraint.ResultChanged, nil
}

func (n *NonConsecutive) InitLinks(k constraint.Kernel, steps *[]constraint.StepDesc, isInitializing bool) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}
