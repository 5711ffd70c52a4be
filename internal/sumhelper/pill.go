package sumhelper

import (
	"sort"

	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/mask"
)

// PillHelper enumerates digit-sequences interpreted as a decimal
// number (an arrow's "pill", spec §4.F), and restricts pill cell
// candidates to the digits that appear in some sequence that sums to
// an allowed arrow total.
//
// Per the Open Question resolved in spec §9: a multi-digit pill
// component must be in 1..MaxValue, i.e. the leading cell of a
// multi-cell pill can never hold the digit that would make its
// decimal expansion start with a zero. Since cell values here are
// already restricted to 1..MaxValue (there is no digit-0 cell value),
// that rule is automatically satisfied by construction — the teacher's
// two inconsistent arrow-sum files disagreed on whether a leading-zero
// guard was even reachable; it is not, because 0 was never a valid
// cell value in this representation. This helper documents that
// explicitly so a future arrow-with-a-zero-value variant doesn't
// reintroduce the ambiguity silently.
type PillHelper struct {
	Cells    []mask.Coord // ordered most-significant digit first
	maxValue int
}

// NewPillHelper builds a pill helper over cells in most-significant-
// digit-first order.
func NewPillHelper(cells []mask.Coord, maxValue int) *PillHelper {
	return &PillHelper{Cells: cells, maxValue: maxValue}
}

// PossibleValues returns every decimal value the pill's cells can
// currently form, ascending, for feeding into an arrow's body-sum
// helper as its allowed-sums set.
func (p *PillHelper) PossibleValues(k constraint.Kernel) []int {
	n := len(p.Cells)
	cellMasks := make([]mask.Mask, n)
	for i, cell := range p.Cells {
		cellMasks[i] = mask.Candidates(k.Candidates(cell.Row, cell.Col))
	}
	reachable := map[int]bool{}
	var walk func(i, value int)
	walk = func(i, value int) {
		if i == n {
			reachable[value] = true
			return
		}
		for _, v := range mask.Values(cellMasks[i]) {
			walk(i+1, value*10+v)
		}
	}
	walk(0, 0)
	out := make([]int, 0, len(reachable))
	for v := range reachable {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// RestrictByAllowedSums intersects the union of valid pill digit
// sequences (whose decimal value is in allowedSums) with the pill
// cells' current candidates and calls KeepMask.
func (p *PillHelper) RestrictByAllowedSums(k constraint.Kernel, allowedSums []int) (constraint.LogicResult, error) {
	allowed := newAllowedSet(allowedSums)
	n := len(p.Cells)
	cellMasks := make([]mask.Mask, n)
	for i, cell := range p.Cells {
		cellMasks[i] = mask.Candidates(k.Candidates(cell.Row, cell.Col))
	}

	unions := make([]mask.Mask, n)
	combo := make([]int, n)
	found := false

	var walk func(i, value int)
	walk = func(i, value int) {
		if i == n {
			if allowed.set[value] {
				found = true
				for j, v := range combo {
					unions[j] |= mask.ValueMask(v)
				}
			}
			return
		}
		for _, v := range mask.Values(cellMasks[i]) {
			combo[i] = v
			walk(i+1, value*10+v)
		}
	}
	walk(0, 0)

	if !found {
		return constraint.ResultInvalid, nil
	}

	changed := false
	for i, cell := range p.Cells {
		res, err := k.KeepMask(cell.Row, cell.Col, unions[i])
		if err != nil {
			return res, err
		}
		if res == constraint.ResultInvalid {
			return res, nil
		}
		if res == constraint.ResultChanged || res == constraint.ResultPuzzleComplete {
			changed = true
		}
	}
	if !changed {
		return constraint.ResultNone, nil
	}
	return constraint.ResultChanged, nil
}
