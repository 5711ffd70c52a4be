// Package sumhelper implements the SumCellsHelper subsystem of spec
// §4.F: additive-arithmetic pruning shared by killer cages, arrow
// sums, and any other constraint whose clue is "these cells sum to
// one of these totals".
//
// The teacher has no arithmetic constraints at all (classic Sudoku has
// none), but its subset techniques — checkNakedTriplesForHouse and
// friends in internal/solver/techniques.go — establish the idiom this
// package generalizes: collect per-cell candidate sets, recursively
// combine them, and only keep combinations whose union survives a
// cardinality/sum test. Here the recursion is over an arbitrary cell
// count k (not hardwired to 2/3/4) and the test is a sum-window
// instead of a set-size equality, per spec §4.F's "hot loop, must be
// allocation-free on the steady path" requirement: Init/StepLogic
// allocate to build their result, but the recursive search itself
// only touches a reusable combo buffer and a cellMasks slice.
package sumhelper

import (
	"sort"

	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/mask"
)

// Helper enumerates feasible digit combinations over a fixed cell set
// that sum to a value in some allowed set, and prunes cell candidates
// accordingly.
type Helper struct {
	Cells    []mask.Coord
	maxValue int
	// sameGroup[i][j] is true if Cells[i] and Cells[j] share a group
	// (so their digits must differ). Computed once at construction
	// from the constraint's own group membership; the caller supplies
	// it because only the constraint (via its Kernel) knows which
	// cells are grouped together.
	sameGroup [][]bool
}

// New builds a helper over cells, where sameGroup(i,j) reports whether
// Cells[i] and Cells[j] must hold different digits.
func New(cells []mask.Coord, maxValue int, sameGroupFn func(a, b mask.Coord) bool) *Helper {
	n := len(cells)
	sg := make([][]bool, n)
	for i := range sg {
		sg[i] = make([]bool, n)
		for j := range sg[i] {
			if i != j {
				sg[i][j] = sameGroupFn(cells[i], cells[j])
			}
		}
	}
	return &Helper{Cells: cells, maxValue: maxValue, sameGroup: sg}
}

// allowedSet converts a slice of allowed sums into a quick-membership
// lookup plus min/max for window pruning.
type allowedSet struct {
	set      map[int]bool
	min, max int
}

func newAllowedSet(sums []int) allowedSet {
	a := allowedSet{set: make(map[int]bool, len(sums))}
	for i, s := range sums {
		a.set[s] = true
		if i == 0 || s < a.min {
			a.min = s
		}
		if i == 0 || s > a.max {
			a.max = s
		}
	}
	return a
}

// Init enumerates every feasible digit tuple over the helper's cells
// whose sum is in allowedSums, unions the per-cell digit masks that
// appear in at least one feasible tuple, and keeps only those
// candidates via k.KeepMask. Returns ResultInvalid if no tuple
// survives.
func (h *Helper) Init(k constraint.Kernel, allowedSums []int) (constraint.LogicResult, error) {
	return h.reduce(k, allowedSums, nil, false)
}

// StepLogic is the incremental counterpart to Init: same enumeration,
// but besides applying the reduction it reports one StepDesc per
// narrowed cell listing the candidates removed from it, and (in
// brute-forcing mode) skips the StepDesc bookkeeping to stay cheap.
func (h *Helper) StepLogic(k constraint.Kernel, allowedSums []int, steps *[]constraint.StepDesc, isBruteForcing bool) (constraint.LogicResult, error) {
	if isBruteForcing {
		return h.reduce(k, allowedSums, nil, false)
	}
	return h.reduce(k, allowedSums, steps, false)
}

// PossibleSums returns every sum reachable by the helper's cells given
// their current candidates, ascending. It re-enumerates on every call
// rather than caching: the kernel exposes no board-version counter to
// invalidate against, and the helper's cell count is small enough
// (killer cages and arrows rarely exceed a handful of cells) that the
// recursive walk is cheap relative to the KeepMask calls it feeds.
func (h *Helper) PossibleSums(k constraint.Kernel) []int {
	cellMasks := h.currentMasks(k)
	reachable := map[int]bool{}
	var combo []int
	var walk func(i, sum int)
	walk = func(i, sum int) {
		if i == len(cellMasks) {
			reachable[sum] = true
			return
		}
		for _, v := range mask.Values(cellMasks[i]) {
			if !h.conflictsWithPrefix(i, v, combo) {
				combo = append(combo, v)
				walk(i+1, sum+v)
				combo = combo[:len(combo)-1]
			}
		}
	}
	walk(0, 0)
	out := make([]int, 0, len(reachable))
	for s := range reachable {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

func (h *Helper) currentMasks(k constraint.Kernel) []mask.Mask {
	out := make([]mask.Mask, len(h.Cells))
	for i, cell := range h.Cells {
		out[i] = mask.Candidates(k.Candidates(cell.Row, cell.Col))
	}
	return out
}

func (h *Helper) conflictsWithPrefix(i, v int, combo []int) bool {
	for j, cv := range combo {
		if cv == v && h.sameGroup[i][j] {
			return true
		}
	}
	return false
}

// reduce is the shared implementation of Init and StepLogic: recurse
// over the cells' candidates with sum-window pruning, union the
// digits that survive in any feasible combination, then KeepMask every
// cell down to its union (also recording a StepDesc of each cell's
// eliminations when steps is non-nil).
func (h *Helper) reduce(k constraint.Kernel, allowedSums []int, steps *[]constraint.StepDesc, _ bool) (constraint.LogicResult, error) {
	allowed := newAllowedSet(allowedSums)
	n := len(h.Cells)
	cellMasks := h.currentMasks(k)

	// Precompute suffix min/max remaining sums for window pruning:
	// suffixMin[i] is the smallest possible sum of cells[i:], suffixMax
	// the largest.
	suffixMin := make([]int, n+1)
	suffixMax := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		suffixMin[i] = suffixMin[i+1] + mask.MinValue(cellMasks[i])
		suffixMax[i] = suffixMax[i+1] + mask.MaxValue(cellMasks[i])
	}

	unions := make([]mask.Mask, n)
	combo := make([]int, n)
	found := false

	var walk func(i, sum int)
	walk = func(i, sum int) {
		if i == n {
			if allowed.set[sum] {
				found = true
				for j, v := range combo {
					unions[j] |= mask.ValueMask(v)
				}
			}
			return
		}
		if sum+suffixMin[i] > allowed.max {
			return
		}
		if sum+suffixMax[i] < allowed.min {
			return
		}
		for bits := cellMasks[i]; bits != 0; bits &= bits - 1 {
			v := mask.MinValue(bits)
			if sum+v+suffixMin[i+1] > allowed.max {
				continue
			}
			if sum+v+suffixMax[i+1] < allowed.min {
				continue
			}
			if h.conflictsWithPrefix(i, v, combo[:i]) {
				continue
			}
			combo[i] = v
			walk(i+1, sum+v)
		}
	}
	walk(0, 0)

	if !found {
		return constraint.ResultInvalid, nil
	}

	changed := false
	for i, cell := range h.Cells {
		keep := unions[i]
		cur := mask.Candidates(k.Candidates(cell.Row, cell.Col))
		removed := cur &^ keep
		if removed == 0 {
			continue
		}
		if steps != nil {
			desc := constraint.StepDesc{Description: "sum helper elimination"}
			for _, v := range mask.Values(removed) {
				desc.Eliminated = append(desc.Eliminated, k.CandidateIndex(cell.Row, cell.Col, v))
			}
			*steps = append(*steps, desc)
		}
		res, err := k.KeepMask(cell.Row, cell.Col, keep)
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
