// Package logic implements the logic step engine of spec §4.H: a
// prioritized pipeline of human-style Sudoku techniques run over a
// kernel.Kernel until a fixpoint, emitting StepDesc records that form
// the human-readable solve path described in spec §3.
//
// Grounded directly on the teacher's internal/solver/techniques.go and
// internal/solver/solver.go: the same technique battery (hidden
// singles, naked/hidden subsets, locked candidates, pointing tuples,
// fishes, XY/XYZ-wings; the teacher's unique rectangles are not carried
// over) in the same priority order
// the teacher's Solve() loop tries them, and the same
// "eliminateFromOtherLocs / eliminateOtherValues" shape of helper. The
// teacher hardwires every technique to a 9-wide board and to
// triple-nested loops per subset size (checkNakedPairsForHouse,
// checkNakedTriplesForHouse, checkNakedQuadruplesForHouse are three
// near-identical copies); this package generalizes that family to one
// combination-driven implementation parameterized by subset size and
// MaxValue, and swaps the teacher's House.Cells array walk for
// group.Group / kernel.Kernel so the same pipeline runs over any
// constraint-registered group, not just rows/columns/boxes.
package logic

import (
	"fmt"

	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/group"
	"github.com/kpitt/gridlogic/internal/kernel"
	"github.com/kpitt/gridlogic/internal/mask"
)

// DisabledFlag names a technique family that can be turned off via the
// solver's disabled_logic_flags configuration (spec §4.H).
type DisabledFlag string

const (
	FlagTuples        DisabledFlag = "tuples"
	FlagPointing      DisabledFlag = "pointing"
	FlagFishes        DisabledFlag = "fishes"
	FlagWings         DisabledFlag = "wings"
	FlagContradictions DisabledFlag = "contradictions"
)

// Engine drives the technique pipeline over a kernel.Kernel.
type Engine struct {
	K        *kernel.Kernel
	Disabled map[DisabledFlag]bool

	// ChainSearch, when set, is invoked as the final, most expensive
	// pipeline stage (spec §4.H item 9 / §4.I); FlagContradictions
	// turns it off. It is a function value (internal/solver wires it to
	// chain.Searcher.Search) so this package does not import
	// internal/chain.
	ChainSearch func(*kernel.Kernel, bool) (constraint.LogicResult, []constraint.StepDesc, error)
}

// New builds a logic engine with no disabled techniques.
func New(k *kernel.Kernel) *Engine {
	return &Engine{K: k, Disabled: map[DisabledFlag]bool{}}
}

func (e *Engine) disabled(f DisabledFlag) bool { return e.Disabled[f] }

// StepLogic runs the pipeline once, returning at the first technique
// that finds something. isBruteForcing restricts the pipeline to the
// cheap subset used during backtracking (spec §4.J): hidden+naked
// singles (handled by the kernel itself via KeepMask/ClearValue
// collapsing to a set), locked candidates, and per-constraint
// StepLogic in brute-forcing mode. Naked/hidden subsets of every size,
// fishes, wings, and AIC chains are skipped in that mode because they
// are comparatively expensive per spec §4.J.
func (e *Engine) StepLogic(isBruteForcing bool) (constraint.LogicResult, []constraint.StepDesc, error) {
	var steps []constraint.StepDesc

	if res, err := e.findHiddenSingles(&steps); res != constraint.ResultNone || err != nil {
		return res, steps, err
	}

	if !e.disabled(FlagPointing) {
		if res, err := e.findLockedCandidates(&steps); res != constraint.ResultNone || err != nil {
			return res, steps, err
		}
	}

	for _, con := range e.K.Constraints {
		res, err := con.StepLogic(e.K, &steps, isBruteForcing)
		if err != nil {
			return constraint.ResultInvalid, steps, err
		}
		if res != constraint.ResultNone {
			return res, steps, nil
		}
	}

	if isBruteForcing {
		return constraint.ResultNone, steps, nil
	}

	if !e.disabled(FlagTuples) {
		for size := 2; size <= 4; size++ {
			if res, err := e.findNakedSubsets(size, &steps); res != constraint.ResultNone || err != nil {
				return res, steps, err
			}
			if res, err := e.findHiddenSubsets(size, &steps); res != constraint.ResultNone || err != nil {
				return res, steps, err
			}
		}
	}

	if !e.disabled(FlagFishes) {
		for size := 2; size <= 4; size++ {
			if res, err := e.findFish(size, &steps); res != constraint.ResultNone || err != nil {
				return res, steps, err
			}
		}
	}

	if !e.disabled(FlagWings) {
		if res, err := e.findXYWing(&steps); res != constraint.ResultNone || err != nil {
			return res, steps, err
		}
		if res, err := e.findXYZWing(&steps); res != constraint.ResultNone || err != nil {
			return res, steps, err
		}
	}

	for _, con := range e.K.Constraints {
		res, err := con.InitLinks(e.K, &steps, false)
		if err != nil {
			return constraint.ResultInvalid, steps, err
		}
		if res != constraint.ResultInvalid && res != constraint.ResultNone {
			return res, steps, nil
		}
	}

	if e.ChainSearch != nil && !e.disabled(FlagContradictions) {
		res, chainSteps, err := e.ChainSearch(e.K, isBruteForcing)
		steps = append(steps, chainSteps...)
		if res != constraint.ResultNone || err != nil {
			return res, steps, err
		}
	}

	return constraint.ResultNone, steps, nil
}

// ConsolidateBoard loops StepLogic until it returns None, Invalid, or
// PuzzleComplete, per spec §4.H.
func (e *Engine) ConsolidateBoard() (constraint.LogicResult, []constraint.StepDesc, error) {
	var all []constraint.StepDesc
	for {
		res, steps, err := e.StepLogic(false)
		all = append(all, steps...)
		if err != nil || res == constraint.ResultInvalid || res == constraint.ResultPuzzleComplete || res == constraint.ResultNone {
			return res, all, err
		}
	}
}

// --- Hidden singles ---------------------------------------------------

func (e *Engine) findHiddenSingles(steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	for _, g := range e.K.Groups.Groups() {
		for _, v := range g.UnsolvedValues() {
			if g.NumLocations(v) != 1 {
				continue
			}
			slot := g.Locations(v)[0]
			cell := g.Cell(slot)
			res, err := e.K.SetValue(cell.Row, cell.Col, v)
			if err != nil || res == constraint.ResultInvalid {
				return constraint.ResultInvalid, err
			}
			*steps = append(*steps, constraint.StepDesc{
				Description: fmt.Sprintf("Hidden Single (%s): %s => %s=%d",
					formatGroup(g), formatGroup(g), formatCell(cell), v),
				Placed: &constraint.PlacedValue{Row: cell.Row, Col: cell.Col, Value: v},
			})
			return res, nil
		}
	}
	return constraint.ResultNone, nil
}

func formatCell(c mask.Coord) string {
	return fmt.Sprintf("r%dc%d", c.Row+1, c.Col+1)
}

func formatGroup(g *group.Group) string {
	return fmt.Sprintf("%s%d", g.Kind.ShortName(), g.Index+1)
}
