// Package variants implements a representative sample of the ~60
// concrete constraint plug-ins spec §4.E's catalog mentions, each
// satisfying internal/constraint.Constraint: killer cage, arrow,
// thermometer, renban, German whispers, anti-knight/anti-king, non-
// consecutive, and diagonal.
//
// The teacher has no constraint plug-ins at all (classic Sudoku has
// exactly one implicit rule set, hardwired); every file here is
// grounded on internal/sumhelper and internal/constraint's contract
// instead, generalizing the teacher's subset-enumeration idiom
// (internal/solver/techniques.go, now superseded) to each variant's own
// local rule.
package variants

import (
	"fmt"

	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/mask"
	"github.com/kpitt/gridlogic/internal/sumhelper"
)

// Cage is a killer cage: its cells must hold distinct digits summing to
// Sum (spec §4.F's SumCellsHelper use case). Cage implements
// SeenCellsConstraint so the kernel's deriveSeenCellLinks wires a weak
// link between every same-value pair of cage cells automatically,
// exactly as it would for a registered uniqueness group — cage
// distinctness is expressed this way, rather than through a group.Kind
// Extra group, because a cage's digits need not stay within the cells'
// shared rows/columns/boxes and may even span multiple boxes.
type Cage struct {
	Cells []mask.Coord
	Sum   int

	helper *sumhelper.Helper
}

// NewCage builds a killer cage over cells summing to sum.
func NewCage(cells []mask.Coord, sum int) *Cage {
	c := &Cage{Cells: cells, Sum: sum}
	c.helper = sumhelper.New(cells, 0, func(a, b mask.Coord) bool { return true })
	return c
}

func (c *Cage) Name() string { return fmt.Sprintf("Killer Cage (sum %d)", c.Sum) }

// SeenCells reports every other cage cell, per SeenCellsConstraint:
// killer-cage digits must all differ, regardless of row/column/box
// membership.
func (c *Cage) SeenCells(cell mask.Coord) []mask.Coord {
	for _, own := range c.Cells {
		if own == cell {
			out := make([]mask.Coord, 0, len(c.Cells)-1)
			for _, other := range c.Cells {
				if other != cell {
					out = append(out, other)
				}
			}
			return out
		}
	}
	return nil
}

func (c *Cage) InitCandidates(k constraint.Kernel) (constraint.LogicResult, error) {
	return c.helper.Init(k, []int{c.Sum})
}

// EnforceConstraint validates the running sum isn't already exceeded
// and, once the last cell fills, that the total matches exactly.
func (c *Cage) EnforceConstraint(k constraint.Kernel, r, c2, v int) (bool, error) {
	inCage := false
	for _, cell := range c.Cells {
		if cell.Row == r && cell.Col == c2 {
			inCage = true
			break
		}
	}
	if !inCage {
		return true, nil
	}

	total := 0
	allSet := true
	for _, cell := range c.Cells {
		if cell.Row == r && cell.Col == c2 {
			total += v
			continue
		}
		m := k.Candidates(cell.Row, cell.Col)
		if !mask.IsSet(m) {
			allSet = false
			continue
		}
		val, err := mask.GetValue(m)
		if err != nil {
			return false, err
		}
		total += val
	}
	if allSet {
		return total == c.Sum, nil
	}
	return total < c.Sum, nil
}

func (c *Cage) StepLogic(k constraint.Kernel, steps *[]constraint.StepDesc, isBruteForcing bool) (constraint.LogicResult, error) {
	return c.helper.StepLogic(k, []int{c.Sum}, steps, isBruteForcing)
}

// InitLinks contributes nothing beyond the SeenCellsConstraint weak
// links the kernel derives automatically during FinalizeConstraints.
func (c *Cage) InitLinks(k constraint.Kernel, steps *[]constraint.StepDesc, isInitializing bool) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}
