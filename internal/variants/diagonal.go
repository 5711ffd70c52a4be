package variants

import (
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/mask"
)

// Diagonal marks one of the board's two main diagonals as a
// uniqueness group (spec §3's Extra/Diagonal group kinds). Unlike
// every other variant in this package, a diagonal needs no bespoke
// deduction logic at all: once its cells are registered as a
// group.Diagonal group (the caller does this via
// internal/solver.Solver.AddExtraGroup, since the narrow
// constraint.Kernel interface has no add-group method), the kernel's
// existing group-uniqueness cascade enforces it exactly like a row or
// box. This type exists only to give the diagonal a Name for logical
// step descriptions and a home in the constraint list.
type Diagonal struct {
	name  string
	Cells []mask.Coord
}

// MainDiagonalCells returns the top-left-to-bottom-right diagonal of a
// square board.
func MainDiagonalCells(size int) []mask.Coord {
	cells := make([]mask.Coord, size)
	for i := range cells {
		cells[i] = mask.Coord{Row: i, Col: i}
	}
	return cells
}

// AntiDiagonalCells returns the top-right-to-bottom-left diagonal of a
// square board.
func AntiDiagonalCells(size int) []mask.Coord {
	cells := make([]mask.Coord, size)
	for i := range cells {
		cells[i] = mask.Coord{Row: i, Col: size - 1 - i}
	}
	return cells
}

// NewDiagonal builds a Diagonal descriptor. The caller must separately
// register cells as a group via Solver.AddExtraGroup before
// FinalizeConstraints.
func NewDiagonal(name string, cells []mask.Coord) *Diagonal {
	return &Diagonal{name: name, Cells: cells}
}

func (d *Diagonal) Name() string { return d.name }

func (d *Diagonal) InitCandidates(k constraint.Kernel) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}

func (d *Diagonal) EnforceConstraint(k constraint.Kernel, r, c, v int) (bool, error) {
	return true, nil
}

func (d *Diagonal) StepLogic(k constraint.Kernel, steps *[]constraint.StepDesc, isBruteForcing bool) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}

func (d *Diagonal) InitLinks(k constraint.Kernel, steps *[]constraint.StepDesc, isInitializing bool) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}
