// Package board implements the N×N grid of candidate masks described
// in spec §4.B: pure data with copy semantics. It is the generalization
// of the teacher's two parallel, 9x9-hardwired board types
// (internal/board/board.go and internal/puzzle/board.go) into one
// shape-parameterized type that also supports rectangular boxes
// (BoxHeight x BoxWidth = MaxValue), as spec §3 requires.
//
// Board itself does not enforce the "constraints never mutate the
// board directly" design note from spec §4.E; that boundary is drawn
// by internal/kernel, which is the only package that imports board for
// write access and is the only thing constraints are handed (through
// the constraint.Kernel interface).
package board

import "github.com/kpitt/gridlogic/internal/mask"

// Shape describes a board's dimensions. Height and Width are usually
// equal to MaxValue, but need not be; BoxHeight*BoxWidth must equal
// MaxValue when boxes are in use.
type Shape struct {
	Height, Width       int
	MaxValue            int
	BoxHeight, BoxWidth int
}

// Classic9x9 is the shape of a standard Sudoku.
var Classic9x9 = Shape{Height: 9, Width: 9, MaxValue: 9, BoxHeight: 3, BoxWidth: 3}

// Board is a MaxValue-ary grid of candidate masks.
type Board struct {
	Shape
	cells [][]mask.Mask
}

// New allocates a board of the given shape with every cell holding the
// full candidate mask.
func New(shape Shape) *Board {
	b := &Board{Shape: shape}
	full := mask.AllValuesMask(shape.MaxValue)
	b.cells = make([][]mask.Mask, shape.Height)
	for r := range b.cells {
		row := make([]mask.Mask, shape.Width)
		for c := range row {
			row[c] = full
		}
		b.cells[r] = row
	}
	return b
}

// Get returns the mask at (r,c).
func (b *Board) Get(r, c int) mask.Mask {
	return b.cells[r][c]
}

// Set overwrites the mask at (r,c). Only internal/kernel should call
// this; every other package mutates through the kernel's SetValue/
// ClearValue/KeepMask entry points.
func (b *Board) Set(r, c int, m mask.Mask) {
	b.cells[r][c] = m
}

// Clone deep-copies the board's mask grid.
func (b *Board) Clone() *Board {
	nb := &Board{Shape: b.Shape}
	nb.cells = make([][]mask.Mask, len(b.cells))
	for r, row := range b.cells {
		nr := make([]mask.Mask, len(row))
		copy(nr, row)
		nb.cells[r] = nr
	}
	return nb
}

// IsComplete reports whether every cell is value-set.
func (b *Board) IsComplete() bool {
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			if !mask.IsSet(b.cells[r][c]) {
				return false
			}
		}
	}
	return true
}

// EachCell calls fn for every cell in row-major order.
func (b *Board) EachCell(fn func(r, c int, m mask.Mask)) {
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			fn(r, c, b.cells[r][c])
		}
	}
}

// Box returns the box index of cell (r,c), numbered left-to-right,
// top-to-bottom.
func (b *Board) Box(r, c int) int {
	boxRow := r / b.BoxHeight
	boxCol := c / b.BoxWidth
	boxesPerRow := b.Width / b.BoxWidth
	return boxRow*boxesPerRow + boxCol
}

// BoxOrigin returns the top-left cell of the box containing (r,c).
func (b *Board) BoxOrigin(r, c int) (baseRow, baseCol int) {
	return (r / b.BoxHeight) * b.BoxHeight, (c / b.BoxWidth) * b.BoxWidth
}
