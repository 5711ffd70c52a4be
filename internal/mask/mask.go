// Package mask implements the bitmask primitives of spec §4.A: a cell's
// remaining candidates packed into the low bits of a Mask, with a high
// "value-set" flag bit marking a fixed cell.
//
// The teacher's internal/board/cell.go and internal/puzzle/cell.go both
// track per-cell candidates with a map-backed set.Set[int8]. That is
// fine for a fixed 9x9 board but costs an allocation and a map lookup
// per candidate test; the kernel's propagation loop (internal/kernel)
// runs this on every mutation, so we trade the teacher's generic Set
// for a single machine word here. math/bits is the standard library's
// own answer for popcount/trailing-zero on a word and nothing in the
// retrieved example repos brings a bitset library that does better for
// a single uint32 — see DESIGN.md.
package mask

import (
	"math/bits"

	"github.com/kpitt/gridlogic/internal/errs"
)

// Mask packs a cell's candidate set into its low bits and a value-set
// flag into bit 31. MaxValue is capped at 30 so the flag bit never
// collides with a candidate bit.
type Mask uint32

// SetFlag marks a cell as fixed to a single value. It is kept out of
// the candidate bit range (1..30) regardless of MaxValue.
const SetFlag Mask = 1 << 31

// ValueMask returns the single-bit mask for candidate value v (1-based).
func ValueMask(v int) Mask {
	return 1 << uint(v-1)
}

// AllValuesMask returns the mask with every candidate bit set for a
// board whose maximum value is maxValue.
func AllValuesMask(maxValue int) Mask {
	if maxValue >= 31 {
		maxValue = 30
	}
	return Mask(1<<uint(maxValue)) - 1
}

// Has reports whether v is present as a candidate in m (regardless of
// whether m is also value-set).
func Has(m Mask, v int) bool {
	return m&ValueMask(v) != 0
}

// IsSet reports whether m represents a fixed cell.
func IsSet(m Mask) bool {
	return m&SetFlag != 0
}

// WithSet returns m with the value-set flag applied.
func WithSet(m Mask) Mask {
	return m | SetFlag
}

// Candidates strips the value-set flag, returning just the candidate bits.
func Candidates(m Mask) Mask {
	return m &^ SetFlag
}

// PopCount returns the number of candidate bits set in m (ignoring the
// value-set flag).
func PopCount(m Mask) int {
	return bits.OnesCount32(uint32(Candidates(m)))
}

// MinValue returns the smallest candidate value present in m, or 0 if
// m has no candidates.
func MinValue(m Mask) int {
	c := uint32(Candidates(m))
	if c == 0 {
		return 0
	}
	return bits.TrailingZeros32(c) + 1
}

// MaxValue returns the largest candidate value present in m, or 0 if m
// has no candidates.
func MaxValue(m Mask) int {
	c := uint32(Candidates(m))
	if c == 0 {
		return 0
	}
	return 32 - bits.LeadingZeros32(c)
}

// GetValue returns the single fixed value of a value-set mask. It
// fails with errs.ErrInvalidCellState if m is not value-set or does
// not carry exactly one candidate bit.
func GetValue(m Mask) (int, error) {
	if !IsSet(m) {
		return 0, errs.ErrInvalidCellState
	}
	c := Candidates(m)
	if bits.OnesCount32(uint32(c)) != 1 {
		return 0, errs.ErrInvalidCellState
	}
	return MinValue(m), nil
}

// Coord identifies a single board cell by zero-based row and column.
type Coord struct {
	Row, Col int
}

// Values returns every candidate value present in m, ascending.
func Values(m Mask) []int {
	c := uint32(Candidates(m))
	out := make([]int, 0, bits.OnesCount32(c))
	for c != 0 {
		v := bits.TrailingZeros32(c) + 1
		out = append(out, v)
		c &= c - 1
	}
	return out
}

// CandidateIndex computes the unique (row,col,value) candidate index
// used as the link graph's node space: (row*width+col)*maxValue + (v-1).
func CandidateIndex(row, col, v, width, maxValue int) int {
	return (row*width+col)*maxValue + (v - 1)
}

// DecodeCandidateIndex inverts CandidateIndex.
func DecodeCandidateIndex(idx, width, maxValue int) (row, col, v int) {
	cell := idx / maxValue
	v = idx%maxValue + 1
	row = cell / width
	col = cell % width
	return row, col, v
}
