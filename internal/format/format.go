// Package format implements the external codecs of spec §6: the
// givens-string and candidates-string wire formats, plus the terminal
// board printer.
//
// Grounded on the teacher's internal/puzzle/reader.go (reading a givens
// grid from a rune stream) and internal/board/printer.go /
// internal/puzzle/printer.go (the fatih/color-driven board print, now
// superseded), generalized from a hardwired 9x9/digit-only alphabet to
// MaxValue up to 30 via the spec's 1-9/A-V rune alphabet.
package format

import (
	"fmt"
	"strings"

	"github.com/kpitt/gridlogic/internal/board"
	"github.com/kpitt/gridlogic/internal/errs"
	"github.com/kpitt/gridlogic/internal/kernel"
	"github.com/kpitt/gridlogic/internal/mask"
)

// RuneForValue maps a 1-based cell value to its external character:
// 1-9 then A-V, supporting MaxValue up to 30 (mask.Mask's candidate
// range).
func RuneForValue(v int) rune {
	if v >= 1 && v <= 9 {
		return rune('0' + v)
	}
	return rune('A' + (v - 10))
}

// ValueForRune inverts RuneForValue. Returns 0 for '.' or '0' (no
// given).
func ValueForRune(r rune) (int, bool) {
	switch {
	case r == '.' || r == '0':
		return 0, true
	case r >= '1' && r <= '9':
		return int(r - '0'), true
	case r >= 'A' && r <= 'V':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

// ParseGivens decodes a flat row-major givens string (spec §6) into a
// new kernel-ready board of shape, applying each given directly to the
// board's mask grid via board.Set (no cascading propagation — the caller
// runs FinalizeConstraints/ConsolidateBoard afterward).
func ParseGivens(shape board.Shape, s string) (*board.Board, error) {
	runes := []rune(s)
	want := shape.Height * shape.Width
	if len(runes) != want {
		return nil, errs.WrongLengthGivens(len(runes), want)
	}
	b := board.New(shape)
	for i, r := range runes {
		v, ok := ValueForRune(r)
		if !ok || v > shape.MaxValue {
			return nil, fmt.Errorf("%w: invalid given %q at position %d", errs.ErrInputFormat, r, i)
		}
		if v == 0 {
			continue
		}
		row, col := i/shape.Width, i%shape.Width
		b.Set(row, col, mask.WithSet(mask.ValueMask(v)))
	}
	return b, nil
}

// ApplyGivens parses a givens string and writes every non-empty cell
// into an already-constructed kernel via SetMask, for wiring into a
// Solver before FinalizeConstraints.
func ApplyGivens(k *kernel.Kernel, s string) error {
	runes := []rune(s)
	want := k.Board.Height * k.Board.Width
	if len(runes) != want {
		return errs.WrongLengthGivens(len(runes), want)
	}
	for i, r := range runes {
		v, ok := ValueForRune(r)
		if !ok || v > k.Board.MaxValue {
			return fmt.Errorf("%w: invalid given %q at position %d", errs.ErrInputFormat, r, i)
		}
		if v == 0 {
			continue
		}
		row, col := i/k.Board.Width, i%k.Board.Width
		k.SetMask(row, col, mask.WithSet(mask.ValueMask(v)))
	}
	return nil
}

// EncodeCandidates renders a board's full candidate grid as the flat
// candidates string of spec §6: one character per (cell, value) pair,
// '.' when the value is absent, the value's rune when present
// (regardless of whether the cell is fixed — a fixed cell is encoded
// as a single present value with every other value of that cell
// absent).
func EncodeCandidates(b *board.Board) string {
	var sb strings.Builder
	sb.Grow(b.Height * b.Width * b.MaxValue)
	b.EachCell(func(r, c int, m mask.Mask) {
		for v := 1; v <= b.MaxValue; v++ {
			if mask.Has(m, v) {
				sb.WriteRune(RuneForValue(v))
			} else {
				sb.WriteRune('.')
			}
		}
	})
	return sb.String()
}

// ParseCandidates decodes a candidates string (spec §6) into a new
// board of shape. A cell with exactly one present value is marked
// value-set; round-tripping board -> EncodeCandidates -> ParseCandidates
// is the identity modulo that re-derivation.
func ParseCandidates(shape board.Shape, s string) (*board.Board, error) {
	runes := []rune(s)
	want := shape.Height * shape.Width * shape.MaxValue
	if len(runes) != want {
		return nil, errs.WrongLengthCandidates(len(runes), want)
	}
	b := board.New(shape)
	i := 0
	for r := 0; r < shape.Height; r++ {
		for c := 0; c < shape.Width; c++ {
			var m mask.Mask
			for v := 1; v <= shape.MaxValue; v++ {
				ch := runes[i]
				i++
				if ch == '.' {
					continue
				}
				rv, ok := ValueForRune(ch)
				if !ok || rv != v {
					return nil, fmt.Errorf("%w: invalid candidate %q at position %d", errs.ErrInputFormat, ch, i-1)
				}
				m |= mask.ValueMask(v)
			}
			if mask.PopCount(m) == 1 {
				m = mask.WithSet(m)
			}
			b.Set(r, c, m)
		}
	}
	return b, nil
}

// FormatCell renders a 1-based "rNcN" coordinate, matching the logic
// engine's step descriptions.
func FormatCell(r, c int) string {
	return fmt.Sprintf("r%dc%d", r+1, c+1)
}
