package board_test

import (
	"testing"

	"github.com/kpitt/gridlogic/internal/board"
	"github.com/kpitt/gridlogic/internal/mask"
)

func TestNewBoardFullyOpen(t *testing.T) {
	b := board.New(board.Classic9x9)
	count := 0
	b.EachCell(func(r, c int, m mask.Mask) {
		count++
		if mask.IsSet(m) {
			t.Fatalf("cell (%d,%d) is set on a fresh board", r, c)
		}
		if got := mask.PopCount(m); got != 9 {
			t.Fatalf("cell (%d,%d) PopCount = %d, want 9", r, c, got)
		}
	})
	if count != 81 {
		t.Fatalf("EachCell visited %d cells, want 81", count)
	}
}

func TestBoxAndBoxOrigin(t *testing.T) {
	b := board.New(board.Classic9x9)
	cases := []struct {
		r, c, box, baseR, baseC int
	}{
		{0, 0, 0, 0, 0},
		{2, 2, 0, 0, 0},
		{0, 3, 1, 0, 3},
		{4, 4, 4, 3, 3},
		{8, 8, 8, 6, 6},
	}
	for _, tc := range cases {
		if got := b.Box(tc.r, tc.c); got != tc.box {
			t.Fatalf("Box(%d,%d) = %d, want %d", tc.r, tc.c, got, tc.box)
		}
		br, bc := b.BoxOrigin(tc.r, tc.c)
		if br != tc.baseR || bc != tc.baseC {
			t.Fatalf("BoxOrigin(%d,%d) = (%d,%d), want (%d,%d)", tc.r, tc.c, br, bc, tc.baseR, tc.baseC)
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	b := board.New(board.Classic9x9)
	clone := b.Clone()
	clone.Set(0, 0, mask.WithSet(mask.ValueMask(5)))
	if mask.IsSet(b.Get(0, 0)) {
		t.Fatalf("mutating clone affected original board")
	}
	if !mask.IsSet(clone.Get(0, 0)) {
		t.Fatalf("clone did not retain its own mutation")
	}
}

func TestIsComplete(t *testing.T) {
	b := board.New(board.Classic9x9)
	if b.IsComplete() {
		t.Fatalf("fresh board reports complete")
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			b.Set(r, c, mask.WithSet(mask.ValueMask(1)))
		}
	}
	if !b.IsComplete() {
		t.Fatalf("fully set board reports incomplete")
	}
}
