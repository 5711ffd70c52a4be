package mask_test

import (
	"errors"
	"testing"

	"github.com/kpitt/gridlogic/internal/errs"
	"github.com/kpitt/gridlogic/internal/mask"
)

func TestValueMaskRoundTrip(t *testing.T) {
	for v := 1; v <= 9; v++ {
		m := mask.ValueMask(v)
		if !mask.Has(m, v) {
			t.Fatalf("ValueMask(%d) does not report Has(%d)", v, v)
		}
		if got, err := mask.GetValue(mask.WithSet(m)); err != nil || got != v {
			t.Fatalf("GetValue(WithSet(ValueMask(%d))) = %d, %v", v, got, err)
		}
	}
}

func TestAllValuesMaskPopCount(t *testing.T) {
	m := mask.AllValuesMask(9)
	if got := mask.PopCount(m); got != 9 {
		t.Fatalf("PopCount(AllValuesMask(9)) = %d, want 9", got)
	}
	if got := mask.MinValue(m); got != 1 {
		t.Fatalf("MinValue = %d, want 1", got)
	}
	if got := mask.MaxValue(m); got != 9 {
		t.Fatalf("MaxValue = %d, want 9", got)
	}
}

func TestGetValueOnUnsetMaskFails(t *testing.T) {
	m := mask.ValueMask(3) // candidate present, but not fixed
	if _, err := mask.GetValue(m); !errors.Is(err, errs.ErrInvalidCellState) {
		t.Fatalf("GetValue on non-set mask = %v, want ErrInvalidCellState", err)
	}
}

func TestGetValueOnMultiBitSetMaskFails(t *testing.T) {
	m := mask.WithSet(mask.ValueMask(1) | mask.ValueMask(2))
	if _, err := mask.GetValue(m); !errors.Is(err, errs.ErrInvalidCellState) {
		t.Fatalf("GetValue on malformed set mask = %v, want ErrInvalidCellState", err)
	}
}

func TestValuesIteratesAscending(t *testing.T) {
	m := mask.ValueMask(2) | mask.ValueMask(5) | mask.ValueMask(9)
	got := mask.Values(m)
	want := []int{2, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("Values = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values = %v, want %v", got, want)
		}
	}
}

func TestCandidateIndexRoundTrip(t *testing.T) {
	idx := mask.CandidateIndex(4, 6, 7, 9, 9)
	r, c, v := mask.DecodeCandidateIndex(idx, 9, 9)
	if r != 4 || c != 6 || v != 7 {
		t.Fatalf("DecodeCandidateIndex(%d) = (%d,%d,%d), want (4,6,7)", idx, r, c, v)
	}
}
