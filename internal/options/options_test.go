package options_test

import (
	"errors"
	"testing"

	"github.com/kpitt/gridlogic/internal/errs"
	"github.com/kpitt/gridlogic/internal/mask"
	"github.com/kpitt/gridlogic/internal/options"
)

func TestParseCells(t *testing.T) {
	got, err := options.ParseCells("R1C2R3C4")
	if err != nil {
		t.Fatalf("ParseCells error: %v", err)
	}
	want := []mask.Coord{{Row: 0, Col: 1}, {Row: 2, Col: 3}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("ParseCells = %v, want %v", got, want)
	}
}

func TestParseCellsRejectsGarbage(t *testing.T) {
	_, err := options.ParseCells("R1C2garbage")
	if !errors.Is(err, errs.ErrInputFormat) {
		t.Fatalf("ParseCells with trailing garbage = %v, want ErrInputFormat", err)
	}
}

func TestParseCellsRejectsEmpty(t *testing.T) {
	_, err := options.ParseCells("")
	if !errors.Is(err, errs.ErrInputFormat) {
		t.Fatalf("ParseCells empty string = %v, want ErrInputFormat", err)
	}
}

func TestParseCellGroups(t *testing.T) {
	got, err := options.ParseCellGroups("R1C1R1C2;R4C5")
	if err != nil {
		t.Fatalf("ParseCellGroups error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ParseCellGroups returned %d groups, want 2", len(got))
	}
	if len(got[0]) != 2 || len(got[1]) != 1 {
		t.Fatalf("ParseCellGroups group sizes = %d,%d, want 2,1", len(got[0]), len(got[1]))
	}
}

func TestParsePredicate(t *testing.T) {
	p, err := options.ParsePredicate("difference:neg1")
	if err != nil {
		t.Fatalf("ParsePredicate error: %v", err)
	}
	if p.Name != "difference" || !p.Negated || len(p.Values) != 1 || p.Values[0] != 1 {
		t.Fatalf("ParsePredicate = %+v, want {difference true [1]}", p)
	}
}

func TestParsePredicateMultiValue(t *testing.T) {
	p, err := options.ParsePredicate("sum:10:15")
	if err != nil {
		t.Fatalf("ParsePredicate error: %v", err)
	}
	if p.Name != "sum" || p.Negated || len(p.Values) != 2 {
		t.Fatalf("ParsePredicate = %+v, want {sum false [10 15]}", p)
	}
}

func TestParsePredicateRejectsNoValues(t *testing.T) {
	_, err := options.ParsePredicate("sum")
	if !errors.Is(err, errs.ErrInputFormat) {
		t.Fatalf("ParsePredicate with no values = %v, want ErrInputFormat", err)
	}
}
