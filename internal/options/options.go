// Package options implements the constraint options-string DSL of spec
// §6: a small grammar constraints use to describe their cells and
// parameters in the external puzzle format (`R{row}C{col}` cell
// tokens, `;`-separated cell groups, `:`-separated values, `neg`-
// prefixed negative-set predicates).
//
// The teacher has nothing like this — classic Sudoku has no
// configurable constraints to describe — so this package is grounded
// directly on spec §6's grammar description, written in the idiom of
// internal/format's codecs (a small regexp-driven parser returning
// errs.ErrInputFormat on malformed input, exactly like
// format.ParseGivens).
package options

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kpitt/gridlogic/internal/errs"
	"github.com/kpitt/gridlogic/internal/mask"
)

var cellToken = regexp.MustCompile(`[Rr](\d+)[Cc](\d+)`)

// ParseCells parses a concatenated run of R{row}C{col} tokens (1-based
// in the DSL) into 0-based board coordinates, e.g. "R1C2R1C3" ->
// [{0,1},{0,2}].
func ParseCells(s string) ([]mask.Coord, error) {
	matches := cellToken.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil, errs.ErrInputFormat
	}
	if joined := cellToken.ReplaceAllString(s, ""); strings.TrimSpace(joined) != "" {
		return nil, errs.ErrInputFormat
	}
	out := make([]mask.Coord, len(matches))
	for i, m := range matches {
		row, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, errs.ErrInputFormat
		}
		col, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, errs.ErrInputFormat
		}
		out[i] = mask.Coord{Row: row - 1, Col: col - 1}
	}
	return out, nil
}

// ParseCellGroups splits a `;`-separated list of cell-token runs into
// groups, e.g. "R1C2R1C3;R4C5" -> [[{0,1},{0,2}], [{3,4}]].
func ParseCellGroups(s string) ([][]mask.Coord, error) {
	parts := strings.Split(s, ";")
	out := make([][]mask.Coord, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cells, err := ParseCells(part)
		if err != nil {
			return nil, err
		}
		out = append(out, cells)
	}
	if len(out) == 0 {
		return nil, errs.ErrInputFormat
	}
	return out, nil
}

// Predicate is a named, optionally negated, `:`-separated value list
// clause such as "difference:neg1" (name "difference", negated,
// values [1]) or "sum:10:15" (name "sum", values [10, 15]).
type Predicate struct {
	Name     string
	Negated  bool
	Values   []int
}

// ParsePredicate parses a single `:`-separated predicate clause.
func ParsePredicate(s string) (Predicate, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return Predicate{}, errs.ErrInputFormat
	}
	p := Predicate{Name: parts[0]}
	for _, raw := range parts[1:] {
		raw = strings.TrimSpace(raw)
		negated := strings.HasPrefix(raw, "neg")
		if negated {
			raw = strings.TrimPrefix(raw, "neg")
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Predicate{}, errs.ErrInputFormat
		}
		if negated {
			p.Negated = true
		}
		p.Values = append(p.Values, v)
	}
	return p, nil
}
