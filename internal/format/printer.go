package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/kpitt/gridlogic/internal/board"
	"github.com/kpitt/gridlogic/internal/mask"
)

var (
	givenColor  = color.New(color.FgHiWhite, color.Bold)
	solvedColor = color.New(color.FgHiCyan)
	emptyColor  = color.New(color.FgHiBlack)
)

// Print writes b to w in the teacher's terminal-coloring idiom
// (internal/board/printer.go, now superseded): solved cells in bright
// white/cyan, unsolved cells rendered as a dot in dim gray, box
// boundaries marked with extra spacing. given marks which cells were
// part of the original puzzle (rendered bold) versus solved along the
// way (rendered plain); pass nil to skip that distinction.
func Print(w io.Writer, b *board.Board, given *board.Board) {
	for r := 0; r < b.Height; r++ {
		if r > 0 && b.BoxHeight > 0 && r%b.BoxHeight == 0 {
			fmt.Fprintln(w)
		}
		for c := 0; c < b.Width; c++ {
			if c > 0 && b.BoxWidth > 0 && c%b.BoxWidth == 0 {
				fmt.Fprint(w, " ")
			}
			m := b.Get(r, c)
			if !mask.IsSet(m) {
				emptyColor.Fprint(w, ". ")
				continue
			}
			v, _ := mask.GetValue(m)
			ch := string(RuneForValue(v))
			if given != nil && mask.IsSet(given.Get(r, c)) {
				givenColor.Fprint(w, ch+" ")
			} else {
				solvedColor.Fprint(w, ch+" ")
			}
		}
		fmt.Fprintln(w)
	}
}

// PrintUnsolvedCounts reports, per unsolved cell, its remaining
// candidate count — the teacher's printUnsolvedCounts diagnostic for a
// partial solve, generalized off a hardwired 9x9.
func PrintUnsolvedCounts(w io.Writer, b *board.Board) {
	b.EachCell(func(r, c int, m mask.Mask) {
		if mask.IsSet(m) {
			return
		}
		vals := mask.Values(mask.Candidates(m))
		strs := make([]string, len(vals))
		for i, v := range vals {
			strs[i] = string(RuneForValue(v))
		}
		fmt.Fprintf(w, "%s: %d candidates [%s]\n", FormatCell(r, c), len(vals), strings.Join(strs, ""))
	})
}
