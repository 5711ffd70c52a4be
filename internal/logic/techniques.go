package logic

import (
	"fmt"

	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/group"
	"github.com/kpitt/gridlogic/internal/mask"
)

// combinations yields every size-k subset of {0,...,n-1}, ascending,
// replacing the teacher's copy-pasted triple-nested loops (one per
// subset size in checkNakedPairsForHouse / Triples / Quadruples) with
// one generator parameterized by k.
func combinations(n, k int, yield func(idx []int) bool) {
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !yield(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func (e *Engine) unsetCells(g *group.Group) []int {
	var out []int
	for i := 0; i < g.Size(); i++ {
		c := g.Cell(i)
		if !mask.IsSet(e.K.Candidates(c.Row, c.Col)) {
			out = append(out, i)
		}
	}
	return out
}

// --- Naked subsets (size 2..4) ---------------------------------------

func (e *Engine) findNakedSubsets(size int, steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	for _, g := range e.K.Groups.Groups() {
		slots := e.unsetCells(g)
		var candidateSlots []int
		for _, s := range slots {
			c := g.Cell(s)
			n := mask.PopCount(e.K.Candidates(c.Row, c.Col))
			if n >= 2 && n <= size {
				candidateSlots = append(candidateSlots, s)
			}
		}
		if len(candidateSlots) < size {
			continue
		}

		var result constraint.LogicResult
		var resultErr error
		found := false
		combinations(len(candidateSlots), size, func(idx []int) bool {
			var union mask.Mask
			chosen := make([]int, size)
			for i, ii := range idx {
				s := candidateSlots[ii]
				chosen[i] = s
				c := g.Cell(s)
				union |= mask.Candidates(e.K.Candidates(c.Row, c.Col))
			}
			if mask.PopCount(union) != size {
				return true
			}
			res, elims, err := e.eliminateFromOtherSlots(g, chosen, union)
			if err != nil || res == constraint.ResultInvalid {
				result, resultErr = res, err
				return false
			}
			if len(elims) == 0 {
				return true
			}
			*steps = append(*steps, constraint.StepDesc{
				Description: fmt.Sprintf("Naked Subset(%d) in %s", size, formatGroup(g)),
				Eliminated:  elims,
			})
			result = res
			found = true
			return false
		})
		if resultErr != nil || result == constraint.ResultInvalid {
			return constraint.ResultInvalid, resultErr
		}
		if found {
			return result, nil
		}
	}
	return constraint.ResultNone, nil
}

// eliminateFromOtherSlots removes every value in `values` from every
// cell in g other than those listed in keepSlots. Mirrors the
// teacher's eliminateFromOtherLocs (internal/solver/techniques.go).
func (e *Engine) eliminateFromOtherSlots(g *group.Group, keepSlots []int, values mask.Mask) (constraint.LogicResult, []int, error) {
	keep := map[int]bool{}
	for _, s := range keepSlots {
		keep[s] = true
	}
	var elims []int
	changed := false
	for i := 0; i < g.Size(); i++ {
		if keep[i] {
			continue
		}
		c := g.Cell(i)
		cur := e.K.Candidates(c.Row, c.Col)
		if mask.IsSet(cur) {
			continue
		}
		for _, v := range mask.Values(mask.Candidates(cur) & values) {
			res, err := e.K.ClearValue(c.Row, c.Col, v)
			if err != nil {
				return constraint.ResultInvalid, nil, err
			}
			if res == constraint.ResultInvalid {
				return res, nil, nil
			}
			elims = append(elims, e.K.CandidateIndex(c.Row, c.Col, v))
			changed = true
		}
	}
	if !changed {
		return constraint.ResultNone, nil, nil
	}
	return constraint.ResultChanged, elims, nil
}

// --- Hidden subsets (size 2..4) ---------------------------------------

func (e *Engine) findHiddenSubsets(size int, steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	for _, g := range e.K.Groups.Groups() {
		var candidateValues []int
		for _, v := range g.UnsolvedValues() {
			n := g.NumLocations(v)
			if n >= 2 && n <= size {
				candidateValues = append(candidateValues, v)
			}
		}
		if len(candidateValues) < size {
			continue
		}

		var result constraint.LogicResult
		var resultErr error
		found := false
		combinations(len(candidateValues), size, func(idx []int) bool {
			slotSet := map[int]bool{}
			values := make([]int, size)
			for i, ii := range idx {
				v := candidateValues[ii]
				values[i] = v
				for _, slot := range g.Locations(v) {
					slotSet[slot] = true
				}
			}
			if len(slotSet) != size {
				return true
			}
			var valueMask mask.Mask
			for _, v := range values {
				valueMask |= mask.ValueMask(v)
			}
			var elims []int
			changed := false
			for slot := range slotSet {
				c := g.Cell(slot)
				cur := e.K.Candidates(c.Row, c.Col)
				removed := mask.Candidates(cur) &^ valueMask
				if removed == 0 {
					continue
				}
				for _, v := range mask.Values(removed) {
					res, err := e.K.ClearValue(c.Row, c.Col, v)
					if err != nil {
						result, resultErr = constraint.ResultInvalid, err
						return false
					}
					if res == constraint.ResultInvalid {
						result = res
						return false
					}
					elims = append(elims, e.K.CandidateIndex(c.Row, c.Col, v))
					changed = true
				}
			}
			if !changed {
				return true
			}
			*steps = append(*steps, constraint.StepDesc{
				Description: fmt.Sprintf("Hidden Subset(%d) in %s", size, formatGroup(g)),
				Eliminated:  elims,
			})
			result = constraint.ResultChanged
			found = true
			return false
		})
		if resultErr != nil || result == constraint.ResultInvalid {
			return constraint.ResultInvalid, resultErr
		}
		if found {
			return result, nil
		}
	}
	return constraint.ResultNone, nil
}

// --- Locked candidates (pointing / claiming) --------------------------

// findLockedCandidates checks, for every box, whether a value's
// remaining locations all share a row or column (pointing), and for
// every row/column, whether a value's remaining locations all share a
// box (claiming). Grounded on the teacher's checkPointingTuplesForBox
// / checkLockedCandidatesForLine.
func (e *Engine) findLockedCandidates(steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	boxes := e.K.Groups.GroupsByKind(group.Box)
	rows := e.K.Groups.GroupsByKind(group.Row)
	cols := e.K.Groups.GroupsByKind(group.Column)

	for _, box := range boxes {
		for _, v := range box.UnsolvedValues() {
			locs := box.Locations(v)
			if len(locs) == 0 {
				continue
			}
			cells := make([]mask.Coord, len(locs))
			for i, s := range locs {
				cells[i] = box.Cell(s)
			}
			if row, ok := sameRow(cells); ok {
				if res, elims := e.clearFromLine(rows, row, v, cells); len(elims) > 0 {
					if res == constraint.ResultInvalid {
						return res, nil
					}
					*steps = append(*steps, constraint.StepDesc{
						Description: fmt.Sprintf("Pointing Tuple (Row) %d in %s", v, formatGroup(box)),
						Eliminated:  elims,
					})
					return constraint.ResultChanged, nil
				}
			}
			if col, ok := sameCol(cells); ok {
				if res, elims := e.clearFromLine(cols, col, v, cells); len(elims) > 0 {
					if res == constraint.ResultInvalid {
						return res, nil
					}
					*steps = append(*steps, constraint.StepDesc{
						Description: fmt.Sprintf("Pointing Tuple (Column) %d in %s", v, formatGroup(box)),
						Eliminated:  elims,
					})
					return constraint.ResultChanged, nil
				}
			}
		}
	}

	for _, line := range append(append([]*group.Group{}, rows...), cols...) {
		for _, v := range line.UnsolvedValues() {
			locs := line.Locations(v)
			if len(locs) == 0 {
				continue
			}
			cells := make([]mask.Coord, len(locs))
			for i, s := range locs {
				cells[i] = line.Cell(s)
			}
			box, ok := sameBox(e.K.Board, cells)
			if !ok {
				continue
			}
			elims, invalid, err := e.eliminateValueOutsideCells(box, v, cells)
			if err != nil {
				return constraint.ResultInvalid, err
			}
			if invalid {
				return constraint.ResultInvalid, nil
			}
			if len(elims) > 0 {
				*steps = append(*steps, constraint.StepDesc{
					Description: fmt.Sprintf("Locked Candidate (%s) %d in box", formatGroup(line), v),
					Eliminated:  elims,
				})
				return constraint.ResultChanged, nil
			}
		}
	}
	return constraint.ResultNone, nil
}

func (e *Engine) clearFromLine(lines []*group.Group, index int, v int, keep []mask.Coord) (constraint.LogicResult, []int) {
	var line *group.Group
	for _, l := range lines {
		if l.Index == index {
			line = l
			break
		}
	}
	if line == nil {
		return constraint.ResultNone, nil
	}
	elims, invalid, err := e.eliminateValueOutsideCells(line, v, keep)
	if err != nil || invalid {
		return constraint.ResultInvalid, nil
	}
	return constraint.ResultChanged, elims
}

func (e *Engine) eliminateValueOutsideCells(g *group.Group, v int, keep []mask.Coord) ([]int, bool, error) {
	keepSet := map[mask.Coord]bool{}
	for _, c := range keep {
		keepSet[c] = true
	}
	var elims []int
	for i := 0; i < g.Size(); i++ {
		c := g.Cell(i)
		if keepSet[c] {
			continue
		}
		cur := e.K.Candidates(c.Row, c.Col)
		if mask.IsSet(cur) || !mask.Has(cur, v) {
			continue
		}
		res, err := e.K.ClearValue(c.Row, c.Col, v)
		if err != nil {
			return nil, false, err
		}
		if res == constraint.ResultInvalid {
			return nil, true, nil
		}
		elims = append(elims, e.K.CandidateIndex(c.Row, c.Col, v))
	}
	return elims, false, nil
}

func sameRow(cells []mask.Coord) (int, bool) {
	row := cells[0].Row
	for _, c := range cells[1:] {
		if c.Row != row {
			return 0, false
		}
	}
	return row, true
}

func sameCol(cells []mask.Coord) (int, bool) {
	col := cells[0].Col
	for _, c := range cells[1:] {
		if c.Col != col {
			return 0, false
		}
	}
	return col, true
}

func sameBox(b boxer, cells []mask.Coord) (int, bool) {
	box := b.Box(cells[0].Row, cells[0].Col)
	for _, c := range cells[1:] {
		if b.Box(c.Row, c.Col) != box {
			return 0, false
		}
	}
	return box, true
}

// boxer is the minimal surface findLockedCandidates needs from
// kernel.Kernel's board to classify cells by box.
type boxer interface {
	Box(r, c int) int
}

// --- Fishes (X-Wing, Swordfish, Jellyfish) -----------------------------

// findFish looks for a size-N fish for every digit, over rows-as-base/
// columns-as-cover and the transpose, generalizing the teacher's
// findXWings/findSwordfish/findJellyfish (internal/solver/techniques.go)
// into one size-parameterized search.
func (e *Engine) findFish(size int, steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	rows := e.K.Groups.GroupsByKind(group.Row)
	cols := e.K.Groups.GroupsByKind(group.Column)
	if res, err := e.findFishInLines(size, rows, cols, steps); res != constraint.ResultNone || err != nil {
		return res, err
	}
	return e.findFishInLines(size, cols, rows, steps)
}

func (e *Engine) findFishInLines(size int, baseLines, coverLines []*group.Group, steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	maxValue := e.K.Board.MaxValue
	for v := 1; v <= maxValue; v++ {
		var candidates []*group.Group
		for _, line := range baseLines {
			n := line.NumLocations(v)
			if n >= 2 && n <= size {
				candidates = append(candidates, line)
			}
		}
		if len(candidates) < size {
			continue
		}

		var result constraint.LogicResult
		var resultErr error
		found := false
		combinations(len(candidates), size, func(idx []int) bool {
			coverSet := map[int]bool{}
			lines := make([]*group.Group, size)
			for i, ii := range idx {
				lines[i] = candidates[ii]
				for _, slot := range lines[i].Locations(v) {
					cell := lines[i].Cell(slot)
					coverIdx := coverIndex(lines[i], cell)
					coverSet[coverIdx] = true
				}
			}
			if len(coverSet) != size {
				return true
			}
			covers := make([]*group.Group, 0, size)
			for _, cv := range coverLines {
				if coverSet[cv.Index] {
					covers = append(covers, cv)
				}
			}
			baseSet := map[mask.Coord]bool{}
			for _, l := range lines {
				for _, slot := range l.Locations(v) {
					baseSet[l.Cell(slot)] = true
				}
			}
			var elims []int
			changed := false
			for _, cover := range covers {
				for i := 0; i < cover.Size(); i++ {
					c := cover.Cell(i)
					if baseSet[c] {
						continue
					}
					cur := e.K.Candidates(c.Row, c.Col)
					if mask.IsSet(cur) || !mask.Has(cur, v) {
						continue
					}
					res, err := e.K.ClearValue(c.Row, c.Col, v)
					if err != nil {
						result, resultErr = constraint.ResultInvalid, err
						return false
					}
					if res == constraint.ResultInvalid {
						result = res
						return false
					}
					elims = append(elims, e.K.CandidateIndex(c.Row, c.Col, v))
					changed = true
				}
			}
			if !changed {
				return true
			}
			*steps = append(*steps, constraint.StepDesc{
				Description: fmt.Sprintf("Fish(%d) %d", size, v),
				Eliminated:  elims,
			})
			result = constraint.ResultChanged
			found = true
			return false
		})
		if resultErr != nil || result == constraint.ResultInvalid {
			return constraint.ResultInvalid, resultErr
		}
		if found {
			return result, nil
		}
	}
	return constraint.ResultNone, nil
}

func coverIndex(base *group.Group, c mask.Coord) int {
	if base.Kind == group.Row {
		return c.Col
	}
	return c.Row
}

// --- XY-Wing / XYZ-Wing ------------------------------------------------

func (e *Engine) twoCandidateCells() []mask.Coord {
	var out []mask.Coord
	b := e.K.Board
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			m := e.K.Candidates(r, c)
			if !mask.IsSet(m) && mask.PopCount(m) == 2 {
				out = append(out, mask.Coord{Row: r, Col: c})
			}
		}
	}
	return out
}

func (e *Engine) seesCell(a, b mask.Coord) bool {
	if a == b {
		return false
	}
	for _, g := range e.K.Groups.GroupsOf(a.Row, a.Col) {
		if g.SlotOf(b.Row, b.Col) >= 0 {
			return true
		}
	}
	return false
}

// findXYWing looks for a pivot cell with candidates {x,y} and two
// pincer cells {x,z},{y,z} that both see the pivot but not each other,
// eliminating z from any cell that sees both pincers. Grounded on the
// teacher's findXYWing/checkXYWingsForPivot.
func (e *Engine) findXYWing(steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	candidates := e.twoCandidateCells()
	if len(candidates) < 3 {
		return constraint.ResultNone, nil
	}
	for _, pivot := range candidates {
		pm := mask.Candidates(e.K.Candidates(pivot.Row, pivot.Col))
		vals := mask.Values(pm)
		x, y := vals[0], vals[1]

		var xCells, yCells []mask.Coord
		for _, cell := range candidates {
			if cell == pivot || !e.seesCell(cell, pivot) {
				continue
			}
			cm := mask.Candidates(e.K.Candidates(cell.Row, cell.Col))
			hasX, hasY := mask.Has(cm, x), mask.Has(cm, y)
			if hasX && !hasY {
				xCells = append(xCells, cell)
			} else if hasY && !hasX {
				yCells = append(yCells, cell)
			}
		}
		for _, xc := range xCells {
			xv := mask.Values(mask.Candidates(e.K.Candidates(xc.Row, xc.Col)))
			z := xv[0]
			if z == x {
				z = xv[1]
			}
			for _, yc := range yCells {
				ycm := mask.Candidates(e.K.Candidates(yc.Row, yc.Col))
				if !mask.Has(ycm, z) || e.seesCell(xc, yc) {
					continue
				}
				elims, invalid, err := e.eliminateSeenByBoth(xc, yc, z)
				if err != nil {
					return constraint.ResultInvalid, err
				}
				if invalid {
					return constraint.ResultInvalid, nil
				}
				if len(elims) > 0 {
					*steps = append(*steps, constraint.StepDesc{
						Description: fmt.Sprintf("XY-Wing %d/%d/%d", x, y, z),
						Eliminated:  elims,
					})
					return constraint.ResultChanged, nil
				}
			}
		}
	}
	return constraint.ResultNone, nil
}

func (e *Engine) eliminateSeenByBoth(a, b mask.Coord, v int) ([]int, bool, error) {
	seen := map[mask.Coord]bool{}
	for _, g := range e.K.Groups.GroupsOf(a.Row, a.Col) {
		for i := 0; i < g.Size(); i++ {
			seen[g.Cell(i)] = true
		}
	}
	var elims []int
	board := e.K.Board
	for r := 0; r < board.Height; r++ {
		for c := 0; c < board.Width; c++ {
			cell := mask.Coord{Row: r, Col: c}
			if cell == a || cell == b || !seen[cell] || !e.seesCell(b, cell) {
				continue
			}
			cur := e.K.Candidates(r, c)
			if mask.IsSet(cur) || !mask.Has(cur, v) {
				continue
			}
			res, err := e.K.ClearValue(r, c, v)
			if err != nil {
				return nil, false, err
			}
			if res == constraint.ResultInvalid {
				return nil, true, nil
			}
			elims = append(elims, e.K.CandidateIndex(r, c, v))
		}
	}
	return elims, false, nil
}

// findXYZWing looks for a pivot cell with 3 candidates {x,y,z}, a
// pincer in the pivot's box with 2 of those candidates, and a second
// pincer sharing a row or column with the pivot holding the remaining
// pair; eliminates the common value from cells seeing all three.
// Grounded on the teacher's findXYZWings/checkXYZWingsForPivot.
func (e *Engine) findXYZWing(steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	board := e.K.Board
	for r := 0; r < board.Height; r++ {
		for c := 0; c < board.Width; c++ {
			pivot := mask.Coord{Row: r, Col: c}
			pm := e.K.Candidates(r, c)
			if mask.IsSet(pm) || mask.PopCount(pm) != 3 {
				continue
			}
			if res, err := e.checkXYZWingPivot(pivot, steps); res != constraint.ResultNone || err != nil {
				return res, err
			}
		}
	}
	return constraint.ResultNone, nil
}

func (e *Engine) checkXYZWingPivot(pivot mask.Coord, steps *[]constraint.StepDesc) (constraint.LogicResult, error) {
	var xzCells []mask.Coord
	for _, g := range e.K.Groups.GroupsOf(pivot.Row, pivot.Col) {
		if g.Kind != group.Box {
			continue
		}
		for i := 0; i < g.Size(); i++ {
			cell := g.Cell(i)
			cm := e.K.Candidates(cell.Row, cell.Col)
			if mask.IsSet(cm) || mask.PopCount(cm) != 2 {
				continue
			}
			pc := mask.Candidates(e.K.Candidates(pivot.Row, pivot.Col))
			if mask.Candidates(cm)&^pc == 0 {
				xzCells = append(xzCells, cell)
			}
		}
	}

	for _, xz := range xzCells {
		pc := mask.Candidates(e.K.Candidates(pivot.Row, pivot.Col))
		xzm := mask.Candidates(e.K.Candidates(xz.Row, xz.Col))
		var y int
		for _, v := range mask.Values(pc) {
			if !mask.Has(xzm, v) {
				y = v
				break
			}
		}
		isYZ := func(cell mask.Coord) bool {
			if cell.Row == xz.Row && cell.Col == xz.Col {
				return false
			}
			cm := e.K.Candidates(cell.Row, cell.Col)
			if mask.IsSet(cm) || mask.PopCount(cm) != 2 || !mask.Has(cm, y) {
				return false
			}
			for _, v := range mask.Values(mask.Candidates(cm)) {
				if v != y && !mask.Has(xzm, v) {
					return false
				}
			}
			return true
		}

		var others []mask.Coord
		for _, g := range e.K.Groups.GroupsOf(pivot.Row, pivot.Col) {
			if g.Kind != group.Row && g.Kind != group.Column {
				continue
			}
			for i := 0; i < g.Size(); i++ {
				others = append(others, g.Cell(i))
			}
		}
		for _, yz := range others {
			if !isYZ(yz) {
				continue
			}
			var z int
			for _, v := range mask.Values(xzm) {
				if mask.Has(e.K.Candidates(yz.Row, yz.Col), v) {
					z = v
					break
				}
			}
			elims, invalid, err := e.eliminateSeenByAllThree(pivot, xz, yz, z)
			if err != nil {
				return constraint.ResultInvalid, err
			}
			if invalid {
				return constraint.ResultInvalid, nil
			}
			if len(elims) > 0 {
				*steps = append(*steps, constraint.StepDesc{
					Description: "XYZ-Wing",
					Eliminated:  elims,
				})
				return constraint.ResultChanged, nil
			}
		}
	}
	return constraint.ResultNone, nil
}

func (e *Engine) eliminateSeenByAllThree(pivot, xz, yz mask.Coord, v int) ([]int, bool, error) {
	var elims []int
	board := e.K.Board
	for r := 0; r < board.Height; r++ {
		for c := 0; c < board.Width; c++ {
			cell := mask.Coord{Row: r, Col: c}
			if cell == pivot || cell == xz || cell == yz {
				continue
			}
			if !e.seesCell(cell, pivot) || !e.seesCell(cell, xz) || !e.seesCell(cell, yz) {
				continue
			}
			cur := e.K.Candidates(r, c)
			if mask.IsSet(cur) || !mask.Has(cur, v) {
				continue
			}
			res, err := e.K.ClearValue(r, c, v)
			if err != nil {
				return nil, false, err
			}
			if res == constraint.ResultInvalid {
				return nil, true, nil
			}
			elims = append(elims, e.K.CandidateIndex(r, c, v))
		}
	}
	return elims, false, nil
}
