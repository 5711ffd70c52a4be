package variants

import (
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/mask"
)

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var kingOffsets = [4][2]int{
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// reachConstraint is a no-op Constraint whose only contribution is its
// SeenCells method: the kernel's deriveSeenCellLinks (spec §4.E) turns
// that into same-value weak links across every offset pair, which is
// all anti-knight/anti-king need — two cells a knight's or king's move
// apart can never share a digit, exactly like classic row/column/box
// sight but over a different adjacency.
type reachConstraint struct {
	name    string
	height  int
	width   int
	offsets [][2]int
}

func newReachConstraint(name string, height, width int, offsets [][2]int) *reachConstraint {
	return &reachConstraint{name: name, height: height, width: width, offsets: offsets}
}

// AntiKnight forbids cells a knight's move apart from sharing a digit.
func NewAntiKnight(height, width int) constraint.Constraint {
	return newReachConstraint("Anti-Knight", height, width, knightOffsets[:])
}

// AntiKing forbids cells a king's move apart from sharing a digit.
func NewAntiKing(height, width int) constraint.Constraint {
	return newReachConstraint("Anti-King", height, width, kingOffsets[:])
}

func (c *reachConstraint) Name() string { return c.name }

func (c *reachConstraint) SeenCells(cell mask.Coord) []mask.Coord {
	var out []mask.Coord
	for _, d := range c.offsets {
		r, col := cell.Row+d[0], cell.Col+d[1]
		if r >= 0 && r < c.height && col >= 0 && col < c.width {
			out = append(out, mask.Coord{Row: r, Col: col})
		}
	}
	return out
}

func (c *reachConstraint) InitCandidates(k constraint.Kernel) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}

func (c *reachConstraint) EnforceConstraint(k constraint.Kernel, r, col, v int) (bool, error) {
	for _, other := range c.SeenCells(mask.Coord{Row: r, Col: col}) {
		m := k.Candidates(other.Row, other.Col)
		if !mask.IsSet(m) {
			continue
		}
		val, err := mask.GetValue(m)
		if err != nil {
			return false, err
		}
		if val == v {
			return false, nil
		}
	}
	return true, nil
}

func (c *reachConstraint) StepLogic(k constraint.Kernel, steps *[]constraint.StepDesc, isBruteForcing bool) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}

func (c *reachConstraint) InitLinks(k constraint.Kernel, steps *[]constraint.StepDesc, isInitializing bool) (constraint.LogicResult, error) {
	return constraint.ResultNone, nil
}
