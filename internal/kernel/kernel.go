// Package kernel implements the propagation kernel of spec §4.G: the
// only code path allowed to mutate a Board, a group.Registry's
// candidate-location caches, or a links.Graph. Every constraint
// mutates exclusively through the constraint.Kernel interface this
// package implements.
//
// Grounded on the teacher's Solver.eliminateCandidates /
// removeCellCandidate cascade (internal/solver/solver.go) and its
// board-level twin (internal/board/board.go, now superseded): set a
// value, fan the elimination out across row/column/box, and recurse
// into naked-single detection when a cell collapses to one candidate.
// This package generalizes that cascade to arbitrary groups (not just
// row/col/box), adds KeepMask and the link-graph cascade spec §4.G
// calls for, and turns the teacher's direct recursion plus
// os.Exit-on-contradiction into an explicit, bounded work queue
// returning LogicResult instead of panicking.
package kernel

import (
	"github.com/rs/zerolog"

	"github.com/kpitt/gridlogic/internal/board"
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/errs"
	"github.com/kpitt/gridlogic/internal/group"
	"github.com/kpitt/gridlogic/internal/links"
	"github.com/kpitt/gridlogic/internal/mask"
)

// Kernel owns one Board, its Group registry, a shared Link graph, and
// the ordered list of constraints that observe every mutation.
type Kernel struct {
	Board       *board.Board
	Groups      *group.Registry
	Links       *links.Graph
	Constraints []constraint.Constraint

	// Log receives structured trace/warning events for the propagation
	// cascade — each queued elimination, SetValue's contradictions (a
	// duplicate value or a non-candidate), and the step count
	// FinalizeConstraints settles on. Defaults to a no-op logger;
	// cmd/gridlogic wires a real one when -v/--verbose is passed.
	Log zerolog.Logger

	// queue holds pending (cell, value) eliminations still to be
	// cascaded; processed FIFO so constraint callbacks observe
	// mutations in a single deterministic order, per spec §4.G's
	// "single-threaded queue" requirement.
	queue []elimination
}

type elimination struct {
	r, c, v int
}

// New builds a kernel over an already-shaped, fully-candidate board.
func New(b *board.Board, groups *group.Registry, graph *links.Graph) *Kernel {
	return &Kernel{Board: b, Groups: groups, Links: graph, Log: zerolog.Nop()}
}

// --- constraint.Kernel implementation -------------------------------------

func (k *Kernel) MaxValue() int { return k.Board.MaxValue }
func (k *Kernel) Height() int   { return k.Board.Height }
func (k *Kernel) Width() int    { return k.Board.Width }

func (k *Kernel) Candidates(r, c int) mask.Mask {
	return k.Board.Get(r, c)
}

func (k *Kernel) CandidateIndex(r, c, v int) int {
	return mask.CandidateIndex(r, c, v, k.Board.Width, k.Board.MaxValue)
}

func (k *Kernel) DecodeCandidateIndex(idx int) (r, c, v int) {
	return mask.DecodeCandidateIndex(idx, k.Board.Width, k.Board.MaxValue)
}

// SetValue fixes (r,c) to v, per spec §4.G.
func (k *Kernel) SetValue(r, c, v int) (constraint.LogicResult, error) {
	cur := k.Board.Get(r, c)
	if mask.IsSet(cur) {
		existing, err := mask.GetValue(cur)
		if err != nil {
			return constraint.ResultInvalid, err
		}
		if existing == v {
			// Kernel idempotence, spec §8 property 6: re-setting an
			// already-fixed cell to its own value is a no-op.
			return constraint.ResultNone, nil
		}
		err := errs.Contradiction(
			"cell r%dc%d already set to %d, cannot set to %d", r+1, c+1, existing, v)
		k.Log.Warn().Int("row", r).Int("col", c).Int("value", v).Err(err).Msg("contradiction")
		return constraint.ResultInvalid, err
	}
	if !mask.Has(cur, v) {
		err := errs.Contradiction(
			"value %d is not a candidate of r%dc%d", v, r+1, c+1)
		k.Log.Warn().Int("row", r).Int("col", c).Int("value", v).Err(err).Msg("contradiction")
		return constraint.ResultInvalid, err
	}

	k.Board.Set(r, c, mask.WithSet(mask.ValueMask(v)))
	for _, g := range k.Groups.GroupsOf(r, c) {
		g.RemoveCandidateValue(v, g.SlotOf(r, c))
	}

	// Schedule elimination of v from every other cell sharing a group
	// with (r,c), and of every other value from (r,c) itself.
	for _, g := range k.Groups.GroupsOf(r, c) {
		for i := 0; i < g.Size(); i++ {
			cell := g.Cell(i)
			if cell.Row == r && cell.Col == c {
				continue
			}
			k.queue = append(k.queue, elimination{cell.Row, cell.Col, v})
		}
	}
	for _, other := range mask.Values(mask.Candidates(cur)) {
		if other != v {
			k.queue = append(k.queue, elimination{r, c, other})
		}
	}

	// Cascade weak links: anything implied false by setting (r,c)=v.
	idx := k.CandidateIndex(r, c, v)
	for _, implied := range k.Links.NeighborsOf(idx) {
		ir, ic, iv := k.DecodeCandidateIndex(implied)
		k.queue = append(k.queue, elimination{ir, ic, iv})
	}

	if res, err := k.drainQueue(); err != nil || res == constraint.ResultInvalid {
		return constraint.ResultInvalid, err
	}

	if res, err := k.enforceAll(r, c, v); err != nil || !res {
		if err == nil {
			err = errs.Contradiction("constraint rejected r%dc%d=%d", r+1, c+1, v)
		}
		return constraint.ResultInvalid, err
	}

	if k.Board.IsComplete() {
		return constraint.ResultPuzzleComplete, nil
	}
	return constraint.ResultChanged, nil
}

func (k *Kernel) enforceAll(r, c, v int) (bool, error) {
	for _, con := range k.Constraints {
		ok, err := con.EnforceConstraint(k, r, c, v)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// ClearValue removes v as a candidate of (r,c), per spec §4.G.
func (k *Kernel) ClearValue(r, c, v int) (constraint.LogicResult, error) {
	cur := k.Board.Get(r, c)
	if mask.IsSet(cur) {
		if existing, _ := mask.GetValue(cur); existing == v {
			return constraint.ResultInvalid, errs.Contradiction(
				"cannot eliminate %d from r%dc%d: cell is already set to it", v, r+1, c+1)
		}
		return constraint.ResultNone, nil
	}
	if !mask.Has(cur, v) {
		return constraint.ResultNone, nil
	}

	next := cur &^ mask.ValueMask(v)
	k.Board.Set(r, c, next)
	k.Groups.RemoveCandidateCell(r, c, v)

	n := mask.PopCount(next)
	if n == 0 {
		return constraint.ResultInvalid, errs.Contradiction(
			"r%dc%d has no remaining candidates", r+1, c+1)
	}
	if n == 1 {
		return k.SetValue(r, c, mask.MinValue(next))
	}
	return constraint.ResultChanged, nil
}

// SetMask overwrites the full candidate mask of (r,c) directly,
// without cascading eliminations or calling EnforceConstraint. It
// exists only for board construction (spec §4.K's public SetMask entry
// point): restoring a board from a candidates string, or narrowing a
// cell's candidates before FinalizeConstraints runs. Callers that need
// cascading propagation should use SetValue/ClearValue/KeepMask
// instead.
func (k *Kernel) SetMask(r, c int, m mask.Mask) {
	k.Board.Set(r, c, m)
	for v := 1; v <= k.Board.MaxValue; v++ {
		if !mask.Has(m, v) {
			k.Groups.RemoveCandidateCell(r, c, v)
		}
	}
}

// KeepMask intersects the candidates of (r,c) with keep, clearing
// every bit not in keep, per spec §4.G.
func (k *Kernel) KeepMask(r, c int, keep mask.Mask) (constraint.LogicResult, error) {
	cur := k.Board.Get(r, c)
	if mask.IsSet(cur) {
		return constraint.ResultNone, nil
	}
	removed := mask.Candidates(cur) &^ keep
	if removed == 0 {
		return constraint.ResultNone, nil
	}
	changed := false
	for _, v := range mask.Values(removed) {
		res, err := k.ClearValue(r, c, v)
		if err != nil {
			return res, err
		}
		if res == constraint.ResultInvalid {
			return res, err
		}
		changed = true
		if mask.IsSet(k.Board.Get(r, c)) {
			// ClearValue recursed into SetValue (naked single); the
			// remaining bits in `removed` no longer apply to this cell.
			break
		}
	}
	if !changed {
		return constraint.ResultNone, nil
	}
	if k.Board.IsComplete() {
		return constraint.ResultPuzzleComplete, nil
	}
	return constraint.ResultChanged, nil
}

// AddWeakLink adds a weak link a->b, immediately eliminating b if a is
// already fixed true (and symmetrically for a if b is already fixed
// true), per spec §4.D.
func (k *Kernel) AddWeakLink(a, b int) (constraint.LogicResult, error) {
	if k.Links.HasWeakLink(a, b) {
		return constraint.ResultNone, nil
	}
	k.Links.AddWeakLink(a, b)

	changed := false
	ar, ac, av := k.DecodeCandidateIndex(a)
	br, bc, bv := k.DecodeCandidateIndex(b)
	if mask.IsSet(k.Board.Get(ar, ac)) {
		if existing, _ := mask.GetValue(k.Board.Get(ar, ac)); existing == av {
			res, err := k.ClearValue(br, bc, bv)
			if err != nil || res == constraint.ResultInvalid {
				return constraint.ResultInvalid, err
			}
			changed = changed || res == constraint.ResultChanged
		}
	}
	if mask.IsSet(k.Board.Get(br, bc)) {
		if existing, _ := mask.GetValue(k.Board.Get(br, bc)); existing == bv {
			res, err := k.ClearValue(ar, ac, av)
			if err != nil || res == constraint.ResultInvalid {
				return constraint.ResultInvalid, err
			}
			changed = changed || res == constraint.ResultChanged
		}
	}
	if !changed {
		return constraint.ResultNone, nil
	}
	return constraint.ResultChanged, nil
}

// drainQueue processes every pending elimination FIFO, growing the
// queue as cascades trigger further eliminations, until empty or a
// contradiction is found.
func (k *Kernel) drainQueue() (constraint.LogicResult, error) {
	for len(k.queue) > 0 {
		e := k.queue[0]
		k.queue = k.queue[1:]
		k.Log.Debug().Int("row", e.r).Int("col", e.c).Int("value", e.v).Msg("cascade eliminate")
		res, err := k.ClearValue(e.r, e.c, e.v)
		if err != nil {
			return constraint.ResultInvalid, err
		}
		if res == constraint.ResultInvalid {
			return constraint.ResultInvalid, err
		}
	}
	return constraint.ResultNone, nil
}

// FinalizeConstraints runs InitCandidates once per constraint, derives
// the seen-cell weak links, cascades every already-fixed cell (givens)
// through SetValue, then runs InitLinks once per constraint, reaching
// the initial fixpoint described in spec §3's Lifecycle section.
func (k *Kernel) FinalizeConstraints() (constraint.LogicResult, error) {
	overall := constraint.ResultNone
	for _, con := range k.Constraints {
		res, err := con.InitCandidates(k)
		if err != nil {
			return constraint.ResultInvalid, err
		}
		if res == constraint.ResultInvalid {
			return res, nil
		}
		if res == constraint.ResultChanged {
			overall = constraint.ResultChanged
		}
	}
	k.deriveSeenCellLinks()

	// Cells fixed before finalize (givens written with SetMask) have not
	// cascaded yet: re-fix each through SetValue so its value leaves its peers.
	for r := 0; r < k.Board.Height; r++ {
		for c := 0; c < k.Board.Width; c++ {
			m := k.Board.Get(r, c)
			if !mask.IsSet(m) {
				continue
			}
			k.Board.Set(r, c, mask.Candidates(m))
			if res, err := k.SetValue(r, c, mask.MinValue(m)); err != nil || res == constraint.ResultInvalid {
				return constraint.ResultInvalid, err
			}
		}
	}

	var steps []constraint.StepDesc
	for _, con := range k.Constraints {
		res, err := con.InitLinks(k, &steps, true)
		if err != nil {
			return constraint.ResultInvalid, err
		}
		if res == constraint.ResultInvalid {
			return res, nil
		}
	}
	k.Log.Debug().Int("constraints", len(k.Constraints)).Int("steps", len(steps)).Msg("constraints finalized")
	return overall, nil
}

// deriveSeenCellLinks implements spec §4.E's "the engine derives weak
// links automatically" promise for the optional SeenCellsConstraint
// helper: for every pair of cells a constraint reports as mutually
// visible, the same value can't hold in both, so every matching
// same-value candidate pair gets a weak link.
func (k *Kernel) deriveSeenCellLinks() {
	for _, con := range k.Constraints {
		seer, ok := con.(constraint.SeenCellsConstraint)
		if !ok {
			continue
		}
		for r := 0; r < k.Board.Height; r++ {
			for c := 0; c < k.Board.Width; c++ {
				a := mask.Coord{Row: r, Col: c}
				for _, b := range seer.SeenCells(a) {
					if b == a {
						continue
					}
					for v := 1; v <= k.Board.MaxValue; v++ {
						ai := k.CandidateIndex(a.Row, a.Col, v)
						bi := k.CandidateIndex(b.Row, b.Col, v)
						k.Links.AddWeakLink(ai, bi)
					}
				}
			}
		}
	}
}

// Clone deep-copies the Board and Group candidate-caches; the link
// graph and constraint list (immutable after finalize) are shared by
// reference, per spec §3's Clone semantics.
func (k *Kernel) Clone() *Kernel {
	return &Kernel{
		Board:       k.Board.Clone(),
		Groups:      k.Groups.Clone(),
		Links:       k.Links,
		Constraints: k.Constraints,
		Log:         k.Log,
	}
}
