// Package chain implements the AIC / discontinuous-loop chain solver of
// spec §4.I: given the link graph, follow alternating weak/strong
// implications out from a candidate to find eliminations and forced
// placements beyond what subsets, locked candidates, and fishes reach.
//
// The teacher has nothing resembling this — classic Sudoku never needs
// a chain solver, and internal/solver/techniques.go stops at XYZ-Wing
// and unique rectangles. This package is grounded directly on spec
// §4.D's link-graph primitives (weak links plus the "candidates implied
// false by setting true" view built from group uniqueness) and spec
// §4.I's description of alternating strong/weak traversal: rather than
// building and checking one linear alternating path at a time, it runs
// a bounded-depth propagation front in both truth directions from a
// single candidate (the classic single-cause forcing-network shape: on
// nodes fan out across weak links, off nodes fan out across strong
// links, alternating by construction since a node only appears at one
// depth). A candidate forced off regardless of whether the start
// candidate is on or off is eliminated; a start candidate whose own
// "off" assumption forces itself back on is a discontinuous loop and
// gets placed.
package chain

import (
	"fmt"

	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/kernel"
	"github.com/kpitt/gridlogic/internal/mask"
)

// DefaultMaxDepth is the chain search's default bound on alternation
// depth, per spec §4.I ("bounded depth; configurable; default ≈ 12").
const DefaultMaxDepth = 12

// Searcher runs the chain search. Its Search method has the signature
// internal/logic.Engine.ChainSearch expects.
type Searcher struct {
	MaxDepth int
}

// New builds a Searcher with the default depth bound.
func New() *Searcher {
	return &Searcher{MaxDepth: DefaultMaxDepth}
}

func (s *Searcher) maxDepth() int {
	if s.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return s.MaxDepth
}

// Search is the chain search's entry point, wired into
// internal/logic.Engine.ChainSearch. It is skipped while brute-forcing:
// spec §4.J treats it as comparatively expensive and unnecessary once
// the search tree itself is doing the work.
func (s *Searcher) Search(k *kernel.Kernel, isBruteForcing bool) (constraint.LogicResult, []constraint.StepDesc, error) {
	if isBruteForcing {
		return constraint.ResultNone, nil, nil
	}
	depth := s.maxDepth()
	board := k.Board
	for r := 0; r < board.Height; r++ {
		for c := 0; c < board.Width; c++ {
			m := k.Candidates(r, c)
			if mask.IsSet(m) {
				continue
			}
			for _, v := range mask.Values(mask.Candidates(m)) {
				idx := k.CandidateIndex(r, c, v)
				res, steps, err := s.searchFrom(k, idx, r, c, v, depth)
				if res != constraint.ResultNone || err != nil {
					return res, steps, err
				}
			}
		}
	}
	return constraint.ResultNone, nil, nil
}

func (s *Searcher) searchFrom(k *kernel.Kernel, idx, r, c, v, depth int) (constraint.LogicResult, []constraint.StepDesc, error) {
	forcedOff, contraOff := propagate(k, idx, false, depth)
	if contraOff {
		// Assuming the candidate false forces it true: a discontinuous
		// loop. The candidate must actually hold.
		res, err := k.SetValue(r, c, v)
		if err != nil || res == constraint.ResultInvalid {
			return constraint.ResultInvalid, nil, err
		}
		return res, []constraint.StepDesc{{
			Description: fmt.Sprintf("Discontinuous Loop: %s must be %d", formatCell(r, c), v),
			Placed:      &constraint.PlacedValue{Row: r, Col: c, Value: v},
		}}, nil
	}

	forcedOn, contraOn := propagate(k, idx, true, depth)
	if contraOn {
		// Assuming the candidate true forces it false: it cannot hold.
		res, err := k.ClearValue(r, c, v)
		if err != nil || res == constraint.ResultInvalid {
			return constraint.ResultInvalid, nil, err
		}
		if res == constraint.ResultNone {
			return constraint.ResultNone, nil, nil
		}
		return res, []constraint.StepDesc{{
			Description: fmt.Sprintf("Forcing Chain: %s cannot be %d", formatCell(r, c), v),
			Eliminated:  []int{idx},
		}}, nil
	}

	// A candidate forced off in both truth-branches of idx is forced
	// off regardless of idx's actual value: the AIC elimination.
	for cand, offInBranch := range forcedOff {
		if cand == idx || offInBranch {
			continue
		}
		onState, known := forcedOn[cand]
		if !known || onState {
			continue
		}
		zr, zc, zv := k.DecodeCandidateIndex(cand)
		cur := k.Candidates(zr, zc)
		if mask.IsSet(cur) || !mask.Has(cur, zv) {
			continue
		}
		res, err := k.ClearValue(zr, zc, zv)
		if err != nil {
			return constraint.ResultInvalid, nil, err
		}
		if res == constraint.ResultInvalid {
			return constraint.ResultInvalid, nil, nil
		}
		if res == constraint.ResultNone {
			continue
		}
		return res, []constraint.StepDesc{{
			Description: fmt.Sprintf("AIC: %s<>%d eliminates %s=%d", formatCell(r, c), v, formatCell(zr, zc), zv),
			Eliminated:  []int{cand},
		}}, nil
	}

	return constraint.ResultNone, nil, nil
}

// propagate runs a bounded-depth alternating forcing front from a
// single (candidate, truth-value) assumption: nodes assumed true fan
// out across weak links to nodes forced false; nodes assumed/forced
// false fan out across strong links to nodes forced true. Returns the
// full forced-state map reached within depth levels, and whether a
// contradiction (a candidate forced to both states) was found.
func propagate(k *kernel.Kernel, start int, startState bool, maxDepth int) (map[int]bool, bool) {
	forced := map[int]bool{start: startState}
	frontier := []int{start}
	state := startState

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []int
		for _, n := range frontier {
			var neighbors []int
			var impliedState bool
			if state {
				neighbors = weakNeighbors(k, n)
				impliedState = false
			} else {
				neighbors = strongNeighbors(k, n)
				impliedState = true
			}
			for _, m := range neighbors {
				if existing, ok := forced[m]; ok {
					if existing != impliedState {
						return forced, true
					}
					continue
				}
				forced[m] = impliedState
				next = append(next, m)
			}
		}
		frontier = next
		state = !state
	}
	return forced, false
}

// weakNeighbors returns every candidate that must be false whenever
// idx is true: every other value in idx's own cell, every other cell
// holding idx's value in a shared group, and any constraint-added weak
// link (spec §4.D).
func weakNeighbors(k *kernel.Kernel, idx int) []int {
	r, c, v := k.DecodeCandidateIndex(idx)
	seen := map[int]bool{}
	var out []int
	add := func(n int) {
		if n != idx && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}

	cur := mask.Candidates(k.Candidates(r, c))
	for _, v2 := range mask.Values(cur) {
		if v2 != v {
			add(k.CandidateIndex(r, c, v2))
		}
	}
	for _, g := range k.Groups.GroupsOf(r, c) {
		for _, slot := range g.Locations(v) {
			cell := g.Cell(slot)
			if cell.Row == r && cell.Col == c {
				continue
			}
			add(k.CandidateIndex(cell.Row, cell.Col, v))
		}
	}
	for _, n := range k.Links.NeighborsOf(idx) {
		add(n)
	}
	return out
}

// strongNeighbors returns every candidate that must be true whenever
// idx is false: the other side of a bivalue cell or a bilocation group
// for idx's value, per spec §4.D's group-uniqueness view.
func strongNeighbors(k *kernel.Kernel, idx int) []int {
	r, c, v := k.DecodeCandidateIndex(idx)
	seen := map[int]bool{}
	var out []int
	add := func(n int) {
		if n != idx && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}

	cur := mask.Candidates(k.Candidates(r, c))
	if mask.PopCount(cur) == 2 {
		for _, v2 := range mask.Values(cur) {
			if v2 != v {
				add(k.CandidateIndex(r, c, v2))
			}
		}
	}
	for _, g := range k.Groups.GroupsOf(r, c) {
		locs := g.Locations(v)
		if len(locs) == 2 {
			for _, slot := range locs {
				cell := g.Cell(slot)
				if cell.Row == r && cell.Col == c {
					continue
				}
				add(k.CandidateIndex(cell.Row, cell.Col, v))
			}
		}
	}
	return out
}

func formatCell(r, c int) string {
	return fmt.Sprintf("r%dc%d", r+1, c+1)
}
