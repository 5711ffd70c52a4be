// Package solver implements the Solver façade of spec §4.K: the single
// entry point external callers use, owning one Board, Group registry,
// Link graph, and constraint list, and wiring the logic engine, chain
// searcher, and backtracking search together over one shared kernel.
//
// Grounded on the teacher's Solver type (internal/solver/solver.go,
// now superseded): that type owned a *Board and a fixed [9]*Group
// array of row/column/box groups the same way this one owns a
// *kernel.Kernel wrapping a generalized group.Registry, and its
// Solve()/SolveLogical() pair is the direct ancestor of StepLogic/
// ConsolidateBoard below. The teacher has no Clone, no constraint
// plug-ins, and no concurrency; those come from spec §4.K/§5 and are
// grounded on internal/kernel.Kernel.Clone and internal/search.
package solver

import (
	"context"

	"github.com/kpitt/gridlogic/internal/board"
	"github.com/kpitt/gridlogic/internal/chain"
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/group"
	"github.com/kpitt/gridlogic/internal/kernel"
	"github.com/kpitt/gridlogic/internal/links"
	"github.com/kpitt/gridlogic/internal/logic"
	"github.com/kpitt/gridlogic/internal/mask"
	"github.com/kpitt/gridlogic/internal/search"
)

// Solver owns one puzzle instance end to end: the board, its groups,
// its link graph, its constraints, the logic engine that drives them,
// and the chain searcher the engine's last pipeline stage delegates
// to.
type Solver struct {
	Kernel *kernel.Kernel

	engine *logic.Engine
	chainS *chain.Searcher
}

// New builds an empty Solver over a board of the given shape. Pass a
// non-nil regions matrix to derive box groups; pass nil for variants
// that register their own regions via Extra groups instead (spec §3).
func New(shape board.Shape, regions [][]int) *Solver {
	b := board.New(shape)
	groups := group.NewRegistry(shape.Height, shape.Width, shape.MaxValue, regions)
	graph := links.New()
	k := kernel.New(b, groups, graph)

	s := &Solver{Kernel: k, chainS: chain.New()}
	s.engine = logic.New(k)
	s.engine.ChainSearch = s.chainS.Search
	return s
}

// AddConstraint registers a constraint. Must be called before
// FinalizeConstraints.
func (s *Solver) AddConstraint(c constraint.Constraint) {
	s.Kernel.Constraints = append(s.Kernel.Constraints, c)
}

// AddExtraGroup registers a constraint-supplied uniqueness group
// (a killer cage's cells, a diagonal, disjoint-group cells, …), per
// spec §4.C. This is a setup-time call, made by the caller wiring a
// constraint into the solver, not by the constraint itself: the
// narrow constraint.Kernel interface handed to constraints at runtime
// intentionally has no add-group method, since group membership is
// fixed at construction and never revisited (spec §3's Lifecycle).
func (s *Solver) AddExtraGroup(cells []mask.Coord, kind group.Kind) group.ID {
	return s.Kernel.Groups.AddGroup(cells, kind)
}

// DisableLogic turns off a named technique family (spec §4.H's
// disabled_logic_flags).
func (s *Solver) DisableLogic(flag logic.DisabledFlag) {
	s.engine.Disabled[flag] = true
}

// FinalizeConstraints runs every constraint's InitCandidates then
// InitLinks once, reaching the puzzle's initial fixpoint (spec §3's
// Lifecycle).
func (s *Solver) FinalizeConstraints() (constraint.LogicResult, error) {
	return s.Kernel.FinalizeConstraints()
}

// --- public mutation entry points (spec §4.K) --------------------------

func (s *Solver) SetValue(r, c, v int) (constraint.LogicResult, error) {
	return s.Kernel.SetValue(r, c, v)
}

func (s *Solver) ClearValue(r, c, v int) (constraint.LogicResult, error) {
	return s.Kernel.ClearValue(r, c, v)
}

func (s *Solver) KeepMask(r, c int, keep mask.Mask) (constraint.LogicResult, error) {
	return s.Kernel.KeepMask(r, c, keep)
}

func (s *Solver) SetMask(r, c int, m mask.Mask) {
	s.Kernel.SetMask(r, c, m)
}

func (s *Solver) Candidates(r, c int) mask.Mask {
	return s.Kernel.Candidates(r, c)
}

func (s *Solver) Board() *board.Board { return s.Kernel.Board }

// --- logical solving -----------------------------------------------------

// StepLogic runs the technique pipeline once. See logic.Engine.StepLogic.
func (s *Solver) StepLogic(isBruteForcing bool) (constraint.LogicResult, []constraint.StepDesc, error) {
	return s.engine.StepLogic(isBruteForcing)
}

// ConsolidateBoard loops StepLogic(false) to a fixpoint.
func (s *Solver) ConsolidateBoard() (constraint.LogicResult, []constraint.StepDesc, error) {
	return s.engine.ConsolidateBoard()
}

// --- cloning --------------------------------------------------------------

// Clone deep-copies the Board and group candidate caches; the link
// graph and constraint list are shared by reference, per spec §4.K.
// willRunNonSinglesLogic is accepted to match the façade's documented
// signature; this implementation has no separate static strong-link
// cache to reuse or invalidate (internal/chain derives strong links on
// demand from group/cell state rather than caching them), so the flag
// does not change Clone's behavior here.
func (s *Solver) Clone(willRunNonSinglesLogic bool) *Solver {
	_ = willRunNonSinglesLogic
	nk := s.Kernel.Clone()
	ns := &Solver{Kernel: nk, chainS: s.chainS}
	ns.engine = logic.New(nk)
	ns.engine.Disabled = s.engine.Disabled
	ns.engine.ChainSearch = ns.chainS.Search
	return ns
}

// --- backtracking search (spec §4.J) --------------------------------------

// FindSolution returns the first completion, if any.
func (s *Solver) FindSolution(ctx context.Context, opts search.Options) (search.Grid, bool, error) {
	return search.FindSolution(ctx, s.Kernel.Clone(), opts)
}

// CountSolutions counts completions up to max (0 means exhaustive).
func (s *Solver) CountSolutions(ctx context.Context, max int, opts search.Options, progress func(int), solutionCB func(search.Grid)) (int, error) {
	return search.CountSolutions(ctx, s.Kernel.Clone(), max, opts, progress, solutionCB)
}

// TrueCandidates returns, per (cell,value), the completion count
// containing it, capped at numSolutionsCap completions examined.
func (s *Solver) TrueCandidates(ctx context.Context, numSolutionsCap int, opts search.Options) ([][][]int, error) {
	return search.TrueCandidates(ctx, s.Kernel.Clone(), numSolutionsCap, opts)
}

// EstimateSolutions runs the Monte-Carlo completion-count estimator.
func (s *Solver) EstimateSolutions(ctx context.Context, numIters int, opts search.Options, progress func(search.EstimateResult)) (search.EstimateResult, error) {
	return search.EstimateSolutions(ctx, s.Kernel.Clone(), numIters, opts, progress)
}
