// Package constraint defines the polymorphic plug-in contract of spec
// §4.E. Concrete constraints (killer cages, arrows, thermometers, …)
// live in internal/variants and implement this contract; the core
// engine only depends on this package, never on any concrete variant.
//
// The teacher repo has no constraint abstraction at all — its
// techniques are hardwired Solver methods over a fixed classic board.
// This is the one component spec.md says to treat as "contract only",
// so it is modeled as a small capability interface (dynamic dispatch)
// rather than the closed tagged-variant alternative spec §9 allows,
// because new variants are exactly the kind of open-world extension
// point idiomatic Go expresses with an interface instead of a sum
// type — and it mirrors the design note's own example of two strategy
// types (circle vs. pill) satisfying one small interface.
package constraint

import "github.com/kpitt/gridlogic/internal/mask"

// LogicResult is the tagged variant every constraint and technique
// returns instead of using exceptions for control flow (spec §4.E,
// §7).
type LogicResult int

const (
	// ResultNone means the call made no change to the board.
	ResultNone LogicResult = iota
	// ResultChanged means the call eliminated at least one candidate
	// or placed at least one value.
	ResultChanged
	// ResultInvalid means the call detected a contradiction.
	ResultInvalid
	// ResultPuzzleComplete means the call's change completed the board.
	ResultPuzzleComplete
)

func (r LogicResult) String() string {
	switch r {
	case ResultNone:
		return "None"
	case ResultChanged:
		return "Changed"
	case ResultInvalid:
		return "Invalid"
	case ResultPuzzleComplete:
		return "PuzzleComplete"
	default:
		return "Unknown"
	}
}

// StepDesc is the immutable record a technique or constraint emits to
// describe one logical deduction: spec §3's LogicalStepDesc. It is
// defined here (rather than in internal/logic, which would be the more
// obvious home) so that Constraint.StepLogic implementations — i.e.
// constraints — can build one without importing the logic engine,
// avoiding an import cycle (internal/logic depends on
// internal/constraint, not the other way around).
type StepDesc struct {
	Description string
	Sources     []int // candidate indexes that justify the elimination
	Eliminated  []int // candidate indexes removed by this step
	Placed      *PlacedValue
}

// PlacedValue records a cell fixed to a value by a step, when the step
// is a placement rather than a pure elimination.
type PlacedValue struct {
	Row, Col, Value int
}

// Kernel is the narrow capability surface a constraint is handed. It
// intentionally does not expose the Board directly — every mutation a
// constraint wants to make funnels through these calls, which fan out
// to group-counter maintenance and EnforceConstraint callbacks on
// every other registered constraint, per the kernel's design note in
// spec §4.E.
type Kernel interface {
	// MaxValue, Height, Width describe the board shape.
	MaxValue() int
	Height() int
	Width() int

	// Candidates returns the current candidate mask of cell (r,c).
	Candidates(r, c int) mask.Mask

	// SetValue fixes (r,c) to v. Fails if v is not currently a
	// candidate of (r,c).
	SetValue(r, c, v int) (LogicResult, error)

	// ClearValue removes v as a candidate of (r,c).
	ClearValue(r, c, v int) (LogicResult, error)

	// KeepMask intersects the candidates of (r,c) with keep.
	KeepMask(r, c int, keep mask.Mask) (LogicResult, error)

	// AddWeakLink adds a weak link between two candidate indexes
	// (mask.CandidateIndex), eliminating the implied side immediately
	// if the other side is already fixed true.
	AddWeakLink(a, b int) (LogicResult, error)

	// CandidateIndex and DecodeCandidateIndex convert between (r,c,v)
	// and the flat index used by AddWeakLink and the link graph.
	CandidateIndex(r, c, v int) int
	DecodeCandidateIndex(idx int) (r, c, v int)
}

// Constraint is the contract every plug-in clue satisfies.
type Constraint interface {
	// Name returns the constraint's long (external-format) name.
	Name() string

	// InitCandidates performs one-shot, idempotent candidate
	// reductions derivable from the constraint in isolation.
	InitCandidates(k Kernel) (LogicResult, error)

	// EnforceConstraint runs immediately after (r,c) is fixed to v.
	// It must be fast: direct rule validation and trivial
	// eliminations only, no search. A false return signals a detected
	// contradiction.
	EnforceConstraint(k Kernel, r, c, v int) (bool, error)

	// StepLogic performs the constraint's full deduction. When
	// isBruteForcing is true, only cheap, search-tree-pruning
	// deductions should be returned (no StepDesc bookkeeping is
	// required in that mode); otherwise emit a StepDesc describing the
	// human-readable technique.
	StepLogic(k Kernel, steps *[]StepDesc, isBruteForcing bool) (LogicResult, error)

	// InitLinks adds weak links expressing the constraint's semantics.
	// Called once at finalize, and opportunistically re-called during
	// logical solves (isInitializing distinguishes the two).
	InitLinks(k Kernel, steps *[]StepDesc, isInitializing bool) (LogicResult, error)
}

// SeenCellsConstraint is the optional helper for "cell A sees cell B"
// constraints (anti-knight, anti-king, …): the engine derives weak
// links between same-value candidates in every pair of cells the
// constraint reports as mutually visible.
type SeenCellsConstraint interface {
	SeenCells(c mask.Coord) []mask.Coord
}

// PrimitiveSplitter is the optional helper letting a constraint
// express itself as a conjunction of simpler constraints, enabling
// inheritance/subsumption checks between instances.
type PrimitiveSplitter interface {
	SplitToPrimitives(k Kernel) []Constraint
}

// CellsMustContainer is the optional helper for constraints that force
// a value into one of a small subset of their cells.
type CellsMustContainer interface {
	CellsMustContain(k Kernel, v int) []mask.Coord
}
