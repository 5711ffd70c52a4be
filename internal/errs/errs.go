// Package errs defines the error taxonomy for the gridlogic engine.
//
// The teacher's puzzle package reported malformed state by printing to
// stderr and calling os.Exit (internal/puzzle/errors.go). A library has
// no business doing that, so every failure mode from that taxonomy is
// instead a sentinel error that call sites can match with errors.Is,
// wrapped with github.com/pkg/errors so a failure keeps the call stack
// that produced it.
package errs

import "github.com/pkg/errors"

// Sentinel errors, one per taxonomy entry in spec.md §7.
var (
	// ErrInputFormat marks a malformed givens/candidates string or
	// constraint options string. Only surfaced at construction time.
	ErrInputFormat = errors.New("gridlogic: malformed input")

	// ErrContradiction marks a board mutation that left a cell, group,
	// or constraint unsatisfiable. Propagates as LogicResultInvalid
	// rather than unwinding the stack.
	ErrContradiction = errors.New("gridlogic: contradiction")

	// ErrCancellation marks a search or logical solve aborted by its
	// cancellation token. Never surfaces past the operation that
	// detected it; callers get a partial result instead.
	ErrCancellation = errors.New("gridlogic: canceled")

	// ErrConstraintBug marks a constraint misusing the kernel, e.g.
	// setting a value that is not a candidate. Logged, never panicked.
	ErrConstraintBug = errors.New("gridlogic: constraint bug")

	// ErrInvalidCellState marks a GetValue call against a mask that is
	// not value-set, or is value-set with more than one candidate bit.
	ErrInvalidCellState = errors.New("gridlogic: invalid cell state")
)

// WrongLengthGivens reports a givens string of the wrong length for the
// board shape it was parsed against.
func WrongLengthGivens(got, want int) error {
	return errors.Wrapf(ErrInputFormat, "wrong length givens: got %d chars, want %d", got, want)
}

// WrongLengthCandidates reports a candidates string of the wrong length.
func WrongLengthCandidates(got, want int) error {
	return errors.Wrapf(ErrInputFormat, "wrong length candidates: got %d chars, want %d", got, want)
}

// InvalidCellState reports a GetValue call against a mask that does not
// have its value-set flag (spec.md §4.A).
func InvalidCellState(r, c int) error {
	return errors.Wrapf(ErrInvalidCellState, "invalid cell state at r%dc%d: mask has no value set", r+1, c+1)
}

// Contradiction wraps ErrContradiction with a human-readable cause,
// e.g. "cell r3c5 has no remaining candidates".
func Contradiction(format string, args ...any) error {
	return errors.Wrapf(ErrContradiction, format, args...)
}

// ConstraintBug wraps ErrConstraintBug with the offending constraint's
// name and what it attempted.
func ConstraintBug(constraintName, format string, args ...any) error {
	return errors.Wrapf(ErrConstraintBug, "%s: "+format, append([]any{constraintName}, args...)...)
}
