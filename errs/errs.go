// Package errs defines the sentinel error kinds the solver core
// distinguishes, per the error handling design: input errors are
// fatal, LP infeasibility is a fatal invariant breach, MIP/pricing
// failures are recoverable, and time limits are not errors at all.
package errs

import "errors"

var (
	// ErrInput marks a fatal, user-facing problem with an instance or
	// parameters file: missing files, unparsable JSON, or a structural
	// graph violation (clusters not partitioning V, out-of-range ids).
	ErrInput = errors.New("input error")

	// ErrLPInfeasible marks an LP master reporting infeasible despite
	// the dummy column, which should be impossible. Seeing this means
	// an internal invariant broke.
	ErrLPInfeasible = errors.New("LP master infeasible: dummy column invariant broken")

	// ErrMIPNoSolution marks a MIP solve that returned no incumbent
	// (infeasible, or time limit with nothing found). Recoverable: the
	// heuristic is simply skipped for the node that hit it.
	ErrMIPNoSolution = errors.New("MIP heuristic found no solution")

	// ErrPricingFailed marks the MWSS oracle returning no usable set.
	// Recoverable: pricing ends with whatever LP bound is current.
	ErrPricingFailed = errors.New("pricing oracle produced no column")

	// ErrPrecondition marks a violated branching-rule precondition
	// (e.g. linking two already-adjacent vertices, merging adjacent
	// vertices, or referencing the dummy column as a basic column).
	// This is a programming error and should fail fast.
	ErrPrecondition = errors.New("branching precondition violated")
)

// Input wraps err as an ErrInput with additional context, e.g. the
// file path or field that failed to parse.
func Input(context string, err error) error {
	return &wrapped{context: context, kind: ErrInput, cause: err}
}

// Precondition wraps err as an ErrPrecondition with context.
func Precondition(context string) error {
	return &wrapped{context: context, kind: ErrPrecondition}
}

type wrapped struct {
	context string
	kind    error
	cause   error
}

func (w *wrapped) Error() string {
	if w.cause != nil {
		return w.context + ": " + w.cause.Error()
	}
	return w.context
}

func (w *wrapped) Unwrap() error {
	if w.cause != nil {
		return errors.Join(w.kind, w.cause)
	}
	return w.kind
}

func (w *wrapped) Is(target error) bool {
	return target == w.kind
}
