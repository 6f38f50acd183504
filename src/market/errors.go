package market

import "github.com/pkg/errors"

// Failure taxonomy for ledger operations. Every operation either
// commits all of its effects or returns one of these with no state
// change observable to the caller.
var (
	ErrAccessDenied       = errors.New("access denied")
	ErrPhaseViolation     = errors.New("operation not valid in current phase")
	ErrNotFound           = errors.New("not found")
	ErrInvariantViolation = errors.New("precondition failed")
	ErrTransferFailed     = errors.New("value transfer failed")
)
