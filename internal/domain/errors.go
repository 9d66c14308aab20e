package domain

import "errors"

// Sentinel errors returned by the savings engine. The API layer maps these to
// user-facing responses; none of them is fatal to the process.
var (
	// ErrInvalidDuration indicates a lock duration that resolves to zero or a
	// negative time span, or an unknown duration unit.
	ErrInvalidDuration = errors.New("invalid lock duration")

	// ErrEmptyGoalName indicates a blank goal label on position creation.
	ErrEmptyGoalName = errors.New("goal name cannot be empty")

	// ErrInvalidNetwork indicates an unsupported settlement network.
	ErrInvalidNetwork = errors.New("invalid network")

	// ErrInvalidPrincipal indicates a zero or negative stake amount.
	ErrInvalidPrincipal = errors.New("principal must be positive")

	// ErrInsufficientBalance indicates the principal exceeds the available
	// spendable balance.
	ErrInsufficientBalance = errors.New("insufficient available balance")

	// ErrPositionNotFound indicates the referenced position does not exist in
	// the ledger (never created, or already settled).
	ErrPositionNotFound = errors.New("position not found")

	// ErrStillLocked indicates a full-reward settlement was requested before
	// the position reached maturity.
	ErrStillLocked = errors.New("position is still locked")

	// ErrNotAuthenticated indicates the caller has no authenticated identity
	// with a connected wallet.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrOperationInFlight indicates another balance-mutating operation for
	// the same session has not resolved yet (duplicate-submission guard).
	ErrOperationInFlight = errors.New("another operation is already in flight")

	// ErrOperationTimedOut is reserved for deployments where settlement runs
	// against a real backend; the in-memory engine never returns it.
	ErrOperationTimedOut = errors.New("operation timed out")
)
