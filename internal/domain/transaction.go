package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of ledger event being recorded
type TransactionType string

const (
	TransactionTypeOnRamp  TransactionType = "ON_RAMP"
	TransactionTypeOffRamp TransactionType = "OFF_RAMP"
	TransactionTypeStake   TransactionType = "STAKE"
	TransactionTypeUnstake TransactionType = "UNSTAKE"
	TransactionTypeSwap    TransactionType = "SWAP"
)

// TransactionStatus represents the settlement state of a recorded event
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an append-only record of a savings-engine event, consumed by
// history views. Once completed or failed it is terminal.
type Transaction struct {
	ID            uuid.UUID
	Type          TransactionType
	Amount        decimal.Decimal
	Status        TransactionStatus
	Timestamp     time.Time
	Network       Network // empty for on/off-ramp events
	ProtocolLabel string  // optional, e.g. the savings protocol name
	Description   string  // optional free-text note
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
func (t *Transaction) Validate() error {
	switch t.Type {
	case TransactionTypeOnRamp, TransactionTypeOffRamp, TransactionTypeStake,
		TransactionTypeUnstake, TransactionTypeSwap:
	default:
		return errors.New("transaction type must be one of ON_RAMP, OFF_RAMP, STAKE, UNSTAKE, SWAP")
	}

	switch t.Status {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
	default:
		return errors.New("transaction status must be PENDING, COMPLETED or FAILED")
	}

	if t.Amount.LessThan(decimal.Zero) {
		return errors.New("transaction amount cannot be negative")
	}

	return nil
}

// Transition moves the transaction to a new status.
// Only PENDING -> COMPLETED|FAILED transitions are allowed; COMPLETED and
// FAILED are terminal.
func (t *Transaction) Transition(next TransactionStatus) error {
	if t.Status != TransactionStatusPending {
		return errors.New("transaction status is terminal: " + string(t.Status))
	}
	if next != TransactionStatusCompleted && next != TransactionStatusFailed {
		return errors.New("pending transaction may only transition to COMPLETED or FAILED")
	}
	t.Status = next
	return nil
}
