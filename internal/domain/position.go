package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Network represents the settlement chain a position is staked on.
// Each network carries its own APR tier table.
type Network string

const (
	NetworkEthereum Network = "ETHEREUM"
	NetworkSolana   Network = "SOLANA"
)

// Valid reports whether the network is one of the supported chains
func (n Network) Valid() bool {
	return n == NetworkEthereum || n == NetworkSolana
}

// Position represents a single locked-principal savings commitment.
// Principal, goal name and the estimated reward are immutable after creation;
// the only lifecycle mutation is removal through settlement.
type Position struct {
	ID              uuid.UUID
	Network         Network
	GoalName        string
	Principal       decimal.Decimal
	LockMonths      decimal.Decimal // fractional when derived from sub-month units
	CreatedAt       time.Time
	UnlockAt        time.Time
	EstimatedReward decimal.Decimal // frozen at creation; paid only at full maturity
}

// Validate ensures the position adheres to domain rules
// Returns an error if validation fails
func (p *Position) Validate() error {
	if strings.TrimSpace(p.GoalName) == "" {
		return ErrEmptyGoalName
	}
	if !p.Network.Valid() {
		return ErrInvalidNetwork
	}
	if p.Principal.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPrincipal
	}
	if p.LockMonths.LessThanOrEqual(decimal.Zero) || !p.UnlockAt.After(p.CreatedAt) {
		return ErrInvalidDuration
	}
	return nil
}

// Matured reports whether the position has reached maturity at `now`.
// A matured position settles at principal + estimated reward with no fee.
func (p *Position) Matured(now time.Time) bool {
	return !now.Before(p.UnlockAt)
}

// LockState describes the maturity filter for listing positions
type LockState string

const (
	LockStateLocked   LockState = "LOCKED"
	LockStateUnlocked LockState = "UNLOCKED"
)

// PositionFilter narrows a ledger listing. Zero values mean "no filter".
// Now is required when LockState is set, so repositories never read the
// wall clock themselves.
type PositionFilter struct {
	Network   Network
	LockState LockState
	Now       time.Time
}

// Matches reports whether the position passes the filter
func (f PositionFilter) Matches(p *Position) bool {
	if f.Network != "" && p.Network != f.Network {
		return false
	}
	switch f.LockState {
	case LockStateLocked:
		return !p.Matured(f.Now)
	case LockStateUnlocked:
		return p.Matured(f.Now)
	}
	return true
}
