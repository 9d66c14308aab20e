package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PositionRepository defines the interface for position ledger operations.
// The ledger exclusively owns Position entities for the lifetime of a session;
// positions are created by staking and destroyed only by settlement.
type PositionRepository interface {
	// Create stores a new position
	Create(ctx context.Context, position *Position) error

	// GetByID retrieves a position by its ID
	// Returns ErrPositionNotFound if the id is absent
	GetByID(ctx context.Context, id uuid.UUID) (*Position, error)

	// List retrieves positions matching the filter, in stable insertion order
	List(ctx context.Context, filter PositionFilter) ([]*Position, error)

	// Remove deletes a position from the ledger
	// Returns ErrPositionNotFound if the id is absent
	Remove(ctx context.Context, id uuid.UUID) error
}

// BalanceRepository defines the interface for the spendable balance.
// The balance is shared read state across every view but is mutated only
// through the staking, settlement and funding services.
type BalanceRepository interface {
	// Available returns the current spendable amount
	Available(ctx context.Context) (decimal.Decimal, error)

	// Credit increases the available balance by amount
	Credit(ctx context.Context, amount decimal.Decimal) error

	// Debit decreases the available balance by amount
	// Returns ErrInsufficientBalance if amount exceeds the available balance,
	// preserving the available >= 0 invariant
	Debit(ctx context.Context, amount decimal.Decimal) error
}

// TransactionRepository defines the interface for the append-only event log
// consumed by history views
type TransactionRepository interface {
	// Record appends a transaction to the log
	Record(ctx context.Context, tx *Transaction) error

	// List retrieves a paginated slice of recorded transactions,
	// most recent first
	List(ctx context.Context, limit, offset int) ([]*Transaction, error)

	// Count returns the total number of recorded transactions
	Count(ctx context.Context) (int, error)
}

// Notifier pushes recorded transactions to interested consumers (WebSocket
// clients, an external event bus). Delivery is fire-and-forget: the engine
// never depends on its success.
type Notifier interface {
	NotifyTransaction(ctx context.Context, tx *Transaction)
}
