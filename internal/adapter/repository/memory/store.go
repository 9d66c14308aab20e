// Package memory provides the process-local session store backing the savings
// engine. All state lives in one Store guarded by a single mutex, so paired
// balance and ledger mutations within a service never observe each other
// half-applied. State is lost on restart.
package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
)

// Store holds the balance, position ledger and transaction log for one
// session. Repositories returned by the accessor methods share the Store's
// lock.
type Store struct {
	mu           sync.RWMutex
	available    decimal.Decimal
	positions    []*domain.Position
	positionByID map[uuid.UUID]*domain.Position
	transactions []*domain.Transaction
}

// NewStore creates a Store with the given opening balance
func NewStore(openingBalance decimal.Decimal) *Store {
	return &Store{
		available:    openingBalance,
		positionByID: make(map[uuid.UUID]*domain.Position),
	}
}

// Positions returns the position ledger view of the store
func (s *Store) Positions() domain.PositionRepository {
	return &positionRepository{store: s}
}

// Balance returns the spendable balance view of the store
func (s *Store) Balance() domain.BalanceRepository {
	return &balanceRepository{store: s}
}

// Transactions returns the append-only event log view of the store
func (s *Store) Transactions() domain.TransactionRepository {
	return &transactionRepository{store: s}
}
