package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
)

// balanceRepository implements domain.BalanceRepository on the Store
type balanceRepository struct {
	store *Store
}

// Available returns the current spendable amount
func (r *balanceRepository) Available(ctx context.Context) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.available, nil
}

// Credit increases the available balance by amount
func (r *balanceRepository) Credit(ctx context.Context, amount decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.available = r.store.available.Add(amount)
	return nil
}

// Debit decreases the available balance by amount.
// Refuses to take the balance below zero.
func (r *balanceRepository) Debit(ctx context.Context, amount decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if amount.GreaterThan(r.store.available) {
		return domain.ErrInsufficientBalance
	}
	r.store.available = r.store.available.Sub(amount)
	return nil
}
