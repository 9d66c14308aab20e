package memory

import (
	"context"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
)

// transactionRepository implements domain.TransactionRepository on the Store
type transactionRepository struct {
	store *Store
}

// Record appends a transaction to the log
func (r *transactionRepository) Record(ctx context.Context, tx *domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored := *tx
	r.store.transactions = append(r.store.transactions, &stored)
	return nil
}

// List retrieves a paginated slice of transactions, most recent first
func (r *transactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	total := len(r.store.transactions)
	if offset >= total {
		return []*domain.Transaction{}, nil
	}

	// The log is append-ordered; walk it backwards for newest-first views.
	result := make([]*domain.Transaction, 0, limit)
	for i := total - 1 - offset; i >= 0 && len(result) < limit; i-- {
		copied := *r.store.transactions[i]
		result = append(result, &copied)
	}
	return result, nil
}

// Count returns the total number of recorded transactions
func (r *transactionRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.transactions), nil
}
