package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
)

// transactionRepository implements domain.TransactionRepository on PostgreSQL.
// It backs the history view when durable storage is configured; the engine
// otherwise runs on the in-memory store.
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Record appends a transaction to the log
func (r *transactionRepository) Record(ctx context.Context, tx *domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (id, type, amount, status, recorded_at, network, protocol_label, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		string(tx.Type),
		tx.Amount.String(),
		string(tx.Status),
		tx.Timestamp,
		string(tx.Network),
		tx.ProtocolLabel,
		tx.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// List retrieves a paginated slice of recorded transactions, most recent first
func (r *transactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, type, amount, status, recorded_at, network, protocol_label, description
		FROM transactions
		ORDER BY recorded_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		var (
			tx     domain.Transaction
			amount string
		)
		if err := rows.Scan(
			&tx.ID,
			&tx.Type,
			&amount,
			&tx.Status,
			&tx.Timestamp,
			&tx.Network,
			&tx.ProtocolLabel,
			&tx.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tx.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction amount: %w", err)
		}

		transactions = append(transactions, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// Count returns the total number of recorded transactions
func (r *transactionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
