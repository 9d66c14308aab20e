// Package bus publishes transaction events to Redis Pub/Sub so out-of-process
// consumers (analytics, alerting) can follow the savings ledger.
package bus

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
)

// transactionChannel is the Pub/Sub channel transaction events are sent to.
const transactionChannel = "nexus:transactions"

// Config holds connection parameters for the Redis publisher.
type Config struct {
	Addr       string
	Password   string
	DB         int
	TLSEnabled bool
}

// Publisher pushes recorded transactions onto a Redis Pub/Sub channel.
// It implements domain.Notifier.
type Publisher struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// NewPublisher connects to Redis, pings it to verify connectivity, and
// returns the publisher. It returns an error if the connection cannot be
// established.
func NewPublisher(ctx context.Context, cfg Config, logger *slog.Logger) (*Publisher, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLSEnabled {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("bus: ping: %w", err)
	}

	return &Publisher{rdb: rdb, logger: logger}, nil
}

// transactionEvent is the JSON payload published per transaction.
type transactionEvent struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Network       string    `json:"network,omitempty"`
	ProtocolLabel string    `json:"protocol_label,omitempty"`
	Description   string    `json:"description,omitempty"`
}

// NotifyTransaction publishes the transaction. Failures are logged, never
// surfaced: the ledger does not depend on the bus.
func (p *Publisher) NotifyTransaction(ctx context.Context, tx *domain.Transaction) {
	payload, err := json.Marshal(transactionEvent{
		ID:            tx.ID.String(),
		Type:          string(tx.Type),
		Amount:        tx.Amount.String(),
		Status:        string(tx.Status),
		Timestamp:     tx.Timestamp,
		Network:       string(tx.Network),
		ProtocolLabel: tx.ProtocolLabel,
		Description:   tx.Description,
	})
	if err != nil {
		p.logger.Error("bus: marshal event", slog.String("error", err.Error()))
		return
	}

	if err := p.rdb.Publish(ctx, transactionChannel, payload).Err(); err != nil {
		p.logger.Warn("bus: publish failed",
			slog.String("channel", transactionChannel),
			slog.String("error", err.Error()),
		)
	}
}

// Close closes the Redis connection.
func (p *Publisher) Close() error {
	return p.rdb.Close()
}

var _ domain.Notifier = (*Publisher)(nil)
