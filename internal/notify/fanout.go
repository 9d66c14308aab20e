// Package notify fans transaction events out to every configured sink
// (WebSocket hub, Redis bus). A single sink failing never affects the rest.
package notify

import (
	"context"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
)

// Fanout dispatches each transaction to all registered notifiers in order.
// It implements domain.Notifier itself, so services see a single sink.
type Fanout struct {
	sinks []domain.Notifier
}

// NewFanout creates a Fanout over the given sinks. Nil sinks are skipped, so
// callers can pass optional adapters without guarding.
func NewFanout(sinks ...domain.Notifier) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// NotifyTransaction forwards the transaction to every sink.
func (f *Fanout) NotifyTransaction(ctx context.Context, tx *domain.Transaction) {
	for _, s := range f.sinks {
		s.NotifyTransaction(ctx, tx)
	}
}

var _ domain.Notifier = (*Fanout)(nil)
