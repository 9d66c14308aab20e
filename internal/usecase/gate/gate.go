// Package gate provides the duplicate-submission guard shared by every
// balance-mutating service. Operations on the ledger and balance for one
// session are serialized: while an open, settle or funding call is resolving
// its simulated latency, a second submission fails fast instead of
// interleaving.
package gate

import "sync"

// Gate is a single-slot admission gate. TryAcquire succeeds only when no
// other operation holds the gate.
type Gate struct {
	mu       sync.Mutex
	inFlight bool
}

// New creates an open Gate
func New() *Gate {
	return &Gate{}
}

// TryAcquire attempts to claim the gate. It returns false when another
// operation is already in flight.
func (g *Gate) TryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight {
		return false
	}
	g.inFlight = true
	return true
}

// Release reopens the gate. Safe to call from a deferred statement.
func (g *Gate) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight = false
}
