package domain

import "context"

// Identity describes the authenticated user as supplied by the identity
// provider. A session without a connected wallet cannot open or settle
// positions.
type Identity struct {
	IsAuthenticated bool
	WalletAddress   string
}

// CanTransact reports whether the identity may execute balance-mutating
// operations
func (i Identity) CanTransact() bool {
	return i.IsAuthenticated && i.WalletAddress != ""
}

// IdentityProvider resolves the identity attached to a request context.
// The engine treats a missing or wallet-less identity as ErrNotAuthenticated.
type IdentityProvider interface {
	Identity(ctx context.Context) (Identity, error)
}
