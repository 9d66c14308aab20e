package auth

import (
	"context"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
)

// Provider resolves domain identities from request-context claims.
// It implements domain.IdentityProvider.
type Provider struct{}

// NewProvider creates a new Provider instance
func NewProvider() *Provider {
	return &Provider{}
}

// Identity returns the identity attached to the context. A request without
// verified claims yields an unauthenticated identity rather than an error;
// the engine decides which operations that identity may execute.
func (p *Provider) Identity(ctx context.Context) (domain.Identity, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return domain.Identity{}, nil
	}
	return domain.Identity{
		IsAuthenticated: true,
		WalletAddress:   claims.WalletAddress,
	}, nil
}
