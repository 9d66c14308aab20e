package portfolio

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
)

// NetworkBreakdown aggregates the open positions on a single network
type NetworkBreakdown struct {
	Network         domain.Network
	Principal       decimal.Decimal
	EstimatedReward decimal.Decimal
	Positions       int
}

// Summary represents the portfolio totals shown on the dashboard
type Summary struct {
	Available        decimal.Decimal
	LockedPrincipal  decimal.Decimal
	EstimatedRewards decimal.Decimal
	Positions        int
	ByNetwork        []NetworkBreakdown
}

// PortfolioService aggregates engine state for the dashboard view
type PortfolioService struct {
	PositionRepo domain.PositionRepository
	BalanceRepo  domain.BalanceRepository
}

// NewPortfolioService creates a new PortfolioService instance
func NewPortfolioService(positionRepo domain.PositionRepository, balanceRepo domain.BalanceRepository) *PortfolioService {
	return &PortfolioService{
		PositionRepo: positionRepo,
		BalanceRepo:  balanceRepo,
	}
}

// GetSummary calculates the portfolio totals
// Logic:
//   - Available: current spendable balance
//   - LockedPrincipal: sum of all open position principals
//   - EstimatedRewards: sum of all frozen estimated rewards
//   - ByNetwork: the same figures broken down per network, in a stable
//     network order
func (s *PortfolioService) GetSummary(ctx context.Context) (*Summary, error) {
	available, err := s.BalanceRepo.Available(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read available balance: %w", err)
	}

	positions, err := s.PositionRepo.List(ctx, domain.PositionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	summary := &Summary{
		Available:        available,
		LockedPrincipal:  decimal.Zero,
		EstimatedRewards: decimal.Zero,
		Positions:        len(positions),
	}

	byNetwork := map[domain.Network]*NetworkBreakdown{}
	for _, position := range positions {
		summary.LockedPrincipal = summary.LockedPrincipal.Add(position.Principal)
		summary.EstimatedRewards = summary.EstimatedRewards.Add(position.EstimatedReward)

		breakdown, ok := byNetwork[position.Network]
		if !ok {
			breakdown = &NetworkBreakdown{
				Network:         position.Network,
				Principal:       decimal.Zero,
				EstimatedReward: decimal.Zero,
			}
			byNetwork[position.Network] = breakdown
		}
		breakdown.Principal = breakdown.Principal.Add(position.Principal)
		breakdown.EstimatedReward = breakdown.EstimatedReward.Add(position.EstimatedReward)
		breakdown.Positions++
	}

	// Stable order for rendering
	for _, network := range []domain.Network{domain.NetworkEthereum, domain.NetworkSolana} {
		if breakdown, ok := byNetwork[network]; ok {
			summary.ByNetwork = append(summary.ByNetwork, *breakdown)
		}
	}

	return summary, nil
}
