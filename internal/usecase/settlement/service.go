package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/gate"
)

// EarlyExitPenaltyRate is the share of principal forfeited when a position is
// settled before maturity. Product policy applies a single flat rate; the
// frozen estimated reward is forfeited entirely on top of it, with no
// pro-rating for elapsed time.
var EarlyExitPenaltyRate = decimal.NewFromFloat(0.30)

// Settlement represents the outcome of closing a position
type Settlement struct {
	Payout decimal.Decimal
	Fee    decimal.Decimal
}

// SettlementService closes positions either at full maturity or through the
// early-exit path
type SettlementService struct {
	PositionRepo    domain.PositionRepository
	BalanceRepo     domain.BalanceRepository
	TransactionRepo domain.TransactionRepository
	Identity        domain.IdentityProvider
	Clock           domain.Clock
	Gate            *gate.Gate

	// Notifier receives the recorded unstake transaction; optional.
	Notifier domain.Notifier

	// Latency simulates chain/network delay before state is committed;
	// optional. It must respect ctx cancellation.
	Latency func(ctx context.Context) error
}

// NewSettlementService creates a new SettlementService instance
func NewSettlementService(
	positionRepo domain.PositionRepository,
	balanceRepo domain.BalanceRepository,
	transactionRepo domain.TransactionRepository,
	identity domain.IdentityProvider,
	clock domain.Clock,
	g *gate.Gate,
) *SettlementService {
	return &SettlementService{
		PositionRepo:    positionRepo,
		BalanceRepo:     balanceRepo,
		TransactionRepo: transactionRepo,
		Identity:        identity,
		Clock:           clock,
		Gate:            g,
	}
}

// Settle closes a position and credits the payout to the available balance.
// Logic:
//   - Full settlement (earlyExit=false) requires maturity and pays
//     principal + estimatedReward with no fee; before maturity it fails
//     with ErrStillLocked.
//   - Early exit pays principal minus the flat penalty fee; the estimated
//     reward is forfeited regardless of elapsed time.
//
// The ledger removal and balance credit are atomic from the caller's
// perspective: on a partial failure the position is restored and a single
// error is surfaced. A settled position is gone from the ledger, so a second
// Settle with the same id fails with ErrPositionNotFound.
func (s *SettlementService) Settle(ctx context.Context, positionID uuid.UUID, earlyExit bool) (*Settlement, error) {
	identity, err := s.Identity.Identity(ctx)
	if err != nil {
		return nil, err
	}
	if !identity.CanTransact() {
		return nil, domain.ErrNotAuthenticated
	}

	if !s.Gate.TryAcquire() {
		return nil, domain.ErrOperationInFlight
	}
	defer s.Gate.Release()

	position, err := s.PositionRepo.GetByID(ctx, positionID)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	if !earlyExit && !position.Matured(now) {
		return nil, domain.ErrStillLocked
	}

	var payout, fee decimal.Decimal
	if earlyExit {
		fee = position.Principal.Mul(EarlyExitPenaltyRate).Round(2)
		payout = position.Principal.Sub(fee)
	} else {
		fee = decimal.Zero
		payout = position.Principal.Add(position.EstimatedReward)
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	// Commit: remove from the ledger, then credit the payout. A failed
	// credit restores the position so balance and ledger never disagree.
	if err := s.PositionRepo.Remove(ctx, positionID); err != nil {
		return nil, err
	}
	if err := s.BalanceRepo.Credit(ctx, payout); err != nil {
		_ = s.PositionRepo.Create(ctx, position)
		return nil, err
	}

	s.record(ctx, position, payout, now, earlyExit)

	return &Settlement{Payout: payout, Fee: fee}, nil
}

// wait runs the configured latency simulation, if any
func (s *SettlementService) wait(ctx context.Context) error {
	if s.Latency == nil {
		return nil
	}
	return s.Latency(ctx)
}

// record appends the unstake event to the transaction log and notifies
// listeners. Fire-and-forget: the settlement stands even if the log write
// fails.
func (s *SettlementService) record(ctx context.Context, position *domain.Position, payout decimal.Decimal, now time.Time, earlyExit bool) {
	description := "Matured savings for goal: " + position.GoalName
	if earlyExit {
		description = "Early withdrawal for goal: " + position.GoalName
	}

	tx := &domain.Transaction{
		ID:          uuid.New(),
		Type:        domain.TransactionTypeUnstake,
		Amount:      payout,
		Status:      domain.TransactionStatusCompleted,
		Timestamp:   now,
		Network:     position.Network,
		Description: description,
	}

	if err := s.TransactionRepo.Record(ctx, tx); err != nil {
		return
	}
	if s.Notifier != nil {
		s.Notifier.NotifyTransaction(ctx, tx)
	}
}
