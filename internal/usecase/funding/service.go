package funding

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/gate"
)

// FundingService handles on-ramp deposits into and off-ramp withdrawals out
// of the spendable balance, the flows that surround the savings engine
type FundingService struct {
	BalanceRepo     domain.BalanceRepository
	TransactionRepo domain.TransactionRepository
	Identity        domain.IdentityProvider
	Clock           domain.Clock
	Gate            *gate.Gate

	// Notifier receives recorded funding transactions; optional.
	Notifier domain.Notifier

	// Latency simulates ramp-provider delay before state is committed;
	// optional. It must respect ctx cancellation.
	Latency func(ctx context.Context) error
}

// NewFundingService creates a new FundingService instance
func NewFundingService(
	balanceRepo domain.BalanceRepository,
	transactionRepo domain.TransactionRepository,
	identity domain.IdentityProvider,
	clock domain.Clock,
	g *gate.Gate,
) *FundingService {
	return &FundingService{
		BalanceRepo:     balanceRepo,
		TransactionRepo: transactionRepo,
		Identity:        identity,
		Clock:           clock,
		Gate:            g,
	}
}

// Deposit credits the available balance and records a completed ON_RAMP
// transaction
func (s *FundingService) Deposit(ctx context.Context, amount decimal.Decimal) error {
	if err := s.admit(ctx, amount); err != nil {
		return err
	}
	defer s.Gate.Release()

	if err := s.wait(ctx); err != nil {
		return err
	}

	if err := s.BalanceRepo.Credit(ctx, amount); err != nil {
		return err
	}

	s.record(ctx, domain.TransactionTypeOnRamp, amount, "Deposit to available balance")
	return nil
}

// Withdraw debits the available balance and records a completed OFF_RAMP
// transaction. Fails with ErrInsufficientBalance when amount exceeds the
// available balance.
func (s *FundingService) Withdraw(ctx context.Context, amount decimal.Decimal) error {
	if err := s.admit(ctx, amount); err != nil {
		return err
	}
	defer s.Gate.Release()

	if err := s.wait(ctx); err != nil {
		return err
	}

	if err := s.BalanceRepo.Debit(ctx, amount); err != nil {
		return err
	}

	s.record(ctx, domain.TransactionTypeOffRamp, amount, "Withdrawal from available balance")
	return nil
}

// admit runs the shared identity, gate and amount checks. On success the
// gate is held and the caller must release it.
func (s *FundingService) admit(ctx context.Context, amount decimal.Decimal) error {
	identity, err := s.Identity.Identity(ctx)
	if err != nil {
		return err
	}
	if !identity.CanTransact() {
		return domain.ErrNotAuthenticated
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be positive")
	}

	if !s.Gate.TryAcquire() {
		return domain.ErrOperationInFlight
	}
	return nil
}

// wait runs the configured latency simulation, if any
func (s *FundingService) wait(ctx context.Context) error {
	if s.Latency == nil {
		return nil
	}
	return s.Latency(ctx)
}

// record appends the funding event to the transaction log. Fire-and-forget.
func (s *FundingService) record(ctx context.Context, txType domain.TransactionType, amount decimal.Decimal, description string) {
	tx := &domain.Transaction{
		ID:          uuid.New(),
		Type:        txType,
		Amount:      amount,
		Status:      domain.TransactionStatusCompleted,
		Timestamp:   s.Clock.Now(),
		Description: description,
	}

	if err := s.TransactionRepo.Record(ctx, tx); err != nil {
		return
	}
	if s.Notifier != nil {
		s.Notifier.NotifyTransaction(ctx, tx)
	}
}
