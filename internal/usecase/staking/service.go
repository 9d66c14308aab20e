package staking

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/gate"
)

// OpenPositionInput represents the input for opening a savings position
type OpenPositionInput struct {
	GoalName  string
	Principal decimal.Decimal
	Network   domain.Network
	Duration  domain.LockDuration
}

// ListInput narrows a position listing. Empty fields mean "no filter".
type ListInput struct {
	Network   domain.Network
	LockState domain.LockState
}

// StakingService handles position creation and listing
type StakingService struct {
	PositionRepo    domain.PositionRepository
	BalanceRepo     domain.BalanceRepository
	TransactionRepo domain.TransactionRepository
	Identity        domain.IdentityProvider
	Clock           domain.Clock
	Gate            *gate.Gate

	// Notifier receives the recorded stake transaction; optional.
	Notifier domain.Notifier

	// Latency simulates chain/network delay before state is committed;
	// optional. It must respect ctx cancellation.
	Latency func(ctx context.Context) error
}

// NewStakingService creates a new StakingService instance
func NewStakingService(
	positionRepo domain.PositionRepository,
	balanceRepo domain.BalanceRepository,
	transactionRepo domain.TransactionRepository,
	identity domain.IdentityProvider,
	clock domain.Clock,
	g *gate.Gate,
) *StakingService {
	return &StakingService{
		PositionRepo:    positionRepo,
		BalanceRepo:     balanceRepo,
		TransactionRepo: transactionRepo,
		Identity:        identity,
		Clock:           clock,
		Gate:            g,
	}
}

// Open creates a new savings position and debits the available balance.
// Logic:
//  1. Require an authenticated identity with a connected wallet
//  2. Admit through the duplicate-submission gate
//  3. Validate goal name, principal and network
//  4. Resolve the lock duration into unlockAt + normalized months
//  5. Freeze the estimated reward from APR(network, lockMonths)
//  6. Wait out the simulated latency, then commit: debit balance, store
//     the position, record a completed STAKE transaction
//
// No state is touched before the latency step resolves, so a caller that
// cancels mid-flight leaves balance and ledger untouched.
func (s *StakingService) Open(ctx context.Context, input OpenPositionInput) (*domain.Position, error) {
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

	// Validate input before any waiting or mutation
	if strings.TrimSpace(input.GoalName) == "" {
		return nil, domain.ErrEmptyGoalName
	}
	if input.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidPrincipal
	}
	if !input.Network.Valid() {
		return nil, domain.ErrInvalidNetwork
	}

	now := s.Clock.Now()
	unlockAt, lockMonths, err := input.Duration.Resolve(now)
	if err != nil {
		return nil, err
	}

	apr := domain.APR(input.Network, lockMonths)
	reward := domain.EstimateReward(input.Principal, apr, lockMonths)

	position := &domain.Position{
		ID:              uuid.New(),
		Network:         input.Network,
		GoalName:        strings.TrimSpace(input.GoalName),
		Principal:       input.Principal,
		LockMonths:      lockMonths,
		CreatedAt:       now,
		UnlockAt:        unlockAt,
		EstimatedReward: reward,
	}
	if err := position.Validate(); err != nil {
		return nil, err
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	// Commit: debit first so the available >= 0 invariant can never be
	// violated by a concurrent read between the two writes.
	if err := s.BalanceRepo.Debit(ctx, input.Principal); err != nil {
		return nil, err
	}
	if err := s.PositionRepo.Create(ctx, position); err != nil {
		// Roll back to the pre-operation snapshot
		_ = s.BalanceRepo.Credit(ctx, input.Principal)
		return nil, err
	}

	s.record(ctx, position)

	return position, nil
}

// List retrieves positions, optionally filtered by network and lock state.
// Lock state is evaluated against the injected clock, never the wall clock.
func (s *StakingService) List(ctx context.Context, input ListInput) ([]*domain.Position, error) {
	filter := domain.PositionFilter{
		Network:   input.Network,
		LockState: input.LockState,
	}
	if filter.LockState != "" {
		filter.Now = s.Clock.Now()
	}
	return s.PositionRepo.List(ctx, filter)
}

// wait runs the configured latency simulation, if any
func (s *StakingService) wait(ctx context.Context) error {
	if s.Latency == nil {
		return nil
	}
	return s.Latency(ctx)
}

// record appends the stake event to the transaction log and notifies
// listeners. Recording is fire-and-forget: the opened position stands even
// if the log write fails.
func (s *StakingService) record(ctx context.Context, position *domain.Position) {
	tx := &domain.Transaction{
		ID:          uuid.New(),
		Type:        domain.TransactionTypeStake,
		Amount:      position.Principal,
		Status:      domain.TransactionStatusCompleted,
		Timestamp:   position.CreatedAt,
		Network:     position.Network,
		Description: "Locked savings for goal: " + position.GoalName,
	}

	if err := s.TransactionRepo.Record(ctx, tx); err != nil {
		return
	}
	if s.Notifier != nil {
		s.Notifier.NotifyTransaction(ctx, tx)
	}
}
