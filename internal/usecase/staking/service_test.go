package staking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/gate"
)

// MockPositionRepository is a mock implementation of PositionRepository for testing
type MockPositionRepository struct {
	mock.Mock
}

func (m *MockPositionRepository) Create(ctx context.Context, position *domain.Position) error {
	args := m.Called(ctx, position)
	return args.Error(0)
}

func (m *MockPositionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Position), args.Error(1)
}

func (m *MockPositionRepository) List(ctx context.Context, filter domain.PositionFilter) ([]*domain.Position, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Position), args.Error(1)
}

func (m *MockPositionRepository) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBalanceRepository is a mock implementation of BalanceRepository for testing
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) Available(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceRepository) Credit(ctx context.Context, amount decimal.Decimal) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

func (m *MockBalanceRepository) Debit(ctx context.Context, amount decimal.Decimal) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Record(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// staticIdentity is an IdentityProvider that always returns the same identity
type staticIdentity struct {
	identity domain.Identity
}

func (s staticIdentity) Identity(ctx context.Context) (domain.Identity, error) {
	return s.identity, nil
}

// fixedClock is a Clock pinned to a known instant
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var (
	testNow    = time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	authedUser = staticIdentity{identity: domain.Identity{
		IsAuthenticated: true,
		WalletAddress:   "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
	}}
)

func newTestService(positions *MockPositionRepository, balance *MockBalanceRepository, txs *MockTransactionRepository) *StakingService {
	return NewStakingService(positions, balance, txs, authedUser, fixedClock{now: testNow}, gate.New())
}

func TestOpen_Success(t *testing.T) {
	ctx := context.Background()
	mockPositions := new(MockPositionRepository)
	mockBalance := new(MockBalanceRepository)
	mockTxs := new(MockTransactionRepository)

	service := newTestService(mockPositions, mockBalance, mockTxs)

	principal := decimal.NewFromInt(1000)
	mockBalance.On("Debit", ctx, principal).Return(nil)
	mockPositions.On("Create", ctx, mock.MatchedBy(func(p *domain.Position) bool {
		// 1000 on Ethereum for 6 months -> 5% APR tier -> 25.00 frozen reward
		return p.GoalName == "House Down Payment" &&
			p.Network == domain.NetworkEthereum &&
			p.Principal.Equal(principal) &&
			p.LockMonths.Equal(decimal.NewFromInt(6)) &&
			p.CreatedAt.Equal(testNow) &&
			p.UnlockAt.Equal(testNow.AddDate(0, 6, 0)) &&
			p.EstimatedReward.Equal(decimal.NewFromInt(25))
	})).Return(nil)
	mockTxs.On("Record", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Type == domain.TransactionTypeStake &&
			tx.Status == domain.TransactionStatusCompleted &&
			tx.Amount.Equal(principal) &&
			tx.Network == domain.NetworkEthereum
	})).Return(nil)

	position, err := service.Open(ctx, OpenPositionInput{
		GoalName:  "House Down Payment",
		Principal: principal,
		Network:   domain.NetworkEthereum,
		Duration:  domain.PresetDuration(6),
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, position.ID)
	assert.True(t, decimal.NewFromInt(25).Equal(position.EstimatedReward))

	mockPositions.AssertExpectations(t)
	mockBalance.AssertExpectations(t)
	mockTxs.AssertExpectations(t)
}

func TestOpen_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	mockPositions := new(MockPositionRepository)
	mockBalance := new(MockBalanceRepository)
	mockTxs := new(MockTransactionRepository)

	service := newTestService(mockPositions, mockBalance, mockTxs)

	mockBalance.On("Debit", ctx, mock.Anything).Return(domain.ErrInsufficientBalance)

	_, err := service.Open(ctx, OpenPositionInput{
		GoalName:  "Too Ambitious",
		Principal: decimal.NewFromInt(1000000),
		Network:   domain.NetworkSolana,
		Duration:  domain.PresetDuration(12),
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	mockPositions.AssertNotCalled(t, "Create")
	mockTxs.AssertNotCalled(t, "Record")
}

func TestOpen_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		input   OpenPositionInput
		wantErr error
	}{
		{
			name: "blank goal name",
			input: OpenPositionInput{
				GoalName:  "   ",
				Principal: decimal.NewFromInt(100),
				Network:   domain.NetworkEthereum,
				Duration:  domain.PresetDuration(3),
			},
			wantErr: domain.ErrEmptyGoalName,
		},
		{
			name: "zero principal",
			input: OpenPositionInput{
				GoalName:  "Goal",
				Principal: decimal.Zero,
				Network:   domain.NetworkEthereum,
				Duration:  domain.PresetDuration(3),
			},
			wantErr: domain.ErrInvalidPrincipal,
		},
		{
			name: "unsupported network",
			input: OpenPositionInput{
				GoalName:  "Goal",
				Principal: decimal.NewFromInt(100),
				Network:   domain.Network("TRON"),
				Duration:  domain.PresetDuration(3),
			},
			wantErr: domain.ErrInvalidNetwork,
		},
		{
			name: "degenerate zero duration",
			input: OpenPositionInput{
				GoalName:  "Goal",
				Principal: decimal.NewFromInt(100),
				Network:   domain.NetworkEthereum,
				Duration:  domain.CustomDuration(0, domain.DurationUnitDays),
			},
			wantErr: domain.ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mockPositions := new(MockPositionRepository)
			mockBalance := new(MockBalanceRepository)
			mockTxs := new(MockTransactionRepository)

			service := newTestService(mockPositions, mockBalance, mockTxs)

			_, err := service.Open(ctx, tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
			mockBalance.AssertNotCalled(t, "Debit")
			mockPositions.AssertNotCalled(t, "Create")
		})
	}
}

func TestOpen_NotAuthenticated(t *testing.T) {
	ctx := context.Background()
	mockPositions := new(MockPositionRepository)
	mockBalance := new(MockBalanceRepository)
	mockTxs := new(MockTransactionRepository)

	service := newTestService(mockPositions, mockBalance, mockTxs)
	service.Identity = staticIdentity{identity: domain.Identity{IsAuthenticated: true}} // no wallet connected

	_, err := service.Open(ctx, OpenPositionInput{
		GoalName:  "Goal",
		Principal: decimal.NewFromInt(100),
		Network:   domain.NetworkEthereum,
		Duration:  domain.PresetDuration(3),
	})

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	mockBalance.AssertNotCalled(t, "Debit")
}

func TestOpen_DuplicateSubmissionRejected(t *testing.T) {
	ctx := context.Background()
	mockPositions := new(MockPositionRepository)
	mockBalance := new(MockBalanceRepository)
	mockTxs := new(MockTransactionRepository)

	service := newTestService(mockPositions, mockBalance, mockTxs)

	// Simulate a prior operation still resolving
	require.True(t, service.Gate.TryAcquire())

	_, err := service.Open(ctx, OpenPositionInput{
		GoalName:  "Goal",
		Principal: decimal.NewFromInt(100),
		Network:   domain.NetworkEthereum,
		Duration:  domain.PresetDuration(3),
	})

	assert.ErrorIs(t, err, domain.ErrOperationInFlight)
	mockBalance.AssertNotCalled(t, "Debit")
}

func TestOpen_CancelledDuringLatencyLeavesNoState(t *testing.T) {
	mockPositions := new(MockPositionRepository)
	mockBalance := new(MockBalanceRepository)
	mockTxs := new(MockTransactionRepository)

	service := newTestService(mockPositions, mockBalance, mockTxs)

	ctx, cancel := context.WithCancel(context.Background())
	service.Latency = func(ctx context.Context) error {
		cancel() // caller navigates away mid-flight
		return ctx.Err()
	}

	_, err := service.Open(ctx, OpenPositionInput{
		GoalName:  "Goal",
		Principal: decimal.NewFromInt(100),
		Network:   domain.NetworkEthereum,
		Duration:  domain.PresetDuration(3),
	})

	assert.ErrorIs(t, err, context.Canceled)
	mockBalance.AssertNotCalled(t, "Debit")
	mockPositions.AssertNotCalled(t, "Create")
}

func TestOpen_RollsBackDebitWhenCreateFails(t *testing.T) {
	ctx := context.Background()
	mockPositions := new(MockPositionRepository)
	mockBalance := new(MockBalanceRepository)
	mockTxs := new(MockTransactionRepository)

	service := newTestService(mockPositions, mockBalance, mockTxs)

	principal := decimal.NewFromInt(500)
	mockBalance.On("Debit", ctx, principal).Return(nil)
	mockPositions.On("Create", ctx, mock.Anything).Return(errors.New("ledger write failed"))
	mockBalance.On("Credit", ctx, principal).Return(nil)

	_, err := service.Open(ctx, OpenPositionInput{
		GoalName:  "Goal",
		Principal: principal,
		Network:   domain.NetworkEthereum,
		Duration:  domain.PresetDuration(3),
	})

	require.Error(t, err)
	mockBalance.AssertCalled(t, "Credit", ctx, principal)
	mockTxs.AssertNotCalled(t, "Record")
}

func TestOpen_RecorderFailureDoesNotFailOpen(t *testing.T) {
	ctx := context.Background()
	mockPositions := new(MockPositionRepository)
	mockBalance := new(MockBalanceRepository)
	mockTxs := new(MockTransactionRepository)

	service := newTestService(mockPositions, mockBalance, mockTxs)

	mockBalance.On("Debit", ctx, mock.Anything).Return(nil)
	mockPositions.On("Create", ctx, mock.Anything).Return(nil)
	mockTxs.On("Record", ctx, mock.Anything).Return(errors.New("log unavailable"))

	position, err := service.Open(ctx, OpenPositionInput{
		GoalName:  "Goal",
		Principal: decimal.NewFromInt(100),
		Network:   domain.NetworkEthereum,
		Duration:  domain.PresetDuration(3),
	})

	require.NoError(t, err)
	assert.NotNil(t, position)
}

func TestList_PassesFilterWithClock(t *testing.T) {
	ctx := context.Background()
	mockPositions := new(MockPositionRepository)
	mockBalance := new(MockBalanceRepository)
	mockTxs := new(MockTransactionRepository)

	service := newTestService(mockPositions, mockBalance, mockTxs)

	expected := []*domain.Position{}
	mockPositions.On("List", ctx, domain.PositionFilter{
		Network:   domain.NetworkSolana,
		LockState: domain.LockStateLocked,
		Now:       testNow,
	}).Return(expected, nil)

	_, err := service.List(ctx, ListInput{
		Network:   domain.NetworkSolana,
		LockState: domain.LockStateLocked,
	})

	require.NoError(t, err)
	mockPositions.AssertExpectations(t)
}

func TestList_NoLockStateOmitsClock(t *testing.T) {
	ctx := context.Background()
	mockPositions := new(MockPositionRepository)
	mockBalance := new(MockBalanceRepository)
	mockTxs := new(MockTransactionRepository)

	service := newTestService(mockPositions, mockBalance, mockTxs)

	mockPositions.On("List", ctx, domain.PositionFilter{}).Return([]*domain.Position{}, nil)

	_, err := service.List(ctx, ListInput{})

	require.NoError(t, err)
	mockPositions.AssertExpectations(t)
}
