package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/auth"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/funding"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/portfolio"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/settlement"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/staking"
)

const defaultPageSize = 20

// Handler bundles the usecase services behind the JSON endpoints.
type Handler struct {
	Staking    *staking.StakingService
	Settlement *settlement.SettlementService
	Funding    *funding.FundingService
	Portfolio  *portfolio.PortfolioService

	Transactions domain.TransactionRepository
	Balance      domain.BalanceRepository
	JWT          auth.JWT
	Logger       *slog.Logger
}

// Health responds to liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sessionRequest struct {
	WalletAddress string `json:"wallet_address"`
	Email         string `json:"email"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateSession issues a signed session token for a wallet address. This
// stands in for a full wallet-signature challenge flow.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, expiresAt, err := h.JWT.Sign(req.WalletAddress, req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, ExpiresAt: expiresAt})
}

type balanceResponse struct {
	Available decimal.Decimal `json:"available"`
}

// GetBalance returns the spendable balance.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	available, err := h.Balance.Available(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Available: available})
}

type fundingRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Deposit moves funds onto the platform balance.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req fundingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Funding.Deposit(r.Context(), req.Amount); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "completed"})
}

// Withdraw moves funds off the platform balance.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req fundingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Funding.Withdraw(r.Context(), req.Amount); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "completed"})
}

type durationPayload struct {
	Kind   domain.DurationKind `json:"kind"`
	Months int                 `json:"months,omitempty"`
	Value  int                 `json:"value,omitempty"`
	Unit   domain.DurationUnit `json:"unit,omitempty"`
}

type openPositionRequest struct {
	GoalName  string          `json:"goal_name"`
	Principal decimal.Decimal `json:"principal"`
	Network   domain.Network  `json:"network"`
	Duration  durationPayload `json:"duration"`
}

type positionResponse struct {
	ID              uuid.UUID       `json:"id"`
	Network         domain.Network  `json:"network"`
	GoalName        string          `json:"goal_name"`
	Principal       decimal.Decimal `json:"principal"`
	LockMonths      decimal.Decimal `json:"lock_months"`
	CreatedAt       time.Time       `json:"created_at"`
	UnlockAt        time.Time       `json:"unlock_at"`
	EstimatedReward decimal.Decimal `json:"estimated_reward"`
}

func toPositionResponse(p *domain.Position) positionResponse {
	return positionResponse{
		ID:              p.ID,
		Network:         p.Network,
		GoalName:        p.GoalName,
		Principal:       p.Principal,
		LockMonths:      p.LockMonths,
		CreatedAt:       p.CreatedAt,
		UnlockAt:        p.UnlockAt,
		EstimatedReward: p.EstimatedReward,
	}
}

// OpenPosition stakes principal into a new locked savings position.
func (h *Handler) OpenPosition(w http.ResponseWriter, r *http.Request) {
	var req openPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var duration domain.LockDuration
	switch req.Duration.Kind {
	case domain.DurationKindPreset:
		duration = domain.PresetDuration(req.Duration.Months)
	case domain.DurationKindCustom:
		duration = domain.CustomDuration(req.Duration.Value, req.Duration.Unit)
	default:
		writeError(w, http.StatusBadRequest, "duration kind must be PRESET or CUSTOM")
		return
	}

	position, err := h.Staking.Open(r.Context(), staking.OpenPositionInput{
		GoalName:  req.GoalName,
		Principal: req.Principal,
		Network:   req.Network,
		Duration:  duration,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPositionResponse(position))
}

// ListPositions returns open positions, optionally filtered by network and
// lock state via query parameters.
func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	input := staking.ListInput{
		Network:   domain.Network(r.URL.Query().Get("network")),
		LockState: domain.LockState(r.URL.Query().Get("state")),
	}

	positions, err := h.Staking.List(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]positionResponse, 0, len(positions))
	for _, p := range positions {
		resp = append(resp, toPositionResponse(p))
	}

	writeJSON(w, http.StatusOK, map[string]any{"positions": resp})
}

type settleRequest struct {
	EarlyExit bool `json:"early_exit"`
}

type settleResponse struct {
	Payout decimal.Decimal `json:"payout"`
	Fee    decimal.Decimal `json:"fee"`
}

// SettlePosition closes a position, crediting the payout back to the balance.
func (h *Handler) SettlePosition(w http.ResponseWriter, r *http.Request) {
	positionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid position id")
		return
	}

	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Settlement.Settle(r.Context(), positionID, req.EarlyExit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settleResponse{Payout: result.Payout, Fee: result.Fee})
}

type transactionResponse struct {
	ID            uuid.UUID                `json:"id"`
	Type          domain.TransactionType   `json:"type"`
	Amount        decimal.Decimal          `json:"amount"`
	Status        domain.TransactionStatus `json:"status"`
	Timestamp     time.Time                `json:"timestamp"`
	Network       domain.Network           `json:"network,omitempty"`
	ProtocolLabel string                   `json:"protocol_label,omitempty"`
	Description   string                   `json:"description,omitempty"`
}

// ListTransactions returns recorded transactions, most recent first, with
// limit/offset pagination.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultPageSize)
	offset := queryInt(r, "offset", 0)

	txs, err := h.Transactions.List(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	total, err := h.Transactions.Count(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, transactionResponse{
			ID:            tx.ID,
			Type:          tx.Type,
			Amount:        tx.Amount,
			Status:        tx.Status,
			Timestamp:     tx.Timestamp,
			Network:       tx.Network,
			ProtocolLabel: tx.ProtocolLabel,
			Description:   tx.Description,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": resp,
		"total":        total,
	})
}

type breakdownResponse struct {
	Network         domain.Network  `json:"network"`
	Principal       decimal.Decimal `json:"principal"`
	EstimatedReward decimal.Decimal `json:"estimated_reward"`
	Positions       int             `json:"positions"`
}

type summaryResponse struct {
	Available        decimal.Decimal     `json:"available"`
	LockedPrincipal  decimal.Decimal     `json:"locked_principal"`
	EstimatedRewards decimal.Decimal     `json:"estimated_rewards"`
	Positions        int                 `json:"positions"`
	ByNetwork        []breakdownResponse `json:"by_network"`
}

// GetSummary returns the aggregated portfolio totals for the dashboard.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Portfolio.GetSummary(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	byNetwork := make([]breakdownResponse, 0, len(summary.ByNetwork))
	for _, b := range summary.ByNetwork {
		byNetwork = append(byNetwork, breakdownResponse{
			Network:         b.Network,
			Principal:       b.Principal,
			EstimatedReward: b.EstimatedReward,
			Positions:       b.Positions,
		})
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Available:        summary.Available,
		LockedPrincipal:  summary.LockedPrincipal,
		EstimatedRewards: summary.EstimatedRewards,
		Positions:        summary.Positions,
		ByNetwork:        byNetwork,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
