package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/adapter/bus"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/adapter/httpapi"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/adapter/repository/memory"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/adapter/repository/postgres"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/adapter/ws"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/auth"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/config"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/domain"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/notify"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/funding"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/gate"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/portfolio"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/settlement"
	"github.com/Gnericvibes/network-nexus-vaults-sub000/internal/usecase/staking"
)

func main() {
	configPath := flag.String("config", "", "path to TOML configuration file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// 1. In-memory engine state, seeded with the opening balance.
	openingBalance, err := decimal.NewFromString(cfg.Engine.OpeningBalance)
	if err != nil {
		return err
	}
	store := memory.NewStore(openingBalance)

	positionRepo := store.Positions()
	balanceRepo := store.Balance()

	// 2. Transaction log: durable when Postgres is configured, otherwise
	// kept in the in-memory store.
	var transactionRepo domain.TransactionRepository = store.Transactions()
	if cfg.Postgres.Enabled {
		db, err := postgres.NewDB(cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		transactionRepo = postgres.NewTransactionRepository(db)
		logger.Info("transaction log backed by postgres")
	}

	// 3. Notification sinks: WebSocket hub always, Redis bus when enabled.
	wsHub := ws.NewHub(logger)
	go func() {
		if err := wsHub.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("ws hub stopped", slog.String("error", err.Error()))
		}
	}()

	sinks := []domain.Notifier{wsHub}
	if cfg.Redis.Enabled {
		publisher, err := bus.NewPublisher(ctx, bus.Config{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			TLSEnabled: cfg.Redis.TLSEnabled,
		}, logger)
		if err != nil {
			return err
		}
		defer publisher.Close()
		sinks = append(sinks, publisher)
		logger.Info("redis event bus connected", slog.String("addr", cfg.Redis.Addr))
	}
	notifier := notify.NewFanout(sinks...)

	// 4. Usecase services, sharing one duplicate-submission gate and one
	// simulated settlement latency.
	jwt := auth.JWT{
		Secret:   []byte(cfg.Auth.JWTSecret),
		TokenTTL: cfg.TokenTTL(),
	}
	identity := auth.NewProvider()
	clock := domain.SystemClock{}
	g := gate.New()
	latency := settlementLatency(cfg.SettlementLatency())

	stakingService := staking.NewStakingService(positionRepo, balanceRepo, transactionRepo, identity, clock, g)
	stakingService.Notifier = notifier
	stakingService.Latency = latency

	settlementService := settlement.NewSettlementService(positionRepo, balanceRepo, transactionRepo, identity, clock, g)
	settlementService.Notifier = notifier
	settlementService.Latency = latency

	fundingService := funding.NewFundingService(balanceRepo, transactionRepo, identity, clock, g)
	fundingService.Notifier = notifier
	fundingService.Latency = latency

	portfolioService := portfolio.NewPortfolioService(positionRepo, balanceRepo)

	// 5. HTTP server.
	handler := &httpapi.Handler{
		Staking:      stakingService,
		Settlement:   settlementService,
		Funding:      fundingService,
		Portfolio:    portfolioService,
		Transactions: transactionRepo,
		Balance:      balanceRepo,
		JWT:          jwt,
		Logger:       logger,
	}

	server := httpapi.NewServer(httpapi.Config{
		Port:        cfg.Server.Port,
		CORSOrigins: cfg.Server.CORSOrigins,
		JWT:         jwt,
	}, handler, wsHub, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// settlementLatency builds the simulated settlement delay applied before any
// balance-moving operation commits. A zero delay returns nil so services skip
// the wait entirely.
func settlementLatency(d time.Duration) func(ctx context.Context) error {
	if d <= 0 {
		return nil
	}
	return func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
