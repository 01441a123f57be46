package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/sanctuary/internal/allocation"
	allocationStore "github.com/MrJamesThe3rd/sanctuary/internal/allocation/store"
	"github.com/MrJamesThe3rd/sanctuary/internal/audit"
	"github.com/MrJamesThe3rd/sanctuary/internal/config"
	"github.com/MrJamesThe3rd/sanctuary/internal/database"
	sanctuaryHttp "github.com/MrJamesThe3rd/sanctuary/internal/http"
	allocationHandler "github.com/MrJamesThe3rd/sanctuary/internal/http/allocations"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/identity"
	paymentHandler "github.com/MrJamesThe3rd/sanctuary/internal/http/payments"
	reconcileHandler "github.com/MrJamesThe3rd/sanctuary/internal/http/reconciliation"
	walletHandler "github.com/MrJamesThe3rd/sanctuary/internal/http/wallets"
	withdrawalHandler "github.com/MrJamesThe3rd/sanctuary/internal/http/withdrawals"
	"github.com/MrJamesThe3rd/sanctuary/internal/importer"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
	paymentStore "github.com/MrJamesThe3rd/sanctuary/internal/payment/store"
	"github.com/MrJamesThe3rd/sanctuary/internal/reconcile"
	reconcileStore "github.com/MrJamesThe3rd/sanctuary/internal/reconcile/store"
	"github.com/MrJamesThe3rd/sanctuary/internal/transfer"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
	walletCache "github.com/MrJamesThe3rd/sanctuary/internal/wallet/cache"
	walletStore "github.com/MrJamesThe3rd/sanctuary/internal/wallet/store"
	"github.com/MrJamesThe3rd/sanctuary/internal/withdrawal"
	withdrawalStore "github.com/MrJamesThe3rd/sanctuary/internal/withdrawal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.New(cfg.ConnectionString(), cfg.DB.MaxOpenConns)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	var summaryCache wallet.SummaryCache

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, wallet summary will not be cached", "error", err)
		} else {
			summaryCache = walletCache.NewRedisCache(rdb, cfg.Redis.SummaryTTL)
		}
	}

	var publisher audit.Publisher = audit.NewLogPublisher(logger)

	if len(cfg.Kafka.Brokers) > 0 {
		kp := audit.NewKafkaPublisher(audit.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger))
		defer kp.Close()

		publisher = kp
	}

	var transferer withdrawal.Transferer = transfer.Manual{}
	if cfg.Transfer.GatewayURL != "" {
		transferer = transfer.NewHTTPExecutor(cfg.Transfer.GatewayURL, cfg.Transfer.Token, cfg.Transfer.Timeout)
	}

	policy, err := withdrawalPolicy(cfg)
	if err != nil {
		return err
	}

	var (
		walletService     = wallet.NewService(walletStore.New(db), summaryCache, logger)
		paymentService    = payment.NewService(paymentStore.New(db))
		allocationService = allocation.NewService(
			allocationStore.New(db, cfg.DB.LockTimeout),
			paymentService,
			allocation.WithPublisher(publisher),
			allocation.WithLogger(logger),
			allocation.WithSummaryInvalidator(walletService),
			allocation.WithRejectDuplicates(cfg.Allocation.RejectDuplicates),
		)
		withdrawalService = withdrawal.NewService(
			withdrawalStore.New(db, cfg.DB.LockTimeout),
			walletService,
			transferer,
			policy,
			withdrawal.WithPublisher(publisher),
			withdrawal.WithLogger(logger),
		)
		reconcileService = reconcile.NewService(
			reconcileStore.New(db, cfg.DB.LockTimeout),
			reconcile.WithPublisher(publisher),
			reconcile.WithLogger(logger),
			reconcile.WithSummaryInvalidator(walletService),
		)
		importService = importer.NewService(paymentService, allocationService, logger)
	)

	if _, err := walletService.BootstrapDefaults(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap wallets: %w", err)
	}

	router := sanctuaryHttp.New(sanctuaryHttp.Handlers{
		Wallets:        walletHandler.NewHandler(walletService),
		Allocations:    allocationHandler.NewHandler(allocationService),
		Payments:       paymentHandler.NewHandler(importService),
		Withdrawals:    withdrawalHandler.NewHandler(withdrawalService),
		Reconciliation: reconcileHandler.NewHandler(reconcileService),
	}, identity.NewVerifier(cfg.Auth.JWTSecret), logger, cfg.Server.Timeout)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func withdrawalPolicy(cfg *config.Config) (withdrawal.Policy, error) {
	w := cfg.Withdrawal

	policy := withdrawal.Policy{
		RequiredApprovals: w.RequiredApprovals,
		MinAmount:         int64(w.MinAmount),
		Credentials:       w.Credentials,
		DailyLimit:        int64(w.DailyLimit),
	}

	if w.EnforceBusinessHours {
		loc, err := time.LoadLocation(w.Timezone)
		if err != nil {
			return withdrawal.Policy{}, fmt.Errorf("invalid WITHDRAWAL_TIMEZONE %q: %w", w.Timezone, err)
		}

		policy.BusinessHours = &withdrawal.BusinessHours{Start: w.BusinessHoursStart, End: w.BusinessHoursEnd, Location: loc}
	}

	return policy, nil
}
