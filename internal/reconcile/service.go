// Package reconcile rebuilds wallet totals from the allocation entries and completed
// withdrawals that produced them.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/audit"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=reconcile
type Repository interface {
	BeginReconciliation(ctx context.Context) (Tx, error)
}

// Tx rebuilds totals while holding every wallet row, so no credit or debit can land
// between the sums and the writes.
type Tx interface {
	// LockWallets locks all wallet rows in key order.
	LockWallets(ctx context.Context) ([]*wallet.Wallet, error)
	// AllocatedDeposits sums the allocation entries of COMPLETED non-expense payments per wallet id.
	AllocatedDeposits(ctx context.Context) (map[uuid.UUID]int64, error)
	// CompletedWithdrawals sums COMPLETED withdrawal amounts per wallet id.
	CompletedWithdrawals(ctx context.Context) (map[uuid.UUID]int64, error)
	// UnallocatedPayments lists COMPLETED non-expense payments without allocation entries.
	UnallocatedPayments(ctx context.Context) ([]uuid.UUID, error)
	// ResetTotals overwrites one wallet's totals. A failure leaves the transaction usable.
	ResetTotals(ctx context.Context, id uuid.UUID, deposits, withdrawals int64) (*wallet.Wallet, error)
	Commit() error
	Rollback() error
}

type SummaryInvalidator interface {
	InvalidateSummary(ctx context.Context)
}

// WalletResult reports what reconciliation did to one wallet.
type WalletResult struct {
	WalletID      uuid.UUID
	Key           wallet.Key
	Wallet        string
	BalanceBefore int64
	Balance       int64
	Deposits      int64
	Withdrawals   int64
	Changed       bool
	Error         string
}

// Report lists every wallet in key order. Unallocated holds completed payments that never
// reached a wallet; they contribute nothing until allocated.
type Report struct {
	Wallets     []WalletResult
	Unallocated []uuid.UUID
	Updated     int
	Failed      int
}

type Service struct {
	repo      Repository
	publisher audit.Publisher
	logger    *slog.Logger
	summary   SummaryInvalidator
}

type Option func(*Service)

func WithPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithSummaryInvalidator(i SummaryInvalidator) Option {
	return func(s *Service) { s.summary = i }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: audit.Discard,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RecalculateAll recomputes every wallet's deposits, withdrawals and balance from the
// allocation and withdrawal history, in one transaction with all wallet rows locked.
// Running it again without new activity changes nothing. A wallet that cannot be updated
// is reported and skipped; the rest still reconcile.
func (s *Service) RecalculateAll(ctx context.Context) (*Report, error) {
	tx, err := s.repo.BeginReconciliation(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reconciliation: %w", err)
	}
	defer tx.Rollback()

	wallets, err := tx.LockWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("locking wallets: %w", err)
	}

	deposits, err := tx.AllocatedDeposits(ctx)
	if err != nil {
		return nil, fmt.Errorf("summing deposits: %w", err)
	}

	withdrawals, err := tx.CompletedWithdrawals(ctx)
	if err != nil {
		return nil, fmt.Errorf("summing withdrawals: %w", err)
	}

	unallocated, err := tx.UnallocatedPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing unallocated payments: %w", err)
	}

	report := &Report{Unallocated: unallocated}

	slices.SortFunc(wallets, func(a, b *wallet.Wallet) int { return a.Key.Compare(b.Key) })

	for _, w := range wallets {
		report.Wallets = append(report.Wallets, s.reset(ctx, tx, w, deposits[w.ID], withdrawals[w.ID]))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reconciliation: %w", err)
	}

	for _, r := range report.Wallets {
		switch {
		case r.Error != "":
			report.Failed++
		case r.Changed:
			report.Updated++
		}
	}

	if s.summary != nil {
		s.summary.InvalidateSummary(ctx)
	}

	if len(unallocated) > 0 {
		s.logger.WarnContext(ctx, "completed payments without allocations", "count", len(unallocated))
	}

	s.logger.InfoContext(ctx, "reconciliation completed",
		"wallets", len(report.Wallets), "updated", report.Updated, "failed", report.Failed)

	audit.Emit(ctx, s.publisher, s.logger, audit.Event{
		Type:    audit.TypeReconciliationCompleted,
		Subject: "wallets",
		Attributes: map[string]string{
			"updated":     fmt.Sprint(report.Updated),
			"failed":      fmt.Sprint(report.Failed),
			"unallocated": fmt.Sprint(len(report.Unallocated)),
		},
	})

	return report, nil
}

func (s *Service) reset(ctx context.Context, tx Tx, w *wallet.Wallet, deposits, withdrawals int64) WalletResult {
	result := WalletResult{
		WalletID:      w.ID,
		Key:           w.Key,
		Wallet:        w.Key.String(),
		BalanceBefore: w.Balance,
		Balance:       w.Balance,
		Deposits:      deposits,
		Withdrawals:   withdrawals,
	}

	if w.TotalDeposits == deposits && w.TotalWithdrawals == withdrawals && w.Balance == deposits-withdrawals {
		return result
	}

	updated, err := tx.ResetTotals(ctx, w.ID, deposits, withdrawals)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to reconcile wallet", "wallet", result.Wallet, "error", err)
		result.Error = err.Error()

		return result
	}

	result.Balance = updated.Balance
	result.Changed = true

	return result
}
