package allocation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/audit"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=allocation
type Repository interface {
	BeginAllocation(ctx context.Context) (Tx, error)
}

// Tx applies one payment's credits atomically.
type Tx interface {
	RecordPayment(ctx context.Context, p *payment.Payment) error
	HasAllocations(ctx context.Context, paymentID uuid.UUID) (bool, error)
	GetOrCreateWallet(ctx context.Context, key wallet.Key, specialOfferingID *uuid.UUID) (*wallet.Wallet, error)
	CreditWallet(ctx context.Context, walletID uuid.UUID, amount int64) (*wallet.Wallet, error)
	RecordAllocation(ctx context.Context, paymentID, walletID uuid.UUID, amount int64) error
	Commit() error
	Rollback() error
}

type PaymentSource interface {
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*payment.Payment, error)
}

type SummaryInvalidator interface {
	InvalidateSummary(ctx context.Context)
}

type Applied struct {
	Key      wallet.Key
	WalletID uuid.UUID
	Amount   int64
}

type ItemResult struct {
	PaymentID uuid.UUID
	Applied   []Applied
	Err       error
}

type BatchResult struct {
	Items     []ItemResult
	Succeeded int
	Failed    int
}

type Service struct {
	repo             Repository
	payments         PaymentSource
	wallets          SummaryInvalidator
	publisher        audit.Publisher
	logger           *slog.Logger
	rejectDuplicates bool
}

type Option func(*Service)

func WithPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithSummaryInvalidator(w SummaryInvalidator) Option {
	return func(s *Service) { s.wallets = w }
}

// WithRejectDuplicates makes Allocate refuse a payment that already has allocation entries.
func WithRejectDuplicates(reject bool) Option {
	return func(s *Service) { s.rejectDuplicates = reject }
}

func NewService(repo Repository, payments PaymentSource, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		payments:  payments,
		publisher: audit.Discard,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Allocate credits one payment to its wallets in a single transaction. Ineligible payments
// (not completed, or expenses) are a no-op and return an empty result.
func (s *Service) Allocate(ctx context.Context, p *payment.Payment) ([]Applied, error) {
	payment.Normalize(p)

	if err := payment.Validate(p); err != nil {
		return nil, err
	}

	entries := Plan(p)
	if len(entries) == 0 {
		return nil, nil
	}

	applied, err := s.apply(ctx, p, entries, false)
	if err != nil {
		return nil, err
	}

	s.credited(ctx, p, applied)

	return applied, nil
}

// RecordAndAllocate stores a new payment and credits its wallets in the same transaction.
// An ineligible payment is stored with no credits. p.ID is set from the stored row.
func (s *Service) RecordAndAllocate(ctx context.Context, p *payment.Payment) ([]Applied, error) {
	payment.Normalize(p)

	if err := payment.Validate(p); err != nil {
		return nil, err
	}

	applied, err := s.apply(ctx, p, Plan(p), true)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "payment recorded", "payment_id", p.ID, "credits", len(applied))

	if len(applied) > 0 {
		s.credited(ctx, p, applied)
	}

	return applied, nil
}

func (s *Service) credited(ctx context.Context, p *payment.Payment, applied []Applied) {
	if s.wallets != nil {
		s.wallets.InvalidateSummary(ctx)
	}

	for _, a := range applied {
		audit.Emit(ctx, s.publisher, s.logger, audit.Event{
			Type:       audit.TypeWalletCredited,
			Subject:    a.Key.String(),
			Amount:     a.Amount,
			Attributes: map[string]string{"payment_id": p.ID.String(), "wallet_id": a.WalletID.String()},
		})
	}
}

func (s *Service) apply(ctx context.Context, p *payment.Payment, entries []Entry, record bool) ([]Applied, error) {
	tx, err := s.repo.BeginAllocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin allocation: %w", err)
	}
	defer tx.Rollback()

	if record {
		if err := tx.RecordPayment(ctx, p); err != nil {
			return nil, fmt.Errorf("recording payment: %w", err)
		}
	} else if s.rejectDuplicates {
		seen, err := tx.HasAllocations(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("checking previous allocations: %w", err)
		}

		if seen {
			return nil, fmt.Errorf("%w: %s", ledger.ErrAlreadyAllocated, p.ID)
		}
	}

	applied := make([]Applied, 0, len(entries))

	for _, e := range entries {
		w, err := tx.GetOrCreateWallet(ctx, e.Key, e.SpecialOfferingID)
		if err != nil {
			return nil, fmt.Errorf("wallet %s: %w", e.Key, err)
		}

		if _, err := tx.CreditWallet(ctx, w.ID, e.Amount); err != nil {
			return nil, fmt.Errorf("crediting %s: %w", e.Key, err)
		}

		if err := tx.RecordAllocation(ctx, p.ID, w.ID, e.Amount); err != nil {
			return nil, fmt.Errorf("recording allocation to %s: %w", e.Key, err)
		}

		applied = append(applied, Applied{Key: e.Key, WalletID: w.ID, Amount: e.Amount})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit allocation: %w", err)
	}

	return applied, nil
}

// AllocateBatch allocates each payment independently. One payment failing does not stop
// the others.
func (s *Service) AllocateBatch(ctx context.Context, payments []*payment.Payment) *BatchResult {
	result := &BatchResult{Items: make([]ItemResult, 0, len(payments))}

	for _, p := range payments {
		applied, err := s.Allocate(ctx, p)

		item := ItemResult{PaymentID: p.ID, Applied: applied, Err: err}
		if err != nil {
			result.Failed++

			s.logger.WarnContext(ctx, "payment allocation failed", "payment_id", p.ID, "error", err)
		} else {
			result.Succeeded++
		}

		result.Items = append(result.Items, item)
	}

	return result
}

// AllocatePayments loads the payments by id and allocates them as a batch. Unknown ids are
// reported as not found.
func (s *Service) AllocatePayments(ctx context.Context, ids []uuid.UUID) (*BatchResult, error) {
	payments, err := s.payments.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading payments: %w", err)
	}

	found := make(map[uuid.UUID]bool, len(payments))
	for _, p := range payments {
		found[p.ID] = true
	}

	result := s.AllocateBatch(ctx, payments)

	for _, id := range ids {
		if !found[id] {
			result.Items = append(result.Items, ItemResult{PaymentID: id, Err: ledger.ErrNotFound})
			result.Failed++
		}
	}

	return result, nil
}
