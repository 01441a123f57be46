package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// ErrNotCached is returned by a SummaryCache on a miss.
var ErrNotCached = errors.New("summary not cached")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=wallet
type Repository interface {
	GetOrCreate(ctx context.Context, key Key, specialOfferingID *uuid.UUID) (*Wallet, error)
	Get(ctx context.Context, id uuid.UUID) (*Wallet, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Wallet, error)
	List(ctx context.Context, activeOnly bool) ([]*Wallet, error)
	Summary(ctx context.Context) (*Summary, error)
}

// SummaryCache stores the summary under a generation that every DeleteSummary advances,
// so a summary computed before an invalidation is never stored after it.
type SummaryCache interface {
	// GetSummary returns the cached summary, or ErrNotCached with the generation to pass
	// to SetSummary.
	GetSummary(ctx context.Context) (*Summary, int64, error)
	// SetSummary stores summary only while the generation is still gen.
	SetSummary(ctx context.Context, summary *Summary, gen int64) error
	DeleteSummary(ctx context.Context) error
}

type nopCache struct{}

func (nopCache) GetSummary(context.Context) (*Summary, int64, error) { return nil, 0, ErrNotCached }
func (nopCache) SetSummary(context.Context, *Summary, int64) error   { return nil }
func (nopCache) DeleteSummary(context.Context) error                 { return nil }

type Service struct {
	repo   Repository
	cache  SummaryCache
	logger *slog.Logger
}

// NewService builds a wallet service. A nil cache disables summary caching.
func NewService(repo Repository, cache SummaryCache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = nopCache{}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{repo: repo, cache: cache, logger: logger}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Wallet, error) {
	return s.repo.Get(ctx, id)
}

// BootstrapDefaults creates the default wallets that do not exist yet. Safe to repeat.
func (s *Service) BootstrapDefaults(ctx context.Context) ([]*Wallet, error) {
	keys := DefaultKeys()
	wallets := make([]*Wallet, 0, len(keys))

	for _, key := range keys {
		w, err := s.repo.GetOrCreate(ctx, key, nil)
		if err != nil {
			return nil, fmt.Errorf("bootstrapping wallet %s: %w", key, err)
		}

		wallets = append(wallets, w)
	}

	s.InvalidateSummary(ctx)
	s.logger.InfoContext(ctx, "default wallets ensured", "count", len(wallets))

	return wallets, nil
}

// Summary returns totals across active wallets, served from the cache when possible.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	cached, gen, err := s.cache.GetSummary(ctx)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, ErrNotCached) {
		s.logger.WarnContext(ctx, "reading cached wallet summary", "error", err)
	}

	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarising wallets: %w", err)
	}

	if err := s.cache.SetSummary(ctx, summary, gen); err != nil {
		s.logger.WarnContext(ctx, "caching wallet summary", "error", err)
	}

	return summary, nil
}

// Grouped returns active wallets grouped by type, with per-group balances and the overall summary.
func (s *Service) Grouped(ctx context.Context) (*Overview, error) {
	wallets, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}

	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(wallets, func(a, b *Wallet) int { return a.Key.Compare(b.Key) })

	overview := &Overview{Summary: *summary}

	for _, w := range wallets {
		n := len(overview.Groups)
		if n == 0 || overview.Groups[n-1].Type != w.Key.Type {
			overview.Groups = append(overview.Groups, Group{Type: w.Key.Type})
			n++
		}

		g := &overview.Groups[n-1]
		g.Wallets = append(g.Wallets, w)
		g.Balance += w.Balance
	}

	return overview, nil
}

func (s *Service) Activate(ctx context.Context, id uuid.UUID) (*Wallet, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate stops withdrawals from a wallet. Credits still land on it.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*Wallet, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) setActive(ctx context.Context, id uuid.UUID, active bool) (*Wallet, error) {
	w, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, fmt.Errorf("setting wallet %s active=%t: %w", id, active, err)
	}

	s.InvalidateSummary(ctx)

	return w, nil
}

// InvalidateSummary drops the cached summary. Call it after any committed balance change.
func (s *Service) InvalidateSummary(ctx context.Context) {
	if err := s.cache.DeleteSummary(ctx); err != nil {
		s.logger.WarnContext(ctx, "invalidating wallet summary", "error", err)
	}
}
