package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Get(ctx context.Context, id uuid.UUID) (*Payment, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*Payment, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record normalises, validates and stores a payment.
func (s *Service) Record(ctx context.Context, p *Payment) error {
	Normalize(p)

	if err := Validate(p); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("recording payment: %w", err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.repo.Get(ctx, id)
}

// GetMany returns the payments found for ids, in the order given. Unknown ids are skipped.
func (s *Service) GetMany(ctx context.Context, ids []uuid.UUID) ([]*Payment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*Payment, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	ordered := make([]*Payment, 0, len(found))

	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
			delete(byID, id)
		}
	}

	return ordered, nil
}
