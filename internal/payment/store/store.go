package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/database"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
)

// Store persists payments. It runs against a *sql.DB or, for expense mirrors written
// alongside a withdrawal, the caller's *sql.Tx.
type Store struct {
	q database.Querier
}

func New(q database.Querier) *Store {
	return &Store{q: q}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `
	id, amount, payment_type, status, is_expense, tithe_distribution,
	special_offering_id, special_offering_code, reference, description, paid_at, created_at
`

// Expected column order: selectColumns.
func scanPayment(s scanner) (*payment.Payment, error) {
	var p payment.Payment

	var typeStr, statusStr string

	var distribution []byte

	var offeringID *uuid.UUID

	var offeringCode, reference sql.NullString

	if err := s.Scan(
		&p.ID, &p.Amount, &typeStr, &statusStr, &p.IsExpense, &distribution,
		&offeringID, &offeringCode, &reference, &p.Description, &p.PaidAt, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Type = payment.Type(typeStr)
	p.Status = payment.Status(statusStr)
	p.Reference = reference.String

	if len(distribution) > 0 {
		if err := json.Unmarshal(distribution, &p.TitheDistribution); err != nil {
			return nil, fmt.Errorf("decoding tithe distribution: %w", err)
		}
	}

	if offeringCode.Valid {
		p.SpecialOffering = &payment.SpecialOffering{Code: offeringCode.String}
		if offeringID != nil {
			p.SpecialOffering.ID = *offeringID
		}
	}

	return &p, nil
}

func (s *Store) Create(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (
			amount, payment_type, status, is_expense, tithe_distribution,
			special_offering_id, special_offering_code, reference, description, paid_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, NOW()), NOW())
		RETURNING id, paid_at, created_at
	`

	var distribution any

	if len(p.TitheDistribution) > 0 {
		raw, err := json.Marshal(p.TitheDistribution)
		if err != nil {
			return fmt.Errorf("encoding tithe distribution: %w", err)
		}

		distribution = string(raw)
	}

	var offeringID *uuid.UUID

	var offeringCode sql.NullString

	if p.SpecialOffering != nil {
		offeringCode = sql.NullString{String: p.SpecialOffering.Code, Valid: true}
		if p.SpecialOffering.ID != uuid.Nil {
			offeringID = &p.SpecialOffering.ID
		}
	}

	var paidAt sql.NullTime
	if !p.PaidAt.IsZero() {
		paidAt = sql.NullTime{Time: p.PaidAt, Valid: true}
	}

	err := s.q.QueryRowContext(ctx, query,
		p.Amount,
		p.Type,
		p.Status,
		p.IsExpense,
		distribution,
		offeringID,
		offeringCode,
		sql.NullString{String: p.Reference, Valid: p.Reference != ""},
		p.Description,
		paidAt,
	).Scan(&p.ID, &p.PaidAt, &p.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", payment.ErrDuplicateReference, p.Reference)
		}

		return fmt.Errorf("creating payment: %w", database.TranslateError(err))
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT ` + selectColumns + ` FROM payments WHERE id = $1`

	p, err := scanPayment(s.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) GetMany(ctx context.Context, ids []uuid.UUID) ([]*payment.Payment, error) {
	params := make([]string, len(ids))
	for i, id := range ids {
		params[i] = id.String()
	}

	query := `SELECT ` + selectColumns + ` FROM payments WHERE id = ANY($1::uuid[])`

	return s.list(ctx, query, params)
}

// ListUnallocated returns completed, non-expense payments that have no allocation
// entries yet, oldest first.
func (s *Store) ListUnallocated(ctx context.Context) ([]*payment.Payment, error) {
	query := `SELECT ` + selectColumns + `
		FROM payments p
		WHERE p.status = 'COMPLETED' AND NOT p.is_expense
			AND NOT EXISTS (SELECT 1 FROM allocations a WHERE a.payment_id = p.id)
		ORDER BY p.created_at ASC, p.id ASC`

	return s.list(ctx, query)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*payment.Payment, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", database.TranslateError(err))
	}
	defer rows.Close()

	var payments []*payment.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}
