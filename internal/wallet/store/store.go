package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/database"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
)

// Store persists wallets. Every balance change is a single conditional UPDATE, so callers
// may run it on a *sql.DB or inside their own *sql.Tx.
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
	id, wallet_type, sub_type, balance, total_deposits, total_withdrawals,
	is_active, special_offering_id, last_updated, created_at
`

// Expected column order: selectColumns.
func scanWallet(s scanner) (*wallet.Wallet, error) {
	var w wallet.Wallet

	var typeStr string

	var subType sql.NullString

	if err := s.Scan(
		&w.ID, &typeStr, &subType, &w.Balance, &w.TotalDeposits, &w.TotalWithdrawals,
		&w.IsActive, &w.SpecialOfferingID, &w.LastUpdated, &w.CreatedAt,
	); err != nil {
		return nil, err
	}

	w.Key = wallet.Key{Type: wallet.Type(typeStr), SubType: subType.String}

	return &w, nil
}

func subTypeParam(k wallet.Key) sql.NullString {
	return sql.NullString{String: k.SubType, Valid: k.SubType != ""}
}

// GetOrCreate upserts on (wallet_type, sub_type). The first special-offering id to reach a
// wallet sticks.
func (s *Store) GetOrCreate(ctx context.Context, key wallet.Key, specialOfferingID *uuid.UUID) (*wallet.Wallet, error) {
	query := `
		INSERT INTO wallets (wallet_type, sub_type, special_offering_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (wallet_type, (COALESCE(sub_type, ''))) DO UPDATE
			SET special_offering_id = COALESCE(wallets.special_offering_id, EXCLUDED.special_offering_id)
		RETURNING ` + selectColumns

	w, err := scanWallet(s.q.QueryRowContext(ctx, query, key.Type, subTypeParam(key), specialOfferingID))
	if err != nil {
		return nil, fmt.Errorf("upserting wallet: %w", database.TranslateError(err))
	}

	return w, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	query := `SELECT ` + selectColumns + ` FROM wallets WHERE id = $1`

	w, err := scanWallet(s.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting wallet: %w", database.TranslateError(err))
	}

	return w, nil
}

// Credit adds amount to any wallet, active or not.
func (s *Store) Credit(ctx context.Context, id uuid.UUID, amount int64) (*wallet.Wallet, error) {
	if amount <= 0 {
		return nil, ledger.ErrInvalidAmount
	}

	query := `
		UPDATE wallets
		SET balance = balance + $2, total_deposits = total_deposits + $2, last_updated = NOW()
		WHERE id = $1
		RETURNING ` + selectColumns

	w, err := scanWallet(s.q.QueryRowContext(ctx, query, id, amount))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("crediting wallet: %w", database.TranslateError(err))
	}

	return w, nil
}

// Debit subtracts amount only while the wallet is active and covers it. When no row
// matches, the wallet is re-read to say why.
func (s *Store) Debit(ctx context.Context, id uuid.UUID, amount int64) (*wallet.Wallet, error) {
	if amount <= 0 {
		return nil, ledger.ErrInvalidAmount
	}

	query := `
		UPDATE wallets
		SET balance = balance - $2, total_withdrawals = total_withdrawals + $2, last_updated = NOW()
		WHERE id = $1 AND is_active AND balance >= $2
		RETURNING ` + selectColumns

	w, err := scanWallet(s.q.QueryRowContext(ctx, query, id, amount))
	if err == nil {
		return w, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("debiting wallet: %w", database.TranslateError(err))
	}

	var active bool

	var balance int64

	err = s.q.QueryRowContext(ctx, `SELECT is_active, balance FROM wallets WHERE id = $1`, id).Scan(&active, &balance)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ledger.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("classifying failed debit: %w", database.TranslateError(err))
	case !active:
		return nil, ledger.ErrWalletInactive
	default:
		return nil, fmt.Errorf("%w: balance %s, requested %s",
			ledger.ErrInsufficientFunds, ledger.FormatAmount(balance), ledger.FormatAmount(amount))
	}
}

func (s *Store) SetActive(ctx context.Context, id uuid.UUID, active bool) (*wallet.Wallet, error) {
	query := `
		UPDATE wallets SET is_active = $2, last_updated = NOW()
		WHERE id = $1
		RETURNING ` + selectColumns

	w, err := scanWallet(s.q.QueryRowContext(ctx, query, id, active))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("updating wallet: %w", database.TranslateError(err))
	}

	return w, nil
}

func (s *Store) List(ctx context.Context, activeOnly bool) ([]*wallet.Wallet, error) {
	query := `SELECT ` + selectColumns + ` FROM wallets`
	if activeOnly {
		query += ` WHERE is_active`
	}

	query += ` ORDER BY wallet_type ASC, COALESCE(sub_type, '') ASC`

	return s.list(ctx, query)
}

// LockAll locks every wallet row FOR UPDATE. Rows are taken in byte order of
// (wallet_type, sub_type), the same order wallet.Key.Compare gives allocations.
func (s *Store) LockAll(ctx context.Context) ([]*wallet.Wallet, error) {
	query := `SELECT ` + selectColumns + ` FROM wallets
		ORDER BY wallet_type COLLATE "C" ASC, COALESCE(sub_type, '') COLLATE "C" ASC
		FOR UPDATE`

	return s.list(ctx, query)
}

func (s *Store) list(ctx context.Context, query string) ([]*wallet.Wallet, error) {
	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", database.TranslateError(err))
	}
	defer rows.Close()

	var wallets []*wallet.Wallet

	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning wallet: %w", err)
		}

		wallets = append(wallets, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wallet rows: %w", database.TranslateError(err))
	}

	return wallets, nil
}

func (s *Store) Summary(ctx context.Context) (*wallet.Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(balance), 0)::bigint,
			COALESCE(SUM(total_deposits), 0)::bigint,
			COALESCE(SUM(total_withdrawals), 0)::bigint,
			COUNT(*)
		FROM wallets
		WHERE is_active`

	var sum wallet.Summary
	if err := s.q.QueryRowContext(ctx, query).Scan(
		&sum.TotalBalance, &sum.TotalDeposits, &sum.TotalWithdrawals, &sum.ActiveWallets,
	); err != nil {
		return nil, fmt.Errorf("summarising wallets: %w", database.TranslateError(err))
	}

	return &sum, nil
}

// ResetTotals overwrites a wallet's running totals in one statement, keeping
// balance = deposits - withdrawals.
func (s *Store) ResetTotals(ctx context.Context, id uuid.UUID, deposits, withdrawals int64) (*wallet.Wallet, error) {
	query := `
		UPDATE wallets
		SET total_deposits = $2, total_withdrawals = $3, balance = $2 - $3, last_updated = NOW()
		WHERE id = $1
		RETURNING ` + selectColumns

	w, err := scanWallet(s.q.QueryRowContext(ctx, query, id, deposits, withdrawals))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("resetting wallet totals: %w", database.TranslateError(err))
	}

	return w, nil
}
