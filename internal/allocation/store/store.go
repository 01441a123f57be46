package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/allocation"
	"github.com/MrJamesThe3rd/sanctuary/internal/database"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
	paymentstore "github.com/MrJamesThe3rd/sanctuary/internal/payment/store"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
	walletstore "github.com/MrJamesThe3rd/sanctuary/internal/wallet/store"
)

type Store struct {
	db          *sql.DB
	lockTimeout time.Duration
}

func New(db *sql.DB, lockTimeout time.Duration) *Store {
	return &Store{db: db, lockTimeout: lockTimeout}
}

type allocationTx struct {
	tx       *sql.Tx
	wallets  *walletstore.Store
	payments *paymentstore.Store
}

func (s *Store) BeginAllocation(ctx context.Context) (allocation.Tx, error) {
	tx, err := database.BeginTx(ctx, s.db, s.lockTimeout)
	if err != nil {
		return nil, err
	}

	return &allocationTx{tx: tx, wallets: walletstore.New(tx), payments: paymentstore.New(tx)}, nil
}

func (atx *allocationTx) Commit() error {
	return database.TranslateError(atx.tx.Commit())
}

func (atx *allocationTx) Rollback() error { return atx.tx.Rollback() }

func (atx *allocationTx) RecordPayment(ctx context.Context, p *payment.Payment) error {
	return atx.payments.Create(ctx, p)
}

func (atx *allocationTx) HasAllocations(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	var exists bool

	err := atx.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM allocations WHERE payment_id = $1)`, paymentID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking allocations: %w", database.TranslateError(err))
	}

	return exists, nil
}

func (atx *allocationTx) GetOrCreateWallet(ctx context.Context, key wallet.Key, specialOfferingID *uuid.UUID) (*wallet.Wallet, error) {
	return atx.wallets.GetOrCreate(ctx, key, specialOfferingID)
}

func (atx *allocationTx) CreditWallet(ctx context.Context, walletID uuid.UUID, amount int64) (*wallet.Wallet, error) {
	return atx.wallets.Credit(ctx, walletID, amount)
}

func (atx *allocationTx) RecordAllocation(ctx context.Context, paymentID, walletID uuid.UUID, amount int64) error {
	query := `INSERT INTO allocations (payment_id, wallet_id, amount) VALUES ($1, $2, $3)`

	if _, err := atx.tx.ExecContext(ctx, query, paymentID, walletID, amount); err != nil {
		return fmt.Errorf("inserting allocation: %w", database.TranslateError(err))
	}

	return nil
}
