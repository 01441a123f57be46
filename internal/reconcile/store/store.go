package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/database"
	paymentstore "github.com/MrJamesThe3rd/sanctuary/internal/payment/store"
	"github.com/MrJamesThe3rd/sanctuary/internal/reconcile"
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

type reconcileTx struct {
	tx       *sql.Tx
	wallets  *walletstore.Store
	payments *paymentstore.Store
}

func (s *Store) BeginReconciliation(ctx context.Context) (reconcile.Tx, error) {
	tx, err := database.BeginTx(ctx, s.db, s.lockTimeout)
	if err != nil {
		return nil, err
	}

	return &reconcileTx{tx: tx, wallets: walletstore.New(tx), payments: paymentstore.New(tx)}, nil
}

func (rtx *reconcileTx) Commit() error {
	return database.TranslateError(rtx.tx.Commit())
}

func (rtx *reconcileTx) Rollback() error { return rtx.tx.Rollback() }

func (rtx *reconcileTx) LockWallets(ctx context.Context) ([]*wallet.Wallet, error) {
	return rtx.wallets.LockAll(ctx)
}

func (rtx *reconcileTx) AllocatedDeposits(ctx context.Context) (map[uuid.UUID]int64, error) {
	query := `
		SELECT a.wallet_id, SUM(a.amount)::bigint
		FROM allocations a
		JOIN payments p ON p.id = a.payment_id
		WHERE p.status = 'COMPLETED' AND NOT p.is_expense
		GROUP BY a.wallet_id`

	return rtx.sumByWallet(ctx, query)
}

func (rtx *reconcileTx) CompletedWithdrawals(ctx context.Context) (map[uuid.UUID]int64, error) {
	query := `
		SELECT wallet_id, SUM(amount)::bigint
		FROM withdrawal_requests
		WHERE status = 'COMPLETED'
		GROUP BY wallet_id`

	return rtx.sumByWallet(ctx, query)
}

func (rtx *reconcileTx) UnallocatedPayments(ctx context.Context) ([]uuid.UUID, error) {
	payments, err := rtx.payments.ListUnallocated(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(payments))
	for i, p := range payments {
		ids[i] = p.ID
	}

	return ids, nil
}

// ResetTotals runs under a savepoint so a rejected wallet does not abort the other resets.
func (rtx *reconcileTx) ResetTotals(ctx context.Context, id uuid.UUID, deposits, withdrawals int64) (*wallet.Wallet, error) {
	if _, err := rtx.tx.ExecContext(ctx, `SAVEPOINT reset_wallet`); err != nil {
		return nil, fmt.Errorf("savepoint: %w", database.TranslateError(err))
	}

	w, err := rtx.wallets.ResetTotals(ctx, id, deposits, withdrawals)
	if err != nil {
		if _, rbErr := rtx.tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT reset_wallet`); rbErr != nil {
			return nil, fmt.Errorf("%w (rollback to savepoint: %v)", err, rbErr)
		}

		return nil, err
	}

	if _, err := rtx.tx.ExecContext(ctx, `RELEASE SAVEPOINT reset_wallet`); err != nil {
		return nil, fmt.Errorf("release savepoint: %w", database.TranslateError(err))
	}

	return w, nil
}

func (rtx *reconcileTx) sumByWallet(ctx context.Context, query string) (map[uuid.UUID]int64, error) {
	rows, err := rtx.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summing per wallet: %w", database.TranslateError(err))
	}
	defer rows.Close()

	totals := make(map[uuid.UUID]int64)

	for rows.Next() {
		var (
			id    uuid.UUID
			total int64
		)

		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("scanning wallet total: %w", err)
		}

		totals[id] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wallet totals: %w", database.TranslateError(err))
	}

	return totals, nil
}
