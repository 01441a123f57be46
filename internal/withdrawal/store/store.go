package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/database"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
	paymentstore "github.com/MrJamesThe3rd/sanctuary/internal/payment/store"
	walletstore "github.com/MrJamesThe3rd/sanctuary/internal/wallet/store"
	"github.com/MrJamesThe3rd/sanctuary/internal/withdrawal"
)

type Store struct {
	db          *sql.DB
	lockTimeout time.Duration
}

func New(db *sql.DB, lockTimeout time.Duration) *Store {
	return &Store{db: db, lockTimeout: lockTimeout}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectRequestColumns = `
	id, reference, wallet_id, amount, purpose, description, requested_by, method,
	destination_account, destination_phone, required_approvals, current_approvals, status,
	cancel_reason, processed_at, transfer_transaction_id, transfer_confirmation, transfer_error,
	transfer_attempted_at, created_at, updated_at
`

// Expected column order: selectRequestColumns.
func scanRequest(s scanner) (*withdrawal.Request, error) {
	var r withdrawal.Request

	var method, status string

	if err := s.Scan(
		&r.ID, &r.Reference, &r.WalletID, &r.Amount, &r.Purpose, &r.Description, &r.RequestedBy, &method,
		&r.DestinationAccount, &r.DestinationPhone, &r.RequiredApprovals, &r.CurrentApprovals, &status,
		&r.CancelReason, &r.ProcessedAt, &r.Transfer.TransactionID, &r.Transfer.Confirmation, &r.Transfer.Error,
		&r.Transfer.AttemptedAt, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Method = withdrawal.Method(method)
	r.Status = withdrawal.Status(status)

	return &r, nil
}

const selectApprovalColumns = `id, request_id, approved_by, approved, method, comment, created_at`

func (s *Store) Create(ctx context.Context, req *withdrawal.Request) error {
	query := `
		INSERT INTO withdrawal_requests (
			reference, wallet_id, amount, purpose, description, requested_by, method,
			destination_account, destination_phone, required_approvals, current_approvals, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, 'PENDING')
		RETURNING id, current_approvals, status, created_at, updated_at
	`

	var status string

	err := s.db.QueryRowContext(ctx, query,
		req.Reference,
		req.WalletID,
		req.Amount,
		req.Purpose,
		req.Description,
		req.RequestedBy,
		req.Method,
		req.DestinationAccount,
		req.DestinationPhone,
		req.RequiredApprovals,
	).Scan(&req.ID, &req.CurrentApprovals, &status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", withdrawal.ErrDuplicateReference, req.Reference)
		}

		return fmt.Errorf("creating withdrawal request: %w", database.TranslateError(err))
	}

	req.Status = withdrawal.Status(status)

	return nil
}

func (s *Store) Get(ctx context.Context, reference string) (*withdrawal.Request, error) {
	return getRequest(ctx, s.db, reference, false)
}

func getRequest(ctx context.Context, q database.Querier, reference string, forUpdate bool) (*withdrawal.Request, error) {
	query := `SELECT ` + selectRequestColumns + ` FROM withdrawal_requests WHERE reference = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	r, err := scanRequest(q.QueryRowContext(ctx, query, reference))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting withdrawal request: %w", database.TranslateError(err))
	}

	return r, nil
}

func (s *Store) List(ctx context.Context, filter withdrawal.ListFilter) ([]*withdrawal.Request, int, error) {
	where := ` WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.RequestedBy != "" {
		where += fmt.Sprintf(" AND requested_by = $%d", argIdx)

		args = append(args, filter.RequestedBy)
		argIdx++
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM withdrawal_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting withdrawal requests: %w", database.TranslateError(err))
	}

	query := `SELECT ` + selectRequestColumns + ` FROM withdrawal_requests` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing withdrawal requests: %w", database.TranslateError(err))
	}
	defer rows.Close()

	var requests []*withdrawal.Request

	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning withdrawal request: %w", err)
		}

		requests = append(requests, r)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating withdrawal rows: %w", err)
	}

	return requests, total, nil
}

func (s *Store) Approvals(ctx context.Context, requestID uuid.UUID) ([]*withdrawal.Approval, error) {
	query := `SELECT ` + selectApprovalColumns + `
		FROM withdrawal_approvals
		WHERE request_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("listing approvals: %w", database.TranslateError(err))
	}
	defer rows.Close()

	var approvals []*withdrawal.Approval

	for rows.Next() {
		var a withdrawal.Approval
		if err := rows.Scan(&a.ID, &a.RequestID, &a.ApprovedBy, &a.Approved, &a.Method, &a.Comment, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning approval: %w", err)
		}

		approvals = append(approvals, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating approval rows: %w", err)
	}

	return approvals, nil
}

func (s *Store) RequestedSince(ctx context.Context, requestedBy string, since time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)::bigint
		FROM withdrawal_requests
		WHERE requested_by = $1 AND created_at >= $2 AND status <> 'CANCELLED'`

	var total int64
	if err := s.db.QueryRowContext(ctx, query, requestedBy, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing recent requests: %w", database.TranslateError(err))
	}

	return total, nil
}

func (s *Store) Cancel(ctx context.Context, reference, reason string) (*withdrawal.Request, error) {
	query := `
		UPDATE withdrawal_requests
		SET status = 'CANCELLED', cancel_reason = $2, updated_at = NOW()
		WHERE reference = $1 AND status = 'PENDING'
		RETURNING ` + selectRequestColumns

	r, err := scanRequest(s.db.QueryRowContext(ctx, query, reference, reason))
	if err == nil {
		return r, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cancelling withdrawal request: %w", database.TranslateError(err))
	}

	existing, err := s.Get(ctx, reference)
	if err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("%w: withdrawal %s is %s", ledger.ErrInvalidState, reference, existing.Status)
}

func (s *Store) RecordTransfer(ctx context.Context, id uuid.UUID, outcome withdrawal.TransferOutcome) error {
	query := `
		UPDATE withdrawal_requests
		SET transfer_transaction_id = $2, transfer_confirmation = $3, transfer_error = $4,
			transfer_attempted_at = $5, updated_at = NOW()
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query, id, outcome.TransactionID, outcome.Confirmation, outcome.Error, outcome.AttemptedAt)
	if err != nil {
		return fmt.Errorf("recording transfer outcome: %w", database.TranslateError(err))
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

type approvalTx struct {
	tx       *sql.Tx
	wallets  *walletstore.Store
	payments *paymentstore.Store
}

func (s *Store) BeginApproval(ctx context.Context) (withdrawal.ApprovalTx, error) {
	tx, err := database.BeginTx(ctx, s.db, s.lockTimeout)
	if err != nil {
		return nil, err
	}

	return &approvalTx{tx: tx, wallets: walletstore.New(tx), payments: paymentstore.New(tx)}, nil
}

func (atx *approvalTx) Commit() error {
	return database.TranslateError(atx.tx.Commit())
}

func (atx *approvalTx) Rollback() error { return atx.tx.Rollback() }

// LockRequest reads the request and holds its row lock until the transaction ends, so
// approvals of one request run one at a time.
func (atx *approvalTx) LockRequest(ctx context.Context, reference string) (*withdrawal.Request, error) {
	return getRequest(ctx, atx.tx, reference, true)
}

func (atx *approvalTx) HasApproved(ctx context.Context, requestID uuid.UUID, approverID string) (bool, error) {
	var exists bool

	err := atx.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM withdrawal_approvals WHERE request_id = $1 AND approved_by = $2)`,
		requestID, approverID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking approval: %w", database.TranslateError(err))
	}

	return exists, nil
}

func (atx *approvalTx) RecordApproval(ctx context.Context, a *withdrawal.Approval) error {
	query := `
		INSERT INTO withdrawal_approvals (request_id, approved_by, approved, method, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := atx.tx.QueryRowContext(ctx, query, a.RequestID, a.ApprovedBy, a.Approved, a.Method, a.Comment).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ledger.ErrDuplicateApproval
		}

		return fmt.Errorf("inserting approval: %w", database.TranslateError(err))
	}

	return nil
}

func (atx *approvalTx) IncrementApprovals(ctx context.Context, requestID uuid.UUID) (int, error) {
	query := `
		UPDATE withdrawal_requests
		SET current_approvals = current_approvals + 1, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING' AND current_approvals < required_approvals
		RETURNING current_approvals
	`

	var current int
	if err := atx.tx.QueryRowContext(ctx, query, requestID).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: approval count cannot be raised", ledger.ErrInvalidState)
		}

		return 0, fmt.Errorf("incrementing approvals: %w", database.TranslateError(err))
	}

	return current, nil
}

func (atx *approvalTx) DebitWallet(ctx context.Context, walletID uuid.UUID, amount int64) error {
	_, err := atx.wallets.Debit(ctx, walletID, amount)
	return err
}

func (atx *approvalTx) RecordExpense(ctx context.Context, p *payment.Payment) error {
	return atx.payments.Create(ctx, p)
}

func (atx *approvalTx) Complete(ctx context.Context, requestID uuid.UUID) (*withdrawal.Request, error) {
	query := `
		UPDATE withdrawal_requests
		SET status = 'COMPLETED', processed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
		RETURNING ` + selectRequestColumns

	r, err := scanRequest(atx.tx.QueryRowContext(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: request is no longer pending", ledger.ErrInvalidState)
		}

		return nil, fmt.Errorf("completing withdrawal request: %w", database.TranslateError(err))
	}

	return r, nil
}
