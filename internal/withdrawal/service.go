package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/audit"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
	"github.com/MrJamesThe3rd/sanctuary/internal/transfer"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
)

// ErrDuplicateReference is returned by Repository.Create when the reference is taken.
var ErrDuplicateReference = errors.New("withdrawal reference already exists")

const (
	defaultPageSize   = 20
	maxPageSize       = 100
	referenceAttempts = 3
	transferTimeout   = 30 * time.Second
	dailyLimitWindow  = 24 * time.Hour
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=withdrawal
type Repository interface {
	Create(ctx context.Context, req *Request) error
	Get(ctx context.Context, reference string) (*Request, error)
	List(ctx context.Context, filter ListFilter) ([]*Request, int, error)
	Approvals(ctx context.Context, requestID uuid.UUID) ([]*Approval, error)
	// RequestedSince sums the non-cancelled amounts requestedBy asked for since the given time.
	RequestedSince(ctx context.Context, requestedBy string, since time.Time) (int64, error)
	// Cancel moves a PENDING request to CANCELLED. It returns ledger.ErrInvalidState when
	// the request exists in any other state.
	Cancel(ctx context.Context, reference, reason string) (*Request, error)
	RecordTransfer(ctx context.Context, id uuid.UUID, outcome TransferOutcome) error
	BeginApproval(ctx context.Context) (ApprovalTx, error)
}

// ApprovalTx runs one approval, and the processing it may trigger, atomically.
type ApprovalTx interface {
	LockRequest(ctx context.Context, reference string) (*Request, error)
	HasApproved(ctx context.Context, requestID uuid.UUID, approverID string) (bool, error)
	RecordApproval(ctx context.Context, approval *Approval) error
	// IncrementApprovals returns the new count. It never raises the count past the requirement.
	IncrementApprovals(ctx context.Context, requestID uuid.UUID) (int, error)
	DebitWallet(ctx context.Context, walletID uuid.UUID, amount int64) error
	RecordExpense(ctx context.Context, p *payment.Payment) error
	Complete(ctx context.Context, requestID uuid.UUID) (*Request, error)
	Commit() error
	Rollback() error
}

type Wallets interface {
	Get(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error)
	InvalidateSummary(ctx context.Context)
}

type Transferer interface {
	Transfer(ctx context.Context, req transfer.Request) (*transfer.Result, error)
}

type Service struct {
	repo       Repository
	wallets    Wallets
	transferer Transferer
	policy     Policy
	publisher  audit.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*Service)

func WithPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, wallets Wallets, transferer Transferer, policy Policy, opts ...Option) *Service {
	if policy.RequiredApprovals < 1 {
		policy.RequiredApprovals = 1
	}

	s := &Service{
		repo:       repo,
		wallets:    wallets,
		transferer: transferer,
		policy:     policy,
		publisher:  audit.Discard,
		logger:     slog.Default(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates and stores a new PENDING request. The wallet balance is only checked
// here, not reserved; the debit happens when the request reaches its approval quorum.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Request, error) {
	if err := validateParams(&params, s.policy.MinAmount); err != nil {
		return nil, err
	}

	now := s.now()

	if bh := s.policy.BusinessHours; bh != nil && !bh.Contains(now) {
		return nil, ledger.Invalid("created_at", "requests are accepted between %02d:00 and %02d:00", bh.Start, bh.End)
	}

	w, err := s.wallets.Get(ctx, params.WalletID)
	if err != nil {
		return nil, fmt.Errorf("loading wallet: %w", err)
	}

	if !w.IsActive {
		return nil, ledger.ErrWalletInactive
	}

	if params.Amount > w.Balance {
		return nil, &ledger.ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("exceeds wallet balance of %s", ledger.FormatAmount(w.Balance)),
			Err:    ledger.ErrInsufficientFunds,
		}
	}

	if s.policy.DailyLimit > 0 {
		requested, err := s.repo.RequestedSince(ctx, params.RequestedBy, now.Add(-dailyLimitWindow))
		if err != nil {
			return nil, fmt.Errorf("checking daily limit: %w", err)
		}

		if requested+params.Amount > s.policy.DailyLimit {
			return nil, ledger.Invalid("amount", "exceeds the daily limit of %s", ledger.FormatAmount(s.policy.DailyLimit))
		}
	}

	req := &Request{
		WalletID:           params.WalletID,
		Amount:             params.Amount,
		Purpose:            params.Purpose,
		Description:        params.Description,
		RequestedBy:        params.RequestedBy,
		Method:             params.Method,
		DestinationAccount: params.DestinationAccount,
		DestinationPhone:   params.DestinationPhone,
		RequiredApprovals:  s.policy.RequiredApprovals,
		Status:             StatusPending,
	}

	for attempt := 1; ; attempt++ {
		req.Reference = NewReference(now)

		err = s.repo.Create(ctx, req)
		if err == nil {
			break
		}

		if !errors.Is(err, ErrDuplicateReference) || attempt == referenceAttempts {
			return nil, fmt.Errorf("creating withdrawal: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "withdrawal requested",
		"reference", req.Reference, "wallet_id", req.WalletID, "amount", req.Amount, "requested_by", req.RequestedBy)

	audit.Emit(ctx, s.publisher, s.logger, audit.Event{
		Type:    audit.TypeWithdrawalCreated,
		Subject: req.Reference,
		Actor:   req.RequestedBy,
		Amount:  req.Amount,
		Attributes: map[string]string{
			"wallet_id": req.WalletID.String(),
			"method":    string(req.Method),
		},
	})

	return req, nil
}

// Approve records one administrator's approval. The approval that reaches the quorum also
// debits the wallet, mirrors the debit as an expense payment and completes the request,
// all in the same transaction. If that debit fails the approval itself is not kept and the
// request stays PENDING.
func (s *Service) Approve(ctx context.Context, params ApproveParams) (*ApprovalResult, error) {
	if params.ApproverID == "" {
		return nil, ledger.Invalid("approver_id", "is required")
	}

	result, err := s.approve(ctx, params)
	if err != nil {
		return nil, err
	}

	req := result.Request

	s.logger.InfoContext(ctx, "withdrawal approved",
		"reference", req.Reference, "approver", params.ApproverID,
		"current_approvals", req.CurrentApprovals, "required_approvals", req.RequiredApprovals)

	audit.Emit(ctx, s.publisher, s.logger, audit.Event{
		Type:    audit.TypeWithdrawalApproved,
		Subject: req.Reference,
		Actor:   params.ApproverID,
		Attributes: map[string]string{
			"current_approvals":  fmt.Sprint(req.CurrentApprovals),
			"required_approvals": fmt.Sprint(req.RequiredApprovals),
		},
	})

	if !result.Completed {
		return result, nil
	}

	s.wallets.InvalidateSummary(ctx)

	s.logger.InfoContext(ctx, "withdrawal completed", "reference", req.Reference, "amount", req.Amount)

	audit.Emit(ctx, s.publisher, s.logger, audit.Event{
		Type:       audit.TypeWithdrawalCompleted,
		Subject:    req.Reference,
		Actor:      params.ApproverID,
		Amount:     req.Amount,
		Attributes: map[string]string{"wallet_id": req.WalletID.String()},
	})

	result.Transfer = s.executeTransfer(context.WithoutCancel(ctx), req)

	return result, nil
}

func (s *Service) approve(ctx context.Context, params ApproveParams) (*ApprovalResult, error) {
	tx, err := s.repo.BeginApproval(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin approval: %w", err)
	}
	defer tx.Rollback()

	req, err := tx.LockRequest(ctx, params.Reference)
	if err != nil {
		return nil, fmt.Errorf("loading withdrawal %s: %w", params.Reference, err)
	}

	if req.Status != StatusPending {
		return nil, fmt.Errorf("%w: withdrawal %s is %s", ledger.ErrInvalidState, req.Reference, req.Status)
	}

	approved, err := tx.HasApproved(ctx, req.ID, params.ApproverID)
	if err != nil {
		return nil, fmt.Errorf("checking approvals: %w", err)
	}

	if approved {
		return nil, fmt.Errorf("%w: %s already approved %s", ledger.ErrDuplicateApproval, params.ApproverID, req.Reference)
	}

	// Only a pending request this approver has not yet approved reports a bad credential.
	if !s.policy.validCredential(params.Credential) {
		return nil, ledger.ErrInvalidCredential
	}

	err = tx.RecordApproval(ctx, &Approval{
		RequestID:  req.ID,
		ApprovedBy: params.ApproverID,
		Approved:   true,
		Method:     ApprovalMethodCredential,
		Comment:    params.Comment,
	})
	if err != nil {
		return nil, fmt.Errorf("recording approval: %w", err)
	}

	current, err := tx.IncrementApprovals(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("counting approval: %w", err)
	}

	req.CurrentApprovals = current
	result := &ApprovalResult{Request: req}

	if current >= req.RequiredApprovals {
		completed, err := s.process(ctx, tx, req)
		if err != nil {
			return nil, err
		}

		result.Request = completed
		result.Completed = true
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit approval: %w", err)
	}

	return result, nil
}

// process moves the money for a request that has just reached quorum. It runs inside the
// approval transaction.
func (s *Service) process(ctx context.Context, tx ApprovalTx, req *Request) (*Request, error) {
	if err := tx.DebitWallet(ctx, req.WalletID, req.Amount); err != nil {
		return nil, fmt.Errorf("debiting wallet for %s: %w", req.Reference, err)
	}

	expense := &payment.Payment{
		Amount:      req.Amount,
		Type:        payment.TypeExpense,
		Status:      payment.StatusCompleted,
		IsExpense:   true,
		Reference:   req.Reference,
		Description: req.Purpose,
		PaidAt:      s.now(),
	}

	if err := tx.RecordExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("recording expense for %s: %w", req.Reference, err)
	}

	completed, err := tx.Complete(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("completing %s: %w", req.Reference, err)
	}

	return completed, nil
}

// executeTransfer pays out a completed request. Failures are recorded on the request and
// never undo the completion.
func (s *Service) executeTransfer(ctx context.Context, req *Request) *TransferOutcome {
	if req.Method == MethodCash {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, transferTimeout)
	defer cancel()

	attempted := s.now()
	outcome := TransferOutcome{AttemptedAt: &attempted}

	res, err := s.transferer.Transfer(ctx, transfer.Request{
		Reference:   req.Reference,
		Amount:      req.Amount,
		Method:      string(req.Method),
		Destination: req.Destination(),
		Purpose:     req.Purpose,
	})
	if err != nil {
		if !errors.Is(err, ledger.ErrTransferFailed) {
			err = fmt.Errorf("%w: %v", ledger.ErrTransferFailed, err)
		}

		outcome.Error = err.Error()

		s.logger.ErrorContext(ctx, "transfer failed", "reference", req.Reference, "error", err)

		audit.Emit(ctx, s.publisher, s.logger, audit.Event{
			Type:       audit.TypeTransferFailed,
			Subject:    req.Reference,
			Amount:     req.Amount,
			Attributes: map[string]string{"error": outcome.Error},
		})
	} else {
		outcome.TransactionID = res.TransactionID
		outcome.Confirmation = res.ConfirmationReference
	}

	if err := s.repo.RecordTransfer(ctx, req.ID, outcome); err != nil {
		s.logger.ErrorContext(ctx, "failed to record transfer outcome", "reference", req.Reference, "error", err)
	}

	req.Transfer = outcome

	return &outcome
}

// Cancel withdraws a PENDING request. Completed and cancelled requests cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, reference, reason, actor string) (*Request, error) {
	req, err := s.repo.Cancel(ctx, reference, reason)
	if err != nil {
		return nil, fmt.Errorf("cancelling withdrawal %s: %w", reference, err)
	}

	s.logger.InfoContext(ctx, "withdrawal cancelled", "reference", reference, "actor", actor)

	audit.Emit(ctx, s.publisher, s.logger, audit.Event{
		Type:       audit.TypeWithdrawalCancelled,
		Subject:    reference,
		Actor:      actor,
		Amount:     req.Amount,
		Attributes: map[string]string{"reason": reason},
	})

	return req, nil
}

func (s *Service) Get(ctx context.Context, reference string) (*Request, error) {
	return s.repo.Get(ctx, reference)
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*Page, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ledger.Invalid("status", "%q is not a withdrawal status", *filter.Status)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}

	switch {
	case filter.PageSize < 1:
		filter.PageSize = defaultPageSize
	case filter.PageSize > maxPageSize:
		filter.PageSize = maxPageSize
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing withdrawals: %w", err)
	}

	return &Page{Items: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

// Approvals returns the approval history of a request, oldest first.
func (s *Service) Approvals(ctx context.Context, reference string) ([]*Approval, error) {
	req, err := s.repo.Get(ctx, reference)
	if err != nil {
		return nil, err
	}

	return s.repo.Approvals(ctx, req.ID)
}
