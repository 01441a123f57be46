package reconciliation

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/http/identity"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/respond"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/reconcile"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=reconciliation
type Service interface {
	RecalculateAll(ctx context.Context) (*reconcile.Report, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(identity.RequireWriter).Post("/", h.recalculate)
}

type walletResponse struct {
	WalletID         uuid.UUID `json:"wallet_id"`
	Wallet           string    `json:"wallet"`
	BalanceBefore    string    `json:"balance_before"`
	Balance          string    `json:"balance"`
	TotalDeposits    string    `json:"total_deposits"`
	TotalWithdrawals string    `json:"total_withdrawals"`
	Changed          bool      `json:"changed"`
	Error            string    `json:"error,omitempty"`
}

type reportResponse struct {
	Wallets             []walletResponse `json:"wallets"`
	UnallocatedPayments []uuid.UUID      `json:"unallocated_payments"`
	Updated             int              `json:"updated"`
	Failed              int              `json:"failed"`
}

func (h *Handler) recalculate(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.RecalculateAll(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := reportResponse{
		Wallets:             make([]walletResponse, 0, len(report.Wallets)),
		UnallocatedPayments: append([]uuid.UUID{}, report.Unallocated...),
		Updated:             report.Updated,
		Failed:              report.Failed,
	}

	for _, res := range report.Wallets {
		resp.Wallets = append(resp.Wallets, walletResponse{
			WalletID:         res.WalletID,
			Wallet:           res.Wallet,
			BalanceBefore:    ledger.FormatAmount(res.BalanceBefore),
			Balance:          ledger.FormatAmount(res.Balance),
			TotalDeposits:    ledger.FormatAmount(res.Deposits),
			TotalWithdrawals: ledger.FormatAmount(res.Withdrawals),
			Changed:          res.Changed,
			Error:            res.Error,
		})
	}

	respond.JSON(w, http.StatusOK, resp)
}
