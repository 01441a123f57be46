package wallets

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/http/identity"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/respond"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=wallets
type Service interface {
	Grouped(ctx context.Context) (*wallet.Overview, error)
	BootstrapDefaults(ctx context.Context) ([]*wallet.Wallet, error)
	Activate(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.overview)

	r.Group(func(r chi.Router) {
		r.Use(identity.RequireWriter)
		r.Post("/bootstrap", h.bootstrap)
		r.Patch("/{id}/active", h.setActive)
	})
}

type walletResponse struct {
	ID                uuid.UUID  `json:"id"`
	WalletType        string     `json:"wallet_type"`
	SubType           *string    `json:"sub_type"`
	Balance           string     `json:"balance"`
	TotalDeposits     string     `json:"total_deposits"`
	TotalWithdrawals  string     `json:"total_withdrawals"`
	IsActive          bool       `json:"is_active"`
	SpecialOfferingID *uuid.UUID `json:"special_offering_id,omitempty"`
	LastUpdated       time.Time  `json:"last_updated"`
}

type groupResponse struct {
	WalletType string           `json:"wallet_type"`
	Balance    string           `json:"balance"`
	Wallets    []walletResponse `json:"wallets"`
}

type summaryResponse struct {
	TotalBalance     string `json:"total_balance"`
	TotalDeposits    string `json:"total_deposits"`
	TotalWithdrawals string `json:"total_withdrawals"`
	ActiveWallets    int    `json:"active_wallets"`
}

type overviewResponse struct {
	Groups  []groupResponse `json:"groups"`
	Summary summaryResponse `json:"summary"`
}

func toResponse(w *wallet.Wallet) walletResponse {
	resp := walletResponse{
		ID:                w.ID,
		WalletType:        string(w.Key.Type),
		Balance:           ledger.FormatAmount(w.Balance),
		TotalDeposits:     ledger.FormatAmount(w.TotalDeposits),
		TotalWithdrawals:  ledger.FormatAmount(w.TotalWithdrawals),
		IsActive:          w.IsActive,
		SpecialOfferingID: w.SpecialOfferingID,
		LastUpdated:       w.LastUpdated,
	}

	if w.Key.SubType != "" {
		resp.SubType = new(w.Key.SubType)
	}

	return resp
}

func toResponseList(ws []*wallet.Wallet) []walletResponse {
	resp := make([]walletResponse, len(ws))
	for i, w := range ws {
		resp[i] = toResponse(w)
	}

	return resp
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.svc.Grouped(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := overviewResponse{
		Groups: make([]groupResponse, 0, len(ov.Groups)),
		Summary: summaryResponse{
			TotalBalance:     ledger.FormatAmount(ov.Summary.TotalBalance),
			TotalDeposits:    ledger.FormatAmount(ov.Summary.TotalDeposits),
			TotalWithdrawals: ledger.FormatAmount(ov.Summary.TotalWithdrawals),
			ActiveWallets:    ov.Summary.ActiveWallets,
		},
	}

	for _, g := range ov.Groups {
		resp.Groups = append(resp.Groups, groupResponse{
			WalletType: string(g.Type),
			Balance:    ledger.FormatAmount(g.Balance),
			Wallets:    toResponseList(g.Wallets),
		})
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) bootstrap(w http.ResponseWriter, r *http.Request) {
	ws, err := h.svc.BootstrapDefaults(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(ws))
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		respond.BadRequest(w, "body must be {\"active\": true|false}")
		return
	}

	var updated *wallet.Wallet
	if *req.Active {
		updated, err = h.svc.Activate(r.Context(), id)
	} else {
		updated, err = h.svc.Deactivate(r.Context(), id)
	}

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(updated))
}
