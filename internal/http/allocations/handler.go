package allocations

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/allocation"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/identity"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/respond"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
)

// maxBatch caps the payment ids accepted in one request.
const maxBatch = 500

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=allocations
type Service interface {
	RecordAndAllocate(ctx context.Context, p *payment.Payment) ([]allocation.Applied, error)
	AllocatePayments(ctx context.Context, ids []uuid.UUID) (*allocation.BatchResult, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(identity.RequireWriter)
	r.Post("/", h.allocateBatch)
	r.Post("/payment", h.allocatePayment)
}

type AppliedResponse struct {
	Wallet   string    `json:"wallet"`
	WalletID uuid.UUID `json:"wallet_id"`
	Amount   string    `json:"amount"`
}

type ItemResponse struct {
	PaymentID uuid.UUID         `json:"payment_id"`
	Applied   []AppliedResponse `json:"applied"`
	Error     string            `json:"error,omitempty"`
}

type BatchResponse struct {
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Items     []ItemResponse `json:"items"`
}

func toAppliedResponse(applied []allocation.Applied) []AppliedResponse {
	resp := make([]AppliedResponse, len(applied))
	for i, a := range applied {
		resp[i] = AppliedResponse{Wallet: a.Key.String(), WalletID: a.WalletID, Amount: ledger.FormatAmount(a.Amount)}
	}

	return resp
}

// ToBatchResponse renders a batch result; the import endpoint reuses it.
func ToBatchResponse(res *allocation.BatchResult) BatchResponse {
	resp := BatchResponse{
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
		Items:     make([]ItemResponse, 0, len(res.Items)),
	}

	for _, item := range res.Items {
		ir := ItemResponse{PaymentID: item.PaymentID, Applied: toAppliedResponse(item.Applied)}
		if item.Err != nil {
			ir.Error = item.Err.Error()
		}

		resp.Items = append(resp.Items, ir)
	}

	return resp
}

type batchRequest struct {
	PaymentIDs []uuid.UUID `json:"payment_ids"`
}

func (h *Handler) allocateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if len(req.PaymentIDs) == 0 || len(req.PaymentIDs) > maxBatch {
		respond.BadRequest(w, "payment_ids must hold between 1 and 500 ids")
		return
	}

	res, err := h.svc.AllocatePayments(r.Context(), req.PaymentIDs)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToBatchResponse(res))
}

type specialOfferingRequest struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

type paymentRequest struct {
	Amount            string                  `json:"amount"`
	PaymentType       string                  `json:"payment_type"`
	Status            string                  `json:"status"`
	IsExpense         bool                    `json:"is_expense"`
	TitheDistribution map[string]bool         `json:"tithe_distribution"`
	SpecialOffering   *specialOfferingRequest `json:"special_offering"`
	Reference         string                  `json:"reference"`
	Description       string                  `json:"description"`
	PaidAt            *time.Time              `json:"paid_at"`
}

func (req paymentRequest) toPayment() (*payment.Payment, error) {
	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	p := &payment.Payment{
		Amount:      amount,
		Type:        payment.Type(req.PaymentType),
		Status:      payment.Status(req.Status),
		IsExpense:   req.IsExpense,
		Reference:   req.Reference,
		Description: req.Description,
	}

	if req.PaidAt != nil {
		p.PaidAt = *req.PaidAt
	}

	if req.TitheDistribution != nil {
		p.TitheDistribution = make(payment.TitheDistribution, len(req.TitheDistribution))
		for k, v := range req.TitheDistribution {
			p.TitheDistribution[payment.TitheCategory(k)] = v
		}
	}

	if req.SpecialOffering != nil {
		p.SpecialOffering = &payment.SpecialOffering{ID: req.SpecialOffering.ID, Code: req.SpecialOffering.Code}
	}

	return p, nil
}

type paymentResponse struct {
	PaymentID uuid.UUID         `json:"payment_id"`
	Applied   []AppliedResponse `json:"applied"`
}

// allocatePayment stores the payment in the body and credits its wallets together.
func (h *Handler) allocatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body: "+err.Error())
		return
	}

	p, err := req.toPayment()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	applied, err := h.svc.RecordAndAllocate(r.Context(), p)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, paymentResponse{PaymentID: p.ID, Applied: toAppliedResponse(applied)})
}
