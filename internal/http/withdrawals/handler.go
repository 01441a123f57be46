package withdrawals

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/http/identity"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/respond"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/withdrawal"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=withdrawals
type Service interface {
	Create(ctx context.Context, params withdrawal.CreateParams) (*withdrawal.Request, error)
	Approve(ctx context.Context, params withdrawal.ApproveParams) (*withdrawal.ApprovalResult, error)
	Cancel(ctx context.Context, reference, reason, actor string) (*withdrawal.Request, error)
	Get(ctx context.Context, reference string) (*withdrawal.Request, error)
	List(ctx context.Context, filter withdrawal.ListFilter) (*withdrawal.Page, error)
	Approvals(ctx context.Context, reference string) ([]*withdrawal.Approval, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{reference}", h.get)
	r.Get("/{reference}/approvals", h.approvals)

	r.Group(func(r chi.Router) {
		r.Use(identity.RequireWriter)
		r.Post("/", h.create)
		r.Post("/{reference}/approvals", h.approve)
		r.Post("/{reference}/cancel", h.cancel)
	})
}

type transferResponse struct {
	TransactionID string     `json:"transaction_id,omitempty"`
	Confirmation  string     `json:"confirmation,omitempty"`
	Error         string     `json:"error,omitempty"`
	AttemptedAt   *time.Time `json:"attempted_at,omitempty"`
}

type requestResponse struct {
	ID                 uuid.UUID         `json:"id"`
	Reference          string            `json:"reference"`
	WalletID           uuid.UUID         `json:"wallet_id"`
	Amount             string            `json:"amount"`
	Purpose            string            `json:"purpose"`
	Description        string            `json:"description,omitempty"`
	RequestedBy        string            `json:"requested_by"`
	Method             string            `json:"method"`
	DestinationAccount string            `json:"destination_account,omitempty"`
	DestinationPhone   string            `json:"destination_phone,omitempty"`
	RequiredApprovals  int               `json:"required_approvals"`
	CurrentApprovals   int               `json:"current_approvals"`
	Status             string            `json:"status"`
	CancelReason       string            `json:"cancel_reason,omitempty"`
	ProcessedAt        *time.Time        `json:"processed_at,omitempty"`
	Transfer           *transferResponse `json:"transfer,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type approvalResponse struct {
	ID         uuid.UUID `json:"id"`
	ApprovedBy string    `json:"approved_by"`
	Approved   bool      `json:"approved"`
	Method     string    `json:"method"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type approveResponse struct {
	Request   requestResponse   `json:"request"`
	Completed bool              `json:"completed"`
	Transfer  *transferResponse `json:"transfer,omitempty"`
}

type pageResponse struct {
	Items    []requestResponse `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func toTransferResponse(t withdrawal.TransferOutcome) *transferResponse {
	if t.AttemptedAt == nil {
		return nil
	}

	return &transferResponse{
		TransactionID: t.TransactionID,
		Confirmation:  t.Confirmation,
		Error:         t.Error,
		AttemptedAt:   t.AttemptedAt,
	}
}

func toResponse(req *withdrawal.Request) requestResponse {
	return requestResponse{
		ID:                 req.ID,
		Reference:          req.Reference,
		WalletID:           req.WalletID,
		Amount:             ledger.FormatAmount(req.Amount),
		Purpose:            req.Purpose,
		Description:        req.Description,
		RequestedBy:        req.RequestedBy,
		Method:             string(req.Method),
		DestinationAccount: req.DestinationAccount,
		DestinationPhone:   req.DestinationPhone,
		RequiredApprovals:  req.RequiredApprovals,
		CurrentApprovals:   req.CurrentApprovals,
		Status:             string(req.Status),
		CancelReason:       req.CancelReason,
		ProcessedAt:        req.ProcessedAt,
		Transfer:           toTransferResponse(req.Transfer),
		CreatedAt:          req.CreatedAt,
		UpdatedAt:          req.UpdatedAt,
	}
}

type createRequest struct {
	WalletID           uuid.UUID `json:"wallet_id"`
	Amount             string    `json:"amount"`
	Purpose            string    `json:"purpose"`
	Description        string    `json:"description"`
	Method             string    `json:"method"`
	DestinationAccount string    `json:"destination_account"`
	DestinationPhone   string    `json:"destination_phone"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	amount, err := ledger.ParseAmount(body.Amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	caller, _ := identity.FromContext(r.Context())

	req, err := h.svc.Create(r.Context(), withdrawal.CreateParams{
		WalletID:           body.WalletID,
		Amount:             amount,
		Purpose:            body.Purpose,
		Description:        body.Description,
		RequestedBy:        caller.ID,
		Method:             withdrawal.Method(body.Method),
		DestinationAccount: body.DestinationAccount,
		DestinationPhone:   body.DestinationPhone,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(req))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := withdrawal.ListFilter{RequestedBy: q.Get("requested_by")}

	if s := q.Get("status"); s != "" {
		filter.Status = new(withdrawal.Status(s))
	}

	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			respond.BadRequest(w, "page must be a number")
			return
		}

		filter.Page = n
	}

	if s := q.Get("page_size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			respond.BadRequest(w, "page_size must be a number")
			return
		}

		filter.PageSize = n
	}

	page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := pageResponse{
		Items:    make([]requestResponse, 0, len(page.Items)),
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}

	for _, req := range page.Items {
		resp.Items = append(resp.Items, toResponse(req))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.Get(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(req))
}

func (h *Handler) approvals(w http.ResponseWriter, r *http.Request) {
	approvals, err := h.svc.Approvals(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]approvalResponse, len(approvals))
	for i, a := range approvals {
		resp[i] = approvalResponse{
			ID:         a.ID,
			ApprovedBy: a.ApprovedBy,
			Approved:   a.Approved,
			Method:     a.Method,
			Comment:    a.Comment,
			CreatedAt:  a.CreatedAt,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type approveRequest struct {
	Credential string `json:"credential"`
	Comment    string `json:"comment"`
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	var body approveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	caller, _ := identity.FromContext(r.Context())

	res, err := h.svc.Approve(r.Context(), withdrawal.ApproveParams{
		Reference:  chi.URLParam(r, "reference"),
		ApproverID: caller.ID,
		Credential: body.Credential,
		Comment:    body.Comment,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := approveResponse{Request: toResponse(res.Request), Completed: res.Completed}
	if res.Transfer != nil {
		resp.Transfer = toTransferResponse(*res.Transfer)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	var body cancelRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respond.BadRequest(w, "invalid request body")
			return
		}
	}

	caller, _ := identity.FromContext(r.Context())

	req, err := h.svc.Cancel(r.Context(), chi.URLParam(r, "reference"), body.Reason, caller.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(req))
}
