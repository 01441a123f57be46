package withdrawals_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/sanctuary/internal/http/identity"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/withdrawals"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/withdrawal"
)

var (
	treasurer = identity.Identity{ID: "treasurer", IsAdmin: true}
	elder     = identity.Identity{ID: "elder", IsAdmin: true}
	viewer    = identity.Identity{ID: "auditor", IsAdmin: true, ViewOnly: true}
)

func serve(h *withdrawals.Handler, method, path, body string, caller identity.Identity) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Route("/withdrawals", h.Routes)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(identity.WithIdentity(req.Context(), caller)))

	return rec
}

func pending(ref string, walletID uuid.UUID) *withdrawal.Request {
	return &withdrawal.Request{
		ID:                uuid.New(),
		Reference:         ref,
		WalletID:          walletID,
		Amount:            60000,
		Purpose:           "Roof repair",
		RequestedBy:       treasurer.ID,
		Method:            withdrawal.MethodBankTransfer,
		RequiredApprovals: 3,
		Status:            withdrawal.StatusPending,
	}
}

func TestHandler_Create(t *testing.T) {
	walletID := uuid.New()

	type testCase struct {
		name       string
		caller     identity.Identity
		body       string
		setupMock  func(svc *withdrawals.MockService)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "Created",
			caller: treasurer,
			body: fmt.Sprintf(`{"wallet_id":%q,"amount":"600.00","purpose":"Roof repair",`+
				`"method":"BANK_TRANSFER","destination_account":"0123456789"}`, walletID),
			setupMock: func(svc *withdrawals.MockService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p withdrawal.CreateParams) (*withdrawal.Request, error) {
						assert.Equal(t, int64(60000), p.Amount)
						assert.Equal(t, treasurer.ID, p.RequestedBy)
						assert.Equal(t, withdrawal.MethodBankTransfer, p.Method)
						assert.Equal(t, "0123456789", p.DestinationAccount)

						return pending("WD-1", walletID), nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "BadAmount",
			caller:     treasurer,
			body:       fmt.Sprintf(`{"wallet_id":%q,"amount":"6.001","purpose":"x","method":"CASH"}`, walletID),
			setupMock:  func(svc *withdrawals.MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "ExceedsBalance",
			caller: treasurer,
			body:   fmt.Sprintf(`{"wallet_id":%q,"amount":"600.00","purpose":"x","method":"CASH"}`, walletID),
			setupMock: func(svc *withdrawals.MockService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, &ledger.ValidationError{
					Field: "amount", Reason: "exceeds wallet balance", Err: ledger.ErrInsufficientFunds,
				})
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "ViewOnlyForbidden",
			caller:     viewer,
			body:       `{}`,
			setupMock:  func(svc *withdrawals.MockService) {},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := withdrawals.NewMockService(ctrl)
			tt.setupMock(svc)

			rec := serve(withdrawals.NewHandler(svc), http.MethodPost, "/withdrawals/", tt.body, tt.caller)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Approve(t *testing.T) {
	walletID := uuid.New()
	attempted := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	type testCase struct {
		name       string
		body       string
		setupMock  func(svc *withdrawals.MockService)
		wantStatus int
		verify     func(t *testing.T, body map[string]any)
	}

	tests := []testCase{
		{
			name: "QuorumReached",
			body: `{"credential":"vault-key-1","comment":"ok"}`,
			setupMock: func(svc *withdrawals.MockService) {
				svc.EXPECT().Approve(gomock.Any(), withdrawal.ApproveParams{
					Reference: "WD-1", ApproverID: elder.ID, Credential: "vault-key-1", Comment: "ok",
				}).DoAndReturn(func(context.Context, withdrawal.ApproveParams) (*withdrawal.ApprovalResult, error) {
					req := pending("WD-1", walletID)
					req.Status = withdrawal.StatusCompleted
					req.CurrentApprovals = 3
					outcome := withdrawal.TransferOutcome{TransactionID: "TX-9", AttemptedAt: &attempted}
					req.Transfer = outcome

					return &withdrawal.ApprovalResult{Request: req, Completed: true, Transfer: &outcome}, nil
				})
			},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["completed"])
				assert.Equal(t, "COMPLETED", body["request"].(map[string]any)["status"])
				assert.Equal(t, "TX-9", body["transfer"].(map[string]any)["transaction_id"])
			},
		},
		{
			name: "WrongCredential",
			body: `{"credential":"guess"}`,
			setupMock: func(svc *withdrawals.MockService) {
				svc.EXPECT().Approve(gomock.Any(), gomock.Any()).Return(nil, ledger.ErrInvalidCredential)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "AlreadyApproved",
			body: `{"credential":"vault-key-1"}`,
			setupMock: func(svc *withdrawals.MockService) {
				svc.EXPECT().Approve(gomock.Any(), gomock.Any()).Return(nil, ledger.ErrDuplicateApproval)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "InsufficientAtQuorum",
			body: `{"credential":"vault-key-1"}`,
			setupMock: func(svc *withdrawals.MockService) {
				svc.EXPECT().Approve(gomock.Any(), gomock.Any()).Return(nil, ledger.ErrInsufficientFunds)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "MalformedBody",
			body:       `{"credential":`,
			setupMock:  func(svc *withdrawals.MockService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := withdrawals.NewMockService(ctrl)
			tt.setupMock(svc)

			rec := serve(withdrawals.NewHandler(svc), http.MethodPost, "/withdrawals/WD-1/approvals", tt.body, elder)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.verify != nil {
				var body map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				tt.verify(t, body)
			}
		})
	}
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := withdrawals.NewMockService(ctrl)

	svc.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f withdrawal.ListFilter) (*withdrawal.Page, error) {
			require.NotNil(t, f.Status)
			assert.Equal(t, withdrawal.StatusPending, *f.Status)
			assert.Equal(t, treasurer.ID, f.RequestedBy)
			assert.Equal(t, 2, f.Page)
			assert.Equal(t, 5, f.PageSize)

			return &withdrawal.Page{
				Items: []*withdrawal.Request{pending("WD-7", uuid.New())},
				Total: 6, Page: 2, PageSize: 5,
			}, nil
		})

	rec := serve(withdrawals.NewHandler(svc), http.MethodGet,
		"/withdrawals/?status=PENDING&requested_by=treasurer&page=2&page_size=5", "", viewer)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []struct {
			Reference string `json:"reference"`
			Amount    string `json:"amount"`
		} `json:"items"`
		Total int `json:"total"`
	}

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 6, body.Total)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "WD-7", body.Items[0].Reference)
	assert.Equal(t, "600.00", body.Items[0].Amount)

	rec = serve(withdrawals.NewHandler(svc), http.MethodGet, "/withdrawals/?page=two", "", viewer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetAndApprovals(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := withdrawals.NewMockService(ctrl)

	svc.EXPECT().Get(gomock.Any(), "WD-404").Return(nil, ledger.ErrNotFound)
	svc.EXPECT().Approvals(gomock.Any(), "WD-1").Return([]*withdrawal.Approval{
		{ID: uuid.New(), ApprovedBy: "elder", Approved: true, Method: withdrawal.ApprovalMethodCredential},
	}, nil)

	h := withdrawals.NewHandler(svc)

	rec := serve(h, http.MethodGet, "/withdrawals/WD-404", "", viewer)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, http.MethodGet, "/withdrawals/WD-1/approvals", "", viewer)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "elder", body[0]["approved_by"])
	assert.Equal(t, "CREDENTIAL", body[0]["method"])
}

func TestHandler_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := withdrawals.NewMockService(ctrl)

	cancelled := pending("WD-1", uuid.New())
	cancelled.Status = withdrawal.StatusCancelled
	cancelled.CancelReason = "duplicate"

	svc.EXPECT().Cancel(gomock.Any(), "WD-1", "duplicate", treasurer.ID).Return(cancelled, nil)
	svc.EXPECT().Cancel(gomock.Any(), "WD-2", "", treasurer.ID).Return(nil, ledger.ErrInvalidState)

	h := withdrawals.NewHandler(svc)

	rec := serve(h, http.MethodPost, "/withdrawals/WD-1/cancel", `{"reason":"duplicate"}`, treasurer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"CANCELLED"`)

	rec = serve(h, http.MethodPost, "/withdrawals/WD-2/cancel", "", treasurer)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
