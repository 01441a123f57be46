package wallets_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/sanctuary/internal/http/identity"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/wallets"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
)

var (
	admin  = identity.Identity{ID: "admin-1", IsAdmin: true}
	viewer = identity.Identity{ID: "viewer-1", IsAdmin: true, ViewOnly: true}
)

func serve(h *wallets.Handler, req *http.Request, caller identity.Identity) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Route("/wallets", h.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(identity.WithIdentity(req.Context(), caller)))

	return rec
}

func TestHandler_Overview(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := wallets.NewMockService(ctrl)

	welfare := &wallet.Wallet{
		ID: uuid.New(), Key: wallet.Key{Type: wallet.TypeTithe, SubType: "welfare"},
		Balance: 50050, TotalDeposits: 60050, TotalWithdrawals: 10000, IsActive: true,
	}

	svc.EXPECT().Grouped(gomock.Any()).Return(&wallet.Overview{
		Groups: []wallet.Group{{Type: wallet.TypeTithe, Balance: 50050, Wallets: []*wallet.Wallet{welfare}}},
		Summary: wallet.Summary{
			TotalBalance: 50050, TotalDeposits: 60050, TotalWithdrawals: 10000, ActiveWallets: 1,
		},
	}, nil)

	rec := serve(wallets.NewHandler(svc), httptest.NewRequest(http.MethodGet, "/wallets/", nil), viewer)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Groups []struct {
			WalletType string `json:"wallet_type"`
			Balance    string `json:"balance"`
			Wallets    []struct {
				SubType *string `json:"sub_type"`
				Balance string  `json:"balance"`
			} `json:"wallets"`
		} `json:"groups"`
		Summary struct {
			TotalBalance  string `json:"total_balance"`
			ActiveWallets int    `json:"active_wallets"`
		} `json:"summary"`
	}

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Groups, 1)
	assert.Equal(t, "TITHE", body.Groups[0].WalletType)
	assert.Equal(t, "500.50", body.Groups[0].Balance)
	require.NotNil(t, body.Groups[0].Wallets[0].SubType)
	assert.Equal(t, "welfare", *body.Groups[0].Wallets[0].SubType)
	assert.Equal(t, "500.50", body.Summary.TotalBalance)
	assert.Equal(t, 1, body.Summary.ActiveWallets)
}

func TestHandler_SetActive(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name       string
		caller     identity.Identity
		path       string
		body       string
		setupMock  func(svc *wallets.MockService)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "Deactivate",
			caller: admin,
			path:   "/wallets/" + id.String() + "/active",
			body:   `{"active": false}`,
			setupMock: func(svc *wallets.MockService) {
				svc.EXPECT().Deactivate(gomock.Any(), id).Return(&wallet.Wallet{ID: id, Key: wallet.Key{Type: wallet.TypeOffering}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "ActivateUnknown",
			caller: admin,
			path:   "/wallets/" + id.String() + "/active",
			body:   `{"active": true}`,
			setupMock: func(svc *wallets.MockService) {
				svc.EXPECT().Activate(gomock.Any(), id).Return(nil, ledger.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "MissingFlag",
			caller:     admin,
			path:       "/wallets/" + id.String() + "/active",
			body:       `{}`,
			setupMock:  func(svc *wallets.MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadID",
			caller:     admin,
			path:       "/wallets/nope/active",
			body:       `{"active": true}`,
			setupMock:  func(svc *wallets.MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "ViewOnlyForbidden",
			caller:     viewer,
			path:       "/wallets/" + id.String() + "/active",
			body:       `{"active": true}`,
			setupMock:  func(svc *wallets.MockService) {},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := wallets.NewMockService(ctrl)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPatch, tt.path, strings.NewReader(tt.body))
			rec := serve(wallets.NewHandler(svc), req, tt.caller)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Bootstrap(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := wallets.NewMockService(ctrl)

	svc.EXPECT().BootstrapDefaults(gomock.Any()).Return([]*wallet.Wallet{
		{ID: uuid.New(), Key: wallet.Key{Type: wallet.TypeOffering}, IsActive: true},
		{ID: uuid.New(), Key: wallet.Key{Type: wallet.TypeDonation}, IsActive: true},
	}, nil)

	rec := serve(wallets.NewHandler(svc), httptest.NewRequest(http.MethodPost, "/wallets/bootstrap", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body, 2)
	assert.Equal(t, "0.00", body[0]["balance"])
	assert.Nil(t, body[0]["sub_type"])
}
