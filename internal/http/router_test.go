package http_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	sanctuaryHttp "github.com/MrJamesThe3rd/sanctuary/internal/http"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/allocations"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/identity"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/payments"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/reconciliation"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/wallets"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/withdrawals"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
)

const secret = "router-test-secret"

type fixture struct {
	router  http.Handler
	wallets *wallets.MockService
	signer  *identity.Verifier
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	verifier := identity.NewVerifier(secret)
	walletSvc := wallets.NewMockService(ctrl)

	router := sanctuaryHttp.New(sanctuaryHttp.Handlers{
		Wallets:        wallets.NewHandler(walletSvc),
		Allocations:    allocations.NewHandler(allocations.NewMockService(ctrl)),
		Payments:       payments.NewHandler(payments.NewMockImporter(ctrl)),
		Withdrawals:    withdrawals.NewHandler(withdrawals.NewMockService(ctrl)),
		Reconciliation: reconciliation.NewHandler(reconciliation.NewMockService(ctrl)),
	}, verifier, slog.New(slog.DiscardHandler), 5*time.Second)

	return &fixture{router: router, wallets: walletSvc, signer: verifier}
}

func (f *fixture) do(t *testing.T, req *http.Request, caller *identity.Identity) *httptest.ResponseRecorder {
	t.Helper()

	if caller != nil {
		token, err := f.signer.Sign(*caller, time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestRouter_Healthz(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_RequiresToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/wallets/", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = f.do(t, req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AuthenticatedRequest(t *testing.T) {
	f := newFixture(t)

	f.wallets.EXPECT().Grouped(gomock.Any()).Return(&wallet.Overview{}, nil)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/wallets/", nil),
		&identity.Identity{ID: "auditor", IsAdmin: true, ViewOnly: true})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestRouter_RejectsNonJSONBodies(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/withdrawals/", strings.NewReader("amount=10"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := f.do(t, req, &identity.Identity{ID: "treasurer", IsAdmin: true})
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
