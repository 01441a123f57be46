package transfer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/transfer"
)

func TestHTTPExecutor_Transfer(t *testing.T) {
	req := transfer.Request{
		Reference:   "WD-20240101120000-ABCDEF",
		Amount:      125050,
		Method:      "MOBILE_MONEY",
		Destination: "0712345678",
		Purpose:     "Choir uniforms",
	}

	type testCase struct {
		name    string
		handler http.HandlerFunc
		want    *transfer.Result
		wantErr string
	}

	tests := []testCase{
		{
			name: "Success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/transfers", r.URL.Path)
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				assert.Equal(t, req.Reference, r.Header.Get("Idempotency-Key"))

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "1250.50", body["amount"])
				assert.Equal(t, "0712345678", body["destination"])

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"transaction_id":"TX-1","confirmation_reference":"QK12ABC"}`))
			},
			want: &transfer.Result{TransactionID: "TX-1", ConfirmationReference: "QK12ABC"},
		},
		{
			name: "GatewayRejects",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(`{"message":"invalid msisdn"}`))
			},
			wantErr: "gateway returned 422: invalid msisdn",
		},
		{
			name: "PlainTextError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream timeout", http.StatusBadGateway)
			},
			wantErr: "upstream timeout",
		},
		{
			name: "MissingTransactionID",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
			wantErr: "no transaction id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			exec := transfer.NewHTTPExecutor(srv.URL+"/", "tok", time.Second)

			got, err := exec.Transfer(context.Background(), req)
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, ledger.ErrTransferFailed)
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPExecutor_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := transfer.NewHTTPExecutor(srv.URL, "", time.Second).Transfer(context.Background(), transfer.Request{Reference: "WD-1"})
	assert.ErrorIs(t, err, ledger.ErrTransferFailed)
}

func TestManual(t *testing.T) {
	got, err := transfer.Manual{}.Transfer(context.Background(), transfer.Request{Reference: "WD-1"})
	require.NoError(t, err)
	assert.Equal(t, "MANUAL-WD-1", got.ConfirmationReference)
}
