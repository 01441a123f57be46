package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sanctuary/internal/http/respond"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
	"github.com/MrJamesThe3rd/sanctuary/internal/withdrawal"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: ledger.ErrNotFound, want: http.StatusNotFound},
		{err: fmt.Errorf("getting wallet: %w", ledger.ErrNotFound), want: http.StatusNotFound},
		{err: ledger.ErrConcurrencyConflict, want: http.StatusConflict},
		{err: ledger.ErrInvalidState, want: http.StatusConflict},
		{err: ledger.ErrDuplicateApproval, want: http.StatusConflict},
		{err: ledger.ErrAlreadyAllocated, want: http.StatusConflict},
		{err: withdrawal.ErrDuplicateReference, want: http.StatusConflict},
		{err: fmt.Errorf("recording payment: %w", payment.ErrDuplicateReference), want: http.StatusConflict},
		{err: ledger.ErrInsufficientFunds, want: http.StatusUnprocessableEntity},
		{err: ledger.ErrWalletInactive, want: http.StatusUnprocessableEntity},
		{
			err:  &ledger.ValidationError{Field: "amount", Reason: "exceeds balance", Err: ledger.ErrInsufficientFunds},
			want: http.StatusUnprocessableEntity,
		},
		{err: ledger.Invalid("purpose", "is required"), want: http.StatusBadRequest},
		{err: ledger.ErrInvalidCredential, want: http.StatusForbidden},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, respond.Status(tt.err))
		})
	}
}

func TestError(t *testing.T) {
	t.Run("ValidationCarriesField", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respond.Error(rec, httptest.NewRequest(http.MethodPost, "/", nil), ledger.Invalid("purpose", "is required"))

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "purpose", body["field"])
	})

	t.Run("ConflictIsRetryable", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respond.Error(rec, httptest.NewRequest(http.MethodPost, "/", nil), ledger.ErrConcurrencyConflict)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})

	t.Run("InternalIsHidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respond.Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
	})
}
