// Package respond writes JSON responses and maps ledger errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
	"github.com/MrJamesThe3rd/sanctuary/internal/withdrawal"
)

// retryAfterSeconds is sent with concurrency conflicts.
const retryAfterSeconds = "1"

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Status returns the HTTP status for an error from the ledger services.
func Status(err error) int {
	switch {
	case errors.Is(err, ledger.ErrConcurrencyConflict),
		errors.Is(err, ledger.ErrInvalidState),
		errors.Is(err, ledger.ErrDuplicateApproval),
		errors.Is(err, ledger.ErrAlreadyAllocated),
		errors.Is(err, withdrawal.ErrDuplicateReference),
		errors.Is(err, payment.ErrDuplicateReference):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrWalletInactive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrInvalidCredential):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

// Error writes err as a JSON error body. Internal errors are logged and hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		JSON(w, status, errorResponse{Error: "internal error"})

		return
	}

	if ledger.Retryable(err) {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}

	resp := errorResponse{Error: err.Error()}

	var verr *ledger.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}

	JSON(w, status, resp)
}

// BadRequest reports a malformed request that never reached a service.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
