// Package transfer moves approved withdrawals out to the destination account.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
)

type Request struct {
	Reference   string
	Amount      int64
	Method      string
	Destination string
	Purpose     string
}

type Result struct {
	TransactionID         string
	ConfirmationReference string
}

// HTTPExecutor posts transfers to a payout gateway.
type HTTPExecutor struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPExecutor(baseURL, token string, timeout time.Duration) *HTTPExecutor {
	return &HTTPExecutor{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type transferRequest struct {
	Reference   string `json:"reference"`
	Amount      string `json:"amount"`
	Method      string `json:"method"`
	Destination string `json:"destination"`
	Purpose     string `json:"purpose"`
}

type transferResponse struct {
	TransactionID         string `json:"transaction_id"`
	ConfirmationReference string `json:"confirmation_reference"`
	Message               string `json:"message"`
}

// Transfer submits the payout. The withdrawal reference doubles as the idempotency key, so
// the gateway can drop a resubmitted transfer.
func (e *HTTPExecutor) Transfer(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(transferRequest{
		Reference:   req.Reference,
		Amount:      ledger.FormatAmount(req.Amount),
		Method:      req.Method,
		Destination: req.Destination,
		Purpose:     req.Purpose,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ledger.ErrTransferFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ledger.ErrTransferFailed, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.Reference)

	if e.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrTransferFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ledger.ErrTransferFailed, err)
	}

	var out transferResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("%w: decoding response: %v", ledger.ErrTransferFailed, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Message
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}

		return nil, fmt.Errorf("%w: gateway returned %d: %s", ledger.ErrTransferFailed, resp.StatusCode, msg)
	}

	if out.TransactionID == "" {
		return nil, fmt.Errorf("%w: gateway response has no transaction id", ledger.ErrTransferFailed)
	}

	return &Result{TransactionID: out.TransactionID, ConfirmationReference: out.ConfirmationReference}, nil
}

// Manual records that the payout is made outside the system, by cheque or counter cash.
type Manual struct{}

func (Manual) Transfer(_ context.Context, req Request) (*Result, error) {
	return &Result{ConfirmationReference: "MANUAL-" + req.Reference}, nil
}
