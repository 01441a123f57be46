// Package audit records what the ledger did after each committed change.
package audit

import (
	"context"
	"log/slog"
	"time"
)

const (
	TypeWalletCredited          = "wallet.credited"
	TypeWithdrawalCreated       = "withdrawal.created"
	TypeWithdrawalApproved      = "withdrawal.approved"
	TypeWithdrawalCompleted     = "withdrawal.completed"
	TypeWithdrawalCancelled     = "withdrawal.cancelled"
	TypeTransferFailed          = "transfer.failed"
	TypeReconciliationCompleted = "reconciliation.completed"
)

type Event struct {
	Type       string            `json:"type"`
	Subject    string            `json:"subject"`
	Actor      string            `json:"actor,omitempty"`
	Amount     int64             `json:"amount,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

//go:generate mockgen -source=audit.go -destination=publisher_mock.go -package=audit
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Discard drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }

// LogPublisher writes events as structured log lines.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogPublisher{logger: logger.With("component", "audit")}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	attrs := []any{
		"type", event.Type,
		"subject", event.Subject,
		"occurred_at", event.OccurredAt,
	}

	if event.Actor != "" {
		attrs = append(attrs, "actor", event.Actor)
	}

	if event.Amount != 0 {
		attrs = append(attrs, "amount", event.Amount)
	}

	for k, v := range event.Attributes {
		attrs = append(attrs, k, v)
	}

	p.logger.InfoContext(ctx, "audit event", attrs...)

	return nil
}

// Emit stamps the event and publishes it, logging rather than returning a failure.
// Audit delivery never undoes a committed change.
func Emit(ctx context.Context, pub Publisher, logger *slog.Logger, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := pub.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "failed to publish audit event", "type", event.Type, "subject", event.Subject, "error", err)
	}
}
