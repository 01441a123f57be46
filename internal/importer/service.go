// Package importer loads completed-payment feeds, stores the payments and allocates them.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/sanctuary/internal/allocation"
	"github.com/MrJamesThe3rd/sanctuary/internal/importer/csvfeed"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
)

type Format string

const (
	FormatCSV Format = "csv"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Parser interface {
	Parse(r io.Reader) ([]*payment.Payment, error)
}

type PaymentRecorder interface {
	Record(ctx context.Context, p *payment.Payment) error
}

type Allocator interface {
	AllocateBatch(ctx context.Context, payments []*payment.Payment) *allocation.BatchResult
}

type Failure struct {
	Reference string
	Err       error
}

type Result struct {
	Parsed int
	// Duplicates lists references already recorded by an earlier import.
	Duplicates []string
	Failures   []Failure
	Recorded   []*payment.Payment
	Allocation *allocation.BatchResult
}

type Service struct {
	parsers   map[Format]Parser
	payments  PaymentRecorder
	allocator Allocator
	logger    *slog.Logger
}

func NewService(payments PaymentRecorder, allocator Allocator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		parsers: map[Format]Parser{
			FormatCSV: csvfeed.New(),
		},
		payments:  payments,
		allocator: allocator,
		logger:    logger,
	}
}

// Import parses the feed, stores every new payment and allocates the stored ones. A file
// that does not parse imports nothing. Re-importing a feed skips references already seen.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader) (*Result, error) {
	parser, ok := s.parsers[format]
	if !ok {
		return nil, ledger.Invalid("format", "unknown feed format %q", format)
	}

	parsed, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s feed: %w", format, err)
	}

	result := &Result{Parsed: len(parsed)}

	for _, p := range parsed {
		err := s.payments.Record(ctx, p)

		switch {
		case err == nil:
			result.Recorded = append(result.Recorded, p)
		case errors.Is(err, payment.ErrDuplicateReference):
			result.Duplicates = append(result.Duplicates, p.Reference)
		default:
			s.logger.WarnContext(ctx, "failed to record payment", "reference", p.Reference, "error", err)
			result.Failures = append(result.Failures, Failure{Reference: p.Reference, Err: err})
		}
	}

	result.Allocation = s.allocator.AllocateBatch(ctx, result.Recorded)

	s.logger.InfoContext(ctx, "payment feed imported",
		"format", format, "parsed", result.Parsed, "recorded", len(result.Recorded),
		"duplicates", len(result.Duplicates), "allocation_failures", result.Allocation.Failed)

	return result, nil
}
