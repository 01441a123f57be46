package payment

import (
	"strings"

	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
)

// Normalize canonicalises a payment in place before it is validated or stored.
// Type names are trimmed and upper-cased, EXPENSE payments are always flagged as expenses,
// tithe flags are dropped from non-tithe payments, and a special-offering reference is
// dropped from payments that are not special offerings.
func Normalize(p *Payment) {
	p.Type = Type(strings.ToUpper(strings.TrimSpace(string(p.Type))))
	p.Status = Status(strings.ToUpper(strings.TrimSpace(string(p.Status))))
	p.Reference = strings.TrimSpace(p.Reference)
	p.Description = strings.TrimSpace(p.Description)

	if p.Type == TypeExpense {
		p.IsExpense = true
	}

	if p.Type != TypeTithe {
		p.TitheDistribution = nil
	}

	if p.SpecialOffering != nil {
		p.SpecialOffering.Code = strings.TrimSpace(p.SpecialOffering.Code)

		if !p.Type.IsSpecialOffering() || p.SpecialOffering.Code == "" {
			p.SpecialOffering = nil
		}
	}
}

// Validate rejects payments that cannot be stored. Call Normalize first.
func Validate(p *Payment) error {
	if p.Amount <= 0 {
		return ledger.ErrInvalidAmount
	}

	if p.Type == "" {
		return ledger.Invalid("payment_type", "is required")
	}

	if !p.Status.Valid() {
		return ledger.Invalid("status", "%q is not a payment status", p.Status)
	}

	for c := range p.TitheDistribution {
		if !c.Valid() {
			return ledger.Invalid("tithe_distribution", "unknown category %q", c)
		}
	}

	return nil
}
