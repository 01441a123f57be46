package allocation

import (
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
)

// Entry is one planned credit.
type Entry struct {
	Key               wallet.Key
	Amount            int64
	SpecialOfferingID *uuid.UUID
}

// Plan computes the credits for a payment without touching storage. Ineligible payments
// plan to nothing. The entries always sum to the payment amount and come back in wallet
// key order.
func Plan(p *payment.Payment) []Entry {
	if !p.Allocatable() || p.Amount <= 0 {
		return nil
	}

	var entries []Entry

	switch {
	case p.Type == payment.TypeTithe && p.TitheDistribution != nil:
		entries = planTithe(p.Amount, p.TitheDistribution.Active())
	case p.Type.IsSpecialOffering() && p.SpecialOffering != nil:
		entry := Entry{
			Key:    wallet.Key{Type: wallet.TypeSpecialOffering, SubType: p.SpecialOffering.Code},
			Amount: p.Amount,
		}

		if p.SpecialOffering.ID != uuid.Nil {
			id := p.SpecialOffering.ID
			entry.SpecialOfferingID = &id
		}

		entries = []Entry{entry}
	default:
		entries = []Entry{{Key: wallet.Key{Type: wallet.Type(p.Type)}, Amount: p.Amount}}
	}

	slices.SortFunc(entries, func(a, b Entry) int { return a.Key.Compare(b.Key) })

	return entries
}

func planTithe(amount int64, active []payment.TitheCategory) []Entry {
	if len(active) == 0 {
		return []Entry{{Key: wallet.Key{Type: wallet.TypeTithe}, Amount: amount}}
	}

	shares := splitEvenly(amount, len(active))
	entries := make([]Entry, 0, len(active))

	for i, c := range active {
		if shares[i] == 0 {
			continue
		}

		entries = append(entries, Entry{
			Key:    wallet.Key{Type: wallet.TypeTithe, SubType: string(c)},
			Amount: shares[i],
		})
	}

	return entries
}

// splitEvenly divides amount into n shares; the remainder goes to the first share.
func splitEvenly(amount int64, n int) []int64 {
	share := amount / int64(n)
	shares := make([]int64, n)

	for i := range shares {
		shares[i] = share
	}

	shares[0] += amount - share*int64(n)

	return shares
}
