package withdrawal

import (
	"regexp"
	"strings"

	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
)

var (
	bankAccountPattern  = regexp.MustCompile(`^\d{8,20}$`)
	mobileNumberPattern = regexp.MustCompile(`^(?:\+?254|0)[17]\d{8}$`)
)

func compact(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
}

// validateParams checks the request fields that need no stored state, normalising
// destinations in place.
func validateParams(p *CreateParams, minAmount int64) error {
	if p.RequestedBy == "" {
		return ledger.Invalid("requested_by", "is required")
	}

	if p.Amount <= 0 {
		return ledger.ErrInvalidAmount
	}

	if p.Amount < minAmount {
		return ledger.Invalid("amount", "must be at least %s", ledger.FormatAmount(minAmount))
	}

	p.Purpose = strings.TrimSpace(p.Purpose)
	if p.Purpose == "" {
		return ledger.Invalid("purpose", "is required")
	}

	switch p.Method {
	case MethodBankTransfer:
		p.DestinationAccount = compact(p.DestinationAccount)
		if !bankAccountPattern.MatchString(p.DestinationAccount) {
			return ledger.Invalid("destination_account", "must be 8 to 20 digits")
		}
	case MethodMobileMoney:
		p.DestinationPhone = compact(p.DestinationPhone)
		if !mobileNumberPattern.MatchString(p.DestinationPhone) {
			return ledger.Invalid("destination_phone", "is not a valid mobile number")
		}
	case MethodCash:
		p.DestinationAccount, p.DestinationPhone = "", ""
	default:
		return ledger.Invalid("method", "%q is not a withdrawal method", p.Method)
	}

	return nil
}
