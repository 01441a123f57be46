package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrDuplicateReference = errors.New("payment reference already recorded")

type Type string

const (
	TypeTithe           Type = "TITHE"
	TypeOffering        Type = "OFFERING"
	TypeDonation        Type = "DONATION"
	TypeSpecialOffering Type = "SPECIAL_OFFERING"
	TypeExpense         Type = "EXPENSE"
)

const specialPrefix = "SPECIAL_"

// IsSpecialOffering reports whether t names a special-offering contribution, either the
// generic SPECIAL_OFFERING type or a campaign-specific SPECIAL_* type.
func (t Type) IsSpecialOffering() bool {
	return strings.HasPrefix(string(t), specialPrefix)
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}

	return false
}

type TitheCategory string

const (
	TitheCampMeetingExpenses TitheCategory = "campMeetingExpenses"
	TitheWelfare             TitheCategory = "welfare"
	TitheThanksgiving        TitheCategory = "thanksgiving"
	TitheStationFund         TitheCategory = "stationFund"
	TitheMediaMinistry       TitheCategory = "mediaMinistry"
)

// TitheCategories is the canonical category order. Split remainders go to the first active entry.
var TitheCategories = []TitheCategory{
	TitheCampMeetingExpenses,
	TitheWelfare,
	TitheThanksgiving,
	TitheStationFund,
	TitheMediaMinistry,
}

func (c TitheCategory) Valid() bool {
	for _, known := range TitheCategories {
		if c == known {
			return true
		}
	}

	return false
}

// TitheDistribution flags the categories a tithe should be split across.
type TitheDistribution map[TitheCategory]bool

// Active returns the flagged categories in canonical order.
func (d TitheDistribution) Active() []TitheCategory {
	var active []TitheCategory

	for _, c := range TitheCategories {
		if d[c] {
			active = append(active, c)
		}
	}

	return active
}

type SpecialOffering struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

type Payment struct {
	ID                uuid.UUID
	Amount            int64
	Type              Type
	Status            Status
	IsExpense         bool
	TitheDistribution TitheDistribution
	SpecialOffering   *SpecialOffering
	Reference         string
	Description       string
	PaidAt            time.Time
	CreatedAt         time.Time
}

// Allocatable reports whether the payment should be credited to wallets.
func (p *Payment) Allocatable() bool {
	return p.Status == StatusCompleted && !p.IsExpense
}
