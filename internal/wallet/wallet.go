package wallet

import (
	"cmp"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
)

// Type names a wallet family. Besides the constants below, any payment type may be used
// so that unusual contribution categories still get a wallet of their own.
type Type string

const (
	TypeTithe           Type = "TITHE"
	TypeOffering        Type = "OFFERING"
	TypeDonation        Type = "DONATION"
	TypeSpecialOffering Type = "SPECIAL_OFFERING"
)

// Key identifies a wallet. An empty SubType is the general wallet of its type.
type Key struct {
	Type    Type
	SubType string
}

func (k Key) String() string {
	if k.SubType == "" {
		return string(k.Type)
	}

	return string(k.Type) + "/" + k.SubType
}

// Compare orders keys by type, then sub-type. Multi-wallet writes lock rows in this order.
func (k Key) Compare(other Key) int {
	if c := cmp.Compare(k.Type, other.Type); c != 0 {
		return c
	}

	return cmp.Compare(k.SubType, other.SubType)
}

type Wallet struct {
	ID                uuid.UUID
	Key               Key
	Balance           int64
	TotalDeposits     int64
	TotalWithdrawals  int64
	IsActive          bool
	SpecialOfferingID *uuid.UUID
	LastUpdated       time.Time
	CreatedAt         time.Time
}

type Summary struct {
	TotalBalance     int64 `json:"total_balance"`
	TotalDeposits    int64 `json:"total_deposits"`
	TotalWithdrawals int64 `json:"total_withdrawals"`
	ActiveWallets    int   `json:"active_wallets"`
}

type Group struct {
	Type    Type
	Balance int64
	Wallets []*Wallet
}

// Overview is the grouped, read-only view of all active wallets.
type Overview struct {
	Groups  []Group
	Summary Summary
}

// DefaultKeys lists the wallets every installation starts with.
func DefaultKeys() []Key {
	keys := []Key{
		{Type: TypeOffering},
		{Type: TypeDonation},
	}

	for _, c := range payment.TitheCategories {
		keys = append(keys, Key{Type: TypeTithe, SubType: string(c)})
	}

	return append(keys, Key{Type: TypeSpecialOffering})
}
