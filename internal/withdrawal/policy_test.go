package withdrawal

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
)

func TestPolicy_ValidCredential(t *testing.T) {
	p := Policy{Credentials: []string{"alpha", "beta"}}

	assert.True(t, p.validCredential("alpha"))
	assert.True(t, p.validCredential("beta"))
	assert.False(t, p.validCredential("gamma"))
	assert.False(t, p.validCredential(""))
	assert.False(t, Policy{}.validCredential("alpha"))
}

func TestBusinessHours_Contains(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)
	bh := &BusinessHours{Start: 8, End: 17, Location: nairobi}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"Opening", time.Date(2026, 3, 2, 5, 0, 0, 0, time.UTC), true},
		{"BeforeOpening", time.Date(2026, 3, 2, 4, 59, 0, 0, time.UTC), false},
		{"LastHour", time.Date(2026, 3, 2, 13, 59, 0, 0, time.UTC), true},
		{"Closing", time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bh.Contains(tt.at))
		})
	}
}

func TestValidateParams(t *testing.T) {
	type testCase struct {
		name    string
		params  CreateParams
		wantErr error
		check   func(t *testing.T, p CreateParams)
	}

	tests := []testCase{
		{
			name: "MobileNumberCompacted",
			params: CreateParams{
				Amount: 5000, Purpose: " Fuel ", RequestedBy: "clerk",
				Method: MethodMobileMoney, DestinationPhone: "+254 712-345-678",
			},
			check: func(t *testing.T, p CreateParams) {
				assert.Equal(t, "+254712345678", p.DestinationPhone)
				assert.Equal(t, "Fuel", p.Purpose)
			},
		},
		{
			name: "LocalMobilePrefix",
			params: CreateParams{
				Amount: 5000, Purpose: "Fuel", RequestedBy: "clerk",
				Method: MethodMobileMoney, DestinationPhone: "0112345678",
			},
		},
		{
			name: "CashClearsDestinations",
			params: CreateParams{
				Amount: 5000, Purpose: "Flowers", RequestedBy: "clerk",
				Method: MethodCash, DestinationAccount: "12345678", DestinationPhone: "0712345678",
			},
			check: func(t *testing.T, p CreateParams) {
				assert.Empty(t, p.DestinationAccount)
				assert.Empty(t, p.DestinationPhone)
			},
		},
		{
			name:    "MissingRequester",
			params:  CreateParams{Amount: 5000, Purpose: "Fuel", Method: MethodCash},
			wantErr: ledger.ErrValidation,
		},
		{
			name:    "NegativeAmount",
			params:  CreateParams{Amount: -1, Purpose: "Fuel", RequestedBy: "clerk", Method: MethodCash},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name: "ShortAccount",
			params: CreateParams{
				Amount: 5000, Purpose: "Fuel", RequestedBy: "clerk",
				Method: MethodBankTransfer, DestinationAccount: "1234567",
			},
			wantErr: ledger.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateParams(&tt.params, 1000)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t, tt.params)
			}
		})
	}
}

func TestNewReference(t *testing.T) {
	at := time.Date(2026, 3, 2, 10, 4, 5, 0, time.FixedZone("EAT", 3*60*60))

	ref := NewReference(at)
	assert.Regexp(t, regexp.MustCompile(`^WD-20260302070405-[0-9A-Z]{6}$`), ref)

	seen := map[string]bool{}
	for range 50 {
		seen[NewReference(at)] = true
	}

	assert.Greater(t, len(seen), 45)
}
