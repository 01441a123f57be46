package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sanctuary/internal/allocation"
	"github.com/MrJamesThe3rd/sanctuary/internal/allocation/store"
	"github.com/MrJamesThe3rd/sanctuary/internal/database/databasetest"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
	paymentstore "github.com/MrJamesThe3rd/sanctuary/internal/payment/store"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
	walletstore "github.com/MrJamesThe3rd/sanctuary/internal/wallet/store"
)

func TestAllocate_TitheSplit(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()

	wallets := walletstore.New(db)
	payments := payment.NewService(paymentstore.New(db))

	general, err := wallets.GetOrCreate(ctx, wallet.Key{Type: wallet.TypeTithe}, nil)
	require.NoError(t, err)

	p := &payment.Payment{
		Amount:            1000,
		Type:              payment.TypeTithe,
		Status:            payment.StatusCompleted,
		TitheDistribution: payment.TitheDistribution{payment.TitheWelfare: true, payment.TitheStationFund: true},
	}
	require.NoError(t, payments.Record(ctx, p))

	svc := allocation.NewService(store.New(db, time.Second), payments, allocation.WithRejectDuplicates(true))

	applied, err := svc.Allocate(ctx, p)
	require.NoError(t, err)
	require.Len(t, applied, 2)

	for _, sub := range []string{"welfare", "stationFund"} {
		w, err := wallets.GetOrCreate(ctx, wallet.Key{Type: wallet.TypeTithe, SubType: sub}, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(500), w.Balance, sub)
		assert.Equal(t, int64(500), w.TotalDeposits, sub)
	}

	general, err = wallets.Get(ctx, general.ID)
	require.NoError(t, err)
	assert.Zero(t, general.Balance)

	_, err = svc.Allocate(ctx, p)
	assert.ErrorIs(t, err, ledger.ErrAlreadyAllocated)
}

func TestAllocatePayments_Batch(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()

	payments := payment.NewService(paymentstore.New(db))

	var ids []uuid.UUID

	for _, p := range []*payment.Payment{
		{Amount: 300, Type: payment.TypeOffering, Status: payment.StatusCompleted},
		{Amount: 200, Type: payment.TypeOffering, Status: payment.StatusCompleted},
		{Amount: 999, Type: payment.TypeOffering, Status: payment.StatusPending},
	} {
		require.NoError(t, payments.Record(ctx, p))
		ids = append(ids, p.ID)
	}

	svc := allocation.NewService(store.New(db, time.Second), payments)

	result, err := svc.AllocatePayments(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Succeeded)
	assert.Empty(t, result.Items[2].Applied)

	w, err := walletstore.New(db).GetOrCreate(ctx, wallet.Key{Type: wallet.TypeOffering}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(500), w.Balance)
}
