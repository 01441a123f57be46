package wallet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "TITHE", wallet.Key{Type: wallet.TypeTithe}.String())
	assert.Equal(t, "TITHE/welfare", wallet.Key{Type: wallet.TypeTithe, SubType: "welfare"}.String())

	general := wallet.Key{Type: wallet.TypeTithe}
	welfare := wallet.Key{Type: wallet.TypeTithe, SubType: "welfare"}
	offering := wallet.Key{Type: wallet.TypeOffering}

	assert.Negative(t, general.Compare(welfare))
	assert.Positive(t, welfare.Compare(offering))
	assert.Zero(t, welfare.Compare(welfare))
}

func TestDefaultKeys(t *testing.T) {
	keys := wallet.DefaultKeys()

	require.Len(t, keys, 8)
	assert.Equal(t, wallet.Key{Type: wallet.TypeOffering}, keys[0])
	assert.Contains(t, keys, wallet.Key{Type: wallet.TypeTithe, SubType: "campMeetingExpenses"})
	assert.Contains(t, keys, wallet.Key{Type: wallet.TypeTithe, SubType: "mediaMinistry"})
	assert.Equal(t, wallet.Key{Type: wallet.TypeSpecialOffering}, keys[7])
}

func TestService_BootstrapDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := wallet.NewMockRepository(ctrl)

	var created []wallet.Key

	repo.EXPECT().GetOrCreate(gomock.Any(), gomock.Any(), nil).Times(8).DoAndReturn(
		func(_ context.Context, key wallet.Key, _ *uuid.UUID) (*wallet.Wallet, error) {
			created = append(created, key)
			return &wallet.Wallet{ID: uuid.New(), Key: key, IsActive: true}, nil
		},
	)

	wallets, err := wallet.NewService(repo, nil, nil).BootstrapDefaults(context.Background())
	require.NoError(t, err)
	assert.Len(t, wallets, 8)
	assert.Equal(t, wallet.DefaultKeys(), created)
}

func TestService_Summary_Cached(t *testing.T) {
	ctx := context.Background()

	t.Run("Hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := wallet.NewMockRepository(ctrl)
		cache := wallet.NewMockSummaryCache(ctrl)
		cache.EXPECT().GetSummary(gomock.Any()).Return(&wallet.Summary{TotalBalance: 42}, int64(3), nil)

		got, err := wallet.NewService(repo, cache, nil).Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.TotalBalance)
	})

	t.Run("MissFillsCacheAtReadGeneration", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sum := &wallet.Summary{TotalBalance: 7, ActiveWallets: 1}

		repo := wallet.NewMockRepository(ctrl)
		cache := wallet.NewMockSummaryCache(ctrl)
		gomock.InOrder(
			cache.EXPECT().GetSummary(gomock.Any()).Return(nil, int64(7), wallet.ErrNotCached),
			repo.EXPECT().Summary(gomock.Any()).Return(sum, nil),
			cache.EXPECT().SetSummary(gomock.Any(), sum, int64(7)).Return(nil),
		)

		got, err := wallet.NewService(repo, cache, nil).Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, sum, got)
	})

	t.Run("CacheErrorFallsBack", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := wallet.NewMockRepository(ctrl)
		cache := wallet.NewMockSummaryCache(ctrl)
		cache.EXPECT().GetSummary(gomock.Any()).Return(nil, int64(0), errors.New("connection refused"))
		repo.EXPECT().Summary(gomock.Any()).Return(&wallet.Summary{}, nil)
		cache.EXPECT().SetSummary(gomock.Any(), gomock.Any(), int64(0)).Return(errors.New("connection refused"))

		_, err := wallet.NewService(repo, cache, nil).Summary(ctx)
		assert.NoError(t, err)
	})
}

func TestService_Grouped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := wallet.NewMockRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), true).Return([]*wallet.Wallet{
		{Key: wallet.Key{Type: wallet.TypeTithe, SubType: "welfare"}, Balance: 500},
		{Key: wallet.Key{Type: wallet.TypeOffering}, Balance: 300},
		{Key: wallet.Key{Type: wallet.TypeTithe, SubType: "stationFund"}, Balance: 250},
	}, nil)
	repo.EXPECT().Summary(gomock.Any()).Return(&wallet.Summary{TotalBalance: 1050, ActiveWallets: 3}, nil)

	overview, err := wallet.NewService(repo, nil, nil).Grouped(context.Background())
	require.NoError(t, err)

	require.Len(t, overview.Groups, 2)
	assert.Equal(t, wallet.TypeOffering, overview.Groups[0].Type)
	assert.Equal(t, int64(300), overview.Groups[0].Balance)
	assert.Equal(t, wallet.TypeTithe, overview.Groups[1].Type)
	assert.Equal(t, int64(750), overview.Groups[1].Balance)
	assert.Equal(t, "stationFund", overview.Groups[1].Wallets[0].Key.SubType)
	assert.Equal(t, int64(1050), overview.Summary.TotalBalance)
}

func TestService_Deactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := wallet.NewMockRepository(ctrl)
	repo.EXPECT().SetActive(gomock.Any(), id, false).Return(nil, ledger.ErrNotFound)

	_, err := wallet.NewService(repo, nil, nil).Deactivate(context.Background(), id)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_InvalidateSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := wallet.NewMockSummaryCache(ctrl)
	cache.EXPECT().DeleteSummary(gomock.Any()).Return(errors.New("redis down"))

	wallet.NewService(wallet.NewMockRepository(ctrl), cache, nil).InvalidateSummary(context.Background())
}
