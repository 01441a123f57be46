package allocation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/sanctuary/internal/allocation"
	"github.com/MrJamesThe3rd/sanctuary/internal/audit"
	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
	"github.com/MrJamesThe3rd/sanctuary/internal/payment"
	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
)

func walletFor(key wallet.Key) *wallet.Wallet {
	return &wallet.Wallet{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(key.String())), Key: key, IsActive: true}
}

func TestService_Allocate(t *testing.T) {
	ctx := context.Background()

	titheID := uuid.New()
	welfare := walletFor(tithe("welfare"))
	station := walletFor(tithe("stationFund"))

	type testCase struct {
		name       string
		payment    *payment.Payment
		opts       []allocation.Option
		setupMock  func(repo *allocation.MockRepository, tx *allocation.MockTx)
		want       []allocation.Applied
		wantErr    error
		wantErrMsg string
	}

	tests := []testCase{
		{
			name: "TitheSplitInKeyOrder",
			payment: &payment.Payment{
				ID: titheID, Amount: 1000, Type: payment.TypeTithe, Status: payment.StatusCompleted,
				TitheDistribution: payment.TitheDistribution{payment.TitheWelfare: true, payment.TitheStationFund: true},
			},
			setupMock: func(repo *allocation.MockRepository, tx *allocation.MockTx) {
				repo.EXPECT().BeginAllocation(gomock.Any()).Return(tx, nil)
				gomock.InOrder(
					tx.EXPECT().GetOrCreateWallet(gomock.Any(), tithe("stationFund"), nil).Return(station, nil),
					tx.EXPECT().CreditWallet(gomock.Any(), station.ID, int64(500)).Return(station, nil),
					tx.EXPECT().RecordAllocation(gomock.Any(), titheID, station.ID, int64(500)).Return(nil),
					tx.EXPECT().GetOrCreateWallet(gomock.Any(), tithe("welfare"), nil).Return(welfare, nil),
					tx.EXPECT().CreditWallet(gomock.Any(), welfare.ID, int64(500)).Return(welfare, nil),
					tx.EXPECT().RecordAllocation(gomock.Any(), titheID, welfare.ID, int64(500)).Return(nil),
					tx.EXPECT().Commit().Return(nil),
				)
				tx.EXPECT().Rollback().Return(nil)
			},
			want: []allocation.Applied{
				{Key: tithe("stationFund"), WalletID: station.ID, Amount: 500},
				{Key: tithe("welfare"), WalletID: welfare.ID, Amount: 500},
			},
		},
		{
			name:    "IneligibleIsNoop",
			payment: &payment.Payment{ID: uuid.New(), Amount: 10, Type: payment.TypeOffering, Status: payment.StatusFailed},
			setupMock: func(repo *allocation.MockRepository, tx *allocation.MockTx) {
			},
		},
		{
			name:      "InvalidAmount",
			payment:   &payment.Payment{ID: uuid.New(), Amount: 0, Type: payment.TypeOffering, Status: payment.StatusCompleted},
			setupMock: func(repo *allocation.MockRepository, tx *allocation.MockTx) {},
			wantErr:   ledger.ErrInvalidAmount,
		},
		{
			name:    "CreditFailureRollsBack",
			payment: &payment.Payment{ID: uuid.New(), Amount: 10, Type: payment.TypeOffering, Status: payment.StatusCompleted},
			setupMock: func(repo *allocation.MockRepository, tx *allocation.MockTx) {
				offering := walletFor(wallet.Key{Type: wallet.TypeOffering})

				repo.EXPECT().BeginAllocation(gomock.Any()).Return(tx, nil)
				tx.EXPECT().GetOrCreateWallet(gomock.Any(), offering.Key, nil).Return(offering, nil)
				tx.EXPECT().CreditWallet(gomock.Any(), offering.ID, int64(10)).Return(nil, ledger.ErrConcurrencyConflict)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: ledger.ErrConcurrencyConflict,
		},
		{
			name:    "DuplicateRejectedWhenEnabled",
			payment: &payment.Payment{ID: uuid.New(), Amount: 10, Type: payment.TypeOffering, Status: payment.StatusCompleted},
			opts:    []allocation.Option{allocation.WithRejectDuplicates(true)},
			setupMock: func(repo *allocation.MockRepository, tx *allocation.MockTx) {
				repo.EXPECT().BeginAllocation(gomock.Any()).Return(tx, nil)
				tx.EXPECT().HasAllocations(gomock.Any(), gomock.Any()).Return(true, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: ledger.ErrAlreadyAllocated,
		},
		{
			name:    "BeginFails",
			payment: &payment.Payment{ID: uuid.New(), Amount: 10, Type: payment.TypeDonation, Status: payment.StatusCompleted},
			setupMock: func(repo *allocation.MockRepository, tx *allocation.MockTx) {
				repo.EXPECT().BeginAllocation(gomock.Any()).Return(nil, errors.New("pool exhausted"))
			},
			wantErrMsg: "pool exhausted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := allocation.NewMockRepository(ctrl)
			tx := allocation.NewMockTx(ctrl)
			tt.setupMock(repo, tx)

			svc := allocation.NewService(repo, nil, tt.opts...)

			got, err := svc.Allocate(ctx, tt.payment)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestService_Allocate_EmitsAndInvalidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	offering := walletFor(wallet.Key{Type: wallet.TypeOffering})
	p := &payment.Payment{ID: uuid.New(), Amount: 250, Type: payment.TypeOffering, Status: payment.StatusCompleted}

	repo := allocation.NewMockRepository(ctrl)
	tx := allocation.NewMockTx(ctrl)
	inval := allocation.NewMockSummaryInvalidator(ctrl)
	pub := audit.NewMockPublisher(ctrl)

	repo.EXPECT().BeginAllocation(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetOrCreateWallet(gomock.Any(), offering.Key, nil).Return(offering, nil)
	tx.EXPECT().CreditWallet(gomock.Any(), offering.ID, int64(250)).Return(offering, nil)
	tx.EXPECT().RecordAllocation(gomock.Any(), p.ID, offering.ID, int64(250)).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)
	inval.EXPECT().InvalidateSummary(gomock.Any())
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		assert.Equal(t, audit.TypeWalletCredited, e.Type)
		assert.Equal(t, "OFFERING", e.Subject)
		assert.Equal(t, int64(250), e.Amount)
		assert.Equal(t, p.ID.String(), e.Attributes["payment_id"])

		return nil
	})

	svc := allocation.NewService(repo, nil,
		allocation.WithPublisher(pub),
		allocation.WithSummaryInvalidator(inval),
	)

	_, err := svc.Allocate(context.Background(), p)
	require.NoError(t, err)
}

func TestService_AllocatePayments_IsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	good := &payment.Payment{ID: uuid.New(), Amount: 100, Type: payment.TypeDonation, Status: payment.StatusCompleted}
	bad := &payment.Payment{ID: uuid.New(), Amount: 100, Type: payment.TypeOffering, Status: payment.StatusCompleted}
	missing := uuid.New()

	donation := walletFor(wallet.Key{Type: wallet.TypeDonation})
	offering := walletFor(wallet.Key{Type: wallet.TypeOffering})

	repo := allocation.NewMockRepository(ctrl)
	source := allocation.NewMockPaymentSource(ctrl)
	goodTx := allocation.NewMockTx(ctrl)
	badTx := allocation.NewMockTx(ctrl)

	ids := []uuid.UUID{bad.ID, missing, good.ID}
	source.EXPECT().GetMany(gomock.Any(), ids).Return([]*payment.Payment{bad, good}, nil)

	gomock.InOrder(
		repo.EXPECT().BeginAllocation(gomock.Any()).Return(badTx, nil),
		repo.EXPECT().BeginAllocation(gomock.Any()).Return(goodTx, nil),
	)

	badTx.EXPECT().GetOrCreateWallet(gomock.Any(), offering.Key, nil).Return(offering, nil)
	badTx.EXPECT().CreditWallet(gomock.Any(), offering.ID, int64(100)).Return(nil, errors.New("boom"))
	badTx.EXPECT().Rollback().Return(nil)

	goodTx.EXPECT().GetOrCreateWallet(gomock.Any(), donation.Key, nil).Return(donation, nil)
	goodTx.EXPECT().CreditWallet(gomock.Any(), donation.ID, int64(100)).Return(donation, nil)
	goodTx.EXPECT().RecordAllocation(gomock.Any(), good.ID, donation.ID, int64(100)).Return(nil)
	goodTx.EXPECT().Commit().Return(nil)
	goodTx.EXPECT().Rollback().Return(nil)

	svc := allocation.NewService(repo, source)

	result, err := svc.AllocatePayments(context.Background(), ids)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Items, 3)
	assert.Error(t, result.Items[0].Err)
	assert.NoError(t, result.Items[1].Err)
	assert.Equal(t, missing, result.Items[2].PaymentID)
	assert.ErrorIs(t, result.Items[2].Err, ledger.ErrNotFound)
}

func TestService_RecordAndAllocate(t *testing.T) {
	ctx := context.Background()

	storedID := uuid.New()
	offering := walletFor(wallet.Key{Type: wallet.TypeOffering})

	stamp := func(_ context.Context, p *payment.Payment) error {
		p.ID = storedID
		return nil
	}

	type testCase struct {
		name      string
		payment   *payment.Payment
		setupMock func(repo *allocation.MockRepository, tx *allocation.MockTx)
		want      []allocation.Applied
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "StoresBeforeCrediting",
			payment: &payment.Payment{Amount: 400, Type: payment.TypeOffering, Status: payment.StatusCompleted},
			setupMock: func(repo *allocation.MockRepository, tx *allocation.MockTx) {
				repo.EXPECT().BeginAllocation(gomock.Any()).Return(tx, nil)
				gomock.InOrder(
					tx.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).DoAndReturn(stamp),
					tx.EXPECT().GetOrCreateWallet(gomock.Any(), offering.Key, nil).Return(offering, nil),
					tx.EXPECT().CreditWallet(gomock.Any(), offering.ID, int64(400)).Return(offering, nil),
					tx.EXPECT().RecordAllocation(gomock.Any(), storedID, offering.ID, int64(400)).Return(nil),
					tx.EXPECT().Commit().Return(nil),
				)
				tx.EXPECT().Rollback().Return(nil)
			},
			want: []allocation.Applied{{Key: offering.Key, WalletID: offering.ID, Amount: 400}},
		},
		{
			name:    "PendingStoredWithoutCredits",
			payment: &payment.Payment{Amount: 400, Type: payment.TypeOffering, Status: payment.StatusPending},
			setupMock: func(repo *allocation.MockRepository, tx *allocation.MockTx) {
				repo.EXPECT().BeginAllocation(gomock.Any()).Return(tx, nil)
				tx.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).DoAndReturn(stamp)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			want: []allocation.Applied{},
		},
		{
			name: "DuplicateReference",
			payment: &payment.Payment{
				Amount: 400, Type: payment.TypeOffering, Status: payment.StatusCompleted, Reference: "MPESA-9",
			},
			setupMock: func(repo *allocation.MockRepository, tx *allocation.MockTx) {
				repo.EXPECT().BeginAllocation(gomock.Any()).Return(tx, nil)
				tx.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).Return(payment.ErrDuplicateReference)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: payment.ErrDuplicateReference,
		},
		{
			name:    "CreditFailureDiscardsPayment",
			payment: &payment.Payment{Amount: 400, Type: payment.TypeOffering, Status: payment.StatusCompleted},
			setupMock: func(repo *allocation.MockRepository, tx *allocation.MockTx) {
				repo.EXPECT().BeginAllocation(gomock.Any()).Return(tx, nil)
				tx.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).DoAndReturn(stamp)
				tx.EXPECT().GetOrCreateWallet(gomock.Any(), offering.Key, nil).Return(offering, nil)
				tx.EXPECT().CreditWallet(gomock.Any(), offering.ID, int64(400)).Return(nil, ledger.ErrConcurrencyConflict)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: ledger.ErrConcurrencyConflict,
		},
		{
			name:      "InvalidAmount",
			payment:   &payment.Payment{Amount: -5, Type: payment.TypeOffering, Status: payment.StatusCompleted},
			setupMock: func(repo *allocation.MockRepository, tx *allocation.MockTx) {},
			wantErr:   ledger.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := allocation.NewMockRepository(ctrl)
			tx := allocation.NewMockTx(ctrl)
			tt.setupMock(repo, tx)

			svc := allocation.NewService(repo, nil, allocation.WithRejectDuplicates(true))

			got, err := svc.RecordAndAllocate(ctx, tt.payment)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, storedID, tt.payment.ID)
		})
	}
}
