package wallet

import (
	"context"
	"testing"
	"time"

	apperrors "wealthcheck/internal/errors"
	"wealthcheck/internal/models"
	"wealthcheck/internal/repositories"
	cachebackend "wealthcheck/internal/repositories/cache"
	"wealthcheck/internal/services/metrics"
	"wealthcheck/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) WalletChanged(userID uint, walletIDs ...uint) {
	m.Called(userID, walletIDs)
}

func (m *MockInvalidator) WalletCreated(userID, walletID, transactionID uint) {
	m.Called(userID, walletID, transactionID)
}

func newTestService(t *testing.T) (Service, *gorm.DB, *MockInvalidator, *models.Account) {
	db := testutil.NewDB(t)
	inv := new(MockInvalidator)
	svc := NewService(repositories.NewStore(db), cachebackend.NewMemoryCache(time.Minute), inv, metrics.Noop{})
	return svc, db, inv, testutil.SeedAccount(t, db, "owner@example.com")
}

func TestWalletService_Create(t *testing.T) {
	svc, db, inv, user := newTestService(t)
	ctx := context.Background()

	inv.On("WalletCreated", user.ID, mock.AnythingOfType("uint"), mock.AnythingOfType("uint")).Return().Once()

	w, err := svc.Create(ctx, user.ID, CreateRequest{Name: "  Cash ", Balance: testutil.Dec("250.00")})
	require.NoError(t, err)
	assert.Equal(t, "Cash", w.Name)
	assert.True(t, w.Balance.Equal(testutil.Dec("250")))
	testutil.AssertBalance(t, db, w.ID, "250.00")

	var initial models.Transaction
	require.NoError(t, db.Where("to_wallet_id = ?", w.ID).First(&initial).Error)
	assert.Equal(t, models.TransactionTypeIncome, initial.Type)
	assert.Equal(t, "Cash initial balance", initial.Title)

	inv.AssertExpectations(t)
}

func TestWalletService_CreateValidation(t *testing.T) {
	svc, db, inv, user := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"blank name", CreateRequest{Name: " ", Balance: testutil.Dec("1")}},
		{"zero balance", CreateRequest{Name: "Cash", Balance: testutil.Dec("0")}},
		{"negative balance", CreateRequest{Name: "Cash", Balance: testutil.Dec("-5")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, user.ID, tt.req)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransactionRequest)
		})
	}

	var wallets int64
	require.NoError(t, db.Model(&models.Wallet{}).Count(&wallets).Error)
	assert.Equal(t, int64(0), wallets, "failed creation leaves no wallet behind")
	inv.AssertNotCalled(t, "WalletCreated", mock.Anything, mock.Anything, mock.Anything)
}

func TestWalletService_Lifecycle(t *testing.T) {
	svc, db, inv, user := newTestService(t)
	ctx := context.Background()

	inv.On("WalletCreated", mock.Anything, mock.Anything, mock.Anything).Return()
	inv.On("WalletChanged", user.ID, mock.Anything).Return()

	w, err := svc.Create(ctx, user.ID, CreateRequest{Name: "Cash", Balance: testutil.Dec("20")})
	require.NoError(t, err)

	_, err = svc.SoftDelete(ctx, user.ID, w.ID)
	require.ErrorIs(t, err, apperrors.ErrIllegalState)

	_, err = repositories.NewWalletRepository(db).DecreaseBalance(ctx, user.ID, w.ID, testutil.Dec("20"))
	require.NoError(t, err)

	deleted, err := svc.SoftDelete(ctx, user.ID, w.ID)
	require.NoError(t, err)
	assert.True(t, deleted.SoftDeleted)

	_, err = svc.Get(ctx, user.ID, w.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	list, err := svc.List(ctx, user.ID, true)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Restoring reconciles with the ledger: the initial INCOME is still active.
	restored, err := svc.Restore(ctx, user.ID, w.ID)
	require.NoError(t, err)
	assert.True(t, restored.Balance.Equal(testutil.Dec("20")), "got %s", restored.Balance)

	err = svc.PermanentDelete(ctx, user.ID, w.ID)
	assert.ErrorIs(t, err, apperrors.ErrIllegalState)

	inv.AssertCalled(t, "WalletChanged", user.ID, []uint{w.ID})
}

func TestWalletService_ListReadsThroughCache(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedAccount(t, db, "owner@example.com")
	testutil.SeedWallet(t, db, user.ID, "Cash", "5", time.Time{})

	collector := metrics.NewInMemory()
	svc := NewService(repositories.NewStore(db), cachebackend.NewMemoryCache(time.Minute), new(MockInvalidator), collector)

	for i := 0; i < 3; i++ {
		wallets, err := svc.List(context.Background(), user.ID, false)
		require.NoError(t, err)
		require.Len(t, wallets, 1)
	}

	s := collector.Snapshot()
	assert.Equal(t, int64(1), s.CacheMisses["user-wallets"])
	assert.Equal(t, int64(2), s.CacheHits["user-wallets"])
}
