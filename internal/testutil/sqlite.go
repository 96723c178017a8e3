// Package testutil builds throwaway sqlite databases seeded with ledger rows.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"wealthcheck/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

// NewDB opens a private in-memory database with the ledger schema. The pool is
// pinned to one connection so the database outlives individual queries.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:ledger_%d?mode=memory&cache=shared&_foreign_keys=on", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Category{},
		&models.Wallet{},
		&models.Transaction{},
	))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func SeedAccount(t *testing.T, db *gorm.DB, email string) *models.Account {
	t.Helper()
	account := &models.Account{Email: email, Name: email, IsActive: true}
	require.NoError(t, db.Create(account).Error)
	return account
}

// SeedWallet inserts a wallet row directly, bypassing the ledger. createdAt
// may be zero to use the current time.
func SeedWallet(t *testing.T, db *gorm.DB, userID uint, name, balance string, createdAt time.Time) *models.Wallet {
	t.Helper()
	wallet := &models.Wallet{
		UserID:  userID,
		Name:    name,
		Balance: decimal.RequireFromString(balance),
	}
	wallet.CreatedAt = createdAt
	require.NoError(t, db.Create(wallet).Error)
	return wallet
}

func SeedCategory(t *testing.T, db *gorm.DB, userID uint, name string, categoryType models.TransactionType) *models.Category {
	t.Helper()
	category := &models.Category{UserID: userID, Name: name, Type: categoryType}
	require.NoError(t, db.Create(category).Error)
	return category
}

// Balance reads the stored balance of a wallet regardless of its state.
func Balance(t *testing.T, db *gorm.DB, walletID uint) decimal.Decimal {
	t.Helper()
	var wallet models.Wallet
	require.NoError(t, db.First(&wallet, walletID).Error)
	return wallet.Balance
}

// Dec parses a decimal literal, failing the test on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// AssertBalance compares a wallet's stored balance numerically.
func AssertBalance(t *testing.T, db *gorm.DB, walletID uint, want string) {
	t.Helper()
	got := Balance(t, db, walletID)
	require.Truef(t, got.Equal(Dec(want)), "wallet %d balance = %s, want %s", walletID, got.String(), want)
}
