package repositories

import (
	"context"
	"errors"

	"wealthcheck/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrAccountNotFound     = errors.New("account not found")
)

// WalletRepository defines the wallet row operations. Mutating methods return
// the affected row count; zero means the row's precondition did not hold.
type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	FindByIDAndUserID(ctx context.Context, id, userID uint) (*models.Wallet, error)
	FindDeletedByIDAndUserID(ctx context.Context, id, userID uint) (*models.Wallet, error)
	IsSoftDeleted(ctx context.Context, userID, id uint) (deleted bool, found bool, err error)
	ListByUserID(ctx context.Context, userID uint, softDeleted bool) ([]models.Wallet, error)

	// Balance operations, each a single conditional UPDATE.
	IncreaseBalance(ctx context.Context, userID, walletID uint, amount decimal.Decimal) (int64, error)
	DecreaseBalance(ctx context.Context, userID, walletID uint, amount decimal.Decimal) (int64, error)
	SetBalance(ctx context.Context, userID, walletID uint, balance decimal.Decimal) (int64, error)

	// Lifecycle operations
	SoftDeleteEmpty(ctx context.Context, userID, walletID uint) (int64, error)
	Restore(ctx context.Context, userID, walletID uint) (int64, error)
	PermanentDelete(ctx context.Context, userID, walletID uint) (int64, error)
}
