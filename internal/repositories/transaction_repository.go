package repositories

import (
	"context"

	"wealthcheck/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionRepository defines the transaction row operations. State changes
// are conditional on the current soft-deleted flag and return the affected
// row count so callers can detect a lost race.
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	FindByIDAndUserID(ctx context.Context, id, userID uint, softDeleted bool) (*models.Transaction, error)
	IsSoftDeleted(ctx context.Context, userID, id uint) (deleted bool, found bool, err error)
	ListByUserID(ctx context.Context, userID uint, softDeleted bool, limit, offset int) ([]models.Transaction, int64, error)

	UpdateDetails(ctx context.Context, txn *models.Transaction, oldAmount decimal.Decimal) (int64, error)
	MarkSoftDeleted(ctx context.Context, userID, id uint) (int64, error)
	MarkRestored(ctx context.Context, userID, id uint) (int64, error)
	Purge(ctx context.Context, userID, id uint) (int64, error)

	// NetBalanceForWallet sums the signed contributions of every active
	// transaction that references the wallet.
	NetBalanceForWallet(ctx context.Context, userID, walletID uint) (decimal.Decimal, error)
}
