package transaction

import (
	"context"

	"wealthcheck/internal/models"
	"wealthcheck/internal/utils/pagination"
)

// Service defines the transaction operations offered to handlers.
type Service interface {
	Create(ctx context.Context, userID uint, req CreateRequest) (*models.Transaction, error)
	Get(ctx context.Context, userID, id uint) (*models.Transaction, error)
	List(ctx context.Context, userID uint, deleted bool, p pagination.Pagination) (*Page, error)
	Update(ctx context.Context, userID, id uint, req UpdateRequest) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id uint) (*models.Transaction, error)
	Restore(ctx context.Context, userID, id uint) (*models.Transaction, error)
	PermanentDelete(ctx context.Context, userID, id uint) error
}

// Invalidator evicts cache entries after a committed change.
type Invalidator interface {
	TransactionChanged(userID, transactionID uint, walletIDs ...uint)
}
