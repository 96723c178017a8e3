package wallet

import (
	"context"

	"wealthcheck/internal/models"
)

// Service defines the main wallet service interface
type Service interface {
	Create(ctx context.Context, userID uint, req CreateRequest) (*models.Wallet, error)
	Get(ctx context.Context, userID, walletID uint) (*models.Wallet, error)
	List(ctx context.Context, userID uint, deleted bool) ([]models.Wallet, error)

	// Lifecycle
	SoftDelete(ctx context.Context, userID, walletID uint) (*models.Wallet, error)
	Restore(ctx context.Context, userID, walletID uint) (*models.Wallet, error)
	PermanentDelete(ctx context.Context, userID, walletID uint) error
}

// Invalidator evicts cache entries after a committed change.
type Invalidator interface {
	WalletChanged(userID uint, walletIDs ...uint)
	WalletCreated(userID, walletID, transactionID uint)
}
