package repositories

import (
	"context"
	"fmt"
	"time"

	"wealthcheck/internal/models"

	"gorm.io/gorm"
)

// CleanupRepository removes soft-deleted rows whose last change is older than
// the cutoff. Each method is idempotent.
type CleanupRepository interface {
	RemoveTransactions(ctx context.Context, cutoff time.Time) (int64, error)
	RemoveWallets(ctx context.Context, cutoff time.Time) (int64, error)
	RemoveCategories(ctx context.Context, cutoff time.Time) (int64, error)
}

type cleanupRepository struct {
	db *gorm.DB
}

func NewCleanupRepository(db *gorm.DB) CleanupRepository {
	return &cleanupRepository{db: db}
}

func (r *cleanupRepository) RemoveTransactions(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.remove(ctx, &models.Transaction{}, cutoff)
}

func (r *cleanupRepository) RemoveWallets(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.remove(ctx, &models.Wallet{}, cutoff)
}

func (r *cleanupRepository) RemoveCategories(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.remove(ctx, &models.Category{}, cutoff)
}

func (r *cleanupRepository) remove(ctx context.Context, model interface{}, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("soft_deleted = ? AND updated_at < ?", true, cutoff).
		Delete(model)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to remove soft-deleted rows: %w", result.Error)
	}
	return result.RowsAffected, nil
}
