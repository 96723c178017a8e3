package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wealthcheck/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	if err := r.db.WithContext(ctx).Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) FindByIDAndUserID(ctx context.Context, id, userID uint) (*models.Wallet, error) {
	return r.find(ctx, id, userID, false)
}

func (r *walletRepository) FindDeletedByIDAndUserID(ctx context.Context, id, userID uint) (*models.Wallet, error) {
	return r.find(ctx, id, userID, true)
}

func (r *walletRepository) find(ctx context.Context, id, userID uint, softDeleted bool) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND soft_deleted = ?", id, userID, softDeleted).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) IsSoftDeleted(ctx context.Context, userID, id uint) (bool, bool, error) {
	var flags []bool
	err := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND user_id = ?", id, userID).
		Pluck("soft_deleted", &flags).Error
	if err != nil {
		return false, false, fmt.Errorf("failed to get wallet state: %w", err)
	}
	if len(flags) == 0 {
		return false, false, nil
	}
	return flags[0], true, nil
}

func (r *walletRepository) ListByUserID(ctx context.Context, userID uint, softDeleted bool) ([]models.Wallet, error) {
	var wallets []models.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND soft_deleted = ?", userID, softDeleted).
		Order("created_at DESC").
		Find(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}

func (r *walletRepository) IncreaseBalance(ctx context.Context, userID, walletID uint, amount decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND user_id = ? AND soft_deleted = ?", walletID, userID, false).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("ROUND(balance + ?, 2)", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to increase wallet balance: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DecreaseBalance debits the wallet only while the balance covers the amount.
// The check and the write are one statement, so concurrent debits cannot overdraw.
// Results are rounded to cents so drivers that keep numeric columns as binary
// floats (sqlite) hold exact two-decimal values.
func (r *walletRepository) DecreaseBalance(ctx context.Context, userID, walletID uint, amount decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND user_id = ? AND soft_deleted = ? AND balance >= ?", walletID, userID, false, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("ROUND(balance - ?, 2)", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to decrease wallet balance: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *walletRepository) SetBalance(ctx context.Context, userID, walletID uint, balance decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND user_id = ? AND soft_deleted = ?", walletID, userID, false).
		Updates(map[string]interface{}{
			"balance":    balance.Round(2),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to set wallet balance: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// SoftDeleteEmpty flags the wallet as deleted only while its balance is zero.
func (r *walletRepository) SoftDeleteEmpty(ctx context.Context, userID, walletID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND user_id = ? AND soft_deleted = ? AND balance = ?", walletID, userID, false, 0).
		Updates(map[string]interface{}{
			"soft_deleted": true,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to soft delete wallet: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *walletRepository) Restore(ctx context.Context, userID, walletID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND user_id = ? AND soft_deleted = ?", walletID, userID, true).
		Updates(map[string]interface{}{
			"soft_deleted": false,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to restore wallet: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *walletRepository) PermanentDelete(ctx context.Context, userID, walletID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND soft_deleted = ?", walletID, userID, true).
		Delete(&models.Wallet{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete wallet: %w", result.Error)
	}
	return result.RowsAffected, nil
}
