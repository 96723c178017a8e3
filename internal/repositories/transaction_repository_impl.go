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

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) FindByIDAndUserID(ctx context.Context, id, userID uint, softDeleted bool) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND soft_deleted = ?", id, userID, softDeleted).
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &txn, nil
}

func (r *transactionRepository) IsSoftDeleted(ctx context.Context, userID, id uint) (bool, bool, error) {
	var flags []bool
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Pluck("soft_deleted", &flags).Error
	if err != nil {
		return false, false, fmt.Errorf("failed to get transaction state: %w", err)
	}
	if len(flags) == 0 {
		return false, false, nil
	}
	return flags[0], true, nil
}

func (r *transactionRepository) ListByUserID(ctx context.Context, userID uint, softDeleted bool, limit, offset int) ([]models.Transaction, int64, error) {
	var (
		txns  []models.Transaction
		total int64
	)

	query := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("user_id = ? AND soft_deleted = ?", userID, softDeleted)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	err := query.
		Order("transaction_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, total, nil
}

// UpdateDetails writes the mutable fields only while the stored amount still
// equals oldAmount, so two concurrent edits cannot both apply their delta.
func (r *transactionRepository) UpdateDetails(ctx context.Context, txn *models.Transaction, oldAmount decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND user_id = ? AND soft_deleted = ? AND amount = ?", txn.ID, txn.UserID, false, oldAmount).
		Updates(map[string]interface{}{
			"amount":           txn.Amount,
			"category_id":      txn.CategoryID,
			"title":            txn.Title,
			"notes":            txn.Notes,
			"transaction_date": txn.TransactionDate,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *transactionRepository) MarkSoftDeleted(ctx context.Context, userID, id uint) (int64, error) {
	return r.setSoftDeleted(ctx, userID, id, true)
}

func (r *transactionRepository) MarkRestored(ctx context.Context, userID, id uint) (int64, error) {
	return r.setSoftDeleted(ctx, userID, id, false)
}

func (r *transactionRepository) setSoftDeleted(ctx context.Context, userID, id uint, deleted bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND user_id = ? AND soft_deleted = ?", id, userID, !deleted).
		Updates(map[string]interface{}{
			"soft_deleted": deleted,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update transaction state: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *transactionRepository) Purge(ctx context.Context, userID, id uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND soft_deleted = ?", id, userID, true).
		Delete(&models.Transaction{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge transaction: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *transactionRepository) NetBalanceForWallet(ctx context.Context, userID, walletID uint) (decimal.Decimal, error) {
	var net decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select(`ROUND(SUM(CASE WHEN to_wallet_id = ? THEN amount ELSE 0 END)
			- SUM(CASE WHEN from_wallet_id = ? THEN amount ELSE 0 END), 2)`, walletID, walletID).
		Where("user_id = ? AND soft_deleted = ? AND (from_wallet_id = ? OR to_wallet_id = ?)",
			userID, false, walletID, walletID).
		Row().
		Scan(&net)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum wallet transactions: %w", err)
	}
	if !net.Valid {
		return decimal.Zero, nil
	}
	return net.Decimal.Round(2), nil
}
