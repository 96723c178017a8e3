package ledger

import (
	"context"
	"errors"
	"time"

	apperrors "wealthcheck/internal/errors"
	"wealthcheck/internal/models"
	"wealthcheck/internal/repositories"

	"github.com/shopspring/decimal"
)

// Entry is the validated shape of a transaction, new or edited.
type Entry struct {
	Type            models.TransactionType
	FromWalletID    *uint
	ToWalletID      *uint
	CategoryID      *uint
	Amount          decimal.Decimal
	TransactionDate time.Time
}

func entryOf(txn *models.Transaction) Entry {
	return Entry{
		Type:            txn.Type,
		FromWalletID:    txn.FromWalletID,
		ToWalletID:      txn.ToWalletID,
		CategoryID:      txn.CategoryID,
		Amount:          txn.Amount,
		TransactionDate: txn.TransactionDate,
	}
}

// Validator enforces the per-type shape and the ownership, category and date
// rules before any balance is touched.
type Validator struct {
	wallets    repositories.WalletRepository
	categories repositories.CategoryRepository
}

func NewValidator(wallets repositories.WalletRepository, categories repositories.CategoryRepository) *Validator {
	return &Validator{
		wallets:    wallets,
		categories: categories,
	}
}

// ValidateShape checks the fields that can be judged without the store.
func (v *Validator) ValidateShape(e Entry) error {
	if !e.Amount.IsPositive() {
		return apperrors.InvalidRequest("Amount must be greater than zero")
	}
	if !e.Amount.Equal(e.Amount.Round(2)) {
		return apperrors.InvalidRequest("Amount must have at most two decimal places")
	}

	switch e.Type {
	case models.TransactionTypeExpense:
		if e.FromWalletID == nil {
			return apperrors.InvalidRequest("Expense transaction requires fromWalletId")
		}
		if e.ToWalletID != nil {
			return apperrors.InvalidRequest("Expense transaction must not have toWalletId")
		}
		if e.CategoryID == nil {
			return apperrors.InvalidRequest("Expense transaction requires categoryId")
		}
	case models.TransactionTypeIncome:
		if e.ToWalletID == nil {
			return apperrors.InvalidRequest("Income transaction requires toWalletId")
		}
		if e.FromWalletID != nil {
			return apperrors.InvalidRequest("Income transaction must not have fromWalletId")
		}
		if e.CategoryID == nil {
			return apperrors.InvalidRequest("Income transaction requires categoryId")
		}
	case models.TransactionTypeTransfer:
		if e.FromWalletID == nil || e.ToWalletID == nil {
			return apperrors.InvalidRequest("Transfer transaction requires fromWalletId and toWalletId")
		}
		if e.CategoryID != nil {
			return apperrors.InvalidRequest("Transfer transaction must not have categoryId")
		}
		if *e.FromWalletID == *e.ToWalletID {
			return apperrors.InvalidRequest("Transfer requires two different wallets")
		}
	default:
		return apperrors.ErrUnsupportedTransactionType
	}
	return nil
}

// Validate runs ValidateShape and then resolves the category and wallets for
// userID.
func (v *Validator) Validate(ctx context.Context, userID uint, e Entry) error {
	if err := v.ValidateShape(e); err != nil {
		return err
	}

	if e.CategoryID != nil {
		category, err := v.categories.FindByIDAndUserID(ctx, *e.CategoryID, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return apperrors.NotFound("Category")
			}
			return err
		}
		if category.Type != e.Type {
			return apperrors.InvalidRequest("Category type %s does not match transaction type %s", category.Type, e.Type)
		}
	}

	for _, walletID := range []*uint{e.FromWalletID, e.ToWalletID} {
		if walletID == nil {
			continue
		}
		wallet, err := v.wallets.FindByIDAndUserID(ctx, *walletID, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrWalletNotFound) {
				return apperrors.NotFound("Wallet")
			}
			return err
		}
		if calendarDay(e.TransactionDate).Before(calendarDay(wallet.CreatedAt)) {
			return apperrors.InvalidRequest("Transaction date cannot be before wallet %q was created", wallet.Name)
		}
	}
	return nil
}

// calendarDay truncates t to midnight UTC.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
