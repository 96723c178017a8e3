package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "wealthcheck/internal/errors"
	"wealthcheck/internal/models"
	"wealthcheck/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	initialBalanceNotes = "(System generated)"
)

// NewTransaction is the input for Create.
type NewTransaction struct {
	Entry
	Title string
	Notes string
}

// TransactionChanges is the input for Update. Type and wallet references are
// fixed at creation; a nil CategoryID keeps the stored category.
type TransactionChanges struct {
	Amount          decimal.Decimal
	CategoryID      *uint
	Title           string
	Notes           string
	TransactionDate time.Time
}

// Ledger drives transaction and wallet state transitions against one Store.
type Ledger struct {
	store     repositories.Store
	mutator   *BalanceMutator
	validator *Validator
	now       func() time.Time
}

func New(store repositories.Store) *Ledger {
	return &Ledger{
		store:     store,
		mutator:   NewBalanceMutator(store.Wallets()),
		validator: NewValidator(store.Wallets(), store.Categories()),
		now:       time.Now,
	}
}

// CreateTransaction validates the entry, applies its legs debit-first and
// inserts the row.
func (l *Ledger) CreateTransaction(ctx context.Context, userID uint, in NewTransaction) (*models.Transaction, error) {
	if in.TransactionDate.IsZero() {
		in.TransactionDate = l.now()
	}
	if err := l.validator.Validate(ctx, userID, in.Entry); err != nil {
		return nil, err
	}

	legs, err := Effects(in.Type, in.FromWalletID, in.ToWalletID, in.Amount)
	if err != nil {
		return nil, err
	}
	if err := l.mutator.Apply(ctx, userID, legs); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		UserID:          userID,
		FromWalletID:    in.FromWalletID,
		ToWalletID:      in.ToWalletID,
		CategoryID:      in.CategoryID,
		Title:           in.Title,
		Notes:           in.Notes,
		Amount:          in.Amount,
		Type:            in.Type,
		TransactionDate: in.TransactionDate,
	}
	if err := l.store.Transactions().Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// UpdateTransaction edits an active transaction and moves the affected
// balances by the amount delta only.
func (l *Ledger) UpdateTransaction(ctx context.Context, userID, id uint, changes TransactionChanges) (*models.Transaction, error) {
	existing, err := l.findTransaction(ctx, userID, id, false)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Amount = changes.Amount
	updated.Title = changes.Title
	updated.Notes = changes.Notes
	if changes.CategoryID != nil {
		updated.CategoryID = changes.CategoryID
	}
	if !changes.TransactionDate.IsZero() {
		updated.TransactionDate = changes.TransactionDate
	}

	if err := l.validator.Validate(ctx, userID, entryOf(&updated)); err != nil {
		return nil, err
	}

	// Claim the row at its old amount before touching balances.
	rows, err := l.store.Transactions().UpdateDetails(ctx, &updated, existing.Amount)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.IllegalState("Transaction %d was modified concurrently", id)
	}

	delta := updated.Amount.Sub(existing.Amount)
	if delta.IsZero() {
		return &updated, nil
	}

	legs, err := Effects(updated.Type, updated.FromWalletID, updated.ToWalletID, delta)
	if err != nil {
		return nil, err
	}
	if err := l.mutator.Apply(ctx, userID, legs); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SoftDeleteTransaction flags an active transaction and reverses its legs.
func (l *Ledger) SoftDeleteTransaction(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	if err := l.expectTransactionState(ctx, userID, id, false, "Transaction is already deleted"); err != nil {
		return nil, err
	}
	txn, err := l.findTransaction(ctx, userID, id, false)
	if err != nil {
		return nil, err
	}

	rows, err := l.store.Transactions().MarkSoftDeleted(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.IllegalState("Transaction %d was modified concurrently", id)
	}

	legs, err := TransactionEffects(txn)
	if err != nil {
		return nil, err
	}
	if err := l.mutator.Apply(ctx, userID, Reverse(legs)); err != nil {
		return nil, err
	}

	txn.SoftDeleted = true
	return txn, nil
}

// RestoreTransaction clears the soft-deleted flag and re-applies the legs.
func (l *Ledger) RestoreTransaction(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	if err := l.expectTransactionState(ctx, userID, id, true, "Transaction is not deleted"); err != nil {
		return nil, err
	}
	txn, err := l.findTransaction(ctx, userID, id, true)
	if err != nil {
		return nil, err
	}

	rows, err := l.store.Transactions().MarkRestored(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.IllegalState("Transaction %d was modified concurrently", id)
	}

	legs, err := TransactionEffects(txn)
	if err != nil {
		return nil, err
	}
	if err := l.mutator.Apply(ctx, userID, legs); err != nil {
		return nil, err
	}

	txn.SoftDeleted = false
	return txn, nil
}

// PurgeTransaction removes a soft-deleted row. Balances are untouched; the
// reversal already happened at soft-delete.
func (l *Ledger) PurgeTransaction(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	if err := l.expectTransactionState(ctx, userID, id, true, "Transaction must be deleted before it can be permanently removed"); err != nil {
		return nil, err
	}
	txn, err := l.findTransaction(ctx, userID, id, true)
	if err != nil {
		return nil, err
	}

	rows, err := l.store.Transactions().Purge(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.IllegalState("Transaction %d was modified concurrently", id)
	}
	return txn, nil
}

// CreateWallet inserts an empty wallet and funds it with a synthetic INCOME
// transaction in the Initial Balance category.
func (l *Ledger) CreateWallet(ctx context.Context, userID uint, name string, initialBalance decimal.Decimal) (*models.Wallet, *models.Transaction, error) {
	if !initialBalance.IsPositive() {
		return nil, nil, apperrors.InvalidRequest("Initial balance should be greater than zero")
	}

	wallet := &models.Wallet{
		UserID:  userID,
		Name:    name,
		Balance: decimal.Zero,
	}
	if err := l.store.Wallets().Create(ctx, wallet); err != nil {
		return nil, nil, err
	}

	category, err := l.initialBalanceCategory(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	txn, err := l.CreateTransaction(ctx, userID, NewTransaction{
		Entry: Entry{
			Type:            models.TransactionTypeIncome,
			ToWalletID:      &wallet.ID,
			CategoryID:      &category.ID,
			Amount:          initialBalance,
			TransactionDate: wallet.CreatedAt,
		},
		Title: name + " initial balance",
		Notes: initialBalanceNotes,
	})
	if err != nil {
		return nil, nil, err
	}

	wallet.Balance = initialBalance
	return wallet, txn, nil
}

// SoftDeleteWallet flags a wallet whose balance is exactly zero.
func (l *Ledger) SoftDeleteWallet(ctx context.Context, userID, walletID uint) (*models.Wallet, error) {
	wallet, err := l.findWallet(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}
	if !wallet.Balance.IsZero() {
		return nil, apperrors.IllegalState("Wallet balance must be zero before deletion")
	}

	rows, err := l.store.Wallets().SoftDeleteEmpty(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.IllegalState("Wallet balance must be zero before deletion")
	}

	wallet.SoftDeleted = true
	return wallet, nil
}

// RestoreWallet clears the soft-deleted flag and resets the stored balance to
// the net of the wallet's active transactions.
func (l *Ledger) RestoreWallet(ctx context.Context, userID, walletID uint) (*models.Wallet, error) {
	if err := l.expectWalletState(ctx, userID, walletID, true, "Wallet is not deleted"); err != nil {
		return nil, err
	}

	rows, err := l.store.Wallets().Restore(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.IllegalState("Wallet %d was modified concurrently", walletID)
	}

	net, err := l.store.Transactions().NetBalanceForWallet(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}
	if net.IsNegative() {
		return nil, apperrors.IllegalState("Wallet %d transactions net to a negative balance", walletID)
	}
	if _, err := l.store.Wallets().SetBalance(ctx, userID, walletID, net); err != nil {
		return nil, err
	}

	return l.findWallet(ctx, userID, walletID)
}

// PurgeWallet removes a soft-deleted wallet row.
func (l *Ledger) PurgeWallet(ctx context.Context, userID, walletID uint) (*models.Wallet, error) {
	if err := l.expectWalletState(ctx, userID, walletID, true, "Wallet must be deleted before it can be permanently removed"); err != nil {
		return nil, err
	}
	wallet, err := l.store.Wallets().FindDeletedByIDAndUserID(ctx, walletID, userID)
	if err != nil {
		return nil, err
	}

	rows, err := l.store.Wallets().PermanentDelete(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperrors.IllegalState("Wallet %d was modified concurrently", walletID)
	}
	return wallet, nil
}

func (l *Ledger) initialBalanceCategory(ctx context.Context, userID uint) (*models.Category, error) {
	categories := l.store.Categories()
	category, err := categories.FindByName(ctx, userID, models.InitialBalanceCategory, models.TransactionTypeIncome)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, repositories.ErrCategoryNotFound) {
		return nil, err
	}

	category = &models.Category{
		UserID:      userID,
		Name:        models.InitialBalanceCategory,
		Description: "Opening balance of a new wallet",
		Type:        models.TransactionTypeIncome,
	}
	if err := categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create initial balance category: %w", err)
	}
	return category, nil
}

func (l *Ledger) findTransaction(ctx context.Context, userID, id uint, softDeleted bool) (*models.Transaction, error) {
	txn, err := l.store.Transactions().FindByIDAndUserID(ctx, id, userID, softDeleted)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.NotFound("Transaction")
		}
		return nil, err
	}
	return txn, nil
}

func (l *Ledger) findWallet(ctx context.Context, userID, walletID uint) (*models.Wallet, error) {
	wallet, err := l.store.Wallets().FindByIDAndUserID(ctx, walletID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, apperrors.NotFound("Wallet")
		}
		return nil, err
	}
	return wallet, nil
}

// expectTransactionState returns NotFound for a missing row and IllegalState
// with msg when the soft-deleted flag differs from want.
func (l *Ledger) expectTransactionState(ctx context.Context, userID, id uint, want bool, msg string) error {
	deleted, found, err := l.store.Transactions().IsSoftDeleted(ctx, userID, id)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFound("Transaction")
	}
	if deleted != want {
		return apperrors.IllegalState("%s", msg)
	}
	return nil
}

func (l *Ledger) expectWalletState(ctx context.Context, userID, walletID uint, want bool, msg string) error {
	deleted, found, err := l.store.Wallets().IsSoftDeleted(ctx, userID, walletID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFound("Wallet")
	}
	if deleted != want {
		return apperrors.IllegalState("%s", msg)
	}
	return nil
}
