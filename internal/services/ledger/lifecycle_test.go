package ledger_test

import (
	"context"
	"testing"
	"time"

	apperrors "wealthcheck/internal/errors"
	"wealthcheck/internal/models"
	"wealthcheck/internal/repositories"
	"wealthcheck/internal/services/ledger"
	"wealthcheck/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	t     *testing.T
	db    *gorm.DB
	store repositories.Store
	user  *models.Account
	food  *models.Category
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	user := testutil.SeedAccount(t, db, "owner@example.com")
	return &fixture{
		t:     t,
		db:    db,
		store: repositories.NewStore(db),
		user:  user,
		food:  testutil.SeedCategory(t, db, user.ID, "Food", models.TransactionTypeExpense),
	}
}

func (f *fixture) wallet(name, balance string) *models.Wallet {
	return testutil.SeedWallet(f.t, f.db, f.user.ID, name, balance, time.Now().AddDate(0, -1, 0))
}

// run executes fn in one unit of work, as the services do.
func (f *fixture) run(fn func(l *ledger.Ledger) error) error {
	return f.store.ExecuteInTransaction(context.Background(), func(s repositories.Store) error {
		return fn(ledger.New(s))
	})
}

func (f *fixture) expense(walletID uint, amount string) (*models.Transaction, error) {
	var txn *models.Transaction
	err := f.run(func(l *ledger.Ledger) error {
		var err error
		txn, err = l.CreateTransaction(context.Background(), f.user.ID, ledger.NewTransaction{
			Entry: ledger.Entry{
				Type:         models.TransactionTypeExpense,
				FromWalletID: &walletID,
				CategoryID:   &f.food.ID,
				Amount:       testutil.Dec(amount),
			},
			Title: "Lunch",
		})
		return err
	})
	return txn, err
}

func (f *fixture) transfer(from, to uint, amount string) (*models.Transaction, error) {
	var txn *models.Transaction
	err := f.run(func(l *ledger.Ledger) error {
		var err error
		txn, err = l.CreateTransaction(context.Background(), f.user.ID, ledger.NewTransaction{
			Entry: ledger.Entry{
				Type:         models.TransactionTypeTransfer,
				FromWalletID: &from,
				ToWalletID:   &to,
				Amount:       testutil.Dec(amount),
			},
			Title: "Move",
		})
		return err
	})
	return txn, err
}

func (f *fixture) update(id uint, amount string) error {
	return f.run(func(l *ledger.Ledger) error {
		_, err := l.UpdateTransaction(context.Background(), f.user.ID, id, ledger.TransactionChanges{
			Amount: testutil.Dec(amount),
			Title:  "Edited",
		})
		return err
	})
}

func (f *fixture) softDelete(id uint) error {
	return f.run(func(l *ledger.Ledger) error {
		_, err := l.SoftDeleteTransaction(context.Background(), f.user.ID, id)
		return err
	})
}

func (f *fixture) restore(id uint) error {
	return f.run(func(l *ledger.Ledger) error {
		_, err := l.RestoreTransaction(context.Background(), f.user.ID, id)
		return err
	})
}

func (f *fixture) purge(id uint) error {
	return f.run(func(l *ledger.Ledger) error {
		_, err := l.PurgeTransaction(context.Background(), f.user.ID, id)
		return err
	})
}

func (f *fixture) assertReconciled(walletID uint) {
	f.t.Helper()
	net, err := repositories.NewTransactionRepository(f.db).NetBalanceForWallet(context.Background(), f.user.ID, walletID)
	require.NoError(f.t, err)
	testutil.AssertBalance(f.t, f.db, walletID, net.String())
}

func (f *fixture) transactionCount() int64 {
	var n int64
	require.NoError(f.t, f.db.Model(&models.Transaction{}).Count(&n).Error)
	return n
}

func TestLifecycle_ExpenseScenario(t *testing.T) {
	f := newFixture(t)
	w := f.wallet("W", "100.00")

	txn, err := f.expense(w.ID, "30")
	require.NoError(t, err)
	testutil.AssertBalance(t, f.db, w.ID, "70.00")

	require.NoError(t, f.update(txn.ID, "50"))
	testutil.AssertBalance(t, f.db, w.ID, "50.00")

	require.NoError(t, f.softDelete(txn.ID))
	testutil.AssertBalance(t, f.db, w.ID, "100.00")

	err = f.softDelete(txn.ID)
	assert.ErrorIs(t, err, apperrors.ErrIllegalState)
	testutil.AssertBalance(t, f.db, w.ID, "100.00")

	require.NoError(t, f.restore(txn.ID))
	testutil.AssertBalance(t, f.db, w.ID, "50.00")

	err = f.purge(txn.ID)
	assert.ErrorIs(t, err, apperrors.ErrIllegalState, "purge requires soft delete first")

	err = f.restore(txn.ID)
	assert.ErrorIs(t, err, apperrors.ErrIllegalState, "restore requires soft delete first")

	require.NoError(t, f.softDelete(txn.ID))
	require.NoError(t, f.restore(txn.ID))
	require.NoError(t, f.softDelete(txn.ID))
	require.NoError(t, f.purge(txn.ID))
	testutil.AssertBalance(t, f.db, w.ID, "100.00")
	assert.Equal(t, int64(0), f.transactionCount())

	err = f.purge(txn.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestLifecycle_PurgeKeepsRestoredBalance(t *testing.T) {
	f := newFixture(t)
	w := f.wallet("W", "100.00")

	txn, err := f.expense(w.ID, "50")
	require.NoError(t, err)
	keep, err := f.expense(w.ID, "10")
	require.NoError(t, err)

	require.NoError(t, f.softDelete(keep.ID))
	require.NoError(t, f.purge(keep.ID))
	testutil.AssertBalance(t, f.db, w.ID, "50.00")

	_, found, err := repositories.NewTransactionRepository(f.db).IsSoftDeleted(context.Background(), f.user.ID, txn.ID)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestLifecycle_TransferDebitFailureLeavesNothing(t *testing.T) {
	f := newFixture(t)
	a := f.wallet("A", "0.00")
	b := f.wallet("B", "100.00")

	_, err := f.transfer(b.ID, a.ID, "150")
	require.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	testutil.AssertBalance(t, f.db, a.ID, "0.00")
	testutil.AssertBalance(t, f.db, b.ID, "100.00")
	assert.Equal(t, int64(0), f.transactionCount())
}

func TestLifecycle_TransferUpdateDeltas(t *testing.T) {
	f := newFixture(t)
	a := f.wallet("A", "0.00")
	b := f.wallet("B", "100.00")

	txn, err := f.transfer(b.ID, a.ID, "40")
	require.NoError(t, err)
	testutil.AssertBalance(t, f.db, b.ID, "60.00")
	testutil.AssertBalance(t, f.db, a.ID, "40.00")

	require.NoError(t, f.update(txn.ID, "10"))
	testutil.AssertBalance(t, f.db, b.ID, "90.00")
	testutil.AssertBalance(t, f.db, a.ID, "10.00")

	require.NoError(t, f.update(txn.ID, "100"))
	testutil.AssertBalance(t, f.db, b.ID, "0.00")
	testutil.AssertBalance(t, f.db, a.ID, "100.00")

	err = f.update(txn.ID, "100.01")
	require.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
	testutil.AssertBalance(t, f.db, b.ID, "0.00")
	testutil.AssertBalance(t, f.db, a.ID, "100.00")

	stored, err := repositories.NewTransactionRepository(f.db).FindByIDAndUserID(context.Background(), txn.ID, f.user.ID, false)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(testutil.Dec("100")), "rolled back update must keep the old amount")

	require.NoError(t, f.softDelete(txn.ID))
	testutil.AssertBalance(t, f.db, b.ID, "100.00")
	testutil.AssertBalance(t, f.db, a.ID, "0.00")

	require.NoError(t, f.restore(txn.ID))
	f.assertReconciled(a.ID)
}

func TestLifecycle_UpdateSameAmountIsNoop(t *testing.T) {
	f := newFixture(t)
	w := f.wallet("W", "100.00")

	txn, err := f.expense(w.ID, "30")
	require.NoError(t, err)

	require.NoError(t, f.update(txn.ID, "30.00"))
	testutil.AssertBalance(t, f.db, w.ID, "70.00")

	stored, err := repositories.NewTransactionRepository(f.db).FindByIDAndUserID(context.Background(), txn.ID, f.user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Edited", stored.Title)
}

func TestLifecycle_SoftDeleteFailsWhenReversalUnderflows(t *testing.T) {
	f := newFixture(t)
	salary := testutil.SeedCategory(t, f.db, f.user.ID, "Salary", models.TransactionTypeIncome)
	w := f.wallet("W", "0.00")

	var income *models.Transaction
	require.NoError(t, f.run(func(l *ledger.Ledger) error {
		var err error
		income, err = l.CreateTransaction(context.Background(), f.user.ID, ledger.NewTransaction{
			Entry: ledger.Entry{
				Type:       models.TransactionTypeIncome,
				ToWalletID: &w.ID,
				CategoryID: &salary.ID,
				Amount:     testutil.Dec("50"),
			},
			Title: "Salary",
		})
		return err
	}))
	_, err := f.expense(w.ID, "50")
	require.NoError(t, err)
	testutil.AssertBalance(t, f.db, w.ID, "0.00")

	err = f.softDelete(income.ID)
	require.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	deleted, found, err := repositories.NewTransactionRepository(f.db).IsSoftDeleted(context.Background(), f.user.ID, income.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, deleted, "failed delete leaves the transaction active")
	f.assertReconciled(w.ID)
}

func TestLifecycle_ForeignWalletIsNotFound(t *testing.T) {
	f := newFixture(t)
	stranger := testutil.SeedAccount(t, f.db, "stranger@example.com")
	theirs := testutil.SeedWallet(t, f.db, stranger.ID, "Theirs", "100", time.Time{})

	_, err := f.expense(theirs.ID, "10")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	testutil.AssertBalance(t, f.db, theirs.ID, "100")
}

func TestLifecycle_CreateWallet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var (
		wallet *models.Wallet
		txn    *models.Transaction
	)
	require.NoError(t, f.run(func(l *ledger.Ledger) error {
		var err error
		wallet, txn, err = l.CreateWallet(ctx, f.user.ID, "Cash", testutil.Dec("250.00"))
		return err
	}))

	testutil.AssertBalance(t, f.db, wallet.ID, "250.00")
	assert.Equal(t, models.TransactionTypeIncome, txn.Type)
	assert.Equal(t, "Cash initial balance", txn.Title)
	assert.Equal(t, "(System generated)", txn.Notes)
	require.NotNil(t, txn.ToWalletID)
	assert.Equal(t, wallet.ID, *txn.ToWalletID)
	f.assertReconciled(wallet.ID)

	require.NoError(t, f.run(func(l *ledger.Ledger) error {
		_, _, err := l.CreateWallet(ctx, f.user.ID, "Bank", testutil.Dec("1"))
		return err
	}))
	var categories int64
	require.NoError(t, f.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", f.user.ID, models.InitialBalanceCategory).
		Count(&categories).Error)
	assert.Equal(t, int64(1), categories)

	err := f.run(func(l *ledger.Ledger) error {
		_, _, err := l.CreateWallet(ctx, f.user.ID, "Empty", testutil.Dec("0"))
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransactionRequest)
}

func TestLifecycle_WalletDeleteRestorePurge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet("W", "0.00")
	other := f.wallet("Other", "100.00")

	in, err := f.transfer(other.ID, w.ID, "25")
	require.NoError(t, err)

	softDeleteWallet := func(id uint) error {
		return f.run(func(l *ledger.Ledger) error {
			_, err := l.SoftDeleteWallet(ctx, f.user.ID, id)
			return err
		})
	}
	restoreWallet := func(id uint) error {
		return f.run(func(l *ledger.Ledger) error {
			_, err := l.RestoreWallet(ctx, f.user.ID, id)
			return err
		})
	}
	purgeWallet := func(id uint) error {
		return f.run(func(l *ledger.Ledger) error {
			_, err := l.PurgeWallet(ctx, f.user.ID, id)
			return err
		})
	}

	assert.ErrorIs(t, softDeleteWallet(w.ID), apperrors.ErrIllegalState, "non-zero balance")
	assert.ErrorIs(t, restoreWallet(w.ID), apperrors.ErrIllegalState, "not deleted")
	assert.ErrorIs(t, purgeWallet(w.ID), apperrors.ErrIllegalState, "not deleted")

	require.NoError(t, f.softDelete(in.ID))
	testutil.AssertBalance(t, f.db, w.ID, "0")

	require.NoError(t, softDeleteWallet(w.ID))

	// A deleted wallet cannot receive the transfer back.
	assert.Error(t, f.restore(in.ID))

	require.NoError(t, restoreWallet(w.ID))
	f.assertReconciled(w.ID)

	require.NoError(t, softDeleteWallet(w.ID))
	require.NoError(t, purgeWallet(w.ID))
	assert.ErrorIs(t, purgeWallet(w.ID), apperrors.ErrResourceNotFound)
}

func TestLifecycle_CentAmountsReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := f.wallet("Coins", "0.00")
	tips := testutil.SeedCategory(t, f.db, f.user.ID, "Tips", models.TransactionTypeIncome)

	income := func(amount string) *models.Transaction {
		var txn *models.Transaction
		require.NoError(t, f.run(func(l *ledger.Ledger) error {
			var err error
			txn, err = l.CreateTransaction(ctx, f.user.ID, ledger.NewTransaction{
				Entry: ledger.Entry{
					Type:       models.TransactionTypeIncome,
					ToWalletID: &w.ID,
					CategoryID: &tips.ID,
					Amount:     testutil.Dec(amount),
				},
				Title: "Tip",
			})
			return err
		}))
		return txn
	}

	income("0.10")
	income("0.20")
	testutil.AssertBalance(t, f.db, w.ID, "0.30")

	spent, err := f.expense(w.ID, "0.30")
	require.NoError(t, err)
	testutil.AssertBalance(t, f.db, w.ID, "0")
	f.assertReconciled(w.ID)

	require.NoError(t, f.run(func(l *ledger.Ledger) error {
		_, err := l.SoftDeleteWallet(ctx, f.user.ID, w.ID)
		return err
	}), "an emptied wallet can be deleted")

	require.NoError(t, f.run(func(l *ledger.Ledger) error {
		_, err := l.RestoreWallet(ctx, f.user.ID, w.ID)
		return err
	}))
	testutil.AssertBalance(t, f.db, w.ID, "0")
	f.assertReconciled(w.ID)

	require.NoError(t, f.softDelete(spent.ID))
	testutil.AssertBalance(t, f.db, w.ID, "0.30")
	f.assertReconciled(w.ID)

	require.NoError(t, f.restore(spent.ID))
	testutil.AssertBalance(t, f.db, w.ID, "0")
	f.assertReconciled(w.ID)
}
