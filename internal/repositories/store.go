package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the ledger repositories behind one unit of work.
type Store interface {
	Wallets() WalletRepository
	Transactions() TransactionRepository
	Categories() CategoryRepository
	Accounts() AccountRepository

	// ExecuteInTransaction runs fn against a Store bound to a single database
	// transaction. fn's error rolls everything back.
	ExecuteInTransaction(ctx context.Context, fn func(Store) error) error
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Wallets() WalletRepository {
	return NewWalletRepository(s.db)
}

func (s *store) Transactions() TransactionRepository {
	return NewTransactionRepository(s.db)
}

func (s *store) Categories() CategoryRepository {
	return NewCategoryRepository(s.db)
}

func (s *store) Accounts() AccountRepository {
	return NewAccountRepository(s.db)
}

func (s *store) ExecuteInTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}
