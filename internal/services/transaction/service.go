package transaction

import (
	"context"
	"errors"
	"log"
	"time"

	apperrors "wealthcheck/internal/errors"
	"wealthcheck/internal/models"
	"wealthcheck/internal/repositories"
	"wealthcheck/internal/services/ledger"
	"wealthcheck/internal/services/metrics"
	"wealthcheck/internal/utils/cache"
	"wealthcheck/internal/utils/pagination"
)

type service struct {
	store       repositories.Store
	cache       repositories.CacheRepository
	invalidator Invalidator
	metrics     metrics.Collector
}

// NewService creates a new transaction service
func NewService(
	store repositories.Store,
	cacheRepo repositories.CacheRepository,
	invalidator Invalidator,
	collector metrics.Collector,
) Service {
	if store == nil {
		panic("store is required")
	}
	if cacheRepo == nil {
		panic("cache is required")
	}
	if invalidator == nil {
		panic("invalidator is required")
	}
	if collector == nil {
		collector = metrics.Noop{}
	}

	return &service{
		store:       store,
		cache:       cacheRepo,
		invalidator: invalidator,
		metrics:     collector,
	}
}

func (s *service) Create(ctx context.Context, userID uint, req CreateRequest) (txn *models.Transaction, err error) {
	defer metrics.Track(s.metrics, opCreate, time.Now(), &err)

	txType, err := models.ParseTransactionType(req.Type)
	if err != nil {
		return nil, apperrors.InvalidRequest("Transaction type must be one of INCOME, EXPENSE, TRANSFER")
	}

	in := ledger.NewTransaction{
		Entry: ledger.Entry{
			Type:         txType,
			FromWalletID: req.FromWalletID,
			ToWalletID:   req.ToWalletID,
			CategoryID:   req.CategoryID,
			Amount:       req.Amount,
		},
		Title: req.Title,
		Notes: req.Notes,
	}
	if req.TransactionDate != nil {
		in.TransactionDate = *req.TransactionDate
	}

	var created *models.Transaction
	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		created, err = ledger.New(tx).CreateTransaction(ctx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.TransactionChanged(userID, created.ID, created.WalletIDs()...)
	log.Printf("Transaction created - ID: %d, User: %d, Type: %s, Amount: %s", created.ID, userID, created.Type, created.Amount.StringFixed(2))

	return s.load(ctx, userID, created.ID, false)
}

func (s *service) Get(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	key := cache.EntityKey(cache.Transaction, userID, id)
	return cache.ReadThrough(ctx, s.cache, s.metrics, cache.Transaction, key, func(ctx context.Context) (*models.Transaction, error) {
		return s.load(ctx, userID, id, false)
	})
}

func (s *service) List(ctx context.Context, userID uint, deleted bool, p pagination.Pagination) (*Page, error) {
	load := func(ctx context.Context) (*Page, error) {
		items, total, err := s.store.Transactions().ListByUserID(ctx, userID, deleted, p.Limit, p.Offset)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []models.Transaction{}
		}
		return &Page{Items: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
	}

	if !p.IsDefault() {
		return load(ctx)
	}

	name := cache.UserTransactions
	if deleted {
		name = cache.DeletedUserTransactions
	}
	return cache.ReadThrough(ctx, s.cache, s.metrics, name, cache.UserKey(name, userID), load)
}

func (s *service) Update(ctx context.Context, userID, id uint, req UpdateRequest) (txn *models.Transaction, err error) {
	defer metrics.Track(s.metrics, opUpdate, time.Now(), &err)

	changes := ledger.TransactionChanges{
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Notes:      req.Notes,
	}
	if req.TransactionDate != nil {
		changes.TransactionDate = *req.TransactionDate
	}

	var updated *models.Transaction
	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		updated, err = ledger.New(tx).UpdateTransaction(ctx, userID, id, changes)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.TransactionChanged(userID, id, updated.WalletIDs()...)
	log.Printf("Transaction updated - ID: %d, User: %d, Amount: %s", id, userID, updated.Amount.StringFixed(2))

	return s.load(ctx, userID, id, false)
}

func (s *service) Delete(ctx context.Context, userID, id uint) (txn *models.Transaction, err error) {
	defer metrics.Track(s.metrics, opDelete, time.Now(), &err)

	var deleted *models.Transaction
	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		deleted, err = ledger.New(tx).SoftDeleteTransaction(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.TransactionChanged(userID, id, deleted.WalletIDs()...)
	log.Printf("Transaction soft deleted - ID: %d, User: %d", id, userID)

	return s.load(ctx, userID, id, true)
}

func (s *service) Restore(ctx context.Context, userID, id uint) (txn *models.Transaction, err error) {
	defer metrics.Track(s.metrics, opRestore, time.Now(), &err)

	var restored *models.Transaction
	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		restored, err = ledger.New(tx).RestoreTransaction(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.TransactionChanged(userID, id, restored.WalletIDs()...)
	log.Printf("Transaction restored - ID: %d, User: %d", id, userID)

	return s.load(ctx, userID, id, false)
}

func (s *service) PermanentDelete(ctx context.Context, userID, id uint) (err error) {
	defer metrics.Track(s.metrics, opPermanentDelete, time.Now(), &err)

	var purged *models.Transaction
	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		purged, err = ledger.New(tx).PurgeTransaction(ctx, userID, id)
		return err
	})
	if err != nil {
		return err
	}

	s.invalidator.TransactionChanged(userID, id, purged.WalletIDs()...)
	log.Printf("Transaction permanently deleted - ID: %d, User: %d", id, userID)
	return nil
}

// load reads the committed row.
func (s *service) load(ctx context.Context, userID, id uint, softDeleted bool) (*models.Transaction, error) {
	txn, err := s.store.Transactions().FindByIDAndUserID(ctx, id, userID, softDeleted)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.NotFound("Transaction")
		}
		return nil, err
	}
	return txn, nil
}
