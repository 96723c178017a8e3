package wallet

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	apperrors "wealthcheck/internal/errors"
	"wealthcheck/internal/models"
	"wealthcheck/internal/repositories"
	"wealthcheck/internal/services/ledger"
	"wealthcheck/internal/services/metrics"
	"wealthcheck/internal/utils/cache"
)

type service struct {
	store       repositories.Store
	cache       repositories.CacheRepository
	invalidator Invalidator
	metrics     metrics.Collector
}

// NewService creates a new wallet service
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

	// Metrics is optional
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

func (s *service) Create(ctx context.Context, userID uint, req CreateRequest) (w *models.Wallet, err error) {
	defer metrics.Track(s.metrics, opCreate, time.Now(), &err)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.InvalidRequest("Wallet name is required")
	}

	var (
		wallet  *models.Wallet
		initial *models.Transaction
	)
	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		wallet, initial, err = ledger.New(tx).CreateWallet(ctx, userID, name, req.Balance)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.WalletCreated(userID, wallet.ID, initial.ID)
	log.Printf("Wallet created successfully - ID: %d, User: %d, Name: %s, Initial Balance: %s",
		wallet.ID, userID, name, req.Balance.StringFixed(2))

	return s.load(ctx, userID, wallet.ID)
}

func (s *service) Get(ctx context.Context, userID, walletID uint) (*models.Wallet, error) {
	key := cache.EntityKey(cache.Wallet, userID, walletID)
	return cache.ReadThrough(ctx, s.cache, s.metrics, cache.Wallet, key, func(ctx context.Context) (*models.Wallet, error) {
		return s.load(ctx, userID, walletID)
	})
}

func (s *service) List(ctx context.Context, userID uint, deleted bool) ([]models.Wallet, error) {
	name := cache.UserWallets
	if deleted {
		name = cache.DeletedUserWallets
	}
	return cache.ReadThrough(ctx, s.cache, s.metrics, name, cache.UserKey(name, userID), func(ctx context.Context) ([]models.Wallet, error) {
		wallets, err := s.store.Wallets().ListByUserID(ctx, userID, deleted)
		if err != nil {
			return nil, err
		}
		if wallets == nil {
			wallets = []models.Wallet{}
		}
		return wallets, nil
	})
}

func (s *service) SoftDelete(ctx context.Context, userID, walletID uint) (w *models.Wallet, err error) {
	defer metrics.Track(s.metrics, opSoftDelete, time.Now(), &err)

	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		w, err = ledger.New(tx).SoftDeleteWallet(ctx, userID, walletID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.WalletChanged(userID, walletID)
	log.Printf("Wallet soft deleted - ID: %d, User: %d", walletID, userID)

	w, err = s.store.Wallets().FindDeletedByIDAndUserID(ctx, walletID, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return w, nil
}

func (s *service) Restore(ctx context.Context, userID, walletID uint) (w *models.Wallet, err error) {
	defer metrics.Track(s.metrics, opRestore, time.Now(), &err)

	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		w, err = ledger.New(tx).RestoreWallet(ctx, userID, walletID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidator.WalletChanged(userID, walletID)
	log.Printf("Wallet restored - ID: %d, User: %d, Balance: %s", walletID, userID, w.Balance.StringFixed(2))

	return s.load(ctx, userID, walletID)
}

func (s *service) PermanentDelete(ctx context.Context, userID, walletID uint) (err error) {
	defer metrics.Track(s.metrics, opPermanentDelete, time.Now(), &err)

	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		_, err := ledger.New(tx).PurgeWallet(ctx, userID, walletID)
		return err
	})
	if err != nil {
		return err
	}

	s.invalidator.WalletChanged(userID, walletID)
	log.Printf("Wallet permanently deleted - ID: %d, User: %d", walletID, userID)
	return nil
}

func (s *service) load(ctx context.Context, userID, walletID uint) (*models.Wallet, error) {
	w, err := s.store.Wallets().FindByIDAndUserID(ctx, walletID, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return w, nil
}

func notFound(err error) error {
	if errors.Is(err, repositories.ErrWalletNotFound) {
		return apperrors.NotFound("Wallet")
	}
	return err
}
