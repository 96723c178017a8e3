// Package invalidation evicts the cached views a ledger mutation may have
// made stale. Eviction is best-effort: it runs in the background after commit,
// failures are logged and never reach the caller.
package invalidation

import (
	"context"
	"log"
	"sync"
	"time"

	"wealthcheck/internal/repositories"
	"wealthcheck/internal/utils/cache"
)

const DefaultTimeout = 2 * time.Second

type Invalidator struct {
	cache   repositories.CacheRepository
	timeout time.Duration
	wg      sync.WaitGroup
}

func New(c repositories.CacheRepository, timeout time.Duration) *Invalidator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Invalidator{
		cache:   c,
		timeout: timeout,
	}
}

// TransactionKeys lists every key a change to the transaction can affect.
func TransactionKeys(userID, transactionID uint, walletIDs ...uint) []string {
	keys := []string{
		cache.EntityKey(cache.Transaction, userID, transactionID),
		cache.UserKey(cache.UserTransactions, userID),
		cache.UserKey(cache.DeletedUserTransactions, userID),
	}
	return append(keys, walletKeys(userID, walletIDs...)...)
}

// WalletKeys lists every key a change to the wallet can affect.
func WalletKeys(userID uint, walletIDs ...uint) []string {
	keys := []string{
		cache.UserKey(cache.DeletedUserWallets, userID),
	}
	return append(keys, walletKeys(userID, walletIDs...)...)
}

func walletKeys(userID uint, walletIDs ...uint) []string {
	keys := make([]string, 0, len(walletIDs)+len(cache.UserSummaries)+1)
	for _, id := range walletIDs {
		keys = append(keys, cache.EntityKey(cache.Wallet, userID, id))
	}
	keys = append(keys, cache.UserKey(cache.UserWallets, userID))
	for _, name := range cache.UserSummaries {
		keys = append(keys, cache.UserKey(name, userID))
	}
	return keys
}

// TransactionChanged evicts the transaction, the wallets it touches and the
// user's derived views.
func (i *Invalidator) TransactionChanged(userID, transactionID uint, walletIDs ...uint) {
	i.evict(TransactionKeys(userID, transactionID, walletIDs...))
}

// WalletChanged evicts the wallets and the user's derived views.
func (i *Invalidator) WalletChanged(userID uint, walletIDs ...uint) {
	i.evict(WalletKeys(userID, walletIDs...))
}

// WalletCreated also evicts the transaction lists, since a new wallet comes
// with its initial balance transaction.
func (i *Invalidator) WalletCreated(userID, walletID, transactionID uint) {
	keys := append(WalletKeys(userID, walletID), TransactionKeys(userID, transactionID)...)
	i.evict(keys)
}

func (i *Invalidator) evict(keys []string) {
	i.wg.Add(1)
	go func() {
		defer i.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), i.timeout)
		defer cancel()

		if err := i.cache.Delete(ctx, dedupe(keys)...); err != nil {
			log.Printf("⚠️ Cache eviction failed for %d keys: %v", len(keys), err)
		}
	}()
}

// Flush waits for in-flight evictions, up to ctx's deadline.
func (i *Invalidator) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		i.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
