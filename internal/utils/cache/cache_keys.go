// Package cache names the cached read views and builds their keys.
package cache

import (
	"fmt"
	"strings"
)

type CacheName string

const (
	UserCategories          CacheName = "user-categories"
	Category                CacheName = "category"
	UserWallets             CacheName = "user-wallets"
	Wallet                  CacheName = "wallet"
	UserTransactions        CacheName = "user-transactions"
	Transaction             CacheName = "transaction"
	RecentTransactions      CacheName = "recent-transactions"
	TopTransactions         CacheName = "top-transactions"
	Overview                CacheName = "overview"
	DeletedUserCategories   CacheName = "deleted-user-categories"
	DeletedUserWallets      CacheName = "deleted-user-wallets"
	DeletedUserTransactions CacheName = "deleted-user-transactions"
	DailyNet                CacheName = "daily-net"
	TopCategories           CacheName = "top-categories"
	MoneyGoal               CacheName = "money-goal"
	MoneyBudget             CacheName = "money-budget"
)

// UserSummaries are the per-user views derived from wallet balances and
// transaction amounts.
var UserSummaries = []CacheName{
	Overview,
	TopTransactions,
	RecentTransactions,
	DailyNet,
	TopCategories,
	MoneyGoal,
	MoneyBudget,
}

// UserKey builds "{name}:{userId}".
func UserKey(name CacheName, userID uint) string {
	return fmt.Sprintf("%s:%d", name, userID)
}

// EntityKey builds "{name}:{userId}:{entityId}".
func EntityKey(name CacheName, userID, entityID uint) string {
	return fmt.Sprintf("%s:%d:%d", name, userID, entityID)
}

// ParseKey splits a key into its cache name and the remaining id parts.
func ParseKey(key string) (CacheName, []string) {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "", nil
	}
	return CacheName(parts[0]), parts[1:]
}
