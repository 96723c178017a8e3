package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

// Transaction types
const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// ParseTransactionType accepts the type name in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Transaction is a dated money movement affecting one or two wallets.
// Type and wallet references never change after creation.
type Transaction struct {
	Base
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	FromWalletID    *uint           `gorm:"index" json:"from_wallet_id"`
	ToWalletID      *uint           `gorm:"index" json:"to_wallet_id"`
	CategoryID      *uint           `json:"category_id"`
	Title           string          `gorm:"not null" json:"title"`
	Notes           string          `json:"notes"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	Type            TransactionType `gorm:"type:varchar(16);not null;index" json:"type"`
	TransactionDate time.Time       `gorm:"not null;index" json:"transaction_date"`
}

// WalletIDs returns the wallets the transaction references, from-wallet first.
func (t *Transaction) WalletIDs() []uint {
	ids := make([]uint, 0, 2)
	if t.FromWalletID != nil {
		ids = append(ids, *t.FromWalletID)
	}
	if t.ToWalletID != nil {
		ids = append(ids, *t.ToWalletID)
	}
	return ids
}
