package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateWalletRequest struct {
	Name    string          `json:"name" validate:"required,max=100"`
	Balance decimal.Decimal `json:"balance"`
}

type CreateTransactionRequest struct {
	Type            string          `json:"type" validate:"required,txtype"`
	FromWalletID    *uint           `json:"from_wallet_id"`
	ToWalletID      *uint           `json:"to_wallet_id"`
	CategoryID      *uint           `json:"category_id"`
	Title           string          `json:"title" validate:"required,max=150"`
	Notes           string          `json:"notes" validate:"max=500"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate *time.Time      `json:"transaction_date"`
}

// UpdateTransactionRequest carries the editable fields. Type and wallets
// cannot change.
type UpdateTransactionRequest struct {
	CategoryID      *uint           `json:"category_id"`
	Title           string          `json:"title" validate:"required,max=150"`
	Notes           string          `json:"notes" validate:"max=500"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate *time.Time      `json:"transaction_date"`
}
