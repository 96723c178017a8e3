package models

import (
	"github.com/shopspring/decimal"
)

// Wallet is a named money container owned by one account. Balance is only
// ever changed through conditional updates and never goes below zero.
type Wallet struct {
	Base
	UserID  uint            `gorm:"not null;index" json:"user_id"`
	Name    string          `gorm:"not null" json:"name"`
	Balance decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0;check:chk_wallets_balance,balance >= 0" json:"balance"`
}
