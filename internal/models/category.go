package models

// InitialBalanceCategory is the system INCOME category used for the synthetic
// transaction that funds a new wallet.
const InitialBalanceCategory = "Initial Balance"

type Category struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Type        TransactionType `gorm:"type:varchar(16);not null" json:"type"`
	Icon        string          `json:"icon"`
}
