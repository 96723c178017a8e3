package models

// Account is the owner of wallets, categories and transactions.
type Account struct {
	Base
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Name      string `gorm:"not null" json:"name"`
	AvatarURL string `json:"avatar_url"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`
}
