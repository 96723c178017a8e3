package models

import "time"

// Base holds the columns shared by every ledger entity.
type Base struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	SoftDeleted bool      `gorm:"not null;default:false;index" json:"soft_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
