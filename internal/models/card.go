package models

import "time"

// Card represents a cash card holding a monetary amount for one owner.
type Card struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key, assigned at insert.

	Amount float64 `gorm:"type:decimal(20,10);not null"` // Monetary value, single implicit currency.
	Owner  string  `gorm:"type:text;not null;index"`     // Owning principal, set once at creation.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
