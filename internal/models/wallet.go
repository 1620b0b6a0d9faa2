package models

import "time"

// Wallet holds a user's monetary balance.
// Balance is stored in cents to avoid float, e.g. 12.34 = 1234.
// Only the ledger engine is allowed to change BalanceCent; after any
// committed operation it equals the sum of all not-yet-cancelled
// transactions touching the wallet and is never negative.
type Wallet struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:64;not null"`
	BalanceCent int64  `gorm:"not null;default:0"`
	UserID      uint   `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
