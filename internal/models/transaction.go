package models

import "time"

// Transaction types.
const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

// Transaction is a single committed ledger record.
// Wallet references are nullable: income has only a target, expense only a
// source, transfer both. A reference may also become NULL later when the
// wallet on the other side of a transfer is deleted.
// Rows are immutable once created; cancellation deletes the row after
// reversing its balance effect.
type Transaction struct {
	ID             uint      `gorm:"primaryKey"`
	Reference      string    `gorm:"size:36;uniqueIndex;not null"` // opaque id shown to callers
	Type           string    `gorm:"size:16;index;not null"`       // income / expense / transfer
	AmountCent     int64     `gorm:"not null"`                     // always > 0, cents
	Category       string    `gorm:"size:32;index"`
	SourceWalletID *uint     `gorm:"index"`
	TargetWalletID *uint     `gorm:"index"`
	CreatedByID    uint      `gorm:"index;not null"`
	IdempotencyKey *string   `gorm:"size:64;uniqueIndex"` // NULL rows never collide
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time

	SourceWallet *Wallet `gorm:"foreignKey:SourceWalletID"`
	TargetWallet *Wallet `gorm:"foreignKey:TargetWalletID"`
	CreatedBy    User    `gorm:"foreignKey:CreatedByID"`
}
