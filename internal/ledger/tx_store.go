package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/Paulohgon/financial-system/internal/models"

	"gorm.io/gorm"
)

// Filter is the one predicate language for transaction queries. The listing
// endpoint and the report aggregator share it, so both see the same rows for
// the same inputs. Nil fields mean "no constraint"; the date range is
// inclusive on both ends.
type Filter struct {
	OwnerID  *uint // restrict to transactions touching a wallet owned by this user
	WalletID *uint // matches as source OR target
	Start    *time.Time
	End      *time.Time
	Category *string
}

// TransactionStore is pure persistence for transaction rows.
type TransactionStore struct{}

// Load fetches a transaction, optionally preloading both wallets and the
// creator so authorization can run without extra round trips.
func (TransactionStore) Load(db *gorm.DB, id uint, withWallets bool) (*models.Transaction, error) {
	var t models.Transaction
	q := db
	if withWallets {
		q = q.Preload("SourceWallet").Preload("TargetWallet").Preload("CreatedBy")
	}
	if err := q.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load transaction %d: %w", id, err)
	}
	return &t, nil
}

// FindByIdempotencyKey returns the transaction committed under key, or nil.
func (TransactionStore) FindByIdempotencyKey(db *gorm.DB, key string) (*models.Transaction, error) {
	var t models.Transaction
	err := db.Preload("SourceWallet").Preload("TargetWallet").Preload("CreatedBy").
		Where("idempotency_key = ?", key).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction by key: %w", err)
	}
	return &t, nil
}

// Save persists a new transaction row.
func (TransactionStore) Save(db *gorm.DB, t *models.Transaction) error {
	if err := db.Create(t).Error; err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	return nil
}

// Delete removes the transaction row.
func (TransactionStore) Delete(db *gorm.DB, t *models.Transaction) error {
	if err := db.Delete(t).Error; err != nil {
		return fmt.Errorf("delete transaction %d: %w", t.ID, err)
	}
	return nil
}

// DetachWallet cleans up transaction rows before walletID is deleted, inside
// the caller's unit of work. Rows for which the wallet is the only remaining
// party are deleted outright; rows that still reference another wallet (a
// transfer's other side) keep their history and get this reference nulled.
func (TransactionStore) DetachWallet(db *gorm.DB, walletID uint) error {
	if err := db.Where("source_wallet_id = ? AND target_wallet_id IS NULL", walletID).
		Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("detach wallet %d: %w", walletID, err)
	}
	if err := db.Where("target_wallet_id = ? AND source_wallet_id IS NULL", walletID).
		Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("detach wallet %d: %w", walletID, err)
	}
	if err := db.Model(&models.Transaction{}).
		Where("source_wallet_id = ?", walletID).
		Update("source_wallet_id", nil).Error; err != nil {
		return fmt.Errorf("detach wallet %d: %w", walletID, err)
	}
	if err := db.Model(&models.Transaction{}).
		Where("target_wallet_id = ?", walletID).
		Update("target_wallet_id", nil).Error; err != nil {
		return fmt.Errorf("detach wallet %d: %w", walletID, err)
	}
	return nil
}

// Query returns all transactions matching the filter, oldest first, with
// wallet relations attached.
func (TransactionStore) Query(db *gorm.DB, f Filter) ([]models.Transaction, error) {
	q := db.Model(&models.Transaction{}).
		Preload("SourceWallet").
		Preload("TargetWallet")

	if f.OwnerID != nil {
		owned := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Wallet{}).
			Select("id").
			Where("user_id = ?", *f.OwnerID)
		q = q.Where("(source_wallet_id IN (?) OR target_wallet_id IN (?))", owned, owned)
	}
	if f.WalletID != nil {
		q = q.Where("(source_wallet_id = ? OR target_wallet_id = ?)", *f.WalletID, *f.WalletID)
	}
	if f.Start != nil {
		q = q.Where("created_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("created_at <= ?", *f.End)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}

	var txs []models.Transaction
	if err := q.Order("created_at ASC, id ASC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	return txs, nil
}
