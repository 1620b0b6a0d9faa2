package ledger

import (
	"errors"
	"fmt"

	"github.com/Paulohgon/financial-system/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletStore is pure persistence for wallets. No business rules live here;
// every method runs against the *gorm.DB it is handed, which inside engine
// operations is the transaction of the active atomic unit.
type WalletStore struct{}

// Load fetches a wallet by id. With forUpdate the row is read with
// SELECT ... FOR UPDATE so concurrent read-modify-write of the balance
// cannot interleave (sqlite serializes writers anyway; the clause matters
// under server dialects).
func (WalletStore) Load(db *gorm.DB, id uint, forUpdate bool) (*models.Wallet, error) {
	var w models.Wallet
	q := db
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: wallet %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load wallet %d: %w", id, err)
	}
	return &w, nil
}

// Save upserts the wallet inside the caller's unit of work.
func (WalletStore) Save(db *gorm.DB, w *models.Wallet) error {
	if err := db.Save(w).Error; err != nil {
		return fmt.Errorf("save wallet: %w", err)
	}
	return nil
}

// Delete removes the wallet row.
func (WalletStore) Delete(db *gorm.DB, w *models.Wallet) error {
	if err := db.Delete(w).Error; err != nil {
		return fmt.Errorf("delete wallet %d: %w", w.ID, err)
	}
	return nil
}

// List returns all wallets, or only the given owner's when ownerID != nil.
func (WalletStore) List(db *gorm.DB, ownerID *uint) ([]models.Wallet, error) {
	var wallets []models.Wallet
	q := db.Order("id ASC")
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}
	if err := q.Find(&wallets).Error; err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return wallets, nil
}
