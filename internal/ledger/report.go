package ledger

import (
	"context"
	"fmt"

	"github.com/Paulohgon/financial-system/internal/models"

	"gorm.io/gorm"
)

// Summary aggregates transaction amounts over a report window.
// TotalCent = income - expense + transferIn - transferOut.
type Summary struct {
	IncomeCent      int64
	ExpenseCent     int64
	TransferInCent  int64
	TransferOutCent int64
	TotalCent       int64
}

// GenerateReport filters and sums transactions inside a single consistent
// snapshot. It never mutates.
//
// Transfers are split into in/out only relative to a wallet filter: a
// transfer counts as transferIn when the filtered wallet is its target and
// transferOut when it is its source. Without a wallet filter transfers net
// to zero across the two wallets involved and both sides are reported as 0.
//
// Non-admins report only over transactions touching their own wallets; a
// wallet filter additionally requires access to that wallet.
func (e *Engine) GenerateReport(ctx context.Context, f Filter, principal *models.User) (*Summary, error) {
	var sum Summary
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if f.WalletID != nil {
			w, err := e.wallets.Load(tx, *f.WalletID, false)
			if err != nil {
				return err
			}
			if !CanAccessWallet(principal, w) {
				return fmt.Errorf("%w: wallet %d", ErrForbidden, w.ID)
			}
		}
		if !principal.IsAdmin() {
			f.OwnerID = &principal.ID
		} else {
			f.OwnerID = nil
		}

		txs, err := e.txs.Query(tx, f)
		if err != nil {
			return err
		}

		for i := range txs {
			t := &txs[i]
			switch t.Type {
			case models.TypeIncome:
				sum.IncomeCent += t.AmountCent
			case models.TypeExpense:
				sum.ExpenseCent += t.AmountCent
			case models.TypeTransfer:
				if f.WalletID == nil {
					continue
				}
				if t.TargetWalletID != nil && *t.TargetWalletID == *f.WalletID {
					sum.TransferInCent += t.AmountCent
				}
				if t.SourceWalletID != nil && *t.SourceWalletID == *f.WalletID {
					sum.TransferOutCent += t.AmountCent
				}
			}
		}
		sum.TotalCent = sum.IncomeCent - sum.ExpenseCent + sum.TransferInCent - sum.TransferOutCent
		return nil
	})
	if err != nil {
		return nil, wrapConflict(err)
	}
	return &sum, nil
}
