package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/Paulohgon/financial-system/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Engine is the only component allowed to change a wallet's balance or to
// create and delete transaction rows. Every public operation runs as one
// database transaction: reads-for-mutation, authorization checks and writes
// all see a single isolated view, and any error rolls the whole unit back.
// Wallets read for mutation are locked (SELECT ... FOR UPDATE), so two
// concurrent expenses against the same wallet cannot both pass the
// sufficiency check on a stale balance.
type Engine struct {
	db      *gorm.DB
	wallets WalletStore
	txs     TransactionStore
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// wrapConflict classifies errors leaving an atomic unit. Engine error kinds
// pass through untouched; anything else (driver errors, deadlocks, commit
// failures, constraint violations) becomes ErrConflict, which callers may
// retry because the unit is guaranteed to have been rolled back.
func wrapConflict(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrNotFound, ErrForbidden, ErrInvalidRequest, ErrInsufficientFunds, ErrConflict} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrConflict, err)
}

// ---------- transactions ----------

// CreateTransactionInput carries a validated create request. Amount is in
// cents and must be positive; wallet requirements depend on Type:
//
//	income   -> target only
//	expense  -> source only
//	transfer -> source and target
//
// IdempotencyKey, when set, makes the create safe to retry: a second call
// with the same key returns the transaction committed by the first.
type CreateTransactionInput struct {
	Type           string
	AmountCent     int64
	Category       string
	SourceWalletID *uint
	TargetWalletID *uint
	IdempotencyKey *string
}

func (in *CreateTransactionInput) validate() error {
	if in.AmountCent <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}
	switch in.Type {
	case models.TypeIncome:
		if in.TargetWalletID == nil {
			return fmt.Errorf("%w: target wallet is required for income", ErrInvalidRequest)
		}
		if in.SourceWalletID != nil {
			return fmt.Errorf("%w: income must not have a source wallet", ErrInvalidRequest)
		}
	case models.TypeExpense:
		if in.SourceWalletID == nil {
			return fmt.Errorf("%w: source wallet is required for expense", ErrInvalidRequest)
		}
		if in.TargetWalletID != nil {
			return fmt.Errorf("%w: expense must not have a target wallet", ErrInvalidRequest)
		}
	case models.TypeTransfer:
		if in.SourceWalletID == nil || in.TargetWalletID == nil {
			return fmt.Errorf("%w: both source and target wallets are required for transfer", ErrInvalidRequest)
		}
		if *in.SourceWalletID == *in.TargetWalletID {
			return fmt.Errorf("%w: transfer source and target must differ", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidRequest, in.Type)
	}
	return nil
}

// CreateTransaction applies the balance effect of a new transaction and
// persists its row, all in one atomic unit.
func (e *Engine) CreateTransaction(ctx context.Context, in CreateTransactionInput, principal *models.User) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var created *models.Transaction
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.IdempotencyKey != nil && *in.IdempotencyKey != "" {
			prior, err := e.txs.FindByIdempotencyKey(tx, *in.IdempotencyKey)
			if err != nil {
				return err
			}
			if prior != nil {
				created = prior
				return nil
			}
		}

		// Wallets are loaded fresh and locked inside this unit; a balance
		// cached from a previous request must never be trusted.
		loadOwned := func(id uint, side string) (*models.Wallet, error) {
			w, err := e.wallets.Load(tx, id, true)
			if err != nil {
				return nil, err
			}
			if !CanAccessWallet(principal, w) {
				return nil, fmt.Errorf("%w: %s wallet %d", ErrForbidden, side, id)
			}
			return w, nil
		}

		var source, target *models.Wallet
		var err error
		if in.SourceWalletID != nil {
			if source, err = loadOwned(*in.SourceWalletID, "source"); err != nil {
				return err
			}
		}
		if in.TargetWalletID != nil {
			if target, err = loadOwned(*in.TargetWalletID, "target"); err != nil {
				return err
			}
		}

		switch in.Type {
		case models.TypeIncome:
			target.BalanceCent += in.AmountCent
		case models.TypeExpense:
			if source.BalanceCent < in.AmountCent {
				return fmt.Errorf("%w: wallet %d", ErrInsufficientFunds, source.ID)
			}
			source.BalanceCent -= in.AmountCent
		case models.TypeTransfer:
			if source.BalanceCent < in.AmountCent {
				return fmt.Errorf("%w: wallet %d", ErrInsufficientFunds, source.ID)
			}
			source.BalanceCent -= in.AmountCent
			target.BalanceCent += in.AmountCent
		}

		if source != nil {
			if err := e.wallets.Save(tx, source); err != nil {
				return err
			}
		}
		if target != nil {
			if err := e.wallets.Save(tx, target); err != nil {
				return err
			}
		}

		record := &models.Transaction{
			Reference:      uuid.NewString(),
			Type:           in.Type,
			AmountCent:     in.AmountCent,
			Category:       in.Category,
			SourceWalletID: in.SourceWalletID,
			TargetWalletID: in.TargetWalletID,
			CreatedByID:    principal.ID,
			IdempotencyKey: in.IdempotencyKey,
		}
		if err := e.txs.Save(tx, record); err != nil {
			return err
		}

		// wallet relations attached for the caller's convenience
		record.SourceWallet = source
		record.TargetWallet = target
		record.CreatedBy = *principal
		created = record
		return nil
	})
	if err != nil {
		return nil, wrapConflict(err)
	}
	return created, nil
}

// CancelTransaction reverses the balance effect of a committed transaction
// and deletes its row. Allowed for admins and for the transaction's creator.
// Reversal is authoritative: it never fails on insufficiency, and a wallet
// deleted since the transaction was created is simply skipped.
func (e *Engine) CancelTransaction(ctx context.Context, id uint, principal *models.User) error {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := e.txs.Load(tx, id, true)
		if err != nil {
			return err
		}
		if !principal.IsAdmin() && record.CreatedByID != principal.ID {
			return fmt.Errorf("%w: cancel transaction %d", ErrForbidden, id)
		}

		// Re-load each wallet locked; the preloaded rows above are only for
		// authorization and may be stale by the time we get the lock.
		reverse := func(walletID *uint, delta int64) error {
			if walletID == nil {
				return nil
			}
			w, err := e.wallets.Load(tx, *walletID, true)
			if errors.Is(err, ErrNotFound) {
				return nil // wallet deleted in the interim, nothing to reverse
			}
			if err != nil {
				return err
			}
			w.BalanceCent += delta
			return e.wallets.Save(tx, w)
		}

		switch record.Type {
		case models.TypeIncome:
			if err := reverse(record.TargetWalletID, -record.AmountCent); err != nil {
				return err
			}
		case models.TypeExpense:
			if err := reverse(record.SourceWalletID, record.AmountCent); err != nil {
				return err
			}
		case models.TypeTransfer:
			if err := reverse(record.SourceWalletID, record.AmountCent); err != nil {
				return err
			}
			if err := reverse(record.TargetWalletID, -record.AmountCent); err != nil {
				return err
			}
		}

		return e.txs.Delete(tx, record)
	})
	return wrapConflict(err)
}

// GetTransaction returns one transaction with its wallets attached.
func (e *Engine) GetTransaction(ctx context.Context, id uint, principal *models.User) (*models.Transaction, error) {
	record, err := e.txs.Load(e.db.WithContext(ctx), id, true)
	if err != nil {
		return nil, wrapConflict(err)
	}
	if !CanAccessTransaction(principal, record) {
		return nil, fmt.Errorf("%w: transaction %d", ErrForbidden, id)
	}
	return record, nil
}

// ListTransactions returns transactions matching the filter. Non-admins only
// ever see transactions touching a wallet they own, whatever the filter says.
func (e *Engine) ListTransactions(ctx context.Context, principal *models.User, f Filter) ([]models.Transaction, error) {
	if !principal.IsAdmin() {
		f.OwnerID = &principal.ID
	} else {
		f.OwnerID = nil
	}
	txs, err := e.txs.Query(e.db.WithContext(ctx), f)
	if err != nil {
		return nil, wrapConflict(err)
	}
	return txs, nil
}

// ---------- wallets ----------

// WalletPatch is a partial wallet update; nil fields are left unchanged.
type WalletPatch struct {
	Name        *string
	BalanceCent *int64
}

// CreateWallet creates a wallet owned by the principal.
func (e *Engine) CreateWallet(ctx context.Context, name string, initialBalanceCent int64, principal *models.User) (*models.Wallet, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: wallet name is required", ErrInvalidRequest)
	}
	if initialBalanceCent < 0 {
		return nil, fmt.Errorf("%w: initial balance must not be negative", ErrInvalidRequest)
	}

	w := &models.Wallet{
		Name:        name,
		BalanceCent: initialBalanceCent,
		UserID:      principal.ID,
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return e.wallets.Save(tx, w)
	})
	if err != nil {
		return nil, wrapConflict(err)
	}
	w.User = *principal
	return w, nil
}

// GetWallet returns one wallet the principal may access.
func (e *Engine) GetWallet(ctx context.Context, id uint, principal *models.User) (*models.Wallet, error) {
	w, err := e.wallets.Load(e.db.WithContext(ctx), id, false)
	if err != nil {
		return nil, wrapConflict(err)
	}
	if !CanAccessWallet(principal, w) {
		return nil, fmt.Errorf("%w: wallet %d", ErrForbidden, id)
	}
	return w, nil
}

// ListWallets returns the principal's wallets, or every wallet for admins.
func (e *Engine) ListWallets(ctx context.Context, principal *models.User) ([]models.Wallet, error) {
	var ownerID *uint
	if !principal.IsAdmin() {
		ownerID = &principal.ID
	}
	wallets, err := e.wallets.List(e.db.WithContext(ctx), ownerID)
	if err != nil {
		return nil, wrapConflict(err)
	}
	return wallets, nil
}

// UpdateWallet applies a partial update field by field.
func (e *Engine) UpdateWallet(ctx context.Context, id uint, patch WalletPatch, principal *models.User) (*models.Wallet, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, fmt.Errorf("%w: wallet name must not be empty", ErrInvalidRequest)
	}
	if patch.BalanceCent != nil && *patch.BalanceCent < 0 {
		return nil, fmt.Errorf("%w: balance must not be negative", ErrInvalidRequest)
	}

	var updated *models.Wallet
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := e.wallets.Load(tx, id, true)
		if err != nil {
			return err
		}
		if !CanAccessWallet(principal, w) {
			return fmt.Errorf("%w: wallet %d", ErrForbidden, id)
		}
		if patch.Name != nil {
			w.Name = *patch.Name
		}
		if patch.BalanceCent != nil {
			w.BalanceCent = *patch.BalanceCent
		}
		if err := e.wallets.Save(tx, w); err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, wrapConflict(err)
	}
	return updated, nil
}

// AdjustWalletBalance adds deltaCent (which may be negative) to the wallet
// balance. A resulting negative balance aborts the unit with ErrConflict.
func (e *Engine) AdjustWalletBalance(ctx context.Context, id uint, deltaCent int64, principal *models.User) (*models.Wallet, error) {
	var updated *models.Wallet
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := e.wallets.Load(tx, id, true)
		if err != nil {
			return err
		}
		if !CanAccessWallet(principal, w) {
			return fmt.Errorf("%w: wallet %d", ErrForbidden, id)
		}
		w.BalanceCent += deltaCent
		if w.BalanceCent < 0 {
			return fmt.Errorf("%w: insufficient funds in wallet %d", ErrConflict, id)
		}
		if err := e.wallets.Save(tx, w); err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, wrapConflict(err)
	}
	return updated, nil
}

// DeleteWallet removes a wallet and, in the same atomic unit, cleans up the
// transactions referencing it: rows for which the wallet is the only party
// are deleted, transfer rows keep their other side and get this reference
// set to NULL.
func (e *Engine) DeleteWallet(ctx context.Context, id uint, principal *models.User) error {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := e.wallets.Load(tx, id, true)
		if err != nil {
			return err
		}
		if !CanAccessWallet(principal, w) {
			return fmt.Errorf("%w: wallet %d", ErrForbidden, id)
		}
		if err := e.txs.DetachWallet(tx, id); err != nil {
			return err
		}
		return e.wallets.Delete(tx, w)
	})
	return wrapConflict(err)
}
