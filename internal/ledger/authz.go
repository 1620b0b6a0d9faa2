package ledger

import "github.com/Paulohgon/financial-system/internal/models"

// Ownership predicates. Every read and write path goes through these two
// functions so authorization cannot diverge between paths. They are always
// evaluated against rows loaded inside the active database transaction,
// never against state fetched earlier.

// CanAccessWallet reports whether the principal may read or mutate the wallet.
func CanAccessWallet(principal *models.User, w *models.Wallet) bool {
	if principal.IsAdmin() {
		return true
	}
	return w.UserID == principal.ID
}

// CanAccessTransaction reports whether the principal may read the transaction:
// admins always, otherwise the owner of either involved wallet.
func CanAccessTransaction(principal *models.User, tx *models.Transaction) bool {
	if principal.IsAdmin() {
		return true
	}
	if tx.SourceWallet != nil && tx.SourceWallet.UserID == principal.ID {
		return true
	}
	if tx.TargetWallet != nil && tx.TargetWallet.UserID == principal.ID {
		return true
	}
	return false
}
