package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Paulohgon/financial-system/internal/ledger"
	"github.com/Paulohgon/financial-system/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ---------- test setup ----------

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive across units
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Transaction{},
	))
	return db
}

func newTestEngine(t *testing.T) (*ledger.Engine, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return ledger.NewEngine(db), db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: email, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedWallet(t *testing.T, db *gorm.DB, owner *models.User, name string, cents int64) *models.Wallet {
	t.Helper()
	w := &models.Wallet{Name: name, BalanceCent: cents, UserID: owner.ID}
	require.NoError(t, db.Create(w).Error)
	return w
}

func walletBalance(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()
	var w models.Wallet
	require.NoError(t, db.First(&w, id).Error)
	return w.BalanceCent
}

func countTransactions(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&n).Error)
	return n
}

func expenseInput(walletID uint, cents int64) ledger.CreateTransactionInput {
	return ledger.CreateTransactionInput{
		Type:           models.TypeExpense,
		AmountCent:     cents,
		SourceWalletID: &walletID,
	}
}

func incomeInput(walletID uint, cents int64) ledger.CreateTransactionInput {
	return ledger.CreateTransactionInput{
		Type:           models.TypeIncome,
		AmountCent:     cents,
		TargetWalletID: &walletID,
	}
}

func transferInput(sourceID, targetID uint, cents int64) ledger.CreateTransactionInput {
	return ledger.CreateTransactionInput{
		Type:           models.TypeTransfer,
		AmountCent:     cents,
		SourceWalletID: &sourceID,
		TargetWalletID: &targetID,
	}
}

// ---------- create ----------

func TestCreateExpense_DebitsWallet(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 100_00)

	tx, err := engine.CreateTransaction(context.Background(), expenseInput(wallet.ID, 30_00), owner)
	require.NoError(t, err)

	assert.Equal(t, models.TypeExpense, tx.Type)
	assert.Equal(t, int64(30_00), tx.AmountCent)
	assert.NotEmpty(t, tx.Reference)
	require.NotNil(t, tx.SourceWallet)
	assert.Equal(t, int64(70_00), tx.SourceWallet.BalanceCent)

	assert.Equal(t, int64(70_00), walletBalance(t, db, wallet.ID))
	assert.Equal(t, int64(1), countTransactions(t, db))
}

func TestCreateIncome_CreditsWallet(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 0)

	in := incomeInput(wallet.ID, 50_00)
	in.Category = "salary"
	tx, err := engine.CreateTransaction(context.Background(), in, owner)
	require.NoError(t, err)

	assert.Equal(t, "salary", tx.Category)
	assert.Equal(t, int64(50_00), walletBalance(t, db, wallet.ID))
}

func TestCreateExpense_InsufficientFunds(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 70_00)

	_, err := engine.CreateTransaction(context.Background(), expenseInput(wallet.ID, 1000_00), owner)
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	// nothing changed, no orphan row
	assert.Equal(t, int64(70_00), walletBalance(t, db, wallet.ID))
	assert.Equal(t, int64(0), countTransactions(t, db))
}

func TestCreateTransfer_MovesFunds(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	a := seedWallet(t, db, owner, "a", 70_00)
	b := seedWallet(t, db, owner, "b", 0)

	tx, err := engine.CreateTransaction(context.Background(), transferInput(a.ID, b.ID, 20_00), owner)
	require.NoError(t, err)

	assert.Equal(t, int64(50_00), walletBalance(t, db, a.ID))
	assert.Equal(t, int64(20_00), walletBalance(t, db, b.ID))

	// cancelling is a true inverse
	require.NoError(t, engine.CancelTransaction(context.Background(), tx.ID, owner))
	assert.Equal(t, int64(70_00), walletBalance(t, db, a.ID))
	assert.Equal(t, int64(0), walletBalance(t, db, b.ID))
	assert.Equal(t, int64(0), countTransactions(t, db))
}

func TestCreateTransfer_InsufficientFunds(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	a := seedWallet(t, db, owner, "a", 10_00)
	b := seedWallet(t, db, owner, "b", 0)

	_, err := engine.CreateTransaction(context.Background(), transferInput(a.ID, b.ID, 20_00), owner)
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Equal(t, int64(10_00), walletBalance(t, db, a.ID))
	assert.Equal(t, int64(0), walletBalance(t, db, b.ID))
}

func TestCreateTransaction_WalletRequirements(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 100_00)

	cases := map[string]ledger.CreateTransactionInput{
		"income without target": {
			Type: models.TypeIncome, AmountCent: 10_00,
		},
		"income with source": {
			Type: models.TypeIncome, AmountCent: 10_00,
			SourceWalletID: &wallet.ID, TargetWalletID: &wallet.ID,
		},
		"expense without source": {
			Type: models.TypeExpense, AmountCent: 10_00,
		},
		"expense with target": {
			Type: models.TypeExpense, AmountCent: 10_00,
			SourceWalletID: &wallet.ID, TargetWalletID: &wallet.ID,
		},
		"transfer without target": {
			Type: models.TypeTransfer, AmountCent: 10_00,
			SourceWalletID: &wallet.ID,
		},
		"transfer onto itself": {
			Type: models.TypeTransfer, AmountCent: 10_00,
			SourceWalletID: &wallet.ID, TargetWalletID: &wallet.ID,
		},
		"unknown type": {
			Type: "loan", AmountCent: 10_00, TargetWalletID: &wallet.ID,
		},
		"non-positive amount": {
			Type: models.TypeIncome, AmountCent: 0, TargetWalletID: &wallet.ID,
		},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := engine.CreateTransaction(context.Background(), in, owner)
			require.ErrorIs(t, err, ledger.ErrInvalidRequest)
		})
	}

	assert.Equal(t, int64(100_00), walletBalance(t, db, wallet.ID))
	assert.Equal(t, int64(0), countTransactions(t, db))
}

func TestCreateTransaction_WalletNotFound(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)

	_, err := engine.CreateTransaction(context.Background(), expenseInput(999, 10_00), owner)
	require.ErrorIs(t, err, ledger.ErrNotFound)
	assert.Equal(t, int64(0), countTransactions(t, db))
}

func TestCreateTransaction_ForbiddenForNonOwner(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	intruder := seedUser(t, db, "intruder@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 100_00)

	_, err := engine.CreateTransaction(context.Background(), expenseInput(wallet.ID, 10_00), intruder)
	require.ErrorIs(t, err, ledger.ErrForbidden)

	assert.Equal(t, int64(100_00), walletBalance(t, db, wallet.ID))
	assert.Equal(t, int64(0), countTransactions(t, db))
}

func TestCreateTransaction_AdminMayUseAnyWallet(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	wallet := seedWallet(t, db, owner, "checking", 100_00)

	tx, err := engine.CreateTransaction(context.Background(), expenseInput(wallet.ID, 10_00), admin)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, tx.CreatedByID)
	assert.Equal(t, int64(90_00), walletBalance(t, db, wallet.ID))
}

func TestCreateTransaction_IdempotencyKey(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 100_00)

	key := "retry-abc-123"
	in := expenseInput(wallet.ID, 30_00)
	in.IdempotencyKey = &key

	first, err := engine.CreateTransaction(context.Background(), in, owner)
	require.NoError(t, err)

	// a retried create must not double-apply
	second, err := engine.CreateTransaction(context.Background(), in, owner)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Reference, second.Reference)
	assert.Equal(t, int64(70_00), walletBalance(t, db, wallet.ID))
	assert.Equal(t, int64(1), countTransactions(t, db))
}

// If persisting the transaction row fails after the balances were already
// computed and written inside the unit, the whole unit must roll back.
func TestCreateTransaction_AtomicOnRecordFailure(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 100_00)

	// sabotage the record-save step
	require.NoError(t, db.Migrator().DropTable(&models.Transaction{}))

	_, err := engine.CreateTransaction(context.Background(), expenseInput(wallet.ID, 30_00), owner)
	require.Error(t, err)
	require.ErrorIs(t, err, ledger.ErrConflict)

	assert.Equal(t, int64(100_00), walletBalance(t, db, wallet.ID))
}

// ---------- cancel ----------

func TestCancelTransaction_IncomeInverse(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 10_00)

	tx, err := engine.CreateTransaction(context.Background(), incomeInput(wallet.ID, 50_00), owner)
	require.NoError(t, err)
	require.Equal(t, int64(60_00), walletBalance(t, db, wallet.ID))

	require.NoError(t, engine.CancelTransaction(context.Background(), tx.ID, owner))
	assert.Equal(t, int64(10_00), walletBalance(t, db, wallet.ID))
	assert.Equal(t, int64(0), countTransactions(t, db))
}

func TestCancelTransaction_NotFound(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)

	err := engine.CancelTransaction(context.Background(), 42, owner)
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestCancelTransaction_OnlyCreatorOrAdmin(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	other := seedUser(t, db, "other@example.com", models.RoleUser)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	wallet := seedWallet(t, db, owner, "checking", 100_00)

	tx, err := engine.CreateTransaction(context.Background(), expenseInput(wallet.ID, 30_00), owner)
	require.NoError(t, err)

	err = engine.CancelTransaction(context.Background(), tx.ID, other)
	require.ErrorIs(t, err, ledger.ErrForbidden)
	assert.Equal(t, int64(70_00), walletBalance(t, db, wallet.ID))

	require.NoError(t, engine.CancelTransaction(context.Background(), tx.ID, admin))
	assert.Equal(t, int64(100_00), walletBalance(t, db, wallet.ID))
}

// Cancellation is authoritative: it may drive a balance negative when other
// activity already spent the credited funds.
func TestCancelTransaction_AllowsNegativeResult(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 0)

	income, err := engine.CreateTransaction(context.Background(), incomeInput(wallet.ID, 50_00), owner)
	require.NoError(t, err)
	_, err = engine.CreateTransaction(context.Background(), expenseInput(wallet.ID, 40_00), owner)
	require.NoError(t, err)

	require.NoError(t, engine.CancelTransaction(context.Background(), income.ID, owner))
	assert.Equal(t, int64(-40_00), walletBalance(t, db, wallet.ID))
}

func TestCancelTransaction_SkipsDeletedWallet(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	a := seedWallet(t, db, owner, "a", 70_00)
	b := seedWallet(t, db, owner, "b", 0)

	tx, err := engine.CreateTransaction(context.Background(), transferInput(a.ID, b.ID, 20_00), owner)
	require.NoError(t, err)

	// the target side disappears before the cancel
	require.NoError(t, engine.DeleteWallet(context.Background(), b.ID, owner))

	require.NoError(t, engine.CancelTransaction(context.Background(), tx.ID, owner))
	assert.Equal(t, int64(70_00), walletBalance(t, db, a.ID))
	assert.Equal(t, int64(0), countTransactions(t, db))
}

// ---------- conservation ----------

func TestBalanceConservation(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	a := seedWallet(t, db, owner, "a", 0)
	b := seedWallet(t, db, owner, "b", 0)

	var incomeSum, expenseSum int64
	steps := []ledger.CreateTransactionInput{
		incomeInput(a.ID, 500_00),
		incomeInput(b.ID, 120_00),
		expenseInput(a.ID, 75_50),
		transferInput(a.ID, b.ID, 200_00),
		expenseInput(b.ID, 20_25),
		transferInput(b.ID, a.ID, 99_99),
	}
	for _, in := range steps {
		_, err := engine.CreateTransaction(context.Background(), in, owner)
		require.NoError(t, err)
		switch in.Type {
		case models.TypeIncome:
			incomeSum += in.AmountCent
		case models.TypeExpense:
			expenseSum += in.AmountCent
		}
	}

	total := walletBalance(t, db, a.ID) + walletBalance(t, db, b.ID)
	assert.Equal(t, incomeSum-expenseSum, total)
}

// ---------- wallet operations ----------

func TestCreateWallet(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)

	w, err := engine.CreateWallet(context.Background(), "savings", 25_00, owner)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, w.UserID)
	assert.Equal(t, int64(25_00), walletBalance(t, db, w.ID))

	_, err = engine.CreateWallet(context.Background(), "", 0, owner)
	require.ErrorIs(t, err, ledger.ErrInvalidRequest)

	_, err = engine.CreateWallet(context.Background(), "bad", -1, owner)
	require.ErrorIs(t, err, ledger.ErrInvalidRequest)
}

func TestGetWallet_Ownership(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	other := seedUser(t, db, "other@example.com", models.RoleUser)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	wallet := seedWallet(t, db, owner, "checking", 10_00)

	_, err := engine.GetWallet(context.Background(), wallet.ID, other)
	require.ErrorIs(t, err, ledger.ErrForbidden)

	got, err := engine.GetWallet(context.Background(), wallet.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, wallet.ID, got.ID)

	_, err = engine.GetWallet(context.Background(), 999, owner)
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestListWallets_Scoping(t *testing.T) {
	engine, db := newTestEngine(t)
	alice := seedUser(t, db, "alice@example.com", models.RoleUser)
	bob := seedUser(t, db, "bob@example.com", models.RoleUser)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	seedWallet(t, db, alice, "a1", 0)
	seedWallet(t, db, alice, "a2", 0)
	seedWallet(t, db, bob, "b1", 0)

	own, err := engine.ListWallets(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	all, err := engine.ListWallets(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateWallet_PartialPatch(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "old name", 42_00)

	name := "new name"
	updated, err := engine.UpdateWallet(context.Background(), wallet.ID, ledger.WalletPatch{Name: &name}, owner)
	require.NoError(t, err)
	assert.Equal(t, "new name", updated.Name)
	// unset balance stays unchanged
	assert.Equal(t, int64(42_00), updated.BalanceCent)

	balance := int64(7_00)
	updated, err = engine.UpdateWallet(context.Background(), wallet.ID, ledger.WalletPatch{BalanceCent: &balance}, owner)
	require.NoError(t, err)
	assert.Equal(t, "new name", updated.Name)
	assert.Equal(t, int64(7_00), updated.BalanceCent)

	negative := int64(-1)
	_, err = engine.UpdateWallet(context.Background(), wallet.ID, ledger.WalletPatch{BalanceCent: &negative}, owner)
	require.ErrorIs(t, err, ledger.ErrInvalidRequest)
}

func TestAdjustWalletBalance(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	other := seedUser(t, db, "other@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 50_00)

	w, err := engine.AdjustWalletBalance(context.Background(), wallet.ID, 25_00, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(75_00), w.BalanceCent)

	w, err = engine.AdjustWalletBalance(context.Background(), wallet.ID, -75_00, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(0), w.BalanceCent)

	_, err = engine.AdjustWalletBalance(context.Background(), wallet.ID, -1, owner)
	require.ErrorIs(t, err, ledger.ErrConflict)
	assert.Equal(t, int64(0), walletBalance(t, db, wallet.ID))

	_, err = engine.AdjustWalletBalance(context.Background(), wallet.ID, 10_00, other)
	require.ErrorIs(t, err, ledger.ErrForbidden)
}

func TestDeleteWallet_CleansUpTransactions(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	a := seedWallet(t, db, owner, "a", 0)
	b := seedWallet(t, db, owner, "b", 0)

	_, err := engine.CreateTransaction(context.Background(), incomeInput(a.ID, 100_00), owner)
	require.NoError(t, err)
	_, err = engine.CreateTransaction(context.Background(), expenseInput(a.ID, 10_00), owner)
	require.NoError(t, err)
	transfer, err := engine.CreateTransaction(context.Background(), transferInput(a.ID, b.ID, 30_00), owner)
	require.NoError(t, err)

	require.NoError(t, engine.DeleteWallet(context.Background(), a.ID, owner))

	var w models.Wallet
	err = db.First(&w, a.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// sole-party rows are gone, the transfer keeps its other side
	assert.Equal(t, int64(1), countTransactions(t, db))
	var kept models.Transaction
	require.NoError(t, db.First(&kept, transfer.ID).Error)
	assert.Nil(t, kept.SourceWalletID)
	require.NotNil(t, kept.TargetWalletID)
	assert.Equal(t, b.ID, *kept.TargetWalletID)
}

func TestDeleteWallet_Forbidden(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	other := seedUser(t, db, "other@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 0)

	err := engine.DeleteWallet(context.Background(), wallet.ID, other)
	require.ErrorIs(t, err, ledger.ErrForbidden)
	require.NoError(t, db.First(&models.Wallet{}, wallet.ID).Error)
}

// ---------- listing ----------

func TestListTransactions_ScopedToOwner(t *testing.T) {
	engine, db := newTestEngine(t)
	alice := seedUser(t, db, "alice@example.com", models.RoleUser)
	bob := seedUser(t, db, "bob@example.com", models.RoleUser)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	aw := seedWallet(t, db, alice, "alice", 0)
	bw := seedWallet(t, db, bob, "bob", 0)

	_, err := engine.CreateTransaction(context.Background(), incomeInput(aw.ID, 10_00), alice)
	require.NoError(t, err)
	_, err = engine.CreateTransaction(context.Background(), incomeInput(bw.ID, 20_00), bob)
	require.NoError(t, err)

	mine, err := engine.ListTransactions(context.Background(), alice, ledger.Filter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(10_00), mine[0].AmountCent)

	all, err := engine.ListTransactions(context.Background(), admin, ledger.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListTransactions_Filters(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	a := seedWallet(t, db, owner, "a", 0)
	b := seedWallet(t, db, owner, "b", 0)

	in := incomeInput(a.ID, 10_00)
	in.Category = "salary"
	_, err := engine.CreateTransaction(context.Background(), in, owner)
	require.NoError(t, err)
	in = incomeInput(b.ID, 20_00)
	in.Category = "gift"
	_, err = engine.CreateTransaction(context.Background(), in, owner)
	require.NoError(t, err)
	_, err = engine.CreateTransaction(context.Background(), transferInput(a.ID, b.ID, 5_00), owner)
	require.NoError(t, err)

	category := "salary"
	byCategory, err := engine.ListTransactions(context.Background(), owner, ledger.Filter{Category: &category})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "salary", byCategory[0].Category)

	// wallet filter matches as source or target
	byWallet, err := engine.ListTransactions(context.Background(), owner, ledger.Filter{WalletID: &a.ID})
	require.NoError(t, err)
	assert.Len(t, byWallet, 2)
}

func TestGetTransaction_Access(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	other := seedUser(t, db, "other@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 0)

	tx, err := engine.CreateTransaction(context.Background(), incomeInput(wallet.ID, 10_00), owner)
	require.NoError(t, err)

	got, err := engine.GetTransaction(context.Background(), tx.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, got.TargetWallet)

	_, err = engine.GetTransaction(context.Background(), tx.ID, other)
	require.ErrorIs(t, err, ledger.ErrForbidden)

	_, err = engine.GetTransaction(context.Background(), 999, owner)
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

// wrapConflict must not mask engine kinds behind ErrConflict.
func TestErrorKindsSurviveTheUnit(t *testing.T) {
	engine, db := newTestEngine(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	wallet := seedWallet(t, db, owner, "checking", 0)

	_, err := engine.CreateTransaction(context.Background(), expenseInput(wallet.ID, 10_00), owner)
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.False(t, errors.Is(err, ledger.ErrConflict))
}
