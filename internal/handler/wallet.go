package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Paulohgon/financial-system/internal/ledger"
	"github.com/Paulohgon/financial-system/internal/models"
	"github.com/Paulohgon/financial-system/internal/money"
	"github.com/Paulohgon/financial-system/internal/util"

	"github.com/gin-gonic/gin"
)

// WalletHandler exposes wallet CRUD on top of the ledger engine. It parses
// and authenticates; every balance decision happens inside the engine.
type WalletHandler struct {
	Engine *ledger.Engine
}

func NewWalletHandler(engine *ledger.Engine) *WalletHandler {
	return &WalletHandler{Engine: engine}
}

// ---------- request/response shapes ----------

type createWalletReq struct {
	Name           string `json:"name" binding:"required,max=64"`
	InitialBalance string `json:"initial_balance"` // optional, "0.00" style
}

type updateWalletReq struct {
	Name    *string `json:"name"`
	Balance *string `json:"balance"`
}

type walletResp struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	BalanceCent int64     `json:"balance_cent"`
	Balance     string    `json:"balance"`
	OwnerID     uint      `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toWalletResp(w *models.Wallet) walletResp {
	return walletResp{
		ID:          w.ID,
		Name:        w.Name,
		BalanceCent: w.BalanceCent,
		Balance:     money.Format(w.BalanceCent),
		OwnerID:     w.UserID,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// ---------- endpoints ----------

func (h *WalletHandler) CreateWallet(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createWalletReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var initialCent int64
	if req.InitialBalance != "" {
		cents, err := money.Parse(req.InitialBalance)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid initial balance")
			return
		}
		initialCent = cents
	}

	wallet, err := h.Engine.CreateWallet(c.Request.Context(), strings.TrimSpace(req.Name), initialCent, user)
	if err != nil {
		util.LedgerError(c, err)
		return
	}

	util.Success(c, util.Response{"wallet": toWalletResp(wallet)})
}

func (h *WalletHandler) ListWallets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	wallets, err := h.Engine.ListWallets(c.Request.Context(), user)
	if err != nil {
		util.LedgerError(c, err)
		return
	}

	items := make([]walletResp, 0, len(wallets))
	for i := range wallets {
		items = append(items, toWalletResp(&wallets[i]))
	}
	util.Success(c, util.Response{"wallets": items})
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	wallet, err := h.Engine.GetWallet(c.Request.Context(), id, user)
	if err != nil {
		util.LedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"wallet": toWalletResp(wallet)})
}

func (h *WalletHandler) UpdateWallet(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateWalletReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	// unset fields stay unchanged
	patch := ledger.WalletPatch{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	if req.Balance != nil {
		cents, err := money.Parse(*req.Balance)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid balance")
			return
		}
		patch.BalanceCent = &cents
	}

	wallet, err := h.Engine.UpdateWallet(c.Request.Context(), id, patch, user)
	if err != nil {
		util.LedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"wallet": toWalletResp(wallet)})
}

// AdjustBalance adds a signed amount to the wallet balance,
// e.g. PATCH /wallets/3/balance?amount=-25.00.
func (h *WalletHandler) AdjustBalance(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	deltaCent, err := money.ParseSigned(c.Query("amount"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	wallet, err := h.Engine.AdjustWalletBalance(c.Request.Context(), id, deltaCent, user)
	if err != nil {
		util.LedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"wallet": toWalletResp(wallet)})
}

func (h *WalletHandler) DeleteWallet(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.Engine.DeleteWallet(c.Request.Context(), id, user); err != nil {
		util.LedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "wallet deleted"})
}
