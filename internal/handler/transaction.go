package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Paulohgon/financial-system/internal/ledger"
	"github.com/Paulohgon/financial-system/internal/models"
	"github.com/Paulohgon/financial-system/internal/money"
	"github.com/Paulohgon/financial-system/internal/util"

	"github.com/gin-gonic/gin"
)

// TransactionHandler exposes the ledger engine's transaction operations.
type TransactionHandler struct {
	Engine *ledger.Engine
}

func NewTransactionHandler(engine *ledger.Engine) *TransactionHandler {
	return &TransactionHandler{Engine: engine}
}

// ---------- request/response shapes ----------

type createTransactionReq struct {
	Type           string `json:"type" binding:"required,oneof=income expense transfer"`
	Amount         string `json:"amount" binding:"required"`
	Category       string `json:"category" binding:"max=32"`
	SourceWalletID *uint  `json:"source_wallet_id"`
	TargetWalletID *uint  `json:"target_wallet_id"`
	IdempotencyKey string `json:"idempotency_key" binding:"max=64"`
}

type transactionResp struct {
	ID             uint        `json:"id"`
	Reference      string      `json:"reference"`
	Type           string      `json:"type"`
	AmountCent     int64       `json:"amount_cent"`
	Amount         string      `json:"amount"`
	Category       string      `json:"category,omitempty"`
	SourceWalletID *uint       `json:"source_wallet_id,omitempty"`
	TargetWalletID *uint       `json:"target_wallet_id,omitempty"`
	SourceWallet   *walletResp `json:"source_wallet,omitempty"`
	TargetWallet   *walletResp `json:"target_wallet,omitempty"`
	CreatedByID    uint        `json:"created_by"`
	CreatedAt      time.Time   `json:"created_at"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	resp := transactionResp{
		ID:             t.ID,
		Reference:      t.Reference,
		Type:           t.Type,
		AmountCent:     t.AmountCent,
		Amount:         money.Format(t.AmountCent),
		Category:       t.Category,
		SourceWalletID: t.SourceWalletID,
		TargetWalletID: t.TargetWalletID,
		CreatedByID:    t.CreatedByID,
		CreatedAt:      t.CreatedAt,
	}
	if t.SourceWallet != nil {
		w := toWalletResp(t.SourceWallet)
		resp.SourceWallet = &w
	}
	if t.TargetWallet != nil {
		w := toWalletResp(t.TargetWallet)
		resp.TargetWallet = &w
	}
	return resp
}

// parseFilter reads the shared listing/report filter from query parameters:
// start, end (YYYY-MM-DD, inclusive), wallet_id, category.
func parseFilter(c *gin.Context) (ledger.Filter, bool) {
	var f ledger.Filter

	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start must be YYYY-MM-DD")
			return f, false
		}
		f.Start = &t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end must be YYYY-MM-DD")
			return f, false
		}
		// inclusive: everything up to the last instant of the end day
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.End = &t
	}
	if s := c.Query("wallet_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid wallet_id")
			return f, false
		}
		wid := uint(id)
		f.WalletID = &wid
	}
	if s := c.Query("category"); s != "" {
		f.Category = &s
	}
	return f, true
}

// ---------- endpoints ----------

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	amountCent, err := money.Parse(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	in := ledger.CreateTransactionInput{
		Type:           req.Type,
		AmountCent:     amountCent,
		Category:       req.Category,
		SourceWalletID: req.SourceWalletID,
		TargetWalletID: req.TargetWalletID,
	}
	if req.IdempotencyKey != "" {
		in.IdempotencyKey = &req.IdempotencyKey
	}

	tx, err := h.Engine.CreateTransaction(c.Request.Context(), in, user)
	if err != nil {
		util.LedgerError(c, err)
		return
	}

	util.Success(c, util.Response{"transaction": toTransactionResp(tx)})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	tx, err := h.Engine.GetTransaction(c.Request.Context(), id, user)
	if err != nil {
		util.LedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": toTransactionResp(tx)})
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	f, ok := parseFilter(c)
	if !ok {
		return
	}

	txs, err := h.Engine.ListTransactions(c.Request.Context(), user, f)
	if err != nil {
		util.LedgerError(c, err)
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}
	util.Success(c, util.Response{"transactions": items, "total": len(items)})
}

// CancelTransaction reverses and removes a transaction.
func (h *TransactionHandler) CancelTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.Engine.CancelTransaction(c.Request.Context(), id, user); err != nil {
		util.LedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "transaction cancelled"})
}
