package handler

import (
	"net/http"

	"github.com/Paulohgon/financial-system/internal/ledger"
	"github.com/Paulohgon/financial-system/internal/money"
	"github.com/Paulohgon/financial-system/internal/util"

	"github.com/gin-gonic/gin"
)

// ReportHandler exposes the read-only report aggregator.
type ReportHandler struct {
	Engine *ledger.Engine
}

func NewReportHandler(engine *ledger.Engine) *ReportHandler {
	return &ReportHandler{Engine: engine}
}

// GenerateReport sums a principal's transactions over a date range,
// e.g. GET /reports?start=2025-01-01&end=2025-01-31&wallet_id=3.
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	f, ok := parseFilter(c)
	if !ok {
		return
	}
	if f.Start == nil || f.End == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start and end are required")
		return
	}

	sum, err := h.Engine.GenerateReport(c.Request.Context(), f, user)
	if err != nil {
		util.LedgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"report": gin.H{
			"income_cent":       sum.IncomeCent,
			"income":            money.Format(sum.IncomeCent),
			"expense_cent":      sum.ExpenseCent,
			"expense":           money.Format(sum.ExpenseCent),
			"transfer_in_cent":  sum.TransferInCent,
			"transfer_in":       money.Format(sum.TransferInCent),
			"transfer_out_cent": sum.TransferOutCent,
			"transfer_out":      money.Format(sum.TransferOutCent),
			"total_cent":        sum.TotalCent,
			"total":             money.Format(sum.TotalCent),
		},
	})
}
