package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/Paulohgon/financial-system/internal/ledger"
	"github.com/Paulohgon/financial-system/internal/models"
	"github.com/Paulohgon/financial-system/internal/money"
	"github.com/Paulohgon/financial-system/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler streams a principal's transactions as CSV or XLSX. Accepts
// the same query filters as the transaction listing.
type ExportHandler struct {
	Engine *ledger.Engine
}

func NewExportHandler(engine *ledger.Engine) *ExportHandler {
	return &ExportHandler{Engine: engine}
}

var exportHeader = []string{"Reference", "Type", "Amount", "Category", "Source Wallet", "Target Wallet", "Created At"}

func exportRow(t *models.Transaction) []string {
	source, target := "", ""
	if t.SourceWallet != nil {
		source = t.SourceWallet.Name
	}
	if t.TargetWallet != nil {
		target = t.TargetWallet.Name
	}
	return []string{
		t.Reference,
		t.Type,
		money.Format(t.AmountCent),
		t.Category,
		source,
		target,
		t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ExportCSV writes the filtered transactions as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
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

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so Excel opens the file correctly
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeader)
	for i := range txs {
		writer.Write(exportRow(&txs[i]))
	}
}

// ExportXLSX writes the filtered transactions as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
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

	book := excelize.NewFile()
	sheetName := "Transactions"
	index, err := book.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	book.SetActiveSheet(index)

	for i, title := range exportHeader {
		cell := fmt.Sprintf("%c1", 'A'+i)
		book.SetCellValue(sheetName, cell, title)
	}

	for idx := range txs {
		row := idx + 2
		for col, value := range exportRow(&txs[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			book.SetCellValue(sheetName, cell, value)
		}
	}

	book.SetColWidth(sheetName, "A", "A", 38)
	book.SetColWidth(sheetName, "B", "B", 10)
	book.SetColWidth(sheetName, "C", "C", 12)
	book.SetColWidth(sheetName, "D", "D", 15)
	book.SetColWidth(sheetName, "E", "F", 18)
	book.SetColWidth(sheetName, "G", "G", 20)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := book.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
