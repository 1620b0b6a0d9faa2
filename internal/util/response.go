package util

import (
	"errors"
	"net/http"

	"github.com/Paulohgon/financial-system/internal/ledger"

	"github.com/gin-gonic/gin"
)

// Data in the common envelope is a map.
type Response map[string]interface{}

// Business codes carried next to the HTTP status.
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeInsufficient = 40002
	CodeAuth         = 40101
	CodeForbidden    = 40301
	CodeNotFound     = 40401
	CodeConflict     = 40901
	CodeServerErr    = 50001
)

// Success writes the common success envelope.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes the common error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// LedgerError maps an engine error kind onto the envelope. The engine
// guarantees the failed unit was rolled back, so the message can go back to
// the caller as-is.
func LedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		Error(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, ledger.ErrForbidden):
		Error(c, http.StatusForbidden, CodeForbidden, err.Error())
	case errors.Is(err, ledger.ErrInvalidRequest):
		Error(c, http.StatusBadRequest, CodeInvalidParam, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		Error(c, http.StatusBadRequest, CodeInsufficient, err.Error())
	case errors.Is(err, ledger.ErrConflict):
		Error(c, http.StatusConflict, CodeConflict, err.Error())
	default:
		Error(c, http.StatusInternalServerError, CodeServerErr, "internal error")
	}
}
