package router

import (
	"github.com/Paulohgon/financial-system/internal/config"
	"github.com/Paulohgon/financial-system/internal/handler"
	"github.com/Paulohgon/financial-system/internal/ledger"
	"github.com/Paulohgon/financial-system/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires every handler to the
// ledger engine.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	engine := ledger.NewEngine(db)

	// ====== API ======
	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// register/login need no token
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// everything below requires a logged-in user
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)

	walletHandler := handler.NewWalletHandler(engine)
	protected.POST("/wallets", walletHandler.CreateWallet)
	protected.GET("/wallets", walletHandler.ListWallets)
	protected.GET("/wallets/:id", walletHandler.GetWallet)
	protected.PATCH("/wallets/:id", walletHandler.UpdateWallet)
	protected.PATCH("/wallets/:id/balance", walletHandler.AdjustBalance)
	protected.DELETE("/wallets/:id", walletHandler.DeleteWallet)

	txHandler := handler.NewTransactionHandler(engine)
	protected.POST("/transactions", txHandler.CreateTransaction)
	protected.GET("/transactions", txHandler.ListTransactions)
	protected.GET("/transactions/:id", txHandler.GetTransaction)
	protected.DELETE("/transactions/:id", txHandler.CancelTransaction)

	reportHandler := handler.NewReportHandler(engine)
	protected.GET("/reports", reportHandler.GenerateReport)

	exportHandler := handler.NewExportHandler(engine)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
