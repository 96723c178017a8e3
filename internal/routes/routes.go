// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"context"

	"wealthcheck/internal/config"
	"wealthcheck/internal/handlers"
	"wealthcheck/internal/middleware"
	"wealthcheck/internal/models"
	"wealthcheck/internal/repositories"
	"wealthcheck/internal/services/metrics"
	"wealthcheck/internal/services/transaction"
	"wealthcheck/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Dependencies are the long-lived components shared by every route.
type Dependencies struct {
	DB          *gorm.DB
	JWT         config.JWTConfig
	Cache       repositories.CacheRepository
	CachePinger handlers.Pinger
	Invalidator interface {
		transaction.Invalidator
		wallet.Invalidator
	}
	Metrics *metrics.InMemory
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	store := repositories.NewStore(deps.DB)

	walletService := wallet.NewService(store, deps.Cache, deps.Invalidator, deps.Metrics)
	transactionService := transaction.NewService(store, deps.Cache, deps.Invalidator, deps.Metrics)

	walletHandler := handlers.NewWalletHandler(walletService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	healthHandler := handlers.NewHealthHandler(
		handlers.PingerFunc(func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		deps.CachePinger,
		deps.Metrics,
	)

	app.Get("/health", healthHandler.HealthCheck)

	auth := middleware.NewAuthMiddleware(store.Accounts(), deps.JWT)
	api := app.Group("/api", auth.Handler)

	wallets := api.Group("/wallets")
	wallets.Post("/", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.CreateWallet)
	wallets.Get("/", middleware.HasPermission(models.PermissionWalletRead), walletHandler.ListWallets)
	wallets.Get("/deleted", middleware.HasPermission(models.PermissionWalletRead), walletHandler.ListDeletedWallets)
	wallets.Get("/:id", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetWallet)
	wallets.Delete("/:id", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.SoftDeleteWallet)
	wallets.Post("/:id/restore", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.RestoreWallet)
	wallets.Delete("/:id/permanent", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.PermanentDeleteWallet)

	transactions := api.Group("/transactions")
	transactions.Post("/", middleware.HasPermission(models.PermissionTransactionWrite), transactionHandler.CreateTransaction)
	transactions.Get("/", middleware.HasPermission(models.PermissionTransactionRead), transactionHandler.ListTransactions)
	transactions.Get("/deleted", middleware.HasPermission(models.PermissionTransactionRead), transactionHandler.ListDeletedTransactions)
	transactions.Get("/:id", middleware.HasPermission(models.PermissionTransactionRead), transactionHandler.GetTransaction)
	transactions.Put("/:id", middleware.HasPermission(models.PermissionTransactionWrite), transactionHandler.UpdateTransaction)
	transactions.Delete("/:id", middleware.HasPermission(models.PermissionTransactionWrite), transactionHandler.DeleteTransaction)
	transactions.Post("/:id/restore", middleware.HasPermission(models.PermissionTransactionWrite), transactionHandler.RestoreTransaction)
	transactions.Delete("/:id/permanent", middleware.HasPermission(models.PermissionTransactionWrite), transactionHandler.PermanentDeleteTransaction)
}
