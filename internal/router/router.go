package router

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/expense-tracker/internal/config"
	"github.com/h4ks-com/expense-tracker/internal/database"
	"github.com/h4ks-com/expense-tracker/internal/handlers"
	"github.com/h4ks-com/expense-tracker/internal/middleware"
	"github.com/h4ks-com/expense-tracker/internal/repository"
	"github.com/h4ks-com/expense-tracker/internal/services"
	"gorm.io/gorm"

	_ "github.com/h4ks-com/expense-tracker/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup builds the HTTP engine with every route wired to services backed by
// db. The store handle is only reached through the repositories built here.
func Setup(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	hasher := services.NewPasswordHasher(cfg.Security.BcryptCost)
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := services.NewAuthService(userRepo, hasher, tokenService)
	expenseService := services.NewExpenseService(expenseRepo)
	exportService := services.NewExportService(expenseRepo, exportSigningKey(cfg))

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	authHandler := handlers.NewAuthHandler(authService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	exportHandler := handlers.NewExportHandler(exportService)
	healthHandler := handlers.NewHealthHandler(handlers.PingFunc(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}))

	metrics := middleware.NewMetrics()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		metrics.Middleware(),
		middleware.CORS(cfg.HTTP.CORSOrigin),
		middleware.BodyLimit(cfg.HTTP.MaxBodyBytes),
	)

	router.GET("/healthz", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/transactions/verify", exportHandler.VerifyExport)

		authenticated := api.Group("")
		authenticated.Use(authMiddleware.RequireAuth())
		{
			authenticated.POST("/expenses", expenseHandler.CreateExpense)
			authenticated.GET("/expenses", expenseHandler.ListExpenses)
			authenticated.PUT("/expenses/:id", expenseHandler.UpdateExpense)
			authenticated.DELETE("/expenses/:id", expenseHandler.DeleteExpense)
			authenticated.GET("/transactions/history", expenseHandler.GetHistory)
			authenticated.GET("/transactions/export", exportHandler.ExportExpenses)
		}
	}

	return router
}

func exportSigningKey(cfg *config.Config) string {
	if cfg.Export.SigningKey != "" {
		return cfg.Export.SigningKey
	}
	return cfg.JWT.Secret
}
