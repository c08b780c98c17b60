// Package server assembles the HTTP router from services.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"finhack/internal/cache"
	_ "finhack/internal/docs" // Import swagger docs
	apperrors "finhack/internal/errors"
	"finhack/internal/handlers"
	"finhack/internal/middleware"
	"finhack/internal/services"
	"finhack/internal/validator"
)

// Deps are the collaborators the router needs. Cache may be nil.
type Deps struct {
	DB    *gorm.DB
	Cache cache.Cache
}

// NewRouter wires services, handlers and middleware into a gin engine.
func NewRouter(deps Deps) *gin.Engine {
	validator.Register()

	c := deps.Cache
	if c == nil {
		c = cache.Noop{}
	}

	// Initialize services
	userService := services.NewUserService(deps.DB, c)
	auditService := services.NewAuditService(deps.DB)
	assetService := services.NewAssetService(deps.DB, c)
	transactionService := services.NewTransactionService(deps.DB, assetService, c)
	dashboardService := services.NewDashboardService(assetService, transactionService, c)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	categoryHandler := handlers.NewCategoryHandler()
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Tracing())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.ErrNotFound)
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)
	protected.PUT("/profile/password", authHandler.ChangePassword)
	protected.DELETE("/profile", authHandler.DeleteAccount)
	protected.GET("/categories", categoryHandler.ListCategories)

	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetAssets)
	assets.GET("/:id", assetHandler.GetAssetByID)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.PATCH("/:id/category", transactionHandler.UpdateCategory)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/cash-flow", dashboardHandler.GetCashFlow)
	dashboard.GET("/projected-net-worth", dashboardHandler.GetProjectedNetWorth)

	return router
}
