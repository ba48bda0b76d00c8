package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lendmarket/config"
	"github.com/yourusername/lendmarket/handlers"
	"github.com/yourusername/lendmarket/middleware"
	"github.com/yourusername/lendmarket/models"
	"github.com/yourusername/lendmarket/repositories"
	"github.com/yourusername/lendmarket/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Wire repositories and services
	userRepo := repositories.NewUserRepository(db)
	operationRepo := repositories.NewOperationRepository(db)
	bidRepo := repositories.NewBidRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenService)
	ledgerService := services.NewLedgerService(operationRepo, bidRepo)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	operationHandler := handlers.NewOperationHandler(ledgerService)
	bidHandler := handlers.NewBidHandler(ledgerService)
	userHandler := handlers.NewUserHandler(authService)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "lendmarket-api",
		})
	})

	// Public routes
	router.POST("/register", authHandler.Register)
	router.POST("/token", authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	// Authenticated routes
	authed := router.Group("")
	authed.Use(middleware.Auth(authService))
	{
		authed.GET("/users/me", authHandler.Me)
		authed.GET("/operator_dashboard", middleware.RequireRole(models.RoleOperator), authHandler.Dashboard)
		authed.GET("/investor_dashboard", middleware.RequireRole(models.RoleInvestor), authHandler.Dashboard)
		authed.GET("/admin_dashboard", middleware.RequireRole(models.RoleAdmin), authHandler.Dashboard)
	}

	// Operator routes (admin may act as operator)
	operator := router.Group("/operator")
	operator.Use(middleware.Auth(authService), middleware.RequireRole(models.RoleOperator, models.RoleAdmin))
	{
		operator.POST("/create-operation", operationHandler.CreateOperation)
		operator.GET("/operations", operationHandler.ListAll)
		operator.PUT("/update-status", operationHandler.UpdateStatus)
	}

	// Investor routes
	investor := router.Group("/investor")
	investor.Use(middleware.Auth(authService), middleware.RequireRole(models.RoleInvestor))
	{
		investor.GET("/operations", operationHandler.ListOpen)
		investor.POST("/make-offer", bidHandler.MakeOffer)
		investor.GET("/my-bids", bidHandler.MyBids)
	}

	// Admin routes
	admin := router.Group("/admin")
	admin.Use(middleware.Auth(authService), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/users/add", userHandler.AddUser)
		admin.DELETE("/users/delete/:user_id", userHandler.DeleteUser)
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting lendmarket API server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
