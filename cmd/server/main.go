package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"store_manager/internal/config"
	"store_manager/internal/database"
	"store_manager/internal/handlers"
	"store_manager/internal/logger"
	"store_manager/internal/middleware"
	"store_manager/internal/migrations"
	"store_manager/internal/redis"
	"store_manager/internal/repository"
	"store_manager/internal/services"
)

func main() {
	log := logger.Get()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	if err := migrations.RunMigrations(db, cfg.SeedPassword); err != nil {
		log.Fatal("failed to run migrations: ", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("failed to connect to Redis: ", err)
	}
	defer redisClient.Close()

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	tokenTTL := time.Duration(cfg.TokenTTL) * time.Second

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	dueRepo := repository.NewDueRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, redisClient, cfg.JWTSecret, tokenTTL)
	userService := services.NewUserService(userRepo)
	storeService := services.NewStoreService(storeRepo, userRepo)
	productService := services.NewProductService(productRepo, redisClient, cacheTTL)
	inventoryService := services.NewInventoryService(db, redisClient)
	orderService := services.NewOrderService(db, orderRepo)
	paymentService := services.NewPaymentService(paymentRepo, storeRepo)
	dueService := services.NewDueService(dueRepo, storeRepo)
	balanceService := services.NewBalanceService(orderRepo, paymentRepo, dueRepo, storeRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	storeHandler := handlers.NewStoreHandler(storeService)
	productHandler := handlers.NewProductHandler(productService, inventoryService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	dueHandler := handlers.NewDueHandler(dueService)
	balanceHandler := handlers.NewBalanceHandler(balanceService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("", middleware.RequireAuth(authService))
	{
		protected.POST("/auth/logout", authHandler.Logout)

		protected.POST("/users", userHandler.CreateUser)
		protected.GET("/users", userHandler.ListUsers)
		protected.GET("/users/:id", userHandler.GetUser)

		protected.POST("/stores", storeHandler.CreateStore)
		protected.GET("/stores", storeHandler.ListStores)
		protected.GET("/stores/:id", storeHandler.GetStore)
		protected.PUT("/stores/:id", storeHandler.UpdateStore)
		protected.DELETE("/stores/:id", storeHandler.DeleteStore)
		protected.GET("/stores/:id/balance", balanceHandler.GetStoreBalance)
		protected.GET("/officers/:id/balance", balanceHandler.GetOfficerBalance)

		protected.POST("/products", productHandler.CreateProduct)
		protected.GET("/products", productHandler.ListProducts)
		protected.GET("/products/:id", productHandler.GetProduct)
		protected.PUT("/products/:id", productHandler.UpdateProduct)
		protected.DELETE("/products/:id", productHandler.DeleteProduct)
		protected.POST("/products/:id/adjust-stock", productHandler.AdjustStock)

		protected.POST("/orders", orderHandler.CreateDraftOrder)
		protected.GET("/orders", orderHandler.ListOrders)
		protected.GET("/orders/:id", orderHandler.GetOrder)
		protected.POST("/orders/:id/submit", orderHandler.SubmitOrder)
		protected.POST("/orders/:id/approve", orderHandler.ApproveOrder)
		protected.POST("/orders/:id/reject", orderHandler.RejectOrder)
		protected.POST("/orders/:id/fulfill", orderHandler.FulfillOrder)
		protected.DELETE("/orders/:id", orderHandler.DeleteOrder)

		protected.POST("/payments", paymentHandler.RecordPayment)
		protected.GET("/payments", paymentHandler.ListPayments)

		protected.POST("/dues", dueHandler.RecordDue)
		protected.GET("/dues", dueHandler.ListDues)
	}

	// Start server
	log.Info("server starting on port ", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
