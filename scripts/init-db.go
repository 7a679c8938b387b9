package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"store_manager/internal/config"
	"store_manager/internal/database"
	"store_manager/internal/migrations"
	"store_manager/internal/models"
	"store_manager/internal/repository"
	"store_manager/internal/services"
)

// Resets the database and seeds development data: an admin, a stock manager,
// an officer with two stores, and a handful of products.
func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusEvent{},
		&models.Payment{},
		&models.Due{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	if err := migrations.RunMigrations(db, cfg.SeedPassword); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)
	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)

	fmt.Println("Seeding development data...")

	stockManager := &models.User{
		Username: "stock",
		Email:    "stock@localhost",
		Role:     string(models.RoleStockManager),
		IsActive: true,
	}
	if err := userService.CreateUser(stockManager, cfg.SeedPassword); err != nil {
		log.Printf("Warning: Failed to create stock manager: %v", err)
	}

	officer := &models.User{
		Username: "officer1",
		Email:    "officer1@localhost",
		Role:     string(models.RoleOfficer),
		IsActive: true,
	}
	if err := userService.CreateUser(officer, cfg.SeedPassword); err != nil {
		log.Printf("Warning: Failed to create officer: %v", err)
	}

	stores := []models.Store{
		{Name: "Central Mart", Area: "Downtown", OfficerID: officer.ID},
		{Name: "Lakeside Grocery", Area: "Lakeside", OfficerID: officer.ID},
	}
	for i := range stores {
		if err := storeRepo.Create(&stores[i]); err != nil {
			log.Printf("Warning: Failed to create store %s: %v", stores[i].Name, err)
		}
	}

	products := []models.Product{
		{Name: "Cooking Oil 1L", UnitPrice: decimal.NewFromInt(120), Stock: 200, PackSize: 12, UnitLabel: "bottle"},
		{Name: "Rice 5kg", UnitPrice: decimal.NewFromInt(450), Stock: 150, PackSize: 4, UnitLabel: "bag"},
		{Name: "Sugar 1kg", UnitPrice: decimal.NewFromInt(85), Stock: 300, PackSize: 24, UnitLabel: "pack"},
	}
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			log.Printf("Warning: Failed to create product %s: %v", products[i].Name, err)
		}
	}

	fmt.Println("Database initialized successfully!")
	fmt.Println("Admin login: admin /", cfg.SeedPassword)
}
