package migrations

import (
	"errors"

	"gorm.io/gorm"

	"store_manager/internal/database"
	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/repository"
	"store_manager/internal/services"
)

// RunMigrations migrates the schema and seeds the initial admin account.
func RunMigrations(db *gorm.DB, adminPassword string) error {
	log := logger.Get()
	log.Info("running database migrations")

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	if err := seedAdmin(db, adminPassword); err != nil {
		return err
	}

	log.Info("database migrations completed")
	return nil
}

func seedAdmin(db *gorm.DB, adminPassword string) error {
	log := logger.Get()

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)

	existing, err := userRepo.GetByUsername("admin")
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@localhost",
		Role:     string(models.RoleAdmin),
		IsActive: true,
	}
	if err := userService.CreateUser(admin, adminPassword); err != nil {
		return err
	}

	log.Info("seeded admin user")
	return nil
}
