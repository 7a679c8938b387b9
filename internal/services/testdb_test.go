package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"store_manager/internal/database"
	"store_manager/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared in-memory database per test; the busy timeout keeps
	// concurrent writers from failing instead of waiting.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// SQLite allows one writer at a time; a single pooled connection keeps
	// concurrent transactions queued instead of erroring with a locked table.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:      name,
		UnitPrice: decimal.NewFromInt(price),
		Stock:     stock,
		PackSize:  1,
		UnitLabel: "pcs",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestStore(t *testing.T, db *gorm.DB, name string, officerID uint) *models.Store {
	t.Helper()
	store := &models.Store{Name: name, OfficerID: officerID}
	require.NoError(t, db.Create(store).Error)
	return store
}

func productStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, productID).Error)
	return product.Stock
}

var (
	officerActor      = models.Actor{ID: 1, Role: models.RoleOfficer}
	adminActor        = models.Actor{ID: 2, Role: models.RoleAdmin}
	stockManagerActor = models.Actor{ID: 3, Role: models.RoleStockManager}
)
