package services

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"store_manager/internal/apperrors"
	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/redis"
)

// InventoryService handles administrative stock corrections. It uses the same
// guarded conditional update as the order lifecycle, so stock can never go
// negative.
type InventoryService interface {
	AdjustStock(productID uint, delta int) (*models.Product, error)
}

type inventoryService struct {
	db    *gorm.DB
	cache *redis.Client
	log   *logrus.Logger
}

// NewInventoryService creates an inventory service. cache may be nil; stock
// adjustments then skip product cache invalidation.
func NewInventoryService(db *gorm.DB, cache *redis.Client) InventoryService {
	return &inventoryService{db: db, cache: cache, log: logger.Get()}
}

func (s *inventoryService) AdjustStock(productID uint, delta int) (*models.Product, error) {
	var product models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock + ? >= 0", productID, delta).
			UpdateColumn("stock", gorm.Expr("stock + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.First(&product, productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &apperrors.NotFoundError{Resource: "product", ID: productID}
				}
				return err
			}
			return &apperrors.InsufficientStockError{
				ProductID: productID,
				Available: product.Stock,
				Needed:    -delta,
			}
		}
		return tx.First(&product, productID).Error
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateProduct(productID); err != nil {
			s.log.WithFields(logrus.Fields{"product_id": productID}).Warn("failed to invalidate product cache: ", err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"product_id": productID,
		"delta":      delta,
		"stock":      product.Stock,
		"at":         time.Now(),
	}).Info("stock adjusted")
	return &product, nil
}
