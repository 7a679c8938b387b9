package repository

import (
	"errors"

	"gorm.io/gorm"

	"store_manager/internal/models"
)

type OrderRepository interface {
	GetByID(id uint) (*models.Order, error)
	GetByStoreID(storeID uint) ([]models.Order, error)
	GetByStatus(status models.OrderStatus) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	// FindDraft returns the open draft for a (store, creator) pair, or nil when
	// none exists. At most one may exist at a time.
	FindDraft(storeID, createdBy uint) (*models.Order, error)
	// GetFulfilledByStoreIDs returns fulfilled orders with their items, the only
	// orders that count toward a store balance.
	GetFulfilledByStoreIDs(storeIDs []uint) ([]models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByStoreID(storeID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("store_id = ?", storeID).Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByStatus(status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("status = ?", status).Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) FindDraft(storeID, createdBy uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Where("store_id = ? AND created_by = ? AND status = ?", storeID, createdBy, models.OrderDraft).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetFulfilledByStoreIDs(storeIDs []uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("store_id IN ? AND status = ?", storeIDs, models.OrderFulfilled).
		Find(&orders).Error
	return orders, err
}
