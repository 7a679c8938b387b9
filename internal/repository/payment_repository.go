package repository

import (
	"gorm.io/gorm"

	"store_manager/internal/models"
)

type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByStoreIDs(storeIDs []uint) ([]models.Payment, error)
	GetAll() ([]models.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByStoreIDs(storeIDs []uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("store_id IN ?", storeIDs).Order("paid_at").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetAll() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Order("paid_at desc").Find(&payments).Error
	return payments, err
}
