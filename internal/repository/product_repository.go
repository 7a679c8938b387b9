package repository

import (
	"gorm.io/gorm"

	"store_manager/internal/models"
)

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetAll() ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("name").Find(&products).Error
	return products, err
}

// Update persists name, price, pack size and unit label. Stock is excluded so
// the guarded adjustment paths cannot be bypassed.
func (r *productRepository) Update(product *models.Product) error {
	return r.db.Model(product).
		Select("name", "unit_price", "pack_size", "unit_label").
		Updates(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}
