package repository

import (
	"gorm.io/gorm"

	"store_manager/internal/models"
)

type StoreRepository interface {
	Create(store *models.Store) error
	GetByID(id uint) (*models.Store, error)
	GetByOfficerID(officerID uint) ([]models.Store, error)
	GetAll() ([]models.Store, error)
	Update(store *models.Store) error
	Delete(id uint) error
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *models.Store) error {
	return r.db.Create(store).Error
}

func (r *storeRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	err := r.db.First(&store, id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) GetByOfficerID(officerID uint) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.Where("officer_id = ?", officerID).Find(&stores).Error
	return stores, err
}

func (r *storeRepository) GetAll() ([]models.Store, error) {
	var stores []models.Store
	err := r.db.Find(&stores).Error
	return stores, err
}

func (r *storeRepository) Update(store *models.Store) error {
	return r.db.Save(store).Error
}

func (r *storeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Store{}, id).Error
}
