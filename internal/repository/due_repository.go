package repository

import (
	"gorm.io/gorm"

	"store_manager/internal/models"
)

type DueRepository interface {
	Create(due *models.Due) error
	GetByID(id uint) (*models.Due, error)
	GetByStoreIDs(storeIDs []uint) ([]models.Due, error)
	GetAll() ([]models.Due, error)
}

type dueRepository struct {
	db *gorm.DB
}

func NewDueRepository(db *gorm.DB) DueRepository {
	return &dueRepository{db: db}
}

func (r *dueRepository) Create(due *models.Due) error {
	return r.db.Create(due).Error
}

func (r *dueRepository) GetByID(id uint) (*models.Due, error) {
	var due models.Due
	err := r.db.First(&due, id).Error
	if err != nil {
		return nil, err
	}
	return &due, nil
}

func (r *dueRepository) GetByStoreIDs(storeIDs []uint) ([]models.Due, error) {
	var dues []models.Due
	err := r.db.Where("store_id IN ?", storeIDs).Order("incurred_at").Find(&dues).Error
	return dues, err
}

func (r *dueRepository) GetAll() ([]models.Due, error) {
	var dues []models.Due
	err := r.db.Order("incurred_at desc").Find(&dues).Error
	return dues, err
}
