package services

import (
	"errors"

	"gorm.io/gorm"

	"store_manager/internal/apperrors"
	"store_manager/internal/models"
	"store_manager/internal/repository"
)

type StoreService interface {
	CreateStore(store *models.Store) error
	GetStoreByID(id uint) (*models.Store, error)
	GetStoresByOfficer(officerID uint) ([]models.Store, error)
	GetAllStores() ([]models.Store, error)
	UpdateStore(store *models.Store) error
	DeleteStore(id uint) error
}

type storeService struct {
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
}

func NewStoreService(storeRepo repository.StoreRepository, userRepo repository.UserRepository) StoreService {
	return &storeService{storeRepo: storeRepo, userRepo: userRepo}
}

func (s *storeService) CreateStore(store *models.Store) error {
	if store.Name == "" {
		return &apperrors.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if _, err := s.userRepo.GetByID(store.OfficerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Resource: "officer", ID: store.OfficerID}
		}
		return err
	}
	return s.storeRepo.Create(store)
}

func (s *storeService) GetStoreByID(id uint) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "store", ID: id}
		}
		return nil, err
	}
	return store, nil
}

func (s *storeService) GetStoresByOfficer(officerID uint) ([]models.Store, error) {
	return s.storeRepo.GetByOfficerID(officerID)
}

func (s *storeService) GetAllStores() ([]models.Store, error) {
	return s.storeRepo.GetAll()
}

func (s *storeService) UpdateStore(store *models.Store) error {
	return s.storeRepo.Update(store)
}

func (s *storeService) DeleteStore(id uint) error {
	return s.storeRepo.Delete(id)
}
