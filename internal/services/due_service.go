package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"store_manager/internal/apperrors"
	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/repository"
)

type DueService interface {
	RecordDue(storeID uint, amount decimal.Decimal, description string, actor models.Actor) (*models.Due, error)
	GetDuesByStore(storeID uint) ([]models.Due, error)
	GetAllDues() ([]models.Due, error)
}

type dueService struct {
	dueRepo   repository.DueRepository
	storeRepo repository.StoreRepository
	log       *logrus.Logger
}

func NewDueService(dueRepo repository.DueRepository, storeRepo repository.StoreRepository) DueService {
	return &dueService{dueRepo: dueRepo, storeRepo: storeRepo, log: logger.Get()}
}

// RecordDue appends a manual obligation for a store, separate from anything
// derived from orders.
func (s *dueService) RecordDue(storeID uint, amount decimal.Decimal, description string, actor models.Actor) (*models.Due, error) {
	if amount.IsNegative() {
		return nil, &apperrors.ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "store", ID: storeID}
		}
		return nil, err
	}

	due := &models.Due{
		StoreID:     storeID,
		Amount:      amount,
		Description: description,
		RecordedBy:  actor.ID,
		IncurredAt:  time.Now(),
	}
	if err := s.dueRepo.Create(due); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"store_id": storeID,
		"amount":   amount.String(),
	}).Info("manual due recorded")
	return due, nil
}

func (s *dueService) GetDuesByStore(storeID uint) ([]models.Due, error) {
	return s.dueRepo.GetByStoreIDs([]uint{storeID})
}

func (s *dueService) GetAllDues() ([]models.Due, error) {
	return s.dueRepo.GetAll()
}
