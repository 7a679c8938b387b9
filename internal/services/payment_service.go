package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"store_manager/internal/apperrors"
	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/repository"
)

type PaymentService interface {
	RecordPayment(storeID uint, amount decimal.Decimal, method string, actor models.Actor) (*models.Payment, error)
	GetPaymentsByStore(storeID uint) ([]models.Payment, error)
	GetAllPayments() ([]models.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	storeRepo   repository.StoreRepository
	log         *logrus.Logger
}

func NewPaymentService(paymentRepo repository.PaymentRepository, storeRepo repository.StoreRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, storeRepo: storeRepo, log: logger.Get()}
}

// RecordPayment appends a payment record. It never updates an order or a
// product; the balance aggregator picks it up on the next read.
func (s *paymentService) RecordPayment(storeID uint, amount decimal.Decimal, method string, actor models.Actor) (*models.Payment, error) {
	if amount.IsNegative() {
		return nil, &apperrors.ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if method == "" {
		return nil, &apperrors.ValidationError{Field: "method", Reason: "must not be empty"}
	}
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "store", ID: storeID}
		}
		return nil, err
	}

	payment := &models.Payment{
		Reference:  uuid.NewString(),
		StoreID:    storeID,
		Amount:     amount,
		Method:     method,
		RecordedBy: actor.ID,
		PaidAt:     time.Now(),
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"store_id": storeID,
		"amount":   amount.String(),
		"method":   method,
	}).Info("payment recorded")
	return payment, nil
}

func (s *paymentService) GetPaymentsByStore(storeID uint) ([]models.Payment, error) {
	return s.paymentRepo.GetByStoreIDs([]uint{storeID})
}

func (s *paymentService) GetAllPayments() ([]models.Payment, error) {
	return s.paymentRepo.GetAll()
}
