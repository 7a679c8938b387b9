package services

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"store_manager/internal/apperrors"
	"store_manager/internal/models"
	"store_manager/internal/repository"
)

// BalanceService computes store and officer balances. It only reads the
// order, payment, and due collections; nothing here mutates or caches.
type BalanceService interface {
	GetStoreBalance(storeID uint) (*models.Balance, error)
	GetOfficerBalance(officerID uint) (*models.Balance, error)
}

type balanceService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	dueRepo     repository.DueRepository
	storeRepo   repository.StoreRepository
}

func NewBalanceService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	dueRepo repository.DueRepository,
	storeRepo repository.StoreRepository,
) BalanceService {
	return &balanceService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		dueRepo:     dueRepo,
		storeRepo:   storeRepo,
	}
}

func (s *balanceService) GetStoreBalance(storeID uint) (*models.Balance, error) {
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "store", ID: storeID}
		}
		return nil, err
	}
	return s.balanceFor([]uint{storeID})
}

// GetOfficerBalance rolls a balance up across every store assigned to the
// officer.
func (s *balanceService) GetOfficerBalance(officerID uint) (*models.Balance, error) {
	stores, err := s.storeRepo.GetByOfficerID(officerID)
	if err != nil {
		return nil, err
	}

	storeIDs := make([]uint, 0, len(stores))
	for _, store := range stores {
		storeIDs = append(storeIDs, store.ID)
	}
	return s.balanceFor(storeIDs)
}

func (s *balanceService) balanceFor(storeIDs []uint) (*models.Balance, error) {
	if len(storeIDs) == 0 {
		return &models.Balance{
			Owed:       decimal.Zero,
			Paid:       decimal.Zero,
			Net:        decimal.Zero,
			DueHistory: []models.DueEntry{},
		}, nil
	}

	orders, err := s.orderRepo.GetFulfilledByStoreIDs(storeIDs)
	if err != nil {
		return nil, err
	}
	dues, err := s.dueRepo.GetByStoreIDs(storeIDs)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.GetByStoreIDs(storeIDs)
	if err != nil {
		return nil, err
	}

	balance := ComputeBalance(orders, dues, payments)
	return &balance, nil
}

// ComputeBalance derives a balance from the three event collections. Only
// fulfilled orders must be passed in. The function is pure: the same inputs
// always yield the same balance, and there is no cached counter to drift.
func ComputeBalance(orders []models.Order, dues []models.Due, payments []models.Payment) models.Balance {
	owed := decimal.Zero
	history := make([]models.DueEntry, 0, len(orders)+len(dues))

	for i := range orders {
		total := orders[i].Total()
		owed = owed.Add(total)
		history = append(history, models.DueEntry{
			Type:        models.DueByOrder,
			Amount:      total,
			OrderNumber: orders[i].OrderNumber,
			RecordedAt:  orderDueTime(&orders[i]),
		})
	}

	for i := range dues {
		owed = owed.Add(dues[i].Amount)
		history = append(history, models.DueEntry{
			Type:        models.DueManual,
			Amount:      dues[i].Amount,
			Description: dues[i].Description,
			RecordedAt:  dues[i].IncurredAt,
		})
	}

	paid := decimal.Zero
	for i := range payments {
		paid = paid.Add(payments[i].Amount)
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].RecordedAt.Before(history[j].RecordedAt)
	})

	return models.Balance{
		Owed:       owed,
		Paid:       paid,
		Net:        owed.Sub(paid),
		DueHistory: history,
	}
}

func orderDueTime(order *models.Order) time.Time {
	if order.FulfilledAt != nil {
		return *order.FulfilledAt
	}
	return order.UpdatedAt
}
