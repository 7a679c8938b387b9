package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"store_manager/internal/apperrors"
	"store_manager/internal/models"
	"store_manager/internal/repository"
)

func newBalanceService(db *gorm.DB) BalanceService {
	return NewBalanceService(
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewDueRepository(db),
		repository.NewStoreRepository(db),
	)
}

func TestComputeBalance(t *testing.T) {
	fulfilledAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	orders := []models.Order{{
		OrderNumber: "ord-1",
		Status:      models.OrderFulfilled,
		FulfilledAt: &fulfilledAt,
		Items: []models.OrderItem{{
			UnitPrice:          decimal.NewFromInt(100),
			Quantity:           10,
			BonusQuantity:      2,
			DiscountPercentage: decimal.NewFromInt(10),
		}},
	}}
	dues := []models.Due{{
		Amount:      decimal.NewFromInt(200),
		Description: "damaged crate",
		IncurredAt:  time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
	}}
	payments := []models.Payment{{
		Amount: decimal.NewFromInt(500),
		PaidAt: time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
	}}

	balance := ComputeBalance(orders, dues, payments)

	// Order contributes 100 * 10 * 0.9 = 900 (bonus units free), plus the
	// manual due of 200.
	assert.True(t, balance.Owed.Equal(decimal.NewFromInt(1100)), "owed %s", balance.Owed)
	assert.True(t, balance.Paid.Equal(decimal.NewFromInt(500)), "paid %s", balance.Paid)
	assert.True(t, balance.Net.Equal(decimal.NewFromInt(600)), "net %s", balance.Net)

	require.Len(t, balance.DueHistory, 2)
	assert.Equal(t, models.DueByOrder, balance.DueHistory[0].Type)
	assert.Equal(t, "ord-1", balance.DueHistory[0].OrderNumber)
	assert.True(t, balance.DueHistory[0].Amount.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, models.DueManual, balance.DueHistory[1].Type)
	assert.Equal(t, "damaged crate", balance.DueHistory[1].Description)
}

func TestComputeBalance_HistoryOrderedByTime(t *testing.T) {
	early := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{{
		OrderNumber: "ord-late",
		FulfilledAt: &late,
		Items:       []models.OrderItem{{UnitPrice: decimal.NewFromInt(10), Quantity: 1}},
	}}
	dues := []models.Due{{Amount: decimal.NewFromInt(50), IncurredAt: early}}

	balance := ComputeBalance(orders, dues, nil)

	require.Len(t, balance.DueHistory, 2)
	assert.Equal(t, models.DueManual, balance.DueHistory[0].Type)
	assert.Equal(t, models.DueByOrder, balance.DueHistory[1].Type)
}

func TestComputeBalance_Deterministic(t *testing.T) {
	at := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	orders := []models.Order{{
		OrderNumber: "ord-1",
		FulfilledAt: &at,
		Items:       []models.OrderItem{{UnitPrice: decimal.NewFromInt(75), Quantity: 3}},
	}}
	payments := []models.Payment{{Amount: decimal.NewFromInt(100), PaidAt: at}}

	first := ComputeBalance(orders, nil, payments)
	second := ComputeBalance(orders, nil, payments)

	assert.True(t, first.Owed.Equal(second.Owed))
	assert.True(t, first.Net.Equal(second.Net))
	assert.Equal(t, len(first.DueHistory), len(second.DueHistory))
}

func TestGetStoreBalance_OnlyFulfilledOrdersCount(t *testing.T) {
	db := newTestDB(t)
	svc := newBalanceService(db)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	now := time.Now()
	statuses := []models.OrderStatus{
		models.OrderDraft, models.OrderPending, models.OrderApproved,
		models.OrderFulfilled, models.OrderRejected,
	}
	for i, status := range statuses {
		order := models.Order{
			OrderNumber: "ord-" + string(status),
			StoreID:     store.ID,
			CreatedBy:   officerActor.ID,
			Status:      status,
			Items: []models.OrderItem{{
				ProductID: uint(i + 1),
				UnitPrice: decimal.NewFromInt(100),
				Quantity:  1,
			}},
		}
		if status == models.OrderFulfilled {
			order.FulfilledAt = &now
		}
		require.NoError(t, db.Create(&order).Error)
	}

	balance, err := svc.GetStoreBalance(store.ID)
	require.NoError(t, err)

	// Only the fulfilled order contributes to owed.
	assert.True(t, balance.Owed.Equal(decimal.NewFromInt(100)), "owed %s", balance.Owed)
	require.Len(t, balance.DueHistory, 1)
	assert.Equal(t, "ord-fulfilled", balance.DueHistory[0].OrderNumber)
}

func TestGetStoreBalance_StoreNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newBalanceService(db)

	_, err := svc.GetStoreBalance(9999)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGetStoreBalance_EmptyStore(t *testing.T) {
	db := newTestDB(t)
	svc := newBalanceService(db)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	balance, err := svc.GetStoreBalance(store.ID)
	require.NoError(t, err)
	assert.True(t, balance.Owed.IsZero())
	assert.True(t, balance.Paid.IsZero())
	assert.True(t, balance.Net.IsZero())
	assert.Empty(t, balance.DueHistory)
}

func TestGetOfficerBalance_RollsUpStores(t *testing.T) {
	db := newTestDB(t)
	svc := newBalanceService(db)
	storeA := createTestStore(t, db, "Central Mart", officerActor.ID)
	storeB := createTestStore(t, db, "Lakeside Grocery", officerActor.ID)
	other := createTestStore(t, db, "Elsewhere", 42)

	now := time.Now()
	for _, sid := range []uint{storeA.ID, storeB.ID, other.ID} {
		order := models.Order{
			OrderNumber: "ord-" + string(rune('a'+sid)),
			StoreID:     sid,
			CreatedBy:   officerActor.ID,
			Status:      models.OrderFulfilled,
			FulfilledAt: &now,
			Items:       []models.OrderItem{{ProductID: sid, UnitPrice: decimal.NewFromInt(100), Quantity: 1}},
		}
		require.NoError(t, db.Create(&order).Error)
	}
	payment := models.Payment{
		Reference:  "pay-1",
		StoreID:    storeB.ID,
		Amount:     decimal.NewFromInt(50),
		Method:     "cash",
		RecordedBy: adminActor.ID,
		PaidAt:     now,
	}
	require.NoError(t, db.Create(&payment).Error)

	balance, err := svc.GetOfficerBalance(officerActor.ID)
	require.NoError(t, err)

	// Two stores belong to the officer; the third store's order is excluded.
	assert.True(t, balance.Owed.Equal(decimal.NewFromInt(200)), "owed %s", balance.Owed)
	assert.True(t, balance.Paid.Equal(decimal.NewFromInt(50)), "paid %s", balance.Paid)
	assert.True(t, balance.Net.Equal(decimal.NewFromInt(150)), "net %s", balance.Net)
}

func TestGetOfficerBalance_NoStores(t *testing.T) {
	db := newTestDB(t)
	svc := newBalanceService(db)

	balance, err := svc.GetOfficerBalance(777)
	require.NoError(t, err)
	assert.True(t, balance.Net.IsZero())
	assert.Empty(t, balance.DueHistory)
}
