package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"store_manager/internal/apperrors"
	"store_manager/internal/models"
	"store_manager/internal/repository"
)

func newOrderService(db *gorm.DB) OrderService {
	return NewOrderService(db, repository.NewOrderRepository(db))
}

func TestCreateDraftOrder_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 50)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	first, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{
		ProductID: product.ID, Quantity: 5,
	})
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, models.OrderDraft, first.Status)

	second, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{
		ProductID: product.ID, Quantity: 8, BonusQuantity: 1,
	})
	require.NoError(t, err)

	// Same draft, same line, updated quantities.
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Items, 1)
	assert.Equal(t, 8, second.Items[0].Quantity)
	assert.Equal(t, 1, second.Items[0].BonusQuantity)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateDraftOrder_SecondProductAddsLine(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	oil := createTestProduct(t, db, "Cooking Oil", 120, 50)
	rice := createTestProduct(t, db, "Rice", 450, 30)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	_, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: oil.ID, Quantity: 5})
	require.NoError(t, err)
	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: rice.ID, Quantity: 3})
	require.NoError(t, err)

	assert.Len(t, draft.Items, 2)
}

func TestCreateDraftOrder_ChecksStockWithoutReserving(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	_, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{
		ProductID: product.ID, Quantity: 10, BonusQuantity: 1,
	})
	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 10, stockErr.Available)
	assert.Equal(t, 11, stockErr.Needed)

	// A successful draft leaves stock untouched.
	_, err = svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{
		ProductID: product.ID, Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, productStock(t, db, product.ID))
}

func TestCreateDraftOrder_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	var validationErr *apperrors.ValidationError

	_, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 0})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 1, DiscountPercentage: 101})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 1, BonusQuantity: -1})
	assert.ErrorAs(t, err, &validationErr)
}

func TestSubmitOrder_ReservesStock(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{
		ProductID: product.ID, Quantity: 4, BonusQuantity: 1,
	})
	require.NoError(t, err)

	submitted, err := svc.SubmitOrder(draft.ID, officerActor)
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)
	assert.Equal(t, 5, productStock(t, db, product.ID))

	// The history log records the transition.
	last := submitted.StatusHistory[len(submitted.StatusHistory)-1]
	assert.Equal(t, models.OrderPending, last.Status)
	assert.Equal(t, officerActor.ID, last.ActorID)
}

func TestSubmitOrder_AllOrNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	oil := createTestProduct(t, db, "Cooking Oil", 120, 100)
	rice := createTestProduct(t, db, "Rice", 450, 2)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: oil.ID, Quantity: 10})
	require.NoError(t, err)
	_, err = svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: rice.ID, Quantity: 2})
	require.NoError(t, err)

	// Rice stock drops between drafting and submission.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", rice.ID).
		UpdateColumn("stock", 1).Error)

	_, err = svc.SubmitOrder(draft.ID, officerActor)
	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, rice.ID, stockErr.ProductID)

	// Neither line's stock moved and the order is still a draft.
	assert.Equal(t, 100, productStock(t, db, oil.ID))
	assert.Equal(t, 1, productStock(t, db, rice.ID))

	order, err := svc.GetOrderByID(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDraft, order.Status)
}

func TestSubmitOrder_OnlyCreator(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	other := models.Actor{ID: 99, Role: models.RoleOfficer}
	_, err = svc.SubmitOrder(draft.ID, other)

	var unauthorized *apperrors.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, 10, productStock(t, db, product.ID))
}

func TestRejectOrder_RestoresStock(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{
		ProductID: product.ID, Quantity: 4, BonusQuantity: 1,
	})
	require.NoError(t, err)
	_, err = svc.SubmitOrder(draft.ID, officerActor)
	require.NoError(t, err)
	require.Equal(t, 5, productStock(t, db, product.ID))

	rejected, err := svc.RejectOrder(draft.ID, adminActor, "out of route")
	require.NoError(t, err)

	assert.Equal(t, models.OrderRejected, rejected.Status)
	assert.Equal(t, 10, productStock(t, db, product.ID))
}

func TestRejectOrder_FromApproved(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 5})
	require.NoError(t, err)
	_, err = svc.SubmitOrder(draft.ID, officerActor)
	require.NoError(t, err)
	_, err = svc.ApproveOrder(draft.ID, adminActor, "")
	require.NoError(t, err)

	rejected, err := svc.RejectOrder(draft.ID, stockManagerActor, "damaged batch")
	require.NoError(t, err)
	assert.Equal(t, models.OrderRejected, rejected.Status)
	assert.Equal(t, 10, productStock(t, db, product.ID))
}

func TestRejectOrder_RequiresRole(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.SubmitOrder(draft.ID, officerActor)
	require.NoError(t, err)

	_, err = svc.RejectOrder(draft.ID, officerActor, "nope")
	var unauthorized *apperrors.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestApproveOrder_InvalidTransition(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 5})
	require.NoError(t, err)
	_, err = svc.SubmitOrder(draft.ID, officerActor)
	require.NoError(t, err)
	_, err = svc.ApproveOrder(draft.ID, adminActor, "")
	require.NoError(t, err)

	_, err = svc.ApproveOrder(draft.ID, adminActor, "")
	var transition *apperrors.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, string(models.OrderApproved), transition.From)
	assert.Equal(t, string(models.OrderApproved), transition.To)

	// Status and stock untouched by the failed call.
	order, err := svc.GetOrderByID(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderApproved, order.Status)
	assert.Equal(t, 5, productStock(t, db, product.ID))
}

func TestFulfillOrder_Flow(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 5})
	require.NoError(t, err)
	_, err = svc.SubmitOrder(draft.ID, officerActor)
	require.NoError(t, err)
	_, err = svc.ApproveOrder(draft.ID, adminActor, "")
	require.NoError(t, err)

	// Only stock managers fulfill.
	_, err = svc.FulfillOrder(draft.ID, adminActor, "")
	var unauthorized *apperrors.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)

	fulfilled, err := svc.FulfillOrder(draft.ID, stockManagerActor, "delivered")
	require.NoError(t, err)
	assert.Equal(t, models.OrderFulfilled, fulfilled.Status)
	assert.NotNil(t, fulfilled.FulfilledAt)
	// Fulfillment keeps the reservation; nothing comes back.
	assert.Equal(t, 5, productStock(t, db, product.ID))
}

func TestDeleteOrder_DraftHasNoStockEffect(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 5})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(draft.ID, officerActor))
	assert.Equal(t, 10, productStock(t, db, product.ID))

	_, err = svc.GetOrderByID(draft.ID)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteOrder_PendingRevertsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 4, BonusQuantity: 1})
	require.NoError(t, err)
	_, err = svc.SubmitOrder(draft.ID, officerActor)
	require.NoError(t, err)
	require.Equal(t, 5, productStock(t, db, product.ID))

	// Deleting a submitted order requires admin.
	err = svc.DeleteOrder(draft.ID, officerActor)
	var unauthorized *apperrors.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)

	require.NoError(t, svc.DeleteOrder(draft.ID, adminActor))
	assert.Equal(t, 10, productStock(t, db, product.ID))
}

func TestDeleteOrder_RejectedDoesNotRevertTwice(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 5})
	require.NoError(t, err)
	_, err = svc.SubmitOrder(draft.ID, officerActor)
	require.NoError(t, err)
	_, err = svc.RejectOrder(draft.ID, adminActor, "")
	require.NoError(t, err)
	require.Equal(t, 10, productStock(t, db, product.ID))

	require.NoError(t, svc.DeleteOrder(draft.ID, adminActor))
	assert.Equal(t, 10, productStock(t, db, product.ID))
}

func TestSubmitOrder_ConcurrentReservation(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 6)

	officerA := models.Actor{ID: 11, Role: models.RoleOfficer}
	officerB := models.Actor{ID: 12, Role: models.RoleOfficer}
	storeA := createTestStore(t, db, "Central Mart", officerA.ID)
	storeB := createTestStore(t, db, "Lakeside Grocery", officerB.ID)

	draftA, err := svc.CreateDraftOrder(storeA.ID, officerA, OrderLineInput{ProductID: product.ID, Quantity: 5})
	require.NoError(t, err)
	draftB, err := svc.CreateDraftOrder(storeB.ID, officerB, OrderLineInput{ProductID: product.ID, Quantity: 5})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.SubmitOrder(draftA.ID, officerA)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.SubmitOrder(draftB.ID, officerB)
	}()
	wg.Wait()

	// Combined demand exceeds stock: exactly one submission wins.
	var stockErrCount, okCount int
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		var stockErr *apperrors.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		stockErrCount++
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, stockErrCount)
	assert.Equal(t, 1, productStock(t, db, product.ID))
}

func TestSubmitOrder_TwiceIsGuarded(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)
	store := createTestStore(t, db, "Central Mart", officerActor.ID)

	draft, err := svc.CreateDraftOrder(store.ID, officerActor, OrderLineInput{ProductID: product.ID, Quantity: 4})
	require.NoError(t, err)
	_, err = svc.SubmitOrder(draft.ID, officerActor)
	require.NoError(t, err)

	// A second submission must not reserve again.
	_, err = svc.SubmitOrder(draft.ID, officerActor)
	var transition *apperrors.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, 6, productStock(t, db, product.ID))
}
