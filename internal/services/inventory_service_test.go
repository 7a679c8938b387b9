package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store_manager/internal/apperrors"
)

func TestAdjustStock_Increase(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db, nil)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)

	updated, err := svc.AdjustStock(product.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Stock)
}

func TestAdjustStock_Decrease(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db, nil)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)

	updated, err := svc.AdjustStock(product.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
}

func TestAdjustStock_RejectsNegativeResult(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db, nil)
	product := createTestProduct(t, db, "Cooking Oil", 120, 10)

	_, err := svc.AdjustStock(product.ID, -11)
	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 10, stockErr.Available)
	assert.Equal(t, 11, stockErr.Needed)

	assert.Equal(t, 10, productStock(t, db, product.ID))
}

func TestAdjustStock_ProductNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db, nil)

	_, err := svc.AdjustStock(9999, 5)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
