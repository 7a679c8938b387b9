package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"store_manager/internal/apperrors"
)

// respondError maps the service error taxonomy onto HTTP statuses. Errors are
// surfaced verbatim with their context; nothing is swallowed.
func respondError(c *gin.Context, err error) {
	var (
		validation   *apperrors.ValidationError
		notFound     *apperrors.NotFoundError
		unauthorized *apperrors.UnauthorizedError
		transition   *apperrors.InvalidTransitionError
		stock        *apperrors.InsufficientStockError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": unauthorized.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{
			"error": transition.Error(),
			"from":  transition.From,
			"to":    transition.To,
		})
	case errors.As(err, &stock):
		c.JSON(http.StatusConflict, gin.H{
			"error":      stock.Error(),
			"product_id": stock.ProductID,
			"available":  stock.Available,
			"needed":     stock.Needed,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
