package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"store_manager/internal/middleware"
	"store_manager/internal/services"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req struct {
		StoreID uint    `json:"store_id" binding:"required"`
		Amount  float64 `json:"amount" binding:"required"`
		Method  string  `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	actor := middleware.ActorFromContext(c)
	payment, err := h.paymentService.RecordPayment(req.StoreID, decimal.NewFromFloat(req.Amount), req.Method, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	if storeParam := c.Query("store_id"); storeParam != "" {
		storeID, err := strconv.ParseUint(storeParam, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store_id"})
			return
		}
		payments, err := h.paymentService.GetPaymentsByStore(uint(storeID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, payments)
		return
	}

	payments, err := h.paymentService.GetAllPayments()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
