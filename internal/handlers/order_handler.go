package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"store_manager/internal/middleware"
	"store_manager/internal/models"
	"store_manager/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) CreateDraftOrder(c *gin.Context) {
	var req struct {
		StoreID uint                    `json:"store_id" binding:"required"`
		Line    services.OrderLineInput `json:"line" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	actor := middleware.ActorFromContext(c)
	order, err := h.orderService.CreateDraftOrder(req.StoreID, actor, req.Line)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	orderID, ok := idParam(c)
	if !ok {
		return
	}

	actor := middleware.ActorFromContext(c)
	order, err := h.orderService.SubmitOrder(orderID, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ApproveOrder(c *gin.Context) {
	orderID, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Note string `json:"note"`
	}
	c.ShouldBindJSON(&req)

	actor := middleware.ActorFromContext(c)
	order, err := h.orderService.ApproveOrder(orderID, actor, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) RejectOrder(c *gin.Context) {
	orderID, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	c.ShouldBindJSON(&req)

	actor := middleware.ActorFromContext(c)
	order, err := h.orderService.RejectOrder(orderID, actor, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) FulfillOrder(c *gin.Context) {
	orderID, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Note string `json:"note"`
	}
	c.ShouldBindJSON(&req)

	actor := middleware.ActorFromContext(c)
	order, err := h.orderService.FulfillOrder(orderID, actor, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID, ok := idParam(c)
	if !ok {
		return
	}

	actor := middleware.ActorFromContext(c)
	if err := h.orderService.DeleteOrder(orderID, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := idParam(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	if storeParam := c.Query("store_id"); storeParam != "" {
		storeID, err := strconv.ParseUint(storeParam, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store_id"})
			return
		}
		orders, err := h.orderService.GetOrdersByStore(uint(storeID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	if statusParam := c.Query("status"); statusParam != "" {
		orders, err := h.orderService.GetOrdersByStatus(models.OrderStatus(statusParam))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
