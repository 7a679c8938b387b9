package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"store_manager/internal/middleware"
	"store_manager/internal/services"
)

type DueHandler struct {
	dueService services.DueService
}

func NewDueHandler(dueService services.DueService) *DueHandler {
	return &DueHandler{dueService: dueService}
}

func (h *DueHandler) RecordDue(c *gin.Context) {
	var req struct {
		StoreID     uint    `json:"store_id" binding:"required"`
		Amount      float64 `json:"amount" binding:"required"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	actor := middleware.ActorFromContext(c)
	due, err := h.dueService.RecordDue(req.StoreID, decimal.NewFromFloat(req.Amount), req.Description, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, due)
}

func (h *DueHandler) ListDues(c *gin.Context) {
	if storeParam := c.Query("store_id"); storeParam != "" {
		storeID, err := strconv.ParseUint(storeParam, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store_id"})
			return
		}
		dues, err := h.dueService.GetDuesByStore(uint(storeID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dues)
		return
	}

	dues, err := h.dueService.GetAllDues()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dues)
}
