package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_manager/internal/services"
)

type BalanceHandler struct {
	balanceService services.BalanceService
}

func NewBalanceHandler(balanceService services.BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// GetStoreBalance recomputes the store's position from the order, payment, and
// due collections on every call.
func (h *BalanceHandler) GetStoreBalance(c *gin.Context) {
	storeID, ok := idParam(c)
	if !ok {
		return
	}

	balance, err := h.balanceService.GetStoreBalance(storeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"store_id":    storeID,
		"owed":        balance.Owed,
		"paid":        balance.Paid,
		"net":         balance.Net,
		"due_history": balance.DueHistory,
	})
}

func (h *BalanceHandler) GetOfficerBalance(c *gin.Context) {
	officerID, ok := idParam(c)
	if !ok {
		return
	}

	balance, err := h.balanceService.GetOfficerBalance(officerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"officer_id":  officerID,
		"owed":        balance.Owed,
		"paid":        balance.Paid,
		"net":         balance.Net,
		"due_history": balance.DueHistory,
	})
}
