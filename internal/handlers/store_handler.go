package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_manager/internal/middleware"
	"store_manager/internal/models"
	"store_manager/internal/services"
)

type StoreHandler struct {
	storeService services.StoreService
}

func NewStoreHandler(storeService services.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

func (h *StoreHandler) CreateStore(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if !actor.Is(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	var store models.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if err := h.storeService.CreateStore(&store); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, store)
}

func (h *StoreHandler) GetStore(c *gin.Context) {
	storeID, ok := idParam(c)
	if !ok {
		return
	}

	store, err := h.storeService.GetStoreByID(storeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) ListStores(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	// Officers see their own stores; admins and stock managers see all.
	if actor.Is(models.RoleOfficer) {
		stores, err := h.storeService.GetStoresByOfficer(actor.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stores)
		return
	}

	stores, err := h.storeService.GetAllStores()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (h *StoreHandler) UpdateStore(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if !actor.Is(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	storeID, ok := idParam(c)
	if !ok {
		return
	}

	store, err := h.storeService.GetStoreByID(storeID)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Name      string `json:"name"`
		Area      string `json:"area"`
		Phone     string `json:"phone"`
		OfficerID uint   `json:"officer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if req.Name != "" {
		store.Name = req.Name
	}
	if req.Area != "" {
		store.Area = req.Area
	}
	if req.Phone != "" {
		store.Phone = req.Phone
	}
	if req.OfficerID != 0 {
		store.OfficerID = req.OfficerID
	}

	if err := h.storeService.UpdateStore(store); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) DeleteStore(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if !actor.Is(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	storeID, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.storeService.DeleteStore(storeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
