package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"store_manager/internal/middleware"
	"store_manager/internal/models"
	"store_manager/internal/services"
)

type ProductHandler struct {
	productService   services.ProductService
	inventoryService services.InventoryService
}

func NewProductHandler(productService services.ProductService, inventoryService services.InventoryService) *ProductHandler {
	return &ProductHandler{productService: productService, inventoryService: inventoryService}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if !actor.Is(models.RoleAdmin, models.RoleStockManager) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	var req struct {
		Name      string  `json:"name" binding:"required"`
		UnitPrice float64 `json:"unit_price" binding:"required"`
		Stock     int     `json:"stock"`
		PackSize  int     `json:"pack_size"`
		UnitLabel string  `json:"unit_label"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	product := &models.Product{
		Name:      req.Name,
		UnitPrice: decimal.NewFromFloat(req.UnitPrice),
		Stock:     req.Stock,
		PackSize:  req.PackSize,
		UnitLabel: req.UnitLabel,
	}
	if err := h.productService.CreateProduct(product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProductByID(productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.GetAllProducts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if !actor.Is(models.RoleAdmin, models.RoleStockManager) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	productID, ok := idParam(c)
	if !ok {
		return
	}

	var req struct {
		Name      string  `json:"name"`
		UnitPrice float64 `json:"unit_price"`
		PackSize  int     `json:"pack_size"`
		UnitLabel string  `json:"unit_label"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	product, err := h.productService.GetProductByID(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.UnitPrice > 0 {
		product.UnitPrice = decimal.NewFromFloat(req.UnitPrice)
	}
	if req.PackSize > 0 {
		product.PackSize = req.PackSize
	}
	if req.UnitLabel != "" {
		product.UnitLabel = req.UnitLabel
	}

	if err := h.productService.UpdateProduct(product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if !actor.Is(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	productID, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AdjustStock is the administrative stock correction. It shares the
// non-negativity guard with order-driven adjustments.
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if !actor.Is(models.RoleAdmin, models.RoleStockManager) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	productID, ok := idParam(c)
	if !ok {
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	product, err := h.inventoryService.AdjustStock(productID, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
