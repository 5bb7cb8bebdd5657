package handlers

import (
	"net/http"

	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
	"github.com/HITECHSERVICE25/inventory-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService    services.ProductService
	settlementService services.SettlementService
	allocationRepo    repository.AllocationRepository
}

func NewProductHandler(
	productService services.ProductService,
	settlementService services.SettlementService,
	allocationRepo repository.AllocationRepository,
) *ProductHandler {
	return &ProductHandler{
		productService:    productService,
		settlementService: settlementService,
		allocationRepo:    allocationRepo,
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input services.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.productService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	products, total, err := h.productService.List(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, products, total)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input services.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.productService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Allocate hands stock to a technician.
func (h *ProductHandler) Allocate(c *gin.Context) {
	var input services.AllocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	allocation, err := h.settlementService.AllocateProduct(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, allocation)
}

func (h *ProductHandler) Allocations(c *gin.Context) {
	offset, limit := pagination(c)

	var productID, technicianID uint
	if v := c.Query("product_id"); v != "" {
		if id, ok := parseQueryID(c, "product_id"); ok {
			productID = id
		} else {
			return
		}
	}
	if v := c.Query("technician_id"); v != "" {
		if id, ok := parseQueryID(c, "technician_id"); ok {
			technicianID = id
		} else {
			return
		}
	}

	logs, total, err := h.allocationRepo.List(productID, technicianID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, logs, total)
}
