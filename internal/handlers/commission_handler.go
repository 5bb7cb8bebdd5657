package handlers

import (
	"net/http"

	"github.com/HITECHSERVICE25/inventory-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CommissionHandler struct {
	commissionService services.CommissionService
}

func NewCommissionHandler(commissionService services.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

func (h *CommissionHandler) Create(c *gin.Context) {
	var input services.CommissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	agreement, err := h.commissionService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, agreement)
}

func (h *CommissionHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	agreement, err := h.commissionService.Update(id, input.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreement)
}

func (h *CommissionHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	var technicianID uint
	if c.Query("technician_id") != "" {
		id, ok := parseQueryID(c, "technician_id")
		if !ok {
			return
		}
		technicianID = id
	}

	agreements, total, err := h.commissionService.List(technicianID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, agreements, total)
}

func (h *CommissionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.commissionService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
