package handlers

import (
	"net/http"

	"github.com/HITECHSERVICE25/inventory-backend/internal/services"
	"github.com/shopspring/decimal"

	"github.com/gin-gonic/gin"
)

type InstallationHandler struct {
	installationService services.InstallationService
	settlementService   services.SettlementService
}

func NewInstallationHandler(installationService services.InstallationService, settlementService services.SettlementService) *InstallationHandler {
	return &InstallationHandler{installationService: installationService, settlementService: settlementService}
}

func (h *InstallationHandler) Current(c *gin.Context) {
	charge, err := h.installationService.Current()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, charge)
}

func (h *InstallationHandler) History(c *gin.Context) {
	charges, err := h.installationService.History()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": charges})
}

// Update creates a new charge version; existing orders keep their snapshot.
func (h *InstallationHandler) Update(c *gin.Context) {
	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	charge, err := h.settlementService.UpdateInstallationCharge(input.Amount, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, charge)
}
