package handlers

import (
	"net/http"

	"github.com/HITECHSERVICE25/inventory-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TechnicianHandler struct {
	technicianService services.TechnicianService
	settlementService services.SettlementService
}

func NewTechnicianHandler(technicianService services.TechnicianService, settlementService services.SettlementService) *TechnicianHandler {
	return &TechnicianHandler{technicianService: technicianService, settlementService: settlementService}
}

func (h *TechnicianHandler) Create(c *gin.Context) {
	var input services.CreateTechnicianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	technician, err := h.technicianService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, technician)
}

func (h *TechnicianHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	technician, err := h.technicianService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, technician)
}

func (h *TechnicianHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	technicians, total, err := h.technicianService.List(c.Query("search"), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, technicians, total)
}

func (h *TechnicianHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input services.UpdateTechnicianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	technician, err := h.technicianService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, technician)
}

func (h *TechnicianHandler) SetBlocked(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.technicianService.SetBlocked(id, input.Blocked); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": input.Blocked})
}

func (h *TechnicianHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.technicianService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *TechnicianHandler) Ledger(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	offset, limit := pagination(c)
	entries, total, err := h.technicianService.Ledger(id, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, entries, total)
}

// Balance reports the cached outstanding figures for one technician.
func (h *TechnicianHandler) Balance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	technician, err := h.technicianService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"technician_id":       technician.ID,
		"outstanding_balance": technician.OutstandingBalance,
		"due_from_discounts":  technician.DueFromDiscounts,
	})
}

func (h *TechnicianHandler) ReconcileBalance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	report, err := h.technicianService.ReconcileBalance(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// RecordPayment collects money from a technician against their balance.
func (h *TechnicianHandler) RecordPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input services.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	payment, err := h.settlementService.RecordPayment(id, currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}
