package handlers

import (
	"net/http"
	"time"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
	"github.com/HITECHSERVICE25/inventory-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	filter := repository.PaymentFilter{
		Method: models.PaymentMethod(c.Query("method")),
	}
	if c.Query("technician_id") != "" {
		id, ok := parseQueryID(c, "technician_id")
		if !ok {
			return
		}
		filter.TechnicianID = id
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
			return
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
			return
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	payments, total, err := h.paymentService.List(filter, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, payments, total)
}

func (h *PaymentHandler) ListByTechnician(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	offset, limit := pagination(c)
	payments, total, err := h.paymentService.ListByTechnician(id, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, payments, total)
}

// Balances lists technicians that still owe money.
func (h *PaymentHandler) Balances(c *gin.Context) {
	offset, limit := pagination(c)
	technicians, total, err := h.paymentService.TechniciansWithBalances(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, technicians, total)
}
