package services

import (
	"fmt"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/shopspring/decimal"
)

var (
	zero       = decimal.Zero
	oneHundred = decimal.NewFromInt(100)
)

// CatalogLookup supplies the calculator's read-only inputs. ProductPrice
// returns ErrNotFound for an unknown product; CommissionAmount returns zero
// (and no error) when the pair has no agreement.
type CatalogLookup interface {
	ProductPrice(productID uint) (decimal.Decimal, error)
	CommissionAmount(technicianID, productID uint) (decimal.Decimal, error)
}

// Breakdown is the monetary split of a single order between company and
// technician.
type Breakdown struct {
	ProductSubtotal         decimal.Decimal `json:"product_subtotal"`
	GrossSubtotal           decimal.Decimal `json:"gross_subtotal"`
	CommissionTotal         decimal.Decimal `json:"commission_total"`
	DiscountAmount          decimal.Decimal `json:"discount_amount"`
	NetAmount               decimal.Decimal `json:"net_amount"`
	TechnicianDiscountShare decimal.Decimal `json:"technician_discount_share"`
	TechnicianMiscEarning   decimal.Decimal `json:"technician_misc_earning"`
	TechnicianCut           decimal.Decimal `json:"technician_cut"`
	CompanyCut              decimal.Decimal `json:"company_cut"`
	OutstandingAmount       decimal.Decimal `json:"outstanding_amount"`
}

// CalculateFinancials computes the settlement breakdown for an order. It is
// side-effect free: identical inputs always produce identical output, which
// lets approval and rejection recompute deterministically. Missing product
// references abort with ErrNotFound rather than silently contributing zero.
func CalculateFinancials(order *models.Order, technician *models.Technician, catalog CatalogLookup) (*Breakdown, error) {
	if technician == nil {
		return nil, fmt.Errorf("technician for order %d: %w", order.ID, ErrNotFound)
	}

	productSubtotal := zero
	commissionTotal := zero

	for _, line := range order.Lines {
		catalogPrice, err := catalog.ProductPrice(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, err)
		}

		price := line.EffectivePrice()
		if !price.IsPositive() {
			price = catalogPrice
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		productSubtotal = productSubtotal.Add(price.Mul(qty))

		commission, err := catalog.CommissionAmount(order.TechnicianID, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("commission for technician %d product %d: %w", order.TechnicianID, line.ProductID, err)
		}
		commissionTotal = commissionTotal.Add(commission.Mul(qty))
	}

	grossSubtotal := productSubtotal.
		Add(order.InstallationCharge).
		Add(order.FittingCost).
		Add(order.MiscellaneousCost).
		Add(technician.ServiceRate)

	discountAmount := discountOf(order.Discount, grossSubtotal)
	netAmount := grossSubtotal.Sub(discountAmount)

	techPct := decimal.NewFromFloat(order.DiscountSplit.TechnicianPercentage)
	techDiscountShare := discountAmount.Mul(techPct).Div(oneHundred)

	miscShare := decimal.NewFromFloat(technician.MiscShare)
	techMiscEarning := order.MiscellaneousCost.Mul(miscShare).Div(oneHundred)

	technicianCut := technician.ServiceRate.
		Add(commissionTotal).
		Add(order.FittingCost).
		Add(techMiscEarning).
		Sub(techDiscountShare)
	if technicianCut.IsNegative() {
		technicianCut = zero
	}

	companyCut := netAmount.Sub(technicianCut)
	if companyCut.IsNegative() {
		companyCut = zero
	}

	return &Breakdown{
		ProductSubtotal:         productSubtotal,
		GrossSubtotal:           grossSubtotal,
		CommissionTotal:         commissionTotal,
		DiscountAmount:          discountAmount,
		NetAmount:               netAmount,
		TechnicianDiscountShare: techDiscountShare,
		TechnicianMiscEarning:   techMiscEarning,
		TechnicianCut:           technicianCut,
		CompanyCut:              companyCut,
		OutstandingAmount:       companyCut,
	}, nil
}

// discountOf caps the discount at the gross subtotal and never lets it go
// negative. Percentage values are clamped to [0, 100].
func discountOf(d models.Discount, gross decimal.Decimal) decimal.Decimal {
	switch d.Kind {
	case models.DiscountFixed:
		amount := d.Value
		if amount.IsNegative() {
			return zero
		}
		if amount.GreaterThan(gross) {
			return gross
		}
		return amount
	default: // percentage
		pct := d.Value
		if pct.IsNegative() {
			pct = zero
		}
		if pct.GreaterThan(oneHundred) {
			pct = oneHundred
		}
		return gross.Mul(pct).Div(oneHundred)
	}
}

// applyBreakdown copies calculator output onto the order's derived fields.
func applyBreakdown(order *models.Order, b *Breakdown) {
	order.Subtotal = b.ProductSubtotal
	order.TotalAmount = b.GrossSubtotal
	order.DiscountAmount = b.DiscountAmount
	order.NetAmount = b.NetAmount
	order.TechnicianCut = b.TechnicianCut
	order.CompanyCut = b.CompanyCut
	order.OutstandingAmount = b.OutstandingAmount
}

// validateSplit enforces that a discount split apportions exactly 100%.
func validateSplit(split models.DiscountSplit) error {
	if split.OwnerPercentage < 0 || split.TechnicianPercentage < 0 {
		return invalidField("discount_split", "percentages cannot be negative")
	}
	if split.OwnerPercentage+split.TechnicianPercentage != 100 {
		return invalidField("discount_split", "owner and technician percentages must total 100")
	}
	return nil
}
