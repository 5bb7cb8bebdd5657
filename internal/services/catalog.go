package services

import (
	"fmt"

	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
	"github.com/shopspring/decimal"
)

// repoCatalog adapts the product and commission repositories to the
// calculator's CatalogLookup.
type repoCatalog struct {
	products    repository.ProductRepository
	commissions repository.CommissionRepository
}

func NewCatalog(products repository.ProductRepository, commissions repository.CommissionRepository) CatalogLookup {
	return &repoCatalog{products: products, commissions: commissions}
}

func (c *repoCatalog) ProductPrice(productID uint) (decimal.Decimal, error) {
	product, err := c.products.GetByID(productID)
	if err != nil {
		if repository.IsNotFound(err) {
			return decimal.Zero, ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to look up product %d: %w", productID, err)
	}
	return product.Price, nil
}

func (c *repoCatalog) CommissionAmount(technicianID, productID uint) (decimal.Decimal, error) {
	agreement, err := c.commissions.GetByPair(technicianID, productID)
	if err != nil {
		if repository.IsNotFound(err) {
			// No agreement means no commission, not an error.
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to look up commission agreement: %w", err)
	}
	return agreement.Amount, nil
}
