package services

import (
	"errors"
	"testing"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	prices      map[uint]decimal.Decimal
	commissions map[uint]decimal.Decimal // keyed by product id
}

func (f *fakeCatalog) ProductPrice(productID uint) (decimal.Decimal, error) {
	price, ok := f.prices[productID]
	if !ok {
		return decimal.Zero, ErrNotFound
	}
	return price, nil
}

func (f *fakeCatalog) CommissionAmount(technicianID, productID uint) (decimal.Decimal, error) {
	return f.commissions[productID], nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateFinancialsFullScenario(t *testing.T) {
	order := &models.Order{
		ID:           1,
		TechnicianID: 7,
		Lines: []models.OrderLine{
			{ProductID: 1, Quantity: 2, BasePrice: dec("200")},
		},
		InstallationCharge: dec("500"),
		FittingCost:        dec("50"),
		MiscellaneousCost:  dec("40"),
		Discount:           models.Discount{Kind: models.DiscountPercentage, Value: dec("10")},
		DiscountSplit:      models.DiscountSplit{OwnerPercentage: 70, TechnicianPercentage: 30},
	}
	technician := &models.Technician{
		ID:          7,
		ServiceRate: dec("100"),
		MiscShare:   10,
	}
	catalog := &fakeCatalog{
		prices:      map[uint]decimal.Decimal{1: dec("200")},
		commissions: map[uint]decimal.Decimal{1: dec("30")},
	}

	b, err := CalculateFinancials(order, technician, catalog)
	if err != nil {
		t.Fatalf("CalculateFinancials: %v", err)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"product subtotal", b.ProductSubtotal, "400"},
		{"gross subtotal", b.GrossSubtotal, "1090"},
		{"commission total", b.CommissionTotal, "60"},
		{"discount amount", b.DiscountAmount, "109"},
		{"net amount", b.NetAmount, "981"},
		{"technician discount share", b.TechnicianDiscountShare, "32.7"},
		{"technician misc earning", b.TechnicianMiscEarning, "4"},
		{"technician cut", b.TechnicianCut, "181.3"},
		{"company cut", b.CompanyCut, "799.7"},
		{"outstanding amount", b.OutstandingAmount, "799.7"},
	}
	for _, check := range checks {
		if !check.got.Equal(dec(check.want)) {
			t.Errorf("%s = %s, want %s", check.name, check.got, check.want)
		}
	}
}

func TestCalculateFinancialsIsDeterministic(t *testing.T) {
	order := &models.Order{
		TechnicianID:       3,
		Lines:              []models.OrderLine{{ProductID: 1, Quantity: 3, BasePrice: dec("99.99")}},
		InstallationCharge: dec("250"),
		Discount:           models.Discount{Kind: models.DiscountFixed, Value: dec("33.33")},
		DiscountSplit:      models.DiscountSplit{OwnerPercentage: 50, TechnicianPercentage: 50},
	}
	technician := &models.Technician{ID: 3, ServiceRate: dec("75"), MiscShare: 25}
	catalog := &fakeCatalog{prices: map[uint]decimal.Decimal{1: dec("99.99")}}

	first, err := CalculateFinancials(order, technician, catalog)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := CalculateFinancials(order, technician, catalog)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !first.CompanyCut.Equal(second.CompanyCut) || !first.TechnicianCut.Equal(second.TechnicianCut) {
		t.Errorf("repeated runs disagree: %+v vs %+v", first, second)
	}
}

func TestCalculateFinancialsFallsBackToCatalogPrice(t *testing.T) {
	// Neither sale price nor base price set; the catalog price applies.
	order := &models.Order{
		TechnicianID: 1,
		Lines:        []models.OrderLine{{ProductID: 5, Quantity: 2}},
	}
	technician := &models.Technician{ID: 1}
	catalog := &fakeCatalog{prices: map[uint]decimal.Decimal{5: dec("42")}}

	b, err := CalculateFinancials(order, technician, catalog)
	if err != nil {
		t.Fatalf("CalculateFinancials: %v", err)
	}
	if !b.ProductSubtotal.Equal(dec("84")) {
		t.Errorf("product subtotal = %s, want 84", b.ProductSubtotal)
	}
}

func TestCalculateFinancialsMissingProduct(t *testing.T) {
	order := &models.Order{
		TechnicianID: 1,
		Lines:        []models.OrderLine{{ProductID: 99, Quantity: 1}},
	}
	technician := &models.Technician{ID: 1}
	catalog := &fakeCatalog{prices: map[uint]decimal.Decimal{}}

	_, err := CalculateFinancials(order, technician, catalog)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDiscountClamping(t *testing.T) {
	technician := &models.Technician{ID: 1}
	catalog := &fakeCatalog{prices: map[uint]decimal.Decimal{1: dec("100")}}

	tests := []struct {
		name     string
		discount models.Discount
		wantDisc string
		wantNet  string
	}{
		{
			name:     "percentage above 100 clamps",
			discount: models.Discount{Kind: models.DiscountPercentage, Value: dec("150")},
			wantDisc: "100",
			wantNet:  "0",
		},
		{
			name:     "negative percentage clamps to zero",
			discount: models.Discount{Kind: models.DiscountPercentage, Value: dec("-5")},
			wantDisc: "0",
			wantNet:  "100",
		},
		{
			name:     "fixed discount capped at gross",
			discount: models.Discount{Kind: models.DiscountFixed, Value: dec("500")},
			wantDisc: "100",
			wantNet:  "0",
		},
		{
			name:     "negative fixed discount clamps to zero",
			discount: models.Discount{Kind: models.DiscountFixed, Value: dec("-20")},
			wantDisc: "0",
			wantNet:  "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &models.Order{
				TechnicianID: 1,
				Lines:        []models.OrderLine{{ProductID: 1, Quantity: 1, BasePrice: dec("100")}},
				Discount:     tt.discount,
			}
			b, err := CalculateFinancials(order, technician, catalog)
			if err != nil {
				t.Fatalf("CalculateFinancials: %v", err)
			}
			if !b.DiscountAmount.Equal(dec(tt.wantDisc)) {
				t.Errorf("discount = %s, want %s", b.DiscountAmount, tt.wantDisc)
			}
			if !b.NetAmount.Equal(dec(tt.wantNet)) {
				t.Errorf("net = %s, want %s", b.NetAmount, tt.wantNet)
			}
		})
	}
}

func TestTechnicianCutNeverNegative(t *testing.T) {
	// Technician's discount share exceeds everything they earn.
	order := &models.Order{
		TechnicianID:  1,
		Lines:         []models.OrderLine{{ProductID: 1, Quantity: 1, BasePrice: dec("1000")}},
		Discount:      models.Discount{Kind: models.DiscountFixed, Value: dec("900")},
		DiscountSplit: models.DiscountSplit{OwnerPercentage: 0, TechnicianPercentage: 100},
	}
	technician := &models.Technician{ID: 1, ServiceRate: dec("10")}
	catalog := &fakeCatalog{prices: map[uint]decimal.Decimal{1: dec("1000")}}

	b, err := CalculateFinancials(order, technician, catalog)
	if err != nil {
		t.Fatalf("CalculateFinancials: %v", err)
	}
	if b.TechnicianCut.IsNegative() {
		t.Errorf("technician cut went negative: %s", b.TechnicianCut)
	}
	if !b.TechnicianCut.Equal(decimal.Zero) {
		t.Errorf("technician cut = %s, want 0", b.TechnicianCut)
	}
}

func TestSalePriceOverridesBasePrice(t *testing.T) {
	order := &models.Order{
		TechnicianID: 1,
		Lines: []models.OrderLine{
			{ProductID: 1, Quantity: 1, BasePrice: dec("200"), SalePrice: dec("180")},
		},
	}
	technician := &models.Technician{ID: 1}
	catalog := &fakeCatalog{prices: map[uint]decimal.Decimal{1: dec("220")}}

	b, err := CalculateFinancials(order, technician, catalog)
	if err != nil {
		t.Fatalf("CalculateFinancials: %v", err)
	}
	if !b.ProductSubtotal.Equal(dec("180")) {
		t.Errorf("product subtotal = %s, want 180 (sale price)", b.ProductSubtotal)
	}
}

func TestValidateSplit(t *testing.T) {
	tests := []struct {
		name    string
		split   models.DiscountSplit
		wantErr bool
	}{
		{"all owner", models.DiscountSplit{OwnerPercentage: 100, TechnicianPercentage: 0}, false},
		{"even split", models.DiscountSplit{OwnerPercentage: 50, TechnicianPercentage: 50}, false},
		{"does not total 100", models.DiscountSplit{OwnerPercentage: 60, TechnicianPercentage: 30}, true},
		{"negative side", models.DiscountSplit{OwnerPercentage: 120, TechnicianPercentage: -20}, true},
		{"over 100 total", models.DiscountSplit{OwnerPercentage: 80, TechnicianPercentage: 40}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSplit(tt.split)
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePayment(t *testing.T) {
	tests := []struct {
		name    string
		input   PaymentInput
		wantErr bool
	}{
		{"cash without reference", PaymentInput{Amount: dec("100"), Method: models.PaymentCash}, false},
		{"check without reference", PaymentInput{Amount: dec("100"), Method: models.PaymentCheck}, true},
		{"check with reference", PaymentInput{Amount: dec("100"), Method: models.PaymentCheck, Reference: "CHK-1"}, false},
		{"online with reference", PaymentInput{Amount: dec("50"), Method: models.PaymentOnline, Reference: "TXN-9"}, false},
		{"zero amount", PaymentInput{Amount: decimal.Zero, Method: models.PaymentCash}, true},
		{"negative amount", PaymentInput{Amount: dec("-10"), Method: models.PaymentCash}, true},
		{"unknown method", PaymentInput{Amount: dec("10"), Method: "barter"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePayment(tt.input)
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
