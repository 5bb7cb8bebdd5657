package services

import (
	"errors"
	"testing"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/shopspring/decimal"
)

func TestEnsureDiscountPending(t *testing.T) {
	tests := []struct {
		name    string
		order   models.Order
		wantErr bool
	}{
		{
			name:    "pending order with pending discount",
			order:   models.Order{Status: models.OrderPendingApproval, DiscountApproved: models.DiscountPending},
			wantErr: false,
		},
		{
			name:    "draft order",
			order:   models.Order{Status: models.OrderDraft, DiscountApproved: models.DiscountPending},
			wantErr: true,
		},
		{
			name:    "already approved",
			order:   models.Order{Status: models.OrderPendingApproval, DiscountApproved: models.DiscountApproved},
			wantErr: true,
		},
		{
			name:    "already rejected",
			order:   models.Order{Status: models.OrderPendingApproval, DiscountApproved: models.DiscountRejected},
			wantErr: true,
		},
		{
			name:    "completed order",
			order:   models.Order{Status: models.OrderCompleted, DiscountApproved: models.DiscountApproved},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ensureDiscountPending(&tt.order)
			if tt.wantErr && !errors.Is(err, ErrWorkflowConflict) {
				t.Errorf("err = %v, want ErrWorkflowConflict", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// Input validation runs before any transaction is opened, so bad input can
// never leave partial writes behind.
func TestCompleteOrderInputValidation(t *testing.T) {
	svc := NewSettlementService(nil, nil, nil)

	tests := []struct {
		name  string
		input CompletionInput
	}{
		{"no lines", CompletionInput{}},
		{"zero quantity", CompletionInput{Lines: []OrderLineInput{{ProductID: 1, Quantity: 0}}}},
		{"negative sale price", CompletionInput{Lines: []OrderLineInput{{ProductID: 1, Quantity: 1, SalePrice: dec("-5")}}}},
		{
			"negative discount",
			CompletionInput{
				Lines:    []OrderLineInput{{ProductID: 1, Quantity: 1}},
				Discount: models.Discount{Kind: models.DiscountFixed, Value: dec("-10")},
			},
		},
		{
			"negative fitting cost",
			CompletionInput{
				Lines:       []OrderLineInput{{ProductID: 1, Quantity: 1}},
				FittingCost: dec("-1"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompleteOrder(1, tt.input)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestApproveDiscountInvalidSplit(t *testing.T) {
	svc := NewSettlementService(nil, nil, nil)

	_, err := svc.ApproveDiscount(1, 1, models.DiscountSplit{OwnerPercentage: 60, TechnicianPercentage: 60})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestAllocateProductInvalidQuantity(t *testing.T) {
	svc := NewSettlementService(nil, nil, nil)

	_, err := svc.AllocateProduct(AllocationInput{ProductID: 1, TechnicianID: 1, Quantity: 0})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateInstallationChargeNegativeAmount(t *testing.T) {
	svc := NewSettlementService(nil, nil, nil)

	_, err := svc.UpdateInstallationCharge(dec("-100"), 1)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestRecordPaymentInvalidInput(t *testing.T) {
	svc := NewSettlementService(nil, nil, nil)

	_, err := svc.RecordPayment(1, 1, PaymentInput{Amount: decimal.Zero, Method: models.PaymentCash})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestAvailableCountGuard(t *testing.T) {
	product := models.Product{TotalCount: 10, AllocatedCount: 7}
	if product.AvailableCount() != 3 {
		t.Errorf("available = %d, want 3", product.AvailableCount())
	}
}

func TestEnsureStockAvailable(t *testing.T) {
	product := models.Product{TotalCount: 10, AllocatedCount: 7}

	if err := ensureStockAvailable(&product, 3); err != nil {
		t.Errorf("allocation up to available stock: %v", err)
	}
	if err := ensureStockAvailable(&product, 4); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("err = %v, want ErrInsufficientStock", err)
	}
	if product.TotalCount != 10 || product.AllocatedCount != 7 {
		t.Errorf("guard mutated counts: total %d allocated %d", product.TotalCount, product.AllocatedCount)
	}
}

func TestEnsurePaymentWithinBalance(t *testing.T) {
	balance := dec("500")

	if err := ensurePaymentWithinBalance(dec("500"), balance); err != nil {
		t.Errorf("payment equal to balance: %v", err)
	}
	if err := ensurePaymentWithinBalance(dec("500.01"), balance); !errors.Is(err, ErrOverpaymentRejected) {
		t.Errorf("err = %v, want ErrOverpaymentRejected", err)
	}
}

func TestApplyRejectionRecomputesWithoutDiscount(t *testing.T) {
	order := models.Order{
		ID:           1,
		TechnicianID: 1,
		Lines: []models.OrderLine{
			{ProductID: 1, Quantity: 2, BasePrice: dec("200")},
		},
		InstallationCharge: dec("500"),
		FittingCost:        dec("50"),
		MiscellaneousCost:  dec("40"),
		Discount:           models.Discount{Kind: models.DiscountPercentage, Value: dec("10")},
		DiscountSplit:      models.DiscountSplit{OwnerPercentage: 70, TechnicianPercentage: 30},
	}
	technician := models.Technician{ID: 1, ServiceRate: dec("100"), MiscShare: 10}
	catalog := &fakeCatalog{
		prices:      map[uint]decimal.Decimal{1: dec("200")},
		commissions: map[uint]decimal.Decimal{1: dec("30")},
	}

	if err := applyRejection(&order, &technician, catalog); err != nil {
		t.Fatalf("applyRejection: %v", err)
	}

	if order.DiscountApproved != models.DiscountRejected {
		t.Errorf("discount state = %s, want rejected", order.DiscountApproved)
	}
	// The requested discount stays on record even though it no longer
	// affects the financials.
	if !order.Discount.Value.Equal(dec("10")) || order.Discount.Kind != models.DiscountPercentage {
		t.Errorf("discount descriptor = %+v, want original 10%%", order.Discount)
	}
	if !order.DiscountAmount.IsZero() {
		t.Errorf("discount amount = %s, want 0", order.DiscountAmount)
	}
	if !order.NetAmount.Equal(dec("1090")) {
		t.Errorf("net = %s, want gross 1090", order.NetAmount)
	}
	if order.DiscountSplit.OwnerPercentage != 100 || order.DiscountSplit.TechnicianPercentage != 0 {
		t.Errorf("split = %+v, want 100/0", order.DiscountSplit)
	}
	if !order.OutstandingAmount.Equal(dec("876")) {
		t.Errorf("outstanding = %s, want 876", order.OutstandingAmount)
	}
}

func TestEnsureChargeHead(t *testing.T) {
	locked := models.InstallationCharge{ID: 7}

	if err := ensureChargeHead(&locked, &models.InstallationCharge{ID: 7}); err != nil {
		t.Errorf("unchanged head: %v", err)
	}
	if err := ensureChargeHead(&locked, &models.InstallationCharge{ID: 9}); !errors.Is(err, ErrWorkflowConflict) {
		t.Errorf("err = %v, want ErrWorkflowConflict", err)
	}
}

func TestCutSumIdentity(t *testing.T) {
	// When neither cut is floored, technician + company cuts equal net.
	order := &models.Order{
		TechnicianID: 1,
		Lines: []models.OrderLine{
			{ProductID: 1, Quantity: 2, BasePrice: dec("150")},
		},
		InstallationCharge: dec("200"),
		FittingCost:        dec("30"),
		MiscellaneousCost:  dec("20"),
		Discount:           models.Discount{Kind: models.DiscountPercentage, Value: dec("5")},
		DiscountSplit:      models.DiscountSplit{OwnerPercentage: 80, TechnicianPercentage: 20},
	}
	technician := &models.Technician{ID: 1, ServiceRate: dec("80"), MiscShare: 50}
	catalog := &fakeCatalog{
		prices:      map[uint]decimal.Decimal{1: dec("150")},
		commissions: map[uint]decimal.Decimal{1: dec("10")},
	}

	b, err := CalculateFinancials(order, technician, catalog)
	if err != nil {
		t.Fatalf("CalculateFinancials: %v", err)
	}
	sum := b.TechnicianCut.Add(b.CompanyCut)
	if !sum.Equal(b.NetAmount) {
		t.Errorf("technician + company = %s, want net %s", sum, b.NetAmount)
	}
}
