package services

import (
	"errors"
	"testing"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

type fakeLedgerRepo struct {
	entries map[uint][]models.LedgerEntry
}

func (f *fakeLedgerRepo) ListByTechnician(technicianID uint, offset, limit int) ([]models.LedgerEntry, int64, error) {
	entries := f.entries[technicianID]
	return entries, int64(len(entries)), nil
}

func (f *fakeLedgerRepo) SumByTechnician(technicianID uint) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, entry := range f.entries[technicianID] {
		sum = sum.Add(entry.Amount)
	}
	return sum, nil
}

func TestReconcileBalance(t *testing.T) {
	technicianRepo := &fakeTechnicianRepo{technicians: map[uint]*models.Technician{
		1: {ID: 1, Name: "Ravi", OutstandingBalance: dec("500")},
		2: {ID: 2, Name: "Drifted", OutstandingBalance: dec("600")},
	}}
	ledgerRepo := &fakeLedgerRepo{entries: map[uint][]models.LedgerEntry{
		1: {
			{TechnicianID: 1, Kind: models.LedgerOrderSettlement, Amount: dec("800")},
			{TechnicianID: 1, Kind: models.LedgerPayment, Amount: dec("-300")},
		},
		2: {
			{TechnicianID: 2, Kind: models.LedgerOrderSettlement, Amount: dec("550")},
		},
	}}
	svc := NewTechnicianService(technicianRepo, ledgerRepo)

	report, err := svc.ReconcileBalance(1)
	if err != nil {
		t.Fatalf("ReconcileBalance: %v", err)
	}
	if !report.Consistent {
		t.Errorf("expected consistent balance, drift = %s", report.Drift)
	}
	if !report.LedgerBalance.Equal(dec("500")) {
		t.Errorf("ledger balance = %s, want 500", report.LedgerBalance)
	}

	report, err = svc.ReconcileBalance(2)
	if err != nil {
		t.Fatalf("ReconcileBalance: %v", err)
	}
	if report.Consistent {
		t.Error("expected drift to be reported")
	}
	if !report.Drift.Equal(dec("50")) {
		t.Errorf("drift = %s, want 50", report.Drift)
	}
}

func TestReconcileBalanceUnknownTechnician(t *testing.T) {
	svc := NewTechnicianService(
		&fakeTechnicianRepo{technicians: map[uint]*models.Technician{}},
		&fakeLedgerRepo{entries: map[uint][]models.LedgerEntry{}},
	)

	_, err := svc.ReconcileBalance(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTechnicianWithBalanceRejected(t *testing.T) {
	technicianRepo := &fakeTechnicianRepo{technicians: map[uint]*models.Technician{
		1: {ID: 1, Name: "Ravi", OutstandingBalance: dec("120.50")},
	}}
	svc := NewTechnicianService(technicianRepo, &fakeLedgerRepo{entries: map[uint][]models.LedgerEntry{}})

	err := svc.Delete(1)
	if !errors.Is(err, ErrWorkflowConflict) {
		t.Errorf("err = %v, want ErrWorkflowConflict", err)
	}
}

func TestCreateTechnicianValidation(t *testing.T) {
	svc := NewTechnicianService(
		&fakeTechnicianRepo{technicians: map[uint]*models.Technician{}},
		&fakeLedgerRepo{entries: map[uint][]models.LedgerEntry{}},
	)

	tests := []struct {
		name  string
		input CreateTechnicianInput
	}{
		{"missing name", CreateTechnicianInput{Phone: "9000000001"}},
		{"missing phone", CreateTechnicianInput{Name: "Ravi"}},
		{"negative service rate", CreateTechnicianInput{Name: "Ravi", Phone: "9000000001", ServiceRate: dec("-1")}},
		{"misc share over 100", CreateTechnicianInput{Name: "Ravi", Phone: "9000000001", MiscShare: 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.input)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateTechnicianDuplicateIdentity(t *testing.T) {
	// Phone, email, aadhaar and PAN carry unique indexes; a violation
	// must surface as a duplicate, not an internal error.
	svc := NewTechnicianService(
		&fakeTechnicianRepo{technicians: map[uint]*models.Technician{}, createErr: gorm.ErrDuplicatedKey},
		&fakeLedgerRepo{entries: map[uint][]models.LedgerEntry{}},
	)

	_, err := svc.Create(CreateTechnicianInput{Name: "Ravi", Phone: "9000000001"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestUpdateTechnicianDuplicateIdentity(t *testing.T) {
	technicianRepo := &fakeTechnicianRepo{
		technicians: map[uint]*models.Technician{
			1: {ID: 1, Name: "Ravi", Phone: "9000000001"},
		},
		updateErr: gorm.ErrDuplicatedKey,
	}
	svc := NewTechnicianService(technicianRepo, &fakeLedgerRepo{entries: map[uint][]models.LedgerEntry{}})

	phone := "9000000002"
	_, err := svc.Update(1, UpdateTechnicianInput{Phone: &phone})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestCreateCompanyDuplicateName(t *testing.T) {
	svc := NewCompanyService(&fakeCompanyRepo{
		companies: map[uint]*models.Company{},
		createErr: gorm.ErrDuplicatedKey,
	})

	_, err := svc.Create(CompanyInput{Name: "Acme Water", InstallationCharge: dec("500")})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
}
