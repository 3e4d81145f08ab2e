package service

import (
	"context"
	"errors"
	"testing"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

func newDebtFixture() (DebtService, *fakeDebtRepo, *fakeInvoiceDocumentRepo) {
	debtRepo := &fakeDebtRepo{debts: map[string]*model.Debt{
		"debt-1": {
			ID:        "debt-1",
			StudentID: "student-1",
			BranchID:  "branch-1",
			Concept:   "报名费 2026",
			Amount:    600,
			Balance:   600,
			Gestion:   "2026",
		},
		"debt-settled": {
			ID:      "debt-settled",
			Amount:  100,
			Balance: 0,
			Settled: true,
		},
	}}
	docRepo := &fakeInvoiceDocumentRepo{docs: map[string]*model.InvoiceDocument{}}
	studentRepo := &fakeStudentRepo{students: map[string]*model.Student{
		"student-1": {ID: "student-1", BranchID: "branch-1"},
	}}
	svc := NewDebtService(debtRepo, &fakePaymentRepo{}, &fakeInvoiceRepo{}, docRepo, studentRepo)
	return svc, debtRepo, docRepo
}

func TestRegisterPaymentPartial(t *testing.T) {
	svc, debtRepo, docRepo := newDebtFixture()

	payment, err := svc.RegisterPayment(context.Background(), "debt-1", "staff-1", 200, "cash")
	if err != nil {
		t.Fatalf("RegisterPayment() error = %v", err)
	}
	if payment.Amount != 200 || payment.StaffID != "staff-1" {
		t.Errorf("unexpected payment %+v", payment)
	}

	debt := debtRepo.debts["debt-1"]
	if debt.Balance != 400 {
		t.Errorf("Balance = %v, want 400", debt.Balance)
	}
	if debt.Settled {
		t.Error("partial payment must not settle the debt")
	}
	if len(docRepo.docs) != 0 {
		t.Error("partial payment must not issue an invoice document")
	}
}

func TestRegisterPaymentSettlesAndIssuesInvoice(t *testing.T) {
	svc, debtRepo, docRepo := newDebtFixture()

	if _, err := svc.RegisterPayment(context.Background(), "debt-1", "staff-1", 600, "card"); err != nil {
		t.Fatalf("RegisterPayment() error = %v", err)
	}

	debt := debtRepo.debts["debt-1"]
	if debt.Balance != 0 || !debt.Settled {
		t.Errorf("expected settled debt, got balance=%v settled=%v", debt.Balance, debt.Settled)
	}

	if len(docRepo.docs) != 1 {
		t.Fatalf("expected 1 invoice document, got %d", len(docRepo.docs))
	}
	for _, doc := range docRepo.docs {
		if doc.Number == "" {
			t.Error("expected invoice number on document")
		}
		if doc.Payload["debt_id"] != "debt-1" {
			t.Errorf("unexpected payload %#v", doc.Payload)
		}
	}
}

func TestRegisterPaymentRejections(t *testing.T) {
	svc, _, _ := newDebtFixture()

	tests := []struct {
		name    string
		debtID  string
		amount  float64
		wantErr error
	}{
		{"unknown debt", "ghost", 100, ErrDebtNotFound},
		{"settled debt", "debt-settled", 100, ErrDebtSettled},
		{"zero amount", "debt-1", 0, ErrInvalidPaymentAmount},
		{"negative amount", "debt-1", -50, ErrInvalidPaymentAmount},
		{"overpayment", "debt-1", 700, ErrInvalidPaymentAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.RegisterPayment(context.Background(), tt.debtID, "staff-1", tt.amount, "cash"); !errors.Is(err, tt.wantErr) {
				t.Errorf("RegisterPayment() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateDebtInitializesBalance(t *testing.T) {
	svc, debtRepo, _ := newDebtFixture()

	debt := &model.Debt{ID: "debt-new", StudentID: "student-1", BranchID: "branch-1", Concept: "教材费", Amount: 150, Gestion: "2026"}
	if err := svc.Create(context.Background(), debt); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	stored := debtRepo.debts["debt-new"]
	if stored.Balance != 150 || stored.Settled {
		t.Errorf("expected fresh debt with full balance, got %+v", stored)
	}
}
