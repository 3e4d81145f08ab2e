package service

import (
	"context"
	"errors"
	"testing"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

func newInscriptionFixture() (InscriptionService, *fakeInscriptionRepo) {
	inscriptionRepo := &fakeInscriptionRepo{inscriptions: map[string]*model.Inscription{}}
	studentRepo := &fakeStudentRepo{students: map[string]*model.Student{
		"student-1": {ID: "student-1", BranchID: "branch-1"},
	}}
	branchRepo := &fakeBranchRepo{branches: map[string]*model.Branch{
		"branch-1": {ID: "branch-1", Name: "中心分校"},
	}}
	return NewInscriptionService(inscriptionRepo, studentRepo, branchRepo), inscriptionRepo
}

func TestCreateInscriptionOpensDebt(t *testing.T) {
	svc, repo := newInscriptionFixture()

	inscription := &model.Inscription{StudentID: "student-1", BranchID: "branch-1", Gestion: "2026", Price: 600, StaffID: "staff-1"}
	if err := svc.Create(context.Background(), inscription); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(repo.debts) != 1 {
		t.Fatalf("expected 1 opened debt, got %d", len(repo.debts))
	}
	debt := repo.debts[0]
	if debt.Amount != 600 || debt.Balance != 600 || debt.Settled {
		t.Errorf("unexpected debt %+v", debt)
	}
	if debt.StudentID != "student-1" || debt.BranchID != "branch-1" || debt.Gestion != "2026" {
		t.Errorf("debt not linked to inscription data: %+v", debt)
	}
	if debt.InscriptionID == nil || *debt.InscriptionID != inscription.ID {
		t.Error("expected debt linked to created inscription")
	}
}

func TestCreateInscriptionRejections(t *testing.T) {
	svc, _ := newInscriptionFixture()

	seed := &model.Inscription{StudentID: "student-1", BranchID: "branch-1", Gestion: "2026", Price: 600}
	if err := svc.Create(context.Background(), seed); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name        string
		inscription model.Inscription
		wantErr     error
	}{
		{"unknown student", model.Inscription{StudentID: "ghost", BranchID: "branch-1", Gestion: "2027", Price: 600}, ErrStudentNotFound},
		{"unknown branch", model.Inscription{StudentID: "student-1", BranchID: "ghost", Gestion: "2027", Price: 600}, ErrBranchNotFound},
		{"duplicate gestion", model.Inscription{StudentID: "student-1", BranchID: "branch-1", Gestion: "2026", Price: 600}, ErrAlreadyInscribed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := tt.inscription
			if err := svc.Create(context.Background(), &ins); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
