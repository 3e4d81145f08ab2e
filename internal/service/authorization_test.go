package service

import (
	"context"
	"errors"
	"testing"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"
)

// captureObserver 记录授权决策供断言
type captureObserver struct {
	decisions []ability.Decision
}

func (o *captureObserver) OnDecision(d ability.Decision) {
	o.decisions = append(o.decisions, d)
}

func newAuthorizationFixture(permissions []model.Permission) (AuthorizationService, *fakeStudentRepo, *captureObserver) {
	staffRepo := &fakeStaffRepo{staffs: map[string]*model.Staff{
		"staff-1": {
			ID:     "staff-1",
			RoleID: "role-1",
			Branches: []model.Branch{
				{ID: "branch-1"},
				{ID: "branch-2"},
			},
		},
		"staff-norole": {ID: "staff-norole"},
	}}
	permissionRepo := &fakePermissionRepo{permissions: permissions}
	studentRepo := &fakeStudentRepo{students: map[string]*model.Student{
		"student-in":  {ID: "student-in", BranchID: "branch-1"},
		"student-out": {ID: "student-out", BranchID: "branch-9"},
	}}
	observer := &captureObserver{}

	svc := NewAuthorizationService(
		staffRepo,
		permissionRepo,
		nil,
		studentRepo,
		nil, nil, nil, nil, nil, nil, nil, nil,
		observer,
	)
	return svc, studentRepo, observer
}

func branchScopedPermissions() []model.Permission {
	return []model.Permission{
		{
			RoleID:  "role-1",
			Action:  model.ActionRead,
			Subject: model.SubjectStudent,
			Active:  true,
			Conditions: []model.PermissionCondition{
				{Field: "branchId", Operator: model.OperatorIn, Value: "{{branchIds}}"},
			},
		},
	}
}

func TestBuildAbilityRequiresRole(t *testing.T) {
	svc, _, _ := newAuthorizationFixture(nil)

	if _, err := svc.BuildAbility(context.Background(), "staff-norole"); !errors.Is(err, ErrNoRoleAssigned) {
		t.Errorf("expected ErrNoRoleAssigned, got %v", err)
	}
	if _, err := svc.BuildAbility(context.Background(), "missing"); !errors.Is(err, ErrNoRoleAssigned) {
		t.Errorf("expected ErrNoRoleAssigned for unknown staff, got %v", err)
	}
}

func TestBuildAbilityContext(t *testing.T) {
	svc, _, _ := newAuthorizationFixture(branchScopedPermissions())

	ab, err := svc.BuildAbility(context.Background(), "staff-1")
	if err != nil {
		t.Fatalf("BuildAbility() error = %v", err)
	}

	ctx := ab.Context()
	if ctx.UserID != "staff-1" || ctx.RoleID != "role-1" {
		t.Errorf("unexpected context %+v", ctx)
	}
	if len(ctx.BranchIDs) != 2 {
		t.Errorf("expected branch assignments in context, got %v", ctx.BranchIDs)
	}
	if len(ab.Rules()) != 1 {
		t.Errorf("expected 1 compiled rule, got %d", len(ab.Rules()))
	}
}

func TestAuthorizeResourceScoped(t *testing.T) {
	svc, _, _ := newAuthorizationFixture(branchScopedPermissions())
	ab, err := svc.BuildAbility(context.Background(), "staff-1")
	if err != nil {
		t.Fatalf("BuildAbility() error = %v", err)
	}

	t.Run("in-branch resource allowed", func(t *testing.T) {
		reqs := []Requirement{{Action: model.ActionRead, Subject: model.SubjectStudent, ResourceID: "student-in"}}
		if err := svc.Authorize(context.Background(), ab, reqs); err != nil {
			t.Errorf("expected allow, got %v", err)
		}
	})

	t.Run("out-of-branch resource denied", func(t *testing.T) {
		reqs := []Requirement{{Action: model.ActionRead, Subject: model.SubjectStudent, ResourceID: "student-out"}}
		err := svc.Authorize(context.Background(), ab, reqs)
		var forbidden *ability.ForbiddenError
		if !errors.As(err, &forbidden) {
			t.Errorf("expected ForbiddenError, got %v", err)
		}
	})

	t.Run("missing resource is not found", func(t *testing.T) {
		reqs := []Requirement{{Action: model.ActionRead, Subject: model.SubjectStudent, ResourceID: "ghost"}}
		if err := svc.Authorize(context.Background(), ab, reqs); !errors.Is(err, ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound, got %v", err)
		}
	})

	t.Run("type-level check without resource id", func(t *testing.T) {
		reqs := []Requirement{{Action: model.ActionRead, Subject: model.SubjectStudent}}
		if err := svc.Authorize(context.Background(), ab, reqs); err != nil {
			t.Errorf("expected type-level allow, got %v", err)
		}
	})
}

func TestAuthorizeDenyWinsAndObserves(t *testing.T) {
	permissions := []model.Permission{
		{RoleID: "role-1", Action: model.ActionManage, Subject: model.SubjectAll, Active: true},
		{RoleID: "role-1", Action: model.ActionDelete, Subject: model.SubjectStudent, Inverted: true, Reason: "学生档案不可删除", Active: true},
	}
	svc, _, observer := newAuthorizationFixture(permissions)
	ab, err := svc.BuildAbility(context.Background(), "staff-1")
	if err != nil {
		t.Fatalf("BuildAbility() error = %v", err)
	}

	reqs := []Requirement{{Action: model.ActionDelete, Subject: model.SubjectStudent}}
	err = svc.Authorize(context.Background(), ab, reqs)

	var forbidden *ability.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
	if forbidden.Reason != "学生档案不可删除" {
		t.Errorf("Reason = %q", forbidden.Reason)
	}

	if len(observer.decisions) != 1 {
		t.Fatalf("expected 1 recorded decision, got %d", len(observer.decisions))
	}
	d := observer.decisions[0]
	if d.Allowed || d.Reason != "学生档案不可删除" || d.UserID != "staff-1" {
		t.Errorf("unexpected decision %+v", d)
	}
}

func TestAuthorizeInactivePermissionsExcluded(t *testing.T) {
	permissions := []model.Permission{
		{RoleID: "role-1", Action: model.ActionRead, Subject: model.SubjectStudent, Active: false},
	}
	svc, _, _ := newAuthorizationFixture(permissions)
	ab, err := svc.BuildAbility(context.Background(), "staff-1")
	if err != nil {
		t.Fatalf("BuildAbility() error = %v", err)
	}

	reqs := []Requirement{{Action: model.ActionRead, Subject: model.SubjectStudent}}
	if err := svc.Authorize(context.Background(), ab, reqs); err == nil {
		t.Error("expected deny when the only permission is inactive")
	}
}
