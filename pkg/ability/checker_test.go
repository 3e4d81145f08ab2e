package ability

import (
	"errors"
	"testing"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

func TestCanAllowsAndDenies(t *testing.T) {
	permissions := []model.Permission{
		{Action: model.ActionRead, Subject: model.SubjectStudent},
	}
	ab := New(permissions, testContext())

	if err := ab.Can(model.ActionRead, model.SubjectStudent, nil); err != nil {
		t.Errorf("expected allow, got %v", err)
	}
	if err := ab.Can(model.ActionDelete, model.SubjectStudent, nil); err == nil {
		t.Error("expected deny for uncovered action")
	}
}

func TestCanExplicitDenyWins(t *testing.T) {
	permissions := []model.Permission{
		{Action: model.ActionManage, Subject: model.SubjectAll},
		{Action: model.ActionDelete, Subject: model.SubjectInvoice, Inverted: true, Reason: "发票不可删除"},
	}
	ab := New(permissions, testContext())

	err := ab.Can(model.ActionDelete, model.SubjectInvoice, nil)
	var forbidden *ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
	if forbidden.Reason != "发票不可删除" {
		t.Errorf("Reason = %q, want stored reason", forbidden.Reason)
	}

	// 其他操作不受影响
	if err := ab.Can(model.ActionRead, model.SubjectInvoice, nil); err != nil {
		t.Errorf("expected allow for read, got %v", err)
	}
}

func TestCanDenyWinsRegardlessOfOrder(t *testing.T) {
	permissions := []model.Permission{
		{Action: model.ActionDelete, Subject: model.SubjectInvoice, Inverted: true},
		{Action: model.ActionManage, Subject: model.SubjectAll},
	}
	ab := New(permissions, testContext())

	if err := ab.Can(model.ActionDelete, model.SubjectInvoice, nil); err == nil {
		t.Error("expected deny even when deny rule precedes allow rule")
	}
}

func TestCanConditionedRulesAgainstTarget(t *testing.T) {
	permissions := []model.Permission{
		{
			Action:  model.ActionUpdate,
			Subject: model.SubjectStudent,
			Conditions: []model.PermissionCondition{
				{Field: "branchId", Operator: model.OperatorIn, Value: "{{branchIds}}"},
			},
		},
	}
	ab := New(permissions, testContext())

	inBranch := map[string]any{"branchId": "branch-1"}
	if err := ab.Can(model.ActionUpdate, model.SubjectStudent, inBranch); err != nil {
		t.Errorf("expected allow for in-branch target, got %v", err)
	}

	outOfBranch := map[string]any{"branchId": "branch-9"}
	if err := ab.Can(model.ActionUpdate, model.SubjectStudent, outOfBranch); err == nil {
		t.Error("expected deny for out-of-branch target")
	}
}

func TestCanNilTargetSemantics(t *testing.T) {
	// 类型级检查：带条件的允许规则视为满足，带条件的拒绝规则不可证实命中
	permissions := []model.Permission{
		{
			Action:  model.ActionUpdate,
			Subject: model.SubjectStudent,
			Conditions: []model.PermissionCondition{
				{Field: "branchId", Operator: model.OperatorIn, Value: "{{branchIds}}"},
			},
		},
		{
			Action:   model.ActionUpdate,
			Subject:  model.SubjectStudent,
			Inverted: true,
			Conditions: []model.PermissionCondition{
				{Field: "settled", Operator: model.OperatorEqual, Value: "true"},
			},
		},
	}
	ab := New(permissions, testContext())

	if err := ab.Can(model.ActionUpdate, model.SubjectStudent, nil); err != nil {
		t.Errorf("expected type-level allow, got %v", err)
	}
}

func TestCanUnconditionalDenyAppliesToNilTarget(t *testing.T) {
	permissions := []model.Permission{
		{Action: model.ActionManage, Subject: model.SubjectAll},
		{Action: model.ActionUpdate, Subject: model.SubjectStudent, Inverted: true},
	}
	ab := New(permissions, testContext())

	if err := ab.Can(model.ActionUpdate, model.SubjectStudent, nil); err == nil {
		t.Error("expected unconditional deny to apply at type level")
	}
}

func TestForbiddenErrorMessage(t *testing.T) {
	withReason := &ForbiddenError{Reason: "仅限本分校"}
	if withReason.Error() != "仅限本分校" {
		t.Errorf("Error() = %q", withReason.Error())
	}

	noReason := &ForbiddenError{}
	if noReason.Error() == "" {
		t.Error("expected default message when no reason stored")
	}
}

func TestMatchTarget(t *testing.T) {
	tests := []struct {
		name       string
		conditions FilterMap
		target     map[string]any
		want       bool
	}{
		{"empty conditions always match", FilterMap{}, map[string]any{"x": 1}, true},
		{"equals", FilterMap{"branchId": {"equals": "b1"}}, map[string]any{"branchId": "b1"}, true},
		{"equals numeric coercion", FilterMap{"amount": {"equals": float64(5)}}, map[string]any{"amount": 5}, true},
		{"not", FilterMap{"settled": {"not": true}}, map[string]any{"settled": false}, true},
		{"in", FilterMap{"branchId": {"in": []any{"b1", "b2"}}}, map[string]any{"branchId": "b2"}, true},
		{"in miss", FilterMap{"branchId": {"in": []any{"b1", "b2"}}}, map[string]any{"branchId": "b3"}, false},
		{"notIn", FilterMap{"branchId": {"notIn": []any{"b1"}}}, map[string]any{"branchId": "b2"}, true},
		{"gte lte pair", FilterMap{"amount": {"gte": float64(100), "lte": float64(500)}}, map[string]any{"amount": 250}, true},
		{"gte boundary", FilterMap{"amount": {"gte": float64(100)}}, map[string]any{"amount": 100}, true},
		{"lt fail", FilterMap{"amount": {"lt": float64(100)}}, map[string]any{"amount": 100}, false},
		{"missing attribute fails", FilterMap{"branchId": {"equals": "b1"}}, map[string]any{}, false},
		{"snake case fallback", FilterMap{"branchId": {"equals": "b1"}}, map[string]any{"branch_id": "b1"}, true},
		{"unknown operator ignored", FilterMap{"branchId": {"matches": "b1"}}, map[string]any{"branchId": "zzz"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchTarget(tt.conditions, tt.target); got != tt.want {
				t.Errorf("MatchTarget() = %v, want %v", got, tt.want)
			}
		})
	}
}
