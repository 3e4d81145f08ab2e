package ability

import (
	"testing"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

func TestRuleMatches(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		action  model.Action
		subject model.Subject
		want    bool
	}{
		{"exact match", Rule{Action: model.ActionRead, Subject: model.SubjectStudent}, model.ActionRead, model.SubjectStudent, true},
		{"action mismatch", Rule{Action: model.ActionRead, Subject: model.SubjectStudent}, model.ActionUpdate, model.SubjectStudent, false},
		{"subject mismatch", Rule{Action: model.ActionRead, Subject: model.SubjectStudent}, model.ActionRead, model.SubjectDebt, false},
		{"manage covers any action", Rule{Action: model.ActionManage, Subject: model.SubjectStudent}, model.ActionDelete, model.SubjectStudent, true},
		{"all covers any subject", Rule{Action: model.ActionRead, Subject: model.SubjectAll}, model.ActionRead, model.SubjectInvoice, true},
		{"manage all covers everything", Rule{Action: model.ActionManage, Subject: model.SubjectAll}, model.ActionCreate, model.SubjectBooking, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Matches(tt.action, tt.subject); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompileExcludesDynamicFailures(t *testing.T) {
	ctx := testContext()
	ctx.CurrentHour = 22

	permissions := []model.Permission{
		{
			Action:  model.ActionRead,
			Subject: model.SubjectStudent,
			Conditions: []model.PermissionCondition{
				{Field: FieldHour, Operator: model.OperatorBetween, Value: "[8, 18]"},
			},
		},
		{
			Action:  model.ActionRead,
			Subject: model.SubjectDebt,
		},
	}

	rules := Compile(permissions, ctx)
	if len(rules) != 1 {
		t.Fatalf("expected off-hours permission excluded, got %d rules", len(rules))
	}
	if rules[0].Subject != model.SubjectDebt {
		t.Errorf("unexpected surviving rule %#v", rules[0])
	}
}

func TestCompilePreservesOrder(t *testing.T) {
	permissions := []model.Permission{
		{Action: model.ActionRead, Subject: model.SubjectStudent},
		{Action: model.ActionRead, Subject: model.SubjectStudent, Inverted: true, Reason: "拒绝"},
		{Action: model.ActionUpdate, Subject: model.SubjectStudent},
	}

	rules := Compile(permissions, testContext())
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	if !rules[1].Inverted || rules[1].Reason != "拒绝" {
		t.Errorf("expected input order preserved, got %#v", rules)
	}
}

func TestCompileProjectsStaticConditions(t *testing.T) {
	permissions := []model.Permission{
		{
			Action:  model.ActionRead,
			Subject: model.SubjectStudent,
			Conditions: []model.PermissionCondition{
				{Field: FieldHour, Operator: model.OperatorBetween, Value: "[0, 23]"},
				{Field: "branchId", Operator: model.OperatorIn, Value: "{{branchIds}}"},
			},
		},
	}

	rules := Compile(permissions, testContext())
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if _, ok := rules[0].Conditions[FieldHour]; ok {
		t.Error("dynamic field must not appear in projected conditions")
	}
	if _, ok := rules[0].Conditions["branchId"]; !ok {
		t.Error("static condition missing from projected conditions")
	}
}
