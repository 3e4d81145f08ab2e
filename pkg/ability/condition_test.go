package ability

import (
	"reflect"
	"testing"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

func testContext() Context {
	return Context{
		UserID:      "staff-1",
		BranchIDs:   []string{"branch-1", "branch-2"},
		RoleID:      "role-1",
		CurrentYear: 2026,
		CurrentHour: 10,
	}
}

func TestEvaluateDynamicHour(t *testing.T) {
	tests := []struct {
		name string
		hour int
		cond string
		want bool
	}{
		{"inside range", 10, "[8, 18]", true},
		{"lower boundary inclusive", 8, "[8, 18]", true},
		{"upper boundary inclusive", 18, "[8, 18]", true},
		{"below range", 7, "[8, 18]", false},
		{"above range", 19, "[8, 18]", false},
		{"malformed falls back to full day", 3, "not-json", true},
		{"wrong arity falls back to full day", 23, "[8]", true},
		{"non numeric pair falls back", 0, `["a", "b"]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			ctx.CurrentHour = tt.hour
			conds := []model.PermissionCondition{
				{Field: FieldHour, Operator: model.OperatorBetween, Value: tt.cond},
			}
			if got := EvaluateDynamic(conds, ctx); got != tt.want {
				t.Errorf("EvaluateDynamic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateDynamicYear(t *testing.T) {
	tests := []struct {
		name string
		cond string
		want bool
	}{
		{"matching number", "2026", true},
		{"mismatching number", "2025", false},
		{"numeric string", `"2026"`, true},
		{"array takes first element", "[2026, 2027]", true},
		{"array first element mismatch", "[2025, 2026]", false},
		{"empty array fails", "[]", false},
		{"unparseable fails", `"not-a-year"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conds := []model.PermissionCondition{
				{Field: FieldYear, Operator: model.OperatorEqual, Value: tt.cond},
			}
			if got := EvaluateDynamic(conds, testContext()); got != tt.want {
				t.Errorf("EvaluateDynamic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateDynamicGestion(t *testing.T) {
	tests := []struct {
		name string
		cond string
		want bool
	}{
		{"contains current year", `"2026-I"`, true},
		{"spans current year", `"2025-2026"`, true},
		{"stale gestion", `"2024-2025"`, false},
		{"non string fails", "42", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conds := []model.PermissionCondition{
				{Field: FieldGestion, Operator: model.OperatorEqual, Value: tt.cond},
			}
			if got := EvaluateDynamic(conds, testContext()); got != tt.want {
				t.Errorf("EvaluateDynamic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateDynamicMixed(t *testing.T) {
	// 动态遍历跳过静态字段，只要任一动态条件失败整体失败
	conds := []model.PermissionCondition{
		{Field: "branchId", Operator: model.OperatorIn, Value: "{{branchIds}}"},
		{Field: FieldHour, Operator: model.OperatorBetween, Value: "[8, 18]"},
		{Field: FieldYear, Operator: model.OperatorEqual, Value: "2025"},
	}
	if EvaluateDynamic(conds, testContext()) {
		t.Error("expected failure when a dynamic condition mismatches")
	}
}

func TestProjectStaticOperators(t *testing.T) {
	conds := []model.PermissionCondition{
		{Field: "branchId", Operator: model.OperatorEqual, Value: `"branch-1"`},
		{Field: "amount", Operator: model.OperatorGreaterThan, Value: "100"},
		{Field: "settled", Operator: model.OperatorNotEqual, Value: "true"},
	}

	got := ProjectStatic(conds, testContext())
	want := FilterMap{
		"branchId": {"equals": "branch-1"},
		"amount":   {"gt": float64(100)},
		"settled":  {"not": true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ProjectStatic() = %#v, want %#v", got, want)
	}
}

func TestProjectStaticSkipsDynamicFields(t *testing.T) {
	conds := []model.PermissionCondition{
		{Field: FieldHour, Operator: model.OperatorBetween, Value: "[8, 18]"},
		{Field: FieldYear, Operator: model.OperatorEqual, Value: "2026"},
		{Field: FieldGestion, Operator: model.OperatorEqual, Value: `"2026-I"`},
		{Field: "branchId", Operator: model.OperatorEqual, Value: `"branch-1"`},
	}

	got := ProjectStatic(conds, testContext())
	if len(got) != 1 {
		t.Fatalf("expected only static fields projected, got %#v", got)
	}
	if _, ok := got["branchId"]; !ok {
		t.Error("expected branchId fragment present")
	}
}

func TestProjectStaticDropsUnknownOperator(t *testing.T) {
	conds := []model.PermissionCondition{
		{Field: "branchId", Operator: model.Operator("matches"), Value: `"x"`},
	}
	if got := ProjectStatic(conds, testContext()); len(got) != 0 {
		t.Errorf("expected unknown operator dropped, got %#v", got)
	}
}

func TestProjectStaticBetween(t *testing.T) {
	t.Run("two element array becomes gte lte pair", func(t *testing.T) {
		conds := []model.PermissionCondition{
			{Field: "amount", Operator: model.OperatorBetween, Value: "[100, 500]"},
		}
		got := ProjectStatic(conds, testContext())
		want := FilterMap{"amount": {"gte": float64(100), "lte": float64(500)}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ProjectStatic() = %#v, want %#v", got, want)
		}
	})

	t.Run("wrong arity degrades to range fragment", func(t *testing.T) {
		conds := []model.PermissionCondition{
			{Field: "amount", Operator: model.OperatorBetween, Value: "[100]"},
		}
		got := ProjectStatic(conds, testContext())
		fragment, ok := got["amount"]
		if !ok {
			t.Fatal("expected amount fragment present")
		}
		if _, ok := fragment["range"]; !ok {
			t.Errorf("expected degraded range fragment, got %#v", fragment)
		}
	})
}

func TestProjectStaticComposesOperatorsPerField(t *testing.T) {
	conds := []model.PermissionCondition{
		{Field: "amount", Operator: model.OperatorGreaterThanOrEqual, Value: "100"},
		{Field: "amount", Operator: model.OperatorLessThan, Value: "500"},
	}
	got := ProjectStatic(conds, testContext())
	fragment := got["amount"]
	if len(fragment) != 2 {
		t.Fatalf("expected both operators on the same field, got %#v", fragment)
	}
	if fragment["gte"] != float64(100) || fragment["lt"] != float64(500) {
		t.Errorf("unexpected fragment %#v", fragment)
	}
}

func TestProjectStaticResolvesPlaceholders(t *testing.T) {
	conds := []model.PermissionCondition{
		{Field: "branchId", Operator: model.OperatorIn, Value: "{{branchIds}}"},
		{Field: "staffId", Operator: model.OperatorEqual, Value: "{{userId}}"},
	}
	got := ProjectStatic(conds, testContext())

	branches, ok := got["branchId"]["in"].([]any)
	if !ok || len(branches) != 2 {
		t.Fatalf("expected branchIds resolved to array, got %#v", got["branchId"]["in"])
	}
	if branches[0] != "branch-1" || branches[1] != "branch-2" {
		t.Errorf("unexpected branches %#v", branches)
	}
	if got["staffId"]["equals"] != "staff-1" {
		t.Errorf("expected userId resolved, got %#v", got["staffId"]["equals"])
	}
}
