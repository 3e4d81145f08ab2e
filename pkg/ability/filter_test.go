package ability

import (
	"reflect"
	"testing"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

func TestListFilterCollectsAllowBranches(t *testing.T) {
	permissions := []model.Permission{
		{
			Action:  model.ActionRead,
			Subject: model.SubjectStudent,
			Conditions: []model.PermissionCondition{
				{Field: "branchId", Operator: model.OperatorIn, Value: "{{branchIds}}"},
			},
		},
		{
			Action:  model.ActionManage,
			Subject: model.SubjectStudent,
			Conditions: []model.PermissionCondition{
				{Field: "active", Operator: model.OperatorEqual, Value: "true"},
			},
		},
		// 拒绝规则不参与投影
		{Action: model.ActionRead, Subject: model.SubjectStudent, Inverted: true},
		// 其他主体不参与投影
		{Action: model.ActionRead, Subject: model.SubjectDebt},
	}

	filter := New(permissions, testContext()).ListFilter(model.SubjectStudent)
	if len(filter.Or) != 2 {
		t.Fatalf("expected 2 OR branches, got %d", len(filter.Or))
	}
	if filter.NoRestrictions {
		t.Error("expected restrictions when branches carry conditions")
	}
}

func TestListFilterEmptiness(t *testing.T) {
	t.Run("no matching rules is empty", func(t *testing.T) {
		filter := New(nil, testContext()).ListFilter(model.SubjectStudent)
		if !filter.NoRestrictions {
			t.Error("expected NoRestrictions with zero branches")
		}
	})

	t.Run("all empty branches is empty", func(t *testing.T) {
		permissions := []model.Permission{
			{Action: model.ActionRead, Subject: model.SubjectStudent},
			{Action: model.ActionManage, Subject: model.SubjectAll},
		}
		filter := New(permissions, testContext()).ListFilter(model.SubjectStudent)
		if !filter.NoRestrictions {
			t.Error("expected NoRestrictions when every branch is empty")
		}
	})

	t.Run("one keyed branch is not empty", func(t *testing.T) {
		permissions := []model.Permission{
			{Action: model.ActionRead, Subject: model.SubjectStudent},
			{
				Action:  model.ActionRead,
				Subject: model.SubjectStudent,
				Conditions: []model.PermissionCondition{
					{Field: "branchId", Operator: model.OperatorEqual, Value: `"b1"`},
				},
			},
		}
		filter := New(permissions, testContext()).ListFilter(model.SubjectStudent)
		if filter.NoRestrictions {
			t.Error("expected restrictions when one branch carries keys")
		}
	})
}

func TestSanitizeStripsForeignFields(t *testing.T) {
	filter := ListFilter{
		Or: []FilterMap{
			{
				"branchId": {"equals": "b1"},
				"secret":   {"equals": "x"},
			},
		},
	}

	got := filter.Sanitize(model.SubjectStudent)
	want := []FilterMap{{"branchId": {"equals": "b1"}}}
	if !reflect.DeepEqual(got.Or, want) {
		t.Errorf("Sanitize() = %#v, want %#v", got.Or, want)
	}
}

func TestSanitizeDropsEmptiedBranches(t *testing.T) {
	filter := ListFilter{
		Or: []FilterMap{
			{"secret": {"equals": "x"}},
			{"branchId": {"equals": "b1"}},
		},
	}

	got := filter.Sanitize(model.SubjectStudent)
	if len(got.Or) != 1 {
		t.Fatalf("expected emptied branch dropped, got %#v", got.Or)
	}
	if got.NoRestrictions {
		t.Error("expected restrictions to survive sanitization")
	}
}

func TestSanitizeKeepsOriginallyEmptyBranches(t *testing.T) {
	filter := ListFilter{
		Or: []FilterMap{
			{},
			{"branchId": {"equals": "b1"}},
		},
	}

	got := filter.Sanitize(model.SubjectStudent)
	if len(got.Or) != 2 {
		t.Fatalf("expected originally-empty branch kept, got %#v", got.Or)
	}
}

func TestSanitizeAllStrippedMeansNoRestrictions(t *testing.T) {
	filter := ListFilter{
		Or: []FilterMap{
			{"secret": {"equals": "x"}},
		},
	}

	got := filter.Sanitize(model.SubjectStudent)
	if !got.NoRestrictions {
		t.Error("expected NoRestrictions when every branch is stripped away")
	}
}

func TestAllowedFieldsPerSubject(t *testing.T) {
	// 同名字段不得跨资源类型泄漏
	filter := ListFilter{
		Or: []FilterMap{
			{"balance": {"gt": float64(0)}},
		},
	}

	if got := filter.Sanitize(model.SubjectDebt); len(got.Or) != 1 {
		t.Errorf("balance should survive for debt, got %#v", got.Or)
	}
	if got := filter.Sanitize(model.SubjectStudent); !got.NoRestrictions {
		t.Errorf("balance should be stripped for student, got %#v", got.Or)
	}
}
