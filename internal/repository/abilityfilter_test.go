package repository

import (
	"reflect"
	"testing"
)

func TestColumnName(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"branchId", "branch_id"},
		{"inscriptionId", "inscription_id"},
		{"startHour", "start_hour"},
		{"id", "id"},
		{"gestion", "gestion"},
		{"lastName", "last_name"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := columnName(tt.field); got != tt.want {
				t.Errorf("columnName(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestToSlice(t *testing.T) {
	if got := toSlice([]any{"a", "b"}); !reflect.DeepEqual(got, []any{"a", "b"}) {
		t.Errorf("toSlice(slice) = %#v", got)
	}
	if got := toSlice("a"); !reflect.DeepEqual(got, []any{"a"}) {
		t.Errorf("toSlice(scalar) = %#v", got)
	}
}
