package ability

import (
	"reflect"
	"testing"
	"time"
)

func TestNewContext(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	ctx := NewContext("staff-1", "role-1", []string{"branch-1"}, now)

	if ctx.CurrentYear != 2026 {
		t.Errorf("CurrentYear = %d, want 2026", ctx.CurrentYear)
	}
	if ctx.CurrentHour != 14 {
		t.Errorf("CurrentHour = %d, want 14", ctx.CurrentHour)
	}
}

func TestSubstitute(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"no placeholder passes through", `"branch-1"`, `"branch-1"`},
		{"userId", "{{userId}}", `"staff-1"`},
		{"roleId", "{{roleId}}", `"role-1"`},
		{"branchIds serializes as array", "{{branchIds}}", `["branch-1","branch-2"]`},
		{"currentYear", "{{currentYear}}", "2026"},
		{"currentHour", "{{currentHour}}", "10"},
		{"unknown placeholder untouched", "{{something}}", "{{something}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ctx.Substitute(tt.value); got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestSubstituteIdempotent(t *testing.T) {
	ctx := testContext()
	once := ctx.Substitute("{{branchIds}}")
	twice := ctx.Substitute(once)
	if once != twice {
		t.Errorf("substitution is not idempotent: %q vs %q", once, twice)
	}
}

func TestResolve(t *testing.T) {
	ctx := testContext()

	t.Run("placeholder parses to typed value", func(t *testing.T) {
		got := ctx.Resolve("{{branchIds}}")
		want := []any{"branch-1", "branch-2"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %#v, want %#v", got, want)
		}
	})

	t.Run("number parses", func(t *testing.T) {
		if got := ctx.Resolve("{{currentYear}}"); got != float64(2026) {
			t.Errorf("Resolve() = %#v, want 2026", got)
		}
	})

	t.Run("invalid json keeps raw string", func(t *testing.T) {
		if got := ctx.Resolve("plain-text"); got != "plain-text" {
			t.Errorf("Resolve() = %#v, want raw string", got)
		}
	})
}
