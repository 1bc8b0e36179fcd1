package validation

import (
	"testing"
	"time"
)

func TestValidators(t *testing.T) {
	v := make(Violations)
	Required("name", "  ", v)
	RequiredTime("due_date", time.Time{}, v)
	PositiveFloat("total", 0, v)
	OneOf("status", "canceled", []string{"pending", "paid"}, v)

	for field, want := range map[string]string{
		"name":     "required",
		"due_date": "required",
		"total":    "must_be_positive",
		"status":   "invalid_value",
	} {
		if got := v[field]; got != want {
			t.Errorf("%s: expected %q, got %q", field, want, got)
		}
	}

	ok := make(Violations)
	Required("name", "José", ok)
	RequiredTime("due_date", time.Now(), ok)
	PositiveFloat("total", 0.01, ok)
	OneOf("status", "paid", []string{"pending", "paid"}, ok)
	if !ok.Empty() {
		t.Fatalf("expected no violations, got %v", ok)
	}
}
