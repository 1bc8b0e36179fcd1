package handlers

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []string{"2026-03-15", "2026-03-15T10:30:00", "2026-03-15T10:30:00Z"}
	for _, s := range cases {
		got, err := parseDate(s)
		if err != nil {
			t.Errorf("parseDate(%q): %v", s, err)
			continue
		}
		if got.Year() != 2026 || got.Month() != time.March || got.Day() != 15 {
			t.Errorf("parseDate(%q) = %v", s, got)
		}
	}
	if _, err := parseDate("15/03/2026"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=3&limit=20", nil)
	page, limit := parsePagination(r, 50)
	if page != 3 || limit != 20 {
		t.Fatalf("got page=%d limit=%d", page, limit)
	}

	// Garbage and out-of-range values fall back to defaults.
	r = httptest.NewRequest("GET", "/?page=zero&limit=9999", nil)
	page, limit = parsePagination(r, 50)
	if page != 1 || limit != 50 {
		t.Fatalf("got page=%d limit=%d", page, limit)
	}
}
