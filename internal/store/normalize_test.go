package store

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"José Silva": "jose silva",
		"  ÂNGELA  ": "angela",
		"João":       "joao",
		"conceição":  "conceicao",
		"plain name": "plain name",
		"":           "",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_a\b`); got != `50\%\_a\\b` {
		t.Fatalf("escapeLike: got %q", got)
	}
}
