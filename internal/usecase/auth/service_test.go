package auth

import "testing"

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		" Ada@Example.COM ":     "ada@example.com",
		"":                      "",
		"plainaddress":          "",
		"Ada <ada@example.com>": "",
	}
	for in, want := range cases {
		if got := normalizeEmail(in); got != want {
			t.Fatalf("normalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	if isValidPassword("12345") {
		t.Fatalf("5 chars should be rejected")
	}
	if !isValidPassword("123456") {
		t.Fatalf("6 chars should be accepted")
	}
	if isValidPassword("      ") {
		t.Fatalf("blank password should be rejected")
	}
}
