package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	h := HashPassword("pass1234")
	if h == "" || h == "pass1234" {
		t.Fatalf("hash looks wrong: %q", h)
	}
	if !CheckPassword("pass1234", h) {
		t.Error("correct password rejected")
	}
	if CheckPassword("pass1235", h) {
		t.Error("wrong password accepted")
	}
}

func TestValidPassword(t *testing.T) {
	cases := []struct {
		pw string
		ok bool
	}{
		{"pass1234", true},
		{"A1b2C3d4", true},
		{"abcdef1234567890", true}, // 16 chars
		{"a1234567", true},
		{"short1", false},            // too short
		{"abcdef12345678901", false}, // 17 chars
		{"password", false},          // no digit
		{"12345678", false},          // no letter
		{"pass 123", false},          // space
		{"pass-1234", false},         // symbol
		{"パスワード123", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidPassword(c.pw); got != c.ok {
			t.Errorf("ValidPassword(%q) = %v, want %v", c.pw, got, c.ok)
		}
	}
}
