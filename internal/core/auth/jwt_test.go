package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"enkai-reserve/internal/domain"
)

func testJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "enkai-reserve", TTL: time.Hour}
}

func TestIssueParseRoundtrip(t *testing.T) {
	j := testJWTer()
	tok, err := j.Issue("u1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	uid, role, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if uid != "u1" || role != domain.RoleAdmin {
		t.Errorf("got (%q, %q), want (u1, admin)", uid, role)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	j := testJWTer()
	tok, err := j.Issue("u1", domain.RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	other := &JWTer{Secret: []byte("other-secret"), Issuer: "enkai-reserve", TTL: time.Hour}
	if _, _, err := other.Parse(tok); err == nil {
		t.Fatal("token signed with a different secret accepted")
	}
}

func TestParse_WrongIssuer(t *testing.T) {
	j := testJWTer()
	other := &JWTer{Secret: j.Secret, Issuer: "someone-else", TTL: time.Hour}
	tok, err := other.Issue("u1", domain.RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := j.Parse(tok); err == nil {
		t.Fatal("token with a different issuer accepted")
	}
}

func TestParse_UnknownRole(t *testing.T) {
	j := testJWTer()
	claims := Claims{
		UID:  "u1",
		Role: "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Secret)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = j.Parse(tok)
	if err == nil || !strings.Contains(err.Error(), "unknown role") {
		t.Fatalf("err = %v, want unknown role", err)
	}
}

func TestParse_Expired(t *testing.T) {
	j := testJWTer()
	j.TTL = -2 * time.Minute // past the 60s leeway
	tok, err := j.Issue("u1", domain.RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := j.Parse(tok); err == nil {
		t.Fatal("expired token accepted")
	}
}
