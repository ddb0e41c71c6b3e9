package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"enkai-reserve/internal/domain"
)

type Claims struct {
	UID  string `json:"uid"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (j *JWTer) Issue(uid string, role domain.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:  uid,
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Parse validates the token and the role claim in one place, so handlers
// never deal with free-form role strings.
func (j *JWTer) Parse(tokenStr string) (string, domain.Role, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second))
	if err != nil {
		return "", "", err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return "", "", errors.New("invalid token")
	}
	role, ok := domain.ParseRole(c.Role)
	if !ok {
		return "", "", fmt.Errorf("unknown role %q", c.Role)
	}
	return c.UID, role, nil
}
