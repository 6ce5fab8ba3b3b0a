package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried in access tokens. PreferredLocale rides along so the
// locale middleware can honor the stored preference without a user lookup.
type Claims struct {
	UserID          string `json:"userId"`
	IsAdmin         bool   `json:"isAdmin"`
	PreferredLocale string `json:"preferredLocale,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256 access token valid for ttl.
func GenerateToken(secret, userID string, isAdmin bool, preferredLocale string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:          userID,
		IsAdmin:         isAdmin,
		PreferredLocale: preferredLocale,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates tokenStr and returns its claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
