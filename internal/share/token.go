package share

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const listAudience = "shopping-list"

// NewListToken signs a read-only share token for a user's shopping list.
func NewListToken(secret, userID string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
		"aud": listAudience,
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

// ParseListToken validates a share token and returns the user ID it was
// issued for.
func ParseListToken(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		},
		jwt.WithAudience(listAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("invalid share token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("share token has no subject")
	}
	return sub, nil
}
