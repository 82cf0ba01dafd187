package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// playerClaims carries the anonymous player identity inside the signed
// session cookie.
type playerClaims struct {
	PlayerID string `json:"pid"`
	jwt.RegisteredClaims
}

// SignPlayerToken issues a signed token binding playerID for ttl.
func SignPlayerToken(secret, playerID string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("session secret is not configured")
	}

	now := time.Now()
	claims := playerClaims{
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParsePlayerToken validates a token and returns its player ID.
func ParsePlayerToken(secret, tokenString string) (string, error) {
	claims := &playerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.PlayerID == "" {
		return "", fmt.Errorf("invalid player token")
	}
	return claims.PlayerID, nil
}
