package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CSRFGenerator generates and validates CSRF tokens using HMAC-SHA256.
// Tokens are derived deterministically from the player ID and a secret key,
// so no shared state is required across replicas.
type CSRFGenerator struct {
	secret []byte
}

// NewCSRFGenerator creates a new stateless HMAC-based CSRF generator.
func NewCSRFGenerator(secret string) *CSRFGenerator {
	return &CSRFGenerator{secret: []byte(secret)}
}

// GenerateToken returns a deterministic CSRF token for the given player ID.
func (g *CSRFGenerator) GenerateToken(playerID string) (string, error) {
	if playerID == "" {
		return "", fmt.Errorf("player ID is required")
	}
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(playerID))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// ValidateToken reports whether token is the valid CSRF token for playerID.
func (g *CSRFGenerator) ValidateToken(playerID, token string) bool {
	if playerID == "" || token == "" {
		return false
	}
	expected, err := g.GenerateToken(playerID)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(token))
}
