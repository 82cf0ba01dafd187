package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"phonicscode/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const PlayerContextKey ContextKey = "player"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	sessionSecret   string
	sessionDuration time.Duration
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessionSecret string, sessionDuration time.Duration) *Middleware {
	return &Middleware{
		sessionSecret:   sessionSecret,
		sessionDuration: sessionDuration,
	}
}

// PlayerSession attaches an anonymous player identity to every request. A
// valid signed cookie is reused; anything else gets a fresh identity and a
// new cookie. No login is involved, the identity only keys progress records.
func (m *Middleware) PlayerSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var playerID string

		if cookie, err := r.Cookie(PlayerCookieName); err == nil {
			if id, err := security.ParsePlayerToken(m.sessionSecret, cookie.Value); err == nil {
				playerID = id
			}
		}

		if playerID == "" {
			playerID = security.GeneratePlayerID()
			token, err := security.SignPlayerToken(m.sessionSecret, playerID, m.sessionDuration)
			if err != nil {
				log.Printf("Failed to sign player token: %v", err)
				http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
				return
			}
			expires := time.Now().Add(m.sessionDuration)
			http.SetCookie(w, security.CreateSessionCookie(r, PlayerCookieName, token, expires))
		}

		ctx := context.WithValue(r.Context(), PlayerContextKey, playerID)
		next(w, r.WithContext(ctx))
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetPlayerID retrieves the player ID from the request context
func GetPlayerID(ctx context.Context) string {
	playerID, ok := ctx.Value(PlayerContextKey).(string)
	if !ok {
		return ""
	}
	return playerID
}
