package handlers

const (
	PlayerCookieName          = "player_session"
	BuilderTutorialCookieName = "builder_tutorial_seen"
	ShadowTutorialCookieName  = "shadow_tutorial_seen"

	ErrInvalidFormData     = "Invalid form data"
	ErrInternalServerError = "Internal server error"
	ErrTooManyRequests     = "Too many requests"
)
