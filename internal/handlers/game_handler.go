package handlers

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"phonicscode/internal/assets"
	"phonicscode/internal/config"
	"phonicscode/internal/game"
	"phonicscode/internal/quiz"
	"phonicscode/internal/repository"
	"phonicscode/internal/security"
)

// GameHandler serves one of the two games. The builder and shadow-puzzle
// routes each get their own instance.
type GameHandler struct {
	kind      game.Kind
	cfg       *config.Config
	store     *quiz.Store
	assets    *assets.Resolver
	sessions  *Registry
	repo      *repository.SessionRepository
	csrf      *security.CSRFGenerator
	limiter   *security.RateLimiter
	templates *template.Template
}

// NewGameHandler creates a handler for one game. repo may be nil when
// progress persistence is disabled.
func NewGameHandler(kind game.Kind, cfg *config.Config, store *quiz.Store, res *assets.Resolver,
	sessions *Registry, repo *repository.SessionRepository, csrf *security.CSRFGenerator,
	limiter *security.RateLimiter, templates *template.Template) *GameHandler {
	return &GameHandler{
		kind:      kind,
		cfg:       cfg,
		store:     store,
		assets:    res,
		sessions:  sessions,
		repo:      repo,
		csrf:      csrf,
		limiter:   limiter,
		templates: templates,
	}
}

// BasePath returns the route prefix for this game.
func (h *GameHandler) BasePath() string {
	if h.kind == game.Shadow {
		return "/shadow-puzzle"
	}
	return "/builder"
}

func (h *GameHandler) templateName() string {
	if h.kind == game.Shadow {
		return "shadow.tmpl"
	}
	return "builder.tmpl"
}

func (h *GameHandler) tutorialCookieName() string {
	if h.kind == game.Shadow {
		return ShadowTutorialCookieName
	}
	return BuilderTutorialCookieName
}

func (h *GameHandler) tutorialTTLDuration() time.Duration {
	if h.kind == game.Shadow {
		return h.cfg.ShadowTutorialTTL
	}
	return h.cfg.BuilderTutorialTTL
}

func (h *GameHandler) feedbackDelayDuration() time.Duration {
	if h.kind == game.Shadow {
		return h.cfg.ShadowFeedbackDelay
	}
	return h.cfg.BuilderFeedbackDelay
}

// Play renders the game page for the current session state, starting a new
// session when the player has none or navigated to a different problem.
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	playerID := GetPlayerID(r.Context())
	pos, explicit := requestedPosition(r)

	entry := h.sessions.Get(playerID, h.kind)
	if entry == nil || (explicit && entry.ctrl.Snapshot().Pos != pos) {
		var err error
		entry, err = h.startSession(r, playerID, pos)
		if err != nil {
			log.Printf("Failed to start %s session at %+v: %v", h.kind, pos, err)
			http.Redirect(w, r, "/select-play?notice=missing", http.StatusSeeOther)
			return
		}
	}

	h.renderState(w, r, playerID, entry.ctrl.Snapshot())
}

// startSession builds a controller for pos, records the play-through, and
// registers it for the player.
func (h *GameHandler) startSession(r *http.Request, playerID string, pos quiz.Position) (*sessionEntry, error) {
	var recordID int64
	if h.repo != nil {
		record, err := h.repo.Create(playerID, h.kind.String(), pos.Level, pos.Unit)
		if err != nil {
			log.Printf("Failed to record game session: %v", err)
		} else {
			recordID = record.ID
		}
	}

	cfg := game.Config{
		Game:          h.kind,
		Store:         h.store,
		Assets:        h.assets,
		FeedbackDelay: h.feedbackDelayDuration(),
		TutorialSeen:  h.tutorialSeen(r),
	}
	if h.repo != nil && recordID != 0 {
		repo, id := h.repo, recordID
		cfg.OnCorrect = func(p quiz.Position) {
			if err := repo.IncrementAnswered(id, p.Unit); err != nil {
				log.Printf("Failed to update session progress: %v", err)
			}
		}
		cfg.OnComplete = func(p quiz.Position) {
			if err := repo.Complete(id); err != nil {
				log.Printf("Failed to complete session record: %v", err)
			}
		}
	}

	ctrl := game.NewController(cfg)
	if err := ctrl.Start(r.Context(), pos); err != nil {
		ctrl.Close()
		return nil, err
	}

	h.sessions.Put(playerID, h.kind, ctrl, recordID)
	return h.sessions.Get(playerID, h.kind), nil
}

// DismissTutorial marks the tutorial as seen and returns to the game.
func (h *GameHandler) DismissTutorial(w http.ResponseWriter, r *http.Request) {
	playerID := GetPlayerID(r.Context())

	http.SetCookie(w, security.CreateTutorialCookie(r, h.tutorialCookieName(), h.tutorialTTLDuration()))

	if entry := h.sessions.Get(playerID, h.kind); entry != nil {
		entry.ctrl.DismissTutorial()
	}
	http.Redirect(w, r, h.BasePath(), http.StatusSeeOther)
}

// StartUnit leaves the unit introduction and presents the first problem.
func (h *GameHandler) StartUnit(w http.ResponseWriter, r *http.Request) {
	playerID := GetPlayerID(r.Context())

	if entry := h.sessions.Get(playerID, h.kind); entry != nil {
		entry.ctrl.BeginProblems()
	}
	http.Redirect(w, r, h.BasePath(), http.StatusSeeOther)
}

// Resolve submits an answer for the current problem.
func (h *GameHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	playerID := GetPlayerID(r.Context())

	if !h.limiter.Allow(security.GetClientIP(r)) {
		http.Error(w, ErrTooManyRequests, http.StatusTooManyRequests)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	if !h.csrf.ValidateToken(playerID, r.FormValue("csrf_token")) {
		http.Error(w, "Invalid request token", http.StatusForbidden)
		return
	}

	if entry := h.sessions.Get(playerID, h.kind); entry != nil {
		if !entry.ctrl.Resolve(r.FormValue("answer")) {
			// Wrong answer. The problem stays open; the page replays it
			// with the try-again feedback.
			http.Redirect(w, r, h.BasePath()+"?result=wrong", http.StatusSeeOther)
			return
		}
	}
	http.Redirect(w, r, h.BasePath(), http.StatusSeeOther)
}

// Exit tears the session down and returns to the game select screen.
func (h *GameHandler) Exit(w http.ResponseWriter, r *http.Request) {
	playerID := GetPlayerID(r.Context())
	h.sessions.Remove(playerID, h.kind)
	http.Redirect(w, r, "/select-play", http.StatusSeeOther)
}

func (h *GameHandler) tutorialSeen(r *http.Request) bool {
	cookie, err := r.Cookie(h.tutorialCookieName())
	return err == nil && cookie.Value != ""
}

func (h *GameHandler) renderState(w http.ResponseWriter, r *http.Request, playerID string, snap game.Snapshot) {
	token, err := h.csrf.GenerateToken(playerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to generate CSRF token", err)
		return
	}

	data := map[string]interface{}{
		"Title":     h.pageTitle(),
		"BasePath":  h.BasePath(),
		"State":     snap.State.String(),
		"Pos":       snap.Pos,
		"Problem":   snap.Problem,
		"CSRFToken": token,
		"Wrong":     r.URL.Query().Get("result") == "wrong",
	}

	if err := h.templates.ExecuteTemplate(w, h.templateName(), data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render page", "Error rendering template", err)
	}
}

func (h *GameHandler) pageTitle() string {
	if h.kind == game.Shadow {
		return "Shadow Puzzle - Phonics Code"
	}
	return "Phonics Builder - Phonics Code"
}
