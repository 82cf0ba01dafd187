package handlers

import (
	"html/template"
	"log"
	"net/http"

	"phonicscode/internal/repository"
)

// recentSessionLimit caps the results list.
const recentSessionLimit = 20

// ResultsHandler shows a player's recent play-throughs.
type ResultsHandler struct {
	repo      *repository.SessionRepository
	templates *template.Template
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(repo *repository.SessionRepository, templates *template.Template) *ResultsHandler {
	return &ResultsHandler{repo: repo, templates: templates}
}

// ShowResults renders the recent-sessions page.
func (h *ResultsHandler) ShowResults(w http.ResponseWriter, r *http.Request) {
	playerID := GetPlayerID(r.Context())

	sessions, err := h.repo.RecentForPlayer(playerID, recentSessionLimit)
	if err != nil {
		log.Printf("Failed to load results for player: %v", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Title":    "My Results - Phonics Code",
		"Sessions": sessions,
	}

	if err := h.templates.ExecuteTemplate(w, "results.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render page", "Error rendering template", err)
	}
}
