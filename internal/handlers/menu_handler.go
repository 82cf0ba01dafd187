package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"phonicscode/internal/quiz"
)

// Book is one of the five phonics books on the home screen.
type Book struct {
	Level int
	Name  string
	Color string
}

// bookColors are the cover theme colors, by level.
var bookColors = []string{"#F3C74C", "#F2854D", "#78C15E", "#5CABE1", "#AA70C8"}

// Books lists the five levels with their theme colors.
func Books() []Book {
	books := make([]Book, 0, len(bookColors))
	for i, color := range bookColors {
		books = append(books, Book{
			Level: i + 1,
			Name:  "Book " + strconv.Itoa(i+1),
			Color: color,
		})
	}
	return books
}

// MenuHandler serves the home, unit-select and play-select screens.
type MenuHandler struct {
	store     *quiz.Store
	templates *template.Template
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(store *quiz.Store, templates *template.Template) *MenuHandler {
	return &MenuHandler{store: store, templates: templates}
}

// Home renders the book picker.
func (h *MenuHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := map[string]interface{}{
		"Title": "Phonics Code",
		"Books": Books(),
	}
	h.render(w, "home.tmpl", data)
}

// SelectUnit renders the unit picker for a level.
func (h *MenuHandler) SelectUnit(w http.ResponseWriter, r *http.Request) {
	level, ok := parsePositive(r.PathValue("level"))
	if !ok {
		if level, ok = parsePositive(r.URL.Query().Get("level")); !ok {
			if level, ok = parsePositive(r.URL.Query().Get("book_seq")); !ok {
				level = 1
			}
		}
	}

	units := h.store.UnitsByLevel(r.Context(), level)

	data := map[string]interface{}{
		"Title": "Choose a Unit - Phonics Code",
		"Level": level,
		"Units": units,
	}
	h.render(w, "select_unit.tmpl", data)
}

// SelectPlay renders the game picker for a level and unit.
func (h *MenuHandler) SelectPlay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	level, ok := parsePositive(r.PathValue("level"))
	if !ok {
		if level, ok = parsePositive(q.Get("level")); !ok {
			level = 1
		}
	}
	unit, ok := parsePositive(r.PathValue("unit"))
	if !ok {
		if unit, ok = parsePositive(q.Get("unit")); !ok {
			unit = 1
		}
	}

	var unitName string
	for _, u := range h.store.UnitsByLevel(r.Context(), level) {
		if u.Unit == unit {
			unitName = u.UnitName
			break
		}
	}

	data := map[string]interface{}{
		"Title":    "Choose a Game - Phonics Code",
		"Level":    level,
		"Unit":     unit,
		"UnitName": unitName,
		"Notice":   q.Get("notice"),
	}
	h.render(w, "select_play.tmpl", data)
}

// Healthz reports liveness.
func (h *MenuHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *MenuHandler) render(w http.ResponseWriter, name string, data map[string]interface{}) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to render page", "Error rendering template", err)
	}
}
