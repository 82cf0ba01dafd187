package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"phonicscode/internal/quiz"
)

// positionFromRequest resolves the requested problem position. Path segments
// win outright; otherwise each component resolves independently from the
// query, book_seq/unit_seq/quiz_seq first, then the legacy level/unit/
// problem_number names, then 1.
func positionFromRequest(r *http.Request) quiz.Position {
	pos, _ := requestedPosition(r)
	return pos
}

// requestedPosition additionally reports whether the request actually named
// any position component, as opposed to falling back to the default.
func requestedPosition(r *http.Request) (quiz.Position, bool) {
	if pos, ok := positionFromPath(r); ok {
		return pos, true
	}

	q := r.URL.Query()
	level, okL := queryComponent(q, "book_seq", "level")
	unit, okU := queryComponent(q, "unit_seq", "unit")
	problem, okP := queryComponent(q, "quiz_seq", "problem_number")
	if !okL && !okU && !okP {
		return quiz.DefaultPosition(), false
	}
	return quiz.Position{Level: level, Unit: unit, Problem: problem}, true
}

func positionFromPath(r *http.Request) (quiz.Position, bool) {
	level, okL := parsePositive(r.PathValue("level"))
	unit, okU := parsePositive(r.PathValue("unit"))
	problem, okP := parsePositive(r.PathValue("problem"))
	if !okL || !okU || !okP {
		return quiz.Position{}, false
	}
	return quiz.Position{Level: level, Unit: unit, Problem: problem}, true
}

// queryComponent resolves one position component: the new-style key wins,
// then the legacy key, then 1.
func queryComponent(q url.Values, newKey, legacyKey string) (int, bool) {
	if n, ok := parsePositive(q.Get(newKey)); ok {
		return n, true
	}
	if n, ok := parsePositive(q.Get(legacyKey)); ok {
		return n, true
	}
	return 1, false
}

func parsePositive(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
