package handlers

import (
	"net/http/httptest"
	"testing"

	"phonicscode/internal/quiz"
)

func TestPositionFromRequest(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want quiz.Position
	}{
		{
			name: "new-style query parameters",
			url:  "/builder?book_seq=2&unit_seq=3&quiz_seq=4",
			want: quiz.Position{Level: 2, Unit: 3, Problem: 4},
		},
		{
			name: "legacy query parameters",
			url:  "/builder?level=1&unit=2&problem_number=3",
			want: quiz.Position{Level: 1, Unit: 2, Problem: 3},
		},
		{
			name: "new-style wins over legacy",
			url:  "/builder?book_seq=2&unit_seq=2&quiz_seq=2&level=9&unit=9&problem_number=9",
			want: quiz.Position{Level: 2, Unit: 2, Problem: 2},
		},
		{
			name: "missing parameters fall back to default",
			url:  "/builder",
			want: quiz.DefaultPosition(),
		},
		{
			name: "each component falls back independently",
			url:  "/builder?book_seq=2&unit_seq=3",
			want: quiz.Position{Level: 2, Unit: 3, Problem: 1},
		},
		{
			name: "new-style and legacy keys mix per component",
			url:  "/builder?book_seq=2&unit=3",
			want: quiz.Position{Level: 2, Unit: 3, Problem: 1},
		},
		{
			name: "non-numeric parameters fall back to default",
			url:  "/builder?book_seq=x&unit_seq=y&quiz_seq=z",
			want: quiz.DefaultPosition(),
		},
		{
			name: "zero is not a valid position component",
			url:  "/builder?book_seq=0&unit_seq=1&quiz_seq=1",
			want: quiz.DefaultPosition(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if got := positionFromRequest(r); got != tt.want {
				t.Errorf("positionFromRequest(%q) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}

func TestPositionFromPathSegments(t *testing.T) {
	r := httptest.NewRequest("GET", "/builder/2/3/4?book_seq=9&unit_seq=9&quiz_seq=9", nil)
	r.SetPathValue("level", "2")
	r.SetPathValue("unit", "3")
	r.SetPathValue("problem", "4")

	want := quiz.Position{Level: 2, Unit: 3, Problem: 4}
	if got := positionFromRequest(r); got != want {
		t.Errorf("positionFromRequest = %+v, want path segments %+v", got, want)
	}
}
