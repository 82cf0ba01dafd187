package models

import "time"

// GameSession records one play-through of a level by an anonymous player.
type GameSession struct {
	ID               int64      `json:"id"`
	PlayerID         string     `json:"player_id"`
	Game             string     `json:"game"`
	Level            int        `json:"level"`
	Unit             int        `json:"unit"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	ProblemsAnswered int        `json:"problems_answered"`
}

// IsCompleted returns true if the session reached the end of its level.
func (s *GameSession) IsCompleted() bool {
	return s.CompletedAt != nil
}
