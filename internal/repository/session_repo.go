package repository

import (
	"database/sql"
	"time"

	"phonicscode/internal/database"
	"phonicscode/internal/models"
)

// SessionRepository handles game session database operations
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create records the start of a play-through
func (r *SessionRepository) Create(playerID, game string, level, unit int) (*models.GameSession, error) {
	query := `
		INSERT INTO game_sessions (player_id, game, level, unit)
		VALUES (?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, playerID, game, level, unit)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetByID retrieves a game session by ID
func (r *SessionRepository) GetByID(sessionID int64) (*models.GameSession, error) {
	query := `
		SELECT id, player_id, game, level, unit, started_at, completed_at, problems_answered
		FROM game_sessions
		WHERE id = ?
	`

	session := &models.GameSession{}
	var completedAt sql.NullTime

	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.PlayerID,
		&session.Game,
		&session.Level,
		&session.Unit,
		&session.StartedAt,
		&completedAt,
		&session.ProblemsAnswered,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		session.CompletedAt = &completedAt.Time
	}

	return session, nil
}

// IncrementAnswered bumps the answered-problem counter after each correct
// answer. The unit column tracks the player's progress through the level.
func (r *SessionRepository) IncrementAnswered(sessionID int64, unit int) error {
	query := `
		UPDATE game_sessions
		SET problems_answered = problems_answered + 1, unit = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, unit, sessionID)
	return err
}

// Complete marks a session as finished
func (r *SessionRepository) Complete(sessionID int64) error {
	query := `
		UPDATE game_sessions
		SET completed_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, time.Now(), sessionID)
	return err
}

// RecentForPlayer retrieves a player's latest sessions, newest first
func (r *SessionRepository) RecentForPlayer(playerID string, limit int) ([]models.GameSession, error) {
	query := `
		SELECT id, player_id, game, level, unit, started_at, completed_at, problems_answered
		FROM game_sessions
		WHERE player_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.GameSession
	for rows.Next() {
		var session models.GameSession
		var completedAt sql.NullTime

		err := rows.Scan(
			&session.ID,
			&session.PlayerID,
			&session.Game,
			&session.Level,
			&session.Unit,
			&session.StartedAt,
			&completedAt,
			&session.ProblemsAnswered,
		)
		if err != nil {
			return nil, err
		}

		if completedAt.Valid {
			session.CompletedAt = &completedAt.Time
		}

		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
