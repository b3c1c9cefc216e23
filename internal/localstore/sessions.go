package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// SaveSession writes the session, its exercises and their sets in one
// transaction.
func (s *Store) SaveSession(ctx context.Context, ws *models.WorkoutSession) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO workout_sessions (id, plan_id, weekday, date, title, duration_ms, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ws.ID, ws.PlanID, int(ws.Weekday), ws.Date.UnixMilli(), ws.Title, ws.Duration.Milliseconds(), ws.Completed)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	setStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO completed_sets (session_exercise_id, position, reps, weight, is_completed)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing set insert: %w", err)
	}
	defer setStmt.Close()

	sets := 0
	for _, ex := range ws.Exercises {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO session_exercises (id, session_id, exercise_id, name, position, superset_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			ex.ID, ws.ID, ex.ExerciseID, ex.Name, ex.Position, ex.SupersetID)
		if err != nil {
			return fmt.Errorf("inserting session exercise %q: %w", ex.Name, err)
		}
		for _, cs := range ex.Sets {
			if _, err := setStmt.ExecContext(ctx, ex.ID, cs.Position, cs.Reps, cs.Weight, cs.IsCompleted); err != nil {
				return fmt.Errorf("inserting completed set: %w", err)
			}
			sets++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	s.log.Debug("session saved", "session", ws.ID, "exercises", len(ws.Exercises), "sets", sets)
	return nil
}

// FetchLastPerformed returns the last completed set logged for the exercise
// in its most recent session, or nil if it was never completed.
func (s *Store) FetchLastPerformed(ctx context.Context, exerciseID uuid.UUID) (*models.Performance, error) {
	var p models.Performance
	err := s.db.QueryRowContext(ctx,
		`SELECT cs.reps, cs.weight
		 FROM completed_sets cs
		 JOIN session_exercises se ON se.id = cs.session_exercise_id
		 JOIN workout_sessions ws ON ws.id = se.session_id
		 WHERE se.exercise_id = ? AND cs.is_completed = 1
		 ORDER BY ws.date DESC, cs.position DESC
		 LIMIT 1`,
		exerciseID).Scan(&p.Reps, &p.Weight)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last performed: %w", err)
	}
	return &p, nil
}
