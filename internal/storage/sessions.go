package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveSession writes the session, its exercises and their sets in one
// transaction.
func (db *DB) SaveSession(ctx context.Context, s *models.WorkoutSession) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx,
		`INSERT INTO workout_sessions (id, plan_id, weekday, date, title, duration_ms, completed)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, s.PlanID, int(s.Weekday), s.Date, s.Title, s.Duration.Milliseconds(), s.Completed)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	var sets []setRow
	for _, ex := range s.Exercises {
		_, err := tx.Exec(ctx,
			`INSERT INTO session_exercises (id, session_id, exercise_id, name, position, superset_id)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			ex.ID, s.ID, ex.ExerciseID, ex.Name, ex.Position, ex.SupersetID)
		if err != nil {
			return fmt.Errorf("inserting session exercise %q: %w", ex.Name, err)
		}
		for _, cs := range ex.Sets {
			sets = append(sets, setRow{SessionExerciseID: ex.ID, CompletedSet: cs})
		}
	}

	if len(sets) > 0 {
		query, args := completedSetsInsert(sets)
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting completed sets: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	db.log.Debug("session saved", "session", s.ID, "exercises", len(s.Exercises), "sets", len(sets))
	return nil
}

// FetchLastPerformed returns the last completed set logged for the exercise
// in its most recent session, or nil if it was never completed.
func (db *DB) FetchLastPerformed(ctx context.Context, exerciseID uuid.UUID) (*models.Performance, error) {
	var p models.Performance
	err := db.Pool.QueryRow(ctx,
		`SELECT cs.reps, cs.weight
		 FROM completed_sets cs
		 JOIN session_exercises se ON se.id = cs.session_exercise_id
		 JOIN workout_sessions ws ON ws.id = se.session_id
		 WHERE se.exercise_id = $1 AND cs.is_completed
		 ORDER BY ws.date DESC, cs.position DESC
		 LIMIT 1`,
		exerciseID).Scan(&p.Reps, &p.Weight)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last performed: %w", err)
	}
	return &p, nil
}

// setRow is a completed set ready for insertion into completed_sets.
type setRow struct {
	SessionExerciseID uuid.UUID
	models.CompletedSet
}

// completedSetsInsert builds a multi-row INSERT for completed_sets.
func completedSetsInsert(rows []setRow) (string, []any) {
	query := `INSERT INTO completed_sets (session_exercise_id, position, reps, weight, is_completed) VALUES `
	args := make([]any, 0, len(rows)*5)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 5
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5,
		))
		args = append(args, r.SessionExerciseID, r.Position, r.Reps, r.Weight, r.IsCompleted)
	}

	return query + strings.Join(valueStrings, ","), args
}
