package session

import (
	"context"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// Store is the catalog and history collaborator the engine reads plans from
// and appends finished sessions to. Both the Postgres and SQLite stores
// satisfy it.
type Store interface {
	// FetchActivePlans returns the plans available for selection.
	FetchActivePlans(ctx context.Context) ([]models.WorkoutPlan, error)
	// FetchDayTemplate returns the plan's day for weekday, or nil if the
	// plan's template has none.
	FetchDayTemplate(ctx context.Context, planID uuid.UUID, weekday time.Weekday) (*models.DayTemplate, error)
	// FetchLastPerformed returns the most recent logged set for the
	// exercise, or nil if it was never logged.
	FetchLastPerformed(ctx context.Context, exerciseID uuid.UUID) (*models.Performance, error)
	// SaveSession persists a finished session atomically.
	SaveSession(ctx context.Context, s *models.WorkoutSession) error
}
