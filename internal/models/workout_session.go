package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutSession is the persisted record of one finished session.
// Completed is false when the session was finished before every set was done.
type WorkoutSession struct {
	ID        uuid.UUID         `json:"id"`
	PlanID    uuid.UUID         `json:"plan_id"`
	Weekday   time.Weekday      `json:"weekday"`
	Date      time.Time         `json:"date"`
	Title     string            `json:"title"`
	Duration  time.Duration     `json:"duration"`
	Completed bool              `json:"completed"`
	Exercises []SessionExercise `json:"exercises"`
}

// SessionExercise is one exercise performed in a WorkoutSession.
// An exercise with no logged sets is kept with an empty Sets slice.
type SessionExercise struct {
	ID         uuid.UUID      `json:"id"`
	ExerciseID uuid.UUID      `json:"exercise_id"`
	Name       string         `json:"name"`
	Position   int            `json:"position"`
	SupersetID *string        `json:"superset_id,omitempty"`
	Sets       []CompletedSet `json:"sets"`
}

// CompletedSet is one logged set. Position is the zero-based slot index.
type CompletedSet struct {
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	IsCompleted bool    `json:"is_completed"`
	Position    int     `json:"position"`
}

// SetCount returns the number of logged sets across all exercises.
func (s *WorkoutSession) SetCount() int {
	n := 0
	for _, ex := range s.Exercises {
		n += len(ex.Sets)
	}
	return n
}
