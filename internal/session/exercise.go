package session

import (
	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// Exercise is the logging-time projection of one ExerciseTemplate.
// A nil entry in Sets is a slot that has not been logged yet; it renders
// from PlannedReps/PlannedWeight.
type Exercise struct {
	ID             uuid.UUID              `json:"id"`
	ExerciseID     uuid.UUID              `json:"exercise_id"`
	Name           string                 `json:"name"`
	PlannedSets    int                    `json:"planned_sets"`
	PlannedReps    int                    `json:"planned_reps"`
	PlannedWeight  float64                `json:"planned_weight"`
	SupersetID     *string                `json:"superset_id,omitempty"`
	IsSupersetHead bool                   `json:"is_superset_head"`
	LastPerformed  *models.Performance    `json:"last_performed,omitempty"`
	Sets           []*models.CompletedSet `json:"sets"`
}

// IsCompleted reports whether the exercise has at least one slot and every
// slot holds a completed set.
func (e *Exercise) IsCompleted() bool {
	if len(e.Sets) == 0 {
		return false
	}
	for _, s := range e.Sets {
		if s == nil || !s.IsCompleted {
			return false
		}
	}
	return true
}

// materialize returns the set at index i, creating it from planned values
// if the slot is empty.
func (e *Exercise) materialize(i int) *models.CompletedSet {
	if e.Sets[i] == nil {
		e.Sets[i] = &models.CompletedSet{
			Reps:     e.PlannedReps,
			Weight:   e.PlannedWeight,
			Position: i,
		}
	}
	return e.Sets[i]
}

func (e *Exercise) clone() *Exercise {
	c := *e
	if e.SupersetID != nil {
		id := *e.SupersetID
		c.SupersetID = &id
	}
	if e.LastPerformed != nil {
		lp := *e.LastPerformed
		c.LastPerformed = &lp
	}
	c.Sets = make([]*models.CompletedSet, len(e.Sets))
	for i, s := range e.Sets {
		if s != nil {
			cs := *s
			c.Sets[i] = &cs
		}
	}
	return &c
}

func cloneExercises(in []*Exercise) []*Exercise {
	out := make([]*Exercise, len(in))
	for i, e := range in {
		out[i] = e.clone()
	}
	return out
}

func allCompleted(exercises []*Exercise) bool {
	if len(exercises) == 0 {
		return false
	}
	for _, e := range exercises {
		if !e.IsCompleted() {
			return false
		}
	}
	return true
}
