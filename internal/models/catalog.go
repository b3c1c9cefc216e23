package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a catalog entry (e.g. "Bench Press").
type Exercise struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscle_group,omitempty"`
}

// ExerciseTemplate prescribes one exercise within a DayTemplate.
// Templates sharing a non-nil SupersetID within a day form one superset.
type ExerciseTemplate struct {
	ID         uuid.UUID `json:"id"`
	Exercise   Exercise  `json:"exercise"`
	SetCount   int       `json:"set_count"`
	Reps       int       `json:"reps"`
	Weight     *float64  `json:"weight,omitempty"`
	Position   float64   `json:"position"`
	SupersetID *string   `json:"superset_id,omitempty"`
}

// DayTemplate is the prescription for one weekday of a WorkoutTemplate.
// When IsRest is set, Exercises are ignored for logging.
type DayTemplate struct {
	ID        uuid.UUID          `json:"id"`
	Weekday   time.Weekday       `json:"weekday"`
	IsRest    bool               `json:"is_rest"`
	Exercises []ExerciseTemplate `json:"exercises,omitempty"`
}

// WorkoutTemplate is a week of day templates.
type WorkoutTemplate struct {
	ID   uuid.UUID     `json:"id"`
	Name string        `json:"name"`
	Days []DayTemplate `json:"days"`
}

// WorkoutPlan is a user's instance of a WorkoutTemplate.
type WorkoutPlan struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	StartDate     time.Time       `json:"start_date"`
	DurationWeeks int             `json:"duration_weeks"`
	IsActive      bool            `json:"is_active"`
	Template      WorkoutTemplate `json:"template"`
}

// Weekdays returns the distinct weekdays the plan's template has a day for,
// Monday first.
func (p WorkoutPlan) Weekdays() []time.Weekday {
	present := make(map[time.Weekday]bool, len(p.Template.Days))
	for _, d := range p.Template.Days {
		present[d.Weekday] = true
	}
	days := make([]time.Weekday, 0, len(present))
	for _, wd := range WeekdayOrder {
		if present[wd] {
			days = append(days, wd)
		}
	}
	return days
}

// Performance is the most recently logged reps/weight for an exercise.
type Performance struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}
