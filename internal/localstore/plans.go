package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// FetchActivePlans returns every plan with its template's day list. The
// active plan sorts first.
func (s *Store) FetchActivePlans(ctx context.Context) ([]models.WorkoutPlan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.start_date, p.duration_weeks, p.is_active, t.id, t.name
		 FROM workout_plans p
		 JOIN workout_templates t ON t.id = p.template_id
		 ORDER BY p.is_active DESC, p.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	plans := []models.WorkoutPlan{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var p models.WorkoutPlan
		var start int64
		if err := rows.Scan(&p.ID, &p.Name, &start, &p.DurationWeeks, &p.IsActive,
			&p.Template.ID, &p.Template.Name); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		p.StartDate = time.UnixMilli(start).UTC()
		index[p.ID] = len(plans)
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	dayRows, err := s.db.QueryContext(ctx,
		`SELECT p.id, d.id, d.weekday, d.is_rest
		 FROM day_templates d
		 JOIN workout_plans p ON p.template_id = d.template_id
		 ORDER BY d.weekday ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying plan days: %w", err)
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var planID uuid.UUID
		var d models.DayTemplate
		var weekday int
		if err := dayRows.Scan(&planID, &d.ID, &weekday, &d.IsRest); err != nil {
			return nil, fmt.Errorf("scanning plan day: %w", err)
		}
		d.Weekday = time.Weekday(weekday)
		if i, ok := index[planID]; ok {
			plans[i].Template.Days = append(plans[i].Template.Days, d)
		}
	}
	return plans, dayRows.Err()
}

// FetchDayTemplate returns the plan's day for weekday with its exercise
// templates ordered by position, or nil if the template has no such day.
func (s *Store) FetchDayTemplate(ctx context.Context, planID uuid.UUID, weekday time.Weekday) (*models.DayTemplate, error) {
	var d models.DayTemplate
	var wd int
	err := s.db.QueryRowContext(ctx,
		`SELECT d.id, d.weekday, d.is_rest
		 FROM day_templates d
		 JOIN workout_plans p ON p.template_id = d.template_id
		 WHERE p.id = ? AND d.weekday = ?`,
		planID, int(weekday)).Scan(&d.ID, &wd, &d.IsRest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying day template: %w", err)
	}
	d.Weekday = time.Weekday(wd)

	rows, err := s.db.QueryContext(ctx,
		`SELECT et.id, et.set_count, et.reps, et.weight, et.position, et.superset_id,
		 e.id, e.name, e.muscle_group
		 FROM exercise_templates et
		 JOIN exercises e ON e.id = et.exercise_id
		 WHERE et.day_template_id = ?
		 ORDER BY et.position ASC`,
		d.ID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise templates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var et models.ExerciseTemplate
		if err := rows.Scan(&et.ID, &et.SetCount, &et.Reps, &et.Weight, &et.Position, &et.SupersetID,
			&et.Exercise.ID, &et.Exercise.Name, &et.Exercise.MuscleGroup); err != nil {
			return nil, fmt.Errorf("scanning exercise template: %w", err)
		}
		d.Exercises = append(d.Exercises, et)
	}
	return &d, rows.Err()
}
