package session

import (
	"sort"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// BuildExercises turns a day's exercise templates into the runtime list used
// for logging, ordered by template position. last maps catalog exercise IDs
// to their most recent logged values and may be nil.
//
// Rest days, nil days and days without templates all yield an empty list.
func BuildExercises(day *models.DayTemplate, last map[uuid.UUID]models.Performance) []*Exercise {
	if day == nil || day.IsRest || len(day.Exercises) == 0 {
		return []*Exercise{}
	}

	templates := make([]models.ExerciseTemplate, len(day.Exercises))
	copy(templates, day.Exercises)
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Position < templates[j].Position
	})

	exercises := make([]*Exercise, 0, len(templates))
	for _, tpl := range templates {
		setCount := max(tpl.SetCount, 0)
		ex := &Exercise{
			ID:          tpl.ID,
			ExerciseID:  tpl.Exercise.ID,
			Name:        tpl.Exercise.Name,
			PlannedSets: setCount,
			PlannedReps: tpl.Reps,
			Sets:        make([]*models.CompletedSet, setCount),
		}
		if tpl.SupersetID != nil {
			id := *tpl.SupersetID
			ex.SupersetID = &id
		}
		if perf, ok := last[tpl.Exercise.ID]; ok {
			ex.LastPerformed = &perf
		}
		switch {
		case tpl.Weight != nil:
			ex.PlannedWeight = *tpl.Weight
		case ex.LastPerformed != nil:
			ex.PlannedWeight = ex.LastPerformed.Weight
		}
		exercises = append(exercises, ex)
	}

	MarkSupersetHeads(exercises)
	return exercises
}
