package session

import (
	"testing"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

// TestBuildExercisesOrderByPosition verifies that output follows template
// position, not listing order, and that planned values come from the template.
func TestBuildExercisesOrderByPosition(t *testing.T) {
	got := BuildExercises(mondayDay(), nil)
	if len(got) != 2 {
		t.Fatalf("exercises = %d, want 2", len(got))
	}
	if got[0].Name != "Bench Press" || got[1].Name != "Barbell Row" {
		t.Errorf("order = [%s, %s], want [Bench Press, Barbell Row]", got[0].Name, got[1].Name)
	}

	bench := got[0]
	if bench.ID != benchTplID {
		t.Errorf("ID = %s, want template ID %s", bench.ID, benchTplID)
	}
	if bench.ExerciseID != benchID {
		t.Errorf("ExerciseID = %s, want %s", bench.ExerciseID, benchID)
	}
	if bench.PlannedSets != 3 || bench.PlannedReps != 8 || bench.PlannedWeight != 80 {
		t.Errorf("planned = %d x %d @ %v, want 3 x 8 @ 80", bench.PlannedSets, bench.PlannedReps, bench.PlannedWeight)
	}
	if len(bench.Sets) != 3 {
		t.Fatalf("slots = %d, want 3", len(bench.Sets))
	}
	for i, s := range bench.Sets {
		if s != nil {
			t.Errorf("slot %d = %+v, want empty", i, s)
		}
	}
}

// TestBuildExercisesRestOrEmpty verifies that every flavour of rest day
// produces an empty, non-nil list.
func TestBuildExercisesRestOrEmpty(t *testing.T) {
	rest := mondayDay()
	rest.IsRest = true

	tests := map[string]*models.DayTemplate{
		"nil day":      nil,
		"rest flag":    rest,
		"no templates": {},
	}
	for name, day := range tests {
		got := BuildExercises(day, nil)
		if got == nil {
			t.Errorf("%s: got nil, want empty slice", name)
		}
		if len(got) != 0 {
			t.Errorf("%s: exercises = %d, want 0", name, len(got))
		}
	}
}

// TestBuildExercisesLastPerformed verifies last-performed values fill the
// planned weight only when the template has none.
func TestBuildExercisesLastPerformed(t *testing.T) {
	last := map[uuid.UUID]models.Performance{
		squatID: {Reps: 6, Weight: 100},
		benchID: {Reps: 7, Weight: 85},
	}

	thursday := BuildExercises(thursdayDay(), last)
	squat := thursday[0]
	if squat.PlannedWeight != 100 {
		t.Errorf("squat planned weight = %v, want 100 (last performed)", squat.PlannedWeight)
	}
	if squat.PlannedReps != 5 {
		t.Errorf("squat planned reps = %d, want 5 (template)", squat.PlannedReps)
	}
	if squat.LastPerformed == nil || squat.LastPerformed.Reps != 6 {
		t.Errorf("squat last performed = %+v, want reps 6", squat.LastPerformed)
	}
	if thursday[1].PlannedWeight != 0 {
		t.Errorf("plank planned weight = %v, want 0", thursday[1].PlannedWeight)
	}

	bench := BuildExercises(mondayDay(), last)[0]
	if bench.PlannedWeight != 80 {
		t.Errorf("bench planned weight = %v, want 80 (template wins)", bench.PlannedWeight)
	}
}

// TestBuildExercisesStable verifies that re-running the projection on the
// same inputs gives identical output and leaves the input untouched.
func TestBuildExercisesStable(t *testing.T) {
	day := mondayDay()
	before := day.Exercises[0].ID

	a := BuildExercises(day, nil)
	b := BuildExercises(day, nil)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("projection not stable (-first +second):\n%s", diff)
	}
	if day.Exercises[0].ID != before {
		t.Error("BuildExercises reordered its input")
	}
}

// TestBuildExercisesZeroSets verifies a zero-set template yields no slots
// and is never considered completed.
func TestBuildExercisesZeroSets(t *testing.T) {
	plank := BuildExercises(thursdayDay(), nil)[1]
	if len(plank.Sets) != 0 {
		t.Errorf("plank slots = %d, want 0", len(plank.Sets))
	}
	if plank.IsCompleted() {
		t.Error("zero-set exercise reported completed")
	}
}
