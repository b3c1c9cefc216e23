package session

import (
	"fmt"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// AddSet appends an empty slot to the exercise.
func (e *Engine) AddSet(exerciseID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ex, err := e.find(exerciseID)
	if err != nil {
		return e.fail(err)
	}
	ex.Sets = append(ex.Sets, nil)
	return nil
}

// EditSet sets reps and weight of one slot, creating the set if the slot is
// empty. The slot's completion flag is left as it was.
func (e *Engine) EditSet(exerciseID uuid.UUID, setIndex, reps int, weight float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ex, err := e.findSlot(exerciseID, setIndex)
	if err != nil {
		return e.fail(err)
	}
	if ex.Sets[setIndex] == nil {
		ex.Sets[setIndex] = &models.CompletedSet{Position: setIndex}
	}
	ex.Sets[setIndex].Reps = reps
	ex.Sets[setIndex].Weight = weight
	return nil
}

// BulkEditSets applies the same reps and weight to every slot of the
// exercise, keeping each slot's completion flag.
func (e *Engine) BulkEditSets(exerciseID uuid.UUID, reps int, weight float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ex, err := e.find(exerciseID)
	if err != nil {
		return e.fail(err)
	}
	for i := range ex.Sets {
		s := ex.materialize(i)
		s.Reps = reps
		s.Weight = weight
	}
	return nil
}

// ToggleSetCompletion flips a slot's completion flag. An empty slot is
// first filled from the planned values and then marked completed.
func (e *Engine) ToggleSetCompletion(exerciseID uuid.UUID, setIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ex, err := e.findSlot(exerciseID, setIndex)
	if err != nil {
		return e.fail(err)
	}
	if ex.Sets[setIndex] == nil {
		ex.materialize(setIndex).IsCompleted = true
		return nil
	}
	ex.Sets[setIndex].IsCompleted = !ex.Sets[setIndex].IsCompleted
	return nil
}

// MarkExerciseComplete fills every empty slot from planned values and marks
// all slots completed.
func (e *Engine) MarkExerciseComplete(exerciseID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ex, err := e.find(exerciseID)
	if err != nil {
		return e.fail(err)
	}
	for i := range ex.Sets {
		ex.materialize(i).IsCompleted = true
	}
	return nil
}

// CanFinishSession reports whether there is at least one exercise and all
// exercises are completed.
func (e *Engine) CanFinishSession() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return allCompleted(e.list())
}

func (e *Engine) find(id uuid.UUID) (*Exercise, error) {
	for _, ex := range e.list() {
		if ex.ID == id {
			return ex, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrExerciseNotFound, id)
}

func (e *Engine) findSlot(id uuid.UUID, setIndex int) (*Exercise, error) {
	ex, err := e.find(id)
	if err != nil {
		return nil, err
	}
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		return nil, fmt.Errorf("%w: %d (exercise has %d sets)", ErrInvalidSetIndex, setIndex, len(ex.Sets))
	}
	return ex, nil
}
