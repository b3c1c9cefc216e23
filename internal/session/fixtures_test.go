package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

var (
	planID  = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	plan2ID = uuid.MustParse("00000000-0000-0000-0000-0000000000a2")

	benchID = uuid.MustParse("00000000-0000-0000-0000-000000000e01")
	rowID   = uuid.MustParse("00000000-0000-0000-0000-000000000e02")
	squatID = uuid.MustParse("00000000-0000-0000-0000-000000000e03")
	plankID = uuid.MustParse("00000000-0000-0000-0000-000000000e04")

	benchTplID = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	rowTplID   = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	squatTplID = uuid.MustParse("00000000-0000-0000-0000-000000000103")
	plankTplID = uuid.MustParse("00000000-0000-0000-0000-000000000104")

	// 2026-10-12 is a Monday.
	monday  = time.Date(2026, 10, 12, 7, 30, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)

	errBoom = errors.New("boom")
)

func strPtr(s string) *string      { return &s }
func floatPtr(f float64) *float64 { return &f }

// mondayDay has bench (position 1) and row (position 2) as superset "A",
// listed out of order to exercise position sorting.
func mondayDay() *models.DayTemplate {
	return &models.DayTemplate{
		ID:      uuid.MustParse("00000000-0000-0000-0000-0000000000d1"),
		Weekday: time.Monday,
		Exercises: []models.ExerciseTemplate{
			{ID: rowTplID, Exercise: models.Exercise{ID: rowID, Name: "Barbell Row"}, SetCount: 3, Reps: 10, Weight: floatPtr(60), Position: 2, SupersetID: strPtr("A")},
			{ID: benchTplID, Exercise: models.Exercise{ID: benchID, Name: "Bench Press"}, SetCount: 3, Reps: 8, Weight: floatPtr(80), Position: 1, SupersetID: strPtr("A")},
		},
	}
}

// thursdayDay has a squat with no template weight and a zero-set plank.
func thursdayDay() *models.DayTemplate {
	return &models.DayTemplate{
		ID:      uuid.MustParse("00000000-0000-0000-0000-0000000000d4"),
		Weekday: time.Thursday,
		Exercises: []models.ExerciseTemplate{
			{ID: squatTplID, Exercise: models.Exercise{ID: squatID, Name: "Back Squat"}, SetCount: 2, Reps: 5, Position: 1},
			{ID: plankTplID, Exercise: models.Exercise{ID: plankID, Name: "Plank"}, SetCount: 0, Reps: 1, Position: 2},
		},
	}
}

func testPlan(active bool) models.WorkoutPlan {
	return models.WorkoutPlan{
		ID:            planID,
		Name:          "Push Plan",
		StartDate:     monday.AddDate(0, 0, -14),
		DurationWeeks: 8,
		IsActive:      active,
		Template: models.WorkoutTemplate{
			ID:   uuid.MustParse("00000000-0000-0000-0000-0000000000b1"),
			Name: "Upper/Lower",
			Days: []models.DayTemplate{
				{Weekday: time.Monday},
				{Weekday: time.Wednesday, IsRest: true},
				{Weekday: time.Thursday},
				{Weekday: time.Friday},
			},
		},
	}
}

// fakeStore is an in-memory Store. Days are keyed by plan and weekday.
type fakeStore struct {
	plans []models.WorkoutPlan
	days  map[uuid.UUID]map[time.Weekday]*models.DayTemplate
	last  map[uuid.UUID]models.Performance
	saved []*models.WorkoutSession

	plansErr error
	dayErr   error
	lastErr  error
	saveErr  error
}

var _ Store = (*fakeStore)(nil)

func newFakeStore(active bool) *fakeStore {
	return &fakeStore{
		plans: []models.WorkoutPlan{
			testPlan(active),
			{ID: plan2ID, Name: "Empty Plan"},
		},
		days: map[uuid.UUID]map[time.Weekday]*models.DayTemplate{
			planID: {
				time.Monday:    mondayDay(),
				time.Wednesday: {Weekday: time.Wednesday, IsRest: true, Exercises: mondayDay().Exercises},
				time.Thursday:  thursdayDay(),
				time.Friday:    {Weekday: time.Friday},
			},
		},
		last: map[uuid.UUID]models.Performance{},
	}
}

func (f *fakeStore) FetchActivePlans(ctx context.Context) ([]models.WorkoutPlan, error) {
	if f.plansErr != nil {
		return nil, f.plansErr
	}
	return append([]models.WorkoutPlan(nil), f.plans...), nil
}

func (f *fakeStore) FetchDayTemplate(ctx context.Context, planID uuid.UUID, weekday time.Weekday) (*models.DayTemplate, error) {
	if f.dayErr != nil {
		return nil, f.dayErr
	}
	return f.days[planID][weekday], nil
}

func (f *fakeStore) FetchLastPerformed(ctx context.Context, exerciseID uuid.UUID) (*models.Performance, error) {
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	if p, ok := f.last[exerciseID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeStore) SaveSession(ctx context.Context, s *models.WorkoutSession) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, s)
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(store Store, clock *fakeClock) *Engine {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, log, WithClock(clock.Now), WithLocation(time.UTC))
}

// loadedEngine returns an engine with plans loaded and the test plan
// selected. With a Tuesday clock no day is auto-selected.
func loadedEngine(t *testing.T, store *fakeStore, clock *fakeClock) *Engine {
	e := newTestEngine(store, clock)
	t.Helper()
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := e.SelectPlan(context.Background(), planID); err != nil {
		t.Fatalf("SelectPlan: %v", err)
	}
	return e
}
